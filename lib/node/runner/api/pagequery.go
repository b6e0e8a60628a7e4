package api

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"

	"boscoin.io/pollchain/lib/common"
	"boscoin.io/pollchain/lib/errors"
	"boscoin.io/pollchain/lib/node/runner/api/resource"
	"boscoin.io/pollchain/lib/storage"
)

const (
	DefaultLimit uint64 = 20
	MaxLimit     uint64 = 100
)

// PageQuery reads `cursor`, `limit` and `reverse` of list requests. The
// cursor is the storage key of the last record of the previous page,
// base64 encoded. Other query values, like filters, are kept in the links.
type PageQuery struct {
	request *http.Request
	options *storage.DefaultListOptions
}

func NewPageQuery(r *http.Request) (*PageQuery, error) {
	p := &PageQuery{
		request: r,
		options: storage.NewDefaultListOptions(false, nil, DefaultLimit),
	}
	err := p.parseRequest()
	return p, err
}

func (p *PageQuery) Limit() uint64 {
	return p.options.Limit()
}

func (p *PageQuery) Reverse() bool {
	return p.options.Reverse()
}

func (p *PageQuery) Cursor() []byte {
	return p.options.Cursor()
}

func (p *PageQuery) SelfLink() string {
	return p.request.URL.String()
}

func (p *PageQuery) PrevLink(cursor []byte) string {
	return p.link(p.options.Copy().SetCursor(cursor).SetReverse(!p.Reverse()))
}

func (p *PageQuery) NextLink(cursor []byte) string {
	return p.link(p.options.Copy().SetCursor(cursor))
}

// ListOptions gives the storage options of the page. The storage cursor is
// inclusive, so one more record is read and the cursor record is dropped
// by `IsCursor`.
func (p *PageQuery) ListOptions() storage.ListOptions {
	if len(p.Cursor()) < 1 {
		return p.options.Copy()
	}
	return p.options.Copy().SetLimit(p.Limit() + 1)
}

func (p *PageQuery) IsCursor(key []byte) bool {
	return len(p.Cursor()) > 0 && bytes.Equal(p.Cursor(), key)
}

func (p *PageQuery) ResourceList(rs []resource.Resource, firstCursor, lastCursor []byte) *resource.ResourceList {
	var next, prev string
	if len(lastCursor) > 0 {
		next = p.NextLink(lastCursor)
	}
	if len(firstCursor) > 0 {
		prev = p.PrevLink(firstCursor)
	}
	return resource.NewResourceList(rs, p.SelfLink(), next, prev, p.request.URL.Path+p.options.Template())
}

func (p *PageQuery) link(options storage.ListOptions) string {
	q := p.request.URL.Query()
	for k, v := range options.URLValues() {
		q[k] = v
	}
	return fmt.Sprintf("%s?%s", p.request.URL.Path, q.Encode())
}

func (p *PageQuery) parseRequest() error {
	q := p.request.URL.Query()
	if r := q.Get("reverse"); r != "" {
		reverse, err := common.ParseBoolQueryString(r)
		if err != nil {
			return err
		}
		p.options.SetReverse(reverse)
	}

	if c := q.Get("cursor"); c != "" {
		bs, err := base64.URLEncoding.DecodeString(c)
		if err != nil {
			return errors.BadRequestParameter.Clone().SetData("cursor", c)
		}
		p.options.SetCursor(bs)
	}

	if l := q.Get("limit"); l != "" {
		limit, err := strconv.ParseUint(l, 10, 64)
		if err != nil || limit < 1 {
			return errors.BadRequestParameter.Clone().SetData("limit", l)
		}

		if limit > MaxLimit {
			return errors.PageQueryLimitMaxExceed.Clone().SetData("limit", limit)
		}
		p.options.SetLimit(limit)
	}
	return nil
}
