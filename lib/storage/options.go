package storage

import (
	"encoding/base64"
	"net/url"
	"strconv"
)

// ListOptions pages a prefix iteration. The cursor is the raw key the
// iteration starts from and it is included in the result.
type ListOptions interface {
	Reverse() bool
	SetReverse(bool) ListOptions
	Cursor() []byte
	SetCursor([]byte) ListOptions
	Limit() uint64
	SetLimit(uint64) ListOptions
	Template() string
	URLValues() url.Values
	Encode() string
}

// ListQueryTemplate is the uri template of the query keys in
// `DefaultListOptions.URLValues`.
const ListQueryTemplate string = "{?cursor,limit,reverse}"

type DefaultListOptions struct {
	reverse bool
	cursor  []byte
	limit   uint64
}

func NewDefaultListOptions(reverse bool, cursor []byte, limit uint64) *DefaultListOptions {
	return &DefaultListOptions{
		reverse: reverse,
		cursor:  cursor,
		limit:   limit,
	}
}

// Copy gives independent options, so one page can derive the options of
// its neighbours.
func (o DefaultListOptions) Copy() *DefaultListOptions {
	c := o
	if o.cursor != nil {
		c.cursor = append([]byte{}, o.cursor...)
	}
	return &c
}

func (o DefaultListOptions) Reverse() bool {
	return o.reverse
}

func (o *DefaultListOptions) SetReverse(r bool) ListOptions {
	o.reverse = r
	return o
}

func (o DefaultListOptions) Cursor() []byte {
	return o.cursor
}

func (o *DefaultListOptions) SetCursor(c []byte) ListOptions {
	o.cursor = c
	return o
}

func (o DefaultListOptions) Limit() uint64 {
	return o.limit
}

func (o *DefaultListOptions) SetLimit(l uint64) ListOptions {
	o.limit = l
	return o
}

func (o DefaultListOptions) Template() string {
	return ListQueryTemplate
}

// URLValues gives the options as query values; the cursor is a storage key,
// so it goes base64 url encoded.
func (o DefaultListOptions) URLValues() url.Values {
	v := url.Values{
		"reverse": []string{strconv.FormatBool(o.reverse)},
	}

	if len(o.cursor) > 0 {
		v.Set("cursor", base64.URLEncoding.EncodeToString(o.cursor))
	}
	if o.limit > 0 {
		v.Set("limit", strconv.FormatUint(o.limit, 10))
	}

	return v
}

func (o DefaultListOptions) Encode() string {
	return o.URLValues().Encode()
}
