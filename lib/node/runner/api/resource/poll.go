package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/pollchain/lib/poll"
	"boscoin.io/pollchain/lib/storage"
)

type Poll struct {
	p *poll.Poll
}

func NewPoll(p *poll.Poll) *Poll {
	return &Poll{p: p}
}

func (p Poll) GetMap() hal.Entry {
	return hal.Entry{
		"id":          p.p.ID,
		"address":     p.p.Address,
		"description": p.p.Description,
		"creator":     p.p.Creator,
		"yes_votes":   p.p.YesVotes,
		"no_votes":    p.p.NoVotes,
		"created_at":  p.p.CreatedAt,
		"is_active":   p.p.IsActive,
	}
}

func (p Poll) Resource() *hal.Resource {
	r := hal.NewResource(p, p.LinkSelf())
	ballots := strings.Replace(URLPollBallots, "{id}", p.p.Address.String(), -1) + storage.ListQueryTemplate
	r.AddLink("ballots", hal.NewLink(ballots, hal.LinkAttr{"templated": true}))
	return r
}

func (p Poll) LinkSelf() string {
	return strings.Replace(URLPoll, "{id}", p.p.Address.String(), -1)
}
