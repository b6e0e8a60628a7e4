package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/pollchain/lib/ballot"
)

type Ballot struct {
	b *ballot.Ballot
}

func NewBallot(b *ballot.Ballot) *Ballot {
	return &Ballot{b: b}
}

func (b Ballot) GetMap() hal.Entry {
	return hal.Entry{
		"address": b.b.Address,
		"poll":    b.b.Poll,
		"voter":   b.b.Voter,
		"option":  b.b.Option,
	}
}

func (b Ballot) Resource() *hal.Resource {
	r := hal.NewResource(b, b.LinkSelf())
	r.AddLink("poll", hal.NewLink(strings.Replace(URLPoll, "{id}", b.b.Poll.String(), -1)))
	return r
}

func (b Ballot) LinkSelf() string {
	return strings.Replace(URLBallot, "{id}", b.b.Address.String(), -1)
}
