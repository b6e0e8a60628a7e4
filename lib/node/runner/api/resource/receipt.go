package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/pollchain/lib/transaction"
)

type Receipt struct {
	r *transaction.Receipt
}

func NewReceipt(r *transaction.Receipt) *Receipt {
	return &Receipt{r: r}
}

func (r Receipt) GetMap() hal.Entry {
	return hal.Entry{
		"hash":        r.r.Hash,
		"source":      r.r.Source,
		"sequence_id": r.r.SequenceID,
		"created":     r.r.Created,
		"confirmed":   r.r.Confirmed,
		"operations":  r.r.Operations,
		"targets":     r.r.Targets,
	}
}

func (r Receipt) Resource() *hal.Resource {
	return hal.NewResource(r, r.LinkSelf())
}

func (r Receipt) LinkSelf() string {
	return strings.Replace(URLTransaction, "{id}", r.r.Hash, -1)
}
