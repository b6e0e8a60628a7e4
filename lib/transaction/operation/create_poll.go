package operation

import (
	"boscoin.io/pollchain/lib/address"
	"boscoin.io/pollchain/lib/common"
)

// CreatePoll opens a new poll; the source of the transaction becomes its
// creator.
type CreatePoll struct {
	PollID      uint64 `json:"poll_id"`
	Description string `json:"description"`
}

func NewCreatePoll(id uint64, description string) CreatePoll {
	return CreatePoll{
		PollID:      id,
		Description: description,
	}
}

// The description length is checked when the poll is allocated.
func (o CreatePoll) IsWellFormed(common.Config) error {
	return nil
}

func (o CreatePoll) TargetAddress() address.Address {
	return address.PollAddress(o.PollID)
}
