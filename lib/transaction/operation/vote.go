package operation

import (
	"boscoin.io/pollchain/lib/address"
	"boscoin.io/pollchain/lib/common"
	"boscoin.io/pollchain/lib/errors"
)

// Vote casts the ballot of the transaction source; `Option` true is yes.
type Vote struct {
	Poll   address.Address `json:"poll"`
	Option bool            `json:"option"`
}

func NewVote(poll address.Address, option bool) Vote {
	return Vote{
		Poll:   poll,
		Option: option,
	}
}

func (o Vote) IsWellFormed(common.Config) error {
	if !o.Poll.IsValid() {
		return errors.OperationBodyInsufficient.Clone().SetData("poll", o.Poll)
	}

	return nil
}

func (o Vote) TargetAddress() address.Address {
	return o.Poll
}
