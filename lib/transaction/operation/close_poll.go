package operation

import (
	"boscoin.io/pollchain/lib/address"
	"boscoin.io/pollchain/lib/common"
	"boscoin.io/pollchain/lib/errors"
)

type ClosePoll struct {
	Poll address.Address `json:"poll"`
}

func NewClosePoll(poll address.Address) ClosePoll {
	return ClosePoll{Poll: poll}
}

func (o ClosePoll) IsWellFormed(common.Config) error {
	if !o.Poll.IsValid() {
		return errors.OperationBodyInsufficient.Clone().SetData("poll", o.Poll)
	}

	return nil
}

func (o ClosePoll) TargetAddress() address.Address {
	return o.Poll
}
