package operation

import (
	"boscoin.io/pollchain/lib/address"
)

func MakeTestCreatePoll(id uint64, description string) Operation {
	return Operation{
		H: Header{Type: TypeCreatePoll},
		B: NewCreatePoll(id, description),
	}
}

func MakeTestVote(id uint64, option bool) Operation {
	return Operation{
		H: Header{Type: TypeVote},
		B: NewVote(address.PollAddress(id), option),
	}
}

func MakeTestClosePoll(id uint64) Operation {
	return Operation{
		H: Header{Type: TypeClosePoll},
		B: NewClosePoll(address.PollAddress(id)),
	}
}
