package operation

import (
	"encoding/json"
	"reflect"

	"boscoin.io/pollchain/lib/address"
	"boscoin.io/pollchain/lib/common"
	"boscoin.io/pollchain/lib/errors"
)

type OperationType string

const (
	TypeCreatePoll OperationType = "create-poll"
	TypeVote       OperationType = "vote"
	TypeClosePoll  OperationType = "close-poll"
)

func IsValidOperationType(oType string) bool {
	_, b := common.InStringArray([]string{
		string(TypeCreatePoll),
		string(TypeVote),
		string(TypeClosePoll),
	}, oType)
	return b
}

type Operation struct {
	H Header
	B Body
}

func NewOperation(opb Body) (op Operation, err error) {
	var t OperationType
	switch opb.(type) {
	case CreatePoll:
		t = TypeCreatePoll
	case Vote:
		t = TypeVote
	case ClosePoll:
		t = TypeClosePoll
	default:
		err = errors.UnknownOperationType
		return
	}

	op = Operation{
		H: Header{Type: t},
		B: opb,
	}

	return
}

type Header struct {
	Type OperationType `json:"type"`
}

type Body interface {
	//
	// Check that this operation is self consistent, without looking at the
	// stored state.
	//
	// Returns:
	//   An `error` if that operation is invalid, `nil` otherwise
	//
	IsWellFormed(common.Config) error
}

// Targetable is implemented by every body which acts on a poll.
type Targetable interface {
	TargetAddress() address.Address
}

func (o Operation) IsWellFormed(conf common.Config) (err error) {
	if o.B == nil {
		return errors.OperationBodyInsufficient
	}

	return o.B.IsWellFormed(conf)
}

func (o Operation) String() string {
	encoded, _ := json.MarshalIndent(o, "", "  ")

	return string(encoded)
}

type envelop struct {
	H Header
	B interface{}
}

func (o *Operation) UnmarshalJSON(b []byte) (err error) {
	var raw json.RawMessage
	oj := envelop{
		B: &raw,
	}
	if err = json.Unmarshal(b, &oj); err != nil {
		return
	}

	o.H = oj.H

	var body Body
	if body, err = UnmarshalBodyJSON(oj.H.Type, raw); err != nil {
		return
	}
	o.B = body
	return nil
}

func UnmarshalBodyJSON(t OperationType, b []byte) (Body, error) {
	if bi, err := newBodyFromType(t); err != nil {
		return nil, err
	} else if err = json.Unmarshal(b, bi); err != nil {
		return nil, errors.OperationBodyInsufficient.Clone().SetData("error", err.Error())
	} else {
		// No other way to go from interface-to-pointer to interface-to-value
		// because values within interfaces are not addressable
		return reflect.ValueOf(bi).Elem().Interface().(Body), nil
	}
}

// Returns: A pointer to a body with a type matching `ty`
func newBodyFromType(ty OperationType) (interface{}, error) {
	switch ty {
	case TypeCreatePoll:
		return &CreatePoll{}, nil
	case TypeVote:
		return &Vote{}, nil
	case TypeClosePoll:
		return &ClosePoll{}, nil
	default:
		return nil, errors.UnknownOperationType.Clone().SetData("type", ty)
	}
}
