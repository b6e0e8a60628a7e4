package transaction

import (
	"fmt"

	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/pollchain/lib/common"
	"boscoin.io/pollchain/lib/common/keypair"
	"boscoin.io/pollchain/lib/errors"
	"boscoin.io/pollchain/lib/transaction/operation"
)

type Checker struct {
	common.DefaultChecker

	NetworkID       []byte
	Transaction     Transaction
	OperationsLimit int
	Conf            common.Config
}

func CheckSource(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)
	if !keypair.IsPublicAddress(checker.Transaction.B.Source) {
		err = errors.BadPublicAddress
		return
	}

	return
}

func CheckOverOperationsLimit(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)

	if len(checker.Transaction.B.Operations) > checker.OperationsLimit {
		err = errors.TransactionHasOverMaxOperations
		return
	}

	return
}

// CheckOperations rejects empty transactions, malformed operations and
// operations repeating the same type on the same poll.
func CheckOperations(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)

	if len(checker.Transaction.B.Operations) < 1 {
		err = errors.TransactionEmptyOperations
		return
	}

	var hashes []string
	for _, op := range checker.Transaction.B.Operations {
		if !operation.IsValidOperationType(string(op.H.Type)) {
			err = errors.UnknownOperationType.Clone().SetData("type", op.H.Type)
			return
		}
		if err = op.IsWellFormed(checker.Conf); err != nil {
			return
		}

		if top, ok := op.B.(operation.Targetable); ok {
			u := fmt.Sprintf("%s-%s", op.H.Type, top.TargetAddress())
			if _, found := common.InStringArray(hashes, u); found {
				err = errors.DuplicatedOperation
				return
			}

			hashes = append(hashes, u)
		}
	}

	return
}

func CheckHash(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)

	if checker.Transaction.H.Hash != checker.Transaction.B.MakeHashString() {
		err = errors.HashDoesNotMatch
		return
	}

	return
}

func CheckVerifySignature(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)

	err = keypair.VerifySignature(
		checker.Transaction.B.Source,
		checker.NetworkID,
		checker.Transaction.H.Hash,
		base58.Decode(checker.Transaction.H.Signature),
	)
	if err != nil {
		err = errors.SignatureVerificationFailed
		return
	}

	return
}
