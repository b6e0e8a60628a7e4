package transaction

import (
	"fmt"

	"boscoin.io/pollchain/lib/address"
	"boscoin.io/pollchain/lib/common"
	"boscoin.io/pollchain/lib/errors"
	"boscoin.io/pollchain/lib/storage"
	"boscoin.io/pollchain/lib/transaction/operation"
)

// Receipt is the record of an applied transaction. Its key is derived from
// the transaction hash, so a transaction is applied at most once.
//
// models
// 	- 'tx-<Receipt.Hash>': `Receipt`
const ReceiptPrefixHash string = "tx-"

type Receipt struct {
	Hash       string                    `json:"hash"`
	Source     string                    `json:"source"`
	SequenceID uint64                    `json:"sequence_id"`
	Created    string                    `json:"created"`
	Confirmed  string                    `json:"confirmed"`
	Operations []operation.OperationType `json:"operations"`
	Targets    []address.Address         `json:"targets"`
}

func NewReceipt(tx Transaction, confirmed string) *Receipt {
	r := &Receipt{
		Hash:       tx.H.Hash,
		Source:     tx.B.Source,
		SequenceID: tx.B.SequenceID,
		Created:    tx.H.Created,
		Confirmed:  confirmed,
	}

	for _, op := range tx.B.Operations {
		r.Operations = append(r.Operations, op.H.Type)
		if top, ok := op.B.(operation.Targetable); ok {
			r.Targets = append(r.Targets, top.TargetAddress())
		}
	}

	return r
}

func (r *Receipt) String() string {
	return string(common.MustMarshalJSON(r))
}

func GetReceiptKey(hash string) string {
	return fmt.Sprintf("%s%s", ReceiptPrefixHash, hash)
}

// Save fails with `errors.TransactionAlreadyExists` when the transaction
// was applied before.
func (r *Receipt) Save(st *storage.LevelDBBackend) (err error) {
	if err = st.New(GetReceiptKey(r.Hash), r); err != nil {
		if errors.RecordAlreadyExists.Is(err) {
			err = errors.TransactionAlreadyExists.Clone().SetData("hash", r.Hash)
		}
		return
	}

	return
}

func ExistsReceipt(st *storage.LevelDBBackend, hash string) (bool, error) {
	return st.Has(GetReceiptKey(hash))
}

func GetReceipt(st *storage.LevelDBBackend, hash string) (r *Receipt, err error) {
	if err = st.Get(GetReceiptKey(hash), &r); err != nil {
		if errors.StorageRecordDoesNotExist.Is(err) {
			err = errors.TransactionDoesNotExist.Clone().SetData("hash", hash)
		}
		return nil, err
	}

	return
}
