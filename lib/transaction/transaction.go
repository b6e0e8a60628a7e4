package transaction

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"

	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/pollchain/lib/common"
	"boscoin.io/pollchain/lib/common/keypair"
	"boscoin.io/pollchain/lib/errors"
	"boscoin.io/pollchain/lib/transaction/operation"
)

const (
	TypeTransaction = "transaction"
	Version         = "1"
)

// Transaction is the signed envelope of operations submitted by one source.
// The source is the caller identity of every operation in it.
type Transaction struct {
	T string
	H Header
	B Body
}

type Header struct {
	Version   string `json:"version"`
	Created   string `json:"created"`
	Hash      string `json:"hash"`
	Signature string `json:"signature"`
}

// Body is hashed and signed. SequenceID tells apart the transactions of the
// same source carrying the same operations, so only the exact resend of a
// signed transaction is caught as a replay.
type Body struct {
	Source     string                `json:"source"`
	SequenceID uint64                `json:"sequence_id"`
	Operations []operation.Operation `json:"operations"`
}

func (tb Body) MakeHash() []byte {
	return common.MustMakeObjectHash(tb)
}

func (tb Body) MakeHashString() string {
	return base58.Encode(tb.MakeHash())
}

// NewSequenceID gives a random sequence id for a new transaction.
func NewSequenceID() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}

	return binary.LittleEndian.Uint64(b[:])
}

func NewTransaction(source string, sequenceID uint64, ops ...operation.Operation) (tx Transaction, err error) {
	if len(ops) < 1 {
		err = errors.TransactionEmptyOperations
		return
	}

	txBody := Body{
		Source:     source,
		SequenceID: sequenceID,
		Operations: ops,
	}

	tx = Transaction{
		T: TypeTransaction,
		H: Header{
			Version: Version,
			Created: common.NowISO8601(),
			Hash:    txBody.MakeHashString(),
		},
		B: txBody,
	}

	return
}

var WellFormedCheckerFuncs = []common.CheckerFunc{
	CheckSource,
	CheckOverOperationsLimit,
	CheckOperations,
	CheckHash,
	CheckVerifySignature,
}

func (tx Transaction) IsWellFormed(conf common.Config) (err error) {
	checker := &Checker{
		DefaultChecker:  common.NewDefaultChecker(WellFormedCheckerFuncs...),
		NetworkID:       conf.NetworkID,
		Transaction:     tx,
		OperationsLimit: conf.OpsLimit,
		Conf:            conf,
	}
	return common.RunChecker(checker, nil)
}

func (tx Transaction) GetType() string {
	return tx.T
}

func (tx Transaction) GetHash() string {
	return tx.H.Hash
}

func (tx Transaction) Source() string {
	return tx.B.Source
}

func (tx Transaction) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(tx)
	return
}

func (tx Transaction) String() string {
	encoded, _ := json.MarshalIndent(tx, "", "  ")
	return string(encoded)
}

func (tx *Transaction) Sign(kp keypair.KP, networkID []byte) {
	tx.H.Hash = tx.B.MakeHashString()
	signature, _ := keypair.MakeSignature(kp, networkID, tx.H.Hash)

	tx.H.Signature = base58.Encode(signature)
}
