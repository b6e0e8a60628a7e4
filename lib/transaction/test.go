package transaction

import (
	"boscoin.io/pollchain/lib/common/keypair"
	"boscoin.io/pollchain/lib/transaction/operation"
)

// TestMakeTransaction makes a signed transaction of n create-poll operations
// by a random source.
func TestMakeTransaction(networkID []byte, n int) (kp *keypair.Full, tx Transaction) {
	kp = keypair.Random()

	var ops []operation.Operation
	for i := 0; i < n; i++ {
		ops = append(ops, operation.MakeTestCreatePoll(uint64(i), "Coffee or tea?"))
	}

	tx, _ = NewTransaction(kp.Address(), NewSequenceID(), ops...)
	tx.Sign(kp, networkID)

	return
}

// TestMakeTransactionWithKeypair makes a transaction of ops signed by kp.
func TestMakeTransactionWithKeypair(networkID []byte, kp *keypair.Full, ops ...operation.Operation) (tx Transaction) {
	tx, _ = NewTransaction(kp.Address(), NewSequenceID(), ops...)
	tx.Sign(kp, networkID)

	return
}
