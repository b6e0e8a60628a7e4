package poll

import (
	"time"

	"boscoin.io/pollchain/lib/common/keypair"
	"boscoin.io/pollchain/lib/storage"
)

// TestMakePoll creates an active poll by a random creator.
func TestMakePoll(st *storage.LevelDBBackend, id uint64) (*Poll, *keypair.Full) {
	creator := keypair.Random()

	p, err := Create(st, id, "Coffee or tea?", creator.Address(), time.Now())
	if err != nil {
		panic(err)
	}

	return p, creator
}
