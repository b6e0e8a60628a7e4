// Package address derives the deterministic storage addresses of polls and
// ballots, and decides who may act on a stored record.
package address

import (
	"encoding/binary"

	"github.com/btcsuite/btcutil/base58"
	"golang.org/x/crypto/sha3"

	"boscoin.io/pollchain/lib/common"
)

// Namespace scopes every derived address to this program; the same seeds
// under another namespace give unrelated addresses.
var Namespace = []byte("pollchain")

const (
	TagPoll = "poll"
	TagVote = "vote"
)

// Address is the base58 encoded 32 byte digest of the derivation seeds.
type Address string

func (a Address) String() string {
	return string(a)
}

func (a Address) Bytes() []byte {
	return base58.Decode(string(a))
}

// IsValid reports whether a decodes to a 32 byte digest.
func (a Address) IsValid() bool {
	return len(a.Bytes()) == sha3.New256().Size()
}

// Derive hashes the namespace, the tag and each seed component; components
// are length prefixed so that different splits of the same bytes never
// collide.
func Derive(tag string, components ...[]byte) Address {
	h := sha3.New256()

	write := func(b []byte) {
		var l [4]byte
		binary.BigEndian.PutUint32(l[:], uint32(len(b)))
		h.Write(l[:])
		h.Write(b)
	}

	write(Namespace)
	write([]byte(tag))
	for _, c := range components {
		write(c)
	}

	return Address(base58.Encode(h.Sum(nil)))
}

// PollAddress is the address of the poll numbered id.
func PollAddress(id uint64) Address {
	return Derive(TagPoll, common.EncodeUint64LittleEndian(id))
}

// BallotAddress is the address of voter's ballot in poll.
func BallotAddress(poll Address, voter string) Address {
	return Derive(TagVote, poll.Bytes(), []byte(voter))
}

// Authorize reports whether caller is the identity stored in a record.
func Authorize(stored, caller string) bool {
	return len(stored) > 0 && stored == caller
}
