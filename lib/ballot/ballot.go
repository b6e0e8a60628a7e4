package ballot

import (
	"encoding/json"
	"fmt"

	"boscoin.io/pollchain/lib/address"
	"boscoin.io/pollchain/lib/common"
	"boscoin.io/pollchain/lib/errors"
	"boscoin.io/pollchain/lib/poll"
	"boscoin.io/pollchain/lib/storage"
)

// Ballot is the vote of one voter in one poll. Its address is derived from
// both, so a second ballot of the same voter collides with the first.
//
// models
//  * 'address'
// 	- 'ballot-<Ballot.Address>': `Ballot`
//  * 'poll'
// 	- 'ballot-poll-<Ballot.Poll>-<Ballot.Voter>': `Ballot.Address`
const (
	BallotPrefixAddress string = "ballot-"
	BallotPrefixPoll    string = "ballot-poll-"
)

type Ballot struct {
	Poll    address.Address `json:"poll"`
	Voter   string          `json:"voter"`
	Option  bool            `json:"option"`
	Address address.Address `json:"address"`
}

// Cast records voter's choice and increments the matching counter of the
// poll. Both writes go to st; run it inside a storage transaction so that
// they are committed or discarded together.
func Cast(st *storage.LevelDBBackend, pollAddress address.Address, voter string, option bool) (b *Ballot, p *poll.Poll, err error) {
	if p, err = poll.Get(st, pollAddress); err != nil {
		return
	}

	if !p.IsActive {
		err = errors.PollNotActive.Clone().SetData("poll", pollAddress)
		return
	}

	b = &Ballot{
		Poll:    pollAddress,
		Voter:   voter,
		Option:  option,
		Address: address.BallotAddress(pollAddress, voter),
	}

	if err = st.New(GetBallotKey(b.Address), b); err != nil {
		b = nil
		return
	}
	if err = st.New(GetBallotPollKey(pollAddress, voter), b.Address); err != nil {
		b = nil
		return
	}

	if option {
		p.YesVotes++
	} else {
		p.NoVotes++
	}
	if err = p.Save(st); err != nil {
		b = nil
		return
	}

	log.Info("vote cast", "id", p.ID, "poll", pollAddress, "option", option)

	return
}

func (b *Ballot) String() string {
	return string(common.MustMarshalJSON(b))
}

func (b *Ballot) Serialize() ([]byte, error) {
	return json.Marshal(b)
}

// OptionString is the human readable choice.
func (b *Ballot) OptionString() string {
	if b.Option {
		return "yes"
	}

	return "no"
}

func GetBallotKey(addr address.Address) string {
	return fmt.Sprintf("%s%s", BallotPrefixAddress, addr)
}

func GetBallotPollKeyPrefix(pollAddress address.Address) string {
	return fmt.Sprintf("%s%s-", BallotPrefixPoll, pollAddress)
}

func GetBallotPollKey(pollAddress address.Address, voter string) string {
	return fmt.Sprintf("%s%s", GetBallotPollKeyPrefix(pollAddress), voter)
}

func Exists(st *storage.LevelDBBackend, addr address.Address) (bool, error) {
	return st.Has(GetBallotKey(addr))
}

func Get(st *storage.LevelDBBackend, addr address.Address) (b *Ballot, err error) {
	if err = st.Get(GetBallotKey(addr), &b); err != nil {
		if errors.StorageRecordDoesNotExist.Is(err) {
			err = errors.BallotDoesNotExist.Clone().SetData("ballot", addr)
		}
		return nil, err
	}

	return
}

// GetByVoter returns the ballot of voter in the poll.
func GetByVoter(st *storage.LevelDBBackend, pollAddress address.Address, voter string) (*Ballot, error) {
	return Get(st, address.BallotAddress(pollAddress, voter))
}

// GetBallotsByPoll iterates the ballots of a poll ordered by voter, with the
// index key of each ballot for paging.
func GetBallotsByPoll(st *storage.LevelDBBackend, pollAddress address.Address, options storage.ListOptions) (func() (*Ballot, []byte, bool), func()) {
	iterFunc, closeFunc := st.GetIterator(GetBallotPollKeyPrefix(pollAddress), options)

	return (func() (*Ballot, []byte, bool) {
			item, hasNext := iterFunc()
			if !hasNext {
				return nil, nil, false
			}

			var addr address.Address
			json.Unmarshal(item.Value, &addr)

			b, err := Get(st, addr)
			if err != nil {
				log.Error("indexed ballot is missing", "address", addr, "error", err)
				return nil, nil, false
			}
			return b, item.Key, hasNext
		}), (func() {
			closeFunc()
		})
}

// CountByPoll counts the stored ballots of a poll by option.
func CountByPoll(st *storage.LevelDBBackend, pollAddress address.Address) (yes, no uint64) {
	iterFunc, closeFunc := GetBallotsByPoll(st, pollAddress, nil)
	defer closeFunc()

	for {
		b, _, next := iterFunc()
		if !next {
			break
		}
		if b.Option {
			yes++
		} else {
			no++
		}
	}

	return
}
