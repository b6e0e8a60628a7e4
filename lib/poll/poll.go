package poll

import (
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"boscoin.io/pollchain/lib/address"
	"boscoin.io/pollchain/lib/common"
	"boscoin.io/pollchain/lib/errors"
	"boscoin.io/pollchain/lib/storage"
)

// Poll is stored under its derived address; the id and creator indices
// keep polls listable in id order.
//
// models
//  * 'address'
// 	- 'poll-<Poll.Address>': `Poll`
//  * 'id'
// 	- 'poll-id-<zero padded Poll.ID>': `Poll.Address`
//  * 'creator'
// 	- 'poll-creator-<Poll.Creator>-<zero padded Poll.ID>': `Poll.Address`
const (
	PollPrefixAddress string = "poll-"
	PollPrefixID      string = "poll-id-"
	PollPrefixCreator string = "poll-creator-"
)

// MaxDescriptionLength is the number of description bytes reserved in a
// poll record.
const MaxDescriptionLength int = 200

type Poll struct {
	ID          uint64          `json:"id"`
	Description string          `json:"description"`
	Creator     string          `json:"creator"`
	YesVotes    uint64          `json:"yes_votes"`
	NoVotes     uint64          `json:"no_votes"`
	CreatedAt   int64           `json:"created_at"`
	IsActive    bool            `json:"is_active"`
	Address     address.Address `json:"address"`
}

// Create allocates a new active poll at the address derived from id. The
// allocation fails with `errors.RecordAlreadyExists` when the id was used
// before, leaving the existing poll untouched.
func Create(st *storage.LevelDBBackend, id uint64, description, creator string, now time.Time) (p *Poll, err error) {
	// json replaces invalid bytes by U+FFFD, which would grow the stored
	// description past the checked length.
	if !utf8.ValidString(description) {
		err = errors.InvalidDescription.Clone().SetData("poll", id)
		return
	}
	if len(description) > MaxDescriptionLength {
		err = errors.StorageBudgetExceeded.Clone().
			SetData("length", len(description)).
			SetData("max", MaxDescriptionLength)
		return
	}

	p = &Poll{
		ID:          id,
		Description: description,
		Creator:     creator,
		YesVotes:    0,
		NoVotes:     0,
		CreatedAt:   now.Unix(),
		IsActive:    true,
		Address:     address.PollAddress(id),
	}

	if err = st.New(GetPollKey(p.Address), p); err != nil {
		p = nil
		return
	}
	if err = st.News(
		storage.Item{Key: GetPollIDKey(id), Value: p.Address},
		storage.Item{Key: GetPollCreatorKey(creator, id), Value: p.Address},
	); err != nil {
		p = nil
		return
	}

	log.Info("poll created", "id", id, "address", p.Address, "creator", creator)

	return
}

// Close stops voting on the poll. Only the creator may close, and only an
// active poll can be closed; the creator check comes first.
func Close(st *storage.LevelDBBackend, pollAddress address.Address, caller string) (p *Poll, err error) {
	if p, err = Get(st, pollAddress); err != nil {
		return
	}

	if !address.Authorize(p.Creator, caller) {
		err = errors.UnauthorizedCreator.Clone().SetData("poll", pollAddress)
		return
	}

	if !p.IsActive {
		err = errors.PollNotActive.Clone().SetData("poll", pollAddress)
		return
	}

	p.IsActive = false
	if err = p.Save(st); err != nil {
		return
	}

	log.Info("poll closed", "id", p.ID, "address", p.Address)

	return
}

// Save overwrites the stored poll.
func (p *Poll) Save(st *storage.LevelDBBackend) error {
	return st.Set(GetPollKey(p.Address), p)
}

// TotalVotes is the number of accepted ballots of the poll.
func (p *Poll) TotalVotes() uint64 {
	return p.YesVotes + p.NoVotes
}

func (p *Poll) String() string {
	return string(common.MustMarshalJSON(p))
}

func (p *Poll) Serialize() ([]byte, error) {
	return common.JSONMarshalWithoutEscapeHTML(p)
}

func GetPollKey(addr address.Address) string {
	return fmt.Sprintf("%s%s", PollPrefixAddress, addr)
}

func GetPollIDKey(id uint64) string {
	return fmt.Sprintf("%s%020d", PollPrefixID, id)
}

func GetPollCreatorKey(creator string, id uint64) string {
	return fmt.Sprintf("%s%s-%020d", PollPrefixCreator, creator, id)
}

func getPollCreatorPrefix(creator string) string {
	return fmt.Sprintf("%s%s-", PollPrefixCreator, creator)
}

func Exists(st *storage.LevelDBBackend, addr address.Address) (bool, error) {
	return st.Has(GetPollKey(addr))
}

func Get(st *storage.LevelDBBackend, addr address.Address) (p *Poll, err error) {
	if err = st.Get(GetPollKey(addr), &p); err != nil {
		if errors.StorageRecordDoesNotExist.Is(err) {
			err = errors.PollDoesNotExist.Clone().SetData("poll", addr)
		}
		return nil, err
	}

	return
}

func GetByID(st *storage.LevelDBBackend, id uint64) (*Poll, error) {
	return Get(st, address.PollAddress(id))
}

func iteratePollAddresses(st *storage.LevelDBBackend, prefix string, options storage.ListOptions) (func() (address.Address, []byte, bool), func()) {
	iterFunc, closeFunc := st.GetIterator(prefix, options)

	return (func() (address.Address, []byte, bool) {
			item, hasNext := iterFunc()
			if !hasNext {
				return "", nil, false
			}

			var addr address.Address
			json.Unmarshal(item.Value, &addr)
			return addr, item.Key, hasNext
		}), (func() {
			closeFunc()
		})
}

func iteratePolls(st *storage.LevelDBBackend, prefix string, options storage.ListOptions) (func() (*Poll, []byte, bool), func()) {
	iterFunc, closeFunc := iteratePollAddresses(st, prefix, options)

	return (func() (*Poll, []byte, bool) {
			addr, cursor, hasNext := iterFunc()
			if !hasNext {
				return nil, nil, false
			}

			p, err := Get(st, addr)
			if err != nil {
				log.Error("indexed poll is missing", "address", addr, "error", err)
				return nil, nil, false
			}
			return p, cursor, hasNext
		}), (func() {
			closeFunc()
		})
}

// GetPollAddressesByID iterates poll addresses in id order. The cursor of
// options is an id index key, see `GetPollIDKey`.
func GetPollAddressesByID(st *storage.LevelDBBackend, options storage.ListOptions) (func() (address.Address, []byte, bool), func()) {
	return iteratePollAddresses(st, PollPrefixID, options)
}

// GetPollsByID iterates polls in id order, with the index key of each poll
// for paging.
func GetPollsByID(st *storage.LevelDBBackend, options storage.ListOptions) (func() (*Poll, []byte, bool), func()) {
	return iteratePolls(st, PollPrefixID, options)
}

// GetPollsByCreator iterates the polls created by creator in id order. The
// cursor of options is a creator index key, see `GetPollCreatorKey`.
func GetPollsByCreator(st *storage.LevelDBBackend, creator string, options storage.ListOptions) (func() (*Poll, []byte, bool), func()) {
	return iteratePolls(st, getPollCreatorPrefix(creator), options)
}
