package poll

import (
	"strings"
	"testing"
	"time"

	logging "github.com/inconshreveable/log15"
	"github.com/stretchr/testify/require"

	"boscoin.io/pollchain/lib/address"
	"boscoin.io/pollchain/lib/common/keypair"
	"boscoin.io/pollchain/lib/common/test"
	"boscoin.io/pollchain/lib/errors"
	"boscoin.io/pollchain/lib/storage"
)

func init() {
	SetLogging(logging.LvlDebug, test.LogHandler())
}

func TestCreatePoll(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	creator := keypair.Random().Address()
	now := time.Date(2018, 8, 25, 14, 12, 10, 0, time.UTC)

	p, err := Create(st, 1, "Coffee or tea?", creator, now)
	require.NoError(t, err)
	require.Equal(t, uint64(1), p.ID)
	require.Equal(t, "Coffee or tea?", p.Description)
	require.Equal(t, creator, p.Creator)
	require.Equal(t, uint64(0), p.YesVotes)
	require.Equal(t, uint64(0), p.NoVotes)
	require.Equal(t, now.Unix(), p.CreatedAt)
	require.True(t, p.IsActive)
	require.Equal(t, address.PollAddress(1), p.Address)

	fetched, err := Get(st, p.Address)
	require.NoError(t, err)
	require.Equal(t, p, fetched)

	byID, err := GetByID(st, 1)
	require.NoError(t, err)
	require.Equal(t, p, byID)

	exists, err := Exists(st, p.Address)
	require.NoError(t, err)
	require.True(t, exists)
}

func TestCreatePollDuplicatedID(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	p, _ := TestMakePoll(st, 1)

	other := keypair.Random().Address()
	_, err := Create(st, 1, "Tea or coffee?", other, time.Now())
	require.True(t, errors.RecordAlreadyExists.Is(err))

	fetched, err := Get(st, p.Address)
	require.NoError(t, err)
	require.Equal(t, p, fetched)
}

func TestCreatePollDescriptionLength(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	creator := keypair.Random().Address()

	{ // exactly the reserved length
		p, err := Create(st, 1, strings.Repeat("a", MaxDescriptionLength), creator, time.Now())
		require.NoError(t, err)
		require.Equal(t, MaxDescriptionLength, len(p.Description))
	}

	{ // over
		_, err := Create(st, 2, strings.Repeat("a", MaxDescriptionLength+1), creator, time.Now())
		require.True(t, errors.StorageBudgetExceeded.Is(err))

		exists, err := Exists(st, address.PollAddress(2))
		require.NoError(t, err)
		require.False(t, exists)
	}

	{ // empty description
		_, err := Create(st, 3, "", creator, time.Now())
		require.NoError(t, err)
	}
}

func TestCreatePollDescriptionEncoding(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	creator := keypair.Random().Address()

	{ // multibyte characters are counted in bytes and stored as they are
		description := strings.Repeat("é", MaxDescriptionLength/2)
		p, err := Create(st, 1, description, creator, time.Now())
		require.NoError(t, err)

		fetched, err := Get(st, p.Address)
		require.NoError(t, err)
		require.Equal(t, description, fetched.Description)
		require.Equal(t, MaxDescriptionLength, len(fetched.Description))
	}

	for i, description := range []string{
		strings.Repeat("\xff", MaxDescriptionLength),
		"Coffee or \xe2\x82?",
		"\xc3",
	} {
		id := uint64(i + 2)
		_, err := Create(st, id, description, creator, time.Now())
		require.True(t, errors.InvalidDescription.Is(err), "description: %q", description)

		exists, err := Exists(st, address.PollAddress(id))
		require.NoError(t, err)
		require.False(t, exists)
	}
}

func TestClosePoll(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	p, creator := TestMakePoll(st, 1)

	closed, err := Close(st, p.Address, creator.Address())
	require.NoError(t, err)
	require.False(t, closed.IsActive)

	fetched, err := Get(st, p.Address)
	require.NoError(t, err)
	require.False(t, fetched.IsActive)
	require.Equal(t, p.Description, fetched.Description)
	require.Equal(t, p.CreatedAt, fetched.CreatedAt)

	// closing again
	_, err = Close(st, p.Address, creator.Address())
	require.True(t, errors.PollNotActive.Is(err))
}

func TestClosePollByOther(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	p, _ := TestMakePoll(st, 1)

	_, err := Close(st, p.Address, keypair.Random().Address())
	require.True(t, errors.UnauthorizedCreator.Is(err))

	fetched, err := Get(st, p.Address)
	require.NoError(t, err)
	require.True(t, fetched.IsActive)
}

func TestClosePollCheckOrder(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	p, creator := TestMakePoll(st, 1)
	_, err := Close(st, p.Address, creator.Address())
	require.NoError(t, err)

	// non-creator on a closed poll is rejected as unauthorized
	_, err = Close(st, p.Address, keypair.Random().Address())
	require.True(t, errors.UnauthorizedCreator.Is(err))
}

func TestClosePollUnknown(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	_, err := Close(st, address.PollAddress(99), keypair.Random().Address())
	require.True(t, errors.PollDoesNotExist.Is(err))

	_, err = GetByID(st, 99)
	require.True(t, errors.PollDoesNotExist.Is(err))
}

func TestGetPollsByID(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	// ids saved out of order
	for _, id := range []uint64{10, 2, 1, 100} {
		TestMakePoll(st, id)
	}

	collect := func(options storage.ListOptions) (ids []uint64) {
		iterFunc, closeFunc := GetPollsByID(st, options)
		defer closeFunc()
		for {
			p, _, next := iterFunc()
			if !next {
				break
			}
			ids = append(ids, p.ID)
		}
		return
	}

	require.Equal(t, []uint64{1, 2, 10, 100}, collect(nil))
	require.Equal(t, []uint64{100, 10, 2, 1}, collect(storage.NewDefaultListOptions(true, nil, 0)))
	require.Equal(t, []uint64{2, 10}, collect(storage.NewDefaultListOptions(false, []byte(GetPollIDKey(2)), 2)))
}

func TestGetPollsByCreator(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	a := keypair.Random().Address()
	b := keypair.Random().Address()
	for _, id := range []uint64{7, 3, 12, 5} {
		creator := a
		if id == 5 {
			creator = b
		}
		_, err := Create(st, id, "Coffee or tea?", creator, time.Now())
		require.NoError(t, err)
	}

	collect := func(creator string, options storage.ListOptions) (ids []uint64) {
		iterFunc, closeFunc := GetPollsByCreator(st, creator, options)
		defer closeFunc()
		for {
			p, cursor, next := iterFunc()
			if !next {
				break
			}
			require.Equal(t, creator, p.Creator)
			require.Equal(t, GetPollCreatorKey(creator, p.ID), string(cursor))
			ids = append(ids, p.ID)
		}
		return
	}

	require.Equal(t, []uint64{3, 7, 12}, collect(a, nil))
	require.Equal(t, []uint64{12, 7, 3}, collect(a, storage.NewDefaultListOptions(true, nil, 0)))
	require.Equal(t, []uint64{7, 12}, collect(a, storage.NewDefaultListOptions(false, []byte(GetPollCreatorKey(a, 7)), 0)))
	require.Equal(t, []uint64{5}, collect(b, nil))
	require.Nil(t, collect(keypair.Random().Address(), nil))

	{ // a failed allocation leaves no index behind
		_, err := Create(st, 5, "Tea or coffee?", a, time.Now())
		require.True(t, errors.RecordAlreadyExists.Is(err))
		require.Equal(t, []uint64{3, 7, 12}, collect(a, nil))
	}
}
