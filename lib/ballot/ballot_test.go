package ballot

import (
	"testing"
	"time"

	logging "github.com/inconshreveable/log15"
	"github.com/stretchr/testify/require"

	"boscoin.io/pollchain/lib/address"
	"boscoin.io/pollchain/lib/common/keypair"
	"boscoin.io/pollchain/lib/common/test"
	"boscoin.io/pollchain/lib/errors"
	"boscoin.io/pollchain/lib/poll"
	"boscoin.io/pollchain/lib/storage"
)

func init() {
	SetLogging(logging.LvlDebug, test.LogHandler())
	poll.SetLogging(logging.LvlDebug, test.LogHandler())
}

func requireCounters(t *testing.T, st *storage.LevelDBBackend, pollAddress address.Address, yes, no uint64) {
	p, err := poll.Get(st, pollAddress)
	require.NoError(t, err)
	require.Equal(t, yes, p.YesVotes, "yes votes")
	require.Equal(t, no, p.NoVotes, "no votes")

	countedYes, countedNo := CountByPoll(st, pollAddress)
	require.Equal(t, p.YesVotes, countedYes)
	require.Equal(t, p.NoVotes, countedNo)
}

func TestCast(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	p, _ := poll.TestMakePoll(st, 1)
	voter := keypair.Random().Address()

	b, updated, err := Cast(st, p.Address, voter, true)
	require.NoError(t, err)
	require.Equal(t, p.Address, b.Poll)
	require.Equal(t, voter, b.Voter)
	require.True(t, b.Option)
	require.Equal(t, "yes", b.OptionString())
	require.Equal(t, address.BallotAddress(p.Address, voter), b.Address)
	require.Equal(t, uint64(1), updated.YesVotes)

	fetched, err := Get(st, b.Address)
	require.NoError(t, err)
	require.Equal(t, b, fetched)

	byVoter, err := GetByVoter(st, p.Address, voter)
	require.NoError(t, err)
	require.Equal(t, b, byVoter)

	requireCounters(t, st, p.Address, 1, 0)
}

func TestCastTwice(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	p, _ := poll.TestMakePoll(st, 1)
	voter := keypair.Random().Address()

	_, _, err := Cast(st, p.Address, voter, true)
	require.NoError(t, err)

	// same option
	_, _, err = Cast(st, p.Address, voter, true)
	require.True(t, errors.RecordAlreadyExists.Is(err))

	// changing the option
	_, _, err = Cast(st, p.Address, voter, false)
	require.True(t, errors.RecordAlreadyExists.Is(err))

	requireCounters(t, st, p.Address, 1, 0)

	b, err := GetByVoter(st, p.Address, voter)
	require.NoError(t, err)
	require.True(t, b.Option)
}

func TestCastOnClosedPoll(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	p, creator := poll.TestMakePoll(st, 1)
	_, _, err := Cast(st, p.Address, keypair.Random().Address(), false)
	require.NoError(t, err)

	_, err = poll.Close(st, p.Address, creator.Address())
	require.NoError(t, err)

	voter := keypair.Random().Address()
	_, _, err = Cast(st, p.Address, voter, true)
	require.True(t, errors.PollNotActive.Is(err))

	exists, err := Exists(st, address.BallotAddress(p.Address, voter))
	require.NoError(t, err)
	require.False(t, exists)

	requireCounters(t, st, p.Address, 0, 1)
}

func TestCastOnUnknownPoll(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	_, _, err := Cast(st, address.PollAddress(1), keypair.Random().Address(), true)
	require.True(t, errors.PollDoesNotExist.Is(err))
}

func TestCastByCreator(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	p, creator := poll.TestMakePoll(st, 1)

	_, _, err := Cast(st, p.Address, creator.Address(), true)
	require.NoError(t, err)

	requireCounters(t, st, p.Address, 1, 0)
}

func TestGetUnknownBallot(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	_, err := Get(st, address.BallotAddress(address.PollAddress(1), keypair.Random().Address()))
	require.True(t, errors.BallotDoesNotExist.Is(err))
}

func TestBallotsAreScopedByPoll(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	p1, _ := poll.TestMakePoll(st, 1)
	p2, _ := poll.TestMakePoll(st, 2)

	voter := keypair.Random().Address()
	_, _, err := Cast(st, p1.Address, voter, true)
	require.NoError(t, err)
	_, _, err = Cast(st, p2.Address, voter, false)
	require.NoError(t, err)

	requireCounters(t, st, p1.Address, 1, 0)
	requireCounters(t, st, p2.Address, 0, 1)
}

func TestGetBallotsByPoll(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	p, _ := poll.TestMakePoll(st, 1)

	voters := map[string]bool{}
	for i := 0; i < 5; i++ {
		voter := keypair.Random().Address()
		voters[voter] = i%2 == 0
		_, _, err := Cast(st, p.Address, voter, voters[voter])
		require.NoError(t, err)
	}

	iterFunc, closeFunc := GetBallotsByPoll(st, p.Address, nil)
	var fetched []*Ballot
	var lastVoter string
	for {
		b, _, next := iterFunc()
		if !next {
			break
		}
		require.True(t, lastVoter < b.Voter, "ballots are ordered by voter")
		lastVoter = b.Voter
		fetched = append(fetched, b)
	}
	closeFunc()

	require.Equal(t, len(voters), len(fetched))
	for _, b := range fetched {
		require.Equal(t, voters[b.Voter], b.Option)
	}

	requireCounters(t, st, p.Address, 3, 2)
}

// Coffee or tea: the lifecycle of one poll from creation to close.
func TestPollLifecycle(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	a := keypair.Random().Address()
	b := keypair.Random().Address()
	c := keypair.Random().Address()
	d := keypair.Random().Address()

	p, err := poll.Create(st, 1, "Coffee or tea?", a, time.Now())
	require.NoError(t, err)
	requireCounters(t, st, p.Address, 0, 0)

	_, _, err = Cast(st, p.Address, b, true)
	require.NoError(t, err)
	requireCounters(t, st, p.Address, 1, 0)

	_, _, err = Cast(st, p.Address, c, false)
	require.NoError(t, err)
	requireCounters(t, st, p.Address, 1, 1)

	_, _, err = Cast(st, p.Address, b, false)
	require.True(t, errors.RecordAlreadyExists.Is(err))
	requireCounters(t, st, p.Address, 1, 1)

	_, err = poll.Close(st, p.Address, a)
	require.NoError(t, err)

	_, _, err = Cast(st, p.Address, d, true)
	require.True(t, errors.PollNotActive.Is(err))
	requireCounters(t, st, p.Address, 1, 1)

	_, err = poll.Close(st, p.Address, a)
	require.True(t, errors.PollNotActive.Is(err))

	closed, err := poll.Get(st, p.Address)
	require.NoError(t, err)
	require.False(t, closed.IsActive)
	require.Equal(t, "Coffee or tea?", closed.Description)
	require.Equal(t, a, closed.Creator)
}
