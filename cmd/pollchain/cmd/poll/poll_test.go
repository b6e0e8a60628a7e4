package poll

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/pollchain/cmd/pollchain/common"
	"boscoin.io/pollchain/lib/client"
	"boscoin.io/pollchain/lib/address"
	libcommon "boscoin.io/pollchain/lib/common"
	"boscoin.io/pollchain/lib/common/keypair"
	"boscoin.io/pollchain/lib/transaction/operation"
)

func TestParsePollAddress(t *testing.T) {
	addr, err := ParsePollAddress("3")
	require.NoError(t, err)
	require.Equal(t, address.PollAddress(3), addr)

	addr, err = ParsePollAddress(address.PollAddress(4).String())
	require.NoError(t, err)
	require.Equal(t, address.PollAddress(4), addr)

	_, err = ParsePollAddress("showme")
	require.Error(t, err)
}

func TestParseOption(t *testing.T) {
	for _, s := range []string{"yes", "Y", "true"} {
		o, err := ParseOption(s)
		require.NoError(t, err)
		require.True(t, o)
	}
	for _, s := range []string{"no", "N", "false"} {
		o, err := ParseOption(s)
		require.NoError(t, err)
		require.False(t, o)
	}

	_, err := ParseOption("maybe")
	require.Error(t, err)
}

func TestParseArgs(t *testing.T) {
	{
		_, body, err := parseCreateArgs([]string{"1", "Coffee", "or", "tea?"})
		require.NoError(t, err)
		require.Equal(t, operation.NewCreatePoll(1, "Coffee or tea?"), body)

		flagName, _, err := parseCreateArgs([]string{"first", "Coffee or tea?"})
		require.Error(t, err)
		require.Equal(t, "<id>", flagName)
	}

	{
		_, body, err := parseVoteArgs([]string{"1", "no"})
		require.NoError(t, err)
		require.Equal(t, operation.NewVote(address.PollAddress(1), false), body)

		flagName, _, err := parseVoteArgs([]string{"1", "maybe"})
		require.Error(t, err)
		require.Equal(t, "<yes | no>", flagName)
	}
}

func TestMakeTransaction(t *testing.T) {
	kp := keypair.Random()
	flags := &common.ClientFlags{NetworkID: "pollchain-unittest", SecretSeed: kp.Seed()}

	_, tx, err := makeTransaction(flags, operation.NewCreatePoll(1, "Coffee or tea?"), operation.NewVote(address.PollAddress(1), true))
	require.NoError(t, err)
	require.Equal(t, kp.Address(), tx.B.Source)
	require.Equal(t, 2, len(tx.B.Operations))
	require.Equal(t, operation.TypeVote, tx.B.Operations[1].H.Type)

	require.NoError(t, tx.IsWellFormed(libcommon.NewTestConfig()))
}

func TestListQueries(t *testing.T) {
	queries, err := listQueries("", 0, false)
	require.NoError(t, err)
	require.Empty(t, queries)

	creator := keypair.Random().Address()
	queries, err = listQueries(creator, 5, true)
	require.NoError(t, err)
	require.Equal(t, []client.Q{
		{Key: client.QueryCreator, Value: creator},
		{Key: client.QueryLimit, Value: "5"},
		{Key: client.QueryReverse, Value: "true"},
	}, queries)

	_, err = listQueries("showme", 0, false)
	require.Error(t, err)

	// a secret seed is not a public address
	_, err = listQueries(keypair.Random().Seed(), 0, false)
	require.Error(t, err)
}
