package errors

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestErrorsClone(t *testing.T) {
	require.Equal(t, PollNotActive, PollNotActive)

	e := PollNotActive.Clone()
	e0 := e.Clone()
	require.NotEqual(t, fmt.Sprintf("%p", e), fmt.Sprintf("%p", e0))

	{
		e.Code = 200
		require.NotEqual(t, e.Code, e0.Code)
	}

	{
		e0.SetData("showme", "killme")
		require.NotEqual(t, e.Data, e0.Data)
		require.Empty(t, PollNotActive.Data)
	}
}

func TestErrorsIs(t *testing.T) {
	cloned := RecordAlreadyExists.Clone().SetData("key", "poll-findme")
	require.True(t, RecordAlreadyExists.Is(cloned))
	require.False(t, PollNotActive.Is(cloned))
	require.False(t, PollNotActive.Is(fmt.Errorf("poll is not active")))
	require.True(t, RecordAlreadyExists.Is(pkgerrors.Wrap(cloned, "failed to create poll")))
}

func TestErrorsRLP(t *testing.T) {
	{
		_, err := rlp.EncodeToBytes(UnauthorizedCreator)
		require.NoError(t, err)
	}

	{ // with `SetData()`, the rlp encoded value must be different
		encoded, err := rlp.EncodeToBytes(UnauthorizedCreator)
		require.NoError(t, err)

		e := UnauthorizedCreator.Clone()
		e.SetData("findme", "killme")
		encoded0, err := rlp.EncodeToBytes(e)
		require.NoError(t, err)
		require.NotEqual(t, encoded, encoded0)
	}
}

func TestErrorsSerialize(t *testing.T) {
	b, err := PollNotActive.Serialize()
	require.NoError(t, err)
	require.Equal(t, `{"code":110,"message":"poll is not active"}`, string(b))
	require.Equal(t, string(b), PollNotActive.Error())
}
