package common

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"
)

type hashableBody struct {
	ID          uint64
	Description string
	Active      bool
}

func TestUint64StructHashableRLP(t *testing.T) {
	_, err := rlp.EncodeToBytes(hashableBody{ID: 10, Description: "Coffee or tea?", Active: true})
	require.NoError(t, err)
}

func TestMakeObjectHash(t *testing.T) {
	a := hashableBody{ID: 1, Description: "Coffee or tea?"}
	b := hashableBody{ID: 2, Description: "Coffee or tea?"}

	ha, err := MakeObjectHash(a)
	require.NoError(t, err)
	require.Equal(t, 32, len(ha))

	require.Equal(t, ha, MustMakeObjectHash(a))
	require.NotEqual(t, ha, MustMakeObjectHash(b))
	require.NotEmpty(t, MustMakeObjectHashString(a))
}
