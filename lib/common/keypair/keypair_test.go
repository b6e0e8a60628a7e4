package keypair

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	kp := Random()
	networkID := []byte("test-network")
	hash := "8yTvL9VJ6KKtsUFM2MrNRBxWmLgCiQyX6ZqHXA8AMHjE"

	sig, err := MakeSignature(kp, networkID, hash)
	require.NoError(t, err)

	require.NoError(t, VerifySignature(kp.Address(), networkID, hash, sig))

	// other network
	require.Error(t, VerifySignature(kp.Address(), []byte("other-network"), hash, sig))

	// other signer
	require.Error(t, VerifySignature(Random().Address(), networkID, hash, sig))
}

func TestIsPublicAddress(t *testing.T) {
	kp := Random()

	require.True(t, IsPublicAddress(kp.Address()))
	require.False(t, IsPublicAddress(kp.Seed()))
	require.False(t, IsPublicAddress("showme"))
}
