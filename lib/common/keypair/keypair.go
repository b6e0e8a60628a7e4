//
// Encapsulate Stellar's keypair package
//
// Provides additional wrapper and convenience functions for signing and
// verifying ledger transactions.
//
package keypair

import (
	stellar "github.com/stellar/go/keypair"
)

// Aliases to stellar types
type Full = stellar.Full
type KP = stellar.KP

// Aliases to stellar functions
var Parse = stellar.Parse
var RandomCanFail = stellar.Random
var Master = stellar.Master

// MakeSignature signs the transaction hash within the given network.
func MakeSignature(kp KP, networkID []byte, hash string) ([]byte, error) {
	return kp.Sign(signedPayload(networkID, hash))
}

// VerifySignature checks that signature was made by the owner of address
// over hash within the given network.
func VerifySignature(address string, networkID []byte, hash string, signature []byte) error {
	kp, err := Parse(address)
	if err != nil {
		return err
	}

	return kp.Verify(signedPayload(networkID, hash), signature)
}

// IsPublicAddress reports whether s is a valid public (non secret) address.
func IsPublicAddress(s string) bool {
	kp, err := Parse(s)
	if err != nil {
		return false
	}

	_, isFull := kp.(*Full)
	return !isFull
}

func signedPayload(networkID []byte, hash string) []byte {
	b := make([]byte, 0, len(networkID)+len(hash))
	b = append(b, networkID...)
	return append(b, []byte(hash)...)
}
