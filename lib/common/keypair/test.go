package keypair

import (
	stellar "github.com/stellar/go/keypair"
)

// Random makes a new keypair for test code; it panics instead of failing.
func Random() *Full {
	if kp, err := stellar.Random(); err != nil {
		panic(err)
	} else {
		return kp
	}
}
