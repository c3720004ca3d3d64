package identity

import (
	"crypto/rand"
	"math/big"
)

const (
	passwordLength  = 12
	passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()_+~`|}{[]:;?><,./-="
)

// GenerateRandomPassword returns a throwaway credential for account
// creation. The provider requires a password up front even though the real
// one is set through the recovery-link flow, so this value is never shown
// to anyone.
func GenerateRandomPassword() string {
	max := big.NewInt(int64(len(passwordCharset)))

	out := make([]byte, passwordLength)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err) // crypto/rand only fails when the OS entropy source is broken
		}
		out[i] = passwordCharset[n.Int64()]
	}

	return string(out)
}
