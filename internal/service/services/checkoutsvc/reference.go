package checkoutsvc

import (
	"crypto/rand"
	"math/big"
)

const (
	whatsAppReferencePrefix = "WA-"
	referenceAlphabet       = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referenceLength         = 10
)

// NewWhatsAppReference mints a locally generated order reference for the
// manual path: a prefixed tag plus a random uppercase alphanumeric suffix.
func NewWhatsAppReference() string {
	suffix := make([]byte, referenceLength)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referenceAlphabet))))
		if err != nil {
			panic(err)
		}
		suffix[i] = referenceAlphabet[n.Int64()]
	}

	return whatsAppReferencePrefix + string(suffix)
}
