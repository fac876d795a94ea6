// Package ids generates the identifiers used as primary keys and bearer
// tokens across the service.
package ids

import "math/rand/v2"

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Length is the fixed size of every generated identifier. At 62^30 the
// collision probability is negligible, so no uniqueness round-trip is made;
// a collision would surface as a primary-key constraint failure.
const Length = 30

// New returns a fresh random identifier.
func New() string {
	b := make([]byte, Length)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}
