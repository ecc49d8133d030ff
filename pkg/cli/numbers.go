package cli

import (
	"math/rand/v2"
	"strings"
)

// accountNumberLength matches the 9-digit numbers customers already have.
const accountNumberLength = 9

// AccountNumber generates a random 9-digit account number, retrying until
// taken reports the number as free. Uniqueness is ultimately enforced by
// the registry's atomic open; the retry just avoids pointless collisions.
func AccountNumber(taken func(string) bool) string {
	for {
		var sb strings.Builder
		sb.Grow(accountNumberLength)
		for i := 0; i < accountNumberLength; i++ {
			sb.WriteByte(byte('0' + rand.IntN(10)))
		}
		if number := sb.String(); !taken(number) {
			return number
		}
	}
}
