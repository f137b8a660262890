package test

import "math/rand/v2"

const (
	letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ "
	digits  = "0123456789"
)

// RandomText returns free text, such as a rejection reason or a payment
// reference, between minLen and maxLen characters long. It never starts or
// ends with a space, so trimming leaves it intact.
func RandomText(minLen, maxLen int) string {
	minLen = max(minLen, 1)
	maxLen = max(maxLen, minLen)
	buf := pick(letters, minLen+rand.IntN(maxLen-minLen+1))
	buf[0], buf[len(buf)-1] = 'x', 'x'
	return string(buf)
}

// RandomDigits returns n decimal digits, e.g. a national ID or postal code.
func RandomDigits(n int) string {
	return string(pick(digits, max(n, 1)))
}

func pick(alphabet string, n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return buf
}
