package probe

import (
	"crypto/rand"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Details holds the protocol-specific fields extracted from a response.
// Absent keys mean the field could not be extracted; a present key always
// carries a successfully decoded value. Decode failures are reported through
// the "error" key alongside the protocol tag.
type Details map[string]any

// Probe is the build/parse pair implementing one protocol's wire format.
// Build constructs exactly one request datagram and regenerates any
// randomized correlator state (transaction IDs, nonces) it embeds. Parse
// interprets a response against that state. A probe instance belongs to a
// single (target, port) scan unit and is never shared across units.
type Probe interface {
	Name() string
	Build() []byte
	Parse(response []byte) Details
}

// safeParse converts a panic during response decoding into an error detail
// so a malformed datagram can never take down a scan.
func safeParse(protocol string, fn func() Details) (details Details) {
	defer func() {
		if r := recover(); r != nil {
			details = Details{
				"protocol": protocol,
				"error":    fmt.Sprint(r),
			}
		}
	}()

	return fn()
}

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randomToken returns a random alphanumeric string of length n
func randomToken(n int) string {
	buf := make([]byte, n)

	// crypto/rand never fails on supported platforms; fall back to a
	// constant fill rather than aborting a scan if it ever does
	if _, err := rand.Read(buf); err != nil {
		for i := range buf {
			buf[i] = 'a'
		}
	}

	for i, b := range buf {
		buf[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}

	return string(buf)
}

// randomBytes returns n random bytes
func randomBytes(n int) []byte {
	buf := make([]byte, n)

	if _, err := rand.Read(buf); err != nil {
		for i := range buf {
			buf[i] = byte(i + 1)
		}
	}

	return buf
}

// isPrintableText reports whether data decodes as printable text. Control
// characters (including newlines) disqualify, spaces do not.
func isPrintableText(data []byte) bool {
	if !utf8.Valid(data) {
		return false
	}

	for _, r := range string(data) {
		if r == ' ' {
			continue
		}

		if !unicode.IsPrint(r) {
			return false
		}
	}

	return true
}
