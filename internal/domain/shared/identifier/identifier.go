// Package identifier generates collision-resistant, human-readable
// business identifiers such as order numbers and tracking numbers.
//
// Identifiers have the shape PREFIX-TTTTTTTT-RRRRRRRR where the middle
// segment is the creation time in base36 milliseconds and the suffix is
// cryptographically random. Uniqueness is probabilistic; callers that
// need a hard guarantee must also enforce a unique constraint at the
// persistence layer.
package identifier

import (
	"crypto/rand"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Well-known identifier prefixes
const (
	PrefixOrder    = "ORD"
	PrefixProduct  = "PRD"
	PrefixTracking = "TRK"
)

// randomLength is the number of random suffix characters. 36^8 ≈ 2.8e12
// combinations per millisecond bucket.
const randomLength = 8

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var idPattern = regexp.MustCompile(`^[A-Z0-9]+-[A-Z0-9]+-[A-Z0-9]+$`)

// Generate produces a new identifier with the given prefix,
// e.g. Generate("ORD") -> "ORD-MF1X2K9A-7Q3ZP0TB".
func Generate(prefix string) string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return strings.ToUpper(prefix) + "-" + ts + "-" + randomSuffix(randomLength)
}

// ValidateFormat reports whether id has the PREFIX-[A-Z0-9]+-[A-Z0-9]+
// shape for the given prefix.
func ValidateFormat(id, prefix string) bool {
	if !idPattern.MatchString(id) {
		return false
	}
	return strings.HasPrefix(id, strings.ToUpper(prefix)+"-")
}

// ExtractTimestamp decodes the timestamp segment of an identifier.
// The second return value is false for malformed input; no identifier
// ever causes an error or panic.
func ExtractTimestamp(id string) (time.Time, bool) {
	parts := strings.Split(id, "-")
	if len(parts) != 3 || parts[1] == "" {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(strings.ToLower(parts[1]), 36, 64)
	if err != nil || ms < 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// IsExpired reports whether the identifier was generated more than
// maxAge ago. Malformed identifiers are never considered expired.
func IsExpired(id string, maxAge time.Duration) bool {
	ts, ok := ExtractTimestamp(id)
	if !ok {
		return false
	}
	return time.Since(ts) > maxAge
}

// randomSuffix returns n characters drawn from the base36 alphabet
// using a cryptographically strong random source.
func randomSuffix(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = base36Alphabet[int(b)%len(base36Alphabet)]
	}
	return string(out)
}
