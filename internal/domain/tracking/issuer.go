// Package tracking issues and validates public parcel tracking codes.
//
// The code format is a stable external contract: a 3-letter uppercase
// prefix followed by the 8-digit issuance date (YYYYMMDD) and a 6-digit
// random suffix, 17 characters in total. The issuer guarantees format
// only; uniqueness is probabilistic, and the persistence caller is
// responsible for retrying unique-constraint collisions.
package tracking

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"parceltrack/internal/errors"
)

const (
	prefixLength = 3
	dateLayout   = "20060102"
	suffixSpace  = 1_000_000
)

var codePattern = regexp.MustCompile(`^[A-Z]{3}\d{14}$`)

// Issuer produces tracking codes with a fixed prefix.
type Issuer struct {
	prefix string
	now    func() time.Time
	randN  func(n int) int
}

// Option customizes an Issuer. Used by tests to pin the clock and the
// random source.
type Option func(*Issuer)

// WithClock overrides the time source used for the embedded date.
func WithClock(now func() time.Time) Option {
	return func(iss *Issuer) { iss.now = now }
}

// WithRand overrides the random source used for the numeric suffix.
func WithRand(randN func(n int) int) Option {
	return func(iss *Issuer) { iss.randN = randN }
}

// NewIssuer constructs an Issuer. The prefix must be exactly three
// uppercase letters.
func NewIssuer(prefix string, opts ...Option) (*Issuer, error) {
	if len(prefix) != prefixLength || !codePattern.MatchString(prefix+"00000000000000") {
		return nil, errors.Errorf("tracking prefix must be three uppercase letters, got %q", prefix)
	}

	iss := &Issuer{
		prefix: prefix,
		now:    time.Now,
		randN:  rand.IntN,
	}
	for _, opt := range opts {
		opt(iss)
	}

	return iss, nil
}

// Issue generates a new tracking code embedding today's date.
func (iss *Issuer) Issue() string {
	return fmt.Sprintf("%s%s%06d", iss.prefix, iss.now().Format(dateLayout), iss.randN(suffixSpace))
}

// Validate reports whether s matches the tracking code format exactly.
// Matching is case-sensitive and the embedded date must be a real
// calendar date.
func (iss *Issuer) Validate(s string) bool {
	if !codePattern.MatchString(s) {
		return false
	}

	_, ok := iss.ExtractDate(s)

	return ok
}

// ExtractDate parses the issuance date embedded in a tracking code.
// The second return value is false for malformed input.
func (iss *Issuer) ExtractDate(s string) (time.Time, bool) {
	if !codePattern.MatchString(s) {
		return time.Time{}, false
	}

	issued, err := time.Parse(dateLayout, s[prefixLength:prefixLength+len(dateLayout)])
	if err != nil {
		return time.Time{}, false
	}

	return issued, true
}
