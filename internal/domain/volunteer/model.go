package volunteer

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Domain errors
var (
	ErrEmptyName   = errors.New("volunteer name cannot be empty")
	ErrNameTooLong = errors.New("volunteer name cannot exceed 100 characters")
)

// Volunteer holds state for the concept.
type Volunteer struct {
	ID   int64
	Name string // as entered, trimmed
}

// Validate checks if the Volunteer has valid data.
// PRE: Volunteer struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Name must not be blank
func (v *Volunteer) Validate() error {
	name := strings.TrimSpace(v.Name)
	if name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// Key returns the lookup key for the volunteer's name.
func (v *Volunteer) Key() string {
	return NormalizeName(v.Name)
}

// DisplayName returns the name formatted for certificates.
func (v *Volunteer) DisplayName() string {
	return FormatDisplayName(v.Name)
}

// NormalizeName trims and lowercases a name for matching.
// Two names refer to the same volunteer iff their normalized forms are equal.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FormatDisplayName capitalises each whitespace-separated word: first letter
// upper case, the rest lower case. Runs of whitespace collapse to one space.
func FormatDisplayName(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
