package wizard

import (
	"strings"
	"unicode/utf8"

	"github.com/jask/txwizard/internal/catalog"
)

// MinAddressLength is the shortest trimmed address DETAILS accepts.
const MinAddressLength = 10

// Draft is the request being assembled across steps.
type Draft struct {
	Network    *catalog.Network
	Amount     string
	Fee        string
	Address    string
	Credential string
}

// IsEmpty reports whether d is the zero draft.
func (d Draft) IsEmpty() bool {
	return d.Network == nil && d.Amount == "" && d.Fee == "" && d.Address == "" && d.Credential == ""
}

// ValidateDetails is the DETAILS -> AUTH_CHOICE guard. Amount is checked
// before address.
func (d Draft) ValidateDetails() error {
	if d.Amount == "" {
		return ErrMissingAmount
	}
	if utf8.RuneCountInString(strings.TrimSpace(d.Address)) < MinAddressLength {
		return ErrAddressTooShort
	}
	return nil
}

// clone copies d so callers of Snapshot cannot reach controller state.
func (d Draft) clone() Draft {
	if d.Network != nil {
		n := *d.Network
		d.Network = &n
	}
	return d
}

// Verify trims input and compares it for exact equality with stored.
//
// This is a plain string match with no hashing or attempt limit. Anything
// beyond a demo needs a real secret verifier here.
func Verify(input, stored string) bool {
	return strings.TrimSpace(input) == stored
}
