package kernel

import (
	"strings"

	"orderflow/internal/pkg/errs"
)

// ErrPhoneIsRequired indicates that an operation needs a customer phone number
// but the order carries none.
var ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")

// shortNumberThreshold is the digit count at or below which a number is
// assumed to be local and gets the country calling code prefixed.
const shortNumberThreshold = 10

// Phone is a normalized customer phone number: digits only, prefixed with a
// country calling code. The zero value represents "no phone" and is a valid,
// inert result of normalizing empty input.
//
// Phone is immutable and safe for concurrent use.
type Phone struct {
	digits string
}

// NewPhone normalizes raw provider input into a Phone.
//
// Normalization rules, applied in order after stripping every non-digit
// character:
//   - empty input yields the zero Phone
//   - a leading zero is replaced by the country code (local trunk prefix)
//   - input already starting with the country code is kept as-is
//   - input of shortNumberThreshold digits or fewer gets the country code prefixed
//   - anything else passes through unchanged
//
// The function is total: any input, including empty or garbage, yields a
// defined Phone and never an error. It is also idempotent, so normalizing an
// already-normalized number returns it unchanged.
func NewPhone(raw, countryCode string) Phone {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	switch {
	case digits == "":
		return Phone{}
	case strings.HasPrefix(digits, "0"):
		return Phone{digits: countryCode + digits[1:]}
	case countryCode != "" && strings.HasPrefix(digits, countryCode):
		return Phone{digits: digits}
	case len(digits) <= shortNumberThreshold:
		return Phone{digits: countryCode + digits}
	default:
		return Phone{digits: digits}
	}
}

// RestorePhone rebuilds a Phone from its persisted digit string without
// re-normalizing. Intended for repository DTO mapping only.
func RestorePhone(digits string) Phone {
	return Phone{digits: digits}
}

// String returns the normalized digit string, empty for the zero Phone.
func (p Phone) String() string {
	return p.digits
}

// IsZero reports whether the Phone carries no number.
func (p Phone) IsZero() bool {
	return p.digits == ""
}

// IsEqual compares two phones by their normalized digits.
func (p Phone) IsEqual(other Phone) bool {
	return p.digits == other.digits
}

// Validate returns ErrPhoneIsRequired for the zero Phone and nil otherwise.
// Use it where the calling operation cannot proceed without a number.
func (p Phone) Validate() error {
	if p.digits == "" {
		return ErrPhoneIsRequired
	}

	return nil
}
