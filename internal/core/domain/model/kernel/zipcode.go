package kernel

import (
	"shipping/internal/pkg/errs"
)

// zipcodeLength is the number of digits in a postal code.
// Destination codes follow the six-digit pincode convention (e.g. 560001).
const zipcodeLength = 6

// ErrZipcodeIsNotConstructed indicates that a Zipcode was not created through
// NewZipcode and is therefore a zero value.
var ErrZipcodeIsNotConstructed = errs.NewValueIsRequiredError(
	"Zipcode must be created via NewZipcode",
)

// UnknownZipcode is the sentinel location used when the real postal code is
// not known, for example when a seller registered without an address. It is a
// valid Zipcode so it can travel through the timeline like any other location.
var UnknownZipcode = Zipcode{code: "000000", isSet: true}

// Zipcode is a value object representing a serviceable postal area.
// It identifies shipment destinations, timeline scan locations, and the
// coverage set of a delivery partner.
//
// The zero value of Zipcode is invalid and must be constructed via NewZipcode.
// Zipcode is immutable and safe for concurrent use.
//
// Example usage:
//
//	zip, err := kernel.NewZipcode("560001")
//	if err != nil {
//	    // handle validation error
//	}
type Zipcode struct {
	code  string
	isSet bool
}

// NewZipcode creates a Zipcode from its string form.
// The code must consist of exactly six decimal digits.
func NewZipcode(code string) (Zipcode, error) {
	if code == "" {
		return Zipcode{}, errs.NewValueIsRequiredError("zipcode")
	}
	if len(code) != zipcodeLength {
		return Zipcode{}, errs.NewValueIsInvalidError("zipcode")
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return Zipcode{}, errs.NewValueIsInvalidError("zipcode")
		}
	}

	return Zipcode{code: code, isSet: true}, nil
}

// String returns the six-digit string form of the zipcode.
func (z Zipcode) String() string {
	return z.code
}

// IsEqual compares two zipcodes for equality.
func (z Zipcode) IsEqual(other Zipcode) bool {
	return z.code == other.code
}

// Validate checks if the Zipcode was properly constructed.
// Returns ErrZipcodeIsNotConstructed for the zero value.
func (z Zipcode) Validate() error {
	if !z.isSet {
		return ErrZipcodeIsNotConstructed
	}
	return nil
}
