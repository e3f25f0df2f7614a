package checkout

import (
	"fmt"
	"strings"
)

const (
	CountryCode      = "+91"
	PhoneDigits      = 10
	MinAddressLength = 10
)

const (
	FieldPhoneNumber = "phoneNumber"
	FieldAddress     = "deliveryAddress"
)

// DeliveryDetails lives only for one checkout pass and is passed by value.
type DeliveryDetails struct {
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"deliveryAddress"`
}

// ValidationError names the field that blocked checkout.
type ValidationError struct {
	Field   string
	Title   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Present reports whether both fields were filled in at all. Blank but
// non-empty values are left to Validate.
func (d DeliveryDetails) Present() bool {
	return d.PhoneNumber != "" && d.Address != ""
}

// Validate checks the phone is +91 followed by exactly ten digits and the
// trimmed address has at least MinAddressLength characters.
func (d DeliveryDetails) Validate() error {
	if !strings.HasPrefix(d.PhoneNumber, CountryCode) {
		return &ValidationError{
			Field:   FieldPhoneNumber,
			Title:   "Invalid Phone Number",
			Message: "Phone number must start with " + CountryCode + ".",
		}
	}
	if !isDigits(strings.TrimPrefix(d.PhoneNumber, CountryCode), PhoneDigits) {
		return &ValidationError{
			Field:   FieldPhoneNumber,
			Title:   "Invalid Phone Number",
			Message: fmt.Sprintf("Please enter a valid %d-digit phone number with %s prefix.", PhoneDigits, CountryCode),
		}
	}
	if len([]rune(strings.TrimSpace(d.Address))) < MinAddressLength {
		return &ValidationError{
			Field:   FieldAddress,
			Title:   "Invalid Address",
			Message: fmt.Sprintf("Please enter a complete delivery address (minimum %d characters).", MinAddressLength),
		}
	}
	return nil
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NormalizePhone keeps the digits typed after the country code and puts the
// code back in front. Without a literal +91, twelve digits starting with 91 are
// read as code plus number.
func NormalizePhone(input string) string {
	input = strings.TrimSpace(input)
	prefixed := strings.HasPrefix(input, CountryCode)
	input = strings.TrimPrefix(input, CountryCode)

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, input)

	if !prefixed && len(digits) == PhoneDigits+2 && strings.HasPrefix(digits, "91") {
		digits = digits[2:]
	}
	if len(digits) > PhoneDigits {
		digits = digits[:PhoneDigits]
	}
	return CountryCode + digits
}
