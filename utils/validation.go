// utils/validation.go
package utils

import (
	"regexp"
)

var (
	emailRegex   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex   = regexp.MustCompile(`^[0-9]{10}$`)
	pincodeRegex = regexp.MustCompile(`^[1-9][0-9]{5}$`)
)

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePhone checks for a 10-digit local phone number.
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// ValidatePincode checks for a 6-digit postal code not starting with 0.
func ValidatePincode(pincode string) bool {
	return pincodeRegex.MatchString(pincode)
}
