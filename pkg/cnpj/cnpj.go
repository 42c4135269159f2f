// Package cnpj validates Brazilian legal-entity registry identifiers.
package cnpj

import (
	"regexp"
	"sincromei/pkg/serrors"
)

// Length is the number of digits in a CNPJ.
const Length = 14

// InvalidFormatMessage is the client-facing message for malformed identifiers.
const InvalidFormatMessage = "Invalid CNPJ format"

var pattern = regexp.MustCompile(`^[0-9]{14}$`) //nolint: gochecknoglobals

// IsValid reports whether s is exactly 14 ASCII digits. Formatting
// punctuation ("12.345.678/0001-95") is rejected.
func IsValid(s string) bool {
	return pattern.MatchString(s)
}

// Validate returns an ErrInvalidArgument error when s is not a well-formed CNPJ.
func Validate(s string) error {
	if !IsValid(s) {
		return serrors.With(serrors.ErrInvalidArgument, InvalidFormatMessage)
	}

	return nil
}
