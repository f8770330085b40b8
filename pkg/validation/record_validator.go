package validation

import (
	"fmt"
	"regexp"

	"go-passport-mrz/pkg/models"
)

var alpha3Pattern = regexp.MustCompile(`^[A-Z]{3}$`)

// RecordValidator checks a decoded passport record for plausibility.
// Extraction never fails on an implausible record; the warnings travel with
// the response so the caller can decide what to trust.
type RecordValidator struct{}

// NewRecordValidator creates a new record validator
func NewRecordValidator() *RecordValidator {
	return &RecordValidator{}
}

// Validate returns a warning per implausible field, empty when the record
// looks sound.
func (v *RecordValidator) Validate(record models.PassportRecord) []string {
	var warnings []string

	if record.PassportNumber == "" {
		warnings = append(warnings, "passport number is empty")
	}
	if record.Surname == "" {
		warnings = append(warnings, "surname is empty")
	}
	if !alpha3Pattern.MatchString(record.Nationality) {
		warnings = append(warnings, fmt.Sprintf("nationality %q is not a three-letter country code", record.Nationality))
	}
	if record.DateOfBirth == "" {
		warnings = append(warnings, "date of birth could not be decoded")
	}
	if record.DateOfExpiry == "" {
		warnings = append(warnings, "date of expiry could not be decoded")
	}

	return warnings
}
