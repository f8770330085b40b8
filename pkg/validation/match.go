package validation

import (
	"strings"

	"github.com/arbovm/levenshtein"

	"go-passport-mrz/pkg/models"
)

// matchCERThreshold is the largest character error rate still counted as a
// match. OCR of a clean MRZ rarely misreads more than one in five characters
// of a field.
const matchCERThreshold = 0.2

// CharacterErrorRate returns the edit distance between the expected and
// actual strings divided by the expected length. Comparison ignores case and
// surrounding whitespace.
func CharacterErrorRate(expected, actual string) float64 {
	expected = normalizeForMatch(expected)
	actual = normalizeForMatch(actual)

	if expected == "" {
		if actual == "" {
			return 0
		}
		return 1
	}
	return float64(levenshtein.Distance(expected, actual)) / float64(len(expected))
}

// MatchRecord scores the decoded record against the caller's expected values.
// Fields the caller did not provide are skipped; the record matches when
// every provided field stays under the CER threshold. Returns nil when no
// expected values were provided at all.
func MatchRecord(record models.PassportRecord, expectedSurname, expectedNumber string) *models.MatchResult {
	if expectedSurname == "" && expectedNumber == "" {
		return nil
	}

	result := &models.MatchResult{Matched: true}

	if expectedSurname != "" {
		result.SurnameCER = CharacterErrorRate(expectedSurname, record.Surname)
		if result.SurnameCER > matchCERThreshold {
			result.Matched = false
		}
	}
	if expectedNumber != "" {
		result.PassportNumberCER = CharacterErrorRate(expectedNumber, record.PassportNumber)
		if result.PassportNumberCER > matchCERThreshold {
			result.Matched = false
		}
	}

	return result
}

func normalizeForMatch(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
