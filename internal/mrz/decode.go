package mrz

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-passport-mrz/pkg/models"
)

// ocrDigitFixes repairs digits misread as visually similar letters inside
// date fields.
var ocrDigitFixes = strings.NewReplacer("O", "0", "I", "1", "S", "5", "Z", "2")

// FieldDecoder maps a corrected TD3 line pair onto a PassportRecord.
type FieldDecoder struct {
	now func() time.Time
}

// NewFieldDecoder creates a new MRZ field decoder
func NewFieldDecoder() *FieldDecoder {
	return &FieldDecoder{now: time.Now}
}

// Decode extracts all passport fields from the two MRZ lines. Decoding is
// total: malformed input degrades to empty fields, it never errors. Lines
// shorter than 44 characters are padded with filler first so fixed-offset
// slicing stays in bounds.
func (d *FieldDecoder) Decode(line1, line2 string) models.PassportRecord {
	line1 = padLine(line1)
	line2 = padLine(line2)

	issuingCountry := stripFiller(line1[2:5])

	surname, givenNames := splitName(line1[namePrefixLen:])

	nationality := stripFiller(line2[10:13])
	if nationality == "" {
		nationality = issuingCountry
	}

	return models.PassportRecord{
		PassportNumber: stripFiller(line2[0:9]),
		Surname:        surname,
		GivenNames:     givenNames,
		Nationality:    nationality,
		DateOfBirth:    d.formatDate(line2[13:19]),
		DateOfExpiry:   d.formatDate(line2[21:27]),
		Sex:            decodeSex(line2[20:21]),
		MrzLine1:       line1,
		MrzLine2:       line2,
	}
}

// splitName splits the line-1 name section once on the "<<" separator into
// surname and given names, turning single fillers into spaces.
func splitName(section string) (surname, givenNames string) {
	surname = section
	if i := strings.Index(section, "<<"); i >= 0 {
		surname, givenNames = section[:i], section[i+2:]
	}
	return cleanNamePart(surname), cleanNamePart(givenNames)
}

func cleanNamePart(part string) string {
	return strings.TrimSpace(strings.ReplaceAll(part, string(Filler), " "))
}

func decodeSex(code string) models.Sex {
	switch code {
	case "M":
		return models.SexMale
	case "F":
		return models.SexFemale
	default:
		return models.SexUnspecified
	}
}

// formatDate turns a raw YYMMDD field into ISO YYYY-MM-DD. Undecodable input
// yields the empty string; a cleaned but unparseable year yields the cleaned
// six characters unchanged rather than an error.
//
// Two-digit years pivot on the current year: anything more than ten years in
// the future is taken as 19xx. An expiry up to ten years out is the longest
// validity a passport can carry.
func (d *FieldDecoder) formatDate(raw string) string {
	if len(raw) != 6 || strings.ContainsRune(raw, Filler) {
		return ""
	}
	cleaned := ocrDigitFixes.Replace(raw)
	year, err := strconv.Atoi(cleaned[:2])
	if err != nil {
		return cleaned
	}
	century := 2000
	if year > d.now().Year()%100+10 {
		century = 1900
	}
	return fmt.Sprintf("%04d-%s-%s", century+year, cleaned[2:4], cleaned[4:6])
}
