// Package mrz locates, repairs and decodes the ICAO 9303 TD3 machine-readable
// zone of a passport: two 44-character lines over the alphabet A-Z, 0-9 and
// the filler character '<'.
package mrz

import "strings"

// LineLength is the fixed width of each TD3 MRZ line.
const LineLength = 44

// Filler is the MRZ padding character.
const Filler = '<'

// namePrefixLen is the width of the line-1 prefix (document type + issuing
// country code) that precedes the name section.
const namePrefixLen = 5

// LinePair holds the two MRZ lines of a TD3 document, each exactly 44
// characters.
type LinePair struct {
	First  string
	Second string
}

// padLine right-pads a line with filler to LineLength and truncates anything
// longer.
func padLine(line string) string {
	if len(line) >= LineLength {
		return line[:LineLength]
	}
	return line + strings.Repeat(string(Filler), LineLength-len(line))
}

// stripFiller removes every filler character from a field.
func stripFiller(field string) string {
	return strings.ReplaceAll(field, string(Filler), "")
}
