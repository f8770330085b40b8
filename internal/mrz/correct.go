package mrz

import (
	"regexp"
	"strings"
)

// trailingMisreadPattern matches a run of 3 or more trailing characters that
// OCR engines typically produce when misreading '<' padding. Real surnames
// and given names essentially never end with three or more of these letters
// in a row.
var trailingMisreadPattern = regexp.MustCompile(`[CELA]{3,}$`)

// separatorMisreadPattern matches the surname/given-names separator "<<"
// misread as "CC" between two letters.
var separatorMisreadPattern = regexp.MustCompile(`[A-Z]CC[A-Z]`)

// Corrector repairs the well-known '<'-to-letter OCR confusion in MRZ line 1.
// Line 2 is numeric-heavy and not subject to this correction.
type Corrector struct{}

// NewCorrector creates a new MRZ line corrector
func NewCorrector() *Corrector {
	return &Corrector{}
}

// Correct returns line1 with misread filler characters restored. The output
// always has the same length as the input, and applying Correct to its own
// output changes nothing.
//
// When the name section after the 5-character prefix already contains a "<<"
// separator, the line is taken as correctly read and returned unchanged.
func (c *Corrector) Correct(line1 string) string {
	if len(line1) < LineLength {
		return line1
	}
	prefix, name := line1[:namePrefixLen], line1[namePrefixLen:]

	if strings.Contains(name, "<<") {
		return line1
	}

	// Trailing filler restoration: reinterpret a trailing run of C/E/L/A as
	// misread '<' padding.
	name = trailingMisreadPattern.ReplaceAllStringFunc(name, func(run string) string {
		return strings.Repeat(string(Filler), len(run))
	})

	// Separator restoration: if the padding repair did not surface a "<<",
	// the surname/given-names separator itself was likely misread as "CC".
	if !strings.Contains(name, "<<") {
		if loc := separatorMisreadPattern.FindStringIndex(name); loc != nil {
			name = name[:loc[0]+1] + "<<" + name[loc[1]-1:]
		}
	}

	return prefix + name
}
