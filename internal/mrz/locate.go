package mrz

import (
	"regexp"
	"strings"
)

// fillerLookalikes maps characters OCR engines commonly emit in place of the
// MRZ filler back to '<'.
var fillerLookalikes = strings.NewReplacer(
	"«", "<",
	"[", "<",
	"]", "<",
	"(", "<",
	")", "<",
)

// continuousPattern matches two back-to-back TD3 lines inside a transcript
// whose line structure was lost: 'P', one alphabetic-or-filler character, 42
// more line-1 characters, then 44 line-2 characters.
var continuousPattern = regexp.MustCompile(`P[A-Z<][A-Z0-9<]{42}[A-Z0-9<]{44}`)

// Locator scans a raw OCR transcript for a line pair of MRZ shape.
type Locator struct{}

// NewLocator creates a new MRZ locator
func NewLocator() *Locator {
	return &Locator{}
}

// Locate searches the transcript for a TD3 line pair. The second return is
// false when no pair was found; that is a normal outcome, not an error, and
// the caller is expected to retry with a different preprocessing variant.
func (l *Locator) Locate(transcript string) (LinePair, bool) {
	lines := normalizeTranscript(transcript)

	// Line-pair scan: first (topmost) adjacent pair that looks like an MRZ
	// wins. The digit-count check on line 2 rejects text lines that merely
	// happen to start with 'P'.
	for i := 0; i+1 < len(lines); i++ {
		l1, l2 := lines[i], lines[i+1]
		if !strings.HasPrefix(l1, "P") {
			continue
		}
		if len(l1) < 40 || len(l2) < 40 {
			continue
		}
		p2 := padLine(l2)
		if digitCount(p2) > 5 {
			return LinePair{First: padLine(l1), Second: p2}, true
		}
	}

	// Continuous fallback: the OCR engine sometimes glues both lines into one
	// run of characters (or splits them oddly); search the joined transcript.
	joined := strings.Join(lines, "")
	if m := continuousPattern.FindString(joined); m != "" {
		return LinePair{First: m[:LineLength], Second: m[LineLength : 2*LineLength]}, true
	}

	return LinePair{}, false
}

// normalizeTranscript uppercases each transcript line, removes all whitespace
// inside it and maps filler lookalikes to '<'. Empty lines are dropped.
func normalizeTranscript(transcript string) []string {
	raw := strings.Split(transcript, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.ToUpper(line)
		line = strings.Join(strings.Fields(line), "")
		line = fillerLookalikes.Replace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func digitCount(s string) int {
	n := 0
	for _, c := range s {
		if c >= '0' && c <= '9' {
			n++
		}
	}
	return n
}
