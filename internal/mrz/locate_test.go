package mrz

import (
	"strings"
	"testing"
)

const (
	sampleLine1 = "P<UTOERIKSSON<<ANNA<MARIA<<<<<<<<<<<<<<<<<<<"
	sampleLine2 = "L898902C36UTO7408122F1204159ZE184226B<<<<<10"
)

func TestLocateLinePair(t *testing.T) {
	locator := NewLocator()

	tests := []struct {
		name       string
		transcript string
		wantFirst  string
		wantSecond string
		wantFound  bool
	}{
		{
			name:       "Clean pair with surrounding noise",
			transcript: "REPUBLIC OF UTOPIA\nPASSPORT\n" + sampleLine1 + "\n" + sampleLine2 + "\ntrailing garbage",
			wantFirst:  sampleLine1,
			wantSecond: sampleLine2,
			wantFound:  true,
		},
		{
			name:       "Lowercase transcript with inner whitespace",
			transcript: strings.ToLower(sampleLine1[:20]) + " " + strings.ToLower(sampleLine1[20:]) + "\n" + sampleLine2[:10] + "  " + sampleLine2[10:],
			wantFirst:  sampleLine1,
			wantSecond: sampleLine2,
			wantFound:  true,
		},
		{
			name:       "Short lines padded to 44",
			transcript: sampleLine1[:41] + "\n" + strings.TrimRight(sampleLine2, "0"),
			wantFirst:  sampleLine1[:41] + "<<<",
			wantSecond: sampleLine2[:43] + "<",
			wantFound:  true,
		},
		{
			name:       "Overlong lines truncated to 44",
			transcript: sampleLine1 + "KK\n" + sampleLine2 + "77",
			wantFirst:  sampleLine1,
			wantSecond: sampleLine2,
			wantFound:  true,
		},
		{
			name:       "Filler lookalikes mapped",
			transcript: "P«UTOERIKSSON[]ANNA«MARIA[][][][][](((((((((\n" + sampleLine2,
			wantFirst:  "P<UTOERIKSSON<<ANNA<MARIA<<<<<<<<<<<<<<<<<<<",
			wantSecond: sampleLine2,
			wantFound:  true,
		},
		{
			name:       "First of two candidate pairs wins",
			transcript: sampleLine1 + "\n" + sampleLine2 + "\nP<GBRSMITH<<JOHN<<<<<<<<<<<<<<<<<<<<<<<<<<<<\n9999999999GBR8001019M2501017<<<<<<<<<<<<<<06",
			wantFirst:  sampleLine1,
			wantSecond: sampleLine2,
			wantFound:  true,
		},
		{
			name:       "Line starting with P but few digits in line 2 rejected",
			transcript: "PLEASE PRESENT THIS DOCUMENT AT THE BORDER CONTROL\nTOGETHER WITH YOUR BOARDING PASS AND VISA PAPERS",
			wantFound:  false,
		},
		{
			name:       "Continuous fallback on glued lines",
			transcript: "noise before\n" + sampleLine1 + sampleLine2 + "\nnoise after",
			wantFirst:  sampleLine1,
			wantSecond: sampleLine2,
			wantFound:  true,
		},
		{
			name:       "Empty transcript",
			transcript: "",
			wantFound:  false,
		},
		{
			name:       "No MRZ shaped content",
			transcript: "UTOPIA IMMIGRATION SERVICE\nFORM 77-B\nDO NOT FOLD",
			wantFound:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, found := locator.Locate(tt.transcript)
			if found != tt.wantFound {
				t.Fatalf("Locate() found = %v, want %v", found, tt.wantFound)
			}
			if !found {
				return
			}
			if pair.First != tt.wantFirst {
				t.Errorf("Locate() first = %q, want %q", pair.First, tt.wantFirst)
			}
			if pair.Second != tt.wantSecond {
				t.Errorf("Locate() second = %q, want %q", pair.Second, tt.wantSecond)
			}
			if len(pair.First) != LineLength || len(pair.Second) != LineLength {
				t.Errorf("Locate() line lengths = %d/%d, want %d/%d",
					len(pair.First), len(pair.Second), LineLength, LineLength)
			}
		})
	}
}

func TestLocatePrefersTopmostPair(t *testing.T) {
	locator := NewLocator()

	upper := "P<GBRSMITH<<JOHN<<<<<<<<<<<<<<<<<<<<<<<<<<<<\n1234567890GBR8001019M2501017<<<<<<<<<<<<<<06"
	lower := sampleLine1 + "\n" + sampleLine2

	pair, found := locator.Locate(upper + "\n" + lower)
	if !found {
		t.Fatal("Locate() found no pair")
	}
	if !strings.HasPrefix(pair.First, "P<GBRSMITH") {
		t.Errorf("Locate() returned lower pair %q, want topmost", pair.First)
	}
}
