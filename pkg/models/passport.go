package models

// Sex is the holder sex decoded from MRZ position 20 of line 2.
type Sex string

const (
	SexMale        Sex = "Male"
	SexFemale      Sex = "Female"
	SexUnspecified Sex = "Unspecified"
)

// PassportRecord is the structured result of one successful MRZ extraction.
// The corrected MRZ lines are retained for display and audit.
type PassportRecord struct {
	PassportNumber string `json:"passport_number"`
	Surname        string `json:"surname"`
	GivenNames     string `json:"given_names"`
	Nationality    string `json:"nationality"`
	DateOfBirth    string `json:"date_of_birth"`
	DateOfExpiry   string `json:"date_of_expiry"`
	Sex            Sex    `json:"sex"`
	MrzLine1       string `json:"mrz_line1"`
	MrzLine2       string `json:"mrz_line2"`
}
