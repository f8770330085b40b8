package models

// ExtractionRequest represents a request to extract a passport MRZ from a
// document reachable at a URL. The expected fields are optional; when present
// the decoded record is scored against them.
type ExtractionRequest struct {
	URL                    string `json:"url" binding:"required,url"`
	ExpectedSurname        string `json:"expected_surname,omitempty"`
	ExpectedPassportNumber string `json:"expected_passport_number,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// MatchResult scores a decoded record against caller-provided expected values.
// CER is the character error rate (edit distance over expected length).
type MatchResult struct {
	SurnameCER        float64 `json:"surname_cer,omitempty"`
	PassportNumberCER float64 `json:"passport_number_cer,omitempty"`
	Matched           bool    `json:"matched"`
}

// ExtractionResponse represents the response from a passport extraction
type ExtractionResponse struct {
	SourceURL         string         `json:"source_url"`
	Timestamp         string         `json:"timestamp"`
	ProcessingTimeSec float64        `json:"processing_time_sec"`
	Record            PassportRecord `json:"record"`
	Match             *MatchResult   `json:"match,omitempty"`
	Warnings          []string       `json:"warnings,omitempty"`
}
