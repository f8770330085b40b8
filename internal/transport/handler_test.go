package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"go-passport-mrz/internal/config"
	apperrors "go-passport-mrz/internal/errors"
	"go-passport-mrz/pkg/models"
)

type stubService struct {
	resp        *models.ExtractionResponse
	err         error
	validateErr error
}

func (s *stubService) ExtractPassport(ctx context.Context, request models.ExtractionRequest) (*models.ExtractionResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func (s *stubService) ValidateDocumentURL(documentURL string) error {
	return s.validateErr
}

func testConfig() *config.Config {
	cfg, _ := config.LoadFromEnv()
	return cfg
}

func performRequest(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestExtractEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &stubService{
		resp: &models.ExtractionResponse{
			SourceURL: "https://example.com/passport.jpg",
			Record: models.PassportRecord{
				PassportNumber: "L898902C3",
				Surname:        "ERIKSSON",
				GivenNames:     "ANNA MARIA",
				Nationality:    "UTO",
				Sex:            models.SexFemale,
			},
		},
	}
	handler := NewHandler(svc, testConfig())

	w := performRequest(handler, "POST", "/extract", `{"url":"https://example.com/passport.jpg"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var resp models.ExtractionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Record.Surname != "ERIKSSON" {
		t.Errorf("Surname = %q, want ERIKSSON", resp.Record.Surname)
	}
}

func TestExtractEndpointErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		body       string
		svc        *stubService
		wantStatus int
	}{
		{
			name:       "Missing URL field",
			body:       `{}`,
			svc:        &stubService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Malformed JSON",
			body:       `{"url":`,
			svc:        &stubService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "URL validation failure",
			body:       `{"url":"ftp://example.com/p.jpg"}`,
			svc:        &stubService{validateErr: apperrors.NewValidationError("URL scheme not allowed", nil)},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "MRZ not found",
			body:       `{"url":"https://example.com/p.jpg"}`,
			svc:        &stubService{err: apperrors.NewMrzNotFoundError()},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "Fetch failure",
			body:       `{"url":"https://example.com/p.jpg"}`,
			svc:        &stubService{err: apperrors.NewNetworkError("unreachable", nil)},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "Timeout",
			body:       `{"url":"https://example.com/p.jpg"}`,
			svc:        &stubService{err: apperrors.NewTimeoutError("deadline exceeded", context.DeadlineExceeded)},
			wantStatus: http.StatusGatewayTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(tt.svc, testConfig())
			w := performRequest(handler, "POST", "/extract", tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d, body: %s", w.Code, tt.wantStatus, w.Body.String())
			}

			var errResp models.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if errResp.Error == "" {
				t.Error("error response missing error field")
			}
		})
	}
}

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(&stubService{}, testConfig())
	w := performRequest(handler, "GET", "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "available") {
		t.Errorf("health body = %s, want status available", w.Body.String())
	}
}
