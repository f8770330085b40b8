package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "go-passport-mrz/internal/errors"
)

var documentPayload = []byte("%PDF-1.7 fake passport scan")

func TestHTTPDocumentFetcher_RetryLogic(t *testing.T) {
	tests := []struct {
		name           string
		responses      []int // Status codes to return in sequence
		expectRequests int
		expectError    bool
		errorContains  string
	}{
		{
			name:           "Success on first attempt",
			responses:      []int{200},
			expectRequests: 1,
			expectError:    false,
		},
		{
			name:           "Success on second attempt after 5xx",
			responses:      []int{500, 200},
			expectRequests: 2,
			expectError:    false,
		},
		{
			name:           "4xx client error - no retry",
			responses:      []int{404},
			expectRequests: 1,
			expectError:    true,
			errorContains:  "client error: status code 404",
		},
		{
			name:           "4xx after 5xx - retry until 4xx then stop",
			responses:      []int{500, 404},
			expectRequests: 2,
			expectError:    true,
			errorContains:  "client error: status code 404",
		},
		{
			name:           "All 5xx errors - retry all attempts",
			responses:      []int{500, 502, 503},
			expectRequests: 3,
			expectError:    true,
			errorContains:  "server error: status code 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requestCount := 0

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if requestCount >= len(tt.responses) {
					w.WriteHeader(500)
					w.Write([]byte("Unexpected request"))
					return
				}
				statusCode := tt.responses[requestCount]
				requestCount++

				if statusCode == 200 {
					w.Header().Set("Content-Type", "application/pdf")
					w.Write(documentPayload)
				} else {
					w.WriteHeader(statusCode)
					w.Write([]byte(fmt.Sprintf("Error %d", statusCode)))
				}
			}))
			defer server.Close()

			fetcher := NewHTTPDocumentFetcher()
			data, err := fetcher.FetchDocument(context.Background(), server.URL)

			if requestCount != tt.expectRequests {
				t.Errorf("Expected %d requests, got %d", tt.expectRequests, requestCount)
			}

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error, but got none")
				} else if tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("Expected error to contain '%s', got: %s", tt.errorContains, err.Error())
				}
				if err != nil && !apperrors.IsType(err, apperrors.ErrorTypeNetwork) {
					t.Errorf("Expected network error type, got: %v", err)
				}
			} else {
				if err != nil {
					t.Errorf("Expected no error, got: %s", err.Error())
				}
				if !bytes.Equal(data, documentPayload) {
					t.Errorf("Fetched payload does not match served document")
				}
			}
		})
	}
}

func TestHTTPDocumentFetcher_NetworkError_Retry(t *testing.T) {
	requestCount := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		if requestCount < 3 {
			// Simulate network error by closing connection
			hj, ok := w.(http.Hijacker)
			if ok {
				conn, _, _ := hj.Hijack()
				conn.Close()
			}
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(documentPayload)
	}))
	defer server.Close()

	fetcher := NewHTTPDocumentFetcher()

	start := time.Now()
	_, err := fetcher.FetchDocument(context.Background(), server.URL)
	duration := time.Since(start)

	if err != nil {
		t.Errorf("Expected success after retries, got error: %s", err.Error())
	}
	if requestCount != 3 {
		t.Errorf("Expected 3 requests, got %d", requestCount)
	}

	// Backoff between the three attempts is 1s + 2s
	if duration < 3*time.Second {
		t.Errorf("Expected at least 3 seconds due to backoff, took %v", duration)
	}
}

func TestHTTPDocumentFetcher_EmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer server.Close()

	fetcher := NewHTTPDocumentFetcher()
	_, err := fetcher.FetchDocument(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error for empty document body")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeImageLoad) {
		t.Errorf("Expected image load error type, got: %v", err)
	}
}
