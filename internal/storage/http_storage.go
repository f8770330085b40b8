package storage

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "go-passport-mrz/internal/errors"
)

// DocumentFetcher retrieves raw passport documents, either encoded images or
// PDFs, from a storage backend.
type DocumentFetcher interface {
	FetchDocument(ctx context.Context, documentURL string) ([]byte, error)
}

// HTTPDocumentFetcher implements DocumentFetcher over plain HTTP(S)
type HTTPDocumentFetcher struct {
	client *http.Client
}

// NewHTTPDocumentFetcher creates an HTTP document fetcher
func NewHTTPDocumentFetcher() DocumentFetcher {
	// Transport tuned for one-off document downloads rather than sustained
	// traffic
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		DisableCompression:     false,
		MaxResponseHeaderBytes: 4096,

		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true,
		},
	}

	return &HTTPDocumentFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,

			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
	}
}

// FetchDocument downloads the document, retrying transient failures up to
// three times. 4xx responses are not retried.
func (h *HTTPDocumentFetcher) FetchDocument(ctx context.Context, documentURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", documentURL, nil)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid document URL", err)
	}

	req.Header.Set("Accept", "image/jpeg, image/png, image/gif, application/pdf, */*")
	req.Header.Set("User-Agent", "Go-Passport-MRZ/1.0")
	req.Header.Set("Accept-Encoding", "gzip, deflate")

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < 3; attempt++ {
		resp, err = h.client.Do(req)

		if err != nil {
			lastErr = err
		}

		if err == nil && resp != nil && resp.StatusCode == http.StatusOK {
			break
		}

		if err == nil && resp != nil {
			resp.Body.Close()

			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				// Client errors will not get better on retry
				lastErr = fmt.Errorf("client error: status code %d", resp.StatusCode)
				resp = nil
				break
			}
			if resp.StatusCode >= 500 {
				lastErr = fmt.Errorf("server error: status code %d", resp.StatusCode)
			}
			resp = nil
		}

		if attempt < 2 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt+1) * time.Second):
			}
		}
	}

	if resp == nil {
		if lastErr == nil {
			lastErr = fmt.Errorf("unknown error")
		}
		return nil, apperrors.NewNetworkError("failed to fetch document after 3 attempts", lastErr)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to read document body", err)
	}
	if len(data) == 0 {
		return nil, apperrors.NewImageLoadError("document is empty", nil)
	}
	return data, nil
}
