package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	apperrors "go-passport-mrz/internal/errors"
)

type azureStorage struct {
	client *azblob.Client
}

// NewAzureStorage creates a DocumentFetcher backed by Azure Blob Storage.
// Document URLs name the container in the path and the blob in the "blob"
// query parameter.
func NewAzureStorage(accountName string, accountKey string) (DocumentFetcher, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &azureStorage{client: client}, nil
}

func (s *azureStorage) FetchDocument(ctx context.Context, documentURL string) ([]byte, error) {
	parsedURL, err := url.Parse(documentURL)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid blob URL", err)
	}
	if len(parsedURL.Path) < 2 {
		return nil, apperrors.NewValidationError("blob URL missing container path", nil)
	}

	containerName := parsedURL.Path[1:] // Remove leading slash
	blobName := parsedURL.Query().Get("blob")

	downloadResponse, err := s.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		return nil, apperrors.NewNetworkError("blob download failed", err)
	}

	retryReader := downloadResponse.Body
	defer retryReader.Close()

	data, err := io.ReadAll(retryReader)
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to read blob stream", err)
	}
	return data, nil
}
