package storage

import (
	"context"
	"encoding/base64"
	"io"
)

// DataURIStorage keeps media inline: the returned URI is the file itself,
// ready to be stored on the record. It backs deployments without a bucket.
type DataURIStorage struct{}

func NewDataURIStorage() *DataURIStorage {
	return &DataURIStorage{}
}

func (s *DataURIStorage) UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	return "data:" + fileType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// DeleteFile has nothing to remove; the data lives on the record.
func (s *DataURIStorage) DeleteFile(ctx context.Context, fileURL string) error {
	return nil
}

func (s *DataURIStorage) Close() error {
	return nil
}
