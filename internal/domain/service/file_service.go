package service

import (
	"context"
	"io"
)

// FileUploadService stores uploaded media and returns a URI that can be
// saved on a record.
type FileUploadService interface {
	UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
	Close() error
}
