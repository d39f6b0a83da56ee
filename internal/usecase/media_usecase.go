package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/domain/service"
	"souqmanaqil/pkg/errors"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var mediaFolders = map[string]bool{
	"products":  true,
	"stories":   true,
	"avatars":   true,
	"diagnoses": true,
}

type UploadedMedia struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
}

type MediaUseCase struct {
	files   service.FileUploadService
	maxSize int64
}

func NewMediaUseCase(files service.FileUploadService, maxSize int64) *MediaUseCase {
	return &MediaUseCase{
		files:   files,
		maxSize: maxSize,
	}
}

// UploadImage checks the content, not the declared type, before storing it.
func (uc *MediaUseCase) UploadImage(ctx context.Context, identity entity.Identity, file io.Reader, folder string) (*UploadedMedia, error) {
	if !identity.Authenticated() {
		return nil, errors.Unauthorized("Sign in required", nil)
	}
	if !mediaFolders[folder] {
		return nil, errors.BadRequest(fmt.Sprintf("Unknown folder %q", folder), nil)
	}

	data, err := io.ReadAll(io.LimitReader(file, uc.maxSize+1))
	if err != nil {
		return nil, errors.BadRequest("Failed to read file", err)
	}
	if int64(len(data)) > uc.maxSize {
		return nil, errors.BadRequest(fmt.Sprintf("File size exceeds maximum allowed (%dMB)", uc.maxSize/(1024*1024)), nil)
	}
	if len(data) == 0 {
		return nil, errors.BadRequest("File is empty", nil)
	}

	contentType := mimetype.Detect(data).String()
	if !allowedImageTypes[contentType] {
		return nil, errors.BadRequest("File type not supported", nil)
	}

	url, err := uc.files.UploadFile(ctx, bytes.NewReader(data), contentType, folder)
	if err != nil {
		return nil, errors.Internal("Failed to store file", err)
	}

	return &UploadedMedia{
		URL:         url,
		ContentType: contentType,
		Size:        len(data),
	}, nil
}
