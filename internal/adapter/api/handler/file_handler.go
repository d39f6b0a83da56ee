package handler

import (
	"github.com/labstack/echo/v4"

	"souqmanaqil/internal/usecase"
	"souqmanaqil/pkg/errors"
	"souqmanaqil/pkg/logger"
	"souqmanaqil/pkg/response"
)

type FileHandler struct {
	mediaUseCase *usecase.MediaUseCase
}

func NewFileHandler(mediaUseCase *usecase.MediaUseCase) *FileHandler {
	return &FileHandler{
		mediaUseCase: mediaUseCase,
	}
}

// UploadFile stores one image from the multipart "file" field under the
// "folder" form value.
func (h *FileHandler) UploadFile(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}

	logger.Debug("Received file: %s, size: %d bytes, declared type: %s", file.Filename, file.Size, file.Header.Get("Content-Type"))

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.BadRequest("Failed to read file", err))
	}
	defer src.Close()

	folder := c.FormValue("folder")
	if folder == "" {
		folder = "products"
	}

	media, err := h.mediaUseCase.UploadImage(c.Request().Context(), identity(c), src, folder)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, media)
}
