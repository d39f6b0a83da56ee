package handler

import (
	"github.com/labstack/echo/v4"

	"souqmanaqil/internal/usecase"
	"souqmanaqil/pkg/response"
)

type StoryHandler struct {
	catalogUseCase *usecase.CatalogUseCase
}

func NewStoryHandler(catalogUseCase *usecase.CatalogUseCase) *StoryHandler {
	return &StoryHandler{
		catalogUseCase: catalogUseCase,
	}
}

type createStoryRequest struct {
	Image    string `json:"image" validate:"required"`
	HasOffer bool   `json:"hasOffer"`
	Category string `json:"category" validate:"max=40"`
}

func (h *StoryHandler) ListStories(c echo.Context) error {
	stories, err := h.catalogUseCase.ListStories(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, stories)
}

func (h *StoryHandler) CreateStory(c echo.Context) error {
	var req createStoryRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	story, err := h.catalogUseCase.CreateStory(c.Request().Context(), identity(c), usecase.StoryInput{
		Image:    req.Image,
		HasOffer: req.HasOffer,
		Category: req.Category,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, story)
}

func (h *StoryHandler) DeleteStory(c echo.Context) error {
	if err := h.catalogUseCase.DeleteStory(c.Request().Context(), identity(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{
		"message": "Story deleted",
	})
}
