package handler

import (
	"github.com/labstack/echo/v4"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/usecase"
	"souqmanaqil/pkg/response"
)

type DiagnosisHandler struct {
	diagnosisUseCase *usecase.DiagnosisUseCase
}

func NewDiagnosisHandler(diagnosisUseCase *usecase.DiagnosisUseCase) *DiagnosisHandler {
	return &DiagnosisHandler{
		diagnosisUseCase: diagnosisUseCase,
	}
}

type diagnosisRequest struct {
	Image   string `json:"image"`
	Issue   string `json:"issue" validate:"required,max=2000"`
	Urgency string `json:"urgency" validate:"omitempty,oneof=high medium low"`
}

func (h *DiagnosisHandler) Submit(c echo.Context) error {
	var req diagnosisRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	diagnosis, err := h.diagnosisUseCase.Submit(c.Request().Context(), identity(c), usecase.DiagnosisInput{
		Image:   req.Image,
		Issue:   req.Issue,
		Urgency: entity.Urgency(req.Urgency),
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, diagnosis)
}

func (h *DiagnosisHandler) Mine(c echo.Context) error {
	diagnoses, err := h.diagnosisUseCase.Mine(c.Request().Context(), identity(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, diagnoses)
}
