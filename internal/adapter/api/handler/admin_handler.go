package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/usecase"
	"souqmanaqil/pkg/errors"
	"souqmanaqil/pkg/response"
	"souqmanaqil/pkg/utils"
)

type AdminHandler struct {
	adminUseCase *usecase.AdminUseCase
}

func NewAdminHandler(adminUseCase *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
	}
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user trader worker admin"`
}

type deleteRequest struct {
	Kind    string `json:"kind" validate:"required,oneof=user product transaction diagnosis story"`
	ID      string `json:"id" validate:"required"`
	OwnerID string `json:"ownerId" validate:"required_if=Kind diagnosis"`
}

// AdminQueryFrom reads the search box and the enum filters of every
// sub-view from the query string.
func AdminQueryFrom(c echo.Context) (usecase.AdminQuery, error) {
	q := usecase.AdminQuery{
		Query:    c.QueryParam("q"),
		Role:     entity.Role(c.QueryParam("role")),
		Category: entity.Category(c.QueryParam("category")),
		Type:     entity.TransactionType(c.QueryParam("type")),
		Urgency:  entity.Urgency(c.QueryParam("urgency")),
	}
	if q.Role != "" && !q.Role.Valid() {
		return q, errors.BadRequest("Invalid role filter", nil)
	}
	if q.Category != "" && !q.Category.Valid() {
		return q, errors.BadRequest("Invalid category filter", nil)
	}
	if q.Type != "" && !q.Type.Valid() {
		return q, errors.BadRequest("Invalid type filter", nil)
	}
	if q.Urgency != "" && !q.Urgency.Valid() {
		return q, errors.BadRequest("Invalid urgency filter", nil)
	}
	if v := c.QueryParam("promoted"); v != "" {
		promoted, err := strconv.ParseBool(v)
		if err != nil {
			return q, errors.BadRequest("Invalid promoted filter", err)
		}
		q.Promoted = &promoted
	}
	return q, nil
}

func (h *AdminHandler) Overview(c echo.Context) error {
	overview, err := h.adminUseCase.Overview(c.Request().Context(), identity(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, overview)
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	q, err := AdminQueryFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	users, err := h.adminUseCase.Users(c.Request().Context(), identity(c), q)
	if err != nil {
		return response.Error(c, err)
	}
	return paginated(c, users)
}

func (h *AdminHandler) ListProducts(c echo.Context) error {
	q, err := AdminQueryFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	products, err := h.adminUseCase.Products(c.Request().Context(), identity(c), q)
	if err != nil {
		return response.Error(c, err)
	}
	return paginated(c, products)
}

func (h *AdminHandler) ListTransactions(c echo.Context) error {
	q, err := AdminQueryFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	txns, err := h.adminUseCase.Transactions(c.Request().Context(), identity(c), q)
	if err != nil {
		return response.Error(c, err)
	}
	return paginated(c, txns)
}

func (h *AdminHandler) ListDiagnoses(c echo.Context) error {
	q, err := AdminQueryFrom(c)
	if err != nil {
		return response.Error(c, err)
	}
	diagnoses, err := h.adminUseCase.Diagnoses(c.Request().Context(), identity(c), q)
	if err != nil {
		return response.Error(c, err)
	}
	return paginated(c, diagnoses)
}

func (h *AdminHandler) SetRole(c echo.Context) error {
	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.adminUseCase.SetRole(c.Request().Context(), identity(c), c.Param("id"), entity.Role(req.Role)); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{
		"id":   c.Param("id"),
		"role": req.Role,
	})
}

func (h *AdminHandler) TogglePromoted(c echo.Context) error {
	promoted, err := h.adminUseCase.TogglePromoted(c.Request().Context(), identity(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]bool{
		"promoted": promoted,
	})
}

func (h *AdminHandler) ToggleActive(c echo.Context) error {
	active, err := h.adminUseCase.ToggleActive(c.Request().Context(), identity(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]bool{
		"active": active,
	})
}

// RequestDelete opens the confirmation dialog. Nothing is deleted yet.
func (h *AdminHandler) RequestDelete(c echo.Context) error {
	var req deleteRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	dialog, err := h.adminUseCase.RequestDelete(c.Request().Context(), identity(c), usecase.DeleteTarget{
		Kind:    usecase.DeleteKind(req.Kind),
		ID:      req.ID,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, dialog)
}

func (h *AdminHandler) PendingDelete(c echo.Context) error {
	dialog, err := h.adminUseCase.PendingDelete(identity(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, dialog)
}

func (h *AdminHandler) ConfirmDelete(c echo.Context) error {
	target, err := h.adminUseCase.ConfirmDelete(c.Request().Context(), identity(c), c.Param("dialogId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, target)
}

func (h *AdminHandler) CancelDelete(c echo.Context) error {
	if err := h.adminUseCase.CancelDelete(identity(c), c.Param("dialogId")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{
		"message": "Deletion cancelled",
	})
}

func paginated[T any](c echo.Context, items []T) error {
	pagination := utils.GetPaginationParams(c)
	return response.Paginated(c, utils.Paginate(items, pagination), int64(len(items)), pagination.Page, pagination.PageSize)
}
