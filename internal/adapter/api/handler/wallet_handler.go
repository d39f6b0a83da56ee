package handler

import (
	"github.com/labstack/echo/v4"

	"souqmanaqil/internal/usecase"
	"souqmanaqil/pkg/response"
)

type WalletHandler struct {
	walletUseCase *usecase.WalletUseCase
}

func NewWalletHandler(walletUseCase *usecase.WalletUseCase) *WalletHandler {
	return &WalletHandler{
		walletUseCase: walletUseCase,
	}
}

func (h *WalletHandler) GetWallet(c echo.Context) error {
	summary, err := h.walletUseCase.Summary(c.Request().Context(), identity(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, summary)
}

func (h *WalletHandler) GetTransactions(c echo.Context) error {
	txns, err := h.walletUseCase.History(c.Request().Context(), identity(c))
	if err != nil {
		return response.Error(c, err)
	}
	return paginated(c, txns)
}
