package handler

import (
	"github.com/labstack/echo/v4"

	"souqmanaqil/internal/adapter/api/middleware"
	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/usecase"
)

var (
	authHandler      *AuthHandler
	userHandler      *UserHandler
	productHandler   *ProductHandler
	storyHandler     *StoryHandler
	traderHandler    *TraderHandler
	adminHandler     *AdminHandler
	walletHandler    *WalletHandler
	diagnosisHandler *DiagnosisHandler
	fileHandler      *FileHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	directoryUseCase *usecase.DirectoryUseCase,
	catalogUseCase *usecase.CatalogUseCase,
	traderUseCase *usecase.TraderUseCase,
	adminUseCase *usecase.AdminUseCase,
	walletUseCase *usecase.WalletUseCase,
	diagnosisUseCase *usecase.DiagnosisUseCase,
	mediaUseCase *usecase.MediaUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(directoryUseCase)
	productHandler = NewProductHandler(catalogUseCase)
	storyHandler = NewStoryHandler(catalogUseCase)
	traderHandler = NewTraderHandler(traderUseCase)
	adminHandler = NewAdminHandler(adminUseCase)
	walletHandler = NewWalletHandler(walletUseCase)
	diagnosisHandler = NewDiagnosisHandler(diagnosisUseCase)
	fileHandler = NewFileHandler(mediaUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetStoryHandler() *StoryHandler {
	return storyHandler
}

func GetTraderHandler() *TraderHandler {
	return traderHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}

func GetWalletHandler() *WalletHandler {
	return walletHandler
}

func GetDiagnosisHandler() *DiagnosisHandler {
	return diagnosisHandler
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

func identity(c echo.Context) entity.Identity {
	return middleware.IdentityFrom(c)
}
