package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"souqmanaqil/internal/adapter/api"
	"souqmanaqil/internal/adapter/api/handler"
	apimiddleware "souqmanaqil/internal/adapter/api/middleware"
	"souqmanaqil/internal/adapter/api/router"
	"souqmanaqil/internal/adapter/repository"
	"souqmanaqil/internal/bootstrap"
	"souqmanaqil/internal/infrastructure/ratelimit"
	"souqmanaqil/internal/infrastructure/websocket"
	"souqmanaqil/internal/usecase"
	"souqmanaqil/pkg/config"
	"souqmanaqil/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration: %v", err)
	}
	logger.Configure(cfg.LogLevel, cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open backing services: %v", err)
	}
	defer res.Close()

	userRepo := repository.NewUserRepository(res.Store)
	productRepo := repository.NewProductRepository(res.Store)
	orderRepo := repository.NewOrderRepository(res.Store)
	walletTxnRepo := repository.NewWalletTransactionRepository(res.Store)
	diagnosisRepo := repository.NewDiagnosisRepository(res.Store)
	activityRepo := repository.NewActivityRepository(res.Store)
	storyRepo := repository.NewStoryRepository(res.Store)

	directoryUseCase := usecase.NewDirectoryUseCase(userRepo)
	authUseCase := usecase.NewAuthUseCase(directoryUseCase, res.Sessions, res.Realtime, cfg.JWTSecret, time.Duration(cfg.JWTExpiry)*time.Second)
	catalogUseCase := usecase.NewCatalogUseCase(productRepo, userRepo, storyRepo)
	traderUseCase := usecase.NewTraderUseCase(directoryUseCase, productRepo, orderRepo, activityRepo)
	adminUseCase := usecase.NewAdminUseCase(directoryUseCase, productRepo, orderRepo, walletTxnRepo, diagnosisRepo, storyRepo, usecase.NewConfirmationDialogs())
	walletUseCase := usecase.NewWalletUseCase(walletTxnRepo, userRepo)
	diagnosisUseCase := usecase.NewDiagnosisUseCase(diagnosisRepo)
	mediaUseCase := usecase.NewMediaUseCase(res.Files, cfg.MaxUploadSize)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	limiter := ratelimit.NewRateLimiter(cfg.AuthRateLimit)
	go limiter.Run(ctx, 10*time.Minute)

	handler.Setup(authUseCase, directoryUseCase, catalogUseCase, traderUseCase, adminUseCase, walletUseCase, diagnosisUseCase, mediaUseCase)
	handler.SetupHealthHandler(wsManager, cfg.DatastoreDriver)
	wsHandler := handler.NewWebSocketHandler(wsManager, catalogUseCase, traderUseCase, adminUseCase)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(apimiddleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("8M"))

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authUseCase)
	router.Setup(e, authMiddleware, limiter, wsHandler)

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}
