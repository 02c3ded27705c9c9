package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MR-PROSTER/Expensync/internal/api"
	"github.com/MR-PROSTER/Expensync/internal/api/handlers"
	"github.com/MR-PROSTER/Expensync/internal/notify"
	"github.com/MR-PROSTER/Expensync/internal/repository"
	"github.com/MR-PROSTER/Expensync/internal/service"
	"github.com/MR-PROSTER/Expensync/pkg/auth"
	"github.com/MR-PROSTER/Expensync/pkg/config"
	"github.com/MR-PROSTER/Expensync/pkg/logger"
	"github.com/MR-PROSTER/Expensync/pkg/postgres"

	"go.uber.org/zap"
	"golang.ngrok.com/ngrok"
	ngrokconfig "golang.ngrok.com/ngrok/config"
)

// @title Expensync API
// @version 1.0
// @description Expense tracking service with receipt parsing, fraud checks, document chat and trip analytics
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@expensync.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Expensync service")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	docRepo := repository.NewDocumentRepository(db, appLogger)
	expenseRepo := repository.NewExpenseRepository(db, appLogger)
	tripRepo := repository.NewTripRepository(db, appLogger)
	fraudRepo := repository.NewFraudRepository(db, appLogger)
	knowledgeRepo := repository.NewKnowledgeRepository(db, appLogger)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Event publisher
	var publisher notify.Publisher = notify.NopPublisher{}
	if cfg.AMQP.URL != "" {
		rabbitPublisher, err := notify.NewRabbitMQPublisher(cfg.AMQP.URL, cfg.AMQP.Queue, appLogger)
		if err != nil {
			appLogger.Warn("RabbitMQ unavailable, expense events disabled", zap.Error(err))
		} else {
			publisher = rabbitPublisher
		}
	}
	defer publisher.Close()

	// Services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)

	llmService, err := service.NewLLMService(&cfg.LLM, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}

	ocrService := service.NewOCRService(llmService, &cfg.OCR, appLogger)
	docService := service.NewDocumentService(docRepo, ocrService, cfg.Server.UploadDir, appLogger)

	ragService := service.NewRAGService(knowledgeRepo, llmService, &cfg.RAG, appLogger)
	chatService := service.NewChatService(docRepo, knowledgeRepo, ragService, llmService, appLogger)

	pinner := service.NewPinnerService(cfg.Storage.IPFSAPIURL, appLogger)
	ledger := service.NewLedgerService(cfg.Ledger.RPCURL, cfg.Ledger.AnchorAccount, appLogger)

	expenseService := service.NewExpenseService(expenseRepo, tripRepo, docService, ocrService, pinner, ledger, publisher, appLogger)
	fraudService := service.NewFraudService(expenseRepo, fraudRepo, llmService, appLogger)
	analyticsService := service.NewAnalyticsService(expenseRepo, tripRepo, llmService, appLogger)
	tripService := service.NewTripService(tripRepo, appLogger)

	// Router
	app := api.SetupRouter(api.Handlers{
		Auth:      handlers.NewAuthHandler(authService, appLogger),
		Document:  handlers.NewDocumentHandler(docService, appLogger),
		Expense:   handlers.NewExpenseHandler(expenseService, appLogger),
		AI:        handlers.NewAIHandler(expenseService, fraudService, appLogger),
		Chat:      handlers.NewChatHandler(chatService, appLogger),
		Analytics: handlers.NewAnalyticsHandler(analyticsService, appLogger),
		Trip:      handlers.NewTripHandler(tripService, appLogger),
	}, jwtManager, cfg.Server.UploadDir, appLogger)

	// Optional public tunnel. When a domain is configured the service is
	// reachable from outside and the tunnel is released during shutdown.
	tunnelCh := make(chan ngrok.Tunnel, 1)
	go func() {
		if cfg.Tunnel.NgrokAuthToken == "" {
			addr := ":" + cfg.Server.Port
			appLogger.Info("Server starting", zap.String("address", addr))
			if err := app.Listen(addr); err != nil {
				appLogger.Fatal("Server failed", zap.Error(err))
			}
			return
		}

		opts := []ngrokconfig.HTTPEndpointOption{}
		if cfg.Tunnel.NgrokDomain != "" {
			opts = append(opts, ngrokconfig.WithDomain(cfg.Tunnel.NgrokDomain))
		}

		tun, err := ngrok.Listen(ctx,
			ngrokconfig.HTTPEndpoint(opts...),
			ngrok.WithAuthtoken(cfg.Tunnel.NgrokAuthToken),
		)
		if err != nil {
			appLogger.Fatal("Failed to open tunnel", zap.Error(err))
		}
		tunnelCh <- tun

		appLogger.Info("Server starting behind tunnel", zap.String("url", tun.URL()))
		if err := app.Listener(tun); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
	select {
	case tun := <-tunnelCh:
		if err := tun.CloseWithContext(ctx); err != nil {
			appLogger.Error("Tunnel close error", zap.Error(err))
		}
	default:
	}

	cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	chatService.CleanupMarked(cleanupCtx)
}
