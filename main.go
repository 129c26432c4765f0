package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"leanfunnel/internal"
	"leanfunnel/internal/config"
	"leanfunnel/internal/container"
	"leanfunnel/internal/errors"
	"leanfunnel/ui"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase opens the optional snapshot history database
func initDatabase(ctx context.Context, appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to connect to database"))
	}
	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Log.Level))
	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appContainer, err := container.New(appConfig, logger)
	if err != nil {
		log.Fatalf("Failed to create container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	if err := appContainer.InitSource(ctx); err != nil {
		log.Fatalf("Failed to load Google credentials: %v", err)
	}

	if appConfig.HistoryEnabled() {
		db, err := initDatabase(ctx, appConfig)
		if err != nil {
			logger.Error("snapshot history disabled: %v", err)
		} else if err := appContainer.InitWithDatabase(ctx, db); err != nil {
			db.Close()
			logger.Error("snapshot history disabled: %v", err)
		}
	}

	service, err := appContainer.Build()
	if err != nil {
		log.Fatalf("Failed to build dashboard service: %v", err)
	}

	server := ui.NewServer(ui.Assets)
	if err := server.Initialize(service, appConfig.Server.Title, logger); err != nil {
		log.Fatalf("Failed to initialize UI server: %v", err)
	}

	if err := server.Serve(ctx, ":"+appConfig.Server.Port); err != nil {
		logger.Error("server stopped: %v", err)
		os.Exit(1)
	}
	logger.Info("dashboard stopped")
}
