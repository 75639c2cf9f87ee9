package main

import (
	"context"
	"log"
	"net/http"
	"os"

	webAdapter "invoicing-backend/internal/adapters/web"
	"invoicing-backend/internal/app"
	"invoicing-backend/internal/core"
	"invoicing-backend/internal/db"
	"invoicing-backend/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	zlog, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		zlog.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		zlog.Fatal("JWT_SECRET environment variable not set")
	}

	authService := core.NewAuthService(pool)
	contactService := core.NewContactService(pool)
	catalogService := core.NewCatalogService(pool)
	notificationService := core.NewNotificationService(pool)
	orderService := core.NewOrderService(pool, catalogService, notificationService)

	svc := app.NewAppService(authService, contactService, catalogService, orderService, notificationService)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins, jwtSecret, zlog)

	zlog.Info("server starting", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		zlog.Fatal("server", zap.Error(err))
	}
}
