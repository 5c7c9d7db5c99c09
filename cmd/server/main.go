package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/itswalshy/sbux.tipjar/internal/auth"
	"github.com/itswalshy/sbux.tipjar/internal/ocr"
	"github.com/itswalshy/sbux.tipjar/internal/ocr/tesseract"
	"github.com/itswalshy/sbux.tipjar/internal/server"
	"github.com/itswalshy/sbux.tipjar/internal/service"
	"github.com/itswalshy/sbux.tipjar/internal/storage/sqlite"
	"github.com/itswalshy/sbux.tipjar/pkg/logging"
)

const tokenDuration = 24 * time.Hour

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	port := getEnv("PORT", "8080")
	dbPath := getEnv("DB_PATH", "./data/tipjar.db")
	staticPath := os.Getenv("STATIC_PATH")
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET must be set")
		os.Exit(1)
	}

	if getEnv("GIN_MODE", "") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	// OCR is optional: without it, report upload returns 503 while pasted
	// text still works.
	var engine ocr.Engine
	if getEnv("OCR_ENGINE", "tesseract") == "tesseract" {
		engine = tesseract.New()
		slog.Info("OCR engine configured", "engine", engine.Name())
	} else {
		slog.Warn("No OCR engine configured; image uploads disabled")
	}

	reports := service.NewReportService(store, engine)
	authn := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(jwtSecret, tokenDuration)

	router := server.NewRouter(reports, authn, jwtManager, staticPath)

	addr := fmt.Sprintf(":%s", port)
	slog.Info("TipJar server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
