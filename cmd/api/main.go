package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/rs/cors"

	"autoplay/cmd/api/router"
	"autoplay/config"
	"autoplay/db"
	_ "autoplay/docs"
	"autoplay/internal/logger"
)

// @title           Autoplay API
// @version         1.0
// @description     API for AI-assisted social media post management
// @BasePath        /api/v1
func main() {
	config.InitApp()

	level := config.GetConfig().Logging.Level
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}
	if level == "" {
		level = "info"
	}
	logger.Log = logger.NewLogger(level)

	if err := db.Init(context.Background()); err != nil {
		log.Fatal(err)
	}

	r, err := router.New()
	if err != nil {
		log.Fatal(err)
	}

	// CORS sits outside the gin engine so preflights never reach the routes.
	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ALLOWED_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}
	handler := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id", "X-Span-Id"},
		AllowCredentials: true,
	}).Handler(r)

	addr := config.GetConfig().Server.Addr
	logger.InfoWithFields("api listening", logger.Fields{"addr": addr})
	if err := http.ListenAndServe(addr, handler); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
