package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-auth-api/internal/config"
	"github.com/go-auth-api/internal/infrastructure/dynamo"
	"github.com/go-auth-api/internal/infrastructure/google"
	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
	rediscache "github.com/go-auth-api/internal/infrastructure/redis"
	"github.com/go-auth-api/internal/infrastructure/smtp"
	transporthttp "github.com/go-auth-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap the users table (created if it doesn't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.UsersTable)

	jwtProvider, err := jwtinfra.NewProvider(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		log.Fatalf("jwt provider: %v", err)
	}

	redisClient := rediscache.NewClient(cfg)
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("WARN: closing redis client: %v", err)
		}
	}()

	deps := &transporthttp.Deps{
		UserRepo:       dynamo.NewUserRepo(dynamoClient, cfg.UsersTable),
		Cache:          rediscache.NewCache(redisClient),
		Mailer:         smtp.NewMailer(cfg),
		JWTProvider:    jwtProvider,
		GoogleVerifier: google.NewVerifier(cfg.GoogleClientID),
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
