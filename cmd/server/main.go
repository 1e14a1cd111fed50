package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/smartcanteen/canteen-api/internal/config"
	"github.com/smartcanteen/canteen-api/internal/credentials"
	"github.com/smartcanteen/canteen-api/internal/events"
	"github.com/smartcanteen/canteen-api/internal/handlers"
	"github.com/smartcanteen/canteen-api/internal/logging"
	"github.com/smartcanteen/canteen-api/internal/middleware/loggingmw"
	"github.com/smartcanteen/canteen-api/internal/repo"
	"github.com/smartcanteen/canteen-api/internal/service/auth"
	"github.com/smartcanteen/canteen-api/internal/service/order"
	httpserver "github.com/smartcanteen/canteen-api/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	userRepo := &repo.UserRepo{DB: db}
	orderRepo := &repo.OrderRepo{DB: db}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userRepo.EnsureOwner(ctx, configuration.OWNER_EMAIL, configuration.OWNER_NAME, credentials.OwnerToken); err != nil {
		cancel()
		log.Fatalf("owner bootstrap failed: %v", err)
	}
	cancel()

	var brokers []string
	if configuration.KAFKA_ADDRESS != "" {
		brokers = strings.Split(configuration.KAFKA_ADDRESS, ",")
	}
	producer := events.NewProducer(brokers)

	deriver := credentials.NewPRNDeriver(configuration.OWNER_EMAIL, configuration.EMAIL_DOMAIN)
	authSvc := &auth.Service{Users: userRepo, Deriver: deriver}
	orderSvc := &order.Service{
		Orders:     orderRepo,
		Users:      userRepo,
		Producer:   producer,
		OwnerEmail: configuration.OWNER_EMAIL,
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:  &handlers.AuthHandler{Svc: authSvc},
		OrderHandler: &handlers.OrderHandler{Svc: orderSvc},
		MenuHandler:  &handlers.MenuHandler{},
	})

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
