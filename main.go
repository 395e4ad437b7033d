package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/essomba/schoolhub/cache/redis"
	"github.com/essomba/schoolhub/config"
	"github.com/essomba/schoolhub/momo"
	"github.com/essomba/schoolhub/notifier"
	"github.com/essomba/schoolhub/repository/postgres"
	"github.com/essomba/schoolhub/storage/cloudinary"
	"github.com/gin-gonic/gin"
)

func main() {
	// Try to load from config.yaml first, fallback to environment variables
	cfg, err := config.Initialise("config.yaml", false)
	if err != nil {
		log.Printf("Config file not found or invalid, using environment variables: %v", err)
		cfg, err = config.Initialise("", true)
		if err != nil {
			log.Fatal("Failed to load configuration:", err)
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.Open(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer func() {
		if err := postgres.Close(db); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	store, err := redis.NewStore(cfg.Redis.GetRedisURL(), cfg.Redis.Password, cfg.Redis.DB, time.Duration(cfg.Redis.OpTimeout)*time.Millisecond)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}()

	publisher := notifier.NewPublisher(&cfg.Kafka)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Printf("Error closing Kafka producer: %v", err)
		}
	}()

	momoService := momo.NewService(momo.NewClient(&cfg.Momo), postgres.NewMomoRepository(db), cfg.Momo.Currency)

	router := SetupRouter(Dependencies{
		Store:         store,
		Users:         postgres.NewUserRepository(db),
		Academic:      postgres.NewAcademicRepository(db),
		Calendar:      postgres.NewCalendarRepository(db),
		Students:      postgres.NewStudentRepository(db),
		Notifications: postgres.NewNotificationRepository(db),
		Momo:          momoService,
		Publisher:     publisher,
		Uploader:      cloudinary.NewUploader(&cfg.Cloudinary),
		JWT:           NewJWTService(cfg.JWTSecret),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting School Hub API on port %s\n", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
