package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/habitloop/habit-analysis-engine/internal/adapters/cache"
	adapterHTTP "github.com/habitloop/habit-analysis-engine/internal/adapters/handler/http"
	"github.com/habitloop/habit-analysis-engine/internal/adapters/repository"
	"github.com/habitloop/habit-analysis-engine/internal/core/domain"
	"github.com/habitloop/habit-analysis-engine/internal/core/services"
	"github.com/habitloop/habit-analysis-engine/internal/core/workers"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	startTime := time.Now()

	_ = godotenv.Load()

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	serverPort := getEnv("PORT", "8080")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	var habitRepo domain.HabitRepository = repository.NewPostgresHabitRepository(db)
	completionRepo := repository.NewPostgresCompletionRepository(db)

	rdb := connectRedis()
	if rdb != nil {
		habitRepo = repository.NewCachedHabitRepository(habitRepo, rdb)
	}

	worker := workers.NewStreakWorker(habitRepo, completionRepo)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	worker.Start(workerCtx)

	habitService := services.NewHabitService(habitRepo, completionRepo, worker)
	analysisService := services.NewAnalysisService(habitRepo, completionRepo)

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		seeded, err := repository.SeedDemoData(context.Background(), habitRepo, completionRepo, time.Now().UTC())
		if err != nil {
			log.Printf("Demo seeding failed: %v", err)
		} else if seeded > 0 {
			log.Printf("Seeded %d demo habits.", seeded)
		}
	}

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		HabitHandler:    adapterHTTP.NewHabitHandler(habitService),
		AnalysisHandler: adapterHTTP.NewAnalysisHandler(analysisService),
		DB:              db,
		Redis:           rdb,
		StartTime:       startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Habit Analysis Engine running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}

// connectRedis is best-effort: the cache and rate limiter are optional,
// so a missing or unreachable Redis only logs a warning.
func connectRedis() *redis.Client {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		log.Println("REDIS_HOST not set, running without cache and rate limiting.")
		return nil
	}

	port := getEnv("REDIS_PORT", "6379")
	password := os.Getenv("REDIS_PASSWORD")
	dbIndex, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	rdb, err := cache.NewRedisClient(host, port, password, dbIndex)
	if err != nil {
		log.Printf("Redis unavailable (%v), running without cache and rate limiting.", err)
		return nil
	}

	log.Println("Redis connected successfully.")
	return rdb
}
