package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	httpDelivery "github.com/tair/product-catalog/internal/catalog/delivery/http"
	"github.com/tair/product-catalog/internal/catalog/events"
	"github.com/tair/product-catalog/internal/catalog/repository"
	"github.com/tair/product-catalog/kafka"
	"github.com/tair/product-catalog/pkg/database"
	"github.com/tair/product-catalog/pkg/logger"
	"github.com/tair/product-catalog/pkg/tracing"
)

const serviceName = "catalog-service"

func main() {
	// .env is optional; the environment wins either way
	_ = godotenv.Load()

	logger.Init(serviceName, getEnv("APP_ENV", "development") == "development")
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		logger.Logger.Fatal().Msg("MONGODB_URI is required")
	}
	kafkaBrokers := os.Getenv("KAFKA_BROKERS")
	if kafkaBrokers == "" {
		logger.Logger.Fatal().Msg("KAFKA_BROKERS is required")
	}

	dbName := getEnv("MONGO_DBNAME", "catalog")
	client, err := database.Connect(database.Config{URI: mongoURI, DBName: dbName})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer database.Disconnect(client)

	db := client.Database(dbName)

	mongoRepo := repository.NewMongoProductRepository(db)
	repo := repository.NewTracingProductRepository(mongoRepo)

	indexCtx, indexCancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := mongoRepo.EnsureIndexes(indexCtx); err != nil {
		indexCancel()
		logger.Logger.Fatal().Err(err).Msg("Failed to ensure product indexes")
	}
	indexCancel()

	publisher, err := kafka.NewPublisher(strings.Split(kafkaBrokers, ","))
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize Kafka publisher")
	}
	defer publisher.Close()

	fanout := events.NewFanout(publisher)
	handler := httpDelivery.NewProductHandler(repo, fanout)

	router := mux.NewRouter()
	httpDelivery.RegisterMiddlewares(router, httpDelivery.DefaultMiddlewareConfig())

	// GET responses are served from Redis when configured
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
		router.Use(httpDelivery.CacheMiddleware(redisClient, httpDelivery.DefaultCacheConfig()))
		logger.Logger.Info().Str("addr", redisAddr).Msg("Response cache enabled")
	}

	handler.RegisterRoutes(router)
	router.Handle("/metrics", promhttp.Handler())

	corsMiddleware := httpDelivery.SetupCORS(httpDelivery.DefaultMiddlewareConfig())
	httpPort := getEnv("HTTP_PORT", "8081")

	server := &http.Server{
		Addr:    ":" + httpPort,
		Handler: otelhttp.NewHandler(corsMiddleware(router), "catalog-http"),
	}

	go func() {
		logger.Logger.Info().Str("port", httpPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
		logger.Logger.Error().Err(err).Msg("Tracer shutdown failed")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
