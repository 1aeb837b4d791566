package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	app_carts "ecommerce/internal/app/carts"
	app_orders "ecommerce/internal/app/orders"
	app_products "ecommerce/internal/app/products"
	app_reviews "ecommerce/internal/app/reviews"
	app_users "ecommerce/internal/app/users"
	"ecommerce/internal/cache"
	"ecommerce/internal/config"
	"ecommerce/internal/gateway/portone"
	http_carts "ecommerce/internal/handler/http/carts"
	http_orders "ecommerce/internal/handler/http/orders"
	http_products "ecommerce/internal/handler/http/products"
	http_reviews "ecommerce/internal/handler/http/reviews"
	http_users "ecommerce/internal/handler/http/users"
	"ecommerce/internal/infrastructure/database"
	"ecommerce/internal/infrastructure/kafka"
	"ecommerce/internal/outbox"
	postgres_cart_repo "ecommerce/internal/repository/cart_repo/postgres"
	postgres_order_repo "ecommerce/internal/repository/order_repo/postgres"
	postgres_outbox_repo "ecommerce/internal/repository/outbox_repo/postgres"
	postgres_payment_repo "ecommerce/internal/repository/payment_repo/postgres"
	postgres_product_repo "ecommerce/internal/repository/product_repo/postgres"
	postgres_review_repo "ecommerce/internal/repository/review_repo/postgres"
	postgres_user_repo "ecommerce/internal/repository/user_repo/postgres"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.TimeKey = "timestamp"

	appLogger, err := zapConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create zap logger: %v\n", err)
		os.Exit(1)
	}
	appLogger.Info("E-commerce service starting...")

	appLogger.Info("Waiting for database to be available...")
	dbConfig := database.DBConfig{
		Host:     cfg.DBConfig.DBHost,
		Port:     cfg.DBConfig.DBPort,
		User:     cfg.DBConfig.DBUser,
		Password: cfg.DBConfig.DBPassword,
		DBName:   cfg.DBConfig.DBName,
		SSLMode:  cfg.DBConfig.DBSSLMode,
	}

	var db *sql.DB
	maxRetries := 10
	retryDelay := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = database.NewPostgresDB(dbConfig)
		if err == nil {
			appLogger.Info("Successfully connected to PostgreSQL database!")
			break
		}
		appLogger.Warn(fmt.Sprintf("Failed to connect to database (attempt %d/%d): %v. Retrying in %s...", i+1, maxRetries, err, retryDelay))
		time.Sleep(retryDelay)
	}

	if db == nil {
		appLogger.Fatal("Could not connect to database after multiple retries. Exiting.", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Error closing database connection", zap.Error(err))
		} else {
			appLogger.Info("Database connection closed.")
		}
	}()

	appLogger.Info("Running database migrations...")
	migrateDSN := "postgres://" + cfg.GetDBMigrationConnectionString()
	m, err := migrate.New(cfg.MigrationsPath, migrateDSN)
	if err != nil {
		appLogger.Fatal("Failed to create migrate instance", zap.Error(err))
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		appLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}
	appLogger.Info("Database migrations completed successfully (or no new migrations).")

	redisClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			appLogger.Error("Error closing Redis client", zap.Error(err))
		}
	}()
	productCache := cache.NewProductCache(redisClient, cfg.ProductCacheTTL, appLogger.With(zap.String("component", "ProductCache")))
	appLogger.Info("Redis product cache ready.")

	kafkaProducer := kafka.NewProducer(cfg.GetKafkaBrokers(), appLogger)
	defer func() {
		if err := kafkaProducer.Close(); err != nil {
			appLogger.Error("Error closing Kafka producer", zap.Error(err))
		} else {
			appLogger.Info("Kafka producer closed.")
		}
	}()
	appLogger.Info("Kafka producer created successfully.")

	userRepository := postgres_user_repo.NewUserRepository(db, appLogger)
	productRepository := postgres_product_repo.NewProductRepository(db, appLogger)
	cartRepository := postgres_cart_repo.NewCartRepository(db, appLogger)
	paymentRepository := postgres_payment_repo.NewPaymentRepository(db, appLogger)
	outboxRepository := postgres_outbox_repo.NewOutboxRepository(db, appLogger)
	reviewRepository := postgres_review_repo.NewReviewRepository(db, appLogger)
	orderRepository := postgres_order_repo.NewOrderRepository(db, productRepository, paymentRepository, outboxRepository, appLogger)

	paymentGateway := portone.NewClient(cfg.PortOneBaseURL, cfg.PortOneAPISecret, cfg.PortOneTimeout,
		appLogger.With(zap.String("component", "PortOneClient")))

	userService := app_users.NewUserService(userRepository, appLogger.With(zap.String("component", "UserService")))
	productService := app_products.NewProductService(productRepository, productCache, appLogger.With(zap.String("component", "ProductService")))
	cartService := app_carts.NewCartService(userRepository, productRepository, cartRepository, appLogger.With(zap.String("component", "CartService")))
	reviewService := app_reviews.NewReviewService(reviewRepository, userRepository, productRepository, appLogger.With(zap.String("component", "ReviewService")))
	orderService := app_orders.NewOrderService(orderRepository, userRepository, productRepository, paymentRepository,
		paymentGateway, productCache, appLogger.With(zap.String("component", "OrderService")))

	outboxProcessor := outbox.NewProcessor(outboxRepository, kafkaProducer,
		cfg.OutboxPollInterval, cfg.OutboxPollTimeout,
		appLogger.With(zap.String("component", "OutboxProcessor")))
	outboxProcessor.Start(context.Background())
	appLogger.Info("Transactional outbox sender started.")

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		http_users.RegisterRoutes(r, userService, appLogger)
		http_products.RegisterRoutes(r, productService, reviewService, appLogger)
		http_carts.RegisterRoutes(r, cartService, appLogger)
		http_orders.RegisterRoutes(r, orderService, appLogger)
		http_reviews.RegisterRoutes(r, reviewService, appLogger)
	})

	serverAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()
	appLogger.Info("E-commerce service started", zap.String("address", serverAddr))

	<-sigChan

	appLogger.Info("Shutting down e-commerce service...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Fatal("Graceful shutdown failed", zap.Error(err))
	}
	outboxProcessor.Stop()
	appLogger.Info("E-commerce service stopped.")
}
