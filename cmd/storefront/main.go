package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/an678-mhg/test-fe-interview-ecom/internal/api"
	"github.com/an678-mhg/test-fe-interview-ecom/internal/auth"
	"github.com/an678-mhg/test-fe-interview-ecom/internal/cart"
	"github.com/an678-mhg/test-fe-interview-ecom/internal/checkout"
	storehttp "github.com/an678-mhg/test-fe-interview-ecom/internal/http"
	"github.com/an678-mhg/test-fe-interview-ecom/internal/persist"
	"github.com/an678-mhg/test-fe-interview-ecom/internal/products"
)

type Config struct {
	HTTPPort        string
	APIBaseURL      string
	RedisAddr       string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	PaymentDelay    time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		APIBaseURL:      getEnv("API_BASE_URL", api.DefaultBaseURL),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		PaymentDelay:    1500 * time.Millisecond,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("no .env loaded: %v", err)
	}

	cfg := loadConfig()

	// Persistence: Redis when configured, otherwise session state lives
	// only for the process lifetime.
	var store persist.Store
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		store = persist.NewRedisStore(client)
		log.Printf("persisting state to redis at %s", cfg.RedisAddr)
	} else {
		store = persist.NewMemoryStore()
		log.Printf("REDIS_ADDR not set, state will not survive restarts")
	}

	client := api.NewClient(cfg.APIBaseURL, nil)

	cartStore := cart.New(store)
	authStore := auth.New(client, store)
	authStore.OnLogout(cartStore.Clear)

	productsStore := products.New(client)
	searchInput := products.NewSearchInput(productsStore, products.DebounceDelay)

	checkoutService := checkout.NewService(client, cartStore, authStore, cfg.PaymentDelay)

	handlers := storehttp.NewHandlers(authStore, productsStore, searchInput, cartStore, checkoutService, client)
	router := storehttp.NewRouter(handlers, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
