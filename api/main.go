package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shaikazeem2001/inventory/internal/auth"
	"github.com/shaikazeem2001/inventory/internal/config"
	"github.com/shaikazeem2001/inventory/internal/http/ban"
	"github.com/shaikazeem2001/inventory/internal/http/handlers"
	mw "github.com/shaikazeem2001/inventory/internal/http/middleware"
	rl "github.com/shaikazeem2001/inventory/internal/http/rate_limiter"
	"github.com/shaikazeem2001/inventory/internal/http/router"
	"github.com/shaikazeem2001/inventory/internal/redissvc"
	"github.com/shaikazeem2001/inventory/internal/repo"
	"github.com/shaikazeem2001/inventory/internal/upload"
)

// @title Inventory API
// @version 1.0
// @description REST API for managing inventory products, CSV imports and exports.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.LoadEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Invalid configuration:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	auth.Configure(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	rl.Configure(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	ban.Configure(cfg.RateLimit.BanStrikes, cfg.RateLimit.BanTTL)
	go rl.StartVisitorCleanupLoop(ctx.Done())

	stores, err := repo.Open(cfg.Storage)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}
	defer stores.Close()
	log.Printf("✅ Storage ready (%s)", cfg.Storage.Driver)

	redisService, err := redissvc.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("❌ Could not connect to Redis: %v", err)
	}

	var refreshStore auth.RefreshStore
	if redisService != nil {
		defer redisService.Close()
		mw.SetRedisService(redisService)
		refreshStore = auth.NewRedisRefreshStore(redisService.Rdb())
		go ban.StartDailyBanSummary(ctx.Done(), 24*time.Hour)
		log.Println("✅ Redis connected, bans enabled")
	} else {
		memStore := auth.NewMemoryRefreshStore()
		go memStore.StartRefreshTokenCleaner(ctx, 30*time.Minute)
		refreshStore = memStore
		log.Println("⚠️ Redis not configured, refresh tokens kept in memory and bans disabled")
	}

	handlers.SetStores(stores)
	handlers.SetAuthService(auth.NewAuthService(refreshStore, cfg.Auth.RefreshTTL))
	handlers.SetUploadStore(upload.NewStore(cfg.Upload.Dir, cfg.Upload.MaxBytes))
	handlers.SetLowStockThreshold(cfg.Inventory.LowStockThreshold)
	mw.SetUserRepo(stores.Users)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router.NewRouter(cfg.Server.FrontendURL),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown: %v", err)
		}
	}()

	log.Printf("✅ Server running on %s", cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("👋 Server stopped")
}
