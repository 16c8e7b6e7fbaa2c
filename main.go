package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/supplyline-web/server/internal/cart"
	"github.com/supplyline-web/server/internal/catalog"
	"github.com/supplyline-web/server/internal/chat"
	"github.com/supplyline-web/server/internal/company"
	"github.com/supplyline-web/server/internal/core"
	"github.com/supplyline-web/server/internal/feedback"
	"github.com/supplyline-web/server/internal/order"
	"github.com/supplyline-web/server/internal/session"
	"github.com/supplyline-web/server/internal/upstream"
	"github.com/supplyline-web/server/internal/users"
	"github.com/supplyline-web/server/internal/web"
	logx "github.com/supplyline-web/server/pkg/logger"
	pkgredis "github.com/supplyline-web/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the gateway, sourced
// from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis    pkgredis.Config
	Upstream upstream.Config
	HTTP     web.Config

	// Session lifetime, e.g. "24h"
	SessionTTL string `envconfig:"SESSION_TTL" default:"24h"`
	// How long the chat mirror keeps messages, e.g. "1h"
	ChatHistoryTTL string `envconfig:"CHAT_HISTORY_TTL" default:"1h"`
}

func main() {
	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	env := core.ParseEnvironment(cfg.Environment)
	logx.Init(logx.LoggerOpts{Environment: env, Service: "storefront-gateway"})

	sessionTTL, err := time.ParseDuration(cfg.SessionTTL)
	if err != nil {
		log.Fatalf("Invalid SESSION_TTL '%s': %v", cfg.SessionTTL, err)
	}
	chatTTL, err := time.ParseDuration(cfg.ChatHistoryTTL)
	if err != nil {
		log.Fatalf("Invalid CHAT_HISTORY_TTL '%s': %v", cfg.ChatHistoryTTL, err)
	}

	rdb, err := cfg.Redis.New()
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api := upstream.New(cfg.Upstream)
	carts := cart.NewStore()
	mirror := chat.NewRedisHistory(rdb, chatTTL)
	hub := chat.NewHub(mirror)
	go hub.Run(ctx)

	srv := web.NewServer(web.Deps{
		Env:       env,
		Sessions:  session.NewStore(rdb, sessionTTL),
		Carts:     carts,
		Catalog:   catalog.NewService(api),
		Orders:    order.NewService(api, carts),
		Companies: company.NewService(api),
		Feedback:  feedback.NewService(api),
		Users:     users.NewService(api),
		Hub:       hub,
		History:   chat.NewHistoryService(api, mirror),
	})

	if err := srv.Serve(ctx, cfg.HTTP); err != nil {
		logx.Fatal().Err(err).Msg("gateway exited")
	}
}
