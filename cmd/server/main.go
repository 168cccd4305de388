package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/gadget-scout/server/internal/agent/contextgen"
	"github.com/gadget-scout/server/internal/agent/model"
	"github.com/gadget-scout/server/internal/agent/registry"
	"github.com/gadget-scout/server/internal/agent/repo"
	"github.com/gadget-scout/server/internal/api"
	"github.com/gadget-scout/server/internal/core"
	logx "github.com/gadget-scout/server/pkg/logger"
	pkgredis "github.com/gadget-scout/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the server, sourced from
// environment variables (loaded from .env for local runs). Redis settings are
// processed separately so memory-backed runs need no REDIS_URL.
type AppConfig struct {
	Environment  string `envconfig:"ENVIRONMENT" default:"development"`
	Server       model.ServerConfig
	Conversation model.ConversationConfig
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	store, cleanup, err := buildStore(cfg.Conversation)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to initialise conversation store")
	}
	defer cleanup()

	assembler := contextgen.NewAssembler(store, registry.New(), cfg.Conversation)

	if cfg.Server.HTTPMode {
		logx.Info().Str("addr", cfg.Server.Addr).Msg("starting HTTP server")
		if err := api.NewServer(assembler).Router().Run(cfg.Server.Addr); err != nil {
			logx.Fatal().Err(err).Msg("HTTP server exited")
		}
		return
	}

	logx.Info().Str("name", cfg.Server.Name).Str("version", cfg.Server.Version).Msg("starting MCP stdio server")
	if err := serveMCP(cfg.Server, assembler); err != nil {
		logx.Fatal().Err(err).Msg("MCP server exited")
	}
}

// buildStore selects the conversation backend. Redis config is only required
// when the redis backend is requested.
func buildStore(cfg model.ConversationConfig) (model.ConversationStore, func(), error) {
	switch cfg.Store.Backend {
	case "redis":
		var redisCfg pkgredis.Config
		if err := envconfig.Process("redis", &redisCfg); err != nil {
			return nil, nil, err
		}
		rdb, err := redisCfg.New()
		if err != nil {
			return nil, nil, err
		}
		ttl, err := time.ParseDuration(cfg.TTL)
		if err != nil {
			return nil, nil, err
		}
		return repo.NewRedisConversationStore(rdb, cfg.HistorySize, ttl), func() { _ = rdb.Close() }, nil
	default:
		return repo.NewMemoryConversationStore(cfg.HistorySize), func() {}, nil
	}
}
