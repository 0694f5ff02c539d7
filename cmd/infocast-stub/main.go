// Command infocast-stub runs the development double of the InfoCast API
// so the client can be exercised without the real service.
package main

import (
	"github.com/infocast/infocast/internal/pkg/config"
	"github.com/infocast/infocast/internal/stub"
	"github.com/infocast/infocast/internal/stub/memory"
	"github.com/infocast/infocast/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.Stub.LogLevel, Pretty: true})

	store := memory.NewStore()
	e := stub.NewRouter(store, stub.Options{
		JWTSecret: cfg.Stub.JWTSecret,
		TokenTTL:  cfg.Stub.TokenTTL,
	}, log)

	log.Info().Str("addr", cfg.Stub.Addr).Msg("stub server listening")
	if err := e.Start(cfg.Stub.Addr); err != nil {
		log.Fatal().Err(err).Msg("stub server stopped")
	}
}
