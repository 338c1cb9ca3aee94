package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/storehub/internal/admincli"
	"github.com/dmitrijs2005/storehub/internal/logging"
	"github.com/dmitrijs2005/storehub/internal/server/config"
	"github.com/dmitrijs2005/storehub/internal/server/media"
	"github.com/dmitrijs2005/storehub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/storehub/internal/server/services"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}
	if cfg.DatabaseDSN == "" {
		log.Fatalf("database dsn is required to create an admin account")
	}

	logger, err := logging.New(cfg.LogBackend)
	if err != nil {
		log.Fatalf("%v", err)
	}

	m, err := repomanager.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer m.Close()

	if err := m.RunMigrations(ctx); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	a, err := services.NewAuthSession(m, cfg, media.NewMemoryImageStore(), logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if _, err := admincli.Run(ctx, a, os.Stdin, os.Stdout); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}
