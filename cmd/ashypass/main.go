package main

import (
	"context"
	"fmt"

	"github.com/bigcommunity/ashypass/internal/cli"
	"github.com/bigcommunity/ashypass/internal/config"
	"github.com/bigcommunity/ashypass/internal/logger"
	"github.com/bigcommunity/ashypass/internal/service"
	"github.com/bigcommunity/ashypass/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// JSON log lines go to a file so they never interleave with prompts
	log := logger.NewFileLogger("ashypass")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := log.WithContext(context.Background())

	db, err := store.NewConnectSQLite(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to vault database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error migrating vault schema")
	}

	repos := store.NewRepositories(db, log)
	services := service.NewServices(repos, cfg, log)

	app := cli.New(services.VaultService, cfg.Generator, log)
	if err := app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("cli run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
