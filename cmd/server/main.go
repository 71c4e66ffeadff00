package main

import (
	"context"
	"fmt"

	"github.com/costhook/costhook/internal/config"
	"github.com/costhook/costhook/internal/crypto"
	"github.com/costhook/costhook/internal/handler/http"
	"github.com/costhook/costhook/internal/logger"
	"github.com/costhook/costhook/internal/server"
	"github.com/costhook/costhook/internal/service"
	"github.com/costhook/costhook/internal/store"
	"github.com/costhook/costhook/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("costhook-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	if err = migrations.Migrate(storages.DB.DB); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	cipher, err := crypto.NewCredentialCipher(cfg.Crypto.EncryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating credential cipher")
	}

	services := service.NewServices(*storages, cipher, *cfg, log)
	handler := http.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
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
