package main

import (
	"os"

	"github.com/beastbrawl/beastbrawl/internal/config"
	"github.com/beastbrawl/beastbrawl/internal/constants"
	"github.com/beastbrawl/beastbrawl/internal/logging"
	"github.com/beastbrawl/beastbrawl/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid battle configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db)
}

// configPathFromEnv returns the data file path, preferring the environment
// override over the local default.
func configPathFromEnv() string {
	if p := os.Getenv(constants.EnvConfigPath); p != "" {
		return p
	}
	return "./beastbrawl_config.json"
}

// dbPathFromEnv resolves the database path: environment override first, then
// the configured path.
func dbPathFromEnv(cfg *config.LoadedConfig) string {
	if p := os.Getenv(constants.EnvDBPath); p != "" {
		return p
	}
	return cfg.DBPath
}
