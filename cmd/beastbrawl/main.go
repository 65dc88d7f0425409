package main

import (
	"time"

	"github.com/beastbrawl/beastbrawl/internal/api"
	"github.com/beastbrawl/beastbrawl/internal/constants"
	"github.com/beastbrawl/beastbrawl/internal/logging"
	"github.com/beastbrawl/beastbrawl/internal/service"
)

func main() {
	// Load battle data (elements, moves, items, creatures, trainers). Path
	// may be provided via BEASTBRAWL_CONFIG or defaults to
	// ./beastbrawl_config.json in the current working directory.
	configPath := configPathFromEnv()
	cfg := loadConfigOrExit(configPath)

	repo := createRepositoryOrExit(dbPathFromEnv(cfg))
	manager := service.NewManager(cfg, repo)

	// Background scanner: abandon battles whose player went idle. Abandoned
	// battles are recorded for history but never counted toward stats.
	stop := make(chan struct{})
	go manager.StartExpiryLoop(time.Minute, cfg.SessionTTL, stop)

	router := newRouter(api.NewBattleHandler(manager, repo, cfg))

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
