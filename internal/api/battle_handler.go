package api

import (
	"net/http"

	"github.com/beastbrawl/beastbrawl/internal/config"
	"github.com/beastbrawl/beastbrawl/internal/service"
	"github.com/beastbrawl/beastbrawl/internal/storage"

	"github.com/gin-gonic/gin"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	manager *service.Manager
	repo    storage.Repository
	cfg     *config.LoadedConfig
}

// NewBattleHandler creates a new BattleHandler over the session manager,
// repository and loaded battle data.
func NewBattleHandler(manager *service.Manager, repo storage.Repository, cfg *config.LoadedConfig) *BattleHandler {
	return &BattleHandler{manager: manager, repo: repo, cfg: cfg}
}

// ListTrainers returns the configured trainer names, in declaration order.
func (h *BattleHandler) ListTrainers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"trainers": h.cfg.TrainerNames})
}
