package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beastbrawl/beastbrawl/internal/constants"
	"github.com/beastbrawl/beastbrawl/internal/logging"
	"github.com/beastbrawl/beastbrawl/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateBattlePayload struct {
	PlayerTrainer string `json:"player_trainer"`
	EnemyTrainer  string `json:"enemy_trainer"`
	WildCreature  string `json:"wild_creature"`
	Seed          int64  `json:"seed"`
}

// CreateBattle starts a new battle session against a configured enemy
// trainer or a wild creature, and returns its ID with the initial snapshot.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req CreateBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.PlayerTrainer == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrTrainerNameRequired})
		return
	}

	sess, err := h.manager.CreateBattle(service.CreateBattleRequest{
		PlayerTrainer: req.PlayerTrainer,
		EnemyTrainer:  req.EnemyTrainer,
		WildCreature:  req.WildCreature,
		Seed:          req.Seed,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownTrainer), errors.Is(err, service.ErrUnknownCreature):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			logging.Error("failed to create battle", err, logging.Fields{
				constants.LogFieldTrainer: req.PlayerTrainer,
			})
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		}
		return
	}

	logging.Info("battle created", logging.Fields{
		constants.LogFieldBattleID: sess.ID,
		constants.LogFieldTrainer:  sess.PlayerName,
	})
	c.JSON(http.StatusCreated, snapshotSession(sess))
}

// GetBattle returns the current snapshot of a battle session.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	id := normalizeBattleID(c.Param("battleID"))
	if id == "" || !battleIDRegex.MatchString(id) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	sess, ok := h.manager.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	c.JSON(http.StatusOK, snapshotSession(sess))
}

// SubmitAction applies the player's choice for the current round and returns
// the resolved messages plus a fresh snapshot.
func (h *BattleHandler) SubmitAction(c *gin.Context) {
	id := normalizeBattleID(c.Param("battleID"))
	if id == "" || !battleIDRegex.MatchString(id) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	var req service.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	// Hold the session pointer across the submission: the expiry scanner may
	// drop it from the manager before the snapshot is built.
	sess, ok := h.manager.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}

	result, err := h.manager.SubmitAction(id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		case errors.Is(err, service.ErrBattleOver):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleAlreadyOver})
		case errors.Is(err, service.ErrInvalidAction):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotYourTurn})
		case errors.Is(err, service.ErrUnknownActionKind):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownAction})
		case errors.Is(err, service.ErrUnknownMove):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownMove})
		case errors.Is(err, service.ErrUnknownItem):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownItem})
		default:
			logging.Error("failed to submit action", err, logging.Fields{
				constants.LogFieldBattleID: id,
			})
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":   result,
		"snapshot": snapshotSession(sess),
	})
}

// ListRecentBattles returns the most recently finished battles.
func (h *BattleHandler) ListRecentBattles(c *gin.Context) {
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	recs, err := h.repo.RecentBattles(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	c.JSON(http.StatusOK, recs)
}
