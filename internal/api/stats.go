package api

import (
	"net/http"
	"strconv"

	"github.com/beastbrawl/beastbrawl/internal/constants"

	"github.com/gin-gonic/gin"
)

// GetTrainerStats returns aggregated stats for a trainer display name.
func (h *BattleHandler) GetTrainerStats(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrTrainerNameRequired})
		return
	}
	p, err := h.repo.GetProfileByName(name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrTrainerNotFound})
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListLeaderboard returns the top trainers by wins (desc), limited to top 10
// by default.
func (h *BattleHandler) ListLeaderboard(c *gin.Context) {
	// optional ?limit=N
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	profiles, err := h.repo.TopTrainers(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBoard})
		return
	}
	c.JSON(http.StatusOK, profiles)
}
