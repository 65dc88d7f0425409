package main

import (
	"github.com/beastbrawl/beastbrawl/internal/api"
	"github.com/beastbrawl/beastbrawl/internal/constants"

	"github.com/gin-gonic/gin"
)

// newRouter wires all HTTP routes under the API prefix.
func newRouter(handler *api.BattleHandler) *gin.Engine {
	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteHealthz, api.Healthz)
		apiRoutes.GET(constants.RouteVersion, api.Version)

		apiRoutes.GET(constants.RouteTrainers, handler.ListTrainers)
		apiRoutes.GET(constants.RouteTrainerStats, handler.GetTrainerStats)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)

		apiRoutes.POST(constants.RouteBattles, handler.CreateBattle)
		apiRoutes.GET(constants.RouteRecentBattles, handler.ListRecentBattles)
		apiRoutes.GET(constants.RouteBattleByID, handler.GetBattle)
		apiRoutes.POST(constants.RouteBattleAction, handler.SubmitAction)
		apiRoutes.GET(constants.RouteBattleWatch, handler.WatchBattle)
	}

	return router
}
