// server/router.go
package server

import (
	"github.com/gin-gonic/gin"
)

type Config struct {
	Handler *Handler
}

func NewRouter(cfg *Config) *gin.Engine {
	router := gin.Default()

	api := router.Group("/v1/")
	registerQueryRoutes(api, cfg.Handler)

	return router
}

func registerQueryRoutes(api *gin.RouterGroup, h *Handler) {
	api.GET("/symbols", h.GetSymbols)
	api.GET("/traders", h.GetTraders)
	api.GET("/strategies", h.GetStrategies)
	api.GET("/trades", h.GetTrades)
	api.GET("/performance/:strategy_id", h.GetPerformance)
	api.GET("/kpis", h.GetKPIs)
	api.GET("/loads", h.GetLoads)
}
