package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/4-in-a-row/engine/internal/config"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
	"github.com/iamasit07/4-in-a-row/engine/internal/transport/http/middleware"
)

// NewRouter wires the HTTP routes. ws handles the WebSocket upgrade.
func NewRouter(cfg *config.Config, matches *game.Manager, ws http.HandlerFunc) *gin.Engine {
	analyzeHandler := NewAnalyzeHandler(cfg.SearchTimeout)
	watchHandler := NewWatchHandler(matches)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "matches": matches.Count()})
	})

	router.POST("/api/analyze", analyzeHandler.Analyze)
	router.GET("/api/matches", watchHandler.GetLiveGames)
	router.GET("/api/matches/:id", watchHandler.GetGame)

	if ws != nil {
		router.GET("/ws", gin.WrapF(ws))
	}

	return router
}
