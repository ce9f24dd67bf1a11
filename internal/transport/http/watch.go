package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
)

type WatchHandler struct {
	Matches *game.Manager
}

func NewWatchHandler(matches *game.Manager) *WatchHandler {
	return &WatchHandler{Matches: matches}
}

// GetLiveGames returns every match still in play.
func (h *WatchHandler) GetLiveGames(c *gin.Context) {
	c.JSON(http.StatusOK, h.Matches.ActiveMatches())
}

// GetGame returns the current state of one match.
func (h *WatchHandler) GetGame(c *gin.Context) {
	m, ok := h.Matches.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		return
	}
	c.JSON(http.StatusOK, m.Snapshot())
}
