package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
	"github.com/rs/zerolog/log"
)

// defaultAnalyzeTimeout bounds analyze requests when no search timeout is
// configured.
const defaultAnalyzeTimeout = 10 * time.Second

// AnalyzeHandler runs one-off searches on a posted board.
type AnalyzeHandler struct {
	SearchTimeout time.Duration
}

func NewAnalyzeHandler(searchTimeout time.Duration) *AnalyzeHandler {
	if searchTimeout <= 0 {
		searchTimeout = defaultAnalyzeTimeout
	}
	return &AnalyzeHandler{SearchTimeout: searchTimeout}
}

type analyzeRequest struct {
	// Board is [row][column], row 0 at the bottom.
	Board      [][]int `json:"board" binding:"required"`
	Player     int     `json:"player" binding:"required"`
	Depth      int     `json:"depth" binding:"required"`
	Exhaustive bool    `json:"exhaustive"`
}

type analyzeResponse struct {
	Move      *int  `json:"move"`
	Score     int   `json:"score"`
	Nodes     int64 `json:"nodes"`
	Depth     int   `json:"depth"`
	Victory   bool  `json:"victory"`
	Full      bool  `json:"full"`
	ElapsedMs int64 `json:"elapsedMs"`
}

// Analyze returns the engine's choice for the posted position.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, err := domain.FromRows(req.Board)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timeout := h.SearchTimeout
	if timeout <= 0 {
		timeout = defaultAnalyzeTimeout
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	start := time.Now()
	res, err := bot.Search(ctx, board, req.Depth, domain.PlayerID(req.Player), bot.Options{DisablePruning: req.Exhaustive})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidDepth), errors.Is(err, domain.ErrInvalidPlayer):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, context.DeadlineExceeded):
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "search timed out"})
		default:
			log.Error().Err(err).Str("component", "http").Msg("analyze failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		}
		return
	}

	resp := analyzeResponse{
		Score:     res.Score,
		Nodes:     res.Nodes,
		Depth:     res.Depth,
		Victory:   board.CheckVictory(),
		Full:      board.IsFull(),
		ElapsedMs: time.Since(start).Milliseconds(),
	}
	if res.HasMove() {
		move := res.Move
		resp.Move = &move
	}
	c.JSON(http.StatusOK, resp)
}
