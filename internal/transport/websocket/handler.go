package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
	"github.com/iamasit07/4-in-a-row/engine/pkg/uid"
	"github.com/rs/zerolog/log"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Handler serves the engine socket. Each connection drives one match at a
// time; engine seats are played automatically.
type Handler struct {
	ConnManager *ConnectionManager
	Matches     *game.Manager
	Defaults    [2]domain.PlayerConfig
	Upgrader    websocket.Upgrader
}

// NewHandler creates a new WebSocket handler with dependencies
func NewHandler(cm *ConnectionManager, matches *game.Manager, defaults [2]domain.PlayerConfig) *Handler {
	return &Handler{
		ConnManager: cm,
		Matches:     matches,
		Defaults:    defaults,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// connState is the per-connection view of the current match.
type connState struct {
	id    string
	ctx   context.Context
	mu    sync.Mutex
	match *game.Match
}

func (s *connState) current() *game.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match
}

func (s *connState) swap(m *game.Match) *game.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.match
	s.match = m
	return old
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("component", "ws").Msg("upgrade error")
		return
	}

	h.handleConnection(conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn) {
	connID, err := uid.GenerateConnectionID()
	if err != nil {
		log.Error().Err(err).Str("component", "ws").Msg("cannot tag connection")
		conn.Close()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	state := &connState{id: connID, ctx: ctx}
	h.ConnManager.AddConnection(connID, conn)
	log.Info().Str("component", "ws").Str("conn", connID).Msg("connection opened")

	defer func() {
		cancel()
		if m := state.swap(nil); m != nil {
			h.Matches.Remove(m.ID)
		}
		h.ConnManager.RemoveConnection(connID)
		log.Info().Str("component", "ws").Str("conn", connID).Msg("connection closed")
	}()

	// Set read deadline to detect stale connections
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := h.ConnManager.Ping(connID); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("component", "ws").Str("conn", connID).Msg("disconnected unexpectedly")
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Debug().Err(err).Str("component", "ws").Str("conn", connID).Msg("invalid message format")
			h.ConnManager.SendError(connID, "invalid message format")
			continue
		}

		h.processMessage(state, msg)
	}
}

// processMessage routes specific actions
func (h *Handler) processMessage(state *connState, msg domain.ClientMessage) {
	switch msg.Type {
	case "new_game":
		p1, p2, err := h.seats(msg)
		if err != nil {
			h.ConnManager.SendError(state.id, err.Error())
			return
		}
		m := h.Matches.Create(p1, p2)
		if old := state.swap(m); old != nil {
			h.Matches.Remove(old.ID)
		}
		h.sendStart(state.id, m)
		go h.driveEngine(state, m)

	case "move":
		m := state.current()
		if m == nil {
			h.ConnManager.SendError(state.id, "no game in progress")
			return
		}
		rec, err := m.HandleMove(m.CurrentPlayer(), msg.Column)
		if err != nil {
			h.ConnManager.SendError(state.id, err.Error())
			return
		}
		h.sendMove(state.id, m, rec)
		go h.driveEngine(state, m)

	case "reset":
		m := state.current()
		if m == nil {
			h.ConnManager.SendError(state.id, "no game in progress")
			return
		}
		m.Reset()
		h.sendStart(state.id, m)
		go h.driveEngine(state, m)

	default:
		h.ConnManager.SendError(state.id, "unknown message type: "+msg.Type)
	}
}

func (h *Handler) seats(msg domain.ClientMessage) (domain.PlayerConfig, domain.PlayerConfig, error) {
	p1, p2 := h.Defaults[0], h.Defaults[1]
	var err error
	if msg.Player1 != "" {
		if p1, err = domain.ParsePlayerConfig(msg.Player1); err != nil {
			return p1, p2, err
		}
	}
	if msg.Player2 != "" {
		if p2, err = domain.ParsePlayerConfig(msg.Player2); err != nil {
			return p1, p2, err
		}
	}
	return p1, p2, nil
}

// driveEngine plays engine seats until a human is to move or the game ends.
// It stops quietly if the match was reset or replaced meanwhile.
func (h *Handler) driveEngine(state *connState, m *game.Match) {
	for m.IsEngineTurn() && state.current() == m {
		task, err := m.StartEngineTurn(state.ctx)
		if err != nil {
			return
		}
		player := m.CurrentPlayer()
		h.ConnManager.SendMessage(state.id, domain.ServerMessage{
			Type:   "thinking",
			GameID: m.ID,
			Player: int(player),
		})

		rec, res, err := m.ApplyEngineResult(task)
		if errors.Is(err, domain.ErrStaleSearch) || errors.Is(err, context.Canceled) {
			return
		}
		if err != nil {
			log.Error().Err(err).Str("component", "ws").Str("match", m.ID).Msg("engine move failed")
			h.ConnManager.SendError(state.id, err.Error())
			return
		}

		score := res.Score
		h.ConnManager.SendMessage(state.id, domain.ServerMessage{
			Type:   "engine_done",
			GameID: m.ID,
			Player: int(player),
			Column: &rec.Column,
			Score:  &score,
			Nodes:  res.Nodes,
		})
		h.sendMove(state.id, m, rec)
	}
}

func (h *Handler) sendStart(connID string, m *game.Match) {
	s := m.Snapshot()
	h.ConnManager.SendMessage(connID, domain.ServerMessage{
		Type:        "game_start",
		GameID:      s.ID,
		Players:     s.Players[:],
		CurrentTurn: int(s.CurrentPlayer),
		Board:       s.Board,
		Status:      s.Status,
	})
}

func (h *Handler) sendMove(connID string, m *game.Match, rec game.MoveRecord) {
	s := m.Snapshot()
	h.ConnManager.SendMessage(connID, domain.ServerMessage{
		Type:     "move_made",
		GameID:   s.ID,
		Column:   &rec.Column,
		Row:      &rec.Row,
		Player:   int(rec.Player),
		Board:    s.Board,
		NextTurn: int(s.CurrentPlayer),
		Status:   s.Status,
	})

	switch s.Status {
	case domain.StatusWon:
		h.ConnManager.SendMessage(connID, domain.ServerMessage{
			Type:   "game_over",
			GameID: s.ID,
			Winner: int(s.Winner),
			Reason: "connect_four",
			Board:  s.Board,
			Status: s.Status,
		})
	case domain.StatusDraw:
		h.ConnManager.SendMessage(connID, domain.ServerMessage{
			Type:   "game_over",
			GameID: s.ID,
			Reason: "draw",
			Board:  s.Board,
			Status: s.Status,
		})
	}
}
