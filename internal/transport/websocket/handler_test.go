package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
)

func dial(t *testing.T, defaults [2]domain.PlayerConfig) (*websocket.Conn, *game.Manager) {
	t.Helper()
	return dialWith(t, game.NewManager(0, 0), defaults)
}

func dialWith(t *testing.T, matches *game.Manager, defaults [2]domain.PlayerConfig) (*websocket.Conn, *game.Manager) {
	t.Helper()
	h := NewHandler(NewConnectionManager(), matches, defaults)
	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn, matches
}

func read(t *testing.T, conn *websocket.Conn) domain.ServerMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	var msg domain.ServerMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	return msg
}

func expect(t *testing.T, conn *websocket.Conn, typ string) domain.ServerMessage {
	t.Helper()
	msg := read(t, conn)
	if msg.Type != typ {
		t.Fatalf("expected %q, got %+v", typ, msg)
	}
	return msg
}

func TestHumanAgainstEngine(t *testing.T) {
	conn, matches := dial(t, [2]domain.PlayerConfig{domain.Human(), domain.Engine(2)})

	if err := conn.WriteJSON(domain.ClientMessage{Type: "new_game"}); err != nil {
		t.Fatal(err)
	}
	start := expect(t, conn, "game_start")
	if start.CurrentTurn != int(domain.Player1) || len(start.Players) != 2 || start.Players[1] != "ai:2" {
		t.Fatalf("unexpected start %+v", start)
	}
	if _, ok := matches.Get(start.GameID); !ok {
		t.Fatal("match not registered")
	}

	if err := conn.WriteJSON(domain.ClientMessage{Type: "move", Column: 3}); err != nil {
		t.Fatal(err)
	}
	human := expect(t, conn, "move_made")
	if human.Column == nil || *human.Column != 3 || human.Player != int(domain.Player1) || human.NextTurn != int(domain.Player2) {
		t.Fatalf("unexpected human move %+v", human)
	}

	expect(t, conn, "thinking")
	done := expect(t, conn, "engine_done")
	if done.Column == nil || done.Score == nil || done.Nodes == 0 {
		t.Fatalf("incomplete engine report %+v", done)
	}
	reply := expect(t, conn, "move_made")
	if reply.Player != int(domain.Player2) || *reply.Column != *done.Column {
		t.Fatalf("engine move %+v does not match report %+v", reply, done)
	}
	if reply.Board[0][3] != int(domain.Player1) {
		t.Fatalf("board lost the human disk: %v", reply.Board)
	}
}

func TestEngineAgainstEngine(t *testing.T) {
	conn, _ := dial(t, [2]domain.PlayerConfig{domain.Human(), domain.Human()})

	if err := conn.WriteJSON(domain.ClientMessage{Type: "new_game", Player1: "ai:1", Player2: "ai:1"}); err != nil {
		t.Fatal(err)
	}
	expect(t, conn, "game_start")

	moves := 0
	for {
		msg := read(t, conn)
		switch msg.Type {
		case "move_made":
			moves++
			if moves > domain.Cells {
				t.Fatal("too many moves")
			}
		case "game_over":
			if msg.Reason != "connect_four" && msg.Reason != "draw" {
				t.Fatalf("unexpected reason %q", msg.Reason)
			}
			if moves == 0 {
				t.Fatal("game ended without moves")
			}
			return
		case "thinking", "engine_done":
		default:
			t.Fatalf("unexpected message %+v", msg)
		}
	}
}

func TestProtocolErrors(t *testing.T) {
	conn, _ := dial(t, [2]domain.PlayerConfig{domain.Human(), domain.Human()})

	send := func(msg domain.ClientMessage) domain.ServerMessage {
		t.Helper()
		if err := conn.WriteJSON(msg); err != nil {
			t.Fatal(err)
		}
		return expect(t, conn, "error")
	}

	if e := send(domain.ClientMessage{Type: "move", Column: 3}); e.Message != "no game in progress" {
		t.Fatalf("unexpected error %q", e.Message)
	}
	if e := send(domain.ClientMessage{Type: "dance"}); !strings.Contains(e.Message, "unknown message type") {
		t.Fatalf("unexpected error %q", e.Message)
	}
	send(domain.ClientMessage{Type: "new_game", Player2: "ai:99"})

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{")); err != nil {
		t.Fatal(err)
	}
	if e := expect(t, conn, "error"); e.Message != "invalid message format" {
		t.Fatalf("unexpected error %q", e.Message)
	}

	if err := conn.WriteJSON(domain.ClientMessage{Type: "new_game"}); err != nil {
		t.Fatal(err)
	}
	expect(t, conn, "game_start")
	send(domain.ClientMessage{Type: "move", Column: 7})
}

func TestResetStartsOver(t *testing.T) {
	conn, _ := dial(t, [2]domain.PlayerConfig{domain.Human(), domain.Human()})

	if err := conn.WriteJSON(domain.ClientMessage{Type: "new_game"}); err != nil {
		t.Fatal(err)
	}
	start := expect(t, conn, "game_start")

	if err := conn.WriteJSON(domain.ClientMessage{Type: "move", Column: 0}); err != nil {
		t.Fatal(err)
	}
	expect(t, conn, "move_made")

	if err := conn.WriteJSON(domain.ClientMessage{Type: "reset"}); err != nil {
		t.Fatal(err)
	}
	again := expect(t, conn, "game_start")
	if again.GameID != start.GameID {
		t.Fatalf("reset should keep the match, got %s and %s", start.GameID, again.GameID)
	}
	if again.Board[0][0] != int(domain.Empty) || again.CurrentTurn != int(domain.Player1) {
		t.Fatalf("board not cleared: %+v", again)
	}
}

func TestSearchTimeoutStillMoves(t *testing.T) {
	conn, _ := dialWith(t, game.NewManager(time.Millisecond, 0), [2]domain.PlayerConfig{domain.Engine(12), domain.Human()})

	if err := conn.WriteJSON(domain.ClientMessage{Type: "new_game"}); err != nil {
		t.Fatal(err)
	}
	expect(t, conn, "game_start")
	expect(t, conn, "thinking")
	done := expect(t, conn, "engine_done")
	if done.Column == nil || *done.Column != domain.CenterColumn {
		t.Fatalf("expected the shallow center move, got %+v", done)
	}
	engine := expect(t, conn, "move_made")
	if engine.NextTurn != int(domain.Player2) {
		t.Fatalf("turn did not pass to the human: %+v", engine)
	}

	if err := conn.WriteJSON(domain.ClientMessage{Type: "move", Column: 3}); err != nil {
		t.Fatal(err)
	}
	human := expect(t, conn, "move_made")
	if human.Player != int(domain.Player2) {
		t.Fatalf("unexpected reply %+v", human)
	}
	expect(t, conn, "thinking")
}
