package domain

// ClientMessage is what a front end sends over the engine socket.
type ClientMessage struct {
	Type    string `json:"type"`
	Player1 string `json:"player1,omitempty"`
	Player2 string `json:"player2,omitempty"`
	Column  int    `json:"column"`
}

// ServerMessage is what the engine socket sends back. Fields are filled per
// message type.
type ServerMessage struct {
	Type        string     `json:"type"`
	Message     string     `json:"message,omitempty"`
	GameID      string     `json:"gameId,omitempty"`
	Players     []string   `json:"players,omitempty"`
	CurrentTurn int        `json:"currentTurn,omitempty"`
	Column      *int       `json:"column,omitempty"`
	Row         *int       `json:"row,omitempty"`
	Player      int        `json:"player,omitempty"`
	Board       [][]int    `json:"board,omitempty"`
	NextTurn    int        `json:"nextTurn,omitempty"`
	Winner      int        `json:"winner,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	Score       *int       `json:"score,omitempty"`
	Nodes       int64      `json:"nodes,omitempty"`
	Status      GameStatus `json:"status,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
