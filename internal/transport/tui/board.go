// Package tui draws a match in the terminal with tview and lets a human pick
// columns with the keyboard. Engine seats reply in the background.
package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const (
	diskRune  = '●'
	emptyRune = '·'
	arrowRune = '▼'

	// left margin for the row labels
	boardLeft = 2
)

var diskColors = map[domain.PlayerID]tcell.Color{
	domain.Player1: tcell.ColorRed,
	domain.Player2: tcell.ColorYellow,
}

// BoardView is a tview control showing one match.
type BoardView struct {
	Box  *tview.Box
	hint *tview.TextView

	ctx      context.Context
	match    *game.Match
	onUpdate func()

	mu       sync.Mutex
	selected int
	lastCol  int
	status   string
	thinking bool
}

// NewBoardView shows m. onUpdate is called from background goroutines after
// the engine moves; with a running application it should queue a redraw.
func NewBoardView(ctx context.Context, m *game.Match, hint *tview.TextView, onUpdate func()) *BoardView {
	v := &BoardView{
		Box:      tview.NewBox(),
		hint:     hint,
		ctx:      ctx,
		match:    m,
		onUpdate: onUpdate,
		selected: domain.CenterColumn,
		lastCol:  -1,
	}
	v.Box.SetDrawFunc(v.draw)
	v.Box.SetInputCapture(v.handleKey)
	v.refreshHint()
	return v
}

func (v *BoardView) Selected() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected
}

// MoveSelection shifts the column cursor by d, clamped to the board.
func (v *BoardView) MoveSelection(d int) {
	v.mu.Lock()
	v.selected = min(max(v.selected+d, 0), domain.Columns-1)
	v.mu.Unlock()
}

// Play drops a disk for the human to move in the selected column.
func (v *BoardView) Play() {
	v.PlayColumn(v.Selected())
}

func (v *BoardView) PlayColumn(col int) {
	if v.match.IsFinished() || v.match.IsEngineTurn() {
		return
	}
	rec, err := v.match.HandleMove(v.match.CurrentPlayer(), col)
	v.mu.Lock()
	if err != nil {
		v.status = err.Error()
	} else {
		v.status = ""
		v.lastCol = rec.Column
	}
	v.mu.Unlock()
	v.refreshHint()
	if err == nil {
		v.Start()
	}
}

// NewGame resets the match and lets an engine seat open if it is to move.
func (v *BoardView) NewGame() {
	v.match.Reset()
	v.mu.Lock()
	v.lastCol, v.status, v.thinking = -1, "", false
	v.mu.Unlock()
	v.refreshHint()
	v.Start()
}

// Start plays engine seats in the background until a human is to move.
func (v *BoardView) Start() {
	if !v.match.IsEngineTurn() {
		return
	}
	go v.driveEngine()
}

func (v *BoardView) driveEngine() {
	for v.match.IsEngineTurn() {
		task, err := v.match.StartEngineTurn(v.ctx)
		if err != nil {
			return
		}
		v.setThinking(true)

		rec, res, err := v.match.ApplyEngineResult(task)
		if errors.Is(err, domain.ErrStaleSearch) || errors.Is(err, context.Canceled) {
			return
		}

		v.mu.Lock()
		v.thinking = false
		if err != nil {
			v.status = err.Error()
		} else {
			v.lastCol = rec.Column
			v.status = fmt.Sprintf("Player %d played %d (score %d, %d nodes)", rec.Player, rec.Column, res.Score, res.Nodes)
		}
		v.mu.Unlock()
		v.refreshHint()
		v.notify()

		if err != nil {
			log.Error().Err(err).Str("component", "tui").Msg("engine move failed")
			return
		}
	}
}

func (v *BoardView) setThinking(on bool) {
	v.mu.Lock()
	v.thinking = on
	v.mu.Unlock()
	v.refreshHint()
	v.notify()
}

func (v *BoardView) notify() {
	if v.onUpdate != nil {
		v.onUpdate()
	}
}

func (v *BoardView) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyLeft:
		v.MoveSelection(-1)
	case tcell.KeyRight:
		v.MoveSelection(1)
	case tcell.KeyEnter, tcell.KeyDown:
		v.Play()
	case tcell.KeyRune:
		switch r := event.Rune(); {
		case r == 'h':
			v.MoveSelection(-1)
		case r == 'l':
			v.MoveSelection(1)
		case r == ' ' || r == 'j':
			v.Play()
		case r == 'n':
			v.NewGame()
		case r >= '0' && r < '0'+domain.Columns:
			v.mu.Lock()
			v.selected = int(r - '0')
			v.mu.Unlock()
			v.Play()
		default:
			return event
		}
	default:
		return event
	}
	return nil
}

func (v *BoardView) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	board := v.match.BoardSnapshot()
	v.mu.Lock()
	selected, lastCol := v.selected, v.lastCol
	v.mu.Unlock()

	// cursor row, then the grid top row first, then column labels
	screen.SetContent(x+boardLeft+selected*2, y, arrowRune, nil, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	for row := domain.Rows - 1; row >= 0; row-- {
		top := y + 1 + (domain.Rows - 1 - row)
		for col := 0; col < domain.Columns; col++ {
			r, style := emptyRune, tcell.StyleDefault.Foreground(tcell.ColorGray)
			if p := board.Cell(col, row); p != domain.Empty {
				r, style = diskRune, tcell.StyleDefault.Foreground(diskColors[p])
				if col == lastCol && row == board.Height(col)-1 {
					style = style.Bold(true).Underline(true)
				}
			}
			screen.SetContent(x+boardLeft+col*2, top, r, nil, style)
		}
	}
	for col := 0; col < domain.Columns; col++ {
		screen.SetContent(x+boardLeft+col*2, y+1+domain.Rows, rune('0'+col), nil, tcell.StyleDefault)
	}
	return x, y, width, height
}

func (v *BoardView) refreshHint() {
	if v.hint == nil {
		return
	}
	s := v.match.Snapshot()
	v.mu.Lock()
	status, thinking := v.status, v.thinking
	v.mu.Unlock()

	var turn string
	switch {
	case s.Status == domain.StatusWon:
		turn = fmt.Sprintf("Player %d wins !", s.Winner)
	case s.Status == domain.StatusDraw:
		turn = "This a draw !"
	case thinking:
		turn = fmt.Sprintf("Player %d (%s) is thinking...", s.CurrentPlayer, v.match.ConfigFor(s.CurrentPlayer).DisplayName())
	default:
		turn = fmt.Sprintf("Turn %d - Player %d (%s) is playing", s.MoveCount+1, s.CurrentPlayer, v.match.ConfigFor(s.CurrentPlayer).DisplayName())
	}
	v.hint.SetText(fmt.Sprintf("%s\n%s\n\n←→/hl move   ⏎/0-6 drop   n new game   q quit", turn, status))
}

// Layout places the board next to its hint panel.
func Layout(v *BoardView) *tview.Flex {
	return tview.NewFlex().
		AddItem(v.Box, boardLeft+domain.Columns*2+2, 0, true).
		AddItem(v.hint, 0, 1, false)
}

// Run shows m until the user quits or ctx is done.
func Run(ctx context.Context, m *game.Match) error {
	app := tview.NewApplication()
	hint := tview.NewTextView()
	hint.SetBorder(true).SetTitle(" Connect Four ")

	view := NewBoardView(ctx, m, hint, func() {
		go app.QueueUpdateDraw(func() {})
	})
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			app.Stop()
			return nil
		}
		return event
	})

	go func() {
		<-ctx.Done()
		app.Stop()
	}()

	view.Start()
	return app.SetRoot(Layout(view), true).Run()
}
