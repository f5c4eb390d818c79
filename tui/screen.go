package tui

import (
	"fmt"
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"

	"lightcycle/game"
	"lightcycle/room"
)

const (
	trailRune = '█'
	headRune  = '◆'
)

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleStatus  = styleDefault.Foreground(tcell.ColorGray)
	styleOver    = styleDefault.Foreground(tcell.ColorWhite).Bold(true)
)

// Screen renders a match into a terminal. One terminal cell covers ScaleX by
// ScaleY world units; rows are about twice as tall as columns, so ScaleY is
// twice ScaleX and both axes look equally fast.
type Screen struct {
	screen tcell.Screen
	ScaleX float64
	ScaleY float64

	closeOnce sync.Once
	done      chan struct{}
}

func New(s tcell.Screen, cellSize float64) *Screen {
	if cellSize <= 0 {
		cellSize = game.DefaultCellSize
	}
	s.SetStyle(styleDefault)
	return &Screen{
		screen: s,
		ScaleX: cellSize,
		ScaleY: cellSize * 2,
		done:   make(chan struct{}),
	}
}

// Viewport is the playable area in world units. The last row is kept for the
// status line.
func (s *Screen) Viewport() game.Viewport {
	cols, rows := s.screen.Size()
	if rows > 1 {
		rows--
	}
	return game.Viewport{Width: float64(cols) * s.ScaleX, Height: float64(rows) * s.ScaleY}
}

func (s *Screen) cell(p game.Point) (int, int) {
	return int(math.Floor(p.X / s.ScaleX)), int(math.Floor(p.Y / s.ScaleY))
}

func (s *Screen) Clear() {
	s.screen.Clear()
}

func (s *Screen) DrawPolyline(points []game.Point, style game.Style) {
	if len(points) == 0 {
		return
	}
	st := styleDefault.Foreground(tcell.GetColor(style.Color))
	x, y := s.cell(points[0])
	s.screen.SetContent(x, y, trailRune, nil, st)
	for _, p := range points[1:] {
		x1, y1 := s.cell(p)
		for x != x1 || y != y1 {
			x += sign(x1 - x)
			if x == x1 {
				y += sign(y1 - y)
			}
			s.screen.SetContent(x, y, trailRune, nil, st)
		}
	}
	s.screen.SetContent(x, y, headRune, nil, st)
}

func (s *Screen) DrawText(text string, at game.Point, style game.Style) {
	x, y := s.cell(at)
	if style.Align == "center" {
		x -= len([]rune(text)) / 2
	}
	s.puts(x, y, text, styleOver.Foreground(tcell.GetColor(style.Color)))
}

func (s *Screen) Flush(info room.FrameInfo) error {
	cols, rows := s.screen.Size()
	line := fmt.Sprintf(" tick %d  %s  arrows/wasd steer  enter restart  esc quit", info.Tick, info.Phase)
	if len([]rune(line)) > cols {
		line = string([]rune(line)[:cols])
	}
	s.puts(0, rows-1, line, styleStatus)
	s.screen.Show()
	return nil
}

// Close is called by the room when it lets go of the screen. The terminal
// itself stays up until the caller finalizes it.
func (s *Screen) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}

func (s *Screen) Done() <-chan struct{} {
	return s.done
}

func (s *Screen) puts(x, y int, text string, st tcell.Style) {
	for _, r := range text {
		s.screen.SetContent(x, y, r, nil, st)
		x++
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
