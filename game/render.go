package game

import "fmt"

type Style struct {
	Color string
	Width float64 // stroke width for polylines, font size for text
	Align string
}

// Surface is anything a match can be drawn on. Implementations must not keep
// the points slice past the call.
type Surface interface {
	Clear()
	DrawPolyline(points []Point, style Style)
	DrawText(text string, at Point, style Style)
}

var PlayerColors = [MaxPlayers]string{"#00ffff", "#ff9900"}

const (
	textColor = "#ffffff"
	textSize  = 32
)

// Render draws one frame: every trail with its head, and the end-of-match
// message once the phase is Over.
func Render(s *State, vp Viewport, surf Surface) {
	surf.Clear()
	for i, p := range s.Players {
		surf.DrawPolyline(p.Trail.Polyline(p.Head), Style{
			Color: PlayerColors[i%MaxPlayers],
			Width: s.Rules.CellSize,
		})
	}
	if s.Phase != PhaseOver {
		return
	}
	center := Point{X: vp.Width / 2, Y: vp.Height / 2}
	surf.DrawText(s.Message(), center, Style{Color: textColor, Width: textSize, Align: "center"})
	surf.DrawText("press Enter to restart", Point{X: center.X, Y: center.Y + textSize}, Style{
		Color: textColor,
		Width: textSize / 2,
		Align: "center",
	})
}

func (s *State) Message() string {
	if s.Phase != PhaseOver {
		return ""
	}
	if s.Outcome.Winner == "" {
		return "Game Over!"
	}
	name := s.Outcome.Winner
	if p := s.Player(s.Outcome.Winner); p != nil {
		name = p.Name
	}
	return fmt.Sprintf("%s wins!", name)
}
