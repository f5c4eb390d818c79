package game

type Heading uint8

const (
	HeadingUp Heading = iota
	HeadingDown
	HeadingLeft
	HeadingRight
)

// Direction is the per-tick displacement of a head. It is always axis aligned
// and never zero.
type Direction struct {
	DX, DY float64
}

func (h Heading) Direction(speed float64) Direction {
	switch h {
	case HeadingUp:
		return Direction{DX: 0, DY: -speed}
	case HeadingDown:
		return Direction{DX: 0, DY: speed}
	case HeadingLeft:
		return Direction{DX: -speed, DY: 0}
	default:
		return Direction{DX: speed, DY: 0}
	}
}

func (d Direction) Reverse() Direction {
	return Direction{DX: -d.DX, DY: -d.DY}
}

// Keymap maps key identifiers (browser KeyboardEvent.key names) to headings.
type Keymap map[string]Heading

var (
	ArrowKeys = Keymap{
		"ArrowUp":    HeadingUp,
		"ArrowDown":  HeadingDown,
		"ArrowLeft":  HeadingLeft,
		"ArrowRight": HeadingRight,
	}
	WASDKeys = Keymap{
		"w": HeadingUp, "W": HeadingUp,
		"s": HeadingDown, "S": HeadingDown,
		"a": HeadingLeft, "A": HeadingLeft,
		"d": HeadingRight, "D": HeadingRight,
	}
)

// Keymaps is indexed by player slot.
var Keymaps = [MaxPlayers]Keymap{ArrowKeys, WASDKeys}

// Steer applies one key event to the player that owns the key. It returns
// false when the key is unmapped, would not change the direction, or would
// reverse the player onto its own trail. An accepted turn records the head as
// a trail vertex before the direction changes.
func Steer(s *State, key string) bool {
	if s.Phase != PhaseRunning {
		return false
	}
	for i, p := range s.Players {
		h, ok := Keymaps[i][key]
		if !ok {
			continue
		}
		if !p.Alive {
			return false
		}
		next := h.Direction(s.Rules.Speed)
		// Stepped guards against two quick turns between ticks adding up
		// to a reversal.
		if next == p.Direction || next == p.Direction.Reverse() || next == p.Stepped.Reverse() {
			return false
		}
		p.Trail.RecordTurn(p.Head)
		p.Direction = next
		return true
	}
	return false
}

func IsRestartKey(key string) bool {
	switch key {
	case "Enter", " ", "Spacebar":
		return true
	}
	return false
}
