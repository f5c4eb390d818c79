package game

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Internal truth authoritative game state

type Phase uint8

const (
	PhaseRunning Phase = iota
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseOver:
		return "over"
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

type Cause uint8

const (
	CauseNone Cause = iota
	CauseSelf
	CauseWall
	CauseTrail
)

func (c Cause) String() string {
	switch c {
	case CauseSelf:
		return "self"
	case CauseWall:
		return "wall"
	case CauseTrail:
		return "trail"
	}
	return "none"
}

// Outcome is set once, when the match ends. Winner stays empty in
// single-player matches.
type Outcome struct {
	Loser  string
	Winner string
	Cause  Cause
}

type Viewport struct {
	Width, Height float64
}

type Rules struct {
	Players  int
	Speed    float64
	CellSize float64
}

func DefaultRules() Rules {
	return Rules{Players: 1, Speed: DefaultSpeed, CellSize: DefaultCellSize}
}

func (r Rules) normalized() Rules {
	if r.Players < 1 {
		r.Players = 1
	}
	if r.Players > MaxPlayers {
		r.Players = MaxPlayers
	}
	if r.Speed <= 0 {
		r.Speed = DefaultSpeed
	}
	if r.CellSize <= 0 {
		r.CellSize = DefaultCellSize
	}
	return r
}

type Player struct {
	ID        string
	Name      string
	Trail     Trail
	Head      Point
	Direction Direction
	Stepped   Direction // direction of the last head advance
	Alive     bool
}

type State struct {
	MatchID string
	Rules   Rules
	Tick    int
	Phase   Phase
	Outcome Outcome
	Players []*Player
}

// NewState builds a fresh match with every player at its spawn point. A reset
// always goes through here; nothing from the previous match survives.
func NewState(rules Rules, vp Viewport) *State {
	rules = rules.normalized()
	s := &State{
		MatchID: uuid.NewString(),
		Rules:   rules,
		Phase:   PhaseRunning,
		Players: make([]*Player, 0, rules.Players),
	}
	for i := 0; i < rules.Players; i++ {
		spawn, heading := SpawnPoint(rules.Players, i, vp)
		dir := heading.Direction(rules.Speed)
		s.Players = append(s.Players, &Player{
			ID:        fmt.Sprintf("p%d", i+1),
			Name:      fmt.Sprintf("Player %d", i+1),
			Trail:     NewTrail(spawn),
			Head:      spawn,
			Direction: dir,
			Stepped:   dir,
			Alive:     true,
		})
	}
	return s
}

// SpawnPoint returns where player i starts and which way it faces. A lone
// player starts in the centre heading right. In a duel the players start on
// different rows facing each other, so they never run head-on along one line.
func SpawnPoint(players, i int, vp Viewport) (Point, Heading) {
	if players < 2 {
		return Point{X: math.Floor(vp.Width / 2), Y: math.Floor(vp.Height / 2)}, HeadingRight
	}
	if i == 0 {
		return Point{X: math.Floor(vp.Width / 4), Y: math.Floor(vp.Height / 3)}, HeadingRight
	}
	return Point{X: math.Floor(vp.Width * 3 / 4), Y: math.Floor(vp.Height * 2 / 3)}, HeadingLeft
}

func (s *State) Player(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *State) opponent(i int) *Player {
	if len(s.Players) < 2 {
		return nil
	}
	return s.Players[1-i]
}

func (s *State) Over() bool {
	return s.Phase == PhaseOver
}
