package room

import "lightcycle/game"

type Conn interface {
	Send([]byte) error
	Close() error
}

// Viewer is a render surface attached to a room. Flush is called once per
// tick after the frame has been drawn.
type Viewer interface {
	game.Surface
	Flush(info FrameInfo) error
	Close() error
}

// Welcomer is implemented by viewers that want to hear about their join
// before the first frame arrives.
type Welcomer interface {
	Welcome(res JoinResult) error
}

type FrameInfo struct {
	Tick    int
	MatchID string
	Phase   game.Phase
	Winner  string
}

// Join: issued once per viewer. The first viewer of a room is the host and
// the only one whose input is applied.
type Join struct {
	Viewer Viewer
	Reply  chan<- JoinResult
}

type JoinResult struct {
	ViewerID string
	Code     string
	MatchID  string
	TickHz   int
	CellSize float64
	Host     bool
}

// Key: one key event from a viewer
type Key struct {
	ViewerID string
	Key      string
}

// Restart: start a fresh match
type Restart struct {
	ViewerID string
}

// Resize: the host's surface changed size
type Resize struct {
	ViewerID string
	Viewport game.Viewport
}

// Leave: issued on disconnect
type Leave struct {
	ViewerID string
}

// Status: read-only view of the current match
type Status struct {
	Reply chan<- MatchStatus
}

type MatchStatus struct {
	MatchID string
	Tick    int
	Phase   game.Phase
	Outcome game.Outcome
}
