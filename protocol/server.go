package protocol

type Welcome struct {
	Session  string  `json:"session" msgpack:"session"`
	MatchID  string  `json:"matchId" msgpack:"matchId"`
	TickHz   int     `json:"tickHz" msgpack:"tickHz"`
	CellSize float64 `json:"cellSize" msgpack:"cellSize"`
	Host     bool    `json:"host" msgpack:"host"` // false for spectators
}

// Frame is one rendered tick as a list of draw calls for the client to replay.
type Frame struct {
	Tick    int      `json:"tick" msgpack:"tick"`
	MatchID string   `json:"matchId" msgpack:"matchId"`
	Phase   string   `json:"phase" msgpack:"phase"`
	Winner  string   `json:"winner,omitempty" msgpack:"winner,omitempty"`
	Ops     []DrawOp `json:"ops" msgpack:"ops"`
}

const (
	OpClear    = "clear"
	OpPolyline = "polyline"
	OpText     = "text"
)

type DrawOp struct {
	Op     string  `json:"op" msgpack:"op"`
	Points []Point `json:"points,omitempty" msgpack:"points,omitempty"`
	Text   string  `json:"text,omitempty" msgpack:"text,omitempty"`
	At     *Point  `json:"at,omitempty" msgpack:"at,omitempty"`
	Color  string  `json:"color,omitempty" msgpack:"color,omitempty"`
	Width  float64 `json:"width,omitempty" msgpack:"width,omitempty"`
	Align  string  `json:"align,omitempty" msgpack:"align,omitempty"`
}

type Point struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

type Error struct {
	Error string `json:"error" msgpack:"error"`
}

func NewError(msg string) Error {
	return Error{Error: msg}
}
