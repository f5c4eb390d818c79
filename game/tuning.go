package game

const (
	DefaultSpeed    = 2.0 // world units per tick
	DefaultCellSize = 5.0 // trail width, also the far-edge margin of the boundary check
	DefaultWidth    = 800.0
	DefaultHeight   = 600.0
	MaxPlayers      = 2
)
