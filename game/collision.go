package game

// Collide runs the per-tick checks in a fixed order: self then bounds for
// each player in slot order, then each player's live segment against the
// other player's trail. The first check that fires decides the outcome, so on
// a simultaneous crash the lower slot and the earlier check lose.
func Collide(s *State, vp Viewport) (Outcome, bool) {
	for i, p := range s.Players {
		if !p.Alive {
			continue
		}
		if hitsOwnTrail(p) {
			return s.outcome(i, CauseSelf), true
		}
		if outOfBounds(p.Head, vp, s.Rules.CellSize) {
			return s.outcome(i, CauseWall), true
		}
	}
	for i, p := range s.Players {
		if !p.Alive {
			continue
		}
		other := s.opponent(i)
		if other == nil {
			continue
		}
		if hitsTrail(p.Trail.LiveSegment(p.Head), other) {
			return s.outcome(i, CauseTrail), true
		}
	}
	return Outcome{}, false
}

// Only the live segment can be new this tick; every fixed segment was
// validated while it was live.
func hitsOwnTrail(p *Player) bool {
	live := p.Trail.LiveSegment(p.Head)
	for i := 0; i < p.Trail.Fixed(); i++ {
		if SegmentsIntersect(p.Trail.Segment(i), live) {
			return true
		}
	}
	return false
}

func hitsTrail(live Segment, other *Player) bool {
	for i := 0; i < other.Trail.Fixed(); i++ {
		if SegmentsIntersect(other.Trail.Segment(i), live) {
			return true
		}
	}
	return SegmentsIntersect(other.Trail.LiveSegment(other.Head), live)
}

func outOfBounds(head Point, vp Viewport, cell float64) bool {
	return head.X < 0 || head.X > vp.Width-cell || head.Y < 0 || head.Y > vp.Height-cell
}

func (s *State) outcome(loser int, cause Cause) Outcome {
	out := Outcome{Loser: s.Players[loser].ID, Cause: cause}
	if other := s.opponent(loser); other != nil {
		out.Winner = other.ID
	}
	return out
}
