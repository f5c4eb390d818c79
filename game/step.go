package game

// Step advances the match by one tick and reports whether this tick ended it.
// Once the phase is Over nothing moves until a new State replaces this one.
func Step(s *State, vp Viewport) bool {
	if s.Phase != PhaseRunning {
		return false
	}
	s.Tick++

	for _, p := range s.Players {
		if !p.Alive {
			continue
		}
		p.Head = p.Head.Add(p.Direction)
		p.Stepped = p.Direction
	}

	out, hit := Collide(s, vp)
	if !hit {
		return false
	}
	s.Phase = PhaseOver
	s.Outcome = out
	if p := s.Player(out.Loser); p != nil {
		p.Alive = false
	}
	return true
}
