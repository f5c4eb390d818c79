package game

import "testing"

func TestStepAdvancesHeadsAndTick(t *testing.T) {
	s := NewState(Rules{Players: 2, Speed: 2, CellSize: DefaultCellSize}, testViewport)
	starts := []Point{s.Players[0].Head, s.Players[1].Head}
	dirs := []Direction{s.Players[0].Direction, s.Players[1].Direction}

	const n = 40
	for i := 0; i < n; i++ {
		if Step(s, testViewport) {
			t.Fatalf("match ended at tick %d: %+v", s.Tick, s.Outcome)
		}
		if s.Phase != PhaseRunning {
			t.Fatalf("phase = %v at tick %d", s.Phase, s.Tick)
		}
	}
	if s.Tick != n {
		t.Fatalf("tick = %d, want %d", s.Tick, n)
	}
	for i, p := range s.Players {
		want := Point{X: starts[i].X + n*dirs[i].DX, Y: starts[i].Y + n*dirs[i].DY}
		if p.Head != want {
			t.Fatalf("player %d head = %+v, want %+v", i, p.Head, want)
		}
		if p.Trail.Turns() != 0 {
			t.Fatalf("player %d grew its trail without turning", i)
		}
	}
}

func TestStepFreezesAfterGameOver(t *testing.T) {
	s := NewState(DefaultRules(), Viewport{Width: 20, Height: 20})
	ended := 0
	for i := 0; i < 20; i++ {
		if Step(s, Viewport{Width: 20, Height: 20}) {
			ended++
		}
	}
	if ended != 1 {
		t.Fatalf("match ended %d times, want exactly once", ended)
	}
	head, tick := s.Players[0].Head, s.Tick
	Step(s, Viewport{Width: 20, Height: 20})
	if s.Players[0].Head != head || s.Tick != tick {
		t.Fatalf("state moved after game over")
	}
}

func TestNewStateResetsEverything(t *testing.T) {
	rules := Rules{Players: 2, Speed: 2, CellSize: DefaultCellSize}
	s := NewState(rules, testViewport)
	for i := 0; i < 3; i++ {
		Step(s, testViewport)
	}
	Steer(s, "ArrowUp")
	s.Phase = PhaseOver

	fresh := NewState(rules, testViewport)
	if fresh.Phase != PhaseRunning || fresh.Tick != 0 {
		t.Fatalf("fresh state phase=%v tick=%d", fresh.Phase, fresh.Tick)
	}
	if fresh.MatchID == "" || fresh.MatchID == s.MatchID {
		t.Fatalf("expected a new match id, got %q (old %q)", fresh.MatchID, s.MatchID)
	}
	for i, p := range fresh.Players {
		spawn, heading := SpawnPoint(2, i, testViewport)
		if p.Head != spawn || p.Direction != heading.Direction(2) || !p.Alive {
			t.Fatalf("player %d not at spawn: %+v", i, p)
		}
		if len(p.Trail.Vertices) != 1 || p.Trail.Vertices[0] != spawn {
			t.Fatalf("player %d trail = %+v", i, p.Trail.Vertices)
		}
	}
}

func TestRulesNormalized(t *testing.T) {
	s := NewState(Rules{Players: 7, Speed: -1}, testViewport)
	if len(s.Players) != MaxPlayers {
		t.Fatalf("players = %d, want %d", len(s.Players), MaxPlayers)
	}
	if s.Rules.Speed != DefaultSpeed {
		t.Fatalf("speed = %f, want %f", s.Rules.Speed, DefaultSpeed)
	}
}
