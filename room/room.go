package room

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"lightcycle/game"
	"lightcycle/protocol"
)

type Options struct {
	Rules    game.Rules
	Viewport game.Viewport
	TickHz   int
	NewClock func(hz int) Clock
	Logger   *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.TickHz <= 0 {
		o.TickHz = protocol.SimTickHz
	}
	if o.NewClock == nil {
		o.NewClock = NewTickerClock
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Viewport.Width <= 0 || o.Viewport.Height <= 0 {
		o.Viewport = game.Viewport{Width: game.DefaultWidth, Height: game.DefaultHeight}
	}
	return o
}

// Room owns one match. All state mutation happens on the Run goroutine:
// commands from the inbox and ticks from the clock are handled one at a time,
// so input never lands in the middle of a tick.
type Room struct {
	Inbox    chan any
	tickHz   int
	clock    Clock
	rules    game.Rules
	viewport game.Viewport
	state    *game.State
	viewers  map[string]Viewer
	host     string
	nextID   int
	quit     chan struct{}
	stopOnce sync.Once
	numView  atomic.Int32
	log      *slog.Logger

	Code    string            // room code (e.g. "ABC123")
	OnEmpty func(code string) // called when the last viewer or the host leaves
}

func New(opts Options) *Room {
	opts = opts.withDefaults()
	state := game.NewState(opts.Rules, opts.Viewport)
	return &Room{
		Inbox:    make(chan any, 256),
		tickHz:   opts.TickHz,
		clock:    opts.NewClock(opts.TickHz),
		rules:    state.Rules,
		viewport: opts.Viewport,
		state:    state,
		viewers:  make(map[string]Viewer),
		nextID:   1,
		quit:     make(chan struct{}),
		log:      opts.Logger,
	}
}

func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.quit) })
}

// Send queues cmd for the room. It reports false once the room has stopped.
func (r *Room) Send(cmd any) bool {
	select {
	case r.Inbox <- cmd:
		return true
	case <-r.quit:
		return false
	}
}

// NumViewers returns the current number of attached viewers.
func (r *Room) NumViewers() int {
	return int(r.numView.Load())
}

func (r *Room) Players() int {
	return r.rules.Players
}

func (r *Room) Run() {
	defer r.clock.Stop()
	r.log.Info("room started", "code", r.Code, "tickHz", r.tickHz, "players", r.rules.Players)

	for {
		select {
		case <-r.quit:
			r.closeViewers()
			r.log.Info("room stopped", "code", r.Code)
			return
		case cmd := <-r.Inbox:
			r.handleCommand(cmd)
		case <-r.clock.C():
			r.tick()
		}
	}
}

// tick runs every clock beat whatever the phase; only Step decides whether
// anything moves.
func (r *Room) tick() {
	if game.Step(r.state, r.viewport) {
		r.log.Info("match over",
			"code", r.Code,
			"match", r.state.MatchID,
			"tick", r.state.Tick,
			"loser", r.state.Outcome.Loser,
			"winner", r.state.Outcome.Winner,
			"cause", r.state.Outcome.Cause.String(),
		)
	}
	r.broadcast()
}

func (r *Room) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Join:
		r.handleJoin(c)
	case Key:
		if c.ViewerID != r.host {
			return
		}
		if r.state.Over() {
			if game.IsRestartKey(c.Key) {
				r.restart()
			}
			return
		}
		game.Steer(r.state, c.Key)
	case Restart:
		if c.ViewerID != r.host {
			return
		}
		r.restart()
	case Resize:
		if c.ViewerID != r.host || c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
			return
		}
		r.viewport = c.Viewport
	case Leave:
		r.handleLeave(c.ViewerID)
	case Status:
		c.Reply <- MatchStatus{
			MatchID: r.state.MatchID,
			Tick:    r.state.Tick,
			Phase:   r.state.Phase,
			Outcome: r.state.Outcome,
		}
	default:
		r.log.Warn("unknown room command", "code", r.Code, "type", fmt.Sprintf("%T", cmd))
	}
}

func (r *Room) handleJoin(c Join) {
	viewerID := fmt.Sprintf("v%d", r.nextID)
	r.nextID++
	host := r.host == ""
	if host {
		r.host = viewerID
	}
	res := JoinResult{
		ViewerID: viewerID,
		Code:     r.Code,
		MatchID:  r.state.MatchID,
		TickHz:   r.tickHz,
		CellSize: r.state.Rules.CellSize,
		Host:     host,
	}
	if w, ok := c.Viewer.(Welcomer); ok {
		if err := w.Welcome(res); err != nil {
			r.log.Warn("welcome failed", "code", r.Code, "viewer", viewerID, "error", err)
		}
	}
	r.viewers[viewerID] = c.Viewer
	r.numView.Add(1)
	if c.Reply != nil {
		c.Reply <- res
	}
	r.log.Info("viewer joined", "code", r.Code, "viewer", viewerID, "host", host)
	if err := r.renderTo(c.Viewer); err != nil {
		r.log.Warn("dropping viewer", "code", r.Code, "viewer", viewerID, "error", err)
		r.handleLeave(viewerID)
	}
}

func (r *Room) handleLeave(viewerID string) {
	if _, ok := r.viewers[viewerID]; !ok {
		return
	}
	r.removeViewer(viewerID)
	r.log.Info("viewer left", "code", r.Code, "viewer", viewerID)

	// the match belongs to the host; spectators go with it
	if viewerID == r.host {
		r.closeViewers()
	}
	if len(r.viewers) == 0 && r.OnEmpty != nil && r.Code != "" {
		r.OnEmpty(r.Code)
	}
}

// restart replaces the whole state; nothing carries over from the old match.
func (r *Room) restart() {
	r.state = game.NewState(r.rules, r.viewport)
	r.log.Info("match started", "code", r.Code, "match", r.state.MatchID)
}

func (r *Room) removeViewer(viewerID string) {
	v, ok := r.viewers[viewerID]
	if !ok {
		return
	}
	_ = v.Close()
	delete(r.viewers, viewerID)
	r.numView.Add(-1)
}

func (r *Room) closeViewers() {
	for id := range r.viewers {
		r.removeViewer(id)
	}
}

func (r *Room) broadcast() {
	var failed []string
	for id, v := range r.viewers {
		if err := r.renderTo(v); err != nil {
			r.log.Warn("dropping viewer", "code", r.Code, "viewer", id, "error", err)
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		r.handleLeave(id)
	}
}

func (r *Room) renderTo(v Viewer) error {
	game.Render(r.state, r.viewport, v)
	return v.Flush(FrameInfo{
		Tick:    r.state.Tick,
		MatchID: r.state.MatchID,
		Phase:   r.state.Phase,
		Winner:  r.state.Outcome.Winner,
	})
}
