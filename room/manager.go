package room

import (
	"crypto/rand"
	"math/big"
	"sort"
	"sync"

	"lightcycle/game"
)

// RoomInfo is returned by the API for the session list.
type RoomInfo struct {
	Code    string `json:"code"`
	Players int    `json:"players"`
	Viewers int    `json:"viewers"`
}

// Manager holds the running rooms by code. A room is created for every new
// host and removed when its host leaves.
type Manager struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	opts  Options
}

func NewManager(opts Options) *Manager {
	return &Manager{
		rooms: make(map[string]*Room),
		opts:  opts,
	}
}

// Get returns the room for code, or nil.
func (m *Manager) Get(code string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[code]
}

func (m *Manager) removeRoom(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[code]; ok {
		r.Stop()
		delete(m.rooms, code)
	}
}

const codeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CreateRoom generates a unique 6-char code, starts a room for a match with
// the given rules and surface size, and returns it.
func (m *Manager) CreateRoom(rules game.Rules, vp game.Viewport) *Room {
	opts := m.opts
	opts.Rules = rules
	opts.Viewport = vp

	m.mu.Lock()
	defer m.mu.Unlock()
	for {
		code := generateCode(6)
		if _, exists := m.rooms[code]; exists {
			continue
		}
		r := New(opts)
		r.Code = code
		r.OnEmpty = func(c string) {
			m.removeRoom(c)
		}
		m.rooms[code] = r
		go r.Run()
		return r
	}
}

// ListRooms returns all active rooms sorted by code.
func (m *Manager) ListRooms() []RoomInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]RoomInfo, 0, len(m.rooms))
	for code, r := range m.rooms {
		out = append(out, RoomInfo{Code: code, Players: r.Players(), Viewers: r.NumViewers()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Shutdown stops every room.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for code, r := range m.rooms {
		r.Stop()
		delete(m.rooms, code)
	}
}

func generateCode(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(codeChars)))
	for i := range b {
		idx, _ := rand.Int(rand.Reader, max)
		b[i] = codeChars[idx.Int64()]
	}
	return string(b)
}
