package game

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"kniazhych/internal/kniazhych"
)

var ErrGameNotFound = errors.New("game not found")

// Manager keeps the games of the local player in memory. Engine states are
// immutable, so a game is advanced by swapping its state pointer.
type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*GameState)}
}

func (m *Manager) NewGame() GameState {
	return m.add(kniazhych.InitialState())
}

// Load starts a game from a share token. A malformed token gives the initial
// position.
func (m *Manager) Load(token string) GameState {
	return m.add(kniazhych.LoadState(token))
}

func (m *Manager) add(s *kniazhych.GameState) GameState {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	g := &GameState{
		ID:        uuid.NewString(),
		State:     s,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.games[g.ID] = g
	return *g
}

// Get returns a copy of the game record.
func (m *Manager) Get(id string) (GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return GameState{}, ErrGameNotFound
	}
	return *g, nil
}

// Update runs fn on the current state and stores its result. fn runs under the
// write lock, so concurrent requests for one game are applied one at a time.
func (m *Manager) Update(id string, fn func(*kniazhych.GameState) (*kniazhych.GameState, error)) (GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return GameState{}, ErrGameNotFound
	}
	next, err := fn(g.State)
	if err != nil {
		return *g, err
	}
	g.State = next
	g.UpdatedAt = time.Now()
	return *g, nil
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
