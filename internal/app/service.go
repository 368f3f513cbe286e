package app

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound is returned for unknown game IDs.
var ErrNotFound = errors.New("game not found")

// GameState is a snapshot of one game handed out by the service.
type GameState struct {
	ID      string
	View    View
	Created time.Time
	Updated time.Time
}

type game struct {
	history *History
	created time.Time
	updated time.Time
}

func (g *game) snapshot(id string) *GameState {
	return &GameState{ID: id, View: g.history.View(), Created: g.created, Updated: g.updated}
}

// Service keeps the in-memory games of the browser UI. Each game has a single
// owner; the mutex only serializes requests that arrive concurrently.
type Service struct {
	mu    sync.Mutex
	games map[string]*game
	log   *zap.Logger
	now   func() time.Time
}

// NewService creates an empty service. A nil logger disables logging.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		games: make(map[string]*game),
		log:   logger.With(zap.String("component", "service")),
		now:   time.Now,
	}
}

// CreateGame creates and registers a new game.
func (s *Service) CreateGame() (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	now := s.now()
	g := &game{history: NewHistory(), created: now, updated: now}
	s.games[id] = g
	s.log.Debug("game created", zap.String("game", id))
	return g.snapshot(id), nil
}

// Get returns a snapshot of the game if present.
func (s *Service) Get(id string) (*GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	if !ok {
		return nil, false
	}
	return g.snapshot(id), true
}

// Play places the next mark at cell i. On a rejected move the returned state
// is the unchanged game, so callers can re-render it with an error message.
func (s *Service) Play(id string, i int) (*GameState, error) {
	return s.update(id, "play", func(h *History) error { return h.PlayAt(i) },
		zap.Int("cell", i))
}

// JumpTo selects a past move of the game.
func (s *Service) JumpTo(id string, move int) (*GameState, error) {
	return s.update(id, "jump", func(h *History) error { return h.JumpTo(move) },
		zap.Int("move", move))
}

// ToggleSortOrder flips the move list order of the game.
func (s *Service) ToggleSortOrder(id string) (*GameState, error) {
	return s.update(id, "sort", func(h *History) error {
		h.ToggleSortOrder()
		return nil
	})
}

func (s *Service) update(id, op string, fn func(*History) error, fields ...zap.Field) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	fields = append(fields, zap.String("game", id), zap.String("op", op))
	if err := fn(g.history); err != nil {
		s.log.Info("rejected", append(fields, zap.Error(err))...)
		return g.snapshot(id), err
	}
	g.updated = s.now()
	s.log.Debug("applied", append(fields, zap.Int("current", g.history.CurrentMove()))...)
	return g.snapshot(id), nil
}

// Len returns the number of registered games.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

// Prune drops games not updated since before and returns how many went.
func (s *Service) Prune(before time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, g := range s.games {
		if g.updated.Before(before) {
			delete(s.games, id)
			n++
		}
	}
	if n > 0 {
		s.log.Info("pruned games", zap.Int("count", n), zap.Int("remaining", len(s.games)))
	}
	return n
}
