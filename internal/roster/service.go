// Package roster provides lookup, CSV I/O and fuzzy name matching over the
// club's players.
package roster

import "github.com/cleared-dev/clubhouse/internal/model"

// Service provides in-memory lookup over a roster snapshot.
type Service struct {
	players []model.Player
	byID    map[int64]model.Player
}

// NewService creates a Service from a slice of players.
func NewService(players []model.Player) *Service {
	byID := make(map[int64]model.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	return &Service{players: players, byID: byID}
}

// All returns all players.
func (s *Service) All() []model.Player {
	return s.players
}

// Get returns a player by ID.
func (s *Service) Get(id int64) (model.Player, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Exists reports whether a player ID exists.
func (s *Service) Exists(id int64) bool {
	_, ok := s.byID[id]
	return ok
}

// Active returns players still on the roster.
func (s *Service) Active() []model.Player {
	var result []model.Player
	for _, p := range s.players {
		if p.IsActive {
			result = append(result, p)
		}
	}
	return result
}

// Name returns the player's full name, or "" for unknown IDs.
func (s *Service) Name(id int64) string {
	if p, ok := s.byID[id]; ok {
		return p.FullName()
	}
	return ""
}
