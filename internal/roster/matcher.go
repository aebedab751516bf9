package roster

import (
	"sort"

	"github.com/cleared-dev/clubhouse/internal/model"
	"github.com/cleared-dev/clubhouse/internal/similarity"
)

// DefaultSuggestLimit is used when a caller passes a non-positive limit.
const DefaultSuggestLimit = 3

// Suggestion is a candidate player for a free-text name.
type Suggestion struct {
	Player model.Player
	Score  float64
}

// SuggestPlayers ranks players by similarity of their full name to name,
// best first, and returns at most limit of them. Ties are ordered by full
// name then ID so the result is deterministic.
func SuggestPlayers(name string, players []model.Player, limit int) []Suggestion {
	if len(players) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}

	out := make([]Suggestion, 0, len(players))
	for _, p := range players {
		out = append(out, Suggestion{Player: p, Score: similarity.Similarity(name, p.FullName())})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		ni, nj := out[i].Player.FullName(), out[j].Player.FullName()
		if ni != nj {
			return ni < nj
		}
		return out[i].Player.ID < out[j].Player.ID
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// BestMatch returns the top suggestion when its score reaches threshold.
// ok is false when there are no players or the best score falls short;
// callers should send such names for review rather than guess. A score of
// zero never matches, whatever the threshold.
func BestMatch(name string, players []model.Player, threshold float64) (Suggestion, bool) {
	top := SuggestPlayers(name, players, 1)
	if len(top) == 0 || top[0].Score <= 0 || top[0].Score < threshold {
		return Suggestion{}, false
	}
	return top[0], true
}
