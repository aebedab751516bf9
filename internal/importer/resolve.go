package importer

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cleared-dev/clubhouse/internal/model"
	"github.com/cleared-dev/clubhouse/internal/roster"
)

// Resolution is a Row with the outcome of matching its name to a player.
type Resolution struct {
	Row        Row
	Player     model.Player
	Score      float64
	Matched    bool
	Candidates []roster.Suggestion
}

// NeedsReview reports whether a person has to pick the player.
func (r Resolution) NeedsReview() bool {
	return !r.Matched
}

// TypeLookup maps a category to its transaction type.
type TypeLookup interface {
	TypeOf(name string) model.TxType
}

// Options controls an import run.
type Options struct {
	Threshold       float64 // minimum similarity to accept a match
	SuggestLimit    int     // candidates attached to rows needing review
	DefaultCategory string  // used for rows without a category
	FixtureID       int64   // used for rows without a fixture
	Types           TypeLookup
}

// Result is the outcome of an import run.
type Result struct {
	Batch        string
	Transactions []model.Transaction
	Review       []Resolution
}

// Resolve matches every row to a player. Rows scoring below threshold are
// left unmatched with candidates attached.
func Resolve(rows []Row, players []model.Player, threshold float64, limit int) []Resolution {
	out := make([]Resolution, 0, len(rows))
	for _, row := range rows {
		res := Resolution{Row: row, Candidates: roster.SuggestPlayers(row.Name, players, limit)}
		if len(res.Candidates) > 0 {
			res.Score = res.Candidates[0].Score
		}
		if best, ok := roster.BestMatch(row.Name, players, threshold); ok {
			res.Player, res.Matched = best.Player, true
		}
		out = append(out, res)
	}
	return out
}

// Build turns matched resolutions into transactions stamped with batch.
// Unmatched rows are skipped. Rows without a fixture get defaultFixture.
func Build(resolutions []Resolution, batch, defaultCategory string, defaultFixture int64, types TypeLookup) []model.Transaction {
	var out []model.Transaction
	for _, r := range resolutions {
		if !r.Matched {
			continue
		}
		cat := r.Row.Category
		if cat == "" {
			cat = defaultCategory
		}
		fixture := r.Row.FixtureID
		if fixture == 0 {
			fixture = defaultFixture
		}
		typ := model.TypeIncome
		if types != nil {
			typ = types.TypeOf(cat)
		}
		out = append(out, model.Transaction{
			Date:        r.Row.Date,
			Category:    cat,
			Type:        typ,
			Amount:      r.Row.Amount,
			PlayerID:    r.Player.ID,
			FixtureID:   fixture,
			Description: r.Row.Description,
			Payee:       r.Row.Name,
			ImportBatch: batch,
		})
	}
	return out
}

// Importer runs parsers against the roster.
type Importer struct {
	log zerolog.Logger
}

// New creates an Importer.
func New(log zerolog.Logger) *Importer {
	return &Importer{log: log.With().Str("component", "importer").Logger()}
}

// Run parses r with p, resolves names against players and builds the
// transactions for a new batch. Nothing is written anywhere.
func (im *Importer) Run(p Parser, r io.Reader, players []model.Player, opts Options) (Result, error) {
	rows, err := p.Parse(r)
	if err != nil {
		return Result{}, fmt.Errorf("parsing %s import: %w", p.Format(), err)
	}

	resolutions := Resolve(rows, players, opts.Threshold, opts.SuggestLimit)
	res := Result{Batch: uuid.NewString()}
	res.Transactions = Build(resolutions, res.Batch, opts.DefaultCategory, opts.FixtureID, opts.Types)
	for _, rr := range resolutions {
		if rr.NeedsReview() {
			res.Review = append(res.Review, rr)
			im.log.Debug().
				Int("line", rr.Row.Line).
				Str("name", rr.Row.Name).
				Float64("best_score", rr.Score).
				Msg("name below match threshold")
		}
	}

	im.log.Info().
		Str("format", p.Format()).
		Str("batch", res.Batch).
		Int("rows", len(rows)).
		Int("matched", len(res.Transactions)).
		Int("review", len(res.Review)).
		Float64("threshold", opts.Threshold).
		Msg("import resolved")
	return res, nil
}
