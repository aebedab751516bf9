package ledger

import (
	"github.com/rs/zerolog"

	"github.com/cleared-dev/clubhouse/internal/model"
)

// Settlement describes how a charge was resolved.
type Settlement struct {
	Charge   model.Transaction
	Status   Status
	By       model.Transaction // zero when outstanding
	Coverers []model.Transaction
}

// Ambiguous reports whether more than one transaction covers the charge.
func (s Settlement) Ambiguous() bool {
	return len(s.Coverers) > 1
}

// Reconciler applies the coverage rules and logs charges that more than one
// transaction claims to settle.
type Reconciler struct {
	log zerolog.Logger
}

// NewReconciler creates a Reconciler.
func NewReconciler(log zerolog.Logger) *Reconciler {
	return &Reconciler{log: log.With().Str("component", "reconciler").Logger()}
}

// Settle resolves a single charge against txs.
func (r *Reconciler) Settle(charge model.Transaction, txs []model.Transaction) Settlement {
	s := Settlement{Charge: charge, Status: StatusOutstanding, Coverers: Coverers(charge, txs)}

	if tx, ok := FindCoveringWriteOff(charge, txs); ok {
		s.Status, s.By = StatusWrittenOff, tx
	} else if tx, ok := FindCoveringPayment(charge, txs); ok {
		s.Status, s.By = StatusPaid, tx
	}

	if s.Ambiguous() {
		ids := make([]int64, len(s.Coverers))
		for i, c := range s.Coverers {
			ids[i] = c.ID
		}
		r.log.Warn().
			Int64("charge_id", charge.ID).
			Int64("player_id", charge.PlayerID).
			Str("category", charge.Category).
			Ints64("coverer_ids", ids).
			Int64("chosen_id", s.By.ID).
			Msg("charge covered by more than one transaction")
	}
	return s
}

// SettleAll resolves every charge in txs, in list order.
func (r *Reconciler) SettleAll(txs []model.Transaction) []Settlement {
	var out []Settlement
	for _, tx := range txs {
		if IsCharge(tx) {
			out = append(out, r.Settle(tx, txs))
		}
	}
	return out
}

// Outstanding returns the unsettled charges in txs, optionally restricted to
// one player (playerID 0 means all).
func (r *Reconciler) Outstanding(txs []model.Transaction, playerID int64) []model.Transaction {
	var out []model.Transaction
	for _, s := range r.SettleAll(txs) {
		if s.Status != StatusOutstanding {
			continue
		}
		if playerID != 0 && s.Charge.PlayerID != playerID {
			continue
		}
		out = append(out, s.Charge)
	}
	return out
}
