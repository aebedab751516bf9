package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/clubhouse/internal/model"
)

// MatchFeeParams holds parameters for charging players who took part in a fixture.
type MatchFeeParams struct {
	FixtureID   int64
	Date        string
	Category    string
	Amount      decimal.Decimal // fee per player; sign is ignored
	PlayerIDs   []int64
	Description string
}

// GenerateMatchFees builds one charge per player for a fixture. Players who
// already have a charge for the same fixture and category in existing are
// skipped, as are repeated IDs, so re-running the fee run is safe.
func GenerateMatchFees(params MatchFeeParams, existing []model.Transaction) []model.Transaction {
	if params.Amount.IsZero() {
		return nil
	}

	charged := make(map[int64]bool)
	for _, tx := range existing {
		if IsCharge(tx) && tx.FixtureID == params.FixtureID && tx.Category == params.Category {
			charged[tx.PlayerID] = true
		}
	}

	desc := params.Description
	if desc == "" {
		desc = fmt.Sprintf("%s fixture %d", params.Category, params.FixtureID)
	}

	var out []model.Transaction
	for _, pid := range params.PlayerIDs {
		if pid == 0 || charged[pid] {
			continue
		}
		charged[pid] = true
		out = append(out, model.Transaction{
			Date:        params.Date,
			Category:    params.Category,
			Type:        model.TypeIncome,
			Amount:      params.Amount.Abs().Neg(),
			PlayerID:    pid,
			FixtureID:   params.FixtureID,
			Description: desc,
		})
	}
	return out
}

// NewWriteOff builds a write-off linked to charge for its full amount.
func NewWriteOff(charge model.Transaction, date, reason string) model.Transaction {
	if reason == "" {
		reason = fmt.Sprintf("write-off of #%d", charge.ID)
	}
	return model.Transaction{
		Date:        date,
		Category:    charge.Category,
		Type:        charge.Type,
		Amount:      charge.Amount.Abs(),
		PlayerID:    charge.PlayerID,
		FixtureID:   charge.FixtureID,
		IsWriteOff:  true,
		WriteOffOf:  charge.ID,
		Description: reason,
	}
}
