package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/clubhouse/internal/model"
)

// Check identifies which rule a ValidationError breaks.
type Check int

const (
	CheckType Check = iota + 1
	CheckZeroAmount
	CheckUnknownPlayer
	CheckUnknownCategory
	CheckDate
	CheckWriteOffSign
	CheckWriteOffTarget
	CheckDecimals
	CheckAmbiguousCoverage
	CheckSharedCoverer
)

// ValidationError describes a single problem with a transaction.
type ValidationError struct {
	Check       Check
	TxID        int64
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("check %d [tx %d]: %s", e.Check, e.TxID, e.Description)
}

// PlayerChecker tests whether a player ID exists on the roster.
type PlayerChecker interface {
	Exists(id int64) bool
}

// CategoryChecker tests whether a category name is configured.
type CategoryChecker interface {
	Exists(name string) bool
}

// ValidateTransactions reports every problem found in txs. A nil checker
// skips its check.
func ValidateTransactions(txs []model.Transaction, players PlayerChecker, categories CategoryChecker) []ValidationError {
	var errs []ValidationError
	add := func(c Check, tx model.Transaction, format string, args ...any) {
		errs = append(errs, ValidationError{Check: c, TxID: tx.ID, Description: fmt.Sprintf(format, args...)})
	}

	byID := make(map[int64]model.Transaction, len(txs))
	for _, tx := range txs {
		byID[tx.ID] = tx
	}

	hundred := decimal.NewFromInt(100)
	for _, tx := range txs {
		if !tx.Type.Valid() {
			add(CheckType, tx, "unknown type %q", tx.Type)
		}

		if tx.Amount.IsZero() {
			add(CheckZeroAmount, tx, "amount is zero")
		}

		if players != nil && tx.PlayerID != 0 && !players.Exists(tx.PlayerID) {
			add(CheckUnknownPlayer, tx, "unknown player %d", tx.PlayerID)
		}

		if categories != nil && !categories.Exists(tx.Category) {
			add(CheckUnknownCategory, tx, "unknown category %q", tx.Category)
		}

		if _, ok := tx.ParsedDate(); !ok {
			add(CheckDate, tx, "unparseable date %q", tx.Date)
		}

		if tx.IsWriteOff && !tx.Amount.IsPositive() {
			add(CheckWriteOffSign, tx, "write-off amount %s must be positive", tx.Amount.StringFixed(2))
		}

		if tx.WriteOffOf != 0 {
			target, ok := byID[tx.WriteOffOf]
			switch {
			case !tx.IsWriteOff:
				add(CheckWriteOffTarget, tx, "write_off_of set on a transaction that is not a write-off")
			case !ok:
				add(CheckWriteOffTarget, tx, "write-off references missing transaction %d", tx.WriteOffOf)
			case !IsCharge(target):
				add(CheckWriteOffTarget, tx, "write-off references transaction %d which is not a charge", tx.WriteOffOf)
			}
		}

		if !tx.Amount.Mul(hundred).Equal(tx.Amount.Mul(hundred).Truncate(0)) {
			add(CheckDecimals, tx, "amount %s has more than 2 decimal places", tx.Amount)
		}
	}

	for _, tx := range txs {
		if !IsCharge(tx) {
			continue
		}
		if cov := Coverers(tx, txs); len(cov) > 1 {
			ids := make([]int64, len(cov))
			for i, c := range cov {
				ids[i] = c.ID
			}
			add(CheckAmbiguousCoverage, tx, "charge covered by %d transactions %v", len(cov), ids)
		}
	}

	// One payment or write-off settling several charges counts the same
	// money more than once.
	for _, tx := range txs {
		if !tx.Amount.IsPositive() {
			continue
		}
		var covered []int64
		for _, charge := range txs {
			if IsCharge(charge) && (PaymentCovers(charge, tx) || WriteOffCovers(charge, tx)) {
				covered = append(covered, charge.ID)
			}
		}
		if len(covered) > 1 {
			add(CheckSharedCoverer, tx, "transaction covers %d charges %v", len(covered), covered)
		}
	}

	return errs
}
