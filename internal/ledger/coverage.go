// Package ledger decides whether charges against players have been settled
// by a payment or a write-off, and validates the transaction set.
//
// A charge is a transaction with a negative amount. It is covered by:
//   - a write-off whose WriteOffOf names the charge (authoritative when set),
//   - an unlinked write-off for the same player, category and fixture whose
//     amount is at least the charge's, or
//   - a payment (positive, not a write-off) for the same player, category
//     and fixture whose amount is at least the charge's.
//
// Fixture only has to match when the charge has one. Overpayment covers;
// underpayment does not. When several transactions cover a charge the first
// in list order wins.
package ledger

import "github.com/cleared-dev/clubhouse/internal/model"

// Status is the settlement state of a charge.
type Status string

const (
	StatusOutstanding Status = "outstanding"
	StatusPaid        Status = "paid"
	StatusWrittenOff  Status = "written-off"
)

// IsCharge reports whether tx is money owed (negative amount).
func IsCharge(tx model.Transaction) bool {
	return tx.Amount.IsNegative()
}

// WriteOffCovers reports whether tx is a write-off that cancels charge.
func WriteOffCovers(charge, tx model.Transaction) bool {
	if !tx.IsWriteOff || !tx.Amount.IsPositive() {
		return false
	}
	if tx.WriteOffOf != 0 {
		return tx.WriteOffOf == charge.ID
	}
	return sameTarget(charge, tx) && coversAmount(charge, tx)
}

// PaymentCovers reports whether tx is a payment that settles charge.
// Write-offs never count as payments.
func PaymentCovers(charge, tx model.Transaction) bool {
	if tx.IsWriteOff || !tx.Amount.IsPositive() {
		return false
	}
	return sameTarget(charge, tx) && coversAmount(charge, tx)
}

// FindCoveringWriteOff returns the first write-off in txs covering charge.
func FindCoveringWriteOff(charge model.Transaction, txs []model.Transaction) (model.Transaction, bool) {
	for _, tx := range txs {
		if WriteOffCovers(charge, tx) {
			return tx, true
		}
	}
	return model.Transaction{}, false
}

// FindCoveringPayment returns the first payment in txs covering charge.
func FindCoveringPayment(charge model.Transaction, txs []model.Transaction) (model.Transaction, bool) {
	for _, tx := range txs {
		if PaymentCovers(charge, tx) {
			return tx, true
		}
	}
	return model.Transaction{}, false
}

// IsOutstanding reports whether nothing in txs covers charge.
func IsOutstanding(charge model.Transaction, txs []model.Transaction) bool {
	for _, tx := range txs {
		if WriteOffCovers(charge, tx) || PaymentCovers(charge, tx) {
			return false
		}
	}
	return true
}

// Coverers returns every transaction in txs that covers charge, in list
// order. More than one entry points at a data problem.
func Coverers(charge model.Transaction, txs []model.Transaction) []model.Transaction {
	var out []model.Transaction
	for _, tx := range txs {
		if WriteOffCovers(charge, tx) || PaymentCovers(charge, tx) {
			out = append(out, tx)
		}
	}
	return out
}

// StatusOf classifies charge. Write-offs are checked before payments.
func StatusOf(charge model.Transaction, txs []model.Transaction) Status {
	if _, ok := FindCoveringWriteOff(charge, txs); ok {
		return StatusWrittenOff
	}
	if _, ok := FindCoveringPayment(charge, txs); ok {
		return StatusPaid
	}
	return StatusOutstanding
}

// OutstandingCharges returns all charges in txs with no coverer, in list order.
func OutstandingCharges(txs []model.Transaction) []model.Transaction {
	var out []model.Transaction
	for _, tx := range txs {
		if IsCharge(tx) && IsOutstanding(tx, txs) {
			out = append(out, tx)
		}
	}
	return out
}

func sameTarget(charge, tx model.Transaction) bool {
	if tx.PlayerID != charge.PlayerID || tx.Category != charge.Category {
		return false
	}
	return charge.FixtureID == 0 || tx.FixtureID == charge.FixtureID
}

func coversAmount(charge, tx model.Transaction) bool {
	return tx.Amount.Abs().GreaterThanOrEqual(charge.Amount.Abs())
}
