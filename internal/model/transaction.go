package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxType is the direction of money for a transaction.
type TxType string

const (
	TypeIncome  TxType = "INCOME"
	TypeExpense TxType = "EXPENSE"
)

// Valid reports whether t is a known type.
func (t TxType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Flow classifies a transaction as money owed to the club or by the club.
type Flow string

const (
	FlowReceivable Flow = "receivable"
	FlowPayable    Flow = "payable"
)

// DateFormat is the canonical date layout for transactions.
const DateFormat = "2006-01-02"

// Transaction is a single ledger row. Amount is signed: negative is a charge
// or expense, positive is a payment, income or write-off.
type Transaction struct {
	ID           int64
	Date         string // ISO-8601
	Category     string
	Type         TxType
	Amount       decimal.Decimal
	PlayerID     int64 // 0 = not tied to a player
	FixtureID    int64 // 0 = not tied to a fixture
	IsReconciled bool
	IsWriteOff   bool
	WriteOffOf   int64 // ID of the charge this write-off cancels, 0 = unlinked
	Description  string
	Payee        string
	ImportBatch  string
}

// Flow is derived from Type and never stored. Transactions without a type
// fall back to the amount sign.
func (t Transaction) Flow() Flow {
	switch t.Type {
	case TypeIncome:
		return FlowReceivable
	case TypeExpense:
		return FlowPayable
	}
	if t.Amount.IsNegative() {
		return FlowPayable
	}
	return FlowReceivable
}

// dateLayouts are the ISO 8601 forms accepted for Date. A date-time
// without a zone is read as UTC.
var dateLayouts = []string{DateFormat, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}

// ParsedDate parses Date in any of dateLayouts. ok is false for empty or
// malformed dates.
func (t Transaction) ParsedDate() (time.Time, bool) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, t.Date); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
