// Package finance derives balances, outstanding totals and statements from
// a snapshot of the ledger. Every function is a single pass over its input
// and never mutates it.
package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/clubhouse/internal/model"
	"github.com/cleared-dev/clubhouse/internal/period"
)

// Totals accumulates income (positive amounts) and expense (negative
// amounts). Net is Income + Expense.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

func (t *Totals) add(amount decimal.Decimal) {
	if amount.IsPositive() {
		t.Income = t.Income.Add(amount)
	} else {
		t.Expense = t.Expense.Add(amount)
	}
	t.Net = t.Net.Add(amount)
}

// CategorySummary is the breakdown for one category.
type CategorySummary struct {
	Category string
	Totals
}

// PeriodTotals is one statement bucket, keyed "YYYY" or "YYYY-MM".
type PeriodTotals struct {
	Key string
	Totals
}

// Summary holds every aggregate at once.
type Summary struct {
	Balances     map[int64]decimal.Decimal
	Receivable   decimal.Decimal
	Payable      decimal.Decimal
	Categories   []CategorySummary
	Years        []PeriodTotals
	Months       []PeriodTotals
	SkippedDates int // transactions left out of Years/Months
}

// Summarize computes all aggregates in one pass over txs.
func Summarize(txs []model.Transaction) Summary {
	s := Summary{Balances: make(map[int64]decimal.Decimal)}
	cats := newBuckets()
	years := newBuckets()
	months := newBuckets()

	for _, tx := range txs {
		if tx.PlayerID != 0 {
			s.Balances[tx.PlayerID] = s.Balances[tx.PlayerID].Add(tx.Amount)
		}
		if isOpenReceivable(tx) {
			s.Receivable = s.Receivable.Add(tx.Amount)
		}
		if isOpenPayable(tx) {
			s.Payable = s.Payable.Add(tx.Amount)
		}
		cats.add(tx.Category, tx.Amount)

		d, ok := tx.ParsedDate()
		if !ok {
			s.SkippedDates++
			continue
		}
		years.add(period.YearOf(d), tx.Amount)
		months.add(period.MonthOf(d), tx.Amount)
	}

	for _, b := range cats.ordered() {
		s.Categories = append(s.Categories, CategorySummary{Category: b.Key, Totals: b.Totals})
	}
	s.Years = years.sorted()
	s.Months = months.sorted()
	return s
}

// PlayerBalances sums amounts per player. Transactions without a player are
// ignored. A negative balance means the player owes the club.
func PlayerBalances(txs []model.Transaction) map[int64]decimal.Decimal {
	out := make(map[int64]decimal.Decimal)
	for _, tx := range txs {
		if tx.PlayerID != 0 {
			out[tx.PlayerID] = out[tx.PlayerID].Add(tx.Amount)
		}
	}
	return out
}

// OutstandingReceivable sums unreconciled receivable or positive amounts.
func OutstandingReceivable(txs []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if isOpenReceivable(tx) {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// OutstandingPayable sums unreconciled payable or negative amounts.
func OutstandingPayable(txs []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if isOpenPayable(tx) {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// CategoryBreakdown groups income and expense by category, in order of
// first appearance.
func CategoryBreakdown(txs []model.Transaction) []CategorySummary {
	b := newBuckets()
	for _, tx := range txs {
		b.add(tx.Category, tx.Amount)
	}
	var out []CategorySummary
	for _, p := range b.ordered() {
		out = append(out, CategorySummary{Category: p.Key, Totals: p.Totals})
	}
	return out
}

// YearlyStatement buckets txs by calendar year, oldest first. Transactions
// with malformed dates are skipped.
func YearlyStatement(txs []model.Transaction) []PeriodTotals {
	return statement(txs, period.YearOf)
}

// MonthlyStatement buckets txs by "YYYY-MM", oldest first. Transactions
// with malformed dates are skipped.
func MonthlyStatement(txs []model.Transaction) []PeriodTotals {
	return statement(txs, period.MonthOf)
}

// SeasonStatement buckets txs by season label ("2024/25"), where seasons
// begin on start ("MM-DD"). Transactions with malformed dates are skipped.
func SeasonStatement(txs []model.Transaction, start string) ([]PeriodTotals, error) {
	if _, err := period.SeasonOf(time.Time{}, start); err != nil {
		return nil, err
	}
	return statement(txs, func(t time.Time) string {
		label, _ := period.SeasonOf(t, start)
		return label
	}), nil
}

func statement(txs []model.Transaction, key func(time.Time) string) []PeriodTotals {
	b := newBuckets()
	for _, tx := range txs {
		d, ok := tx.ParsedDate()
		if !ok {
			continue
		}
		b.add(key(d), tx.Amount)
	}
	return b.sorted()
}

func isOpenReceivable(tx model.Transaction) bool {
	return !tx.IsReconciled && (tx.Flow() == model.FlowReceivable || tx.Amount.IsPositive())
}

func isOpenPayable(tx model.Transaction) bool {
	return !tx.IsReconciled && (tx.Flow() == model.FlowPayable || tx.Amount.IsNegative())
}

// buckets keeps keyed Totals along with first-seen order.
type buckets struct {
	order []string
	byKey map[string]*Totals
}

func newBuckets() *buckets {
	return &buckets{byKey: make(map[string]*Totals)}
}

func (b *buckets) add(key string, amount decimal.Decimal) {
	t, ok := b.byKey[key]
	if !ok {
		t = &Totals{}
		b.byKey[key] = t
		b.order = append(b.order, key)
	}
	t.add(amount)
}

func (b *buckets) ordered() []PeriodTotals {
	out := make([]PeriodTotals, 0, len(b.order))
	for _, k := range b.order {
		out = append(out, PeriodTotals{Key: k, Totals: *b.byKey[k]})
	}
	return out
}

func (b *buckets) sorted() []PeriodTotals {
	out := b.ordered()
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
