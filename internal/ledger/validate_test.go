package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cleared-dev/clubhouse/internal/model"
)

type mockPlayers map[int64]bool

func (m mockPlayers) Exists(id int64) bool { return m[id] }

type mockCategories map[string]bool

func (m mockCategories) Exists(name string) bool { return m[name] }

var (
	defaultPlayers    = mockPlayers{5: true, 6: true}
	defaultCategories = mockCategories{"MATCH_FEE": true, "SUBS": true}
)

func hasCheck(errs []ValidationError, c Check) bool {
	for _, e := range errs {
		if e.Check == c {
			return true
		}
	}
	return false
}

func TestValidate_Clean(t *testing.T) {
	txs := []model.Transaction{matchFee(), payment("20")}
	assert.Empty(t, ValidateTransactions(txs, defaultPlayers, defaultCategories))
}

func TestValidate_Empty(t *testing.T) {
	assert.Empty(t, ValidateTransactions(nil, defaultPlayers, defaultCategories))
}

func TestValidate_Checks(t *testing.T) {
	tests := []struct {
		name  string
		txs   []model.Transaction
		check Check
	}{
		{
			"unknown type",
			[]model.Transaction{{ID: 1, Date: "2025-01-01", Category: "SUBS", Type: "income", Amount: dec("5")}},
			CheckType,
		},
		{
			"zero amount",
			[]model.Transaction{{ID: 1, Date: "2025-01-01", Category: "SUBS", Type: model.TypeIncome}},
			CheckZeroAmount,
		},
		{
			"unknown player",
			[]model.Transaction{{ID: 1, Date: "2025-01-01", Category: "SUBS", Type: model.TypeIncome, PlayerID: 99, Amount: dec("5")}},
			CheckUnknownPlayer,
		},
		{
			"unknown category",
			[]model.Transaction{{ID: 1, Date: "2025-01-01", Category: "BAR", Type: model.TypeIncome, Amount: dec("5")}},
			CheckUnknownCategory,
		},
		{
			"bad date",
			[]model.Transaction{{ID: 1, Date: "11/01/2025", Category: "SUBS", Type: model.TypeIncome, Amount: dec("5")}},
			CheckDate,
		},
		{
			"negative write-off",
			[]model.Transaction{{ID: 1, Date: "2025-01-01", Category: "SUBS", Type: model.TypeIncome, IsWriteOff: true, Amount: dec("-5")}},
			CheckWriteOffSign,
		},
		{
			"dangling write-off",
			[]model.Transaction{{ID: 1, Date: "2025-01-01", Category: "SUBS", Type: model.TypeIncome, IsWriteOff: true, WriteOffOf: 40, Amount: dec("5")}},
			CheckWriteOffTarget,
		},
		{
			"write-off of a payment",
			[]model.Transaction{
				payment("20"),
				{ID: 3, Date: "2025-01-01", Category: "MATCH_FEE", Type: model.TypeIncome, IsWriteOff: true, WriteOffOf: 2, Amount: dec("5")},
			},
			CheckWriteOffTarget,
		},
		{
			"link without write-off flag",
			[]model.Transaction{matchFee(), {ID: 3, Date: "2025-01-01", Category: "MATCH_FEE", Type: model.TypeIncome, WriteOffOf: 1, Amount: dec("5")}},
			CheckWriteOffTarget,
		},
		{
			"three decimals",
			[]model.Transaction{{ID: 1, Date: "2025-01-01", Category: "SUBS", Type: model.TypeIncome, Amount: dec("5.125")}},
			CheckDecimals,
		},
		{
			"double payment",
			[]model.Transaction{matchFee(), payment("20"), func() model.Transaction { p := payment("20"); p.ID = 3; return p }()},
			CheckAmbiguousCoverage,
		},
		{
			"one payment for two charges",
			[]model.Transaction{matchFee(), func() model.Transaction { c := matchFee(); c.ID = 3; return c }(), payment("20")},
			CheckSharedCoverer,
		},
	}
	for _, tt := range tests {
		errs := ValidateTransactions(tt.txs, defaultPlayers, defaultCategories)
		assert.True(t, hasCheck(errs, tt.check), "%s: expected check %d, got %v", tt.name, tt.check, errs)
	}
}

func TestValidate_SharedCovererNeedsDistinctTargets(t *testing.T) {
	second := matchFee()
	second.ID, second.FixtureID = 3, 9
	first := matchFee()
	first.FixtureID = 8
	pay := payment("20")
	pay.FixtureID = 8

	errs := ValidateTransactions([]model.Transaction{first, second, pay}, defaultPlayers, defaultCategories)
	assert.False(t, hasCheck(errs, CheckSharedCoverer), "fixtures keep the charges apart: %v", errs)
}

func TestValidate_NilCheckersSkip(t *testing.T) {
	txs := []model.Transaction{{ID: 1, Date: "2025-01-01", Category: "BAR", Type: model.TypeIncome, PlayerID: 99, Amount: dec("5")}}
	assert.Empty(t, ValidateTransactions(txs, nil, nil))
}

func TestValidationError_Error(t *testing.T) {
	e := ValidationError{Check: CheckDate, TxID: 4, Description: "unparseable date \"x\""}
	assert.Equal(t, `check 5 [tx 4]: unparseable date "x"`, e.Error())
}
