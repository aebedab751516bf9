package importer

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/clubhouse/internal/categories"
	"github.com/cleared-dev/clubhouse/internal/model"
)

func squad() []model.Player {
	return []model.Player{
		{ID: 1, FirstName: "Conor", LastName: "Davies", IsActive: true},
		{ID: 2, FirstName: "Connor", LastName: "Smith", IsActive: true},
		{ID: 3, FirstName: "John", LastName: "Smith", IsActive: true},
		{ID: 4, FirstName: "Aled", LastName: "Jones", IsActive: true},
	}
}

func TestResolve(t *testing.T) {
	rows := []Row{
		{Line: 2, Name: "Jon Smith", Amount: decimal.NewFromInt(10)},
		{Line: 3, Name: "Gareth Bale", Amount: decimal.NewFromInt(10)},
	}
	got := Resolve(rows, squad(), 0.7, 3)
	require.Len(t, got, 2)

	assert.True(t, got[0].Matched)
	assert.False(t, got[0].NeedsReview())
	assert.Equal(t, int64(3), got[0].Player.ID)
	assert.InDelta(t, 0.9, got[0].Score, 1e-9)

	assert.False(t, got[1].Matched)
	assert.True(t, got[1].NeedsReview())
	assert.Len(t, got[1].Candidates, 3)
	assert.Less(t, got[1].Score, 0.7)
}

func TestResolve_ThresholdIsCallerChoice(t *testing.T) {
	rows := []Row{{Name: "Jon Smith"}}
	assert.True(t, Resolve(rows, squad(), 0.9, 3)[0].Matched)
	assert.False(t, Resolve(rows, squad(), 0.91, 3)[0].Matched)
}

func TestResolve_NoPlayers(t *testing.T) {
	got := Resolve([]Row{{Name: "Jon Smith"}}, nil, 0.7, 3)
	require.Len(t, got, 1)
	assert.True(t, got[0].NeedsReview())
	assert.Empty(t, got[0].Candidates)
}

func TestBuild(t *testing.T) {
	res := []Resolution{
		{Row: Row{Date: "2025-01-12", Name: "Jon Smith", Amount: decimal.NewFromInt(10), Description: "cash"}, Player: model.Player{ID: 3}, Matched: true},
		{Row: Row{Date: "2025-01-12", Name: "Gareth Bale", Amount: decimal.NewFromInt(10)}},
		{Row: Row{Date: "2025-01-13", Name: "Aled", Category: "REFEREE", Amount: decimal.NewFromInt(-5)}, Player: model.Player{ID: 4}, Matched: true},
	}
	txs := Build(res, "batch-1", categories.MatchFee, 0, categories.NewService(categories.DefaultCategories()))
	require.Len(t, txs, 2)

	assert.Equal(t, "MATCH_FEE", txs[0].Category)
	assert.Equal(t, model.TypeIncome, txs[0].Type)
	assert.Equal(t, int64(3), txs[0].PlayerID)
	assert.Equal(t, "Jon Smith", txs[0].Payee)
	assert.Equal(t, "batch-1", txs[0].ImportBatch)

	assert.Equal(t, model.TypeExpense, txs[1].Type)
	assert.Zero(t, txs[0].FixtureID)
}

func TestBuild_Fixture(t *testing.T) {
	res := []Resolution{
		{Row: Row{Name: "Jon Smith", Amount: decimal.NewFromInt(10)}, Player: model.Player{ID: 3}, Matched: true},
		{Row: Row{Name: "Aled Jones", Amount: decimal.NewFromInt(10), FixtureID: 8}, Player: model.Player{ID: 4}, Matched: true},
	}
	txs := Build(res, "batch-1", categories.MatchFee, 3, nil)
	require.Len(t, txs, 2)
	assert.Equal(t, int64(3), txs[0].FixtureID, "default fixture")
	assert.Equal(t, int64(8), txs[1].FixtureID, "row fixture wins")
}

func TestImporter_Run(t *testing.T) {
	tests := []struct {
		file      string
		parser    Parser
		threshold float64
		matched   []int64
		review    []string
	}{
		{"payments.csv", &PaymentsParser{}, 0.70, []int64{3, 1, 4}, []string{"Gareth Bale"}},
		{"kit.csv", &KitParser{}, 0.65, []int64{2, 1}, nil},
		{"whatsapp.txt", &WhatsAppParser{}, 0.75, []int64{1, 2, 3}, []string{"+44 7700 900123"}},
	}
	for _, tt := range tests {
		t.Run(tt.parser.Format(), func(t *testing.T) {
			var buf bytes.Buffer
			im := New(zerolog.New(&buf))

			res, err := im.Run(tt.parser, openTestdata(t, tt.file), squad(), Options{
				Threshold:       tt.threshold,
				SuggestLimit:    3,
				DefaultCategory: categories.MatchFee,
				Types:           categories.NewService(categories.DefaultCategories()),
			})
			require.NoError(t, err)

			assert.Len(t, res.Batch, 36, "uuid batch id")
			var ids []int64
			for _, tx := range res.Transactions {
				ids = append(ids, tx.PlayerID)
				assert.Equal(t, res.Batch, tx.ImportBatch)
			}
			assert.Equal(t, tt.matched, ids)

			var names []string
			for _, r := range res.Review {
				names = append(names, r.Row.Name)
			}
			assert.Equal(t, tt.review, names)
			assert.Contains(t, buf.String(), "import resolved")
		})
	}
}

func TestImporter_Run_KitChargesAreCharges(t *testing.T) {
	im := New(zerolog.Nop())
	res, err := im.Run(&KitParser{}, openTestdata(t, "kit.csv"), squad(), Options{Threshold: 0.65})
	require.NoError(t, err)
	for _, tx := range res.Transactions {
		assert.True(t, tx.Amount.IsNegative())
		assert.Equal(t, "KIT", tx.Category)
	}
}

func TestImporter_Run_ParseError(t *testing.T) {
	im := New(zerolog.Nop())
	_, err := im.Run(&PaymentsParser{}, bytes.NewBufferString("a,b\n"), squad(), Options{Threshold: 0.7})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing payments import")
}
