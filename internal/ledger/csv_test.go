package ledger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/clubhouse/internal/model"
)

func TestTransactionsCSV_RoundTrip(t *testing.T) {
	txs := []model.Transaction{
		matchFee(),
		{ID: 3, Date: "2025-01-20", Category: "MATCH_FEE", Type: model.TypeIncome, Amount: dec("20"), PlayerID: 5,
			IsWriteOff: true, WriteOffOf: 1, Description: "hardship, agreed by committee", ImportBatch: "b-1"},
		{ID: 4, Date: "2025-01-21", Category: "REFEREE", Type: model.TypeExpense, Amount: dec("-45.50"), FixtureID: 7,
			IsReconciled: true, Payee: "Valleys Referees Assoc."},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, txs))

	got, err := ReadTransactions(&buf)
	require.NoError(t, err)
	require.Len(t, got, 3)

	for i := range txs {
		assert.Equal(t, txs[i].ID, got[i].ID)
		assert.True(t, txs[i].Amount.Equal(got[i].Amount), "row %d amount", i)
		assert.Equal(t, txs[i].PlayerID, got[i].PlayerID)
		assert.Equal(t, txs[i].FixtureID, got[i].FixtureID)
		assert.Equal(t, txs[i].WriteOffOf, got[i].WriteOffOf)
		assert.Equal(t, txs[i].IsWriteOff, got[i].IsWriteOff)
		assert.Equal(t, txs[i].IsReconciled, got[i].IsReconciled)
		assert.Equal(t, txs[i].Description, got[i].Description)
		assert.Equal(t, txs[i].Payee, got[i].Payee)
		assert.Equal(t, txs[i].Type, got[i].Type)
	}
}

func TestMarshalTransaction_Format(t *testing.T) {
	row := MarshalTransaction(matchFee())
	assert.Equal(t, "1", row[colID])
	assert.Equal(t, "-20.00", row[colAmount])
	assert.Equal(t, "5", row[colPlayerID])
	assert.Equal(t, "", row[colFixtureID])
	assert.Equal(t, "false", row[colWriteOff])
}

func TestReadTransactions_Errors(t *testing.T) {
	tests := []struct {
		row  string
		want string
	}{
		{"1,2025-01-01,SUBS,INCOME,abc,,,false,false,,,,", "parsing amount"},
		{"x,2025-01-01,SUBS,INCOME,5,,,false,false,,,,", "parsing column 1"},
		{"1,2025-01-01,SUBS,INCOME,5,,,nope,false,,,,", "parsing is_reconciled"},
		{"1,2025-01-01,SUBS,INCOME,5,,,false,nope,,,,", "parsing is_write_off"},
	}
	for _, tt := range tests {
		_, err := ReadTransactions(strings.NewReader(Header + "\n" + tt.row + "\n"))
		require.Error(t, err, tt.row)
		assert.Contains(t, err.Error(), tt.want)
	}
}
