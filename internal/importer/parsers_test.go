package importer

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestdata(t *testing.T, name string) *os.File {
	t.Helper()
	f, err := os.Open("../../testdata/" + name)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestPaymentsParser_Parse(t *testing.T) {
	rows, err := (&PaymentsParser{}).Parse(openTestdata(t, "payments.csv"))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "2025-01-12", rows[0].Date)
	assert.Equal(t, "Jon Smith", rows[0].Name)
	assert.Equal(t, "MATCH_FEE", rows[0].Category)
	assert.Equal(t, "10.00", rows[0].Amount.StringFixed(2))

	assert.Equal(t, "2025-01-12", rows[1].Date, "UK day-first date")
	assert.Equal(t, "1000.00", rows[2].Amount.StringFixed(2))
	assert.Equal(t, "", rows[3].Category)
}

func TestPaymentsParser_NegativeBecomesPayment(t *testing.T) {
	data := "date,name,category,amount,description\n2025-01-12,Jon Smith,SUBS,-30,\n"
	rows, err := (&PaymentsParser{}).Parse(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Amount.IsPositive())
}

func TestPaymentsParser_Errors(t *testing.T) {
	tests := []struct {
		row  string
		want string
	}{
		{"yesterday,Jon Smith,SUBS,30,", "parsing date"},
		{"2025-01-12,Jon Smith,SUBS,thirty,", "parsing amount"},
		{"2025-01-12,Jon Smith,SUBS,0,", "zero amount"},
	}
	for _, tt := range tests {
		_, err := (&PaymentsParser{}).Parse(strings.NewReader("date,name,category,amount,description\n" + tt.row + "\n"))
		require.Error(t, err, tt.row)
		assert.Contains(t, err.Error(), tt.want)
		assert.Contains(t, err.Error(), "row 2")
	}
}

func TestPaymentsParser_FixtureColumn(t *testing.T) {
	data := "date,name,category,amount,description,fixture\n" +
		"2025-01-12,Jon Smith,MATCH_FEE,10,,3\n" +
		"2025-01-12,Aled Jones,SUBS,30,,\n"
	rows, err := (&PaymentsParser{}).Parse(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(3), rows[0].FixtureID)
	assert.Zero(t, rows[1].FixtureID)

	_, err = (&PaymentsParser{}).Parse(strings.NewReader("date,name,category,amount,description,fixture\n2025-01-12,Jon Smith,MATCH_FEE,10,,third\n"))
	assert.ErrorContains(t, err, "parsing fixture")

	_, err = (&PaymentsParser{}).Parse(strings.NewReader("date,name,amount\n2025-01-12,Jon Smith,10\n"))
	assert.ErrorContains(t, err, "expected 5 or 6 columns")
}

func TestPaymentsParser_HeaderOnly(t *testing.T) {
	rows, err := (&PaymentsParser{}).Parse(strings.NewReader("date,name,category,amount,description\n"))
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestKitParser_Parse(t *testing.T) {
	rows, err := (&KitParser{}).Parse(openTestdata(t, "kit.csv"))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Connor Smyth", rows[0].Name)
	assert.Equal(t, "KIT", rows[0].Category)
	assert.Equal(t, "-35.00", rows[0].Amount.StringFixed(2))
	assert.Equal(t, "Home shirt (L)", rows[0].Description)
	assert.Equal(t, "-22.50", rows[1].Amount.StringFixed(2))
}

func TestWhatsAppParser_Parse(t *testing.T) {
	rows, err := (&WhatsAppParser{}).Parse(openTestdata(t, "whatsapp.txt"))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, 1, rows[0].Line)
	assert.Equal(t, "Conor Davies", rows[0].Name)
	assert.Equal(t, "2025-01-12", rows[0].Date)
	assert.Equal(t, "10.00", rows[0].Amount.StringFixed(2))
	assert.Equal(t, "Paid £10 for Saturday", rows[0].Description)

	assert.Equal(t, "Connor Smith", rows[1].Name)
	assert.Equal(t, "10.00", rows[1].Amount.StringFixed(2), "amount without a pound sign")

	assert.Equal(t, "Jon Smith", rows[2].Name, "bracketed export style")
	assert.Equal(t, "2025-01-13", rows[2].Date)
	assert.Equal(t, 5, rows[2].Line)

	assert.Equal(t, "+44 7700 900123", rows[3].Name)
	for _, r := range rows {
		assert.Less(t, r.Line, 7, "chat about training times and numbers of players is not a payment")
	}
}

func TestMessageAmount(t *testing.T) {
	tests := []struct {
		msg  string
		want string
		ok   bool
	}{
		{"paid £20", "20", true},
		{"2 games, £12.50 sent", "12.5", true},
		{"sent 15", "15", true},
		{"see you saturday", "", false},
		{"paid 0", "", false},
		{"training moved to 7 tonight", "", false},
		{"need 2 more for Saturday", "", false},
		{"transferred 20 this morning", "20", true},
		{"Sent 12.50 via bank", "12.5", true},
	}
	for _, tt := range tests {
		got, ok := messageAmount(tt.msg)
		assert.Equal(t, tt.ok, ok, tt.msg)
		if tt.ok {
			assert.Equal(t, tt.want, got.String(), tt.msg)
		}
	}
}
