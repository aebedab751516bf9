package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/clubhouse/internal/model"
)

// Header is the CSV header for transactions.csv. Flow is derived from type
// and is not part of the file.
const Header = "id,date,category,type,amount,player_id,fixture_id,is_reconciled,is_write_off,write_off_of,description,payee,import_batch"

const (
	numFields    = 13
	colID        = 0
	colDate      = 1
	colCategory  = 2
	colType      = 3
	colAmount    = 4
	colPlayerID  = 5
	colFixtureID = 6
	colReconc    = 7
	colWriteOff  = 8
	colWriteOf   = 9
	colDesc      = 10
	colPayee     = 11
	colBatch     = 12
)

// ReadTransactions reads all transactions from a transactions.csv reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var txs []model.Transaction
	for i, rec := range records[1:] {
		tx, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// WriteTransactions writes transactions.csv (including header).
func WriteTransactions(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, tx := range txs {
		if err := cw.Write(MarshalTransaction(tx)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(tx model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = formatRef(tx.ID)
	row[colDate] = tx.Date
	row[colCategory] = tx.Category
	row[colType] = string(tx.Type)
	row[colAmount] = tx.Amount.StringFixed(2)
	row[colPlayerID] = formatRef(tx.PlayerID)
	row[colFixtureID] = formatRef(tx.FixtureID)
	row[colReconc] = strconv.FormatBool(tx.IsReconciled)
	row[colWriteOff] = strconv.FormatBool(tx.IsWriteOff)
	row[colWriteOf] = formatRef(tx.WriteOffOf)
	row[colDesc] = tx.Description
	row[colPayee] = tx.Payee
	row[colBatch] = tx.ImportBatch
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	refs := make([]int64, 4)
	for i, col := range []int{colID, colPlayerID, colFixtureID, colWriteOf} {
		refs[i], err = parseRef(record[col])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing column %d %q: %w", col+1, record[col], err)
		}
	}

	reconciled, err := parseFlag(record[colReconc])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing is_reconciled %q: %w", record[colReconc], err)
	}
	writeOff, err := parseFlag(record[colWriteOff])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing is_write_off %q: %w", record[colWriteOff], err)
	}

	return model.Transaction{
		ID:           refs[0],
		Date:         record[colDate],
		Category:     record[colCategory],
		Type:         model.TxType(record[colType]),
		Amount:       amount,
		PlayerID:     refs[1],
		FixtureID:    refs[2],
		IsReconciled: reconciled,
		IsWriteOff:   writeOff,
		WriteOffOf:   refs[3],
		Description:  record[colDesc],
		Payee:        record[colPayee],
		ImportBatch:  record[colBatch],
	}, nil
}

func formatRef(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func parseRef(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

func parseFlag(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}
