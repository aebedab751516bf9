package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// PaymentsParser parses a payments CSV: date,name,category,amount,description
// with an optional sixth fixture column. Every row is a payment, so amounts
// are made positive.
type PaymentsParser struct{}

const (
	paymentsNumFields   = 5
	paymentsMaxFields   = 6
	paymentsColDate     = 0
	paymentsColName     = 1
	paymentsColCategory = 2
	paymentsColAmount   = 3
	paymentsColDesc     = 4
	paymentsColFixture  = 5
)

// Format returns the parser name.
func (p *PaymentsParser) Format() string { return "payments" }

// Parse reads a payments CSV (with header row).
func (p *PaymentsParser) Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 0 // every row must match the header

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading payments CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}
	if n := len(records[0]); n != paymentsNumFields && n != paymentsMaxFields {
		return nil, fmt.Errorf("expected %d or %d columns, got %d", paymentsNumFields, paymentsMaxFields, n)
	}

	var rows []Row
	for i, rec := range records[1:] {
		date, err := parseDate(rec[paymentsColDate])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date: %w", i+2, err)
		}
		amount, err := parseAmount(rec[paymentsColAmount])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing amount %q: %w", i+2, rec[paymentsColAmount], err)
		}
		if amount.IsZero() {
			return nil, fmt.Errorf("row %d: zero amount", i+2)
		}
		var fixture int64
		if len(rec) > paymentsColFixture {
			if fixture, err = parseFixture(rec[paymentsColFixture]); err != nil {
				return nil, fmt.Errorf("row %d: %w", i+2, err)
			}
		}
		rows = append(rows, Row{
			Line:        i + 2,
			Date:        date,
			Name:        strings.TrimSpace(rec[paymentsColName]),
			Category:    strings.ToUpper(strings.TrimSpace(rec[paymentsColCategory])),
			Amount:      amount.Abs(),
			Description: rec[paymentsColDesc],
			FixtureID:   fixture,
		})
	}
	return rows, nil
}
