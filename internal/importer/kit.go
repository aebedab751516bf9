package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/clubhouse/internal/categories"
)

// KitParser parses a kit order CSV: date,name,item,size,amount. Each row
// charges the player for the item.
type KitParser struct{}

const (
	kitNumFields = 5
	kitColDate   = 0
	kitColName   = 1
	kitColItem   = 2
	kitColSize   = 3
	kitColAmount = 4
)

// Format returns the parser name.
func (p *KitParser) Format() string { return "kit" }

// Parse reads a kit CSV (with header row).
func (p *KitParser) Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = kitNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading kit CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var rows []Row
	for i, rec := range records[1:] {
		date, err := parseDate(rec[kitColDate])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date: %w", i+2, err)
		}
		amount, err := parseAmount(rec[kitColAmount])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing amount %q: %w", i+2, rec[kitColAmount], err)
		}
		if amount.IsZero() {
			return nil, fmt.Errorf("row %d: zero amount", i+2)
		}

		desc := strings.TrimSpace(rec[kitColItem])
		if size := strings.TrimSpace(rec[kitColSize]); size != "" {
			desc += " (" + size + ")"
		}
		rows = append(rows, Row{
			Line:        i + 2,
			Date:        date,
			Name:        strings.TrimSpace(rec[kitColName]),
			Category:    categories.Kit,
			Amount:      amount.Abs().Neg(),
			Description: desc,
		})
	}
	return rows, nil
}
