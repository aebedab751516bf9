package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var dateLayouts = []string{"2006-01-02", "02/01/2006", "2/1/2006", "02/01/06", "2/1/06"}

// parseDate accepts ISO and UK day-first dates and returns "YYYY-MM-DD".
func parseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q", s)
}

// parseAmount strips currency symbols and thousands separators.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer("£", "", "$", "", "€", "", ",", "", " ", "").Replace(s)
	return decimal.NewFromString(clean)
}

// parseFixture reads an optional fixture ID. Blank means none.
func parseFixture(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("parsing fixture %q: invalid id", s)
	}
	return id, nil
}
