package importer

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// WhatsAppParser reads an exported WhatsApp group chat where players post
// that they have paid. Both export styles are understood:
//
//	12/03/2025, 19:42 - Jon Smith: paid £20
//	[12/03/2025, 19:42:10] Jon Smith: paid £20
//
// The first amount in a message is a payment by the sender. An amount
// without a pound sign only counts when the message also says it was paid,
// so "training moved to 7" is not money. Messages without an amount, and
// continuation lines, are ignored.
type WhatsAppParser struct{}

var (
	whatsAppLine  = regexp.MustCompile(`^\[?(\d{1,2}/\d{1,2}/\d{2,4}),? \d{1,2}:\d{2}(?::\d{2})?\]?(?: -)? ([^:]+): (.+)$`)
	poundAmount   = regexp.MustCompile(`£\s?(\d+(?:\.\d{1,2})?)`)
	plainAmount   = regexp.MustCompile(`\b(\d+(?:\.\d{1,2})?)\b`)
	paymentWord   = regexp.MustCompile(`(?i)\b(paid|pay(?:ing)?|sent|send(?:ing)?|transferred|transfer|bacs)\b`)
	invisibleRune = strings.NewReplacer("\u200e", "", "\u200f", "", "\u202f", " ")
)

// Format returns the parser name.
func (p *WhatsAppParser) Format() string { return "whatsapp" }

// Parse reads a chat export.
func (p *WhatsAppParser) Parse(r io.Reader) ([]Row, error) {
	sc := bufio.NewScanner(r)
	var rows []Row
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(invisibleRune.Replace(sc.Text()))
		m := whatsAppLine.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		amount, ok := messageAmount(m[3])
		if !ok {
			continue
		}
		date, err := parseDate(m[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rows = append(rows, Row{
			Line:        line,
			Date:        date,
			Name:        strings.TrimSpace(m[2]),
			Amount:      amount,
			Description: strings.TrimSpace(m[3]),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading chat export: %w", err)
	}
	return rows, nil
}

// messageAmount prefers an amount written with a pound sign. A bare number
// only counts when the message also has a payment word.
func messageAmount(msg string) (decimal.Decimal, bool) {
	m := poundAmount.FindStringSubmatch(msg)
	if m == nil && paymentWord.MatchString(msg) {
		m = plainAmount.FindStringSubmatch(msg)
	}
	if m == nil {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(m[1])
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}
