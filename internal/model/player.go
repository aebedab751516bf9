package model

import "strings"

// Player is a member of the club roster.
type Player struct {
	ID          int64
	FirstName   string
	LastName    string
	Positions   string // comma-joined codes, e.g. "GK,CB"
	IsActive    bool
	DateOfBirth string // "YYYY-MM-DD", optional
	ShirtNumber int    // 0 = unassigned
}

// FullName returns "First Last", the key used for free-text matching.
func (p Player) FullName() string {
	return p.FirstName + " " + p.LastName
}

// PositionList splits Positions into trimmed, non-empty codes.
func (p Player) PositionList() []string {
	var out []string
	for _, code := range strings.Split(p.Positions, ",") {
		code = strings.TrimSpace(code)
		if code != "" {
			out = append(out, code)
		}
	}
	return out
}
