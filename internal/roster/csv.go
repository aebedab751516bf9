package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cleared-dev/clubhouse/internal/model"
)

// Header is the CSV header for players.csv.
const Header = "player_id,first_name,last_name,positions,is_active,date_of_birth,shirt_number"

const (
	numFields  = 7
	colID      = 0
	colFirst   = 1
	colLast    = 2
	colPos     = 3
	colActive  = 4
	colDOB     = 5
	colShirtNo = 6
)

// ReadPlayers reads players.csv. A blank player_id means the row is a new
// player with no ID yet.
func ReadPlayers(r io.Reader) ([]model.Player, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading players CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var players []model.Player
	for i, rec := range records[1:] {
		p, err := UnmarshalPlayer(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		players = append(players, p)
	}
	return players, nil
}

// WritePlayers writes players.csv (including header).
func WritePlayers(w io.Writer, players []model.Player) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, p := range players {
		if err := cw.Write(MarshalPlayer(p)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalPlayer converts a Player to a CSV row.
func MarshalPlayer(p model.Player) []string {
	row := make([]string, numFields)
	if p.ID != 0 {
		row[colID] = strconv.FormatInt(p.ID, 10)
	}
	row[colFirst] = p.FirstName
	row[colLast] = p.LastName
	row[colPos] = p.Positions
	row[colActive] = strconv.FormatBool(p.IsActive)
	row[colDOB] = p.DateOfBirth
	if p.ShirtNumber != 0 {
		row[colShirtNo] = strconv.Itoa(p.ShirtNumber)
	}
	return row
}

// UnmarshalPlayer converts a CSV row to a Player. A blank is_active
// defaults to true.
func UnmarshalPlayer(record []string) (model.Player, error) {
	if len(record) != numFields {
		return model.Player{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	var (
		id    int64
		shirt int
		err   error
	)
	if record[colID] != "" {
		id, err = strconv.ParseInt(record[colID], 10, 64)
		if err != nil {
			return model.Player{}, fmt.Errorf("parsing player_id %q: %w", record[colID], err)
		}
	}

	active := true
	if record[colActive] != "" {
		active, err = strconv.ParseBool(record[colActive])
		if err != nil {
			return model.Player{}, fmt.Errorf("parsing is_active %q: %w", record[colActive], err)
		}
	}

	if record[colShirtNo] != "" {
		shirt, err = strconv.Atoi(record[colShirtNo])
		if err != nil {
			return model.Player{}, fmt.Errorf("parsing shirt_number %q: %w", record[colShirtNo], err)
		}
	}

	first := strings.TrimSpace(record[colFirst])
	last := strings.TrimSpace(record[colLast])
	if first == "" && last == "" {
		return model.Player{}, fmt.Errorf("player has no name")
	}

	return model.Player{
		ID:          id,
		FirstName:   first,
		LastName:    last,
		Positions:   record[colPos],
		IsActive:    active,
		DateOfBirth: record[colDOB],
		ShirtNumber: shirt,
	}, nil
}
