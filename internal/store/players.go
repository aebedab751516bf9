package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cleared-dev/clubhouse/internal/model"
)

const playerColumns = "id, first_name, last_name, positions, is_active, date_of_birth, shirt_number"

// Players returns all players ordered by ID.
func (s *Store) Players(ctx context.Context) ([]model.Player, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+playerColumns+" FROM players ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer rows.Close()

	var out []model.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating players: %w", err)
	}
	return out, nil
}

// Player returns a player by ID.
func (s *Store) Player(ctx context.Context, id int64) (model.Player, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+playerColumns+" FROM players WHERE id = ?", id)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Player{}, fmt.Errorf("player %d: %w", id, ErrNotFound)
	}
	return p, err
}

// AddPlayer inserts p and returns its new ID. p.ID is ignored.
func (s *Store) AddPlayer(ctx context.Context, p model.Player) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO players (first_name, last_name, positions, is_active, date_of_birth, shirt_number) VALUES (?, ?, ?, ?, ?, ?)",
		p.FirstName, p.LastName, p.Positions, boolToInt(p.IsActive), p.DateOfBirth, p.ShirtNumber)
	if err != nil {
		return 0, fmt.Errorf("inserting player: %w", err)
	}
	return res.LastInsertId()
}

// BulkAddPlayers inserts players in one transaction and returns their IDs.
func (s *Store) BulkAddPlayers(ctx context.Context, players []model.Player) ([]int64, error) {
	ids := make([]int64, 0, len(players))
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			"INSERT INTO players (first_name, last_name, positions, is_active, date_of_birth, shirt_number) VALUES (?, ?, ?, ?, ?, ?)")
		if err != nil {
			return fmt.Errorf("preparing insert: %w", err)
		}
		defer stmt.Close()

		for i, p := range players {
			res, err := stmt.ExecContext(ctx, p.FirstName, p.LastName, p.Positions, boolToInt(p.IsActive), p.DateOfBirth, p.ShirtNumber)
			if err != nil {
				return fmt.Errorf("inserting player %d: %w", i, err)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("reading player id: %w", err)
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Int("count", len(ids)).Msg("players added")
	return ids, nil
}

// UpdatePlayer overwrites the player with p.ID.
func (s *Store) UpdatePlayer(ctx context.Context, p model.Player) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE players SET first_name = ?, last_name = ?, positions = ?, is_active = ?, date_of_birth = ?, shirt_number = ? WHERE id = ?",
		p.FirstName, p.LastName, p.Positions, boolToInt(p.IsActive), p.DateOfBirth, p.ShirtNumber, p.ID)
	if err != nil {
		return fmt.Errorf("updating player %d: %w", p.ID, err)
	}
	return expectOne(res, "player", p.ID)
}

// DeletePlayer removes a player together with their transactions.
func (s *Store) DeletePlayer(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM players WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting player %d: %w", id, err)
		}
		if err := expectOne(res, "player", id); err != nil {
			return err
		}
		res, err = tx.ExecContext(ctx, "DELETE FROM transactions WHERE player_id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting transactions of player %d: %w", id, err)
		}
		n, _ := res.RowsAffected()
		s.log.Info().Int64("player_id", id).Int64("transactions", n).Msg("player deleted")
		return nil
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(sc scanner) (model.Player, error) {
	var (
		p      model.Player
		active int
	)
	if err := sc.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Positions, &active, &p.DateOfBirth, &p.ShirtNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Player{}, err
		}
		return model.Player{}, fmt.Errorf("scanning player: %w", err)
	}
	p.IsActive = active != 0
	return p, nil
}

func expectOne(res sql.Result, kind string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	return nil
}
