package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/clubhouse/internal/model"
)

const txColumns = "id, date, category, type, amount, player_id, fixture_id, is_reconciled, is_write_off, write_off_of, description, payee, import_batch"

const txInsert = `INSERT INTO transactions
	(date, category, type, amount, player_id, fixture_id, is_reconciled, is_write_off, write_off_of, description, payee, import_batch)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Transactions returns all transactions ordered by ID, which is insertion
// order and therefore the order first-match coverage uses.
func (s *Store) Transactions(ctx context.Context) ([]model.Transaction, error) {
	return s.queryTransactions(ctx, "SELECT "+txColumns+" FROM transactions ORDER BY id")
}

// TransactionsForPlayer returns one player's transactions ordered by ID.
func (s *Store) TransactionsForPlayer(ctx context.Context, playerID int64) ([]model.Transaction, error) {
	return s.queryTransactions(ctx, "SELECT "+txColumns+" FROM transactions WHERE player_id = ? ORDER BY id", playerID)
}

// Transaction returns a transaction by ID.
func (s *Store) Transaction(ctx context.Context, id int64) (model.Transaction, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+txColumns+" FROM transactions WHERE id = ?", id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	return t, err
}

// AddTransaction inserts t and returns its new ID. t.ID is ignored.
func (s *Store) AddTransaction(ctx context.Context, t model.Transaction) (int64, error) {
	res, err := s.db.ExecContext(ctx, txInsert, txArgs(t)...)
	if err != nil {
		return 0, fmt.Errorf("inserting transaction: %w", err)
	}
	return res.LastInsertId()
}

// BulkAddTransactions inserts txs in one transaction and returns their IDs.
func (s *Store) BulkAddTransactions(ctx context.Context, txs []model.Transaction) ([]int64, error) {
	ids := make([]int64, 0, len(txs))
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, txInsert)
		if err != nil {
			return fmt.Errorf("preparing insert: %w", err)
		}
		defer stmt.Close()

		for i, t := range txs {
			res, err := stmt.ExecContext(ctx, txArgs(t)...)
			if err != nil {
				return fmt.Errorf("inserting transaction %d: %w", i, err)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("reading transaction id: %w", err)
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Int("count", len(ids)).Msg("transactions added")
	return ids, nil
}

// UpdateTransaction overwrites the transaction with t.ID.
func (s *Store) UpdateTransaction(ctx context.Context, t model.Transaction) error {
	args := append(txArgs(t), t.ID)
	res, err := s.db.ExecContext(ctx, `UPDATE transactions SET
		date = ?, category = ?, type = ?, amount = ?, player_id = ?, fixture_id = ?, is_reconciled = ?,
		is_write_off = ?, write_off_of = ?, description = ?, payee = ?, import_batch = ?
		WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("updating transaction %d: %w", t.ID, err)
	}
	return expectOne(res, "transaction", t.ID)
}

// DeleteTransaction removes a transaction by ID.
func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting transaction %d: %w", id, err)
	}
	return expectOne(res, "transaction", id)
}

// DeleteBatch removes every transaction stamped with an import batch and
// returns how many were removed.
func (s *Store) DeleteBatch(ctx context.Context, batch string) (int64, error) {
	if batch == "" {
		return 0, fmt.Errorf("empty batch id")
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE import_batch = ?", batch)
	if err != nil {
		return 0, fmt.Errorf("deleting batch %s: %w", batch, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading rows affected: %w", err)
	}
	s.log.Info().Str("batch", batch).Int64("transactions", n).Msg("import batch removed")
	return n, nil
}

func (s *Store) queryTransactions(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	var out []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}
	return out, nil
}

func txArgs(t model.Transaction) []any {
	return []any{
		t.Date, t.Category, string(t.Type), t.Amount.String(), t.PlayerID, t.FixtureID,
		boolToInt(t.IsReconciled), boolToInt(t.IsWriteOff), t.WriteOffOf, t.Description, t.Payee, t.ImportBatch,
	}
}

func scanTransaction(sc scanner) (model.Transaction, error) {
	var (
		t                    model.Transaction
		typ, amount          string
		reconciled, writeOff int
	)
	err := sc.Scan(&t.ID, &t.Date, &t.Category, &typ, &amount, &t.PlayerID, &t.FixtureID,
		&reconciled, &writeOff, &t.WriteOffOf, &t.Description, &t.Payee, &t.ImportBatch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Transaction{}, err
		}
		return model.Transaction{}, fmt.Errorf("scanning transaction: %w", err)
	}

	t.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q of transaction %d: %w", amount, t.ID, err)
	}
	t.Type = model.TxType(typ)
	t.IsReconciled = reconciled != 0
	t.IsWriteOff = writeOff != 0
	return t, nil
}
