package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/clubhouse/internal/auditlog"
	"github.com/cleared-dev/clubhouse/internal/categories"
	"github.com/cleared-dev/clubhouse/internal/ledger"
	"github.com/cleared-dev/clubhouse/internal/model"
	"github.com/cleared-dev/clubhouse/internal/roster"
	"github.com/cleared-dev/clubhouse/internal/store"
)

// entryFlags are shared by charge and pay.
type entryFlags struct {
	player      int64
	category    string
	amount      string
	date        string
	fixture     int64
	description string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.player, "player", 0, "player ID")
	cmd.Flags().StringVar(&f.category, "category", "", "ledger category (required)")
	cmd.Flags().StringVar(&f.amount, "amount", "", "amount, e.g. 10.00 (required)")
	cmd.Flags().StringVar(&f.date, "date", "", "date YYYY-MM-DD (default today)")
	cmd.Flags().Int64Var(&f.fixture, "fixture", 0, "fixture ID")
	cmd.Flags().StringVar(&f.description, "description", "", "free-text description")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")
}

// transaction builds the ledger row. charge selects the sign.
func (f *entryFlags) transaction(c *club, charge bool) (model.Transaction, error) {
	amount, err := decimal.NewFromString(f.amount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", f.amount, err)
	}
	if amount.IsZero() {
		return model.Transaction{}, errors.New("amount must not be zero")
	}
	amount = amount.Abs()
	if charge {
		amount = amount.Neg()
	}

	date, err := dateOrToday(f.date)
	if err != nil {
		return model.Transaction{}, err
	}

	cats := categories.NewService(c.cfg.CategoryList())
	cat, ok := cats.Get(f.category)
	if !ok {
		return model.Transaction{}, fmt.Errorf("unknown category %q", f.category)
	}

	return model.Transaction{
		Date:        date,
		Category:    cat.Name,
		Type:        cat.Type,
		Amount:      amount,
		PlayerID:    f.player,
		FixtureID:   f.fixture,
		Description: f.description,
	}, nil
}

func dateOrToday(s string) (string, error) {
	if s == "" {
		return time.Now().Format(model.DateFormat), nil
	}
	if _, err := time.Parse(model.DateFormat, s); err != nil {
		return "", fmt.Errorf("parsing date %q: %w", s, err)
	}
	return s, nil
}

func newChargeCommand(a *app) *cobra.Command {
	var f entryFlags
	cmd := &cobra.Command{
		Use:   "charge",
		Short: "Record money a player owes, or an expense the club owes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return addEntry(cmd, a, &f, true)
		},
	}
	f.register(cmd)
	return cmd
}

func newPayCommand(a *app) *cobra.Command {
	var f entryFlags
	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Record a payment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return addEntry(cmd, a, &f, false)
		},
	}
	f.register(cmd)
	return cmd
}

func addEntry(cmd *cobra.Command, a *app, f *entryFlags, charge bool) error {
	ctx := cmd.Context()
	c, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	tx, err := f.transaction(c, charge)
	if err != nil {
		return err
	}
	if tx.PlayerID != 0 {
		if _, err := c.store.Player(ctx, tx.PlayerID); err != nil {
			return err
		}
	}

	id, err := c.store.AddTransaction(ctx, tx)
	if err != nil {
		return err
	}
	kind := "payment"
	if charge {
		kind = "charge"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s %d: %s %s\n", kind, id, tx.Category, money(tx.Amount))
	return nil
}

func newWriteOffCommand(a *app) *cobra.Command {
	var date, reason string

	cmd := &cobra.Command{
		Use:   "writeoff <charge id>",
		Short: "Write off a charge that will not be paid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var chargeID int64
			if _, err := fmt.Sscan(args[0], &chargeID); err != nil {
				return fmt.Errorf("parsing charge id %q: %w", args[0], err)
			}
			d, err := dateOrToday(date)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			c, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			charge, err := c.store.Transaction(ctx, chargeID)
			if err != nil {
				return err
			}
			if !ledger.IsCharge(charge) {
				return fmt.Errorf("transaction %d is not a charge", chargeID)
			}
			txs, err := c.store.TransactionsForPlayer(ctx, charge.PlayerID)
			if err != nil {
				return err
			}
			if st := ledger.StatusOf(charge, txs); st != ledger.StatusOutstanding {
				return fmt.Errorf("charge %d is already %s", chargeID, st)
			}

			wo := ledger.NewWriteOff(charge, d, reason)
			id, err := c.store.AddTransaction(ctx, wo)
			if err != nil {
				return err
			}
			a.audit(c.root, auditlog.Entry{
				Timestamp: time.Now(),
				Action:    auditlog.ActionWriteOff,
				Details:   fmt.Sprintf("charge %d written off by %d: %s", chargeID, id, wo.Description),
				Count:     1,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote off charge %d (%s) as transaction %d\n", chargeID, money(charge.Amount.Abs()), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&reason, "reason", "", "reason recorded in the description")
	return cmd
}

func newFeesCommand(a *app) *cobra.Command {
	var (
		fixture     int64
		date        string
		amount      string
		category    string
		playerIDs   []int64
		description string
	)

	cmd := &cobra.Command{
		Use:   "fees",
		Short: "Charge the match fee to every player in a fixture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dateOrToday(date)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			c, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			if amount == "" {
				amount = c.cfg.Fees.MatchFee
			}
			fee, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing fee %q: %w", amount, err)
			}
			if category == "" {
				category = c.cfg.Fees.Category
			}
			category = strings.ToUpper(category)

			players, err := c.store.Players(ctx)
			if err != nil {
				return err
			}
			known := roster.NewService(players)
			for _, id := range playerIDs {
				if !known.Exists(id) {
					return fmt.Errorf("player %d: %w", id, store.ErrNotFound)
				}
			}

			existing, err := c.store.Transactions(ctx)
			if err != nil {
				return err
			}
			charges := ledger.GenerateMatchFees(ledger.MatchFeeParams{
				FixtureID:   fixture,
				Date:        d,
				Category:    category,
				Amount:      fee,
				PlayerIDs:   playerIDs,
				Description: description,
			}, existing)
			if len(charges) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No new fees to charge")
				return nil
			}

			if _, err := c.store.BulkAddTransactions(ctx, charges); err != nil {
				return err
			}
			a.audit(c.root, auditlog.Entry{
				Timestamp: time.Now(),
				Action:    auditlog.ActionFees,
				Details:   fmt.Sprintf("fixture %d, %s %s each", fixture, category, money(fee.Abs())),
				Count:     len(charges),
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Charged %d players %s for fixture %d\n", len(charges), money(fee.Abs()), fixture)
			return nil
		},
	}

	cmd.Flags().Int64Var(&fixture, "fixture", 0, "fixture ID (required)")
	cmd.Flags().Int64SliceVar(&playerIDs, "players", nil, "comma-separated player IDs (required)")
	cmd.Flags().StringVar(&date, "date", "", "date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&amount, "amount", "", "fee per player (default from config)")
	cmd.Flags().StringVar(&category, "category", "", "category (default from config)")
	cmd.Flags().StringVar(&description, "description", "", "description for each charge")
	_ = cmd.MarkFlagRequired("fixture")
	_ = cmd.MarkFlagRequired("players")
	return cmd
}
