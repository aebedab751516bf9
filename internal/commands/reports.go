package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/clubhouse/internal/categories"
	"github.com/cleared-dev/clubhouse/internal/finance"
	"github.com/cleared-dev/clubhouse/internal/ledger"
	"github.com/cleared-dev/clubhouse/internal/roster"
)

func newOutstandingCommand(a *app) *cobra.Command {
	var playerID int64
	var all bool

	cmd := &cobra.Command{
		Use:   "outstanding",
		Short: "List charges that are neither paid nor written off",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			players, err := c.store.Players(ctx)
			if err != nil {
				return err
			}
			txs, err := c.store.Transactions(ctx)
			if err != nil {
				return err
			}
			names := roster.NewService(players)
			rec := ledger.NewReconciler(a.log)

			out := cmd.OutOrStdout()
			tw := newTable(out)
			fmt.Fprintln(tw, "ID\tDATE\tPLAYER\tCATEGORY\tFIXTURE\tAMOUNT\tSTATUS")
			count := 0
			for _, s := range rec.SettleAll(txs) {
				if playerID != 0 && s.Charge.PlayerID != playerID {
					continue
				}
				if !all && s.Status != ledger.StatusOutstanding {
					continue
				}
				count++
				ch := s.Charge
				fixture := ""
				if ch.FixtureID != 0 {
					fixture = fmt.Sprint(ch.FixtureID)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					ch.ID, ch.Date, names.Name(ch.PlayerID), ch.Category, fixture, money(ch.Amount.Abs()), statusLabel(s.Status))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if count == 0 {
				fmt.Fprintln(out, "Nothing outstanding")
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&playerID, "player", 0, "only this player's charges")
	cmd.Flags().BoolVar(&all, "all", false, "include settled charges")
	return cmd
}

func newBalancesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Show each player's balance and the club's open totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			players, err := c.store.Players(ctx)
			if err != nil {
				return err
			}
			txs, err := c.store.Transactions(ctx)
			if err != nil {
				return err
			}
			names := roster.NewService(players)
			balances := finance.PlayerBalances(txs)

			ids := make([]int64, 0, len(balances))
			for id := range balances {
				ids = append(ids, id)
			}
			sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

			out := cmd.OutOrStdout()
			tw := newTable(out)
			fmt.Fprintln(tw, "ID\tPLAYER\tBALANCE")
			for _, id := range ids {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", id, names.Name(id), money(balances[id]))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(out, "\nOutstanding receivable: %s %s\n", money(finance.OutstandingReceivable(txs)), c.cfg.Club.Currency)
			fmt.Fprintf(out, "Outstanding payable:    %s %s\n", money(finance.OutstandingPayable(txs)), c.cfg.Club.Currency)
			return nil
		},
	}
}

func newStatementCommand(a *app) *cobra.Command {
	var monthly, season bool

	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Income and expense by period and by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if monthly && season {
				return fmt.Errorf("--monthly and --season cannot be combined")
			}

			ctx := cmd.Context()
			c, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			txs, err := c.store.Transactions(ctx)
			if err != nil {
				return err
			}

			var periods []finance.PeriodTotals
			switch {
			case monthly:
				periods = finance.MonthlyStatement(txs)
			case season:
				periods, err = finance.SeasonStatement(txs, c.cfg.Season.Start)
				if err != nil {
					return err
				}
			default:
				periods = finance.YearlyStatement(txs)
			}

			out := cmd.OutOrStdout()
			heading(out, "%s statement (%s)", c.cfg.Club.Name, c.cfg.Club.Currency)
			tw := newTable(out)
			fmt.Fprintln(tw, "PERIOD\tINCOME\tEXPENSE\tNET")
			for _, p := range periods {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Key, money(p.Income), money(p.Expense), money(p.Net))
			}
			fmt.Fprintln(tw, "\t\t\t")
			fmt.Fprintln(tw, "CATEGORY\tINCOME\tEXPENSE\tNET")
			for _, cs := range finance.CategoryBreakdown(txs) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", cs.Category, money(cs.Income), money(cs.Expense), money(cs.Net))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&monthly, "monthly", false, "bucket by month instead of year")
	cmd.Flags().BoolVar(&season, "season", false, "bucket by season")
	return cmd
}

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the ledger for inconsistent transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			players, err := c.store.Players(ctx)
			if err != nil {
				return err
			}
			txs, err := c.store.Transactions(ctx)
			if err != nil {
				return err
			}

			errs := ledger.ValidateTransactions(txs, roster.NewService(players), categories.NewService(c.cfg.CategoryList()))
			out := cmd.OutOrStdout()
			if len(errs) == 0 {
				fmt.Fprintf(out, "%d transactions OK\n", len(txs))
				return nil
			}
			for _, e := range errs {
				fmt.Fprintln(out, styleWarning.Render(e.Error()))
			}
			return fmt.Errorf("%d validation errors", len(errs))
		},
	}
}
