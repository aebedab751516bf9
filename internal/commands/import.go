package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/clubhouse/internal/auditlog"
	"github.com/cleared-dev/clubhouse/internal/categories"
	"github.com/cleared-dev/clubhouse/internal/importer"
	"github.com/cleared-dev/clubhouse/internal/model"
	"github.com/cleared-dev/clubhouse/internal/roster"
)

func newImportCommand(a *app) *cobra.Command {
	var format string
	var dryRun bool
	var fixture int64

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import payments or kit orders, matching names to players",
		Long: "Import a payments CSV, kit order CSV or WhatsApp chat export. Without a file,\n" +
			"every file waiting in import/ is imported and moved to import/processed/.",
		Args: cobra.MaximumNArgs(1),
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
			run := importRun{
				app:     a,
				club:    c,
				out:     cmd.OutOrStdout(),
				players: roster.NewService(players).Active(),
				dryRun:  dryRun,
				fixture: fixture,
			}

			if len(args) == 1 {
				return run.file(cmd, args[0], format, false)
			}

			files, err := importer.Scan(c.root)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import")
				return nil
			}
			for _, f := range files {
				if err := run.file(cmd, f.Path, format, !dryRun); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "payments, kit or whatsapp (default guessed from file name)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show matches without recording anything")
	cmd.Flags().Int64Var(&fixture, "fixture", 0, "fixture ID for rows that do not name one")
	return cmd
}

type importRun struct {
	app     *app
	club    *club
	out     io.Writer
	players []model.Player
	dryRun  bool
	fixture int64
}

func (r importRun) file(cmd *cobra.Command, path, format string, moveWhenDone bool) error {
	name := filepath.Base(path)
	if format == "" {
		format = importer.FormatFor(name)
	}
	p := importer.DefaultRegistry().Get(format)
	if p == nil {
		return fmt.Errorf("unknown import format %q", format)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	cfg := r.club.cfg
	res, err := importer.New(r.app.log).Run(p, f, r.players, importer.Options{
		Threshold:       cfg.Threshold(p.Format()),
		SuggestLimit:    cfg.Matching.SuggestLimit,
		DefaultCategory: cfg.Fees.Category,
		FixtureID:       r.fixture,
		Types:           categories.NewService(cfg.CategoryList()),
	})
	if err != nil {
		return err
	}

	heading(r.out, "%s (%s)", name, p.Format())
	tw := newTable(r.out)
	for _, tx := range res.Transactions {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t-> player %d\n", tx.Date, tx.Payee, tx.Category, money(tx.Amount), tx.PlayerID)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, rev := range res.Review {
		var names []string
		for _, s := range rev.Candidates {
			names = append(names, fmt.Sprintf("%s #%d (%.2f)", s.Player.FullName(), s.Player.ID, s.Score))
		}
		fmt.Fprintln(r.out, styleWarning.Render(fmt.Sprintf("  line %d: no match for %q, did you mean: %s",
			rev.Row.Line, rev.Row.Name, strings.Join(names, ", "))))
	}

	if r.dryRun {
		fmt.Fprintf(r.out, "Dry run: %d matched, %d need review\n", len(res.Transactions), len(res.Review))
		return nil
	}

	if len(res.Transactions) > 0 {
		ctx := cmd.Context()
		if _, err := r.club.store.BulkAddTransactions(ctx, res.Transactions); err != nil {
			return err
		}
		r.app.audit(r.club.root, auditlog.Entry{
			Timestamp: time.Now(),
			Action:    auditlog.ActionImport,
			Details:   fmt.Sprintf("%s, %d need review", name, len(res.Review)),
			Batch:     res.Batch,
			Count:     len(res.Transactions),
		})
	}
	if moveWhenDone {
		if err := importer.MarkProcessed(r.club.root, name); err != nil {
			return err
		}
	}

	fmt.Fprintf(r.out, "Imported %d transactions as batch %s, %d need review\n", len(res.Transactions), res.Batch, len(res.Review))
	return nil
}

func newUndoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "undo <batch>",
		Short: "Remove every transaction added by an import batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			batch := args[0]
			ctx := cmd.Context()
			c, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			entries, err := auditlog.Read(c.root)
			if err != nil {
				return err
			}
			logged := auditlog.ForBatch(entries, batch)
			for _, e := range logged {
				if e.Action == auditlog.ActionUndo {
					return fmt.Errorf("batch %s was already undone", batch)
				}
			}

			n, err := c.store.DeleteBatch(ctx, batch)
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("no transactions in batch %s", batch)
			}

			a.audit(c.root, auditlog.Entry{
				Timestamp: time.Now(),
				Action:    auditlog.ActionUndo,
				Details:   fmt.Sprintf("removed %d transactions", n),
				Batch:     batch,
				Count:     int(n),
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d transactions from batch %s\n", n, batch)
			return nil
		},
	}
}
