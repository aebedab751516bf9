package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/clubhouse/internal/ledger"
	"github.com/cleared-dev/clubhouse/internal/roster"
)

func newExportCommand(a *app) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write players and transactions to CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			if outDir == "" {
				outDir = filepath.Join(c.root, "exports")
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("creating export dir: %w", err)
			}

			players, err := c.store.Players(ctx)
			if err != nil {
				return err
			}
			txs, err := c.store.Transactions(ctx)
			if err != nil {
				return err
			}

			playersPath := filepath.Join(outDir, "players.csv")
			if err := writeFile(playersPath, func(f *os.File) error { return roster.WritePlayers(f, players) }); err != nil {
				return err
			}
			txPath := filepath.Join(outDir, "transactions.csv")
			if err := writeFile(txPath, func(f *os.File) error { return ledger.WriteTransactions(f, txs) }); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d players to %s\n", len(players), playersPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transactions to %s\n", len(txs), txPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default exports/)")
	return cmd
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
