package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/clubhouse/internal/auditlog"
	"github.com/cleared-dev/clubhouse/internal/buildinfo"
	"github.com/cleared-dev/clubhouse/internal/config"
	"github.com/cleared-dev/clubhouse/internal/logger"
	"github.com/cleared-dev/clubhouse/internal/store"
)

// app carries the state shared by every subcommand once flags are parsed.
type app struct {
	dir string
	log zerolog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:     "clubhouse",
		Short:   "Club ledger for players, match fees and payments",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			env := config.LoadEnv()
			if !cmd.Flags().Changed("dir") {
				a.dir = env.Dir
			}
			a.log = logger.NewWithWriter(logger.Config{Level: env.LogLevel, Pretty: env.LogPretty}, cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.dir, "dir", ".", "club directory (default $CLUBHOUSE_DIR or .)")

	rootCmd.AddCommand(
		newInitCommand(a),
		newPlayersCommand(a),
		newChargeCommand(a),
		newPayCommand(a),
		newWriteOffCommand(a),
		newFeesCommand(a),
		newImportCommand(a),
		newUndoCommand(a),
		newOutstandingCommand(a),
		newBalancesCommand(a),
		newStatementCommand(a),
		newValidateCommand(a),
		newExportCommand(a),
	)

	return rootCmd
}

// club is an opened club directory.
type club struct {
	root  string
	cfg   *config.Config
	store *store.Store
}

// open loads the club config and database. Callers must Close the result.
func (a *app) open(ctx context.Context) (*club, error) {
	root, err := filepath.Abs(a.dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("loading club at %s (run init first?): %w", root, err)
	}

	st, err := store.Open(ctx, filepath.Join(root, store.FileName), a.log)
	if err != nil {
		return nil, err
	}
	return &club{root: root, cfg: cfg, store: st}, nil
}

func (c *club) Close() error {
	return c.store.Close()
}

// audit appends to the audit log. Failures are logged, not returned: the
// ledger change has already been committed.
func (a *app) audit(root string, entries ...auditlog.Entry) {
	if err := auditlog.Append(root, entries); err != nil {
		a.log.Warn().Err(err).Msg("failed to write audit log")
	}
}
