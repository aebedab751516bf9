package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/clubhouse/internal/model"
	"github.com/cleared-dev/clubhouse/internal/roster"
)

func newPlayersCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Manage the club roster",
	}
	cmd.AddCommand(
		newPlayersAddCommand(a),
		newPlayersListCommand(a),
		newPlayersImportCommand(a),
		newPlayersSuggestCommand(a),
	)
	return cmd
}

func newPlayersAddCommand(a *app) *cobra.Command {
	var p model.Player
	var inactive bool

	cmd := &cobra.Command{
		Use:   "add <first name> <last name>",
		Short: "Add a player to the roster",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			p.FirstName, p.LastName = args[0], args[1]
			p.IsActive = !inactive
			id, err := c.store.AddPlayer(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added player %d: %s\n", id, p.FullName())
			return nil
		},
	}

	cmd.Flags().StringVar(&p.Positions, "positions", "", "comma-separated position codes")
	cmd.Flags().IntVar(&p.ShirtNumber, "shirt", 0, "shirt number")
	cmd.Flags().StringVar(&p.DateOfBirth, "dob", "", "date of birth (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "add as a former player")
	return cmd
}

func newPlayersListCommand(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			players, err := c.store.Players(cmd.Context())
			if err != nil {
				return err
			}
			if !all {
				players = roster.NewService(players).Active()
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNAME\tPOSITIONS\tSHIRT\tACTIVE")
			for _, p := range players {
				shirt := ""
				if p.ShirtNumber > 0 {
					shirt = fmt.Sprint(p.ShirtNumber)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\n", p.ID, p.FullName(), strings.Join(p.PositionList(), " "), shirt, p.IsActive)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include inactive players")
	return cmd
}

func newPlayersImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <players.csv>",
		Short: "Add players from a roster CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening roster: %w", err)
			}
			defer f.Close()

			players, err := roster.ReadPlayers(f)
			if err != nil {
				return err
			}

			c, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			ids, err := c.store.BulkAddPlayers(cmd.Context(), players)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d players\n", len(ids))
			return nil
		},
	}
}

func newPlayersSuggestCommand(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "suggest <name>",
		Short: "Show the players whose names best match a free-text name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			players, err := c.store.Players(cmd.Context())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = c.cfg.Matching.SuggestLimit
			}

			suggestions := roster.SuggestPlayers(args[0], players, limit)
			if len(suggestions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No players on the roster")
				return nil
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNAME\tSCORE")
			for _, s := range suggestions {
				fmt.Fprintf(tw, "%d\t%s\t%.2f\n", s.Player.ID, s.Player.FullName(), s.Score)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", roster.DefaultSuggestLimit, "number of suggestions")
	return cmd
}
