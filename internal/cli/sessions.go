package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"hotel-ob/internal/orchestration"
	"hotel-ob/internal/wizard"
)

// StartCommand creates the start command
func StartCommand(app *App) *cobra.Command {
	var (
		edit    bool
		hotelID int64
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new wizard session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := app.Orchestrator(cmd.Context())
			if err != nil {
				return err
			}
			req := orchestration.StartRequest{Mode: wizard.ModeAdd}
			if edit {
				req = orchestration.StartRequest{Mode: wizard.ModeEdit, HotelID: hotelID}
			}
			sess, err := orch.StartSession(cmd.Context(), req)
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), orchestration.StatusOf(sess))
			return nil
		},
	}

	cmd.Flags().BoolVar(&edit, "edit", false, "Edit an existing hotel instead of adding one")
	cmd.Flags().Int64Var(&hotelID, "hotel-id", 0, "Hotel to edit (required with --edit)")
	cmd.MarkFlagsRequiredTogether("edit", "hotel-id")

	return cmd
}

// StatusCommand creates the status command
func StatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <session>",
		Short: "Show the progress of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := app.Orchestrator(cmd.Context())
			if err != nil {
				return err
			}
			status, err := orch.GetSessionStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), status)
			return nil
		},
	}
}

// ListCommand creates the list command
func ListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := app.Orchestrator(cmd.Context())
			if err != nil {
				return err
			}
			list, err := orch.ListSessions(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SESSION\tMODE\tHOTEL\tSTEP\tDONE\tUPDATED")
			for _, s := range list {
				hotel := "-"
				if s.HotelID.Valid {
					hotel = fmt.Sprint(s.HotelID.Int64)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d/%d\t%s\n",
					s.ID, s.Mode, hotel, s.ActiveStep, len(s.Completed), len(wizard.Steps()),
					s.UpdatedAt.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}
}

// DeleteCommand creates the delete command
func DeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := app.Orchestrator(cmd.Context())
			if err != nil {
				return err
			}
			if err := orch.DeleteSession(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session %s deleted.\n", args[0])
			return nil
		},
	}
}

// PruneCommand creates the prune command
func PruneCommand(app *App) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete sessions that have not been touched for a while",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThan <= 0 {
				return fmt.Errorf("--older-than must be positive")
			}
			orch, err := app.Orchestrator(cmd.Context())
			if err != nil {
				return err
			}
			n, err := orch.CleanupStaleSessions(cmd.Context(), olderThan)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d stale sessions.\n", n)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 7*24*time.Hour, "Remove sessions idle for longer than this")
	return cmd
}
