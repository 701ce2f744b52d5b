package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) columnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "column",
		Aliases: []string{"col"},
		Short:   "Manage columns",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: "Append a column",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				col, err := a.svc.AddColumn(cmd.Context(), joinArgs(args))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added column: %s\nID: %s\n", col.Name, col.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "rename <column> <name>",
			Short: "Rename a column",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				col, err := resolveColumn(a.svc.Board(), args[0])
				if err != nil {
					return err
				}
				name := joinArgs(args[1:])
				if err := a.svc.RenameColumn(cmd.Context(), col.ID, name); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed: %s -> %s\n", col.Name, strings.TrimSpace(name))
				return nil
			},
		},
		&cobra.Command{
			Use:     "rm <column>",
			Aliases: []string{"delete"},
			Short:   "Delete a column and its cards",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				col, err := resolveColumn(a.svc.Board(), args[0])
				if err != nil {
					return err
				}
				if err := a.svc.DeleteColumn(cmd.Context(), col.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted column: %s (%d cards)\n", col.Name, len(col.Cards))
				return nil
			},
		},
		&cobra.Command{
			Use:   "mv <column> <position>",
			Short: "Move a column to a 1-based position",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				col, err := resolveColumn(a.svc.Board(), args[0])
				if err != nil {
					return err
				}
				pos, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid position %q", args[1])
				}
				if err := a.svc.MoveColumn(cmd.Context(), col.ID, pos-1); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved column: %s\n", col.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "archive <column>",
			Short: "Remove every card from a column",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				col, err := resolveColumn(a.svc.Board(), args[0])
				if err != nil {
					return err
				}
				if err := a.svc.ArchiveAllCards(cmd.Context(), col.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Archived %d cards from %s\n", len(col.Cards), col.Name)
				return nil
			},
		},
	)

	return cmd
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
