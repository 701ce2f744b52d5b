package cli

import (
	"fmt"

	"kanban/internal/kanban/models"

	"github.com/spf13/cobra"
)

func (a *app) tagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags",
	}

	cmd.AddCommand(
		a.tagAddCmd(),
		a.tagEditCmd(),
		&cobra.Command{
			Use:     "rm <tag>",
			Aliases: []string{"delete"},
			Short:   "Delete a tag and remove it from every card",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				tag, err := resolveTag(a.svc.Board(), args[0])
				if err != nil {
					return err
				}
				if err := a.svc.DeleteTag(cmd.Context(), tag.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted tag: %s\n", tag.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "ls",
			Short: "List tags with their card counts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				board := a.svc.Board()
				if len(board.Tags) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No tags.")
					return nil
				}
				for _, tag := range board.Tags {
					fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-16s %s  %d card(s)\n", tag.ID, tag.Name, tag.Color, countTagged(board, tag.ID))
				}
				return nil
			},
		},
	)

	return cmd
}

func (a *app) tagAddCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a tag",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := a.svc.AddTag(cmd.Context(), models.Tag{Name: joinArgs(args), Color: color})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added tag: %s %s\nID: %s\n", tag.Name, tag.Color, tag.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&color, "color", "c", models.DefaultTagColor, "Tag color (#rrggbb)")
	return cmd
}

func (a *app) tagEditCmd() *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "edit <tag>",
		Short: "Rename or recolor a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := resolveTag(a.svc.Board(), args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				tag.Name = name
			}
			if cmd.Flags().Changed("color") {
				tag.Color = color
			}
			if err := a.svc.UpdateTag(cmd.Context(), tag); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated tag: %s\n", tag.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVarP(&color, "color", "c", "", "New color (#rrggbb)")
	return cmd
}

func countTagged(board models.Board, tagID string) int {
	n := 0
	for _, col := range board.Columns {
		for _, card := range col.Cards {
			if card.HasTag(tagID) {
				n++
			}
		}
	}
	return n
}
