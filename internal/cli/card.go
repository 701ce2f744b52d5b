package cli

import (
	"errors"
	"fmt"
	"strconv"

	"kanban/internal/kanban/models"
	"kanban/internal/kanban/operations"

	"github.com/spf13/cobra"
)

func (a *app) cardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage cards",
	}

	cmd.AddCommand(
		a.cardAddCmd(),
		a.cardEditCmd(),
		&cobra.Command{
			Use:     "rm <card>",
			Aliases: []string{"delete"},
			Short:   "Delete a card",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				card, _, err := resolveCard(a.svc.Board(), args[0])
				if err != nil {
					return err
				}
				if err := a.svc.DeleteCard(cmd.Context(), card.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted: %s\n", card.Title)
				return nil
			},
		},
		&cobra.Command{
			Use:   "mv <card> <column> [position]",
			Short: "Move a card to a column, at a 1-based position (default: last)",
			Args:  cobra.RangeArgs(2, 3),
			RunE: func(cmd *cobra.Command, args []string) error {
				board := a.svc.Board()
				card, fromID, err := resolveCard(board, args[0])
				if err != nil {
					return err
				}
				to, err := resolveColumn(board, args[1])
				if err != nil {
					return err
				}
				index := len(to.Cards)
				if len(args) == 3 {
					pos, err := strconv.Atoi(args[2])
					if err != nil {
						return fmt.Errorf("invalid position %q", args[2])
					}
					index = pos - 1
				}
				if err := a.svc.MoveCard(cmd.Context(), card.ID, fromID, to.ID, index); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved: %s -> %s\n", card.Title, to.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "ack <card>",
			Short: "Acknowledge that a card is overdue",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				card, _, err := resolveCard(a.svc.Board(), args[0])
				if err != nil {
					return err
				}
				if err := a.svc.AcknowledgeOverdue(cmd.Context(), card.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Acknowledged: %s\n", card.Title)
				return nil
			},
		},
		a.cardExtendCmd(),
		&cobra.Command{
			Use:   "tag <card> [tag...]",
			Short: "Replace a card's tags (no tags clears them)",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				board := a.svc.Board()
				card, _, err := resolveCard(board, args[0])
				if err != nil {
					return err
				}
				ids, err := resolveTags(board, args[1:])
				if err != nil {
					return err
				}
				if err := a.svc.SetCardTags(cmd.Context(), card.ID, ids); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Tagged: %s\n", card.Title)
				return nil
			},
		},
	)

	return cmd
}

func (a *app) cardAddCmd() *cobra.Command {
	var (
		description string
		priority    string
		dueDate     string
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "add <column> <title>",
		Short: "Add a card to the end of a column",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			board := a.svc.Board()
			col, err := resolveColumn(board, args[0])
			if err != nil {
				return err
			}

			draft := models.Card{Title: joinArgs(args[1:]), Description: description}
			if priority != "" {
				if draft.Priority, err = models.ParsePriority(priority); err != nil {
					return err
				}
			}
			if dueDate != "" {
				d, err := operations.ParseDueInput(dueDate, now())
				if err != nil {
					return err
				}
				draft.DueDate = &d
			}
			if draft.Tags, err = resolveTags(board, tags); err != nil {
				return err
			}

			card, err := a.svc.AddCard(cmd.Context(), col.ID, draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added: %s\nID: %s\n", card.Title, card.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "desc", "", "Card description (markdown)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority (low, medium, high)")
	cmd.Flags().StringVar(&dueDate, "due", "", "Due date (2006-01-02, RFC3339, today, tomorrow, +3d)")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tags by id or name")
	return cmd
}

func (a *app) cardEditCmd() *cobra.Command {
	var (
		title       string
		description string
		priority    string
		dueDate     string
		clearDue    bool
	)

	cmd := &cobra.Command{
		Use:   "edit <card>",
		Short: "Change a card's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			card, _, err := resolveCard(a.svc.Board(), args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				card.Title = title
			}
			if flags.Changed("desc") {
				card.Description = description
			}
			if flags.Changed("priority") {
				if card.Priority, err = models.ParsePriority(priority); err != nil {
					return err
				}
			}
			switch {
			case clearDue:
				card = operations.WithDueDate(card, nil)
			case flags.Changed("due"):
				d, err := operations.ParseDueInput(dueDate, now())
				if err != nil {
					return err
				}
				card = operations.WithDueDate(card, &d)
			}

			if err := a.svc.UpdateCard(cmd.Context(), card); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated: %s\n", card.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "desc", "", "New description (markdown)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "New priority (low, medium, high)")
	cmd.Flags().StringVar(&dueDate, "due", "", "New due date")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "Remove the due date")
	cmd.MarkFlagsMutuallyExclusive("due", "clear-due")
	return cmd
}

func (a *app) cardExtendCmd() *cobra.Command {
	var (
		days int
		to   string
	)

	cmd := &cobra.Command{
		Use:   "extend <card>",
		Short: "Push a card's due date out (default: one week after it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			card, _, err := resolveCard(a.svc.Board(), args[0])
			if err != nil {
				return err
			}

			newDue := operations.SuggestExtension(card)
			switch {
			case to != "":
				if newDue, err = operations.ParseDueInput(to, now()); err != nil {
					return err
				}
			case days != 0:
				if days < 0 {
					return errors.New("--days must be positive")
				}
				newDue = operations.ExtendBy(card, days)
			}

			if err := a.svc.ExtendDueDate(cmd.Context(), card.ID, newDue); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Extended: %s -> %s\n", card.Title, newDue.String())
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Extend by this many days (presets: 1, 3, 7, 14)")
	cmd.Flags().StringVar(&to, "to", "", "Set this due date instead")
	cmd.MarkFlagsMutuallyExclusive("days", "to")
	return cmd
}
