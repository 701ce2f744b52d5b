package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"kanban/internal/kanban/filter"
	"kanban/internal/kanban/fs"

	"github.com/spf13/cobra"
)

func (a *app) showCmd() *cobra.Command {
	var (
		search   string
		tags     []string
		priority string
	)

	cmd := &cobra.Command{
		Use:     "show",
		Aliases: []string{"ls"},
		Short:   "Print the board",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board := a.svc.Board()

			q := filter.Query{SearchText: search}
			if priority != "" {
				p, err := filter.ParsePriority(priority)
				if err != nil {
					return err
				}
				q.Priority = p
			}
			if len(tags) > 0 {
				ids, err := resolveTags(board, tags)
				if err != nil {
					return err
				}
				q.TagIDs = ids
			}

			printBoard(cmd.OutOrStdout(), board, a.svc.Filtered(q), now())
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Only cards whose title or description contains text")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Only cards with any of these tags")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Only cards with this priority (low, medium, high, all)")
	return cmd
}

func (a *app) findCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <pattern>",
		Short: "Fuzzy find cards",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board := a.svc.Board()
			matches := a.svc.Find(joinArgs(args))
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No cards found.")
				return nil
			}
			for _, m := range matches {
				fmt.Fprintf(cmd.OutOrStdout(), "%s / ", board.Columns[m.ColIndex].Name)
				printCard(cmd.OutOrStdout(), board, m.Card, now())
			}
			return nil
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the board as JSON or markdown",
		Long: `Export the board.

JSON goes to stdout unless -o is given; "-o ." writes the dated default
file name into the current directory. Markdown needs -o and writes
board.md plus cards/<id>.md into that directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "json":
				if output == "" {
					return a.svc.Export(cmd.OutOrStdout())
				}
				path := output
				if info, err := os.Stat(path); err == nil && info.IsDir() {
					path = filepath.Join(path, fs.ExportFilename(now()))
				}
				var buf bytes.Buffer
				if err := a.svc.Export(&buf); err != nil {
					return err
				}
				if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
				return nil
			case "md", "markdown":
				if output == "" {
					return errors.New("markdown export needs an output directory (-o)")
				}
				if err := a.svc.ExportMarkdown(output); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", output)
				return nil
			default:
				return fmt.Errorf("unknown format %q (want json or md)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Export format (json, md)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file or directory")
	return cmd
}

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|dir|->",
		Short: "Replace the board with an exported board",
		Long: `Replace the board with a JSON export, or with a markdown export when
the argument is a directory. "-" reads JSON from stdin. A rejected
document leaves the board unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]

			if src != "-" {
				if info, err := os.Stat(src); err == nil && info.IsDir() {
					if err := a.svc.ImportMarkdown(cmd.Context(), src); err != nil {
						return err
					}
					return a.reportImport(cmd)
				}
			}

			var r io.Reader = cmd.InOrStdin()
			if src != "-" {
				f, err := os.Open(src)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			if err := a.svc.Import(cmd.Context(), r); err != nil {
				return err
			}
			return a.reportImport(cmd)
		},
	}
}

func (a *app) reportImport(cmd *cobra.Command) error {
	board := a.svc.Board()
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %q: %d columns, %d cards, %d tags\n",
		board.Name, len(board.Columns), board.CardCount(), len(board.Tags))
	return nil
}

func (a *app) resetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the board with the default board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset discards every column, card and tag; pass --yes to confirm")
			}
			if err := a.svc.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Board reset.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the reset")
	return cmd
}
