// Package cli is the kanban command tree. Running kanban without a
// subcommand launches the interactive board.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"kanban/internal/config"
	"kanban/internal/kanban/service"
	"kanban/internal/logs"
	"kanban/internal/store"

	"github.com/spf13/cobra"
)

const Version = "0.1.0"

// now is the clock used for due-date labels and relative dates
var now = time.Now

// app holds what a command needs once flags are parsed
type app struct {
	flags config.CLIFlags
	cfg   *config.Config
	store store.Store
	svc   service.BoardService
}

// Execute runs the command line and returns the process exit code
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd, a := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(context.Background())
	if cerr := a.close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// newRootCmd builds the kanban command tree. The caller closes the app
// once the command has run.
func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "kanban",
		Short: "Kanban board for the terminal",
		Long: `kanban keeps a single board of columns, cards and tags.

Running kanban without arguments opens the interactive board, or prints
it when default_view is "list". The subcommands edit the same board from
scripts and the shell.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.open(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.DefaultView == config.ViewList {
				printBoard(cmd.OutOrStdout(), a.svc.Board(), a.svc.Board(), now())
				return nil
			}
			return a.runTUI(cmd.Context())
		},
	}

	cmd.PersistentFlags().StringVarP(&a.flags.DataDir, "data-dir", "d", "", "Directory holding the board data")
	cmd.PersistentFlags().StringVar(&a.flags.Backend, "backend", "", "Storage backend (file, sqlite)")
	cmd.PersistentFlags().StringVarP(&a.flags.BoardKey, "key", "k", "", "Key the board is stored under")

	cmd.AddCommand(
		a.showCmd(),
		a.findCmd(),
		a.columnCmd(),
		a.cardCmd(),
		a.tagCmd(),
		a.exportCmd(),
		a.importCmd(),
		a.resetCmd(),
		a.tuiCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "kanban version %s\n", Version)
			},
		},
	)

	return cmd, a
}

func (a *app) open(ctx context.Context) error {
	cfg, err := config.Load(a.flags)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := config.EnsureConfigFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create config file: %v\n", err)
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := logs.Initialize(cfg.DataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logger: %v\n", err)
	}

	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	svc, err := service.NewBoardService(ctx, st, cfg.BoardKey)
	if err != nil {
		st.Close()
		return fmt.Errorf("load board: %w", err)
	}

	a.cfg = cfg
	a.store = st
	a.svc = svc
	return nil
}

func (a *app) close() error {
	defer logs.Close()
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}
