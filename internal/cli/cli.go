package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"organizenow/internal/app"
	"organizenow/internal/config"
	"organizenow/internal/logging"
	"organizenow/internal/session"
)

type rootOptions struct {
	configPath string
	backend    string
	dir        string
}

type outputFlags struct {
	json  bool
	quiet bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.json, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&f.quiet, "quiet", false, "Minimal output (ID only)")
}

// env is what every command needs before touching the board.
type env struct {
	cfg    *config.Config
	log    *slog.Logger
	closer io.Closer
}

func (e *env) close() {
	if e.closer != nil {
		if err := e.closer.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing log file: %v\n", err)
		}
	}
}

// NewRootCmd builds the organizenow command tree. Without a subcommand it
// starts the terminal UI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "organizenow",
		Short: "A keyboard driven kanban board",
		Long: `organizenow keeps a board of ordered columns and cards.

Run without arguments to open the board in the terminal UI, or use the
subcommands to edit it from scripts.`,
		Args:          exactArgs(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup()
			if err != nil {
				return err
			}
			defer e.close()
			return app.Run(cmd.Context(), e.cfg, e.log)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default $ORGANIZENOW_CONFIG or <user config dir>/organizenow/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.backend, "backend", "", "Storage backend: json or sqlite")
	cmd.PersistentFlags().StringVar(&opts.dir, "dir", "", "Data directory")

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	})

	cmd.AddCommand(columnCmd(opts))
	cmd.AddCommand(cardCmd(opts))
	cmd.AddCommand(showCmd(opts))
	cmd.AddCommand(exportCmd(opts))

	return cmd
}

func (o *rootOptions) setup() (*env, error) {
	cfg, err := config.LoadWithOverrides(o.configPath, config.Overrides{Backend: o.backend, Dir: o.dir})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	log, closer, err := logging.Init(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	return &env{cfg: cfg, log: log, closer: closer}, nil
}

// withSession loads the board and runs fn against it.
func (o *rootOptions) withSession(cmd *cobra.Command, fn func(ctx context.Context, e *env, s *session.Session) error) error {
	e, err := o.setup()
	if err != nil {
		return err
	}
	defer e.close()

	ctx := cmd.Context()
	// A corrupt board is reported, never replaced by the default.
	s, err := app.OpenSession(ctx, e.cfg, e.log, session.WithStrictLoad())
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Store().Close(); err != nil {
			e.log.Error("failed to close store", "error", err)
		}
	}()

	return fn(ctx, e, s)
}

// exactArgs is cobra.ExactArgs with the error marked as a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		return nil
	}
}
