package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"organizenow/internal/board"
	"organizenow/internal/session"
)

// columnCmd returns the column parent command
func columnCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Manage columns",
	}

	cmd.AddCommand(columnAddCmd(opts))
	cmd.AddCommand(columnRemoveCmd(opts))
	cmd.AddCommand(columnRenameCmd(opts))
	cmd.AddCommand(columnMoveCmd(opts))

	return cmd
}

func columnAddCmd(opts *rootOptions) *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Append a new column",
		Long: `Append a new column to the end of the board.

Examples:
  organizenow column add "Review"

  # Capture the new id
  COLUMN_ID=$(organizenow column add "Review" --quiet)
`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFor(cmd.OutOrStdout(), out)
			return reportErr(f, opts.withSession(cmd, func(ctx context.Context, e *env, s *session.Session) error {
				b, err := s.AddColumn(ctx, args[0])
				if err != nil {
					return err
				}
				col := b.Columns[len(b.Columns)-1]
				return f.Success(col.ID,
					map[string]any{"column": col},
					fmt.Sprintf("✓ Column '%s' created (ID: %s)", col.Title, col.ID))
			}))
		},
	}
	out.register(cmd)
	return cmd
}

func columnRemoveCmd(opts *rootOptions) *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:     "rm <column-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a column and all of its cards",
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFor(cmd.OutOrStdout(), out)
			return reportErr(f, opts.withSession(cmd, func(ctx context.Context, e *env, s *session.Session) error {
				before := s.Board()
				if _, err := s.RemoveColumn(ctx, args[0]); err != nil {
					return err
				}
				col := before.Columns[before.ColumnIndex(args[0])]
				return f.Success(col.ID,
					map[string]any{"id": col.ID, "cards_removed": col.CardCount()},
					fmt.Sprintf("✓ Column '%s' deleted with %d card(s)", col.Title, col.CardCount()))
			}))
		},
	}
	out.register(cmd)
	return cmd
}

func columnRenameCmd(opts *rootOptions) *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "rename <column-id> <title>",
		Short: "Change a column title",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFor(cmd.OutOrStdout(), out)
			return reportErr(f, opts.withSession(cmd, func(ctx context.Context, e *env, s *session.Session) error {
				b, err := s.RenameColumn(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				col := b.Columns[b.ColumnIndex(args[0])]
				return f.Success(col.ID,
					map[string]any{"column": col},
					fmt.Sprintf("✓ Column renamed to '%s'", col.Title))
			}))
		},
	}
	out.register(cmd)
	return cmd
}

func columnMoveCmd(opts *rootOptions) *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a column to another position",
		Long: `Move the column at position <from> to position <to>. Positions are
zero-based, as listed by "organizenow show".

Examples:
  # Make the third column the first one
  organizenow column move 2 0
`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFor(cmd.OutOrStdout(), out)
			from, to, err := parsePositions(args[0], args[1])
			if err != nil {
				return reportErr(f, err)
			}
			return reportErr(f, opts.withSession(cmd, func(ctx context.Context, e *env, s *session.Session) error {
				b, err := s.Move(ctx, board.ColumnMove{From: from, To: to})
				if err != nil {
					return err
				}
				col := b.Columns[to]
				return f.Success(col.ID,
					map[string]any{"column": col, "position": to},
					fmt.Sprintf("✓ Column '%s' moved to position %d", col.Title, to))
			}))
		},
	}
	out.register(cmd)
	return cmd
}

func parsePositions(fromArg, toArg string) (int, int, error) {
	from, err := strconv.Atoi(fromArg)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid position %q", ErrUsage, fromArg)
	}
	to, err := strconv.Atoi(toArg)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid position %q", ErrUsage, toArg)
	}
	return from, to, nil
}

// reportErr writes err in the selected output mode and passes it on.
func reportErr(f *OutputFormatter, err error) error {
	if err == nil {
		return nil
	}
	if fmtErr := f.Error(err); fmtErr != nil {
		return fmt.Errorf("%w (and failed to report: %v)", err, fmtErr)
	}
	return err
}
