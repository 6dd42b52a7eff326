package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"organizenow/internal/board"
	"organizenow/internal/session"
)

// cardCmd returns the card parent command
func cardCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage cards",
	}

	cmd.AddCommand(cardAddCmd(opts))
	cmd.AddCommand(cardRemoveCmd(opts))
	cmd.AddCommand(cardEditCmd(opts))
	cmd.AddCommand(cardMoveCmd(opts))

	return cmd
}

func cardAddCmd(opts *rootOptions) *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "add <column-id> <content>",
		Short: "Append a card to a column",
		Long: `Append a card to the end of a column.

Examples:
  organizenow card add col-1234 "Write release notes"

  # JSON output for agents
  organizenow card add col-1234 "Write release notes" --json
`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFor(cmd.OutOrStdout(), out)
			return reportErr(f, opts.withSession(cmd, func(ctx context.Context, e *env, s *session.Session) error {
				b, err := s.AddCard(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				col := b.Columns[b.ColumnIndex(args[0])]
				crd := col.Cards[len(col.Cards)-1]
				return f.Success(crd.ID,
					map[string]any{"card": crd, "column_id": col.ID},
					fmt.Sprintf("✓ Card created in '%s' (ID: %s)", col.Title, crd.ID))
			}))
		},
	}
	out.register(cmd)
	return cmd
}

func cardRemoveCmd(opts *rootOptions) *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:     "rm <column-id> <card-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a card",
		Args:    exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFor(cmd.OutOrStdout(), out)
			return reportErr(f, opts.withSession(cmd, func(ctx context.Context, e *env, s *session.Session) error {
				if _, err := s.RemoveCard(ctx, args[0], args[1]); err != nil {
					return err
				}
				return f.Success(args[1],
					map[string]any{"id": args[1]},
					fmt.Sprintf("✓ Card %s deleted", args[1]))
			}))
		},
	}
	out.register(cmd)
	return cmd
}

func cardEditCmd(opts *rootOptions) *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "edit <column-id> <card-id> <content>",
		Short: "Replace the content of a card",
		Args:  exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFor(cmd.OutOrStdout(), out)
			return reportErr(f, opts.withSession(cmd, func(ctx context.Context, e *env, s *session.Session) error {
				b, err := s.RenameCard(ctx, args[0], args[1], args[2])
				if err != nil {
					return err
				}
				ci, ri := b.FindCard(args[1])
				crd := b.Columns[ci].Cards[ri]
				return f.Success(crd.ID,
					map[string]any{"card": crd},
					fmt.Sprintf("✓ Card %s updated", crd.ID))
			}))
		},
	}
	out.register(cmd)
	return cmd
}

func cardMoveCmd(opts *rootOptions) *cobra.Command {
	var out outputFlags
	var before string
	cmd := &cobra.Command{
		Use:   "move <card-id> <column-id>",
		Short: "Move a card to a column",
		Long: `Move a card into a column, at the end or in front of another card.

Examples:
  # Move to the end of the Done column
  organizenow card move card-1234 col-done

  # Move in front of another card, in the same or another column
  organizenow card move card-1234 col-done --before card-5678
`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFor(cmd.OutOrStdout(), out)
			return reportErr(f, opts.withSession(cmd, func(ctx context.Context, e *env, s *session.Session) error {
				b, err := s.Move(ctx, board.CardMove{
					CardID:         args[0],
					TargetColumnID: args[1],
					BeforeCardID:   before,
				})
				if err != nil {
					return err
				}
				ci, ri := b.FindCard(args[0])
				col := b.Columns[ci]
				return f.Success(args[0],
					map[string]any{"card": col.Cards[ri], "column_id": col.ID},
					fmt.Sprintf("✓ Card %s moved to '%s' at position %d", args[0], col.Title, ri))
			}))
		},
	}
	cmd.Flags().StringVar(&before, "before", "", "Place the card in front of this card id (default: end of the column)")
	out.register(cmd)
	return cmd
}
