package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"organizenow/internal/board"
	"organizenow/internal/fs"
	"organizenow/internal/session"
)

const (
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

func showCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the board",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(ctx context.Context, e *env, s *session.Session) error {
				b := s.Board()
				if jsonOutput {
					return writeJSON(cmd.OutOrStdout(), b)
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), renderBoard(b, newBoardStyles(e.cfg.Theme)))
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the board in JSON format")
	return cmd
}

func exportCmd(opts *rootOptions) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the board as JSON or markdown",
		Long: `Export the board to stdout or a file.

Examples:
  organizenow export --format markdown > board.md
  organizenow export --format json --output backup.json
`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatMarkdown {
				return fmt.Errorf("%w: unknown format %q (want %s or %s)", ErrUsage, format, formatJSON, formatMarkdown)
			}
			return opts.withSession(cmd, func(ctx context.Context, e *env, s *session.Session) (err error) {
				w := cmd.OutOrStdout()
				if output != "" {
					file, ferr := os.Create(output)
					if ferr != nil {
						return fmt.Errorf("failed to create %s: %w", output, ferr)
					}
					defer func() {
						if cerr := file.Close(); cerr != nil && err == nil {
							err = fmt.Errorf("failed to write %s: %w", output, cerr)
						}
					}()
					w = file
				}

				b := s.Board()
				if format == formatMarkdown {
					err = fs.ExportMarkdown(w, b)
				} else {
					err = writeJSON(w, b)
				}
				if err != nil {
					return err
				}
				e.log.Info("board exported", "format", format, "output", output)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", formatJSON, "Export format: json or markdown")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

func writeJSON(w io.Writer, b board.Board) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}
