package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mesh-intelligence/estate/internal/records"
)

// entityCommands describes one record type for the generic
// create|update|delete|list|get command group.
type entityCommands[R, P any] struct {
	name    string // singular, used in messages
	plural  string
	example string // payload flags for help text

	bind   func(fs *pflag.FlagSet, p *P)
	check  func(P) error // flag-level checks shared by create and update
	create func(*records.Service, context.Context, P) (R, error)
	update func(*records.Service, context.Context, uint64, P) (R, error)
	remove func(*records.Service, context.Context, uint64) error
	list   func(*records.Service, context.Context) ([]R, error)
	get    func(*records.Service, context.Context, uint64) (R, error)

	header []string
	row    func(R) []string
}

func (e entityCommands[R, P]) command(f *rootFlags, use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}
	cmd.AddCommand(e.createCmd(f), e.updateCmd(f), e.deleteCmd(f), e.listCmd(f), e.getCmd(f))
	return cmd
}

func (e entityCommands[R, P]) createCmd(f *rootFlags) *cobra.Command {
	var payload P
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a " + e.name,
		Example: fmt.Sprintf("  estate %s create %s", e.name, e.example),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.checkFlags(payload); err != nil {
				return err
			}
			return f.withService(cmd, func(svc *records.Service) error {
				rec, err := e.create(svc, cmd.Context(), payload)
				if err != nil {
					return err
				}
				return e.render(cmd.OutOrStdout(), f.jsonMode, rec)
			})
		},
	}
	e.bind(cmd.Flags(), &payload)
	return cmd
}

func (e entityCommands[R, P]) updateCmd(f *rootFlags) *cobra.Command {
	var payload P
	cmd := &cobra.Command{
		Use:     "update <id>",
		Short:   "Replace the fields of a " + e.name,
		Long:    "Update overwrites every field except id and created_at. Fields not given are cleared.",
		Example: fmt.Sprintf("  estate %s update 3 %s", e.name, e.example),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := e.checkFlags(payload); err != nil {
				return err
			}
			return f.withService(cmd, func(svc *records.Service) error {
				rec, err := e.update(svc, cmd.Context(), id, payload)
				if err != nil {
					return err
				}
				return e.render(cmd.OutOrStdout(), f.jsonMode, rec)
			})
		},
	}
	e.bind(cmd.Flags(), &payload)
	return cmd
}

func (e entityCommands[R, P]) deleteCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + e.name,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return f.withService(cmd, func(svc *records.Service) error {
				if err := e.remove(svc, cmd.Context(), id); err != nil {
					return err
				}
				if f.jsonMode {
					return writeJSON(cmd.OutOrStdout(), map[string]uint64{"deleted": id})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %d\n", e.name, id)
				return nil
			})
		},
	}
}

func (e entityCommands[R, P]) listCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all " + e.plural + " by id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.withService(cmd, func(svc *records.Service) error {
				recs, err := e.list(svc, cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if f.jsonMode {
					return writeJSON(out, recs)
				}
				if len(recs) == 0 {
					fmt.Fprintf(out, "No %s found.\n", e.plural)
					return nil
				}
				e.table(out, recs)
				fmt.Fprintf(out, "Total: %d %s(s)\n", len(recs), e.name)
				return nil
			})
		},
	}
}

func (e entityCommands[R, P]) getCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a " + e.name,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return f.withService(cmd, func(svc *records.Service) error {
				rec, err := e.get(svc, cmd.Context(), id)
				if err != nil {
					return err
				}
				return e.render(cmd.OutOrStdout(), f.jsonMode, rec)
			})
		},
	}
}

func (e entityCommands[R, P]) checkFlags(p P) error {
	if e.check == nil {
		return nil
	}
	return e.check(p)
}

// render prints one record as JSON or as a single-row table.
func (e entityCommands[R, P]) render(w io.Writer, jsonMode bool, rec R) error {
	if jsonMode {
		return writeJSON(w, rec)
	}
	e.table(w, []R{rec})
	return nil
}

func (e entityCommands[R, P]) table(w io.Writer, recs []R) {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(e.header, "\t"))
	for _, r := range recs {
		fmt.Fprintln(tw, strings.Join(e.row(r), "\t"))
	}
	tw.Flush()

	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func parseID(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: must be a non-negative integer", arg)
	}
	return id, nil
}

// finite rejects NaN and infinities, which JSON output cannot carry.
func finite(flag string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid --%s %v: must be a finite number", flag, v)
	}
	return nil
}

func formatUnix(sec uint64) string {
	return time.Unix(int64(sec), 0).UTC().Format("2006-01-02")
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// truncate shortens s to n runes for table output.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
