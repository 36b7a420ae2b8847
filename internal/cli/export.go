package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/estate/internal/records"
)

func newExportCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write every table to JSONL files",
		Long: `Export writes properties.jsonl, lease_agreements.jsonl and
maintenance_requests.jsonl into dir, one record per line in id order.
Existing files are replaced atomically.

Example:
  estate export ./backup`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return systemError("create export dir: %w", err)
			}
			return f.withService(cmd, func(svc *records.Service) error {
				if err := svc.Export(cmd.Context(), dir); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported tables to %s\n", dir)
				return nil
			})
		},
	}
}
