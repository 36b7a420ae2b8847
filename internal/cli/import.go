package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/estate/internal/records"
)

func newImportCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Load JSONL files written by export into an empty store",
		Long: `Import reads properties.jsonl, lease_agreements.jsonl and
maintenance_requests.jsonl from dir and stores every record under its
exported id. The store must be empty. New records continue from the
largest imported id.

Example:
  estate import ./backup`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			return f.withService(cmd, func(svc *records.Service) error {
				sum, err := svc.Import(cmd.Context(), dir)
				if err != nil {
					return err
				}
				if f.jsonMode {
					return writeJSON(cmd.OutOrStdout(), map[string]int{
						"properties":           sum.Properties,
						"lease_agreements":     sum.LeaseAgreements,
						"maintenance_requests": sum.MaintenanceRequests,
					})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d properties, %d lease agreements, %d maintenance requests from %s\n",
					sum.Properties, sum.LeaseAgreements, sum.MaintenanceRequests, dir)
				return nil
			})
		},
	}
}
