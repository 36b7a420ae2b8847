package cli

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mesh-intelligence/estate/internal/records"
	"github.com/mesh-intelligence/estate/pkg/types"
)

var maintenanceCommands = entityCommands[types.MaintenanceRequest, types.MaintenanceRequestPayload]{
	name:    "maintenance",
	plural:  "maintenance requests",
	example: `--property-id 0 --description "leaking tap" --status pending --priority high`,
	bind: func(fs *pflag.FlagSet, p *types.MaintenanceRequestPayload) {
		fs.Uint64Var(&p.PropertyID, "property-id", 0, "id of the property")
		fs.StringVar(&p.Description, "description", "", "work description")
		fs.StringVar(&p.Status, "status", types.MaintenancePending, "pending or completed")
		fs.StringVar(&p.Priority, "priority", "", "free-form priority")
	},
	create: (*records.Service).CreateMaintenanceRequest,
	update: (*records.Service).UpdateMaintenanceRequest,
	remove: (*records.Service).DeleteMaintenanceRequest,
	list:   (*records.Service).ListMaintenanceRequests,
	get:    (*records.Service).GetMaintenanceRequest,
	header: []string{"ID", "PROPERTY", "STATUS", "PRIORITY", "DESCRIPTION", "CREATED"},
	row: func(m types.MaintenanceRequest) []string {
		return []string{
			strconv.FormatUint(m.ID, 10),
			strconv.FormatUint(m.PropertyID, 10),
			m.Status,
			m.Priority,
			truncate(m.Description, 40),
			formatUnix(m.CreatedAt),
		}
	},
}

func newMaintenanceCmd(f *rootFlags) *cobra.Command {
	return maintenanceCommands.command(f, "maintenance", "Manage maintenance requests")
}
