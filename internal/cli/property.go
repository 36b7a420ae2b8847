package cli

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mesh-intelligence/estate/internal/records"
	"github.com/mesh-intelligence/estate/pkg/types"
)

var propertyCommands = entityCommands[types.Property, types.PropertyPayload]{
	name:    "property",
	plural:  "properties",
	example: `--address "1 Main St" --owner Ann --valuation 250000 --status listed`,
	bind: func(fs *pflag.FlagSet, p *types.PropertyPayload) {
		fs.StringVar(&p.Address, "address", "", "street address (required on create)")
		fs.StringVar(&p.Owner, "owner", "", "owner name (required on create)")
		fs.Float64Var(&p.Valuation, "valuation", 0, "assessed value")
		fs.StringVar(&p.Status, "status", "", "free-form status")
	},
	check: func(p types.PropertyPayload) error {
		return finite("valuation", p.Valuation)
	},
	create: (*records.Service).CreateProperty,
	update: (*records.Service).UpdateProperty,
	remove: (*records.Service).DeleteProperty,
	list:   (*records.Service).ListProperties,
	get:    (*records.Service).GetProperty,
	header: []string{"ID", "ADDRESS", "OWNER", "VALUATION", "STATUS", "CREATED"},
	row: func(p types.Property) []string {
		return []string{
			strconv.FormatUint(p.ID, 10),
			truncate(p.Address, 40),
			p.Owner,
			formatMoney(p.Valuation),
			p.Status,
			formatUnix(p.CreatedAt),
		}
	},
}

func newPropertyCmd(f *rootFlags) *cobra.Command {
	return propertyCommands.command(f, "property", "Manage properties")
}
