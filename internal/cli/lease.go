package cli

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mesh-intelligence/estate/internal/records"
	"github.com/mesh-intelligence/estate/pkg/types"
)

var leaseCommands = entityCommands[types.LeaseAgreement, types.LeaseAgreementPayload]{
	name:    "lease",
	plural:  "lease agreements",
	example: `--property-id 0 --tenant Bob --rent 1200 --start-date 1704067200 --end-date 1735689600`,
	bind: func(fs *pflag.FlagSet, p *types.LeaseAgreementPayload) {
		fs.Uint64Var(&p.PropertyID, "property-id", 0, "id of the leased property")
		fs.StringVar(&p.Tenant, "tenant", "", "tenant name (required on create)")
		fs.Float64Var(&p.Rent, "rent", 0, "rent amount")
		fs.Uint64Var(&p.StartDate, "start-date", 0, "lease start, Unix seconds")
		fs.Uint64Var(&p.EndDate, "end-date", 0, "lease end, Unix seconds; must be after start on create")
		fs.StringVar(&p.DigitalSignature, "signature", "", "digital signature")
	},
	check: func(p types.LeaseAgreementPayload) error {
		return finite("rent", p.Rent)
	},
	create: (*records.Service).CreateLeaseAgreement,
	update: (*records.Service).UpdateLeaseAgreement,
	remove: (*records.Service).DeleteLeaseAgreement,
	list:   (*records.Service).ListLeaseAgreements,
	get:    (*records.Service).GetLeaseAgreement,
	header: []string{"ID", "PROPERTY", "TENANT", "RENT", "START", "END", "CREATED"},
	row: func(l types.LeaseAgreement) []string {
		return []string{
			strconv.FormatUint(l.ID, 10),
			strconv.FormatUint(l.PropertyID, 10),
			l.Tenant,
			formatMoney(l.Rent),
			formatUnix(l.StartDate),
			formatUnix(l.EndDate),
			formatUnix(l.CreatedAt),
		}
	},
}

func newLeaseCmd(f *rootFlags) *cobra.Command {
	return leaseCommands.command(f, "lease", "Manage lease agreements")
}
