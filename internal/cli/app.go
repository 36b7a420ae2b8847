package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/estate/internal/logging"
	"github.com/mesh-intelligence/estate/internal/records"
	"github.com/mesh-intelligence/estate/pkg/store"
)

// withService resolves configuration, attaches the configured store, and
// runs fn against a records.Service. The store is detached afterwards.
// Only errors are logged; rejected operations are reported by the command.
func (f *rootFlags) withService(cmd *cobra.Command, fn func(*records.Service) error) error {
	env, err := f.resolve()
	if err != nil {
		return err
	}
	logging.Init(appName, "error", cmd.ErrOrStderr())

	st, err := store.Open(env.store)
	if err != nil {
		return systemError("attach %s store: %w", env.store.Backend, err)
	}
	defer st.Detach()

	return classify(fn(records.New(st, records.WithLogger(logging.Logger))))
}
