package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/estate/pkg/store"
)

func newInitCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize estate storage",
		Long:  "Create the configuration and data directories, write a default config.yaml, then initialize the storage backend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := f.resolve()
			if err != nil {
				return err
			}
			st, err := store.Open(env.store)
			if err != nil {
				return systemError("initialize storage: %w", err)
			}
			if err := st.Detach(); err != nil {
				return systemError("finalize storage: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Estate initialized successfully")
			fmt.Fprintf(out, "config: %s\n", env.configDir)
			fmt.Fprintf(out, "data:   %s (%s)\n", env.store.DataDir, env.store.Backend)
			return nil
		},
	}
}
