// Package cli implements the estate command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/estate/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

const appName = "estate"

// rootFlags holds global flag values shared by all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

// NewRootCmd creates the top-level "estate" command with global flags and
// all subcommands registered. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	f := &rootFlags{}
	root := &cobra.Command{
		Use:   appName,
		Short: "Real-estate record backend",
		Long: "Estate stores properties, lease agreements and maintenance requests\n" +
			"and serves them over HTTP or directly from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&f.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&f.dataDir, "data-dir", "", "data directory (default: data_dir from config.yaml or platform data dir)")
	root.PersistentFlags().BoolVar(&f.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(f))
	root.AddCommand(newServeCmd(f))
	root.AddCommand(newExportCmd(f))
	root.AddCommand(newImportCmd(f))
	root.AddCommand(newPropertyCmd(f))
	root.AddCommand(newLeaseCmd(f))
	root.AddCommand(newMaintenanceCmd(f))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	err := NewRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", errorMessage(err))
	}
	os.Exit(ExitCode(err))
}

// sysError marks a failure of the environment (storage, filesystem, network)
// rather than of the caller's input.
type sysError struct {
	err error
}

func (e *sysError) Error() string { return e.err.Error() }
func (e *sysError) Unwrap() error { return e.err }

func systemError(format string, args ...any) error {
	return &sysError{err: fmt.Errorf(format, args...)}
}

// classify leaves typed record errors as user errors and marks everything
// else as a system error.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := types.KindOf(err); ok {
		return err
	}
	var se *sysError
	if errors.As(err, &se) {
		return err
	}
	return &sysError{err: err}
}

// ExitCode maps a command error to the process exit code: 0 on success,
// 2 for system errors, 1 for everything else (rejected input, bad usage).
func ExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *sysError
	if errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}

// errorMessage returns the text shown to the user for err.
func errorMessage(err error) string {
	var e *types.Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	return err.Error()
}
