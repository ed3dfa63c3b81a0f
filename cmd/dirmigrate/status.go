package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bamsammich/dirmigrate/internal/engine"
	"github.com/bamsammich/dirmigrate/internal/platform"
)

// exitNotStarted is returned by status when no migration has begun.
const exitNotStarted = 3

func newStatusCmd() *cobra.Command {
	var statusDir string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report whether a migration has been started",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if statusDir == "" {
				return errors.New("--status-dir is required")
			}
			if engine.IsMigrationStarted(platform.NewOS(), statusDir) {
				fmt.Fprintln(os.Stdout, "started")
				return nil
			}
			fmt.Fprintln(os.Stdout, "not started")
			return &exitError{code: exitNotStarted}
		},
	}
	cmd.Flags().StringVar(&statusDir, "status-dir", "", "directory holding the started marker")
	return cmd
}
