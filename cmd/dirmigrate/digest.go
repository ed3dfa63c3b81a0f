package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/bamsammich/dirmigrate/internal/engine"
	"github.com/bamsammich/dirmigrate/internal/platform"
)

func newDigestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "digest <dir>",
		Short: "Print a BLAKE3 manifest of a tree for before/after comparison",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return writeDigest(os.Stdout, platform.NewOS(), args[0])
		},
	}
}

// writeDigest prints one "hash  relpath" line per entry, sorted by path.
// Directories and symlinks print their manifest tag in place of a hash.
func writeDigest(w io.Writer, fsys platform.FS, root string) error {
	manifest, err := engine.Manifest(fsys, root)
	if err != nil {
		return err
	}
	paths := lo.Keys(manifest)
	slices.Sort(paths)
	for _, rel := range paths {
		if _, err := fmt.Fprintf(w, "%s  %s\n", manifest[rel], rel); err != nil {
			return err
		}
	}
	return nil
}
