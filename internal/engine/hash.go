package engine

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/bamsammich/dirmigrate/internal/platform"
)

// HashFile computes the BLAKE3 hash of the file at path, returning the hex-encoded digest.
func HashFile(fsys platform.FS, path string) (string, error) {
	f, err := fsys.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	size, err := f.Size()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	h := blake3.New()
	buf := make([]byte, 32*1024)
	if _, err := io.CopyBuffer(h, io.NewSectionReader(f, 0, size), buf); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}

	digest := h.Sum(nil)
	return hex.EncodeToString(digest), nil
}

// Manifest describes every entry below root by relative path. Files map to
// their content hash, symlinks to "-> target" and directories to "dir".
// Comparing the manifest of a source taken before a migration with that of
// the destination afterwards checks the data arrived intact.
func Manifest(fsys platform.FS, root string) (map[string]string, error) {
	out := map[string]string{}
	prefix := strings.TrimSuffix(root, "/") + "/"
	err := fsys.Walk(root, func(e platform.Entry, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(e.Path, prefix)
		if e.Path == strings.TrimSuffix(root, "/") || e.Path == root {
			return nil
		}
		switch e.Kind {
		case platform.KindFile:
			sum, err := HashFile(fsys, e.Path)
			if err != nil {
				return err
			}
			out[rel] = sum
		case platform.KindSymlink:
			target, err := fsys.Readlink(e.Path)
			if err != nil {
				return fmt.Errorf("readlink %s: %w", e.Path, err)
			}
			out[rel] = "-> " + target
		case platform.KindDir:
			out[rel] = "dir"
		}
		return nil
	})
	return out, err
}
