package engine

import (
	"io/fs"
	"path"
	"strings"

	"github.com/bamsammich/dirmigrate/internal/filter"
	"github.com/bamsammich/dirmigrate/internal/platform"
)

// treeSize is the outcome of the read-only pass over the source.
type treeSize struct {
	Bytes    int64 // files, symlinks and directories below the root
	DirBytes int64
	Files    int64
	Dirs     int64
	Symlinks int64
}

// measure walks the source the way the migration will, counting what is
// left to move. Entries a minimal migration leaves behind are not counted.
func (m *Migrator) measure() (treeSize, error) {
	var sz treeSize
	seen := dirVisitSet{}
	// Directories that are whitelist ancestors, by relative path. Everything
	// below any other counted directory is included wholesale.
	ancestors := map[string]bool{}
	if m.cfg.Mode == Minimal {
		ancestors[""] = true
	}

	root := path.Clean(m.cfg.From)
	err := m.fs.Walk(root, func(e platform.Entry, err error) error {
		rel := strings.TrimPrefix(strings.TrimPrefix(e.Path, root), "/")
		if err != nil {
			return m.fail(OpEnumerate, rel, err)
		}
		if rel == "" {
			return nil
		}
		parent := parentRel(rel)

		if ancestors[parent] {
			switch m.whitelist.Classify(rel, e.Kind == platform.KindDir) {
			case filter.Exclude:
				if e.Kind == platform.KindDir {
					return fs.SkipDir
				}
				return nil
			case filter.Ancestor:
				ancestors[rel] = true
			}
		}

		switch e.Kind {
		case platform.KindDir:
			if !seen.visit(parent, path.Base(rel)) {
				return fs.SkipDir
			}
			sz.Dirs++
			sz.DirBytes += e.Size
		case platform.KindFile:
			sz.Files++
		case platform.KindSymlink:
			sz.Symlinks++
		default:
			return nil
		}
		sz.Bytes += e.Size
		return nil
	})
	if err != nil {
		return treeSize{}, m.fail(OpEnumerate, "", err)
	}
	return sz, nil
}
