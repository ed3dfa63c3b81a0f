package engine

import (
	"path"

	"github.com/bamsammich/dirmigrate/internal/filter"
	"github.com/bamsammich/dirmigrate/internal/platform"
)

// dirFrame is one directory on the walk stack.
type dirFrame struct {
	rel      string
	children []platform.Entry
	next     int
	decision filter.Decision
}

// walk migrates the tree depth first. Directories are established at the
// destination before any child is dispatched and removed from the source
// only after every child has finished, which releaseChild takes care of.
func (m *Migrator) walk(root platform.Entry, dispatch func(Job) error) error {
	seen := dirVisitSet{}
	rootDecision := filter.Include
	if m.cfg.Mode == Minimal {
		rootDecision = filter.Ancestor
	}

	top, err := m.enterDir("", root, rootDecision)
	if err != nil {
		return err
	}
	stack := []*dirFrame{top}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.next == len(f.children) {
			stack = stack[:len(stack)-1]
			if err := m.releaseChild(f.rel); err != nil {
				return err
			}
			continue
		}
		child := f.children[f.next]
		f.next++

		if err := m.checkCancel(); err != nil {
			return err
		}

		name := path.Base(child.Path)
		rel := path.Join(f.rel, name)

		decision := filter.Include
		if f.decision == filter.Ancestor {
			decision = m.whitelist.Classify(rel, child.Kind == platform.KindDir)
		}
		if decision == filter.Exclude {
			m.retain(f.rel)
			m.stats.AddEntriesRetained(1)
			continue
		}

		switch child.Kind {
		case platform.KindDir:
			if !seen.visit(f.rel, name) {
				m.log.Debug("directory listed twice", "path", rel)
				continue
			}
			m.incChild(f.rel)
			frame, err := m.enterDir(rel, child, decision)
			if err != nil {
				return err
			}
			stack = append(stack, frame)
		case platform.KindFile, platform.KindSymlink:
			m.incChild(f.rel)
			if err := dispatch(Job{Rel: rel, Entry: child}); err != nil {
				return m.checkCancelOr(err)
			}
		default:
			m.log.Warn("leaving unsupported file type in place", "path", rel)
			m.retain(f.rel)
			m.stats.AddOtherIgnored(1)
		}
	}
	return nil
}

// enterDir creates the destination directory, copies its attributes and
// lists the source. The returned frame holds the walker's own reference on
// the directory until it is popped.
//
// The parked times must be durable before any child is removed from the
// source, since each removal changes the source directory's mtime.
func (m *Migrator) enterDir(rel string, e platform.Entry, decision filter.Decision) (*dirFrame, error) {
	to := path.Join(m.cfg.To, rel)
	if err := m.fs.CreateDirectory(to); err != nil {
		return nil, m.fail(OpMkdir, rel, err)
	}
	if err := m.fs.SyncDir(path.Dir(to)); err != nil {
		return nil, m.fail(OpSync, rel, err)
	}
	if err := m.copyAttributes(rel, e, to); err != nil {
		return nil, err
	}
	if err := m.fs.SyncDir(to); err != nil {
		return nil, m.fail(OpSync, rel, err)
	}
	children, err := m.fs.ReadDir(path.Join(m.cfg.From, rel))
	if err != nil {
		return nil, m.fail(OpEnumerate, rel, err)
	}

	m.dirMu.Lock()
	m.dirs[rel] = &dirState{entry: e, pending: 1}
	m.dirMu.Unlock()

	return &dirFrame{rel: rel, children: children, decision: decision}, nil
}

func (m *Migrator) incChild(rel string) {
	m.dirMu.Lock()
	defer m.dirMu.Unlock()
	m.dirs[rel].pending++
}

func (m *Migrator) retain(rel string) {
	m.dirMu.Lock()
	defer m.dirMu.Unlock()
	m.dirs[rel].retained = true
}

// releaseChild drops one reference on directory rel. The last reference
// finishes the directory: its times are fixed, the source is removed unless
// something below it stays behind, and the parent is released in turn.
func (m *Migrator) releaseChild(rel string) error {
	for {
		m.dirMu.Lock()
		d := m.dirs[rel]
		d.pending--
		if d.pending > 0 {
			m.dirMu.Unlock()
			return nil
		}
		delete(m.dirs, rel)
		m.dirMu.Unlock()

		if err := m.finishDir(rel, d); err != nil {
			return err
		}
		if rel == "" {
			return nil
		}

		parent := parentRel(rel)
		if d.retained {
			m.retain(parent)
		}
		rel = parent
	}
}

func (m *Migrator) finishDir(rel string, d *dirState) error {
	to := path.Join(m.cfg.To, rel)
	if err := m.clearChildMarkers(rel, to); err != nil {
		return err
	}
	if err := m.fixTimes(rel, to); err != nil {
		return err
	}
	if err := m.fs.SyncDir(to); err != nil {
		return m.fail(OpSync, rel, err)
	}
	if rel == "" {
		return nil
	}
	m.addMigrated(d.entry.Size)
	m.stats.AddDirsMigrated(1)
	if d.retained {
		return nil
	}
	if err := m.fs.Remove(path.Join(m.cfg.From, rel)); err != nil {
		return m.fail(OpDelete, rel, err)
	}
	return nil
}

// clearChildMarkers drops the parked times from every destination child of
// rel whose source is gone. Children are swept by their parent rather than
// right after their own removal, so an interruption between the two is
// cleaned up by the next run, which revisits the parent while its source
// still exists.
func (m *Migrator) clearChildMarkers(rel, to string) error {
	children, err := m.fs.ReadDir(to)
	if err != nil {
		return m.fail(OpEnumerate, rel, err)
	}
	for _, child := range children {
		if child.Kind != platform.KindFile && child.Kind != platform.KindDir {
			continue
		}
		name := path.Base(child.Path)
		childRel := path.Join(rel, name)
		if m.fs.Exists(path.Join(m.cfg.From, childRel)) {
			continue
		}
		if err := m.clearTimeMarkers(childRel, child.Path); err != nil {
			return err
		}
	}
	return nil
}
