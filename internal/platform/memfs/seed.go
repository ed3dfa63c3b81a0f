package memfs

import (
	"os"
	"path"

	"github.com/bamsammich/dirmigrate/internal/platform"
)

// Helpers for building fixtures. They bypass crash and fault accounting, and
// the whole tree is durable once they return.

// MkdirAll creates p and its parents with mode.
func (m *FS) MkdirAll(p string, mode os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer m.root.persistTree()
	return m.mkdirAll(p, mode)
}

// WriteFile creates or replaces a regular file.
func (m *FS) WriteFile(p string, data []byte, mode os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer m.root.persistTree()
	f, err := m.open(p, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if len(data) > 0 {
		m.writeAt(f.n, data, 0)
	}
	return nil
}

// ReadFile returns a copy of a regular file's contents.
func (m *FS) ReadFile(p string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, err := m.follow("open", p)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), n.data...), nil
}

// MakeSymlink creates a symlink.
func (m *FS) MakeSymlink(target, p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer m.root.persistTree()
	return m.symlink(target, p)
}

// MakeOther creates a node of KindOther, standing in for a fifo or socket.
func (m *FS) MakeOther(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer m.root.persistTree()
	dir, name, err := m.parent("mknod", p)
	if err != nil {
		return err
	}
	m.link(dir, name, m.newNode(platform.KindOther, 0o644))
	return nil
}

// Paths lists every path below root, root excluded, in walk order.
func (m *FS) Paths(root string) []string {
	var out []string
	//nolint:errcheck // the callback never fails
	m.Walk(root, func(e platform.Entry, err error) error {
		if err == nil && e.Path != path.Clean(root) {
			out = append(out, e.Path)
		}
		return nil
	})
	return out
}
