// Package memfs is an in-memory platform.FS with a logical clock and fault
// injection, used to exercise the migration engine without root privileges
// and to interrupt it at arbitrary filesystem calls.
//
// Every node keeps a second, durable copy of its state next to the live one.
// Writes and attribute changes reach the durable copy when the node is
// fsynced, new directory entries when the directory is fsynced, and
// everything on Sync. Truncating, unlinking and removing an attribute are
// durable as soon as they return. Recover throws the live state away and
// restarts from the durable copy, the way a machine comes back after losing
// power.
package memfs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/bamsammich/dirmigrate/internal/platform"
)

// ErrCrashed is returned by every call once a simulated crash has fired.
var ErrCrashed = errors.New("memfs: simulated crash")

// DirSize is the size reported for every directory.
const DirSize = 4096

// attrs is the part of a node a crash can roll back.
type attrs struct {
	mode     os.FileMode
	uid, gid uint32
	atime    time.Time
	mtime    time.Time
	data     []byte
	xattrs   map[string][]byte
	flags    uint32
}

func (a attrs) clone() attrs {
	a.data = bytes.Clone(a.data)
	a.xattrs = maps.Clone(a.xattrs)
	return a
}

type node struct {
	kind   platform.Kind
	target string
	attrs
	children map[string]*node

	disk         attrs
	diskChildren map[string]*node
}

// persist makes the node's data and attributes durable.
func (n *node) persist() {
	n.disk = n.attrs.clone()
}

// persistEntries makes the directory's current entry set durable.
func (n *node) persistEntries() {
	n.diskChildren = maps.Clone(n.children)
}

func (n *node) persistTree() {
	n.persist()
	if n.kind != platform.KindDir {
		return
	}
	n.persistEntries()
	for _, child := range n.children {
		child.persistTree()
	}
}

// rollback replaces the live state with the durable one, recursively.
func (n *node) rollback() {
	n.attrs = n.disk.clone()
	if n.kind != platform.KindDir {
		return
	}
	n.children = maps.Clone(n.diskChildren)
	for _, child := range n.children {
		child.rollback()
	}
}

func resize(b []byte, size int64) []byte {
	if size <= int64(len(b)) {
		return b[:size:size]
	}
	grown := make([]byte, size)
	copy(grown, b)
	return grown
}

// Fault fails the matching call once. Op is an FS method name such as
// "OpenFile" or "SendFile"; Path matches when the call's path ends with it
// (empty matches everything). The first After matching calls succeed.
//
// A Fault with a nil Err never fails a call. It stays in place and slows
// every matching call down by Delay instead.
type Fault struct {
	Op    string
	Path  string
	After int
	Err   error
	Delay time.Duration
}

func (f *Fault) matches(op, p string) bool {
	return f.Op == op && strings.HasSuffix(p, f.Path)
}

// FS is an in-memory filesystem. The zero value is not usable; call New.
type FS struct {
	mu     sync.Mutex
	root   *node
	clock  time.Time
	free   int64
	faults []*Fault

	crashAfter int // 0 disables
	calls      int
	crashed    bool

	duplicates map[string]bool
	sendCalls  []Range
	syncs      int
}

// Range records one SendFile call.
type Range struct {
	Path   string
	Offset int64
	Length int64
}

var _ platform.FS = (*FS)(nil)

// New returns an empty filesystem with only "/" present.
func New() *FS {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	root := &node{
		kind:         platform.KindDir,
		attrs:        attrs{mode: 0o755, atime: start, mtime: start},
		children:     map[string]*node{},
		diskChildren: map[string]*node{},
	}
	root.persist()
	return &FS{
		root:       root,
		clock:      start,
		free:       1 << 40,
		duplicates: map[string]bool{},
	}
}

// tick advances the logical clock; every mutation gets a distinct time.
func (m *FS) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

// newNode returns an unlinked node. Its inode is durable from the start but
// empty; the entry naming it is not.
func (m *FS) newNode(kind platform.Kind, mode os.FileMode) *node {
	now := m.tick()
	n := &node{kind: kind, attrs: attrs{mode: mode, atime: now, mtime: now}}
	if kind == platform.KindDir {
		n.children = map[string]*node{}
		n.diskChildren = map[string]*node{}
	}
	n.persist()
	return n
}

// SetFreeSpace sets the value returned by FreeSpace.
func (m *FS) SetFreeSpace(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.free = n
}

// Inject adds a one-shot fault.
func (m *FS) Inject(f Fault) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults = append(m.faults, &f)
}

// CrashAfter makes the n-th FS call from now, and every call after it,
// fail with ErrCrashed until Recover is called.
func (m *FS) CrashAfter(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = 0
	m.crashAfter = n
	m.crashed = false
}

// Crashed reports whether a simulated crash fired.
func (m *FS) Crashed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.crashed
}

// Recover clears crash state and pending faults and rolls every node back
// to what was durable, like a reboot.
func (m *FS) Recover() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.crashAfter = 0
	m.crashed = false
	m.faults = nil
	m.root.rollback()
}

// DuplicateListing makes ReadDir(dir) report every subdirectory twice.
func (m *FS) DuplicateListing(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duplicates[path.Clean(dir)] = true
}

// SendFileCalls returns every SendFile range seen so far.
func (m *FS) SendFileCalls() []Range {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Range(nil), m.sendCalls...)
}

// GlobalSyncs returns how many times Sync was called.
func (m *FS) GlobalSyncs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.syncs
}

// check runs crash and fault accounting for one call. Callers hold m.mu and
// must not have read any state yet: a delay releases the lock while it waits.
func (m *FS) check(op, p string) error {
	if d := m.delay(op, p); d > 0 {
		m.mu.Unlock()
		time.Sleep(d)
		m.mu.Lock()
	}
	if m.crashed {
		return ErrCrashed
	}
	if m.crashAfter > 0 {
		m.calls++
		if m.calls >= m.crashAfter {
			m.crashed = true
			return ErrCrashed
		}
	}
	for i, f := range m.faults {
		if f.Err == nil || !f.matches(op, p) {
			continue
		}
		if f.After > 0 {
			f.After--
			continue
		}
		m.faults = append(m.faults[:i], m.faults[i+1:]...)
		return &fs.PathError{Op: op, Path: p, Err: f.Err}
	}
	return nil
}

func (m *FS) delay(op, p string) time.Duration {
	var d time.Duration
	for _, f := range m.faults {
		if f.Err == nil && f.matches(op, p) {
			d += f.Delay
		}
	}
	return d
}

func split(p string) []string {
	p = path.Clean(p)
	if p == "/" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(p, "/"), "/")
}

func pathErr(op, p string, errno syscall.Errno) error {
	return &fs.PathError{Op: op, Path: p, Err: errno}
}

// lookup resolves p without following a final symlink. Intermediate
// components must be directories.
func (m *FS) lookup(op, p string) (*node, error) {
	if !path.IsAbs(p) {
		return nil, pathErr(op, p, syscall.EINVAL)
	}
	n := m.root
	for _, name := range split(p) {
		if n.kind != platform.KindDir {
			return nil, pathErr(op, p, syscall.ENOTDIR)
		}
		child, ok := n.children[name]
		if !ok {
			return nil, pathErr(op, p, syscall.ENOENT)
		}
		n = child
	}
	return n, nil
}

// follow resolves p, following symlinks at the final component.
func (m *FS) follow(op, p string) (*node, error) {
	for range 40 {
		n, err := m.lookup(op, p)
		if err != nil {
			return nil, err
		}
		if n.kind != platform.KindSymlink {
			return n, nil
		}
		if path.IsAbs(n.target) {
			p = n.target
		} else {
			p = path.Join(path.Dir(p), n.target)
		}
	}
	return nil, pathErr(op, p, syscall.ELOOP)
}

func (m *FS) parent(op, p string) (*node, string, error) {
	p = path.Clean(p)
	if p == "/" {
		return nil, "", pathErr(op, p, syscall.EEXIST)
	}
	dir, err := m.lookup(op, path.Dir(p))
	if err != nil {
		return nil, "", err
	}
	if dir.kind != platform.KindDir {
		return nil, "", pathErr(op, p, syscall.ENOTDIR)
	}
	return dir, path.Base(p), nil
}

func (m *FS) link(dir *node, name string, n *node) {
	dir.children[name] = n
	dir.mtime = m.tick()
}

func (n *node) entry(p string) platform.Entry {
	e := platform.Entry{
		Path:  p,
		Kind:  n.kind,
		Mode:  n.mode,
		UID:   n.uid,
		GID:   n.gid,
		Atime: n.atime,
		Mtime: n.mtime,
	}
	switch n.kind {
	case platform.KindFile:
		e.Size = int64(len(n.data))
	case platform.KindSymlink:
		e.Size = int64(len(n.target))
	case platform.KindDir:
		e.Size = DirSize
	}
	return e
}

func (m *FS) Lstat(p string) (platform.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("Lstat", p); err != nil {
		return platform.Entry{}, err
	}
	n, err := m.lookup("lstat", p)
	if err != nil {
		return platform.Entry{}, err
	}
	return n.entry(path.Clean(p)), nil
}

func (m *FS) Exists(p string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := m.lookup("lstat", p)
	return err == nil
}

func (m *FS) ReadDir(p string) ([]platform.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("ReadDir", p); err != nil {
		return nil, err
	}
	return m.readDir(p)
}

func (m *FS) readDir(p string) ([]platform.Entry, error) {
	n, err := m.lookup("readdir", p)
	if err != nil {
		return nil, err
	}
	if n.kind != platform.KindDir {
		return nil, pathErr("readdir", p, syscall.ENOTDIR)
	}
	p = path.Clean(p)
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]platform.Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, n.children[name].entry(path.Join(p, name)))
	}
	if m.duplicates[p] {
		for _, name := range names {
			if child := n.children[name]; child.kind == platform.KindDir {
				entries = append(entries, child.entry(path.Join(p, name)))
			}
		}
	}
	return entries, nil
}

func (m *FS) Walk(root string, fn platform.WalkFunc) error {
	m.mu.Lock()
	if err := m.check("Walk", root); err != nil {
		m.mu.Unlock()
		return err
	}
	n, err := m.lookup("lstat", root)
	m.mu.Unlock()
	if err != nil {
		return fn(platform.Entry{Path: root}, err)
	}
	err = m.walk(n.entry(path.Clean(root)), fn)
	if errors.Is(err, fs.SkipDir) {
		return nil
	}
	return err
}

func (m *FS) walk(e platform.Entry, fn platform.WalkFunc) error {
	if err := fn(e, nil); err != nil {
		return err
	}
	if e.Kind != platform.KindDir {
		return nil
	}
	m.mu.Lock()
	children, err := m.readDir(e.Path)
	m.mu.Unlock()
	if err != nil {
		return fn(e, err)
	}
	for _, child := range children {
		if err := m.walk(child, fn); err != nil {
			if errors.Is(err, fs.SkipDir) && child.Kind == platform.KindDir {
				continue
			}
			return err
		}
	}
	return nil
}

func (m *FS) CreateDirectory(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("CreateDirectory", p); err != nil {
		return err
	}
	return m.mkdirAll(p, 0o700)
}

func (m *FS) mkdirAll(p string, mode os.FileMode) error {
	if !path.IsAbs(p) {
		return pathErr("mkdir", p, syscall.EINVAL)
	}
	n := m.root
	for _, name := range split(p) {
		child, ok := n.children[name]
		if !ok {
			child = m.newNode(platform.KindDir, mode)
			m.link(n, name, child)
		}
		if child.kind != platform.KindDir {
			return pathErr("mkdir", p, syscall.ENOTDIR)
		}
		n = child
	}
	return nil
}

func (m *FS) Symlink(target, p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("Symlink", p); err != nil {
		return err
	}
	return m.symlink(target, p)
}

func (m *FS) symlink(target, p string) error {
	dir, name, err := m.parent("symlink", p)
	if err != nil {
		return err
	}
	if _, ok := dir.children[name]; ok {
		return pathErr("symlink", p, syscall.EEXIST)
	}
	n := m.newNode(platform.KindSymlink, 0o777)
	n.target = target
	m.link(dir, name, n)
	return nil
}

func (m *FS) Readlink(p string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("Readlink", p); err != nil {
		return "", err
	}
	n, err := m.lookup("readlink", p)
	if err != nil {
		return "", err
	}
	if n.kind != platform.KindSymlink {
		return "", pathErr("readlink", p, syscall.EINVAL)
	}
	return n.target, nil
}

func (m *FS) Remove(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("Remove", p); err != nil {
		return err
	}
	dir, name, err := m.parent("remove", p)
	if err != nil {
		return err
	}
	n, ok := dir.children[name]
	if !ok {
		return pathErr("remove", p, syscall.ENOENT)
	}
	if n.kind == platform.KindDir && len(n.children) > 0 {
		return pathErr("remove", p, syscall.ENOTEMPTY)
	}
	delete(dir.children, name)
	delete(dir.diskChildren, name)
	dir.mtime = m.tick()
	dir.disk.mtime = dir.mtime
	return nil
}

func (m *FS) OpenFile(p string, flag int, perm os.FileMode) (platform.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("OpenFile", p); err != nil {
		return nil, err
	}
	return m.open(p, flag, perm)
}

func (m *FS) open(p string, flag int, perm os.FileMode) (*file, error) {
	n, err := m.lookup("open", p)
	switch {
	case err == nil:
		if flag&os.O_EXCL != 0 && flag&os.O_CREATE != 0 {
			return nil, pathErr("open", p, syscall.EEXIST)
		}
	case errors.Is(err, fs.ErrNotExist) && flag&os.O_CREATE != 0:
		dir, name, perr := m.parent("open", p)
		if perr != nil {
			return nil, perr
		}
		n = m.newNode(platform.KindFile, perm&0o7777)
		m.link(dir, name, n)
	default:
		return nil, err
	}
	switch n.kind {
	case platform.KindDir:
		return nil, pathErr("open", p, syscall.EISDIR)
	case platform.KindSymlink:
		return nil, pathErr("open", p, syscall.ELOOP)
	}
	if flag&os.O_TRUNC != 0 && len(n.data) > 0 {
		n.data, n.disk.data = nil, nil
		n.mtime = m.tick()
		n.disk.mtime = n.mtime
	}
	return &file{
		fs:       m,
		n:        n,
		name:     path.Clean(p),
		writable: flag&(os.O_WRONLY|os.O_RDWR) != 0,
		append:   flag&os.O_APPEND != 0,
	}, nil
}

func (m *FS) TouchDurable(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("TouchDurable", p); err != nil {
		return err
	}
	f, err := m.open(p, os.O_WRONLY|os.O_CREATE, 0o600)
	if err != nil {
		return err
	}
	f.n.persist()
	dir, _, err := m.parent("open", p)
	if err != nil {
		return err
	}
	dir.persistEntries()
	return nil
}

func (m *FS) Lchown(p string, uid, gid uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("Lchown", p); err != nil {
		return err
	}
	n, err := m.lookup("lchown", p)
	if err != nil {
		return err
	}
	n.uid, n.gid = uid, gid
	return nil
}

func (m *FS) Chmod(p string, mode os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("Chmod", p); err != nil {
		return err
	}
	n, err := m.follow("chmod", p)
	if err != nil {
		return err
	}
	n.mode = mode & 0o7777
	return nil
}

func (m *FS) SetTimes(p string, atime, mtime time.Time, follow bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("SetTimes", p); err != nil {
		return err
	}
	resolve := m.lookup
	if follow {
		resolve = m.follow
	}
	n, err := resolve("utimensat", p)
	if err != nil {
		return err
	}
	n.atime, n.mtime = atime, mtime
	return nil
}

func (m *FS) Getxattr(p, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("Getxattr", p); err != nil {
		return nil, err
	}
	n, err := m.lookup("lgetxattr", p)
	if err != nil {
		return nil, err
	}
	v, ok := n.xattrs[name]
	if !ok {
		return nil, platform.ErrNoAttr
	}
	return append([]byte(nil), v...), nil
}

func (m *FS) Setxattr(p, name string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("Setxattr", p); err != nil {
		return err
	}
	n, err := m.lookup("lsetxattr", p)
	if err != nil {
		return err
	}
	if n.kind == platform.KindSymlink && strings.HasPrefix(name, "user.") {
		return pathErr("lsetxattr", p, syscall.EPERM)
	}
	if n.xattrs == nil {
		n.xattrs = map[string][]byte{}
	}
	n.xattrs[name] = append([]byte(nil), value...)
	return nil
}

func (m *FS) Listxattr(p string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("Listxattr", p); err != nil {
		return nil, err
	}
	n, err := m.lookup("llistxattr", p)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(n.xattrs))
	for name := range n.xattrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *FS) Removexattr(p, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("Removexattr", p); err != nil {
		return err
	}
	n, err := m.lookup("lremovexattr", p)
	if err != nil {
		return err
	}
	if _, ok := n.xattrs[name]; !ok {
		return platform.ErrNoAttr
	}
	delete(n.xattrs, name)
	delete(n.disk.xattrs, name)
	return nil
}

func (m *FS) GetFlags(p string) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("GetFlags", p); err != nil {
		return 0, err
	}
	n, err := m.lookup("ioctl", p)
	if err != nil {
		return 0, err
	}
	return n.flags, nil
}

func (m *FS) SetFlags(p string, flags uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("SetFlags", p); err != nil {
		return err
	}
	n, err := m.lookup("ioctl", p)
	if err != nil {
		return err
	}
	n.flags = flags
	return nil
}

func (m *FS) SendFile(dst, src platform.File, offset, length int64) error {
	d, ok := dst.(*file)
	if !ok {
		return fmt.Errorf("memfs: foreign destination file %s", dst.Name())
	}
	s, ok := src.(*file)
	if !ok {
		return fmt.Errorf("memfs: foreign source file %s", src.Name())
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("SendFile", d.name); err != nil {
		return err
	}
	m.sendCalls = append(m.sendCalls, Range{Path: d.name, Offset: offset, Length: length})
	if !d.writable {
		return pathErr("sendfile", d.name, syscall.EBADF)
	}
	if offset < 0 || offset+length > int64(len(s.n.data)) {
		return pathErr("sendfile", s.name, syscall.EINVAL)
	}
	m.writeAt(d.n, s.n.data[offset:offset+length], offset)
	return nil
}

func (m *FS) writeAt(n *node, p []byte, off int64) {
	if end := off + int64(len(p)); end > int64(len(n.data)) {
		grown := make([]byte, end)
		copy(grown, n.data)
		n.data = grown
	}
	copy(n.data[off:], p)
	n.mtime = m.tick()
}

func (m *FS) SyncFile(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("SyncFile", p); err != nil {
		return err
	}
	n, err := m.lookup("fsync", p)
	if err != nil {
		return err
	}
	n.persist()
	return nil
}

func (m *FS) SyncDir(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("SyncDir", p); err != nil {
		return err
	}
	n, err := m.lookup("fsync", p)
	if err != nil {
		return err
	}
	if n.kind != platform.KindDir {
		return pathErr("fsync", p, syscall.ENOTDIR)
	}
	n.persist()
	n.persistEntries()
	return nil
}

// Sync makes everything durable. It counts as a call for CrashAfter and does
// nothing once a crash has fired.
func (m *FS) Sync() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.check("Sync", "/") != nil {
		return
	}
	m.syncs++
	m.root.persistTree()
}

func (m *FS) FreeSpace(p string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("FreeSpace", p); err != nil {
		return 0, err
	}
	if _, err := m.lookup("statfs", p); err != nil {
		return 0, err
	}
	return m.free, nil
}

// file is an open handle on a memfs node.
type file struct {
	fs       *FS
	n        *node
	name     string
	writable bool
	append   bool
	pos      int64
	closed   bool
}

func (f *file) Name() string { return f.name }

func (f *file) guard(op string) error {
	if f.closed {
		return pathErr(op, f.name, syscall.EBADF)
	}
	return f.fs.check(op, f.name)
}

func (f *file) ReadAt(p []byte, off int64) (int, error) {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	if err := f.guard("ReadAt"); err != nil {
		return 0, err
	}
	if off >= int64(len(f.n.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.n.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (f *file) WriteAt(p []byte, off int64) (int, error) {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	if err := f.guard("WriteAt"); err != nil {
		return 0, err
	}
	if !f.writable {
		return 0, pathErr("write", f.name, syscall.EBADF)
	}
	f.fs.writeAt(f.n, p, off)
	return len(p), nil
}

func (f *file) Write(p []byte) (int, error) {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	if err := f.guard("Write"); err != nil {
		return 0, err
	}
	if !f.writable {
		return 0, pathErr("write", f.name, syscall.EBADF)
	}
	if f.append {
		f.pos = int64(len(f.n.data))
	}
	f.fs.writeAt(f.n, p, f.pos)
	f.pos += int64(len(p))
	return len(p), nil
}

func (f *file) Size() (int64, error) {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	if err := f.guard("Size"); err != nil {
		return 0, err
	}
	return int64(len(f.n.data)), nil
}

func (f *file) Truncate(size int64) error {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	if err := f.guard("Truncate"); err != nil {
		return err
	}
	if !f.writable {
		return pathErr("truncate", f.name, syscall.EINVAL)
	}
	f.n.data = resize(f.n.data, size)
	f.n.disk.data = resize(f.n.disk.data, size)
	f.n.mtime = f.fs.tick()
	f.n.disk.mtime = f.n.mtime
	return nil
}

func (f *file) Sync() error {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	if err := f.guard("Sync"); err != nil {
		return err
	}
	f.n.persist()
	return nil
}

func (f *file) Close() error {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	if f.closed {
		return pathErr("close", f.name, syscall.EBADF)
	}
	f.closed = true
	return nil
}
