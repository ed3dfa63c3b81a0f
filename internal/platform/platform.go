//go:generate go run go.uber.org/mock/mockgen -source=platform.go -destination=mocks/mock_fs.go -package=mocks

package platform

import (
	"errors"
	"io"
	"os"
	"time"
)

// ErrNoAttr is returned by xattr reads when the attribute is not present.
var ErrNoAttr = errors.New("extended attribute not present")

// Kind identifies the type of a tree entry.
type Kind int

const (
	KindOther Kind = iota
	KindFile
	KindDir
	KindSymlink
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// Entry is an lstat snapshot of one path.
type Entry struct {
	Path  string
	Kind  Kind
	Mode  os.FileMode // st_mode & 07777 in unix bit layout
	Size  int64
	UID   uint32
	GID   uint32
	Atime time.Time
	Mtime time.Time
}

// WalkFunc is called by FS.Walk for every entry, the root included.
// Returning fs.SkipDir from a directory skips its children.
type WalkFunc func(e Entry, err error) error

// File is an open regular file.
type File interface {
	io.ReaderAt
	io.WriterAt
	io.Writer
	io.Closer
	Name() string
	Size() (int64, error)
	// Truncate sets the file length. Growing a file leaves a sparse hole.
	Truncate(size int64) error
	Sync() error
}

// FS is everything the migration engine needs from the filesystem.
// Paths are absolute. Nothing here follows symlinks unless stated.
type FS interface {
	Lstat(path string) (Entry, error)
	Exists(path string) bool
	// ReadDir lists the direct children of path sorted by name.
	ReadDir(path string) ([]Entry, error)
	Walk(root string, fn WalkFunc) error

	// CreateDirectory creates path and any missing parents. An existing
	// directory is not an error.
	CreateDirectory(path string) error
	Symlink(target, path string) error
	Readlink(path string) (string, error)
	// Remove unlinks a file or symlink, or removes an empty directory.
	Remove(path string) error
	OpenFile(path string, flag int, perm os.FileMode) (File, error)
	// TouchDurable creates path as an empty file and persists the file and
	// its directory entry.
	TouchDurable(path string) error

	Lchown(path string, uid, gid uint32) error
	Chmod(path string, mode os.FileMode) error
	SetTimes(path string, atime, mtime time.Time, follow bool) error

	Getxattr(path, name string) ([]byte, error)
	Setxattr(path, name string, value []byte) error
	Listxattr(path string) ([]string, error)
	Removexattr(path, name string) error

	// GetFlags and SetFlags read and write inode flags. Filesystems
	// without flag support report 0 and accept writes as no-ops.
	GetFlags(path string) (uint32, error)
	SetFlags(path string, flags uint32) error

	// SendFile copies [offset, offset+length) of src into dst at the same
	// offset without staging the data in user space where possible.
	SendFile(dst, src File, offset, length int64) error

	SyncFile(path string) error
	SyncDir(path string) error
	// Sync flushes every filesystem.
	Sync()
	// FreeSpace reports bytes available to unprivileged writers on the
	// filesystem holding path.
	FreeSpace(path string) (int64, error)
}

// Inode flags that are safe to carry across filesystems. Immutable and
// append-only are left out since they would block the remaining steps.
const (
	FlagSecureRm    uint32 = 0x00000001
	FlagUndelete    uint32 = 0x00000002
	FlagCompress    uint32 = 0x00000004
	FlagSync        uint32 = 0x00000008
	FlagNoDump      uint32 = 0x00000040
	FlagNoAtime     uint32 = 0x00000080
	FlagNoTail      uint32 = 0x00008000
	FlagDirSync     uint32 = 0x00010000
	FlagTopDir      uint32 = 0x00020000
	FlagProjInherit uint32 = 0x20000000

	CopyableFlags = FlagSecureRm | FlagUndelete | FlagCompress | FlagSync |
		FlagNoDump | FlagNoAtime | FlagNoTail | FlagDirSync | FlagTopDir |
		FlagProjInherit
)
