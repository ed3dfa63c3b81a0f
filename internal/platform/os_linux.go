//go:build linux

package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/disk"
	"golang.org/x/sys/unix"
)

// OS is the FS backed by the running kernel.
type OS struct{}

// NewOS returns the host filesystem.
func NewOS() *OS { return &OS{} }

var _ FS = (*OS)(nil)

// osFile adapts *os.File to File.
type osFile struct {
	*os.File
}

func (f osFile) Size() (int64, error) {
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func entryFromInfo(path string, info os.FileInfo) Entry {
	e := Entry{
		Path:  path,
		Size:  info.Size(),
		Mtime: info.ModTime(),
		Atime: info.ModTime(),
	}
	switch {
	case info.Mode().IsRegular():
		e.Kind = KindFile
	case info.IsDir():
		e.Kind = KindDir
	case info.Mode()&os.ModeSymlink != 0:
		e.Kind = KindSymlink
	default:
		e.Kind = KindOther
	}
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		e.Mode = os.FileMode(st.Mode & 0o7777)
		e.UID = st.Uid
		e.GID = st.Gid
		e.Atime = time.Unix(st.Atim.Sec, st.Atim.Nsec)
		e.Mtime = time.Unix(st.Mtim.Sec, st.Mtim.Nsec)
	} else {
		e.Mode = info.Mode().Perm()
	}
	return e
}

func (*OS) Lstat(path string) (Entry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Entry{}, err
	}
	return entryFromInfo(path, info), nil
}

func (*OS) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func (o *OS) ReadDir(path string) ([]Entry, error) {
	dirents, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		e, err := o.Lstat(filepath.Join(path, d.Name()))
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

func (*OS) Walk(root string, fn WalkFunc) error {
	return filepath.WalkDir(root, func(path string, _ fs.DirEntry, err error) error {
		if err != nil {
			return fn(Entry{Path: path}, err)
		}
		info, err := os.Lstat(path)
		if err != nil {
			return fn(Entry{Path: path}, err)
		}
		return fn(entryFromInfo(path, info), nil)
	})
}

func (*OS) CreateDirectory(path string) error {
	return os.MkdirAll(path, 0o700)
}

func (*OS) Symlink(target, path string) error {
	return os.Symlink(target, path)
}

func (*OS) Readlink(path string) (string, error) {
	return os.Readlink(path)
}

func (*OS) Remove(path string) error {
	return os.Remove(path)
}

func (*OS) OpenFile(path string, flag int, perm os.FileMode) (File, error) {
	f, err := os.OpenFile(path, flag|syscall.O_NOFOLLOW, perm)
	if err != nil {
		return nil, err
	}
	return osFile{f}, nil
}

func (o *OS) TouchDurable(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0o600)
	if err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("fsync %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return o.SyncDir(filepath.Dir(path))
}

func (*OS) Lchown(path string, uid, gid uint32) error {
	return os.Lchown(path, int(uid), int(gid))
}

func (*OS) Chmod(path string, mode os.FileMode) error {
	// os.Chmod maps Go mode bits; unix.Chmod takes the raw st_mode bits we store.
	if err := unix.Chmod(path, uint32(mode&0o7777)); err != nil {
		return &os.PathError{Op: "chmod", Path: path, Err: err}
	}
	return nil
}

func (*OS) SetTimes(path string, atime, mtime time.Time, follow bool) error {
	flags := unix.AT_SYMLINK_NOFOLLOW
	if follow {
		flags = 0
	}
	times := []unix.Timespec{
		unix.NsecToTimespec(atime.UnixNano()),
		unix.NsecToTimespec(mtime.UnixNano()),
	}
	if err := unix.UtimesNanoAt(unix.AT_FDCWD, path, times, flags); err != nil {
		return &os.PathError{Op: "utimensat", Path: path, Err: err}
	}
	return nil
}

func (*OS) Getxattr(path, name string) ([]byte, error) {
	for {
		sz, err := unix.Lgetxattr(path, name, nil)
		if err != nil {
			return nil, xattrErr("lgetxattr", path, err)
		}
		buf := make([]byte, sz)
		n, err := unix.Lgetxattr(path, name, buf)
		if errors.Is(err, unix.ERANGE) {
			continue // grew between calls
		}
		if err != nil {
			return nil, xattrErr("lgetxattr", path, err)
		}
		return buf[:n], nil
	}
}

func (*OS) Setxattr(path, name string, value []byte) error {
	if err := unix.Lsetxattr(path, name, value, 0); err != nil {
		return xattrErr("lsetxattr", path, err)
	}
	return nil
}

func (*OS) Listxattr(path string) ([]string, error) {
	for {
		sz, err := unix.Llistxattr(path, nil)
		if errors.Is(err, unix.ENOTSUP) {
			return nil, nil
		}
		if err != nil {
			return nil, xattrErr("llistxattr", path, err)
		}
		if sz == 0 {
			return nil, nil
		}
		buf := make([]byte, sz)
		n, err := unix.Llistxattr(path, buf)
		if errors.Is(err, unix.ERANGE) {
			continue
		}
		if err != nil {
			return nil, xattrErr("llistxattr", path, err)
		}
		return parseXattrNames(buf[:n]), nil
	}
}

func (*OS) Removexattr(path, name string) error {
	if err := unix.Lremovexattr(path, name); err != nil {
		return xattrErr("lremovexattr", path, err)
	}
	return nil
}

func xattrErr(op, path string, err error) error {
	if errors.Is(err, unix.ENODATA) {
		return ErrNoAttr
	}
	return &os.PathError{Op: op, Path: path, Err: err}
}

// parseXattrNames splits the NUL-separated list returned by listxattr(2).
func parseXattrNames(buf []byte) []string {
	var names []string
	start := 0
	for i, b := range buf {
		if b == 0 {
			if i > start {
				names = append(names, string(buf[start:i]))
			}
			start = i + 1
		}
	}
	return names
}

// openForIoctl opens path without following symlinks and without blocking on
// fifos, which is enough for FS_IOC_{GET,SET}FLAGS on files and directories.
func openForIoctl(path string) (int, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_NOFOLLOW|unix.O_CLOEXEC, 0)
	if err != nil {
		return -1, &os.PathError{Op: "open", Path: path, Err: err}
	}
	return fd, nil
}

func isFlagsUnsupported(err error) bool {
	return errors.Is(err, unix.ENOTTY) || errors.Is(err, unix.ENOTSUP) ||
		errors.Is(err, unix.EINVAL) || errors.Is(err, unix.ENOSYS)
}

func (*OS) GetFlags(path string) (uint32, error) {
	fd, err := openForIoctl(path)
	if err != nil {
		return 0, err
	}
	defer unix.Close(fd)

	flags, err := unix.IoctlGetUint32(fd, unix.FS_IOC_GETFLAGS)
	if err != nil {
		if isFlagsUnsupported(err) {
			return 0, nil
		}
		return 0, &os.PathError{Op: "ioctl(FS_IOC_GETFLAGS)", Path: path, Err: err}
	}
	return flags, nil
}

func (o *OS) SetFlags(path string, flags uint32) error {
	fd, err := openForIoctl(path)
	if err != nil {
		return err
	}
	defer unix.Close(fd)

	cur, err := unix.IoctlGetUint32(fd, unix.FS_IOC_GETFLAGS)
	if err != nil {
		if isFlagsUnsupported(err) {
			return nil
		}
		return &os.PathError{Op: "ioctl(FS_IOC_GETFLAGS)", Path: path, Err: err}
	}
	if cur == flags {
		return nil
	}
	if err := unix.IoctlSetPointerInt(fd, unix.FS_IOC_SETFLAGS, int(flags)); err != nil {
		if isFlagsUnsupported(err) {
			return nil
		}
		return &os.PathError{Op: "ioctl(FS_IOC_SETFLAGS)", Path: path, Err: err}
	}
	return nil
}

func (*OS) SendFile(dst, src File, offset, length int64) error {
	dstFd, ok := dst.(osFile)
	if !ok {
		return fmt.Errorf("sendfile: destination %s is not an OS file", dst.Name())
	}
	srcFd, ok := src.(osFile)
	if !ok {
		return fmt.Errorf("sendfile: source %s is not an OS file", src.Name())
	}
	res, err := CopyRange(CopyRangeParams{
		Dst:    dstFd.File,
		Src:    srcFd.File,
		Offset: offset,
		Length: length,
	})
	if err != nil {
		return fmt.Errorf("%s %s: %w", res.Method, src.Name(), err)
	}
	if res.BytesWritten != length {
		return fmt.Errorf("%s %s: short copy %d of %d bytes", res.Method, src.Name(), res.BytesWritten, length)
	}
	return nil
}

func (*OS) SyncFile(path string) error {
	f, err := os.OpenFile(path, os.O_RDONLY|syscall.O_NOFOLLOW, 0)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}

func (*OS) SyncDir(path string) error {
	f, err := os.OpenFile(path, os.O_RDONLY|syscall.O_DIRECTORY, 0)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}

func (*OS) Sync() { unix.Sync() }

func (*OS) FreeSpace(path string) (int64, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return 0, fmt.Errorf("statfs %s: %w", path, err)
	}
	return int64(usage.Free), nil //nolint:gosec // G115: free bytes fit in int64
}
