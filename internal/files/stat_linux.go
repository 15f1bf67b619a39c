//go:build linux

package files

import (
	"bytes"
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

const statxMask = unix.STATX_BASIC_STATS | unix.STATX_BTIME

// fillPlatform uses statx so the birth time is available where the
// filesystem records one. Older kernels fall back to lstat.
func fillPlatform(f *File, _ fs.FileInfo) {
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, f.Path, unix.AT_SYMLINK_NOFOLLOW, statxMask, &stx); err != nil {
		fillFromLstat(f)
		return
	}

	f.Inode = stx.Ino
	f.Links = uint64(stx.Nlink)
	f.Blocks = int64(stx.Blocks)
	f.UID = stx.Uid
	f.GID = stx.Gid
	f.HasIDs = true

	f.AccessTime = statxTime(stx.Atime)
	f.ChangeTime = statxTime(stx.Ctime)
	if stx.Mask&unix.STATX_BTIME != 0 {
		f.BirthTime = statxTime(stx.Btime)
	}
	if f.IsDevice() {
		f.Major = stx.Rdev_major
		f.Minor = stx.Rdev_minor
	}
}

func fillFromLstat(f *File) {
	var st unix.Stat_t
	if err := unix.Lstat(f.Path, &st); err != nil {
		return
	}

	f.Inode = st.Ino
	f.Links = uint64(st.Nlink)
	f.Blocks = int64(st.Blocks)
	f.UID = st.Uid
	f.GID = st.Gid
	f.HasIDs = true

	f.AccessTime = time.Unix(st.Atim.Unix())
	f.ChangeTime = time.Unix(st.Ctim.Unix())
	if f.IsDevice() {
		f.Major = unix.Major(uint64(st.Rdev))
		f.Minor = unix.Minor(uint64(st.Rdev))
	}
}

func statxTime(ts unix.StatxTimestamp) time.Time {
	return time.Unix(ts.Sec, int64(ts.Nsec))
}

// listXattrs reads every extended attribute of the entry itself. Errors
// (including filesystems without xattr support) yield no attributes.
func listXattrs(path string) []Attribute {
	size, err := unix.Llistxattr(path, nil)
	if err != nil || size <= 0 {
		return nil
	}
	buf := make([]byte, size)
	size, err = unix.Llistxattr(path, buf)
	if err != nil || size <= 0 {
		return nil
	}

	var attrs []Attribute
	for _, name := range bytes.Split(buf[:size], []byte{0}) {
		if len(name) == 0 {
			continue
		}
		attrs = append(attrs, Attribute{Name: string(name), Value: getXattr(path, string(name))})
	}
	return attrs
}

func getXattr(path, name string) []byte {
	size, err := unix.Lgetxattr(path, name, nil)
	if err != nil || size <= 0 {
		return nil
	}
	buf := make([]byte, size)
	size, err = unix.Lgetxattr(path, name, buf)
	if err != nil || size <= 0 {
		return nil
	}
	return buf[:size]
}

// securityContext returns the SELinux label, or "" when none is set.
func securityContext(path string) string {
	return string(bytes.TrimRight(getXattr(path, "security.selinux"), "\x00"))
}
