//go:build darwin

package files

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

func fillPlatform(f *File, _ fs.FileInfo) {
	var st unix.Stat_t
	if err := unix.Lstat(f.Path, &st); err != nil {
		return
	}

	f.Inode = st.Ino
	f.Links = uint64(st.Nlink)
	f.Blocks = st.Blocks
	f.UID = st.Uid
	f.GID = st.Gid
	f.HasIDs = true

	f.AccessTime = time.Unix(st.Atim.Unix())
	f.ChangeTime = time.Unix(st.Ctim.Unix())
	f.BirthTime = time.Unix(st.Btim.Unix())
	if f.IsDevice() {
		f.Major = unix.Major(uint64(st.Rdev))
		f.Minor = unix.Minor(uint64(st.Rdev))
	}
}

// Extended attributes are only decoded on Linux.
func listXattrs(string) []Attribute { return nil }

func securityContext(string) string { return "" }
