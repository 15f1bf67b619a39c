package files

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Stat builds the snapshot for the entry at path without following a final
// symbolic link. name is the display name; when empty the base of path is
// used.
func Stat(path, name string) (*File, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = filepath.Base(path)
	}

	f := &File{
		Name:    name,
		Path:    path,
		Ext:     extOf(name),
		Mode:    info.Mode(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}

	fillPlatform(f, info)

	if f.IsLink() {
		resolveLink(f)
	}
	f.Xattrs = listXattrs(path)
	f.SecurityContext = securityContext(path)
	return f, nil
}

// StatFollow is Stat for entries given by the user, where a link to a
// directory should behave as the directory itself.
func StatFollow(path string) (*File, error) {
	f, err := Stat(path, path)
	if err != nil {
		return nil, err
	}
	if f.IsLink() && f.ResolvesToDir() {
		target, err := Stat(path+string(filepath.Separator)+".", path)
		if err == nil {
			target.Path = path
			return target, nil
		}
	}
	return f, nil
}

// resolveLink fills in the link target and whether it can be reached.
func resolveLink(f *File) {
	target, err := os.Readlink(f.Path)
	if err != nil {
		f.Link = LinkError
		return
	}
	f.LinkTarget = target

	info, err := os.Stat(f.Path)
	switch {
	case err == nil:
		f.Link = LinkOK
		f.TargetMode = info.Mode()
	case errors.Is(err, fs.ErrNotExist):
		f.Link = LinkBroken
	default:
		f.Link = LinkError
	}
}
