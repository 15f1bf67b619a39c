//go:build !linux && !darwin

package files

import "io/fs"

// fillPlatform has nothing beyond what os.Lstat already reported.
func fillPlatform(*File, fs.FileInfo) {}

func listXattrs(string) []Attribute { return nil }

func securityContext(string) string { return "" }
