package filesystem

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/zanyuzhao/spec-coding/pkg/types"
)

// WalkFunc receives the slash-separated path of a regular file relative to
// the walk root.
type WalkFunc func(rel string) error

// Walk visits every regular file below root in lexical order. Directories
// are descended into; symlinks and other special files are skipped. A
// missing root is not an error and visits nothing.
func Walk(fsys types.FS, root string, fn WalkFunc) error {
	info, err := fsys.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if !info.IsDir() {
		if info.Mode().IsRegular() {
			return fn(".")
		}
		return nil
	}
	return walkDir(fsys, root, "", fn)
}

func walkDir(fsys types.FS, root, rel string, fn WalkFunc) error {
	entries, err := fsys.ReadDir(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return err
	}
	for _, entry := range entries {
		child := path.Join(rel, entry.Name())
		switch {
		case entry.IsDir():
			if err := walkDir(fsys, root, child, fn); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if err := fn(child); err != nil {
				return err
			}
		}
	}
	return nil
}

// Exists reports whether name exists.
func Exists(fsys types.FS, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}

// IsDir reports whether name exists and is a directory.
func IsDir(fsys types.FS, name string) bool {
	info, err := fsys.Stat(name)
	return err == nil && info.IsDir()
}
