package fs

import (
	"io"
	"os"
)

// FS abstracts filesystem operations. The repository, the object store and the
// working tree all go through one FS value, so tests can swap in MemoryFS.
type FS interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	Remove(path string) error
	Rename(oldPath, newPath string) error
	Stat(path string) (os.FileInfo, error)
	ReadDir(path string) ([]os.DirEntry, error)
	CreateTempFile(dir, pattern string) (io.WriteCloser, string, error)
	IsNotExist(err error) bool
	Exists(path string) bool
	IsDir(path string) bool
}

// WriteFileAtomic writes data to a temp file in the target directory and renames
// it over path.
func WriteFileAtomic(fsys FS, path string, data []byte) error {
	dir := dirOf(path)
	tmp, tmpPath, err := fsys.CreateTempFile(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer fsys.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return fsys.Rename(tmpPath, path)
}
