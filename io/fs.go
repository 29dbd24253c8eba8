package io

import (
	"io"
	"os"
	"path/filepath"
)

// CreateFS defines a file system interface that supports creating files.
// It is the write side counterpart of fs.FS, used to save assembled
// programs and reports.
type CreateFS interface {
	// Create creates a new file for writing.
	Create(name string) (file io.WriteCloser, err error)
}

// DirFS is a CreateFS rooted at a host directory.
type DirFS string

var _ CreateFS = DirFS("")

// Create creates or truncates a file in the directory.
func (dir DirFS) Create(name string) (file io.WriteCloser, err error) {
	file, err = os.Create(filepath.Join(string(dir), filepath.FromSlash(name)))
	return
}

// WriteFile creates a file and fills it from write.
func WriteFile(fsys CreateFS, name string, write func(w io.Writer) error) (err error) {
	file, err := fsys.Create(name)
	if err != nil {
		return
	}
	defer func() {
		close_err := file.Close()
		if err == nil {
			err = close_err
		}
	}()

	err = write(file)
	return
}
