// Package eventfile opens the eventlog inputs named on a command line.
package eventfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Stdin is the path naming standard input.
const Stdin = `-`

// bufferSize is large enough to hold a full capability buffer of the runtime.
const bufferSize = 64 << 10

// File is an opened eventlog input.
type File struct {
	Path string
	Name string
	// Size is -1 when the input is not a regular file.
	Size int64

	r *bufio.Reader
	c io.Closer
}

// Open opens path for reading, Stdin or an empty path read standard input.
func Open(path string) (*File, error) {
	if path == `` || path == Stdin {
		return NewFile(`<stdin>`, os.Stdin, -1), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf(`%v: is a directory`, path)
	}

	ef := NewFile(path, f, info.Size())
	ef.c = f
	return ef, nil
}

// NewFile returns a File reading from r. Closing it does not close r.
func NewFile(path string, r io.Reader, size int64) *File {
	return &File{
		Path: path,
		Name: filepath.Base(path),
		Size: size,
		r:    bufio.NewReaderSize(r, bufferSize),
	}
}

// Reader returns the buffered reader of the input.
func (f *File) Reader() *bufio.Reader {
	return f.r
}

// Close closes the underlying file, standard input is left open.
func (f *File) Close() error {
	if f.c == nil {
		return nil
	}
	return f.c.Close()
}

func (f *File) String() string {
	if f.Size < 0 {
		return fmt.Sprintf(`File(%v)`, f.Name)
	}
	return fmt.Sprintf(`File(%v, %d bytes)`, f.Name, f.Size)
}

// Paths returns args, or a single Stdin path when args is empty.
func Paths(args []string) []string {
	if len(args) == 0 {
		return []string{Stdin}
	}
	return args
}
