// Package port implements the concrete I/O backends Osyris wires
// behind object.Port: host files, child processes, and the standard
// streams.
package port

import (
	"fmt"
	"io"
	"os"

	"github.com/osyris-lang/osyris/internal/bstring"
	"github.com/osyris-lang/osyris/internal/object"
)

// File is an os.File-backed port, grounded on the reference
// implementation's TextFile adapter: whole-file reads, byte-string
// renders written as raw bytes, and host-native seeking.
type File struct {
	f *os.File
}

// Open opens path for reading as a Port.
func Open(path string) (object.Port, error) {
	f, err := os.Open(path)
	if err != nil {
		return object.Port{}, fmt.Errorf("'open': %s: %w", path, err)
	}
	return object.NewPort(path, &File{f: f}), nil
}

// Create truncates-or-creates path for writing as a Port.
func Create(path string) (object.Port, error) {
	f, err := os.Create(path)
	if err != nil {
		return object.Port{}, fmt.Errorf("'create': %s: %w", path, err)
	}
	return object.NewPort(path, &File{f: f}), nil
}

func (p *File) Read() (object.Value, error) {
	data, err := io.ReadAll(p.f)
	if err != nil {
		return nil, err
	}
	return object.String{Value: bstring.New(data)}, nil
}

func (p *File) ReadChunk(n int) (object.Value, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(p.f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return object.String{Value: bstring.New(buf[:read])}, nil
}

func (p *File) Write(v object.Value) error {
	_, err := p.f.Write(object.Render(v).Bytes())
	return err
}

func (p *File) Seek(whence string, offset int64) error {
	w, err := seekWhence(whence)
	if err != nil {
		return err
	}
	_, err = p.f.Seek(offset, w)
	return err
}

func seekWhence(whence string) (int, error) {
	switch whence {
	case "set":
		return io.SeekStart, nil
	case "end":
		return io.SeekEnd, nil
	case "current":
		return io.SeekCurrent, nil
	default:
		return 0, fmt.Errorf("unknown seek whence %q", whence)
	}
}
