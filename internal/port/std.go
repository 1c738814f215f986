package port

import (
	"fmt"
	"io"

	"github.com/osyris-lang/osyris/internal/bstring"
	"github.com/osyris-lang/osyris/internal/object"
)

// Std adapts a generic io.Reader/io.Writer (os.Stdin, os.Stdout,
// os.Stderr, or anything else a host embeds) as a Port. Reading fails
// with "not supported" when no reader was given, and writing when no
// writer was given; seeking always does, since none of the three
// standard streams are seekable.
type Std struct {
	r io.Reader
	w io.Writer
}

// NewStd wraps r and/or w (either may be nil) as a Port named for
// Inspect output.
func NewStd(name string, r io.Reader, w io.Writer) object.Port {
	return object.NewPort(name, &Std{r: r, w: w})
}

func (p *Std) Read() (object.Value, error) {
	if p.r == nil {
		return nil, fmt.Errorf("This port doesn't support reading")
	}
	data, err := io.ReadAll(p.r)
	if err != nil {
		return nil, err
	}
	return object.String{Value: bstring.New(data)}, nil
}

func (p *Std) ReadChunk(n int) (object.Value, error) {
	if p.r == nil {
		return nil, fmt.Errorf("This port doesn't support reading chunks")
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(p.r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return object.String{Value: bstring.New(buf[:read])}, nil
}

func (p *Std) Write(v object.Value) error {
	if p.w == nil {
		return fmt.Errorf("This port doesn't support writing")
	}
	_, err := p.w.Write(object.Render(v).Bytes())
	return err
}

func (*Std) Seek(whence string, offset int64) error {
	return fmt.Errorf("This port doesn't support seeking")
}
