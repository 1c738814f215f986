package object

import "fmt"

// PortBackend is the host-side implementation a Port value wraps.
// Concrete backends (file, child process, standard stream) live in
// package port; object only needs the shape, which keeps the value
// model free of any dependency on concrete I/O.
//
// Every method defaults to failing with "This port doesn't support
// <op>" in the concrete backends that don't implement it, per spec
// §4.7 — that default lives with each backend, not here, since object
// has no opinion about which operations a given port supports.
type PortBackend interface {
	Read() (Value, error)
	ReadChunk(n int) (Value, error)
	Write(v Value) error
	Seek(whence string, offset int64) error
}

type portData struct {
	cell
	backend PortBackend
	name    string
}

// Port wraps a host I/O backend as a first-class, interior-mutable
// value.
type Port struct {
	data *portData
}

// NewPort wraps backend as a Port value, named for Inspect output.
func NewPort(name string, backend PortBackend) Port {
	return Port{data: &portData{cell: newCell(), backend: backend, name: name}}
}

func (p Port) Backend() PortBackend { return p.data.backend }

func (Port) Kind() Kind { return KindPort }
func (p Port) Inspect() string {
	return fmt.Sprintf("(port %s)", p.data.name)
}

func GetPort(v Value) (Port, error) {
	p, ok := v.(Port)
	if !ok {
		return Port{}, typeErr("port", v)
	}
	return p, nil
}
