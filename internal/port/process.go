package port

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"

	"github.com/osyris-lang/osyris/internal/bstring"
	"github.com/osyris-lang/osyris/internal/object"
)

// Process is a child-process port: reads drain the child's stdout,
// writes go to its stdin, and seeking is never supported. This is the
// natural Go rendering of a Unix popen-style process port, the
// concrete collaborator Osyris's port abstraction names without
// prescribing a shape.
type Process struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader
}

// StartProcess launches name with args, wiring its stdin/stdout as a
// Port. The caller is responsible for waiting on the process (via
// Wait) after closing the port's write side, if it needs the exit
// status.
func StartProcess(name string, args ...string) (object.Port, *Process, error) {
	cmd := exec.Command(name, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return object.Port{}, nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return object.Port{}, nil, err
	}
	if err := cmd.Start(); err != nil {
		return object.Port{}, nil, err
	}
	p := &Process{cmd: cmd, stdin: stdin, stdout: bufio.NewReader(stdout)}
	return object.NewPort(fmt.Sprintf("process %s", name), p), p, nil
}

// Wait blocks until the child process exits.
func (p *Process) Wait() error {
	return p.cmd.Wait()
}

func (p *Process) Read() (object.Value, error) {
	data, err := io.ReadAll(p.stdout)
	if err != nil {
		return nil, err
	}
	return object.String{Value: bstring.New(data)}, nil
}

func (p *Process) ReadChunk(n int) (object.Value, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(p.stdout, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return object.String{Value: bstring.New(buf[:read])}, nil
}

func (p *Process) Write(v object.Value) error {
	_, err := p.stdin.Write(object.Render(v).Bytes())
	return err
}

func (*Process) Seek(whence string, offset int64) error {
	return fmt.Errorf("This port doesn't support seeking")
}
