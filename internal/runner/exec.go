package runner

import (
	"io"
	"os/exec"

	cexec "github.com/convox/exec"
)

// Exec is the convox exec interface plus a stream that keeps the child's stdout and stderr
// apart.
type Exec interface {
	cexec.Interface
	StreamSplit(stdout, stderr io.Writer, stdin io.Reader, command string, args ...string) error
}

type Process struct {
	cexec.Exec
}

var _ Exec = (*Process)(nil)

func (p *Process) StreamSplit(stdout, stderr io.Writer, stdin io.Reader, command string, args ...string) error {
	cmd := exec.Command(command, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}
