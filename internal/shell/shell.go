package shell

import (
	"io"
	"os"
	"os/exec"
)

// Command is a single external command invocation.
type Command struct {
	Name string
	Args []string

	// Dir is the working directory of this command
	Dir string

	Env            map[string]string
	Stdout, Stderr io.Writer
}

// Result holds the outcome of a command.
type Result struct {
	ExitStatus int
	Error      error
}

// Exec runs a command and returns its result. Swappable so tests can run
// against a fake instead of the real toolchain.
type Exec func(*Command) Result

// Shell runs external commands through an Exec.
type Shell struct {
	Exec Exec
}

// New returns a Shell backed by os/exec.
func New() *Shell {
	return &Shell{Exec: DefaultExec}
}

// Run executes the command and returns its error, if any.
func (s *Shell) Run(cmd *Command) error {
	return s.Exec(cmd).Error
}

// Interact runs the command with the process's stdio attached, so build
// output streams straight to the user.
func (s *Shell) Interact(cmd *Command) error {
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return s.Exec(cmd).Error
}

// DefaultExec is the os/exec-backed implementation of Exec.
func DefaultExec(cmd *Command) Result {
	c := exec.Command(cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdout = cmd.Stdout
	c.Stderr = cmd.Stderr

	if len(cmd.Env) > 0 {
		c.Env = os.Environ()
		for k, v := range cmd.Env {
			c.Env = append(c.Env, k+"="+v)
		}
	}

	err := c.Run()

	result := Result{Error: err}
	if exitErr, ok := err.(*exec.ExitError); ok {
		result.ExitStatus = exitErr.ExitCode()
	}
	return result
}
