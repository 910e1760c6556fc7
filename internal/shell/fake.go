package shell

import (
	"fmt"
	"strings"
)

// FakeRecorder captures executed commands for assertions in tests. Commands
// whose rendered form matches a key in Failures return that error instead
// of succeeding.
type FakeRecorder struct {
	Commands []string
	Failures map[string]error
}

// Exec returns an Exec that records into the recorder.
func (f *FakeRecorder) Exec() Exec {
	return func(cmd *Command) Result {
		rendered := render(cmd)
		f.Commands = append(f.Commands, rendered)

		if err, ok := f.Failures[rendered]; ok {
			return Result{ExitStatus: 1, Error: err}
		}
		return Result{}
	}
}

// Ran reports whether a command matching the rendered form was executed.
func (f *FakeRecorder) Ran(rendered string) bool {
	for _, c := range f.Commands {
		if c == rendered {
			return true
		}
	}
	return false
}

func render(cmd *Command) string {
	if len(cmd.Args) == 0 {
		return cmd.Name
	}
	return fmt.Sprintf("%s %s", cmd.Name, strings.Join(cmd.Args, " "))
}
