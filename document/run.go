package document

import (
	"context"
	"errors"
	"io"
	"os/exec"
)

// DefaultInterpreter runs saved files when RunConfig.Interpreter is empty.
const DefaultInterpreter = "python3"

// RunConfig selects the external program that executes a saved file.
// The file path is appended after Args.
type RunConfig struct {
	Interpreter string
	Args        []string
}

func (c RunConfig) interpreter() string {
	if c.Interpreter == "" {
		return DefaultInterpreter
	}
	return c.Interpreter
}

// RunTarget returns the path to run. It fails with ErrNoFileName for an
// unnamed document and ErrUnsaved when there are unsaved changes.
func (d *Document) RunTarget() (string, error) {
	if d.name == "" {
		return "", ErrNoFileName
	}
	if d.buf.Modified() {
		return "", ErrUnsaved
	}
	return d.path, nil
}

// Command builds the interpreter invocation for the current file without
// starting it.
func (d *Document) Command(ctx context.Context) (*exec.Cmd, error) {
	path, err := d.RunTarget()
	if err != nil {
		return nil, err
	}
	args := append(append([]string(nil), d.run.Args...), path)
	return exec.CommandContext(ctx, d.run.interpreter(), args...), nil
}

// Run executes the current file and waits for the interpreter to exit.
// There is no timeout; ctx is the only way to stop a hung interpreter.
func (d *Document) Run(ctx context.Context, stdout, stderr io.Writer) error {
	cmd, err := d.Command(ctx)
	if err != nil {
		return err
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return RunResult(d.path, cmd.Run())
}

// RunResult converts the error of a finished interpreter process into a
// *RunError for non-zero exits. Other errors are returned unchanged.
func RunResult(path string, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &RunError{Path: path, ExitCode: exitErr.ExitCode()}
	}
	return err
}
