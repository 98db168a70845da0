// Package audit runs `buck2 audit` with the arguments cell resolution relies on.
//
// `audit cell` prints the cell name to physical root mapping consumed by
// cells.Parse; `audit config` prints the build file names of every cell.
package audit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Mode selects which audit subcommand to run.
type Mode string

const (
	// ModeCell runs `audit cell`.
	ModeCell Mode = "cell"
	// ModeConfig runs `audit config`.
	ModeConfig Mode = "config"
)

// It doesn't matter which config the cells are computed in, they are the
// same everywhere, so reuse the current one instead of invalidating the daemon.
const reuseConfig = "--reuse-current-config"

// ErrUnknownMode is returned for a Mode other than ModeCell or ModeConfig.
var ErrUnknownMode = errors.New("unknown audit mode")

// CellArguments returns the arguments for `audit cell`.
func CellArguments() []string {
	return []string{"audit", "cell", "--json", reuseConfig}
}

// ConfigArguments returns the arguments for `audit config`.
func ConfigArguments() []string {
	return []string{
		"audit",
		"config",
		"--json",
		"--all-cells",
		"buildfile.name",
		"buildfile.name_v2",
		reuseConfig,
	}
}

// Arguments returns the buck arguments for the mode.
func (m Mode) Arguments() ([]string, error) {
	switch m {
	case ModeCell:
		return CellArguments(), nil
	case ModeConfig:
		return ConfigArguments(), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownMode, string(m))
	}
}

// Command builds the buck invocation for mode.
func Command(ctx context.Context, buck string, mode Mode) (*exec.Cmd, error) {
	args, err := mode.Arguments()
	if err != nil {
		return nil, err
	}
	return exec.CommandContext(ctx, buck, args...), nil
}

// Display renders cmd as a line that can be pasted into a POSIX shell.
func Display(cmd *exec.Cmd) string {
	return shellquote.Join(cmd.Args...)
}

// ExitError reports a buck process that ran but exited unsuccessfully.
// The CLI exits with the same code.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Command, e.Code)
}

// Options configures Run.
type Options struct {
	Buck   string
	Mode   Mode
	DryRun bool

	// Stdout and Stderr default to the process streams.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes the audit command with inherited output, or only prints it in dry-run mode.
func Run(ctx context.Context, opts Options) error {
	cmd, err := Command(ctx, opts.Buck, opts.Mode)
	if err != nil {
		return err
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	if opts.DryRun {
		_, err := fmt.Fprintln(stdout, Display(cmd))
		return err
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return wait(cmd, cmd.Run())
}

// QueryCells runs `audit cell` and returns the JSON it prints.
func QueryCells(ctx context.Context, buck string) (string, error) {
	cmd, err := Command(ctx, buck, ModeCell)
	if err != nil {
		return "", err
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := wait(cmd, cmd.Run()); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return stdout.String(), nil
}

// wait converts the result of cmd.Run into an *ExitError when the process exited non-zero.
func wait(cmd *exec.Cmd, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return &ExitError{Command: Display(cmd), Code: exitErr.ExitCode()}
	}
	return fmt.Errorf("failed to run %s: %w", Display(cmd), err)
}
