package installer

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"awscli-update/internal/config"
	"awscli-update/internal/logger"
)

// elevationWrapper is prepended to install commands when --sudo is given.
const elevationWrapper = "sudo"

// Runner executes an install command. Tests replace it to record invocations.
type Runner interface {
	Run(ctx context.Context, quiet bool, name string, args ...string) error
}

type execRunner struct{}

// Run executes the command attached to the terminal. In quiet mode stdout is
// discarded; stderr is kept so installer errors stay visible.
func (execRunner) Run(ctx context.Context, quiet bool, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if quiet {
		cmd.Stdout = io.Discard
	}

	logger.Debug("[DEBUG] Running command: %s\n", strings.Join(cmd.Args, " "))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %q failed: %w", strings.Join(cmd.Args, " "), err)
	}
	return nil
}

// command accumulates an ordered argument list for a single process invocation.
type command struct {
	args []string
}

// newCommand starts a command for program, wrapped with the elevation wrapper
// when opts.Sudo is set.
func newCommand(opts config.Options, program string) *command {
	c := &command{}
	if opts.Sudo {
		c.args = append(c.args, elevationWrapper)
	}
	c.args = append(c.args, program)
	return c
}

// arg appends arguments unconditionally.
func (c *command) arg(args ...string) *command {
	c.args = append(c.args, args...)
	return c
}

// argIf appends arguments only when cond holds.
func (c *command) argIf(cond bool, args ...string) *command {
	if cond {
		c.args = append(c.args, args...)
	}
	return c
}

func (c *command) run(ctx context.Context, r Runner, quiet bool) error {
	return r.Run(ctx, quiet, c.args[0], c.args[1:]...)
}
