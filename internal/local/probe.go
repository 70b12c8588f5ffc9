package local

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"awscli-update/internal/config"
	"awscli-update/internal/logger"
	"awscli-update/internal/version"
)

// CommandRunner executes external commands, allowing tests to inject stubs.
type CommandRunner interface {
	Run(ctx context.Context, bin string, args ...string) ([]byte, error)
}

type execCommandRunner struct{}

func (execCommandRunner) Run(ctx context.Context, bin string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	logger.Debug("[DEBUG] Running command: %s\n", strings.Join(cmd.Args, " "))
	// AWS CLI v1 prints its version to stderr, v2 to stdout.
	return cmd.CombinedOutput()
}

// LookPathFunc resolves a binary name to an executable path.
type LookPathFunc func(bin string) (string, error)

// Fetcher reports the AWS CLI version installed on this machine.
type Fetcher struct {
	Bin      string
	Runner   CommandRunner
	LookPath LookPathFunc
}

// NewFetcher creates a Fetcher that runs bin (default "aws") from PATH.
func NewFetcher(bin string) *Fetcher {
	if strings.TrimSpace(bin) == "" {
		bin = config.DefaultBinary
	}
	return &Fetcher{
		Bin:      bin,
		Runner:   execCommandRunner{},
		LookPath: exec.LookPath,
	}
}

// FetchCurrent runs `<bin> --version` and parses the result.
// A binary missing from PATH and output without a version both mean the tool is
// not installed and yield (nil, nil). A binary that exists but fails to run is an error.
func (f *Fetcher) FetchCurrent(ctx context.Context) (*version.Version, error) {
	lookPath := f.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	runner := f.Runner
	if runner == nil {
		runner = execCommandRunner{}
	}

	path, err := lookPath(f.Bin)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			logger.Debug("[DEBUG] %s not found on PATH\n", f.Bin)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve %s: %w", f.Bin, err)
	}

	output, err := runner.Run(ctx, path, "--version")
	if err != nil {
		return nil, fmt.Errorf("failed to run %s --version: %w\nOutput: %s", path, err, output)
	}
	logger.Debug("[DEBUG] %s --version output: %s\n", path, strings.TrimSpace(string(output)))

	current := version.ParseToolOutput(string(output))
	if current == nil {
		logger.Debug("[DEBUG] No aws-cli version in output of %s\n", path)
	}
	return current, nil
}
