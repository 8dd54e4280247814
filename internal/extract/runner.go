// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"io"
	"os/exec"
)

// Runner abstracts tool invocation so tests can run the pipeline without
// MinerU installed.
type Runner interface {
	// LookPath reports where the tool binary resolves on PATH.
	LookPath(bin string) (string, error)

	// Run executes the tool and returns whatever it wrote to stderr.
	// The stderr text is returned even when err is non-nil.
	Run(ctx context.Context, bin string, args []string) (string, error)
}

// ExecRunner is the production Runner backed by os/exec. Tool stdout is
// progress chatter and is discarded; stderr carries the diagnostics worth
// surfacing on failure.
type ExecRunner struct{}

func (ExecRunner) LookPath(bin string) (string, error) {
	return exec.LookPath(bin)
}

func (ExecRunner) Run(ctx context.Context, bin string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = io.Discard

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stderr.String(), err
}
