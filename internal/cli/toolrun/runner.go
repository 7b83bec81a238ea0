// Package toolrun executes external tools such as nfpm and the package
// inspectors.
package toolrun

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner runs a command to completion.
type Runner interface {
	// Run streams the command output to the runner's writers.
	Run(ctx context.Context, name string, args ...string) error
	// Output captures stdout and returns it.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Exec runs commands with os/exec.
type Exec struct {
	Dir    string
	Env    map[string]string
	Stdout io.Writer
	Stderr io.Writer
}

// NewExec returns a runner bound to the process stdio.
func NewExec() *Exec {
	return &Exec{Stdout: os.Stdout, Stderr: os.Stderr}
}

func (e *Exec) Run(ctx context.Context, name string, args ...string) error {
	cmd := e.command(ctx, name, args)
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %q failed: %w", CommandLine(name, args...), err)
	}
	return nil
}

func (e *Exec) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := e.command(ctx, name, args)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, fmt.Errorf("command %q failed: %w: %s", CommandLine(name, args...), err, msg)
		}
		return out, fmt.Errorf("command %q failed: %w", CommandLine(name, args...), err)
	}
	return out, nil
}

func (e *Exec) command(ctx context.Context, name string, args []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.Dir
	cmd.Env = os.Environ()
	for k, v := range e.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}
	return cmd
}

// CommandLine joins name and args the way they are shown in logs.
func CommandLine(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
