// Package execx provides a thin, swappable layer over os/exec so that
// package-manager invocations can be tested without the tools installed.
package execx

import (
	"bytes"
	"os"
	"os/exec"
)

// CommandExecutor is an interface for executing external commands, allowing
// for testing. An empty env means the command inherits the process
// environment unchanged.
type CommandExecutor interface {
	// LookPath finds the path to an executable.
	LookPath(file string) (string, error)

	// Run executes a command and returns its captured output.
	Run(env []string, name string, args ...string) (string, error)

	// Stream executes a command with stdout/stderr attached to the
	// process's own, for long-running tools whose progress the user
	// should see as it happens.
	Stream(env []string, name string, args ...string) error
}

// RealExecutor is the default command executor that uses the real system.
type RealExecutor struct{}

// LookPath finds the path to an executable.
func (e *RealExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command and returns its output.
func (e *RealExecutor) Run(env []string, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	if len(env) > 0 {
		cmd.Env = env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		// Some tools report failures on stderr only
		if stderr.Len() > 0 {
			return stderr.String(), err
		}
		return stdout.String(), err
	}

	output := stdout.String()
	if output == "" {
		output = stderr.String()
	}
	return output, nil
}

// Stream executes a command with output attached to the current process.
func (e *RealExecutor) Stream(env []string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if len(env) > 0 {
		cmd.Env = env
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
