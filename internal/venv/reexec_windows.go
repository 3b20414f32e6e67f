//go:build windows

package venv

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// reexec approximates process replacement on Windows, which has no execve:
// the program is started again as a child with the environment applied,
// and the parent exits with the child's status once it finishes.
func reexec(env *Env) error {
	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locating own executable: %w", err)
	}

	cmd := exec.Command(self, os.Args[1:]...)
	cmd.Env = reexecEnviron(env)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		return fmt.Errorf("relaunching %s: %w", self, err)
	}
	os.Exit(0)
	return nil
}
