//go:build !windows

package venv

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// reexec replaces the current process image with the same program running
// inside env. It only returns on failure.
func reexec(env *Env) error {
	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locating own executable: %w", err)
	}

	if err := unix.Exec(self, os.Args, reexecEnviron(env)); err != nil {
		return fmt.Errorf("exec %s: %w", self, err)
	}
	return nil
}
