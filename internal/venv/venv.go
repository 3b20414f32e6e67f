// Package venv creates and enters the isolated python environment that all
// package installs and import probes run against.
package venv

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ProdeusUnity/Easy-Chatterbox/internal/domain"
)

// EnvVar marks a process that has already re-executed itself into the
// virtual environment. Its value is the environment root.
const EnvVar = "CHATTERBOX_VENV"

// Env locates the executables inside a virtual environment root. The
// layout differs by OS family, not by build platform, so it is driven by
// the probed HostProfile.
type Env struct {
	Root string
	OS   domain.OSFamily
}

// New returns an Env rooted at root. Root is made absolute so executable
// paths survive working-directory changes.
func New(root string, os domain.OSFamily) (*Env, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving env root: %w", err)
	}
	return &Env{Root: abs, OS: os}, nil
}

func (e *Env) binDir() string {
	if e.OS == domain.OSWindows {
		return filepath.Join(e.Root, "Scripts")
	}
	return filepath.Join(e.Root, "bin")
}

// Python returns the environment's python executable path.
func (e *Env) Python() string {
	if e.OS == domain.OSWindows {
		return filepath.Join(e.binDir(), "python.exe")
	}
	return filepath.Join(e.binDir(), "python")
}

// Pip returns the environment's pip executable path. It may not exist yet;
// see Manager.Enter.
func (e *Env) Pip() string {
	if e.OS == domain.OSWindows {
		return filepath.Join(e.binDir(), "pip.exe")
	}
	return filepath.Join(e.binDir(), "pip")
}

// Activate returns the activation script path shown in the final summary.
func (e *Env) Activate() string {
	if e.OS == domain.OSWindows {
		return filepath.Join(e.binDir(), "activate.ps1")
	}
	return filepath.Join(e.binDir(), "activate")
}

// Manager creates the environment and handles the re-exec boundary. All
// process-touching operations are injectable for tests.
type Manager struct {
	Run    func(name string, args ...string) error
	Reexec func(env *Env) error
	Getenv func(key string) string
	Exists func(path string) bool
}

// NewManager returns a Manager backed by the real process environment.
func NewManager() *Manager {
	return &Manager{
		Run: func(name string, args ...string) error {
			cmd := exec.Command(name, args...)
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			return cmd.Run()
		},
		Reexec: reexec,
		Getenv: os.Getenv,
		Exists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
	}
}

// Ensure creates the virtual environment at root if it does not exist and
// returns its handle. The environment is never destroyed by this tool; an
// existing root is reused as-is. created reports whether this call made it.
func (m *Manager) Ensure(root string, osFam domain.OSFamily, hostPython string) (env *Env, created bool, err error) {
	env, err = New(root, osFam)
	if err != nil {
		return nil, false, err
	}

	if m.Exists(env.Root) {
		return env, false, nil
	}

	if err := m.Run(hostPython, "-m", "venv", env.Root); err != nil {
		return nil, false, domain.Fatal(
			fmt.Errorf("creating virtual environment: %w", err),
			"Make sure the python3-venv package (or equivalent) is installed.",
		)
	}
	return env, true, nil
}

// Inside reports whether this process is already running re-parented into
// env. The marker is set by Enter before the process replaces itself.
func (m *Manager) Inside(env *Env) bool {
	return m.Getenv(EnvVar) == env.Root
}

// Enter is the re-exec boundary. On the first invocation it does not
// return: the process image is replaced by the same program with the
// environment's bin directory leading PATH and the marker variable set.
// On the invocation already inside the environment it only makes sure pip
// exists, then returns.
func (m *Manager) Enter(env *Env) error {
	if m.Inside(env) {
		if !m.Exists(env.Pip()) {
			if err := m.Run(env.Python(), "-m", "ensurepip", "--upgrade"); err != nil {
				return fmt.Errorf("ensuring pip: %w", err)
			}
		}
		return nil
	}

	if err := m.Reexec(env); err != nil {
		return domain.Fatal(
			fmt.Errorf("re-executing inside environment: %w", err),
			"Delete the "+env.Root+" directory and re-run the installer.",
		)
	}
	return nil
}

// reexecEnviron builds the environment block for the replacement process:
// the marker variable, VIRTUAL_ENV, and the env's bin directory prepended
// to PATH.
func reexecEnviron(env *Env) []string {
	environ := os.Environ()
	out := make([]string, 0, len(environ)+2)
	for _, kv := range environ {
		key, value, _ := strings.Cut(kv, "=")
		switch key {
		case EnvVar, "VIRTUAL_ENV":
			continue
		case "PATH", "Path":
			out = append(out, key+"="+env.binDir()+string(os.PathListSeparator)+value)
		default:
			out = append(out, kv)
		}
	}
	out = append(out, EnvVar+"="+env.Root, "VIRTUAL_ENV="+env.Root)
	return out
}
