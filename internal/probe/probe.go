// Package probe detects host capabilities before the installer performs any
// side effects.
package probe

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/ProdeusUnity/Easy-Chatterbox/internal/domain"
)

// tagProgram prints the ABI tag of the interpreter running it.
const tagProgram = "import sys; print('cp%d%d' % sys.version_info[:2])"

// Prober computes the HostProfile. Both inputs are injectable so tests can
// exercise the unsupported-host and missing-python paths.
type Prober struct {
	GOOS      string
	RunPython func(python string, code string) (string, error)
}

// New returns a Prober backed by the real host.
func New() *Prober {
	return &Prober{
		GOOS: runtime.GOOS,
		RunPython: func(python, code string) (string, error) {
			out, err := exec.Command(python, "-c", code).Output()
			return strings.TrimSpace(string(out)), err
		},
	}
}

// HostPython returns the conventional python executable name for an OS
// family.
func HostPython(os domain.OSFamily) string {
	if os == domain.OSWindows {
		return "python"
	}
	return "python3"
}

// Probe classifies the host and queries the python ABI tag. An OS outside
// the supported set, or a missing interpreter, is fatal: nothing has been
// touched yet, so the run aborts cleanly.
func (p *Prober) Probe() (domain.HostProfile, error) {
	var profile domain.HostProfile

	switch p.GOOS {
	case "linux":
		profile.OS = domain.OSLinux
	case "windows":
		profile.OS = domain.OSWindows
	default:
		return profile, domain.Fatal(
			fmt.Errorf("%w: %s", domain.ErrUnsupportedHost, p.GOOS),
			"This installer only supports Windows and Linux.",
		)
	}

	tag, err := p.RunPython(HostPython(profile.OS), tagProgram)
	if err != nil {
		return profile, domain.Fatal(
			fmt.Errorf("%w: %v", domain.ErrPythonNotFound, err),
			"Install Python 3 and make sure it is on your PATH.",
		)
	}
	profile.RuntimeTag = tag

	return profile, nil
}
