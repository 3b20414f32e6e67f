// Package pip drives package installation inside the virtual environment
// and the post-install import probes.
package pip

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/ProdeusUnity/Easy-Chatterbox/internal/domain"
	"github.com/ProdeusUnity/Easy-Chatterbox/internal/venv"
)

// Runner executes a command and reports only success or failure. The real
// implementation streams output to the console; tests count invocations.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with stdout/stderr passed through.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Options adjusts a single install request.
type Options struct {
	IndexURL string // --index-url for backend-specific package sources
	NoDeps   bool   // --no-deps
}

// Installer issues pip install requests against one environment and keeps
// the per-package outcome log.
type Installer struct {
	runner  Runner
	env     *venv.Env
	exists  func(path string) bool
	results []domain.PackageResult
	OnRetry func(spec string, err error)
}

// NewInstaller creates an Installer for env.
func NewInstaller(runner Runner, env *venv.Env) *Installer {
	return &Installer{
		runner: runner,
		env:    env,
		exists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
	}
}

// command picks the pip executable when it exists, falling back to
// python -m pip.
func (i *Installer) command(args []string) (string, []string) {
	if i.exists(i.env.Pip()) {
		return i.env.Pip(), args
	}
	return i.env.Python(), append([]string{"-m", "pip"}, args...)
}

// Install requests the given package specs with upgrade semantics. A failed
// call is retried exactly once with identical arguments; a second failure
// is recorded and the run continues. The outcome covers the whole request.
func (i *Installer) Install(ctx context.Context, specs []string, opts Options) domain.InstallOutcome {
	args := []string{"install", "--upgrade"}
	if opts.NoDeps {
		args = append(args, "--no-deps")
	}
	args = append(args, specs...)
	if opts.IndexURL != "" {
		args = append(args, "--index-url", opts.IndexURL)
	}

	outcome := domain.OutcomeInstalled
	name, argv := i.command(args)
	if err := i.runner.Run(ctx, name, argv...); err != nil {
		if i.OnRetry != nil {
			i.OnRetry(label(specs), err)
		}
		if err := i.runner.Run(ctx, name, argv...); err != nil {
			outcome = domain.OutcomeFailed
		} else {
			outcome = domain.OutcomeInstalledAfterRetry
		}
	}

	i.results = append(i.results, domain.PackageResult{Spec: label(specs), Outcome: outcome})
	return outcome
}

// InstallOptional requests an optional component with the same retry
// policy but without touching the outcome log: a failure here must never
// surface as a failed package, only as a warning at the call site.
func (i *Installer) InstallOptional(ctx context.Context, specs []string, opts Options) error {
	args := []string{"install", "--upgrade"}
	if opts.NoDeps {
		args = append(args, "--no-deps")
	}
	args = append(args, specs...)
	if opts.IndexURL != "" {
		args = append(args, "--index-url", opts.IndexURL)
	}

	name, argv := i.command(args)
	if err := i.runner.Run(ctx, name, argv...); err != nil {
		if i.OnRetry != nil {
			i.OnRetry(label(specs), err)
		}
		return i.runner.Run(ctx, name, argv...)
	}
	return nil
}

// Results returns the outcome log in install order.
func (i *Installer) Results() []domain.PackageResult {
	return i.results
}

// Failed returns the specs whose installs failed even after retry.
func (i *Installer) Failed() []string {
	var failed []string
	for _, r := range i.results {
		if r.Outcome == domain.OutcomeFailed {
			failed = append(failed, r.Spec)
		}
	}
	return failed
}

func label(specs []string) string {
	if len(specs) == 1 {
		return specs[0]
	}
	out := ""
	for idx, s := range specs {
		if idx > 0 {
			out += " "
		}
		out += s
	}
	return out
}

// Verify probes each package for importability inside the environment by
// delegating to the environment's python, not the host process. Failures
// are aggregated, never fatal: this surfaces what the tolerant installer
// hid.
func (i *Installer) Verify(ctx context.Context, packages []string) []domain.VerificationRecord {
	records := make([]domain.VerificationRecord, 0, len(packages))
	for _, pkg := range packages {
		err := i.runner.Run(ctx, i.env.Python(), "-c", fmt.Sprintf("import %s", pkg))
		records = append(records, domain.VerificationRecord{Package: pkg, OK: err == nil})
	}
	return records
}
