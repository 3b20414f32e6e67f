// Package core runs the installation flow end to end: probe, menus,
// environment, packages, model files, verification, summary.
package core

import (
	"context"
	"strings"

	"github.com/ProdeusUnity/Easy-Chatterbox/internal/assets"
	"github.com/ProdeusUnity/Easy-Chatterbox/internal/domain"
	"github.com/ProdeusUnity/Easy-Chatterbox/internal/manifest"
	"github.com/ProdeusUnity/Easy-Chatterbox/internal/pip"
	"github.com/ProdeusUnity/Easy-Chatterbox/internal/probe"
	"github.com/ProdeusUnity/Easy-Chatterbox/internal/storage/journal"
	"github.com/ProdeusUnity/Easy-Chatterbox/internal/storage/state"
	"github.com/ProdeusUnity/Easy-Chatterbox/internal/ui"
	"github.com/ProdeusUnity/Easy-Chatterbox/internal/venv"
)

// Chooser collects user decisions. The tui package provides the real
// implementation; tests script one.
type Chooser interface {
	Choose(title string, options []string) (int, error)
	Input(label string) (string, error)
	Confirm(label string) (bool, error)
}

// Orchestrator wires the installation stages together and owns the run
// state machine. Stages are strictly sequential; the only control-flow
// oddity is the re-exec boundary inside runEnvironment.
type Orchestrator struct {
	Console      *ui.Console
	Chooser      Chooser
	Prober       *probe.Prober
	Venv         *venv.Manager
	Stage        *assets.Stage
	NewInstaller func(env *venv.Env) *pip.Installer

	WorkDir     string // where carried state and the journal live
	EnvRoot     string // virtual environment root
	ModelDir    string // destination for model files
	JournalPath string // empty disables the run journal
}

var modelOptions = []string{
	"Chatterbox (Original): Zero-shot cloning, Multiple Languages, Slower",
	"Chatterbox (Turbo): Paralinguistic Tags ([laugh]), Lower Compute and VRAM, Faster, May reduce quality",
	"Chatterbox (Original, User Supplied): Same as Option 1, but you will supply the model files",
	"Chatterbox (Turbo, User Supplied): Same as Option 2, but you will supply files",
}

var backendOptions = []string{
	"CPU: Choose this if you do not have a GPU or want to only use your CPU, CPU generation may be very slow on older/low power CPUs",
	"AMD (ROCm): Linux Only, AMD RX 6000 Series and newer",
	"Nvidia (CUDA): RTX 30 and newer only",
}

// Run executes the whole flow. It returns domain.ErrCancelled on user
// cancellation and a fatal Fault on unrecoverable conditions; package
// install and verification failures are reported, not returned.
func (o *Orchestrator) Run(ctx context.Context) error {
	host, err := o.Prober.Probe()
	if err != nil {
		return err
	}

	envHandle, err := venv.New(o.EnvRoot, host.OS)
	if err != nil {
		return err
	}

	o.Console.Header("Chatterbox-TTS Installer")
	o.Console.Printf("Detected OS: %s\n", host.OS)

	variant, err := o.selectVariant(host, envHandle)
	if err != nil {
		return err
	}

	// Persist the selection before the environment switch: the process
	// image does not survive it.
	if err := state.FromVariant(variant).Save(o.WorkDir); err != nil {
		return domain.Fatal(err, "Check that the working directory is writable.")
	}

	env, err := o.runEnvironment(host)
	if err != nil {
		return err
	}
	// From here on the process runs inside the environment.

	jr, runID := o.openJournal(variant, host)
	if jr != nil {
		defer jr.Close()
	}

	installer := o.NewInstaller(env)
	installer.OnRetry = func(spec string, err error) {
		o.Console.Warn("Install failed: %v", err)
		o.Console.Warn("Retrying once...")
	}

	o.runTorch(ctx, installer, variant, host)
	o.runDependencies(ctx, installer)

	if err := o.runAssets(ctx, variant); err != nil {
		o.finishJournal(jr, runID, installer, nil, false)
		return err
	}

	records := o.runVerification(ctx, installer)

	o.report(env, variant, host, installer, records, jr)
	o.finishJournal(jr, runID, installer, records, true)

	if err := state.Clear(o.WorkDir); err != nil {
		o.Console.Warn("Could not remove carried state: %v", err)
	}

	return nil
}

// selectVariant collects the variant through the menus, or restores it from
// carried state when this process is the re-exec'd half of the run.
func (o *Orchestrator) selectVariant(host domain.HostProfile, envHandle *venv.Env) (domain.Variant, error) {
	if o.Venv.Inside(envHandle) {
		if st, err := state.Load(o.WorkDir); err == nil && st != nil {
			if v, err := st.Variant(); err == nil {
				o.Console.Success("Restored configuration: %s model, %s backend", v.Product, v.Backend)
				return v, nil
			}
		}
		// Carried state is missing or corrupt; fall through and ask again.
	}

	var variant domain.Variant

	o.Console.Header("Step 1: Model Selection")
	o.Console.Println("Welcome! Ready to Install Chatterbox? Start by entering an option below:")

	choice, err := o.Chooser.Choose("Available Models", modelOptions)
	if err != nil {
		return variant, err
	}

	if choice == 2 || choice == 4 {
		variant.Product = domain.ProductTurbo
	}
	if choice == 3 || choice == 4 {
		variant.Supply = domain.SupplyUser
	}

	if variant.Supply == domain.SupplyUser {
		dir, err := o.collectModelDir(variant.Product)
		if err != nil {
			return variant, err
		}
		variant.SourceDir = dir
	} else {
		o.Console.Printf("\nYou selected %s model (download from repository).\n", variant.Product)
		o.Console.Warn("These files are large and may incur data charges if you don't have an unlimited plan.")
		ok, err := o.Chooser.Confirm("Continue?")
		if err != nil {
			return variant, err
		}
		if !ok {
			return variant, domain.ErrCancelled
		}
	}

	o.Console.Header("Step 2: Backend Selection")
	o.Console.Println("Great! Now, you'll need to choose your backend:")

	backend, err := o.Chooser.Choose("Backends", backendOptions)
	if err != nil {
		return variant, err
	}
	variant.Backend = domain.Backend(backend - 1)

	if err := variant.Validate(host); err != nil {
		return variant, err
	}
	o.Console.Printf("\nYou selected: %s\n", variant.Backend)

	return variant, nil
}

// collectModelDir loops until the user supplies a directory containing
// every required file, or abandons, which counts as cancellation.
func (o *Orchestrator) collectModelDir(kind domain.ProductKind) (string, error) {
	expected := manifest.Expected(kind)

	o.Console.Printf("\nYou selected User Supplied %s model.\n", kind)
	o.Console.Println("\nRequired files:")
	for _, name := range expected {
		o.Console.Printf("  - %s\n", name)
	}

	for {
		raw, err := o.Chooser.Input("Enter the full path to your model folder")
		if err != nil {
			return "", err
		}
		dir := assets.CleanPath(raw)

		missing, err := assets.Validate(dir, expected)
		if err == nil && len(missing) == 0 {
			o.Console.Success("All files present")
			return dir, nil
		}

		if err != nil {
			o.Console.Error("%v", err)
		} else {
			o.Console.Error("Missing files: %s", strings.Join(missing, ", "))
		}

		retry, err := o.Chooser.Confirm("Try again?")
		if err != nil {
			return "", err
		}
		if !retry {
			return "", domain.ErrCancelled
		}
	}
}

// runEnvironment ensures the virtual environment exists and crosses the
// re-exec boundary. When a re-exec is needed this call never returns in
// this process; the replacement process reaches the same call and passes
// straight through.
func (o *Orchestrator) runEnvironment(host domain.HostProfile) (*venv.Env, error) {
	o.Console.Header("Step 3: Environment Setup")

	env, created, err := o.Venv.Ensure(o.EnvRoot, host.OS, probe.HostPython(host.OS))
	if err != nil {
		return nil, err
	}
	if created {
		o.Console.Success("Virtual environment created")
	} else {
		o.Console.Success("Virtual environment already exists")
	}
	if !o.Venv.Inside(env) {
		o.Console.Println("Activating virtual environment...")
	}
	if err := o.Venv.Enter(env); err != nil {
		return nil, err
	}

	return env, nil
}

func (o *Orchestrator) runTorch(ctx context.Context, installer *pip.Installer, variant domain.Variant, host domain.HostProfile) {
	o.Console.Header("Step 4: Installing PyTorch")
	o.Console.Printf("Installing %s PyTorch...\n", variant.Backend)

	installer.Install(ctx, pip.TorchSpecs(), pip.Options{IndexURL: pip.TorchIndexURL(variant.Backend)})

	if variant.Backend == domain.BackendCUDA {
		o.Console.Println("\nInstalling flash-attention for RTX 30+ series...")
		url := pip.FlashAttnURL(host.OS, host.RuntimeTag)
		if err := installer.InstallOptional(ctx, []string{url}, pip.Options{}); err != nil {
			o.Console.Warn("flash-attention installation failed: %v", err)
			o.Console.Warn("Continuing without flash-attention (may affect performance)")
		} else {
			o.Console.Success("flash-attention installed")
		}
	}
}

func (o *Orchestrator) runDependencies(ctx context.Context, installer *pip.Installer) {
	o.Console.Header("Step 5: Installing Chatterbox-TTS Dependencies")

	o.Console.Println("Installing chatterbox-tts (without dependencies)...")
	installer.Install(ctx, []string{pip.ChatterboxSpec}, pip.Options{NoDeps: true})

	o.Console.Println("\nInstalling core dependencies...")
	for _, dep := range pip.CoreDependencies {
		o.Console.Printf("Installing %s...\n", dep)
		if installer.Install(ctx, []string{dep}, pip.Options{}) == domain.OutcomeFailed {
			o.Console.Warn("Failed to install %s", dep)
			o.Console.Warn("Continuing with remaining dependencies...")
		}
	}
}

func (o *Orchestrator) runAssets(ctx context.Context, variant domain.Variant) error {
	o.Console.Header("Step 6: Setting Up Model Files")

	if variant.Supply == domain.SupplyUser {
		o.Console.Printf("Copying model files from %s...\n", variant.SourceDir)
	} else {
		o.Console.Println("Downloading model files...")
	}

	o.Stage.OnSkip = func(name string) {
		o.Console.Success("%s already exists, skipping", name)
	}
	o.Stage.OnDone = func(name string) {
		o.Console.Success("%s ready", name)
	}

	return o.Stage.Acquire(ctx, manifest.For(variant.Product), o.ModelDir, variant)
}

func (o *Orchestrator) runVerification(ctx context.Context, installer *pip.Installer) []domain.VerificationRecord {
	o.Console.Header("Step 7: Installation Verification")
	o.Console.Println("Verifying Python packages...")

	records := installer.Verify(ctx, pip.CriticalPackages)
	for _, r := range records {
		if r.OK {
			o.Console.Success("%s", r.Package)
		} else {
			o.Console.Error("%s", r.Package)
		}
	}
	return records
}

func (o *Orchestrator) report(env *venv.Env, variant domain.Variant, host domain.HostProfile, installer *pip.Installer, records []domain.VerificationRecord, jr *journal.Journal) {
	summary := domain.RunSummary{
		Variant:        variant,
		Host:           host,
		ModelDir:       o.ModelDir,
		ActivatePath:   env.Activate(),
		FailedInstalls: installer.Failed(),
	}
	for _, r := range records {
		if !r.OK {
			summary.FailedVerifications = append(summary.FailedVerifications, r.Package)
		}
	}
	if jr != nil {
		if n, err := jr.RunCount(); err == nil {
			summary.PriorRuns = n - 1
		}
	}

	o.Console.Header("Installation Complete!")
	o.Console.Printf("%s", Render(summary))
}

// openJournal opens the run journal and records the run start. Journal
// trouble is only worth a warning.
func (o *Orchestrator) openJournal(variant domain.Variant, host domain.HostProfile) (*journal.Journal, int64) {
	if o.JournalPath == "" {
		return nil, 0
	}

	jr, err := journal.Open(o.JournalPath)
	if err != nil {
		o.Console.Warn("Run journal unavailable: %v", err)
		return nil, 0
	}

	runID, err := jr.BeginRun(variant, host)
	if err != nil {
		o.Console.Warn("Run journal unavailable: %v", err)
		jr.Close()
		return nil, 0
	}
	return jr, runID
}

func (o *Orchestrator) finishJournal(jr *journal.Journal, runID int64, installer *pip.Installer, records []domain.VerificationRecord, completed bool) {
	if jr == nil {
		return
	}

	var failed error
	for _, r := range installer.Results() {
		if err := jr.RecordInstall(runID, r); err != nil {
			failed = err
		}
	}
	for _, r := range records {
		if err := jr.RecordVerification(runID, r); err != nil {
			failed = err
		}
	}
	if err := jr.FinishRun(runID, completed); err != nil {
		failed = err
	}
	if failed != nil {
		o.Console.Warn("Run journal incomplete: %v", failed)
	}
}
