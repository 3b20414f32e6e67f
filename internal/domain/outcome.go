package domain

// InstallOutcome is the per-package result of the tolerant installer.
type InstallOutcome int

const (
	OutcomeInstalled InstallOutcome = iota
	OutcomeInstalledAfterRetry
	OutcomeFailed
)

func (o InstallOutcome) String() string {
	switch o {
	case OutcomeInstalledAfterRetry:
		return "installed-after-retry"
	case OutcomeFailed:
		return "failed"
	default:
		return "installed"
	}
}

// PackageResult records how a single pip install ended. A Failed result
// never aborts the run; it is surfaced in the summary instead.
type PackageResult struct {
	Spec    string
	Outcome InstallOutcome
}

// VerificationRecord is the result of one import probe inside the virtual
// environment. Informational only.
type VerificationRecord struct {
	Package string
	OK      bool
}

// RunSummary is everything the final report needs. Pure data; the reporter
// makes no decisions.
type RunSummary struct {
	Variant             Variant
	Host                HostProfile
	ModelDir            string
	ActivatePath        string
	FailedInstalls      []string
	FailedVerifications []string
	PriorRuns           int
}
