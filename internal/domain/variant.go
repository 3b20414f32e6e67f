package domain

import "fmt"

// ProductKind identifies which Chatterbox model family to install.
type ProductKind int

const (
	ProductOriginal ProductKind = iota
	ProductTurbo
)

func (p ProductKind) String() string {
	switch p {
	case ProductTurbo:
		return "Turbo"
	default:
		return "Original"
	}
}

// ParseProductKind converts a stored string back to a ProductKind.
func ParseProductKind(s string) (ProductKind, error) {
	switch s {
	case "Original":
		return ProductOriginal, nil
	case "Turbo":
		return ProductTurbo, nil
	}
	return ProductOriginal, fmt.Errorf("unknown model kind %q", s)
}

// SupplyMode says where the model files come from.
type SupplyMode int

const (
	SupplyDownload SupplyMode = iota
	SupplyUser
)

func (s SupplyMode) String() string {
	switch s {
	case SupplyUser:
		return "user-supplied"
	default:
		return "download"
	}
}

// ParseSupplyMode converts a stored string back to a SupplyMode.
func ParseSupplyMode(s string) (SupplyMode, error) {
	switch s {
	case "download":
		return SupplyDownload, nil
	case "user-supplied":
		return SupplyUser, nil
	}
	return SupplyDownload, fmt.Errorf("unknown supply mode %q", s)
}

// Backend identifies the compute backend the torch stack is built for.
type Backend int

const (
	BackendCPU Backend = iota
	BackendROCm
	BackendCUDA
)

func (b Backend) String() string {
	switch b {
	case BackendROCm:
		return "AMD (ROCm)"
	case BackendCUDA:
		return "Nvidia (CUDA)"
	default:
		return "CPU"
	}
}

// ParseBackend converts a stored string back to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch s {
	case "CPU":
		return BackendCPU, nil
	case "AMD (ROCm)":
		return BackendROCm, nil
	case "Nvidia (CUDA)":
		return BackendCUDA, nil
	}
	return BackendCPU, fmt.Errorf("unknown backend %q", s)
}

// Variant is the configuration chosen once per run. It is immutable after
// the menus complete; SourceDir is set only for user-supplied installs.
type Variant struct {
	Product   ProductKind
	Supply    SupplyMode
	Backend   Backend
	SourceDir string
}

// Validate rejects backend/OS pairings that can never work. ROCm wheels
// exist for Linux only.
func (v Variant) Validate(host HostProfile) error {
	if v.Backend == BackendROCm && host.OS != OSLinux {
		return &Fault{
			Severity: SeverityFatal,
			Err:      fmt.Errorf("%w: AMD ROCm is only supported on Linux", ErrBackendUnsupported),
			Hint:     "Please restart and choose a different backend.",
		}
	}
	return nil
}
