package domain

// OSFamily is the coarse host classification the installer cares about.
type OSFamily int

const (
	OSUnsupported OSFamily = iota
	OSLinux
	OSWindows
)

func (o OSFamily) String() string {
	switch o {
	case OSLinux:
		return "Linux"
	case OSWindows:
		return "Windows"
	default:
		return "Unsupported"
	}
}

// HostProfile is computed once at startup and read-only afterwards.
// RuntimeTag is the python ABI tag (cp310, cp311, ...) of the interpreter
// that will own the virtual environment; it selects prebuilt wheel URLs.
type HostProfile struct {
	OS         OSFamily
	RuntimeTag string
}
