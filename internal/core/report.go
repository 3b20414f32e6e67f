package core

import (
	"fmt"
	"strings"

	"github.com/ProdeusUnity/Easy-Chatterbox/internal/domain"
)

// Render formats the final run summary. Pure formatting; every decision
// was made earlier. Failed installs and failed import probes are listed
// separately so a tolerated install failure cannot masquerade as a clean
// run.
func Render(s domain.RunSummary) string {
	var b strings.Builder

	if len(s.FailedInstalls) == 0 && len(s.FailedVerifications) == 0 {
		b.WriteString("All components installed successfully!\n\n")
	} else {
		b.WriteString("Installation completed with warnings\n")
		if len(s.FailedInstalls) > 0 {
			fmt.Fprintf(&b, "Packages that failed to install: %s\n", strings.Join(s.FailedInstalls, ", "))
		}
		if len(s.FailedVerifications) > 0 {
			fmt.Fprintf(&b, "Packages that failed the import check: %s\n", strings.Join(s.FailedVerifications, ", "))
		}
		b.WriteString("You may need to install these manually later.\n\n")
	}

	b.WriteString("Configuration:\n")
	fmt.Fprintf(&b, "  • Model: Chatterbox %s\n", s.Variant.Product)
	fmt.Fprintf(&b, "  • Backend: %s\n", s.Variant.Backend)
	fmt.Fprintf(&b, "  • Model files: %s\n", s.ModelDir)
	if s.PriorRuns > 0 {
		fmt.Fprintf(&b, "  • Previous installer runs: %d\n", s.PriorRuns)
	}
	b.WriteString("\n")

	b.WriteString("To use Chatterbox-TTS:\n")
	if s.Host.OS == domain.OSWindows {
		fmt.Fprintf(&b, "  %s\n", s.ActivatePath)
	} else {
		fmt.Fprintf(&b, "  source %s\n", s.ActivatePath)
	}
	b.WriteString("  python your_script.py\n\n")

	if s.Variant.Backend == domain.BackendCPU {
		b.WriteString("Note: Using CPU backend. Use device='cpu' in your scripts.\n\n")
	}

	b.WriteString("For audio issues, install ffmpeg:\n")
	if s.Host.OS == domain.OSWindows {
		b.WriteString("  Download from: https://ffmpeg.org/download.html\n")
	} else {
		b.WriteString("  sudo apt-get install ffmpeg\n")
	}

	return b.String()
}
