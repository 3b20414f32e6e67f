package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ProdeusUnity/Easy-Chatterbox/internal/assets"
	"github.com/ProdeusUnity/Easy-Chatterbox/internal/core"
	"github.com/ProdeusUnity/Easy-Chatterbox/internal/domain"
	"github.com/ProdeusUnity/Easy-Chatterbox/internal/pip"
	"github.com/ProdeusUnity/Easy-Chatterbox/internal/probe"
	"github.com/ProdeusUnity/Easy-Chatterbox/internal/tui"
	"github.com/ProdeusUnity/Easy-Chatterbox/internal/ui"
	"github.com/ProdeusUnity/Easy-Chatterbox/internal/venv"
)

var version = "7.0.0"

const (
	envName      = "Chatterbox_TTS"
	modelDirName = "Model"
	journalName  = "installer.db"
)

// rootCmd runs the whole menu-driven flow; there are no flags.
var rootCmd = &cobra.Command{
	Use:   "chatterbox-installer",
	Short: "Interactive installer for Chatterbox-TTS",
	Long: `chatterbox-installer sets up a ready-to-use Chatterbox-TTS environment:
it asks which model and compute backend you want, creates an isolated
python environment, installs the pinned dependency chain, downloads or
copies the model files, and verifies the result.`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true, // Runtime errors should not print usage
	SilenceErrors: true, // We handle error output in Execute()
	RunE:          runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}

	console := ui.New(os.Stdout)

	orch := &core.Orchestrator{
		Console: console,
		Chooser: tui.Chooser{},
		Prober:  probe.New(),
		Venv:    venv.NewManager(),
		Stage: assets.NewStage(assets.NewFetcher(nil), func(p assets.FetchProgress) {
			if p.TotalBytes > 0 {
				fmt.Printf("\r  %3.0f%%", p.Percentage)
			}
		}),
		NewInstaller: func(env *venv.Env) *pip.Installer {
			return pip.NewInstaller(pip.ExecRunner{}, env)
		},
		WorkDir:     workDir,
		EnvRoot:     filepath.Join(workDir, envName),
		ModelDir:    filepath.Join(workDir, modelDirName),
		JournalPath: filepath.Join(workDir, journalName),
	}

	return orch.Run(context.Background())
}

// Execute runs the installer. Exit codes: 0 on completion or user
// cancellation, 1 on fatal errors.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	if errors.Is(err, domain.ErrCancelled) {
		fmt.Println("\nInstallation cancelled.")
		os.Exit(0)
	}

	console := ui.New(os.Stderr)
	console.Error("Installation failed: %v", err)
	console.Hint(domain.HintOf(err))
	os.Exit(1)
}
