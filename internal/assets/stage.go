// Package assets acquires and validates the model files: downloading from
// the manifest locators, or copying from a user-supplied directory.
package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ProdeusUnity/Easy-Chatterbox/internal/domain"
	"github.com/ProdeusUnity/Easy-Chatterbox/internal/manifest"
)

// FetchFunc retrieves url into destPath. Wired to Fetcher.Fetch in
// production; tests substitute a counter.
type FetchFunc func(ctx context.Context, url, destPath string) error

// Stage performs asset acquisition for one run. Notification hooks are
// optional.
type Stage struct {
	Fetch  FetchFunc
	Copy   func(src, dst string) error
	OnSkip func(filename string)
	OnDone func(filename string)
}

// NewStage returns a Stage backed by the real fetcher and copier.
func NewStage(fetcher *Fetcher, progressFn ProgressFunc) *Stage {
	return &Stage{
		Fetch: func(ctx context.Context, url, destPath string) error {
			_, err := fetcher.Fetch(ctx, url, destPath, progressFn)
			return err
		},
		Copy: CopyFile,
	}
}

// Acquire brings every manifest entry into modelDir. Entries already
// present are skipped, so re-running after a partial failure only touches
// what is missing. A failed fetch is fatal: an incomplete model directory
// makes the install worthless.
func (s *Stage) Acquire(ctx context.Context, entries []manifest.Entry, modelDir string, variant domain.Variant) error {
	if err := os.MkdirAll(modelDir, 0755); err != nil {
		return fmt.Errorf("creating model dir: %w", err)
	}

	for _, entry := range entries {
		dest := filepath.Join(modelDir, entry.Filename)
		if _, err := os.Stat(dest); err == nil {
			s.skip(entry.Filename)
			continue
		}

		if variant.Supply == domain.SupplyUser {
			src := filepath.Join(variant.SourceDir, entry.Filename)
			if _, err := os.Stat(src); err != nil {
				// Validation already passed, so an absent source file was
				// deliberate; leave it out rather than failing the copy.
				s.skip(entry.Filename)
				continue
			}
			if err := s.Copy(src, dest); err != nil {
				return domain.Fatal(
					fmt.Errorf("copying %s: %w", entry.Filename, err),
					"Check that the source folder is readable and has enough disk space.",
				)
			}
		} else {
			if err := s.Fetch(ctx, entry.URL, dest); err != nil {
				return domain.Fatal(
					fmt.Errorf("%w: %s: %v", domain.ErrDownloadFailed, entry.Filename, err),
					"Check your network connection and re-run the installer; finished files are not downloaded again.",
				)
			}
		}

		s.done(entry.Filename)
	}

	return nil
}

func (s *Stage) skip(name string) {
	if s.OnSkip != nil {
		s.OnSkip(name)
	}
}

func (s *Stage) done(name string) {
	if s.OnDone != nil {
		s.OnDone(name)
	}
}
