package assets_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ProdeusUnity/Easy-Chatterbox/internal/assets"
	"github.com/ProdeusUnity/Easy-Chatterbox/internal/domain"
	"github.com/ProdeusUnity/Easy-Chatterbox/internal/manifest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingStage(t *testing.T) (*assets.Stage, *int, *int) {
	t.Helper()
	fetches := 0
	copies := 0

	stage := &assets.Stage{
		Fetch: func(ctx context.Context, url, destPath string) error {
			fetches++
			return os.WriteFile(destPath, []byte("fetched"), 0644)
		},
		Copy: func(src, dst string) error {
			copies++
			return assets.CopyFile(src, dst)
		},
	}
	return stage, &fetches, &copies
}

func TestStage_Acquire_DownloadsAll(t *testing.T) {
	stage, fetches, _ := countingStage(t)
	modelDir := filepath.Join(t.TempDir(), "Model")
	entries := manifest.For(domain.ProductOriginal)

	err := stage.Acquire(context.Background(), entries, modelDir, domain.Variant{})
	require.NoError(t, err)
	assert.Equal(t, 4, *fetches)

	for _, name := range manifest.Expected(domain.ProductOriginal) {
		_, err := os.Stat(filepath.Join(modelDir, name))
		assert.NoError(t, err, "expected %s in model dir", name)
	}
}

// Re-running acquisition when everything is present must perform zero
// fetches and still succeed.
func TestStage_Acquire_Idempotent(t *testing.T) {
	stage, fetches, copies := countingStage(t)
	modelDir := filepath.Join(t.TempDir(), "Model")
	entries := manifest.For(domain.ProductOriginal)

	require.NoError(t, stage.Acquire(context.Background(), entries, modelDir, domain.Variant{}))
	require.Equal(t, 4, *fetches)

	var skipped []string
	stage.OnSkip = func(name string) { skipped = append(skipped, name) }

	require.NoError(t, stage.Acquire(context.Background(), entries, modelDir, domain.Variant{}))
	assert.Equal(t, 4, *fetches, "no additional fetches on re-run")
	assert.Zero(t, *copies)
	assert.Len(t, skipped, 4)
}

func TestStage_Acquire_PartialResume(t *testing.T) {
	stage, fetches, _ := countingStage(t)
	modelDir := filepath.Join(t.TempDir(), "Model")
	entries := manifest.For(domain.ProductOriginal)

	// Two of four already present
	require.NoError(t, os.MkdirAll(modelDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(modelDir, entries[0].Filename), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(modelDir, entries[1].Filename), []byte("x"), 0644))

	require.NoError(t, stage.Acquire(context.Background(), entries, modelDir, domain.Variant{}))
	assert.Equal(t, 2, *fetches)
}

func TestStage_Acquire_FetchFailureIsFatal(t *testing.T) {
	stage := &assets.Stage{
		Fetch: func(ctx context.Context, url, destPath string) error {
			return context.DeadlineExceeded
		},
	}

	err := stage.Acquire(context.Background(), manifest.For(domain.ProductOriginal),
		filepath.Join(t.TempDir(), "Model"), domain.Variant{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDownloadFailed)
	assert.True(t, domain.IsFatal(err))
}

func TestStage_Acquire_UserSuppliedCopies(t *testing.T) {
	stage, fetches, copies := countingStage(t)
	sourceDir := t.TempDir()
	modelDir := filepath.Join(t.TempDir(), "Model")
	entries := manifest.For(domain.ProductOriginal)

	for _, e := range entries {
		require.NoError(t, os.WriteFile(filepath.Join(sourceDir, e.Filename), []byte("w"), 0644))
	}

	variant := domain.Variant{Supply: domain.SupplyUser, SourceDir: sourceDir}
	require.NoError(t, stage.Acquire(context.Background(), entries, modelDir, variant))

	assert.Zero(t, *fetches)
	assert.Equal(t, 4, *copies)
}

func TestStage_Acquire_UserSuppliedSkipsAbsentSource(t *testing.T) {
	stage, _, copies := countingStage(t)
	sourceDir := t.TempDir()
	modelDir := filepath.Join(t.TempDir(), "Model")
	entries := manifest.For(domain.ProductOriginal)

	// Only one source file exists
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, entries[0].Filename), []byte("w"), 0644))

	variant := domain.Variant{Supply: domain.SupplyUser, SourceDir: sourceDir}
	require.NoError(t, stage.Acquire(context.Background(), entries, modelDir, variant))
	assert.Equal(t, 1, *copies)
}
