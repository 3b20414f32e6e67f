package manifest_test

import (
	"testing"

	"github.com/ProdeusUnity/Easy-Chatterbox/internal/domain"
	"github.com/ProdeusUnity/Easy-Chatterbox/internal/manifest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilenameFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://huggingface.co/ResembleAI/chatterbox/resolve/main/t3_cfg.safetensors?download=true", "t3_cfg.safetensors"},
		{"https://example.com/a/b/vocab.json", "vocab.json"},
		{"https://example.com/merges.txt?x=1&y=2", "merges.txt"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, manifest.FilenameFromURL(tt.url))
	}
}

func TestFor_Original(t *testing.T) {
	entries := manifest.For(domain.ProductOriginal)
	require.Len(t, entries, 4)

	assert.Equal(t, []string{
		"t3_cfg.safetensors", "s3gen.safetensors", "tokenizer.json", "ve.safetensors",
	}, manifest.Expected(domain.ProductOriginal))
}

func TestFor_Turbo(t *testing.T) {
	entries := manifest.For(domain.ProductTurbo)
	require.Len(t, entries, 11)

	expected := manifest.Expected(domain.ProductTurbo)
	assert.Contains(t, expected, "vocab.json")
	assert.Contains(t, expected, "t3_turbo_v1.safetensors")
	assert.Contains(t, expected, "merges.txt")
}

// Each locator must resolve to exactly its paired filename.
func TestFor_LocatorFilenameCorrespondence(t *testing.T) {
	for _, kind := range []domain.ProductKind{domain.ProductOriginal, domain.ProductTurbo} {
		for _, entry := range manifest.For(kind) {
			assert.Equal(t, manifest.FilenameFromURL(entry.URL), entry.Filename)
			assert.NotEmpty(t, entry.Filename)
		}
	}
}
