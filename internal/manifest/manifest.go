// Package manifest holds the static asset tables for each Chatterbox model
// family: where to fetch each file from, and which filenames must exist in
// the model directory afterwards.
package manifest

import (
	"net/url"
	"path"
	"strings"

	"github.com/ProdeusUnity/Easy-Chatterbox/internal/domain"
)

// Entry pairs a remote locator with the local filename it resolves to.
type Entry struct {
	URL      string
	Filename string
}

var originalURLs = []string{
	"https://huggingface.co/ResembleAI/chatterbox/resolve/main/t3_cfg.safetensors?download=true",
	"https://huggingface.co/ResembleAI/chatterbox/resolve/main/s3gen.safetensors?download=true",
	"https://huggingface.co/ResembleAI/chatterbox/resolve/main/tokenizer.json?download=true",
	"https://huggingface.co/ResembleAI/chatterbox/resolve/main/ve.safetensors?download=true",
}

var turboURLs = []string{
	"https://huggingface.co/ResembleAI/chatterbox-turbo/resolve/main/s3gen.safetensors?download=true",
	"https://huggingface.co/ResembleAI/chatterbox-turbo/resolve/main/conds.pt?download=true",
	"https://huggingface.co/ResembleAI/chatterbox-turbo/resolve/main/added_tokens.json?download=true",
	"https://huggingface.co/ResembleAI/chatterbox-turbo/resolve/main/s3gen_meanflow.safetensors?download=true",
	"https://huggingface.co/ResembleAI/chatterbox-turbo/resolve/main/special_tokens_map.json?download=true",
	"https://huggingface.co/ResembleAI/chatterbox-turbo/resolve/main/t3_turbo_v1.safetensors?download=true",
	"https://huggingface.co/ResembleAI/chatterbox-turbo/resolve/main/t3_turbo_v1.yaml?download=true",
	"https://huggingface.co/ResembleAI/chatterbox-turbo/resolve/main/tokenizer_config.json?download=true",
	"https://huggingface.co/ResembleAI/chatterbox-turbo/resolve/main/ve.safetensors?download=true",
	"https://huggingface.co/ResembleAI/chatterbox-turbo/resolve/main/vocab.json?download=true",
	"https://huggingface.co/ResembleAI/chatterbox-turbo/resolve/main/merges.txt?download=true",
}

// FilenameFromURL derives the local filename for a locator: the final path
// segment with any query string discarded.
func FilenameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		// Fall back to plain string handling for unparseable locators.
		s := rawURL
		if i := strings.IndexByte(s, '?'); i >= 0 {
			s = s[:i]
		}
		return path.Base(s)
	}
	return path.Base(u.Path)
}

func build(urls []string) []Entry {
	entries := make([]Entry, len(urls))
	for i, u := range urls {
		entries[i] = Entry{URL: u, Filename: FilenameFromURL(u)}
	}
	return entries
}

// For returns the manifest entries for a model family.
func For(kind domain.ProductKind) []Entry {
	if kind == domain.ProductTurbo {
		return build(turboURLs)
	}
	return build(originalURLs)
}

// Expected returns the filenames that must exist in the model directory
// after acquisition, in manifest order.
func Expected(kind domain.ProductKind) []string {
	entries := For(kind)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Filename
	}
	return names
}
