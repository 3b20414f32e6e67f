// Package state persists the chosen configuration across the re-exec
// boundary. The process image is replaced when entering the virtual
// environment, so everything decided in the menus must be re-read from
// disk on the other side.
package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ProdeusUnity/Easy-Chatterbox/internal/domain"
)

const fileName = ".chatterbox-install.yaml"

// State is the on-disk form of the variant selection.
type State struct {
	Model     string `yaml:"model"`
	Supply    string `yaml:"supply_mode"`
	Backend   string `yaml:"backend"`
	SourceDir string `yaml:"source_dir,omitempty"`
}

// FromVariant converts a selection to its persistable form.
func FromVariant(v domain.Variant) *State {
	return &State{
		Model:     v.Product.String(),
		Supply:    v.Supply.String(),
		Backend:   v.Backend.String(),
		SourceDir: v.SourceDir,
	}
}

// Variant converts the stored state back to a selection.
func (s *State) Variant() (domain.Variant, error) {
	var v domain.Variant
	var err error

	if v.Product, err = domain.ParseProductKind(s.Model); err != nil {
		return v, err
	}
	if v.Supply, err = domain.ParseSupplyMode(s.Supply); err != nil {
		return v, err
	}
	if v.Backend, err = domain.ParseBackend(s.Backend); err != nil {
		return v, err
	}
	v.SourceDir = s.SourceDir
	return v, nil
}

// Load reads the carried state from dir. A missing file is not an error;
// it returns (nil, nil).
func Load(dir string) (*State, error) {
	data, err := os.ReadFile(filepath.Join(dir, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading carried state: %w", err)
	}

	s := &State{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing carried state: %w", err)
	}
	return s, nil
}

// Save writes the carried state into dir.
func (s *State) Save(dir string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling carried state: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, fileName), data, 0644); err != nil {
		return fmt.Errorf("writing carried state: %w", err)
	}
	return nil
}

// Clear removes the carried state from dir. Absence is not an error.
func Clear(dir string) error {
	err := os.Remove(filepath.Join(dir, fileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing carried state: %w", err)
	}
	return nil
}
