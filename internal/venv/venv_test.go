package venv_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ProdeusUnity/Easy-Chatterbox/internal/domain"
	"github.com/ProdeusUnity/Easy-Chatterbox/internal/venv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCall struct {
	name string
	args []string
}

type fakeManager struct {
	*venv.Manager
	runs    []fakeCall
	reexecs int
	marker  string
	present map[string]bool
}

func newFakeManager() *fakeManager {
	f := &fakeManager{present: map[string]bool{}}
	f.Manager = &venv.Manager{
		Run: func(name string, args ...string) error {
			f.runs = append(f.runs, fakeCall{name: name, args: args})
			return nil
		},
		Reexec: func(env *venv.Env) error {
			f.reexecs++
			// Real exec never returns; the fake just marks the process as
			// re-parented so the next call observes the inside state.
			f.marker = env.Root
			return nil
		},
		Getenv: func(key string) string {
			if key == venv.EnvVar {
				return f.marker
			}
			return ""
		},
		Exists: func(path string) bool {
			return f.present[path]
		},
	}
	return f
}

func TestEnv_PathsLinux(t *testing.T) {
	env, err := venv.New(filepath.Join(t.TempDir(), "Chatterbox_TTS"), domain.OSLinux)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(env.Root, "bin", "python"), env.Python())
	assert.Equal(t, filepath.Join(env.Root, "bin", "pip"), env.Pip())
	assert.Equal(t, filepath.Join(env.Root, "bin", "activate"), env.Activate())
}

func TestEnv_PathsWindows(t *testing.T) {
	env, err := venv.New(filepath.Join(t.TempDir(), "Chatterbox_TTS"), domain.OSWindows)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(env.Root, "Scripts", "python.exe"), env.Python())
	assert.Equal(t, filepath.Join(env.Root, "Scripts", "pip.exe"), env.Pip())
	assert.Equal(t, filepath.Join(env.Root, "Scripts", "activate.ps1"), env.Activate())
}

func TestManager_Ensure_CreatesWhenAbsent(t *testing.T) {
	f := newFakeManager()
	root := filepath.Join(t.TempDir(), "Chatterbox_TTS")

	env, created, err := f.Ensure(root, domain.OSLinux, "python3")
	require.NoError(t, err)
	assert.True(t, created)
	require.Len(t, f.runs, 1)
	assert.Equal(t, "python3", f.runs[0].name)
	assert.Equal(t, []string{"-m", "venv", env.Root}, f.runs[0].args)
}

func TestManager_Ensure_ReusesExisting(t *testing.T) {
	f := newFakeManager()
	root := filepath.Join(t.TempDir(), "Chatterbox_TTS")

	env, _, err := f.Ensure(root, domain.OSLinux, "python3")
	require.NoError(t, err)
	f.present[env.Root] = true

	_, created, err := f.Ensure(root, domain.OSLinux, "python3")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, f.runs, 1, "no second venv creation")
}

func TestManager_Ensure_CreationFailureIsFatal(t *testing.T) {
	f := newFakeManager()
	f.Manager.Run = func(name string, args ...string) error {
		return errors.New("venv module not found")
	}

	_, _, err := f.Ensure(filepath.Join(t.TempDir(), "x"), domain.OSLinux, "python3")
	require.Error(t, err)
	assert.True(t, domain.IsFatal(err))
	assert.Contains(t, domain.HintOf(err), "python3-venv")
}

// First Enter re-execs; the second call, already inside, is a no-op.
func TestManager_Enter_ReexecOnceThenNoop(t *testing.T) {
	f := newFakeManager()
	root := filepath.Join(t.TempDir(), "Chatterbox_TTS")

	env, _, err := f.Ensure(root, domain.OSLinux, "python3")
	require.NoError(t, err)
	f.present[env.Root] = true
	f.present[env.Pip()] = true

	assert.False(t, f.Inside(env))
	require.NoError(t, f.Enter(env))
	assert.Equal(t, 1, f.reexecs)

	// Second invocation is the re-exec'd process.
	assert.True(t, f.Inside(env))
	runsBefore := len(f.runs)
	require.NoError(t, f.Enter(env))
	assert.Equal(t, 1, f.reexecs, "no duplicate re-exec")
	assert.Len(t, f.runs, runsBefore, "no extra commands inside the environment")
}

func TestManager_Enter_EnsuresPipWhenMissing(t *testing.T) {
	f := newFakeManager()
	root := filepath.Join(t.TempDir(), "Chatterbox_TTS")

	env, _, err := f.Ensure(root, domain.OSLinux, "python3")
	require.NoError(t, err)
	f.marker = env.Root // already inside; pip executable absent

	require.NoError(t, f.Enter(env))
	last := f.runs[len(f.runs)-1]
	assert.Equal(t, env.Python(), last.name)
	assert.Equal(t, []string{"-m", "ensurepip", "--upgrade"}, last.args)
}

func TestManager_Enter_ReexecFailureIsFatal(t *testing.T) {
	f := newFakeManager()
	f.Manager.Reexec = func(env *venv.Env) error {
		return errors.New("exec format error")
	}

	env, _, err := f.Ensure(filepath.Join(t.TempDir(), "x"), domain.OSLinux, "python3")
	require.NoError(t, err)

	err = f.Enter(env)
	require.Error(t, err)
	assert.True(t, domain.IsFatal(err))
}
