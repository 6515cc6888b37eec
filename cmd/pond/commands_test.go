package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/pond/internal/clients"
	"github.com/alexisbeaulieu97/pond/internal/dependency"
	"github.com/alexisbeaulieu97/pond/internal/pond"
)

// isolateHome points the default config and store locations at a temp dir.
func isolateHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return dir
}

func runPond(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// withStore runs operation with the Pond capability overridden by store.
func withStore(t *testing.T, store pond.Store, operation func()) {
	t.Helper()
	isolateHome(t)
	dependency.WithValues(func(v *dependency.Values) {
		dependency.Set(v, clients.PondKey, store)
	}, operation)
}

func TestSetAndGetPersistAcrossInvocations(t *testing.T) {
	home := isolateHome(t)

	out, err := runPond(t, "set", "user.name", "ada")
	require.NoError(t, err)
	assert.Contains(t, out, "Stored 'user.name' in preferences store")

	out, err = runPond(t, "get", "user.name")
	require.NoError(t, err)
	assert.Equal(t, "ada\n", out)

	_, err = os.Stat(filepath.Join(home, ".pond", "preferences.yaml"))
	require.NoError(t, err)
}

func TestGetCoercesToRequestedType(t *testing.T) {
	isolateHome(t)

	_, err := runPond(t, "set", "launches", "42", "--type", "int")
	require.NoError(t, err)

	tests := []struct {
		valueType string
		want      string
	}{
		{typeAuto, "42\n"},
		{typeString, "42\n"},
		{typeInt, "42\n"},
		{typeFloat, "42\n"},
		{typeBool, ""},
	}

	for _, tt := range tests {
		t.Run(tt.valueType, func(t *testing.T) {
			out, err := runPond(t, "get", "launches", "--type", tt.valueType)
			if tt.want == "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "cannot be read as bool")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestGetMissingKeyFails(t *testing.T) {
	isolateHome(t)

	_, err := runPond(t, "get", "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, errKeyNotFound)
	assert.Contains(t, err.Error(), "Suggestion: Run 'pond list'")
}

func TestUnknownTypeIsRejected(t *testing.T) {
	isolateHome(t)

	_, err := runPond(t, "set", "k", "v", "--type", "decimal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown type "decimal"`)
}

func TestSetJSONStoresStructuredValues(t *testing.T) {
	isolateHome(t)

	_, err := runPond(t, "set", "recent", `["a", "b", 3]`, "--type", "json")
	require.NoError(t, err)

	out, err := runPond(t, "get", "recent")
	require.NoError(t, err)

	var decoded []any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, []any{"a", "b", float64(3)}, decoded)

	out, err = runPond(t, "set", "recent", "null", "--type", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 'recent'")

	_, err = runPond(t, "has", "recent")
	assert.ErrorIs(t, err, errKeyAbsent)
}

func TestSetBytesFromFileAndStdin(t *testing.T) {
	isolateHome(t)

	path := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))

	_, err := runPond(t, "set", "note", path, "--type", "bytes")
	require.NoError(t, err)

	out, err := runPond(t, "get", "note")
	require.NoError(t, err)
	assert.Equal(t, "<11 bytes, text/plain; charset=utf-8>\n", out)

	out, err = runPond(t, "get", "note", "--raw")
	require.NoError(t, err)
	assert.Equal(t, "hello world", out)

	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetIn(strings.NewReader("\x00\x01\x02"))
	root.SetArgs([]string{"set", "blob", "-", "--type", "bytes"})
	require.NoError(t, root.Execute())

	out, err = runPond(t, "get", "blob", "--type", "bytes", "--raw")
	require.NoError(t, err)
	assert.Equal(t, "\x00\x01\x02", out)

	_, err = runPond(t, "get", "note", "--type", "string")
	require.Error(t, err)
}

func TestHasReportsPresence(t *testing.T) {
	isolateHome(t)

	out, err := runPond(t, "has", "flag")
	assert.True(t, errors.Is(err, errKeyAbsent))
	assert.Equal(t, "false\n", out)

	_, err = runPond(t, "set", "flag", "true", "--type", "bool")
	require.NoError(t, err)

	out, err = runPond(t, "has", "flag")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = runPond(t, "get", "flag", "--type", "bool")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestRemoveDeletesKey(t *testing.T) {
	store := pond.NewMemory()
	pond.Set(store, "a", "1")

	withStore(t, store, func() {
		out, err := runPond(t, "rm", "a")
		require.NoError(t, err)
		assert.Contains(t, out, "Removed 'a'")

		out, err = runPond(t, "rm", "a")
		require.NoError(t, err)
		assert.Contains(t, out, "was not set")
	})

	assert.False(t, store.Contains("a"))
}

func TestClearRequiresConfirmationOutsideTerminal(t *testing.T) {
	store := pond.NewMemory()
	pond.Set(store, "a", "1")
	pond.Set(store, "b", "2")

	withStore(t, store, func() {
		_, err := runPond(t, "clear")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Use --yes")
		assert.Len(t, store.Keys(), 2)

		out, err := runPond(t, "clear", "--yes")
		require.NoError(t, err)
		assert.Contains(t, out, "Cleared 2 keys from memory store")
	})

	assert.Empty(t, store.Keys())
}

func TestClearPromptsOnTerminal(t *testing.T) {
	original := termIsTerminal
	t.Cleanup(func() { termIsTerminal = original })
	termIsTerminal = func(int) bool { return true }

	stdin, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	_, err = stdin.WriteString("y\n")
	require.NoError(t, err)
	_, err = stdin.Seek(0, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stdin.Close() })

	store := pond.NewMemory()
	pond.Set(store, "a", "1")

	withStore(t, store, func() {
		root := newRootCmd()
		buf := &bytes.Buffer{}
		root.SetOut(buf)
		root.SetIn(stdin)
		root.SetArgs([]string{"clear"})
		require.NoError(t, root.Execute())
		assert.Contains(t, buf.String(), "Remove all 1 keys from the memory store? [y/N]")
	})

	assert.Empty(t, store.Keys())
}

func TestListFiltersAndRendersJSON(t *testing.T) {
	store := pond.NewMemory()
	pond.Set(store, "app.theme", "dark")
	pond.Set(store, "app.launches", 7)
	pond.Set(store, "user/profile/name", "ada")

	withStore(t, store, func() {
		out, err := runPond(t, "list")
		require.NoError(t, err)
		assert.Contains(t, out, "KEY")
		assert.Contains(t, out, "app.theme")
		assert.Contains(t, out, "dark")

		out, err = runPond(t, "list", "--match", "app.*")
		require.NoError(t, err)
		assert.Contains(t, out, "app.launches")
		assert.NotContains(t, out, "user/profile/name")

		out, err = runPond(t, "list", "--match", "user/**", "--json")
		require.NoError(t, err)

		var payload listJSONPayload
		require.NoError(t, json.Unmarshal([]byte(out), &payload))
		assert.Equal(t, "memory", payload.Store)
		require.Equal(t, 1, payload.Count)
		assert.Equal(t, "user/profile/name", payload.Entries[0].Key)
		assert.Equal(t, "text", payload.Entries[0].Kind)
		assert.Equal(t, "ada", payload.Entries[0].Value)

		_, err = runPond(t, "list", "--match", "[")
		require.Error(t, err)
	})
}

func TestListEmptyStore(t *testing.T) {
	withStore(t, pond.NewMemory(), func() {
		out, err := runPond(t, "list")
		require.NoError(t, err)
		assert.Equal(t, "No keys in memory store.\n", out)
	})
}

func TestCopyUsesPasteboardCapability(t *testing.T) {
	store := pond.NewMemory()
	pond.Set(store, "greeting", "hello")
	pond.Set(store, "avatar", []byte{0x89, 'P', 'N', 'G'})

	isolateHome(t)

	var copied []string
	dependency.WithValues(func(v *dependency.Values) {
		dependency.Set(v, clients.PondKey, pond.Store(store))
		dependency.Set(v, clients.PasteboardKey, clients.NewPasteboard(func(text string) {
			copied = append(copied, text)
		}))
	}, func() {
		out, err := runPond(t, "copy", "greeting")
		require.NoError(t, err)
		assert.Contains(t, out, "Copied 'greeting'")

		_, err = runPond(t, "copy", "avatar")
		require.Error(t, err)

		_, err = runPond(t, "copy", "missing")
		require.ErrorIs(t, err, errKeyNotFound)
	})

	assert.Equal(t, []string{"hello"}, copied)
}

func TestBackendFlagSelectsStore(t *testing.T) {
	home := isolateHome(t)

	for _, backend := range []string{"blob", "secure"} {
		t.Run(backend, func(t *testing.T) {
			_, err := runPond(t, "--backend", backend, "set", "token", "s3cr3t")
			require.NoError(t, err)

			out, err := runPond(t, "--backend", backend, "get", "token")
			require.NoError(t, err)
			assert.Equal(t, "s3cr3t\n", out)

			_, err = runPond(t, "get", "token")
			assert.ErrorIs(t, err, errKeyNotFound)
		})
	}

	_, err := os.Stat(filepath.Join(home, ".pond", "secure.key"))
	require.NoError(t, err)

	_, err = runPond(t, "--backend", "carrier-pigeon", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of")
}

func TestNoopBackendDiscardsWrites(t *testing.T) {
	isolateHome(t)

	_, err := runPond(t, "--backend", "noop", "set", "k", "v")
	require.NoError(t, err)

	_, err = runPond(t, "--backend", "noop", "get", "k")
	assert.ErrorIs(t, err, errKeyNotFound)
}

func TestConfigFileSelectsBackend(t *testing.T) {
	home := isolateHome(t)

	blobDir := filepath.Join(home, "custom-blobs")
	configPath := filepath.Join(home, "pond.yaml")
	config := "backend: blob\nblob:\n  dir: " + blobDir + "\n  compression: best\n"
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0o644))

	_, err := runPond(t, "--config", configPath, "set", "k", "v")
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(blobDir, "*.blob"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestSetDiffShowsChange(t *testing.T) {
	store := pond.NewMemory()
	pond.Set(store, "theme", "light")

	withStore(t, store, func() {
		out, err := runPond(t, "set", "theme", "dark", "--diff")
		require.NoError(t, err)
		assert.Contains(t, out, "--- theme\n+++ theme\n")
		assert.Contains(t, out, "-light\n")
		assert.Contains(t, out, "+dark\n")

		out, err = runPond(t, "set", "font", "mono", "--diff")
		require.NoError(t, err)
		assert.Contains(t, out, "--- font (absent)\n")
		assert.Contains(t, out, "+mono\n")

		out, err = runPond(t, "set", "font", "mono", "--diff")
		require.NoError(t, err)
		assert.NotContains(t, out, "+++")
	})
}

func TestBrowseRequiresTerminal(t *testing.T) {
	withStore(t, pond.NewMemory(), func() {
		_, err := runPond(t, "browse")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Use 'pond list'")
	})
}

func TestBrowseHandsStoreToBrowser(t *testing.T) {
	originalTerm := termIsTerminal
	originalRun := runBrowser
	t.Cleanup(func() {
		termIsTerminal = originalTerm
		runBrowser = originalRun
	})
	termIsTerminal = func(int) bool { return true }

	var got pond.Store
	runBrowser = func(store pond.Store, _ clients.Pasteboard) error {
		got = store
		return nil
	}

	store := pond.NewMemory()
	withStore(t, store, func() {
		root := newRootCmd()
		root.SetOut(&bytes.Buffer{})
		root.SetIn(os.Stdin)
		root.SetArgs([]string{"browse"})
		require.NoError(t, root.Execute())
	})

	assert.Same(t, store, got)
}

func TestSetJSONRejectsValuesWithoutStoredForm(t *testing.T) {
	store := pond.NewMemory()

	withStore(t, store, func() {
		for _, literal := range []string{"2024-01-01", "{1: a}"} {
			out, err := runPond(t, "set", "when", literal, "--type", "json")
			require.Error(t, err, literal)
			assert.ErrorIs(t, err, pond.ErrUnsupportedType)
			assert.NotContains(t, out, "Stored")
		}
	})

	assert.False(t, store.Contains("when"))
}
