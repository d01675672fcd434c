package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/dictnotes/internal/config"
)

// isolate points config lookups at an empty temp dir and returns a fresh data file path.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.EnvDataFile, "")
	return filepath.Join(t.TempDir(), "notes.json")
}

// runCLI executes the CLI in-process and returns exit code, stdout and stderr.
func runCLI(t *testing.T, file string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	if file != "" {
		args = append([]string{"--file", file}, args...)
	}
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCLI_Scenario(t *testing.T) {
	file := isolate(t)

	code, out, _ := runCLI(t, file, "add", "Buy", "milk", "--tag", "errand")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "Added note 1\n", out)

	code, out, _ = runCLI(t, file, "list", "--tag", "errand")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "1 - Buy milk [errand]\n", out)

	code, out, _ = runCLI(t, file, "remove", "1")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "Removed note 1\n", out)

	code, out, errOut := runCLI(t, file, "show", "1")
	assert.Equal(t, ExitError, code)
	assert.Empty(t, out)
	assert.Equal(t, "error: note not found: 1\n", errOut)
}

func TestCLI_ListOrderAndFilters(t *testing.T) {
	file := isolate(t)

	for _, args := range [][]string{
		{"add", "one", "-t", "work/alpha"},
		{"add", "two", "-t", "home"},
		{"add", "three", "-t", "work/beta,home"},
	} {
		code, _, errOut := runCLI(t, file, args...)
		require.Equal(t, ExitSuccess, code, errOut)
	}

	_, out, _ := runCLI(t, file, "list")
	assert.Equal(t, "1 - one [work/alpha]\n2 - two [home]\n3 - three [home, work/beta]\n", out)

	_, out, _ = runCLI(t, file, "list", "--tag", "home")
	assert.Equal(t, "2 - two [home]\n3 - three [home, work/beta]\n", out)

	_, out, _ = runCLI(t, file, "list", "--match", "work/*")
	assert.Equal(t, "1 - one [work/alpha]\n3 - three [home, work/beta]\n", out)

	_, out, _ = runCLI(t, file, "list", "--tag", "missing")
	assert.Equal(t, "No notes found.\n", out)

	_, out, _ = runCLI(t, file, "tags")
	assert.Equal(t, "home (2)\nwork/alpha (1)\nwork/beta (1)\n", out)
}

func TestCLI_EditAndTag(t *testing.T) {
	file := isolate(t)

	code, _, _ := runCLI(t, file, "add", "Call Bob", "-t", "work", "-d", "invoice")
	require.Equal(t, ExitSuccess, code)

	code, out, _ := runCLI(t, file, "edit", "--id", "1", "--title", "Call Robert", "--add-tag", "phone")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "Updated note 1\n", out)

	code, out, _ = runCLI(t, file, "tag", "1", "urgent")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "Note 1 tags: phone, urgent, work\n", out)

	code, out, _ = runCLI(t, file, "tag", "--id", "1", "--remove", "work", "phone")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "Note 1 tags: urgent\n", out)

	code, _, _ = runCLI(t, file, "edit", "1", "--tag", "", "--description", "")
	require.Equal(t, ExitSuccess, code)

	code, out, _ = runCLI(t, file, "show", "1", "--format", "json")
	require.Equal(t, ExitSuccess, code)

	var view noteView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "1", view.ID)
	assert.Equal(t, "Call Robert", view.Title)
	assert.Equal(t, []string{}, view.Tags)
	assert.Empty(t, view.Description)
	assert.NotNil(t, view.UpdatedAt)
}

func TestCLI_TextShow(t *testing.T) {
	file := isolate(t)
	runCLI(t, file, "add", "Buy milk", "-t", "errand", "-d", "two litres")

	code, out, _ := runCLI(t, file, "show", "--id", "1")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "ID:          1\n")
	assert.Contains(t, out, "Title:       Buy milk\n")
	assert.Contains(t, out, "Tags:        errand\n")
	assert.Contains(t, out, "Description: two litres\n")
	assert.Contains(t, out, "Created:     ")
	assert.NotContains(t, out, "Updated:")
}

func TestCLI_StructuredOutput(t *testing.T) {
	file := isolate(t)
	runCLI(t, file, "add", "a", "-t", "x")
	runCLI(t, file, "add", "b")

	code, out, _ := runCLI(t, file, "list", "-o", "json")
	require.Equal(t, ExitSuccess, code)
	var views []noteView
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 2)
	assert.Equal(t, "a", views[0].Title)
	assert.Equal(t, []string{}, views[1].Tags)

	code, out, _ = runCLI(t, file, "list", "-o", "yaml")
	require.Equal(t, ExitSuccess, code)
	var yviews []noteView
	require.NoError(t, yaml.Unmarshal([]byte(out), &yviews))
	require.Len(t, yviews, 2)
	assert.Equal(t, "b", yviews[1].Title)

	code, out, _ = runCLI(t, file, "list", "--tag", "nope", "-o", "json")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "[]\n", out)

	code, out, _ = runCLI(t, file, "add", "c", "-o", "json")
	require.Equal(t, ExitSuccess, code)
	var added noteView
	require.NoError(t, json.Unmarshal([]byte(out), &added))
	assert.Equal(t, "3", added.ID)
}

func TestCLI_UsageErrors(t *testing.T) {
	file := isolate(t)
	runCLI(t, file, "add", "exists")

	tests := []struct {
		name string
		args []string
	}{
		{"Add Without Title", []string{"add"}},
		{"Add Blank Title", []string{"add", "  "}},
		{"Unknown Command", []string{"frobnicate"}},
		{"Unknown Flag", []string{"list", "--bogus"}},
		{"Show Without ID", []string{"show"}},
		{"Show ID Twice", []string{"show", "1", "--id", "1"}},
		{"Show Extra Args", []string{"show", "1", "2"}},
		{"Edit Nothing", []string{"edit", "1"}},
		{"Edit Blank Title", []string{"edit", "1", "--title", " "}},
		{"Tag Without Tags", []string{"tag", "1"}},
		{"Tag Blank Tags", []string{"tag", "1", " "}},
		{"List Tag And Match", []string{"list", "--tag", "a", "--match", "b"}},
		{"List Bad Glob", []string{"list", "--match", "work/["}},
		{"Bad Format", []string{"list", "--format", "xml"}},
		{"List Extra Args", []string{"list", "extra"}},
		{"List Blank Tag", []string{"list", "--tag", " "}},
		{"List Blank Match", []string{"list", "--match", ""}},
		{"Config Unknown Key", []string{"config", "colour"}},
		{"Config Bad Format", []string{"config", "format", "xml"}},
		{"Config Extra Args", []string{"config", "format", "json", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCLI(t, file, tt.args...)
			assert.Equal(t, ExitUsage, code, "stderr: %s", errOut)
			assert.True(t, strings.HasPrefix(errOut, "error: "), "stderr: %q", errOut)
			assert.Equal(t, 1, strings.Count(errOut, "\n"), "one-line error expected: %q", errOut)
		})
	}
}

func TestCLI_RuntimeErrors(t *testing.T) {
	t.Run("Not Found", func(t *testing.T) {
		file := isolate(t)
		for _, args := range [][]string{
			{"show", "9"},
			{"edit", "9", "--title", "x"},
			{"remove", "9"},
			{"tag", "9", "x"},
		} {
			code, _, errOut := runCLI(t, file, args...)
			assert.Equal(t, ExitError, code, "%v", args)
			assert.Contains(t, errOut, "note not found")
		}
	})

	t.Run("Corrupt File", func(t *testing.T) {
		file := isolate(t)
		require.NoError(t, os.WriteFile(file, []byte("{oops"), 0644))

		code, _, errOut := runCLI(t, file, "list")
		assert.Equal(t, ExitError, code)
		assert.Contains(t, errOut, "corrupt data file")
	})

	t.Run("Unwritable Location", func(t *testing.T) {
		isolate(t)
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		code, _, errOut := runCLI(t, filepath.Join(blocker, "notes.json"), "add", "x")
		assert.Equal(t, ExitError, code)
		assert.Contains(t, errOut, "storage failure")
	})
}

func TestCLI_MissingFileIsEmpty(t *testing.T) {
	file := isolate(t)

	code, out, _ := runCLI(t, file, "list")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "No notes found.\n", out)

	_, err := os.Stat(file)
	assert.True(t, os.IsNotExist(err), "read-only commands must not create the file")
}

func TestCLI_DataFileResolution(t *testing.T) {
	t.Run("Environment", func(t *testing.T) {
		isolate(t)
		envFile := filepath.Join(t.TempDir(), "env-notes.json")
		t.Setenv(config.EnvDataFile, envFile)

		code, _, _ := runCLI(t, "", "add", "from env")
		require.Equal(t, ExitSuccess, code)
		_, err := os.Stat(envFile)
		assert.NoError(t, err)
	})

	t.Run("Config File", func(t *testing.T) {
		xdg := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", xdg)
		t.Setenv(config.EnvDataFile, "")
		cfgFile := filepath.Join(t.TempDir(), "configured.json")
		cfg := &config.Config{DataFile: cfgFile, Format: "json"}
		require.NoError(t, cfg.Save(filepath.Join(xdg, "dictnotes", "config.yml")))

		code, out, _ := runCLI(t, "", "add", "from config")
		require.Equal(t, ExitSuccess, code)

		// format: json from the config file applies when --format is absent.
		var view noteView
		require.NoError(t, json.Unmarshal([]byte(out), &view))
		assert.Equal(t, "from config", view.Title)
		_, err := os.Stat(cfgFile)
		assert.NoError(t, err)
	})
}

func TestCLI_Config(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv(config.EnvDataFile, "")
	dataFile := filepath.Join(t.TempDir(), "configured.json")

	code, out, _ := runCLI(t, "", "config", "data-file", dataFile)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "Set data-file in ")

	code, _, _ = runCLI(t, "", "config", "format", "yaml")
	require.Equal(t, ExitSuccess, code)

	saved, err := config.LoadFile(filepath.Join(xdg, "dictnotes", "config.yml"))
	require.NoError(t, err)
	assert.Equal(t, &config.Config{DataFile: dataFile, Format: "yaml"}, saved)

	code, out, _ = runCLI(t, "", "config", "data_file")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, dataFile+"\n", out)

	code, out, _ = runCLI(t, "", "config", "-o", "json")
	require.Equal(t, ExitSuccess, code)
	var shown map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, map[string]string{"data_file": dataFile, "format": "yaml"}, shown)

	// The configured data file is used by note commands.
	code, _, _ = runCLI(t, "", "add", "from config")
	require.Equal(t, ExitSuccess, code)
	_, err = os.Stat(dataFile)
	assert.NoError(t, err)

	code, _, _ = runCLI(t, "", "config", "format", "")
	require.Equal(t, ExitSuccess, code)
	saved, err = config.LoadFile(filepath.Join(xdg, "dictnotes", "config.yml"))
	require.NoError(t, err)
	assert.Empty(t, saved.Format)
}

func TestCLI_Info(t *testing.T) {
	file := isolate(t)
	runCLI(t, file, "add", "a", "-t", "x")

	code, out, _ := runCLI(t, file, "info", "-o", "json")
	require.Equal(t, ExitSuccess, code)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, file, got["data_file"])
	assert.Equal(t, "flag", got["source"])
	assert.EqualValues(t, 1, got["notes"])
	assert.EqualValues(t, 1, got["tags"])
	repo, ok := got["repository"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, repo["exists"])

	code, out, _ = runCLI(t, file, "info")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "Storage:   file-repository")
}

func TestCLI_Version(t *testing.T) {
	isolate(t)
	code, out, _ := runCLI(t, "", "version")
	assert.Equal(t, ExitSuccess, code)
	assert.True(t, strings.HasPrefix(out, "dictnotes version "))
}

// syncBuffer is a bytes.Buffer safe for the concurrent writes of the watch test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestCLI_Watch(t *testing.T) {
	file := isolate(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stdout, stderr syncBuffer
	done := make(chan int, 1)
	go func() {
		done <- run(ctx, []string{"--file", file, "watch"}, &stdout, &stderr)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(stderr.String(), "Watching")
	}, 5*time.Second, 10*time.Millisecond)

	code, _, _ := runCLI(t, file, "add", "Buy milk")
	require.Equal(t, ExitSuccess, code)

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "CREATE 1 Buy milk")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case code := <-done:
		assert.Equal(t, ExitSuccess, code)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
