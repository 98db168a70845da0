package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sungur/cells/internal/audit"
	"github.com/sungur/cells/internal/cells"
	"github.com/sungur/cells/internal/config"
	"github.com/sungur/cells/internal/log"
)

const testCells = `{"inner1":"/r/inner1","inner2":"/r/inner1/inside/inner2","root":"/r","prelude":"/r/prelude"}`

// isolate keeps user and project config files out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvCellsFile, "")
}

func writeCells(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cells.json")
	require.NoError(t, os.WriteFile(path, []byte(testCells), 0o644))
	return path
}

// run executes the command tree and returns what went to stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	isolate(t)

	var out, errOut bytes.Buffer
	log.SetOutput(&out, &errOut)
	t.Cleanup(log.Reset)

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestResolve(t *testing.T) {
	file := writeCells(t)

	out, _, err := run(t, "", "resolve", "--cells", file,
		"inner2//magic/file.txt", "root//file.txt", "inner1//magic/file.txt")
	require.NoError(t, err)
	assert.Equal(t, "inner1/inside/inner2/magic/file.txt\nfile.txt\ninner1/magic/file.txt\n", out)
}

func TestResolve_Absolute(t *testing.T) {
	file := writeCells(t)

	out, _, err := run(t, "", "resolve", "--cells", file, "--absolute", "prelude//rules.bzl")
	require.NoError(t, err)
	assert.Equal(t, "/r/prelude/rules.bzl\n", out)
}

func TestResolve_Stdin(t *testing.T) {
	file := writeCells(t)

	out, _, err := run(t, "inner2//a.txt\n\n  root//b.txt  \n", "resolve", "--cells", file)
	require.NoError(t, err)
	assert.Equal(t, "inner1/inside/inner2/a.txt\nb.txt\n", out)
}

func TestResolve_Errors(t *testing.T) {
	file := writeCells(t)

	_, _, err := run(t, "", "resolve", "--cells", file, "missing//foo.txt")
	assert.ErrorIs(t, err, cells.ErrUnknownCell)

	_, _, err = run(t, "", "resolve", "--cells", file, "not-a-cell-path")
	assert.ErrorIs(t, err, cells.ErrInvalidCellPath)

	_, _, err = run(t, "", "resolve", "root//file.txt")
	assert.ErrorIs(t, err, errNoCellMapping)
}

func TestUnresolve(t *testing.T) {
	file := writeCells(t)

	out, _, err := run(t, "", "unresolve", "--cells", file,
		"inner1/inside/inner2/magic/file.txt", "/r/prelude/rules.bzl", "file.txt")
	require.NoError(t, err)
	assert.Equal(t, "inner2//magic/file.txt\nprelude//rules.bzl\nroot//file.txt\n", out)
}

func TestUnresolve_OutsideRoot(t *testing.T) {
	file := writeCells(t)

	_, _, err := run(t, "", "unresolve", "--cells", file, "/elsewhere/file.txt")
	assert.ErrorIs(t, err, cells.ErrNoMatchingCell)
}

func TestList(t *testing.T) {
	file := writeCells(t)

	out, errOut, err := run(t, "", "list", "--cells", file)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "inner1")
	assert.Contains(t, lines[1], "inner1/inside/inner2")
	assert.Contains(t, lines[3], "root")
	assert.Contains(t, lines[3], rootPrefixLabel)
	assert.Contains(t, errOut, "4 cell(s) rooted at /r")
}

func TestList_JSON(t *testing.T) {
	file := writeCells(t)

	out, _, err := run(t, "", "list", "--cells", file, "--json")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]string{
		"inner1":  "inner1",
		"inner2":  "inner1/inside/inner2",
		"prelude": "prelude",
		"root":    "",
	}, got)
}

func TestQuietKeepsResults(t *testing.T) {
	file := writeCells(t)

	out, errOut, err := run(t, "", "list", "--cells", file, "-q")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.NotContains(t, errOut, "cell(s) rooted at")
}

func TestAudit_DryRun(t *testing.T) {
	out, _, err := run(t, "", "audit", "cell", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "buck2 audit cell --json --reuse-current-config\n", out)

	out, _, err = run(t, "", "audit", "config", "--dry-run", "--buck", "mybuck")
	require.NoError(t, err)
	assert.Equal(t,
		"mybuck audit config --json --all-cells buildfile.name buildfile.name_v2 --reuse-current-config\n", out)
}

func fakeBuck(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake buck is a POSIX shell script")
	}
	path := filepath.Join(t.TempDir(), "buck2")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestAudit_ExitCode(t *testing.T) {
	buck := fakeBuck(t, "exit 4")

	_, _, err := run(t, "", "audit", "cell", "--buck", buck)
	var exitErr *audit.ExitError
	require.True(t, errors.As(err, &exitErr), "got %v", err)
	assert.Equal(t, 4, exitErr.Code)
}

func TestFromBuck(t *testing.T) {
	buck := fakeBuck(t, "echo '"+testCells+"'")

	out, _, err := run(t, "", "resolve", "--from-buck", "--buck", buck, "inner2//magic/file.txt")
	require.NoError(t, err)
	assert.Equal(t, "inner1/inside/inner2/magic/file.txt\n", out)
}

func TestConfigFile(t *testing.T) {
	file := writeCells(t)
	cfgPath := filepath.Join(t.TempDir(), "cells.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("cellsFile: "+file+"\nabsolute: true\n"), 0o644))

	out, _, err := run(t, "", "resolve", "--config", cfgPath, "root//file.txt")
	require.NoError(t, err)
	assert.Equal(t, "/r/file.txt\n", out)

	// An explicit flag beats the config value.
	out, _, err = run(t, "", "resolve", "--config", cfgPath, "--absolute=false", "root//file.txt")
	require.NoError(t, err)
	assert.Equal(t, "file.txt\n", out)
}

func TestConfigFile_InvalidLogLevel(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "cells.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logLevel: loud\n"), 0o644))

	_, _, err := run(t, "", "list", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logLevel")
}

func TestVerboseLogsResolverDetails(t *testing.T) {
	file := writeCells(t)

	_, errOut, err := run(t, "", "list", "--cells", file, "-v")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Loaded 4 cells rooted at /r")
}
