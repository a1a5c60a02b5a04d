package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/plotmod/internal/cli"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.hcl"), []byte(content), 0o644))
	return dir
}

func TestRun_HelpFlag(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := run(&out, []string{"-h"})
	require.NoError(t, err, "help is a clean exit, not an error")
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "plotmod")
}

func TestRun_NoArgsPrintsUsage(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := run(&out, nil)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:")
}

func TestRun_UnknownFlag(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := run(&out, []string{"--frobnicate"})
	require.Error(t, err)
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestRun_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := run(&out, []string{"-log-level", "loud", "some/path"})
	require.Error(t, err)
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, exitErr.Message, "invalid log-level")
}

func TestRun_StartupFailureIsAnError(t *testing.T) {
	t.Parallel()

	dir := writeDoc(t, `
model "Gizmo" "g" {
  attributes {}
}
`)

	var out bytes.Buffer
	err := run(&out, []string{"-log-level", "error", dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a critical startup error occurred")
	assert.Contains(t, err.Error(), "unknown class")
}

func TestRun_PrintsDocument(t *testing.T) {
	t.Parallel()

	dir := writeDoc(t, `
model "Span" "cursor" {
  attributes {
    location = 2.5
  }
}
`)

	var out bytes.Buffer
	err := run(&out, []string{"-log-level", "error", "-doc", dir})
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"version": 1`)
	assert.Contains(t, out.String(), `"class": "Span"`)
}
