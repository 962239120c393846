// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/translation-compare/pkg/types"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeEngine(t *testing.T, dir, name, target string) {
	t.Helper()
	content := `{"images": {"page_01.png": {"boxes": [{"text": "こんにちは", "target": "` + target + `"}]}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".itp"), []byte(content), 0o644))
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "translation-compare dev\n", out)
}

func TestCompareCommand(t *testing.T) {
	dir := t.TempDir()
	writeEngine(t, dir, "google", "hello world")
	writeEngine(t, dir, "human", "hello there")

	out, err := execute(t, "compare", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote ")
	assert.Contains(t, out, "Rank")

	data, err := os.ReadFile(filepath.Join(dir, types.DefaultOutputFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "BLEU@human")
}

func TestAlignCommand(t *testing.T) {
	dir := t.TempDir()
	writeEngine(t, dir, "google", "hello world")

	_, err := execute(t, "align", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, types.DefaultOutputFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "| google | hello world |")
}

func TestAlignCommandMissingDir(t *testing.T) {
	_, err := execute(t, "align", filepath.Join(t.TempDir(), "nope"))
	assert.ErrorContains(t, err, "does not exist")
}
