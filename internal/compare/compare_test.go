// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compare

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/translation-compare/pkg/types"
)

// --- test helpers ---

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func readReport(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, types.DefaultOutputFile))
	require.NoError(t, err)
	return string(data)
}

// setupScenario writes one machine engine and one reference engine, each
// with a single one-box image plus a temporary image.
func setupScenario(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "google.itp", `{"images": {
		"page_01.png": {"boxes": [{"text": "こんにちは世界", "target": "hello world"}]},
		"image_tmp_01": {"boxes": [{"text": "一時", "target": "temporary"}]}
	}}`)
	writeFile(t, dir, "human.itp", `{"images": {
		"page_01.png": {"boxes": [{"text": "こんにちは世界", "target": "hello there"}]},
		"image_tmp_01": {"boxes": [{"text": "一時", "target": "temporary"}]}
	}}`)
	return dir
}

// --- tests ---

func TestProcessDirectory(t *testing.T) {
	dir := setupScenario(t)
	var log bytes.Buffer

	res, err := ProcessDirectory(context.Background(), dir, types.DefaultCompareConfig(), &log)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, types.DefaultOutputFile), res.ReportPath)
	assert.Contains(t, log.String(), "wrote ")

	out := readReport(t, dir)
	assert.Contains(t, out, "| Engine | 1. こんにちは世界 | BLEU@human |")
	assert.Contains(t, out, "| human | hello there | 1.0000 |")
	assert.Contains(t, out, "## Overall BLEU Summary")
	assert.NotContains(t, out, "image_tmp_01")
	assert.NotContains(t, out, "temporary")

	require.Len(t, res.Report.Summary, 2)
	google := res.Report.Summary[1]
	assert.Equal(t, "google", google.Engine)
	assert.Greater(t, google.Average, 0.0)
	assert.Less(t, google.Average, 1.0)
}

func TestProcessDirectoryWithoutReferences(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "google.itp", `{"images": {"p1": {"boxes": [{"text": "一", "target": "one"}]}}}`)
	writeFile(t, dir, "deepl.itp", `{"images": {"p1": {"boxes": [{"text": "一", "target": "1"}]}}}`)

	_, err := ProcessDirectory(context.Background(), dir, types.DefaultCompareConfig(), &bytes.Buffer{})
	require.NoError(t, err)

	out := readReport(t, dir)
	assert.NotContains(t, out, "BLEU")
	assert.Contains(t, out, "| deepl | 1 |\n| google | one |")
}

func TestProcessDirectoryExport(t *testing.T) {
	dir := setupScenario(t)
	cfg := types.DefaultCompareConfig()
	cfg.Report.Export = "scores.json"

	res, err := ProcessDirectory(context.Background(), dir, cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.FileExists(t, res.ExportPath)
}

func TestProcessDirectoryContinuesPastBrokenFile(t *testing.T) {
	dir := setupScenario(t)
	writeFile(t, dir, "broken.itp", `not json`)
	var log bytes.Buffer

	cfg := types.DefaultCompareConfig()
	cfg.Collect.OnError = types.OnErrorContinue
	res, err := ProcessDirectory(context.Background(), dir, cfg, &log)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Collect.Failed)
	assert.Contains(t, log.String(), "failed  broken.itp")
	assert.NotContains(t, readReport(t, dir), "broken")
}

func TestAlign(t *testing.T) {
	dir := setupScenario(t)

	res, err := Align(context.Background(), dir, types.DefaultCompareConfig(), &bytes.Buffer{})
	require.NoError(t, err)
	assert.False(t, res.Report.Scored())

	out := readReport(t, dir)
	assert.NotContains(t, out, "BLEU")
	assert.Contains(t, out, "| google | hello world |\n| human | hello there |")
}

func TestAlignFailsFastOnBrokenFile(t *testing.T) {
	dir := setupScenario(t)
	writeFile(t, dir, "broken.itp", `{"images": `)

	_, err := Align(context.Background(), dir, types.DefaultCompareConfig(), &bytes.Buffer{})
	assert.ErrorContains(t, err, "broken.itp")
	assert.NoFileExists(t, filepath.Join(dir, types.DefaultOutputFile))
}

func TestAlignChineseLabels(t *testing.T) {
	dir := setupScenario(t)
	cfg := types.DefaultCompareConfig()
	cfg.Report.Locale = "zh"

	_, err := Align(context.Background(), dir, cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(readReport(t, dir), "# 翻译结果比较"))
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	dir := setupScenario(t)
	cfg := types.DefaultCompareConfig()
	cfg.Collect.OnError = "sometimes"

	_, err := ProcessDirectory(context.Background(), dir, cfg, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unsupported error policy")
}

func TestProcessBatch(t *testing.T) {
	good := setupScenario(t)
	missing := filepath.Join(t.TempDir(), "manga", "ja2zh")
	var log bytes.Buffer

	result := ProcessBatch(context.Background(), []string{good, missing}, types.DefaultCompareConfig(), &log)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Missing)
	assert.Equal(t, 2, result.Total())
	assert.False(t, result.HasFailures())
	assert.Contains(t, log.String(), "missing "+missing)
	assert.FileExists(t, filepath.Join(good, types.DefaultOutputFile))
}

func TestProcessBatchCountsFailures(t *testing.T) {
	dir := setupScenario(t)
	cfg := types.DefaultCompareConfig()
	cfg.Report.Export = "scores.csv"

	result := ProcessBatch(context.Background(), []string{dir}, cfg, &bytes.Buffer{})
	assert.True(t, result.HasFailures())
	assert.Equal(t, 1, result.Failed)
}

func TestResolveDirs(t *testing.T) {
	got := ResolveDirs("/opt/tool", []string{"manga/ja2en", "/abs/dir"})
	assert.Equal(t, []string{filepath.Join("/opt/tool", "manga/ja2en"), "/abs/dir"}, got)
	assert.Equal(t, []string{"x"}, ResolveDirs("", []string{"x"}))
}

func TestBatchReportsPerDirectory(t *testing.T) {
	a, b := setupScenario(t), setupScenario(t)
	result := ProcessBatch(context.Background(), []string{a, b}, types.DefaultCompareConfig(), &bytes.Buffer{})
	require.Len(t, result.Dirs, 2)
	for _, d := range result.Dirs {
		assert.NotEmpty(t, d.Report.Summary)
		assert.FileExists(t, d.ReportPath)
	}
}
