package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aleister1102/grammarwhiz/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeConfig(t *testing.T, dir, endpoint string) string {
	t.Helper()
	cfg := `log_config:
  log_level: error
correction_config:
  provider: http
  endpoint: ` + endpoint + `
retry_config:
  max_attempts: 1
history_config:
  db_path: ` + filepath.Join(dir, "history.db") + `
  max_entries: 10
`
	return writeFile(t, dir, "config.yaml", cfg)
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDiffCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "http://127.0.0.1:1")
	original := writeFile(t, dir, "a.txt", "我们一起去走步")
	corrected := writeFile(t, dir, "b.txt", "我们一起去散步")

	out, err := runCLI(t, "", "diff", "--config", cfg, "--format", "delta", original, corrected)
	require.NoError(t, err)
	assert.Equal(t, "=5\t-1\t+%E6%95%A3\t=1\n", out)

	out, err = runCLI(t, "", "diff", "--config", cfg, "--format", "console", "--markers", original, corrected)
	require.NoError(t, err)
	assert.Contains(t, out, "我们一起去[-走-]{+散+}步")

	out, err = runCLI(t, "", "diff", "--config", cfg, "--format", "json", "--markers=false", original, corrected)
	require.NoError(t, err)
	var decoded struct {
		Diffs []models.ContentDiff `json:"diffs"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Len(t, decoded.Diffs, 4)
}

func TestDiffCommand_UnknownFormat(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "http://127.0.0.1:1")
	original := writeFile(t, dir, "a.txt", "甲")

	_, err := runCLI(t, "", "diff", "--config", cfg, "--format", "xml", original, original)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestDiffCommand_MissingConfig(t *testing.T) {
	_, err := runCLI(t, "", "diff", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "a", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestProofreadAndHistory(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.ProofreadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Scenario != models.ScenarioOfficial {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.ProofreadResult{
			Corrected:    strings.ReplaceAll(req.Text, "走步", "散步"),
			Explanations: []string{"“走步”应为“散步”"},
		})
	}))
	defer api.Close()

	dir := t.TempDir()
	cfg := writeConfig(t, dir, api.URL)

	out, err := runCLI(t, "我们一起去走步", "proofread", "--config", cfg, "--scenario", "official", "--format", "text", "--save")
	require.NoError(t, err)
	assert.Equal(t, "我们一起去散步\n", out)

	out, err = runCLI(t, "", "history", "list", "--config", cfg, "--limit", "5")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "official")
	id := strings.Fields(lines[1])[0]

	out, err = runCLI(t, "", "history", "show", "--config", cfg, "--format", "console", "--markers", id)
	require.NoError(t, err)
	assert.Contains(t, out, "[-走-]{+散+}")
	assert.Contains(t, out, "“走步”应为“散步”")

	_, err = runCLI(t, "", "history", "clear", "--config", cfg)
	require.NoError(t, err)

	out, err = runCLI(t, "", "history", "list", "--config", cfg, "--limit", "0")
	require.NoError(t, err)
	assert.Equal(t, 1, len(strings.Split(strings.TrimSpace(out), "\n")))
}

func TestProofreadCommand_ServiceFailure(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: "invalid key"})
	}))
	defer api.Close()

	dir := t.TempDir()
	cfg := writeConfig(t, dir, api.URL)

	_, err := runCLI(t, "文本", "proofread", "--config", cfg, "--scenario", "publishing", "--format", "text", "--save=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "proofreading")
}

func TestProofreadCommand_UnknownScenario(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "http://127.0.0.1:1")

	_, err := runCLI(t, "文本", "proofread", "--config", cfg, "--scenario", "poetry", "--format", "text")
	require.Error(t, err)
}

func TestImportCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "http://127.0.0.1:1")
	page := writeFile(t, dir, "page.html", "<html><body><h1>标题</h1><p>正文内容。</p><script>x()</script></body></html>")

	out, err := runCLI(t, "", "import", "--config", cfg, page)
	require.NoError(t, err)
	assert.Contains(t, out, "标题")
	assert.Contains(t, out, "正文内容。")
	assert.NotContains(t, out, "x()")

	_, err = runCLI(t, "", "import", "--config", cfg, writeFile(t, dir, "scan.pdf", "not a pdf"))
	require.Error(t, err)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "短文", preview("短文", 4))
	assert.Equal(t, "一二三…", preview("一二三四五", 3))
	assert.Equal(t, "a b", preview("a\nb", 5))
}
