package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mockreg/pkg/config"
	"github.com/getmockd/mockreg/pkg/mock"
)

const statusMocks = `
mocks:
  - name: pending
    method: GET
    url: http://api.example.com/jobs/{id}
    response:
      status: 202
      body: '{"state":"pending"}'
  - name: done
    method: GET
    url: http://api.example.com/jobs/{id}
    response:
      body: '{"state":"done"}'
  - method: POST
    url: http://api.example.com/jobs
    match:
      headers:
        Content-Type: application/json*
      bodyJsonPath:
        $.kind: report
    response:
      status: 201
`

func writeMocks(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mocks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestMatch_WalksQueuedMocks(t *testing.T) {
	file := writeMocks(t, statusMocks)

	out, _, err := run(t, "match", "-f", file, "--repeat", "3", "http://api.example.com/jobs/7")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "#1 GET http://api.example.com/jobs/7 -> pending (GET http://api.example.com/jobs/{id}) [202]", lines[0])
	assert.Contains(t, out, "#2 GET http://api.example.com/jobs/7 -> done (GET http://api.example.com/jobs/{id}) [200]")
	assert.Contains(t, out, "#3 GET http://api.example.com/jobs/7 -> done")
	assert.Contains(t, out, "2 mock(s) remain registered")
}

func TestMatch_JSONOutput(t *testing.T) {
	file := writeMocks(t, statusMocks)

	out, _, err := run(t, "--json", "match", "-f", file,
		"-X", "POST", "-H", "Content-Type: application/json", "-d", `{"kind":"report"}`,
		"http://api.example.com/jobs")
	require.NoError(t, err)

	var result matchResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Calls, 1)
	assert.True(t, result.Calls[0].Matched)
	assert.Equal(t, 201, result.Calls[0].Status)
	assert.Equal(t, "POST http://api.example.com/jobs", result.Request)
	assert.Len(t, result.Remaining, 3)
}

func TestRemaining_EncodesAsArray(t *testing.T) {
	reg := mock.NewRegistry()

	data, err := json.Marshal(matchResult{Remaining: remaining(reg)})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"remaining":[]`)

	named := mock.New("GET", "/a")
	named.Name = "first"
	reg.Add(named)
	reg.Add(mock.New("POST", "/b"))
	assert.Equal(t, []string{"first (GET /a)", "POST /b"}, remaining(reg))
}

func TestMatch_NoMatch(t *testing.T) {
	file := writeMocks(t, statusMocks)

	out, _, err := run(t, "match", "-f", file, "-X", "POST", "http://api.example.com/jobs")
	require.ErrorIs(t, err, ErrUnmatched)

	assert.Contains(t, out, "no registered mock matches the request")
	assert.Contains(t, out, "- POST http://api.example.com/jobs: header mismatch")
	assert.Contains(t, out, "body JSONPath mismatch: body is not valid JSON")
}

func TestMatch_FilesFromEnv(t *testing.T) {
	file := writeMocks(t, statusMocks)
	t.Setenv(config.EnvFiles, file)

	out, _, err := run(t, "match", "http://api.example.com/jobs/1")
	require.NoError(t, err)
	assert.Contains(t, out, "-> pending")
}

func TestMatch_Errors(t *testing.T) {
	t.Setenv(config.EnvFiles, "")

	_, _, err := run(t, "match", "http://api.example.com/jobs/1")
	assert.ErrorIs(t, err, config.ErrNoFiles)

	file := writeMocks(t, statusMocks)
	_, _, err = run(t, "match", "-f", file, "--repeat", "0", "http://x/")
	assert.ErrorContains(t, err, "--repeat must be at least 1")

	_, _, err = run(t, "match", "-f", file, "-H", "broken", "http://x/")
	assert.ErrorContains(t, err, "invalid header")

	_, _, err = run(t, "match", "-f", file)
	assert.Error(t, err, "URL argument is required")
}

func TestMatch_DebugLogging(t *testing.T) {
	file := writeMocks(t, statusMocks)

	_, stderr, err := run(t, "--log-level", "debug", "match", "-f", file, "http://api.example.com/jobs/1")
	require.NoError(t, err)
	assert.Contains(t, stderr, "consumed ambiguous match")
}

func TestValidate(t *testing.T) {
	file := writeMocks(t, statusMocks)

	out, _, err := run(t, "validate", "-f", file)
	require.NoError(t, err)
	assert.Equal(t, "ok: 3 mock(s) in 1 path(s)\n", out)

	bad := writeMocks(t, "url: /x\nresponse:\n  status: 42\n")
	out, _, err = run(t, "--json", "validate", "-f", bad)
	require.Error(t, err)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, false, result["valid"])
	assert.Contains(t, result["error"], "invalid mock file")
}

func TestList(t *testing.T) {
	file := writeMocks(t, statusMocks)

	out, _, err := run(t, "list", "-f", file)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "#"))
	assert.Contains(t, lines[1], "http://api.example.com/jobs/{id}")
	assert.Contains(t, lines[3], "POST")
	assert.Contains(t, lines[3], "201")
}
