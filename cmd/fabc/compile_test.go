package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempSource(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.fab")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestRunCompileWritesOutputToStdout(t *testing.T) {
	path := writeTempSource(t, `fixum x = 1;`)

	cmd := newCompileCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--target", "ts", path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "const x")
	assert.Empty(t, errOut.String())
}

func TestRunCompileReadsFromStdinWhenNoFileGiven(t *testing.T) {
	cmd := newCompileCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(bytes.NewBufferString(`fixum x = 1;`))
	cmd.SetArgs([]string{"--target", "ts"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "const x")
}

func TestRunCompileUnknownTargetReturnsCLIError(t *testing.T) {
	path := writeTempSource(t, `fixum x = 1;`)

	cmd := newCompileCmd()
	cmd.SetOut(&bytes.Buffer{})
	var errOut bytes.Buffer
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--target", "cobol", path})

	err := cmd.Execute()
	assert.Error(t, err)
	assert.NotEmpty(t, errOut.String())
}

func TestRunCompileMissingFileReturnsIOError(t *testing.T) {
	cmd := newCompileCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--target", "ts", filepath.Join(t.TempDir(), "missing.fab")})

	err := cmd.Execute()
	assert.Error(t, err)
}

func TestRunCompileJSONEnvelopeContainsRunIDAndOutput(t *testing.T) {
	path := writeTempSource(t, `fixum x = 1;`)

	cmd := newCompileCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--target", "ts", "--json", path})

	require.NoError(t, cmd.Execute())

	var envelope jsonResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.RunID)
	assert.True(t, envelope.Success)
	assert.Contains(t, envelope.Output, "const x")
}

func TestTargetListJoinsAllSixTargets(t *testing.T) {
	list := targetList()
	for _, want := range []string{"ts", "py", "rs", "zig", "go", "cpp"} {
		assert.Contains(t, list, want)
	}
}
