package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeResponse(t *testing.T, buf *bytes.Buffer) CLIResponse {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	return resp
}

func TestOutputFormatter_JSON(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		buf := &bytes.Buffer{}
		f := &OutputFormatter{Format: "json", Writer: buf}

		require.NoError(t, f.Success(FingerprintResult{Name: "adults", Fingerprint: "ab12"}))

		resp := decodeResponse(t, buf)
		assert.Equal(t, "ok", resp.Status)
		assert.Empty(t, resp.Session)
		assert.Equal(t, map[string]any{"name": "adults", "fingerprint": "ab12"}, resp.Data)
	})

	t.Run("success in session", func(t *testing.T) {
		buf := &bytes.Buffer{}
		f := &OutputFormatter{Format: "json", Writer: buf}

		require.NoError(t, f.SuccessInSession("session-1", ExplainResult{Plan: "FILTER"}))

		resp := decodeResponse(t, buf)
		assert.Equal(t, "session-1", resp.Session)
	})

	t.Run("error with details", func(t *testing.T) {
		buf := &bytes.Buffer{}
		f := &OutputFormatter{Format: "json", Writer: buf}

		details := []string{"plan.input: cache requires input"}
		require.NoError(t, f.Error(ErrCodeMissingField, "building plan", details))

		resp := decodeResponse(t, buf)
		assert.Equal(t, "error", resp.Status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "E103", resp.Error.Code)
		assert.Equal(t, "building plan", resp.Error.Message)
		assert.Equal(t, []any{"plan.input: cache requires input"}, resp.Error.Details)
	})
}

func TestOutputFormatter_Text(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		write   func(*OutputFormatter) error
		want    string
	}{
		{
			name:  "success",
			write: func(f *OutputFormatter) error { return f.Success("✓ post-order") },
			want:  "✓ post-order\n",
		},
		{
			name:  "error hides details",
			write: func(f *OutputFormatter) error { return f.Error(ErrCodeDecode, "loading plan file", "line 3") },
			want:  "Error [E004]: loading plan file\n",
		},
		{
			name:    "verbose error shows details",
			verbose: true,
			write:   func(f *OutputFormatter) error { return f.Error(ErrCodeDecode, "loading plan file", "line 3") },
			want:    "Error [E004]: loading plan file\nDetails: line 3\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			f := &OutputFormatter{Format: "text", Writer: buf, Verbose: tt.verbose}

			require.NoError(t, tt.write(f))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	t.Run("quiet", func(t *testing.T) {
		buf := &bytes.Buffer{}
		f := &OutputFormatter{Format: "text", Writer: buf}

		f.VerboseLog("Loaded %s", "plan.yaml")
		assert.Empty(t, buf.String())
	})

	t.Run("text goes to writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		f := &OutputFormatter{Format: "text", Writer: buf, Verbose: true}

		f.VerboseLog("Loaded %s", "plan.yaml")
		assert.Equal(t, "Loaded plan.yaml\n", buf.String())
	})

	t.Run("json keeps stdout parseable", func(t *testing.T) {
		out, diag := &bytes.Buffer{}, &bytes.Buffer{}
		f := &OutputFormatter{Format: "json", Writer: out, ErrWriter: diag, Verbose: true}

		f.VerboseLog("lowered %d node(s)", 3)
		assert.Empty(t, out.String())
		assert.Equal(t, "lowered 3 node(s)\n", diag.String())
	})
}

func TestExitErrors(t *testing.T) {
	load := WrapExitError(ExitCommandError, "loading plan file", assert.AnError)
	assert.Equal(t, ExitCommandError, GetExitCode(load))
	assert.Equal(t, "loading plan file: "+assert.AnError.Error(), load.Error())
	assert.ErrorIs(t, load, assert.AnError)

	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
	assert.Equal(t, "--db is required", NewExitError(ExitCommandError, "--db is required").Error())
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeGeneric, errorCode(assert.AnError))
}
