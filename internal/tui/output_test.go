package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/postbuild/internal/domain"
	pberrors "github.com/mrz1836/postbuild/internal/errors"
	"github.com/mrz1836/postbuild/internal/testutil"
)

func TestOutputInterface(t *testing.T) {
	var buf bytes.Buffer
	var out Output = NewTTYOutput(&buf)
	assert.NotNil(t, out)

	out = NewJSONOutput(&buf)
	assert.NotNil(t, out)
}

func TestNewOutput(t *testing.T) {
	var buf bytes.Buffer
	assert.IsType(t, &JSONOutput{}, NewOutput(&buf, FormatJSON))
	assert.IsType(t, &TTYOutput{}, NewOutput(&buf, FormatText))
	assert.IsType(t, &TTYOutput{}, NewOutput(&buf, ""))
}

func TestTTYOutput_Messages(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name  string
		write func(o *TTYOutput)
		icon  string
		text  string
	}{
		{"success", func(o *TTYOutput) { o.Success("done") }, "✓", "done"},
		{"warning", func(o *TTYOutput) { o.Warning("careful") }, "⚠", "careful"},
		{"info", func(o *TTYOutput) { o.Info("note") }, "ℹ", "note"},
		{"error", func(o *TTYOutput) { o.Error(pberrors.ErrTargetExists) }, "✗", "already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.write(NewTTYOutput(&buf))
			assert.Contains(t, buf.String(), tt.icon)
			assert.Contains(t, buf.String(), tt.text)
		})
	}
}

func TestTTYOutput_ActionableError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer

	err := fmt.Errorf("move build/Game.exe: %w", pberrors.ErrTargetExists)
	NewTTYOutput(&buf).Error(NewActionableError(err))

	out := buf.String()
	assert.Contains(t, out, "✗ The renamed build output already exists.")
	assert.Contains(t, out, "move build/Game.exe")
	assert.Contains(t, out, "▸ Try: Remove or archive the earlier output")
}

func TestTTYOutput_Table(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer

	NewTTYOutput(&buf).Table([]string{"TARGET", "EXT"}, [][]string{
		{"Android", ".apk"},
		{"StandaloneOSX", ".app"},
		{"WebGL"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "TARGET         EXT", lines[0])
	assert.Equal(t, "Android        .apk", lines[1])
	assert.Equal(t, "WebGL", lines[3])
}

func TestTTYOutput_OperationLabels(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	o := NewTTYOutput(&buf)

	assert.Equal(t, "delete build/Game.pdb", o.operation(domain.Operation{Kind: domain.OpDelete, Source: "build/Game.pdb"}))
	assert.Equal(t, "move   a → b", o.operation(domain.Operation{Kind: domain.OpMove, Source: "a", Destination: "b"}))
	assert.Equal(t, "move   a → b (if present)", o.operation(domain.Operation{Kind: domain.OpMoveIfExists, Source: "a", Destination: "b"}))
}

func TestJSONOutput_TableNoHeaders(t *testing.T) {
	var buf bytes.Buffer
	NewJSONOutput(&buf).Table(nil, [][]string{{"x"}})
	assert.JSONEq(t, "[]", buf.String())
}

func TestTTYOutput_TableNoHeaders(t *testing.T) {
	var buf bytes.Buffer
	NewTTYOutput(&buf).Table(nil, [][]string{{"x"}})
	assert.Empty(t, buf.String())
}

func TestTTYOutput_Result(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	relocated := &domain.Result{
		Target:       domain.TargetWebGL,
		ArtifactPath: "build/WebBuild",
		OutputPath:   "build/WebBuild/Game_1.0_3",
		Version:      "1.0",
		VersionCode:  "3",
		Operations: []domain.Operation{
			{Kind: domain.OpMkdir, Destination: "build/WebBuild/Game_1.0_3"},
			{Kind: domain.OpMove, Source: "build/WebBuild/index.html", Destination: "build/WebBuild/Game_1.0_3/index.html"},
			{Kind: domain.OpMoveIfExists, Source: "build/WebBuild/Release", Destination: "build/WebBuild/Game_1.0_3/Release", Skipped: true},
		},
	}

	t.Run("applied", func(t *testing.T) {
		var buf bytes.Buffer
		NewTTYOutput(&buf).Result(relocated)
		out := buf.String()
		assert.Contains(t, out, "mkdir  build/WebBuild/Game_1.0_3")
		assert.Contains(t, out, "(no folder, skipped)")
		assert.Contains(t, out, "✓ finalized WebGL build: build/WebBuild/Game_1.0_3")
		assert.NotContains(t, out, "dry run")
	})

	t.Run("dry run", func(t *testing.T) {
		r := *relocated
		r.DryRun = true
		var buf bytes.Buffer
		NewTTYOutput(&buf).Result(&r)
		out := buf.String()
		assert.Contains(t, out, "⚠ dry run")
		assert.Contains(t, out, "would finalize WebGL build as build/WebBuild/Game_1.0_3")
	})

	t.Run("no relocation", func(t *testing.T) {
		var buf bytes.Buffer
		NewTTYOutput(&buf).Result(&domain.Result{
			Target:       domain.TargetIOS,
			ArtifactPath: "build/ios",
			OutputPath:   "build/ios",
			Version:      "2.0",
			VersionCode:  "12",
		})
		assert.Contains(t, buf.String(), "wrote version 2.0 (12), no relocation for iOS")
	})
}

func TestJSONOutput_Messages(t *testing.T) {
	var buf bytes.Buffer
	out := NewJSONOutput(&buf)

	out.Success("ok")
	out.Warning("hmm")
	out.Info("fyi")

	dec := json.NewDecoder(&buf)
	for _, want := range []jsonMessage{{typeSuccess, "ok"}, {typeWarning, "hmm"}, {typeInfo, "fyi"}} {
		var got jsonMessage
		require.NoError(t, dec.Decode(&got))
		assert.Equal(t, want, got)
	}
}

func TestJSONOutput_Error(t *testing.T) {
	t.Run("plain error", func(t *testing.T) {
		var buf bytes.Buffer
		NewJSONOutput(&buf).Error(pberrors.ErrSourceMissing)

		var got jsonError
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "error", got.Type)
		assert.Equal(t, "source path does not exist", got.Message)
		assert.Empty(t, got.Suggestion)
	})

	t.Run("actionable error", func(t *testing.T) {
		var buf bytes.Buffer
		err := fmt.Errorf("build/Game.app: %w", pberrors.ErrArtifactNotFound)
		NewJSONOutput(&buf).Error(NewActionableError(err))

		var got jsonError
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "The build artifact does not exist.", got.Message)
		assert.Equal(t, "build/Game.app: build artifact not found", got.Details)
		assert.NotEmpty(t, got.Suggestion)
	})
}

func TestJSONOutput_Table(t *testing.T) {
	var buf bytes.Buffer
	NewJSONOutput(&buf).Table([]string{"target", "family"}, [][]string{{"WebGL", "web"}, {"PS4"}})

	var got []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []map[string]string{
		{"target": "WebGL", "family": "web"},
		{"target": "PS4", "family": ""},
	}, got)
}

func TestJSONOutput_Result(t *testing.T) {
	var buf bytes.Buffer
	NewJSONOutput(&buf).Result(&domain.Result{
		RunID:        "abc",
		Target:       domain.TargetStandaloneOSX,
		ArtifactPath: "build/Game.app",
		OutputPath:   "build/Game_1.1_9.app",
		VersionName:  "Game_1.1_9",
		DryRun:       true,
	})

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "abc", got["run_id"])
	assert.Equal(t, "StandaloneOSX", got["target"])
	assert.Equal(t, "build/Game_1.1_9.app", got["output_path"])
	assert.Equal(t, true, got["dry_run"])
}

func TestActionableError_UnknownError(t *testing.T) {
	err := NewActionableError(testutil.ErrSimulatedIO)
	assert.Equal(t, "simulated I/O failure", err.Error())
	assert.Empty(t, err.Suggestion)
	assert.ErrorIs(t, err, testutil.ErrSimulatedIO)
}

func TestHasColorSupport(t *testing.T) {
	t.Run("no color when NO_COLOR is set", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		assert.False(t, HasColorSupport())
	})

	t.Run("no color for dumb terminals", func(t *testing.T) {
		t.Setenv("TERM", "dumb")
		assert.False(t, HasColorSupport())
	})
}
