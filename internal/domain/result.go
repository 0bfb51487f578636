package domain

import "time"

// OperationKind identifies a single filesystem step of a relocation.
type OperationKind string

// Operation kinds executed during relocation.
const (
	// OpMkdir creates a directory. The directory must not exist.
	OpMkdir OperationKind = "mkdir"

	// OpMove moves a file or directory. The source must exist and the
	// destination must not.
	OpMove OperationKind = "move"

	// OpMoveIfExists moves a directory like OpMove but is skipped when the
	// source is not an existing directory.
	OpMoveIfExists OperationKind = "move_if_exists"

	// OpDelete removes a single file.
	OpDelete OperationKind = "delete"
)

// Operation is one planned or executed filesystem step.
type Operation struct {
	Kind        OperationKind `json:"kind"`
	Source      string        `json:"source,omitempty"`
	Destination string        `json:"destination,omitempty"`

	// Skipped is set after execution when an OpMoveIfExists source was not a directory.
	Skipped bool `json:"skipped,omitempty"`
}

// Result describes the outcome of a finalize run.
//
// Example JSON representation:
//
//	{
//	    "run_id": "5f0c...",
//	    "target": "StandaloneOSX",
//	    "artifact_path": "build/Game.app",
//	    "output_path": "build/Game_1.1_9.app",
//	    "version_name": "Game_1.1_9",
//	    "version": "1.1",
//	    "version_code": "9",
//	    "operations": [{"kind": "move", "source": "build/Game.app", "destination": "build/Game_1.1_9.app"}],
//	    "dry_run": false
//	}
type Result struct {
	// RunID uniquely identifies the run in logs.
	RunID string `json:"run_id"`

	// Target is the build target the artifact was produced for.
	Target BuildTarget `json:"target"`

	// ArtifactPath is the path handed in by the build pipeline.
	ArtifactPath string `json:"artifact_path"`

	// OutputPath is where the build output lives after relocation.
	// It equals ArtifactPath when the target has no relocation rule.
	OutputPath string `json:"output_path"`

	// VersionName is "{productName}_{version}_{versionCode}".
	VersionName string `json:"version_name"`

	// Version is the human-readable version written to version.txt.
	Version string `json:"version"`

	// VersionCode is the contents of bundleVersionCode.txt used for naming.
	VersionCode string `json:"version_code"`

	// DeletedSymbols lists debug symbol files removed before relocation.
	DeletedSymbols []string `json:"deleted_symbols,omitempty"`

	// Operations lists the symbol deletions and relocation steps in execution order.
	Operations []Operation `json:"operations,omitempty"`

	// DryRun reports that nothing on disk was changed.
	DryRun bool `json:"dry_run"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Relocated reports whether the run moved the artifact.
func (r *Result) Relocated() bool {
	return r.OutputPath != "" && r.OutputPath != r.ArtifactPath
}

// Duration returns how long the run took.
func (r *Result) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
