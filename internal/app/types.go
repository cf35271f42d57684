package app

import "oidn-release/internal/types"

// ReleaseRequest selects the stages to run and carries the validated
// build selection. ManifestPath optionally points at a dependency pin
// override file.
type ReleaseRequest struct {
	Stages       []types.Stage
	Selection    types.BuildSelection
	ManifestPath string
}

// ReleaseResult reports where the run left its outputs. PackagePath is
// empty unless the package stage ran.
type ReleaseResult struct {
	BuildDir    string
	PackagePath string
	Binaries    []string
}

// runDirs are the filesystem locations a run operates in, derived once
// from the root directory and the build configuration.
type runDirs struct {
	Root  string
	Deps  string
	Build string
}
