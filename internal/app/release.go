package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"oidn-release/internal/types"
)

// Release runs the requested pipeline stages in fixed order: build, then
// package. An empty stage list is a no-op. Every failure is fatal at the
// point of detection; nothing is retried.
func (s Service) Release(ctx context.Context, req ReleaseRequest) (ReleaseResult, error) {
	stages := map[types.Stage]struct{}{}
	for _, stage := range req.Stages {
		if !types.ValidStage(stage) {
			return ReleaseResult{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("unknown stage: " + string(stage))
		}
		stages[stage] = struct{}{}
	}

	dirs, err := s.resolveDirs(req.Selection.Config)
	if err != nil {
		return ReleaseResult{}, err
	}
	result := ReleaseResult{BuildDir: dirs.Build}

	if _, ok := stages[types.StageBuild]; ok {
		if err := s.runBuild(ctx, req, dirs); err != nil {
			return ReleaseResult{}, err
		}
	}
	if _, ok := stages[types.StagePackage]; ok {
		artifact, err := s.runPackage(ctx, req.Selection, dirs)
		if err != nil {
			return ReleaseResult{}, err
		}
		result.PackagePath = artifact.ArchivePath
		result.Binaries = artifact.Binaries
	}
	return result, nil
}

// resolveDirs derives the run's directories: the root from the
// OIDN_ROOT_DIR override (falling back to the working directory), the
// dependency cache under it, and a per-configuration build directory.
func (s Service) resolveDirs(config types.BuildConfig) (runDirs, error) {
	root := strings.TrimSpace(s.Env("OIDN_ROOT_DIR"))
	if root == "" {
		cwd, err := s.Getwd()
		if err != nil {
			return runDirs{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to determine working directory").
				WithCause(err)
		}
		root = cwd
	}
	deps := filepath.Join(root, "deps")
	if err := os.MkdirAll(deps, 0o755); err != nil {
		return runDirs{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create dependency cache directory").
			WithCause(err)
	}
	build := filepath.Join(root, "build_"+strings.ToLower(string(config)))
	return runDirs{Root: root, Deps: deps, Build: build}, nil
}
