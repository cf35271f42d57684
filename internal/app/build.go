package app

import (
	"context"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"oidn-release/internal/core"
	"oidn-release/internal/types"
)

// runBuild provisions both dependencies, recreates the build directory
// from scratch, and runs the configure and build-all commands. Builds
// are always clean, never incremental.
func (s Service) runBuild(ctx context.Context, req ReleaseRequest, dirs runDirs) error {
	deps, err := s.Manifest.LoadDependencies(req.ManifestPath)
	if err != nil {
		return err
	}
	roots := map[string]string{}
	for _, dep := range deps {
		root, err := s.EnsureDependency(ctx, dep, req.Selection.Platform, dirs.Deps)
		if err != nil {
			return err
		}
		roots[dep.Name] = root
	}

	if err := os.RemoveAll(dirs.Build); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to remove previous build directory").
			WithCause(err)
	}
	if err := os.Mkdir(dirs.Build, 0o755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create build directory").
			WithCause(err)
	}

	configure, err := core.ConfigureArgs(ctx, req.Selection, roots[types.DependencyISPC], roots[types.DependencyTBB], s.Env)
	if err != nil {
		return err
	}
	if err := s.Runner.Run(ctx, dirs.Build, configure); err != nil {
		return err
	}
	if err := s.Runner.Run(ctx, dirs.Build, core.BuildArgs(req.Selection)); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Str("dir", dirs.Build).Msg("build stage completed")
	return nil
}
