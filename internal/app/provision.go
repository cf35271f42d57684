package app

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"oidn-release/internal/types"
)

// EnsureDependency makes a dependency's release available under the
// dependency cache and returns its root path for use as a build
// variable. An existing local directory is trusted as-is: no download,
// no re-validation.
func (s Service) EnsureDependency(ctx context.Context, dep types.Dependency, platform types.Platform, depsDir string) (string, error) {
	release := dep.ReleaseName(platform)
	localDir := filepath.Join(depsDir, release)
	rootPath := filepath.Join(localDir, filepath.FromSlash(dep.RootSubdir))

	if info, err := os.Stat(localDir); err == nil && info.IsDir() {
		log.Ctx(ctx).Debug().Str("dependency", dep.Name).Str("dir", localDir).Msg("dependency already present")
		return rootPath, nil
	}

	archivePath, err := s.Download.Download(ctx, dep.DownloadURL(platform), depsDir)
	if err != nil {
		return "", err
	}
	if err := s.Archive.Extract(archivePath, localDir); err != nil {
		return "", err
	}
	if err := os.Remove(archivePath); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to remove downloaded archive").
			WithCause(err)
	}
	log.Ctx(ctx).Info().Str("dependency", dep.Name).Str("release", release).Msg("dependency provisioned")
	return rootPath, nil
}
