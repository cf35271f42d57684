package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"oidn-release/internal/core"
	"oidn-release/internal/types"
)

// packagePrefix is the fixed filename prefix of the distributable
// archive emitted by the packaging target.
const packagePrefix = "oidn-"

// runPackage reconfigures the existing build directory in packaging
// mode, produces the distributable archive, extracts it for inspection,
// verifies symbol version ceilings on linux, optionally signs the
// binaries and repacks, and finally removes the extracted scratch
// directory.
func (s Service) runPackage(ctx context.Context, sel types.BuildSelection, dirs runDirs) (types.PackageArtifact, error) {
	if err := s.Runner.Run(ctx, dirs.Build, core.PackageConfigureArgs()); err != nil {
		return types.PackageArtifact{}, err
	}
	if err := s.Runner.Run(ctx, dirs.Build, core.PackageBuildArgs(sel)); err != nil {
		return types.PackageArtifact{}, err
	}

	archivePath, err := findPackageArchive(dirs.Build)
	if err != nil {
		return types.PackageArtifact{}, err
	}
	if err := s.Archive.Extract(archivePath, dirs.Build); err != nil {
		return types.PackageArtifact{}, err
	}
	packageDir := core.StripArchiveSuffix(archivePath)

	binaries, err := core.DiscoverBinaries(packageDir, sel.Platform)
	if err != nil {
		return types.PackageArtifact{}, err
	}

	if sel.Platform == types.PlatformLinux {
		for _, binary := range binaries {
			log.Ctx(ctx).Info().Str("binary", filepath.Base(binary)).Msg("checking symbols")
			symbols, err := s.Symbols.Symbols(ctx, binary)
			if err != nil {
				return types.PackageArtifact{}, err
			}
			if err := core.CheckSymbols(ctx, binary, symbols, types.SymbolCeilings()); err != nil {
				return types.PackageArtifact{}, err
			}
		}
	}

	if signFile := strings.TrimSpace(s.Env(core.SignFileEnvKey(sel.Platform))); signFile != "" {
		for _, binary := range binaries {
			if err := s.Runner.Run(ctx, "", []string{signFile, "-q", "-vv", binary}); err != nil {
				return types.PackageArtifact{}, err
			}
		}
		if err := os.Remove(archivePath); err != nil {
			return types.PackageArtifact{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to remove unsigned package").
				WithCause(err)
		}
		if err := s.Archive.Create(archivePath, packageDir); err != nil {
			return types.PackageArtifact{}, err
		}
	}

	// The extracted tree is scratch space for inspection and signing,
	// never a persisted artifact.
	if err := os.RemoveAll(packageDir); err != nil {
		return types.PackageArtifact{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to remove extracted package directory").
			WithCause(err)
	}
	log.Ctx(ctx).Info().Str("package", filepath.Base(archivePath)).Msg("package stage completed")
	return types.PackageArtifact{ArchivePath: archivePath, Dir: packageDir, Binaries: binaries}, nil
}

// findPackageArchive locates the distributable archive by its fixed
// filename prefix. Zero matches means the packaging target produced
// nothing; more than one means the build directory holds stale
// artifacts and the choice would be ambiguous.
func findPackageArchive(buildDir string) (string, error) {
	entries, err := os.ReadDir(buildDir)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to list build directory").
			WithCause(err)
	}
	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), packagePrefix) {
			matches = append(matches, filepath.Join(buildDir, entry.Name()))
		}
	}
	switch len(matches) {
	case 0:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no package artifact matching " + packagePrefix + "* in " + buildDir)
	case 1:
		return matches[0], nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("ambiguous package artifacts matching " + packagePrefix + "* in " + buildDir)
	}
}
