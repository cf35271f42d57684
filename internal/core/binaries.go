package core

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"oidn-release/internal/types"
)

var archiveSuffixPattern = regexp.MustCompile(`\.(tar(\..*)?|zip)$`)

// StripArchiveSuffix removes the package archive suffix from a filename,
// yielding the name of the top-level directory the archive extracts to.
func StripArchiveSuffix(filename string) string {
	return archiveSuffixPattern.ReplaceAllString(filename, "")
}

// DiscoverBinaries lists the binaries of an extracted package that need
// inspection and signing: everything under bin/, plus shared libraries
// under lib/ on linux and macos. Symbolic links and other non-regular
// entries are excluded.
func DiscoverBinaries(packageDir string, platform types.Platform) ([]string, error) {
	var binaries []string
	collect := func(dir string, pattern string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to list package directory").
				WithCause(err)
		}
		for _, entry := range entries {
			if pattern != "" {
				if matched, _ := filepath.Match(pattern, entry.Name()); !matched {
					continue
				}
			}
			path := filepath.Join(dir, entry.Name())
			info, err := os.Lstat(path)
			if err != nil {
				return errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("failed to stat package entry").
					WithCause(err)
			}
			if !info.Mode().IsRegular() {
				continue
			}
			binaries = append(binaries, path)
		}
		return nil
	}

	if err := collect(filepath.Join(packageDir, "bin"), ""); err != nil {
		return nil, err
	}
	switch platform {
	case types.PlatformLinux:
		if err := collect(filepath.Join(packageDir, "lib"), "*.so*"); err != nil {
			return nil, err
		}
	case types.PlatformMacOS:
		if err := collect(filepath.Join(packageDir, "lib"), "*.dylib"); err != nil {
			return nil, err
		}
	}
	return binaries, nil
}
