package types

import "strings"

// Dependency describes a third-party build-time dependency fetched as a
// prebuilt release archive. The release name and archive suffix vary per
// platform; RootSubdir is the path inside the extracted tree handed to
// CMake as a cache variable.
type Dependency struct {
	Name            string
	Version         string
	BaseURL         string
	ReleasePrefix   string
	OSNames         map[Platform]string
	ArchiveSuffixes map[Platform]string
	RootSubdir      string
}

// ReleaseName returns the platform-specific release identifier, which is
// both the archive basename (without suffix) and the local directory name
// under the dependency cache.
func (d Dependency) ReleaseName(platform Platform) string {
	return d.ReleasePrefix + d.Version + "-" + d.OSNames[platform]
}

// DownloadURL returns the full release archive URL for a platform.
func (d Dependency) DownloadURL(platform Platform) string {
	base := strings.ReplaceAll(d.BaseURL, "{version}", d.Version)
	return base + d.ReleaseName(platform) + d.ArchiveSuffixes[platform]
}

const (
	DependencyISPC = "ispc"
	DependencyTBB  = "tbb"

	defaultISPCVersion = "1.13.0"
	defaultTBBVersion  = "2020.2"
)

// BuiltinDependencies returns the pinned dependency set: the ISPC shader
// compiler and the TBB parallelism runtime. A dependency manifest file may
// override the version or base URL of either entry.
func BuiltinDependencies() []Dependency {
	return []Dependency{
		{
			Name:          DependencyISPC,
			Version:       defaultISPCVersion,
			BaseURL:       "https://github.com/ispc/ispc/releases/download/v{version}/",
			ReleasePrefix: "ispc-v",
			OSNames: map[Platform]string{
				PlatformWindows: "windows",
				PlatformLinux:   "linux",
				PlatformMacOS:   "macOS",
			},
			ArchiveSuffixes: map[Platform]string{
				PlatformWindows: ".zip",
				PlatformLinux:   ".tar.gz",
				PlatformMacOS:   ".tar.gz",
			},
			RootSubdir: "bin/ispc",
		},
		{
			Name:          DependencyTBB,
			Version:       defaultTBBVersion,
			BaseURL:       "https://github.com/oneapi-src/oneTBB/releases/download/v{version}/",
			ReleasePrefix: "tbb-",
			OSNames: map[Platform]string{
				PlatformWindows: "win",
				PlatformLinux:   "lin",
				PlatformMacOS:   "mac",
			},
			ArchiveSuffixes: map[Platform]string{
				PlatformWindows: ".zip",
				PlatformLinux:   ".tgz",
				PlatformMacOS:   ".tgz",
			},
			RootSubdir: "tbb",
		},
	}
}
