package types

// Platform is the operating system a release run targets. It is detected
// once at process start and passed explicitly; nothing mutates it.
type Platform string

const (
	PlatformWindows Platform = "windows"
	PlatformLinux   Platform = "linux"
	PlatformMacOS   Platform = "macos"
)

// BuildConfig is the CMake build configuration.
type BuildConfig string

const (
	BuildConfigDebug          BuildConfig = "Debug"
	BuildConfigRelease        BuildConfig = "Release"
	BuildConfigRelWithDebInfo BuildConfig = "RelWithDebInfo"
)

// Compiler identifies a toolchain selection. On Windows the identifier is
// compound: an MSVC toolset optionally suffixed with an ICC version
// (e.g. msvc16-icc19).
type Compiler string

const (
	CompilerGCC   Compiler = "gcc"
	CompilerClang Compiler = "clang"
	CompilerICC   Compiler = "icc"

	CompilerMSVC15      Compiler = "msvc15"
	CompilerMSVC15ICC18 Compiler = "msvc15-icc18"
	CompilerMSVC15ICC19 Compiler = "msvc15-icc19"
	CompilerMSVC15ICC20 Compiler = "msvc15-icc20"
	CompilerMSVC16      Compiler = "msvc16"
	CompilerMSVC16ICC19 Compiler = "msvc16-icc19"
	CompilerMSVC16ICC20 Compiler = "msvc16-icc20"
)

var platformCompilers = map[Platform][]Compiler{
	PlatformWindows: {
		CompilerMSVC15, CompilerMSVC15ICC18, CompilerMSVC15ICC19, CompilerMSVC15ICC20,
		CompilerMSVC16, CompilerMSVC16ICC19, CompilerMSVC16ICC20,
	},
	PlatformLinux: {CompilerGCC, CompilerClang, CompilerICC},
	PlatformMacOS: {CompilerClang, CompilerICC},
}

// CompilersFor returns the allowed compiler identifiers for a platform,
// in preference order. The first entry is the default.
func CompilersFor(platform Platform) []Compiler {
	return platformCompilers[platform]
}

// DefaultCompiler returns the first allowed compiler for a platform.
func DefaultCompiler(platform Platform) Compiler {
	compilers := platformCompilers[platform]
	if len(compilers) == 0 {
		return ""
	}
	return compilers[0]
}

// Stage is a release pipeline stage selectable on the command line.
type Stage string

const (
	StageBuild   Stage = "build"
	StagePackage Stage = "package"
)

var validBuildConfigs = map[BuildConfig]struct{}{
	BuildConfigDebug:          {},
	BuildConfigRelease:        {},
	BuildConfigRelWithDebInfo: {},
}

var validStages = map[Stage]struct{}{
	StageBuild:   {},
	StagePackage: {},
}

// ValidBuildConfig reports whether value names a known build configuration.
func ValidBuildConfig(value BuildConfig) bool {
	_, ok := validBuildConfigs[value]
	return ok
}

// ValidStage reports whether value names a known pipeline stage.
func ValidStage(value Stage) bool {
	_, ok := validStages[value]
	return ok
}

// ValidCompiler reports whether compiler is allowed on the given platform.
func ValidCompiler(platform Platform, compiler Compiler) bool {
	for _, candidate := range platformCompilers[platform] {
		if candidate == compiler {
			return true
		}
	}
	return false
}
