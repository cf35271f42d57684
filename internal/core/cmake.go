package core

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"oidn-release/internal/types"
)

// EnvLookup resolves an environment variable. Injected so command
// assembly stays deterministic under test.
type EnvLookup func(key string) string

// unixCompilers maps a compiler identifier to its C++ companion
// executable. The C executable name equals the identifier itself.
var unixCompilers = map[types.Compiler]string{
	types.CompilerGCC:   "g++",
	types.CompilerClang: "clang++",
	types.CompilerICC:   "icpc",
}

// msvcGenerators maps an MSVC toolset identifier to the Visual Studio
// generator version string.
var msvcGenerators = map[string]string{
	"msvc15": "15 2017",
	"msvc16": "16 2019",
}

// ICCDirEnvKey names the environment variable that relocates the Intel
// compiler installation for a platform.
func ICCDirEnvKey(platform types.Platform) string {
	return "OIDN_ICC_DIR_" + strings.ToUpper(string(platform))
}

// SignFileEnvKey names the environment variable holding the signing tool
// path for a platform.
func SignFileEnvKey(platform types.Platform) string {
	return "OIDN_SIGN_FILE_" + strings.ToUpper(string(platform))
}

// ConfigureArgs assembles the CMake configure invocation for a build
// selection. ispcPath and tbbRoot are the provisioned dependency roots;
// both become cache entries. The final argument is the source directory
// relative to the build directory.
func ConfigureArgs(ctx context.Context, sel types.BuildSelection, ispcPath string, tbbRoot string, env EnvLookup) ([]string, error) {
	assert.NotEmpty(ctx, ispcPath, "ispc executable path must be set")
	assert.NotEmpty(ctx, tbbRoot, "tbb root path must be set")

	args := []string{"cmake", "-L"}
	if sel.Platform == types.PlatformWindows {
		generator, toolset, err := windowsGenerator(sel.Compiler)
		if err != nil {
			return nil, err
		}
		args = append(args, "-G", generator)
		if toolset != "" {
			args = append(args, "-T", toolset)
		}
		args = append(args, "-D", "ISPC_EXECUTABLE="+ispcPath+".exe")
	} else {
		cc, cxx, err := unixCompilerPair(sel, env)
		if err != nil {
			return nil, err
		}
		args = append(args,
			"-D", "CMAKE_C_COMPILER:FILEPATH="+cc,
			"-D", "CMAKE_CXX_COMPILER:FILEPATH="+cxx,
			"-D", "CMAKE_BUILD_TYPE="+string(sel.Config),
			"-D", "ISPC_EXECUTABLE="+ispcPath,
		)
	}
	args = append(args, "-D", "TBB_ROOT="+tbbRoot)
	for _, entry := range sel.CacheVars {
		args = append(args, "-D", entry)
	}
	args = append(args, "..")

	log.Ctx(ctx).Debug().
		Str("compiler", string(sel.Compiler)).
		Str("config", string(sel.Config)).
		Msg("configure command assembled")
	return args, nil
}

// unixCompilerPair resolves the C and C++ compiler executables for a
// non-Windows selection. For icc an optional installation directory from
// the environment relocates both executables.
func unixCompilerPair(sel types.BuildSelection, env EnvLookup) (string, string, error) {
	cxx, ok := unixCompilers[sel.Compiler]
	if !ok {
		return "", "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("no compiler executable mapping for %s", sel.Compiler))
	}
	cc := string(sel.Compiler)
	if sel.Compiler == types.CompilerICC && env != nil {
		if dir := env(ICCDirEnvKey(sel.Platform)); dir != "" {
			cc = filepath.Join(dir, cc)
			cxx = filepath.Join(dir, cxx)
		}
	}
	return cc, cxx, nil
}

// windowsGenerator resolves a compound Windows compiler identifier into
// the Visual Studio generator string and, when an ICC suffix is present,
// the explicit toolset label.
func windowsGenerator(compiler types.Compiler) (string, string, error) {
	var generator string
	var toolset string
	for _, part := range strings.Split(string(compiler), "-") {
		switch {
		case strings.HasPrefix(part, "msvc"):
			version, ok := msvcGenerators[part]
			if !ok {
				return "", "", errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("unknown msvc toolset: %s", part))
			}
			generator = fmt.Sprintf("Visual Studio %s Win64", version)
		case strings.HasPrefix(part, "icc"):
			toolset = fmt.Sprintf("Intel C++ Compiler %s.0", strings.TrimPrefix(part, "icc"))
		}
	}
	if generator == "" {
		return "", "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("compiler %s has no msvc toolset", compiler))
	}
	return generator, toolset, nil
}

// BuildArgs assembles the build-all invocation for a selection,
// prepending the optional wrapper command.
func BuildArgs(sel types.BuildSelection) []string {
	var args []string
	if sel.Platform == types.PlatformWindows {
		args = []string{"cmake", "--build", ".", "--config", string(sel.Config), "--target", "ALL_BUILD"}
	} else {
		args = []string{"cmake", "--build", ".", "--target", "preinstall", "--", "-j", "VERBOSE=1"}
	}
	if sel.Wrapper != "" {
		args = append(strings.Fields(sel.Wrapper), args...)
	}
	return args
}

// PackageConfigureArgs reconfigures an existing build directory with
// packaging mode enabled.
func PackageConfigureArgs() []string {
	return []string{"cmake", "-L", "-D", "OIDN_ZIP_MODE=ON", ".."}
}

// PackageBuildArgs assembles the package-producing build invocation.
func PackageBuildArgs(sel types.BuildSelection) []string {
	if sel.Platform == types.PlatformWindows {
		return []string{"cmake", "--build", ".", "--config", string(sel.Config), "--target", "PACKAGE"}
	}
	return []string{"cmake", "--build", ".", "--target", "package", "--", "-j", "VERBOSE=1"}
}
