package core

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oidn-release/internal/types"
)

func emptyEnv(string) string { return "" }

func mustSelection(t *testing.T, platform types.Platform, compiler types.Compiler, config types.BuildConfig, wrapper string, vars []string) types.BuildSelection {
	t.Helper()
	sel, err := types.NewBuildSelection(platform, compiler, config, wrapper, vars)
	require.NoError(t, err)
	return sel
}

// ---------------------------------------------------------------------------
// ConfigureArgs
// ---------------------------------------------------------------------------

func TestConfigureArgsLinuxClangRelease(t *testing.T) {
	sel := mustSelection(t, types.PlatformLinux, types.CompilerClang, types.BuildConfigRelease, "", nil)

	args, err := ConfigureArgs(context.Background(), sel, "/deps/ispc-v1.13.0-linux/bin/ispc", "/deps/tbb-2020.2-lin/tbb", emptyEnv)
	require.NoError(t, err)

	expected := []string{
		"cmake", "-L",
		"-D", "CMAKE_C_COMPILER:FILEPATH=clang",
		"-D", "CMAKE_CXX_COMPILER:FILEPATH=clang++",
		"-D", "CMAKE_BUILD_TYPE=Release",
		"-D", "ISPC_EXECUTABLE=/deps/ispc-v1.13.0-linux/bin/ispc",
		"-D", "TBB_ROOT=/deps/tbb-2020.2-lin/tbb",
		"..",
	}
	if diff := cmp.Diff(expected, args); diff != "" {
		t.Fatalf("configure args mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigureArgsGCCPair(t *testing.T) {
	sel := mustSelection(t, types.PlatformLinux, types.CompilerGCC, types.BuildConfigDebug, "", nil)

	args, err := ConfigureArgs(context.Background(), sel, "/deps/ispc/bin/ispc", "/deps/tbb/tbb", emptyEnv)
	require.NoError(t, err)
	assert.Contains(t, args, "CMAKE_C_COMPILER:FILEPATH=gcc")
	assert.Contains(t, args, "CMAKE_CXX_COMPILER:FILEPATH=g++")
	assert.Contains(t, args, "CMAKE_BUILD_TYPE=Debug")
}

func TestConfigureArgsICCDirOverride(t *testing.T) {
	sel := mustSelection(t, types.PlatformLinux, types.CompilerICC, types.BuildConfigRelease, "", nil)
	env := func(key string) string {
		if key == "OIDN_ICC_DIR_LINUX" {
			return "/opt/intel/bin"
		}
		return ""
	}

	args, err := ConfigureArgs(context.Background(), sel, "/deps/ispc/bin/ispc", "/deps/tbb/tbb", env)
	require.NoError(t, err)
	assert.Contains(t, args, "CMAKE_C_COMPILER:FILEPATH=/opt/intel/bin/icc")
	assert.Contains(t, args, "CMAKE_CXX_COMPILER:FILEPATH=/opt/intel/bin/icpc")
}

func TestConfigureArgsUserCacheVars(t *testing.T) {
	sel := mustSelection(t, types.PlatformLinux, types.CompilerClang, types.BuildConfigRelease, "", []string{"OIDN_STATIC_LIB=ON"})

	args, err := ConfigureArgs(context.Background(), sel, "/deps/ispc/bin/ispc", "/deps/tbb/tbb", emptyEnv)
	require.NoError(t, err)
	assert.Contains(t, args, "OIDN_STATIC_LIB=ON")
	assert.Equal(t, "..", args[len(args)-1])
}

func TestConfigureArgsWindowsCompound(t *testing.T) {
	sel := mustSelection(t, types.PlatformWindows, types.CompilerMSVC16ICC19, types.BuildConfigRelease, "", nil)

	args, err := ConfigureArgs(context.Background(), sel, `C:\deps\ispc\bin\ispc`, `C:\deps\tbb\tbb`, emptyEnv)
	require.NoError(t, err)
	assert.Contains(t, args, "Visual Studio 16 2019 Win64")
	assert.Contains(t, args, "Intel C++ Compiler 19.0")
	assert.Contains(t, args, `ISPC_EXECUTABLE=C:\deps\ispc\bin\ispc.exe`)
}

func TestConfigureArgsWindowsPlainMSVCOmitsToolset(t *testing.T) {
	sel := mustSelection(t, types.PlatformWindows, types.CompilerMSVC15, types.BuildConfigRelease, "", nil)

	args, err := ConfigureArgs(context.Background(), sel, `C:\ispc`, `C:\tbb`, emptyEnv)
	require.NoError(t, err)
	assert.Contains(t, args, "Visual Studio 15 2017 Win64")
	assert.NotContains(t, args, "-T")
}

// ---------------------------------------------------------------------------
// BuildArgs / package commands
// ---------------------------------------------------------------------------

func TestBuildArgsLinuxTargetsPreinstall(t *testing.T) {
	sel := mustSelection(t, types.PlatformLinux, types.CompilerClang, types.BuildConfigRelease, "", nil)
	args := BuildArgs(sel)
	assert.Equal(t, []string{"cmake", "--build", ".", "--target", "preinstall", "--", "-j", "VERBOSE=1"}, args)
}

func TestBuildArgsWindowsTargetsAllBuild(t *testing.T) {
	sel := mustSelection(t, types.PlatformWindows, types.CompilerMSVC16, types.BuildConfigRelWithDebInfo, "", nil)
	args := BuildArgs(sel)
	assert.Equal(t, []string{"cmake", "--build", ".", "--config", "RelWithDebInfo", "--target", "ALL_BUILD"}, args)
}

func TestBuildArgsWrapperPrefix(t *testing.T) {
	sel := mustSelection(t, types.PlatformLinux, types.CompilerGCC, types.BuildConfigRelease, "ccache -v", nil)
	args := BuildArgs(sel)
	assert.Equal(t, []string{"ccache", "-v", "cmake", "--build", ".", "--target", "preinstall", "--", "-j", "VERBOSE=1"}, args)
}

func TestPackageCommands(t *testing.T) {
	assert.Equal(t, []string{"cmake", "-L", "-D", "OIDN_ZIP_MODE=ON", ".."}, PackageConfigureArgs())

	linux := mustSelection(t, types.PlatformLinux, types.CompilerClang, types.BuildConfigRelease, "", nil)
	assert.Contains(t, PackageBuildArgs(linux), "package")

	windows := mustSelection(t, types.PlatformWindows, types.CompilerMSVC15, types.BuildConfigRelease, "", nil)
	assert.Contains(t, PackageBuildArgs(windows), "PACKAGE")
}

func TestEnvKeys(t *testing.T) {
	assert.Equal(t, "OIDN_ICC_DIR_MACOS", ICCDirEnvKey(types.PlatformMacOS))
	assert.Equal(t, "OIDN_SIGN_FILE_LINUX", SignFileEnvKey(types.PlatformLinux))
}
