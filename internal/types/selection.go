package types

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// BuildSelection is the validated build-matrix choice for a run: target
// platform, compiler identifier, build configuration, optional build
// command wrapper, and extra CMake cache entries. Immutable once built.
type BuildSelection struct {
	Platform  Platform
	Compiler  Compiler
	Config    BuildConfig
	Wrapper   string
	CacheVars []string
}

// NewBuildSelection validates the raw CLI input against the per-platform
// compiler allow-list and the build configuration enum.
func NewBuildSelection(platform Platform, compiler Compiler, config BuildConfig, wrapper string, cacheVars []string) (BuildSelection, error) {
	if compiler == "" {
		compiler = DefaultCompiler(platform)
	}
	if !ValidCompiler(platform, compiler) {
		return BuildSelection{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("compiler %s is not supported on %s (allowed: %s)",
				compiler, platform, joinCompilers(CompilersFor(platform))))
	}
	if config == "" {
		config = BuildConfigRelease
	}
	if !ValidBuildConfig(config) {
		return BuildSelection{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown build configuration: %s", config))
	}
	for _, entry := range cacheVars {
		if !strings.Contains(entry, "=") {
			return BuildSelection{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("cache entry %q is not KEY=VALUE", entry))
		}
	}
	return BuildSelection{
		Platform:  platform,
		Compiler:  compiler,
		Config:    config,
		Wrapper:   strings.TrimSpace(wrapper),
		CacheVars: cacheVars,
	}, nil
}

func joinCompilers(compilers []Compiler) string {
	names := make([]string, 0, len(compilers))
	for _, compiler := range compilers {
		names = append(names, string(compiler))
	}
	return strings.Join(names, ", ")
}
