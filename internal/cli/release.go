package cli

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"oidn-release/internal/app"
	"oidn-release/internal/types"
)

type releaseOptions struct {
	Compiler     string
	Config       string
	Wrapper      string
	CacheVars    []string
	DepsManifest string
}

func registerReleaseFlags(cmd *cobra.Command, opts *releaseOptions) {
	cmd.Flags().StringVar(&opts.Compiler, "compiler", "", "Compiler identifier (platform-constrained)")
	cmd.Flags().StringVar(&opts.Config, "config", string(types.BuildConfigRelease), "Build configuration (Debug, Release, or RelWithDebInfo)")
	cmd.Flags().StringVar(&opts.Wrapper, "wrapper", "", "Wrap the build command (e.g. a caching wrapper)")
	cmd.Flags().StringArrayVarP(&opts.CacheVars, "define", "D", nil, "Create or update a CMake cache entry (KEY=VALUE, repeatable)")
	cmd.Flags().StringVar(&opts.DepsManifest, "deps-manifest", "", "Dependency pin override manifest (yaml)")

	_ = viper.BindPFlag("compiler", cmd.Flags().Lookup("compiler"))
	_ = viper.BindPFlag("build_config", cmd.Flags().Lookup("config"))
	_ = viper.BindPFlag("wrapper", cmd.Flags().Lookup("wrapper"))
	_ = viper.BindPFlag("deps_manifest", cmd.Flags().Lookup("deps-manifest"))
}

func runRelease(ctx context.Context, cmd *cobra.Command, args []string, opts releaseOptions) error {
	platform, err := types.DetectPlatform(runtime.GOOS)
	if err != nil {
		return err
	}
	selection, err := types.NewBuildSelection(
		platform,
		types.Compiler(resolveString(cmd, opts.Compiler, "compiler", "compiler")),
		types.BuildConfig(resolveString(cmd, opts.Config, "build_config", "config")),
		resolveString(cmd, opts.Wrapper, "wrapper", "wrapper"),
		opts.CacheVars,
	)
	if err != nil {
		return err
	}

	stages := make([]types.Stage, 0, len(args))
	for _, arg := range args {
		stages = append(stages, types.Stage(arg))
	}

	service := newAppService()
	result, err := service.Release(ctx, app.ReleaseRequest{
		Stages:       stages,
		Selection:    selection,
		ManifestPath: resolveString(cmd, opts.DepsManifest, "deps_manifest", "deps-manifest"),
	})
	if err != nil {
		return err
	}
	if result.PackagePath != "" {
		fmt.Printf("package: %s\n", result.PackagePath)
	} else if len(stages) > 0 {
		fmt.Printf("build dir: %s\n", result.BuildDir)
	}
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
