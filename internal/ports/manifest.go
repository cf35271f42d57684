package ports

import "oidn-release/internal/types"

// DependencyManifestPort loads dependency pin overrides from a manifest
// file and applies them to the built-in dependency set.
type DependencyManifestPort interface {
	LoadDependencies(path string) ([]types.Dependency, error)
}
