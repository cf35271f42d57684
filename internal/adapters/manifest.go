package adapters

import (
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"oidn-release/internal/ports"
	"oidn-release/internal/types"
)

// DependencyManifestAdapter loads an optional YAML manifest that
// overrides the pinned version or download base URL of the built-in
// dependencies. An empty path yields the built-ins unchanged.
type DependencyManifestAdapter struct{}

func NewDependencyManifestAdapter() DependencyManifestAdapter {
	return DependencyManifestAdapter{}
}

type manifestFile struct {
	Dependencies []manifestEntry `yaml:"dependencies"`
}

type manifestEntry struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	URL     string `yaml:"url"`
}

func (a DependencyManifestAdapter) LoadDependencies(path string) ([]types.Dependency, error) {
	deps := types.BuiltinDependencies()
	if strings.TrimSpace(path) == "" {
		return deps, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("dependency manifest not found").
			WithCause(err)
	}
	var manifest manifestFile
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse dependency manifest yaml").
			WithCause(err)
	}
	for _, entry := range manifest.Dependencies {
		index := -1
		for i, dep := range deps {
			if dep.Name == entry.Name {
				index = i
				break
			}
		}
		if index < 0 {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unknown dependency in manifest: %s", entry.Name))
		}
		if strings.TrimSpace(entry.Version) != "" {
			deps[index].Version = strings.TrimSpace(entry.Version)
		}
		if strings.TrimSpace(entry.URL) != "" {
			deps[index].BaseURL = strings.TrimSpace(entry.URL)
		}
	}
	return deps, nil
}

var _ ports.DependencyManifestPort = DependencyManifestAdapter{}
