package types

// PackageArtifact is a distributable package produced by the package
// stage: the archive on disk, the directory it was extracted into for
// inspection, and the binaries discovered inside it. The extracted
// directory is scratch space and is removed at the end of the stage.
type PackageArtifact struct {
	ArchivePath string
	Dir         string
	Binaries    []string
}

// SymbolCeiling is the maximum runtime-library symbol version allowed in
// a released binary for one ABI label family. Exceeding it would make the
// binary unloadable on older distributions.
type SymbolCeiling struct {
	Label string
	Max   string
}

// SymbolCeilings returns the release-blocking ABI version ceilings.
// These are fixed release policy, not user-configurable.
func SymbolCeilings() []SymbolCeiling {
	return []SymbolCeiling{
		{Label: "GLIBC", Max: "2.17.0"},
		{Label: "GLIBCXX", Max: "3.4.19"},
		{Label: "CXXABI", Max: "1.3.7"},
	}
}
