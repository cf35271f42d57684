package app

import (
	"os"

	"oidn-release/internal/adapters"
	"oidn-release/internal/ports"
)

// Service wires the release pipeline's collaborators. Every external
// effect (archives, downloads, subprocesses, symbol dumps, environment)
// goes through a port so stages are testable with fakes.
type Service struct {
	Archive  ports.ArchivePort
	Download ports.DownloadPort
	Runner   ports.ProcessRunnerPort
	Symbols  ports.SymbolDumpPort
	Manifest ports.DependencyManifestPort
	Env      func(key string) string
	Getwd    func() (string, error)
}

func NewService() Service {
	return Service{
		Archive:  adapters.NewArchiveAdapter(),
		Download: adapters.NewDownloadAdapter(),
		Runner:   adapters.NewProcessRunnerAdapter(),
		Symbols:  adapters.NewSymbolDumpAdapter(),
		Manifest: adapters.NewDependencyManifestAdapter(),
		Env:      os.Getenv,
		Getwd:    os.Getwd,
	}
}
