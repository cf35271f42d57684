package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
)

// fakeDownloader counts calls and optionally serves a prebuilt fixture
// archive by copying it into the output directory.
type fakeDownloader struct {
	calls   int
	fixture string
}

func (f *fakeDownloader) Download(_ context.Context, url string, outputDir string) (string, error) {
	f.calls++
	if f.fixture == "" {
		return "", errors.New("unexpected download: " + url)
	}
	target := filepath.Join(outputDir, path.Base(url))
	source, err := os.Open(f.fixture)
	if err != nil {
		return "", err
	}
	defer source.Close()
	dest, err := os.Create(target)
	if err != nil {
		return "", err
	}
	defer dest.Close()
	if _, err := io.Copy(dest, source); err != nil {
		return "", err
	}
	return target, nil
}

// fakeRunner records every subprocess invocation; hook lets a test
// fail a specific command or synthesize its side effects.
type fakeRunner struct {
	dirs     []string
	commands [][]string
	hook     func(dir string, argv []string) error
}

func (f *fakeRunner) Run(_ context.Context, dir string, argv []string) error {
	f.dirs = append(f.dirs, dir)
	f.commands = append(f.commands, argv)
	if f.hook != nil {
		return f.hook(dir, argv)
	}
	return nil
}

// fakeSymbols serves canned symbol tokens per binary basename and
// records which binaries were inspected.
type fakeSymbols struct {
	tokens  map[string][]string
	checked []string
}

func (f *fakeSymbols) Symbols(_ context.Context, binaryPath string) ([]string, error) {
	f.checked = append(f.checked, binaryPath)
	return f.tokens[filepath.Base(binaryPath)], nil
}

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func containsArg(argv []string, want string) bool {
	for _, arg := range argv {
		if arg == want {
			return true
		}
	}
	return false
}
