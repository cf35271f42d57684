package ports

import "context"

// ProcessRunnerPort runs an external tool to completion. The argv slice
// is passed verbatim (no shell interpretation); dir is the working
// directory, or empty for the caller's. A non-zero exit is an error.
type ProcessRunnerPort interface {
	Run(ctx context.Context, dir string, argv []string) error
}
