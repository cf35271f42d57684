package adapters

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"oidn-release/internal/ports"
)

// ProcessRunnerAdapter executes external build tools. Output streams to
// the operator's terminal; only the exit status is inspected. Any
// non-zero exit is fatal.
type ProcessRunnerAdapter struct{}

func NewProcessRunnerAdapter() ProcessRunnerAdapter {
	return ProcessRunnerAdapter{}
}

func (a ProcessRunnerAdapter) Run(ctx context.Context, dir string, argv []string) error {
	if len(argv) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("command is empty")
	}
	log.Info().Str("command", strings.Join(argv, " ")).Msg("running command")
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("command failed with non-zero return value: " + argv[0]).
			WithCause(err)
	}
	return nil
}

var _ ports.ProcessRunnerPort = ProcessRunnerAdapter{}
