package adapters

import (
	"context"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"oidn-release/internal/ports"
	"oidn-release/internal/shared"
)

// SymbolDumpAdapter lists a binary's symbols via nm. Each whitespace
// separated token of the output is returned separately so versioned
// symbol decorations (name@@LABEL_x.y.z) arrive as single tokens.
type SymbolDumpAdapter struct{}

func NewSymbolDumpAdapter() SymbolDumpAdapter {
	return SymbolDumpAdapter{}
}

func (a SymbolDumpAdapter) Symbols(ctx context.Context, binaryPath string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "nm", binaryPath)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("nm failed").
			WithCause(shared.CommandError([]byte(stderr.String()), err))
	}
	return strings.Fields(string(output)), nil
}

var _ ports.SymbolDumpPort = SymbolDumpAdapter{}
