package ports

import "context"

// SymbolDumpPort lists the symbol table of a compiled binary as raw
// symbol tokens, including any @@LABEL_version decoration.
type SymbolDumpPort interface {
	Symbols(ctx context.Context, binaryPath string) ([]string, error)
}
