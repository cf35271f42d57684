package core

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	debversion "github.com/knqyf263/go-deb-version"
	"github.com/rs/zerolog/log"

	"oidn-release/internal/types"
)

// CheckSymbols verifies that no symbol token in a binary's symbol table
// requires a runtime ABI version above its ceiling. Tokens are matched on
// the @@LABEL_ decoration; version ordering over the dotted numeric
// suffixes follows standard component-wise comparison. The first
// offending symbol fails the whole release.
func CheckSymbols(ctx context.Context, binaryPath string, symbols []string, ceilings []types.SymbolCeiling) error {
	for _, ceiling := range ceilings {
		max, err := debversion.NewVersion(ceiling.Max)
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("invalid ceiling version for %s", ceiling.Label)).
				WithCause(err)
		}
		marker := "@@" + ceiling.Label + "_"
		for _, symbol := range symbols {
			idx := strings.Index(symbol, marker)
			if idx < 0 {
				continue
			}
			version, err := debversion.NewVersion(symbol[idx+len(marker):])
			if err != nil {
				return errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg(fmt.Sprintf("failed to parse version of symbol %s", symbol)).
					WithCause(err)
			}
			if version.GreaterThan(max) {
				return errbuilder.New().
					WithCode(errbuilder.CodeFailedPrecondition).
					WithMsg(fmt.Sprintf("problematic symbol %s in %s", symbol, filepath.Base(binaryPath)))
			}
		}
	}
	log.Ctx(ctx).Debug().Str("binary", filepath.Base(binaryPath)).Msg("symbol versions within ceilings")
	return nil
}
