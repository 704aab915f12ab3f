// Package controller provides output adapters for displaying mark/test
// coverage correlations.
package controller

import (
	"context"
	"os"

	"golang.org/x/term"

	m "covermark.dev/covermark/internal/model"
)

// UI defines the interface for rendering scan results. Implementations can
// use different output methods (plain tables, interactive TUI).
type UI interface {
	// DisplayIndex renders the full mark index.
	DisplayIndex(ctx context.Context, index m.Index) error

	// DisplayCovers renders every site for one mark; a nil correlation
	// means the mark is unknown.
	DisplayCovers(ctx context.Context, mark string, correlation *m.Correlation) error

	// DisplayVerify renders the out-of-sync report.
	DisplayVerify(ctx context.Context, unchecked, stale []string) error

	// DisplayExport writes an already-encoded export document.
	DisplayExport(ctx context.Context, data []byte) error

	// Browse opens an interactive view over the index, falling back to
	// DisplayIndex on non-interactive outputs.
	Browse(ctx context.Context, index m.Index) error
}

// IsTTY reports whether the writer is an interactive terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
