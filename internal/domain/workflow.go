package domain

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"covermark.dev/covermark/internal/adapter"
	"covermark.dev/covermark/internal/controller"
	m "covermark.dev/covermark/internal/model"
)

// ListArgs configures the list command.
type ListArgs struct {
	Scan ScanArgs
}

// CoversArgs configures the covers command.
type CoversArgs struct {
	Scan ScanArgs
	Mark string
}

// VerifyArgs configures the verify command.
type VerifyArgs struct {
	Scan ScanArgs
}

// ExportArgs configures the export command. An empty or "-" output path
// writes the document to standard output.
type ExportArgs struct {
	Scan   ScanArgs
	Output m.Path
}

// BrowseArgs configures the browse command.
type BrowseArgs struct {
	Scan ScanArgs
}

// Workflow wires the correlator and the UI together, one method per CLI
// command.
type Workflow interface {
	List(ctx context.Context, args ListArgs) error
	Covers(ctx context.Context, args CoversArgs) error
	Verify(ctx context.Context, args VerifyArgs) error
	Export(ctx context.Context, args ExportArgs) error
	Browse(ctx context.Context, args BrowseArgs) error
}

type workflow struct {
	correlator Correlator
	fs         adapter.SourceFSAdapter
	ui         controller.UI
}

// NewWorkflow constructs a Workflow backed by the provided correlator,
// filesystem adapter and UI.
func NewWorkflow(correlator Correlator, fs adapter.SourceFSAdapter, ui controller.UI) Workflow {
	return &workflow{
		correlator: correlator,
		fs:         fs,
		ui:         ui,
	}
}

// List scans the tree and renders the full mark index.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	index, err := w.correlator.Scan(ctx, args.Scan)
	if err != nil {
		return err
	}

	return w.ui.DisplayIndex(ctx, index)
}

// Covers answers the reverse lookup: every check declaration and every hit
// site for one mark. An unknown mark is an error so scripts can rely on the
// exit code.
func (w *workflow) Covers(ctx context.Context, args CoversArgs) error {
	index, err := w.correlator.Scan(ctx, args.Scan)
	if err != nil {
		return err
	}

	correlation := index[args.Mark]

	if err := w.ui.DisplayCovers(ctx, args.Mark, correlation); err != nil {
		return err
	}

	if correlation == nil {
		return fmt.Errorf("mark %q: no call sites found", args.Mark)
	}

	return nil
}

// Verify reports marks hit by code but checked by no test, and checks that
// name marks nothing hits. Either set being non-empty is an error.
func (w *workflow) Verify(ctx context.Context, args VerifyArgs) error {
	index, err := w.correlator.Scan(ctx, args.Scan)
	if err != nil {
		return err
	}

	unchecked := index.Unchecked()
	stale := index.Stale()

	if err := w.ui.DisplayVerify(ctx, unchecked, stale); err != nil {
		return err
	}

	if len(unchecked) > 0 || len(stale) > 0 {
		return fmt.Errorf(
			"marks out of sync: %d unchecked, %d stale",
			len(unchecked), len(stale),
		)
	}

	return nil
}

// exportDocument is the YAML shape written by Export.
type exportDocument struct {
	Marks []*m.Correlation `yaml:"marks"`
}

// Export writes the scanned index as YAML for documentation tooling.
func (w *workflow) Export(ctx context.Context, args ExportArgs) error {
	index, err := w.correlator.Scan(ctx, args.Scan)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(exportDocument{Marks: index.Sorted()})
	if err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}

	if args.Output == "" || args.Output == "-" {
		return w.ui.DisplayExport(ctx, data)
	}

	if err := w.fs.WriteFile(args.Output, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", args.Output, err)
	}

	slog.Info("exported mark index", "path", args.Output, "marks", len(index))

	return nil
}

// Browse opens the interactive index browser.
func (w *workflow) Browse(ctx context.Context, args BrowseArgs) error {
	index, err := w.correlator.Scan(ctx, args.Scan)
	if err != nil {
		return err
	}

	return w.ui.Browse(ctx, index)
}
