package domain

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"covermark.dev/covermark/internal/adapter"
	m "covermark.dev/covermark/internal/model"
)

// stubCorrelator returns a canned index without touching the disk.
type stubCorrelator struct {
	index m.Index
	err   error
	got   ScanArgs
}

func (s *stubCorrelator) Scan(_ context.Context, args ScanArgs) (m.Index, error) {
	s.got = args

	return s.index, s.err
}

// fakeUI records which display methods the workflow invoked.
type fakeUI struct {
	index     m.Index
	covers    *m.Correlation
	coversFor string
	unchecked []string
	stale     []string
	exported  []byte
	browsed   bool
}

func (f *fakeUI) DisplayIndex(_ context.Context, index m.Index) error {
	f.index = index
	return nil
}

func (f *fakeUI) DisplayCovers(_ context.Context, mark string, c *m.Correlation) error {
	f.coversFor = mark
	f.covers = c

	return nil
}

func (f *fakeUI) DisplayVerify(_ context.Context, unchecked, stale []string) error {
	f.unchecked = unchecked
	f.stale = stale

	return nil
}

func (f *fakeUI) DisplayExport(_ context.Context, data []byte) error {
	f.exported = data
	return nil
}

func (f *fakeUI) Browse(_ context.Context, index m.Index) error {
	f.browsed = true
	return nil
}

func coveredIndex() m.Index {
	index := m.Index{}
	index.Add(m.CallSite{Name: "fast-path", Kind: m.SiteHit, File: "clamp.go", Line: 7})
	index.Add(m.CallSite{Name: "fast-path", Kind: m.SiteCheck, File: "clamp_test.go", Line: 12, Test: true})

	return index
}

func unbalancedIndex() m.Index {
	index := coveredIndex()
	index.Add(m.CallSite{Name: "forgotten", Kind: m.SiteHit, File: "clamp.go", Line: 20})
	index.Add(m.CallSite{Name: "orphaned", Kind: m.SiteCheck, File: "old_test.go", Line: 3, Test: true})

	return index
}

func newTestWorkflow(index m.Index) (Workflow, *fakeUI) {
	ui := &fakeUI{}
	w := NewWorkflow(&stubCorrelator{index: index}, adapter.NewLocalSourceFSAdapter(), ui)

	return w, ui
}

func TestWorkflow_List(t *testing.T) {
	w, ui := newTestWorkflow(coveredIndex())

	require.NoError(t, w.List(context.Background(), ListArgs{}))
	assert.Contains(t, ui.index, "fast-path")
}

func TestWorkflow_List_ScanError(t *testing.T) {
	scanErr := errors.New("scan exploded")
	w := NewWorkflow(&stubCorrelator{err: scanErr}, adapter.NewLocalSourceFSAdapter(), &fakeUI{})

	assert.ErrorIs(t, w.List(context.Background(), ListArgs{}), scanErr)
}

func TestWorkflow_Covers(t *testing.T) {
	t.Run("known mark", func(t *testing.T) {
		w, ui := newTestWorkflow(coveredIndex())

		require.NoError(t, w.Covers(context.Background(), CoversArgs{Mark: "fast-path"}))
		assert.Equal(t, "fast-path", ui.coversFor)
		require.NotNil(t, ui.covers)
		assert.Len(t, ui.covers.Checks, 1)
	})

	t.Run("unknown mark is an error", func(t *testing.T) {
		w, ui := newTestWorkflow(coveredIndex())

		err := w.Covers(context.Background(), CoversArgs{Mark: "absent"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `mark "absent"`)
		assert.Equal(t, "absent", ui.coversFor, "the miss is still displayed")
	})
}

func TestWorkflow_Verify(t *testing.T) {
	t.Run("balanced index passes", func(t *testing.T) {
		w, ui := newTestWorkflow(coveredIndex())

		require.NoError(t, w.Verify(context.Background(), VerifyArgs{}))
		assert.Empty(t, ui.unchecked)
		assert.Empty(t, ui.stale)
	})

	t.Run("out of sync index fails", func(t *testing.T) {
		w, ui := newTestWorkflow(unbalancedIndex())

		err := w.Verify(context.Background(), VerifyArgs{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 unchecked")
		assert.Contains(t, err.Error(), "1 stale")
		assert.Equal(t, []string{"forgotten"}, ui.unchecked)
		assert.Equal(t, []string{"orphaned"}, ui.stale)
	})
}

func TestWorkflow_Export(t *testing.T) {
	t.Run("to stdout", func(t *testing.T) {
		w, ui := newTestWorkflow(coveredIndex())

		require.NoError(t, w.Export(context.Background(), ExportArgs{Output: "-"}))

		var doc exportDocument
		require.NoError(t, yaml.Unmarshal(ui.exported, &doc))
		require.Len(t, doc.Marks, 1)
		assert.Equal(t, "fast-path", doc.Marks[0].Name)
		assert.Len(t, doc.Marks[0].Hits, 1)
		assert.Len(t, doc.Marks[0].Checks, 1)
	})

	t.Run("to file", func(t *testing.T) {
		w, _ := newTestWorkflow(coveredIndex())

		out := m.Path(filepath.Join(t.TempDir(), "marks.yaml"))
		require.NoError(t, w.Export(context.Background(), ExportArgs{Output: out}))

		content, err := adapter.NewLocalSourceFSAdapter().ReadFile(out)
		require.NoError(t, err)

		var doc exportDocument
		require.NoError(t, yaml.Unmarshal(content, &doc))
		require.Len(t, doc.Marks, 1)
	})
}

func TestWorkflow_Browse(t *testing.T) {
	w, ui := newTestWorkflow(coveredIndex())

	require.NoError(t, w.Browse(context.Background(), BrowseArgs{}))
	assert.True(t, ui.browsed)
}
