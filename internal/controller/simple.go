package controller

import (
	"bytes"
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "covermark.dev/covermark/internal/model"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	staleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

const (
	statusCovered   = "covered"
	statusUnchecked = "unchecked"
	statusStale     = "stale"
)

// SimpleUI implements UI on top of a cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
	tty bool
}

// NewUI creates a SimpleUI. tty selects whether Browse may go interactive.
func NewUI(cmd *cobra.Command, tty bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, tty: tty}
}

// DisplayIndex renders the mark index as a table with per-mark status.
func (s *SimpleUI) DisplayIndex(ctx context.Context, index m.Index) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(index) == 0 {
		s.printf("no marks found\n")
		return nil
	}

	var buffer bytes.Buffer

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"Mark", "Hit Sites", "Check Sites", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	for _, c := range index.Sorted() {
		table.Append([]string{
			c.Name,
			fmt.Sprintf("%d", len(c.Hits)),
			fmt.Sprintf("%d", len(c.Checks)),
			styledStatus(c),
		})
	}

	hits, checks := index.Totals()
	table.SetFooter([]string{
		fmt.Sprintf("Total Marks %d", len(index)),
		fmt.Sprintf("%d", hits),
		fmt.Sprintf("%d", checks),
		"",
	})

	table.Render()
	s.printf("\n%s", buffer.String())

	return nil
}

// DisplayCovers prints every site for one mark, checks first since the
// question being answered is "which tests cover this".
func (s *SimpleUI) DisplayCovers(ctx context.Context, mark string, correlation *m.Correlation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if correlation == nil {
		s.printf("mark %q: no call sites found\n", mark)
		return nil
	}

	s.printf("mark %q\n\n", mark)

	s.printf("checked by:\n")
	if len(correlation.Checks) == 0 {
		s.printf("  %s\n", badStyle.Render("(no tests check this mark)"))
	}

	for _, site := range correlation.Checks {
		s.printf("  %s\n", formatSite(site))
	}

	s.printf("\nhit at:\n")
	if len(correlation.Hits) == 0 {
		s.printf("  %s\n", staleStyle.Render("(nothing hits this mark)"))
	}

	for _, site := range correlation.Hits {
		s.printf("  %s\n", formatSite(site))
	}

	return nil
}

// DisplayVerify prints marks whose hit and check sides disagree.
func (s *SimpleUI) DisplayVerify(ctx context.Context, unchecked, stale []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(unchecked) == 0 && len(stale) == 0 {
		s.printf("%s\n", okStyle.Render("every mark is hit by code and checked by a test"))
		return nil
	}

	for _, name := range unchecked {
		s.printf("%s %q is hit by code but no test checks it\n", badStyle.Render("UNCHECKED"), name)
	}

	for _, name := range stale {
		s.printf("%s %q is checked by a test but nothing hits it\n", staleStyle.Render("STALE"), name)
	}

	return nil
}

// DisplayExport writes the encoded document verbatim.
func (s *SimpleUI) DisplayExport(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := s.cmd.OutOrStdout().Write(data)

	return err
}

// Browse runs the interactive index browser when attached to a terminal and
// degrades to the plain table otherwise.
func (s *SimpleUI) Browse(ctx context.Context, index m.Index) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !s.tty || len(index) == 0 {
		return s.DisplayIndex(ctx, index)
	}

	model := newBrowseModel(index)

	if f, ok := s.cmd.OutOrStdout().(*os.File); ok {
		if width, height, err := term.GetSize(int(f.Fd())); err == nil {
			model.width = width
			model.height = height
		}
	}

	program := tea.NewProgram(
		model,
		tea.WithOutput(s.cmd.OutOrStdout()),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func formatSite(site m.CallSite) string {
	location := fmt.Sprintf("%s:%d", site.File, site.Line)
	if site.Func != "" {
		return fmt.Sprintf("%s %s", location, dimStyle.Render(site.Func))
	}

	return location
}

func styledStatus(c *m.Correlation) string {
	switch status(c) {
	case statusUnchecked:
		return badStyle.Render(statusUnchecked)
	case statusStale:
		return staleStyle.Render(statusStale)
	default:
		return okStyle.Render(statusCovered)
	}
}

func status(c *m.Correlation) string {
	switch {
	case len(c.Hits) > 0 && len(c.Checks) == 0:
		return statusUnchecked
	case len(c.Checks) > 0 && len(c.Hits) == 0:
		return statusStale
	default:
		return statusCovered
	}
}
