// Package display renders hunks and plan-execution results for a
// terminal: lipgloss styling for line-level diff coloring, and glamour
// for rendering an already-formatted plan-document preview as markdown.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"commitsmith/pkg/diffmodel"
	"commitsmith/pkg/executor"
)

// Styles holds the lipgloss style set used across this package's
// renderers.
type Styles struct {
	AddStyle     lipgloss.Style
	RemoveStyle  lipgloss.Style
	ContextStyle lipgloss.Style
	HeaderStyle  lipgloss.Style
	DimStyle     lipgloss.Style
	SuccessStyle lipgloss.Style
	FailureStyle lipgloss.Style
}

// NewStyles initializes the default style set.
func NewStyles() *Styles {
	return &Styles{
		AddStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		RemoveStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		ContextStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		HeaderStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		DimStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		SuccessStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		FailureStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// RenderHunk colorizes one hunk's body lines for terminal display:
// additions green, removals red, context dimmed.
func (s *Styles) RenderHunk(h *diffmodel.Hunk) string {
	var b strings.Builder
	b.WriteString(s.HeaderStyle.Render(fmt.Sprintf("@@ %s @@", h.ID)))
	b.WriteString("\n")
	for _, l := range h.Lines {
		line := string(l.Kind.Prefix()) + l.Content
		switch l.Kind {
		case diffmodel.Add:
			b.WriteString(s.AddStyle.Render(line))
		case diffmodel.Remove:
			b.WriteString(s.RemoveStyle.Render(line))
		default:
			b.WriteString(s.ContextStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderExecResult summarizes a plan execution's outcome: staged hunk
// count and ids on success, the staged-so-far list plus the halting
// error on failure.
func (s *Styles) RenderExecResult(res *executor.ExecResult) string {
	if res.Success {
		msg := fmt.Sprintf("staged %d hunk(s): %s", len(res.StagedHunks), strings.Join(res.StagedHunks, ", "))
		return s.SuccessStyle.Render(msg)
	}
	msg := fmt.Sprintf("execution stopped after staging %s: %s",
		strings.Join(res.StagedHunks, ", "), res.Err.Error())
	return s.FailureStyle.Render(msg)
}

// MarkdownPreview renders already-formatted markdown (a plan-document
// scaffold, a compact hunk table) for terminal display via glamour.
type MarkdownPreview struct {
	renderer *glamour.TermRenderer
}

// NewMarkdownPreview builds a preview renderer with auto-detected
// terminal theme and unlimited wrap width, left to the terminal.
func NewMarkdownPreview() (*MarkdownPreview, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		return nil, err
	}
	return &MarkdownPreview{renderer: r}, nil
}

// Render converts markdown into ANSI-formatted terminal output.
func (p *MarkdownPreview) Render(markdown string) (string, error) {
	rendered, err := p.renderer.Render(markdown)
	if err != nil {
		return "", err
	}
	return strings.TrimLeft(strings.TrimRight(rendered, "\n"), "\n"), nil
}
