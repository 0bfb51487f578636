package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mrz1836/postbuild/internal/domain"
)

// TTYOutput writes styled, human-readable lines.
type TTYOutput struct {
	w     io.Writer
	theme theme
}

// NewTTYOutput creates a TTYOutput writing to w. NO_COLOR is honored.
func NewTTYOutput(w io.Writer) *TTYOutput {
	CheckNoColor()
	return &TTYOutput{w: w, theme: newTheme()}
}

func (o *TTYOutput) line(s string) {
	_, _ = fmt.Fprintln(o.w, s)
}

// Success prints "✓ msg".
func (o *TTYOutput) Success(msg string) {
	o.line(o.theme.success.Render("✓ " + msg))
}

// Error prints "✗ message", followed by a "▸ Try:" hint when err carries a
// suggested action.
func (o *TTYOutput) Error(err error) {
	var ae *ActionableError
	if !errors.As(err, &ae) {
		o.line(o.theme.failure.Render("✗ " + err.Error()))
		return
	}
	o.line(o.theme.failure.Render("✗ " + ae.Error()))
	if ae.Suggestion != "" {
		o.line(o.theme.muted.Render("  ▸ Try: " + ae.Suggestion))
	}
}

// Warning prints "⚠ msg".
func (o *TTYOutput) Warning(msg string) {
	o.line(o.theme.warning.Render("⚠ " + msg))
}

// Info prints "ℹ msg".
func (o *TTYOutput) Info(msg string) {
	o.line(o.theme.info.Render("ℹ " + msg))
}

// Table prints rows in left-aligned columns two spaces apart. Missing cells
// render empty; nothing is printed without headers.
func (o *TTYOutput) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := range min(len(row), len(widths)) {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	render := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			var cell string
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = style.Width(w).Render(cell)
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	o.line(render(headers, o.theme.header))
	for _, row := range rows {
		o.line(render(row, lipgloss.NewStyle()))
	}
}

// Result prints each planned or applied operation and a closing summary.
// Dry runs open with a warning that nothing changed.
func (o *TTYOutput) Result(r *domain.Result) {
	if r.DryRun {
		o.Warning("dry run: nothing on disk was changed")
	}
	for _, op := range r.Operations {
		o.line("  " + o.operation(op))
	}

	target := r.Target.String()
	metadataOnly := fmt.Sprintf("version %s (%s), no relocation for %s", r.Version, r.VersionCode, target)
	switch {
	case r.DryRun && r.Relocated():
		o.Info(fmt.Sprintf("would finalize %s build as %s", target, o.theme.path.Render(r.OutputPath)))
	case r.DryRun:
		o.Info("would write " + metadataOnly)
	case r.Relocated():
		o.Success(fmt.Sprintf("finalized %s build: %s", target, o.theme.path.Render(r.OutputPath)))
	default:
		o.Success("wrote " + metadataOnly)
	}
}

// operation renders one plan line, e.g. "move   a → b (if present)".
func (o *TTYOutput) operation(op domain.Operation) string {
	verb := o.theme.verb(op.Kind)
	switch op.Kind {
	case domain.OpMkdir:
		return verb + op.Destination
	case domain.OpDelete:
		return verb + op.Source
	case domain.OpMove, domain.OpMoveIfExists:
		move := op.Source + " → " + op.Destination
		switch {
		case op.Skipped:
			return o.theme.muted.Render(string(domain.OpMove) + "   " + move + " (no folder, skipped)")
		case op.Kind == domain.OpMoveIfExists:
			return verb + move + o.theme.muted.Render(" (if present)")
		default:
			return verb + move
		}
	default:
		return strings.TrimSpace(fmt.Sprintf("%s %s %s", op.Kind, op.Source, op.Destination))
	}
}

// JSON prints v as indented JSON.
func (o *TTYOutput) JSON(v any) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
