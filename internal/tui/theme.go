// Package tui renders postbuild command output: styled lines for a terminal
// and one JSON document per message for scripts and CI.
//
// Colors come from Lip Gloss adaptive colors and are dropped entirely when
// NO_COLOR is set or TERM=dumb.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mrz1836/postbuild/internal/domain"
)

//nolint:gochecknoglobals // palette
var (
	colorPath    = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}
	colorDone    = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}
	colorCaution = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}
	colorFail    = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}
	colorQuiet   = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}
	colorHeader  = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"}
)

// theme holds every style the terminal output uses.
type theme struct {
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
	muted   lipgloss.Style
	path    lipgloss.Style
	header  lipgloss.Style
	ops     map[domain.OperationKind]lipgloss.Style
}

func newTheme() theme {
	return theme{
		success: lipgloss.NewStyle().Foreground(colorDone).Bold(true),
		failure: lipgloss.NewStyle().Foreground(colorFail).Bold(true),
		warning: lipgloss.NewStyle().Foreground(colorCaution),
		info:    lipgloss.NewStyle().Foreground(colorPath),
		muted:   lipgloss.NewStyle().Foreground(colorQuiet),
		path:    lipgloss.NewStyle().Foreground(colorPath).Underline(true),
		header:  lipgloss.NewStyle().Foreground(colorHeader).Bold(true),
		ops: map[domain.OperationKind]lipgloss.Style{
			domain.OpMkdir:        lipgloss.NewStyle().Foreground(colorPath),
			domain.OpMove:         lipgloss.NewStyle().Foreground(colorDone),
			domain.OpMoveIfExists: lipgloss.NewStyle().Foreground(colorDone),
			domain.OpDelete:       lipgloss.NewStyle().Foreground(colorFail),
		},
	}
}

// verb renders the fixed-width operation label at the start of a plan line.
func (t theme) verb(kind domain.OperationKind) string {
	label := string(kind)
	if kind == domain.OpMoveIfExists {
		label = string(domain.OpMove)
	}
	return t.ops[kind].Render(lipgloss.NewStyle().Width(len("delete ")).Render(label))
}

// CheckNoColor switches Lip Gloss to plain ASCII when color is unwanted.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport reports false when NO_COLOR is present (any value, see
// https://no-color.org/) or TERM=dumb.
func HasColorSupport() bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}
