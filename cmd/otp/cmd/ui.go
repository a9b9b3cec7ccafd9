package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorWhite = lipgloss.Color("255")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHeader  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	styleLabel   = lipgloss.NewStyle().Foreground(colorDim).Width(14)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
)

const iconSuccess = "✓"

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

// printField prints an aligned "label value" line
func printField(w io.Writer, label string, value any) {
	fmt.Fprintln(w, "  "+styleLabel.Render(label)+styleValue.Render(fmt.Sprint(value)))
}

func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "    "+styleDim.Render(fmt.Sprintf(format, args...)))
}
