package orchestrate

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles follow a plain success-green/error-red/warning-yellow convention,
// applied here to a one-shot terminal summary rather than an interactive
// program.
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headingStyle = lipgloss.NewStyle().Bold(true)
)

// PrintSummary writes a colorized build summary to w: per-file outcome,
// then the bundle manifest if one was produced.
func PrintSummary(w io.Writer, report Report) {
	fmt.Fprintln(w, headingStyle.Render("gertx build"))
	var ok, failed int
	for _, f := range report.Files {
		if f.Err != nil {
			failed++
			fmt.Fprintf(w, "  %s %s: %v\n", errorStyle.Render("✗"), f.Source, f.Err)
			continue
		}
		ok++
		fmt.Fprintf(w, "  %s %s %s %s\n", successStyle.Render("✓"), f.Source, dimStyle.Render("->"), f.Output)
	}
	if len(report.BundleOut.Files) > 0 {
		fmt.Fprintf(w, "  %s runtime bundle: %s\n", successStyle.Render("✓"), dimStyle.Render(fmt.Sprint(report.BundleOut.Files)))
	}
	fmt.Fprintf(w, "%s %d compiled, %d failed\n", headingStyle.Render("▶"), ok, failed)
}
