package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/park-me-cli/internal/logbook"
	"github.com/kingrea/park-me-cli/internal/pipeline"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFD93D"))

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00BFFF"))

	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00BFFF"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00FF00")).
		Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD93D")).
			Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F56")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))
)

// Banner is printed once before the prompts.
func Banner() string {
	return titleStyle.Render("🅿  create-park-me-app") + "\n" +
		hintStyle.Render("Scaffolds a Park Me application with seed data.") + "\n"
}

// StatusLine renders the final line for a step: a check on success, a
// warning sign for advisories, and a cross followed by the error otherwise.
func StatusLine(step pipeline.Step, err error) string {
	if err == nil {
		return okStyle.Render("✓") + " " + step.Title
	}
	if pipeline.KindOf(err) == pipeline.KindAdvisory {
		line := warnStyle.Render("!") + " " + step.Title
		if se, ok := pipeline.AsStepError(err); ok {
			line += "\n  " + warnStyle.Render(se.Msg)
			if se.Hint != "" {
				line += "\n  " + hintStyle.Render("Install instructions: "+se.Hint)
			}
			return line
		}
		return line + "\n  " + warnStyle.Render(err.Error())
	}
	return failStyle.Render("✗") + " " + step.Title + "\n  " + failStyle.Render(err.Error())
}

// journalLines is how many of the run's journal entries a failure summary shows.
const journalLines = 5

// Summary renders the closing message for a finished run. On failure it also
// shows the run's most recent journal entries from lb, which may be nil.
func Summary(res pipeline.Result, lb *logbook.Logbook) string {
	var b strings.Builder
	st := res.State
	switch {
	case res.Err == nil:
		b.WriteString("\n" + okStyle.Render("Project ready") + " " + answerStyle.Render(st.Layout.Root()) + "\n")
		if st.RuntimeVersion != "" {
			b.WriteString(hintStyle.Render("  runtime: "+st.RuntimeVersion) + "\n")
		}
		for _, w := range st.Warnings {
			b.WriteString(warnStyle.Render("  warning: ") + w.Message + "\n")
			if w.Hint != "" {
				b.WriteString(hintStyle.Render("  see "+w.Hint) + "\n")
			}
		}
		b.WriteString("\nNext steps:\n")
		b.WriteString(fmt.Sprintf("  cd %s/app\n", filepath.ToSlash(st.Layout.Rel())))
	case pipeline.KindOf(res.Err) == pipeline.KindUserAbort:
		b.WriteString(hintStyle.Render("Nothing was changed.") + "\n")
	default:
		b.WriteString("\n" + failStyle.Render("Setup failed") + "\n  " + res.Err.Error() + "\n")
		if st != nil && st.Layout != nil {
			b.WriteString(hintStyle.Render("  Partial output was left in "+st.Layout.Root()) + "\n")
		}
		if st != nil {
			if entries := runEntries(lb, st.RunID, journalLines); len(entries) > 0 {
				b.WriteString("\n" + hintStyle.Render("Recent log entries ("+lb.Path()+"):") + "\n")
				for _, line := range entries {
					b.WriteString(hintStyle.Render("  "+line) + "\n")
				}
			}
		}
	}
	return b.String()
}

// runEntries returns up to limit of the latest journal lines tagged with runID.
func runEntries(lb *logbook.Logbook, runID string, limit int) []string {
	if lb == nil || runID == "" {
		return nil
	}
	lines, _ := lb.Tail(200)
	tag := "[" + runID + "]"
	var entries []string
	for _, line := range lines {
		if strings.Contains(line, tag) {
			entries = append(entries, line)
		}
	}
	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries
}
