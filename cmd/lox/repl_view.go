package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent = lipgloss.Color("#3B82F6")
	colorOK     = lipgloss.Color("#10B981")
	colorError  = lipgloss.Color("#EF4444")
	colorMuted  = lipgloss.Color("#6B7280")
	colorName   = lipgloss.Color("#F59E0B")
)

type replTheme struct {
	prompt  lipgloss.Style
	output  lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
	title   lipgloss.Style
	key     lipgloss.Style
	name    lipgloss.Style
	panel   lipgloss.Style
}

func newREPLTheme() replTheme {
	return replTheme{
		prompt:  lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		output:  lipgloss.NewStyle().Foreground(colorOK),
		failure: lipgloss.NewStyle().Foreground(colorError),
		muted:   lipgloss.NewStyle().Foreground(colorMuted),
		title:   lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		key:     lipgloss.NewStyle().Foreground(colorName),
		name:    lipgloss.NewStyle().Foreground(colorName),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1),
	}
}

func (m replModel) View() string {
	if m.quitting {
		return m.theme.muted.Render("Goodbye!\n")
	}
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{
		m.theme.title.Padding(0, 1).Render("Lox REPL"),
		m.theme.muted.Render(strings.Repeat("─", min(m.width-2, 60))),
		"",
	}
	sections = append(sections, m.visibleTranscript()...)
	if m.showVars {
		sections = append(sections, m.renderVars(), "")
	}
	if m.showHelp {
		sections = append(sections, m.renderHelp(), "")
	}
	if len(m.pending) > 0 {
		sections = append(sections, m.theme.muted.Render(strings.Join(m.pending, "\n")))
	}
	sections = append(sections, m.input.View(), "", m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// visibleTranscript keeps the newest lines that fit above the panels.
func (m replModel) visibleTranscript() []string {
	reserved := 8 + len(m.pending)
	if m.showHelp {
		reserved += len(metaCommands) + 6
	}
	if m.showVars {
		reserved += len(m.session.globals().Names()) + 3
	}
	room := max(m.height-reserved, 0)

	lines := make([]string, 0, len(m.transcript))
	for _, line := range m.transcript {
		lines = append(lines, m.renderLine(line))
	}
	if len(lines) > room {
		lines = lines[len(lines)-room:]
	}
	return lines
}

func (m replModel) renderLine(line transcriptLine) string {
	switch line.kind {
	case lineInput:
		return m.theme.muted.Render("  › ") + line.text
	case lineOutput:
		return "  " + m.theme.output.Render("→ "+line.text)
	case lineError:
		return "  " + m.theme.failure.Render("✗ "+line.text)
	default:
		return "  " + m.theme.muted.Render(line.text)
	}
}

func (m replModel) renderVars() string {
	names := m.session.globals().Names()
	if len(names) == 0 {
		return m.theme.panel.Render(m.theme.muted.Render("No variables defined"))
	}
	values := m.session.globals().Snapshot()
	rows := []string{m.theme.title.Render("Variables")}
	for _, name := range names {
		v := values[name]
		rows = append(rows, fmt.Sprintf("  %s = %s %s",
			m.theme.name.Render(name),
			displayValue(v),
			m.theme.muted.Render(v.Kind().String())))
	}
	return m.theme.panel.Render(strings.Join(rows, "\n"))
}

func (m replModel) renderHelp() string {
	rows := []string{m.theme.title.Render("Help")}
	for _, b := range []struct{ keys, desc string }{
		{"↑/↓", "recall earlier input"},
		{"tab", "complete keywords and variables"},
		{"enter", "run, or continue an open block"},
		{"esc", "discard an unfinished block"},
	} {
		rows = append(rows, fmt.Sprintf("  %s  %s", m.theme.key.Render(fmt.Sprintf("%-8s", b.keys)), m.theme.muted.Render(b.desc)))
	}
	for _, c := range metaCommands {
		rows = append(rows, fmt.Sprintf("  %s  %s", m.theme.key.Render(fmt.Sprintf("%-8s", c.name)), m.theme.muted.Render(c.desc)))
	}
	return m.theme.panel.Render(strings.Join(rows, "\n"))
}

func (m replModel) renderFooter() string {
	var b strings.Builder
	for _, binding := range []struct{ keys, desc string }{
		{"ctrl+k", "help"},
		{"ctrl+v", "vars"},
		{"ctrl+l", "clear"},
		{"ctrl+c", "quit"},
	} {
		b.WriteString(m.theme.key.Render(binding.keys))
		b.WriteString(m.theme.muted.Render(" " + binding.desc + "  "))
	}
	return strings.TrimRight(b.String(), " ")
}
