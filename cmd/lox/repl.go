package main

import (
	"bytes"
	"flag"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/beacodeart/glox/lox"
)

type lineKind int

const (
	lineInput lineKind = iota
	lineOutput
	lineError
	lineNote
)

type transcriptLine struct {
	kind lineKind
	text string
}

// recall walks previously submitted inputs with the arrow keys. pos ==
// len(entries) means the input line is fresh.
type recall struct {
	entries []string
	pos     int
}

func (r *recall) push(entry string) {
	r.entries = append(r.entries, entry)
	r.pos = len(r.entries)
}

func (r *recall) prev() (string, bool) {
	if r.pos == 0 {
		return "", false
	}
	r.pos--
	return r.entries[r.pos], true
}

func (r *recall) next() (string, bool) {
	if r.pos >= len(r.entries) {
		return "", false
	}
	r.pos++
	if r.pos == len(r.entries) {
		return "", true
	}
	return r.entries[r.pos], true
}

type replKeys struct {
	prev, next, submit, discard key.Binding
	quit, clear, complete      key.Binding
	toggleVars, toggleHelp     key.Binding
}

var keys = replKeys{
	prev:       key.NewBinding(key.WithKeys("up")),
	next:       key.NewBinding(key.WithKeys("down")),
	submit:     key.NewBinding(key.WithKeys("enter")),
	discard:    key.NewBinding(key.WithKeys("esc")),
	quit:       key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d")),
	clear:      key.NewBinding(key.WithKeys("ctrl+l")),
	complete:   key.NewBinding(key.WithKeys("tab")),
	toggleVars: key.NewBinding(key.WithKeys("ctrl+v")),
	toggleHelp: key.NewBinding(key.WithKeys("ctrl+k")),
}

type replModel struct {
	input   textinput.Model
	prompt  string
	theme   replTheme
	out     *bytes.Buffer
	session *replSession

	// lines of a block or string literal that is still open
	pending    []string
	history    *recall
	transcript []transcriptLine

	width, height      int
	showHelp, showVars bool
	quitting           bool
}

func newREPLModel(prompt string, cfg lox.Config) replModel {
	theme := newREPLTheme()
	ti := textinput.New()
	ti.Placeholder = "type a statement..."
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = theme.prompt
	ti.Prompt = prompt
	ti.Focus()

	out := new(bytes.Buffer)
	cfg.Stdout = out
	return replModel{
		input:   ti,
		prompt:  prompt,
		theme:   theme,
		out:     out,
		session: newREPLSession(cfg),
		history: &recall{},
	}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(msg.Width-10, 10)
		return m, nil
	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m replModel) handleKey(msg tea.KeyMsg) (replModel, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.quit):
		m.quitting = true
		return m, tea.Quit, true
	case key.Matches(msg, keys.clear):
		m.transcript = nil
	case key.Matches(msg, keys.toggleVars):
		m.showVars = !m.showVars
	case key.Matches(msg, keys.toggleHelp):
		m.showHelp = !m.showHelp
	case key.Matches(msg, keys.discard):
		m.pending = nil
		m.input.Prompt = m.prompt
		m.input.SetValue("")
	case key.Matches(msg, keys.prev):
		if entry, ok := m.history.prev(); ok {
			m.input.SetValue(entry)
			m.input.CursorEnd()
		}
	case key.Matches(msg, keys.next):
		if entry, ok := m.history.next(); ok {
			m.input.SetValue(entry)
			m.input.CursorEnd()
		}
	case key.Matches(msg, keys.complete):
		m = m.complete()
	case key.Matches(msg, keys.submit):
		return m.submit()
	default:
		return m, nil, false
	}
	return m, nil, true
}

// submit runs the input line, or buffers it while a block or string is
// still open.
func (m replModel) submit() (replModel, tea.Cmd, bool) {
	line := m.input.Value()
	m.input.SetValue("")

	if len(m.pending) == 0 {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return m, nil, true
		}
		if strings.HasPrefix(trimmed, ":") {
			next, cmd := m.handleCommand(trimmed)
			return next, cmd, true
		}
	}

	m.pending = append(m.pending, line)
	src := strings.Join(m.pending, "\n")
	if inputIncomplete(src) {
		m.input.Prompt = continuationPrompt
		return m, nil, true
	}
	m.pending = nil
	m.input.Prompt = m.prompt
	m.history.push(src)

	for _, l := range strings.Split(src, "\n") {
		m.transcript = append(m.transcript, transcriptLine{kind: lineInput, text: l})
	}
	output, isErr := m.evaluate(src)
	kind := lineOutput
	if isErr {
		kind = lineError
	}
	if output != "" {
		for _, l := range strings.Split(output, "\n") {
			m.transcript = append(m.transcript, transcriptLine{kind: kind, text: l})
		}
	}
	return m, nil, true
}

// evaluate runs src against the session and returns what it printed,
// followed by the error text when it failed.
func (m replModel) evaluate(src string) (string, bool) {
	m.out.Reset()
	result := m.session.run(src)

	output := strings.TrimRight(m.out.String(), "\n")
	err := result.Err()
	if err == nil {
		return output, false
	}
	if output != "" {
		output += "\n"
	}
	return output + err.Error(), true
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	action, word, ok := parseMetaCommand(input)
	if !ok {
		m.transcript = append(m.transcript, transcriptLine{kind: lineError, text: "Unknown command: " + word})
		return m, nil
	}
	switch action {
	case metaHelp:
		m.showHelp = !m.showHelp
	case metaVars:
		m.showVars = !m.showVars
	case metaClear:
		m.transcript = nil
	case metaReset:
		m.session.reset()
		m.transcript = append(m.transcript, transcriptLine{kind: lineNote, text: "Environment reset"})
	case metaQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// complete extends the identifier before the cursor when exactly one
// keyword or global matches, and lists the candidates otherwise.
func (m replModel) complete() replModel {
	head, word := trailingWord(m.input.Value())
	if word == "" {
		return m
	}
	candidates := completeWord(word, m.session.globals().Names())
	switch len(candidates) {
	case 0:
	case 1:
		m.input.SetValue(head + candidates[0])
		m.input.CursorEnd()
	default:
		m.transcript = append(m.transcript, transcriptLine{kind: lineNote, text: "Completions: " + strings.Join(candidates, ", ")})
	}
	return m
}

func replCommand(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	plain := fs.Bool("plain", false, "use a line-oriented prompt instead of the full-screen UI")
	prompt := fs.String("prompt", "", "prompt text")
	common := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return &exitError{code: exitUsage, err: err}
	}
	if fs.NArg() > 0 {
		return &exitError{code: exitUsage, err: fmt.Errorf("lox repl: unexpected argument %q", fs.Arg(0))}
	}
	cfg, err := common.load()
	if err != nil {
		return err
	}
	if *plain {
		cfg.REPL.Plain = true
	}
	if *prompt != "" {
		cfg.REPL.Prompt = *prompt
	}
	return startREPL(cfg)
}

// startREPL picks the full-screen UI on a terminal and the line prompt
// otherwise.
func startREPL(cfg cliConfig) error {
	logger, err := newLogger(cfg.LogLevel, nil)
	if err != nil {
		return err
	}
	loxCfg := lox.Config{Logger: logger}
	if cfg.REPL.Plain || !stdinIsTerminal() {
		return runPlainREPL(cfg, loxCfg)
	}
	_, err = tea.NewProgram(newREPLModel(cfg.REPL.Prompt, loxCfg), tea.WithAltScreen()).Run()
	return err
}
