package main

import (
	"errors"
	"slices"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/beacodeart/glox/lox"
)

const lspSource = "lox-lsp"

const (
	severityError   = 1
	severityWarning = 2

	completionKindVariable = 6
	completionKindKeyword  = 14
)

// lspPosition is zero-based; Character counts UTF-16 code units.
type lspPosition struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type lspRange struct {
	Start lspPosition `json:"start"`
	End   lspPosition `json:"end"`
}

type lspDiagnostic struct {
	Range    lspRange `json:"range"`
	Severity int      `json:"severity"`
	Source   string   `json:"source"`
	Message  string   `json:"message"`
}

type publishDiagnosticsParams struct {
	URI         string          `json:"uri"`
	Diagnostics []lspDiagnostic `json:"diagnostics"`
}

type completionItem struct {
	Label  string `json:"label"`
	Kind   int    `json:"kind"`
	Detail string `json:"detail"`
}

type completionList struct {
	IsIncomplete bool             `json:"isIncomplete"`
	Items        []completionItem `json:"items"`
}

type markupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type hoverResult struct {
	Contents markupContent `json:"contents"`
}

// diagnosticsForSource reports scan and parse errors. Source that parses
// cleanly gets the analyzer's warnings instead.
func diagnosticsForSource(source string) []lspDiagnostic {
	lines := strings.Split(source, "\n")
	tokens, scanErrs := lox.Scan(source)
	stmts, parseErrs := lox.Parse(tokens)

	diags := make([]lspDiagnostic, 0)
	for _, err := range append(scanErrs, parseErrs...) {
		pos, _ := lox.ErrorPosition(err)
		message, width := err.Error(), 1
		var parseErr *lox.ParseError
		var scanErr *lox.ScanError
		switch {
		case errors.As(err, &parseErr):
			message = parseErr.Message
			width = max(len([]rune(parseErr.Token.Lexeme)), 1)
		case errors.As(err, &scanErr):
			message = scanErr.Message
		}
		diags = append(diags, newDiagnostic(lines, pos, width, severityError, message))
	}
	if len(diags) > 0 {
		return diags
	}

	for _, warning := range analyzeProgram(stmts) {
		diags = append(diags, newDiagnostic(lines, warning.Pos, 1, severityWarning, warning.Message))
	}
	return diags
}

// newDiagnostic spans width runes from a 1-based rune position.
func newDiagnostic(lines []string, pos lox.Position, width, severity int, message string) lspDiagnostic {
	line := max(pos.Line-1, 0)
	column := max(pos.Column-1, 0)
	start := utf16Column(lines, line, column)
	end := max(utf16Column(lines, line, column+width), start+1)
	return lspDiagnostic{
		Range: lspRange{
			Start: lspPosition{Line: line, Character: start},
			End:   lspPosition{Line: line, Character: end},
		},
		Severity: severity,
		Source:   lspSource,
		Message:  message,
	}
}

// utf16Column converts a rune offset on a line into UTF-16 code units.
// Offsets past the end of the line count one unit per rune.
func utf16Column(lines []string, line, runes int) int {
	if line >= len(lines) {
		return runes
	}
	text := []rune(lines[line])
	if runes > len(text) {
		return len(utf16.Encode(text)) + runes - len(text)
	}
	return len(utf16.Encode(text[:runes]))
}

// runeIndex converts a UTF-16 offset into an index into text.
func runeIndex(text []rune, units int) int {
	i := 0
	for seen := 0; i < len(text) && seen < units; i++ {
		seen += utf16.RuneLen(text[i])
	}
	return i
}

// declaredNames lists variables declared anywhere in source, in order of
// first declaration.
func declaredNames(source string) []string {
	tokens, _ := lox.Scan(source)
	var names []string
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i].Kind != lox.TokenVar || tokens[i+1].Kind != lox.TokenIdentifier {
			continue
		}
		if name := tokens[i+1].Lexeme; !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

func completionItems(names []string) []completionItem {
	items := make([]completionItem, 0, len(names)+16)
	for _, keyword := range lox.Keywords() {
		items = append(items, completionItem{Label: keyword, Kind: completionKindKeyword, Detail: "keyword"})
	}
	for _, name := range names {
		if !lox.IsKeyword(name) {
			items = append(items, completionItem{Label: name, Kind: completionKindVariable, Detail: "variable"})
		}
	}
	slices.SortFunc(items, func(a, b completionItem) int { return strings.Compare(a.Label, b.Label) })
	return items
}

func describeWord(source, word string) string {
	if lox.IsKeyword(word) {
		return "Lox keyword"
	}
	tokens, _ := lox.Scan(source)
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i].Kind == lox.TokenVar && tokens[i+1].Lexeme == word {
			return "variable declared on line " + strconv.Itoa(tokens[i+1].Line)
		}
	}
	return "symbol"
}

// wordAtPosition returns the identifier touching a zero-based line and
// UTF-16 character offset, or "".
func wordAtPosition(source string, line, character int) string {
	lines := strings.Split(source, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}
	text := []rune(lines[line])
	if len(text) == 0 {
		return ""
	}

	cursor := min(runeIndex(text, character), len(text)-1)
	if !isIdentifierRune(text[cursor]) {
		if cursor == 0 || !isIdentifierRune(text[cursor-1]) {
			return ""
		}
		cursor--
	}

	start, end := cursor, cursor
	for start > 0 && isIdentifierRune(text[start-1]) {
		start--
	}
	for end < len(text) && isIdentifierRune(text[end]) {
		end++
	}
	return string(text[start:end])
}
