package lox

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// sourceLine returns the text of the 1-based line n, without its line
// terminator.
func sourceLine(source string, n int) (string, bool) {
	if n <= 0 {
		return "", false
	}
	for i := 1; i < n; i++ {
		idx := strings.IndexByte(source, '\n')
		if idx < 0 {
			return "", false
		}
		source = source[idx+1:]
	}
	if idx := strings.IndexByte(source, '\n'); idx >= 0 {
		source = source[:idx]
	}
	return strings.TrimSuffix(source, "\r"), true
}

// codeFrame renders the line holding tok and marks the token with carets:
//
//	  --> 2:9
//	 2 | print a + "x";
//	   |         ^
//
// Tabs before the token are kept so the marker lines up in a terminal. It
// returns "" when tok does not point into source.
func codeFrame(source string, tok Token) string {
	text, ok := sourceLine(source, tok.Line)
	if source == "" || !ok {
		return ""
	}

	runes := []rune(text)
	col := min(max(tok.Column, 1), len(runes)+1)
	width := utf8.RuneCountInString(tok.Lexeme)
	if strings.Contains(tok.Lexeme, "\n") || col+width > len(runes)+1 {
		width = len(runes) + 1 - col
	}
	width = max(width, 1)

	var pad strings.Builder
	for _, r := range runes[:col-1] {
		if r == '\t' {
			pad.WriteRune('\t')
		} else {
			pad.WriteByte(' ')
		}
	}

	label := strconv.Itoa(tok.Line)
	gutter := strings.Repeat(" ", len(label))
	return fmt.Sprintf("  --> %d:%d\n %s | %s\n %s | %s%s",
		tok.Line, col, label, text, gutter, pad.String(), strings.Repeat("^", width))
}
