package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/beacodeart/glox/lox"
)

const indentUnit = "  "

type fmtMode int

const (
	fmtPrint fmtMode = iota
	fmtWrite
	fmtCheck
)

func fmtCommand(args []string) error {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	write := fs.Bool("w", false, "write result to source files instead of stdout")
	check := fs.Bool("check", false, "list files whose formatting differs and fail if any do")
	if err := fs.Parse(args); err != nil {
		return &exitError{code: exitUsage, err: err}
	}
	if fs.NArg() == 0 {
		return &exitError{code: exitUsage, err: errors.New("lox fmt: path required")}
	}

	mode := fmtPrint
	switch {
	case *check:
		mode = fmtCheck
	case *write:
		mode = fmtWrite
	}

	files, err := collectLoxFiles(fs.Args())
	if err != nil {
		return err
	}
	var unformatted []string
	for _, path := range files {
		changed, err := formatFile(path, mode)
		if err != nil {
			return err
		}
		if changed {
			unformatted = append(unformatted, path)
		}
	}

	if mode == fmtCheck && len(unformatted) > 0 {
		return fmt.Errorf("lox fmt: %d file(s) need formatting", len(unformatted))
	}
	return nil
}

// formatFile formats one file according to mode and reports whether its
// contents differ from the formatted form.
func formatFile(path string, mode fmtMode) (bool, error) {
	original, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	formatted, err := formatLoxSource(string(original))
	if err != nil {
		return false, &exitError{code: exitDataErr, err: fmt.Errorf("lox fmt: %s: %w", path, err)}
	}
	changed := formatted != string(original)

	switch mode {
	case fmtPrint:
		fmt.Print(formatted)
	case fmtCheck:
		if changed {
			fmt.Println(path)
		}
	case fmtWrite:
		if !changed {
			break
		}
		info, err := os.Stat(path)
		if err != nil {
			return changed, fmt.Errorf("stat %s: %w", path, err)
		}
		if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
			return changed, fmt.Errorf("write %s: %w", path, err)
		}
	}
	return changed, nil
}

// collectLoxFiles expands targets into absolute .lox paths, sorted and
// without duplicates. Hidden directories are skipped while walking; a file
// named explicitly is always taken.
func collectLoxFiles(targets []string) ([]string, error) {
	var files []string
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", target, err)
		}
		if !info.IsDir() {
			if filepath.Ext(target) == ".lox" {
				files = append(files, target)
			}
			continue
		}
		err = filepath.WalkDir(target, func(path string, entry fs.DirEntry, walkErr error) error {
			switch {
			case walkErr != nil:
				return walkErr
			case entry.IsDir() && path != target && strings.HasPrefix(entry.Name(), "."):
				return filepath.SkipDir
			case !entry.IsDir() && filepath.Ext(path) == ".lox":
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", target, err)
		}
	}

	for i, path := range files {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", path, err)
		}
		files[i] = abs
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// lineInfo is what the formatter needs to know about one source line.
type lineInfo struct {
	opens, closes int
	first         lox.TokenKind
	// starts inside a string literal; leading text is kept as is
	inString bool
	// ends inside a string literal; trailing whitespace belongs to it
	openString bool
}

// formatLoxSource normalizes line endings, strips trailing whitespace and
// re-indents each line by its block depth. Source with syntax errors is
// rejected.
func formatLoxSource(source string) (string, error) {
	normalized := strings.ReplaceAll(source, "\r\n", "\n")

	tokens, scanErrs := lox.Scan(normalized)
	if _, parseErrs := lox.Parse(tokens); len(scanErrs)+len(parseErrs) > 0 {
		return "", errors.Join(append(scanErrs, parseErrs...)...)
	}

	lines := strings.Split(normalized, "\n")
	info := make([]lineInfo, len(lines)+1)
	for _, tok := range tokens {
		if tok.Kind == lox.TokenEOF {
			break
		}
		start := tok.Line - strings.Count(tok.Lexeme, "\n")
		for l := start; l < tok.Line; l++ {
			info[l].openString = true
			info[l+1].inString = true
		}
		if info[start].first == "" {
			info[start].first = tok.Kind
		}
		switch tok.Kind {
		case lox.TokenLeftBrace:
			info[start].opens++
		case lox.TokenRightBrace:
			info[start].closes++
		}
	}

	depth := 0
	for i, line := range lines {
		li := info[i+1]
		switch {
		case li.inString:
			if !li.openString {
				line = strings.TrimRight(line, " \t")
			}
		default:
			content := strings.TrimLeft(line, " \t")
			if !li.openString {
				content = strings.TrimRight(content, " \t")
			}
			indent := depth
			if li.first == lox.TokenRightBrace {
				indent--
			}
			if content != "" {
				line = strings.Repeat(indentUnit, max(indent, 0)) + content
			} else {
				line = ""
			}
		}
		lines[i] = line
		depth += li.opens - li.closes
	}

	joined := strings.TrimRight(strings.Join(lines, "\n"), "\n")
	if joined == "" {
		return "", nil
	}
	return joined + "\n", nil
}
