package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mgomes/minilang/mini"
)

const scriptExt = ".mini"

func fmtCommand(args []string) error {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	write := fs.Bool("w", false, "write result to source files instead of stdout")
	check := fs.Bool("check", false, "fail if any source file needs formatting")
	if err := fs.Parse(args); err != nil {
		return err
	}

	targets := fs.Args()
	if len(targets) == 0 {
		return errors.New("mini fmt: path required")
	}

	files, err := collectScriptFiles(targets)
	if err != nil {
		return err
	}

	changedCount := 0
	for _, path := range files {
		originalBytes, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		original := string(originalBytes)
		formatted := formatSource(original)
		changed := formatted != original
		if changed {
			changedCount++
		}

		switch {
		case *write && changed:
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}
			if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
		case *check && changed:
			fmt.Println(path)
		case !*write && !*check:
			fmt.Print(formatted)
		}
	}

	if *check && changedCount > 0 {
		return fmt.Errorf("mini fmt: %d file(s) need formatting", changedCount)
	}
	return nil
}

// collectScriptFiles expands directories to the .mini files beneath them.
// Files named explicitly are kept whatever their extension.
func collectScriptFiles(targets []string) ([]string, error) {
	seen := make(map[string]struct{})
	files := make([]string, 0)
	addFile := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return
		}
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		files = append(files, abs)
	}

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", target, err)
		}
		if !info.IsDir() {
			addFile(target)
			continue
		}
		err = filepath.WalkDir(target, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() || filepath.Ext(path) != scriptExt {
				return nil
			}
			addFile(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", target, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// formatSource re-renders source from its tokens: one statement per line,
// four spaces of indentation per open brace, and `} else {` on one line.
// Characters the tokenizer skips do not survive formatting.
func formatSource(source string) string {
	tokens := mini.Tokenize(source)
	var f sourceFormatter
	for i, tok := range tokens {
		switch tok.Type {
		case mini.TokenLBrace:
			f.emit("{", true)
			f.flush()
			f.depth++
		case mini.TokenRBrace:
			f.flush()
			if f.depth > 0 {
				f.depth--
			}
			f.emit("}", false)
			if i+1 < len(tokens) && tokens[i+1].Is(mini.KeywordElse) {
				continue
			}
			f.flush()
		case mini.TokenSemi:
			f.emit(";", false)
			f.flush()
		default:
			space := true
			if i > 0 {
				space = spaceBetween(tokens[i-1], tok)
			}
			f.emit(tok.Source(), space)
		}
	}
	f.flush()
	return f.out.String()
}

type sourceFormatter struct {
	out    strings.Builder
	line   strings.Builder
	depth  int
	indent int
}

func (f *sourceFormatter) emit(text string, space bool) {
	if f.line.Len() == 0 {
		f.indent = f.depth
	} else if space {
		f.line.WriteByte(' ')
	}
	f.line.WriteString(text)
}

func (f *sourceFormatter) flush() {
	if f.line.Len() == 0 {
		return
	}
	f.out.WriteString(strings.Repeat("    ", f.indent))
	f.out.WriteString(f.line.String())
	f.out.WriteByte('\n')
	f.line.Reset()
}

func spaceBetween(prev, cur mini.Token) bool {
	switch {
	case prev.Type == mini.TokenLParen, cur.Type == mini.TokenRParen:
		return false
	case cur.Type == mini.TokenLParen:
		return !prev.Is(mini.KeywordPrint) && !prev.Is(mini.KeywordPrintln)
	default:
		return true
	}
}
