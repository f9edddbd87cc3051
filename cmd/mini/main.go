package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mgomes/minilang/mini"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	failureColor = color.New(color.FgRed)
)

func main() {
	if err := runCLI(os.Args); err != nil {
		failureColor.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "tokens":
		return tokensCommand(args[2:])
	case "check":
		return checkCommand(args[2:])
	case "fmt":
		return fmtCommand(args[2:])
	case "repl":
		return runREPL()
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		if info, err := os.Stat(args[1]); err == nil && !info.IsDir() {
			return runCommand(args[1:])
		}
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	quiet := fs.Bool("quiet", false, "only print program output")
	dump := fs.String("dump", "text", "variable dump format: text, yaml or none")
	steps := fs.Int("steps", 0, "maximum statements and loop iterations (0 = unlimited)")
	inputPath := fs.String("input", "", "read input_ lines from this file instead of stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("mini run: script path required")
	}
	format, err := mini.ParseDumpFormat(*dump)
	if err != nil {
		return err
	}

	scriptPath := remaining[0]
	source, err := readScript(scriptPath)
	if err != nil {
		return err
	}

	input := mini.NewReaderInput(os.Stdin)
	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		input = mini.NewReaderInput(f)
	}

	out := os.Stdout
	engine := mini.NewEngine(mini.Config{Stdout: out, Input: input, StepQuota: *steps})
	script := engine.Compile(source)

	if !*quiet {
		echoScript(out, scriptPath, source, script.Tokens())
		headerColor.Fprintln(out, "output: [")
	}

	env := mini.NewEnv()
	if err := script.Run(context.Background(), env); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}

	if *quiet {
		return nil
	}
	fmt.Fprintln(out)
	headerColor.Fprintln(out, "]")
	if format == mini.DumpNone {
		return nil
	}
	headerColor.Fprintln(out, "variable: ")
	return mini.WriteDump(out, env, format)
}

func echoScript(w io.Writer, path, source string, tokens []mini.Token) {
	headerColor.Fprintln(w, "file:")
	fmt.Fprintln(w, path)
	headerColor.Fprintln(w, "text:")
	fmt.Fprint(w, source)
	if source != "" && !strings.HasSuffix(source, "\n") {
		fmt.Fprintln(w)
	}
	headerColor.Fprintln(w, "tokens:")
	fmt.Fprintln(w, formatTokenList(tokens))
}

func formatTokenList(tokens []mini.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func tokensCommand(args []string) error {
	fs := flag.NewFlagSet("tokens", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("mini tokens: script path required")
	}
	source, err := readScript(fs.Arg(0))
	if err != nil {
		return err
	}
	for i, tok := range mini.Tokenize(source) {
		fmt.Printf("%d\t%s\n", i, tok)
	}
	return nil
}

func readScript(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve script path: %w", err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(data), nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [args]\n", prog)
	fmt.Fprintf(os.Stderr, "       %s <script>\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run [-quiet] [-dump text|yaml|none] [-steps n] [-input file] <script>")
	fmt.Fprintln(os.Stderr, "    run a script, echoing its source, tokens and final variables")
	fmt.Fprintln(os.Stderr, "  tokens <script>")
	fmt.Fprintln(os.Stderr, "    print the token sequence, one token per line")
	fmt.Fprintln(os.Stderr, "  check <script>")
	fmt.Fprintln(os.Stderr, "    report compile problems and suspicious statements")
	fmt.Fprintln(os.Stderr, "  fmt [-w] [-check] <path>...")
	fmt.Fprintln(os.Stderr, "    rewrite .mini files in canonical layout")
	fmt.Fprintln(os.Stderr, "  repl")
	fmt.Fprintln(os.Stderr, "    start an interactive session")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
