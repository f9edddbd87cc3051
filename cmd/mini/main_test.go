package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/mgomes/minilang/mini"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestRunCLIHelp(t *testing.T) {
	if err := runCLI([]string{"mini", "help"}); err != nil {
		t.Fatalf("runCLI help failed: %v", err)
	}
}

func TestRunCLIInvalidCommand(t *testing.T) {
	err := runCLI([]string{"mini", "unknown"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCLIWithoutCommand(t *testing.T) {
	err := runCLI([]string{"mini"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCommandEchoesSourceTokensAndVariables(t *testing.T) {
	source := "int x = 5 + 2; println(x);"
	scriptPath := writeScript(t, source)

	out, err := captureStdout(t, func() error {
		return runCommand([]string{scriptPath})
	})
	if err != nil {
		t.Fatalf("runCommand failed: %v", err)
	}

	wantPrefix := "file:\n" + scriptPath + "\ntext:\n" + source + "\ntokens:\n" +
		"[KEYWORD(int), IDENT(x), =, INT(5), +, INT(2), ;, KEYWORD(println), (, IDENT(x), ), ;]\n"
	if !strings.HasPrefix(out, wantPrefix) {
		t.Fatalf("unexpected echo:\n%s", out)
	}
	wantSuffix := "output: [\n7\n\n]\nvariable: \n\t{\"x\": 7}\n\t{}\n\t{}\n"
	if !strings.HasSuffix(out, wantSuffix) {
		t.Fatalf("unexpected output and dump:\n%q", out)
	}
}

func TestRunCommandQuietPrintsOnlyProgramOutput(t *testing.T) {
	scriptPath := writeScript(t, `int i = 0; while (i < 3) { print(i); i = i + 1; }`)

	out, err := captureStdout(t, func() error {
		return runCommand([]string{"-quiet", scriptPath})
	})
	if err != nil {
		t.Fatalf("runCommand failed: %v", err)
	}
	if out != "012" {
		t.Fatalf("unexpected stdout: %q", out)
	}
}

func TestRunCommandYAMLDump(t *testing.T) {
	scriptPath := writeScript(t, `int x = 7; string s = "hi"; bool b = x > 3;`)

	out, err := captureStdout(t, func() error {
		return runCommand([]string{"-dump", "yaml", scriptPath})
	})
	if err != nil {
		t.Fatalf("runCommand failed: %v", err)
	}
	for _, want := range []string{"ints:\n  x: 7\n", "strings:\n  s: hi\n", "bools:\n  b: true\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("yaml dump missing %q:\n%s", want, out)
		}
	}
}

func TestRunCommandReadsInputFile(t *testing.T) {
	scriptPath := writeScript(t, `string name = input_; int n = input_; println("hi " + name + " " + n);`)
	inputPath := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(inputPath, []byte("ada\r\n41\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	out, err := captureStdout(t, func() error {
		return runCommand([]string{"-quiet", "-input", inputPath, scriptPath})
	})
	if err != nil {
		t.Fatalf("runCommand failed: %v", err)
	}
	if out != "hi ada 41\n" {
		t.Fatalf("unexpected stdout: %q", out)
	}
}

func TestRunCommandReportsRuntimeError(t *testing.T) {
	scriptPath := writeScript(t, `println("before"); int z = 1 / 0; println("after");`)

	out, err := captureStdout(t, func() error {
		return runCommand([]string{"-quiet", scriptPath})
	})
	if !errors.Is(err, mini.ErrDivisionByZero) {
		t.Fatalf("expected division by zero, got %v", err)
	}
	if out != "before\n" {
		t.Fatalf("output before the failure should remain, got %q", out)
	}
}

func TestRunCommandStepQuota(t *testing.T) {
	scriptPath := writeScript(t, `while (true) { }`)

	_, err := captureStdout(t, func() error {
		return runCommand([]string{"-quiet", "-steps", "50", scriptPath})
	})
	if !errors.Is(err, mini.ErrStepQuotaExceeded) {
		t.Fatalf("expected step quota error, got %v", err)
	}
}

func TestRunCommandErrors(t *testing.T) {
	if err := runCommand(nil); err == nil || !strings.Contains(err.Error(), "script path required") {
		t.Fatalf("unexpected error without path: %v", err)
	}

	missing := filepath.Join(t.TempDir(), "missing.mini")
	if err := runCommand([]string{missing}); err == nil || !strings.Contains(err.Error(), "read script") {
		t.Fatalf("unexpected error for missing file: %v", err)
	}

	scriptPath := writeScript(t, `println(1);`)
	if err := runCommand([]string{"-dump", "xml", scriptPath}); err == nil || !strings.Contains(err.Error(), "unknown dump format") {
		t.Fatalf("unexpected error for bad dump format: %v", err)
	}
}

func TestRunCLIBarePathRunsScript(t *testing.T) {
	scriptPath := writeScript(t, `println("bare");`)

	out, err := captureStdout(t, func() error {
		return runCLI([]string{"mini", scriptPath})
	})
	if err != nil {
		t.Fatalf("runCLI failed: %v", err)
	}
	if !strings.Contains(out, "output: [\nbare\n") {
		t.Fatalf("unexpected stdout: %q", out)
	}
}

func TestTokensCommand(t *testing.T) {
	scriptPath := writeScript(t, `bool b = true;`)

	out, err := captureStdout(t, func() error {
		return tokensCommand([]string{scriptPath})
	})
	if err != nil {
		t.Fatalf("tokensCommand failed: %v", err)
	}
	want := "0\tKEYWORD(bool)\n1\tIDENT(b)\n2\t=\n3\tTRUE\n4\t;\n"
	if out != want {
		t.Fatalf("unexpected tokens output:\n%s", out)
	}
}

func TestCheckCommandNoIssues(t *testing.T) {
	scriptPath := writeScript(t, `int x = 1; x = x + 1; string s = "a"; s = s + "b";`)

	out, err := captureStdout(t, func() error {
		return checkCommand([]string{scriptPath})
	})
	if err != nil {
		t.Fatalf("checkCommand failed: %v", err)
	}
	if !strings.Contains(out, "No issues found") {
		t.Fatalf("unexpected check output: %q", out)
	}
}

func TestCheckCommandReportsWarnings(t *testing.T) {
	scriptPath := writeScript(t, `bool f = true; g = f; [ ]`)

	out, err := captureStdout(t, func() error {
		return checkCommand([]string{scriptPath})
	})
	if err == nil {
		t.Fatalf("expected check to report issues")
	}
	if !strings.Contains(err.Error(), "check found 4 issue(s)") {
		t.Fatalf("unexpected check error: %v", err)
	}
	for _, want := range []string{
		"token 5: g is assigned but never declared",
		"token 5: boolean value assigned to g",
		"token 9: [ is not part of any statement",
		"token 10: ] is not part of any statement",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("check output missing %q:\n%s", want, out)
		}
	}
}

func TestCheckCommandReportsCompileProblems(t *testing.T) {
	scriptPath := writeScript(t, `println("a"); int = 3;`)

	out, err := captureStdout(t, func() error {
		return checkCommand([]string{scriptPath})
	})
	if err == nil {
		t.Fatalf("expected check to fail")
	}
	if !strings.Contains(out, "error: ExpectedIdentifier") {
		t.Fatalf("expected compile problem in output, got %q", out)
	}
}

func writeScript(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.mini")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	runErr := fn()
	_ = w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	if _, copyErr := io.Copy(&buf, r); copyErr != nil {
		t.Fatalf("read stdout: %v", copyErr)
	}
	_ = r.Close()
	return buf.String(), runErr
}
