package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func enter(t *testing.T, m replModel, line string) (replModel, tea.Cmd) {
	t.Helper()
	m.textInput.SetValue(line)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return rm, cmd
}

func lastEntry(t *testing.T, m replModel) historyEntry {
	t.Helper()
	if len(m.history) == 0 {
		t.Fatalf("history is empty")
	}
	return m.history[len(m.history)-1]
}

func TestUpdateQuitCommandReturnsQuit(t *testing.T) {
	rm, cmd := enter(t, newREPLModel(), ":quit")

	if !rm.quitting {
		t.Fatalf("quitting flag not set")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after quit command")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg, got %T", msg)
		}
	}
}

func TestUpdateNonQuitCommandDoesNotReturnCmd(t *testing.T) {
	rm, cmd := enter(t, newREPLModel(), ":help")

	if cmd != nil {
		t.Fatalf("expected no command for non-quit input")
	}
	if rm.quitting {
		t.Fatalf("quitting should remain false")
	}
	if !rm.showHelp {
		t.Fatalf("help toggle should be enabled")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after command")
	}
}

func TestEnvironmentPersistsAcrossLines(t *testing.T) {
	m := newREPLModel()
	m, _ = enter(t, m, "int score = 40;")
	m, _ = enter(t, m, "score = score + 2;")
	m, _ = enter(t, m, "println(score);")

	entry := lastEntry(t, m)
	if entry.isErr || entry.output != "42" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if got, ok := m.env.LookupInt("score"); !ok || got != 42 {
		t.Fatalf("score = %d, %t", got, ok)
	}
	if len(m.cmdHistory) != 3 {
		t.Fatalf("expected 3 history lines, got %d", len(m.cmdHistory))
	}
}

func TestEvaluateReportsErrorsAndKeepsOutput(t *testing.T) {
	m := newREPLModel()
	m, _ = enter(t, m, `println("partial"); int z = 1 / 0;`)

	entry := lastEntry(t, m)
	if !entry.isErr {
		t.Fatalf("expected an error entry, got %+v", entry)
	}
	if !strings.HasPrefix(entry.output, "partial\n") || !strings.Contains(entry.output, "DivisionByZero") {
		t.Fatalf("unexpected error output %q", entry.output)
	}
}

func TestInputCommandQueuesLines(t *testing.T) {
	m := newREPLModel()
	m, _ = enter(t, m, ":input Ada Lovelace")
	if got := lastEntry(t, m).output; got != "Queued input (1 pending)" {
		t.Fatalf("unexpected queue message %q", got)
	}
	m, _ = enter(t, m, `string name = input_; println("hello " + name);`)

	if entry := lastEntry(t, m); entry.isErr || entry.output != "hello Ada Lovelace" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestRunawayLoopHitsStepQuota(t *testing.T) {
	m := newREPLModel()
	m, _ = enter(t, m, "while (true) { }")

	entry := lastEntry(t, m)
	if !entry.isErr || !strings.Contains(entry.output, "StepQuotaExceeded") {
		t.Fatalf("expected step quota error, got %+v", entry)
	}
}

func TestResetClearsEnvironment(t *testing.T) {
	m := newREPLModel()
	m, _ = enter(t, m, "int x = 1;")
	m, _ = enter(t, m, ":input pending")
	m, _ = enter(t, m, ":reset")

	if m.env.Len() != 0 {
		t.Fatalf("environment not reset: %v", m.env.Names())
	}
	if m.input.Len() != 0 {
		t.Fatalf("queued input not dropped")
	}
	m, _ = enter(t, m, "println(x);")
	if entry := lastEntry(t, m); !entry.isErr {
		t.Fatalf("x should be unknown after reset, got %+v", entry)
	}
}

func TestUnknownCommandIsReported(t *testing.T) {
	m, _ := enter(t, newREPLModel(), ":bogus")
	entry := lastEntry(t, m)
	if !entry.isErr || entry.output != "Unknown command: :bogus" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestAutocompleteCompletesKeywordsAndNames(t *testing.T) {
	m := newREPLModel()
	m, _ = enter(t, m, "int counter = 1;")

	// The last word includes the paren, so nothing matches.
	m.textInput.SetValue("println(cou")
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = model.(replModel)
	if got := m.textInput.Value(); got != "println(cou" {
		t.Fatalf("unexpected completion %q", got)
	}

	m.textInput.SetValue("x = cou")
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = model.(replModel)
	if got := m.textInput.Value(); got != "x = counter" {
		t.Fatalf("unexpected completion %q", got)
	}

	m.textInput.SetValue("whi")
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = model.(replModel)
	if got := m.textInput.Value(); got != "while" {
		t.Fatalf("unexpected completion %q", got)
	}
}

func TestVarsPanelListsEveryBinding(t *testing.T) {
	m := newREPLModel()
	m, _ = enter(t, m, `int x = 3; string x = "s"; bool flag = true;`)

	panel := renderVarsPanel(m.env)
	for _, want := range []string{"int 3", `string "s"`, "bool true"} {
		if !strings.Contains(panel, want) {
			t.Fatalf("vars panel missing %q:\n%s", want, panel)
		}
	}
}

func TestHistoryRecall(t *testing.T) {
	m := newREPLModel()
	m, _ = enter(t, m, "int a = 1;")
	m, _ = enter(t, m, "int b = 2;")

	press := func(kt tea.KeyType) {
		model, _ := m.Update(tea.KeyMsg{Type: kt})
		m = model.(replModel)
	}

	press(tea.KeyUp)
	if got := m.textInput.Value(); got != "int b = 2;" {
		t.Fatalf("first up = %q", got)
	}
	press(tea.KeyUp)
	press(tea.KeyUp)
	if got := m.textInput.Value(); got != "int a = 1;" {
		t.Fatalf("up past the oldest line = %q", got)
	}
	press(tea.KeyDown)
	if got := m.textInput.Value(); got != "int b = 2;" {
		t.Fatalf("down = %q", got)
	}
	press(tea.KeyDown)
	if got := m.textInput.Value(); got != "" || m.historyIdx != -1 {
		t.Fatalf("down past the newest line = %q (idx %d)", got, m.historyIdx)
	}
}
