package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/minilang/mini"
)

// replStepQuota stops runaway loops typed at the prompt.
const replStepQuota = 100_000

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput   textinput.Model
	engine      *mini.Engine
	env         *mini.Env
	input       *mini.ScriptedInput
	output      *bytes.Buffer
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	width       int
	height      int
	showHelp    bool
	showVars    bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	CtrlC key.Binding
	CtrlD key.Binding
	CtrlL key.Binding
	Tab   key.Binding
	CtrlV key.Binding
	CtrlK key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous line"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next line"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "run"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	CtrlD: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "quit"),
	),
	CtrlL: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "autocomplete"),
	),
	CtrlV: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "toggle vars"),
	),
	CtrlK: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle help"),
	),
}

func newREPLModel() replModel {
	ti := textinput.New()
	ti.Placeholder = "type a statement..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = "mini> "

	m := replModel{
		textInput:  ti,
		historyIdx: -1,
	}
	m.resetSession()
	return m
}

// resetSession replaces the environment and drops queued input lines.
func (m *replModel) resetSession() {
	m.env = mini.NewEnv()
	m.input = mini.NewScriptedInput()
	m.output = new(bytes.Buffer)
	m.engine = mini.NewEngine(mini.Config{
		Stdout:    m.output,
		Input:     m.input,
		StepQuota: replStepQuota,
	})
}

func (m replModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil
	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// handleKey applies the REPL's own bindings. Keys it does not handle go to
// the text input.
func (m replModel) handleKey(msg tea.KeyMsg) (replModel, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.CtrlD):
		m.quitting = true
		return m, tea.Quit, true
	case key.Matches(msg, keys.CtrlL):
		m.history = nil
	case key.Matches(msg, keys.CtrlV):
		m.showVars = !m.showVars
	case key.Matches(msg, keys.CtrlK):
		m.showHelp = !m.showHelp
	case key.Matches(msg, keys.Up):
		m = m.recall(-1)
	case key.Matches(msg, keys.Down):
		m = m.recall(1)
	case key.Matches(msg, keys.Tab):
		m = m.handleAutocomplete()
	case key.Matches(msg, keys.Enter):
		next, cmd := m.submit(strings.TrimSpace(m.textInput.Value()))
		return next, cmd, true
	default:
		return m, nil, false
	}
	return m, nil, true
}

// recall moves through previously run lines. Stepping past the newest line
// clears the prompt.
func (m replModel) recall(delta int) replModel {
	if len(m.cmdHistory) == 0 {
		return m
	}
	switch {
	case m.historyIdx == -1 && delta < 0:
		m.historyIdx = len(m.cmdHistory) - 1
	case m.historyIdx == -1:
		return m
	default:
		m.historyIdx += delta
	}
	switch {
	case m.historyIdx < 0:
		m.historyIdx = 0
	case m.historyIdx >= len(m.cmdHistory):
		m.historyIdx = -1
		m.textInput.SetValue("")
		return m
	}
	m.textInput.SetValue(m.cmdHistory[m.historyIdx])
	m.textInput.CursorEnd()
	return m
}

func (m replModel) submit(line string) (replModel, tea.Cmd) {
	if line == "" {
		return m, nil
	}
	var cmd tea.Cmd
	if strings.HasPrefix(line, ":") {
		m, cmd = m.handleCommand(line)
	} else {
		output, isErr := m.evaluate(line)
		m.history = append(m.history, historyEntry{input: line, output: output, isErr: isErr})
		m.cmdHistory = append(m.cmdHistory, line)
	}
	m.textInput.SetValue("")
	m.historyIdx = -1
	return m, cmd
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = nil
	case ":vars", ":v":
		m.showVars = !m.showVars
	case ":reset", ":r":
		m.resetSession()
		m.history = append(m.history, historyEntry{
			input:  input,
			output: "Environment reset",
		})
	case ":input", ":i":
		line := strings.TrimPrefix(strings.TrimPrefix(input, cmd), " ")
		m.input.Push(line)
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("Queued input (%d pending)", m.input.Len()),
		})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("Unknown command: %s", cmd),
			isErr:  true,
		})
	}
	return m, nil
}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	words := strings.Fields(input)
	if len(words) == 0 || strings.HasSuffix(input, " ") {
		return m
	}
	lastWord := words[len(words)-1]

	candidates := append(mini.Keywords(), "true", "false")
	candidates = append(candidates, m.env.Names()...)

	var completions []string
	for _, c := range candidates {
		if strings.HasPrefix(c, lastWord) && c != lastWord {
			completions = append(completions, c)
		}
	}

	if len(completions) == 1 {
		prefix := strings.TrimSuffix(input, lastWord)
		m.textInput.SetValue(prefix + completions[0])
		m.textInput.CursorEnd()
	} else if len(completions) > 1 {
		m.history = append(m.history, historyEntry{
			output: "Completions: " + strings.Join(completions, ", "),
		})
	}

	return m
}

// evaluate runs one line against the session environment and returns what it
// printed. Bindings made before a failure are kept.
func (m replModel) evaluate(input string) (string, bool) {
	m.output.Reset()
	script := m.engine.Compile(input)
	err := script.Run(context.Background(), m.env)
	printed := strings.TrimRight(m.output.String(), "\n")
	if err != nil {
		if printed != "" {
			return printed + "\n" + err.Error(), true
		}
		return err.Error(), true
	}
	if printed == "" {
		return "ok", false
	}
	return printed, false
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	header := headerStyle.Render("mini REPL")
	limits := mutedStyle.Render(m.engine.ConfigSummary())
	b.WriteString(header + " " + limits + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n\n")

	reservedLines := 8
	if m.showHelp {
		reservedLines += 11
	}
	if m.showVars {
		reservedLines += len(m.env.Names()) + 3
	}
	availableHeight := max(m.height-reservedLines, 1)

	historyStart := 0
	if len(m.history) > availableHeight {
		historyStart = len(m.history) - availableHeight
	}

	for _, entry := range m.history[historyStart:] {
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  › ") + entry.input + "\n")
		}
		if entry.isErr {
			b.WriteString("  " + errorStyle.Render("✗ "+entry.output) + "\n")
		} else {
			b.WriteString("  " + resultStyle.Render("→ "+entry.output) + "\n")
		}
		b.WriteString("\n")
	}

	if m.showVars {
		b.WriteString(renderVarsPanel(m.env))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(renderHelpPanel())
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	footer := helpKeyStyle.Render("ctrl+k") + helpDescStyle.Render(" help  ") +
		helpKeyStyle.Render("ctrl+v") + helpDescStyle.Render(" vars  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

// renderVarsPanel lists every name with all of its bindings, since a name may
// live in more than one namespace.
func renderVarsPanel(env *mini.Env) string {
	names := env.Names()
	if len(names) == 0 {
		return borderStyle.Render(mutedStyle.Render("No variables defined"))
	}

	snap := env.Snapshot()
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Variables"))
	varNameStyle := lipgloss.NewStyle().Foreground(highlightColor)
	for _, name := range names {
		var bindings []string
		if v, ok := snap.Ints[name]; ok {
			bindings = append(bindings, fmt.Sprintf("int %d", v))
		}
		if v, ok := snap.Strings[name]; ok {
			bindings = append(bindings, fmt.Sprintf("string %q", v))
		}
		if v, ok := snap.Bools[name]; ok {
			bindings = append(bindings, fmt.Sprintf("bool %t", v))
		}
		lines = append(lines, fmt.Sprintf("  %s = %s", varNameStyle.Render(name), strings.Join(bindings, ", ")))
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Navigate line history"},
		{"Tab", "Autocomplete"},
		{"Enter", "Run statement"},
		{":input", "Queue a line for input_"},
		{":help", "Toggle this help"},
		{":vars", "Toggle variables panel"},
		{":clear", "Clear history"},
		{":reset", "Reset environment and input"},
		{":quit", "Exit REPL"},
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help"))
	for _, h := range help {
		line := fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-8s", h.key)),
			helpDescStyle.Render(h.desc))
		lines = append(lines, line)
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}

func runREPL() error {
	p := tea.NewProgram(newREPLModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
