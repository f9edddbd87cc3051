package mini

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Config controls where a program writes, where `input_` reads from, and
// how long it may run.
type Config struct {
	Stdout io.Writer
	Input  LineSource
	// StepQuota bounds executed statements plus loop iterations. Zero means
	// unlimited.
	StepQuota int
}

// Engine compiles and runs programs under one Config.
type Engine struct {
	config Config
}

// NewEngine constructs an Engine, filling unset fields with the process
// console.
func NewEngine(cfg Config) *Engine {
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Input == nil {
		cfg.Input = NewReaderInput(os.Stdin)
	}
	if cfg.StepQuota < 0 {
		cfg.StepQuota = 0
	}
	return &Engine{config: cfg}
}

// Script is a compiled program bound to the engine that compiled it.
type Script struct {
	engine   *Engine
	source   string
	program  *Program
	problems []error
}

// Compile tokenizes and structures source. It does not fail: problems that
// abort a run are reported when execution reaches them, and are also listed
// by Script.Problems.
func (e *Engine) Compile(source string) *Script {
	program, problems := Parse(Tokenize(source))
	return &Script{engine: e, source: source, program: program, problems: problems}
}

// Execute compiles source and runs it against a fresh environment. The
// environment is returned even when the run fails, holding every binding made
// before the failure.
func (e *Engine) Execute(ctx context.Context, source string) (*Env, error) {
	env := NewEnv()
	err := e.Compile(source).Run(ctx, env)
	return env, err
}

// ConfigSummary provides a human-readable description of the interpreter limits.
func (e *Engine) ConfigSummary() string {
	quota := "unlimited"
	if e.config.StepQuota > 0 {
		quota = fmt.Sprint(e.config.StepQuota)
	}
	return fmt.Sprintf("steps=%s", quota)
}

func (s *Script) Source() string { return s.source }

func (s *Script) Tokens() []Token { return s.program.Tokens }

func (s *Script) Program() *Program { return s.program }

// Problems lists the compile problems that will abort the run if reached.
func (s *Script) Problems() []error {
	return append([]error(nil), s.problems...)
}

// Run executes the script against env. Bindings are applied as each
// statement completes, so env reflects partial progress after an error.
func (s *Script) Run(ctx context.Context, env *Env) error {
	if env == nil {
		env = NewEnv()
	}
	exec := &Execution{
		ctx:    ctx,
		script: s,
		tokens: s.program.Tokens,
		env:    env,
		out:    s.engine.config.Stdout,
		in:     s.engine.config.Input,
		quota:  s.engine.config.StepQuota,
	}
	return exec.evalStatements(s.program.Statements)
}
