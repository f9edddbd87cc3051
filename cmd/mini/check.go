package main

import (
	"errors"
	"flag"
	"fmt"
	"sort"

	"github.com/mgomes/minilang/mini"
)

type lintWarning struct {
	Token   int
	Message string
}

func checkCommand(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("mini check: script path required")
	}

	scriptPath := remaining[0]
	source, err := readScript(scriptPath)
	if err != nil {
		return err
	}

	engine := mini.NewEngine(mini.Config{})
	script := engine.Compile(source)

	problems := script.Problems()
	warnings := checkScriptWarnings(script.Program())
	if len(problems) == 0 && len(warnings) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	for _, problem := range problems {
		fmt.Printf("%s: error: %v\n", scriptPath, problem)
	}
	for _, warning := range warnings {
		fmt.Printf("%s: token %d: %s\n", scriptPath, warning.Token, warning.Message)
	}

	return fmt.Errorf("check found %d issue(s)", len(problems)+len(warnings))
}

// declarations records every name declared with a type keyword anywhere in
// the program, by namespace.
type declarations map[mini.Namespace]map[string]bool

func (d declarations) has(ns mini.Namespace, name string) bool {
	return d[ns][name]
}

func (d declarations) declared(name string) bool {
	return d.has(mini.NamespaceInt, name) || d.has(mini.NamespaceString, name) || d.has(mini.NamespaceBool, name)
}

func checkScriptWarnings(program *mini.Program) []lintWarning {
	warnings := make([]lintWarning, 0)

	decls := declarations{
		mini.NamespaceInt:    {},
		mini.NamespaceString: {},
		mini.NamespaceBool:   {},
	}
	collectDeclarations(program.Statements, decls)
	lintStatements(program, program.Statements, decls, &warnings)

	for i, tok := range program.Tokens {
		if tok.Type == mini.TokenLBracket || tok.Type == mini.TokenRBracket {
			warnings = append(warnings, lintWarning{
				Token:   i,
				Message: fmt.Sprintf("%s is not part of any statement and is ignored", tok),
			})
		}
	}

	sort.SliceStable(warnings, func(i, j int) bool {
		return warnings[i].Token < warnings[j].Token
	})
	return warnings
}

func collectDeclarations(statements []mini.Statement, decls declarations) {
	for _, stmt := range statements {
		switch typed := stmt.(type) {
		case *mini.DeclStmt:
			decls[typed.Namespace][typed.Name] = true
		case *mini.IfStmt:
			collectDeclarations(typed.Consequent, decls)
			collectDeclarations(typed.Alternate, decls)
		case *mini.WhileStmt:
			collectDeclarations(typed.Body, decls)
		}
	}
}

func lintStatements(program *mini.Program, statements []mini.Statement, decls declarations, warnings *[]lintWarning) {
	for _, stmt := range statements {
		switch typed := stmt.(type) {
		case *mini.AssignStmt:
			lintAssignment(program, typed, decls, warnings)
		case *mini.IfStmt:
			lintStatements(program, typed.Consequent, decls, warnings)
			lintStatements(program, typed.Alternate, decls, warnings)
		case *mini.WhileStmt:
			lintStatements(program, typed.Body, decls, warnings)
		}
	}
}

func lintAssignment(program *mini.Program, stmt *mini.AssignStmt, decls declarations, warnings *[]lintWarning) {
	// The value span follows `name =`.
	at := max(stmt.Value.Start-2, 0)
	if !decls.declared(stmt.Name) {
		*warnings = append(*warnings, lintWarning{
			Token:   at,
			Message: fmt.Sprintf("%s is assigned but never declared with int, string or bool", stmt.Name),
		})
	}
	if stmt.Value.Len() == 0 {
		return
	}
	first := program.Tokens[stmt.Value.Start]
	boolValue := first.Type == mini.TokenTrue || first.Type == mini.TokenFalse
	if first.Type == mini.TokenIdent {
		boolValue = decls.has(mini.NamespaceBool, first.Literal) &&
			!decls.has(mini.NamespaceInt, first.Literal) &&
			!decls.has(mini.NamespaceString, first.Literal)
	}
	if boolValue {
		*warnings = append(*warnings, lintWarning{
			Token:   at,
			Message: fmt.Sprintf("boolean value assigned to %s without a bool declaration will fail at run time", stmt.Name),
		})
	}
}
