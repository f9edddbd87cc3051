package mini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Execution is the state of one program run: the token arena shared by every
// span, the environment, and the console capabilities.
type Execution struct {
	ctx    context.Context
	script *Script
	tokens []Token
	env    *Env
	out    io.Writer
	in     LineSource
	quota  int
	steps  int
}

func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return newError(KindStepQuotaExceeded, "step quota exceeded (%d)", exec.quota)
	}
	if exec.ctx != nil {
		select {
		case <-exec.ctx.Done():
			return exec.ctx.Err()
		default:
		}
	}
	return nil
}

func (exec *Execution) cursor(span Span) *cursor {
	return newCursor(exec.tokens, span)
}

func (exec *Execution) evalStatements(stmts []Statement) error {
	for _, stmt := range stmts {
		if err := exec.step(); err != nil {
			return err
		}
		if err := exec.evalStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (exec *Execution) evalStatement(stmt Statement) error {
	switch s := stmt.(type) {
	case *DeclStmt:
		return exec.evalDeclaration(s)
	case *AssignStmt:
		return exec.evalAssignment(s)
	case *PrintStmt:
		return exec.evalPrint(s)
	case *IfStmt:
		return exec.evalIfStatement(s)
	case *WhileStmt:
		return exec.evalWhileStatement(s)
	case *FailStmt:
		return s.Err
	default:
		return fmt.Errorf("unsupported statement %T", stmt)
	}
}

func (exec *Execution) evalDeclaration(stmt *DeclStmt) error {
	c := exec.cursor(stmt.Value)
	var val Value
	switch stmt.Namespace {
	case NamespaceInt:
		n, err := exec.evalExpression(c)
		if err != nil {
			return err
		}
		val = NewInt(n)
	case NamespaceString:
		s, err := exec.evalConcat(c)
		if err != nil {
			return err
		}
		val = NewString(s)
	case NamespaceBool:
		b, err := exec.evalBoolean(c)
		if err != nil {
			return err
		}
		val = NewBool(b)
	}
	exec.env.Declare(stmt.Namespace, stmt.Name, val)
	return nil
}

// evalAssignment picks the namespace from the first token of the value: a
// string literal or string variable concatenates, an integer literal or
// integer variable evaluates arithmetic. Boolean values are not assignable
// this way.
func (exec *Execution) evalAssignment(stmt *AssignStmt) error {
	c := exec.cursor(stmt.Value)
	tok, ok := c.peek()
	if !ok {
		return unexpectedEnd("value after " + stmt.Name + " =")
	}

	ns := NamespaceInt
	switch tok.Type {
	case TokenString:
		ns = NamespaceString
	case TokenInt:
	case TokenIdent:
		switch {
		case exec.env.Has(NamespaceString, tok.Literal):
			ns = NamespaceString
		case exec.env.Has(NamespaceInt, tok.Literal):
		case exec.env.Has(NamespaceBool, tok.Literal):
			return newError(KindUnsupportedAssignment, "cannot assign boolean %s to %s without a bool declaration", tok.Literal, stmt.Name)
		default:
			return newError(KindUnknownIdentifier, "%s is not defined", tok.Literal)
		}
	default:
		return newError(KindUnsupportedAssignment, "cannot assign %s to %s without a declaration", tokenLabel(tok), stmt.Name)
	}

	if ns == NamespaceString {
		s, err := exec.evalConcat(c)
		if err != nil {
			return err
		}
		exec.env.Declare(ns, stmt.Name, NewString(s))
		return nil
	}
	n, err := exec.evalExpression(c)
	if err != nil {
		return err
	}
	exec.env.Declare(ns, stmt.Name, NewInt(n))
	return nil
}

func (exec *Execution) evalPrint(stmt *PrintStmt) error {
	var b strings.Builder
	c := exec.cursor(stmt.Args)
	for {
		tok, ok := c.next()
		if !ok {
			break
		}
		switch tok.Type {
		case TokenPlus:
		case TokenInt:
			b.WriteString(strconv.FormatInt(int64(tok.Int), 10))
		case TokenString:
			b.WriteString(tok.Literal)
		case TokenTrue:
			b.WriteString("true")
		case TokenFalse:
			b.WriteString("false")
		case TokenIdent:
			val, err := exec.env.Resolve(tok.Literal)
			if err != nil {
				return err
			}
			b.WriteString(val.String())
		case TokenKeyword:
			if tok.Literal != KeywordInput {
				return unexpectedToken(tok, "printable value")
			}
			line, err := exec.readLine()
			if err != nil {
				return err
			}
			b.WriteString(line)
		default:
			return unexpectedToken(tok, "printable value")
		}
	}
	if stmt.Newline {
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(exec.out, b.String()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func (exec *Execution) readLine() (string, error) {
	line, err := exec.in.ReadLine()
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	if err != nil {
		return "", wrapError(KindInvalidInput, err, "read input")
	}
	return line, nil
}

func (exec *Execution) readInt() (int32, error) {
	line, err := exec.readLine()
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 32)
	if err != nil {
		return 0, wrapError(KindInvalidInput, err, "%q is not an integer", line)
	}
	return int32(n), nil
}
