package mini

// Statement is a node of the compiled statement tree. Operands that are
// evaluated by the expression evaluators stay as token spans, because the
// evaluation path of a comparison or bare assignment depends on the bindings
// present when the statement runs.
type Statement interface {
	stmtNode()
}

// DeclStmt is `int|string|bool name = value;`.
type DeclStmt struct {
	Namespace Namespace
	Name      string
	Value     Span
}

func (s *DeclStmt) stmtNode() {}

// AssignStmt is a bare `name = value;`.
type AssignStmt struct {
	Name  string
	Value Span
}

func (s *AssignStmt) stmtNode() {}

// PrintStmt is `print(...)` or `println(...)`; Args excludes the parentheses.
type PrintStmt struct {
	Args    Span
	Newline bool
}

func (s *PrintStmt) stmtNode() {}

type IfStmt struct {
	Condition  Span
	Consequent []Statement
	Alternate  []Statement
}

func (s *IfStmt) stmtNode() {}

type WhileStmt struct {
	Condition Span
	Body      []Statement
}

func (s *WhileStmt) stmtNode() {}

// FailStmt defers a compile problem until execution reaches it, so that
// statements before it still take effect.
type FailStmt struct {
	Err error
}

func (s *FailStmt) stmtNode() {}

// Program is the compiled form of one source text.
type Program struct {
	Tokens     []Token
	Statements []Statement
}
