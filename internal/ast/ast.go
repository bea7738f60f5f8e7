package ast

import (
	"strconv"
	"strings"

	"github.com/corvid-lang/corvid/internal/lexer"
)

// Node represents any AST node with an associated source span and a display
// form. Display forms are fully parenthesized for expressions so that parsing
// a node's own output reproduces the same structure.
type Node interface {
	Span() lexer.Span
	String() string
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Program represents a parsed source text, the root of every parse.
type Program struct {
	Stmts []Stmt
	span  lexer.Span
}

// Span returns the span covering the entire program.
func (p *Program) Span() lexer.Span { return p.span }

// String joins the display forms of all statements.
func (p *Program) String() string {
	parts := make([]string, len(p.Stmts))
	for i, s := range p.Stmts {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}

// NewProgram constructs a program node with the provided span.
func NewProgram(span lexer.Span) *Program {
	return &Program{span: span}
}

// SetSpan updates the program span.
func (p *Program) SetSpan(span lexer.Span) {
	p.span = span
}

// LetStmt represents a let binding statement.
type LetStmt struct {
	Name  *Ident
	Value Expr
	span  lexer.Span
}

// Span returns the statement span.
func (s *LetStmt) Span() lexer.Span { return s.span }

// String renders "let name = value;".
func (s *LetStmt) String() string {
	var sb strings.Builder
	sb.WriteString("let ")
	sb.WriteString(s.Name.String())
	sb.WriteString(" = ")
	if s.Value != nil {
		sb.WriteString(s.Value.String())
	}
	sb.WriteString(";")
	return sb.String()
}

// NewLetStmt constructs a let statement node.
func NewLetStmt(name *Ident, value Expr, span lexer.Span) *LetStmt {
	return &LetStmt{
		Name:  name,
		Value: value,
		span:  span,
	}
}

// stmtNode marks LetStmt as a statement.
func (*LetStmt) stmtNode() {}

// ReturnStmt represents a return statement with an optional value.
type ReturnStmt struct {
	Value Expr
	span  lexer.Span
}

// Span returns the statement span.
func (s *ReturnStmt) Span() lexer.Span { return s.span }

// String renders "return value;" or "return;".
func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "return;"
	}
	return "return " + s.Value.String() + ";"
}

// NewReturnStmt constructs a return statement node.
func NewReturnStmt(value Expr, span lexer.Span) *ReturnStmt {
	return &ReturnStmt{
		Value: value,
		span:  span,
	}
}

// stmtNode marks ReturnStmt as a statement.
func (*ReturnStmt) stmtNode() {}

// ExprStmt represents an expression used in statement position.
type ExprStmt struct {
	Expr Expr
	span lexer.Span
}

// Span returns the statement span.
func (s *ExprStmt) Span() lexer.Span { return s.span }

// String renders the wrapped expression.
func (s *ExprStmt) String() string {
	if s.Expr == nil {
		return ""
	}
	return s.Expr.String()
}

// NewExprStmt constructs an expression statement node.
func NewExprStmt(expr Expr, span lexer.Span) *ExprStmt {
	return &ExprStmt{
		Expr: expr,
		span: span,
	}
}

// stmtNode marks ExprStmt as a statement.
func (*ExprStmt) stmtNode() {}

// BlockStmt represents a braced sequence of statements, used for function
// bodies and if branches.
type BlockStmt struct {
	Stmts []Stmt
	span  lexer.Span
}

// Span returns the block span.
func (b *BlockStmt) Span() lexer.Span { return b.span }

// String renders "{ stmts }".
func (b *BlockStmt) String() string {
	if len(b.Stmts) == 0 {
		return "{ }"
	}
	parts := make([]string, len(b.Stmts))
	for i, s := range b.Stmts {
		parts[i] = s.String()
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

// NewBlockStmt constructs a block node.
func NewBlockStmt(stmts []Stmt, span lexer.Span) *BlockStmt {
	return &BlockStmt{
		Stmts: stmts,
		span:  span,
	}
}

// SetSpan updates the block span.
func (b *BlockStmt) SetSpan(span lexer.Span) {
	b.span = span
}

// stmtNode marks BlockStmt as a statement.
func (*BlockStmt) stmtNode() {}

// Ident represents an identifier.
type Ident struct {
	Name string
	span lexer.Span
}

// Span returns the identifier span.
func (i *Ident) Span() lexer.Span { return i.span }

// String returns the identifier name.
func (i *Ident) String() string { return i.Name }

// NewIdent constructs an identifier node.
func NewIdent(name string, span lexer.Span) *Ident {
	return &Ident{
		Name: name,
		span: span,
	}
}

// exprNode marks Ident as an expression.
func (*Ident) exprNode() {}

// IntegerLit represents a signed 64-bit integer literal.
type IntegerLit struct {
	Value int64
	span  lexer.Span
}

// Span returns the literal span.
func (l *IntegerLit) Span() lexer.Span { return l.span }

// String renders the decimal form of the value.
func (l *IntegerLit) String() string { return strconv.FormatInt(l.Value, 10) }

// NewIntegerLit constructs an integer literal node.
func NewIntegerLit(value int64, span lexer.Span) *IntegerLit {
	return &IntegerLit{
		Value: value,
		span:  span,
	}
}

// exprNode marks IntegerLit as an expression.
func (*IntegerLit) exprNode() {}

// BoolLit represents a boolean literal.
type BoolLit struct {
	Value bool
	span  lexer.Span
}

// Span returns the literal span.
func (l *BoolLit) Span() lexer.Span { return l.span }

// String renders "true" or "false".
func (l *BoolLit) String() string { return strconv.FormatBool(l.Value) }

// NewBoolLit constructs a boolean literal node.
func NewBoolLit(value bool, span lexer.Span) *BoolLit {
	return &BoolLit{
		Value: value,
		span:  span,
	}
}

// exprNode marks BoolLit as an expression.
func (*BoolLit) exprNode() {}

// StringLit represents a string literal.
type StringLit struct {
	Value string
	span  lexer.Span
}

// Span returns the literal span.
func (l *StringLit) Span() lexer.Span { return l.span }

// String renders the quoted literal. The lexer reads string contents
// verbatim, so re-quoting the raw value is display-stable.
func (l *StringLit) String() string { return `"` + l.Value + `"` }

// NewStringLit constructs a string literal node.
func NewStringLit(value string, span lexer.Span) *StringLit {
	return &StringLit{
		Value: value,
		span:  span,
	}
}

// exprNode marks StringLit as an expression.
func (*StringLit) exprNode() {}

// ArrayLit represents an array literal.
type ArrayLit struct {
	Elements []Expr
	span     lexer.Span
}

// Span returns the literal span.
func (l *ArrayLit) Span() lexer.Span { return l.span }

// String renders "[e, e, ...]".
func (l *ArrayLit) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// NewArrayLit constructs an array literal node.
func NewArrayLit(elements []Expr, span lexer.Span) *ArrayLit {
	return &ArrayLit{
		Elements: elements,
		span:     span,
	}
}

// exprNode marks ArrayLit as an expression.
func (*ArrayLit) exprNode() {}

// HashPair is a single key/value entry of a hash literal. Pairs are kept in
// source order so the display form round-trips even though insertion order is
// irrelevant to evaluation.
type HashPair struct {
	Key   Expr
	Value Expr
}

// HashLit represents a hash literal.
type HashLit struct {
	Pairs []HashPair
	span  lexer.Span
}

// Span returns the literal span.
func (l *HashLit) Span() lexer.Span { return l.span }

// String renders "{k: v, ...}".
func (l *HashLit) String() string {
	parts := make([]string, len(l.Pairs))
	for i, p := range l.Pairs {
		parts[i] = p.Key.String() + ": " + p.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// NewHashLit constructs a hash literal node.
func NewHashLit(pairs []HashPair, span lexer.Span) *HashLit {
	return &HashLit{
		Pairs: pairs,
		span:  span,
	}
}

// exprNode marks HashLit as an expression.
func (*HashLit) exprNode() {}

// FunctionLit represents a function literal.
type FunctionLit struct {
	Params []*Ident
	Body   *BlockStmt
	span   lexer.Span
}

// Span returns the literal span.
func (l *FunctionLit) Span() lexer.Span { return l.span }

// String renders "fn(p, p) { body }".
func (l *FunctionLit) String() string {
	params := make([]string, len(l.Params))
	for i, p := range l.Params {
		params[i] = p.String()
	}
	return "fn(" + strings.Join(params, ", ") + ") " + l.Body.String()
}

// NewFunctionLit constructs a function literal node.
func NewFunctionLit(params []*Ident, body *BlockStmt, span lexer.Span) *FunctionLit {
	return &FunctionLit{
		Params: params,
		Body:   body,
		span:   span,
	}
}

// exprNode marks FunctionLit as an expression.
func (*FunctionLit) exprNode() {}

// PrefixExpr represents a unary operator applied to an operand.
type PrefixExpr struct {
	Operator lexer.TokenType
	Right    Expr
	span     lexer.Span
}

// Span returns the expression span.
func (e *PrefixExpr) Span() lexer.Span { return e.span }

// String renders "(opRight)".
func (e *PrefixExpr) String() string {
	return "(" + string(e.Operator) + e.Right.String() + ")"
}

// NewPrefixExpr constructs a prefix expression node.
func NewPrefixExpr(operator lexer.TokenType, right Expr, span lexer.Span) *PrefixExpr {
	return &PrefixExpr{
		Operator: operator,
		Right:    right,
		span:     span,
	}
}

// SetSpan updates the expression span.
func (e *PrefixExpr) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks PrefixExpr as an expression.
func (*PrefixExpr) exprNode() {}

// InfixExpr represents a binary operator expression.
type InfixExpr struct {
	Operator lexer.TokenType
	Left     Expr
	Right    Expr
	span     lexer.Span
}

// Span returns the expression span.
func (e *InfixExpr) Span() lexer.Span { return e.span }

// String renders "(left op right)".
func (e *InfixExpr) String() string {
	return "(" + e.Left.String() + " " + string(e.Operator) + " " + e.Right.String() + ")"
}

// NewInfixExpr constructs an infix expression node.
func NewInfixExpr(operator lexer.TokenType, left, right Expr, span lexer.Span) *InfixExpr {
	return &InfixExpr{
		Operator: operator,
		Left:     left,
		Right:    right,
		span:     span,
	}
}

// SetSpan updates the expression span.
func (e *InfixExpr) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks InfixExpr as an expression.
func (*InfixExpr) exprNode() {}

// IfExpr represents a conditional expression with an optional alternative.
type IfExpr struct {
	Condition   Expr
	Consequence *BlockStmt
	Alternative *BlockStmt
	span        lexer.Span
}

// Span returns the expression span.
func (e *IfExpr) Span() lexer.Span { return e.span }

// String renders "if (cond) { conseq }" with an optional " else { alt }".
func (e *IfExpr) String() string {
	var sb strings.Builder
	sb.WriteString("if (")
	sb.WriteString(e.Condition.String())
	sb.WriteString(") ")
	sb.WriteString(e.Consequence.String())
	if e.Alternative != nil {
		sb.WriteString(" else ")
		sb.WriteString(e.Alternative.String())
	}
	return sb.String()
}

// NewIfExpr constructs a conditional expression node.
func NewIfExpr(condition Expr, consequence, alternative *BlockStmt, span lexer.Span) *IfExpr {
	return &IfExpr{
		Condition:   condition,
		Consequence: consequence,
		Alternative: alternative,
		span:        span,
	}
}

// exprNode marks IfExpr as an expression.
func (*IfExpr) exprNode() {}

// IndexExpr represents collection indexing.
type IndexExpr struct {
	Target Expr
	Index  Expr
	span   lexer.Span
}

// Span returns the expression span.
func (e *IndexExpr) Span() lexer.Span { return e.span }

// String renders an index chain with a single set of outer parentheses, so
// b[2][1] displays as "(b[2][1])" rather than "((b[2])[1])".
func (e *IndexExpr) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	e.writeChain(&sb)
	sb.WriteString(")")
	return sb.String()
}

func (e *IndexExpr) writeChain(sb *strings.Builder) {
	if inner, ok := e.Target.(*IndexExpr); ok {
		inner.writeChain(sb)
	} else {
		sb.WriteString(e.Target.String())
	}
	sb.WriteString("[")
	sb.WriteString(e.Index.String())
	sb.WriteString("]")
}

// NewIndexExpr constructs an index expression node.
func NewIndexExpr(target, index Expr, span lexer.Span) *IndexExpr {
	return &IndexExpr{
		Target: target,
		Index:  index,
		span:   span,
	}
}

// SetSpan updates the expression span.
func (e *IndexExpr) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks IndexExpr as an expression.
func (*IndexExpr) exprNode() {}

// CallExpr represents a function call.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	span   lexer.Span
}

// Span returns the expression span.
func (e *CallExpr) Span() lexer.Span { return e.span }

// String renders "callee(a, a)".
func (e *CallExpr) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return e.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// NewCallExpr constructs a call expression node.
func NewCallExpr(callee Expr, args []Expr, span lexer.Span) *CallExpr {
	return &CallExpr{
		Callee: callee,
		Args:   args,
		span:   span,
	}
}

// SetSpan updates the expression span.
func (e *CallExpr) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks CallExpr as an expression.
func (*CallExpr) exprNode() {}
