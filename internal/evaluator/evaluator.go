// Package evaluator walks a parsed program and computes its value. Failures
// are ordinary values of kind ERROR; the walker never panics on bad input and
// stops descending as soon as an error surfaces.
package evaluator

import (
	"fmt"
	"io"
	"os"

	"github.com/sahilm/fuzzy"

	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/lexer"
	"github.com/corvid-lang/corvid/internal/object"
)

// Shared instances for the values with no payload. Every true in a program is
// the same object, which keeps identity comparison cheap and allocation-free.
var (
	Null  = &object.Null{}
	True  = &object.Boolean{Value: true}
	False = &object.Boolean{Value: false}
)

// Evaluator executes programs against an environment.
type Evaluator struct {
	out      io.Writer
	builtins map[string]*object.Builtin
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithOutput redirects the print sink used by puts.
func WithOutput(w io.Writer) Option {
	return func(e *Evaluator) { e.out = w }
}

// New creates an evaluator writing to stdout unless configured otherwise.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{out: os.Stdout}
	for _, opt := range opts {
		opt(e)
	}
	e.builtins = e.newBuiltins()
	return e
}

// Eval computes the value of node in env.
func (e *Evaluator) Eval(node ast.Node, env *object.Environment) object.Object {
	switch node := node.(type) {
	case *ast.Program:
		return e.evalProgram(node, env)
	case *ast.ExprStmt:
		return e.Eval(node.Expr, env)
	case *ast.BlockStmt:
		return e.evalBlock(node, env)
	case *ast.LetStmt:
		val := e.Eval(node.Value, env)
		if isError(val) {
			return val
		}
		env.Set(node.Name.Name, val)
		return Null
	case *ast.ReturnStmt:
		if node.Value == nil {
			return &object.ReturnValue{Value: Null}
		}
		val := e.Eval(node.Value, env)
		if isError(val) {
			return val
		}
		return &object.ReturnValue{Value: val}

	case *ast.IntegerLit:
		return &object.Integer{Value: node.Value}
	case *ast.BoolLit:
		return boolObject(node.Value)
	case *ast.StringLit:
		return &object.String{Value: node.Value}
	case *ast.Ident:
		return e.evalIdent(node, env)
	case *ast.ArrayLit:
		elements, err := e.evalExprs(node.Elements, env)
		if err != nil {
			return err
		}
		return &object.Array{Elements: elements}
	case *ast.HashLit:
		return e.evalHashLit(node, env)
	case *ast.FunctionLit:
		return &object.Function{Params: node.Params, Body: node.Body, Env: env}

	case *ast.PrefixExpr:
		right := e.Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return e.evalPrefixExpr(node.Operator, right)
	case *ast.InfixExpr:
		left := e.Eval(node.Left, env)
		if isError(left) {
			return left
		}
		right := e.Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return e.evalInfixExpr(node.Operator, left, right)
	case *ast.IfExpr:
		return e.evalIfExpr(node, env)
	case *ast.IndexExpr:
		target := e.Eval(node.Target, env)
		if isError(target) {
			return target
		}
		index := e.Eval(node.Index, env)
		if isError(index) {
			return index
		}
		return e.evalIndexExpr(target, index)
	case *ast.CallExpr:
		callee := e.Eval(node.Callee, env)
		if isError(callee) {
			return callee
		}
		args, err := e.evalExprs(node.Args, env)
		if err != nil {
			return err
		}
		return e.applyFunction(callee, args)
	}

	return Null
}

func (e *Evaluator) evalProgram(program *ast.Program, env *object.Environment) object.Object {
	var result object.Object = Null

	for _, stmt := range program.Stmts {
		result = e.Eval(stmt, env)

		switch result := result.(type) {
		case *object.ReturnValue:
			return result.Value
		case *object.Error:
			return result
		}
	}
	return result
}

// evalBlock propagates ReturnValue wrappers unopened so a return inside a
// nested block still exits the enclosing function, not just its block.
func (e *Evaluator) evalBlock(block *ast.BlockStmt, env *object.Environment) object.Object {
	var result object.Object = Null

	for _, stmt := range block.Stmts {
		result = e.Eval(stmt, env)

		if result != nil {
			t := result.Type()
			if t == object.ReturnValueType || t == object.ErrorType {
				return result
			}
		}
	}
	return result
}

func (e *Evaluator) evalIdent(node *ast.Ident, env *object.Environment) object.Object {
	if val, ok := env.Get(node.Name); ok {
		return val
	}
	if builtin, ok := e.builtins[node.Name]; ok {
		return builtin
	}
	if suggestion := e.suggestName(node.Name, env); suggestion != "" {
		return newError("identifier not found: %s (did you mean %q?)", node.Name, suggestion)
	}
	return newError("identifier not found: %s", node.Name)
}

// suggestName fuzzy-matches an unknown identifier against everything in
// scope plus the builtin names.
func (e *Evaluator) suggestName(name string, env *object.Environment) string {
	candidates := env.Names()
	for builtin := range e.builtins {
		candidates = append(candidates, builtin)
	}
	matches := fuzzy.Find(name, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

func (e *Evaluator) evalExprs(exprs []ast.Expr, env *object.Environment) ([]object.Object, object.Object) {
	results := make([]object.Object, 0, len(exprs))
	for _, expr := range exprs {
		val := e.Eval(expr, env)
		if isError(val) {
			return nil, val
		}
		results = append(results, val)
	}
	return results, nil
}

func (e *Evaluator) evalHashLit(node *ast.HashLit, env *object.Environment) object.Object {
	pairs := make(map[object.HashKey]object.HashPair, len(node.Pairs))

	for _, pair := range node.Pairs {
		key := e.Eval(pair.Key, env)
		if isError(key) {
			return key
		}
		hashable, ok := key.(object.Hashable)
		if !ok {
			return newError("unusable as hash key: %s", key.Type())
		}
		value := e.Eval(pair.Value, env)
		if isError(value) {
			return value
		}
		// Later duplicates win, matching let rebinding.
		pairs[hashable.HashKey()] = object.HashPair{Key: key, Value: value}
	}
	return &object.Hash{Pairs: pairs}
}

func (e *Evaluator) evalPrefixExpr(op lexer.TokenType, right object.Object) object.Object {
	switch op {
	case lexer.BANG:
		return boolObject(!isTruthy(right))
	case lexer.MINUS:
		if right.Type() != object.IntegerType {
			return newError("unknown operator: -%s", right.Type())
		}
		return &object.Integer{Value: -right.(*object.Integer).Value}
	default:
		return newError("unknown operator: %s%s", op, right.Type())
	}
}

func (e *Evaluator) evalInfixExpr(op lexer.TokenType, left, right object.Object) object.Object {
	switch {
	case left.Type() == object.IntegerType && right.Type() == object.IntegerType:
		return e.evalIntegerInfix(op, left.(*object.Integer), right.(*object.Integer))
	case left.Type() == object.StringType && right.Type() == object.StringType:
		return e.evalStringInfix(op, left.(*object.String), right.(*object.String))
	case op == lexer.EQ:
		return boolObject(left == right)
	case op == lexer.NOT_EQ:
		return boolObject(left != right)
	case left.Type() != right.Type():
		return newError("type mismatch: %s %s %s", left.Type(), op, right.Type())
	default:
		return newError("unknown operator: %s %s %s", left.Type(), op, right.Type())
	}
}

func (e *Evaluator) evalIntegerInfix(op lexer.TokenType, left, right *object.Integer) object.Object {
	switch op {
	case lexer.PLUS:
		return &object.Integer{Value: left.Value + right.Value}
	case lexer.MINUS:
		return &object.Integer{Value: left.Value - right.Value}
	case lexer.ASTERISK:
		return &object.Integer{Value: left.Value * right.Value}
	case lexer.SLASH:
		if right.Value == 0 {
			return newError("division by zero")
		}
		return &object.Integer{Value: left.Value / right.Value}
	case lexer.LT:
		return boolObject(left.Value < right.Value)
	case lexer.GT:
		return boolObject(left.Value > right.Value)
	case lexer.EQ:
		return boolObject(left.Value == right.Value)
	case lexer.NOT_EQ:
		return boolObject(left.Value != right.Value)
	default:
		return newError("unknown operator: %s %s %s", left.Type(), op, right.Type())
	}
}

// evalStringInfix defines concatenation and nothing else; strings have no
// comparison operators.
func (e *Evaluator) evalStringInfix(op lexer.TokenType, left, right *object.String) object.Object {
	if op == lexer.PLUS {
		return &object.String{Value: left.Value + right.Value}
	}
	return newError("unknown operator: %s %s %s", left.Type(), op, right.Type())
}

func (e *Evaluator) evalIfExpr(node *ast.IfExpr, env *object.Environment) object.Object {
	cond := e.Eval(node.Condition, env)
	if isError(cond) {
		return cond
	}
	switch {
	case isTruthy(cond):
		return e.Eval(node.Consequence, env)
	case node.Alternative != nil:
		return e.Eval(node.Alternative, env)
	default:
		return Null
	}
}

func (e *Evaluator) evalIndexExpr(target, index object.Object) object.Object {
	switch target := target.(type) {
	case *object.Array:
		idx, ok := index.(*object.Integer)
		if !ok {
			return newError("index operator not supported: %s[%s]", target.Type(), index.Type())
		}
		if idx.Value < 0 || idx.Value >= int64(len(target.Elements)) {
			return Null
		}
		return target.Elements[idx.Value]
	case *object.Hash:
		key, ok := index.(object.Hashable)
		if !ok {
			return newError("unusable as hash key: %s", index.Type())
		}
		if val, ok := target.Lookup(key); ok {
			return val
		}
		return Null
	default:
		return newError("index operator not supported: %s[%s]", target.Type(), index.Type())
	}
}

func (e *Evaluator) applyFunction(callee object.Object, args []object.Object) object.Object {
	switch fn := callee.(type) {
	case *object.Function:
		if len(args) != len(fn.Params) {
			return newError("wrong number of arguments: want=%d, got=%d", len(fn.Params), len(args))
		}
		env := object.NewEnclosedEnvironment(fn.Env)
		for i, param := range fn.Params {
			env.Set(param.Name, args[i])
		}
		return unwrapReturnValue(e.Eval(fn.Body, env))
	case *object.Builtin:
		return fn.Fn(args...)
	default:
		return newError("not a function: %s", callee.Type())
	}
}

// unwrapReturnValue strips the wrapper at the call boundary so a return in
// the callee does not also exit the caller.
func unwrapReturnValue(obj object.Object) object.Object {
	if rv, ok := obj.(*object.ReturnValue); ok {
		return rv.Value
	}
	return obj
}

// isTruthy implements conditional truthiness: false and null are falsy,
// everything else including 0 and "" is truthy.
func isTruthy(obj object.Object) bool {
	switch obj {
	case False, Null:
		return false
	default:
		return true
	}
}

func boolObject(value bool) *object.Boolean {
	if value {
		return True
	}
	return False
}

func isError(obj object.Object) bool {
	if obj != nil {
		return obj.Type() == object.ErrorType
	}
	return false
}

func newError(format string, args ...any) *object.Error {
	return &object.Error{Message: fmt.Sprintf(format, args...)}
}
