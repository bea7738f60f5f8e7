// Package object defines the Corvid runtime value model. Every result the
// evaluator produces is an Object; errors and early returns travel through the
// same channel as ordinary values.
package object

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/corvid-lang/corvid/internal/ast"
)

// Type identifies the kind of a runtime value.
type Type string

const (
	IntegerType     Type = "INTEGER"
	BooleanType     Type = "BOOLEAN"
	StringType      Type = "STRING"
	ArrayType       Type = "ARRAY"
	HashType        Type = "HASH"
	FunctionType    Type = "FUNCTION"
	BuiltinType     Type = "BUILTIN"
	NullType        Type = "NULL"
	ErrorType       Type = "ERROR"
	ReturnValueType Type = "RETURN_VALUE"
)

// Object is implemented by every Corvid runtime value.
type Object interface {
	Type() Type
	Inspect() string
}

// HashKey is the structural identity used to place a value into a Hash,
// distinct from the value's own representation.
type HashKey struct {
	Type  Type
	Value uint64
}

// Hashable is the capability of serving as a Hash key. Only Integer, Boolean,
// and String expose it.
type Hashable interface {
	Object
	HashKey() HashKey
}

// Integer is a signed 64-bit integer value.
type Integer struct {
	Value int64
}

func (i *Integer) Type() Type      { return IntegerType }
func (i *Integer) Inspect() string { return strconv.FormatInt(i.Value, 10) }

// HashKey uses the integer value itself as the digest.
func (i *Integer) HashKey() HashKey {
	return HashKey{Type: i.Type(), Value: uint64(i.Value)}
}

// Boolean is a truth value. The evaluator treats True and False as
// process-wide singletons; identity comparison of Booleans relies on that
// discipline.
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() Type      { return BooleanType }
func (b *Boolean) Inspect() string { return strconv.FormatBool(b.Value) }

// HashKey digests false to 0 and true to 1.
func (b *Boolean) HashKey() HashKey {
	var value uint64
	if b.Value {
		value = 1
	}
	return HashKey{Type: b.Type(), Value: value}
}

// String is an immutable string value.
type String struct {
	Value string
}

func (s *String) Type() Type      { return StringType }
func (s *String) Inspect() string { return s.Value }

// HashKey digests the UTF-8 bytes with xxh3. The digest is 64 bits, so two
// distinct strings can collide; Hash.Lookup compensates by comparing the
// stored key before trusting a digest hit.
func (s *String) HashKey() HashKey {
	return HashKey{Type: s.Type(), Value: xxh3.HashString(s.Value)}
}

// Null is the absence of a value. The evaluator holds a single instance.
type Null struct{}

func (n *Null) Type() Type      { return NullType }
func (n *Null) Inspect() string { return "null" }

// ReturnValue wraps the result of a return statement so it can escape nested
// blocks before a function call unwraps it. It never survives to the user.
type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() Type      { return ReturnValueType }
func (rv *ReturnValue) Inspect() string { return rv.Value.Inspect() }

// Error is an evaluation failure flowing through the ordinary result channel.
// Messages are meant for direct display, not programmatic matching.
type Error struct {
	Message string
}

func (e *Error) Type() Type      { return ErrorType }
func (e *Error) Inspect() string { return "ERROR: " + e.Message }

// Function is a user-defined function: parameter list, body, and a shared
// reference to the environment active at its definition site. The captured
// environment is what makes closures work.
type Function struct {
	Params []*ast.Ident
	Body   *ast.BlockStmt
	Env    *Environment
}

func (f *Function) Type() Type { return FunctionType }

func (f *Function) Inspect() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	return "fn(" + strings.Join(params, ", ") + ") " + f.Body.String()
}

// BuiltinFunction is the host signature shared by all builtins.
type BuiltinFunction func(args ...Object) Object

// Builtin wraps a host-implemented function.
type Builtin struct {
	Fn BuiltinFunction
}

func (b *Builtin) Type() Type      { return BuiltinType }
func (b *Builtin) Inspect() string { return "builtin function" }

// Array is an ordered sequence of values. Builtins that "modify" an array
// return a fresh one; elements are never mutated in place.
type Array struct {
	Elements []Object
}

func (a *Array) Type() Type { return ArrayType }

func (a *Array) Inspect() string {
	elements := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		elements[i] = e.Inspect()
	}
	return "[" + strings.Join(elements, ", ") + "]"
}

// HashPair retains the original key object next to the value so Inspect can
// show real keys and Lookup can reject digest collisions.
type HashPair struct {
	Key   Object
	Value Object
}

// Hash maps HashKeys to key/value pairs.
type Hash struct {
	Pairs map[HashKey]HashPair
}

func (h *Hash) Type() Type { return HashType }

func (h *Hash) Inspect() string {
	pairs := make([]string, 0, len(h.Pairs))
	for _, pair := range h.Pairs {
		pairs = append(pairs, fmt.Sprintf("%s: %s", pair.Key.Inspect(), pair.Value.Inspect()))
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

// Lookup returns the value stored under key. A digest hit with a different
// stored key (an xxh3 collision between distinct strings) reports a miss
// rather than returning the wrong entry.
func (h *Hash) Lookup(key Hashable) (Object, bool) {
	pair, ok := h.Pairs[key.HashKey()]
	if !ok {
		return nil, false
	}
	if !Equals(pair.Key, key) {
		return nil, false
	}
	return pair.Value, true
}

// Equals reports structural equality for the hashable scalar kinds. Values of
// differing kinds are never equal.
func Equals(a, b Object) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch a := a.(type) {
	case *Integer:
		return a.Value == b.(*Integer).Value
	case *Boolean:
		return a.Value == b.(*Boolean).Value
	case *String:
		return a.Value == b.(*String).Value
	default:
		return a == b
	}
}
