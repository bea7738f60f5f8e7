package evaluator

import (
	"fmt"

	"github.com/corvid-lang/corvid/internal/object"
)

// newBuiltins binds the builtin table to this evaluator so puts writes to its
// configured sink rather than a package-wide one.
func (e *Evaluator) newBuiltins() map[string]*object.Builtin {
	return map[string]*object.Builtin{
		"len":    {Fn: builtinLen},
		"first":  {Fn: builtinFirst},
		"last":   {Fn: builtinLast},
		"rest":   {Fn: builtinRest},
		"push":   {Fn: builtinPush},
		"map":    {Fn: e.builtinMap},
		"reduce": {Fn: e.builtinReduce},
		"puts":   {Fn: e.builtinPuts},
	}
}

func builtinLen(args ...object.Object) object.Object {
	if len(args) != 1 {
		return newError("wrong number of arguments: want=1, got=%d", len(args))
	}
	switch arg := args[0].(type) {
	case *object.String:
		return &object.Integer{Value: int64(len(arg.Value))}
	case *object.Array:
		return &object.Integer{Value: int64(len(arg.Elements))}
	default:
		return newError("argument to `len` not supported, got %s", arg.Type())
	}
}

func builtinFirst(args ...object.Object) object.Object {
	if len(args) != 1 {
		return newError("wrong number of arguments: want=1, got=%d", len(args))
	}
	switch arg := args[0].(type) {
	case *object.Array:
		if len(arg.Elements) == 0 {
			return Null
		}
		return arg.Elements[0]
	case *object.String:
		if len(arg.Value) == 0 {
			return Null
		}
		return &object.String{Value: arg.Value[:1]}
	default:
		return newError("argument to `first` not supported, got %s", arg.Type())
	}
}

func builtinLast(args ...object.Object) object.Object {
	if len(args) != 1 {
		return newError("wrong number of arguments: want=1, got=%d", len(args))
	}
	switch arg := args[0].(type) {
	case *object.Array:
		if len(arg.Elements) == 0 {
			return Null
		}
		return arg.Elements[len(arg.Elements)-1]
	case *object.String:
		if len(arg.Value) == 0 {
			return Null
		}
		return &object.String{Value: arg.Value[len(arg.Value)-1:]}
	default:
		return newError("argument to `last` not supported, got %s", arg.Type())
	}
}

// builtinRest returns everything after the first element as a fresh value;
// the input is left untouched.
func builtinRest(args ...object.Object) object.Object {
	if len(args) != 1 {
		return newError("wrong number of arguments: want=1, got=%d", len(args))
	}
	switch arg := args[0].(type) {
	case *object.Array:
		if len(arg.Elements) == 0 {
			return Null
		}
		elements := make([]object.Object, len(arg.Elements)-1)
		copy(elements, arg.Elements[1:])
		return &object.Array{Elements: elements}
	case *object.String:
		if len(arg.Value) == 0 {
			return Null
		}
		return &object.String{Value: arg.Value[1:]}
	default:
		return newError("argument to `rest` not supported, got %s", arg.Type())
	}
}

// builtinPush appends to an array or inserts into a hash, returning a new
// value either way. The hash form takes three arguments: hash, key, value.
func builtinPush(args ...object.Object) object.Object {
	if len(args) == 0 {
		return newError("wrong number of arguments: want=2, got=0")
	}
	switch target := args[0].(type) {
	case *object.Array:
		if len(args) != 2 {
			return newError("wrong number of arguments: want=2, got=%d", len(args))
		}
		elements := make([]object.Object, len(target.Elements), len(target.Elements)+1)
		copy(elements, target.Elements)
		return &object.Array{Elements: append(elements, args[1])}
	case *object.Hash:
		if len(args) != 3 {
			return newError("wrong number of arguments: want=3, got=%d", len(args))
		}
		key, ok := args[1].(object.Hashable)
		if !ok {
			return newError("unusable as hash key: %s", args[1].Type())
		}
		pairs := make(map[object.HashKey]object.HashPair, len(target.Pairs)+1)
		for k, v := range target.Pairs {
			pairs[k] = v
		}
		pairs[key.HashKey()] = object.HashPair{Key: args[1], Value: args[2]}
		return &object.Hash{Pairs: pairs}
	default:
		return newError("argument to `push` not supported, got %s", target.Type())
	}
}

func (e *Evaluator) builtinMap(args ...object.Object) object.Object {
	if len(args) != 2 {
		return newError("wrong number of arguments: want=2, got=%d", len(args))
	}
	arr, ok := args[0].(*object.Array)
	if !ok {
		return newError("argument to `map` not supported, got %s", args[0].Type())
	}
	elements := make([]object.Object, len(arr.Elements))
	for i, el := range arr.Elements {
		mapped := e.applyFunction(args[1], []object.Object{el})
		if isError(mapped) {
			return mapped
		}
		elements[i] = mapped
	}
	return &object.Array{Elements: elements}
}

// builtinReduce folds left: reduce(arr, initial, fn(acc, el)).
func (e *Evaluator) builtinReduce(args ...object.Object) object.Object {
	if len(args) != 3 {
		return newError("wrong number of arguments: want=3, got=%d", len(args))
	}
	arr, ok := args[0].(*object.Array)
	if !ok {
		return newError("argument to `reduce` not supported, got %s", args[0].Type())
	}
	acc := args[1]
	for _, el := range arr.Elements {
		acc = e.applyFunction(args[2], []object.Object{acc, el})
		if isError(acc) {
			return acc
		}
	}
	return acc
}

func (e *Evaluator) builtinPuts(args ...object.Object) object.Object {
	for _, arg := range args {
		fmt.Fprintln(e.out, arg.Inspect())
	}
	return Null
}
