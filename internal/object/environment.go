package object

// Environment is a chained scope mapping names to values. Lookup walks
// inward to outward; the first binding found wins, which gives shadowing.
// Insertion only ever touches the current scope, never an ancestor.
type Environment struct {
	store map[string]Object
	outer *Environment
}

// NewEnvironment creates a root scope.
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

// NewEnclosedEnvironment creates a child scope whose lookups fall back to
// outer. Function calls and closures use this; the outer link is shared by
// every closure created inside that scope.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Get resolves name against this scope and then the enclosing chain.
func (e *Environment) Get(name string) (Object, bool) {
	obj, ok := e.store[name]
	if !ok && e.outer != nil {
		return e.outer.Get(name)
	}
	return obj, ok
}

// Set binds name in the current scope. Rebinding an existing name in the
// same scope overwrites it; reject-as-error would break persistent
// interactive sessions.
func (e *Environment) Set(name string, val Object) Object {
	e.store[name] = val
	return val
}

// Names returns every name visible from this scope, innermost first.
// The evaluator uses it to suggest corrections for unknown identifiers.
func (e *Environment) Names() []string {
	var names []string
	for env := e; env != nil; env = env.outer {
		for name := range env.store {
			names = append(names, name)
		}
	}
	return names
}
