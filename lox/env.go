package lox

import (
	"maps"
	"slices"
)

// Env is one lexical scope. The parent link is shared by every child scope
// created under it and is never written through after construction.
type Env struct {
	parent *Env
	values map[string]Value
}

func newEnv(parent *Env) *Env {
	return &Env{parent: parent, values: make(map[string]Value)}
}

// Define binds name in this scope, replacing any existing binding.
func (e *Env) Define(name string, val Value) {
	e.values[name] = val
}

func (e *Env) Get(name Token) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if val, ok := env.values[name.Lexeme]; ok {
			return val, nil
		}
	}
	return Value{}, undefinedVariable(name)
}

// Assign updates the nearest scope that binds name. It never creates a
// binding.
func (e *Env) Assign(name Token, val Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = val
			return nil
		}
	}
	return undefinedVariable(name)
}

// Names returns the names bound in this scope, sorted.
func (e *Env) Names() []string {
	return slices.Sorted(maps.Keys(e.values))
}

// Snapshot copies this scope's bindings.
func (e *Env) Snapshot() map[string]Value {
	return maps.Clone(e.values)
}

func undefinedVariable(name Token) error {
	return newRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}
