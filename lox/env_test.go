package lox

import (
	"errors"
	"testing"
)

func ident(name string) Token {
	return Token{Kind: TokenIdentifier, Lexeme: name, Line: 1, Column: 1}
}

func TestEnvDefineAndGet(t *testing.T) {
	env := newEnv(nil)
	env.Define("a", NewNumber(1))
	env.Define("a", NewNumber(2))

	val, err := env.Get(ident("a"))
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if val.Number() != 2 {
		t.Fatalf("redefinition should overwrite, got %v", val)
	}
}

func TestEnvGetWalksOutward(t *testing.T) {
	outer := newEnv(nil)
	outer.Define("a", NewString("outer"))
	inner := newEnv(newEnv(outer))

	val, err := inner.Get(ident("a"))
	if err != nil || val.Text() != "outer" {
		t.Fatalf("expected outer binding, got %v (%v)", val, err)
	}

	inner.Define("a", NewString("inner"))
	val, _ = inner.Get(ident("a"))
	if val.Text() != "inner" {
		t.Fatalf("inner binding should shadow, got %v", val)
	}
	val, _ = outer.Get(ident("a"))
	if val.Text() != "outer" {
		t.Fatalf("outer binding should be untouched, got %v", val)
	}
}

func TestEnvAssignUpdatesNearestScope(t *testing.T) {
	outer := newEnv(nil)
	outer.Define("a", NewNumber(1))
	inner := newEnv(outer)

	if err := inner.Assign(ident("a"), NewNumber(5)); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if names := inner.Names(); len(names) != 0 {
		t.Fatalf("assign must not bind in the inner scope, got %v", names)
	}
	val, _ := outer.Get(ident("a"))
	if val.Number() != 5 {
		t.Fatalf("expected 5, got %v", val)
	}
}

func TestEnvUndefinedVariable(t *testing.T) {
	env := newEnv(newEnv(nil))
	name := Token{Kind: TokenIdentifier, Lexeme: "missing", Line: 4, Column: 2}

	_, err := env.Get(name)
	var runtimeErr *RuntimeError
	if !errors.As(err, &runtimeErr) {
		t.Fatalf("expected runtime error, got %v", err)
	}
	if runtimeErr.Message != "Undefined variable 'missing'." || runtimeErr.Token.Line != 4 {
		t.Fatalf("unexpected error %#v", runtimeErr)
	}

	err = env.Assign(name, NewNil())
	if !errors.As(err, &runtimeErr) || runtimeErr.Message != "Undefined variable 'missing'." {
		t.Fatalf("unexpected assign error %v", err)
	}
}

func TestEnvNamesAndSnapshot(t *testing.T) {
	env := newEnv(nil)
	env.Define("b", NewBool(true))
	env.Define("a", NewNil())

	names := env.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("expected sorted names, got %v", names)
	}

	snapshot := env.Snapshot()
	snapshot["c"] = NewNumber(3)
	if len(env.Names()) != 2 {
		t.Fatalf("snapshot must be a copy")
	}
}
