package lox

import (
	"math"
	"testing"
)

func TestValueString(t *testing.T) {
	tests := []struct {
		val  Value
		want string
	}{
		{Value{}, "nil"},
		{NewNil(), "nil"},
		{NewBool(true), "true"},
		{NewBool(false), "false"},
		{NewNumber(3), "3"},
		{NewNumber(-2), "-2"},
		{NewNumber(3.5), "3.5"},
		{NewNumber(1e21), "1e+21"},
		{NewNumber(math.Inf(1)), "Infinity"},
		{NewNumber(math.Inf(-1)), "-Infinity"},
		{NewNumber(math.NaN()), "NaN"},
		{NewString("hi"), "hi"},
	}
	for _, tt := range tests {
		if got := tt.val.String(); got != tt.want {
			t.Fatalf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestValueTruthy(t *testing.T) {
	falsy := []Value{NewNil(), NewBool(false)}
	truthy := []Value{NewBool(true), NewNumber(0), NewString(""), NewString("false")}
	for _, v := range falsy {
		if v.Truthy() {
			t.Fatalf("%v should be falsy", v)
		}
	}
	for _, v := range truthy {
		if !v.Truthy() {
			t.Fatalf("%v should be truthy", v)
		}
	}
}

func TestValueEqual(t *testing.T) {
	tests := []struct {
		a, b Value
		want bool
	}{
		{NewNil(), NewNil(), true},
		{NewNil(), NewBool(false), false},
		{NewNumber(1), NewString("1"), false},
		{NewNumber(1), NewNumber(1), true},
		{NewString("a"), NewString("a"), true},
		{NewString("a"), NewString("b"), false},
		{NewBool(true), NewBool(true), true},
		{NewNumber(math.NaN()), NewNumber(math.NaN()), true},
		{NewNumber(math.NaN()), NewNumber(1), false},
		{NewNumber(math.Copysign(0, -1)), NewNumber(0), false},
		{NewNumber(math.Copysign(0, -1)), NewNumber(math.Copysign(0, -1)), true},
	}
	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Fatalf("%v == %v: expected %v, got %v", tt.a, tt.b, tt.want, got)
		}
	}
}

func TestValueAccessorsOnOtherKinds(t *testing.T) {
	v := NewString("x")
	if v.Number() != 0 || v.Bool() || NewNumber(1).Text() != "" {
		t.Fatalf("accessors should return zero values for other kinds")
	}
	if v.Kind().String() != "string" || NewNil().Kind().String() != "nil" {
		t.Fatalf("unexpected kind names")
	}
}
