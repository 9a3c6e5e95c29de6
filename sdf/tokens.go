package sdf

import "github.com/gitrdm/sdfsched/solver"

// TokenValue is one dimension's initial-token count on a buffer-sized
// MRSDF channel: either a literal, already-known count, or a linear
// expression over not-yet-fixed buffer-size variables (e.g. the capacity
// variable a Pareto sweep is searching over).
type TokenValue interface {
	isTokenValue()
}

// ConcreteTokens is a fixed, known initial-token count.
type ConcreteTokens int

func (ConcreteTokens) isTokenValue() {}

// SymbolicTokens is an initial-token count expressed as a solver
// expression, typically a single not-yet-bound buffer-capacity variable.
type SymbolicTokens struct {
	Expr solver.Expr
}

func (SymbolicTokens) isTokenValue() {}

// Tokens is one TokenValue per dataflow dimension.
type Tokens []TokenValue
