// Package filter compiles and evaluates textual predicates over runs.
//
// # Usage
//
//	pred, err := filter.Compile("lr>0.01 or seed=3")
//	if err != nil {
//	    // handle *filter.SyntaxError
//	}
//	if pred.Match(run) {
//	    // keep run
//	}
//
// # Grammar Overview
//
// Operators are substring triggers tested in a fixed priority order. The
// first trigger found in the text decides how the text is split, always at
// the trigger's first occurrence:
//
//	expr → expr " or " expr        (A or B or C is A or (B or C))
//	     | literal " in " field    (field's text contains literal)
//	     | field "!=" literal
//	     | field "<=" literal
//	     | field ">=" literal
//	     | field "<"  literal
//	     | field "="  literal
//	     | field ">"  literal
//
// Two-character comparators are tried before their one-character prefixes
// so "x<=5" never splits at the bare "<". There is no "and": several
// predicates passed to All are combined by conjunction.
package filter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax is matched by every *SyntaxError.
var ErrSyntax = errors.New("invalid filter")

// SyntaxError reports a filter expression that could not be compiled.
type SyntaxError struct {
	Expr   string
	Reason string
}

func (e *SyntaxError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid filter format '%s': %s", e.Expr, e.Reason)
	}
	return fmt.Sprintf("invalid filter format '%s'", e.Expr)
}

// Is makes errors.Is(err, ErrSyntax) true for syntax errors.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// Operator is a comparison operator.
type Operator int

// Comparison operators, in dispatch priority order.
const (
	OpIn Operator = iota
	OpNe
	OpLe
	OpGe
	OpLt
	OpEq
	OpGt
)

// orToken separates alternatives.
const orToken = " or "

// comparators lists operator tokens in the order they are tried.
var comparators = []struct {
	op    Operator
	token string
}{
	{OpIn, " in "},
	{OpNe, "!="},
	{OpLe, "<="},
	{OpGe, ">="},
	{OpLt, "<"},
	{OpEq, "="},
	{OpGt, ">"},
}

// String returns the operator's token.
func (op Operator) String() string {
	for _, c := range comparators {
		if c.op == op {
			return strings.TrimSpace(c.token)
		}
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// Compile parses expr into a predicate. Compilation is pure.
func Compile(expr string) (Predicate, error) {
	if lhs, rhs, ok := strings.Cut(expr, orToken); ok {
		left, err := Compile(lhs)
		if err != nil {
			return nil, err
		}
		right, err := Compile(rhs)
		if err != nil {
			return nil, err
		}
		return &Or{Left: left, Right: right}, nil
	}

	for _, c := range comparators {
		lhs, rhs, ok := strings.Cut(expr, c.token)
		if !ok {
			continue
		}
		field, literal := strings.TrimSpace(lhs), strings.TrimSpace(rhs)
		if c.op == OpIn {
			literal, field = field, literal
		}
		if field == "" {
			return nil, &SyntaxError{Expr: expr, Reason: "missing field name"}
		}
		return &Comparison{Op: c.op, Field: field, Literal: literal}, nil
	}

	return nil, &SyntaxError{Expr: expr}
}

// CompileAll compiles every expression. The first failure aborts compilation.
func CompileAll(exprs []string) (All, error) {
	preds := make(All, 0, len(exprs))
	for _, expr := range exprs {
		p, err := Compile(expr)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return preds, nil
}
