package filter

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sake/pkg/core"
)

// Predicate is a compiled filter.
type Predicate interface {
	// Match reports whether run satisfies the predicate.
	Match(run *core.Run) bool
	String() string
}

// Comparison is a leaf predicate comparing a resolved field with a literal.
type Comparison struct {
	Op      Operator
	Field   string
	Literal string
}

// Match resolves the field on run, coerces the literal to the field's kind
// (falling back to the raw text) and applies the operator. Values without a
// common ordering satisfy only "!=".
func (c *Comparison) Match(run *core.Run) bool {
	v, ok := run.Field(c.Field)
	if !ok {
		v = core.Null()
	}

	if c.Op == OpIn {
		return !v.IsNull() && strings.Contains(v.String(), c.Literal)
	}

	cmp, ordered := v.Compare(c.literal(v))
	switch c.Op {
	case OpEq:
		return ordered && cmp == 0
	case OpNe:
		return !ordered || cmp != 0
	case OpLt:
		return ordered && cmp < 0
	case OpLe:
		return ordered && cmp <= 0
	case OpGt:
		return ordered && cmp > 0
	case OpGe:
		return ordered && cmp >= 0
	default:
		return false
	}
}

// literal coerces the comparison literal to the kind of v, falling back to
// the raw text.
func (c *Comparison) literal(v core.Value) core.Value {
	if lit, ok := v.Coerce(c.Literal); ok {
		return lit
	}
	return core.String(c.Literal)
}

func (c *Comparison) String() string {
	if c.Op == OpIn {
		return fmt.Sprintf("%s in %s", c.Literal, c.Field)
	}
	return c.Field + c.Op.String() + c.Literal
}

// Or matches when either side matches. Right is not evaluated when Left matches.
type Or struct {
	Left, Right Predicate
}

// Match implements Predicate.
func (o *Or) Match(run *core.Run) bool {
	return o.Left.Match(run) || o.Right.Match(run)
}

func (o *Or) String() string {
	return o.Left.String() + orToken + o.Right.String()
}

// All is the conjunction of predicates. An empty All matches every run.
type All []Predicate

// Match implements Predicate.
func (a All) Match(run *core.Run) bool {
	for _, p := range a {
		if !p.Match(run) {
			return false
		}
	}
	return true
}

func (a All) String() string {
	parts := make([]string, len(a))
	for i, p := range a {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// Apply returns the runs matching pred, preserving order.
func Apply(pred Predicate, runs []*core.Run) []*core.Run {
	out := make([]*core.Run, 0, len(runs))
	for _, r := range runs {
		if pred.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
