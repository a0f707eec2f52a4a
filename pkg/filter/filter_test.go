package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_OperatorDispatch(t *testing.T) {
	tests := []struct {
		expr        string
		wantOp      Operator
		wantField   string
		wantLiteral string
	}{
		{expr: "x=5", wantOp: OpEq, wantField: "x", wantLiteral: "5"},
		{expr: "x != 5", wantOp: OpNe, wantField: "x", wantLiteral: "5"},
		{expr: "x<5", wantOp: OpLt, wantField: "x", wantLiteral: "5"},
		{expr: "x<=5", wantOp: OpLe, wantField: "x", wantLiteral: "5"},
		{expr: "x>5", wantOp: OpGt, wantField: "x", wantLiteral: "5"},
		{expr: "x >= 5", wantOp: OpGe, wantField: "x", wantLiteral: "5"},
		{expr: "res in arch", wantOp: OpIn, wantField: "arch", wantLiteral: "res"},
		// Multiple operator substrings: the priority order decides the split.
		{expr: "x<=5=6", wantOp: OpLe, wantField: "x", wantLiteral: "5=6"},
		{expr: "x>=a<b", wantOp: OpGe, wantField: "x", wantLiteral: "a<b"},
		{expr: "x!=a<=b", wantOp: OpNe, wantField: "x", wantLiteral: "a<=b"},
		{expr: "x<a=b", wantOp: OpLt, wantField: "x", wantLiteral: "a=b"},
		{expr: "x=a>b", wantOp: OpEq, wantField: "x", wantLiteral: "a>b"},
		{expr: "a=b in name", wantOp: OpIn, wantField: "name", wantLiteral: "a=b"},
		{expr: "x=1=2", wantOp: OpEq, wantField: "x", wantLiteral: "1=2"},
		{expr: "note=", wantOp: OpEq, wantField: "note", wantLiteral: ""},
		{expr: "  lr  >  0.01  ", wantOp: OpGt, wantField: "lr", wantLiteral: "0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			pred, err := Compile(tt.expr)
			require.NoError(t, err)

			cmp, ok := pred.(*Comparison)
			require.True(t, ok, "expected *Comparison, got %T", pred)
			assert.Equal(t, tt.wantOp, cmp.Op)
			assert.Equal(t, tt.wantField, cmp.Field)
			assert.Equal(t, tt.wantLiteral, cmp.Literal)
		})
	}
}

func TestCompile_Or(t *testing.T) {
	pred, err := Compile("a=1 or b=2 or c in d")
	require.NoError(t, err)

	or, ok := pred.(*Or)
	require.True(t, ok)
	left, ok := or.Left.(*Comparison)
	require.True(t, ok)
	assert.Equal(t, "a", left.Field)

	// Right-nested: a or (b or c)
	inner, ok := or.Right.(*Or)
	require.True(t, ok)
	assert.Equal(t, "b=2", inner.Left.String())
	assert.Equal(t, "c in d", inner.Right.String())

	assert.Equal(t, "a=1 or b=2 or c in d", pred.String())
}

func TestCompile_SyntaxErrors(t *testing.T) {
	tests := []string{
		"accuracy",
		"",
		"lr ~ 0.1",
		"=5",
		"x=1 or nonsense",
		"value in ",
	}

	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			_, err := Compile(expr)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSyntax))

			var synErr *SyntaxError
			require.True(t, errors.As(err, &synErr))
			assert.Contains(t, err.Error(), "invalid filter format")
		})
	}
}

func TestCompile_SyntaxErrorNamesExpression(t *testing.T) {
	_, err := Compile("lr=0.1 or bogus")
	require.Error(t, err)

	var synErr *SyntaxError
	require.True(t, errors.As(err, &synErr))
	assert.Equal(t, "bogus", synErr.Expr)
	assert.Equal(t, "invalid filter format 'bogus'", err.Error())
}

func TestCompileAll(t *testing.T) {
	preds, err := CompileAll([]string{"lr>0.01", "seed=3 or seed=4"})
	require.NoError(t, err)
	assert.Len(t, preds, 2)

	_, err = CompileAll([]string{"lr>0.01", "broken"})
	assert.ErrorIs(t, err, ErrSyntax)

	empty, err := CompileAll(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestOperator_String(t *testing.T) {
	assert.Equal(t, "<=", OpLe.String())
	assert.Equal(t, "in", OpIn.String())
	assert.Equal(t, "Operator(42)", Operator(42).String())
}
