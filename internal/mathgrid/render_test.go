package mathgrid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertGrid compares a rendered grid against expected lines, ignoring
// trailing whitespace on each row.
func assertGrid(t *testing.T, g Grid, expected ...string) {
	t.Helper()
	got := strings.Split(g.String(), "\n")
	require.Equal(t, len(expected), len(got), "row count\n%s", g.String())
	for i := range expected {
		assert.Equal(t, strings.TrimRight(expected[i], " "), got[i], "row %d", i)
	}
}

func TestRenderLeaves(t *testing.T) {
	assertGrid(t, Render(Ident("x")), "x")
	assertGrid(t, Render(Num("42")), "42")
	assertGrid(t, Render(Txt("velocity")), "velocity")
	assert.Equal(t, 0, Render(Ident("x")).Baseline)
}

func TestRenderSimpleFraction(t *testing.T) {
	g := Render(Frac(Num("1"), Num("2")))

	assertGrid(t, g,
		" 1",
		"───",
		" 2",
	)
	assert.Equal(t, 1, g.Baseline, "baseline must sit on the rule")
}

func TestRenderFractionWidensToLargerOperand(t *testing.T) {
	g := Render(Frac(Ident("dy"), Ident("dxdt")))

	assertGrid(t, g,
		"  dy",
		"──────",
		" dxdt",
	)
}

func TestRenderRowAlignsFractionWithIdentifier(t *testing.T) {
	// y = 1/2 + x : the identifiers must sit on the fraction rule row.
	g := Render(Row(
		Ident("y"),
		Op("="),
		Frac(Num("1"), Num("2")),
		Op("+"),
		Ident("x"),
	))

	assertGrid(t, g,
		"     1",
		"y = ─── + x",
		"     2",
	)
	assert.Equal(t, 1, g.Baseline)
}

func TestRenderSuperscript(t *testing.T) {
	g := Render(Sup(Ident("x"), Num("2")))

	assertGrid(t, g,
		" 2",
		"x",
	)
	assert.Equal(t, 1, g.Baseline)
}

func TestRenderSubscript(t *testing.T) {
	g := Render(Sub(Ident("a"), Ident("n")))

	assertGrid(t, g,
		"a",
		" n",
	)
	assert.Equal(t, 0, g.Baseline)
}

func TestRenderSubSup(t *testing.T) {
	g := Render(SubSup(Ident("x"), Ident("i"), Num("2")))

	assertGrid(t, g,
		" 2",
		"x",
		" i",
	)
	assert.Equal(t, 1, g.Baseline)
}

func TestRenderRadical(t *testing.T) {
	g := Render(Sqrt(Ident("x")))

	assertGrid(t, g,
		" _",
		"√x",
	)
	assert.Equal(t, 1, g.Baseline)
}

func TestRenderRadicalOverFraction(t *testing.T) {
	g := Render(Sqrt(Frac(Num("1"), Ident("n"))))

	assertGrid(t, g,
		" ___",
		"│ 1",
		"│───",
		"√ n",
	)
}

func TestRenderNthRoot(t *testing.T) {
	g := Render(Root(Ident("x"), Num("3")))

	assertGrid(t, g,
		"3 _",
		" √x",
	)
}

func TestRenderUnderOver(t *testing.T) {
	// Summation with limits above and below.
	g := Render(Under(Over(Op("∑"), Ident("n")), Row(Ident("i"), Op("="), Num("0"))))

	assertGrid(t, g,
		"  n",
		"  ∑",
		"i = 0",
	)
}

func TestRenderMalformedFallsBackToLiteral(t *testing.T) {
	// A fraction missing its denominator degrades to literal text instead
	// of failing the whole expression.
	broken := &Node{Kind: KindFraction, Children: []*Node{Num("1")}}
	g := Render(broken)

	assert.Equal(t, 1, g.Height())
	assert.Equal(t, "1", g.String())
}

func TestRenderNilNode(t *testing.T) {
	g := Render(nil)
	assert.Equal(t, 0, g.Width())
}

func TestRenderDeterministic(t *testing.T) {
	n := Row(Frac(Sup(Ident("x"), Num("2")), Sqrt(Ident("n"))), Op("+"), Ident("c"))
	a := Render(n).String()
	b := Render(n).String()
	assert.Equal(t, a, b)
}

func TestLiteralFlattening(t *testing.T) {
	n := Row(Ident("x"), Op("+"), Frac(Num("1"), Num("2")))
	assert.Equal(t, "x+1/2", n.Literal())

	assert.Equal(t, "x^2", Sup(Ident("x"), Num("2")).Literal())
	assert.Equal(t, "sqrt(n)", Sqrt(Ident("n")).Literal())
}
