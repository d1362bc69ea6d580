package mathgrid

import "strings"

// spacedOperators are padded with one column on each side inside a row so
// that binary operators read as infix.
const spacedOperators = "+-=×÷±<>≤≥≈≠→←∑∏∫"

// Render lays out an expression tree as a baseline-aligned grid. It never
// fails: unsupported or malformed nodes degrade to their literal text as a
// single-row grid.
func Render(n *Node) Grid {
	if n == nil {
		return FromText("")
	}

	switch n.Kind {
	case KindIdentifier, KindNumber, KindText:
		return FromText(n.Text)
	case KindOperator:
		return FromText(n.Text)
	case KindRow:
		return renderRow(n)
	case KindFraction:
		if len(n.Children) != 2 {
			return FromText(n.Literal())
		}
		return renderFraction(Render(n.Children[0]), Render(n.Children[1]))
	case KindSubscript:
		if len(n.Children) != 2 {
			return FromText(n.Literal())
		}
		return renderSubscript(Render(n.Children[0]), Render(n.Children[1]))
	case KindSuperscript:
		if len(n.Children) != 2 {
			return FromText(n.Literal())
		}
		return renderSuperscript(Render(n.Children[0]), Render(n.Children[1]))
	case KindSubSup:
		if len(n.Children) != 3 {
			return FromText(n.Literal())
		}
		return renderSubSup(Render(n.Children[0]), Render(n.Children[1]), Render(n.Children[2]))
	case KindSqrt:
		if len(n.Children) != 1 {
			return FromText(n.Literal())
		}
		return renderRadical(Render(n.Children[0]))
	case KindRoot:
		if len(n.Children) != 2 {
			return FromText(n.Literal())
		}
		return renderRoot(Render(n.Children[0]), Render(n.Children[1]))
	case KindUnder:
		if len(n.Children) != 2 {
			return FromText(n.Literal())
		}
		base := Render(n.Children[0])
		return vstack(base.Baseline, base, Render(n.Children[1]))
	case KindOver:
		if len(n.Children) != 2 {
			return FromText(n.Literal())
		}
		base := Render(n.Children[0])
		over := Render(n.Children[1])
		return vstack(over.Height()+base.Baseline, over, base)
	default:
		return FromText(n.Literal())
	}
}

func renderRow(n *Node) Grid {
	if len(n.Children) == 0 {
		return FromText("")
	}

	grids := make([]Grid, 0, len(n.Children))
	for _, child := range n.Children {
		g := Render(child)
		if child.Kind == KindOperator {
			g = operatorSpaced(g, child.Text)
		}
		grids = append(grids, g)
	}
	return hconcat(grids...)
}

func operatorSpaced(g Grid, op string) Grid {
	switch {
	case strings.ContainsAny(op, spacedOperators):
		return padded(g, 1, 1)
	case op == ",":
		return padded(g, 0, 1)
	default:
		return g
	}
}

// renderFraction stacks the numerator over the denominator separated by a
// horizontal rule sized to the wider operand. The baseline sits on the rule.
func renderFraction(num, den Grid) Grid {
	inner := max(num.Width(), den.Width())
	ruleW := inner + 2

	out := NewGrid(ruleW, num.Height()+1+den.Height(), num.Height())
	out.Blit(num, (ruleW-num.Width())/2, 0)
	for x := range ruleW {
		out.Set(x, num.Height(), '─')
	}
	out.Blit(den, (ruleW-den.Width())/2, num.Height()+1)
	return out
}

// renderSuperscript raises the script to the base's top-right corner.
func renderSuperscript(base, sup Grid) Grid {
	out := NewGrid(base.Width()+sup.Width(), base.Height()+sup.Height(), base.Baseline+sup.Height())
	out.Blit(base, 0, sup.Height())
	out.Blit(sup, base.Width(), 0)
	return out
}

// renderSubscript lowers the script below the base's bottom-right corner.
func renderSubscript(base, sub Grid) Grid {
	out := NewGrid(base.Width()+sub.Width(), base.Height()+sub.Height(), base.Baseline)
	out.Blit(base, 0, 0)
	out.Blit(sub, base.Width(), base.Height())
	return out
}

func renderSubSup(base, sub, sup Grid) Grid {
	scriptW := max(sub.Width(), sup.Width())
	out := NewGrid(
		base.Width()+scriptW,
		sup.Height()+base.Height()+sub.Height(),
		base.Baseline+sup.Height(),
	)
	out.Blit(sup, base.Width(), 0)
	out.Blit(base, 0, sup.Height())
	out.Blit(sub, base.Width(), sup.Height()+base.Height())
	return out
}

// renderRadical prefixes the radicand with a root glyph and overlines it.
func renderRadical(radicand Grid) Grid {
	w := radicand.Width()
	h := radicand.Height()

	out := NewGrid(w+1, h+1, radicand.Baseline+1)
	for x := 1; x <= w; x++ {
		out.Set(x, 0, '_')
	}
	out.Blit(radicand, 1, 1)
	// Root glyph on the bottom row, connectors above it.
	for y := 1; y < h; y++ {
		out.Set(0, y, '│')
	}
	out.Set(0, h, '√')
	return out
}

// renderRoot places the index grid to the upper left of the radical.
func renderRoot(radicand, index Grid) Grid {
	rad := renderRadical(radicand)
	height := max(rad.Height(), index.Height()+1)

	out := NewGrid(index.Width()+rad.Width(), height, rad.Baseline+height-rad.Height())
	out.Blit(index, 0, 0)
	out.Blit(rad, index.Width(), height-rad.Height())
	return out
}
