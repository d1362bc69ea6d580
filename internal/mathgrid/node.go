// Package mathgrid renders math expression trees into rectangular
// character grids with baseline alignment, suitable for merging into a
// monospace document layout.
package mathgrid

import "strings"

// NodeKind identifies a math expression node variant.
type NodeKind int

const (
	KindRow NodeKind = iota
	KindIdentifier
	KindNumber
	KindOperator
	KindText
	KindFraction
	KindSubscript
	KindSuperscript
	KindSubSup
	KindSqrt
	KindRoot
	KindUnder
	KindOver
)

// String returns the kind name for logging.
func (k NodeKind) String() string {
	switch k {
	case KindRow:
		return "row"
	case KindIdentifier:
		return "identifier"
	case KindNumber:
		return "number"
	case KindOperator:
		return "operator"
	case KindText:
		return "text"
	case KindFraction:
		return "fraction"
	case KindSubscript:
		return "subscript"
	case KindSuperscript:
		return "superscript"
	case KindSubSup:
		return "subsup"
	case KindSqrt:
		return "sqrt"
	case KindRoot:
		return "root"
	case KindUnder:
		return "under"
	case KindOver:
		return "over"
	default:
		return "unknown"
	}
}

// Node is a math expression tree node. Leaf kinds (identifier, number,
// operator, text) carry Text; composite kinds carry ordered Children:
//
//	Fraction:    [numerator, denominator]
//	Subscript:   [base, sub]
//	Superscript: [base, sup]
//	SubSup:      [base, sub, sup]
//	Sqrt:        [radicand]
//	Root:        [radicand, index]
//	Under:       [base, under]
//	Over:        [base, over]
//	Row:         [child...]
type Node struct {
	Kind     NodeKind
	Text     string
	Children []*Node
}

// Row builds a row grouping node.
func Row(children ...*Node) *Node {
	return &Node{Kind: KindRow, Children: children}
}

// Ident builds an identifier leaf.
func Ident(text string) *Node {
	return &Node{Kind: KindIdentifier, Text: text}
}

// Num builds a number leaf.
func Num(text string) *Node {
	return &Node{Kind: KindNumber, Text: text}
}

// Op builds an operator leaf.
func Op(text string) *Node {
	return &Node{Kind: KindOperator, Text: text}
}

// Txt builds a plain-text leaf.
func Txt(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// Frac builds a fraction node.
func Frac(num, den *Node) *Node {
	return &Node{Kind: KindFraction, Children: []*Node{num, den}}
}

// Sub builds a subscript node.
func Sub(base, sub *Node) *Node {
	return &Node{Kind: KindSubscript, Children: []*Node{base, sub}}
}

// Sup builds a superscript node.
func Sup(base, sup *Node) *Node {
	return &Node{Kind: KindSuperscript, Children: []*Node{base, sup}}
}

// SubSup builds a combined subscript/superscript node.
func SubSup(base, sub, sup *Node) *Node {
	return &Node{Kind: KindSubSup, Children: []*Node{base, sub, sup}}
}

// Sqrt builds a square root node.
func Sqrt(radicand *Node) *Node {
	return &Node{Kind: KindSqrt, Children: []*Node{radicand}}
}

// Root builds an nth-root node.
func Root(radicand, index *Node) *Node {
	return &Node{Kind: KindRoot, Children: []*Node{radicand, index}}
}

// Under builds an under-decoration node (e.g. limits below a sum).
func Under(base, under *Node) *Node {
	return &Node{Kind: KindUnder, Children: []*Node{base, under}}
}

// Over builds an over-decoration node.
func Over(base, over *Node) *Node {
	return &Node{Kind: KindOver, Children: []*Node{base, over}}
}

// Literal returns the flattened text content of the subtree. It is the
// canonical-stream contribution of a math node and the fallback rendering
// for unsupported shapes.
func (n *Node) Literal() string {
	if n == nil {
		return ""
	}
	if len(n.Children) == 0 {
		return n.Text
	}

	var sb strings.Builder
	switch {
	case n.Kind == KindFraction && len(n.Children) == 2:
		sb.WriteString(n.Children[0].Literal())
		sb.WriteString("/")
		sb.WriteString(n.Children[1].Literal())
	case n.Kind == KindSubscript && len(n.Children) == 2:
		sb.WriteString(n.Children[0].Literal())
		sb.WriteString("_")
		sb.WriteString(n.Children[1].Literal())
	case n.Kind == KindSuperscript && len(n.Children) == 2:
		sb.WriteString(n.Children[0].Literal())
		sb.WriteString("^")
		sb.WriteString(n.Children[1].Literal())
	case n.Kind == KindSubSup && len(n.Children) == 3:
		sb.WriteString(n.Children[0].Literal())
		sb.WriteString("_")
		sb.WriteString(n.Children[1].Literal())
		sb.WriteString("^")
		sb.WriteString(n.Children[2].Literal())
	case n.Kind == KindSqrt && len(n.Children) == 1:
		sb.WriteString("sqrt(")
		sb.WriteString(n.Children[0].Literal())
		sb.WriteString(")")
	case n.Kind == KindRoot && len(n.Children) == 2:
		sb.WriteString("root(")
		sb.WriteString(n.Children[0].Literal())
		sb.WriteString(", ")
		sb.WriteString(n.Children[1].Literal())
		sb.WriteString(")")
	default:
		for _, c := range n.Children {
			sb.WriteString(c.Literal())
		}
	}
	return sb.String()
}
