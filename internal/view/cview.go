package view

import (
	"strings"

	"github.com/BenSimner/starling-tool/internal/expr"
)

// CFunc is an element of a CView (conditional view): either a plain func
// or an ITE over two sub-CViews. This is the Modeller's output shape for
// source-level `if cond then v1 else v2` views.
type CFunc interface {
	Keyed
	String() string
	isCFunc()
}

// CFuncPlain wraps an ordinary VFunc as a CFunc.
type CFuncPlain struct {
	VFunc VFunc
}

func (c CFuncPlain) Key() string    { return "plain:" + c.VFunc.Key() }
func (c CFuncPlain) String() string { return c.VFunc.String() }
func (CFuncPlain) isCFunc()         {}

// CFuncITE is a conditional view element: `then` if cond holds, `else`
// otherwise.
type CFuncITE struct {
	Cond expr.BoolExpr
	Then CView
	Else CView
}

func (c CFuncITE) Key() string {
	var sb strings.Builder
	sb.WriteString("ite:")
	sb.WriteString(c.Cond.String())
	sb.WriteByte(';')
	sb.WriteString(c.Then.reprKey())
	sb.WriteByte(';')
	sb.WriteString(c.Else.reprKey())
	return sb.String()
}

func (c CFuncITE) String() string {
	return "if " + c.Cond.String() + " then " + c.Then.String() + " else " + c.Else.String()
}

func (CFuncITE) isCFunc() {}

// CView is a multiset of CFuncs.
type CView struct {
	Multiset[CFunc]
}

// NewCView returns an empty CView.
func NewCView() CView { return CView{NewMultiset[CFunc]()} }

// PlainCView wraps a View (an ordinary multiset of VFuncs, no
// conditionals) as a CView.
func PlainCView(v View) CView {
	out := NewCView()
	for _, f := range v.Distinct() {
		out.Multiset.add(CFuncPlain{VFunc: f}, v.Count(f))
	}
	return out
}

// AddPlain adds n copies of a plain VFunc to the CView.
func (c *CView) AddPlain(f VFunc, n int) {
	c.Multiset.add(CFuncPlain{VFunc: f}, n)
}

// AddITE adds one ITE element to the CView.
func (c *CView) AddITE(ite CFuncITE) {
	c.Multiset.add(ite, 1)
}

// AddCFunc adds n copies of an arbitrary CFunc to the CView.
func (c *CView) AddCFunc(f CFunc, n int) {
	c.Multiset.add(f, n)
}

// CFuncIter is a source-level `iter[mult] ...` element whose multiplicity
// could not be constant-folded at Model-build time: Mult copies of Elem.
// Constant multiplicities are folded directly into the enclosing CView's
// counts instead (see the Modeller's view-pattern conversion) and never
// produce a CFuncIter.
type CFuncIter struct {
	Mult expr.IntExpr
	Elem CFunc
}

func (c CFuncIter) Key() string {
	return "iter:" + c.Mult.String() + ";" + c.Elem.Key()
}

func (c CFuncIter) String() string {
	return "iter[" + c.Mult.String() + "] " + c.Elem.String()
}

func (CFuncIter) isCFunc() {}

// UnionCViews is multiset union over CViews.
func UnionCViews(a, b CView) CView { return CView{Union[CFunc](a.Multiset, b.Multiset)} }

func (c CView) reprKey() string {
	var sb strings.Builder
	for _, f := range c.Distinct() {
		sb.WriteString(f.Key())
		sb.WriteByte('#')
	}
	return sb.String()
}

func (c CView) String() string {
	parts := make([]string, 0, c.Len())
	for _, f := range c.Flatten() {
		parts = append(parts, f.String())
	}
	if len(parts) == 0 {
		return "emp"
	}
	return strings.Join(parts, " * ")
}
