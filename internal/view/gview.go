package view

import (
	"strings"

	"github.com/BenSimner/starling-tool/internal/expr"
)

// GFunc is an element of a GView: a VFunc together with the Boolean guard
// under which it is present.
type GFunc struct {
	Guard expr.BoolExpr
	Item  VFunc
}

func (g GFunc) Key() string {
	return g.Item.Key() + " | " + g.Guard.String()
}

func (g GFunc) String() string {
	return g.Item.String() + " [" + g.Guard.String() + "]"
}

// GView is a multiset of GFuncs, produced by the Guarder. Construction
// merges structurally-equal guarded funcs (same Item) by OR-ing their
// guards -- a canonicalisation that shrinks downstream VC size but is not
// required for soundness.
type GView struct {
	order  []VFunc
	guards map[string]expr.BoolExpr
}

// NewGView returns an empty GView.
func NewGView() GView {
	return GView{guards: make(map[string]expr.BoolExpr)}
}

// Add merges one (guard, item) pair into the view, OR-ing the guard into
// any existing entry for the same item.
func (g *GView) Add(guard expr.BoolExpr, item VFunc) {
	k := item.Key()
	if existing, ok := g.guards[k]; ok {
		g.guards[k] = expr.BoolOr(existing, guard)
		return
	}
	g.order = append(g.order, item)
	g.guards[k] = guard
}

// Guard distributes g over every func in the View, producing a GView
// whose every element has g as its guard. This is the base case used by
// the Guarder when no conditional is present at this position.
func Guard(g expr.BoolExpr, v View) GView {
	out := NewGView()
	for _, f := range v.Flatten() {
		out.Add(g, f)
	}
	return out
}

// MergeGViews unions two GViews, OR-ing guards of structurally-equal
// items.
func MergeGViews(a, b GView) GView {
	out := NewGView()
	for _, item := range a.order {
		out.Add(a.guards[item.Key()], item)
	}
	for _, item := range b.order {
		out.Add(b.guards[item.Key()], item)
	}
	return out
}

// Flatten returns the view's elements in stable order.
func (g GView) Flatten() []GFunc {
	out := make([]GFunc, 0, len(g.order))
	for _, item := range g.order {
		out = append(out, GFunc{Guard: g.guards[item.Key()], Item: item})
	}
	return out
}

// Len returns the number of distinct guarded items.
func (g GView) Len() int { return len(g.order) }

func (g GView) String() string {
	parts := make([]string, 0, len(g.order))
	for _, f := range g.Flatten() {
		parts = append(parts, f.String())
	}
	if len(parts) == 0 {
		return "emp"
	}
	return strings.Join(parts, " * ")
}
