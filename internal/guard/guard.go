// Package guard implements the Guarder: CView to GView. Every conditional
// view element is flattened into a guard conjunction threaded through the
// recursion, starting from an unconditional true at the top of each view
// assertion.
package guard

import (
	"github.com/BenSimner/starling-tool/internal/expr"
	"github.com/BenSimner/starling-tool/internal/model"
	"github.com/BenSimner/starling-tool/internal/report"
	"github.com/BenSimner/starling-tool/internal/view"
)

// GuardModel rewrites every view assertion in m from a CView into a GView,
// leaving everything else -- variable maps, semantics, view_defs, the
// command trees' shape -- untouched. The Guarder never rejects a
// well-formed Model, so the returned Bag only ever carries warnings (kept
// for symmetry with the other stages and in case future guard
// canonicalisations want to report something).
func GuardModel(m *model.Model[view.CView]) (*model.Model[view.GView], *report.Bag) {
	bag := report.NewBag(report.StageGuard)

	out := &model.Model[view.GView]{
		Globals:     m.Globals,
		Locals:      m.Locals,
		MethodOrder: append([]string{}, m.MethodOrder...),
		Axioms:      make(map[string]*model.Block[view.GView], len(m.Axioms)),
		Semantics:   m.Semantics,
		ViewDefs:    m.ViewDefs,
		Prototypes:  m.Prototypes,
	}
	for _, name := range m.MethodOrder {
		out.Axioms[name] = guardBlock(m.Axioms[name])
	}
	return out, bag
}

// guardBlock rewrites every view in a Block and recurses into its nested
// blocks, reset to the unconditional guard at each one: a view assertion's
// CFuncITE elements describe conditions local to that single assertion, not
// the surrounding if/while statement's own Cond.
func guardBlock(b *model.Block[view.CView]) *model.Block[view.GView] {
	views := make([]view.GView, len(b.Views))
	for i, v := range b.Views {
		views[i] = guardCView(v, expr.BoolLit(true))
	}

	steps := make([]model.PartCmd[view.GView], len(b.Steps))
	for i, s := range b.Steps {
		steps[i] = guardStep(s)
	}

	return &model.Block[view.GView]{Views: views, Steps: steps}
}

func guardStep(s model.PartCmd[view.CView]) model.PartCmd[view.GView] {
	switch st := s.(type) {
	case model.PrimCmd[view.CView]:
		return model.PrimCmd[view.GView]{Cmd: st.Cmd}
	case model.ITECmd[view.CView]:
		return model.ITECmd[view.GView]{Cond: st.Cond, Then: guardBlock(st.Then), Else: guardBlock(st.Else)}
	case model.WhileCmd[view.CView]:
		return model.WhileCmd[view.GView]{IsDoWhile: st.IsDoWhile, Cond: st.Cond, Body: guardBlock(st.Body)}
	default:
		// PartCmd is closed to this package (isPartCmd is unexported in
		// model); every concrete case is handled above.
		return nil
	}
}

// guardCView is the recursive CView -> GView transform. g is the
// conjunction of guards accumulated from any enclosing CFuncITE the
// recursion has already passed through; it starts at true for the view's
// top level.
//
// Multiplicities on a CFuncPlain collapse once guarded: Add(g, item) called
// twice with the same (g, item) just OR's g with itself, so a view's
// resource count is not recoverable from its GView. That is intentional --
// a GView answers "under which condition does this predicate hold", not
// "how many copies of it are there" -- the latter is a View Algebra
// question the Guarder's output no longer needs to answer.
func guardCView(v view.CView, g expr.BoolExpr) view.GView {
	out := view.NewGView()
	for _, f := range v.Distinct() {
		out = view.MergeGViews(out, guardCFunc(f, g))
	}
	return out
}

// andGuard conjoins a branch condition with the accumulated enclosing
// guard, dropping an unconditional true operand rather than growing an
// ever-longer "(cond && true && true && ...)" chain through nested ITEs.
func andGuard(cond, enclosing expr.BoolExpr) expr.BoolExpr {
	if lit, ok := enclosing.(*expr.BoolLiteral); ok && lit.Value {
		return cond
	}
	return expr.BoolAnd(cond, enclosing)
}

// guardCFunc guards a single CFunc element, dispatching on its concrete
// shape. A CFuncIter's multiplicity is dropped for the same reason a
// CFuncPlain's multiset count is: it guards its Elem at the same g and
// discards Mult, since the Iter case is the Modeller's own extension for
// symbolic counts layered on top of the plain-func and ITE cases, both
// handled here exactly as written.
func guardCFunc(f view.CFunc, g expr.BoolExpr) view.GView {
	switch elem := f.(type) {
	case view.CFuncPlain:
		out := view.NewGView()
		out.Add(g, elem.VFunc)
		return out

	case view.CFuncITE:
		thenG := andGuard(elem.Cond, g)
		elseG := andGuard(expr.Not(elem.Cond), g)
		return view.MergeGViews(guardCView(elem.Then, thenG), guardCView(elem.Else, elseG))

	case view.CFuncIter:
		return guardCFunc(elem.Elem, g)

	default:
		// CFunc is closed to the view package; every concrete case is
		// handled above.
		return view.NewGView()
	}
}
