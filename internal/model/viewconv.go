package model

import (
	"fmt"
	"strconv"

	"github.com/BenSimner/starling-tool/internal/expr"
	"github.com/BenSimner/starling-tool/internal/report"
	"github.com/BenSimner/starling-tool/internal/syntax"
	"github.com/BenSimner/starling-tool/internal/view"
)

// convertViewPattern turns a surface view pattern into a CView,
// validating every func application against the prototype table and
// flattening if/then/else into an ITE CFunc (responsibility #5).
func (r *resolver) convertViewPattern(vp syntax.ViewPattern) (view.CView, error) {
	switch p := vp.(type) {
	case *syntax.EmpPattern:
		return view.NewCView(), nil

	case *syntax.FuncPattern:
		f, err := r.convertFuncPattern(p)
		if err != nil {
			return view.CView{}, err
		}
		out := view.NewCView()
		out.AddPlain(f, 1)
		return out, nil

	case *syntax.UnionPattern:
		lhs, err := r.convertViewPattern(p.Lhs)
		if err != nil {
			return view.CView{}, err
		}
		rhs, err := r.convertViewPattern(p.Rhs)
		if err != nil {
			return view.CView{}, err
		}
		return view.UnionCViews(lhs, rhs), nil

	case *syntax.ITEPattern:
		cond, err := r.expect(p.Cond, expr.Bool)
		if err != nil {
			return view.CView{}, err
		}
		then, err := r.convertViewPattern(p.Then)
		if err != nil {
			return view.CView{}, err
		}
		els, err := r.convertViewPattern(p.Else)
		if err != nil {
			return view.CView{}, err
		}
		out := view.NewCView()
		out.AddITE(view.CFuncITE{Cond: cond.(expr.BoolExpr), Then: then, Else: els})
		return out, nil

	case *syntax.IterPattern:
		return r.convertIterPattern(p)

	default:
		return view.CView{}, fmt.Errorf("model: unhandled view pattern %T", vp)
	}
}

func (r *resolver) convertFuncPattern(p *syntax.FuncPattern) (view.VFunc, error) {
	proto, ok := r.protos[p.Name]
	if !ok {
		return view.VFunc{}, r.unknownIdent(p.Name, p.Sp)
	}
	if len(p.Args) != proto.Sig.Arity() {
		return view.VFunc{}, &report.ModelError{
			Kind:     report.ArityMismatch,
			Name:     p.Name,
			Expected: strconv.Itoa(proto.Sig.Arity()),
			Got:      strconv.Itoa(len(p.Args)),
			Span:     p.Sp,
		}
	}
	args := make([]expr.Expr, len(p.Args))
	for i, a := range p.Args {
		want := proto.Sig.Params[i].Type
		ce, err := r.expect(a, want)
		if err != nil {
			return view.VFunc{}, err
		}
		args[i] = ce
	}
	return view.NewVFunc(p.Name, args...), nil
}

// convertIterPattern folds a constant multiplicity directly into the
// inner view's counts; a symbolic multiplicity is kept as a CFuncIter, one
// per distinct inner element, since a Go map count can't hold a symbolic
// value.
func (r *resolver) convertIterPattern(p *syntax.IterPattern) (view.CView, error) {
	mult, err := r.expect(p.Mult, expr.Int)
	if err != nil {
		return view.CView{}, err
	}
	inner, err := r.convertViewPattern(p.Inner)
	if err != nil {
		return view.CView{}, err
	}

	out := view.NewCView()
	if lit, ok := mult.(*expr.IntLiteral); ok {
		for _, f := range inner.Distinct() {
			out.AddCFunc(f, inner.Count(f)*int(lit.Value))
		}
		return out, nil
	}

	multExpr := mult.(expr.IntExpr)
	for _, f := range inner.Distinct() {
		out.AddCFunc(view.CFuncIter{Mult: multExpr, Elem: f}, 1)
	}
	return out, nil
}
