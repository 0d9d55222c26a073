package model

import (
	"fmt"
	"strconv"

	"github.com/BenSimner/starling-tool/internal/expr"
	"github.com/BenSimner/starling-tool/internal/report"
	"github.com/BenSimner/starling-tool/internal/syntax"
	"github.com/BenSimner/starling-tool/internal/view"
)

// convertConstraintPattern walks a constraint's left-hand view pattern,
// producing the DView signature it constrains and the universally
// quantified parameter bindings its body expression is checked against.
// Each FuncPattern argument is a bound name, not a reference to an
// existing variable -- constraint patterns introduce their own scope,
// which is why `holdTick(t) -> ticket > t` type-checks even though `t` is
// otherwise a thread-local, invisible here under forbidThreadLocal.
func (r *resolver) convertConstraintPattern(vp syntax.ViewPattern) (view.DView, map[string]expr.Var, error) {
	switch p := vp.(type) {
	case *syntax.EmpPattern:
		return nil, map[string]expr.Var{}, nil

	case *syntax.UnionPattern:
		lsig, lbound, err := r.convertConstraintPattern(p.Lhs)
		if err != nil {
			return nil, nil, err
		}
		rsig, rbound, err := r.convertConstraintPattern(p.Rhs)
		if err != nil {
			return nil, nil, err
		}
		for name, v := range rbound {
			lbound[name] = v
		}
		return append(lsig, rsig...), lbound, nil

	case *syntax.FuncPattern:
		proto, ok := r.protos[p.Name]
		if !ok {
			return nil, nil, r.unknownIdent(p.Name, p.Sp)
		}
		if len(p.Args) != proto.Sig.Arity() {
			return nil, nil, &report.ModelError{
				Kind:     report.ArityMismatch,
				Name:     p.Name,
				Expected: strconv.Itoa(proto.Sig.Arity()),
				Got:      strconv.Itoa(len(p.Args)),
				Span:     p.Sp,
			}
		}
		bound := make(map[string]expr.Var, len(p.Args))
		for i, a := range p.Args {
			id, ok := a.(*syntax.Ident)
			if !ok {
				return nil, nil, fmt.Errorf("model: constraint pattern argument %q must be a bound name", a.String())
			}
			bound[id.Name] = expr.Var{Scope: expr.Shared, Type: proto.Sig.Params[i].Type, Name: id.Name}
		}
		return view.DView{proto.Sig}, bound, nil

	default:
		return nil, nil, fmt.Errorf("model: unsupported constraint pattern shape %T", vp)
	}
}

// buildViewDefs type-checks every constraint declaration and classifies
// its body, then reconciles the result against the prototype table
// (responsibility #3): every declared view prototype gets exactly one
// ViewDef entry, falling back to an Indefinite one for a prototype no
// constraint mentions.
func buildViewDefs(protos []*syntax.ViewProtoDecl, constraints []*syntax.ConstraintDecl, r *resolver) []view.ViewDef {
	var out []view.ViewDef
	covered := make(map[string]bool)
	for _, decl := range constraints {
		sig, bound, err := r.convertConstraintPattern(decl.Pattern)
		if err != nil {
			r.bag.AddError(err.Error(), decl.Sp, err)
			continue
		}

		r.bound = bound
		r.forbidThreadLocal = true
		bodyExpr, err := r.expect(decl.Body, expr.Bool)
		r.forbidThreadLocal = false
		r.bound = nil

		if err != nil {
			r.bag.AddError(err.Error(), decl.Sp, err)
			continue
		}

		for _, f := range sig {
			covered[f.Name] = true
		}

		if sym, ok := decl.Body.(*syntax.SymbolExpr); ok {
			out = append(out, view.NewUninterpretedViewDef(sig, sym.Name))
			continue
		}
		out = append(out, view.NewDefiniteViewDef(sig, bodyExpr.(expr.BoolExpr)))
	}

	for _, p := range protos {
		if covered[p.Name] {
			continue
		}
		proto, ok := r.protos[p.Name]
		if !ok {
			continue
		}
		out = append(out, view.NewIndefiniteViewDef(view.DView{proto.Sig}))
		covered[p.Name] = true
	}
	return out
}
