package model

import (
	"github.com/BenSimner/starling-tool/internal/collate"
	"github.com/BenSimner/starling-tool/internal/expr"
	"github.com/BenSimner/starling-tool/internal/report"
	"github.com/BenSimner/starling-tool/internal/syntax"
)

func typeFromName(name string) expr.Type {
	if name == "bool" {
		return expr.Bool
	}
	return expr.Int
}

// buildVarMaps builds the globals and locals tables, reporting a
// DuplicateName error for any repeated name within a scope or across the
// two scopes -- the two scopes must stay disjoint.
func buildVarMaps(s *collate.Script, bag *report.Bag) (globals, locals map[string]expr.Var) {
	globals = make(map[string]expr.Var)
	locals = make(map[string]expr.Var)

	declare := func(tn syntax.TypedNameNode, scope expr.Scope, sp *report.Span) {
		if _, ok := globals[tn.Name]; ok {
			reportDuplicate(bag, tn.Name, "shared/thread", sp)
			return
		}
		if _, ok := locals[tn.Name]; ok {
			reportDuplicate(bag, tn.Name, "shared/thread", sp)
			return
		}
		v := expr.Var{Scope: scope, Type: typeFromName(tn.Type), Name: tn.Name}
		if scope == expr.Shared {
			globals[tn.Name] = v
		} else {
			locals[tn.Name] = v
		}
	}

	for _, g := range s.Globals {
		declare(g.Name, expr.Shared, g.Sp)
	}
	for _, l := range s.Locals {
		declare(l.Name, expr.ThreadLocal, l.Sp)
	}
	return globals, locals
}

func reportDuplicate(bag *report.Bag, name, where string, sp *report.Span) {
	err := &report.ModelError{Kind: report.DuplicateName, Name: name, Where: where, Span: sp}
	bag.AddError(err.Error(), sp, err)
}
