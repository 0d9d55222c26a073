package model

import (
	"fmt"

	"github.com/BenSimner/starling-tool/internal/expr"
	"github.com/BenSimner/starling-tool/internal/view"
)

// placeholder returns a synthetic variable used only as an abstract
// parameter name inside a SemanticEntry's relation -- never a real declared
// variable, never entered into Model.Globals/Locals.
func placeholder(name string, ty expr.Type) expr.Var {
	return expr.Var{Scope: expr.ThreadLocal, Type: ty, Name: name}
}

func markedExpr(v expr.Var, after bool) expr.Expr {
	var e expr.Expr
	if v.Type == expr.Int {
		e = expr.IntVarOf(v)
	} else {
		e = expr.BoolVarOf(v)
	}
	if after {
		return expr.MarkAfter(e)
	}
	return expr.MarkBefore(e)
}

func beforeOf(v expr.Var) expr.Expr { return markedExpr(v, false) }
func afterOf(v expr.Var) expr.Expr  { return markedExpr(v, true) }

// storeName/loadName/casName/incName/decName pick the per-type semantic
// primitive name an atomic step of that shape reduces to.
func storeName(ty expr.Type) string { return "store_" + ty.String() }
func loadName(ty expr.Type) string  { return "load_" + ty.String() }
func casName(ty expr.Type) string   { return "cas_" + ty.String() }

const (
	incName    = "inc_int"
	decName    = "dec_int"
	skipName   = "skip"
	assumeName = "assume"
)

// baseSemantics builds the fixed-shape primitive templates: assignment
// (store), fetch (load), compare-and-swap, increment/decrement, skip, and
// assume, one entry per type the surface grammar supports. Symbol-call
// templates are added lazily as they are encountered walking method
// bodies (symbolRegistry.register).
func baseSemantics() []SemanticEntry {
	var out []SemanticEntry
	for _, ty := range []expr.Type{expr.Int, expr.Bool} {
		out = append(out, storeSemantics(ty), loadSemantics(ty), casSemantics(ty))
	}
	out = append(out,
		SemanticEntry{
			Sig:  view.NewDFunc(incName, expr.TypedName{Type: expr.Int, Name: "dest"}),
			Body: incDecBody(true),
		},
		SemanticEntry{
			Sig:  view.NewDFunc(decName, expr.TypedName{Type: expr.Int, Name: "dest"}),
			Body: incDecBody(false),
		},
		SemanticEntry{
			Sig:  view.NewDFunc(skipName),
			Body: expr.BoolLit(true),
		},
		SemanticEntry{
			Sig:  view.NewDFunc(assumeName, expr.TypedName{Type: expr.Bool, Name: "b"}),
			Body: beforeOf(placeholder("b", expr.Bool)).(expr.BoolExpr),
		},
	)
	return out
}

// storeSemantics: store<T>(dest <- val): dest_after = val_before.
func storeSemantics(ty expr.Type) SemanticEntry {
	dest, val := placeholder("dest", ty), placeholder("val", ty)
	return SemanticEntry{
		Sig:  view.NewDFunc(storeName(ty), expr.TypedName{Type: ty, Name: "dest"}, expr.TypedName{Type: ty, Name: "val"}),
		Body: expr.Eq(afterOf(dest), beforeOf(val)),
	}
}

// loadSemantics: load<T>(dest <- src, direct): dest_after = src_before,
// src_after = src_before. Only the "direct" fetch mode has a relation of
// its own; increment/decrement fetch modes are handled as the separate
// x++/x-- primitive instead (see DESIGN.md).
func loadSemantics(ty expr.Type) SemanticEntry {
	dest, src := placeholder("dest", ty), placeholder("src", ty)
	return SemanticEntry{
		Sig: view.NewDFunc(loadName(ty), expr.TypedName{Type: ty, Name: "dest"}, expr.TypedName{Type: ty, Name: "src"}),
		Body: expr.BoolAnd(
			expr.Eq(afterOf(dest), beforeOf(src)),
			expr.Eq(afterOf(src), beforeOf(src)),
		),
	}
}

// casSemantics: cas<T>(dest, test, set), the two-branch compare-and-swap
// relation.
func casSemantics(ty expr.Type) SemanticEntry {
	dest, test, set := placeholder("dest", ty), placeholder("test", ty), placeholder("set", ty)
	eq := expr.Eq(beforeOf(dest), beforeOf(test))
	matched := expr.BoolAnd(
		expr.Eq(afterOf(dest), beforeOf(set)),
		expr.Eq(afterOf(test), beforeOf(test)),
	)
	unmatched := expr.BoolAnd(
		expr.Eq(afterOf(dest), beforeOf(dest)),
		expr.Eq(afterOf(test), beforeOf(dest)),
	)
	body := expr.BoolAnd(expr.Implies(eq, matched), expr.Implies(expr.Not(eq), unmatched))
	return SemanticEntry{
		Sig: view.NewDFunc(casName(ty),
			expr.TypedName{Type: ty, Name: "dest"},
			expr.TypedName{Type: ty, Name: "test"},
			expr.TypedName{Type: ty, Name: "set"}),
		Body: body,
	}
}

func incDecBody(inc bool) expr.BoolExpr {
	dest := placeholder("dest", expr.Int)
	one := &expr.IntLiteral{Value: 1}
	before := beforeOf(dest).(expr.IntExpr)
	var rhs expr.IntExpr
	if inc {
		rhs = expr.IntAdd(before, one)
	} else {
		rhs = expr.IntSub(before, one)
	}
	return expr.Eq(afterOf(dest), rhs)
}

// symbolRegistry builds and caches one SemanticEntry per distinct
// (symbol-name, arity) pair encountered while walking method bodies, since
// the surface grammar's symbol calls carry no separate type declaration.
type symbolRegistry struct {
	seen    map[string]int // key -> index into entries
	entries []SemanticEntry
}

func newSymbolRegistry() *symbolRegistry {
	return &symbolRegistry{seen: make(map[string]int)}
}

// register returns the DFunc name to use for a symbol call of this name with
// these argument types, creating a fresh template on first sight.
func (r *symbolRegistry) register(name string, argTypes []expr.Type) string {
	key := fmt.Sprintf("%s/%d", name, len(argTypes))
	if idx, ok := r.seen[key]; ok {
		return r.entries[idx].Sig.Name
	}

	params := make([]expr.TypedName, len(argTypes))
	args := make([]expr.Expr, len(argTypes))
	for i, ty := range argTypes {
		pname := fmt.Sprintf("p%d", i)
		params[i] = expr.TypedName{Type: ty, Name: pname}
		args[i] = beforeOf(placeholder(pname, ty))
	}

	dfuncName := "sym_" + key
	entry := SemanticEntry{
		Sig:  view.NewDFunc(dfuncName, params...),
		Body: expr.BoolSymOf(name, args...),
	}
	r.seen[key] = len(r.entries)
	r.entries = append(r.entries, entry)
	return dfuncName
}
