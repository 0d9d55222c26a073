package view

import (
	"strings"

	"github.com/BenSimner/starling-tool/internal/expr"
)

// VFunc is a named predicate application whose parameters are expressions.
// VFuncs are the elements of a View.
type VFunc struct {
	Name   string
	Params []expr.Expr
}

// NewVFunc constructs a VFunc.
func NewVFunc(name string, params ...expr.Expr) VFunc {
	return VFunc{Name: name, Params: params}
}

// Key is the canonical textual representation used for multiset equality
// and stable ordering.
func (f VFunc) Key() string {
	var sb strings.Builder
	sb.WriteString(f.Name)
	sb.WriteByte('(')
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (f VFunc) String() string { return f.Key() }

// Arity returns the number of parameters.
func (f VFunc) Arity() int { return len(f.Params) }

// DFunc is a named predicate application whose parameters are typed
// names. DFuncs are used as view prototypes and in view-definition
// signatures (DView).
type DFunc struct {
	Name   string
	Params []expr.TypedName
}

// NewDFunc constructs a DFunc.
func NewDFunc(name string, params ...expr.TypedName) DFunc {
	return DFunc{Name: name, Params: params}
}

// Arity returns the number of parameters.
func (f DFunc) Arity() int { return len(f.Params) }

// String renders the prototype signature, e.g. "holdTick(int t)".
func (f DFunc) String() string {
	var sb strings.Builder
	sb.WriteString(f.Name)
	sb.WriteByte('(')
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Type.String())
		sb.WriteByte(' ')
		sb.WriteString(p.Name)
	}
	sb.WriteByte(')')
	return sb.String()
}
