package view

import "github.com/BenSimner/starling-tool/internal/expr"

// ViewDefKind distinguishes the three shapes a view definition can take.
type ViewDefKind int

const (
	// Definite: the view is semantically equivalent to the body expression.
	Definite ViewDefKind = iota
	// Indefinite: the body is to be synthesised later (out of scope for
	// the core).
	Indefinite
	// Uninterpreted: the body is an opaque symbol.
	Uninterpreted
)

// ViewDef is the semantic constraint giving a view prototype its meaning.
type ViewDef struct {
	Kind ViewDefKind

	// Signature is the prototype this definition constrains.
	Signature DView

	// Body is populated for Definite; nil otherwise.
	Body expr.BoolExpr

	// SymbolName is populated for Uninterpreted; empty otherwise.
	SymbolName string
}

// NewDefiniteViewDef constructs a Definite view definition.
func NewDefiniteViewDef(sig DView, body expr.BoolExpr) ViewDef {
	return ViewDef{Kind: Definite, Signature: sig, Body: body}
}

// NewIndefiniteViewDef constructs an Indefinite view definition.
func NewIndefiniteViewDef(sig DView) ViewDef {
	return ViewDef{Kind: Indefinite, Signature: sig}
}

// NewUninterpretedViewDef constructs an Uninterpreted view definition.
func NewUninterpretedViewDef(sig DView, symbolName string) ViewDef {
	return ViewDef{Kind: Uninterpreted, Signature: sig, SymbolName: symbolName}
}
