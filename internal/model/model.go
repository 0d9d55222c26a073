// Package model implements the Modeller: AST to typed Model. It resolves
// names against the two-layer shared/thread-local variable space,
// type-checks every expression, builds the view-prototype table and its
// view_defs, assigns atomic primitive semantics, and walks each method body
// into a structured command tree.
package model

import (
	"github.com/BenSimner/starling-tool/internal/expr"
	"github.com/BenSimner/starling-tool/internal/view"
)

// CommandType is a single atomic-primitive invocation: the variables it
// writes, the semantic primitive it names, and the expressions it reads.
type CommandType struct {
	Results []expr.Var
	Name    string
	Params  []expr.Expr
}

// Command is a sequence of CommandTypes, the contents of one atomic block
// (`<{ s1; s2; ... }>` sequences more than one).
type Command []CommandType

// PartCmd is a structured command: a primitive, a while loop, or an
// if/then/else, generic over the view type carried by its nested blocks
// (view.CView for the Modeller's own output, view.GView once the Guarder
// has run).
type PartCmd[V any] interface {
	isPartCmd()
}

// PrimCmd wraps a Command (one atomic block) as a PartCmd leaf.
type PrimCmd[V any] struct {
	Cmd Command
}

func (PrimCmd[V]) isPartCmd() {}

// WhileCmd is a while or do-while loop.
type WhileCmd[V any] struct {
	IsDoWhile bool
	Cond      expr.BoolExpr
	Body      *Block[V]
}

func (WhileCmd[V]) isPartCmd() {}

// ITECmd is an if/then/else.
type ITECmd[V any] struct {
	Cond       expr.BoolExpr
	Then, Else *Block[V]
}

func (ITECmd[V]) isPartCmd() {}

// Block is `{v0} s1 {v1} s2 ... sn {vn}`: one more view than step, views and
// steps alternating.
type Block[V any] struct {
	Views []V
	Steps []PartCmd[V]
}

// SemanticEntry is one atomic primitive's DFunc signature and the Boolean
// relation, over that signature's own (abstract) parameters, it defines
// between their Before and After markings. Every Command produced by the
// Modeller names a SemanticEntry by DFunc.Name; the relation's abstract
// parameters are positionally substituted with the Command's concrete
// Results/Params by whatever downstream VC generator consumes the Model --
// that substitution is not the Modeller's job, which stops at the Graph
// model.
type SemanticEntry struct {
	Sig  view.DFunc
	Body expr.BoolExpr
}

// PrototypeEntry is one declared view prototype: its parameter types, and
// the iteration/anonymity flags carried over from the declaration.
type PrototypeEntry struct {
	Sig       view.DFunc
	IsIter    bool
	Anonymous bool
}

// Model is the pipeline's top-level container, generic over the view type
// its method bodies carry (view.CView straight out of the Modeller,
// view.GView once the Guarder has run).
type Model[V any] struct {
	Globals map[string]expr.Var
	Locals  map[string]expr.Var

	// MethodOrder preserves declaration order; Axioms is keyed by method
	// name, an ordered map from method name to its axiom-like value.
	MethodOrder []string
	Axioms      map[string]*Block[V]

	Semantics []SemanticEntry
	ViewDefs  []view.ViewDef

	// Prototypes is the name -> PrototypeEntry table built in responsibility
	// #2; kept on the Model and carried through unchanged by the Guarder.
	// Neither the Guarder nor the Grapher reads it.
	Prototypes map[string]PrototypeEntry
}

// newModel returns an empty Model ready for population.
func newModel[V any]() *Model[V] {
	return &Model[V]{
		Globals:    make(map[string]expr.Var),
		Locals:     make(map[string]expr.Var),
		Axioms:     make(map[string]*Block[V]),
		Prototypes: make(map[string]PrototypeEntry),
	}
}
