// Package syntax implements Starling's lexer and recursive-descent parser:
// source text in, a sequence of ScriptItems out.
package syntax

import (
	"strconv"
	"strings"

	"github.com/BenSimner/starling-tool/internal/report"
)

// Expr is an unresolved, untyped surface-syntax expression. The Modeller
// resolves identifiers against its variable maps and assigns each a type;
// nothing here is type-checked yet.
type Expr interface {
	Span() *report.Span
	String() string
}

// Ident is a bare identifier occurrence -- a variable reference once
// resolved by the Modeller.
type Ident struct {
	Name string
	Sp   *report.Span
}

func (e *Ident) Span() *report.Span { return e.Sp }
func (e *Ident) String() string     { return e.Name }

// IntLit is a surface integer literal.
type IntLit struct {
	Value int64
	Sp    *report.Span
}

func (e *IntLit) Span() *report.Span { return e.Sp }
func (e *IntLit) String() string     { return strconv.FormatInt(e.Value, 10) }

// BoolLit is a surface `true`/`false` literal.
type BoolLit struct {
	Value bool
	Sp    *report.Span
}

func (e *BoolLit) Span() *report.Span { return e.Sp }
func (e *BoolLit) String() string {
	if e.Value {
		return "true"
	}
	return "false"
}

// SymbolExpr is a surface `%{name}(args)` occurrence.
type SymbolExpr struct {
	Name string
	Args []Expr
	Sp   *report.Span
}

func (e *SymbolExpr) Span() *report.Span { return e.Sp }
func (e *SymbolExpr) String() string     { return "%{" + e.Name + "}" + exprArgsString(e.Args) }

// UnaryExpr is a prefix unary operation: `!e` or `-e`.
type UnaryExpr struct {
	Op      string
	Operand Expr
	Sp      *report.Span
}

func (e *UnaryExpr) Span() *report.Span { return e.Sp }
func (e *UnaryExpr) String() string     { return e.Op + e.Operand.String() }

// BinaryExpr is an infix binary operation.
type BinaryExpr struct {
	Op       string
	Lhs, Rhs Expr
	Sp       *report.Span
}

func (e *BinaryExpr) Span() *report.Span { return e.Sp }
func (e *BinaryExpr) String() string     { return "(" + e.Lhs.String() + " " + e.Op + " " + e.Rhs.String() + ")" }

// TypedNameNode is a surface `type name` pairing, used in declarations and
// view prototype parameter lists.
type TypedNameNode struct {
	Type string
	Name string
	Sp   *report.Span
}

// ViewPattern is a surface view pattern: `emp`, `name(args)`, `v1 * v2`, or
// `iter[n] v`.
type ViewPattern interface {
	Span() *report.Span
	String() string
}

// EmpPattern is the empty view `emp`.
type EmpPattern struct{ Sp *report.Span }

func (p *EmpPattern) Span() *report.Span { return p.Sp }
func (p *EmpPattern) String() string     { return "emp" }

// FuncPattern is a single `name(args)` application.
type FuncPattern struct {
	Name string
	Args []Expr
	Sp   *report.Span
}

func (p *FuncPattern) Span() *report.Span { return p.Sp }
func (p *FuncPattern) String() string     { return p.Name + exprArgsString(p.Args) }

func exprArgsString(args []Expr) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// UnionPattern is `lhs * rhs` -- multiset union of two view patterns.
type UnionPattern struct {
	Lhs, Rhs ViewPattern
	Sp       *report.Span
}

func (p *UnionPattern) Span() *report.Span { return p.Sp }
func (p *UnionPattern) String() string     { return p.Lhs.String() + " * " + p.Rhs.String() }

// ITEPattern is `if cond then v1 else v2` nested inside a view pattern.
// The Modeller flattens this into an ITE CFunc.
type ITEPattern struct {
	Cond       Expr
	Then, Else ViewPattern
	Sp         *report.Span
}

func (p *ITEPattern) Span() *report.Span { return p.Sp }
func (p *ITEPattern) String() string {
	return "if " + p.Cond.String() + " then " + p.Then.String() + " else " + p.Else.String()
}

// IterPattern is `iter[mult] inner` -- an arbitrary-multiplicity pattern.
type IterPattern struct {
	Mult  Expr
	Inner ViewPattern
	Sp    *report.Span
}

func (p *IterPattern) Span() *report.Span { return p.Sp }
func (p *IterPattern) String() string     { return "iter[" + p.Mult.String() + "] " + p.Inner.String() }

// ViewAssertionNode is a surface `{| pattern |}`. The grammar carries no
// advisory marker, so every parsed assertion is Mandatory; Advisory
// remains reachable only by constructing a view.ViewExpr directly.
type ViewAssertionNode struct {
	Pattern ViewPattern
	Sp      *report.Span
}

// AtomicPrim is one statement inside an atomic block: an assignment,
// increment/decrement, CAS, assume, skip, or bare symbol-call.
type AtomicPrim struct {
	Results  []string
	Name     string
	IsSymbol bool
	Args     []Expr
	Sp       *report.Span
}

// AtomicBlock is a surface `<stmt>` or `<{ s1; s2; ... }>`.
type AtomicBlock struct {
	Prims []*AtomicPrim
	Sp    *report.Span
}

// Step is one element of a Block's command sequence: an atomic block, an
// if/else, or a while/do-while loop.
type Step interface {
	Span() *report.Span
	String() string
	isStep()
}

// PrimStep wraps an AtomicBlock as a Step.
type PrimStep struct {
	Block *AtomicBlock
}

func (s *PrimStep) Span() *report.Span { return s.Block.Sp }
func (*PrimStep) isStep()              {}

// IfStep is `if (cond) block else block`.
type IfStep struct {
	Cond       Expr
	Then, Else *Block
	Sp         *report.Span
}

func (s *IfStep) Span() *report.Span { return s.Sp }
func (*IfStep) isStep()              {}

// WhileStep is `while (cond) block` or `do block while (cond)`.
type WhileStep struct {
	IsDoWhile bool
	Cond      Expr
	Body      *Block
	Sp        *report.Span
}

func (s *WhileStep) Span() *report.Span { return s.Sp }
func (*WhileStep) isStep()              {}

// Block is a method body or nested block: alternating view assertions and
// steps, always one more view than steps.
type Block struct {
	Views []*ViewAssertionNode
	Steps []Step
	Sp    *report.Span
}

// ScriptItem is one top-level declaration.
type ScriptItem interface {
	Span() *report.Span
	String() string
	isScriptItem()
}

// GlobalDecl declares a shared variable.
type GlobalDecl struct {
	Name TypedNameNode
	Sp   *report.Span
}

func (d *GlobalDecl) Span() *report.Span { return d.Sp }
func (*GlobalDecl) isScriptItem()        {}

// LocalDecl declares a thread-local variable.
type LocalDecl struct {
	Name TypedNameNode
	Sp   *report.Span
}

func (d *LocalDecl) Span() *report.Span { return d.Sp }
func (*LocalDecl) isScriptItem()        {}

// ViewProtoDecl declares a view prototype's signature.
type ViewProtoDecl struct {
	Name      string
	Params    []TypedNameNode
	IsIter    bool
	Anonymous bool
	Sp        *report.Span
}

func (d *ViewProtoDecl) Span() *report.Span { return d.Sp }
func (*ViewProtoDecl) isScriptItem()        {}

// ConstraintDecl is `constraint <pattern> -> <expr>;`. The Modeller
// classifies its Body as Definite or Uninterpreted.
type ConstraintDecl struct {
	Pattern ViewPattern
	Body    Expr
	Sp      *report.Span
}

func (d *ConstraintDecl) Span() *report.Span { return d.Sp }
func (*ConstraintDecl) isScriptItem()        {}

// MethodDecl is a `method name() { ... }` definition.
type MethodDecl struct {
	Name string
	Body *Block
	Sp   *report.Span
}

func (d *MethodDecl) Span() *report.Span { return d.Sp }
func (*MethodDecl) isScriptItem()        {}
