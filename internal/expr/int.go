package expr

import (
	"strconv"
	"strings"
)

// IntLiteral is an integer literal.
type IntLiteral struct {
	intBase
	Value int64
}

func (n *IntLiteral) ExprType() Type { return Int }

func (n *IntLiteral) Mark(Mark, int) Expr { return n }

func (n *IntLiteral) Substitute(Polarity, SymbolPolicy) Expr { return n }

func (n *IntLiteral) FreeVars(map[Var]bool) {}

func (n *IntLiteral) HighestStage() int { return -1 }

func (n *IntLiteral) ContainsSymbol() bool { return false }

func (n *IntLiteral) Equal(other Expr) bool {
	o, ok := other.(*IntLiteral)
	return ok && o.Value == n.Value
}

func (n *IntLiteral) String() string { return strconv.FormatInt(n.Value, 10) }

// IntVarRef is a reference to an integer variable position, which may hold
// a regular variable or a symbol.
type IntVarRef struct {
	intBase
	Ref Ref[Var]
}

func (n *IntVarRef) ExprType() Type { return Int }

func (n *IntVarRef) Mark(m Mark, stage int) Expr {
	if v, ok := n.Ref.Reg(); ok {
		return &IntVarRef{Ref: RegRef(v.markedAs(m, stage))}
	}
	sym, _ := n.Ref.Symbol()
	return &IntVarRef{Ref: SymRef[Var](sym.Name, markArgs(sym.Args, m, stage)...)}
}

func (n *IntVarRef) Substitute(pol Polarity, policy SymbolPolicy) Expr {
	if repl, ok := policy(pol, Int, n.Ref); ok {
		return repl
	}
	if sym, ok := n.Ref.Symbol(); ok {
		return &IntVarRef{Ref: SymRef[Var](sym.Name, substArgs(sym.Args, pol, policy)...)}
	}
	return n
}

func (n *IntVarRef) FreeVars(out map[Var]bool) {
	if v, ok := n.Ref.Reg(); ok {
		out[v] = true
		return
	}
	sym, _ := n.Ref.Symbol()
	freeVarsArgs(sym.Args, out)
}

func (n *IntVarRef) HighestStage() int {
	if v, ok := n.Ref.Reg(); ok {
		return stageOf(v)
	}
	sym, _ := n.Ref.Symbol()
	return highestStageArgs(sym.Args)
}

func (n *IntVarRef) ContainsSymbol() bool {
	return n.Ref.IsSymbol()
}

func (n *IntVarRef) Equal(other Expr) bool {
	o, ok := other.(*IntVarRef)
	if !ok {
		return false
	}
	return refEqual(n.Ref, o.Ref)
}

func (n *IntVarRef) String() string {
	if v, ok := n.Ref.Reg(); ok {
		return varString(v)
	}
	sym, _ := n.Ref.Symbol()
	return symbolString(sym)
}

// IntNary is the shared shape of add/sub/mul: an n-ary operator over
// integer operands.
type IntNary struct {
	intBase
	Op       string // "+", "-", "*"
	Operands []IntExpr
}

func IntAdd(operands ...IntExpr) IntExpr { return &IntNary{Op: "+", Operands: operands} }
func IntSub(operands ...IntExpr) IntExpr { return &IntNary{Op: "-", Operands: operands} }
func IntMul(operands ...IntExpr) IntExpr { return &IntNary{Op: "*", Operands: operands} }

func (n *IntNary) ExprType() Type { return Int }

func (n *IntNary) Mark(m Mark, stage int) Expr {
	out := make([]IntExpr, len(n.Operands))
	for i, o := range n.Operands {
		out[i] = o.Mark(m, stage).(IntExpr)
	}
	return &IntNary{Op: n.Op, Operands: out}
}

func (n *IntNary) Substitute(pol Polarity, policy SymbolPolicy) Expr {
	out := make([]IntExpr, len(n.Operands))
	for i, o := range n.Operands {
		out[i] = o.Substitute(pol, policy).(IntExpr)
	}
	return &IntNary{Op: n.Op, Operands: out}
}

func (n *IntNary) FreeVars(out map[Var]bool) {
	for _, o := range n.Operands {
		o.FreeVars(out)
	}
}

func (n *IntNary) HighestStage() int {
	h := -1
	for _, o := range n.Operands {
		if s := o.HighestStage(); s > h {
			h = s
		}
	}
	return h
}

func (n *IntNary) ContainsSymbol() bool {
	for _, o := range n.Operands {
		if o.ContainsSymbol() {
			return true
		}
	}
	return false
}

func (n *IntNary) Equal(other Expr) bool {
	o, ok := other.(*IntNary)
	if !ok || o.Op != n.Op || len(o.Operands) != len(n.Operands) {
		return false
	}
	for i := range n.Operands {
		if !n.Operands[i].Equal(o.Operands[i]) {
			return false
		}
	}
	return true
}

func (n *IntNary) String() string {
	parts := make([]string, len(n.Operands))
	for i, o := range n.Operands {
		parts[i] = o.String()
	}
	return "(" + strings.Join(parts, " "+n.Op+" ") + ")"
}

// IntDiv is binary integer division.
type IntDiv struct {
	intBase
	Lhs, Rhs IntExpr
}

func (n *IntDiv) ExprType() Type { return Int }

func (n *IntDiv) Mark(m Mark, stage int) Expr {
	return &IntDiv{Lhs: n.Lhs.Mark(m, stage).(IntExpr), Rhs: n.Rhs.Mark(m, stage).(IntExpr)}
}

func (n *IntDiv) Substitute(pol Polarity, policy SymbolPolicy) Expr {
	return &IntDiv{Lhs: n.Lhs.Substitute(pol, policy).(IntExpr), Rhs: n.Rhs.Substitute(pol, policy).(IntExpr)}
}

func (n *IntDiv) FreeVars(out map[Var]bool) {
	n.Lhs.FreeVars(out)
	n.Rhs.FreeVars(out)
}

func (n *IntDiv) HighestStage() int {
	a, b := n.Lhs.HighestStage(), n.Rhs.HighestStage()
	if a > b {
		return a
	}
	return b
}

func (n *IntDiv) ContainsSymbol() bool { return n.Lhs.ContainsSymbol() || n.Rhs.ContainsSymbol() }

func (n *IntDiv) Equal(other Expr) bool {
	o, ok := other.(*IntDiv)
	return ok && n.Lhs.Equal(o.Lhs) && n.Rhs.Equal(o.Rhs)
}

func (n *IntDiv) String() string {
	return "(" + n.Lhs.String() + " / " + n.Rhs.String() + ")"
}
