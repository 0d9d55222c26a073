package expr

import "strings"

// BoolLiteral is a Boolean literal (true/false).
type BoolLiteral struct {
	boolBase
	Value bool
}

// BoolLit constructs a Boolean literal.
func BoolLit(v bool) BoolExpr { return &BoolLiteral{Value: v} }

func (n *BoolLiteral) ExprType() Type { return Bool }

func (n *BoolLiteral) Mark(Mark, int) Expr { return n }

func (n *BoolLiteral) Substitute(Polarity, SymbolPolicy) Expr { return n }

func (n *BoolLiteral) FreeVars(map[Var]bool) {}

func (n *BoolLiteral) HighestStage() int { return -1 }

func (n *BoolLiteral) ContainsSymbol() bool { return false }

func (n *BoolLiteral) Equal(other Expr) bool {
	o, ok := other.(*BoolLiteral)
	return ok && o.Value == n.Value
}

func (n *BoolLiteral) String() string {
	if n.Value {
		return "true"
	}
	return "false"
}

// BoolVarRef is a reference to a Boolean variable position, which may hold
// a regular variable or a symbol.
type BoolVarRef struct {
	boolBase
	Ref Ref[Var]
}

func (n *BoolVarRef) ExprType() Type { return Bool }

func (n *BoolVarRef) Mark(m Mark, stage int) Expr {
	if v, ok := n.Ref.Reg(); ok {
		return &BoolVarRef{Ref: RegRef(v.markedAs(m, stage))}
	}
	sym, _ := n.Ref.Symbol()
	return &BoolVarRef{Ref: SymRef[Var](sym.Name, markArgs(sym.Args, m, stage)...)}
}

func (n *BoolVarRef) Substitute(pol Polarity, policy SymbolPolicy) Expr {
	if repl, ok := policy(pol, Bool, n.Ref); ok {
		return repl
	}
	if sym, ok := n.Ref.Symbol(); ok {
		return &BoolVarRef{Ref: SymRef[Var](sym.Name, substArgs(sym.Args, pol, policy)...)}
	}
	return n
}

func (n *BoolVarRef) FreeVars(out map[Var]bool) {
	if v, ok := n.Ref.Reg(); ok {
		out[v] = true
		return
	}
	sym, _ := n.Ref.Symbol()
	freeVarsArgs(sym.Args, out)
}

func (n *BoolVarRef) HighestStage() int {
	if v, ok := n.Ref.Reg(); ok {
		return stageOf(v)
	}
	sym, _ := n.Ref.Symbol()
	return highestStageArgs(sym.Args)
}

func (n *BoolVarRef) ContainsSymbol() bool { return n.Ref.IsSymbol() }

func (n *BoolVarRef) Equal(other Expr) bool {
	o, ok := other.(*BoolVarRef)
	if !ok {
		return false
	}
	return refEqual(n.Ref, o.Ref)
}

func (n *BoolVarRef) String() string {
	if v, ok := n.Ref.Reg(); ok {
		return varString(v)
	}
	sym, _ := n.Ref.Symbol()
	return symbolString(sym)
}

// BoolNary is the shared shape of and/or: an n-ary Boolean connective.
type BoolNary struct {
	boolBase
	Op       string // "&&" or "||"
	Operands []BoolExpr
}

// BoolAnd constructs a conjunction, folding the empty case to true and a
// singleton to its sole operand.
func BoolAnd(operands ...BoolExpr) BoolExpr {
	switch len(operands) {
	case 0:
		return BoolLit(true)
	case 1:
		return operands[0]
	default:
		return &BoolNary{Op: "&&", Operands: operands}
	}
}

// BoolOr constructs a disjunction, folding the empty case to false and a
// singleton to its sole operand.
func BoolOr(operands ...BoolExpr) BoolExpr {
	switch len(operands) {
	case 0:
		return BoolLit(false)
	case 1:
		return operands[0]
	default:
		return &BoolNary{Op: "||", Operands: operands}
	}
}

func (n *BoolNary) ExprType() Type { return Bool }

func (n *BoolNary) Mark(m Mark, stage int) Expr {
	out := make([]BoolExpr, len(n.Operands))
	for i, o := range n.Operands {
		out[i] = o.Mark(m, stage).(BoolExpr)
	}
	return &BoolNary{Op: n.Op, Operands: out}
}

func (n *BoolNary) Substitute(pol Polarity, policy SymbolPolicy) Expr {
	out := make([]BoolExpr, len(n.Operands))
	for i, o := range n.Operands {
		out[i] = o.Substitute(pol, policy).(BoolExpr)
	}
	return &BoolNary{Op: n.Op, Operands: out}
}

func (n *BoolNary) FreeVars(out map[Var]bool) {
	for _, o := range n.Operands {
		o.FreeVars(out)
	}
}

func (n *BoolNary) HighestStage() int {
	h := -1
	for _, o := range n.Operands {
		if s := o.HighestStage(); s > h {
			h = s
		}
	}
	return h
}

func (n *BoolNary) ContainsSymbol() bool {
	for _, o := range n.Operands {
		if o.ContainsSymbol() {
			return true
		}
	}
	return false
}

func (n *BoolNary) Equal(other Expr) bool {
	o, ok := other.(*BoolNary)
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

func (n *BoolNary) String() string {
	parts := make([]string, len(n.Operands))
	for i, o := range n.Operands {
		parts[i] = o.String()
	}
	return "(" + strings.Join(parts, " "+n.Op+" ") + ")"
}

// BoolNot is Boolean negation. It flips polarity during Substitute.
type BoolNot struct {
	boolBase
	Operand BoolExpr
}

// Not constructs a negation.
func Not(e BoolExpr) BoolExpr { return &BoolNot{Operand: e} }

func (n *BoolNot) ExprType() Type { return Bool }

func (n *BoolNot) Mark(m Mark, stage int) Expr {
	return &BoolNot{Operand: n.Operand.Mark(m, stage).(BoolExpr)}
}

func (n *BoolNot) Substitute(pol Polarity, policy SymbolPolicy) Expr {
	return &BoolNot{Operand: n.Operand.Substitute(pol.Flip(), policy).(BoolExpr)}
}

func (n *BoolNot) FreeVars(out map[Var]bool) { n.Operand.FreeVars(out) }

func (n *BoolNot) HighestStage() int { return n.Operand.HighestStage() }

func (n *BoolNot) ContainsSymbol() bool { return n.Operand.ContainsSymbol() }

func (n *BoolNot) Equal(other Expr) bool {
	o, ok := other.(*BoolNot)
	return ok && n.Operand.Equal(o.Operand)
}

func (n *BoolNot) String() string { return "!" + n.Operand.String() }

// BoolImpliesExpr is logical implication. Its antecedent's polarity is
// flipped during Substitute; its consequent's polarity is inherited.
type BoolImpliesExpr struct {
	boolBase
	Antecedent, Consequent BoolExpr
}

// Implies constructs an implication, folding `implies(false,_)` and
// `implies(_, true)` to true.
func Implies(a, c BoolExpr) BoolExpr {
	if lit, ok := a.(*BoolLiteral); ok && !lit.Value {
		return BoolLit(true)
	}
	if lit, ok := c.(*BoolLiteral); ok && lit.Value {
		return BoolLit(true)
	}
	return &BoolImpliesExpr{Antecedent: a, Consequent: c}
}

func (n *BoolImpliesExpr) ExprType() Type { return Bool }

func (n *BoolImpliesExpr) Mark(m Mark, stage int) Expr {
	return &BoolImpliesExpr{
		Antecedent: n.Antecedent.Mark(m, stage).(BoolExpr),
		Consequent: n.Consequent.Mark(m, stage).(BoolExpr),
	}
}

func (n *BoolImpliesExpr) Substitute(pol Polarity, policy SymbolPolicy) Expr {
	return &BoolImpliesExpr{
		Antecedent: n.Antecedent.Substitute(pol.Flip(), policy).(BoolExpr),
		Consequent: n.Consequent.Substitute(pol, policy).(BoolExpr),
	}
}

func (n *BoolImpliesExpr) FreeVars(out map[Var]bool) {
	n.Antecedent.FreeVars(out)
	n.Consequent.FreeVars(out)
}

func (n *BoolImpliesExpr) HighestStage() int {
	a, c := n.Antecedent.HighestStage(), n.Consequent.HighestStage()
	if a > c {
		return a
	}
	return c
}

func (n *BoolImpliesExpr) ContainsSymbol() bool {
	return n.Antecedent.ContainsSymbol() || n.Consequent.ContainsSymbol()
}

func (n *BoolImpliesExpr) Equal(other Expr) bool {
	o, ok := other.(*BoolImpliesExpr)
	return ok && n.Antecedent.Equal(o.Antecedent) && n.Consequent.Equal(o.Consequent)
}

func (n *BoolImpliesExpr) String() string {
	return "(" + n.Antecedent.String() + " => " + n.Consequent.String() + ")"
}

// BoolEqExpr is polymorphic equality over two expressions of the same
// static type (Int or Bool). eq(x,y) for syntactically identical x,y is
// deliberately never folded to true -- doing so would be unsound for
// expressions containing symbols.
type BoolEqExpr struct {
	boolBase
	Lhs, Rhs Expr
}

// Eq constructs a polymorphic equality. Panics if the operand types
// disagree; callers (the Modeller) are expected to type-check first.
func Eq(a, b Expr) BoolExpr {
	if a.ExprType() != b.ExprType() {
		panic("expr.Eq: operand type mismatch")
	}
	return &BoolEqExpr{Lhs: a, Rhs: b}
}

func (n *BoolEqExpr) ExprType() Type { return Bool }

func (n *BoolEqExpr) Mark(m Mark, stage int) Expr {
	return &BoolEqExpr{Lhs: n.Lhs.Mark(m, stage), Rhs: n.Rhs.Mark(m, stage)}
}

func (n *BoolEqExpr) Substitute(pol Polarity, policy SymbolPolicy) Expr {
	return &BoolEqExpr{Lhs: n.Lhs.Substitute(pol, policy), Rhs: n.Rhs.Substitute(pol, policy)}
}

func (n *BoolEqExpr) FreeVars(out map[Var]bool) {
	n.Lhs.FreeVars(out)
	n.Rhs.FreeVars(out)
}

func (n *BoolEqExpr) HighestStage() int {
	a, b := n.Lhs.HighestStage(), n.Rhs.HighestStage()
	if a > b {
		return a
	}
	return b
}

func (n *BoolEqExpr) ContainsSymbol() bool { return n.Lhs.ContainsSymbol() || n.Rhs.ContainsSymbol() }

func (n *BoolEqExpr) Equal(other Expr) bool {
	o, ok := other.(*BoolEqExpr)
	return ok && n.Lhs.Equal(o.Lhs) && n.Rhs.Equal(o.Rhs)
}

func (n *BoolEqExpr) String() string { return "(" + n.Lhs.String() + " == " + n.Rhs.String() + ")" }

// BoolCompare is an integer comparison: gt/lt/ge/le.
type BoolCompare struct {
	boolBase
	Op       string // ">", "<", ">=", "<="
	Lhs, Rhs IntExpr
}

func Gt(a, b IntExpr) BoolExpr { return &BoolCompare{Op: ">", Lhs: a, Rhs: b} }
func Lt(a, b IntExpr) BoolExpr { return &BoolCompare{Op: "<", Lhs: a, Rhs: b} }
func Ge(a, b IntExpr) BoolExpr { return &BoolCompare{Op: ">=", Lhs: a, Rhs: b} }
func Le(a, b IntExpr) BoolExpr { return &BoolCompare{Op: "<=", Lhs: a, Rhs: b} }

func (n *BoolCompare) ExprType() Type { return Bool }

func (n *BoolCompare) Mark(m Mark, stage int) Expr {
	return &BoolCompare{Op: n.Op, Lhs: n.Lhs.Mark(m, stage).(IntExpr), Rhs: n.Rhs.Mark(m, stage).(IntExpr)}
}

func (n *BoolCompare) Substitute(pol Polarity, policy SymbolPolicy) Expr {
	return &BoolCompare{Op: n.Op, Lhs: n.Lhs.Substitute(pol, policy).(IntExpr), Rhs: n.Rhs.Substitute(pol, policy).(IntExpr)}
}

func (n *BoolCompare) FreeVars(out map[Var]bool) {
	n.Lhs.FreeVars(out)
	n.Rhs.FreeVars(out)
}

func (n *BoolCompare) HighestStage() int {
	a, b := n.Lhs.HighestStage(), n.Rhs.HighestStage()
	if a > b {
		return a
	}
	return b
}

func (n *BoolCompare) ContainsSymbol() bool { return n.Lhs.ContainsSymbol() || n.Rhs.ContainsSymbol() }

func (n *BoolCompare) Equal(other Expr) bool {
	o, ok := other.(*BoolCompare)
	return ok && o.Op == n.Op && n.Lhs.Equal(o.Lhs) && n.Rhs.Equal(o.Rhs)
}

func (n *BoolCompare) String() string {
	return "(" + n.Lhs.String() + " " + n.Op + " " + n.Rhs.String() + ")"
}
