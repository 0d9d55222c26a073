package expr

// IntVarOf wraps a regular variable as an integer expression node.
func IntVarOf(v Var) IntExpr { return &IntVarRef{Ref: RegRef(v)} }

// BoolVarOf wraps a regular variable as a Boolean expression node.
func BoolVarOf(v Var) BoolExpr { return &BoolVarRef{Ref: RegRef(v)} }

// IntSymOf wraps a symbol application as an integer expression node.
func IntSymOf(name string, args ...Expr) IntExpr { return &IntVarRef{Ref: SymRef[Var](name, args...)} }

// BoolSymOf wraps a symbol application as a Boolean expression node.
func BoolSymOf(name string, args ...Expr) BoolExpr {
	return &BoolVarRef{Ref: SymRef[Var](name, args...)}
}

func markArgs(args []Expr, m Mark, stage int) []Expr {
	out := make([]Expr, len(args))
	for i, a := range args {
		out[i] = a.Mark(m, stage)
	}
	return out
}

func substArgs(args []Expr, pol Polarity, policy SymbolPolicy) []Expr {
	out := make([]Expr, len(args))
	for i, a := range args {
		out[i] = a.Substitute(pol, policy)
	}
	return out
}

func freeVarsArgs(args []Expr, out map[Var]bool) {
	for _, a := range args {
		a.FreeVars(out)
	}
}

func highestStageArgs(args []Expr) int {
	h := -1
	for _, a := range args {
		if s := a.HighestStage(); s > h {
			h = s
		}
	}
	return h
}

func stageOf(v Var) int {
	if v.Mark == Intermediate || v.Mark == Goal {
		return v.Stage
	}
	return -1
}

func refEqual(a, b Ref[Var]) bool {
	av, aok := a.Reg()
	bv, bok := b.Reg()
	if aok != bok {
		return false
	}
	if aok {
		return av == bv
	}
	asym, _ := a.Symbol()
	bsym, _ := b.Symbol()
	if asym.Name != bsym.Name || len(asym.Args) != len(bsym.Args) {
		return false
	}
	for i := range asym.Args {
		if !asym.Args[i].Equal(bsym.Args[i]) {
			return false
		}
	}
	return true
}

func varString(v Var) string {
	name := v.Scope.String() + "." + v.Name
	switch v.Mark {
	case Unmarked:
		return name
	case Before, After:
		return name + "_" + v.Mark.String()
	default:
		return name + "_" + v.Mark.String() + itoaStage(v.Stage)
	}
}

func itoaStage(k int) string {
	if k == 0 {
		return "(0)"
	}
	digits := []byte{}
	n := k
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return "(" + string(digits) + ")"
}

func symbolString(s *Symbol) string {
	out := "%{" + s.Name + "}("
	for i, a := range s.Args {
		if i > 0 {
			out += ", "
		}
		out += a.String()
	}
	return out + ")"
}
