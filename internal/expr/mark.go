package expr

// MarkBefore marks every regular variable in e as the pre-state of an
// atomic step.
func MarkBefore(e Expr) Expr { return e.Mark(Before, 0) }

// MarkAfter marks every regular variable in e as the post-state of an
// atomic step.
func MarkAfter(e Expr) Expr { return e.Mark(After, 0) }

// MarkIntermediate marks every regular variable in e as the k-th internal
// step of a composed command.
func MarkIntermediate(e Expr, k int) Expr { return e.Mark(Intermediate, k) }

// MarkGoal marks every regular variable in e as a proof goal's k-th fresh
// copy.
func MarkGoal(e Expr, k int) Expr { return e.Mark(Goal, k) }

// FreeVars returns the set of regular variable references (name+type)
// occurring in e.
func FreeVars(e Expr) map[Var]bool {
	out := make(map[Var]bool)
	e.FreeVars(out)
	return out
}

// HighestIntermediateStage returns the greatest Intermediate(k)/Goal(k)
// stage number occurring in e, or -1 if none.
func HighestIntermediateStage(e Expr) int {
	return e.HighestStage()
}
