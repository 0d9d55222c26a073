package model

import (
	"fmt"

	"github.com/BenSimner/starling-tool/internal/expr"
	"github.com/BenSimner/starling-tool/internal/report"
	"github.com/BenSimner/starling-tool/internal/syntax"
)

// resolver is the Modeller's name-resolution and type-checking context:
// a flat globals/locals table, since the surface grammar never introduces
// nested bindings inside if/while bodies, so there is nothing for a scope
// stack to push beyond the single method-level table.
type resolver struct {
	globals, locals   map[string]expr.Var
	protos            map[string]PrototypeEntry
	syms              *symbolRegistry
	bag               *report.Bag
	forbidThreadLocal bool // true while checking a proof-global constraint body

	// bound holds a constraint pattern's universally-quantified parameter
	// names for the duration of checking that constraint's body; these
	// shadow globals/locals and are exempt from forbidThreadLocal (they
	// are logic variables, not program state).
	bound map[string]expr.Var
}

func (r *resolver) lookup(name string) (expr.Var, bool) {
	if v, ok := r.bound[name]; ok {
		return v, true
	}
	if v, ok := r.locals[name]; ok {
		return v, true
	}
	if v, ok := r.globals[name]; ok {
		return v, true
	}
	return expr.Var{}, false
}

func (r *resolver) checkScope(v expr.Var, name string, sp *report.Span) {
	if r.forbidThreadLocal && v.Scope == expr.ThreadLocal {
		err := &report.ModelError{Kind: report.ConstraintScopeViolation, Name: name, Span: sp}
		r.bag.AddError(err.Error(), sp, err)
	}
}

func (r *resolver) unknownIdent(name string, sp *report.Span) error {
	err := &report.ModelError{Kind: report.UnknownIdentifier, Name: name, Span: sp}
	return err
}

func mkTypeMismatch(want, got expr.Type, where string, sp *report.Span) error {
	return &report.ModelError{Kind: report.TypeMismatch, Expected: want.String(), Got: got.String(), Where: where, Span: sp}
}

// expect type-checks e against a known expected type. Symbol expressions are
// special-cased here rather than in typeExpr: the expected type is exactly
// what resolves a symbol's otherwise-ambiguous static type.
func (r *resolver) expect(e syntax.Expr, want expr.Type) (expr.Expr, error) {
	if sym, ok := e.(*syntax.SymbolExpr); ok {
		return r.convertSymbol(sym, want)
	}
	got, ty, err := r.typeExpr(e)
	if err != nil {
		return nil, err
	}
	if ty != want {
		return nil, mkTypeMismatch(want, ty, e.String(), e.Span())
	}
	return got, nil
}

// typeExpr infers e's type bottom-up. A bare symbol call with no
// surrounding operator to fix its type defaults to Bool, the position a
// symbol occupies when used standalone as a constraint body or assume(...)
// argument -- the only contexts this grammar lets a symbol stand alone in.
func (r *resolver) typeExpr(e syntax.Expr) (expr.Expr, expr.Type, error) {
	switch n := e.(type) {
	case *syntax.IntLit:
		return &expr.IntLiteral{Value: n.Value}, expr.Int, nil
	case *syntax.BoolLit:
		return expr.BoolLit(n.Value), expr.Bool, nil
	case *syntax.Ident:
		v, ok := r.lookup(n.Name)
		if !ok {
			return nil, 0, r.unknownIdent(n.Name, n.Sp)
		}
		r.checkScope(v, n.Name, n.Sp)
		if v.Type == expr.Int {
			return expr.IntVarOf(v), expr.Int, nil
		}
		return expr.BoolVarOf(v), expr.Bool, nil
	case *syntax.SymbolExpr:
		ce, err := r.convertSymbol(n, expr.Bool)
		return ce, expr.Bool, err
	case *syntax.UnaryExpr:
		return r.typeUnary(n)
	case *syntax.BinaryExpr:
		return r.typeBinary(n)
	default:
		return nil, 0, fmt.Errorf("model: unhandled expression node %T", e)
	}
}

func (r *resolver) typeUnary(n *syntax.UnaryExpr) (expr.Expr, expr.Type, error) {
	switch n.Op {
	case "!":
		operand, err := r.expect(n.Operand, expr.Bool)
		if err != nil {
			return nil, 0, err
		}
		return expr.Not(operand.(expr.BoolExpr)), expr.Bool, nil
	case "-":
		operand, err := r.expect(n.Operand, expr.Int)
		if err != nil {
			return nil, 0, err
		}
		zero := &expr.IntLiteral{Value: 0}
		return expr.IntSub(zero, operand.(expr.IntExpr)), expr.Int, nil
	default:
		return nil, 0, fmt.Errorf("model: unknown unary operator %q", n.Op)
	}
}

func (r *resolver) typeBinary(n *syntax.BinaryExpr) (expr.Expr, expr.Type, error) {
	switch n.Op {
	case "+", "-", "*":
		lhs, err := r.expect(n.Lhs, expr.Int)
		if err != nil {
			return nil, 0, err
		}
		rhs, err := r.expect(n.Rhs, expr.Int)
		if err != nil {
			return nil, 0, err
		}
		li, ri := lhs.(expr.IntExpr), rhs.(expr.IntExpr)
		switch n.Op {
		case "+":
			return expr.IntAdd(li, ri), expr.Int, nil
		case "-":
			return expr.IntSub(li, ri), expr.Int, nil
		default:
			return expr.IntMul(li, ri), expr.Int, nil
		}
	case "/":
		lhs, err := r.expect(n.Lhs, expr.Int)
		if err != nil {
			return nil, 0, err
		}
		rhs, err := r.expect(n.Rhs, expr.Int)
		if err != nil {
			return nil, 0, err
		}
		return &expr.IntDiv{Lhs: lhs.(expr.IntExpr), Rhs: rhs.(expr.IntExpr)}, expr.Int, nil
	case "<", "<=", ">", ">=":
		lhs, err := r.expect(n.Lhs, expr.Int)
		if err != nil {
			return nil, 0, err
		}
		rhs, err := r.expect(n.Rhs, expr.Int)
		if err != nil {
			return nil, 0, err
		}
		li, ri := lhs.(expr.IntExpr), rhs.(expr.IntExpr)
		switch n.Op {
		case "<":
			return expr.Lt(li, ri), expr.Bool, nil
		case "<=":
			return expr.Le(li, ri), expr.Bool, nil
		case ">":
			return expr.Gt(li, ri), expr.Bool, nil
		default:
			return expr.Ge(li, ri), expr.Bool, nil
		}
	case "==", "!=":
		lhs, lty, err := r.typeExpr(n.Lhs)
		if err != nil {
			return nil, 0, err
		}
		rhs, err := r.expect(n.Rhs, lty)
		if err != nil {
			return nil, 0, err
		}
		eq := expr.Eq(lhs, rhs)
		if n.Op == "!=" {
			return expr.Not(eq), expr.Bool, nil
		}
		return eq, expr.Bool, nil
	case "&&", "||", "->":
		lhs, err := r.expect(n.Lhs, expr.Bool)
		if err != nil {
			return nil, 0, err
		}
		rhs, err := r.expect(n.Rhs, expr.Bool)
		if err != nil {
			return nil, 0, err
		}
		lb, rb := lhs.(expr.BoolExpr), rhs.(expr.BoolExpr)
		switch n.Op {
		case "&&":
			return expr.BoolAnd(lb, rb), expr.Bool, nil
		case "||":
			return expr.BoolOr(lb, rb), expr.Bool, nil
		default:
			return expr.Implies(lb, rb), expr.Bool, nil
		}
	default:
		return nil, 0, fmt.Errorf("model: unknown binary operator %q", n.Op)
	}
}

// convertSymbol converts a surface symbol call to the symbolic escape
// hatch at the given type; its arguments are typed by bottom-up inference,
// since no prototype constrains them.
func (r *resolver) convertSymbol(sym *syntax.SymbolExpr, want expr.Type) (expr.Expr, error) {
	args := make([]expr.Expr, len(sym.Args))
	for i, a := range sym.Args {
		ce, _, err := r.typeExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = ce
	}
	if want == expr.Int {
		return expr.IntSymOf(sym.Name, args...), nil
	}
	return expr.BoolSymOf(sym.Name, args...), nil
}
