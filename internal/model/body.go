package model

import (
	"fmt"
	"strconv"

	"github.com/BenSimner/starling-tool/internal/expr"
	"github.com/BenSimner/starling-tool/internal/report"
	"github.com/BenSimner/starling-tool/internal/syntax"
	"github.com/BenSimner/starling-tool/internal/view"
)

// convertBlock walks a method body (or nested if/while body) into a
// Block[view.CView]: one view per ViewAssertionNode, one PartCmd per Step,
// interleaved as the grammar requires.
func (r *resolver) convertBlock(b *syntax.Block) (*Block[view.CView], error) {
	views := make([]view.CView, len(b.Views))
	for i, va := range b.Views {
		cv, err := r.convertViewPattern(va.Pattern)
		if err != nil {
			return nil, err
		}
		views[i] = cv
	}

	steps := make([]PartCmd[view.CView], len(b.Steps))
	for i, st := range b.Steps {
		pc, err := r.convertStep(st)
		if err != nil {
			return nil, err
		}
		steps[i] = pc
	}

	return &Block[view.CView]{Views: views, Steps: steps}, nil
}

func (r *resolver) convertStep(st syntax.Step) (PartCmd[view.CView], error) {
	switch s := st.(type) {
	case *syntax.PrimStep:
		cmd := make(Command, len(s.Block.Prims))
		for i, p := range s.Block.Prims {
			ct, err := r.classifyPrim(p)
			if err != nil {
				return nil, err
			}
			cmd[i] = ct
		}
		return PrimCmd[view.CView]{Cmd: cmd}, nil

	case *syntax.IfStep:
		cond, err := r.expect(s.Cond, expr.Bool)
		if err != nil {
			return nil, err
		}
		then, err := r.convertBlock(s.Then)
		if err != nil {
			return nil, err
		}
		els, err := r.convertBlock(s.Else)
		if err != nil {
			return nil, err
		}
		return ITECmd[view.CView]{Cond: cond.(expr.BoolExpr), Then: then, Else: els}, nil

	case *syntax.WhileStep:
		cond, err := r.expect(s.Cond, expr.Bool)
		if err != nil {
			return nil, err
		}
		body, err := r.convertBlock(s.Body)
		if err != nil {
			return nil, err
		}
		return WhileCmd[view.CView]{IsDoWhile: s.IsDoWhile, Cond: cond.(expr.BoolExpr), Body: body}, nil

	default:
		return nil, fmt.Errorf("model: unhandled step %T", st)
	}
}

// classifyPrim reduces one surface atomic_prim to a CommandType naming the
// semantic primitive it is an instance of, applied per-call rather than
// per-kind: the kind's template lives in baseSemantics/symbolRegistry,
// this just produces the call site.
func (r *resolver) classifyPrim(p *syntax.AtomicPrim) (CommandType, error) {
	switch {
	case p.IsSymbol:
		return r.classifySymbolCall(p)
	case p.Name == "CAS":
		return r.classifyCAS(p)
	case p.Name == "++" || p.Name == "--":
		return r.classifyIncDec(p)
	case p.Name == "" && len(p.Results) == 1:
		return r.classifyAssign(p)
	case p.Name != "" && len(p.Results) == 0:
		return r.classifyBareCall(p)
	default:
		return CommandType{}, &report.ModelError{Kind: report.BadAtomicBlock, Where: "unrecognized atomic-step shape", Span: p.Sp}
	}
}

// classifyAssign distinguishes store from load by the RHS's surface shape:
// a bare identifier names a plain variable-to-variable fetch (load, which
// also pins the source's own before/after equality); anything else is a
// store of an arbitrary expression.
func (r *resolver) classifyAssign(p *syntax.AtomicPrim) (CommandType, error) {
	destVar, ok := r.lookup(p.Results[0])
	if !ok {
		return CommandType{}, r.unknownIdent(p.Results[0], p.Sp)
	}

	rhs := p.Args[0]
	val, err := r.expect(rhs, destVar.Type)
	if err != nil {
		return CommandType{}, err
	}

	if _, ok := rhs.(*syntax.Ident); ok {
		return CommandType{Results: []expr.Var{destVar}, Name: loadName(destVar.Type), Params: []expr.Expr{val}}, nil
	}
	return CommandType{Results: []expr.Var{destVar}, Name: storeName(destVar.Type), Params: []expr.Expr{val}}, nil
}

func (r *resolver) classifyIncDec(p *syntax.AtomicPrim) (CommandType, error) {
	v, ok := r.lookup(p.Results[0])
	if !ok {
		return CommandType{}, r.unknownIdent(p.Results[0], p.Sp)
	}
	if v.Type != expr.Int {
		return CommandType{}, mkTypeMismatch(expr.Int, v.Type, "increment/decrement target", p.Sp)
	}
	name := incName
	if p.Name == "--" {
		name = decName
	}
	return CommandType{Results: []expr.Var{v}, Name: name}, nil
}

// classifyCAS validates dest/test are plain variables (the relation writes
// both: dest is the cell under test, test receives the cell's actual prior
// value on mismatch, the compare_exchange idiom).
func (r *resolver) classifyCAS(p *syntax.AtomicPrim) (CommandType, error) {
	destID, ok := p.Args[0].(*syntax.Ident)
	if !ok {
		return CommandType{}, &report.ModelError{Kind: report.BadAtomicBlock, Where: "CAS destination must be a variable", Span: p.Sp}
	}
	destVar, ok := r.lookup(destID.Name)
	if !ok {
		return CommandType{}, r.unknownIdent(destID.Name, p.Sp)
	}

	testID, ok := p.Args[1].(*syntax.Ident)
	if !ok {
		return CommandType{}, &report.ModelError{Kind: report.BadAtomicBlock, Where: "CAS test must be a variable", Span: p.Sp}
	}
	testVar, ok := r.lookup(testID.Name)
	if !ok {
		return CommandType{}, r.unknownIdent(testID.Name, p.Sp)
	}
	if testVar.Type != destVar.Type {
		return CommandType{}, mkTypeMismatch(destVar.Type, testVar.Type, "CAS test", p.Sp)
	}

	setVal, err := r.expect(p.Args[2], destVar.Type)
	if err != nil {
		return CommandType{}, err
	}

	return CommandType{
		Results: []expr.Var{destVar, testVar},
		Name:    casName(destVar.Type),
		Params:  []expr.Expr{setVal},
	}, nil
}

func (r *resolver) classifyBareCall(p *syntax.AtomicPrim) (CommandType, error) {
	switch p.Name {
	case assumeName:
		if len(p.Args) != 1 {
			return CommandType{}, &report.ModelError{Kind: report.ArityMismatch, Name: assumeName, Expected: "1", Got: strconv.Itoa(len(p.Args)), Span: p.Sp}
		}
		b, err := r.expect(p.Args[0], expr.Bool)
		if err != nil {
			return CommandType{}, err
		}
		return CommandType{Name: assumeName, Params: []expr.Expr{b}}, nil

	case skipName:
		if len(p.Args) != 0 {
			return CommandType{}, &report.ModelError{Kind: report.ArityMismatch, Name: skipName, Expected: "0", Got: strconv.Itoa(len(p.Args)), Span: p.Sp}
		}
		return CommandType{Name: skipName}, nil

	default:
		return CommandType{}, &report.ModelError{Kind: report.BadAtomicBlock, Where: fmt.Sprintf("unrecognized primitive %q", p.Name), Span: p.Sp}
	}
}

func (r *resolver) classifySymbolCall(p *syntax.AtomicPrim) (CommandType, error) {
	argTypes := make([]expr.Type, len(p.Args))
	argExprs := make([]expr.Expr, len(p.Args))
	for i, a := range p.Args {
		ce, ty, err := r.typeExpr(a)
		if err != nil {
			return CommandType{}, err
		}
		argTypes[i] = ty
		argExprs[i] = ce
	}
	name := r.syms.register(p.Name, argTypes)
	return CommandType{Name: name, Params: argExprs}, nil
}
