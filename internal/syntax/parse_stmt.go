package syntax

import "github.com/BenSimner/starling-tool/internal/report"

// block = '{' view_assertion (step view_assertion)* '}'
func (p *Parser) parseBlock() (*Block, error) {
	startSp := p.tok.Span
	if err := p.expect(TOK_LBRACE); err != nil {
		return nil, err
	}

	firstView, err := p.parseViewAssertion()
	if err != nil {
		return nil, err
	}
	views := []*ViewAssertionNode{firstView}
	var steps []Step

	for p.startsStep() {
		step, err := p.parseStep()
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)

		view, err := p.parseViewAssertion()
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	endSp := p.tok.Span
	if err := p.expect(TOK_RBRACE); err != nil {
		return nil, err
	}
	return &Block{Views: views, Steps: steps, Sp: report.SpanOver(startSp, endSp)}, nil
}

func (p *Parser) startsStep() bool {
	return p.gotOneOf(TOK_LT, TOK_IF, TOK_WHILE, TOK_DO)
}

// step = atomic_block | if_step | while_step | do_while_step
func (p *Parser) parseStep() (Step, error) {
	switch {
	case p.got(TOK_LT):
		blk, err := p.parseAtomicBlock()
		if err != nil {
			return nil, err
		}
		return &PrimStep{Block: blk}, nil
	case p.got(TOK_IF):
		return p.parseIfStep()
	case p.got(TOK_WHILE):
		return p.parseWhileStep()
	case p.got(TOK_DO):
		return p.parseDoWhileStep()
	default:
		return nil, report.Raise(p.tok.Span, "expected an atomic step, 'if', 'while', or 'do'")
	}
}

// if_step = 'if' '(' expr ')' block 'else' block
func (p *Parser) parseIfStep() (*IfStep, error) {
	startSp := p.tok.Span
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expect(TOK_LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TOK_RPAREN); err != nil {
		return nil, err
	}
	thenBlk, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TOK_ELSE); err != nil {
		return nil, err
	}
	elseBlk, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &IfStep{Cond: cond, Then: thenBlk, Else: elseBlk, Sp: report.SpanOver(startSp, elseBlk.Sp)}, nil
}

// while_step = 'while' '(' expr ')' block
func (p *Parser) parseWhileStep() (*WhileStep, error) {
	startSp := p.tok.Span
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.expect(TOK_LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TOK_RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &WhileStep{Cond: cond, Body: body, Sp: report.SpanOver(startSp, body.Sp)}, nil
}

// do_while_step = 'do' block 'while' '(' expr ')'
func (p *Parser) parseDoWhileStep() (*WhileStep, error) {
	startSp := p.tok.Span
	if err := p.next(); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TOK_WHILE); err != nil {
		return nil, err
	}
	if err := p.expect(TOK_LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	endSp := p.tok.Span
	if err := p.expect(TOK_RPAREN); err != nil {
		return nil, err
	}
	return &WhileStep{IsDoWhile: true, Cond: cond, Body: body, Sp: report.SpanOver(startSp, endSp)}, nil
}

// atomic_block = '<' atomic_prim '>' | '<' '{' atomic_prim (';' atomic_prim)* ';'? '}' '>'
func (p *Parser) parseAtomicBlock() (*AtomicBlock, error) {
	startSp := p.tok.Span
	if err := p.expect(TOK_LT); err != nil {
		return nil, err
	}

	if p.got(TOK_LBRACE) {
		if err := p.next(); err != nil {
			return nil, err
		}
		var prims []*AtomicPrim
		for {
			prim, err := p.parseAtomicPrim()
			if err != nil {
				return nil, err
			}
			prims = append(prims, prim)
			if !p.got(TOK_SEMI) {
				break
			}
			if err := p.next(); err != nil {
				return nil, err
			}
			if p.got(TOK_RBRACE) {
				break
			}
		}
		if err := p.expect(TOK_RBRACE); err != nil {
			return nil, err
		}
		endSp := p.tok.Span
		if err := p.expect(TOK_GT); err != nil {
			return nil, err
		}
		return &AtomicBlock{Prims: prims, Sp: report.SpanOver(startSp, endSp)}, nil
	}

	prim, err := p.parseAtomicPrim()
	if err != nil {
		return nil, err
	}
	endSp := p.tok.Span
	if err := p.expect(TOK_GT); err != nil {
		return nil, err
	}
	return &AtomicBlock{Prims: []*AtomicPrim{prim}, Sp: report.SpanOver(startSp, endSp)}, nil
}

// atomic_prim = symbol_call | 'CAS' arg_list | IDENT '=' expr | IDENT ('++' | '--') | IDENT arg_list
func (p *Parser) parseAtomicPrim() (*AtomicPrim, error) {
	startSp := p.tok.Span

	if p.got(TOK_SYM_OPEN) {
		e, err := p.parseSymbolExpr()
		if err != nil {
			return nil, err
		}
		sym := e.(*SymbolExpr)
		return &AtomicPrim{Name: sym.Name, IsSymbol: true, Args: sym.Args, Sp: sym.Sp}, nil
	}

	if p.got(TOK_CAS) {
		if err := p.next(); err != nil {
			return nil, err
		}
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		if len(args) != 3 {
			return nil, report.Raise(startSp, "CAS expects 3 arguments (dest, test, set), got %d", len(args))
		}
		return &AtomicPrim{Name: "CAS", Args: args, Sp: report.SpanOver(startSp, p.tok.Span)}, nil
	}

	name, sp, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	switch {
	case p.got(TOK_ASSIGN):
		if err := p.next(); err != nil {
			return nil, err
		}
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &AtomicPrim{Results: []string{name}, Args: []Expr{rhs}, Sp: report.SpanOver(sp, rhs.Span())}, nil
	case p.got(TOK_INC) || p.got(TOK_DEC):
		op := "++"
		if p.got(TOK_DEC) {
			op = "--"
		}
		endSp := p.tok.Span
		if err := p.next(); err != nil {
			return nil, err
		}
		return &AtomicPrim{Results: []string{name}, Name: op, Sp: report.SpanOver(sp, endSp)}, nil
	case p.got(TOK_LPAREN):
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		return &AtomicPrim{Name: name, Args: args, Sp: report.SpanOver(sp, p.tok.Span)}, nil
	default:
		return nil, report.Raise(p.tok.Span, "expected '=', '++', '--', or '(' after %q in atomic step", name)
	}
}
