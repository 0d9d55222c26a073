package syntax

import "github.com/BenSimner/starling-tool/internal/report"

// view_pattern = union_pattern
// union_pattern = iter_or_atom {'*' iter_or_atom}
// iter_or_atom  = 'iter' '[' expr ']' iter_or_atom | atom_pattern
// atom_pattern  = 'emp' | IDENT '(' arg_list ')'
//               | 'if' expr 'then' view_pattern 'else' view_pattern
func (p *Parser) parseViewPattern() (ViewPattern, error) {
	lhs, err := p.parseIterOrAtomPattern()
	if err != nil {
		return nil, err
	}
	for p.got(TOK_STAR) {
		if err := p.next(); err != nil {
			return nil, err
		}
		rhs, err := p.parseIterOrAtomPattern()
		if err != nil {
			return nil, err
		}
		lhs = &UnionPattern{Lhs: lhs, Rhs: rhs, Sp: report.SpanOver(lhs.Span(), rhs.Span())}
	}
	return lhs, nil
}

func (p *Parser) parseIterOrAtomPattern() (ViewPattern, error) {
	if p.got(TOK_ITER) {
		startSp := p.tok.Span
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.expect(TOK_LBRACKET); err != nil {
			return nil, err
		}
		mult, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TOK_RBRACKET); err != nil {
			return nil, err
		}
		inner, err := p.parseIterOrAtomPattern()
		if err != nil {
			return nil, err
		}
		return &IterPattern{Mult: mult, Inner: inner, Sp: report.SpanOver(startSp, inner.Span())}, nil
	}
	return p.parseAtomPattern()
}

func (p *Parser) parseAtomPattern() (ViewPattern, error) {
	if p.got(TOK_EMP) {
		sp := p.tok.Span
		return &EmpPattern{Sp: sp}, p.next()
	}

	if p.got(TOK_IF) {
		startSp := p.tok.Span
		if err := p.next(); err != nil {
			return nil, err
		}
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TOK_THEN); err != nil {
			return nil, err
		}
		thenPat, err := p.parseViewPattern()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TOK_ELSE); err != nil {
			return nil, err
		}
		elsePat, err := p.parseViewPattern()
		if err != nil {
			return nil, err
		}
		return &ITEPattern{Cond: cond, Then: thenPat, Else: elsePat, Sp: report.SpanOver(startSp, elsePat.Span())}, nil
	}

	name, sp, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	return &FuncPattern{Name: name, Args: args, Sp: report.SpanOver(sp, p.tok.Span)}, nil
}

// view_assertion = '{|' view_pattern '|}'
func (p *Parser) parseViewAssertion() (*ViewAssertionNode, error) {
	startSp := p.tok.Span
	if err := p.expect(TOK_VBAR_OPEN); err != nil {
		return nil, err
	}
	pattern, err := p.parseViewPattern()
	if err != nil {
		return nil, err
	}
	endSp := p.tok.Span
	if err := p.expect(TOK_VBAR_CLOSE); err != nil {
		return nil, err
	}
	return &ViewAssertionNode{Pattern: pattern, Sp: report.SpanOver(startSp, endSp)}, nil
}
