package syntax

import (
	"strconv"

	"github.com/BenSimner/starling-tool/internal/report"
)

// expr = or_expr
// or_expr     = and_expr {'||' and_expr}
// and_expr    = implies_expr {'&&' implies_expr}
// implies_expr= eq_expr {'->' eq_expr}        -- right-associative, handled specially
// eq_expr     = comp_expr [('==' | '!=') comp_expr]
// comp_expr   = arith_expr [('<' | '<=' | '>' | '>=') arith_expr]
// arith_expr  = term {('+' | '-') term}
// term        = unary {('*' | '/') unary}
// unary       = ['!' | '-'] atom
func (p *Parser) parseExpr() (Expr, error) {
	return p.parseOr()
}

var orOps = map[int]string{TOK_OR: "||"}
var andOps = map[int]string{TOK_AND: "&&"}
var addOps = map[int]string{TOK_PLUS: "+", TOK_MINUS: "-"}
var mulOps = map[int]string{TOK_STAR: "*", TOK_SLASH: "/"}
var eqOps = map[int]string{TOK_EQ: "==", TOK_NEQ: "!="}
var compOps = map[int]string{TOK_LT: "<", TOK_LTEQ: "<=", TOK_GT: ">", TOK_GTEQ: ">="}

func (p *Parser) parseOr() (Expr, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for op, sym := range orOps {
		for p.got(op) {
			if err := p.next(); err != nil {
				return nil, err
			}
			rhs, err := p.parseAnd()
			if err != nil {
				return nil, err
			}
			lhs = &BinaryExpr{Op: sym, Lhs: lhs, Rhs: rhs, Sp: report.SpanOver(lhs.Span(), rhs.Span())}
		}
	}
	return lhs, nil
}

func (p *Parser) parseAnd() (Expr, error) {
	lhs, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	for op, sym := range andOps {
		for p.got(op) {
			if err := p.next(); err != nil {
				return nil, err
			}
			rhs, err := p.parseImplies()
			if err != nil {
				return nil, err
			}
			lhs = &BinaryExpr{Op: sym, Lhs: lhs, Rhs: rhs, Sp: report.SpanOver(lhs.Span(), rhs.Span())}
		}
	}
	return lhs, nil
}

// parseImplies handles the `->` operator appearing inside parenthesised
// sub-expressions (the bare top-level `->` in a `constraint` decl is parsed
// separately by parseConstraintDecl, since it is not an expression operator
// there but the decl's own separator). Right-associative.
func (p *Parser) parseImplies() (Expr, error) {
	lhs, err := p.parseEq()
	if err != nil {
		return nil, err
	}
	if p.got(TOK_ARROW) {
		if err := p.next(); err != nil {
			return nil, err
		}
		rhs, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Op: "->", Lhs: lhs, Rhs: rhs, Sp: report.SpanOver(lhs.Span(), rhs.Span())}, nil
	}
	return lhs, nil
}

func (p *Parser) parseEq() (Expr, error) {
	lhs, err := p.parseComp()
	if err != nil {
		return nil, err
	}
	if sym, ok := eqOps[p.tok.Kind]; ok {
		if err := p.next(); err != nil {
			return nil, err
		}
		rhs, err := p.parseComp()
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Op: sym, Lhs: lhs, Rhs: rhs, Sp: report.SpanOver(lhs.Span(), rhs.Span())}, nil
	}
	return lhs, nil
}

func (p *Parser) parseComp() (Expr, error) {
	lhs, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	if sym, ok := compOps[p.tok.Kind]; ok {
		if err := p.next(); err != nil {
			return nil, err
		}
		rhs, err := p.parseArith()
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Op: sym, Lhs: lhs, Rhs: rhs, Sp: report.SpanOver(lhs.Span(), rhs.Span())}, nil
	}
	return lhs, nil
}

func (p *Parser) parseArith() (Expr, error) {
	lhs, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		sym, ok := addOps[p.tok.Kind]
		if !ok {
			break
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		lhs = &BinaryExpr{Op: sym, Lhs: lhs, Rhs: rhs, Sp: report.SpanOver(lhs.Span(), rhs.Span())}
	}
	return lhs, nil
}

func (p *Parser) parseTerm() (Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		sym, ok := mulOps[p.tok.Kind]
		if !ok {
			break
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		lhs = &BinaryExpr{Op: sym, Lhs: lhs, Rhs: rhs, Sp: report.SpanOver(lhs.Span(), rhs.Span())}
	}
	return lhs, nil
}

func (p *Parser) parseUnary() (Expr, error) {
	if p.got(TOK_NOT) || p.got(TOK_MINUS) {
		startSp := p.tok.Span
		op := "!"
		if p.got(TOK_MINUS) {
			op = "-"
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op, Operand: operand, Sp: report.SpanOver(startSp, operand.Span())}, nil
	}
	return p.parseAtom()
}

// atom = INTLIT | 'true' | 'false' | IDENT | symbol | '(' expr ')'
func (p *Parser) parseAtom() (Expr, error) {
	switch p.tok.Kind {
	case TOK_INTLIT:
		tok := p.tok
		v, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, report.Raise(tok.Span, "malformed integer literal %q", tok.Value)
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		return &IntLit{Value: v, Sp: tok.Span}, nil
	case TOK_TRUE, TOK_FALSE:
		tok := p.tok
		if err := p.next(); err != nil {
			return nil, err
		}
		return &BoolLit{Value: tok.Kind == TOK_TRUE, Sp: tok.Span}, nil
	case TOK_IDENT:
		tok := p.tok
		if err := p.next(); err != nil {
			return nil, err
		}
		return &Ident{Name: tok.Value, Sp: tok.Span}, nil
	case TOK_SYM_OPEN:
		return p.parseSymbolExpr()
	case TOK_LPAREN:
		startSp := p.tok.Span
		if err := p.next(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		endSp := p.tok.Span
		if err := p.expect(TOK_RPAREN); err != nil {
			return nil, err
		}
		inner = wrapSpan(inner, report.SpanOver(startSp, endSp))
		return inner, nil
	default:
		return nil, report.Raise(p.tok.Span, "expected an expression but got %s", tokenKindName(p.tok.Kind))
	}
}

// parseSymbolExpr parses `%{name}(args)`.
func (p *Parser) parseSymbolExpr() (Expr, error) {
	startSp := p.tok.Span
	if err := p.next(); err != nil {
		return nil, err
	}
	name, _, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TOK_RBRACE); err != nil {
		return nil, err
	}
	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	return &SymbolExpr{Name: name, Args: args, Sp: report.SpanOver(startSp, p.tok.Span)}, nil
}

// parseArgList parses `(e1, e2, ...)`, including the empty `()`.
func (p *Parser) parseArgList() ([]Expr, error) {
	if err := p.expect(TOK_LPAREN); err != nil {
		return nil, err
	}
	var args []Expr
	if !p.got(TOK_RPAREN) {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.got(TOK_COMMA) {
				break
			}
			if err := p.next(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.expect(TOK_RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

// wrapSpan returns e with its span widened to sp, preserving its dynamic
// type by re-slotting the span field directly rather than allocating a
// wrapper node.
func wrapSpan(e Expr, sp *report.Span) Expr {
	switch v := e.(type) {
	case *Ident:
		v.Sp = sp
		return v
	case *IntLit:
		v.Sp = sp
		return v
	case *BoolLit:
		v.Sp = sp
		return v
	case *SymbolExpr:
		v.Sp = sp
		return v
	case *UnaryExpr:
		v.Sp = sp
		return v
	case *BinaryExpr:
		v.Sp = sp
		return v
	default:
		return e
	}
}
