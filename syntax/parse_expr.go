package syntax

import (
	"slices"
	"strconv"

	"minic/common"
	"minic/report"
)

// parseExpr handles the top-level expression alternatives: assignment (not
// chainable), `new`, `typeof`, and the binary operator ladder.
func (p *Parser) parseExpr() common.AstExpr {
	switch p.tok.Kind {
	case TOK_NEW:
		return p.parseNewExpr()
	case TOK_TYPEOF:
		return p.parseTypeOfExpr()
	}

	lhs := p.parseBinaryOp(0)

	if p.has(TOK_ASSIGN) {
		assignSpan := p.tok.Span

		varExpr, ok := lhs.(*common.AstVarExpr)
		if !ok {
			p.errorOn(assignSpan, "invalid assignment target")
		}

		p.next()

		rhs := p.parseBinaryOp(0)

		if p.has(TOK_ASSIGN) {
			p.error("assignment is not chainable")
		}

		return &common.AstAssign{
			AstExprBase: common.AstExprBase{
				Span: report.SpanOver(lhs.GetSpan(), rhs.GetSpan()),
			},
			Ident: varExpr.Ident,
			Value: rhs,
		}
	}

	return lhs
}

/* -------------------------------------------------------------------------- */

var tokKindToOpKind = map[TokenKind]common.AstOpKind{
	TOK_OROR:   common.AOP_OR,
	TOK_ANDAND: common.AOP_AND,
	TOK_EQ:     common.AOP_EQ,
	TOK_NEQ:    common.AOP_NEQ,
	TOK_SEQ:    common.AOP_SEQ,
	TOK_SNEQ:   common.AOP_SNEQ,
	TOK_LT:     common.AOP_LT,
	TOK_LTEQ:   common.AOP_LTE,
	TOK_GT:     common.AOP_GT,
	TOK_GTEQ:   common.AOP_GTE,
	TOK_PLUS:   common.AOP_ADD,
	TOK_MINUS:  common.AOP_SUB,
	TOK_STAR:   common.AOP_MUL,
	TOK_FSLASH: common.AOP_DIV,
	TOK_MOD:    common.AOP_MOD,
}

// predTable runs loosest to tightest; every level is left-associative.
var predTable = [][]TokenKind{
	{TOK_OROR},
	{TOK_ANDAND},
	{TOK_EQ, TOK_NEQ, TOK_SEQ, TOK_SNEQ},
	{TOK_LT, TOK_LTEQ, TOK_GT, TOK_GTEQ},
	{TOK_PLUS, TOK_MINUS},
	{TOK_STAR, TOK_FSLASH, TOK_MOD},
}

func (p *Parser) parseBinaryOp(predLevel int) common.AstExpr {
	if predLevel == len(predTable) {
		return p.parseUnaryOp()
	}

	lhs := p.parseBinaryOp(predLevel + 1)

	for slices.Contains(predTable[predLevel], p.tok.Kind) {
		opKind := tokKindToOpKind[p.tok.Kind]
		p.next()

		rhs := p.parseBinaryOp(predLevel + 1)

		lhs = &common.AstBinaryOp{
			AstExprBase: common.AstExprBase{
				Span: report.SpanOver(lhs.GetSpan(), rhs.GetSpan()),
			},
			OpKind: opKind,
			Lhs:    lhs,
			Rhs:    rhs,
		}
	}

	return lhs
}

func (p *Parser) parseUnaryOp() common.AstExpr {
	startSpan := p.tok.Span

	var opKind common.AstOpKind
	switch p.tok.Kind {
	case TOK_PLUS:
		opKind = common.AOP_POS
	case TOK_MINUS:
		opKind = common.AOP_NEG
	case TOK_NOT:
		opKind = common.AOP_NOT
	default:
		return p.parseAtom()
	}

	p.next()

	operand := p.parseUnaryOp()

	return &common.AstUnaryOp{
		AstExprBase: common.AstExprBase{
			Span: report.SpanOver(startSpan, operand.GetSpan()),
		},
		OpKind:  opKind,
		Operand: operand,
	}
}

/* -------------------------------------------------------------------------- */

func (p *Parser) parseNewExpr() common.AstExpr {
	startSpan := p.tok.Span
	p.want(TOK_NEW)

	nameTok := p.wantAndGet(TOK_IDENT)

	p.want(TOK_LPAREN)
	args := p.parseArgs()
	endSpan := p.wantAndGet(TOK_RPAREN).Span

	return &common.AstNew{
		AstExprBase: common.AstExprBase{
			Span: report.SpanOver(startSpan, endSpan),
		},
		Ident: &common.IdentName{
			AstBase: common.AstBase{Span: nameTok.Span},
			Name:    nameTok.Value,
		},
		Args: args,
	}
}

func (p *Parser) parseTypeOfExpr() common.AstExpr {
	startSpan := p.tok.Span
	p.want(TOK_TYPEOF)

	operand := p.parseBinaryOp(0)

	return &common.AstTypeOf{
		AstExprBase: common.AstExprBase{
			Span: report.SpanOver(startSpan, operand.GetSpan()),
		},
		Operand: operand,
	}
}

/* -------------------------------------------------------------------------- */

func (p *Parser) parseArgs() (args []common.AstExpr) {
	if p.has(TOK_RPAREN) {
		return
	}

	for {
		args = append(args, p.parseExpr())

		if p.has(TOK_COMMA) {
			p.next()
		} else {
			break
		}
	}

	return
}

/* -------------------------------------------------------------------------- */

func (p *Parser) parseAtom() common.AstExpr {
	switch p.tok.Kind {
	case TOK_IDENT:
		return p.parseIdentExpr()
	case TOK_INTLIT:
		{
			n, err := strconv.ParseInt(p.tok.Value, 10, 64)
			if err != nil {
				p.error("integer value too large")
			}

			span := p.tok.Span
			p.next()

			return &common.AstIntLit{
				AstExprBase: common.AstExprBase{Span: span},
				Value:       n,
			}
		}
	case TOK_FLOATLIT:
		{
			n, err := strconv.ParseFloat(p.tok.Value, 64)
			if err != nil {
				p.error("float value out of range")
			}

			span := p.tok.Span
			p.next()

			return &common.AstFloatLit{
				AstExprBase: common.AstExprBase{Span: span},
				Value:       n,
			}
		}
	case TOK_STRLIT:
		{
			value := p.tok.Value
			span := p.tok.Span
			p.next()

			return &common.AstStrLit{
				AstExprBase: common.AstExprBase{Span: span},
				Value:       value,
			}
		}
	case TOK_BOOLLIT:
		{
			value := p.tok.Value[0] == 't'
			span := p.tok.Span
			p.next()

			return &common.AstBoolLit{
				AstExprBase: common.AstExprBase{Span: span},
				Value:       value,
			}
		}
	case TOK_NULL:
		{
			span := p.tok.Span
			p.next()

			return &common.AstNullLit{AstExprBase: common.AstExprBase{Span: span}}
		}
	case TOK_UNDEFINED:
		{
			span := p.tok.Span
			p.next()

			return &common.AstUndefinedLit{AstExprBase: common.AstExprBase{Span: span}}
		}
	case TOK_LPAREN:
		{
			p.next()

			subExpr := p.parseExpr()

			p.want(TOK_RPAREN)

			return subExpr
		}
	case TOK_LBRACKET:
		return p.parseArrayLit()
	case TOK_LBRACE:
		return p.parseObjectLit()
	default:
		p.reject()
		return nil
	}
}

// parseIdentExpr parses an identifier path with `.name` and `[expr]`
// segments, then a call if an argument list follows.
func (p *Parser) parseIdentExpr() common.AstExpr {
	nameTok := p.wantAndGet(TOK_IDENT)

	var path common.VarIdent = &common.IdentName{
		AstBase: common.AstBase{Span: nameTok.Span},
		Name:    nameTok.Value,
	}

	for {
		switch p.tok.Kind {
		case TOK_DOT:
			p.next()

			propTok := p.wantAndGet(TOK_IDENT)

			path = &common.IdentProperty{
				AstBase: common.AstBase{Span: report.SpanOver(path.GetSpan(), propTok.Span)},
				Base:    path,
				Name:    propTok.Value,
			}
		case TOK_LBRACKET:
			p.next()

			index := p.parseExpr()

			endSpan := p.wantAndGet(TOK_RBRACKET).Span

			path = &common.IdentIndex{
				AstBase: common.AstBase{Span: report.SpanOver(path.GetSpan(), endSpan)},
				Base:    path,
				Index:   index,
			}
		case TOK_LPAREN:
			p.next()

			args := p.parseArgs()

			endSpan := p.wantAndGet(TOK_RPAREN).Span

			return &common.AstCall{
				AstExprBase: common.AstExprBase{
					Span: report.SpanOver(path.GetSpan(), endSpan),
				},
				Ident: path,
				Args:  args,
			}
		default:
			return &common.AstVarExpr{
				AstExprBase: common.AstExprBase{Span: path.GetSpan()},
				Ident:       path,
			}
		}
	}
}

/* -------------------------------------------------------------------------- */

func (p *Parser) parseArrayLit() common.AstExpr {
	startSpan := p.wantAndGet(TOK_LBRACKET).Span

	var items []common.AstExpr
	if !p.has(TOK_RBRACKET) {
		for {
			items = append(items, p.parseExpr())

			if p.has(TOK_COMMA) {
				p.next()
			} else {
				break
			}
		}
	}

	endSpan := p.wantAndGet(TOK_RBRACKET).Span

	return &common.AstArrayLit{
		AstExprBase: common.AstExprBase{
			Span: report.SpanOver(startSpan, endSpan),
		},
		Items: items,
	}
}

func (p *Parser) parseObjectLit() common.AstExpr {
	startSpan := p.wantAndGet(TOK_LBRACE).Span

	var fields []common.ObjectLitField
	if !p.has(TOK_RBRACE) {
		for {
			keyTok := p.wantAndGet(TOK_IDENT)
			p.want(TOK_COLON)
			value := p.parseExpr()

			fields = append(fields, common.ObjectLitField{
				Name:  keyTok.Value,
				Value: value,
			})

			if p.has(TOK_COMMA) {
				p.next()
			} else {
				break
			}
		}
	}

	endSpan := p.wantAndGet(TOK_RBRACE).Span

	return &common.AstObjectLit{
		AstExprBase: common.AstExprBase{
			Span: report.SpanOver(startSpan, endSpan),
		},
		Fields: fields,
	}
}
