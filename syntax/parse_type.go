package syntax

import "minic/kinds"

// parseTypeLabel parses a base type followed by any number of postfix `[]`
// markers, which bind left-associatively.
func (p *Parser) parseTypeLabel() kinds.Kind {
	var kind kinds.Kind

	switch p.tok.Kind {
	case TOK_ANY:
		kind = kinds.GlobAnyKind
	case TOK_STRING:
		kind = kinds.GlobStringKind
	case TOK_NUMBER:
		kind = kinds.GlobNumberKind
	case TOK_NULL:
		kind = kinds.GlobNullKind
	case TOK_UNDEFINED:
		kind = kinds.GlobUndefinedKind
	default:
		p.reject()
		return nil
	}

	p.next()

	for p.has(TOK_LBRACKET) {
		p.next()
		p.want(TOK_RBRACKET)

		kind = &kinds.ArrayKind{ElemKind: kind}
	}

	return kind
}
