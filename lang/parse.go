package lang

import "fmt"

// parser is a recursive-descent reader over a flat token stream, grounded
// on the teacher's hand-written parser struct in parse.go/doc.go (pos
// cursor over a token slice, one read* method per grammar production)
// rather than on the generated-grammar files the teacher's package also
// carries (see DESIGN.md).
type parser struct {
	tokens []Token
	pos    int
}

// Parse tokenizes and reads every top-level form in src, returning them in
// source order.
func Parse(src string) ([]Value, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}

	return ParseTokens(tokens)
}

// ParseTokens reads every top-level form from a token stream already
// produced by Tokenize. Comment tokens are dropped before reading begins.
func ParseTokens(tokens []Token) ([]Value, error) {
	p := &parser{tokens: filterParseTokens(tokens)}

	var forms []Value

	for !p.atEnd() {
		form, err := p.readForm()
		if err != nil {
			return nil, err
		}

		forms = append(forms, form)
	}

	return forms, nil
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) peek() (Token, bool) {
	if p.atEnd() {
		return Token{}, false
	}

	return p.tokens[p.pos], true
}

func (p *parser) next() (Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}

	return tok, ok
}

func (p *parser) lastPosition() Position {
	if len(p.tokens) == 0 {
		return Position{Line: 1, Col: 1}
	}

	return p.tokens[len(p.tokens)-1].End
}

// readForm reads one form starting at the current token: an atom, a
// collection, or a reader-macro-prefixed form.
func (p *parser) readForm() (Value, error) {
	tok, ok := p.next()
	if !ok {
		return Nil, parserError(p.lastPosition(), "unexpected end of input")
	}

	switch tok.Kind {
	case TokenLParen:
		return p.readSeq(TokenRParen, KindList)
	case TokenLBracket:
		return p.readSeq(TokenRBracket, KindVector)
	case TokenLBrace:
		return p.readMap()
	case TokenRParen, TokenRBracket, TokenRBrace:
		return Nil, parserError(tok.Start, "unexpected %s", tok.Literal).WithToken(tok)
	case TokenQuote:
		return p.readWrapped("quote")
	case TokenQuasiquote:
		return p.readWrapped("quasiquote")
	case TokenUnquote:
		return p.readWrapped("unquote")
	case TokenUnquoteSplicing:
		return p.readWrapped("unquote-splicing")
	case TokenString:
		return NewString(tok.Literal), nil
	case TokenNumber:
		return p.readNumber(tok)
	case TokenKeyword:
		return NewKeyword(tok.Literal), nil
	case TokenSymbol:
		return p.readSymbolOrLiteral(tok), nil
	default:
		return Nil, parserError(tok.Start, "unexpected token %s", tok.Kind).WithToken(tok)
	}
}

// readWrapped reads the single form following a reader macro character and
// wraps it as (sym form), per spec.md §4.2's reader-macro expansion table.
func (p *parser) readWrapped(sym string) (Value, error) {
	if p.atEnd() {
		return Nil, parserError(p.lastPosition(), "expected a form after '%s'", sym)
	}

	inner, err := p.readForm()
	if err != nil {
		return Nil, err
	}

	return NewList(NewSymbol(sym), inner), nil
}

// readSeq reads elements until close is seen, consuming close, and returns
// a List or Vector value per kind.
func (p *parser) readSeq(close TokenKind, kind Kind) (Value, error) {
	var items []Value

	for {
		tok, ok := p.peek()
		if !ok {
			return Nil, parserError(p.lastPosition(), "unterminated %s: missing %s", kind, close)
		}

		if tok.Kind == close {
			p.pos++

			break
		}

		item, err := p.readForm()
		if err != nil {
			return Nil, err
		}

		items = append(items, item)
	}

	if kind == KindVector {
		return NewVector(items...), nil
	}

	return NewList(items...), nil
}

// readMap reads { ... }, requiring an even number of forms (key/value
// pairs), per spec.md §4.2.
func (p *parser) readMap() (Value, error) {
	var forms []Value

	for {
		tok, ok := p.peek()
		if !ok {
			return Nil, parserError(p.lastPosition(), "unterminated map: missing }")
		}

		if tok.Kind == TokenRBrace {
			p.pos++

			break
		}

		form, err := p.readForm()
		if err != nil {
			return Nil, err
		}

		forms = append(forms, form)
	}

	if len(forms)%2 != 0 {
		return Nil, parserError(p.lastPosition(), "map literal requires an even number of forms, got %d", len(forms))
	}

	entries := make([]MapEntry, 0, len(forms)/2)

	for i := 0; i < len(forms); i += 2 {
		entries = append(entries, MapEntry{Key: forms[i], Val: forms[i+1]})
	}

	return NewMap(entries...), nil
}

// readNumber converts a Number token's lexeme to a float64. The tokenizer
// already rejected malformed lexemes, so this only parses well-formed
// input.
func (p *parser) readNumber(tok Token) (Value, error) {
	var f float64
	if _, err := fmt.Sscanf(tok.Literal, "%g", &f); err != nil {
		return Nil, parserError(tok.Start, "malformed number %q", tok.Literal).WithToken(tok).Wrap(err)
	}

	return NewNumber(f), nil
}

// readSymbolOrLiteral reinterprets the literal symbols true/false/nil as
// their dedicated Kinds; every other Symbol token becomes a Symbol value.
func (p *parser) readSymbolOrLiteral(tok Token) Value {
	switch tok.Literal {
	case "true":
		return True
	case "false":
		return False
	case "nil":
		return Nil
	default:
		return NewSymbol(tok.Literal)
	}
}
