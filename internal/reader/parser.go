package reader

import (
	"cozenage/internal/value"
)

// Parser consumes a token stream and builds Value trees (R7RS "datums").
type Parser struct {
	lex     *Lexer
	lookhd  *Token
	lastErr error
}

// NewParser returns a Parser reading from src.
func NewParser(src string) *Parser {
	return &Parser{lex: NewLexer(src)}
}

func (p *Parser) peek() (Token, error) {
	if p.lookhd != nil {
		return *p.lookhd, nil
	}
	t, err := p.lex.Next()
	if err != nil {
		return Token{}, err
	}
	p.lookhd = &t
	return t, nil
}

func (p *Parser) next() (Token, error) {
	t, err := p.peek()
	if err != nil {
		return Token{}, err
	}
	p.lookhd = nil
	return t, nil
}

// ReadAll parses every top-level datum in the source, stopping at EOF.
func (p *Parser) ReadAll() ([]value.Value, error) {
	var out []value.Value
	for {
		v, err := p.ReadDatum()
		if err != nil {
			return out, err
		}
		if v == nil {
			return out, nil
		}
		out = append(out, v)
	}
}

// ReadDatum reads a single top-level datum, returning (nil, nil) at EOF.
func (p *Parser) ReadDatum() (value.Value, error) {
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	if t.Type == TokEOF {
		return nil, nil
	}
	return p.datum()
}

func (p *Parser) datum() (value.Value, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	switch t.Type {
	case TokEOF:
		return nil, newReadError("unexpected end of input", t.Line)
	case TokLParen:
		return p.list(t.Line)
	case TokRParen:
		return nil, newReadError("unexpected ')'", t.Line)
	case TokVecOpen:
		items, err := p.seqUntilClose(t.Line)
		if err != nil {
			return nil, err
		}
		return &value.Vector{Items: items}, nil
	case TokBytevecOpen:
		return p.bytevector(t.Line)
	case TokQuote:
		return p.wrap("quote", t.Line)
	case TokQuasiquote:
		return p.wrap("quasiquote", t.Line)
	case TokUnquote:
		return p.wrap("unquote", t.Line)
	case TokUnquoteSplicing:
		return p.wrap("unquote-splicing", t.Line)
	case TokString:
		return value.NewString(t.Text), nil
	case TokChar:
		return parseChar(t.Text, t.Line)
	case TokAtom:
		if t.Text == "#;" {
			// Datum comment: discard the next datum, then read another.
			if _, err := p.datum(); err != nil {
				return nil, err
			}
			return p.datum()
		}
		return parseAtom(t.Text, t.Line), nil
	default:
		return nil, newReadError("unrecognized token", t.Line)
	}
}

func (p *Parser) wrap(sym string, line int) (value.Value, error) {
	inner, err := p.datum()
	if err != nil {
		return nil, err
	}
	return value.Cons(value.Intern(sym), value.Cons(inner, value.Nil)), nil
}

func (p *Parser) list(line int) (value.Value, error) {
	var items []value.Value
	var tail value.Value = value.Nil
	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if t.Type == TokEOF {
			return nil, newReadError("unexpected end of input in list", line)
		}
		if t.Type == TokRParen {
			p.next()
			break
		}
		if t.Type == TokAtom && t.Text == "." {
			p.next()
			d, err := p.datum()
			if err != nil {
				return nil, err
			}
			tail = d
			closeT, err := p.next()
			if err != nil {
				return nil, err
			}
			if closeT.Type != TokRParen {
				return nil, newReadError("malformed dotted list", closeT.Line)
			}
			break
		}
		d, err := p.datum()
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	result := tail
	for i := len(items) - 1; i >= 0; i-- {
		result = value.Cons(items[i], result)
	}
	return result, nil
}

func (p *Parser) seqUntilClose(line int) ([]value.Value, error) {
	var items []value.Value
	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if t.Type == TokEOF {
			return nil, newReadError("unexpected end of input in vector", line)
		}
		if t.Type == TokRParen {
			p.next()
			return items, nil
		}
		d, err := p.datum()
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
}

func (p *Parser) bytevector(line int) (value.Value, error) {
	items, err := p.seqUntilClose(line)
	if err != nil {
		return nil, err
	}
	elems := make([]int64, len(items))
	for i, it := range items {
		n, ok := it.(value.Integer)
		if !ok {
			return nil, newReadError("bytevector elements must be exact integers", line)
		}
		elems[i] = int64(n)
	}
	return &value.Bytevector{Kind: value.U8, Elements: elems}, nil
}
