// Package exprparse is the recursive-descent parser over exprlex tokens
// (SPEC_FULL.md §4.2). Its shape — a parser holding the current token,
// with an advance helper and errorf building spanned errors
// — is the same idiom as the teacher's internal/parserc event parser and
// robfig/soy's parse.go, adapted from a token stream of bytes to a token
// stream of lexed expression tokens.
package exprparse

import (
	"github.com/willabides/yamltmpl/exprast"
	"github.com/willabides/yamltmpl/exprlex"
	"github.com/willabides/yamltmpl/source"
)

// Parse parses the expression beginning at src (which must start with
// "${{") and returns the parsed Statement along with the number of
// bytes of src consumed, including the closing "}}".
func Parse(filename string, origin source.Pos, src []byte) (*exprast.Statement, int, error) {
	p := &parser{lex: exprlex.New(filename, origin, src)}
	if err := p.advance(); err != nil {
		return nil, 0, err
	}
	if p.tok.Kind != exprlex.Start {
		return nil, 0, p.errorf("expected '${{'")
	}
	if err := p.advance(); err != nil {
		return nil, 0, err
	}

	stmt, err := p.statement()
	if err != nil {
		return nil, 0, err
	}

	if p.tok.Kind != exprlex.End {
		return nil, 0, p.errorf("expected '}}' but found %s", p.tok.Kind)
	}
	return stmt, p.lex.Consumed(), nil
}

type parser struct {
	lex *exprlex.Lexer
	tok exprlex.Token
}

func (p *parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return source.Errorf(p.tok.Span, format, args...)
}

func (p *parser) statement() (*exprast.Statement, error) {
	start := p.tok.Span

	if p.tok.Kind == exprlex.Ident && p.tok.Text == "if" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		cond, err := p.expr()
		if err != nil {
			return nil, err
		}
		return &exprast.Statement{Kind: exprast.IfStmt, Span: start.Cover(cond.Span), Condition: cond}, nil
	}

	if p.tok.Kind == exprlex.Ident && p.tok.Text == "for" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		bindings, err := p.varlist()
		if err != nil {
			return nil, err
		}
		if !(p.tok.Kind == exprlex.Ident && p.tok.Text == "in") {
			return nil, p.errorf("expected 'in' after for-loop bindings")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		iter, err := p.expr()
		if err != nil {
			return nil, err
		}
		return &exprast.Statement{Kind: exprast.ForStmt, Span: start.Cover(iter.Span), Bindings: bindings, Iterable: iter}, nil
	}

	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &exprast.Statement{Kind: exprast.ExprStmt, Span: e.Span, Expr: e}, nil
}

func (p *parser) varlist() ([]exprast.VarName, error) {
	if p.tok.Kind != exprlex.Variable {
		return nil, p.errorf("expected a variable name")
	}
	names := []exprast.VarName{exprast.VarName(p.tok.Text)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	for p.tok.Kind == exprlex.Comma {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.Kind != exprlex.Variable {
			return nil, p.errorf("expected a variable name after ','")
		}
		names = append(names, exprast.VarName(p.tok.Text))
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return names, nil
}

func (p *parser) expr() (*exprast.Expr, error) {
	return p.compare()
}

func (p *parser) compare() (*exprast.Expr, error) {
	left, err := p.atom()
	if err != nil {
		return nil, err
	}
	for p.tok.Kind == exprlex.Eq || p.tok.Kind == exprlex.Ne {
		kind := exprast.Eq
		if p.tok.Kind == exprlex.Ne {
			kind = exprast.Ne
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.atom()
		if err != nil {
			return nil, err
		}
		left = &exprast.Expr{Kind: kind, Span: left.Span.Cover(right.Span), Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) atom() (*exprast.Expr, error) {
	switch p.tok.Kind {
	case exprlex.String:
		e := &exprast.Expr{Kind: exprast.Str, Span: p.tok.Span, Text: p.tok.Text}
		return e, p.advance()
	case exprlex.Integer:
		e := &exprast.Expr{Kind: exprast.Int, Span: p.tok.Span, IntVal: p.tok.Int}
		return e, p.advance()
	case exprlex.Real:
		e := &exprast.Expr{Kind: exprast.Real, Span: p.tok.Span, Text: p.tok.Text}
		return e, p.advance()
	case exprlex.Ident:
		switch p.tok.Text {
		case "inline":
			e := &exprast.Expr{Kind: exprast.Inline, Span: p.tok.Span}
			return e, p.advance()
		case "drop":
			e := &exprast.Expr{Kind: exprast.Drop, Span: p.tok.Span}
			return e, p.advance()
		case "true":
			e := &exprast.Expr{Kind: exprast.True, Span: p.tok.Span}
			return e, p.advance()
		case "false":
			e := &exprast.Expr{Kind: exprast.False, Span: p.tok.Span}
			return e, p.advance()
		default:
			return nil, p.errorf("unexpected identifier %q", p.tok.Text)
		}
	case exprlex.Variable:
		span := p.tok.Span
		name := exprast.VarName(p.tok.Text)
		if err := p.advance(); err != nil {
			return nil, err
		}
		q := &exprast.Query{Kind: exprast.Var, Span: span, Name: name}
		return &exprast.Expr{Kind: exprast.QueryExpr, Span: span, Query: q}, nil
	case exprlex.Dot:
		return p.query()
	default:
		return nil, p.errorf("unexpected token %s", p.tok.Kind)
	}
}

// query parses the root-anchored query grammar:
//
//	query    := "." (subquery ("." subquery)*)?
//	subquery := Ident | "[" expr "]"
func (p *parser) query() (*exprast.Expr, error) {
	start := p.tok.Span
	if err := p.advance(); err != nil { // consume '.'
		return nil, err
	}
	q := &exprast.Query{Kind: exprast.Root, Span: start}
	end := start
	for {
		switch p.tok.Kind {
		case exprlex.Ident:
			idxSpan := p.tok.Span
			nameExpr := &exprast.Expr{Kind: exprast.Str, Span: idxSpan, Text: p.tok.Text}
			q = &exprast.Query{Kind: exprast.Index, Span: start.Cover(idxSpan), Object: q, Idx: nameExpr}
			end = idxSpan
			if err := p.advance(); err != nil {
				return nil, err
			}
		case exprlex.LBracket:
			if err := p.advance(); err != nil {
				return nil, err
			}
			idxExpr, err := p.expr()
			if err != nil {
				return nil, err
			}
			if p.tok.Kind != exprlex.RBracket {
				return nil, p.errorf("expected ']' but found %s", p.tok.Kind)
			}
			end = p.tok.Span
			q = &exprast.Query{Kind: exprast.Index, Span: start.Cover(end), Object: q, Idx: idxExpr}
			if err := p.advance(); err != nil {
				return nil, err
			}
		default:
			return &exprast.Expr{Kind: exprast.QueryExpr, Span: start.Cover(end), Query: q}, nil
		}
		if p.tok.Kind == exprlex.Dot {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		return &exprast.Expr{Kind: exprast.QueryExpr, Span: start.Cover(end), Query: q}, nil
	}
}
