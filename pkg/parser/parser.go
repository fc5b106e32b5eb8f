package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/corvid-labs/tableau/pkg/diag"
	"github.com/corvid-labs/tableau/pkg/formula"
)

// Parser turns a character stream into a formula.Formula per the grammar
// documented in the package comment. A Parser reads exactly one formula
// expression; a trailing newline or EOF after the expression is expected and
// consumed, but anything else is an unexpected-token error.
type Parser struct {
	lex *lexer
}

// New returns a Parser reading from r.
func New(r *bufio.Reader) *Parser {
	return &Parser{lex: newLexer(r)}
}

// Parse reads a single LTL expression from s and returns its AST.
func Parse(s string) (formula.Formula, error) {
	p := New(bufio.NewReader(strings.NewReader(s)))
	return p.Parse()
}

// Parse consumes tokens from the Parser's reader and returns the resulting
// formula. It fails with a descriptive error on an unexpected prefix token
// or a missing matching ')'.
func (p *Parser) Parse() (formula.Formula, error) {
	f, err := p.expr()
	if err != nil {
		return nil, err
	}
	tok, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokEOF, tokNewline:
		return f, nil
	default:
		return nil, fmt.Errorf("%w: trailing %s at offset %d", diag.ErrUnexpectedToken, tok, tok.offset)
	}
}

// expr := prefix infix*
func (p *Parser) expr() (formula.Formula, error) {
	left, err := p.prefix()
	if err != nil {
		return nil, err
	}
	return p.infix(left)
}

// prefix := Var | '!' expr | 'X' expr | 'G' expr | 'F' expr | '(' expr ')'
func (p *Parser) prefix() (formula.Formula, error) {
	tok, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokIdent:
		return formula.Var(tok.text), nil
	case tokNot:
		child, err := p.expr()
		if err != nil {
			return nil, err
		}
		return formula.Neg(child), nil
	case tokNext:
		child, err := p.expr()
		if err != nil {
			return nil, err
		}
		return formula.Next(child), nil
	case tokAlways:
		child, err := p.expr()
		if err != nil {
			return nil, err
		}
		return formula.Always(child), nil
	case tokEventually:
		child, err := p.expr()
		if err != nil {
			return nil, err
		}
		return formula.Eventually(child), nil
	case tokLParen:
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		close, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		if close.kind != tokRParen {
			return nil, fmt.Errorf("%w: expected ')' at offset %d, found %s", diag.ErrMismatchedParen, close.offset, close)
		}
		return inner, nil
	case tokEOF:
		return nil, fmt.Errorf("%w: unexpected end of input at offset %d", diag.ErrUnexpectedToken, tok.offset)
	default:
		return nil, fmt.Errorf("%w: unexpected %s at offset %d", diag.ErrUnexpectedToken, tok, tok.offset)
	}
}

// infix := ('/\' | '\/' | '->' | 'U') expr
//
// Binary operators are strictly right-associative: seeing an infix operator
// greedily consumes a full expr as its right operand, which may itself
// contain further infix operators.
func (p *Parser) infix(left formula.Formula) (formula.Formula, error) {
	tok, err := p.lex.peek()
	if err != nil {
		return nil, err
	}
	var combine func(a, b formula.Formula) formula.Formula
	switch tok.kind {
	case tokAnd:
		combine = formula.And
	case tokOr:
		combine = formula.Or
	case tokImpl:
		combine = formula.Impl
	case tokUntil:
		combine = formula.Until
	default:
		return left, nil
	}
	if _, err := p.lex.next(); err != nil {
		return nil, err
	}
	right, err := p.expr()
	if err != nil {
		return nil, err
	}
	return combine(left, right), nil
}

// ReadLines reads newline-delimited LTL formulas from r, one per line,
// skipping blank lines, until EOF. It is used by callers loading a query
// batch (one formula per line) rather than a single expression.
func ReadLines(r io.Reader) ([]formula.Formula, error) {
	scanner := bufio.NewScanner(r)
	var out []formula.Formula
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		f, err := Parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		out = append(out, f)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s", diag.ErrFileOpen, err)
	}
	return out, nil
}
