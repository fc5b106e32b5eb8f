package parser

import (
	"bufio"
	"fmt"
	"io"
	"unicode"

	"github.com/corvid-labs/tableau/pkg/diag"
)

// lexer tokenizes an LTL expression from a buffered reader, holding one
// token of lookahead as explicit state rather than a package-level pushback
// variable -- an explicit buffered reader plus parser-held lookahead keeps
// the lexer reentrant.
type lexer struct {
	r      *bufio.Reader
	offset int
	peeked *token
}

func newLexer(r *bufio.Reader) *lexer {
	return &lexer{r: r}
}

// peek returns the next token without consuming it.
func (l *lexer) peek() (token, error) {
	if l.peeked == nil {
		tok, err := l.scan()
		if err != nil {
			return token{}, err
		}
		l.peeked = &tok
	}
	return *l.peeked, nil
}

// next consumes and returns the next token.
func (l *lexer) next() (token, error) {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil
		return tok, nil
	}
	return l.scan()
}

func (l *lexer) readRune() (rune, error) {
	r, size, err := l.r.ReadRune()
	l.offset += size
	return r, err
}

func (l *lexer) unreadRune(size int) {
	l.r.UnreadRune()
	l.offset -= size
}

// scan reads and returns the next token, skipping non-newline whitespace.
func (l *lexer) scan() (token, error) {
	for {
		r, err := l.readRune()
		if err == io.EOF {
			return token{kind: tokEOF, offset: l.offset}, nil
		}
		if err != nil {
			return token{}, fmt.Errorf("%w: read error at offset %d: %s", diag.ErrMalformedToken, l.offset, err)
		}
		if r == '\n' {
			return token{kind: tokNewline, offset: l.offset - 1}, nil
		}
		if unicode.IsSpace(r) {
			continue
		}
		start := l.offset - runeLen(r)
		switch r {
		case '(':
			return token{kind: tokLParen, offset: start}, nil
		case ')':
			return token{kind: tokRParen, offset: start}, nil
		case '!':
			return token{kind: tokNot, offset: start}, nil
		case 'X':
			return token{kind: tokNext, offset: start}, nil
		case 'G':
			return token{kind: tokAlways, offset: start}, nil
		case 'F':
			return token{kind: tokEventually, offset: start}, nil
		case 'U':
			return token{kind: tokUntil, offset: start}, nil
		case '/':
			return l.expectTwoRune('\\', tokAnd, "/\\", start)
		case '\\':
			return l.expectTwoRune('/', tokOr, "\\/", start)
		case '-':
			return l.expectTwoRune('>', tokImpl, "->", start)
		default:
			if unicode.IsDigit(r) {
				return l.scanNum(r, start)
			}
			if r >= 'a' && r <= 'z' {
				return l.scanIdent(r, start)
			}
			return token{}, fmt.Errorf("%w: unexpected character %q at offset %d", diag.ErrMalformedToken, r, start)
		}
	}
}

func (l *lexer) expectTwoRune(want rune, kind tokenKind, lexeme string, start int) (token, error) {
	r, err := l.readRune()
	if err != nil || r != want {
		return token{}, fmt.Errorf("%w: expected %q to complete %q at offset %d", diag.ErrMalformedToken, want, lexeme, start)
	}
	return token{kind: kind, text: lexeme, offset: start}, nil
}

func (l *lexer) scanNum(first rune, start int) (token, error) {
	text := string(first)
	for {
		r, err := l.readRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return token{}, fmt.Errorf("%w: read error at offset %d: %s", diag.ErrMalformedToken, l.offset, err)
		}
		if !unicode.IsDigit(r) {
			l.unreadRune(runeLen(r))
			break
		}
		text += string(r)
	}
	return token{kind: tokNum, text: text, offset: start}, nil
}

func (l *lexer) scanIdent(first rune, start int) (token, error) {
	text := string(first)
	for {
		r, err := l.readRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return token{}, fmt.Errorf("%w: read error at offset %d: %s", diag.ErrMalformedToken, l.offset, err)
		}
		if r < 'a' || r > 'z' {
			l.unreadRune(runeLen(r))
			break
		}
		text += string(r)
	}
	return token{kind: tokIdent, text: text, offset: start}, nil
}

func runeLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}
