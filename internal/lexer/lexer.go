// Package lexer turns source text into a token stream. It is the external
// collaborator the parser consumes; nothing here feeds back into parsing
// decisions beyond the token kinds it produces.
package lexer

import (
	"fmt"
	"strconv"

	"github.com/lugli-lang/lugli/internal/token"
)

// Lexer is a single-pass byte scanner over a source buffer.
type Lexer struct {
	src  []byte
	idx  int
	ch   byte
	line int

	errors []string
}

// New creates a Lexer over src, positioned before the first byte.
func New(src []byte) *Lexer {
	l := &Lexer{src: src, idx: -1, line: 1}
	return l
}

// Errors returns the lexical errors collected during Scan, if any.
func (l *Lexer) Errors() []string { return l.errors }

func (l *Lexer) next() bool {
	if l.idx == len(l.src)-1 {
		return false
	}
	l.idx++
	l.ch = l.src[l.idx]
	return true
}

func (l *Lexer) peek() byte {
	if l.idx == len(l.src)-1 {
		return 0
	}
	return l.src[l.idx+1]
}

func (l *Lexer) peekTwo() byte {
	if l.idx >= len(l.src)-2 {
		return 0
	}
	return l.src[l.idx+2]
}

// Scan tokenizes the whole buffer and returns the token stream, terminated
// by a trailing EOF token. Lexical errors are recorded but do not stop the
// scan early, mirroring codecrafters/cmd/lexer.go's tolerant scanner.
func (l *Lexer) Scan() []token.Token {
	toks := make([]token.Token, 0, len(l.src)/2+1)

	for l.next() {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			// nothing
		case l.ch == '\n':
			l.line++
		case l.ch == '-' && l.peek() == '-':
			l.lineComment()
		case l.ch == '(':
			toks = append(toks, l.simple(token.LEFT_PAREN))
		case l.ch == ')':
			toks = append(toks, l.simple(token.RIGHT_PAREN))
		case l.ch == '{':
			toks = append(toks, l.simple(token.LEFT_BRACE))
		case l.ch == '}':
			toks = append(toks, l.simple(token.RIGHT_BRACE))
		case l.ch == '[':
			toks = append(toks, l.simple(token.LEFT_BRACKET))
		case l.ch == ']':
			toks = append(toks, l.simple(token.RIGHT_BRACKET))
		case l.ch == ',':
			toks = append(toks, l.simple(token.COMMA))
		case l.ch == '.':
			toks = append(toks, l.simple(token.DOT))
		case l.ch == ':':
			toks = append(toks, l.simple(token.COLON))
		case l.ch == '%':
			toks = append(toks, l.simple(token.PERCENT))
		case l.ch == '+':
			if l.peek() == '=' {
				toks = append(toks, l.two(token.PLUS_ASSIGN, "+="))
			} else if l.peek() == '+' {
				toks = append(toks, l.two(token.INCREMENT, "++"))
			} else {
				toks = append(toks, l.simple(token.PLUS))
			}
		case l.ch == '-':
			if l.peek() == '=' {
				toks = append(toks, l.two(token.MINUS_ASSIGN, "-="))
			} else if l.peek() == '-' {
				toks = append(toks, l.two(token.DECREMENT, "--"))
			} else {
				toks = append(toks, l.simple(token.MINUS))
			}
		case l.ch == '*':
			if l.peek() == '=' {
				toks = append(toks, l.two(token.MULTIPLY_ASSIGN, "*="))
			} else if l.peek() == '*' {
				toks = append(toks, l.two(token.POW, "**"))
			} else {
				toks = append(toks, l.simple(token.ASTERISK))
			}
		case l.ch == '/':
			if l.peek() == '=' {
				toks = append(toks, l.two(token.DIVIDE_ASSIGN, "/="))
			} else {
				toks = append(toks, l.simple(token.SLASH))
			}
		case l.ch == '=':
			if l.peek() == '=' {
				toks = append(toks, l.two(token.EQUALS, "=="))
			} else {
				toks = append(toks, l.simple(token.ASSIGN))
			}
		case l.ch == '!':
			if l.peek() == '=' {
				toks = append(toks, l.two(token.NOT_EQUALS, "!="))
			} else {
				toks = append(toks, l.simple(token.BANG))
			}
		case l.ch == '<':
			if l.peek() == '=' {
				toks = append(toks, l.two(token.LESS_THAN_OR_EQUALS, "<="))
			} else {
				toks = append(toks, l.simple(token.LESS_THAN))
			}
		case l.ch == '>':
			if l.peek() == '=' {
				toks = append(toks, l.two(token.GREATER_THAN_OR_EQUALS, ">="))
			} else {
				toks = append(toks, l.simple(token.GREATER_THAN))
			}
		case l.ch == '"':
			toks = append(toks, l.stringLiteral())
		case isDigit(l.ch):
			toks = append(toks, l.numberLiteral())
		case isAlpha(l.ch):
			toks = append(toks, l.identifierOrKeyword(&toks))
		default:
			l.errors = append(l.errors, fmt.Sprintf("[line %d] unexpected character: %q", l.line, l.ch))
		}
	}

	toks = append(toks, token.Token{Kind: token.EOF, Line: l.line})
	return toks
}

func (l *Lexer) simple(k token.Kind) token.Token {
	return token.Token{Kind: k, Lexeme: string(l.ch), Line: l.line}
}

func (l *Lexer) two(k token.Kind, lexeme string) token.Token {
	l.next()
	return token.Token{Kind: k, Lexeme: lexeme, Line: l.line}
}

func (l *Lexer) lineComment() {
	for l.peek() != '\n' && l.peek() != 0 {
		l.next()
	}
}

func (l *Lexer) stringLiteral() token.Token {
	line := l.line
	start := l.idx + 1
	for {
		if !l.next() {
			l.errors = append(l.errors, fmt.Sprintf("[line %d] unterminated string", line))
			return token.Token{Kind: token.STRING, Lexeme: string(l.src[start:l.idx]), Literal: string(l.src[start:l.idx]), Line: line}
		}
		if l.ch == '\n' {
			l.line++
		}
		if l.ch == '"' {
			break
		}
	}
	text := string(l.src[start:l.idx])
	return token.Token{Kind: token.STRING, Lexeme: text, Literal: text, Line: line}
}

func (l *Lexer) numberLiteral() token.Token {
	start := l.idx
	for isDigit(l.peek()) {
		l.next()
	}
	if l.peek() == '.' && isDigit(l.peekTwo()) {
		l.next()
		for isDigit(l.peek()) {
			l.next()
		}
	}
	lexeme := string(l.src[start : l.idx+1])
	f, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		l.errors = append(l.errors, fmt.Sprintf("[line %d] invalid number literal: %s", l.line, lexeme))
	}
	return token.Token{Kind: token.NUMBER, Lexeme: lexeme, Literal: strconv.FormatFloat(f, 'g', -1, 64), Line: l.line}
}

// identifierOrKeyword scans an identifier and folds the two-word "not in"
// operator into a single NOT_IN token by peeking at the already-appended
// output: if the previous word was "not" and this word is "in", collapse
// them.
func (l *Lexer) identifierOrKeyword(toks *[]token.Token) token.Token {
	start := l.idx
	for isAlphaNumeric(l.peek()) {
		l.next()
	}
	word := string(l.src[start : l.idx+1])

	if word == "not" {
		return token.Token{Kind: token.IDENTIFIER, Lexeme: "not", Line: l.line}
	}

	if word == "in" && len(*toks) > 0 {
		last := (*toks)[len(*toks)-1]
		if last.Kind == token.IDENTIFIER && last.Lexeme == "not" {
			*toks = (*toks)[:len(*toks)-1]
			return token.Token{Kind: token.NOT_IN, Lexeme: "not in", Line: l.line}
		}
	}

	if kind, ok := token.Keywords[word]; ok {
		return token.Token{Kind: kind, Lexeme: word, Line: l.line}
	}
	return token.Token{Kind: token.IDENTIFIER, Lexeme: word, Line: l.line}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }
