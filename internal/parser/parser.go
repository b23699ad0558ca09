// Package parser implements a Pratt (precedence-climbing) parser: a static
// per-token binding-power table drives a loop that repeatedly tries a
// postfix form, then an infix form, at each token whose binding power
// exceeds the current precedence floor.
//
// The cursor shape (current/peek two-token lookahead, expect-and-read
// helpers, match/check/advance) follows codecrafters/cmd/parser.go; the
// precedence ladder and the postfix/infix split are ported from the
// reference Rust implementation's Pratt parser.
package parser

import (
	"fmt"

	"github.com/lugli-lang/lugli/internal/ast"
	"github.com/lugli-lang/lugli/internal/token"
)

// precedence is the binding-power ladder, lowest to highest.
type precedence int

const (
	lowest precedence = iota
	statement
	assign
	plusAssign
	minusAssign
	multiplyAssign
	divideAssign
	increment
	decrement
	andOr
	lessThanGreaterThan
	equalsPrec
	sum
	product
	powPrec
	modulo
	prefixPrec
	call
)

func precedenceOf(k token.Kind) precedence {
	switch k {
	case token.ASTERISK, token.SLASH:
		return product
	case token.PLUS, token.MINUS:
		return sum
	case token.PERCENT:
		return modulo
	case token.POW:
		return powPrec
	case token.EQUALS, token.NOT_EQUALS:
		return equalsPrec
	case token.AND, token.OR, token.IN, token.NOT_IN:
		return andOr
	case token.ASSIGN:
		return assign
	case token.PLUS_ASSIGN:
		return plusAssign
	case token.MINUS_ASSIGN:
		return minusAssign
	case token.MULTIPLY_ASSIGN:
		return multiplyAssign
	case token.DIVIDE_ASSIGN:
		return divideAssign
	case token.INCREMENT:
		return increment
	case token.DECREMENT:
		return decrement
	case token.LESS_THAN, token.GREATER_THAN, token.LESS_THAN_OR_EQUALS, token.GREATER_THAN_OR_EQUALS:
		return lessThanGreaterThan
	case token.LEFT_PAREN, token.DOT, token.LEFT_BRACKET:
		return call
	case token.LEFT_BRACE:
		return statement
	default:
		return lowest
	}
}

func opOf(k token.Kind) ast.Op {
	switch k {
	case token.PLUS, token.PLUS_ASSIGN, token.INCREMENT:
		return ast.Add
	case token.MINUS, token.MINUS_ASSIGN, token.DECREMENT:
		return ast.Subtract
	case token.ASTERISK, token.MULTIPLY_ASSIGN:
		return ast.Multiply
	case token.SLASH, token.DIVIDE_ASSIGN:
		return ast.Divide
	case token.PERCENT:
		return ast.Modulo
	case token.POW:
		return ast.Pow
	case token.EQUALS:
		return ast.Equals
	case token.NOT_EQUALS:
		return ast.NotEquals
	case token.LESS_THAN:
		return ast.LessThan
	case token.LESS_THAN_OR_EQUALS:
		return ast.LessThanOrEquals
	case token.GREATER_THAN:
		return ast.GreaterThan
	case token.GREATER_THAN_OR_EQUALS:
		return ast.GreaterThanOrEquals
	case token.AND:
		return ast.And
	case token.OR:
		return ast.Or
	case token.IN:
		return ast.In
	case token.NOT_IN:
		return ast.NotIn
	case token.BANG:
		return ast.Bang
	}
	panic(fmt.Sprintf("unreachable: no Op for token kind %s", k))
}

// Error is returned for both malformed and premature-EOF input. The parser
// is total: it never emits a partial Program on error.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

func unexpectedToken(tok token.Token) error {
	return &Error{fmt.Sprintf("[line %d] unexpected token %s", tok.Line, tok.Kind)}
}

func unexpectedTokenExpected(got token.Token, want token.Kind) error {
	return &Error{fmt.Sprintf("[line %d] unexpected token %s, expected %s", got.Line, got.Kind, want)}
}

// Parser is a two-token-lookahead recursive-descent/Pratt hybrid: statement
// dispatch is a direct switch on the current token kind; expression parsing
// climbs precedence via parseExpression's postfix/infix loop.
type Parser struct {
	toks []token.Token
	pos  int

	current token.Token
	peek    token.Token
}

// New constructs a Parser over a finished token stream (as produced by
// lexer.Scan) and primes the two-token lookahead.
func New(toks []token.Token) *Parser {
	p := &Parser{toks: toks}
	p.read()
	p.read()
	return p
}

// Parse consumes the whole token stream and returns the resulting Program,
// or the first parse error encountered.
func Parse(toks []token.Token) (*ast.Program, error) {
	p := New(toks)
	prog := &ast.Program{}
	for !p.currentIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}

// ParseExpression parses a single expression from the stream rather than a
// whole program. The CLI does not call it.
func ParseExpression(toks []token.Token) (ast.Expression, error) {
	p := New(toks)
	return p.parseExpression(lowest)
}

func (p *Parser) read() {
	p.current = p.peek
	if p.pos < len(p.toks) {
		p.peek = p.toks[p.pos]
		p.pos++
	} else {
		p.peek = token.Token{Kind: token.EOF}
	}
}

func (p *Parser) currentIs(k token.Kind) bool { return p.current.Kind == k }

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if !p.currentIs(k) {
		return token.Token{}, unexpectedTokenExpected(p.current, k)
	}
	tok := p.current
	p.read()
	return tok, nil
}

func (p *Parser) expectIdentifier() (string, error) {
	tok, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return "", err
	}
	return tok.Lexeme, nil
}

// --------------- Statements --------------- //

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.current.Kind {
	case token.FN:
		return p.parseFunctionDecl()
	case token.STRUCT:
		return p.parseStructDecl()
	case token.CREATE:
		return p.parseCreateDecl()
	case token.CONST:
		return p.parseConstDecl()
	case token.IF:
		return p.parseIf()
	case token.FOR:
		return p.parseFor()
	case token.WHILE:
		return p.parseWhile()
	case token.LOOP:
		return p.parseLoop()
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		p.read()
		return &ast.Break{}, nil
	case token.CONTINUE:
		p.read()
		return &ast.Continue{}, nil
	default:
		expr, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Expr: expr}, nil
	}
}

func (p *Parser) parseBlock() ([]ast.Statement, error) {
	if _, err := p.expect(token.LEFT_BRACE); err != nil {
		return nil, err
	}
	var body []ast.Statement
	for !p.currentIs(token.RIGHT_BRACE) && !p.currentIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	if _, err := p.expect(token.RIGHT_BRACE); err != nil {
		return nil, err
	}
	return body, nil
}

func (p *Parser) parseCreateDecl() (ast.Statement, error) {
	if _, err := p.expect(token.CREATE); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	var initial ast.Expression
	if p.currentIs(token.ASSIGN) {
		p.read()
		initial, err = p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
	}
	return &ast.CreateDecl{Name: name, Initial: initial}, nil
}

func (p *Parser) parseConstDecl() (ast.Statement, error) {
	if _, err := p.expect(token.CONST); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	initial, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	return &ast.ConstDecl{Name: name, Initial: initial}, nil
}

func (p *Parser) parseParams() ([]ast.Parameter, error) {
	if _, err := p.expect(token.LEFT_PAREN); err != nil {
		return nil, err
	}
	var params []ast.Parameter
	for !p.currentIs(token.RIGHT_PAREN) {
		if p.currentIs(token.COMMA) {
			p.read()
		}
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		var initial ast.Expression
		if p.currentIs(token.ASSIGN) {
			p.read()
			initial, err = p.parseExpression(lowest)
			if err != nil {
				return nil, err
			}
		}
		params = append(params, ast.Parameter{Name: name, Initial: initial})
	}
	if _, err := p.expect(token.RIGHT_PAREN); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseFunctionDecl() (ast.Statement, error) {
	if _, err := p.expect(token.FN); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{Name: name, Params: params, Body: body}, nil
}

func (p *Parser) parseStructDecl() (ast.Statement, error) {
	if _, err := p.expect(token.STRUCT); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LEFT_BRACE); err != nil {
		return nil, err
	}

	var fields []ast.Parameter
	for !p.currentIs(token.RIGHT_BRACE) {
		if p.currentIs(token.FN) {
			decl, err := p.parseFunctionDecl()
			if err != nil {
				return nil, err
			}
			fn := decl.(*ast.FunctionDecl)
			closure := &ast.Closure{Params: fn.Params, Body: fn.Body}
			fields = append(fields, ast.Parameter{Name: fn.Name, Initial: closure})
			continue
		}

		fieldName, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}

		if p.currentIs(token.ASSIGN) {
			p.read()
			initial, err := p.parseExpression(lowest)
			if err != nil {
				return nil, err
			}
			fields = append(fields, ast.Parameter{Name: fieldName, Initial: initial})
		} else {
			fields = append(fields, ast.Parameter{Name: fieldName})
		}
	}

	if _, err := p.expect(token.RIGHT_BRACE); err != nil {
		return nil, err
	}
	return &ast.StructDecl{Name: name, Fields: fields}, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	if _, err := p.expect(token.IF); err != nil {
		return nil, err
	}

	condition, err := p.parseParenthesizableCondition()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elifs []ast.ConditionBlock
	for p.currentIs(token.ELIF) {
		p.read()
		cond, err := p.parseParenthesizableCondition()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		elifs = append(elifs, ast.ConditionBlock{Condition: cond, Then: body})
	}

	var elseBody []ast.Statement
	if p.currentIs(token.ELSE) {
		p.read()
		elseBody, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}

	return &ast.If{
		Condition: ast.ConditionBlock{Condition: condition, Then: then},
		ElseIfs:   elifs,
		Else:      elseBody,
	}, nil
}

// parseParenthesizableCondition parses `(expr)` or a bare expression at
// statement precedence — used by if/elif/while so that the condition
// doesn't greedily swallow the following `{` as a struct literal.
func (p *Parser) parseParenthesizableCondition() (ast.Expression, error) {
	if p.currentIs(token.LEFT_PAREN) {
		p.read()
		cond, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RIGHT_PAREN); err != nil {
			return nil, err
		}
		return cond, nil
	}
	return p.parseExpression(statement)
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	if _, err := p.expect(token.WHILE); err != nil {
		return nil, err
	}
	cond, err := p.parseParenthesizableCondition()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{Condition: ast.ConditionBlock{Condition: cond, Then: then}}, nil
}

func (p *Parser) parseLoop() (ast.Statement, error) {
	if _, err := p.expect(token.LOOP); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Loop{Body: body}, nil
}

func (p *Parser) parseFor() (ast.Statement, error) {
	if _, err := p.expect(token.FOR); err != nil {
		return nil, err
	}

	var index, value string
	if p.currentIs(token.LEFT_PAREN) {
		p.read()
		var err error
		index, err = p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COMMA); err != nil {
			return nil, err
		}
		value, err = p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RIGHT_PAREN); err != nil {
			return nil, err
		}
	} else {
		var err error
		value, err = p.expectIdentifier()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.IN); err != nil {
		return nil, err
	}

	iterable, err := p.parseExpression(statement)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.For{Value: value, Index: index, Iterable: iterable, Body: body}, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	if _, err := p.expect(token.RETURN); err != nil {
		return nil, err
	}
	if p.currentIs(token.RIGHT_BRACE) || p.currentIs(token.EOF) {
		return &ast.Return{Value: &ast.Null{}}, nil
	}
	value, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	return &ast.Return{Value: value}, nil
}

// --------------- Expressions --------------- //

func (p *Parser) parseExpression(prec precedence) (ast.Expression, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for !p.currentIs(token.EOF) && prec < precedenceOf(p.current.Kind) {
		if postfix, err, ok := p.tryParsePostfix(left); ok {
			if err != nil {
				return nil, err
			}
			left = postfix
			continue
		}
		if infix, err, ok := p.tryParseInfix(left); ok {
			if err != nil {
				return nil, err
			}
			left = infix
			continue
		}
		break
	}

	return left, nil
}

func (p *Parser) parsePrefix() (ast.Expression, error) {
	switch p.current.Kind {
	case token.STRING:
		s := p.current.Literal
		p.read()
		return &ast.String{Value: s}, nil
	case token.NULL:
		p.read()
		return &ast.Null{}, nil
	case token.NUMBER:
		tok := p.current
		p.read()
		var n float64
		fmt.Sscanf(tok.Literal, "%g", &n)
		return &ast.Number{Value: n}, nil
	case token.TRUE:
		p.read()
		return &ast.Bool{Value: true}, nil
	case token.FALSE:
		p.read()
		return &ast.Bool{Value: false}, nil
	case token.IDENTIFIER:
		name := p.current.Lexeme
		p.read()
		return &ast.Identifier{Name: name}, nil
	case token.FN:
		decl, err := p.parseFunctionDeclAnonymous()
		if err != nil {
			return nil, err
		}
		return decl, nil
	case token.MINUS, token.BANG:
		opTok := p.current
		p.read()
		right, err := p.parseExpression(prefixPrec)
		if err != nil {
			return nil, err
		}
		return &ast.Prefix{Op: opOf(opTok.Kind), Right: right}, nil
	case token.LEFT_BRACKET:
		p.read()
		var items []ast.Expression
		for !p.currentIs(token.RIGHT_BRACKET) {
			item, err := p.parseExpression(lowest)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			if p.currentIs(token.COMMA) {
				p.read()
			}
		}
		if _, err := p.expect(token.RIGHT_BRACKET); err != nil {
			return nil, err
		}
		return &ast.List{Items: items}, nil
	case token.LEFT_PAREN:
		// Grouping: parenthesized expressions share Call-level binding so
		// postfix operators on the result (e.g. `(a)(b)`) still apply.
		p.read()
		inner, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RIGHT_PAREN); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, unexpectedToken(p.current)
	}
}

// parseFunctionDeclAnonymous parses `fn (params) { body }` as a Closure
// expression — used for `fn` appearing in expression position.
func (p *Parser) parseFunctionDeclAnonymous() (ast.Expression, error) {
	if _, err := p.expect(token.FN); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Closure{Params: params, Body: body}, nil
}

func (p *Parser) parseArguments() ([]ast.Argument, error) {
	if _, err := p.expect(token.LEFT_PAREN); err != nil {
		return nil, err
	}
	var args []ast.Argument
	for !p.currentIs(token.RIGHT_PAREN) {
		expr, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		if assign, ok := expr.(*ast.Assign); ok {
			ident, ok := assign.Target.(*ast.Identifier)
			if !ok {
				return nil, unexpectedToken(p.current)
			}
			args = append(args, ast.Argument{Name: ident.Name, Expr: assign.Value})
		} else {
			args = append(args, ast.Argument{Expr: expr})
		}
		if p.currentIs(token.COMMA) {
			p.read()
		}
	}
	if _, err := p.expect(token.RIGHT_PAREN); err != nil {
		return nil, err
	}
	return args, nil
}

// tryParsePostfix attempts `.field`, `[index?]`, `{struct literal}`, and
// `(call)` on left. The bool return reports whether a postfix form matched
// at all (as opposed to there being no postfix form here).
func (p *Parser) tryParsePostfix(left ast.Expression) (ast.Expression, error, bool) {
	switch p.current.Kind {
	case token.DOT:
		p.read()
		field, err := p.expectIdentifier()
		if err != nil {
			return nil, err, true
		}
		if p.currentIs(token.LEFT_PAREN) {
			args, err := p.parseArguments()
			if err != nil {
				return nil, err, true
			}
			return &ast.MethodCall{Target: left, Field: field, Args: args}, nil, true
		}
		if p.currentIs(token.ASSIGN) {
			p.read()
			value, err := p.parseExpression(lowest)
			if err != nil {
				return nil, err, true
			}
			return &ast.SetProperty{Target: left, Field: field, Value: value}, nil, true
		}
		return &ast.GetProperty{Target: left, Field: field}, nil, true

	case token.LEFT_BRACKET:
		p.read()
		var idx ast.Expression
		if !p.currentIs(token.RIGHT_BRACKET) {
			var err error
			idx, err = p.parseExpression(lowest)
			if err != nil {
				return nil, err, true
			}
		}
		if _, err := p.expect(token.RIGHT_BRACKET); err != nil {
			return nil, err, true
		}
		return &ast.Index{Target: left, Idx: idx}, nil, true

	case token.LEFT_BRACE:
		p.read()
		fields := map[string]ast.Expression{}
		var order []string
		for !p.currentIs(token.RIGHT_BRACE) {
			field, err := p.expectIdentifier()
			if err != nil {
				return nil, err, true
			}
			var value ast.Expression
			if p.currentIs(token.COLON) {
				p.read()
				value, err = p.parseExpression(lowest)
				if err != nil {
					return nil, err, true
				}
			} else {
				// Shorthand `{x}` expands to `{x: x}`.
				value = &ast.Identifier{Name: field}
			}
			fields[field] = value
			order = append(order, field)
			if p.currentIs(token.COMMA) {
				p.read()
			}
		}
		if _, err := p.expect(token.RIGHT_BRACE); err != nil {
			return nil, err, true
		}
		return &ast.Struct{Definition: left, FieldInits: fields, FieldOrder: order}, nil, true

	case token.LEFT_PAREN:
		args, err := p.parseArguments()
		if err != nil {
			return nil, err, true
		}
		return &ast.Call{Callee: left, Args: args}, nil, true
	}

	return nil, nil, false
}

func (p *Parser) tryParseInfix(left ast.Expression) (ast.Expression, error, bool) {
	switch p.current.Kind {
	case token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.EQUALS, token.NOT_EQUALS,
		token.LESS_THAN_OR_EQUALS, token.LESS_THAN, token.GREATER_THAN, token.GREATER_THAN_OR_EQUALS,
		token.AND, token.OR, token.POW, token.IN, token.NOT_IN, token.PERCENT:
		opTok := p.current
		p.read()
		right, err := p.parseExpression(precedenceOf(opTok.Kind))
		if err != nil {
			return nil, err, true
		}
		return &ast.Infix{Left: left, Op: opOf(opTok.Kind), Right: right}, nil, true

	case token.ASSIGN:
		p.read()
		right, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err, true
		}
		return &ast.Assign{Target: left, Value: right}, nil, true

	case token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.MULTIPLY_ASSIGN, token.DIVIDE_ASSIGN:
		opTok := p.current
		p.read()
		right, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err, true
		}
		return &ast.MathAssign{Target: left, Op: opOf(opTok.Kind), Value: right}, nil, true

	case token.INCREMENT:
		p.read()
		return &ast.MathAssign{Target: left, Op: ast.Add, Value: &ast.Number{Value: 1}}, nil, true

	case token.DECREMENT:
		p.read()
		return &ast.MathAssign{Target: left, Op: ast.Subtract, Value: &ast.Number{Value: 1}}, nil, true
	}

	return nil, nil, false
}
