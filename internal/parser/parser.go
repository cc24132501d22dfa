// Package parser implements a recursive-descent parser that turns a
// Lox token stream into an AST (see spec.md §4.2 for the grammar).
//
// The parser holds a single forward cursor and does not backtrack,
// with one explicit exception: when a `fun` keyword is directly
// followed by `(`, the caller (declaration) re-reads it as an
// expression statement containing an anonymous function rather than a
// named function declaration. Everything else is a single token of
// lookahead, buffered lazily from the lexer.
package parser

import (
	"fmt"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/lexer"
	"github.com/cwbudde/golox/internal/token"
)

const maxArgs = 255

// Parser turns a token stream into a Program. Construct with New and
// drive with ParseProgram.
type Parser struct {
	lex     *lexer.Lexer
	current token.Token
	buffer  []token.Token
	errors  []*errors.CompilerError
	source  string
	file    string
}

// New creates a Parser reading tokens from l.
func New(l *lexer.Lexer, source, file string) *Parser {
	p := &Parser{lex: l, source: source, file: file}
	p.current = p.lex.NextToken()
	return p
}

// Errors returns every parse error accumulated so far.
func (p *Parser) Errors() []*errors.CompilerError {
	return p.errors
}

// ParseProgram parses the full input. Parse errors are recorded via
// Errors and do not stop the parser: it synchronizes to the next
// statement boundary and keeps going so that a single file can report
// more than one mistake per run.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.recordError(err)
			p.synchronize()
			continue
		}
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}
	return program
}

// ---- cursor ----

func (p *Parser) peek(n int) token.Token {
	for len(p.buffer) < n {
		p.buffer = append(p.buffer, p.lex.NextToken())
	}
	if n == 0 {
		return p.current
	}
	return p.buffer[n-1]
}

func (p *Parser) advance() token.Token {
	prev := p.current
	if len(p.buffer) > 0 {
		p.current = p.buffer[0]
		p.buffer = p.buffer[1:]
	} else if prev.Type != token.Eof {
		p.current = p.lex.NextToken()
	}
	return prev
}

func (p *Parser) check(t token.Type) bool {
	return p.current.Type == t
}

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(t token.Type, message string) (token.Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}
	return token.Token{}, p.errAt(p.current, message)
}

func (p *Parser) isAtEnd() bool {
	return p.current.Type == token.Eof
}

// errAt builds a parse error located at tok, rendered through the
// `[line N] Error at '...': message` wire format.
func (p *Parser) errAt(tok token.Token, message string) error {
	return errors.AtToken(tok, message, p.source, p.file)
}

// recordError appends err to the accumulated diagnostics without
// aborting the parse; non-*errors.CompilerError values (there
// shouldn't be any) are wrapped generically.
func (p *Parser) recordError(err error) {
	if ce, ok := err.(*errors.CompilerError); ok {
		p.errors = append(p.errors, ce)
		return
	}
	p.errors = append(p.errors, errors.New(p.current.Pos, err.Error(), p.source, p.file))
}

// warn records a non-fatal diagnostic (e.g. too many parameters)
// without returning an error, so parsing of the current construct
// continues uninterrupted.
func (p *Parser) warn(tok token.Token, message string) {
	p.recordError(p.errAt(tok, message))
}

// synchronize discards tokens until it reaches a statement boundary: a
// semicolon (consumed), or a token that starts a new declaration.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.current.Type == token.Semicolon {
			p.advance()
			return
		}
		switch p.current.Type {
		case token.Class, token.Fun, token.Var, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

// ---- declarations ----

func (p *Parser) declaration() (ast.Statement, error) {
	switch {
	case p.check(token.Var):
		return p.varDeclaration()
	case p.check(token.Class):
		return p.classDeclaration()
	case p.check(token.Fun) && p.peek(1).Type != token.LeftParen:
		p.advance()
		return p.functionDeclaration("function")
	default:
		return p.statement()
	}
}

func (p *Parser) varDeclaration() (ast.Statement, error) {
	p.advance() // 'var'
	name, err := p.consume(token.Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var init ast.Expression
	if p.match(token.Equal) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(token.Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &ast.VarStmt{Name: name, Init: init}, nil
}

func (p *Parser) functionDeclaration(kind string) (ast.Statement, error) {
	name, err := p.consume(token.Identifier, "Expect "+kind+" name.")
	if err != nil {
		return nil, err
	}
	params, body, err := p.functionBody(kind)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionStmt{Name: name, Params: params, Body: body}, nil
}

// functionBody parses `'(' params? ')' block`, shared by named
// functions, methods, and anonymous function expressions.
func (p *Parser) functionBody(kind string) ([]token.Token, []ast.Statement, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after "+kind+" name."); err != nil {
		return nil, nil, err
	}
	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.warn(p.current, fmt.Sprintf("Can't have more than %d parameters.", maxArgs))
			}
			name, err := p.consume(token.Identifier, "Expect parameter name.")
			if err != nil {
				return nil, nil, err
			}
			params = append(params, name)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after parameters."); err != nil {
		return nil, nil, err
	}
	if _, err := p.consume(token.LeftBrace, "Expect '{' before "+kind+" body."); err != nil {
		return nil, nil, err
	}
	body, err := p.blockStatements()
	if err != nil {
		return nil, nil, err
	}
	return params, body, nil
}

func (p *Parser) classDeclaration() (ast.Statement, error) {
	p.advance() // 'class'
	name, err := p.consume(token.Identifier, "Expect class name.")
	if err != nil {
		return nil, err
	}

	var superclass *ast.Variable
	if p.match(token.Less) {
		superName, err := p.consume(token.Identifier, "Expect superclass name.")
		if err != nil {
			return nil, err
		}
		if superName.Lexeme == name.Lexeme {
			p.warn(superName, "A class can't inherit from itself.")
		}
		superclass = ast.NewVariable(superName)
	}

	if _, err := p.consume(token.LeftBrace, "Expect '{' before class body."); err != nil {
		return nil, err
	}

	stmt := &ast.ClassStmt{Name: name, Superclass: superclass}
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		isStatic := p.match(token.Class)
		methodName, err := p.consume(token.Identifier, "Expect method name.")
		if err != nil {
			return nil, err
		}
		params, body, err := p.functionBody("method")
		if err != nil {
			return nil, err
		}
		if isStatic && methodName.Lexeme == "init" && len(params) != 0 {
			p.warn(methodName, "Static 'init' must have zero parameters.")
		}
		decl := &ast.MethodDecl{Name: methodName, Params: params, Body: body, IsStatic: isStatic}
		if isStatic {
			stmt.StaticMethods = append(stmt.StaticMethods, decl)
		} else {
			stmt.Methods = append(stmt.Methods, decl)
		}
	}

	if _, err := p.consume(token.RightBrace, "Expect '}' after class body."); err != nil {
		return nil, err
	}
	return stmt, nil
}

// ---- statements ----

func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(token.Semicolon):
		return nil, nil
	case p.check(token.For):
		return p.forStatement()
	case p.check(token.If):
		return p.ifStatement()
	case p.check(token.Print):
		return p.printStatement()
	case p.check(token.Return):
		return p.returnStatement()
	case p.check(token.While):
		return p.whileStatement()
	case p.check(token.LeftBrace):
		return p.block()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) block() (ast.Statement, error) {
	p.advance() // '{'
	stmts, err := p.blockStatements()
	if err != nil {
		return nil, err
	}
	return &ast.BlockStmt{Statements: stmts}, nil
}

// blockStatements parses declarations until a matching '}', which it
// consumes.
func (p *Parser) blockStatements() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.recordError(err)
			p.synchronize()
			continue
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if _, err := p.consume(token.RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	p.advance() // 'if'
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Statement
	if p.match(token.Else) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfStmt{Condition: cond, Then: then, Else: elseBranch}, nil
}

func (p *Parser) printStatement() (ast.Statement, error) {
	p.advance() // 'print'
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &ast.PrintStmt{Expr: value}, nil
}

func (p *Parser) returnStatement() (ast.Statement, error) {
	keyword := p.advance() // 'return'
	var value ast.Expression
	var err error
	if !p.check(token.Semicolon) {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Keyword: keyword, Value: value}, nil
}

func (p *Parser) whileStatement() (ast.Statement, error) {
	p.advance() // 'while'
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Condition: cond, Body: body}, nil
}

// forStatement desugars `for (init; cond; inc) body` into
// `{ init; while (cond) { body; inc; } }`, matching spec.md §4.2. A
// missing condition is literal `true`; a missing increment is simply
// omitted; a missing initializer omits the outer block.
func (p *Parser) forStatement() (ast.Statement, error) {
	p.advance() // 'for'
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var initializer ast.Statement
	var err error
	switch {
	case p.match(token.Semicolon):
		initializer = nil
	case p.check(token.Var):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var condition ast.Expression
	if !p.check(token.Semicolon) {
		condition, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment ast.Expression
	if !p.check(token.RightParen) {
		increment, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = &ast.BlockStmt{Statements: []ast.Statement{body, &ast.ExpressionStmt{Expr: increment}}}
	}
	if condition == nil {
		condition = ast.NewLiteral(true)
	}
	body = &ast.WhileStmt{Condition: condition, Body: body}
	if initializer != nil {
		body = &ast.BlockStmt{Statements: []ast.Statement{initializer, body}}
	}
	return body, nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ast.ExpressionStmt{Expr: expr}, nil
}

// ---- expressions ----

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

// assignment parses `target assignOp value`, where assignOp is `=`,
// `+=`, `-=`, `*=`, or `/=`. Augmented assignment rewrites to plain
// assignment whose value is `Binary(target, op, value)` with op the
// non-compound form. Valid targets are Variable (becomes Assign) and
// Get (becomes Set); any other target is reported but parsing
// continues with the already-parsed left-hand side.
func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.logicOr()
	if err != nil {
		return nil, err
	}

	var opTok token.Token
	var baseOp string
	var baseType token.Type
	switch {
	case p.check(token.Equal):
		opTok = p.advance()
	case p.check(token.PlusEqual):
		opTok, baseOp, baseType = p.advance(), "+", token.Plus
	case p.check(token.MinusEqual):
		opTok, baseOp, baseType = p.advance(), "-", token.Minus
	case p.check(token.StarEqual):
		opTok, baseOp, baseType = p.advance(), "*", token.Star
	case p.check(token.SlashEqual):
		opTok, baseOp, baseType = p.advance(), "/", token.Slash
	default:
		return expr, nil
	}

	value, err := p.assignment()
	if err != nil {
		return nil, err
	}
	if baseOp != "" {
		binOp := opTok
		binOp.Type, binOp.Lexeme = baseType, baseOp
		value = ast.NewBinary(expr, binOp, value)
	}

	switch target := expr.(type) {
	case *ast.Variable:
		return ast.NewAssign(target.Name, value), nil
	case *ast.Get:
		return ast.NewSet(target.Object, target.Index, value, target.Bracket), nil
	default:
		p.warn(opTok, "Invalid assignment target.")
		return expr, nil
	}
}

func (p *Parser) logicOr() (ast.Expression, error) {
	expr, err := p.logicAnd()
	if err != nil {
		return nil, err
	}
	for p.check(token.Or) {
		op := p.advance()
		right, err := p.logicAnd()
		if err != nil {
			return nil, err
		}
		expr = ast.NewLogical(expr, op, right)
	}
	return expr, nil
}

func (p *Parser) logicAnd() (ast.Expression, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.check(token.And) {
		op := p.advance()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = ast.NewLogical(expr, op, right)
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expression, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.check(token.EqualEqual) || p.check(token.BangEqual) {
		op := p.advance()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinary(expr, op, right)
	}
	return expr, nil
}

func (p *Parser) comparison() (ast.Expression, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.check(token.Less) || p.check(token.LessEqual) || p.check(token.Greater) || p.check(token.GreaterEqual) {
		op := p.advance()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinary(expr, op, right)
	}
	return expr, nil
}

func (p *Parser) term() (ast.Expression, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.check(token.Plus) || p.check(token.Minus) {
		op := p.advance()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinary(expr, op, right)
	}
	return expr, nil
}

func (p *Parser) factor() (ast.Expression, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.check(token.Star) || p.check(token.Slash) {
		op := p.advance()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinary(expr, op, right)
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.check(token.Bang) || p.check(token.Minus) {
		op := p.advance()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(op, right), nil
	}
	return p.funExpr()
}

// funExpr recognizes `fun (params) { body }` as an expression. Any
// other use of `fun` falls through to call().
func (p *Parser) funExpr() (ast.Expression, error) {
	if p.check(token.Fun) && p.peek(1).Type == token.LeftParen {
		keyword := p.advance() // 'fun'
		params, body, err := p.functionBody("function")
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionExpr(keyword, params, body), nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.check(token.LeftParen):
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
		case p.check(token.Dot):
			p.advance()
			name, err := p.consume(token.Identifier, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = ast.NewGet(expr, ast.NewLiteral(name.Lexeme), name)
		case p.check(token.LeftBracket):
			bracket := p.advance()
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(token.RightBracket, "Expect ']' after index."); err != nil {
				return nil, err
			}
			expr = ast.NewGet(expr, index, bracket)
		default:
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee ast.Expression) (ast.Expression, error) {
	p.advance() // '('
	var args []ast.Expression
	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.warn(p.current, fmt.Sprintf("Can't have more than %d arguments.", maxArgs))
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren, err := p.consume(token.RightParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return ast.NewCall(callee, paren, args), nil
}

func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.check(token.False):
		p.advance()
		return ast.NewLiteral(false), nil
	case p.check(token.True):
		p.advance()
		return ast.NewLiteral(true), nil
	case p.check(token.Nil):
		p.advance()
		return ast.NewLiteral(nil), nil
	case p.check(token.Number), p.check(token.String):
		tok := p.advance()
		return ast.NewLiteral(tok.Literal), nil
	case p.check(token.This):
		tok := p.advance()
		return ast.NewThis(tok), nil
	case p.check(token.Super):
		keyword := p.advance()
		if _, err := p.consume(token.Dot, "Expect '.' after 'super'."); err != nil {
			return nil, err
		}
		method, err := p.consume(token.Identifier, "Expect superclass method name.")
		if err != nil {
			return nil, err
		}
		return ast.NewSuper(keyword, method), nil
	case p.check(token.Identifier):
		tok := p.advance()
		return ast.NewVariable(tok), nil
	case p.check(token.LeftParen):
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return ast.NewGrouping(expr), nil
	case p.check(token.LeftBracket):
		bracket := p.advance()
		var elements []ast.Expression
		if !p.check(token.RightBracket) {
			for {
				el, err := p.expression()
				if err != nil {
					return nil, err
				}
				elements = append(elements, el)
				if !p.match(token.Comma) {
					break
				}
			}
		}
		if _, err := p.consume(token.RightBracket, "Expect ']' after array elements."); err != nil {
			return nil, err
		}
		return ast.NewArray(elements, bracket), nil
	case p.check(token.Fun):
		return p.funExpr()
	default:
		return nil, p.errAt(p.current, "Expect expression.")
	}
}
