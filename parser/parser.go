/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

// Package parser turns a stream of lexer.Tokens into the ast package's
// statement and expression trees via recursive descent, following the
// precedence table of spec.md 4.2. Look-ahead is a small ring buffer
// (laBuffer) in the style of the teacher's parser/helper.go LABuffer;
// unlike the teacher's Pratt/TDOP parser (parser/parser.go's
// nullDenotation/leftDenotation dispatch over a flat ASTNode), malis's
// grammar is simple enough - and its typed AST variant-per-node-type
// closed family pairs better with - a direct recursive descent, one
// method per precedence level. Error recovery still follows the
// teacher's shape: report and keep going rather than stop at the first
// mistake, implemented here as panic/recover plus statement-boundary
// synchronization (spec.md 4.2's panic-mode recovery).
package parser

import (
	"github.com/malis-lang/malis/ast"
	"github.com/malis-lang/malis/lexer"
	"github.com/malis-lang/malis/util"
)

/*
parseError unwinds the current declaration/statement on a syntax error;
caught by synchronize so the parser can keep looking for further errors
in one pass, per spec.md 4.2.
*/
type parseError struct{}

/*
Parser is a recursive-descent parser over one token stream.
*/
type Parser struct {
	la           *laBuffer
	reporter     *util.Reporter
	lastConsumed lexer.Token
}

/*
New creates a parser consuming tokens from the given channel, reporting
diagnostics into reporter.
*/
func New(tokens chan lexer.Token, reporter *util.Reporter) *Parser {
	return &Parser{la: newLABuffer(tokens, 4), reporter: reporter}
}

/*
NewFromSource lexes source directly and returns a parser over it -
convenient for tests and for the CLI's one-shot run mode.
*/
func NewFromSource(name, source string, reporter *util.Reporter) *Parser {
	return New(lexer.Lex(name, source), reporter)
}

/*
Parse parses a whole program: a list of top-level declarations.
*/
func (p *Parser) Parse() []ast.Stmt {
	var stmts []ast.Stmt

	for !p.check(lexer.TokenEOF) {
		if s := p.declarationSafe(); s != nil {
			stmts = append(stmts, s)
		}
	}

	return stmts
}

// Token stream helpers
// =====================

func (p *Parser) peek() lexer.Token     { return p.la.peek(0) }
func (p *Parser) peekNext() lexer.Token { return p.la.peek(1) }

func (p *Parser) check(tt lexer.TokenType) bool {
	return p.peek().Type == tt
}

func (p *Parser) advance() lexer.Token {
	t := p.la.next()
	if t.Type == lexer.TokenError {
		p.reporter.Report(util.NewDiagnostic(util.PhaseLex, t.Pos, "%s", t.Lexeme))
	}
	p.lastConsumed = t
	return t
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tt lexer.TokenType, message string) lexer.Token {
	if p.check(tt) {
		return p.advance()
	}
	p.errorAt(p.peek().Pos, "%s (got %q)", message, p.peek().Lexeme)
	panic(parseError{})
}

func (p *Parser) errorAt(pos lexer.Position, format string, args ...interface{}) {
	p.reporter.Report(util.NewDiagnostic(util.PhaseParse, pos, format, args...))
}

/*
synchronize discards tokens until it reaches a likely statement boundary,
so one syntax error doesn't cascade into spurious follow-on errors.
*/
func (p *Parser) synchronize() {
	for !p.check(lexer.TokenEOF) {
		if p.peek().Type == lexer.TokenSemicolon {
			p.advance()
			return
		}

		switch p.peek().Type {
		case lexer.TokenClass, lexer.TokenFun, lexer.TokenVar, lexer.TokenFor,
			lexer.TokenIf, lexer.TokenWhile, lexer.TokenPrint, lexer.TokenReturn:
			return
		}

		p.advance()
	}
}

// Declarations
// =============

func (p *Parser) declarationSafe() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	return p.declaration()
}

func (p *Parser) declaration() ast.Stmt {
	switch {
	case p.match(lexer.TokenClass):
		return p.classDeclaration()
	case p.match(lexer.TokenFun):
		return p.function(ast.KindFunction)
	case p.match(lexer.TokenVar):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) classDeclaration() ast.Stmt {
	name := p.consume(lexer.TokenIdentifier, "expect class name")

	var superclass *ast.Variable
	if p.match(lexer.TokenLess) {
		superName := p.consume(lexer.TokenIdentifier, "expect superclass name")
		superclass = &ast.Variable{Name: superName}
	}

	p.consume(lexer.TokenLeftBrace, "expect '{' before class body")

	var methods []*ast.FunctionStmt
	for !p.check(lexer.TokenRightBrace) && !p.check(lexer.TokenEOF) {
		methods = append(methods, p.function(ast.KindMethod))
	}

	p.consume(lexer.TokenRightBrace, "expect '}' after class body")

	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

/*
function parses a "name(params) { body }" function or method. kind is
refined from Method to Initializer when the name is literally "init".
*/
func (p *Parser) function(kind ast.FunctionKind) *ast.FunctionStmt {
	name := p.consume(lexer.TokenIdentifier, "expect function name")
	if kind == ast.KindMethod && name.Lexeme == "init" {
		kind = ast.KindInitializer
	}

	p.consume(lexer.TokenLeftParen, "expect '(' after function name")
	var params []lexer.Token
	if !p.check(lexer.TokenRightParen) {
		for {
			if len(params) >= 255 {
				p.errorAt(p.peek().Pos, "can't have more than 255 parameters")
			}
			params = append(params, p.consume(lexer.TokenIdentifier, "expect parameter name"))
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.consume(lexer.TokenRightParen, "expect ')' after parameters")

	p.consume(lexer.TokenLeftBrace, "expect '{' before function body")
	body := p.block()

	return &ast.FunctionStmt{Name: name, Params: params, Body: body, Kind: kind}
}

func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(lexer.TokenIdentifier, "expect variable name")

	var init ast.Expr
	if p.match(lexer.TokenEqual) {
		init = p.expression()
	}

	p.consume(lexer.TokenSemicolon, "expect ';' after variable declaration")
	return &ast.VarStmt{Name: name, Initializer: init}
}

// Statements
// ===========

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(lexer.TokenFor):
		return p.forStatement()
	case p.match(lexer.TokenIf):
		return p.ifStatement()
	case p.match(lexer.TokenPrint):
		return p.printStatement()
	case p.match(lexer.TokenReturn):
		return p.returnStatement()
	case p.match(lexer.TokenWhile):
		return p.whileStatement()
	case p.match(lexer.TokenLeftBrace):
		return &ast.BlockStmt{Statements: p.block()}
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(lexer.TokenRightBrace) && !p.check(lexer.TokenEOF) {
		if s := p.declarationSafe(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.consume(lexer.TokenRightBrace, "expect '}' after block")
	return stmts
}

func (p *Parser) ifStatement() ast.Stmt {
	p.consume(lexer.TokenLeftParen, "expect '(' after 'if'")
	cond := p.expression()
	p.consume(lexer.TokenRightParen, "expect ')' after if condition")

	then := p.statement()
	var els ast.Stmt
	if p.match(lexer.TokenElse) {
		els = p.statement()
	}

	return &ast.IfStmt{Condition: cond, Then: then, Else: els}
}

func (p *Parser) printStatement() ast.Stmt {
	value := p.expression()
	p.consume(lexer.TokenSemicolon, "expect ';' after value")
	return &ast.PrintStmt{Expression: value}
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.lastConsumed
	var value ast.Expr
	if !p.check(lexer.TokenSemicolon) {
		value = p.expression()
	}
	p.consume(lexer.TokenSemicolon, "expect ';' after return value")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) whileStatement() ast.Stmt {
	p.consume(lexer.TokenLeftParen, "expect '(' after 'while'")
	cond := p.expression()
	p.consume(lexer.TokenRightParen, "expect ')' after condition")
	body := p.statement()

	return &ast.WhileStmt{Condition: cond, Body: body}
}

/*
forStatement desugars "for (init; cond; post) body" into the equivalent
while loop, per spec.md 4.4 - there is no dedicated ForStmt node.
*/
func (p *Parser) forStatement() ast.Stmt {
	p.consume(lexer.TokenLeftParen, "expect '(' after 'for'")

	var init ast.Stmt
	switch {
	case p.match(lexer.TokenSemicolon):
		init = nil
	case p.match(lexer.TokenVar):
		init = p.varDeclaration()
	default:
		init = p.expressionStatement()
	}

	var cond ast.Expr
	if !p.check(lexer.TokenSemicolon) {
		cond = p.expression()
	}
	p.consume(lexer.TokenSemicolon, "expect ';' after loop condition")

	var post ast.Expr
	if !p.check(lexer.TokenRightParen) {
		post = p.expression()
	}
	p.consume(lexer.TokenRightParen, "expect ')' after for clauses")

	body := p.statement()

	if post != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{body, &ast.ExpressionStmt{Expression: post}}}
	}

	if cond == nil {
		cond = &ast.Literal{Value: true}
	}
	body = &ast.WhileStmt{Condition: cond, Body: body}

	if init != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{init, body}}
	}

	return body
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(lexer.TokenSemicolon, "expect ';' after expression")
	return &ast.ExpressionStmt{Expression: expr}
}

// Expressions (highest-level to lowest precedence)
// ==================================================

func (p *Parser) expression() ast.Expr {
	return p.comma()
}

func (p *Parser) comma() ast.Expr {
	first := p.assignment()

	if !p.check(lexer.TokenComma) {
		return first
	}

	exprs := []ast.Expr{first}
	for p.match(lexer.TokenComma) {
		exprs = append(exprs, p.assignment())
	}
	return &ast.Comma{Expressions: exprs}
}

func (p *Parser) assignment() ast.Expr {
	expr := p.ternary()

	if p.match(lexer.TokenEqual) {
		equals := p.lastConsumed.Pos
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}
		}

		p.errorAt(equals, "invalid assignment target")
		return expr
	}

	return expr
}

func (p *Parser) ternary() ast.Expr {
	cond := p.or()

	if p.match(lexer.TokenQuestion) {
		then := p.expression()
		p.consume(lexer.TokenColon, "expect ':' in ternary expression")
		els := p.assignment()
		return &ast.Ternary{Condition: cond, Then: then, Else: els}
	}

	return cond
}

func (p *Parser) or() ast.Expr {
	expr := p.and()

	for p.check(lexer.TokenOr) || p.check(lexer.TokenOrOr) {
		op := p.advance()
		right := p.and()
		expr = &ast.Logical{Left: expr, Operator: op, Right: right}
	}

	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()

	for p.check(lexer.TokenAnd) || p.check(lexer.TokenAndAnd) {
		op := p.advance()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Operator: op, Right: right}
	}

	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()

	for p.check(lexer.TokenBangEqual) || p.check(lexer.TokenEqualEqual) {
		op := p.advance()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}

	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()

	for p.check(lexer.TokenGreater) || p.check(lexer.TokenGreaterEqual) ||
		p.check(lexer.TokenLess) || p.check(lexer.TokenLessEqual) {
		op := p.advance()
		right := p.term()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}

	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()

	for p.check(lexer.TokenPlus) || p.check(lexer.TokenMinus) {
		op := p.advance()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}

	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()

	for p.check(lexer.TokenStar) || p.check(lexer.TokenSlash) {
		op := p.advance()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}

	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.check(lexer.TokenBang) || p.check(lexer.TokenMinus) {
		op := p.advance()
		right := p.unary()
		return &ast.Unary{Operator: op, Right: right}
	}

	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(lexer.TokenLeftParen):
			expr = p.finishCall(expr)
		case p.match(lexer.TokenDot):
			name := p.consume(lexer.TokenIdentifier, "expect property name after '.'")
			expr = &ast.Get{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr

	if !p.check(lexer.TokenRightParen) {
		for {
			if len(args) >= 255 {
				p.errorAt(p.peek().Pos, "can't have more than 255 arguments")
			}
			args = append(args, p.assignment())
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}

	paren := p.consume(lexer.TokenRightParen, "expect ')' after arguments")
	return &ast.Call{Callee: callee, Paren: paren, Arguments: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(lexer.TokenFalse):
		return &ast.Literal{Value: false, Token: p.lastConsumed}
	case p.match(lexer.TokenTrue):
		return &ast.Literal{Value: true, Token: p.lastConsumed}
	case p.match(lexer.TokenNil):
		return &ast.Literal{Value: nil, Token: p.lastConsumed}
	case p.match(lexer.TokenNumber):
		tok := p.lastConsumed
		return &ast.Literal{Value: tok.Literal, Token: tok}
	case p.match(lexer.TokenString):
		tok := p.lastConsumed
		return &ast.Literal{Value: tok.Literal, Token: tok}
	case p.match(lexer.TokenThis):
		return &ast.This{Keyword: p.lastConsumed}
	case p.match(lexer.TokenSuper):
		keyword := p.lastConsumed
		p.consume(lexer.TokenDot, "expect '.' after 'super'")
		method := p.consume(lexer.TokenIdentifier, "expect superclass method name")
		return &ast.Super{Keyword: keyword, Method: method}
	case p.match(lexer.TokenIdentifier):
		return &ast.Variable{Name: p.lastConsumed}
	case p.match(lexer.TokenLeftParen):
		expr := p.expression()
		p.consume(lexer.TokenRightParen, "expect ')' after expression")
		return &ast.Grouping{Expression: expr}
	}

	p.errorAt(p.peek().Pos, "expect expression (got %q)", p.peek().Lexeme)
	panic(parseError{})
}
