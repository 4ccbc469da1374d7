package compiler

import (
	"strconv"

	"github.com/loxenlang/loxen/lang/chunk"
	"github.com/loxenlang/loxen/lang/token"
	"github.com/loxenlang/loxen/lang/value"
)

func (c *Compiler) expression() {
	c.parsePrecedence(precAssignment)
}

// parsePrecedence is the Pratt-parser core: it consumes a prefix expression
// for the current token, then keeps folding in infix operators whose
// precedence is at least prec.
func (c *Compiler) parsePrecedence(prec Precedence) {
	c.advance()
	prefix := getRule(c.previous.Kind).prefix
	if prefix == nil {
		c.error("Expect expression.")
		return
	}

	canAssign := prec <= precAssignment
	prefix(c, canAssign)

	for prec <= getRule(c.current.Kind).precedence {
		c.advance()
		infix := getRule(c.previous.Kind).infix
		infix(c, canAssign)
	}

	if canAssign && c.match(token.EQ) {
		c.error("Invalid assignment target.")
	}
}

func (c *Compiler) number(_ bool) {
	n, err := strconv.ParseFloat(c.previous.Lexeme, 64)
	if err != nil {
		c.error("Invalid number literal.")
		return
	}
	c.emitConstant(value.Number(n))
}

func (c *Compiler) stringLiteral(_ bool) {
	raw := c.previous.Lexeme
	s := raw[1 : len(raw)-1] // strip surrounding quotes
	c.emitConstant(c.heap.InternString(s))
}

func (c *Compiler) literal(_ bool) {
	switch c.previous.Kind {
	case token.FALSE:
		c.emitOp(chunk.FALSE)
	case token.TRUE:
		c.emitOp(chunk.TRUE)
	case token.NIL:
		c.emitOp(chunk.NIL)
	}
}

func (c *Compiler) grouping(_ bool) {
	c.expression()
	c.consume(token.RPAREN, "Expect ')' after expression.")
}

func (c *Compiler) unary(_ bool) {
	op := c.previous.Kind
	c.parsePrecedence(precUnary)
	switch op {
	case token.BANG:
		c.emitOp(chunk.NOT)
	case token.MINUS:
		c.emitOp(chunk.NEGATE)
	}
}

func (c *Compiler) binary(_ bool) {
	op := c.previous.Kind
	rule := getRule(op)
	c.parsePrecedence(rule.precedence + 1)

	switch op {
	case token.BANG_EQ:
		c.emitOp(chunk.EQUAL)
		c.emitOp(chunk.NOT)
	case token.EQ_EQ:
		c.emitOp(chunk.EQUAL)
	case token.GT:
		c.emitOp(chunk.GREATER)
	case token.GT_EQ:
		c.emitOp(chunk.LESS)
		c.emitOp(chunk.NOT)
	case token.LT:
		c.emitOp(chunk.LESS)
	case token.LT_EQ:
		c.emitOp(chunk.GREATER)
		c.emitOp(chunk.NOT)
	case token.PLUS:
		c.emitOp(chunk.ADD)
	case token.MINUS:
		c.emitOp(chunk.SUB)
	case token.STAR:
		c.emitOp(chunk.MUL)
	case token.SLASH:
		c.emitOp(chunk.DIV)
	case token.PERCENT:
		c.emitOp(chunk.MOD)
	}
}

func (c *Compiler) and_(_ bool) {
	endJump := c.emitJump(chunk.JUMP_IF_FALSE)
	c.emitOp(chunk.POP)
	c.parsePrecedence(precAnd)
	c.patchJump(endJump)
}

func (c *Compiler) or_(_ bool) {
	elseJump := c.emitJump(chunk.JUMP_IF_FALSE)
	endJump := c.emitJump(chunk.JUMP)

	c.patchJump(elseJump)
	c.emitOp(chunk.POP)

	c.parsePrecedence(precOr)
	c.patchJump(endJump)
}

func (c *Compiler) variable(canAssign bool) {
	c.namedVariable(c.previous.Lexeme, canAssign)
}

func (c *Compiler) namedVariable(name string, canAssign bool) {
	var getOp, setOp chunk.Opcode
	arg := c.resolveLocal(c.fs, name)
	if arg != -1 {
		getOp, setOp = chunk.GET_LOCAL, chunk.SET_LOCAL
	} else {
		arg = int(c.identifierConstant(name))
		getOp, setOp = chunk.GET_GLOBAL, chunk.SET_GLOBAL
	}

	if canAssign && c.match(token.EQ) {
		c.expression()
		c.emitBytes(setOp, byte(arg))
		return
	}
	c.emitBytes(getOp, byte(arg))
}

// call compiles a call expression's argument list; the callee has already
// been compiled onto the stack by the preceding prefix/infix expression.
func (c *Compiler) call(_ bool) {
	argCount := c.argumentList()
	c.emitBytes(chunk.CALL, argCount)
}

func (c *Compiler) argumentList() byte {
	var count int
	if !c.check(token.RPAREN) {
		for {
			c.expression()
			if count == 255 {
				c.error("Can't have more than 255 arguments.")
			}
			count++
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RPAREN, "Expect ')' after arguments.")
	return byte(count)
}
