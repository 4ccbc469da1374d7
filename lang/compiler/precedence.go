package compiler

import "github.com/loxenlang/loxen/lang/token"

// Precedence orders binding strength from loosest to tightest, exactly the
// levels a Pratt parser needs to drive parsePrecedence's climb.
type Precedence uint8

//nolint:revive
const (
	precNone       Precedence = iota
	precAssignment            // =
	precOr                    // or
	precAnd                   // and
	precEquality              // == !=
	precComparison            // < > <= >=
	precTerm                  // + -
	precFactor                // * / %
	precUnary                 // ! -
	precCall                  // . ()
	precPrimary
)

type parseFn func(c *Compiler, canAssign bool)

type rule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

// rules is the token.Kind -> (prefix, infix, precedence) dispatch table
// that drives parsePrecedence. Kinds absent from the map have no parse
// rule (the zero rule: no prefix, no infix, precNone), which is exactly
// what parsePrecedence needs to detect "expect expression" and to stop
// climbing.
var rules = map[token.Kind]rule{
	token.LPAREN:    {prefix: (*Compiler).grouping, infix: (*Compiler).call, precedence: precCall},
	token.MINUS:     {prefix: (*Compiler).unary, infix: (*Compiler).binary, precedence: precTerm},
	token.PLUS:      {infix: (*Compiler).binary, precedence: precTerm},
	token.SLASH:     {infix: (*Compiler).binary, precedence: precFactor},
	token.STAR:      {infix: (*Compiler).binary, precedence: precFactor},
	token.PERCENT:   {infix: (*Compiler).binary, precedence: precFactor},
	token.BANG:      {prefix: (*Compiler).unary},
	token.BANG_EQ:   {infix: (*Compiler).binary, precedence: precEquality},
	token.EQ_EQ:     {infix: (*Compiler).binary, precedence: precEquality},
	token.GT:        {infix: (*Compiler).binary, precedence: precComparison},
	token.GT_EQ:     {infix: (*Compiler).binary, precedence: precComparison},
	token.LT:        {infix: (*Compiler).binary, precedence: precComparison},
	token.LT_EQ:     {infix: (*Compiler).binary, precedence: precComparison},
	token.IDENT:     {prefix: (*Compiler).variable},
	token.STRING:    {prefix: (*Compiler).stringLiteral},
	token.NUMBER:    {prefix: (*Compiler).number},
	token.AND:       {infix: (*Compiler).and_, precedence: precAnd},
	token.OR:        {infix: (*Compiler).or_, precedence: precOr},
	token.FALSE:     {prefix: (*Compiler).literal},
	token.NIL:       {prefix: (*Compiler).literal},
	token.TRUE:      {prefix: (*Compiler).literal},
}

func getRule(k token.Kind) rule { return rules[k] }
