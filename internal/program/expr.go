package program

import (
	"fmt"
	"sort"
	"strings"
)

// Expr is a scalar expression over program variables: just enough structure
// (literal, variable reference, unary/binary operator, ternary) to drive the
// expression→diagram translator contract in spec.md §6.2. The full
// expression grammar belongs to the out-of-scope parser; callers that build
// a Program directly (pkg/program, tests, examples) compose Exprs with the
// constructors below instead of writing and parsing source text.
type Expr interface {
	// Render produces an expr-lang source fragment equivalent to this
	// expression, used by internal/symbolic's translator to compile and
	// cache a vm.Program per distinct expression.
	Render() string
	exprNode()
}

// NumLit is a constant numeric expression.
type NumLit float64

func (n NumLit) Render() string { return fmt.Sprintf("(%v)", float64(n)) }
func (NumLit) exprNode()        {}

// BoolLit is a constant boolean expression.
type BoolLit bool

func (b BoolLit) Render() string {
	if b {
		return "true"
	}
	return "false"
}
func (BoolLit) exprNode() {}

// VarRef references a program variable by name.
type VarRef string

func (v VarRef) Render() string { return string(v) }
func (VarRef) exprNode()        {}

// UnaryOp is a prefix operator: "-" (arithmetic negation) or "!" (boolean
// negation).
type UnaryOp struct {
	Op string
	X  Expr
}

func (u UnaryOp) Render() string { return fmt.Sprintf("(%s%s)", u.Op, u.X.Render()) }
func (UnaryOp) exprNode()        {}

// BinaryOp is an infix operator over two sub-expressions. Op is one of:
// "+", "-", "*", "/", "<", "<=", ">", ">=", "==", "!=", "&", "|".
type BinaryOp struct {
	Op   string
	X, Y Expr
}

var exprLangOp = map[string]string{
	"&": "&&",
	"|": "||",
}

func (b BinaryOp) Render() string {
	op := b.Op
	if rendered, ok := exprLangOp[op]; ok {
		op = rendered
	}
	return fmt.Sprintf("(%s %s %s)", b.X.Render(), op, b.Y.Render())
}
func (BinaryOp) exprNode() {}

// Ternary is the conditional expression `cond ? then : else`.
type Ternary struct {
	Cond, Then, Else Expr
}

func (t Ternary) Render() string {
	return fmt.Sprintf("(%s ? %s : %s)", t.Cond.Render(), t.Then.Render(), t.Else.Render())
}
func (Ternary) exprNode() {}

// Convenience constructors, mirroring the fluent style pkg/program exposes
// for whole commands.

func Num(v float64) Expr              { return NumLit(v) }
func Bool(v bool) Expr                { return BoolLit(v) }
func Var(name string) Expr            { return VarRef(name) }
func Not(x Expr) Expr                 { return UnaryOp{Op: "!", X: x} }
func Neg(x Expr) Expr                 { return UnaryOp{Op: "-", X: x} }
func And(x, y Expr) Expr              { return BinaryOp{Op: "&", X: x, Y: y} }
func Or(x, y Expr) Expr               { return BinaryOp{Op: "|", X: x, Y: y} }
func Eq(x, y Expr) Expr               { return BinaryOp{Op: "==", X: x, Y: y} }
func Neq(x, y Expr) Expr              { return BinaryOp{Op: "!=", X: x, Y: y} }
func Lt(x, y Expr) Expr               { return BinaryOp{Op: "<", X: x, Y: y} }
func Lte(x, y Expr) Expr              { return BinaryOp{Op: "<=", X: x, Y: y} }
func Gt(x, y Expr) Expr               { return BinaryOp{Op: ">", X: x, Y: y} }
func Gte(x, y Expr) Expr              { return BinaryOp{Op: ">=", X: x, Y: y} }
func Add(x, y Expr) Expr              { return BinaryOp{Op: "+", X: x, Y: y} }
func Sub(x, y Expr) Expr              { return BinaryOp{Op: "-", X: x, Y: y} }
func Mul(x, y Expr) Expr              { return BinaryOp{Op: "*", X: x, Y: y} }
func Div(x, y Expr) Expr              { return BinaryOp{Op: "/", X: x, Y: y} }
func If(cond, then, els Expr) Expr    { return Ternary{Cond: cond, Then: then, Else: els} }
func AndAll(xs ...Expr) Expr {
	if len(xs) == 0 {
		return BoolLit(true)
	}
	acc := xs[0]
	for _, x := range xs[1:] {
		acc = And(acc, x)
	}
	return acc
}

// FreeVars returns the sorted, de-duplicated set of variable names
// referenced anywhere within e.
func FreeVars(e Expr) []string {
	seen := make(map[string]struct{})
	var walk func(Expr)
	walk = func(e Expr) {
		switch n := e.(type) {
		case VarRef:
			seen[string(n)] = struct{}{}
		case UnaryOp:
			walk(n.X)
		case BinaryOp:
			walk(n.X)
			walk(n.Y)
		case Ternary:
			walk(n.Cond)
			walk(n.Then)
			walk(n.Else)
		}
	}
	walk(e)
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// RenderAll renders a slice of expressions joined with sep, a small helper
// used when building debug strings in diagnostics.
func RenderAll(exprs []Expr, sep string) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.Render()
	}
	return strings.Join(parts, sep)
}
