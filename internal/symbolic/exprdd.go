package symbolic

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/symdd/symdd/internal/dd"
	"github.com/symdd/symdd/internal/program"
)

// Side selects whether a Translator builds diagrams over a variable's row
// encoding or its column encoding (spec.md §6.2: "the builder creates a
// parallel column-indexed translator for target-state predicates").
type Side int

const (
	RowSide Side = iota
	ColSide
)

// compiledExprCache is shared across every Translator in the process: the
// teacher's ConditionEvaluator guards an equivalent map with a
// sync.RWMutex (conditions.go); this module uses xsync.MapOf for lock-free
// concurrent reads instead, since several builds may share one cache
// concurrently even though any single build is single-threaded (spec.md §5).
var compiledExprCache = xsync.NewMapOf[string, *vm.Program]()

// Translator is the expression→diagram translator spec.md §6.2 requires:
// given a variable-to-row-or-column-meta-variable map, it compiles a scalar
// expression once (via expr-lang, cached by source text) and evaluates it
// against every combination of its free variables' finite domains, summing
// the results into an ADD — exactly the case-split construction SPEC_FULL.md
// §6 describes, grounded on the teacher's compile-once/run-many
// ConditionEvaluator pipeline (conditions.go) but run at diagram-build time
// against abstract domain values instead of at runtime against one concrete
// binding.
type Translator struct {
	m     *dd.Manager
	vars  map[string]dd.Var
	kinds map[string]program.VarKind
	side  Side
}

// NewTranslator returns a Translator over vars on the given side. kinds
// records each variable's declared VarKind so boolean variables are handed
// to expr-lang as Go bool values (required for &&/||/! guard expressions)
// while integer variables — including ones whose domain happens to be
// {0,1} — stay plain ints.
func NewTranslator(m *dd.Manager, vars map[string]dd.Var, kinds map[string]program.VarKind, side Side) *Translator {
	return &Translator{m: m, vars: vars, kinds: kinds, side: side}
}

func (t *Translator) compile(e program.Expr) (*vm.Program, error) {
	src := e.Render()
	if p, ok := compiledExprCache.Load(src); ok {
		return p, nil
	}
	p, err := expr.Compile(src, expr.Env(map[string]any{}), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("symbolic: failed to compile expression %q: %w", src, err)
	}
	compiledExprCache.Store(src, p)
	return p, nil
}

// ToADD translates e into an ADD over this Translator's side, by evaluating
// the compiled expression at every combination of its free variables' domain
// values and summing the (cube · value) contributions.
func (t *Translator) ToADD(e program.Expr) (dd.ADD, error) {
	prog, err := t.compile(e)
	if err != nil {
		return dd.ADD{}, err
	}

	free := program.FreeVars(e)
	names := make([]string, 0, len(free))
	vars := make([]dd.Var, 0, len(free))
	for _, n := range free {
		v, ok := t.vars[n]
		if !ok {
			return dd.ADD{}, fmt.Errorf("symbolic: expression %q references undeclared variable %q", e.Render(), n)
		}
		names = append(names, n)
		vars = append(vars, v)
	}

	acc := t.m.Zero()
	env := make(map[string]any, len(names))
	domainValues := make([]int, len(names))
	var walk func(i int) error
	walk = func(i int) error {
		if i == len(names) {
			raw, err := expr.Run(prog, env)
			if err != nil {
				return fmt.Errorf("symbolic: failed to evaluate expression %q: %w", e.Render(), err)
			}
			val, err := toFloat(raw)
			if err != nil {
				return err
			}
			if val == 0 {
				return nil
			}
			cube := t.m.True()
			for i, v := range vars {
				cube = cube.And(t.cubeFor(v, domainValues[i]))
			}
			acc = acc.Add(cube.ToADD().Mul(t.m.Const(val)))
			return nil
		}
		v := vars[i]
		isBool := t.kinds[v.Name] == program.KindBool
		for val := v.Lo; val <= v.Hi; val++ {
			domainValues[i] = val
			if isBool {
				env[v.Name] = val == 1
			} else {
				env[v.Name] = val
			}
			if err := walk(i + 1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(0); err != nil {
		return dd.ADD{}, err
	}
	return acc, nil
}

// ToBDD translates e into a boolean predicate (non-zero wherever the
// translated ADD is non-zero).
func (t *Translator) ToBDD(e program.Expr) (dd.BDD, error) {
	a, err := t.ToADD(e)
	if err != nil {
		return dd.BDD{}, err
	}
	return a.ToBDD(), nil
}

func (t *Translator) cubeFor(v dd.Var, value int) dd.BDD {
	if t.side == ColSide {
		return v.EncodingCol(t.m, value)
	}
	return v.Encoding(t.m, value)
}

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("symbolic: expression produced unsupported value %v (%T)", raw, raw)
	}
}
