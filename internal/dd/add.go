package dd

// ADD is an algebraic (multi-terminal) decision diagram: a function from
// boolean variable assignments to an arbitrary real terminal value. Model
// probabilities, rates and rewards are all represented as ADDs (spec.md
// §6.1).
type ADD struct {
	m  *Manager
	id nodeID
}

// Const returns the constant ADD equal to value everywhere.
func (m *Manager) Const(value float64) ADD {
	return ADD{m: m, id: m.terminal(value)}
}

// Zero is the constant-0 ADD.
func (m *Manager) Zero() ADD { return ADD{m: m, id: falseID} }

// One is the constant-1 ADD.
func (m *Manager) One() ADD { return ADD{m: m, id: trueID} }

// IsConst reports whether a is a constant ADD, returning its value.
func (a ADD) IsConst() (float64, bool) {
	n := a.m.nodes[a.id]
	if n.isTerm {
		return n.value, true
	}
	return 0, false
}

func (a ADD) checkSameManager(b ADD) {
	if a.m != b.m {
		panic("dd: ADD values from different managers combined")
	}
}

// Add returns the pointwise sum a + b.
func (a ADD) Add(b ADD) ADD {
	a.checkSameManager(b)
	return ADD{m: a.m, id: a.m.applyBinary(a.id, b.id, addOp)}
}

// Mul returns the pointwise product a * b.
func (a ADD) Mul(b ADD) ADD {
	a.checkSameManager(b)
	return ADD{m: a.m, id: a.m.applyBinary(a.id, b.id, mulOp)}
}

// Div returns the pointwise quotient a / b. Division by zero at a given
// assignment yields +Inf/NaN per ordinary float64 semantics; callers that
// must reject a zero denominator (e.g. normalising an all-zero row) should
// check IsZero before dividing.
func (a ADD) Div(b ADD) ADD {
	a.checkSameManager(b)
	return ADD{m: a.m, id: a.m.applyBinary(a.id, b.id, func(x, y float64) float64 { return x / y })}
}

// Max returns the pointwise maximum of a and b.
func (a ADD) Max(b ADD) ADD {
	a.checkSameManager(b)
	return ADD{m: a.m, id: a.m.applyBinary(a.id, b.id, maxOp)}
}

// Min returns the pointwise minimum of a and b.
func (a ADD) Min(b ADD) ADD {
	a.checkSameManager(b)
	return ADD{m: a.m, id: a.m.applyBinary(a.id, b.id, minOp)}
}

// Eq returns the 0/1-valued ADD that is 1 wherever a and b agree.
func (a ADD) Eq(b ADD) ADD {
	a.checkSameManager(b)
	return ADD{m: a.m, id: a.m.applyBinary(a.id, b.id, func(x, y float64) float64 {
		if x == y {
			return 1
		}
		return 0
	})}
}

// Neq0 returns the 0/1-valued ADD that is 1 wherever a is non-zero.
func (a ADD) Neq0() ADD {
	return ADD{m: a.m, id: a.m.applyBinary(a.id, a.m.Zero().id, func(x, _ float64) float64 {
		if x != 0 {
			return 1
		}
		return 0
	})}
}

// IsZero reports whether a is the constant-0 ADD.
func (a ADD) IsZero() bool { return a.id == falseID }

// Equals reports whether a and b denote the identical canonical node —
// exact structural equality, which for a reduced hash-consed diagram is the
// same as semantic equality.
func (a ADD) Equals(b ADD) bool { return a.m == b.m && a.id == b.id }

// SumAbstract eliminates vars by summing over every combination of their
// row encodings (spec.md §6.1's sumAbstract); their column encodings are
// left untouched.
func (a ADD) SumAbstract(vars []Var) ADD {
	elim := make(map[int]bool)
	for _, v := range vars {
		for _, l := range v.rowLayers {
			elim[l] = true
		}
	}
	return ADD{m: a.m, id: a.m.abstract(a.id, elim, addOp)}
}

// MaxAbstract eliminates vars by taking the pointwise maximum over every
// combination of their row and column encodings — used by MDP combination (spec.md
// §4.4) to find the global maximum of an integer-valued "enabled choice
// count" diagram so the nondeterminism encoding width can be sized.
func (a ADD) MaxAbstract(vars []Var) ADD {
	elim := make(map[int]bool)
	for _, v := range vars {
		for _, l := range v.rowLayers {
			elim[l] = true
		}
		for _, l := range v.colLayers {
			elim[l] = true
		}
	}
	return ADD{m: a.m, id: a.m.abstract(a.id, elim, maxOp)}
}

// HasNegativeTerminal reports whether any terminal reachable in a's diagram
// is negative — used by reward well-formedness checks (spec.md §4.7) that
// must catch a negative value on any one state, not only a globally
// constant negative value.
func (a ADD) HasNegativeTerminal() bool {
	seen := make(map[nodeID]bool)
	var walk func(id nodeID) bool
	walk = func(id nodeID) bool {
		if seen[id] {
			return false
		}
		seen[id] = true
		n := a.m.nodes[id]
		if n.isTerm {
			return n.value < 0
		}
		return walk(n.low) || walk(n.high)
	}
	return walk(a.id)
}

// SumAbstractCols eliminates vars by summing over every combination of
// their column encodings only, leaving row dependence untouched — used to
// row-normalise a DTMC transition diagram (spec.md §4.6: dividing by the sum
// over the column copies of every program variable, one row at a time).
func (a ADD) SumAbstractCols(vars []Var) ADD {
	elim := make(map[int]bool)
	for _, v := range vars {
		for _, l := range v.colLayers {
			elim[l] = true
		}
	}
	return ADD{m: a.m, id: a.m.abstract(a.id, elim, addOp)}
}

// SumAbstractRows eliminates vars by summing over every combination of
// their row encodings only, leaving column dependence untouched — the
// column-side mirror of SumAbstractCols, used to count the number of
// distinct row-variable assignments satisfying a 0/1 diagram once every
// other dependency has already been abstracted away (spec.md §4.8's
// deadlock count).
func (a ADD) SumAbstractRows(vars []Var) ADD {
	elim := make(map[int]bool)
	for _, v := range vars {
		for _, l := range v.rowLayers {
			elim[l] = true
		}
	}
	return ADD{m: a.m, id: a.m.abstract(a.id, elim, addOp)}
}

// Ite returns the ADD that equals thenADD where cond holds and elseADD
// elsewhere.
func (cond BDD) Ite(thenADD, elseADD ADD) ADD {
	return ADD{m: cond.m, id: cond.m.ite(cond.id, thenADD.id, elseADD.id)}
}

// ToBDD reinterprets a as a boolean predicate (true wherever a is
// non-zero). Safe to call on any ADD; the diagram is only reduced-boolean
// already when a was itself built from 0/1 terminals.
func (a ADD) ToBDD() BDD {
	return BDD{m: a.m, id: a.Neq0().id}
}
