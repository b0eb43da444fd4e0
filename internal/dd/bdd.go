package dd

// BDD is a reduced ordered binary decision diagram: a boolean predicate over
// the manager's DD variables. Guards, action masks and reachable-state sets
// are all represented as BDDs (spec.md §6.1).
type BDD struct {
	m  *Manager
	id nodeID
}

// True returns the constant-true BDD.
func (m *Manager) True() BDD { return BDD{m: m, id: trueID} }

// False returns the constant-false BDD.
func (m *Manager) False() BDD { return BDD{m: m, id: falseID} }

func (b BDD) checkSameManager(o BDD) {
	if b.m != o.m {
		panic("dd: BDD values from different managers combined")
	}
}

// IsTrue reports whether b is the constant-true BDD.
func (b BDD) IsTrue() bool { return b.id == trueID }

// IsFalse reports whether b is the constant-false BDD.
func (b BDD) IsFalse() bool { return b.id == falseID }

// Equals reports whether b and o denote the identical canonical node.
func (b BDD) Equals(o BDD) bool { return b.m == o.m && b.id == o.id }

// And returns the conjunction of b and o.
func (b BDD) And(o BDD) BDD {
	b.checkSameManager(o)
	return BDD{m: b.m, id: b.m.applyBinary(b.id, o.id, mulOp)}
}

// Or returns the disjunction of b and o.
func (b BDD) Or(o BDD) BDD {
	b.checkSameManager(o)
	return BDD{m: b.m, id: b.m.applyBinary(b.id, o.id, orOp)}
}

// Not returns the negation of b.
func (b BDD) Not() BDD {
	return BDD{m: b.m, id: b.m.applyBinary(b.id, trueID, func(x, _ float64) float64 {
		if x == 0 {
			return 1
		}
		return 0
	})}
}

// AndExists returns ∃vars. (b ∧ o) in one pass, the relational-product
// primitive spec.md §6.1 names for composing two modules' transition
// relations and immediately abstracting their private variables.
func (b BDD) AndExists(o BDD, vars []Var) BDD {
	return b.And(o).ExistsAbstract(vars)
}

// ExistsAbstract eliminates vars existentially: the result holds at an
// assignment iff some value of vars makes b hold.
func (b BDD) ExistsAbstract(vars []Var) BDD {
	elim := make(map[int]bool)
	for _, v := range vars {
		for _, l := range v.rowLayers {
			elim[l] = true
		}
		for _, l := range v.colLayers {
			elim[l] = true
		}
	}
	return BDD{m: b.m, id: b.m.abstract(b.id, elim, orOp)}
}

// ExistsAbstractRows eliminates vars' row encodings only, leaving their
// column encodings untouched — used by reachability (spec.md §4.8) to
// existentially quantify a transition relation over "current state" while
// keeping "next state" free, ahead of swapVariables turning it back into a
// set of current states.
func (b BDD) ExistsAbstractRows(vars []Var) BDD {
	elim := make(map[int]bool)
	for _, v := range vars {
		for _, l := range v.rowLayers {
			elim[l] = true
		}
	}
	return BDD{m: b.m, id: b.m.abstract(b.id, elim, orOp)}
}

// ExistsAbstractCols eliminates vars' column encodings only, leaving their
// row encodings untouched — used by deadlock detection (spec.md §4.8) to
// ask "does some successor column assignment exist" while keeping the
// current (row) state free.
func (b BDD) ExistsAbstractCols(vars []Var) BDD {
	elim := make(map[int]bool)
	for _, v := range vars {
		for _, l := range v.colLayers {
			elim[l] = true
		}
	}
	return BDD{m: b.m, id: b.m.abstract(b.id, elim, orOp)}
}

// VarPair names one variable whose row encoding should be exchanged with its
// column encoding by SwapVariables.
type VarPair struct {
	Row Var
	Col Var
}

// SwapVariables returns b with every paired variable's row and column
// encodings exchanged (spec.md §6.1's swapVariables; used to read a
// transition relation "backwards" when computing predecessors during
// reachability). Each bit pair (row layer, column layer) is exchanged via
// swapLayer's four-cofactor ite construction; this is a true layer swap
// rather than a relational product biased toward one side, so it is
// correct regardless of whether b depends on a pair's row layer, column
// layer, both, or neither — unlike a ∃row.(b ∧ row==col) encoding, which
// only renames row-to-column and leaves a column-only b unchanged.
func (b BDD) SwapVariables(pairs []VarPair) BDD {
	id := b.id
	for _, p := range pairs {
		rows := p.Row.rowLayers
		cols := p.Col.colLayers
		for i := range rows {
			id = b.m.swapLayer(id, rows[i], cols[i])
		}
	}
	return BDD{m: b.m, id: id}
}

// ToADD reinterprets b as a 0/1-valued ADD.
func (b BDD) ToADD() ADD {
	return ADD{m: b.m, id: b.id}
}

// StateCount returns the number of distinct assignments to vars' row
// encodings that satisfy b, assuming b depends on no other boolean layer
// (the case for a reachable-states or deadlock-states predicate, spec.md
// §4.8's "count"). The sum is rounded to the nearest int; if b depends on a
// layer outside vars the sum is not a constant and StateCount returns -1.
func (b BDD) StateCount(vars []Var) int {
	summed := b.ToADD().SumAbstractRows(vars)
	val, ok := summed.IsConst()
	if !ok {
		return -1
	}
	return int(val + 0.5)
}
