package dd

// This file holds the three recursive traversal engines shared by add.go and
// bdd.go: binary apply, ternary ite, and single-variable-set abstraction.
// All three are standard reduced-ordered-decision-diagram algorithms; nothing
// here is specific to BDD or ADD semantics, which is why add.go and bdd.go
// both route through them instead of duplicating recursion.

type binOp func(x, y float64) float64

// applyBinary computes the diagram for op(f, g) where op is applied
// pointwise at every terminal pair reachable by walking f and g in lock
// step on the shared variable order.
func (m *Manager) applyBinary(a, b nodeID, op binOp) nodeID {
	memo := make(map[[2]nodeID]nodeID)
	var rec func(a, b nodeID) nodeID
	rec = func(a, b nodeID) nodeID {
		na, nb := m.nodes[a], m.nodes[b]
		if na.isTerm && nb.isTerm {
			return m.terminal(op(na.value, nb.value))
		}
		key := [2]nodeID{a, b}
		if id, ok := memo[key]; ok {
			return id
		}
		va, vb := m.topVar(a), m.topVar(b)
		v := va
		if vb < v {
			v = vb
		}
		var aLow, aHigh nodeID
		if va == v {
			aLow, aHigh = na.low, na.high
		} else {
			aLow, aHigh = a, a
		}
		var bLow, bHigh nodeID
		if vb == v {
			bLow, bHigh = nb.low, nb.high
		} else {
			bLow, bHigh = b, b
		}
		low := rec(aLow, bLow)
		high := rec(aHigh, bHigh)
		id := m.mkNode(v, low, high)
		memo[key] = id
		return id
	}
	return rec(a, b)
}

// ite computes if-then-else(f, g, h): the classic ternary decision-diagram
// operator that every binary boolean connective reduces to.
func (m *Manager) ite(f, g, h nodeID) nodeID {
	memo := make(map[[3]nodeID]nodeID)
	var rec func(f, g, h nodeID) nodeID
	rec = func(f, g, h nodeID) nodeID {
		nf := m.nodes[f]
		if nf.isTerm {
			if nf.value != 0 {
				return g
			}
			return h
		}
		if g == h {
			return g
		}
		key := [3]nodeID{f, g, h}
		if id, ok := memo[key]; ok {
			return id
		}
		v := m.topVar(f)
		if vg := m.topVar(g); vg < v {
			v = vg
		}
		if vh := m.topVar(h); vh < v {
			v = vh
		}
		restrict := func(x nodeID) (nodeID, nodeID) {
			nx := m.nodes[x]
			if !nx.isTerm && nx.varIdx == v {
				return nx.low, nx.high
			}
			return x, x
		}
		fLow, fHigh := restrict(f)
		gLow, gHigh := restrict(g)
		hLow, hHigh := restrict(h)
		low := rec(fLow, gLow, hLow)
		high := rec(fHigh, gHigh, hHigh)
		id := m.mkNode(v, low, high)
		memo[key] = id
		return id
	}
	return rec(f, g, h)
}

// abstract eliminates every variable in elim from f, combining the two
// cofactors of each eliminated level with combine (addition for an ADD
// sumAbstract, logical-or for a BDD existsAbstract). An eliminated layer the
// reduced diagram skips on some path still contributes both of its
// (identical) cofactors there, combined as combine(x, x).
func (m *Manager) abstract(f nodeID, elim map[int]bool, combine binOp) nodeID {
	lift := func(id nodeID, from, to int) nodeID {
		if to > len(m.varNames) {
			to = len(m.varNames)
		}
		for l := from; l < to; l++ {
			if elim[l] {
				id = m.applyBinary(id, id, combine)
			}
		}
		return id
	}
	memo := make(map[nodeID]nodeID)
	var rec func(f nodeID) nodeID
	rec = func(f nodeID) nodeID {
		nf := m.nodes[f]
		if nf.isTerm {
			return f
		}
		if id, ok := memo[f]; ok {
			return id
		}
		low := lift(rec(nf.low), nf.varIdx+1, m.topVar(nf.low))
		high := lift(rec(nf.high), nf.varIdx+1, m.topVar(nf.high))
		var id nodeID
		if elim[nf.varIdx] {
			id = m.applyBinary(low, high, combine)
		} else {
			id = m.mkNode(nf.varIdx, low, high)
		}
		memo[f] = id
		return id
	}
	return lift(rec(f), 0, m.topVar(f))
}

// restrictLayer returns f's cofactor at the single DD variable layer,
// fixed to value: f with that layer's literal substituted for a constant.
// A layer f does not depend on anywhere along a given path is left
// untouched on that path, so restricting a layer absent from f entirely is
// a no-op, matching the usual cofactor semantics.
func (m *Manager) restrictLayer(f nodeID, layer int, value bool) nodeID {
	memo := make(map[nodeID]nodeID)
	var rec func(f nodeID) nodeID
	rec = func(f nodeID) nodeID {
		nf := m.nodes[f]
		if nf.isTerm || nf.varIdx > layer {
			return f
		}
		if id, ok := memo[f]; ok {
			return id
		}
		var id nodeID
		if nf.varIdx == layer {
			if value {
				id = nf.high
			} else {
				id = nf.low
			}
		} else {
			id = m.mkNode(nf.varIdx, rec(nf.low), rec(nf.high))
		}
		memo[f] = id
		return id
	}
	return rec(f)
}

// swapLayer returns f with the two single-bit DD variable layers x and y
// exchanged throughout: the result holds at (x=a, y=b, rest) iff f held at
// (x=b, y=a, rest). Built from four cofactors and two nested ite calls
// rather than assuming x and y are adjacent in the variable order — ite
// already re-levels its result correctly regardless of where x and y sit
// relative to each other and to every other layer f depends on, so this
// is correct whether f depends on x only, y only, both, or neither.
func (m *Manager) swapLayer(f nodeID, x, y int) nodeID {
	f0 := m.restrictLayer(f, x, false)
	f1 := m.restrictLayer(f, x, true)
	f00 := m.restrictLayer(f0, y, false)
	f01 := m.restrictLayer(f0, y, true)
	f10 := m.restrictLayer(f1, y, false)
	f11 := m.restrictLayer(f1, y, true)

	xLit := m.mkNode(x, falseID, trueID)
	yLit := m.mkNode(y, falseID, trueID)

	onXTrue := m.ite(yLit, f11, f01)  // result at x=1: y=1 keeps f11, y=0 takes f's old x=0,y=1 cofactor
	onXFalse := m.ite(yLit, f10, f00) // result at x=0: y=1 takes f's old x=1,y=0 cofactor, y=0 keeps f00
	return m.ite(xLit, onXTrue, onXFalse)
}

func addOp(x, y float64) float64 { return x + y }
func mulOp(x, y float64) float64 { return x * y }
func maxOp(x, y float64) float64 {
	if x > y {
		return x
	}
	return y
}
func minOp(x, y float64) float64 {
	if x < y {
		return x
	}
	return y
}
func orOp(x, y float64) float64 {
	if x != 0 || y != 0 {
		return 1
	}
	return 0
}
