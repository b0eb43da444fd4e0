package dd

import "fmt"

// Var is a meta-variable: spec.md §6.1's unit of allocation, covering plain
// Boolean program variables, bounded integer program variables (row/column
// paired), and the unpaired Boolean layers used for nondeterminism and
// synchronisation encoding. Width is derived, never stored independently of
// the underlying layers, so it can never drift out of sync with them.
type Var struct {
	Name string
	Lo   int
	Hi   int

	rowLayers []int // DD variable indices, most-significant bit first
	colLayers []int // empty for an unpaired (nondet/sync) variable
}

// Width reports the number of boolean DD layers used to encode one side
// (row or column) of this variable's domain.
func (v Var) Width() int { return len(v.rowLayers) }

// Paired reports whether this variable has a column side (true for program
// variables allocated with AllocateBoolPair/AllocateIntPair; false for the
// unpaired layers AllocateBool returns for nondeterminism and
// synchronisation encoding).
func (v Var) Paired() bool { return len(v.colLayers) > 0 }

func bitWidth(lo, hi int) int {
	n := hi - lo + 1
	w := 0
	for (1 << w) < n {
		w++
	}
	return w
}

// AllocateBool allocates a single, unpaired boolean DD layer: used for
// nondeterminism-selector bits and synchronisation-selector bits, neither of
// which has a "next state" column counterpart.
func (m *Manager) AllocateBool(name string) Var {
	r := m.newLayer(name)
	return Var{Name: name, Lo: 0, Hi: 1, rowLayers: []int{r}}
}

// AllocateBoolPair allocates a row/column pair of boolean DD layers for a
// program boolean variable.
func (m *Manager) AllocateBoolPair(name string) Var {
	r := m.newLayer(name + "#r")
	c := m.newLayer(name + "#c")
	return Var{Name: name, Lo: 0, Hi: 1, rowLayers: []int{r}, colLayers: []int{c}}
}

// AllocateIntPair allocates a row/column pair of boolean DD layers wide
// enough to encode every integer in [lo, hi] (spec.md §4.1: width
// ⌈log2(hi-lo+1)⌉, 0 when the range is a single point).
func (m *Manager) AllocateIntPair(name string, lo, hi int) Var {
	width := bitWidth(lo, hi)
	rows := make([]int, width)
	cols := make([]int, width)
	for i := 0; i < width; i++ {
		rows[i] = m.newLayer(fmt.Sprintf("%s#r%d", name, i))
		cols[i] = m.newLayer(fmt.Sprintf("%s#c%d", name, i))
	}
	return Var{Name: name, Lo: lo, Hi: hi, rowLayers: rows, colLayers: cols}
}

func (m *Manager) literal(layer int, positive bool) BDD {
	if positive {
		return BDD{m: m, id: m.mkNode(layer, falseID, trueID)}
	}
	return BDD{m: m, id: m.mkNode(layer, trueID, falseID)}
}

// RowLiteral returns the boolean literal for this variable's row layer
// (width-1 variables only: nondeterminism bits, synchronisation bits, and
// plain boolean program variables).
func (v Var) RowLiteral(m *Manager, positive bool) BDD {
	return m.literal(v.rowLayers[0], positive)
}

func cubeOver(m *Manager, layers []int, code int) BDD {
	f := m.True()
	n := len(layers)
	for i, layer := range layers {
		bitPos := n - 1 - i
		bit := (code >> uint(bitPos)) & 1
		f = f.And(m.literal(layer, bit == 1))
	}
	return f
}

// Encoding returns the cube over this variable's row layers that holds
// exactly at state value == value (spec.md §6.1's encoding(v, value)).
func (v Var) Encoding(m *Manager, value int) BDD {
	return cubeOver(m, v.rowLayers, value-v.Lo)
}

// EncodingCol is Encoding's column-side counterpart, used wherever a
// diagram is being built over the "next state" copy of v.
func (v Var) EncodingCol(m *Manager, value int) BDD {
	return cubeOver(m, v.colLayers, value-v.Lo)
}

func rangeOver(m *Manager, layers []int, lo, hi int) BDD {
	if len(layers) == 0 {
		return m.True()
	}
	r := m.False()
	for val := lo; val <= hi; val++ {
		r = r.Or(cubeOver(m, layers, val-lo))
	}
	return r
}

// Range returns the BDD restricting this variable's row encoding to its
// declared domain [Lo, Hi] (spec.md §6.1's range(v); non-trivial only when
// Hi-Lo+1 is not a power of two, leaving spare codes above Hi unreachable).
func (v Var) Range(m *Manager) BDD {
	return rangeOver(m, v.rowLayers, v.Lo, v.Hi)
}

// RangeCol is Range's column-side counterpart.
func (v Var) RangeCol(m *Manager) BDD {
	return rangeOver(m, v.colLayers, v.Lo, v.Hi)
}

// bitEquality returns the BDD asserting each row layer equals its
// corresponding column layer (bitwise XNOR, conjoined across the width).
func (v Var) bitEquality(m *Manager) BDD {
	eq := m.True()
	for i := range v.rowLayers {
		r := m.literal(v.rowLayers[i], true)
		c := m.literal(v.colLayers[i], true)
		bitEq := r.And(c).Or(r.Not().And(c.Not()))
		eq = eq.And(bitEq)
	}
	return eq
}

// ColValueADD returns the arithmetic ADD whose value at any assignment
// equals the column encoding's integer value: Σ_k k·encodingCol(v, k). Used
// by update translation (spec.md §4.2) to state "the column copy of v
// equals e" as an ADD equality rather than a per-value case split.
func (v Var) ColValueADD(m *Manager) ADD {
	acc := m.Zero()
	for k := v.Lo; k <= v.Hi; k++ {
		acc = acc.Add(v.EncodingCol(m, k).ToADD().Mul(m.Const(float64(k))))
	}
	return acc
}

// Cube returns the conjunction of vars' row literals encoding code as a
// big-endian bitstring, one bit per variable, most significant first. vars
// must be unpaired single-layer meta-variables (nondeterminism or
// synchronisation bits); used to tag one specific choice or synchronisation
// pattern in a transition diagram.
func Cube(m *Manager, vars []Var, code int) BDD {
	f := m.True()
	n := len(vars)
	for i, v := range vars {
		bitPos := n - 1 - i
		bit := (code >> uint(bitPos)) & 1
		f = f.And(v.RowLiteral(m, bit == 1))
	}
	return f
}

// Identity returns the ADD for (v = v') ∧ v ∈ range(v) ∧ v' ∈ range(v)
// (spec.md §6.1's identity(v)): 1 where the row and column copies of v agree
// on an in-range value, 0 everywhere else. Every variable a command leaves
// untouched contributes its Identity factor to that command's update
// diagram.
func (v Var) Identity(m *Manager) ADD {
	if !v.Paired() {
		panic("dd: Identity requires a row/column paired variable")
	}
	b := v.bitEquality(m).And(v.Range(m)).And(v.RangeCol(m))
	return b.ToADD()
}
