// Package dd is a reference implementation of the decision-diagram manager
// collaborator described in spec.md §6.1. Spec.md treats the manager as an
// out-of-scope black-box, so nothing in internal/symbolic depends on the
// concrete type below directly beyond the Var/ADD/BDD value types and the
// handful of operations spec.md names; a production deployment can swap in
// a different manager (e.g. one backed by CUDD via cgo) without touching
// internal/symbolic.
//
// Internally this is a multi-terminal binary decision diagram (MTBDD): one
// hash-consed, reduced, ordered node table shared by both BDD and ADD
// values. A BDD is simply an MTBDD whose only reachable terminal values are
// 0.0 and 1.0. Unifying the two avoids two parallel node tables and lets
// ToADD/ToBDD be free (they just change which Go wrapper type holds the same
// underlying node id).
package dd

import "fmt"

// nodeID indexes Manager.nodes. Two ids are always pre-allocated: 0 is the
// terminal 0.0, 1 is the terminal 1.0.
type nodeID int32

const falseID nodeID = 0
const trueID nodeID = 1

type ddNode struct {
	isTerm bool
	value  float64 // meaningful only if isTerm

	varIdx     int // meaningful only if !isTerm: index into Manager.varNames
	low, high  nodeID
}

type internalKey struct {
	varIdx    int
	low, high nodeID
}

// Manager owns the node table for one build. It is not safe for concurrent
// use by multiple goroutines (spec.md §5: the builder is single-threaded and
// never hands a diagram across threads during construction).
type Manager struct {
	nodes          []ddNode
	uniqueInternal map[internalKey]nodeID
	uniqueTerminal map[float64]nodeID
	varNames       []string // debug name of the DD boolean variable at each index, in allocation order

	uniqueHit  int
	uniqueMiss int
}

// NewManager returns a manager with only the two terminal nodes allocated.
func NewManager() *Manager {
	m := &Manager{
		uniqueInternal: make(map[internalKey]nodeID),
		uniqueTerminal: make(map[float64]nodeID),
	}
	m.nodes = append(m.nodes, ddNode{isTerm: true, value: 0.0}) // falseID
	m.nodes = append(m.nodes, ddNode{isTerm: true, value: 1.0}) // trueID
	m.uniqueTerminal[0.0] = falseID
	m.uniqueTerminal[1.0] = trueID
	return m
}

// NodeCount returns the number of distinct nodes ever allocated by this
// manager, a rough proxy for the diagram sizes the pipeline produced.
func (m *Manager) NodeCount() int { return len(m.nodes) }

// VarCount returns the number of underlying boolean DD variables allocated
// so far, across all meta-variables (row, column, nondeterminism and
// synchronisation layers alike).
func (m *Manager) VarCount() int { return len(m.varNames) }

func (m *Manager) newLayer(name string) int {
	idx := len(m.varNames)
	m.varNames = append(m.varNames, name)
	return idx
}

func (m *Manager) terminal(value float64) nodeID {
	if value == 0 {
		return falseID
	}
	if value == 1 {
		return trueID
	}
	if id, ok := m.uniqueTerminal[value]; ok {
		m.uniqueHit++
		return id
	}
	m.uniqueMiss++
	id := nodeID(len(m.nodes))
	m.nodes = append(m.nodes, ddNode{isTerm: true, value: value})
	m.uniqueTerminal[value] = id
	return id
}

// mkNode applies the BDD/ADD reduction rule (collapse a node whose two
// children are identical) before consulting the unique table, so every
// reachable node id denotes a canonical (reduced) function.
func (m *Manager) mkNode(varIdx int, low, high nodeID) nodeID {
	if low == high {
		return low
	}
	key := internalKey{varIdx, low, high}
	if id, ok := m.uniqueInternal[key]; ok {
		m.uniqueHit++
		return id
	}
	m.uniqueMiss++
	id := nodeID(len(m.nodes))
	m.nodes = append(m.nodes, ddNode{varIdx: varIdx, low: low, high: high})
	m.uniqueInternal[key] = id
	return id
}

// topVar returns a node's ordering key: its own variable index, or a
// sentinel greater than any real index for a terminal.
func (m *Manager) topVar(id nodeID) int {
	n := m.nodes[id]
	if n.isTerm {
		return 1 << 30
	}
	return n.varIdx
}

func (m *Manager) String() string {
	return fmt.Sprintf("dd.Manager{nodes=%d, vars=%d}", len(m.nodes), len(m.varNames))
}
