package symbolic

import (
	"github.com/symdd/symdd/internal/dd"
	"github.com/symdd/symdd/internal/program"
)

// assembleSystem is S4 (spec.md §4.6): fold the composed system's
// per-action diagrams into the single transition diagram the model record
// carries, tagging each action with its synchronisation cube (MDP), or
// summing and row-normalising (DTMC), or just summing (CTMC). Returns the
// final transition ADD, the pre-normalisation raw sum (spec.md §4.7's
// "full pre-reachability transition matrix" that reward division needs —
// equal to the final ADD itself outside DTMC), and, for MDP, the trimmed
// set of nondeterminism variables actually in use.
func assembleSystem(gc *GenerationContext, system ModuleDD) (final, raw dd.ADD, nondet []dd.Var, err error) {
	m := gc.Manager

	switch gc.Program.Type {
	case program.MDP:
		final, nondet, err = assembleMDP(gc, system)
		return final, final, nondet, err
	case program.DTMC:
		raw = sumAllActions(gc, system)
		denom := raw.SumAbstractCols(gc.AllProgramVars())
		normalised := raw.Div(denom)
		return zeroWhereDenomZero(m, normalised, denom), raw, nil, nil
	case program.CTMC:
		raw = sumAllActions(gc, system)
		return raw, raw, nil, nil
	default:
		return dd.ADD{}, dd.ADD{}, nil, &InvalidModelTypeError{Type: gc.Program.Type}
	}
}

func sumAllActions(gc *GenerationContext, system ModuleDD) dd.ADD {
	trans := system.Independent.Trans
	for _, a := range system.actionsInOrder(gc.Program.AllActionLabels()) {
		if a == program.IndependentAction {
			continue
		}
		trans = trans.Add(system.ByAction[a].Trans)
	}
	return trans
}

// zeroWhereDenomZero guards the DTMC row-normalisation division: any row
// whose pre-normalisation sum is zero (no enabled command: a deadlock,
// patched later in S5) divides 0/0 into NaN under IEEE float semantics
// rather than staying zero, so it is explicitly re-zeroed here.
func zeroWhereDenomZero(m *dd.Manager, normalised, denom dd.ADD) dd.ADD {
	return denom.Neq0().ToBDD().Ite(normalised, m.Zero())
}

// assembleMDP pads every action onto the system-wide nondeterminism width,
// tags the independent action with the all-synchronisation-bits-zero cube
// and every synchronising action with its own bit set and every other
// cleared, sums, then reports only the nondeterminism variables the result
// actually depends on.
func assembleMDP(gc *GenerationContext, system ModuleDD) (dd.ADD, []dd.Var, error) {
	m := gc.Manager
	n := system.UsedNondet

	independentMask := allSyncZeroADD(gc)
	trans := padNondetZero(gc, system.Independent.Trans, system.Independent.UsedNondet, n).Mul(independentMask)

	for _, a := range system.actionsInOrder(gc.Program.AllActionLabels()) {
		if a == program.IndependentAction {
			continue
		}
		action := system.ByAction[a]
		padded := padNondetZero(gc, action.Trans, action.UsedNondet, n)
		mask := syncOnlyADD(gc, a)
		trans = trans.Add(padded.Mul(mask))
	}

	return trans, gc.NondetPool[:n], nil
}

// allSyncZeroADD is the 0/1 diagram holding where every synchronisation
// meta-variable is 0 (spec.md §4.6: the independent action's tag).
func allSyncZeroADD(gc *GenerationContext) dd.ADD {
	b := gc.Manager.True()
	for _, a := range gc.Program.AllActionLabels() {
		b = b.And(gc.SyncVars[a].RowLiteral(gc.Manager, false))
	}
	return b.ToADD()
}

// syncOnlyADD is the 0/1 diagram holding where action's synchronisation
// variable is 1 and every other action's is 0.
func syncOnlyADD(gc *GenerationContext, action program.ActionIndex) dd.ADD {
	b := gc.Manager.True()
	for _, a := range gc.Program.AllActionLabels() {
		b = b.And(gc.SyncVars[a].RowLiteral(gc.Manager, a == action))
	}
	return b.ToADD()
}
