package symbolic

import (
	"github.com/symdd/symdd/internal/dd"
	"github.com/symdd/symdd/internal/diagnostics"
	"github.com/symdd/symdd/internal/program"
)

const stageReachability = "S5-reachability"

// reachabilityResult carries S5's outputs (spec.md §4.8): the fixpoint
// reachable-states BDD, the initial-states BDD it grew from, the
// cut-to-reachable transition diagram and reward diagrams, and how many
// reachable deadlock states were patched (0 if none).
type reachabilityResult struct {
	Initial       dd.BDD
	Reachable     dd.BDD
	Trans         dd.ADD
	Rewards       map[string]RewardDD
	DeadlocksFixed int
}

// computeReachability is S5 (spec.md §4.8): build the initial-states BDD,
// run symbolic BFS to a fixpoint, cut transitions and rewards to the
// reachable fragment, then detect and patch (or reject) deadlocks. nondet
// is the trimmed set of nondeterminism variables S4 reported as actually in
// use (empty for DTMC/CTMC).
func computeReachability(gc *GenerationContext, trans dd.ADD, nondet []dd.Var, rewards map[string]RewardDD) (reachabilityResult, error) {
	m := gc.Manager

	initExpr, err := gc.RowTranslator().ToBDD(gc.Program.InitialCondition)
	if err != nil {
		return reachabilityResult{}, err
	}
	initial := initExpr
	for _, v := range gc.AllProgramVars() {
		initial = initial.And(v.Range(m))
	}

	// T = transitions ≠ 0, projected (MDP) by existentially abstracting
	// every nondeterminism variable and every synchronisation bit:
	// reachability never cares which choice was taken, only whether some
	// choice reaches the target.
	choiceVars := append([]dd.Var{}, nondet...)
	for _, v := range gc.SyncVars {
		choiceVars = append(choiceVars, v)
	}
	transBDD := trans.Neq0().ToBDD()
	if gc.Program.Type == program.MDP {
		transBDD = transBDD.ExistsAbstract(choiceVars)
	}

	rowVars := gc.AllProgramVars()
	reachable := initial
	for {
		pre := reachable.And(transBDD).ExistsAbstractRows(rowVars)
		grown := reachable.Or(pre.SwapVariables(gc.Pairing))
		if grown.Equals(reachable) {
			break
		}
		reachable = grown
	}

	reachableADD := reachable.ToADD()
	cutTrans := trans.Mul(reachableADD)

	cutRewards := make(map[string]RewardDD, len(rewards))
	for name, r := range rewards {
		cutRewards[name] = r.Cut(reachableADD)
	}

	// A deadlock is a reachable state with no outgoing transition: existentially
	// abstract every column (and, for MDP, nondet and synchronisation)
	// encoding out of the cut transition relation and test where that still
	// fails to hold.
	hasSuccessor := cutTrans.Neq0().ToBDD()
	if gc.Program.Type == program.MDP {
		hasSuccessor = hasSuccessor.ExistsAbstract(choiceVars)
	}
	hasSuccessor = hasSuccessor.ExistsAbstractCols(rowVars)
	deadlocks := reachable.And(hasSuccessor.Not())

	result := reachabilityResult{
		Initial:   initial,
		Reachable: reachable,
		Trans:     cutTrans,
		Rewards:   cutRewards,
	}

	if deadlocks.IsFalse() {
		return result, nil
	}

	count := deadlocks.StateCount(rowVars)
	if gc.Opts.DontFixDeadlocks {
		return reachabilityResult{}, &DeadlockForbiddenError{Count: count}
	}
	gc.warn(stageReachability, diagnostics.DeadlocksPatched,
		"patching %d reachable deadlock state(s) with a self-loop", count)
	result.Trans = patchDeadlocks(gc, result.Trans, deadlocks, nondet)
	result.DeadlocksFixed = count

	return result, nil
}

// patchDeadlocks attaches a self-loop to every deadlock state (spec.md
// §4.8): DTMC/CTMC add the system identity under the deadlock predicate;
// MDP additionally tags the self-loop with the "all nondeterminism
// variables zero" cube, the distinguished choice a scheduler sees when
// nothing else is enabled.
func patchDeadlocks(gc *GenerationContext, trans dd.ADD, deadlocks dd.BDD, nondet []dd.Var) dd.ADD {
	identity := gc.Manager.One()
	for _, v := range gc.AllProgramVars() {
		identity = identity.Mul(v.Identity(gc.Manager))
	}

	patch := deadlocks.ToADD().Mul(identity)
	if gc.Program.Type == program.MDP {
		allZero := gc.Manager.True()
		for _, v := range nondet {
			allZero = allZero.And(v.RowLiteral(gc.Manager, false))
		}
		patch = patch.Mul(allZero.ToADD())
	}
	return trans.Add(patch)
}
