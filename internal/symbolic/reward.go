package symbolic

import (
	"github.com/symdd/symdd/internal/dd"
	"github.com/symdd/symdd/internal/diagnostics"
	"github.com/symdd/symdd/internal/program"
)

const stageReward = "S6-reward"

// RewardDD is one reward structure's output (spec.md §3.3: "each a triple
// of optional ADDs"): a state reward diagram, a state-action reward
// diagram, and a transition reward diagram, built and cut to reachable
// states independently so testable property 7 (Σ_col transition_reward =
// state_action_reward on every reachable state, for DTMC) is something a
// caller can actually check against two distinct diagrams.
type RewardDD struct {
	State       dd.ADD
	StateAction dd.ADD
	Transition  dd.ADD
}

// buildReward is S6 (spec.md §4.7) for one reward structure: state rewards
// sum directly; state-action and transition rewards are each summed
// separately, tagged with the naming action's synchronisation cube and
// masked by that action's own (pre-assembly) transition diagram, then —
// DTMC only — divided by the system's raw (pre-normalisation,
// pre-reachability) transition sum so the reward survives row-normalisation
// as a per-transition expectation.
func buildReward(gc *GenerationContext, system ModuleDD, rawTrans dd.ADD, r program.RewardStructure) (RewardDD, error) {
	m := gc.Manager
	negative := false

	state := m.Zero()
	for _, sr := range r.StateRewards {
		pred, err := gc.RowTranslator().ToBDD(sr.Predicate)
		if err != nil {
			return RewardDD{}, err
		}
		val, err := gc.RowTranslator().ToADD(sr.Value)
		if err != nil {
			return RewardDD{}, err
		}
		if val.HasNegativeTerminal() {
			negative = true
		}
		state = state.Add(pred.ToADD().Mul(val))
	}

	stateAction := m.Zero()
	for _, sar := range r.StateActionRewards {
		pred, err := gc.RowTranslator().ToBDD(sar.Predicate)
		if err != nil {
			return RewardDD{}, err
		}
		val, err := gc.RowTranslator().ToADD(sar.Value)
		if err != nil {
			return RewardDD{}, err
		}
		if val.HasNegativeTerminal() {
			negative = true
		}
		mask := actionMask(gc, system, sar.Action)
		stateAction = stateAction.Add(pred.ToADD().Mul(val).Mul(mask))
	}
	if gc.Program.Type == program.DTMC && !stateAction.IsZero() {
		stateAction = zeroWhereDenomZero(m, stateAction.Div(rawTrans), rawTrans)
	}

	transition := m.Zero()
	for _, tr := range r.TransitionRewards {
		srcPred, err := gc.RowTranslator().ToBDD(tr.SourcePredicate)
		if err != nil {
			return RewardDD{}, err
		}
		tgtPred, err := gc.ColTranslator().ToBDD(tr.TargetPredicate)
		if err != nil {
			return RewardDD{}, err
		}
		val, err := gc.RowTranslator().ToADD(tr.Value)
		if err != nil {
			return RewardDD{}, err
		}
		if val.HasNegativeTerminal() {
			negative = true
		}
		mask := actionMask(gc, system, tr.Action)
		transition = transition.Add(srcPred.And(tgtPred).ToADD().Mul(val).Mul(mask))
	}
	if gc.Program.Type == program.DTMC && !transition.IsZero() {
		transition = zeroWhereDenomZero(m, transition.Div(rawTrans), rawTrans)
	}

	if negative {
		gc.warn(stageReward, diagnostics.NegativeReward,
			"reward structure %q: a declared value is negative", r.Name)
	}
	if state.IsZero() && stateAction.IsZero() && transition.IsZero() {
		gc.warn(stageReward, diagnostics.AllZeroReward,
			"reward structure %q: every declared reward evaluates to zero", r.Name)
	}

	return RewardDD{State: state, StateAction: stateAction, Transition: transition}, nil
}

// Cut multiplies every component of r by the reachable-states ADD
// (spec.md §4.8: reward diagrams are restricted to the reachable fragment
// exactly as the transition diagram is).
func (r RewardDD) Cut(reachable dd.ADD) RewardDD {
	return RewardDD{
		State:       r.State.Mul(reachable),
		StateAction: r.StateAction.Mul(reachable),
		Transition:  r.Transition.Mul(reachable),
	}
}

// actionMask is the mask-and-tag factor rewards attach a given action's
// contribution with: the action's own synchronisation cube (or the
// all-zero cube for the independent action) times its transition diagram
// for DTMC, or that diagram's non-zero predicate otherwise (spec.md §4.7).
func actionMask(gc *GenerationContext, system ModuleDD, action program.ActionIndex) dd.ADD {
	var trans dd.ADD
	var tag dd.ADD
	if action == program.IndependentAction {
		trans = system.Independent.Trans
		tag = allSyncZeroADD(gc)
	} else {
		trans = system.ByAction[action].Trans
		tag = syncOnlyADD(gc, action)
	}
	if gc.Program.Type == program.DTMC {
		return trans.Mul(tag)
	}
	return trans.Neq0().Mul(tag)
}
