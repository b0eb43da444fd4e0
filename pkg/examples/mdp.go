package examples

import (
	progbuilder "github.com/symdd/symdd/pkg/program"

	"github.com/symdd/symdd/internal/program"
)

// SyncReset is a two-module MDP, grounded on the same parallel-composition
// shape as TwoSidedCoin but exercising the nondeterministic and
// synchronising paths TwoSidedCoin never does: each module has two
// independent commands sharing one guard (combine_mdp partitions them into
// separate nondeterministic choices instead of combine_dtmc's weighted
// branches), and a "sync" action that only fires when both modules have it
// enabled simultaneously.
const SyncAction program.ActionIndex = 1

func SyncReset() program.Program {
	proc := func(name, v string) program.Module {
		return progbuilder.NewModuleBuilder(name).
			IntVar(v, 0, 2, 0).
			AddCommand(progbuilder.NewCommandBuilder(program.Eq(program.Var(v), program.Num(0))).
				Update(program.Num(1), progbuilder.Assign(v, program.Num(1))).
				Build()).
			AddCommand(progbuilder.NewCommandBuilder(program.Eq(program.Var(v), program.Num(0))).
				Update(program.Num(1), progbuilder.Assign(v, program.Num(2))).
				Build()).
			AddCommand(progbuilder.NewCommandBuilder(program.Or(
				program.Eq(program.Var(v), program.Num(1)),
				program.Eq(program.Var(v), program.Num(2)),
			)).
				Action(SyncAction).
				Update(program.Num(1), progbuilder.Assign(v, program.Num(0))).
				Build()).
			Build()
	}

	return progbuilder.NewProgramBuilder(program.MDP).
		AddModule(proc("proc1", "pc1")).
		AddModule(proc("proc2", "pc2")).
		Action(SyncAction, "sync").
		InitialCondition(program.And(
			program.Eq(program.Var("pc1"), program.Num(0)),
			program.Eq(program.Var("pc2"), program.Num(0)),
		)).
		Label("reset", program.And(
			program.Eq(program.Var("pc1"), program.Num(0)),
			program.Eq(program.Var("pc2"), program.Num(0)),
		)).
		Label("bothChosen", program.And(
			program.Neq(program.Var("pc1"), program.Num(0)),
			program.Neq(program.Var("pc2"), program.Num(0)),
		)).
		Reward(program.RewardStructure{
			Name: "resets",
			StateActionRewards: []program.StateActionReward{
				{Action: SyncAction, Predicate: program.Bool(true), Value: program.Num(1)},
			},
		}).
		Build()
}
