// Package examples builds small, complete program.Program values for each
// of the three supported model types, the way the teacher's
// examples/basic, examples/simple-workflow and examples/parallel-workflow
// demonstrate its executor end to end with hand-built workflow
// definitions rather than a loader reading files off disk.
package examples

import (
	progbuilder "github.com/symdd/symdd/pkg/program"

	"github.com/symdd/symdd/internal/program"
)

// TwoSidedCoin is a one-module DTMC: a fair coin starts unflipped, flips to
// heads or tails with equal probability, then self-loops forever. It
// exercises S2's combine_dtmc splitting one guard into a two-branch
// distribution, and a state reward paid only in the pre-flip state.
func TwoSidedCoin() program.Program {
	coin := progbuilder.NewModuleBuilder("coin").
		IntVar("s", 0, 2, 0).
		AddCommand(progbuilder.NewCommandBuilder(program.Eq(program.Var("s"), program.Num(0))).
			Update(program.Num(0.5), progbuilder.Assign("s", program.Num(1))).
			Update(program.Num(0.5), progbuilder.Assign("s", program.Num(2))).
			Build()).
		AddCommand(progbuilder.NewCommandBuilder(program.Neq(program.Var("s"), program.Num(0))).
			Update(program.Num(1), progbuilder.Assign("s", program.Var("s"))).
			Build()).
		Build()

	return progbuilder.NewProgramBuilder(program.DTMC).
		AddModule(coin).
		InitialCondition(program.Eq(program.Var("s"), program.Num(0))).
		Label("heads", program.Eq(program.Var("s"), program.Num(1))).
		Label("tails", program.Eq(program.Var("s"), program.Num(2))).
		Reward(program.RewardStructure{
			Name: "flips",
			StateRewards: []program.StateReward{
				{Predicate: program.Eq(program.Var("s"), program.Num(0)), Value: program.Num(1)},
			},
		}).
		Build()
}
