package examples

import (
	progbuilder "github.com/symdd/symdd/pkg/program"

	"github.com/symdd/symdd/internal/program"
)

// BoundedQueue is a one-module CTMC: a queue of capacity 3 with a Poisson
// arrival rate of 2 and a service rate of 3. Arrivals and departures are
// both enabled on states 1 and 2, exercising a CTMC's tolerance for
// overlapping guards (no combine_dtmc normalisation applies) and a state
// reward paid only while the queue is full.
func BoundedQueue() program.Program {
	const capacity = 3
	const arrivalRate = 2.0
	const serviceRate = 3.0

	queue := progbuilder.NewModuleBuilder("queue").
		IntVar("n", 0, capacity, 0).
		AddCommand(progbuilder.NewCommandBuilder(program.Lt(program.Var("n"), program.Num(capacity))).
			Update(program.Num(arrivalRate), progbuilder.Assign("n", program.Add(program.Var("n"), program.Num(1)))).
			Build()).
		AddCommand(progbuilder.NewCommandBuilder(program.Gt(program.Var("n"), program.Num(0))).
			Update(program.Num(serviceRate), progbuilder.Assign("n", program.Sub(program.Var("n"), program.Num(1)))).
			Build()).
		Build()

	return progbuilder.NewProgramBuilder(program.CTMC).
		AddModule(queue).
		InitialCondition(program.Eq(program.Var("n"), program.Num(0))).
		Label("empty", program.Eq(program.Var("n"), program.Num(0))).
		Label("full", program.Eq(program.Var("n"), program.Num(capacity))).
		Reward(program.RewardStructure{
			Name: "blocking",
			StateRewards: []program.StateReward{
				{Predicate: program.Eq(program.Var("n"), program.Num(capacity)), Value: program.Num(1)},
			},
		}).
		Build()
}
