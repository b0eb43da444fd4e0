package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalprogram "github.com/symdd/symdd/internal/program"
)

func TestProgramBuilder_BuildsTwoSidedDie(t *testing.T) {
	flip := NewModuleBuilder("coin").
		IntVar("s", 0, 2, 0).
		AddCommand(
			NewCommandBuilder(internalprogram.Eq(internalprogram.Var("s"), internalprogram.Num(0))).
				Update(internalprogram.Num(0.5), Assign("s", internalprogram.Num(1))).
				Update(internalprogram.Num(0.5), Assign("s", internalprogram.Num(2))).
				Build(),
		).
		Build()

	p := NewProgramBuilder(internalprogram.DTMC).
		AddModule(flip).
		Label("heads", internalprogram.Eq(internalprogram.Var("s"), internalprogram.Num(1))).
		InitialCondition(internalprogram.Eq(internalprogram.Var("s"), internalprogram.Num(0))).
		Build()

	require.NoError(t, p.Validate())
	assert.Len(t, p.Modules, 1)
	assert.Contains(t, p.Labels, "heads")
	assert.Equal(t, internalprogram.DTMC, p.Type)

	cmd := p.Modules[0].Commands[0]
	assert.True(t, cmd.IsIndependent())
	assert.Len(t, cmd.Update, 2)
}

func TestProgramBuilder_GlobalsAndRewards(t *testing.T) {
	p := NewProgramBuilder(internalprogram.MDP).
		GlobalBool("done", false).
		GlobalInt("count", 0, 10, 0).
		Reward(internalprogram.RewardStructure{
			Name:         "steps",
			StateRewards: []internalprogram.StateReward{{Predicate: internalprogram.Bool(true), Value: internalprogram.Num(1)}},
		}).
		Action(1, "sync").
		InitialCondition(internalprogram.Bool(true)).
		AddModule(NewModuleBuilder("m").Build()).
		Build()

	require.Len(t, p.GlobalBoolVars, 1)
	require.Len(t, p.GlobalIntVars, 1)
	require.Len(t, p.Rewards, 1)
	require.Len(t, p.Actions, 1)
	assert.Equal(t, "sync", p.Actions[0].Name)
}
