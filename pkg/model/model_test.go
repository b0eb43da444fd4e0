package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symdd/symdd/internal/config"
	"github.com/symdd/symdd/internal/diagnostics"
	internalprogram "github.com/symdd/symdd/internal/program"
	"github.com/symdd/symdd/pkg/program"
)

// twoSidedCoin builds a one-module DTMC: a single variable s in [0,2]
// starting at 0, flipping to 1 or 2 with equal probability and then
// staying put (s=1 and s=2 are absorbing via a self-loop command), so the
// model has no deadlocks and exactly 3 reachable states.
func twoSidedCoin() internalprogram.Program {
	s := internalprogram.Var("s")
	flip := program.NewModuleBuilder("coin").
		IntVar("s", 0, 2, 0).
		AddCommand(
			program.NewCommandBuilder(internalprogram.Eq(s, internalprogram.Num(0))).
				Update(internalprogram.Num(0.5), program.Assign("s", internalprogram.Num(1))).
				Update(internalprogram.Num(0.5), program.Assign("s", internalprogram.Num(2))).
				Build(),
		).
		AddCommand(
			program.NewCommandBuilder(internalprogram.Neq(s, internalprogram.Num(0))).
				Update(internalprogram.Num(1), program.Assign("s", s)).
				Build(),
		).
		Build()

	return program.NewProgramBuilder(internalprogram.DTMC).
		AddModule(flip).
		Label("heads", internalprogram.Eq(s, internalprogram.Num(1))).
		Reward(internalprogram.RewardStructure{
			Name:         "flips",
			StateRewards: []internalprogram.StateReward{{Predicate: internalprogram.Eq(s, internalprogram.Num(0)), Value: internalprogram.Num(1)}},
		}).
		InitialCondition(internalprogram.Eq(s, internalprogram.Num(0))).
		Build()
}

func TestBuild_TwoSidedCoin_DTMC(t *testing.T) {
	p := twoSidedCoin()
	sink := diagnostics.NewCollectSink()
	opts := config.Options{BuildAllRewardModels: true}

	md, err := Build(context.Background(), p, opts, sink, "test-coin")
	require.NoError(t, err)

	assert.Equal(t, 3, md.ReachableStateCount())
	assert.Equal(t, 0, md.DeadlocksFixed)

	reward, ok := md.Rewards["flips"]
	require.True(t, ok)
	assert.False(t, reward.State.IsZero())
}

func TestBuild_RejectsInvalidModelType(t *testing.T) {
	p := twoSidedCoin()
	p.Type = internalprogram.ModelType("quantum")

	_, err := Build(context.Background(), p, config.Options{}, diagnostics.NoopSink{}, "")
	require.Error(t, err)
}

func TestBuild_UndefinedConstant(t *testing.T) {
	p := twoSidedCoin()
	p.InitialCondition = internalprogram.Eq(internalprogram.Var("s"), internalprogram.ConstantRef("N"))

	_, err := Build(context.Background(), p, config.Options{}, diagnostics.NoopSink{}, "")
	require.Error(t, err)
	var uce *UndefinedConstantError
	require.ErrorAs(t, err, &uce)
	assert.Equal(t, []string{"N"}, uce.Names)
}
