package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpr_Render(t *testing.T) {
	e := And(Lt(Var("x"), Num(5)), Eq(Var("s"), Num(2)))
	assert.Equal(t, "((x < (5)) && (s == (2)))", e.Render())
}

func TestExpr_FreeVars(t *testing.T) {
	e := If(And(Var("x"), Not(Var("y"))), Add(Var("z"), Var("x")), Num(0))
	assert.Equal(t, []string{"x", "y", "z"}, FreeVars(e))
}

func TestModule_CommandsFor(t *testing.T) {
	m := Module{
		Name: "die",
		Commands: []Command{
			{Action: IndependentAction, Guard: Bool(true), Update: []WeightedUpdate{{Likelihood: Num(1), Update: Update{}}}},
			{Action: ActionIndex(1), Guard: Bool(true), Update: []WeightedUpdate{{Likelihood: Num(1), Update: Update{}}}},
			{Action: ActionIndex(1), Guard: Bool(false), Update: []WeightedUpdate{{Likelihood: Num(1), Update: Update{}}}},
		},
	}

	indep := m.CommandsFor(IndependentAction)
	assert.Len(t, indep, 1)

	labelled := m.CommandsFor(ActionIndex(1))
	assert.Len(t, labelled, 2)

	assert.Equal(t, []ActionIndex{1}, m.ActionLabels())
}

func TestProgram_Validate(t *testing.T) {
	valid := Program{
		Type: DTMC,
		Modules: []Module{
			{
				Name:    "m",
				IntVars: []IntVar{{Name: "s", Lo: 0, Hi: 2, Init: 0}},
				Commands: []Command{
					{Guard: Bool(true), Update: []WeightedUpdate{{Likelihood: Num(1), Update: Update{
						Assignments: []Assignment{{Variable: "s", Value: Num(1)}},
					}}}},
				},
			},
		},
		InitialCondition: Eq(Var("s"), Num(0)),
	}
	require.NoError(t, valid.Validate())

	invalid := valid
	invalid.Type = ModelType("quantum")
	assert.Error(t, invalid.Validate())

	noModules := valid
	noModules.Modules = nil
	assert.Error(t, noModules.Validate())

	noInit := valid
	noInit.InitialCondition = nil
	assert.Error(t, noInit.Validate())
}

func TestIntVar_Validate(t *testing.T) {
	assert.NoError(t, IntVar{Name: "x", Lo: 0, Hi: 3, Init: 1}.Validate())
	assert.Error(t, IntVar{Name: "x", Lo: 3, Hi: 0, Init: 1}.Validate())
	assert.Error(t, IntVar{Name: "x", Lo: 0, Hi: 3, Init: 9}.Validate())
}

func TestCommand_Validate(t *testing.T) {
	assert.Error(t, Command{Guard: Bool(true)}.Validate())
	assert.NoError(t, Command{Guard: Bool(true), Update: []WeightedUpdate{{Likelihood: Num(1)}}}.Validate())
}

func TestUpdate_AssignsTo(t *testing.T) {
	u := Update{Assignments: []Assignment{{Variable: "x", Value: Num(1)}}}
	assert.True(t, u.AssignsTo("x"))
	assert.False(t, u.AssignsTo("y"))
}

func TestPreserveFormula(t *testing.T) {
	phi := And(LabelRef("goal"), RewardRef("time"))
	rewards, labels := PreserveFormula(phi)
	assert.Equal(t, []string{"time"}, rewards)
	assert.Equal(t, []string{"goal"}, labels)
}

func TestRewardStructure_IsEmpty(t *testing.T) {
	assert.True(t, RewardStructure{Name: "empty"}.IsEmpty())
	nonEmpty := RewardStructure{Name: "r", StateRewards: []StateReward{{Predicate: Bool(true), Value: Num(1)}}}
	assert.False(t, nonEmpty.IsEmpty())
}
