// Package program is the public, fluent way to construct a program.Program
// abstract syntax tree in Go without a text parser — grounded on the
// teacher's pkg/workflow DefinitionBuilder/NodeDefBuilder/EdgeDefBuilder
// chain. Tests and examples use this instead of a PRISM-syntax front end,
// which remains out of scope (spec.md §1).
package program

import (
	"github.com/symdd/symdd/internal/program"
)

// ProgramBuilder assembles a program.Program.
type ProgramBuilder struct {
	p program.Program
}

// NewProgramBuilder starts a builder for the given model type.
func NewProgramBuilder(modelType program.ModelType) *ProgramBuilder {
	return &ProgramBuilder{p: program.Program{
		Type:   modelType,
		Labels: map[string]program.Expr{},
	}}
}

func (b *ProgramBuilder) AddModule(m program.Module) *ProgramBuilder {
	b.p.Modules = append(b.p.Modules, m)
	return b
}

func (b *ProgramBuilder) GlobalBool(name string, init bool) *ProgramBuilder {
	b.p.GlobalBoolVars = append(b.p.GlobalBoolVars, program.BoolVar{Name: name, Init: init})
	return b
}

func (b *ProgramBuilder) GlobalInt(name string, lo, hi, init int) *ProgramBuilder {
	b.p.GlobalIntVars = append(b.p.GlobalIntVars, program.IntVar{Name: name, Lo: lo, Hi: hi, Init: init})
	return b
}

func (b *ProgramBuilder) Label(name string, predicate program.Expr) *ProgramBuilder {
	if b.p.Labels == nil {
		b.p.Labels = map[string]program.Expr{}
	}
	b.p.Labels[name] = predicate
	return b
}

func (b *ProgramBuilder) Reward(r program.RewardStructure) *ProgramBuilder {
	b.p.Rewards = append(b.p.Rewards, r)
	return b
}

func (b *ProgramBuilder) Action(index program.ActionIndex, name string) *ProgramBuilder {
	b.p.Actions = append(b.p.Actions, program.ActionName{Index: index, Name: name})
	return b
}

func (b *ProgramBuilder) InitialCondition(cond program.Expr) *ProgramBuilder {
	b.p.InitialCondition = cond
	return b
}

// Build returns the assembled Program. It does not validate; call
// program.Program.Validate() explicitly if needed.
func (b *ProgramBuilder) Build() program.Program {
	return b.p
}

// ModuleBuilder assembles one program.Module.
type ModuleBuilder struct {
	m program.Module
}

func NewModuleBuilder(name string) *ModuleBuilder {
	return &ModuleBuilder{m: program.Module{Name: name}}
}

func (b *ModuleBuilder) BoolVar(name string, init bool) *ModuleBuilder {
	b.m.BoolVars = append(b.m.BoolVars, program.BoolVar{Name: name, Init: init})
	return b
}

func (b *ModuleBuilder) IntVar(name string, lo, hi, init int) *ModuleBuilder {
	b.m.IntVars = append(b.m.IntVars, program.IntVar{Name: name, Lo: lo, Hi: hi, Init: init})
	return b
}

func (b *ModuleBuilder) AddCommand(c program.Command) *ModuleBuilder {
	b.m.Commands = append(b.m.Commands, c)
	return b
}

func (b *ModuleBuilder) Build() program.Module {
	return b.m
}

// CommandBuilder assembles one program.Command.
type CommandBuilder struct {
	c program.Command
}

func NewCommandBuilder(guard program.Expr) *CommandBuilder {
	return &CommandBuilder{c: program.Command{Action: program.IndependentAction, Guard: guard}}
}

func (b *CommandBuilder) Action(a program.ActionIndex) *CommandBuilder {
	b.c.Action = a
	return b
}

// Update appends a weighted update branch with the given likelihood
// expression (a probability for DTMC/MDP, a rate for CTMC) and assignments.
func (b *CommandBuilder) Update(likelihood program.Expr, assignments ...program.Assignment) *CommandBuilder {
	b.c.Update = append(b.c.Update, program.WeightedUpdate{
		Likelihood: likelihood,
		Update:     program.Update{Assignments: assignments},
	})
	return b
}

func (b *CommandBuilder) Build() program.Command {
	return b.c
}

// Assign is a convenience constructor for one program.Assignment.
func Assign(variable string, value program.Expr) program.Assignment {
	return program.Assignment{Variable: variable, Value: value}
}
