// Package model is the public surface a downstream model checker consumes:
// it wraps internal/symbolic's build pipeline behind a stable output record
// (spec.md §3.3/§6.4), the way the teacher's pkg/workflow wraps
// internal/application/executor behind DefinitionBuilder/Definition.
package model

import (
	"context"

	"github.com/symdd/symdd/internal/config"
	"github.com/symdd/symdd/internal/dd"
	"github.com/symdd/symdd/internal/diagnostics"
	"github.com/symdd/symdd/internal/program"
	"github.com/symdd/symdd/internal/symbolic"
)

// Reward is one named reward structure's built diagrams: a state reward, a
// state-action reward, and a transition reward, each already cut to the
// model's reachable states (spec.md §3.3: "each a triple of optional
// ADDs").
type Reward struct {
	State       dd.ADD
	StateAction dd.ADD
	Transition  dd.ADD
}

// Model is the tagged DTMC | CTMC | MDP output record spec.md §6.4
// describes. Every field is populated regardless of Type except Nondet,
// which is only meaningful (and only non-empty) for an MDP.
type Model struct {
	Type ModelType

	Manager *dd.Manager

	Reachable dd.BDD
	Initial   dd.BDD

	Transitions dd.ADD

	Vars    map[string]dd.Var
	Pairing []dd.VarPair
	Nondet  []dd.Var

	Labels  map[string]program.Expr
	Rewards map[string]Reward

	// DeadlocksFixed counts the reachable deadlock states that were
	// patched with a self-loop (spec.md §4.8); zero if none were found.
	DeadlocksFixed int
}

// ModelType mirrors program.ModelType for callers that only import
// pkg/model, not internal/program, to tag a request or a built Model.
type ModelType = program.ModelType

const (
	DTMC = program.DTMC
	CTMC = program.CTMC
	MDP  = program.MDP
)

// Re-exported error types (spec.md §7): aliased from internal/symbolic so a
// caller outside this module can still errors.As against the concrete
// kind without importing an internal package directly.
type (
	UndefinedConstantError = symbolic.UndefinedConstantError
	InvalidModelTypeError  = symbolic.InvalidModelTypeError
	DeadlockForbiddenError = symbolic.DeadlockForbiddenError
)

// Build translates program p into a symbolic DTMC/CTMC/MDP using a fresh
// dd.Manager, running the full S1-S7 pipeline (spec.md §2) and packaging
// the result per spec.md §6.4. buildID tags the diagnostic spans the build
// emits; pass "" if the caller has no correlation id to thread through.
func Build(ctx context.Context, p program.Program, opts config.Options, sink diagnostics.Sink, buildID string) (*Model, error) {
	m := dd.NewManager()
	result, err := symbolic.Build(ctx, m, p, opts, sink, buildID)
	if err != nil {
		return nil, err
	}

	rewards := make(map[string]Reward, len(result.Rewards))
	for name, r := range result.Rewards {
		rewards[name] = Reward{State: r.State, StateAction: r.StateAction, Transition: r.Transition}
	}

	return &Model{
		Type:           result.Type,
		Manager:        result.Manager,
		Reachable:      result.Reachable,
		Initial:        result.Initial,
		Transitions:    result.Transitions,
		Vars:           result.Vars,
		Pairing:        result.Pairing,
		Nondet:         result.Nondet,
		Labels:         result.Labels,
		Rewards:        rewards,
		DeadlocksFixed: result.DeadlocksFixed,
	}, nil
}

// ReachableStateCount returns the number of reachable states (spec.md §8's
// test scenarios report exactly this number for the standard PRISM
// benchmarks).
func (md *Model) ReachableStateCount() int {
	rowVars := make([]dd.Var, 0, len(md.Vars))
	for _, v := range md.Vars {
		rowVars = append(rowVars, v)
	}
	return md.Reachable.StateCount(rowVars)
}
