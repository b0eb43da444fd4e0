package symbolic

import (
	"context"

	"github.com/symdd/symdd/internal/config"
	"github.com/symdd/symdd/internal/dd"
	"github.com/symdd/symdd/internal/diagnostics"
	"github.com/symdd/symdd/internal/program"
)

// Result is the symbolic builder's output (spec.md §3.3/§6.4) before it is
// wrapped into the public pkg/model.Model record: a DTMC/CTMC/MDP's
// reachable/initial state sets, its transition diagram, its row/column
// meta-variable bookkeeping, and its named reward diagrams.
type Result struct {
	Type           program.ModelType
	Manager        *dd.Manager
	Reachable      dd.BDD
	Initial        dd.BDD
	Transitions    dd.ADD
	Vars           map[string]dd.Var
	Pairing        []dd.VarPair
	Nondet         []dd.Var // MDP only
	Labels         map[string]program.Expr
	Rewards        map[string]RewardDD
	DeadlocksFixed int
}

// Build runs the full S1-S7 pipeline (spec.md §2) over p with manager m,
// threading one GenerationContext through every stage per spec.md §3.2's
// lifecycle. buildID is only used to tag diagnostic spans (spec.md §5: the
// builder itself does not configure a trace exporter).
//
// Build substitutes opts.ConstantDefinitions into p first and returns an
// *UndefinedConstantError (spec.md §7) if any ConstantRef node is still
// unresolved anywhere in p afterwards.
func Build(ctx context.Context, m *dd.Manager, p program.Program, opts config.Options, sink diagnostics.Sink, buildID string) (*Result, error) {
	if !p.Type.IsValid() {
		return nil, &InvalidModelTypeError{Type: p.Type}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	substituted, missing := program.SubstituteConstants(p, opts.ConstantDefinitions)
	if len(missing) > 0 {
		return nil, &UndefinedConstantError{Names: missing}
	}
	p = substituted
	if sink == nil {
		sink = diagnostics.NoopSink{}
	}

	order, err := StageOrder()
	if err != nil {
		return nil, err
	}

	var (
		gc      *GenerationContext
		system  ModuleDD
		final   dd.ADD
		raw     dd.ADD
		nondet  []dd.Var
		rewards map[string]RewardDD
		reach   reachabilityResult
	)

	for _, stage := range order {
		_, end := diagnostics.StartStage(ctx, stage, buildID)
		var stageErr error
		switch stage {
		case StageVarAlloc:
			gc, stageErr = AllocateVariables(m, p, opts, sink)
		case StageCompose:
			system, stageErr = composeSystem(gc)
		case StageAssemble:
			final, raw, nondet, stageErr = assembleSystem(gc, system)
		case StageReward:
			rewards, stageErr = buildSelectedRewards(gc, system, raw, opts)
		case StageReachability:
			reach, stageErr = computeReachability(gc, final, nondet, rewards)
		case StagePackaging:
			// No diagram work: S7 just assembles Result below.
		}
		end()
		if stageErr != nil {
			return nil, stageErr
		}
	}

	return &Result{
		Type:           p.Type,
		Manager:        m,
		Reachable:      reach.Reachable,
		Initial:        reach.Initial,
		Transitions:    reach.Trans,
		Vars:           gc.Vars,
		Pairing:        gc.Pairing,
		Nondet:         nondet,
		Labels:         p.Labels,
		Rewards:        reach.Rewards,
		DeadlocksFixed: reach.DeadlocksFixed,
	}, nil
}

// buildSelectedRewards builds spec.md §4.7's reward diagrams for exactly
// the reward structures opts.SelectedRewards names, skipping everything
// else — rewards are built against the pre-reachability system (§4.7: "must
// be built before the transition matrix is restricted to reachable
// states"), so this runs before S5 even though it is reported as its own
// stage.
func buildSelectedRewards(gc *GenerationContext, system ModuleDD, rawTrans dd.ADD, opts config.Options) (map[string]RewardDD, error) {
	selected := opts.SelectedRewards(gc.Program)
	out := make(map[string]RewardDD, len(selected))
	for _, name := range selected {
		r, ok := gc.Program.RewardByName(name)
		if !ok {
			continue
		}
		rdd, err := buildReward(gc, system, rawTrans, r)
		if err != nil {
			return nil, err
		}
		out[name] = rdd
	}
	return out, nil
}
