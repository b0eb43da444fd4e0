package program

import "sort"

// ConstantRef names a symbolic constant referenced by a program before
// substitution (spec.md §6.3's constant_definitions, §7's
// UndefinedConstant). A Program handed to the builder is expected to carry
// no live ConstantRef nodes; SubstituteConstants is how a caller resolves
// them from a name→value table before the build proceeds.
type ConstantRef string

func (c ConstantRef) Render() string {
	panic("program: ConstantRef " + string(c) + " was never substituted and reached the expression translator")
}
func (ConstantRef) exprNode() {}

// SubstituteConstants walks every expression reachable from p (guards,
// likelihoods, assignment values, the initial condition, label predicates
// and every reward structure's predicates/values) and replaces each
// ConstantRef with its value from defs, returning the rewritten program and
// the sorted, de-duplicated names of any ConstantRef left unresolved.
// spec.md §7's UndefinedConstant error is the caller's responsibility to
// raise when the returned name list is non-empty.
func SubstituteConstants(p Program, defs map[string]float64) (Program, []string) {
	missing := make(map[string]struct{})
	sub := func(e Expr) Expr {
		if e == nil {
			return nil
		}
		return substituteExpr(e, defs, missing)
	}

	out := p
	out.InitialCondition = sub(p.InitialCondition)

	if p.Labels != nil {
		labels := make(map[string]Expr, len(p.Labels))
		for name, e := range p.Labels {
			labels[name] = sub(e)
		}
		out.Labels = labels
	}

	out.Rewards = make([]RewardStructure, len(p.Rewards))
	for i, r := range p.Rewards {
		nr := r
		nr.StateRewards = make([]StateReward, len(r.StateRewards))
		for j, sr := range r.StateRewards {
			nr.StateRewards[j] = StateReward{Predicate: sub(sr.Predicate), Value: sub(sr.Value)}
		}
		nr.StateActionRewards = make([]StateActionReward, len(r.StateActionRewards))
		for j, sar := range r.StateActionRewards {
			nr.StateActionRewards[j] = StateActionReward{Action: sar.Action, Predicate: sub(sar.Predicate), Value: sub(sar.Value)}
		}
		nr.TransitionRewards = make([]TransitionReward, len(r.TransitionRewards))
		for j, tr := range r.TransitionRewards {
			nr.TransitionRewards[j] = TransitionReward{
				Action:          tr.Action,
				SourcePredicate: sub(tr.SourcePredicate),
				TargetPredicate: sub(tr.TargetPredicate),
				Value:           sub(tr.Value),
			}
		}
		out.Rewards[i] = nr
	}

	out.Modules = make([]Module, len(p.Modules))
	for i, mod := range p.Modules {
		nm := mod
		nm.Commands = make([]Command, len(mod.Commands))
		for j, c := range mod.Commands {
			nc := c
			nc.Guard = sub(c.Guard)
			nc.Update = make([]WeightedUpdate, len(c.Update))
			for k, wu := range c.Update {
				nwu := wu
				nwu.Likelihood = sub(wu.Likelihood)
				nwu.Update.Assignments = make([]Assignment, len(wu.Update.Assignments))
				for l, a := range wu.Update.Assignments {
					nwu.Update.Assignments[l] = Assignment{Variable: a.Variable, Value: sub(a.Value)}
				}
				nc.Update[k] = nwu
			}
			nm.Commands[j] = nc
		}
		out.Modules[i] = nm
	}

	names := make([]string, 0, len(missing))
	for n := range missing {
		names = append(names, n)
	}
	sort.Strings(names)
	return out, names
}

func substituteExpr(e Expr, defs map[string]float64, missing map[string]struct{}) Expr {
	switch n := e.(type) {
	case ConstantRef:
		if v, ok := defs[string(n)]; ok {
			return NumLit(v)
		}
		missing[string(n)] = struct{}{}
		return n
	case UnaryOp:
		return UnaryOp{Op: n.Op, X: substituteExpr(n.X, defs, missing)}
	case BinaryOp:
		return BinaryOp{Op: n.Op, X: substituteExpr(n.X, defs, missing), Y: substituteExpr(n.Y, defs, missing)}
	case Ternary:
		return Ternary{
			Cond: substituteExpr(n.Cond, defs, missing),
			Then: substituteExpr(n.Then, defs, missing),
			Else: substituteExpr(n.Else, defs, missing),
		}
	default:
		return e
	}
}
