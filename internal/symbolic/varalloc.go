package symbolic

import (
	"strconv"

	"github.com/symdd/symdd/internal/config"
	"github.com/symdd/symdd/internal/dd"
	"github.com/symdd/symdd/internal/diagnostics"
	"github.com/symdd/symdd/internal/program"
)

const stageVarAlloc = "S1-varalloc"

// AllocateVariables is S1 (spec.md §4.1): allocate, in order, one
// synchronisation meta-variable per action label, the nondeterminism pool,
// then a row/column pair for every global and module-local program
// variable, and precompute each module's identity/range product (the
// per-variable identity and range diagrams are not cached; later stages
// rebuild them from the dd.Var on demand).
func AllocateVariables(m *dd.Manager, p program.Program, opts config.Options, sink diagnostics.Sink) (*GenerationContext, error) {
	gc := &GenerationContext{
		Manager:  m,
		Program:  p,
		Opts:     opts,
		Sink:     sink,
		Vars:     make(map[string]dd.Var),
		SyncVars: make(map[program.ActionIndex]dd.Var),
		Kinds:    make(map[string]program.VarKind),
	}

	// (1) One synchronisation meta-variable per action label.
	for _, a := range p.Actions {
		gc.SyncVars[a.Index] = m.AllocateBool(syncVarName(a))
	}
	for _, a := range p.AllActionLabels() {
		if _, ok := gc.SyncVars[a]; !ok {
			gc.SyncVars[a] = m.AllocateBool(syncVarName(program.ActionName{Index: a}))
		}
	}

	// (2) Nondeterminism pool: |Modules| + Σ|Commands| upper bound.
	nondetWidth := len(p.Modules)
	for _, mod := range p.Modules {
		nondetWidth += len(mod.Commands)
	}
	if p.Type == program.MDP {
		gc.NondetPool = make([]dd.Var, nondetWidth)
		for i := range gc.NondetPool {
			gc.NondetPool[i] = m.AllocateBool(nondetVarName(i))
		}
	}

	// (3) Row/column pairs for globals, then each module's locals.
	allocVar := func(v program.Variable) dd.Var {
		gc.Kinds[v.VarName()] = v.Kind()
		switch v.Kind() {
		case program.KindBool:
			dv := m.AllocateBoolPair(v.VarName())
			gc.Vars[v.VarName()] = dv
			gc.Pairing = append(gc.Pairing, dd.VarPair{Row: dv, Col: dv})
			return dv
		default:
			iv := v.(program.IntVar)
			dv := m.AllocateIntPair(v.VarName(), iv.Lo, iv.Hi)
			gc.Vars[v.VarName()] = dv
			gc.Pairing = append(gc.Pairing, dd.VarPair{Row: dv, Col: dv})
			return dv
		}
	}

	for _, v := range p.GlobalVariables() {
		allocVar(v)
		gc.GlobalVars = append(gc.GlobalVars, v.VarName())
	}

	gc.ModuleVars = make([][]string, len(p.Modules))
	gc.ModuleIdentity = make([]dd.ADD, len(p.Modules))
	gc.ModuleRange = make([]dd.BDD, len(p.Modules))
	for mi, mod := range p.Modules {
		names := make([]string, 0, len(mod.Variables()))
		for _, v := range mod.Variables() {
			allocVar(v)
			names = append(names, v.VarName())
		}
		gc.ModuleVars[mi] = names

		identity := m.One()
		rng := m.True()
		for _, name := range names {
			v := gc.Vars[name]
			identity = identity.Mul(v.Identity(m))
			rng = rng.And(v.Range(m))
		}
		gc.ModuleIdentity[mi] = identity
		gc.ModuleRange[mi] = rng
	}

	return gc, nil
}

func syncVarName(a program.ActionName) string {
	if a.Name != "" {
		return "sync#" + a.Name
	}
	return "sync#action"
}

func nondetVarName(i int) string {
	return "nondet#" + strconv.Itoa(i)
}
