package symbolic

import (
	"github.com/symdd/symdd/internal/dd"
	"github.com/symdd/symdd/internal/program"
)

// composeSystem is S3 (spec.md §4.5): fold every module's ModuleDD into one
// running system ModuleDD. For MDP each module's nondeterminism offset is
// the running system's overall UsedNondet (the maximum over all of its
// actions), not a per-action-label offset.
func composeSystem(gc *GenerationContext) (ModuleDD, error) {
	order := gc.Program.AllActionLabels()

	system, err := buildModuleDD(gc, 0, 0)
	if err != nil {
		return ModuleDD{}, err
	}

	for i := 1; i < len(gc.Program.Modules); i++ {
		offset := 0
		if gc.Program.Type == program.MDP {
			offset = system.UsedNondet
		}
		next, err := buildModuleDD(gc, i, offset)
		if err != nil {
			return ModuleDD{}, err
		}
		system = foldModule(gc, system, next, order)
	}

	return system, nil
}

// foldModule combines the running system with the next module (spec.md
// §4.5 steps 3-5).
func foldModule(gc *GenerationContext, system, next ModuleDD, order []program.ActionIndex) ModuleDD {
	result := ModuleDD{ByAction: make(map[program.ActionIndex]ActionDD)}

	result.Independent = combineUnsync(gc, system.Independent, system.Identity, next.Independent, next.Identity)
	maxNondet := result.Independent.UsedNondet

	seen := make(map[program.ActionIndex]bool)
	for _, a := range order {
		sysA, sysOK := system.ByAction[a]
		nextA, nextOK := next.ByAction[a]
		if seen[a] || (!sysOK && !nextOK) {
			continue
		}
		seen[a] = true

		var combined ActionDD
		switch {
		case sysOK && nextOK:
			combined = combineSync(gc, sysA, nextA)
		case sysOK:
			combined = combineUnsync(gc, sysA, system.Identity, emptyActionDD(gc.Manager), next.Identity)
		default:
			combined = combineUnsync(gc, emptyActionDD(gc.Manager), system.Identity, nextA, next.Identity)
		}
		result.ByAction[a] = combined
		if combined.UsedNondet > maxNondet {
			maxNondet = combined.UsedNondet
		}
	}

	result.Identity = system.Identity.Mul(next.Identity)
	result.UsedNondet = maxNondet
	return result
}

// combineUnsync is spec.md §4.5's combine_unsync, used both for independent
// actions and to pad an action present in only one module. aIdentity and
// bIdentity are the local-variable identity diagrams of the module (or
// already-composed sub-system) each side belongs to: a's contribution is
// padded with bIdentity so the side that did not act is provably unchanged,
// and vice versa.
func combineUnsync(gc *GenerationContext, a ActionDD, aIdentity dd.ADD, b ActionDD, bIdentity dd.ADD) ActionDD {
	m := gc.Manager
	guards := a.Guard.Or(b.Guard)

	if gc.Program.Type != program.MDP {
		trans := a.Trans.Mul(bIdentity).Add(b.Trans.Mul(aIdentity))
		return ActionDD{Guard: guards, Trans: trans}
	}

	aEmpty := a.Trans.IsZero() && a.Guard.IsFalse()
	bEmpty := b.Trans.IsZero() && b.Guard.IsFalse()
	if aEmpty {
		return ActionDD{Guard: guards, Trans: b.Trans.Mul(aIdentity), UsedNondet: b.UsedNondet}
	}
	if bEmpty {
		return ActionDD{Guard: guards, Trans: a.Trans.Mul(bIdentity), UsedNondet: a.UsedNondet}
	}

	n := a.UsedNondet
	if b.UsedNondet > n {
		n = b.UsedNondet
	}
	aTrans := padNondetZero(gc, a.Trans.Mul(bIdentity), a.UsedNondet, n)
	bTrans := padNondetZero(gc, b.Trans.Mul(aIdentity), b.UsedNondet, n)

	selector := gc.NondetPool[n]
	trans := selector.RowLiteral(m, true).Ite(bTrans, aTrans)

	return ActionDD{
		Guard:      guards,
		Trans:      trans,
		UsedNondet: n + 1,
	}
}

// combineSync is spec.md §4.5's combine_sync: guards and transitions
// multiply (conjunction of enabling conditions and updates), used_nondet is
// the max of the two sides.
func combineSync(gc *GenerationContext, a, b ActionDD) ActionDD {
	n := a.UsedNondet
	if b.UsedNondet > n {
		n = b.UsedNondet
	}
	return ActionDD{
		Guard:      a.Guard.And(b.Guard),
		Trans:      a.Trans.Mul(b.Trans),
		UsedNondet: n,
	}
}

// padNondetZero multiplies in "nondet[k] = 0" cubes for every nondet index
// in [from, to), aligning an ActionDD onto a wider shared nondeterminism
// encoding before it is ite-selected or summed against a peer (spec.md
// §4.5 step 3, §4.6).
func padNondetZero(gc *GenerationContext, trans dd.ADD, from, to int) dd.ADD {
	if to <= from {
		return trans
	}
	for i := from; i < to; i++ {
		trans = trans.Mul(gc.NondetPool[i].RowLiteral(gc.Manager, false).ToADD())
	}
	return trans
}
