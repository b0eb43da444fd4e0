package symbolic

import (
	"github.com/symdd/symdd/internal/dd"
	"github.com/symdd/symdd/internal/diagnostics"
	"github.com/symdd/symdd/internal/program"
)

const stageCombine = "S2-combine"

// buildModuleDD builds module mi's ModuleDD: one ActionDD per action label it
// declares commands for, plus the independent action, combined per spec.md
// §4.4 (`combine_dtmc`/`combine_mdp`). nondetOffset is where every one of
// this module's MDP nondeterminism encodings starts, the independent action
// and each labelled action alike; the offset is not tracked per action label.
func buildModuleDD(gc *GenerationContext, mi int, nondetOffset int) (ModuleDD, error) {
	mod := gc.Program.Modules[mi]
	locals := gc.ModuleVars[mi]
	moduleRange := gc.ModuleRange[mi]

	result := ModuleDD{
		Independent: emptyActionDD(gc.Manager),
		ByAction:    make(map[program.ActionIndex]ActionDD),
		Identity:    gc.ModuleIdentity[mi],
	}

	actions := append([]program.ActionIndex{program.IndependentAction}, mod.ActionLabels()...)
	maxUsed := nondetOffset
	for _, action := range actions {
		cmds := mod.CommandsFor(action)
		if len(cmds) == 0 {
			continue
		}
		cmdDDs := make([]ActionDD, 0, len(cmds))
		for _, c := range cmds {
			adds, err := translateCommand(gc, mod.Name, locals, moduleRange, c)
			if err != nil {
				return ModuleDD{}, err
			}
			cmdDDs = append(cmdDDs, adds)
		}

		var combined ActionDD
		var err error
		switch gc.Program.Type {
		case program.DTMC, program.CTMC:
			combined = combineDTMC(gc, mod.Name, cmdDDs)
		case program.MDP:
			combined, err = combineMDP(gc, cmdDDs, nondetOffset)
			if err != nil {
				return ModuleDD{}, err
			}
		default:
			return ModuleDD{}, &InvalidModelTypeError{Type: gc.Program.Type}
		}

		if action == program.IndependentAction {
			result.Independent = combined
		} else {
			result.ByAction[action] = combined
		}
		if combined.UsedNondet > maxUsed {
			maxUsed = combined.UsedNondet
		}
	}
	result.UsedNondet = maxUsed

	return result, nil
}

// combineDTMC is spec.md §4.4's combine_dtmc: guards sum (OR, since they are
// 0/1), transitions sum weighted by their own guard. CTMC reuses this
// unchanged except for the overlap warning (rate addition is intentional
// there).
func combineDTMC(gc *GenerationContext, moduleName string, cmds []ActionDD) ActionDD {
	m := gc.Manager
	allGuards := m.False()
	allTrans := m.Zero()

	for i, c := range cmds {
		if gc.Program.Type != program.CTMC {
			for j := 0; j < i; j++ {
				if c.Guard.And(cmds[j].Guard).IsTrue() || !c.Guard.And(cmds[j].Guard).IsFalse() {
					gc.warn(stageCombine, diagnostics.OverlappingGuards,
						"module %q: two command guards overlap in a DTMC", moduleName)
				}
			}
		}
		allGuards = allGuards.Or(c.Guard)
		allTrans = allTrans.Add(c.Guard.ToADD().Mul(c.Trans))
	}

	return ActionDD{Guard: allGuards, Trans: allTrans}
}

// combineMDP is spec.md §4.4's combine_mdp: partition the commands enabled
// in each state into distinct nondeterminism-cube-tagged choice slots.
func combineMDP(gc *GenerationContext, cmds []ActionDD, offset int) (ActionDD, error) {
	m := gc.Manager

	s := m.Zero()
	for _, c := range cmds {
		s = s.Add(c.Guard.ToADD())
	}

	maxS := s.MaxAbstract(gc.AllProgramVars())
	maxVal, ok := maxS.IsConst()
	if !ok {
		return ActionDD{}, errCouldNotBoundChoiceCount
	}
	maxCount := int(maxVal + 0.5)
	if maxCount == 0 {
		return emptyActionDD(m), nil
	}

	width := log2Ceil(maxCount)
	if offset+width > len(gc.NondetPool) {
		return ActionDD{}, errNondetPoolExhausted
	}
	nondetVars := gc.NondetPool[offset : offset+width]

	slotTrans := make([]dd.ADD, maxCount)
	slotClaimed := make([]dd.BDD, maxCount)
	for i := range slotTrans {
		slotTrans[i] = m.Zero()
		slotClaimed[i] = m.False()
	}

	for k := 1; k <= maxCount; k++ {
		region := s.Eq(m.Const(float64(k))).ToBDD()
		if region.IsFalse() {
			continue
		}
		for _, c := range cmds {
			remaining := c.Guard.And(region)
			if remaining.IsFalse() {
				continue
			}
			for j := 0; j < k && !remaining.IsFalse(); j++ {
				avail := remaining.And(slotClaimed[j].Not())
				if avail.IsFalse() {
					continue
				}
				slotClaimed[j] = slotClaimed[j].Or(avail)
				slotTrans[j] = slotTrans[j].Add(avail.ToADD().Mul(c.Trans))
				remaining = remaining.And(avail.Not())
			}
		}
	}

	trans := m.Zero()
	for j := 0; j < maxCount; j++ {
		cube := dd.Cube(m, nondetVars, j)
		trans = trans.Add(cube.ToADD().Mul(slotTrans[j]))
	}

	allGuards := s.Neq0().ToBDD()
	return ActionDD{Guard: allGuards, Trans: trans, UsedNondet: offset + width}, nil
}

func log2Ceil(n int) int {
	w := 0
	for (1 << w) < n {
		w++
	}
	return w
}
