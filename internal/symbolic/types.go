// Package symbolic implements the symbolic model builder: the S1-S7
// pipeline described by the generation context that turns a program.Program
// AST plus a dd.Manager into a packaged DTMC/CTMC/MDP Model. This is the
// core the rest of the module exists to support.
package symbolic

import (
	"errors"
	"fmt"

	"github.com/symdd/symdd/internal/dd"
	"github.com/symdd/symdd/internal/program"
)

// errCouldNotBoundChoiceCount reports that the "enabled command count"
// diagram combine_mdp needs (spec.md §4.4) did not reduce to a single
// constant after MaxAbstract eliminated every program variable — this would
// indicate a manager/elimination bug, not a malformed program, since every
// program variable is always eliminated here.
var errCouldNotBoundChoiceCount = errors.New("symbolic: could not determine a constant bound on enabled command count")

// errNondetPoolExhausted reports that a module's MDP nondeterminism
// encoding would need more bits than S1 reserved for it (spec.md §4.1's
// nondet pool sizing: one bit per module-or-command, which combine_mdp's
// width can never exceed for a single action — exhaustion here again
// indicates an allocation bug, not a malformed program).
var errNondetPoolExhausted = errors.New("symbolic: nondeterminism variable pool exhausted")

// ActionDD is one action's contribution to one module: a 0/1 guard over row
// variables and an arithmetic transition diagram over row ∪ column (∪
// nondet, for MDP). UsedNondet is one past the highest nondeterminism pool
// index this ActionDD's encoding may use; indices below the offset its
// module was built with belong to other modules.
type ActionDD struct {
	Guard      dd.BDD
	Trans      dd.ADD
	UsedNondet int
}

// emptyActionDD is the action that contributes nothing: used to seed folds
// and as the "other side" when padding an action present in only one
// module.
func emptyActionDD(m *dd.Manager) ActionDD {
	return ActionDD{Guard: m.False(), Trans: m.Zero(), UsedNondet: 0}
}

// ModuleDD is one module's (or, after folding, the whole system's)
// per-action contributions, plus the identity diagram used to pad the
// variables it does not touch.
type ModuleDD struct {
	Independent ActionDD
	ByAction    map[program.ActionIndex]ActionDD
	Identity    dd.ADD
	UsedNondet  int
}

// actionsInOrder returns the module's action indices (independent first,
// then labelled actions in the order given) so composition and assembly
// iterate deterministically instead of ranging over the map directly.
func (md ModuleDD) actionsInOrder(order []program.ActionIndex) []program.ActionIndex {
	out := make([]program.ActionIndex, 0, len(md.ByAction)+1)
	out = append(out, program.IndependentAction)
	seen := make(map[program.ActionIndex]bool, len(order))
	for _, a := range order {
		if a == program.IndependentAction || seen[a] {
			continue
		}
		if _, ok := md.ByAction[a]; ok {
			seen[a] = true
			out = append(out, a)
		}
	}
	return out
}

// UndefinedConstantError reports that the program still references free
// constants after substitution (spec.md §7).
type UndefinedConstantError struct {
	Names []string
}

func (e *UndefinedConstantError) Error() string {
	return fmt.Sprintf("symbolic: undefined constants remain: %v", e.Names)
}

// InvalidModelTypeError reports a program.ModelType that is not one of
// DTMC/CTMC/MDP.
type InvalidModelTypeError struct {
	Type program.ModelType
}

func (e *InvalidModelTypeError) Error() string {
	return fmt.Sprintf("symbolic: invalid model type %q", e.Type)
}

// DeadlockForbiddenError reports that reachable deadlocks exist and the
// dont_fix_deadlocks option forbids patching them (spec.md §4.8, §7).
type DeadlockForbiddenError struct {
	Count int
}

func (e *DeadlockForbiddenError) Error() string {
	return fmt.Sprintf("symbolic: %d reachable deadlock state(s) found and dont_fix_deadlocks is set", e.Count)
}
