package symbolic

import (
	"fmt"

	"github.com/symdd/symdd/internal/dd"
	"github.com/symdd/symdd/internal/program"
)

// globalWriteError reports a synchronising command assigning a global
// variable, the checked form of the open question spec.md §9 leaves
// undecided ("global variables are only written in non-synchronising
// commands" — checked here, not left undefined, per DESIGN.md's decision).
type globalWriteError struct {
	module string
	action program.ActionIndex
	global string
}

func (e *globalWriteError) Error() string {
	return fmt.Sprintf("symbolic: module %q action %s writes global variable %q from a synchronising command", e.module, e.action, e.global)
}

// translateUpdate is S2/spec.md §4.2: build the deterministic-successor ADD
// for one update u, given the module's guard g (already restricted to the
// module's ranges).
func translateUpdate(gc *GenerationContext, moduleName string, action program.ActionIndex, moduleLocals []string, g dd.BDD, u program.Update) (dd.ADD, error) {
	isSync := action != program.IndependentAction
	assigned := make(map[string]bool, len(u.Assignments))

	m := gc.Manager
	tr := gc.RowTranslator()
	gADD := g.ToADD()

	result := m.One()
	for _, asg := range u.Assignments {
		if isSync {
			for _, global := range gc.GlobalVars {
				if asg.Variable == global {
					return dd.ADD{}, &globalWriteError{module: moduleName, action: action, global: global}
				}
			}
		}
		assigned[asg.Variable] = true

		v, ok := gc.Vars[asg.Variable]
		if !ok {
			return dd.ADD{}, fmt.Errorf("symbolic: update assigns undeclared variable %q", asg.Variable)
		}
		eVal, err := tr.ToADD(asg.Value)
		if err != nil {
			return dd.ADD{}, err
		}
		colVal := v.ColValueADD(m)
		contribution := colVal.Eq(eVal).Mul(gADD).Mul(v.RangeCol(m).ToADD())
		result = result.Mul(contribution)
	}

	// Pad every program variable this update does not assign with its
	// identity: global variables (spec.md §4.2: "deliberately untouched
	// here" for other modules is moot since result is per-module) and this
	// module's locals.
	for _, name := range gc.GlobalVars {
		if !assigned[name] {
			result = result.Mul(gc.Vars[name].Identity(m))
		}
	}
	for _, name := range moduleLocals {
		if !assigned[name] {
			result = result.Mul(gc.Vars[name].Identity(m))
		}
	}

	return result, nil
}
