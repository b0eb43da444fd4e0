package symbolic

import (
	"github.com/symdd/symdd/internal/dd"
	"github.com/symdd/symdd/internal/diagnostics"
	"github.com/symdd/symdd/internal/program"
)

const stageCommand = "S2-command"

// translateCommand is spec.md §4.3: translate a command's guard, restrict to
// the module's ranges, and sum its updates' weighted contributions.
func translateCommand(gc *GenerationContext, moduleName string, moduleLocals []string, moduleRange dd.BDD, c program.Command) (ActionDD, error) {
	m := gc.Manager

	guardBDD, err := gc.RowTranslator().ToBDD(c.Guard)
	if err != nil {
		return ActionDD{}, err
	}
	g := guardBDD.And(moduleRange)

	if g.IsFalse() {
		gc.warn(stageCommand, diagnostics.UnsatisfiableGuard,
			"module %q: guard %q is unsatisfiable within the module's range", moduleName, c.Guard.Render())
	}

	trans := m.Zero()
	for _, wu := range c.Update {
		likelihood, err := gc.RowTranslator().ToADD(wu.Likelihood)
		if err != nil {
			return ActionDD{}, err
		}
		uADD, err := translateUpdate(gc, moduleName, c.Action, moduleLocals, g, wu.Update)
		if err != nil {
			return ActionDD{}, err
		}

		restrictedIdentity := g.ToADD().Mul(moduleIdentityFor(gc, moduleLocals))
		if uADD.Equals(restrictedIdentity) {
			gc.warn(stageCommand, diagnostics.NoEffectUpdate,
				"module %q: an update under guard %q leaves every variable unchanged", moduleName, c.Guard.Render())
		}

		trans = trans.Add(likelihood.Mul(uADD))
	}

	return ActionDD{Guard: g, Trans: g.ToADD().Mul(trans)}, nil
}

func moduleIdentityFor(gc *GenerationContext, moduleLocals []string) dd.ADD {
	acc := gc.Manager.One()
	for _, name := range moduleLocals {
		acc = acc.Mul(gc.Vars[name].Identity(gc.Manager))
	}
	for _, name := range gc.GlobalVars {
		acc = acc.Mul(gc.Vars[name].Identity(gc.Manager))
	}
	return acc
}
