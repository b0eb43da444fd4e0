package symbolic

import (
	"fmt"

	"github.com/symdd/symdd/internal/config"
	"github.com/symdd/symdd/internal/dd"
	"github.com/symdd/symdd/internal/diagnostics"
	"github.com/symdd/symdd/internal/program"
)

// GenerationContext is the single mutable value threaded through S1-S7
// (spec.md §3.2): it owns every meta-variable, identity and range diagram
// the generation allocates. On success those allocations live on in the
// Manager the returned Result still references; on failure the context is
// simply dropped (see DESIGN.md's Open Questions entry on the diagram
// resource model for why this is not the reference-counted release spec.md
// §3.3 describes).
type GenerationContext struct {
	Manager *dd.Manager
	Program program.Program
	Opts    config.Options
	Sink    diagnostics.Sink

	// Vars maps every program variable (global and module-local, by name)
	// to its allocated row/column pair.
	Vars map[string]dd.Var

	// Pairing is the ordered row/column pair list used for SwapVariables
	// during reachability (spec.md §3.2).
	Pairing []dd.VarPair

	// SyncVars maps each non-independent action index to its
	// synchronisation meta-variable.
	SyncVars map[program.ActionIndex]dd.Var

	// NondetPool is the upper-bound nondeterminism meta-variable pool
	// allocated in S1 (spec.md §4.1: |Modules| + Σ|Commands|), consumed by
	// S2/S3 in order.
	NondetPool []dd.Var

	// ModuleVars[i] is module i's local variables' names, in declaration
	// order; ModuleIdentity[i]/ModuleRange[i] are the cached product
	// diagrams spec.md §4.1 asks S1 to precompute.
	ModuleVars     [][]string
	ModuleIdentity []dd.ADD
	ModuleRange    []dd.BDD

	// GlobalVars is the program's global variable names, in declaration
	// order.
	GlobalVars []string

	// Kinds maps every program variable name to its declared VarKind, so
	// the expression translator knows whether to hand a variable's domain
	// value to expr-lang as a bool or an int.
	Kinds map[string]program.VarKind

	rowTranslator *Translator
	colTranslator *Translator
}

// VarsOf returns the dd.Var values for the named variables, in order.
func (gc *GenerationContext) VarsOf(names []string) []dd.Var {
	out := make([]dd.Var, len(names))
	for i, n := range names {
		out[i] = gc.Vars[n]
	}
	return out
}

// AllProgramVars returns every program variable's dd.Var across globals and
// all modules, in S1 allocation order.
func (gc *GenerationContext) AllProgramVars() []dd.Var {
	out := make([]dd.Var, 0, len(gc.Vars))
	out = append(out, gc.VarsOf(gc.GlobalVars)...)
	for _, names := range gc.ModuleVars {
		out = append(out, gc.VarsOf(names)...)
	}
	return out
}

// RowTranslator returns the row-indexed expression translator (spec.md
// §6.2), lazily constructing it on first use.
func (gc *GenerationContext) RowTranslator() *Translator {
	if gc.rowTranslator == nil {
		gc.rowTranslator = NewTranslator(gc.Manager, gc.Vars, gc.Kinds, RowSide)
	}
	return gc.rowTranslator
}

// ColTranslator returns the column-indexed expression translator used for
// target-state predicates (spec.md §6.2's "parallel column-indexed
// translator").
func (gc *GenerationContext) ColTranslator() *Translator {
	if gc.colTranslator == nil {
		gc.colTranslator = NewTranslator(gc.Manager, gc.Vars, gc.Kinds, ColSide)
	}
	return gc.colTranslator
}

func (gc *GenerationContext) warn(stage string, kind diagnostics.Kind, format string, args ...any) {
	if gc.Sink == nil {
		return
	}
	gc.Sink.Warn(diagnostics.Warning{Kind: kind, Stage: stage, Message: fmt.Sprintf(format, args...)})
}
