package program

import "fmt"

// ActionName is the human-readable name attached to an ActionIndex; the
// builder never needs these for diagram construction, only for diagnostics
// and provenance reporting.
type ActionName struct {
	Index ActionIndex
	Name  string
}

// Program is the read-only input AST: a parallel composition of modules
// over a declared model type, global variables, labels, reward structures
// and an initial condition (spec.md §3.1).
type Program struct {
	Type    ModelType
	Modules []Module

	GlobalBoolVars []BoolVar
	GlobalIntVars  []IntVar

	Labels  map[string]Expr
	Rewards []RewardStructure

	InitialCondition Expr
	Actions          []ActionName
}

// GlobalVariables returns the program's global variables as the uniform
// Variable interface, Boolean first then integer.
func (p Program) GlobalVariables() []Variable {
	vars := make([]Variable, 0, len(p.GlobalBoolVars)+len(p.GlobalIntVars))
	for _, v := range p.GlobalBoolVars {
		vars = append(vars, v)
	}
	for _, v := range p.GlobalIntVars {
		vars = append(vars, v)
	}
	return vars
}

// AllActionLabels returns the distinct non-independent action indices
// declared anywhere in the program's modules, in first-appearance order
// across modules.
func (p Program) AllActionLabels() []ActionIndex {
	seen := make(map[ActionIndex]bool)
	var out []ActionIndex
	for _, m := range p.Modules {
		for _, a := range m.ActionLabels() {
			if seen[a] {
				continue
			}
			seen[a] = true
			out = append(out, a)
		}
	}
	return out
}

// RewardByName returns the named reward structure, if declared.
func (p Program) RewardByName(name string) (RewardStructure, bool) {
	for _, r := range p.Rewards {
		if r.Name == name {
			return r, true
		}
	}
	return RewardStructure{}, false
}

// Validate checks the program's model type and walks every module's
// structural invariants (spec.md §3.1's invariants, minus the ones that
// require diagram evaluation — e.g. "likelihoods evaluate to non-negative
// rationals" can only be checked once the expression translator runs).
func (p Program) Validate() error {
	if !p.Type.IsValid() {
		return fmt.Errorf("program: invalid model type %q", p.Type)
	}
	if len(p.Modules) == 0 {
		return fmt.Errorf("program: no modules declared")
	}
	for _, v := range p.GlobalIntVars {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("global: %w", err)
		}
	}
	for _, m := range p.Modules {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	if p.InitialCondition == nil {
		return fmt.Errorf("program: missing initial condition")
	}
	return nil
}
