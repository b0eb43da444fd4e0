package program

import "fmt"

// Module is one guarded-command module: local variables plus an ordered
// list of commands. Modules are combined by parallel composition (spec.md
// §4.5) in the order they appear in their owning Program.
type Module struct {
	Name     string
	BoolVars []BoolVar
	IntVars  []IntVar
	Commands []Command
}

// Variables returns the module's local variables as the uniform Variable
// interface, Boolean first then integer, in declaration order — the order
// S1 allocates row/column pairs in.
func (m Module) Variables() []Variable {
	vars := make([]Variable, 0, len(m.BoolVars)+len(m.IntVars))
	for _, v := range m.BoolVars {
		vars = append(vars, v)
	}
	for _, v := range m.IntVars {
		vars = append(vars, v)
	}
	return vars
}

// Validate checks every local int variable's bounds and every command's
// structural invariants.
func (m Module) Validate() error {
	for _, v := range m.IntVars {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("module %q: %w", m.Name, err)
		}
	}
	for i, c := range m.Commands {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("module %q command #%d: %w", m.Name, i, err)
		}
	}
	return nil
}

// CommandsFor returns the commands relevant to action (independent commands
// for IndependentAction, labelled commands matching action otherwise) —
// spec.md §4.4's "collect all relevant commands".
func (m Module) CommandsFor(action ActionIndex) []Command {
	var out []Command
	for _, c := range m.Commands {
		if c.Action == action {
			out = append(out, c)
		}
	}
	return out
}

// ActionLabels returns the distinct non-independent action indices this
// module declares commands for, in first-appearance order.
func (m Module) ActionLabels() []ActionIndex {
	seen := make(map[ActionIndex]bool)
	var out []ActionIndex
	for _, c := range m.Commands {
		if c.IsIndependent() || seen[c.Action] {
			continue
		}
		seen[c.Action] = true
		out = append(out, c.Action)
	}
	return out
}
