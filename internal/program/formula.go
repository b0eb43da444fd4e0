package program

import (
	"fmt"
	"sort"
)

// RewardRef and LabelRef are marker expression nodes used only inside a
// preserve_formula query (spec.md §6.3), never passed to the expression
// translator directly: they name a reward structure or a label the caller
// wants to preserve in the build, the way a property query like
// `R{"time"}=? [ F goal ]` names a reward structure and an atomic
// proposition without being itself a diagram-valued expression.
type RewardRef string

func (r RewardRef) Render() string { return fmt.Sprintf("__reward(%q)", string(r)) }
func (RewardRef) exprNode()        {}

type LabelRef string

func (l LabelRef) Render() string { return fmt.Sprintf("__label(%q)", string(l)) }
func (LabelRef) exprNode()        {}

// PreserveFormula walks a property-query expression and returns, sorted and
// de-duplicated, every reward-structure name and every label name it
// references — spec.md §6.3's preserve_formula(φ). config.Options'
// PreserveFormula unions the reward names into reward_models_to_build; the
// label names are only returned, since a build keeps every label.
func PreserveFormula(phi Expr) (rewardNames, labelNames []string) {
	rewards := make(map[string]struct{})
	labels := make(map[string]struct{})

	var walk func(Expr)
	walk = func(e Expr) {
		switch n := e.(type) {
		case RewardRef:
			rewards[string(n)] = struct{}{}
		case LabelRef:
			labels[string(n)] = struct{}{}
		case UnaryOp:
			walk(n.X)
		case BinaryOp:
			walk(n.X)
			walk(n.Y)
		case Ternary:
			walk(n.Cond)
			walk(n.Then)
			walk(n.Else)
		}
	}
	walk(phi)

	rewardNames = sortedKeys(rewards)
	labelNames = sortedKeys(labels)
	return rewardNames, labelNames
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
