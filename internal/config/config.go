// Package config loads the symbolic builder's configuration surface
// (spec.md §6.3) from environment variables and an optional YAML file,
// mirroring the teacher's internal/infrastructure/config.Load.
package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/symdd/symdd/internal/program"
)

// Options is the configuration surface spec.md §6.3 names. A zero-value
// Options builds every declared reward structure and fixes deadlocks with a
// self-loop, the most permissive defaults.
type Options struct {
	// ConstantDefinitions substitutes named constants before translation:
	// the builder replaces every ConstantRef in the Program with its value
	// from this map and fails if any ConstantRef is left unresolved.
	ConstantDefinitions map[string]float64 `yaml:"constant_definitions"`

	// BuildAllRewardModels, if set, builds every declared reward structure.
	BuildAllRewardModels bool `yaml:"build_all_reward_models"`

	// RewardModelsToBuild names the subset to build when
	// BuildAllRewardModels is false.
	RewardModelsToBuild []string `yaml:"reward_models_to_build"`

	// DontFixDeadlocks treats reachable deadlocks as fatal instead of
	// patching them with a self-loop.
	DontFixDeadlocks bool `yaml:"dont_fix_deadlocks"`
}

// Load reads an optional YAML file at path (ignored if path is empty or
// unreadable), then applies the SYMDD_-prefixed environment variables on
// top of it, and returns the resulting Options. Where both set a field, the
// environment variable wins.
func Load(path string) (Options, error) {
	opts := Options{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &opts); err != nil {
				return Options{}, err
			}
		}
	}

	if v, ok := os.LookupEnv("SYMDD_BUILD_ALL_REWARD_MODELS"); ok {
		opts.BuildAllRewardModels = parseBool(v, opts.BuildAllRewardModels)
	}
	if v, ok := os.LookupEnv("SYMDD_REWARD_MODELS_TO_BUILD"); ok && v != "" {
		opts.RewardModelsToBuild = strings.Split(v, ",")
	}
	if v, ok := os.LookupEnv("SYMDD_DONT_FIX_DEADLOCKS"); ok {
		opts.DontFixDeadlocks = parseBool(v, opts.DontFixDeadlocks)
	}

	return opts, nil
}

func parseBool(v string, fallback bool) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// PreserveFormula folds the reward-structure names referenced by phi into
// opts' reward selection (spec.md §6.3's preserve_formula(φ)). An Options
// that already selects every reward structure is returned unchanged. The
// label names phi references are not used here.
func (o Options) PreserveFormula(phi program.Expr) Options {
	if o.BuildAllRewardModels || len(o.RewardModelsToBuild) == 0 {
		return o
	}
	rewardNames, _ := program.PreserveFormula(phi)
	out := o
	seen := make(map[string]bool, len(o.RewardModelsToBuild))
	for _, n := range o.RewardModelsToBuild {
		seen[n] = true
	}
	for _, n := range rewardNames {
		if !seen[n] {
			seen[n] = true
			out.RewardModelsToBuild = append(out.RewardModelsToBuild, n)
		}
	}
	return out
}

// SelectedRewards returns the names of the reward structures to build for
// program p, given opts. A zero-value Options (BuildAllRewardModels unset
// and RewardModelsToBuild empty) builds every declared reward structure, per
// Options' doc comment — an explicit, non-empty RewardModelsToBuild is the
// only way to opt into a strict subset.
func (o Options) SelectedRewards(p program.Program) []string {
	if o.BuildAllRewardModels || len(o.RewardModelsToBuild) == 0 {
		names := make([]string, len(p.Rewards))
		for i, r := range p.Rewards {
			names[i] = r.Name
		}
		return names
	}
	return o.RewardModelsToBuild
}
