// Command symdd runs the symbolic model builder against one of the
// package's built-in example programs and reports the resulting model's
// reachable state count, deadlock patches, and which reward diagrams are
// non-zero, optionally
// persisting a provenance record. Adapted from the teacher's
// cmd/server/main.go: flag parsing, config.Load, a structured startup log,
// and an optional Postgres-backed store — minus the REST server, since this
// module's output is a diagram, not an HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/symdd/symdd/internal/config"
	"github.com/symdd/symdd/internal/diagnostics"
	"github.com/symdd/symdd/internal/program"
	"github.com/symdd/symdd/internal/provenance"
	"github.com/symdd/symdd/pkg/examples"
	"github.com/symdd/symdd/pkg/model"
)

func main() {
	var (
		modelName  = flag.String("model", "dtmc", "built-in example to build: dtmc, ctmc, or mdp")
		configPath = flag.String("config", "", "optional YAML config overlay (see internal/config.Load)")
		dsn        = flag.String("db", "", "Postgres DSN for provenance persistence (omit to use an in-memory store)")
		buildID    = flag.String("build-id", "", "correlation id tagged onto diagnostic spans and the provenance record")
	)
	flag.Parse()

	log := diagnostics.NewLogger(zerolog.InfoLevel)

	p, err := exampleProgram(*modelName)
	if err != nil {
		log.Error().Err(err).Str("model", *modelName).Msg("unknown example model")
		os.Exit(1)
	}

	opts, err := config.Load(*configPath)
	if err != nil {
		log.Error().Err(err).Str("path", *configPath).Msg("failed to load config")
		os.Exit(1)
	}

	if *buildID == "" {
		*buildID = fmt.Sprintf("symdd-%s", *modelName)
	}

	log.Info().
		Str("model", *modelName).
		Bool("build_all_rewards", opts.BuildAllRewardModels).
		Bool("dont_fix_deadlocks", opts.DontFixDeadlocks).
		Str("build_id", *buildID).
		Msg("starting symbolic build")

	collected := diagnostics.NewCollectSink()
	sink := diagnostics.LoggingSink(log, collected)

	var store provenance.Store
	if *dsn != "" {
		bunStore := provenance.NewBunStore(*dsn)
		ctx := context.Background()
		if err := bunStore.InitSchema(ctx); err != nil {
			log.Error().Err(err).Str("dsn", maskDSN(*dsn)).Msg("failed to initialize provenance schema")
			os.Exit(1)
		}
		log.Info().Str("dsn", maskDSN(*dsn)).Msg("using BunStore for provenance")
		store = bunStore
	} else {
		store = provenance.NewMemoryStore()
		log.Info().Msg("using in-memory provenance store")
	}

	started := time.Now()
	record := provenance.NewRecord(*buildID, p, started)

	built, err := model.Build(context.Background(), p, opts, sink, *buildID)
	if err != nil {
		log.Error().Err(err).Msg("build failed")
		os.Exit(1)
	}

	record.FinishedAt = time.Now()
	record.ReachableCount = built.ReachableStateCount()
	record.DeadlocksFixed = built.DeadlocksFixed
	for name := range built.Rewards {
		record.RewardNames = append(record.RewardNames, name)
	}
	record.Warnings = collected.Warnings()

	if err := store.Save(context.Background(), record); err != nil {
		log.Error().Err(err).Msg("failed to persist provenance record")
	}

	log.Info().
		Str("type", built.Type.String()).
		Int("reachable_states", built.ReachableStateCount()).
		Int("deadlocks_fixed", built.DeadlocksFixed).
		Int("nondet_vars", len(built.Nondet)).
		Dur("elapsed", record.Duration()).
		Msg("build finished")

	for name, r := range built.Rewards {
		log.Info().
			Str("reward", name).
			Bool("has_state", !r.State.IsZero()).
			Bool("has_state_action", !r.StateAction.IsZero()).
			Bool("has_transition", !r.Transition.IsZero()).
			Msg("reward diagram built")
	}
}

func exampleProgram(name string) (program.Program, error) {
	switch name {
	case "dtmc":
		return examples.TwoSidedCoin(), nil
	case "ctmc":
		return examples.BoundedQueue(), nil
	case "mdp":
		return examples.SyncReset(), nil
	default:
		return program.Program{}, fmt.Errorf("symdd: unknown example %q (want dtmc, ctmc, or mdp)", name)
	}
}

// maskDSN hides a DSN's password component in log output, grounded on the
// teacher's cmd/server maskDSN.
func maskDSN(dsn string) string {
	at := -1
	colon := -1
	for i, c := range dsn {
		if c == ':' && colon == -1 && at == -1 {
			colon = i
		}
		if c == '@' {
			at = i
			break
		}
	}
	if at == -1 || colon == -1 || colon >= at {
		return dsn
	}
	return dsn[:colon+1] + "***" + dsn[at:]
}
