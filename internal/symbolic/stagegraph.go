package symbolic

import "github.com/symdd/symdd/internal/dag"

// Stage names the S1-S7 pipeline dependency graph walks and reports
// progress against (spec.md §2's table). Declaring the dependency edges
// explicitly, rather than relying on Build's call order to encode them, is
// grounded on the teacher's internal/engine.Graph: a topological sort is
// the one source of truth for "what must finish before what", and a stage
// reordering bug shows up as ErrCycle instead of a silently wrong build.
const (
	StageVarAlloc     = "S1"
	StageModule       = "S2"
	StageCompose      = "S3"
	StageAssemble     = "S4"
	StageReachability = "S5"
	StageReward       = "S6"
	StagePackaging    = "S7"
)

// stagePipeline returns the fixed S1-S7 dependency graph: S2 is folded into
// S3 (compose drives per-module translation itself, spec.md §4.5), S4 and
// S6 both depend on S3's composed system, S6 also depends on S4 (it divides
// DTMC rewards by S4's raw transition sum), and S5 depends on both before
// S7 packages the result.
func stagePipeline() *dag.Graph {
	g := dag.New()
	g.AddEdge(StageVarAlloc, StageCompose)
	g.AddEdge(StageCompose, StageAssemble)
	g.AddEdge(StageCompose, StageReward)
	g.AddEdge(StageAssemble, StageReward)
	g.AddEdge(StageAssemble, StageReachability)
	g.AddEdge(StageReward, StageReachability)
	g.AddEdge(StageReachability, StagePackaging)
	return g
}

// StageOrder returns the S1-S7 stages in an order consistent with their
// declared dependencies, for callers (diagnostics, provenance) that want to
// report or trace the pipeline without hard-coding its sequence twice.
func StageOrder() ([]string, error) {
	return stagePipeline().TopologicalSort()
}
