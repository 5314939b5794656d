package rewrite

import (
	"fmt"
	"strings"

	"github.com/quillsql/mvrewrite/mv"
	"github.com/quillsql/mvrewrite/mv/plan"
)

// Stage pairs one matcher with the rewriter that consumes its
// compensation. A Pipeline runs its stages strictly in order and stops at
// the first one that fails, rather than mirroring a class hierarchy of
// rewrite rules the way rule Batches do.
type Stage struct {
	Name string
	Match func(ctx *mv.RewriteContext) (CompensationExpressions, error)
	Rewrite func(ctx *mv.RewriteContext, comp CompensationExpressions, cur mv.LogicalPlan) (mv.LogicalPlan, error)
}

// StepResult records one stage's outcome for ExplainRewrite.
type StepResult struct {
	Stage string
	Err error
}

func (s StepResult) String() string {
	if s.Err == nil {
		return fmt.Sprintf("%s: ok", s.Stage)
	}
	return fmt.Sprintf("%s: failed (%s)", s.Stage, s.Err)
}

// PipelineTrace is the ordered record of every stage a Run attempted
// against one candidate view, for diagnostics.
type PipelineTrace struct {
	ViewName string
	Steps []StepResult
}

func (t *PipelineTrace) String() string {
	lines := make([]string, len(t.Steps)+1)
	lines[0] = fmt.Sprintf("candidate %s:", t.ViewName)
	for i, s := range t.Steps {
		lines[i+1] = " " + s.String()
	}
	return strings.Join(lines, "\n")
}

// Succeeded reports whether every stage in the trace passed.
func (t *PipelineTrace) Succeeded() bool {
	for _, s := range t.Steps {
		if s.Err != nil {
			return false
		}
	}
	return len(t.Steps) > 0
}

// Run drives stages over ctx in order, building up a plan rooted at
// ctx.ViewTable. It stops at the first stage that fails, returning the
// original plan wrapped as Stopped, or the fully rewritten plan on
// success.
func Run(ctx *mv.RewriteContext, stages []Stage, original mv.LogicalPlan) (*plan.RewrittenPlan, *PipelineTrace) {
	trace := &PipelineTrace{ViewName: ctx.ViewName}
	cur := mv.LogicalPlan(plan.NewRewrittenLeaf(ctx.ViewTable))

	for _, st := range stages {
		comp, err := st.Match(ctx)
		if err != nil {
			trace.Steps = append(trace.Steps, StepResult{st.Name, err})
			return plan.NewRewrittenPlan(original, true), trace
		}
		next, err := st.Rewrite(ctx, comp, cur)
		if err != nil {
			trace.Steps = append(trace.Steps, StepResult{st.Name, err})
			return plan.NewRewrittenPlan(original, true), trace
		}
		cur = next
		trace.Steps = append(trace.Steps, StepResult{st.Name, nil})
	}

	return plan.NewRewrittenPlan(plan.StripWrappers(cur), false), trace
}

// SPJStages builds the select-project-join-free pipeline: table identity,
// predicate containment, then projection.
func SPJStages(queryPlan mv.LogicalPlan) []Stage {
	return []Stage{
		{"table_or_view", MatchTableNonOp(queryPlan), TableOrViewRewrite},
		{"predicate", MatchPredicate, PredicateRewrite},
		{"project", MatchProject, ProjectRewrite},
	}
}

// AggregateStages builds the grouped-aggregate pipeline: table identity,
// predicate containment, then aggregate/group-by compatibility.
func AggregateStages(queryPlan mv.LogicalPlan) []Stage {
	return []Stage{
		{"table_or_view", MatchTableNonOp(queryPlan), TableOrViewRewrite},
		{"predicate", MatchPredicate, PredicateRewrite},
		{"aggregate", MatchAgg, GroupByRewrite},
	}
}
