package mvrewrite

import (
	"strings"

	"github.com/quillsql/mvrewrite/mv/rewrite"
)

// ExplainTrace is the caller-facing rendering of one candidate view's
// pipeline run: which stages ran, and why the first failing one failed.
type ExplainTrace struct {
	ViewName string
	Steps []ExplainStep
	Matched bool
}

// ExplainStep is one matcher/rewriter stage's outcome.
type ExplainStep struct {
	Stage string
	Err string
}

func explainTraces(traces []*rewrite.PipelineTrace) []*ExplainTrace {
	out := make([]*ExplainTrace, len(traces))
	for i, t := range traces {
		et := &ExplainTrace{ViewName: t.ViewName, Matched: t.Succeeded()}
		for _, s := range t.Steps {
			step := ExplainStep{Stage: s.Stage}
			if s.Err != nil {
				step.Err = s.Err.Error()
			}
			et.Steps = append(et.Steps, step)
		}
		out[i] = et
	}
	return out
}

// ExplainRewrite renders a Result's traces as a human-readable report:
// one line per candidate view tried, its stages in order, and the reason
// the first failing stage rejected it. A query that matched no view at
// all renders "no candidate views were tried" when Traces is empty.
func ExplainRewrite(res *Result) string {
	if len(res.Traces) == 0 {
		return "no candidate views were tried"
	}

	var b strings.Builder
	for _, t := range res.Traces {
		status := "REJECTED"
		if t.Matched {
			status = "MATCHED"
		}
		b.WriteString(t.ViewName)
		b.WriteString(": ")
		b.WriteString(status)
		b.WriteString("\n")
		for _, s := range t.Steps {
			b.WriteString(" ")
			b.WriteString(s.Stage)
			if s.Err != "" {
				b.WriteString(": ")
				b.WriteString(s.Err)
			} else {
				b.WriteString(": ok")
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
