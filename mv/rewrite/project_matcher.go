package rewrite

import "github.com/quillsql/mvrewrite/mv"

// MatchProject checks that every attribute referenced by the query's
// project list appears at the first level of the view's output list.
// There is no compensation to emit — the project list itself is
// rewritten later by ProjectRewrite.
func MatchProject(ctx *mv.RewriteContext) (CompensationExpressions, error) {
	comp := ctx.Component

	for _, attr := range attributesIn(comp.QueryProjection) {
		if !projectedByView(attr, comp.ViewProjection) {
			return CompensationExpressions{}, ErrProjectUnmatch.New(attr.String())
		}
	}

	return OkEmpty(), nil
}
