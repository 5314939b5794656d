package mv

// ViewCatalog is the external collaborator names: a mapping
// from base-table names to candidate materialized views, and from a view
// name to its two plans. The engine only ever reads from it during a
// Rewrite call; a concrete, concurrency-safe implementation lives in the
// sibling `catalog` package.
type ViewCatalog interface {
	// CandidateViewsByTable returns the names of views registered as
	// candidates for the given base table, or ok=false if none are.
	CandidateViewsByTable(table string) (views []string, ok bool)

	// ViewDefinitionPlan returns the logical plan of the `CREATE
	// MATERIALIZED VIEW AS ...` statement that defines viewName.
	ViewDefinitionPlan(viewName string) (LogicalPlan, bool)

	// ViewTablePlan returns a plan that scans viewName as if it were a
	// base table (a TableScan over the materialized rows).
	ViewTablePlan(viewName string) (LogicalPlan, bool)
}

// RewriteContext carries the state one pipeline run shares across its
// matchers and rewriters: the candidate's two view plans, the working
// ProcessedComponent, and the attribute-replacement map built up as
// ProjectRewrite and GroupByRewrite substitute view-output attributes for
// query ones. Ownership is a single value threaded explicitly through one
// pipeline run rather than a shared global.
type RewriteContext struct {
	ViewName string
	ViewDefinition LogicalPlan
	ViewTable LogicalPlan
	Component *ProcessedComponent
	ReplacedAttrs map[string]Expression
}

// NewRewriteContext builds a fresh context for one candidate view. It must
// not be shared between concurrent Rewrite calls.
func NewRewriteContext(viewName string, def, table LogicalPlan) *RewriteContext {
	return &RewriteContext{
		ViewName: viewName,
		ViewDefinition: def,
		ViewTable: table,
		ReplacedAttrs: make(map[string]Expression),
	}
}

// Replace records that query attribute name now reads from the view's
// replacement expression, for later rewriters (e.g. GroupByRewrite reusing
// a substitution ProjectRewrite already made).
func (c *RewriteContext) Replace(name string, repl Expression) {
	c.ReplacedAttrs[name] = repl
}

// Replacement looks up a prior substitution by name.
func (c *RewriteContext) Replacement(name string) (Expression, bool) {
	e, ok := c.ReplacedAttrs[name]
	return e, ok
}
