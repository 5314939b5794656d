package mv

// LogicalPlan is the immutable tagged-variant plan tree: Project, Filter,
// Aggregate, TableScan, Join, and the engine's two bookkeeping wrappers
// RewrittenPlan and RewrittenLeaf. Modeled on sql.Node, minus
// everything related to actually running the plan (RowIter, Resolved
// session state): this engine only ever rewrites trees, never executes
// them.
type LogicalPlan interface {
	Resolved() bool
	Schema() Schema
	Children() []LogicalPlan
	WithChildren(children ...LogicalPlan) (LogicalPlan, error)
	TransformDown(f func(LogicalPlan) LogicalPlan) LogicalPlan
	String() string
}

// UnaryPlan is implemented by every single-child plan node (Project,
// Filter, Aggregate), exposing that child through Child(). The generic
// tree helpers (ExtractTablesFromPlan, ContainsJoin) walk Children()
// instead.
type UnaryPlan interface {
	LogicalPlan
	Child() LogicalPlan
}

// BoundaryNode marks a plan node an outer TransformDown must not recurse
// into. RewrittenLeaf is the only implementation: once a rule has
// committed a rewrite over a view, nothing above it should try to rewrite
// it again. This "no-recurse" marker is kept separate from the
// "stopped" flag carried on RewrittenPlan.
type BoundaryNode interface {
	LogicalPlan
	Boundary()
}
