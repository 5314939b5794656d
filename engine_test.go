package mvrewrite_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quillsql/mvrewrite"
	"github.com/quillsql/mvrewrite/catalog"
	"github.com/quillsql/mvrewrite/mv"
	"github.com/quillsql/mvrewrite/mv/expression"
	"github.com/quillsql/mvrewrite/mv/expression/aggregation"
	"github.com/quillsql/mvrewrite/mv/plan"
)

func employeeSchema() mv.Schema {
	return mv.Schema{
		{Name: "dept", Type: mv.String},
		{Name: "emp", Type: mv.String},
		{Name: "age", Type: mv.Long},
		{Name: "sal", Type: mv.Double},
	}
}

func col(name string, dt mv.DataType) mv.Expression {
	return expression.NewAttributeRef(name, dt)
}

func TestRewriteAnswersProjectFilterFromMatchingView(t *testing.T) {
	r := require.New(t)

	reg := catalog.NewRegistry()
	viewDef := plan.NewProject(
		[]mv.Expression{col("dept", mv.String), col("age", mv.Long)},
		plan.NewFilter(
			expression.NewGreaterThanOrEqual(col("age", mv.Long), expression.NewLiteral(int64(10), mv.Long)),
			plan.NewTableScan("employees", employeeSchema()),
		),
	)
	viewTable := plan.NewTableScan("adult_employees_mv", mv.Schema{
		{Name: "dept", Type: mv.String}, {Name: "age", Type: mv.Long},
	})
	r.NoError(reg.Register("adult_employees_mv", viewDef, viewTable, []string{"employees"}))

	queryPlan := plan.NewProject(
		[]mv.Expression{col("dept", mv.String)},
		plan.NewFilter(
			expression.NewGreaterThanOrEqual(col("age", mv.Long), expression.NewLiteral(int64(18), mv.Long)),
			plan.NewTableScan("employees", employeeSchema()),
		),
	)

	engine := mvrewrite.NewBuilder(reg).Build()
	res, err := engine.Rewrite(queryPlan)
	r.NoError(err)
	r.True(res.Rewrote)

	proj, ok := res.Plan.(*plan.Project)
	r.True(ok)
	filter, ok := proj.Child().(*plan.Filter)
	r.True(ok)
	scan, ok := filter.Child().(*plan.TableScan)
	r.True(ok)
	r.Equal("adult_employees_mv", scan.TableName)
}

func TestRewriteDeclinesWhenQueryRangeIsLooserThanView(t *testing.T) {
	r := require.New(t)

	reg := catalog.NewRegistry()
	viewDef := plan.NewProject(
		[]mv.Expression{col("dept", mv.String), col("age", mv.Long)},
		plan.NewFilter(
			expression.NewGreaterThanOrEqual(col("age", mv.Long), expression.NewLiteral(int64(18), mv.Long)),
			plan.NewTableScan("employees", employeeSchema()),
		),
	)
	viewTable := plan.NewTableScan("adult_employees_mv", mv.Schema{
		{Name: "dept", Type: mv.String}, {Name: "age", Type: mv.Long},
	})
	r.NoError(reg.Register("adult_employees_mv", viewDef, viewTable, []string{"employees"}))

	queryPlan := plan.NewProject(
		[]mv.Expression{col("dept", mv.String)},
		plan.NewFilter(
			expression.NewGreaterThanOrEqual(col("age", mv.Long), expression.NewLiteral(int64(10), mv.Long)),
			plan.NewTableScan("employees", employeeSchema()),
		),
	)

	engine := mvrewrite.NewBuilder(reg).Build()
	res, err := engine.Rewrite(queryPlan)
	r.NoError(err)
	r.False(res.Rewrote)
	r.Same(queryPlan, res.Plan)
	r.Len(res.Traces, 1)
	r.False(res.Traces[0].Matched)
}

func TestRewriteRollsUpSumAndCountStarOverCoarserGroupBy(t *testing.T) {
	r := require.New(t)

	reg := catalog.NewRegistry()
	viewDef := plan.NewAggregate(
		[]mv.Expression{col("dept", mv.String), col("emp", mv.String)},
		[]mv.Expression{
			expression.NewAlias(aggregation.NewCountStar(), "c"),
			expression.NewAlias(aggregation.NewSum(col("sal", mv.Double)), "s"),
		},
		plan.NewTableScan("employees", employeeSchema()),
	)
	viewTable := plan.NewTableScan("dept_emp_summary_mv", mv.Schema{
		{Name: "dept", Type: mv.String}, {Name: "emp", Type: mv.String},
		{Name: "c", Type: mv.Long}, {Name: "s", Type: mv.Double},
	})
	r.NoError(reg.Register("dept_emp_summary_mv", viewDef, viewTable, []string{"employees"}))

	queryPlan := plan.NewAggregate(
		[]mv.Expression{col("dept", mv.String)},
		[]mv.Expression{
			expression.NewAlias(aggregation.NewCountStar(), "c"),
			expression.NewAlias(aggregation.NewSum(col("sal", mv.Double)), "s"),
		},
		plan.NewTableScan("employees", employeeSchema()),
	)

	engine := mvrewrite.NewBuilder(reg).Build()
	res, err := engine.Rewrite(queryPlan)
	r.NoError(err)
	r.True(res.Rewrote)

	agg, ok := res.Plan.(*plan.Aggregate)
	r.True(ok)
	r.Len(agg.Grouping, 1)
	r.Len(agg.Aggregates, 2)

	scan, ok := agg.Child().(*plan.TableScan)
	r.True(ok)
	r.Equal("dept_emp_summary_mv", scan.TableName)
}

func TestRewriteDeclinesQueryWithAJoin(t *testing.T) {
	r := require.New(t)

	reg := catalog.NewRegistry()
	queryPlan := plan.NewJoin(
		plan.InnerJoin,
		plan.NewTableScan("employees", employeeSchema()),
		plan.NewTableScan("departments", mv.Schema{{Name: "dept", Type: mv.String}}),
		expression.NewEquals(col("dept", mv.String), col("dept", mv.String)),
	)

	engine := mvrewrite.NewBuilder(reg).Build()
	res, err := engine.Rewrite(queryPlan)
	r.NoError(err)
	r.False(res.Rewrote)
	r.Empty(res.Traces)
}

func TestRewriteRejectsCandidateViewDefinedOverAJoin(t *testing.T) {
	r := require.New(t)

	reg := catalog.NewRegistry()
	viewDef := plan.NewProject(
		[]mv.Expression{col("dept", mv.String), col("emp", mv.String)},
		plan.NewJoin(
			plan.InnerJoin,
			plan.NewTableScan("employees", employeeSchema()),
			plan.NewTableScan("departments", mv.Schema{{Name: "dept", Type: mv.String}}),
			expression.NewEquals(col("dept", mv.String), col("dept", mv.String)),
		),
	)
	viewTable := plan.NewTableScan("employees_departments_mv", mv.Schema{
		{Name: "dept", Type: mv.String}, {Name: "emp", Type: mv.String},
	})
	r.NoError(reg.Register("employees_departments_mv", viewDef, viewTable, []string{"employees"}))

	queryPlan := plan.NewProject(
		[]mv.Expression{col("dept", mv.String)},
		plan.NewTableScan("employees", employeeSchema()),
	)

	engine := mvrewrite.NewBuilder(reg).Build()
	res, err := engine.Rewrite(queryPlan)
	r.NoError(err)
	r.False(res.Rewrote)
	r.Len(res.Traces, 1)
	r.False(res.Traces[0].Matched)
	r.Len(res.Traces[0].Steps, 1)
	r.Equal("table_or_view", res.Traces[0].Steps[0].Stage)
	r.Contains(res.Traces[0].Steps[0].Err, "join unmatch")
}
