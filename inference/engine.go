package inference

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// Engine infers chart descriptions from untyped JSON input. The only state it
// carries is the CEL environment used to compile hint filter expressions,
// which is immutable after construction, so a single Engine is safe to share
// across concurrent request handlers.
type Engine struct {
	env *cel.Env
}

// filterCostLimit bounds the evaluation cost of hint filter expressions so a
// hostile filter cannot exhaust resources.
const filterCostLimit = 1000000

// NewEngine creates an inference engine. Filter expressions see each data
// record as a dynamically-typed `record` variable.
func NewEngine() (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Variable("record", cel.DynType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Engine{env: env}, nil
}

// Infer analyzes the input and returns a complete chart description. It
// fails only with a *ValidationError, when no pattern yields usable data
// points. Identical input and hints always produce an identical description.
func (en *Engine) Infer(data map[string]any, hints *UserHints) (*ChartSpec, error) {
	filter, err := en.compileFilter(hints)
	if err != nil {
		return nil, err
	}

	pattern := Detect(data)

	ext, err := extract(data, pattern, hints, filter)
	if err != nil {
		return nil, err
	}

	chosen, alternatives := selectChartType(ext, hints)
	xAxis, yAxis := buildAxes(ext, chosen, hints)
	title := buildTitle(data, pattern, chosen)

	spec := &ChartSpec{
		ChartType:        chosen,
		Title:            title,
		Series:           formatSeries(ext, chosen),
		XAxis:            xAxis,
		YAxis:            yAxis,
		Rationale:        buildRationale(chosen, ext),
		AlternativeTypes: alternatives,
		Description:      buildDescription(title),
		Config:           map[string]any{},
	}

	// Renderer passthrough for heatmaps: axis tick labels come from the grid.
	if pattern == PatternGrid {
		spec.Config["rows"] = ext.Rows
		spec.Config["columns"] = ext.Columns
	}

	return spec, nil
}

// Validate runs pattern detection only, reporting which structural patterns
// matched. It never errors; unmatchable input simply has every flag false.
func (en *Engine) Validate(data map[string]any) PatternFlags {
	return DetectAll(data)
}

// compileFilter builds the per-record filter from the hint expression. An
// expression that does not compile is a validation failure; an expression
// that errors on one record just skips that record, and a non-boolean result
// counts as false.
func (en *Engine) compileFilter(hints *UserHints) (recordFilter, error) {
	if hints == nil || hints.Filter == "" {
		return nil, nil
	}

	ast, issues := en.env.Compile(hints.Filter)
	if issues != nil && issues.Err() != nil {
		return nil, newValidationError("invalid filter expression: %v", issues.Err())
	}

	prog, err := en.env.Program(ast, cel.CostLimit(filterCostLimit))
	if err != nil {
		return nil, newValidationError("invalid filter expression: %v", err)
	}

	return func(record map[string]any) bool {
		out, _, err := prog.Eval(map[string]any{"record": record})
		if err != nil {
			return false
		}
		matched, ok := out.Value().(bool)
		return ok && matched
	}, nil
}
