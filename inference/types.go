// Package inference turns loosely-structured JSON into a renderer-agnostic
// chart description. It classifies the top-level shape of the input against a
// small set of known patterns, extracts normalized series, selects a chart
// type, and explains the choice. The package holds no state across calls and
// is safe for concurrent use.
package inference

// ChartType identifies a supported chart representation.
type ChartType string

const (
	ChartLine    ChartType = "line"
	ChartBar     ChartType = "bar"
	ChartColumn  ChartType = "column"
	ChartPie     ChartType = "pie"
	ChartArea    ChartType = "area"
	ChartScatter ChartType = "scatter"
	ChartHeatmap ChartType = "heatmap"
)

// IsProportion reports whether the chart type discards axis semantics and
// renders proportions of a whole.
func (c ChartType) IsProportion() bool {
	return c == ChartPie
}

// DetectedPattern is the structural classification of an input payload.
// Exactly one pattern is chosen per input.
type DetectedPattern string

const (
	PatternTimeSeries          DetectedPattern = "time_series"
	PatternCategorical         DetectedPattern = "categorical"
	PatternMultiSeries         DetectedPattern = "multi_series"
	PatternCategoryValueArrays DetectedPattern = "category_value_arrays"
	PatternGrid                DetectedPattern = "grid"
	PatternUnrecognized        DetectedPattern = "unrecognized"
)

// UserHints carries optional, advisory overrides for inference. Every field
// may be empty; absence means "infer everything". A hint that is structurally
// incompatible with the data is ignored, never an error.
type UserHints struct {
	// PreferredChartType is honored when the data can support it.
	PreferredChartType ChartType `json:"preferred_chart_type,omitempty"`

	// XField and YField override field-name discovery on record-shaped data.
	XField string `json:"x_field,omitempty"`
	YField string `json:"y_field,omitempty"`

	// Units and Formatting map field names to unit and format strings that
	// are copied onto the matching axis. A formatting value of "log" on the
	// y field selects a logarithmic axis instead of a format string.
	Units      map[string]string `json:"units,omitempty"`
	Formatting map[string]string `json:"formatting,omitempty"`

	// Filter is a CEL expression over `record` (one data record as a map).
	// Records for which it evaluates to false are dropped before extraction.
	Filter string `json:"filter,omitempty"`
}

// AxisSpec describes one chart axis.
type AxisSpec struct {
	Title  string   `json:"title"`
	Field  string   `json:"field,omitempty"`
	Type   string   `json:"type"` // linear, datetime, category, log
	Unit   string   `json:"unit,omitempty"`
	Format string   `json:"format,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
}

// SeriesSpec is one renderer-ready data series. The shape of Data depends on
// the chart type: proportion charts carry {name, y} records, heatmaps carry
// [column, row, value] triplets, everything else carries [x, y] pairs.
type SeriesSpec struct {
	Name  string `json:"name"`
	Data  []any  `json:"data"`
	Type  string `json:"type,omitempty"`
	Color string `json:"color,omitempty"`
	YAxis int    `json:"y_axis"`
}

// ChartSpec is the stable contract produced by the engine and consumed by a
// rendering collaborator. It is chart-library agnostic and immutable once
// returned.
type ChartSpec struct {
	ChartType        ChartType      `json:"chart_type"`
	Title            string         `json:"title"`
	Subtitle         string         `json:"subtitle,omitempty"`
	Series           []SeriesSpec   `json:"series"`
	XAxis            AxisSpec       `json:"x_axis"`
	YAxis            *AxisSpec      `json:"y_axis,omitempty"`
	Rationale        string         `json:"rationale"`
	AlternativeTypes []ChartType    `json:"alternative_types"`
	Description      string         `json:"description,omitempty"`
	Config           map[string]any `json:"config"`
}

// PatternFlags reports which structural patterns matched an input, for
// standalone "is this data chartable" checks without full extraction.
type PatternFlags struct {
	IsTimeSeries          bool `json:"is_time_series"`
	IsCategorical         bool `json:"is_categorical"`
	IsMultiSeries         bool `json:"is_multi_series"`
	IsCategoryValueArrays bool `json:"is_category_value_arrays"`
	IsGrid                bool `json:"is_grid"`
}

// Any reports whether at least one pattern matched.
func (f PatternFlags) Any() bool {
	return f.IsTimeSeries || f.IsCategorical || f.IsMultiSeries ||
		f.IsCategoryValueArrays || f.IsGrid
}

// Point is one normalized (x, y) pair. For temporal series X holds the epoch
// millisecond value and Label retains the original string for display.
type Point struct {
	X     any
	Label string
	Y     float64
}

// NormalizedSeries is one named, ordered sequence of points. All points in a
// series share the same x semantic type.
type NormalizedSeries struct {
	Name      string
	Points    []Point
	TemporalX bool
}
