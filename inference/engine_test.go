package inference

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine()
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	return engine
}

func TestInferTimeSeries(t *testing.T) {
	engine := newTestEngine(t)

	spec, err := engine.Infer(timeSeriesInput(), nil)
	if err != nil {
		t.Fatalf("Infer() failed: %v", err)
	}

	if spec.ChartType != ChartLine {
		t.Errorf("chart_type = %v, want line", spec.ChartType)
	}
	if spec.XAxis.Type != "datetime" {
		t.Errorf("x_axis.type = %q, want datetime", spec.XAxis.Type)
	}
	if spec.YAxis == nil {
		t.Fatal("y_axis should be present for line charts")
	}
	if len(spec.Series) != 1 {
		t.Fatalf("expected 1 series, got %d", len(spec.Series))
	}

	wantData := []any{
		[]any{int64(1764547200000), 10.0},
		[]any{int64(1764633600000), 15.0},
	}
	if !reflect.DeepEqual(spec.Series[0].Data, wantData) {
		t.Errorf("series data = %v, want %v", spec.Series[0].Data, wantData)
	}
}

func TestInferSingleItemPie(t *testing.T) {
	engine := newTestEngine(t)

	spec, err := engine.Infer(map[string]any{
		"items": []any{map[string]any{"label": "A", "value": 45.0}},
	}, nil)
	if err != nil {
		t.Fatalf("Infer() failed: %v", err)
	}

	if spec.ChartType != ChartPie {
		t.Errorf("chart_type = %v, want pie", spec.ChartType)
	}
	if spec.YAxis != nil {
		t.Error("y_axis must be absent for proportion charts")
	}

	wantData := []any{map[string]any{"name": "A", "y": 45.0}}
	if !reflect.DeepEqual(spec.Series[0].Data, wantData) {
		t.Errorf("series data = %v, want %v", spec.Series[0].Data, wantData)
	}
}

func TestInferEmptyObject(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Infer(map[string]any{}, nil)
	if err == nil {
		t.Fatal("Infer({}) should fail")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error should be a *ValidationError, got %T", err)
	}
	if verr.Message == "" {
		t.Error("validation error should carry a human-readable message")
	}

	flags := engine.Validate(map[string]any{})
	if flags.Any() {
		t.Errorf("Validate({}) matched %+v, want all flags false", flags)
	}
}

// Labels that happen to spell numbers stay categories all the way to the
// axis: field name beats value inspection.
func TestInferCategoryAxisForNumericLabels(t *testing.T) {
	engine := newTestEngine(t)

	spec, err := engine.Infer(map[string]any{
		"items": []any{
			map[string]any{"label": "2", "value": 10.0},
			map[string]any{"label": "A", "value": 20.0},
		},
	}, nil)
	if err != nil {
		t.Fatalf("Infer() failed: %v", err)
	}

	if spec.XAxis.Type != "category" {
		t.Errorf("x_axis.type = %q, want category (field named label)", spec.XAxis.Type)
	}
	wantData := []any{
		[]any{"2", 10.0},
		[]any{"A", 20.0},
	}
	if !reflect.DeepEqual(spec.Series[0].Data, wantData) {
		t.Errorf("series data = %v, want %v", spec.Series[0].Data, wantData)
	}
}

func TestInferGroupedRecords(t *testing.T) {
	engine := newTestEngine(t)

	spec, err := engine.Infer(groupedRecordsInput(), nil)
	if err != nil {
		t.Fatalf("Infer() failed: %v", err)
	}

	if spec.ChartType != ChartLine {
		t.Errorf("chart_type = %v, want line for temporal grouped records", spec.ChartType)
	}
	if len(spec.Series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(spec.Series))
	}
	if spec.Series[0].Name != "North" || spec.Series[1].Name != "South" {
		t.Errorf("series names = %q, %q, want North, South", spec.Series[0].Name, spec.Series[1].Name)
	}
	if spec.XAxis.Type != "datetime" {
		t.Errorf("x_axis.type = %q, want datetime", spec.XAxis.Type)
	}
}

func TestInferMultiSeries(t *testing.T) {
	engine := newTestEngine(t)

	spec, err := engine.Infer(multiSeriesInput(), nil)
	if err != nil {
		t.Fatalf("Infer() failed: %v", err)
	}

	if spec.ChartType != ChartLine {
		t.Errorf("chart_type = %v, want line for temporal multi-series", spec.ChartType)
	}
	if len(spec.Series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(spec.Series))
	}
	if spec.Series[0].Name != "CPU" || spec.Series[1].Name != "Memory" {
		t.Errorf("series names = %q, %q, want CPU, Memory", spec.Series[0].Name, spec.Series[1].Name)
	}
}

func TestInferHintOverride(t *testing.T) {
	engine := newTestEngine(t)

	spec, err := engine.Infer(timeSeriesInput(), &UserHints{PreferredChartType: ChartArea})
	if err != nil {
		t.Fatalf("Infer() failed: %v", err)
	}
	if spec.ChartType != ChartArea {
		t.Errorf("chart_type = %v, want area (hint honored)", spec.ChartType)
	}
}

// Incompatible hints are silently overridden, never an error.
func TestInferIncompatibleHintIgnored(t *testing.T) {
	engine := newTestEngine(t)

	spec, err := engine.Infer(multiSeriesInput(), &UserHints{PreferredChartType: ChartPie})
	if err != nil {
		t.Fatalf("Infer() should not fail on an incompatible hint: %v", err)
	}
	if spec.ChartType != ChartLine {
		t.Errorf("chart_type = %v, want line (pie rejected for multi-series)", spec.ChartType)
	}
}

func TestInferGridHeatmap(t *testing.T) {
	engine := newTestEngine(t)

	spec, err := engine.Infer(gridInput(), nil)
	if err != nil {
		t.Fatalf("Infer() failed: %v", err)
	}

	if spec.ChartType != ChartHeatmap {
		t.Errorf("chart_type = %v, want heatmap", spec.ChartType)
	}
	if len(spec.AlternativeTypes) != 0 {
		t.Errorf("alternative_types = %v, want empty for grid data", spec.AlternativeTypes)
	}
	if !reflect.DeepEqual(spec.Config["rows"], []string{"Mon", "Tue"}) {
		t.Errorf("config rows = %v, want [Mon Tue]", spec.Config["rows"])
	}
	if !reflect.DeepEqual(spec.Config["columns"], []string{"AM", "PM"}) {
		t.Errorf("config columns = %v, want [AM PM]", spec.Config["columns"])
	}

	wantFirst := []any{0, 0, 1.0}
	if !reflect.DeepEqual(spec.Series[0].Data[0], wantFirst) {
		t.Errorf("first heatmap cell = %v, want %v", spec.Series[0].Data[0], wantFirst)
	}
}

func TestInferIdempotent(t *testing.T) {
	engine := newTestEngine(t)
	hints := &UserHints{
		Units:      map[string]string{"value": "ms"},
		Formatting: map[string]string{"t": "%Y-%m-%d"},
	}

	first, err := engine.Infer(timeSeriesInput(), hints)
	if err != nil {
		t.Fatalf("Infer() failed: %v", err)
	}
	second, err := engine.Infer(timeSeriesInput(), hints)
	if err != nil {
		t.Fatalf("Infer() failed: %v", err)
	}

	firstJSON, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	secondJSON, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(firstJSON) != string(secondJSON) {
		t.Errorf("identical inputs produced different specs:\n%s\n%s", firstJSON, secondJSON)
	}
}

func TestInferAxisHints(t *testing.T) {
	engine := newTestEngine(t)
	hints := &UserHints{
		Units:      map[string]string{"value": "kg", "t": "s"},
		Formatting: map[string]string{"value": "{:.2f}"},
	}

	spec, err := engine.Infer(timeSeriesInput(), hints)
	if err != nil {
		t.Fatalf("Infer() failed: %v", err)
	}

	if spec.XAxis.Unit != "s" {
		t.Errorf("x_axis.unit = %q, want s", spec.XAxis.Unit)
	}
	if spec.YAxis.Unit != "kg" {
		t.Errorf("y_axis.unit = %q, want kg", spec.YAxis.Unit)
	}
	if spec.YAxis.Format != "{:.2f}" {
		t.Errorf("y_axis.format = %q, want {:.2f}", spec.YAxis.Format)
	}
	if spec.XAxis.Min != nil || spec.XAxis.Max != nil {
		t.Error("axis bounds must stay unset without an explicit hint")
	}
}

func TestInferLogScaleHint(t *testing.T) {
	engine := newTestEngine(t)
	hints := &UserHints{Formatting: map[string]string{"value": "log"}}

	spec, err := engine.Infer(timeSeriesInput(), hints)
	if err != nil {
		t.Fatalf("Infer() failed: %v", err)
	}
	if spec.YAxis.Type != "log" {
		t.Errorf("y_axis.type = %q, want log", spec.YAxis.Type)
	}
	if spec.YAxis.Format != "" {
		t.Errorf("y_axis.format = %q, want empty when selecting log scale", spec.YAxis.Format)
	}
}

func TestInferRationaleAndTitle(t *testing.T) {
	engine := newTestEngine(t)

	spec, err := engine.Infer(timeSeriesInput(), nil)
	if err != nil {
		t.Fatalf("Infer() failed: %v", err)
	}
	if !strings.Contains(spec.Rationale, "Line chart selected") {
		t.Errorf("rationale = %q, want line chart template", spec.Rationale)
	}
	if !strings.Contains(spec.Rationale, "1 series") {
		t.Errorf("rationale = %q, should reference the series count", spec.Rationale)
	}
	if spec.Title != "Time Series Data" {
		t.Errorf("title = %q, want Time Series Data", spec.Title)
	}
	if spec.Description != "Chart showing time series data" {
		t.Errorf("description = %q", spec.Description)
	}

	// Explicit titles pass through.
	data := timeSeriesInput()
	data["title"] = "Latency"
	spec, err = engine.Infer(data, nil)
	if err != nil {
		t.Fatalf("Infer() failed: %v", err)
	}
	if spec.Title != "Latency" {
		t.Errorf("title = %q, want Latency", spec.Title)
	}
}

func TestInferFilterExpression(t *testing.T) {
	engine := newTestEngine(t)

	data := map[string]any{
		"points": []any{
			map[string]any{"t": "2025-12-01", "value": 10.0},
			map[string]any{"t": "2025-12-02", "value": 15.0},
			map[string]any{"t": "2025-12-03", "value": 3.0},
		},
	}

	spec, err := engine.Infer(data, &UserHints{Filter: `record.value >= 10.0`})
	if err != nil {
		t.Fatalf("Infer() with filter failed: %v", err)
	}
	if got := len(spec.Series[0].Data); got != 2 {
		t.Errorf("filtered series has %d points, want 2", got)
	}
}

func TestInferFilterErrors(t *testing.T) {
	engine := newTestEngine(t)

	// A filter that does not compile is a validation failure.
	_, err := engine.Infer(timeSeriesInput(), &UserHints{Filter: `record.value >=`})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("uncompilable filter should yield *ValidationError, got %v", err)
	}

	// A filter that filters out every record exhausts the series.
	_, err = engine.Infer(timeSeriesInput(), &UserHints{Filter: `record.value > 1000.0`})
	if !errors.As(err, &verr) {
		t.Fatalf("exhausting filter should yield *ValidationError, got %v", err)
	}

	// A filter that errors on a record skips only that record.
	spec, err := engine.Infer(timeSeriesInput(), &UserHints{Filter: `record.missing > 0.0 || record.value > 12.0`})
	if err != nil {
		t.Fatalf("Infer() failed: %v", err)
	}
	if got := len(spec.Series[0].Data); got != 1 {
		t.Errorf("series has %d points, want 1", got)
	}
}

func TestValidateFlagsPerPattern(t *testing.T) {
	engine := newTestEngine(t)

	testCases := []struct {
		name string
		data map[string]any
		want PatternFlags
	}{
		{"time series", timeSeriesInput(), PatternFlags{IsTimeSeries: true}},
		{"categorical", categoricalInput(), PatternFlags{IsCategorical: true}},
		{"grid", gridInput(), PatternFlags{IsGrid: true}},
		{"category value arrays", categoryValueArraysInput(), PatternFlags{IsCategoryValueArrays: true}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := engine.Validate(tc.data)
			if got != tc.want {
				t.Errorf("Validate() = %+v, want %+v", got, tc.want)
			}
		})
	}
}
