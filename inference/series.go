package inference

// formatSeries renders normalized series into the point shape the chosen
// chart type requires. Proportion charts discard ordering and axis semantics
// entirely, so they get {name, y} records; heatmaps get [column, row, value]
// triplets; everything else gets [x, y] coordinate pairs.
func formatSeries(ext *Extraction, chosen ChartType) []SeriesSpec {
	switch {
	case chosen.IsProportion():
		return formatProportionSeries(ext)
	case chosen == ChartHeatmap:
		return formatHeatmapSeries(ext)
	default:
		return formatCoordinateSeries(ext)
	}
}

func formatProportionSeries(ext *Extraction) []SeriesSpec {
	specs := make([]SeriesSpec, 0, len(ext.Series))
	for _, s := range ext.Series {
		data := make([]any, 0, len(s.Points))
		for _, p := range s.Points {
			data = append(data, map[string]any{"name": pointLabel(p), "y": p.Y})
		}
		specs = append(specs, SeriesSpec{Name: s.Name, Data: data})
	}
	return specs
}

func formatHeatmapSeries(ext *Extraction) []SeriesSpec {
	var data []any
	for row, s := range ext.Series {
		for col, p := range s.Points {
			data = append(data, []any{col, row, p.Y})
		}
	}
	return []SeriesSpec{{Name: "Values", Data: data}}
}

func formatCoordinateSeries(ext *Extraction) []SeriesSpec {
	specs := make([]SeriesSpec, 0, len(ext.Series))
	for _, s := range ext.Series {
		data := make([]any, 0, len(s.Points))
		for _, p := range s.Points {
			data = append(data, []any{p.X, p.Y})
		}
		specs = append(specs, SeriesSpec{Name: s.Name, Data: data})
	}
	return specs
}

// pointLabel is the display name for a point in a proportion chart: the
// original string for temporal x values, the category otherwise.
func pointLabel(p Point) string {
	if p.Label != "" {
		return p.Label
	}
	return stringify(p.X)
}
