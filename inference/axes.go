package inference

// buildAxes derives axis specifications from the extraction and hints. The
// x axis is always produced; the y axis is omitted for proportion charts,
// which have no axis semantics. Min/max bounds are deliberately left unset
// rather than computed from data, to avoid clipping.
func buildAxes(ext *Extraction, chosen ChartType, hints *UserHints) (AxisSpec, *AxisSpec) {
	if chosen.IsProportion() {
		return AxisSpec{Type: "category"}, nil
	}

	if chosen == ChartHeatmap {
		x := AxisSpec{Title: "Columns", Field: ext.XField, Type: "category"}
		y := AxisSpec{Title: "Rows", Type: "category"}
		applyHints(&x, ext.XField, hints)
		return x, &y
	}

	x := AxisSpec{Title: "Category", Field: ext.XField, Type: "category"}
	if len(ext.Series) > 0 && len(ext.Series[0].Points) > 0 {
		switch {
		case ext.Series[0].TemporalX:
			x.Title, x.Type = "Time", "datetime"
		case isNumericX(ext.Series[0].Points[0].X):
			x.Title, x.Type = "X", "linear"
		}
	}
	applyHints(&x, ext.XField, hints)

	y := AxisSpec{Title: "Value", Field: ext.YField, Type: "linear"}
	applyHints(&y, ext.YField, hints)
	if y.Format == "log" {
		// A formatting hint of "log" selects the axis scale, not a format.
		y.Type, y.Format = "log", ""
	}

	return x, &y
}

// applyHints copies unit and format hints onto an axis when the field name
// matches; otherwise they stay unset.
func applyHints(axis *AxisSpec, field string, hints *UserHints) {
	if hints == nil || field == "" {
		return
	}
	if unit, ok := hints.Units[field]; ok {
		axis.Unit = unit
	}
	if format, ok := hints.Formatting[field]; ok {
		axis.Format = format
	}
}

// isNumericX reports whether extraction produced a numeric x value. The
// classifier already resolved the field's kind uniformly, so the concrete
// type is authoritative: a category label that happens to spell a number is
// a string here and must stay a category.
func isNumericX(x any) bool {
	_, ok := x.(float64)
	return ok
}
