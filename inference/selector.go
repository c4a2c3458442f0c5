package inference

// Chart type selection maps the detected pattern and series cardinality to a
// chosen type plus at most two ranked alternatives. A preferred-type hint is
// honored when structurally compatible and silently ignored otherwise; the
// hint is advisory, never an error condition.

// selectChartType returns the chosen chart type and its ordered alternatives.
func selectChartType(ext *Extraction, hints *UserHints) (ChartType, []ChartType) {
	ranked := defaultRanking(ext)
	chosen := ranked[0]

	if hints != nil && hints.PreferredChartType != "" &&
		hintCompatible(hints.PreferredChartType, ext) {
		chosen = hints.PreferredChartType
	}

	alternatives := make([]ChartType, 0, 2)
	for _, t := range ranked {
		if t == chosen || len(alternatives) == 2 {
			continue
		}
		alternatives = append(alternatives, t)
	}
	return chosen, alternatives
}

// defaultRanking orders chart types by structural fit for the extraction,
// best first. The first entry is the pattern default.
func defaultRanking(ext *Extraction) []ChartType {
	switch ext.Pattern {
	case PatternTimeSeries:
		return []ChartType{ChartLine, ChartArea, ChartColumn}
	case PatternCategorical:
		if singleItem(ext) {
			return []ChartType{ChartPie, ChartColumn, ChartBar}
		}
		return []ChartType{ChartColumn, ChartBar, ChartPie}
	case PatternMultiSeries:
		if allTemporal(ext) {
			return []ChartType{ChartLine, ChartArea, ChartColumn}
		}
		return []ChartType{ChartBar, ChartColumn, ChartLine}
	case PatternCategoryValueArrays:
		return []ChartType{ChartColumn, ChartBar, ChartPie}
	case PatternGrid:
		// No other type represents 2-D data meaningfully.
		return []ChartType{ChartHeatmap}
	default:
		return []ChartType{ChartColumn, ChartBar}
	}
}

// hintCompatible reports whether a preferred chart type can represent the
// extracted data at all.
func hintCompatible(pref ChartType, ext *Extraction) bool {
	switch {
	case ext.Pattern == PatternGrid:
		// 2-D data fits nothing but a heatmap.
		return pref == ChartHeatmap
	case pref == ChartHeatmap:
		return false
	case pref == ChartPie:
		// A single proportion chart cannot represent multiple series.
		return len(ext.Series) <= 1
	default:
		return true
	}
}

func singleItem(ext *Extraction) bool {
	return len(ext.Series) == 1 && len(ext.Series[0].Points) == 1
}

func allTemporal(ext *Extraction) bool {
	for _, s := range ext.Series {
		if !s.TemporalX {
			return false
		}
	}
	return len(ext.Series) > 0
}
