package inference

// Pattern detection probes the top-level shape of the input once and
// classifies it into exactly one DetectedPattern. Downstream components
// dispatch on the pattern and never re-probe field presence ad hoc.

// Detect classifies an input object. Patterns are evaluated in fixed priority
// order and the first structural match wins. Grid and multi-series carry
// unambiguous container keys, so they are checked before the looser
// single-series heuristics that could misfire on nested data.
func Detect(data map[string]any) DetectedPattern {
	switch {
	case isGrid(data):
		return PatternGrid
	case isMultiSeries(data):
		return PatternMultiSeries
	case isTimeSeries(data):
		return PatternTimeSeries
	case isCategoryValueArrays(data):
		return PatternCategoryValueArrays
	case isCategorical(data):
		return PatternCategorical
	default:
		return PatternUnrecognized
	}
}

// DetectAll runs every pattern predicate independently, for preflight
// structural checks without extraction.
func DetectAll(data map[string]any) PatternFlags {
	return PatternFlags{
		IsTimeSeries:          isTimeSeries(data),
		IsCategorical:         isCategorical(data),
		IsMultiSeries:         isMultiSeries(data),
		IsCategoryValueArrays: isCategoryValueArrays(data),
		IsGrid:                isGrid(data),
	}
}

// isGrid matches { "rows": [...], "columns": [...], "values": [[...], ...] }
// where values is a sequence of numeric rows.
func isGrid(data map[string]any) bool {
	if _, ok := asArray(data["rows"]); !ok {
		return false
	}
	if _, ok := asArray(data["columns"]); !ok {
		return false
	}
	values, ok := asArray(data["values"])
	if !ok {
		return false
	}
	for _, row := range values {
		cells, ok := asArray(row)
		if !ok {
			return false
		}
		for _, cell := range cells {
			if _, ok := asFloat(cell); !ok {
				return false
			}
		}
	}
	return true
}

// isMultiSeries matches { "series": [{ "name": ..., "points": [...] }, ...] }
// or a flat "data" record array whose records carry a grouping field.
func isMultiSeries(data map[string]any) bool {
	if series, ok := asArray(data["series"]); ok && len(series) > 0 {
		for _, s := range series {
			rec, ok := asRecord(s)
			if !ok {
				return false
			}
			if _, ok := rec["name"]; !ok {
				return false
			}
			if _, ok := asArray(rec["points"]); !ok {
				return false
			}
		}
		return true
	}
	return isGroupedRecords(data)
}

// groupSampleSize bounds how many records are probed for distinct grouping
// values during detection.
const groupSampleSize = 10

// isGroupedRecords matches a flat "data" array of records that carry a
// grouping field with more than one distinct value, e.g.
// { "data": [{ "date": ..., "store": "A", "sales": ... }, ...] }.
func isGroupedRecords(data map[string]any) bool {
	records, ok := asArray(data["data"])
	if !ok || len(records) == 0 {
		return false
	}
	field := groupingField(records)
	if field == "" {
		return false
	}

	distinct := make(map[string]bool)
	for i, r := range records {
		if i == groupSampleSize {
			break
		}
		rec, ok := asRecord(r)
		if !ok {
			continue
		}
		if v, ok := rec[field]; ok {
			distinct[stringify(v)] = true
		}
	}
	return len(distinct) > 1
}

// isTimeSeries matches a "points" (or normalized "data") array whose records
// carry a recognizably temporal field alongside a numeric value field.
func isTimeSeries(data map[string]any) bool {
	for _, key := range []string{"points", "data"} {
		records, ok := asArray(data[key])
		if !ok || len(records) == 0 {
			continue
		}
		first, ok := asRecord(records[0])
		if !ok {
			continue
		}
		hasTemporal := false
		for field := range temporalFieldNames {
			if v, ok := first[field]; ok && looksLikeTime(v) {
				hasTemporal = true
				break
			}
		}
		if hasTemporal && findYField(first) != "" {
			return true
		}
	}
	return false
}

// isCategoryValueArrays matches two parallel arrays of equal length:
// a categories/labels array and a values array.
func isCategoryValueArrays(data map[string]any) bool {
	values, ok := asArray(data["values"])
	if !ok {
		return false
	}
	for _, key := range []string{"categories", "labels"} {
		if categories, ok := asArray(data[key]); ok {
			return len(categories) > 0 && len(categories) == len(values)
		}
	}
	return false
}

// isCategorical matches an "items" (or normalized "data") array of records
// with a categorical label field and a numeric value field.
func isCategorical(data map[string]any) bool {
	for _, key := range []string{"items", "data"} {
		records, ok := asArray(data[key])
		if !ok || len(records) == 0 {
			continue
		}
		first, ok := asRecord(records[0])
		if !ok {
			continue
		}
		hasLabel := false
		for field := range categoricalFieldNames {
			if _, ok := first[field]; ok {
				hasLabel = true
				break
			}
		}
		if hasLabel && findYField(first) != "" {
			return true
		}
	}
	return false
}

func asArray(v any) ([]any, bool) {
	arr, ok := v.([]any)
	return arr, ok
}

func asRecord(v any) (map[string]any, bool) {
	rec, ok := v.(map[string]any)
	return rec, ok
}
