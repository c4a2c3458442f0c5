package inference

import "fmt"

// Extraction is the normalized result of pulling series out of an input:
// the series themselves plus field-name provenance for axis titling.
type Extraction struct {
	Pattern DetectedPattern
	Series  []NormalizedSeries
	XField  string
	YField  string

	// Grid inputs only: row and column labels for renderer passthrough.
	Rows    []string
	Columns []string
}

// recordFilter decides whether one record participates in extraction.
// A nil filter keeps everything.
type recordFilter func(record map[string]any) bool

// Field-name candidates for axis discovery, most specific first. Fallback
// scans over record keys happen in sorted order so output is deterministic.
var (
	xFieldCandidates = []string{"t", "time", "date", "timestamp", "x", "label", "category", "name"}
	yFieldCandidates = []string{"value", "y", "count", "amount", "sales", "units", "quantity", "price", "revenue"}

	// Fields that split a flat record array into multiple series, checked in
	// order. A candidate already claimed as the x field does not count.
	groupFieldCandidates = []string{"store", "group", "series", "category"}
)

// groupingField returns the field a flat record array should be grouped by,
// or "" when its records carry no grouping field distinct from the x field.
func groupingField(records []any) string {
	for _, r := range records {
		rec, ok := asRecord(r)
		if !ok {
			continue
		}
		x := findXField(rec)
		for _, candidate := range groupFieldCandidates {
			if _, ok := rec[candidate]; ok && candidate != x {
				return candidate
			}
		}
		return ""
	}
	return ""
}

// findXField locates the x-axis field in a record: known candidates first,
// then the first non-numeric field.
func findXField(rec map[string]any) string {
	for _, candidate := range xFieldCandidates {
		if _, ok := rec[candidate]; ok {
			return candidate
		}
	}
	for _, key := range sortedKeys(rec) {
		if _, ok := asFloat(rec[key]); !ok {
			return key
		}
	}
	return ""
}

// findYField locates the y-axis field in a record: known candidates first,
// then the first numeric field other than "id".
func findYField(rec map[string]any) string {
	for _, candidate := range yFieldCandidates {
		if _, ok := rec[candidate]; ok {
			return candidate
		}
	}
	for _, key := range sortedKeys(rec) {
		if key == "id" {
			continue
		}
		if _, ok := asFloat(rec[key]); ok {
			return key
		}
	}
	return ""
}

// extract pulls normalized series out of the input for the detected pattern.
// Records missing an expected field are skipped; only when a series loses
// every record does extraction fail.
func extract(data map[string]any, pattern DetectedPattern, hints *UserHints, filter recordFilter) (*Extraction, error) {
	var hintX, hintY string
	if hints != nil {
		hintX, hintY = hints.XField, hints.YField
	}

	switch pattern {
	case PatternGrid:
		return extractGrid(data)
	case PatternMultiSeries:
		return extractMultiSeries(data, hintX, hintY, filter)
	case PatternTimeSeries:
		return extractRecordSeries(data, pattern, []string{"points", "data"}, hintX, hintY, filter)
	case PatternCategoryValueArrays:
		return extractCategoryValueArrays(data)
	case PatternCategorical:
		return extractRecordSeries(data, pattern, []string{"items", "data"}, hintX, hintY, filter)
	default:
		return extractUnrecognized(data, hintX, hintY, filter)
	}
}

// extractRecords converts one array of record maps into points. Field names
// are resolved from the first record when not supplied. The x field's kind
// is classified once across all records and applied uniformly, so every
// point in the series shares one x semantic type: temporal x is normalized
// to epoch milliseconds, numeric x stays a number, everything else becomes a
// category string.
func extractRecords(records []any, xField, yField string, filter recordFilter) (points []Point, temporal bool, usedX, usedY string) {
	usedX, usedY = xField, yField

	// Resolve field names from the first record when not supplied.
	for _, r := range records {
		rec, ok := asRecord(r)
		if !ok {
			continue
		}
		if usedX == "" {
			usedX = findXField(rec)
		}
		if usedY == "" {
			usedY = findYField(rec)
		}
		break
	}
	if usedX == "" || usedY == "" {
		return nil, false, usedX, usedY
	}

	var xValues []any
	for _, r := range records {
		if rec, ok := asRecord(r); ok {
			if xv, ok := rec[usedX]; ok {
				xValues = append(xValues, xv)
			}
		}
	}
	kind := ClassifyField(usedX, xValues)
	temporal = kind == KindTemporal

	for _, r := range records {
		rec, ok := asRecord(r)
		if !ok {
			continue
		}
		if filter != nil && !filter(rec) {
			continue
		}
		xv, ok := rec[usedX]
		if !ok {
			continue
		}
		y, ok := asFloat(rec[usedY])
		if !ok {
			continue
		}

		switch kind {
		case KindTemporal:
			t, ok := parseTime(xv)
			if !ok {
				continue
			}
			points = append(points, Point{X: epochMillis(t), Label: stringify(xv), Y: y})
		case KindNumeric:
			f, ok := asFloat(xv)
			if !ok {
				continue
			}
			points = append(points, Point{X: f, Y: y})
		default:
			points = append(points, Point{X: stringify(xv), Y: y})
		}
	}
	return points, temporal, usedX, usedY
}

func extractRecordSeries(data map[string]any, pattern DetectedPattern, containerKeys []string, hintX, hintY string, filter recordFilter) (*Extraction, error) {
	var records []any
	for _, key := range containerKeys {
		if arr, ok := asArray(data[key]); ok && len(arr) > 0 {
			records = arr
			break
		}
	}

	points, temporal, usedX, usedY := extractRecords(records, hintX, hintY, filter)
	if len(points) == 0 {
		return nil, newValidationError("no usable data points found in input")
	}

	return &Extraction{
		Pattern: pattern,
		Series:  []NormalizedSeries{{Name: "Series 1", Points: points, TemporalX: temporal}},
		XField:  usedX,
		YField:  usedY,
	}, nil
}

// extractMultiSeries handles both multi-series shapes: an explicit "series"
// array of named point lists, or a flat "data" record array split by its
// grouping field.
func extractMultiSeries(data map[string]any, hintX, hintY string, filter recordFilter) (*Extraction, error) {
	if raw, ok := asArray(data["series"]); ok && len(raw) > 0 {
		return extractNamedSeries(raw, hintX, hintY, filter)
	}
	records, _ := asArray(data["data"])
	return extractGroupedRecords(records, hintX, hintY, filter)
}

func extractNamedSeries(raw []any, hintX, hintY string, filter recordFilter) (*Extraction, error) {
	ext := &Extraction{Pattern: PatternMultiSeries}
	for idx, s := range raw {
		rec, ok := asRecord(s)
		if !ok {
			continue
		}
		records, _ := asArray(rec["points"])

		points, temporal, usedX, usedY := extractRecords(records, hintX, hintY, filter)
		if len(points) == 0 {
			return nil, newValidationError("no usable data points in series %d", idx+1)
		}

		name := stringify(rec["name"])
		if name == "" {
			name = fmt.Sprintf("Series %d", idx+1)
		}
		ext.Series = append(ext.Series, NormalizedSeries{Name: name, Points: points, TemporalX: temporal})
		if ext.XField == "" {
			ext.XField, ext.YField = usedX, usedY
		}
	}

	if len(ext.Series) == 0 {
		return nil, newValidationError("no usable data points found in input")
	}
	return ext, nil
}

// extractGroupedRecords splits one flat record array into a series per
// distinct grouping-field value. Series keep first-occurrence order, and
// records within a series keep input order, so output is stable for
// identical input.
func extractGroupedRecords(records []any, hintX, hintY string, filter recordFilter) (*Extraction, error) {
	field := groupingField(records)

	var names []string
	grouped := make(map[string][]any)
	for _, r := range records {
		rec, ok := asRecord(r)
		if !ok {
			continue
		}
		name := stringify(rec[field])
		if name == "" {
			name = "Unknown"
		}
		if _, seen := grouped[name]; !seen {
			names = append(names, name)
		}
		grouped[name] = append(grouped[name], r)
	}

	ext := &Extraction{Pattern: PatternMultiSeries}
	for _, name := range names {
		points, temporal, usedX, usedY := extractRecords(grouped[name], hintX, hintY, filter)
		if len(points) == 0 {
			continue
		}
		ext.Series = append(ext.Series, NormalizedSeries{Name: name, Points: points, TemporalX: temporal})
		if ext.XField == "" {
			ext.XField, ext.YField = usedX, usedY
		}
	}

	if len(ext.Series) == 0 {
		return nil, newValidationError("no usable data points found in input")
	}
	return ext, nil
}

func extractCategoryValueArrays(data map[string]any) (*Extraction, error) {
	values, _ := asArray(data["values"])

	var categories []any
	usedX := "categories"
	for _, key := range []string{"categories", "labels"} {
		if arr, ok := asArray(data[key]); ok {
			categories, usedX = arr, key
			break
		}
	}

	n := len(categories)
	if len(values) < n {
		n = len(values)
	}

	var points []Point
	for i := 0; i < n; i++ {
		y, ok := asFloat(values[i])
		if !ok {
			continue
		}
		points = append(points, Point{X: stringify(categories[i]), Y: y})
	}
	if len(points) == 0 {
		return nil, newValidationError("no usable data points found in input")
	}

	return &Extraction{
		Pattern: PatternCategoryValueArrays,
		Series:  []NormalizedSeries{{Name: "Series 1", Points: points}},
		XField:  usedX,
		YField:  "values",
	}, nil
}

func extractGrid(data map[string]any) (*Extraction, error) {
	rowsRaw, _ := asArray(data["rows"])
	colsRaw, _ := asArray(data["columns"])
	values, _ := asArray(data["values"])

	rows := make([]string, len(rowsRaw))
	for i, r := range rowsRaw {
		rows[i] = stringify(r)
	}
	columns := make([]string, len(colsRaw))
	for i, c := range colsRaw {
		columns[i] = stringify(c)
	}

	ext := &Extraction{
		Pattern: PatternGrid,
		XField:  "columns",
		YField:  "values",
		Rows:    rows,
		Columns: columns,
	}

	total := 0
	for i, rowVal := range values {
		cells, ok := asArray(rowVal)
		if !ok {
			continue
		}
		name := fmt.Sprintf("Row %d", i+1)
		if i < len(rows) && rows[i] != "" {
			name = rows[i]
		}

		var points []Point
		for j, cell := range cells {
			y, ok := asFloat(cell)
			if !ok {
				continue
			}
			label := fmt.Sprintf("Column %d", j+1)
			if j < len(columns) && columns[j] != "" {
				label = columns[j]
			}
			points = append(points, Point{X: label, Y: y})
		}
		total += len(points)
		ext.Series = append(ext.Series, NormalizedSeries{Name: name, Points: points})
	}

	if total == 0 {
		return nil, newValidationError("no usable data points found in input")
	}
	return ext, nil
}

// extractUnrecognized is the conservative fallback: find any array of records
// and treat it like categorical data, or zip the first two parallel arrays.
func extractUnrecognized(data map[string]any, hintX, hintY string, filter recordFilter) (*Extraction, error) {
	keys := sortedKeys(data)

	for _, key := range keys {
		arr, ok := asArray(data[key])
		if !ok || len(arr) == 0 {
			continue
		}
		if _, ok := asRecord(arr[0]); !ok {
			continue
		}
		points, temporal, usedX, usedY := extractRecords(arr, hintX, hintY, filter)
		if len(points) == 0 {
			continue
		}
		return &Extraction{
			Pattern: PatternUnrecognized,
			Series:  []NormalizedSeries{{Name: "Series 1", Points: points, TemporalX: temporal}},
			XField:  usedX,
			YField:  usedY,
		}, nil
	}

	// Two parallel arrays with no recognizable names: first is x, second is y.
	var arrays [][]any
	var arrayKeys []string
	for _, key := range keys {
		if arr, ok := asArray(data[key]); ok {
			arrays = append(arrays, arr)
			arrayKeys = append(arrayKeys, key)
		}
		if len(arrays) == 2 {
			break
		}
	}
	if len(arrays) == 2 {
		n := len(arrays[0])
		if len(arrays[1]) < n {
			n = len(arrays[1])
		}
		var points []Point
		for i := 0; i < n; i++ {
			y, ok := asFloat(arrays[1][i])
			if !ok {
				continue
			}
			points = append(points, Point{X: stringify(arrays[0][i]), Y: y})
		}
		if len(points) > 0 {
			return &Extraction{
				Pattern: PatternUnrecognized,
				Series:  []NormalizedSeries{{Name: "Series 1", Points: points}},
				XField:  arrayKeys[0],
				YField:  arrayKeys[1],
			}, nil
		}
	}

	return nil, newValidationError("no usable data points found in input")
}
