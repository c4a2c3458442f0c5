package inference

import (
	"fmt"
	"strings"
)

// buildRationale produces the human-readable justification for the chosen
// type. One fixed template per chart type; fully reproducible from the same
// inputs.
func buildRationale(chosen ChartType, ext *Extraction) string {
	numSeries := len(ext.Series)

	switch chosen {
	case ChartLine:
		return fmt.Sprintf("Line chart selected because data appears to be a time series with %d series. Line charts are ideal for showing trends over time.", numSeries)
	case ChartPie:
		categories := 0
		if numSeries > 0 {
			categories = len(ext.Series[0].Points)
		}
		return fmt.Sprintf("Pie chart selected because data represents a single categorical breakdown with %d categories. Pie charts effectively show proportions.", categories)
	case ChartColumn:
		return fmt.Sprintf("Column chart selected because data represents categorical data with %d series. Column charts are effective for comparing categories.", numSeries)
	case ChartBar:
		return fmt.Sprintf("Bar chart selected for categorical comparison with %d series. Bar charts work well when category names are long.", numSeries)
	case ChartArea:
		return fmt.Sprintf("Area chart selected for time series data with %d series. Area charts emphasize the magnitude of change over time.", numSeries)
	case ChartScatter:
		return "Scatter plot selected for numeric data pairs. Scatter plots reveal relationships between two numeric variables."
	case ChartHeatmap:
		return "Heatmap selected because data represents a 2D grid. Heatmaps are ideal for visualizing matrix data."
	default:
		return fmt.Sprintf("Chart type %s selected based on data structure.", chosen)
	}
}

// buildTitle derives a chart title: an explicit top-level "title" value
// passes through, otherwise the title reflects the detected container.
func buildTitle(data map[string]any, pattern DetectedPattern, chosen ChartType) string {
	if title, ok := data["title"].(string); ok && title != "" {
		return title
	}

	switch pattern {
	case PatternTimeSeries:
		return "Time Series Data"
	case PatternCategorical:
		return "Categorical Breakdown"
	case PatternMultiSeries:
		return "Multi-Series Data"
	case PatternGrid:
		return "Grid Data"
	default:
		return titleCase(string(chosen)) + " Chart"
	}
}

// buildDescription is the accessibility text for screen readers.
func buildDescription(title string) string {
	return "Chart showing " + strings.ToLower(title)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
