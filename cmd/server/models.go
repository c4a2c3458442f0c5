package main

import (
	"github.com/liamcoop/chartgen/charts"
	"github.com/liamcoop/chartgen/inference"
)

// API request and response models.

// GenerateChartRequest is the request body for chart generation. Data may be
// a JSON object or a bare array; arrays are normalized to {"data": [...]}.
type GenerateChartRequest struct {
	Data  any                  `json:"data"`
	Hints *inference.UserHints `json:"hints,omitempty"`
} // @name GenerateChartRequest

// ValidateResponse reports which structural patterns matched an input.
type ValidateResponse struct {
	Valid    bool                    `json:"valid"`
	Patterns inference.PatternFlags  `json:"patterns"`
	Message  string                  `json:"message,omitempty"`
	Error    string                  `json:"error,omitempty"`
} // @name ValidateResponse

// ChartTypeInfo describes one supported chart type.
type ChartTypeInfo struct {
	Type        string   `json:"type" example:"line"`
	Description string   `json:"description" example:"Line chart for time series and continuous data"`
	BestFor     []string `json:"best_for"`
} // @name ChartTypeInfo

// ChartTypesResponse lists the supported chart types.
type ChartTypesResponse struct {
	ChartTypes []ChartTypeInfo `json:"chart_types"`
} // @name ChartTypesResponse

// ChartsListResponse is the response for listing saved charts.
type ChartsListResponse struct {
	Charts []*charts.SavedChart `json:"charts"`
} // @name ChartsListResponse

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error" example:"no usable data points found in input"`
	Details string `json:"details,omitempty"`
} // @name ErrorResponse
