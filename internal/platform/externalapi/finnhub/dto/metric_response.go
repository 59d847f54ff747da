package dto

// MetricResponse represents the JSON response from the /stock/metric endpoint.
// Metric values are json.Number for numbers and string for dates; keys vary by symbol.
type MetricResponse struct {
	Metric     map[string]any `json:"metric"`
	MetricType string         `json:"metricType"`
	Symbol     string         `json:"symbol"`
}
