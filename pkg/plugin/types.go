// Package plugin provides the public API for pigment plugins.
package plugin

// ClassifyRequest is the feature vector sent to classifier plugins.
type ClassifyRequest struct {
	// Features is the flattened feature vector: four components per
	// dominant colour (L, a, b, proportion), ordered most populous first.
	Features []float64 `json:"features"`

	// Labels optionally restricts the classifier to a candidate label set.
	Labels []string `json:"labels,omitempty"`

	Verbose    bool           `json:"verbose"`
	PluginArgs map[string]any `json:"plugin_args,omitempty"`
}

// ClassifyResponse is a classifier plugin's verdict on a feature vector.
type ClassifyResponse struct {
	// Label is the winning class.
	Label string `json:"label"`

	// Confidence is the classifier's confidence in Label, in [0, 1].
	Confidence float64 `json:"confidence"`

	// Scores optionally carries the per-label scores behind the verdict.
	Scores map[string]float64 `json:"scores,omitempty"`

	// Error carries a plugin-reported failure. JSON-stdio plugins use this
	// to report errors while still exiting cleanly.
	Error string `json:"error,omitempty"`
}
