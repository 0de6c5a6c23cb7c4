// Package plugin provides the public API for pigment plugins.
package plugin

import (
	"context"
)

// Classifier is the interface that classifier plugins must implement for go-plugin RPC.
type Classifier interface {
	// Classify assigns a label to a flattened feature vector.
	Classify(ctx context.Context, req ClassifyRequest) (ClassifyResponse, error)

	// GetMetadata returns plugin metadata.
	GetMetadata() PluginInfo

	// GetFlagHelp returns help information for plugin flags.
	GetFlagHelp() []FlagHelp
}
