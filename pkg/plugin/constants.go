// Package plugin provides the public API for pigment plugins.
package plugin

import (
	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion defines the current plugin API version.
	// Format: MAJOR.MINOR.PATCH.
	// - Increment MAJOR for breaking changes (incompatible API changes).
	// - Increment MINOR for backward-compatible additions.
	// - Increment PATCH for backward-compatible bug fixes.
	ProtocolVersion = "0.0.1"

	// MinCompatibleVersion is the oldest protocol version this pigment version can work with.
	MinCompatibleVersion = "0.0.1"
)

// Handshake is the handshake configuration for go-plugin protocol.
// This ensures that plugins using go-plugin can only connect to compatible hosts.
//
// NOTE: go-plugin's ProtocolVersion is a single uint that must match exactly.
// We use the major version from ProtocolVersion (defined above) for this.
// The full semantic version checking (including MinCompatibleVersion) happens
// separately via the --plugin-info query and IsCompatible() function.
//
// This means:
// - go-plugin handshake: Major version must match exactly (e.g., both 0)
// - Semantic version check: Full MAJOR.MINOR.PATCH validation with MinCompatibleVersion
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  uint(GetCurrentVersion().Major),
	MagicCookieKey:   "PIGMENT_PLUGIN",
	MagicCookieValue: "pigment_dominant_colour",
}

// PluginType defines the type of plugin communication protocol.
type PluginType string

const (
	// PluginTypeGoPlugin indicates the plugin uses HashiCorp go-plugin RPC protocol.
	PluginTypeGoPlugin PluginType = "go-plugin"

	// PluginTypeJSON indicates the plugin uses simple JSON over stdin/stdout.
	PluginTypeJSON PluginType = "json-stdio"
)
