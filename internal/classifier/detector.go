// Package classifier runs classifier plugins against extracted feature vectors.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	pluginapi "github.com/jmylchreest/pigment/pkg/plugin"
)

// DetectorResult contains the detected protocol information for a plugin.
type DetectorResult struct {
	Type             pluginapi.PluginType
	SupportsGoPlugin bool
	Info             pluginapi.PluginInfo
}

// DetectProtocol queries a plugin binary for its supported protocol.
// Plugins report their protocol via the --plugin-info flag.
func DetectProtocol(pluginPath string) (*DetectorResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// #nosec G204 -- pluginPath is supplied by the user invoking the CLI.
	cmd := exec.CommandContext(ctx, pluginPath, "--plugin-info")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to query plugin: %w", err)
	}

	var info pluginapi.PluginInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("failed to parse plugin info: %w", err)
	}

	result := &DetectorResult{Info: info}

	switch info.PluginProtocol {
	case string(pluginapi.PluginTypeGoPlugin):
		result.Type = pluginapi.PluginTypeGoPlugin
		result.SupportsGoPlugin = true
	case string(pluginapi.PluginTypeJSON), "":
		// Empty defaults to json-stdio for backward compatibility.
		result.Type = pluginapi.PluginTypeJSON
	default:
		return nil, fmt.Errorf("unknown plugin_protocol: %s", info.PluginProtocol)
	}

	return result, nil
}
