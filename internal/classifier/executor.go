package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	pluginapi "github.com/jmylchreest/pigment/pkg/plugin"
)

// Executor provides a unified interface for running classifier plugins
// regardless of their underlying protocol (go-plugin RPC or JSON-stdio).
type Executor struct {
	path         string
	protocolType pluginapi.PluginType
	info         pluginapi.PluginInfo
	client       *plugin.Client
	rpcClient    *pluginapi.ClassifierRPCClient
	runner       ProcessRunner
	verbose      bool
}

// New creates a new Executor by detecting the plugin's protocol.
func New(pluginPath string) (*Executor, error) {
	return NewWithVerbose(pluginPath, false)
}

// NewWithVerbose creates a new Executor with verbose logging control.
func NewWithVerbose(pluginPath string, verbose bool) (*Executor, error) {
	return NewWithVerboseAndRunner(pluginPath, verbose, NewRealProcessRunner())
}

// NewWithVerboseAndRunner creates a new Executor with a custom process runner.
// Used by tests to substitute a mock runner for the JSON-stdio path.
func NewWithVerboseAndRunner(pluginPath string, verbose bool, runner ProcessRunner) (*Executor, error) {
	result, err := DetectProtocol(pluginPath)
	if err != nil {
		return nil, fmt.Errorf("failed to detect plugin protocol: %w", err)
	}

	// Check protocol version compatibility.
	if result.Info.ProtocolVersion != "" {
		compatible, err := pluginapi.IsCompatible(result.Info.ProtocolVersion)
		if err != nil || !compatible {
			errMsg := "unknown error"
			if err != nil {
				errMsg = err.Error()
			}
			return nil, fmt.Errorf(
				"plugin protocol version %s is incompatible with pigment %s: %s",
				result.Info.ProtocolVersion,
				pluginapi.ProtocolVersion,
				errMsg,
			)
		}
	}
	// Note: If protocol_version is missing, we allow the plugin (backward compatibility)
	// but this should be warned about in verbose mode

	return &Executor{
		path:         pluginPath,
		protocolType: result.Type,
		info:         result.Info,
		runner:       runner,
		verbose:      verbose,
	}, nil
}

// Info returns the metadata the plugin reported during protocol detection.
func (e *Executor) Info() pluginapi.PluginInfo {
	return e.info
}

// Classify runs the classifier plugin against a feature vector.
func (e *Executor) Classify(ctx context.Context, req pluginapi.ClassifyRequest) (pluginapi.ClassifyResponse, error) {
	switch e.protocolType {
	case pluginapi.PluginTypeGoPlugin:
		return e.classifyGoPlugin(ctx, req)
	case pluginapi.PluginTypeJSON:
		return e.classifyJSON(ctx, req)
	default:
		return pluginapi.ClassifyResponse{}, fmt.Errorf("unsupported protocol type: %s", e.protocolType)
	}
}

// Close cleans up any resources held by the executor.
func (e *Executor) Close() {
	if e.client != nil {
		e.client.Kill()
		e.client = nil
		e.rpcClient = nil
	}
}

// --- Go-Plugin RPC implementation ---

func (e *Executor) getRPCClient() (*pluginapi.ClassifierRPCClient, error) {
	if e.rpcClient != nil {
		return e.rpcClient, nil
	}

	// Configure logger based on verbose flag.
	var logger hclog.Logger
	if e.verbose {
		logger = hclog.New(&hclog.LoggerOptions{
			Name:   "classifier",
			Output: log.Writer(),
			Level:  hclog.Debug,
		})
	} else {
		logger = hclog.New(&hclog.LoggerOptions{
			Name:   "classifier",
			Output: io.Discard,
			Level:  hclog.Off,
		})
	}

	// Initialize go-plugin client.
	e.client = plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig: pluginapi.Handshake,
		Plugins: map[string]plugin.Plugin{
			"classifier": &pluginapi.ClassifierRPC{},
		},
		Cmd:              exec.Command(e.path), // #nosec G204 -- path is supplied by the user invoking the CLI.
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolNetRPC},
		Logger:           logger,
	})

	// Connect via RPC.
	rpcClient, err := e.client.Client()
	if err != nil {
		e.client.Kill()
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	// Request the plugin.
	raw, err := rpcClient.Dispense("classifier")
	if err != nil {
		e.client.Kill()
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	client := raw.(*pluginapi.ClassifierRPCClient)
	e.rpcClient = client

	return client, nil
}

func (e *Executor) classifyGoPlugin(ctx context.Context, req pluginapi.ClassifyRequest) (pluginapi.ClassifyResponse, error) {
	client, err := e.getRPCClient()
	if err != nil {
		return pluginapi.ClassifyResponse{}, err
	}

	return client.Classify(ctx, req)
}

// --- JSON-stdio implementation ---

func (e *Executor) classifyJSON(ctx context.Context, req pluginapi.ClassifyRequest) (pluginapi.ClassifyResponse, error) {
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return pluginapi.ClassifyResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	stdout, stderr, err := e.runner.Run(ctx, e.path, nil, bytes.NewReader(reqJSON))
	if err != nil {
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			return pluginapi.ClassifyResponse{}, fmt.Errorf("plugin execution failed: %w\nStderr: %s", err, msg)
		}
		return pluginapi.ClassifyResponse{}, fmt.Errorf("plugin execution failed: %w", err)
	}

	var resp pluginapi.ClassifyResponse
	if err := json.Unmarshal(stdout, &resp); err != nil {
		return pluginapi.ClassifyResponse{}, fmt.Errorf("failed to parse plugin output\nOutput: %s", string(stdout))
	}

	if resp.Error != "" {
		return pluginapi.ClassifyResponse{}, &pluginapi.RPCError{Message: resp.Error}
	}

	return resp, nil
}
