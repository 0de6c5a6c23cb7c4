// Package plugin provides the public API for pigment plugins.
package plugin

import (
	"context"
	"encoding/json"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// ClassifierRPC implements the go-plugin Plugin interface for classifier plugins.
type ClassifierRPC struct {
	plugin.Plugin
	Impl Classifier
}

// Server returns an RPC server for this plugin.
func (p *ClassifierRPC) Server(*plugin.MuxBroker) (any, error) {
	return &ClassifierRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *ClassifierRPC) Client(b *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &ClassifierRPCClient{client: c}, nil
}

// ClassifierRPCServer is the RPC server implementation for classifier plugins.
type ClassifierRPCServer struct {
	Impl Classifier
}

// Classify implements the RPC method for feature-vector classification.
func (s *ClassifierRPCServer) Classify(req ClassifyRequest, resp *[]byte) error {
	result, err := s.Impl.Classify(context.Background(), req)
	if err != nil {
		return err
	}

	// Transfer as JSON so both RPC and stdio plugins share one wire format.
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	*resp = data
	return nil
}

// GetMetadata implements the RPC method for fetching plugin metadata.
func (s *ClassifierRPCServer) GetMetadata(_ any, resp *PluginInfo) error {
	*resp = s.Impl.GetMetadata()
	return nil
}

// GetFlagHelp implements the RPC method for fetching flag help.
func (s *ClassifierRPCServer) GetFlagHelp(_ any, resp *[]FlagHelp) error {
	*resp = s.Impl.GetFlagHelp()
	return nil
}

// ClassifierRPCClient is the RPC client implementation for classifier plugins.
type ClassifierRPCClient struct {
	client *rpc.Client
}

// Classify calls the remote Classify method.
func (c *ClassifierRPCClient) Classify(_ context.Context, req ClassifyRequest) (ClassifyResponse, error) {
	var respBytes []byte
	if err := c.client.Call("Plugin.Classify", req, &respBytes); err != nil {
		return ClassifyResponse{}, err
	}

	var result ClassifyResponse
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return ClassifyResponse{}, err
	}
	if result.Error != "" {
		return ClassifyResponse{}, &RPCError{Message: result.Error}
	}

	return result, nil
}

// GetMetadata calls the remote GetMetadata method.
func (c *ClassifierRPCClient) GetMetadata() (PluginInfo, error) {
	var info PluginInfo
	err := c.client.Call("Plugin.GetMetadata", new(any), &info)
	return info, err
}

// GetFlagHelp calls the remote GetFlagHelp method.
func (c *ClassifierRPCClient) GetFlagHelp() []FlagHelp {
	var help []FlagHelp
	if err := c.client.Call("Plugin.GetFlagHelp", new(any), &help); err != nil {
		return []FlagHelp{}
	}
	return help
}

// RPCError represents an error returned from an RPC call.
type RPCError struct {
	Message string
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return e.Message
}
