// nearest - Nearest-Centroid Classifier (Pigment Classifier Plugin)
//
// Classifies feature vectors by distance to per-label prototype vectors.
// Uses the go-plugin RPC protocol for better performance and process isolation.
//
// Features:
// - Nearest-centroid classification over a prototype file
// - Candidate label filtering from the classify request
// - Per-label scores derived from distances
// - Verbose output option
//
// Build:
//   go build -o nearest
//
// Usage:
//   pigment classify --plugin ./nearest --bundle model.tar.gz photo.jpg
//
// Plugin Args:
//   prototypes: Path to a JSON file mapping labels to prototype vectors
//
// Author: Pigment Contributors
// License: MIT

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/hashicorp/go-plugin"

	pluginapi "github.com/jmylchreest/pigment/pkg/plugin"
)

// NearestPlugin implements the pluginapi.Classifier interface.
type NearestPlugin struct{}

// Classify assigns the label whose prototype vector lies closest to the
// request's feature vector.
func (p *NearestPlugin) Classify(ctx context.Context, req pluginapi.ClassifyRequest) (pluginapi.ClassifyResponse, error) {
	protoPath, ok := req.PluginArgs["prototypes"].(string)
	if !ok || protoPath == "" {
		return pluginapi.ClassifyResponse{}, fmt.Errorf("no prototypes configured (pass --plugin-arg prototypes=FILE)")
	}

	prototypes, err := loadPrototypes(protoPath)
	if err != nil {
		return pluginapi.ClassifyResponse{}, err
	}

	labels := req.Labels
	if len(labels) == 0 {
		// No candidate restriction: consider every prototype.
		labels = make([]string, 0, len(prototypes))
		for label := range prototypes {
			labels = append(labels, label)
		}
		sort.Strings(labels)
	}
	if len(labels) == 0 {
		return pluginapi.ClassifyResponse{}, fmt.Errorf("no labels configured")
	}

	if req.Verbose {
		fmt.Fprintf(os.Stderr, "Comparing against %d candidate labels\n", len(labels))
	}

	best := ""
	bestDistance := math.Inf(1)
	distances := make(map[string]float64, len(labels))
	for _, label := range labels {
		proto, ok := prototypes[label]
		if !ok {
			return pluginapi.ClassifyResponse{}, fmt.Errorf("no prototype for label %q in %s", label, protoPath)
		}
		if len(proto) != len(req.Features) {
			return pluginapi.ClassifyResponse{}, fmt.Errorf("prototype for %q has %d components, feature vector has %d",
				label, len(proto), len(req.Features))
		}

		d := squaredDistance(req.Features, proto)
		distances[label] = d
		if d < bestDistance {
			best = label
			bestDistance = d
		}
	}

	scores := distancesToScores(distances)

	if req.Verbose {
		fmt.Fprintf(os.Stderr, "Nearest label: %s (distance: %.4f)\n", best, math.Sqrt(bestDistance))
	}

	return pluginapi.ClassifyResponse{
		Label:      best,
		Confidence: scores[best],
		Scores:     scores,
	}, nil
}

// GetMetadata returns plugin metadata.
func (p *NearestPlugin) GetMetadata() pluginapi.PluginInfo {
	return pluginapi.PluginInfo{
		Name:            "nearest",
		Type:            "classifier",
		Version:         "0.0.1",
		ProtocolVersion: pluginapi.ProtocolVersion,
		Description:     "Classify feature vectors by distance to per-label prototypes",
		PluginProtocol:  "go-plugin",
	}
}

// GetFlagHelp returns help information for plugin flags.
func (p *NearestPlugin) GetFlagHelp() []pluginapi.FlagHelp {
	return []pluginapi.FlagHelp{
		{
			Name:        "prototypes",
			Type:        "string",
			Default:     "",
			Description: "Path to a JSON file mapping labels to prototype vectors",
			Required:    true,
		},
	}
}

// loadPrototypes reads a JSON object mapping labels to prototype vectors.
func loadPrototypes(path string) (map[string][]float64, error) {
	// #nosec G304 -- the prototype path is supplied by the user via plugin args
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prototypes file: %w", err)
	}

	var prototypes map[string][]float64
	if err := json.Unmarshal(data, &prototypes); err != nil {
		return nil, fmt.Errorf("failed to parse prototypes file: %w", err)
	}
	if len(prototypes) == 0 {
		return nil, fmt.Errorf("prototypes file %s holds no labels", path)
	}
	return prototypes, nil
}

// squaredDistance returns the squared euclidean distance between two vectors
// of equal length.
func squaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// distancesToScores converts distances into scores in (0, 1] that sum to
// one, closer prototypes scoring higher.
func distancesToScores(distances map[string]float64) map[string]float64 {
	scores := make(map[string]float64, len(distances))
	total := 0.0
	for label, d := range distances {
		s := 1.0 / (1.0 + math.Sqrt(d))
		scores[label] = s
		total += s
	}
	for label := range scores {
		scores[label] /= total
	}
	return scores
}

func main() {
	// Handle --plugin-info flag
	if len(os.Args) > 1 && os.Args[1] == "--plugin-info" {
		p := &NearestPlugin{}
		info := p.GetMetadata()

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(info); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding plugin info: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Serve the plugin using go-plugin
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: pluginapi.Handshake,
		Plugins: map[string]plugin.Plugin{
			"classifier": &pluginapi.ClassifierRPC{
				Impl: &NearestPlugin{},
			},
		},
	})
}
