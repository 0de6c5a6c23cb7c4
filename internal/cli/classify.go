// Package cli provides the command-line interface for Pigment.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pigment/internal/assets"
	"github.com/jmylchreest/pigment/internal/classifier"
	"github.com/jmylchreest/pigment/internal/colour"
	"github.com/jmylchreest/pigment/internal/extract"
	pluginapi "github.com/jmylchreest/pigment/pkg/plugin"
)

var (
	// Classify command flags
	classifyOpts       extractionOptions
	classifyPlugin     string
	classifyBundle     string
	classifyScale      string
	classifyOffset     string
	classifyLabels     string
	classifyFormat     string
	classifyPluginArgs []string
	classifyPreview    bool
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify <image>",
	Short: "Classify an image with a classifier plugin",
	Long: `Classify an image by handing its feature vector to a classifier plugin.

The classify command runs the full pipeline: dominant colour extraction,
feature normalisation with the model's scaler, and classification through
an external plugin binary. Plugins speak either the go-plugin RPC protocol
or plain JSON over stdin/stdout; the protocol is detected automatically.

Candidate labels come from the bundle's labels.txt when present, or from
the --labels file.

Examples:
  # Classify with a bundle that includes labels
  pigment classify --plugin ./nearest --bundle model.tar.gz photo.jpg

  # Classify with separate assets and explicit labels
  pigment classify -p ./nearest --scale s.txt --offset o.txt --labels labels.txt photo.jpg

  # Pass plugin-specific arguments
  pigment classify -p ./nearest --bundle model.tar.gz --plugin-arg metric=cie94 photo.jpg

  # Print only the winning label
  pigment classify -p ./nearest --bundle model.tar.gz --quiet photo.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	classifyOpts.registerFlags(classifyCmd)
	classifyCmd.Flags().StringVarP(&classifyPlugin, "plugin", "p", "", "classifier plugin binary (required)")
	classifyCmd.Flags().StringVar(&classifyBundle, "bundle", "", "scaler bundle archive (may include labels.txt)")
	classifyCmd.Flags().StringVar(&classifyScale, "scale", "", "scale values file (plain or compressed)")
	classifyCmd.Flags().StringVar(&classifyOffset, "offset", "", "offset values file (plain or compressed)")
	classifyCmd.Flags().StringVar(&classifyLabels, "labels", "", "candidate labels file (overrides bundle labels)")
	classifyCmd.Flags().StringVarP(&classifyFormat, "format", "f", "text", "output format (text, json)")
	classifyCmd.Flags().StringArrayVar(&classifyPluginArgs, "plugin-arg", nil, "plugin argument as key=value (repeatable)")
	classifyCmd.Flags().BoolVar(&classifyPreview, "preview", false, "show the dominant colour next to the label")
	classifyCmd.MarkFlagRequired("plugin")
}

// runClassify executes the classify command.
func runClassify(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	scaler, labels, err := loadScalerAssets(classifyBundle, classifyScale, classifyOffset)
	if err != nil {
		return err
	}
	if classifyLabels != "" {
		labels, err = assets.LoadLabels(classifyLabels)
		if err != nil {
			return fmt.Errorf("failed to load labels: %w", err)
		}
	}
	if err := checkScalerLength(scaler, classifyOpts.colours); err != nil {
		return err
	}

	result, err := classifyOpts.run(cmd, args[0])
	if err != nil {
		return err
	}

	vector, err := result.Features(scaler)
	if err != nil {
		return fmt.Errorf("failed to build feature vector: %w", err)
	}

	pluginArgs, err := parsePluginArgs(classifyPluginArgs)
	if err != nil {
		return err
	}

	executor, err := classifier.NewWithVerbose(classifyPlugin, verbose)
	if err != nil {
		return fmt.Errorf("failed to load classifier plugin: %w", err)
	}
	defer executor.Close()

	if verbose {
		info := executor.Info()
		fmt.Fprintf(os.Stderr, "Classifier: %s %s\n", info.Name, info.Version)
	}

	resp, err := executor.Classify(cmd.Context(), pluginapi.ClassifyRequest{
		Features:   vector,
		Labels:     labels,
		Verbose:    verbose,
		PluginArgs: pluginArgs,
	})
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	output, err := formatClassification(result, resp, classifyFormat, classifyPreview, quiet)
	if err != nil {
		return err
	}
	fmt.Print(output)

	return nil
}

// parsePluginArgs parses repeated key=value flags into plugin arguments.
func parsePluginArgs(args []string) (map[string]any, error) {
	if len(args) == 0 {
		return nil, nil
	}

	parsed := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid plugin argument %q (expected key=value)", arg)
		}
		parsed[key] = value
	}
	return parsed, nil
}

// formatClassification formats a classification response.
func formatClassification(result *extract.Result, resp pluginapi.ClassifyResponse, format string, showPreview, quiet bool) (string, error) {
	switch format {
	case "text":
		if quiet {
			return resp.Label + "\n", nil
		}

		var output string
		if showPreview && colour.SupportsANSIColours() && result.Len() > 0 {
			top, _ := result.Get(0)
			output = colour.FormatColourWithLabel(top.RGB(), resp.Label, 8) + "\n"
		} else {
			output = fmt.Sprintf("Label: %s\n", resp.Label)
		}
		output += fmt.Sprintf("Confidence: %.3f\n", resp.Confidence)
		if len(resp.Scores) > 0 {
			output += "\n" + formatScores(resp.Scores)
		}
		return output, nil
	case "json":
		jsonBytes, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: text, json)", format)
	}
}

// formatScores renders per-label scores as a table, best first.
func formatScores(scores map[string]float64) string {
	labels := make([]string, 0, len(scores))
	for label := range scores {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if scores[labels[i]] != scores[labels[j]] {
			return scores[labels[i]] > scores[labels[j]]
		}
		return labels[i] < labels[j]
	})

	table := NewTable([]string{"LABEL", "SCORE"})
	for _, label := range labels {
		table.AddRow([]string{label, fmt.Sprintf("%.3f", scores[label])})
	}
	return table.Render()
}
