// Package cli provides the command-line interface for Pigment.
package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	// Features command flags
	featuresOpts   extractionOptions
	featuresBundle string
	featuresScale  string
	featuresOffset string
	featuresFormat string
	featuresOutput string
)

// featuresCmd represents the features command
var featuresCmd = &cobra.Command{
	Use:   "features <image>",
	Short: "Produce a normalised feature vector from an image",
	Long: `Produce a classifier-ready feature vector from an image.

The features command extracts the dominant colours, flattens them into a
raw vector of four values per colour (L, a, b, proportion) ordered most
populous first, and normalises each position with the scale and offset
values the classifier model was trained with.

Scaling assets are plain text files with one value per line; # starts a
comment. They can be supplied as separate files (optionally gzip, xz, or
bzip2 compressed) or as a single bundle archive containing scale.txt and
offset.txt.

Examples:
  # Normalise with separate scale and offset files
  pigment features --scale scale.txt --offset offset.txt photo.jpg

  # Normalise with a downloaded model bundle
  pigment features --bundle scaler.tar.gz photo.jpg

  # Vector as JSON for piping into other tools
  pigment features --bundle scaler.tar.gz --format json photo.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runFeatures,
}

func init() {
	featuresOpts.registerFlags(featuresCmd)
	featuresCmd.Flags().StringVar(&featuresBundle, "bundle", "", "scaler bundle archive (tar.gz, tar.xz, tar.bz2, zip)")
	featuresCmd.Flags().StringVar(&featuresScale, "scale", "", "scale values file (plain or compressed)")
	featuresCmd.Flags().StringVar(&featuresOffset, "offset", "", "offset values file (plain or compressed)")
	featuresCmd.Flags().StringVarP(&featuresFormat, "format", "f", "text", "output format (text, json)")
	featuresCmd.Flags().StringVarP(&featuresOutput, "output", "o", "", "output file (default: stdout)")
}

// runFeatures executes the features command.
func runFeatures(cmd *cobra.Command, args []string) error {
	scaler, _, err := loadScalerAssets(featuresBundle, featuresScale, featuresOffset)
	if err != nil {
		return err
	}
	if err := checkScalerLength(scaler, featuresOpts.colours); err != nil {
		return err
	}

	result, err := featuresOpts.run(cmd, args[0])
	if err != nil {
		return err
	}

	vector, err := result.Features(scaler)
	if err != nil {
		return fmt.Errorf("failed to build feature vector: %w", err)
	}

	output, err := formatVector(vector, featuresFormat)
	if err != nil {
		return err
	}

	return writeOutput(cmd, output, featuresOutput)
}

// formatVector formats a feature vector according to the specified format.
func formatVector(vector []float64, format string) (string, error) {
	switch format {
	case "text":
		parts := make([]string, len(vector))
		for i, v := range vector {
			parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		return strings.Join(parts, " ") + "\n", nil
	case "json":
		jsonBytes, err := json.Marshal(vector)
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: text, json)", format)
	}
}
