// Package cli provides the command-line interface for Pigment.
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pigment/internal/colour"
	"github.com/jmylchreest/pigment/internal/extract"
)

var (
	// Extract command flags
	extractOpts    extractionOptions
	extractFormat  string
	extractOutput  string
	extractPreview bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <image>",
	Short: "Extract dominant colours from an image",
	Long: `Extract the dominant colours from an image.

The extract command samples a bounded number of opaque pixels, clusters
them in the LAB colour space with seeded k-means, and prints the resulting
colours ranked by how much of the image they cover.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Extract 6 colours (default) from an image
  pigment extract wallpaper.jpg

  # Extract 4 colours with terminal previews
  pigment extract --preview --colours 4 wallpaper.png

  # Extract with the CIEDE2000 metric and output as JSON
  pigment extract --accuracy high --format json wallpaper.jpg

  # Reproducible extraction with a fixed seed
  pigment extract --seed-mode manual --seed 42 wallpaper.jpg

  # Extract from a URL, caching the download
  pigment extract --cache https://example.com/wallpaper.jpg

  # Sample every pixel of a small image
  pigment extract --budget 0 icon.png`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractOpts.registerFlags(extractCmd)
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "text", "output format (text, hex, json, table)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output file (default: stdout)")
	extractCmd.Flags().BoolVar(&extractPreview, "preview", false, "show colour previews in terminal")
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, args []string) error {
	result, err := extractOpts.run(cmd, args[0])
	if err != nil {
		return err
	}

	output, err := formatResult(result, extractFormat, extractPreview)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	return writeOutput(cmd, output, extractOutput)
}

// formatResult formats the extraction result according to the specified format.
func formatResult(result *extract.Result, format string, showPreview bool) (string, error) {
	preview := showPreview && colour.SupportsANSIColours()
	switch format {
	case "text":
		return formatText(result, preview), nil
	case "hex":
		return formatHex(result, preview), nil
	case "json":
		jsonBytes, err := result.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	case "table":
		return formatResultTable(result), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: text, hex, json, table)", format)
	}
}

// formatText formats the result as a ranked human-readable list.
func formatText(result *extract.Result, showPreview bool) string {
	output := fmt.Sprintf("Dominant colours from %d samples:\n", result.SampleCount)
	for i, c := range result.Colours {
		rgb := c.RGB()
		if showPreview {
			output += fmt.Sprintf("  %2d: %s %s (%s) %5.1f%%\n",
				i+1, colour.ColourPreview(rgb, 8), rgb.Hex(), rgb.String(), c.Proportion*100)
		} else {
			output += fmt.Sprintf("  %2d: %s (%s) %5.1f%%\n",
				i+1, rgb.Hex(), rgb.String(), c.Proportion*100)
		}
	}
	return output
}

// formatHex formats the result as hex colour codes, one per line.
func formatHex(result *extract.Result, showPreview bool) string {
	output := ""
	for _, c := range result.Colours {
		rgb := c.RGB()
		if showPreview {
			output += colour.FormatColourWithPreview(rgb, 8) + "\n"
		} else {
			output += rgb.Hex() + "\n"
		}
	}
	return output
}

// formatResultTable formats the result as an aligned table. Previews are
// left out since escape sequences would break the column alignment.
func formatResultTable(result *extract.Result) string {
	table := NewTable([]string{"RANK", "HEX", "RGB", "SHARE", "SAMPLES"})
	for i, c := range result.Colours {
		rgb := c.RGB()
		table.AddRow([]string{
			strconv.Itoa(i + 1),
			rgb.Hex(),
			rgb.String(),
			fmt.Sprintf("%.1f%%", c.Proportion*100),
			strconv.Itoa(c.Count),
		})
	}
	return table.Render()
}
