// Command cutconvert converts a folder of XML cut files to SVG,
// rotating each drawing 90 degrees clockwise and centering it on
// its canvas.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/benoitkugler/cutsvg/cutfile"
)

var (
	outputDir string
	strict    bool
	pngScale  float64
)

var rootCmd = &cobra.Command{
	Use:   "cutconvert <input-folder>",
	Short: "Convert XML cut files to SVG, rotating and centering the output",
	Long: `Cutconvert reads every .xml cut file of a folder and writes the
corresponding SVG documents, applying a fixed 90 degree clockwise
rotation and centering each drawing on its canvas. A failed file
does not stop the batch; failures are counted in the summary.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputDir := args[0]
		out := outputDir
		if out == "" {
			out = inputDir
		}
		if err := os.MkdirAll(out, 0o755); err != nil {
			return err
		}
		mode := cutfile.IgnoreErrorMode // warnings are rendered from the structured list
		if strict {
			mode = cutfile.StrictErrorMode
		}
		res, err := convertDir(inputDir, out, mode, pngScale, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Converted %d file(s), %d failure(s)\n",
			res.converted, len(res.failed))
		if len(res.failed) > 0 {
			return fmt.Errorf("%d file(s) failed", len(res.failed))
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "",
		"destination folder for SVG files (defaults to the input folder)")
	rootCmd.Flags().BoolVar(&strict, "strict", false,
		"fail a file on any invalid element instead of skipping it")
	rootCmd.Flags().Float64Var(&pngScale, "png", 0,
		"also write a PNG preview beside each SVG, at the given pixels per mm")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
