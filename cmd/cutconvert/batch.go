package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/cutsvg/cutfile"
	"github.com/benoitkugler/cutsvg/cutraster"
	"github.com/benoitkugler/cutsvg/cutsvg"
)

// batchResult summarizes one folder conversion.
type batchResult struct {
	converted int
	failed    []string // input paths whose conversion failed
}

func writePreview(path string, d *cutsvg.Drawing, pixelsPerMM float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = cutraster.WritePNG(f, d, pixelsPerMM)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// convertDir converts every .xml file of inputDir into outputDir,
// continuing after per-file failures. With pngScale > 0 a PNG
// preview is written next to each SVG, at pngScale pixels per mm.
// Progress, warnings and per-file errors go to report.
func convertDir(inputDir, outputDir string, mode cutfile.ErrorMode, pngScale float64, report io.Writer) (*batchResult, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, err
	}
	res := &batchResult{}
	seen := false
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(name), ".xml") {
			continue
		}
		seen = true
		in := filepath.Join(inputDir, name)
		base := strings.TrimSuffix(name, filepath.Ext(name))
		out := filepath.Join(outputDir, base+".svg")
		fmt.Fprintf(report, "Converting %q to %q...\n", in, out)

		doc, err := cutfile.ReadFile(in, mode)
		if err != nil {
			fmt.Fprintf(report, "Error: %s: %s\n", in, err)
			res.failed = append(res.failed, in)
			continue
		}
		drawing := cutsvg.Layout(doc)
		for _, w := range drawing.Warnings {
			fmt.Fprintf(report, "Warning: %s: %s\n", in, w)
		}
		if err := drawing.WriteFile(out); err != nil {
			fmt.Fprintf(report, "Error: %s: %s\n", in, err)
			res.failed = append(res.failed, in)
			continue
		}
		if pngScale > 0 {
			preview := filepath.Join(outputDir, base+".png")
			if err := writePreview(preview, drawing, pngScale); err != nil {
				fmt.Fprintf(report, "Warning: %s: could not write preview: %s\n", in, err)
			}
		}
		res.converted++
	}
	if !seen {
		fmt.Fprintf(report, "Warning: no XML files found in %q\n", inputDir)
	}
	return res, nil
}
