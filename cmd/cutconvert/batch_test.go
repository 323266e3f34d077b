package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/cutsvg/cutfile"
)

const validFile = `<cut-file units="hundredths_mm" width="1000" height="1000">
	<cut-path><point x="100" y="100"/><point x="900" y="900"/></cut-path>
</cut-file>`

func writeInput(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestBatchContinuesAfterFailure(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeInput(t, in, "a.xml", validFile)
	writeInput(t, in, "b.xml", "this is not XML")
	writeInput(t, in, "c.xml", validFile)
	writeInput(t, in, "notes.txt", "ignored")

	var report bytes.Buffer
	res, err := convertDir(in, out, cutfile.IgnoreErrorMode, 0, &report)
	if err != nil {
		t.Fatal(err)
	}
	if res.converted != 2 {
		t.Errorf("converted: got %d, want 2", res.converted)
	}
	if len(res.failed) != 1 || filepath.Base(res.failed[0]) != "b.xml" {
		t.Errorf("failed: got %v, want exactly b.xml", res.failed)
	}
	for _, name := range []string{"a.svg", "c.svg"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "b.svg")); err == nil {
		t.Error("the malformed file must not produce an output")
	}
	if !strings.Contains(report.String(), "Error") {
		t.Errorf("report should mention the failure:\n%s", report.String())
	}
}

func TestBatchEmptyFolder(t *testing.T) {
	in := t.TempDir()
	var report bytes.Buffer
	res, err := convertDir(in, in, cutfile.IgnoreErrorMode, 0, &report)
	if err != nil {
		t.Fatal(err)
	}
	if res.converted != 0 || len(res.failed) != 0 {
		t.Errorf("got %+v", res)
	}
	if !strings.Contains(report.String(), "no XML files") {
		t.Errorf("missing warning:\n%s", report.String())
	}
}

func TestBatchWarningsReported(t *testing.T) {
	in := t.TempDir()
	writeInput(t, in, "odd.xml", `<cut-file units="parsecs" width="10" height="10"/>`)
	var report bytes.Buffer
	res, err := convertDir(in, in, cutfile.IgnoreErrorMode, 0, &report)
	if err != nil {
		t.Fatal(err)
	}
	if res.converted != 1 {
		t.Fatalf("converted: got %d, want 1", res.converted)
	}
	if !strings.Contains(report.String(), "unrecognized-units") ||
		!strings.Contains(report.String(), "empty-drawing") {
		t.Errorf("warnings not surfaced:\n%s", report.String())
	}
}

func TestBatchPreview(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeInput(t, in, "a.xml", validFile)
	var report bytes.Buffer
	res, err := convertDir(in, out, cutfile.IgnoreErrorMode, 5, &report)
	if err != nil {
		t.Fatal(err)
	}
	if res.converted != 1 {
		t.Fatalf("converted: got %d, want 1", res.converted)
	}
	data, err := os.ReadFile(filepath.Join(out, "a.png"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("preview is not a PNG stream")
	}
}

func TestBatchStrictMode(t *testing.T) {
	in := t.TempDir()
	writeInput(t, in, "bad.xml", `<cut-file units="inches" width="10" height="10">
		<cut-path><point x="oops" y="1"/></cut-path>
	</cut-file>`)
	var report bytes.Buffer
	res, err := convertDir(in, in, cutfile.StrictErrorMode, 0, &report)
	if err != nil {
		t.Fatal(err)
	}
	if res.converted != 0 || len(res.failed) != 1 {
		t.Errorf("strict mode should fail the file, got %+v", res)
	}
}
