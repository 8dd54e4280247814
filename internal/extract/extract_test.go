// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/internal/progress"
	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/pkg/types"
)

// fakeRunner simulates the tool binary. onRun, when set, fabricates the
// output tree the way a real run would.
type fakeRunner struct {
	missing bool
	runErr  error
	stderr  string
	onRun   func(args []string) error

	gotBin  string
	gotArgs []string
	runs    int
}

func (f *fakeRunner) LookPath(bin string) (string, error) {
	if f.missing {
		return "", errors.New("not found: " + bin)
	}
	return "/usr/local/bin/" + bin, nil
}

func (f *fakeRunner) Run(ctx context.Context, bin string, args []string) (string, error) {
	f.runs++
	f.gotBin = bin
	f.gotArgs = args
	if f.onRun != nil {
		if err := f.onRun(args); err != nil {
			return f.stderr, err
		}
	}
	return f.stderr, f.runErr
}

func newTestExtractor(r Runner) *Extractor {
	return New(r, types.DefaultExtractionConfig(), types.DefaultTitleConfig())
}

func TestCommand(t *testing.T) {
	base := types.DefaultExtractionConfig()

	noLang := base
	noLang.Lang = ""

	lossy := base
	lossy.KeepVector = false
	lossy.NoCompress = false

	tests := []struct {
		name     string
		cfg      types.ExtractionConfig
		wantBin  string
		wantArgs []string
	}{
		{
			name:    "default config",
			cfg:     base,
			wantBin: "mineru",
			wantArgs: []string{
				"-p", "/tmp/paper.pdf",
				"-o", "/tmp/out",
				"-m", "auto",
				"--render-dpi", "1200",
				"--image-dpi", "1200",
				"--image-quality", "100",
				"--keep-vector",
				"--no-compress",
				"--lang", "en",
			},
		},
		{
			name:    "empty lang omits the flag",
			cfg:     noLang,
			wantBin: "mineru",
			wantArgs: []string{
				"-p", "/tmp/paper.pdf",
				"-o", "/tmp/out",
				"-m", "auto",
				"--render-dpi", "1200",
				"--image-dpi", "1200",
				"--image-quality", "100",
				"--keep-vector",
				"--no-compress",
			},
		},
		{
			name:    "fidelity flags disabled",
			cfg:     lossy,
			wantBin: "mineru",
			wantArgs: []string{
				"-p", "/tmp/paper.pdf",
				"-o", "/tmp/out",
				"-m", "auto",
				"--render-dpi", "1200",
				"--image-dpi", "1200",
				"--image-quality", "100",
				"--lang", "en",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bin, args := Command("/tmp/paper.pdf", "/tmp/out", tt.cfg)
			if bin != tt.wantBin {
				t.Errorf("bin = %q, want %q", bin, tt.wantBin)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %q, want %q", args, tt.wantArgs)
			}
		})
	}
}

func TestRunToolMissing(t *testing.T) {
	r := &fakeRunner{missing: true}

	_, err := newTestExtractor(r).Run(context.Background(), "/tmp/paper.pdf", t.TempDir(), progress.Discard)
	if !errors.Is(err, ErrToolMissing) {
		t.Fatalf("err = %v, want ErrToolMissing", err)
	}
	if r.runs != 0 {
		t.Errorf("tool was run %d times despite being missing", r.runs)
	}
}

func TestRunToolFailedSurfacesStderr(t *testing.T) {
	r := &fakeRunner{
		runErr: errors.New("exit status 2"),
		stderr: "model checkpoint missing\n",
	}

	_, err := newTestExtractor(r).Run(context.Background(), "/tmp/paper.pdf", t.TempDir(), progress.Discard)
	if !errors.Is(err, ErrToolFailed) {
		t.Fatalf("err = %v, want ErrToolFailed", err)
	}
	if !strings.Contains(err.Error(), "model checkpoint missing") {
		t.Errorf("error should carry the tool's stderr, got: %v", err)
	}
}

func TestRunCommandWiring(t *testing.T) {
	work := t.TempDir()
	pdfPath := filepath.Join(work, "2301.00001.pdf")
	r := &fakeRunner{}

	if _, err := newTestExtractor(r).Run(context.Background(), pdfPath, work, progress.Discard); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.gotBin != "mineru" {
		t.Errorf("bin = %q, want mineru", r.gotBin)
	}
	if len(r.gotArgs) < 4 || r.gotArgs[1] != pdfPath {
		t.Errorf("args should pass the pdf path via -p, got %q", r.gotArgs)
	}
	wantOut := filepath.Join(work, "mineru_output")
	if len(r.gotArgs) < 4 || r.gotArgs[3] != wantOut {
		t.Errorf("args should pass %s via -o, got %q", wantOut, r.gotArgs)
	}
}

// writeTree creates the given files (path -> content) under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRunPrimaryLayout(t *testing.T) {
	work := t.TempDir()
	pdfPath := filepath.Join(work, "2301.00001.pdf")
	out := filepath.Join(work, "mineru_output")

	r := &fakeRunner{onRun: func([]string) error {
		writeTree(t, out, map[string]string{
			"2301.00001/auto/images/fig1.png": "png bytes",
			"2301.00001/auto/2301.00001.md":   "# Attention Is All You Need\n\nBody text.\n",
		})
		return nil
	}}

	artifacts, err := newTestExtractor(r).Run(context.Background(), pdfPath, work, progress.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(out, "2301.00001", "auto", "images"); artifacts.ImagesDir != want {
		t.Errorf("ImagesDir = %q, want %q", artifacts.ImagesDir, want)
	}
	if want := filepath.Join(out, "2301.00001", "auto", "2301.00001.md"); artifacts.TranscriptPath != want {
		t.Errorf("TranscriptPath = %q, want %q", artifacts.TranscriptPath, want)
	}
	if artifacts.Title.Raw != "Attention Is All You Need" {
		t.Errorf("Title.Raw = %q", artifacts.Title.Raw)
	}
	if artifacts.Title.Sanitized != "Attention_Is_All_You_Need" {
		t.Errorf("Title.Sanitized = %q", artifacts.Title.Sanitized)
	}
}

func TestRunFindsNestedImagesByWalking(t *testing.T) {
	work := t.TempDir()
	pdfPath := filepath.Join(work, "paper.pdf")
	out := filepath.Join(work, "mineru_output")
	nested := filepath.Join("v3", "layout", "images")

	r := &fakeRunner{onRun: func([]string) error {
		writeTree(t, out, map[string]string{
			filepath.Join(nested, "fig1.png"): "png bytes",
		})
		return nil
	}}

	artifacts, err := newTestExtractor(r).Run(context.Background(), pdfPath, work, progress.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(out, nested); artifacts.ImagesDir != want {
		t.Errorf("ImagesDir = %q, want %q (walk fallback)", artifacts.ImagesDir, want)
	}
}

func TestRunSynthesizesImagesDir(t *testing.T) {
	work := t.TempDir()
	pdfPath := filepath.Join(work, "paper.pdf")
	out := filepath.Join(work, "mineru_output")

	r := &fakeRunner{onRun: func([]string) error {
		writeTree(t, out, map[string]string{
			"paper.md": "# Neural Scaling Beyond Compute Limits\n",
		})
		return nil
	}}

	rec := &progress.Recorder{}
	artifacts, err := newTestExtractor(r).Run(context.Background(), pdfPath, work, rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := filepath.Join(work, "images")
	if artifacts.ImagesDir != want {
		t.Errorf("ImagesDir = %q, want synthesized %q", artifacts.ImagesDir, want)
	}
	info, statErr := os.Stat(want)
	if statErr != nil || !info.IsDir() {
		t.Errorf("synthesized images dir missing: %v", statErr)
	}

	warnings := rec.Warnings()
	if len(warnings) != 1 || !strings.Contains(warnings[0], "no images directory") {
		t.Errorf("want one warning about the missing images directory, got %q", warnings)
	}

	// The transcript is still consulted even when no images were produced.
	if artifacts.Title.Raw != "Neural Scaling Beyond Compute Limits" {
		t.Errorf("Title.Raw = %q, want title from transcript", artifacts.Title.Raw)
	}
}

func TestRunNoUsableTitle(t *testing.T) {
	work := t.TempDir()
	pdfPath := filepath.Join(work, "paper.pdf")
	out := filepath.Join(work, "mineru_output")

	r := &fakeRunner{onRun: func([]string) error {
		writeTree(t, out, map[string]string{
			"images/fig1.png": "png bytes",
			"paper.md":        "short\n## section\n",
		})
		return nil
	}}

	artifacts, err := newTestExtractor(r).Run(context.Background(), pdfPath, work, progress.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if artifacts.Title.Raw != "" || artifacts.Title.Sanitized != "" {
		t.Errorf("Title = %+v, want zero value when nothing qualifies", artifacts.Title)
	}
	if artifacts.TranscriptPath != "" {
		t.Errorf("TranscriptPath = %q, want empty when no transcript yielded a title", artifacts.TranscriptPath)
	}
}

func TestFindImagesDirPrefersEarlierCandidates(t *testing.T) {
	out := t.TempDir()
	writeTree(t, out, map[string]string{
		"doc/images/fig.png": "x",
		"images/fig.png":     "x",
	})

	dir, ok := FindImagesDir(out, "doc")
	if !ok {
		t.Fatal("expected images dir to be found")
	}
	if want := filepath.Join(out, "doc", "images"); dir != want {
		t.Errorf("dir = %q, want %q (candidate order)", dir, want)
	}
}

func TestFindImagesDirIgnoresFileNamedImages(t *testing.T) {
	out := t.TempDir()
	writeTree(t, out, map[string]string{"images": "not a directory"})

	if dir, ok := FindImagesDir(out, "doc"); ok {
		t.Errorf("found %q, want no match for a plain file", dir)
	}
}

func TestFindTranscriptsIncludesWalkedMarkdown(t *testing.T) {
	out := t.TempDir()
	writeTree(t, out, map[string]string{
		filepath.Join("v3", "notes.md"): "stray transcript",
		"readme.txt":                    "not markdown",
	})

	paths := FindTranscripts(out, "doc")

	wantFirst := []string{
		filepath.Join(out, "doc", "auto", "doc.md"),
		filepath.Join(out, "doc", "doc.md"),
		filepath.Join(out, "auto", "doc.md"),
		filepath.Join(out, "doc.md"),
	}
	if len(paths) < len(wantFirst) || !reflect.DeepEqual(paths[:4], wantFirst) {
		t.Fatalf("candidate order wrong: %q", paths)
	}

	walked := filepath.Join(out, "v3", "notes.md")
	found := false
	for _, p := range paths[4:] {
		if p == walked {
			found = true
		}
		if strings.HasSuffix(p, ".txt") {
			t.Errorf("non-markdown file %q in transcript list", p)
		}
	}
	if !found {
		t.Errorf("walked markdown %q missing from %q", walked, paths)
	}
}
