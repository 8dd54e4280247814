// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/internal/progress"
	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/pkg/types"
)

func TestEnsureBundleDir(t *testing.T) {
	out := t.TempDir()

	dir, err := EnsureBundleDir(out, "Attention_Is_All_You_Need")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(out, "Attention_Is_All_You_Need"); dir != want {
		t.Errorf("dir = %q, want %q", dir, want)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("bundle dir not created: %v", err)
	}

	// Idempotent: an existing directory with content is reused untouched.
	marker := filepath.Join(dir, "existing.txt")
	if err := os.WriteFile(marker, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := EnsureBundleDir(out, "Attention_Is_All_You_Need"); err != nil {
		t.Fatalf("reuse failed: %v", err)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Errorf("existing content lost: %v", err)
	}
}

func TestCopyPDF(t *testing.T) {
	work := t.TempDir()
	src := filepath.Join(work, "2412.15289.pdf")
	content := []byte("%PDF-1.4 body")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}
	bundle := t.TempDir()

	dst, err := CopyPDF(src, bundle, "Attention_Is_All_You_Need")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(bundle, "Attention_Is_All_You_Need.pdf"); dst != want {
		t.Errorf("dst = %q, want %q", dst, want)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, content) {
		t.Error("staged pdf differs from source")
	}
}

func TestCopyPDFMissingSource(t *testing.T) {
	if _, err := CopyPDF(filepath.Join(t.TempDir(), "absent.pdf"), t.TempDir(), "x"); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestWriteManifest(t *testing.T) {
	bundle := t.TempDir()
	manifest := types.BundleManifest{
		Identifier: "2412.15289",
		SourceURL:  "https://arxiv.org/pdf/2412.15289.pdf",
		Title:      "Attention Is All You Need",
		FolderName: "Attention_Is_All_You_Need",
		PDFFile:    "Attention_Is_All_You_Need.pdf",
		ImageCount: 3,
		Tool:       "mineru",
		CreatedAt:  time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
		Arxiv: &types.ArxivMetadata{
			ArxivID: "2412.15289",
			Title:   "Attention Is All You Need",
			Authors: []string{"Alice Smith", "Bob Jones"},
		},
	}

	if err := WriteManifest(bundle, manifest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(bundle, ManifestName))
	if err != nil {
		t.Fatal(err)
	}
	var got types.BundleManifest
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("manifest is not valid yaml: %v", err)
	}
	if got.Identifier != manifest.Identifier || got.FolderName != manifest.FolderName {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if got.ImageCount != 3 {
		t.Errorf("ImageCount = %d, want 3", got.ImageCount)
	}
	if got.Arxiv == nil || len(got.Arxiv.Authors) != 2 {
		t.Errorf("arXiv metadata lost: %+v", got.Arxiv)
	}
}

func TestCleanup(t *testing.T) {
	work := filepath.Join(t.TempDir(), ".tmp")
	if err := os.MkdirAll(filepath.Join(work, "mineru_output"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(work, "paper.pdf"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := &progress.Recorder{}
	Cleanup(work, rec)

	if _, err := os.Stat(work); !os.IsNotExist(err) {
		t.Errorf("workspace still present: %v", err)
	}
	if len(rec.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %q", rec.Warnings())
	}

	// Removing an already-absent workspace is not a failure either.
	Cleanup(work, rec)
	if len(rec.Warnings()) != 0 {
		t.Errorf("unexpected warnings on repeat cleanup: %q", rec.Warnings())
	}
}
