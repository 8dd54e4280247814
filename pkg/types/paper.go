// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// PaperReference identifies one paper resolved from a user-supplied
// reference. Immutable after resolution.
type PaperReference struct {
	// Identifier is the arXiv paper ID extracted from the reference
	// (e.g. "2412.15289").
	Identifier string `json:"identifier" yaml:"identifier"`

	// SourceURL is the canonical PDF download URL.
	SourceURL string `json:"source_url" yaml:"source_url"`
}

// InferredTitle is a paper title recovered from the extraction transcript.
type InferredTitle struct {
	// Raw is the title text as found in the transcript.
	Raw string `json:"raw" yaml:"raw"`

	// Sanitized is the filesystem-safe form used for directory and file
	// names. Empty means inference failed and the caller must fall back
	// to the paper identifier.
	Sanitized string `json:"sanitized" yaml:"sanitized"`
}

// ExtractionArtifacts holds the outputs located in the parsing tool's
// output tree. ImagesDir always exists on disk: when the tool produced no
// images an empty directory is synthesized rather than left absent.
type ExtractionArtifacts struct {
	// ImagesDir is the directory of extracted images (may be empty).
	ImagesDir string `json:"images_dir" yaml:"images_dir"`

	// TranscriptPath is the markdown transcript used for title inference,
	// or "" when none was found.
	TranscriptPath string `json:"transcript_path,omitempty" yaml:"transcript_path,omitempty"`

	// Title is the inferred paper title; zero value when inference failed.
	Title InferredTitle `json:"title" yaml:"title"`
}

// ImageCandidate is one extracted image that passed the extension and
// minimum-size filters.
type ImageCandidate struct {
	// Path is the candidate's location in the images directory.
	Path string `json:"path" yaml:"path"`

	// ByteSize is the file size at filter time.
	ByteSize int64 `json:"byte_size" yaml:"byte_size"`

	// Enhanced reports whether the enhancement pipeline succeeded for this
	// candidate (false means it was copied unmodified).
	Enhanced bool `json:"enhanced" yaml:"enhanced"`
}

// OutputBundle is the terminal artifact of a run: the bundle directory
// with the PDF and processed images.
type OutputBundle struct {
	// Directory is the bundle directory, named by the sanitized title.
	Directory string `json:"directory" yaml:"directory"`

	// PDFPath is the staged PDF inside the bundle directory.
	PDFPath string `json:"pdf_path" yaml:"pdf_path"`

	// ImageCount is the number of image files staged (enhanced or copied).
	ImageCount int `json:"image_count" yaml:"image_count"`
}

// ArxivMetadata holds best-effort metadata from the arXiv Atom API.
type ArxivMetadata struct {
	// ArxivID is the paper identifier the metadata was fetched for.
	ArxivID string `json:"arxiv_id" yaml:"arxiv_id"`

	// Title is the paper title as recorded by arXiv.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Published is the preprint publication date.
	Published time.Time `json:"published,omitempty" yaml:"published,omitempty"`
}

// BundleManifest is the metadata.yaml record written into a bundle
// directory after staging.
type BundleManifest struct {
	// Identifier is the arXiv paper ID.
	Identifier string `json:"identifier" yaml:"identifier"`

	// SourceURL is the canonical URL the PDF was downloaded from.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// Title is the inferred title (raw form); falls back to the identifier.
	Title string `json:"title" yaml:"title"`

	// FolderName is the sanitized name of the bundle directory.
	FolderName string `json:"folder_name" yaml:"folder_name"`

	// PDFFile is the staged PDF filename inside the bundle.
	PDFFile string `json:"pdf_file" yaml:"pdf_file"`

	// ImageCount is the number of staged image files.
	ImageCount int `json:"image_count" yaml:"image_count"`

	// Tool is the parsing tool that produced the extraction.
	Tool string `json:"tool" yaml:"tool"`

	// CreatedAt is the staging timestamp (UTC).
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Arxiv carries the Atom API metadata when the fetch succeeded.
	Arxiv *ArxivMetadata `json:"arxiv,omitempty" yaml:"arxiv,omitempty"`
}
