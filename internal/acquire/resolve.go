// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire resolves paper references and downloads PDFs.
package acquire

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/internal/fsutil"
	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/pkg/types"
)

// ErrInvalidReference reports an input that matches neither supported
// arXiv URL shape.
var ErrInvalidReference = errors.New("reference is not a recognized arXiv URL")

// Base URLs for the download and metadata endpoints. Declared as vars so
// tests can substitute httptest servers.
var (
	arxivPDFBase = "https://arxiv.org/pdf/"
	arxivAPIBase = "https://export.arxiv.org/api/query"
)

// absPattern and pdfPattern match the two supported reference shapes.
// Matching is anchored at the start only: trailing characters outside the
// identifier alphabet (query strings, fragments) are ignored. The pdf
// form's optional ".pdf" suffix lands inside the capture and is stripped
// afterwards.
var (
	absPattern = regexp.MustCompile(`^https?://arxiv\.org/abs/([\p{L}\p{N}_.\-]+)`)
	pdfPattern = regexp.MustCompile(`^https?://arxiv\.org/pdf/([\p{L}\p{N}_.\-]+)`)
)

// Resolve normalizes a raw reference into a PaperReference carrying the
// canonical PDF URL and the arXiv identifier. It returns
// ErrInvalidReference when neither URL shape matches or the identifier
// would not survive filename sanitization. Resolving the canonical URL
// again yields the same PaperReference.
func Resolve(reference string) (types.PaperReference, error) {
	ref := strings.TrimSpace(reference)

	var id string
	if m := absPattern.FindStringSubmatch(ref); m != nil {
		id = m[1]
	} else if m := pdfPattern.FindStringSubmatch(ref); m != nil {
		id = strings.TrimSuffix(m[1], ".pdf")
	} else {
		return types.PaperReference{}, fmt.Errorf("%w: %q", ErrInvalidReference, reference)
	}

	if id == "" || fsutil.SanitizeName(id) == "" {
		return types.PaperReference{}, fmt.Errorf("%w: no usable identifier in %q", ErrInvalidReference, reference)
	}

	return types.PaperReference{
		Identifier: id,
		SourceURL:  arxivPDFBase + id + ".pdf",
	}, nil
}
