// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fsutil provides filesystem helpers shared across stages.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// unsafeRuns matches runs of characters outside the safe filename
// alphabet: Unicode letters and digits, underscore, dot, hyphen.
var unsafeRuns = regexp.MustCompile(`[^\p{L}\p{N}_.\-]+`)

// SanitizeName reduces name to a filesystem-safe path component: each run
// of unsafe characters collapses to a single underscore, then leading and
// trailing dots and underscores are trimmed. Idempotent; may return ""
// for input with no letters or digits.
func SanitizeName(name string) string {
	s := unsafeRuns.ReplaceAllString(name, "_")
	return strings.Trim(s, "._")
}

// CopyFile copies src to dst byte-for-byte, truncating dst if it exists.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	_, copyErr := io.Copy(out, in)
	closeErr := out.Close()
	if copyErr != nil {
		return fmt.Errorf("copying to %s: %w", dst, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", dst, closeErr)
	}
	return nil
}
