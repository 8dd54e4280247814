// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package title recovers a human-meaningful paper title from the markdown
// transcript produced by the parsing tool. Three heuristics run in order;
// the first accepted candidate wins. Transcripts are noisy OCR-adjacent
// text, so every heuristic filters aggressively and inference failing
// altogether is an expected outcome.
package title

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/pkg/types"
)

// boldSpan matches **...** spans within a single line.
var boldSpan = regexp.MustCompile(`\*\*(.*?)\*\*`)

// Infer returns the first title accepted by the ordered heuristics, or ""
// when all three fail. Length bounds are exclusive and counted in runes.
// The caller sanitizes the result before using it as a path component.
func Infer(content string, cfg types.TitleConfig) string {
	lines := strings.Split(content, "\n")

	if t := fromHeading(lines, cfg); t != "" {
		return t
	}
	if t := fromPlainLine(lines, cfg); t != "" {
		return t
	}
	return fromBoldSpan(content, cfg)
}

// fromHeading accepts the first level-1 heading in the scan window whose
// text is inside the length bounds and free of stopwords. Non-qualifying
// headings do not stop the scan.
func fromHeading(lines []string, cfg types.TitleConfig) string {
	for _, line := range firstN(lines, cfg.HeadingScanLines) {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "# ") || utf8.RuneCountInString(line) <= 2 {
			continue
		}
		candidate := strings.TrimSpace(line[2:])
		if containsStopword(candidate, cfg.Stopwords) {
			continue
		}
		if n := utf8.RuneCountInString(candidate); n > cfg.HeadingMinLen && n < cfg.MaxLen {
			return candidate
		}
	}
	return ""
}

// fromPlainLine accepts a non-heading, non-bullet line that looks like a
// title: bounded length, at least one uppercase letter, no colon in its
// leading runes (rejects "Abstract: ..." lines), and few periods
// (rejects prose sentences).
func fromPlainLine(lines []string, cfg types.TitleConfig) string {
	for _, line := range firstN(lines, cfg.PlainScanLines) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "*") {
			continue
		}
		if n := utf8.RuneCountInString(line); n <= cfg.PlainMinLen || n >= cfg.MaxLen {
			continue
		}
		if !hasUpper(line) {
			continue
		}
		if strings.ContainsRune(runePrefix(line, cfg.ColonGuard), ':') {
			continue
		}
		if strings.Count(line, ".") >= cfg.MaxPeriods {
			continue
		}
		return line
	}
	return ""
}

// fromBoldSpan accepts the first **bold** span in the leading window
// whose text is inside the length bounds and free of stopwords. A span
// whose closing marker falls outside the window is not considered.
func fromBoldSpan(content string, cfg types.TitleConfig) string {
	window := runePrefix(content, cfg.BoldScanChars)
	for _, m := range boldSpan.FindAllStringSubmatch(window, -1) {
		span := m[1]
		if n := utf8.RuneCountInString(span); n <= cfg.BoldMinLen || n >= cfg.MaxLen {
			continue
		}
		if containsStopword(span, cfg.Stopwords) {
			continue
		}
		return span
	}
	return ""
}

func firstN(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}

// runePrefix returns the first n runes of s.
func runePrefix(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func containsStopword(s string, stopwords []string) bool {
	lower := strings.ToLower(s)
	for _, w := range stopwords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
