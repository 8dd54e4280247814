// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package title

import (
	"strings"
	"testing"

	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/pkg/types"
)

func cfg() types.TitleConfig {
	return types.DefaultTitleConfig()
}

func TestInferHeading(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			"plain level-1 heading",
			"# Curriculum Learning for Language Models\n\nSome body text.",
			"Curriculum Learning for Language Models",
		},
		{
			"stopword heading skipped for later heading",
			"# Table of Contents Overview\n\n# Curriculum Learning for Language Models\n",
			"Curriculum Learning for Language Models",
		},
		{
			"too-short heading skipped",
			"# Notes\n\n# Curriculum Learning for Language Models\n",
			"Curriculum Learning for Language Models",
		},
		{
			"level-2 heading not accepted",
			"## Curriculum Learning for Language Models\n",
			"",
		},
		{
			"hash without space not a heading",
			"#Curriculum Learning for Language Models\n",
			"",
		},
		{
			"indented heading trimmed then accepted",
			"   # Curriculum Learning for Language Models\n",
			"Curriculum Learning for Language Models",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Infer(tt.content, cfg())
			if got != tt.want {
				t.Errorf("Infer = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInferHeadingWindowLimit(t *testing.T) {
	// A qualifying heading after the 50-line window must not be found.
	content := strings.Repeat("filler\n", 55) + "# Curriculum Learning for Language Models\n"
	if got := Infer(content, cfg()); got != "" {
		t.Errorf("Infer = %q, want empty (heading outside scan window)", got)
	}
}

func TestInferPlainLine(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			"qualifying plain line",
			"Deep Residual Learning for Image Recognition\n\nAuthors et al.\n",
			"Deep Residual Learning for Image Recognition",
		},
		{
			"colon in prefix rejected",
			"Abstract: today we present a lengthy treatise\nDeep Residual Learning for Image Recognition\n",
			"Deep Residual Learning for Image Recognition",
		},
		{
			"prose with periods rejected",
			"We train. We test. We ship. All of it matters here.\nDeep Residual Learning for Image Recognition\n",
			"Deep Residual Learning for Image Recognition",
		},
		{
			"no uppercase rejected",
			"deep residual learning for image recognition\n",
			"",
		},
		{
			"bullet line rejected",
			"* Deep Residual Learning for Image Recognition\n",
			"",
		},
		{
			"too short rejected",
			"Deep Learning Now\n",
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Infer(tt.content, cfg())
			if got != tt.want {
				t.Errorf("Infer = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInferBoldSpan(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			"qualifying bold span",
			"Figure 1: overview **Scaling Laws for Neural Language Models** caption",
			"Scaling Laws for Neural Language Models",
		},
		{
			"stopword span skipped for later span",
			"**Introduction to All the Things Here** and **Scaling Laws for Neural Language Models**",
			"Scaling Laws for Neural Language Models",
		},
		{
			"too-short span rejected",
			"**Short Bold Name** only",
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Infer(tt.content, cfg())
			if got != tt.want {
				t.Errorf("Infer = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInferBoldSpanWindowLimit(t *testing.T) {
	// The span opens inside the 2000-char window but closes outside it,
	// so it must not match.
	content := strings.Repeat("x", 1990) + " **Scaling Laws for Neural Language Models**"
	if got := Infer(content, cfg()); got != "" {
		t.Errorf("Infer = %q, want empty (span crosses window edge)", got)
	}
}

func TestInferHeuristicOrder(t *testing.T) {
	// Heading beats both the plain line and the bold span.
	content := "Deep Residual Learning for Image Recognition\n" +
		"# Curriculum Learning for Language Models\n" +
		"**Scaling Laws for Neural Language Models**\n"
	if got := Infer(content, cfg()); got != "Curriculum Learning for Language Models" {
		t.Errorf("Infer = %q, want the heading", got)
	}

	// Without a heading, the plain line beats the bold span.
	content = "Deep Residual Learning for Image Recognition\n" +
		"**Scaling Laws for Neural Language Models**\n"
	if got := Infer(content, cfg()); got != "Deep Residual Learning for Image Recognition" {
		t.Errorf("Infer = %q, want the plain line", got)
	}
}

func TestInferRuneBounds(t *testing.T) {
	// 16 runes, accepted.
	if got := Infer("# Überlänge prüfen", cfg()); got != "Überlänge prüfen" {
		t.Errorf("Infer = %q, want the multibyte heading", got)
	}
	// 10 runes but 12 bytes: lengths count runes, so this sits on the
	// minimum and is rejected.
	if got := Infer("# Überprüfen", cfg()); got != "" {
		t.Errorf("Infer = %q, want empty for boundary-length heading", got)
	}
}

func TestInferAllFail(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\n\t\n"},
		{"nothing qualifies", "## subsection\n* bullet item\nshort\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Infer(tt.content, cfg()); got != "" {
				t.Errorf("Infer(%q) = %q, want empty", tt.content, got)
			}
		})
	}
}
