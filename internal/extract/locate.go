// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"io/fs"
	"os"
	"path/filepath"
)

// imagesDirName is the directory name MinerU uses for extracted images,
// at whatever depth a given release decides to nest it.
const imagesDirName = "images"

// imagesCandidates returns the known locations of the images directory
// under outputDir, most recent tool layout first.
func imagesCandidates(outputDir, docName string) []string {
	return []string{
		filepath.Join(outputDir, docName, "auto", imagesDirName),
		filepath.Join(outputDir, docName, imagesDirName),
		filepath.Join(outputDir, "auto", imagesDirName),
		filepath.Join(outputDir, imagesDirName),
	}
}

// FindImagesDir locates the images directory MinerU produced for docName.
// It probes the known layouts in order, then walks the whole output tree
// for any directory named "images". The second return is false when no
// such directory exists anywhere under outputDir.
func FindImagesDir(outputDir, docName string) (string, bool) {
	for _, dir := range imagesCandidates(outputDir, docName) {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, true
		}
	}

	var found string
	filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && d.Name() == imagesDirName {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if found != "" {
		return found, true
	}
	return "", false
}

// transcriptCandidates returns the known markdown transcript locations
// under outputDir, most recent tool layout first.
func transcriptCandidates(outputDir, docName string) []string {
	return []string{
		filepath.Join(outputDir, docName, "auto", docName+".md"),
		filepath.Join(outputDir, docName, docName+".md"),
		filepath.Join(outputDir, "auto", docName+".md"),
		filepath.Join(outputDir, docName+".md"),
	}
}

// FindTranscripts returns every path that may hold the markdown transcript
// for docName: the known layouts first, then all markdown files found by
// walking outputDir. Paths are not checked for existence; callers probe
// them in order and a path may appear twice.
func FindTranscripts(outputDir, docName string) []string {
	paths := transcriptCandidates(outputDir, docName)

	filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if filepath.Ext(path) == ".md" {
			paths = append(paths, path)
		}
		return nil
	})
	return paths
}
