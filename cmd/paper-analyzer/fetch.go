// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/internal/acquire"
	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/internal/catalog"
	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/internal/images"
	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/internal/pipeline"
	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/internal/progress"
	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [reference]",
	Short: "Fetch one arXiv paper into a local bundle",
	Long: `Fetch resolves an arXiv abstract or PDF URL, downloads the paper, runs
MinerU over it, and stages the PDF together with its enhanced figures under
a directory named after the inferred paper title.

The reference may be either URL form:

    https://arxiv.org/abs/2412.15289
    https://arxiv.org/pdf/2412.15289.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("output", "output", "directory bundles are created under")
	fetchCmd.Flags().String("lang", "en", "language hint passed to the extraction tool")
	fetchCmd.Flags().String("enhancer", "advanced", "image enhancer: advanced or basic")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	fetchCmd.Flags().Bool("keep-workspace", false, "leave the .tmp workspace behind for debugging")
	fetchCmd.Flags().Bool("no-metadata", false, "skip the arXiv metadata lookup")
	fetchCmd.Flags().Bool("no-manifest", false, "skip writing metadata.yaml into the bundle")
	fetchCmd.Flags().Bool("no-catalog", false, "skip recording the run in the catalog")

	viper.BindPFlag("output", fetchCmd.Flags().Lookup("output"))
	viper.BindPFlag("lang", fetchCmd.Flags().Lookup("lang"))
	viper.BindPFlag("enhancer", fetchCmd.Flags().Lookup("enhancer"))
	viper.BindPFlag("timeout", fetchCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("keep-workspace", fetchCmd.Flags().Lookup("keep-workspace"))
	viper.BindPFlag("no-metadata", fetchCmd.Flags().Lookup("no-metadata"))
	viper.BindPFlag("no-manifest", fetchCmd.Flags().Lookup("no-manifest"))
	viper.BindPFlag("no-catalog", fetchCmd.Flags().Lookup("no-catalog"))

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg := types.DefaultPipelineConfig()
	cfg.Extraction.Lang = viper.GetString("lang")
	cfg.KeepWorkspace = viper.GetBool("keep-workspace")
	cfg.Acquire.FetchMetadata = !viper.GetBool("no-metadata")
	cfg.WriteManifest = !viper.GetBool("no-manifest")
	if t := viper.GetDuration("timeout"); t > 0 {
		cfg.Acquire.Timeout = t
	}

	enhancer, err := images.NewEnhancer(viper.GetString("enhancer"), cfg.Enhancement)
	if err != nil {
		return err
	}

	outputDir := viper.GetString("output")
	sink := progress.NewWriter(os.Stdout)

	bundle, err := pipeline.Run(context.Background(), pipeline.Options{
		Reference: args[0],
		OutputDir: outputDir,
		Config:    cfg,
		Client:    &http.Client{Timeout: cfg.Acquire.Timeout},
		Enhancer:  enhancer,
		Sink:      sink,
	})
	if err != nil {
		return err
	}

	if !viper.GetBool("no-catalog") {
		recordRun(outputDir, args[0], bundle, sink)
	}

	fmt.Printf("Done: %s (%d images)\n", bundle.Directory, bundle.ImageCount)
	return nil
}

// recordRun stores the completed run in the catalog. Catalog trouble never
// fails a fetch; the bundle on disk is the source of truth.
func recordRun(outputDir, reference string, bundle *types.OutputBundle, sink progress.Sink) {
	ref, err := acquire.Resolve(reference)
	if err != nil {
		return
	}

	store, err := catalog.Open(outputDir)
	if err != nil {
		progress.Warnf(sink, progress.StageStaged, "catalog unavailable: %v", err)
		return
	}
	defer store.Close()

	_, err = store.Record(context.Background(), catalog.Entry{
		Identifier: ref.Identifier,
		Title:      filepath.Base(bundle.Directory),
		SourceURL:  ref.SourceURL,
		BundleDir:  bundle.Directory,
		PDFPath:    bundle.PDFPath,
		ImageCount: bundle.ImageCount,
	})
	if err != nil {
		progress.Warnf(sink, progress.StageStaged, "catalog record not written: %v", err)
	}
}
