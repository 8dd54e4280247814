// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/internal/catalog"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List fetched bundles recorded in the catalog",
	Long: `List prints the runs recorded in the catalog under the output
directory, newest first. Runs fetched with --no-catalog do not appear.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().String("output", "output", "directory bundles were created under")
	listCmd.Flags().Int("limit", 0, "maximum rows to print (0 = all)")
	listCmd.Flags().Bool("json", false, "output rows as JSON")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	outputDir, _ := cmd.Flags().GetString("output")
	if !cmd.Flags().Changed("output") && viper.IsSet("output") {
		outputDir = viper.GetString("output")
	}
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if _, err := os.Stat(filepath.Join(outputDir, "catalog.db")); err != nil {
		fmt.Println("No bundles recorded yet.")
		return nil
	}

	store, err := catalog.Open(outputDir)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No bundles recorded yet.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-14s  %-50s  %-7s  %s\n", "Identifier", "Title", "Images", "Fetched")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 95))

	for _, e := range entries {
		title := e.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-14s  %-50s  %-7d  %s\n",
			e.Identifier, title, e.ImageCount, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintf(os.Stdout, "\n%d bundle(s)\n", len(entries))
	return nil
}
