package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/agripipe/tablemend/internal/config"
	"github.com/agripipe/tablemend/internal/pipeline"
	"github.com/agripipe/tablemend/internal/sink"
	"github.com/agripipe/tablemend/internal/source"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the configured level
func setupLogging(cfg *config.Config) {
	log.SetOutput(os.Stderr)
	if cfg.IsDebug() {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// discoverDocuments lists the fragment documents in the input directory,
// sorted for a stable processing order.
func discoverDocuments(dir string) ([]string, error) {
	refs, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("scan input directory: %w", err)
	}
	sort.Strings(refs)
	return refs, nil
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	refs, err := discoverDocuments(cfg.InputDir)
	if err != nil {
		log.Fatalf("Failed to discover documents: %v", err)
	}
	if len(refs) == 0 {
		log.Printf("No fragment documents found in %s", cfg.InputDir)
		return
	}
	log.Printf("Processing %d documents with %d workers", len(refs), cfg.Workers)

	processor := pipeline.NewProcessor(cfg.HeuristicConfig())
	batch := pipeline.NewBatch(processor, source.NewJSONFile(), sink.NewCSVDir(cfg.OutputDir), cfg.Workers)
	report := batch.Run(context.Background(), refs)

	for _, res := range report.Results {
		log.Printf("%s: kept %d tables, discarded %d", res.Name, res.Kept(), discardTotal(res))
		if cfg.IsDebug() {
			for reason, count := range res.Discarded {
				log.Printf("  %s: %d", reason, count)
			}
		}
	}
	for _, failure := range report.Failures {
		log.Printf("FAILED %s: %v", failure.Ref, failure.Err)
	}

	if len(report.Results) == 0 {
		log.Fatalf("All %d documents failed", len(report.Failures))
	}
}

func discardTotal(res pipeline.Result) int {
	total := 0
	for _, count := range res.Discarded {
		total += count
	}
	return total
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("tablemend\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
