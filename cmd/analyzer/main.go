package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"venturescope/internal/config"
	"venturescope/internal/dataprocessing"
	"venturescope/internal/exporter"
	"venturescope/internal/infrastructure"
	"venturescope/internal/scoring"
)

func main() {
	inDir := flag.String("in", "", "input directory for .csv and .xlsx files")
	outDir := flag.String("out", "", "output directory for the export (defaults to the configured export dir)")
	top := flag.Int("top", 10, "number of ranked companies to print")
	flag.Parse()

	if *inDir == "" && flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: analyzer [-in dir | files...] [-out dir] [-top n]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("config load failed, using defaults", "error", err)
		cfg = &config.Config{
			Logging: config.LoggingConfig{Level: "info", Output: "console"},
			Export:  config.ExportConfig{Product: "venturescope", OutputDir: "data/exports", BOMPrefix: true},
		}
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("logger initialization failed, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogger()

	if *outDir == "" {
		*outDir = cfg.Export.OutputDir
	}

	paths, err := collectInputPaths(*inDir, flag.Args())
	if err != nil {
		logger.Error("failed to collect input files", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(paths) == 0 {
		logger.Error("no .csv or .xlsx input files found", slog.String("input_dir", *inDir))
		os.Exit(1)
	}

	inputs := make([]dataprocessing.Input, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Error("failed to read input file",
				slog.String("path", path),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		inputs = append(inputs, dataprocessing.Input{Name: filepath.Base(path), Data: data})
	}

	logger.Info("starting analysis",
		slog.Int("files", len(inputs)),
		slog.String("output_dir", *outDir))

	processor := dataprocessing.NewProcessor(scoring.DefaultWeights(), logger)
	processor.SetStageFunc(func(stage string) {
		fmt.Printf("stage: %s\n", stage)
	})

	result := processor.Process(context.Background(), inputs)

	fmt.Printf("Analyzed %d companies (%d rows dropped)\n", len(result.Companies), result.RowsDropped)
	limit := *top
	if limit > len(result.Companies) {
		limit = len(result.Companies)
	}
	for i := 0; i < limit; i++ {
		c := result.Companies[i]
		fmt.Printf("%3d. %-40s %6.2f\n", c.Rank, c.Name, c.Scores.Comprehensive)
	}

	writer := exporter.NewCSVWriter(logger)
	writer.BOMPrefix = cfg.Export.BOMPrefix
	exportPath := filepath.Join(*outDir, exporter.DefaultFileName(cfg.Export.Product))
	if err := writer.WriteFile(exportPath, result.Companies); err != nil {
		logger.Error("failed to write export", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Export written: %s\n", exportPath)
}

// collectInputPaths gathers analyzable files from -in and positional args,
// sorted by name for a stable concatenation order.
func collectInputPaths(dir string, extra []string) ([]string, error) {
	var paths []string

	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() || strings.HasPrefix(entry.Name(), "~$") {
				continue
			}
			if isAnalyzable(entry.Name()) {
				paths = append(paths, filepath.Join(dir, entry.Name()))
			}
		}
		sort.Strings(paths)
	}

	for _, arg := range extra {
		if isAnalyzable(arg) {
			paths = append(paths, arg)
		}
	}
	return paths, nil
}

func isAnalyzable(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".csv") || strings.HasSuffix(lower, ".xlsx")
}
