// Command analyze runs one feedback analysis over a spreadsheet and prints
// the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"feedback-insights-go/internal/config"
	"feedback-insights-go/internal/dataset"
	"feedback-insights-go/internal/logger"
	"feedback-insights-go/internal/processor"
	"feedback-insights-go/internal/types"
)

func main() {
	file := flag.String("file", "", "workbook or CSV file to analyze (.xlsx, .xls, .csv)")
	out := flag.String("out", "", "write the JSON result here instead of stdout")
	heuristicOnly := flag.Bool("heuristic-only", false, "skip the model and use the rule-based classifiers")
	flag.Parse()

	if err := run(*file, *out, *heuristicOnly); err != nil {
		fmt.Fprintln(os.Stderr, "analyze:", err)
		os.Exit(1)
	}
}

func run(file, out string, heuristicOnly bool) error {
	if file == "" {
		return errors.New("-file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if heuristicOnly {
		cfg.LLM.Disabled = true
	}

	// logs go to stderr so stdout stays valid JSON
	log := logger.NewWithOptions(logger.Options{
		Level:       cfg.Logging.Level,
		Environment: cfg.Logging.Environment,
		Output:      os.Stderr,
	})

	records, err := dataset.Load(file, log)
	if err != nil {
		return fmt.Errorf("load %s: %w", file, err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no valid feedback data found in %s", file)
	}

	res := processor.NewFromConfig(cfg, nil, log).Analyze(context.Background(), records)
	resp := types.AnalysisResponse{Status: "success", Analysis: &res}

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
