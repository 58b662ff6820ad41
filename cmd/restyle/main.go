package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/benjaminschreck/go-restyle/pkg/restyle"
)

func main() {
	configPath := flag.String("config", "rules.json", "rule configuration file (JSON or YAML)")
	dryRun := flag.Bool("dry-run", false, "compute matches and style decisions without writing output")
	suffix := flag.String("suffix", "", "output file suffix (default _EDITED)")
	workers := flag.Int("workers", 0, "number of documents processed in parallel")
	verbose := flag.Bool("verbose", false, "enable debug logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: restyle [flags] <glob>...\n\n")
		fmt.Fprintf(os.Stderr, "Applies the styles declared in a rule file to every matching DOCX document.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	config := restyle.ConfigFromEnvironment()
	if *workers > 0 {
		config.Workers = *workers
	}
	if *verbose {
		config.LogLevel = "debug"
	}
	if *suffix != "" {
		config.OutputSuffix = *suffix
	}
	restyle.SetGlobalConfig(config)

	paths, err := expandGlobs(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "restyle: %v\n", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "restyle: no documents match the given patterns")
		os.Exit(1)
	}

	rules, err := restyle.LoadRuleSet(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "restyle: %v\n", err)
		os.Exit(1)
	}

	processor := restyle.NewProcessor(rules,
		restyle.WithConfig(config),
		restyle.WithDryRun(*dryRun),
	)

	report, err := processor.Run(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "restyle: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(report.Summary())

	if report.Failed > 0 {
		os.Exit(1)
	}
}

// expandGlobs resolves the given patterns into a sorted, de-duplicated list
// of paths. A pattern without wildcards that matches nothing is kept as a
// literal path, so opening it later reports a useful error.
func expandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern '%s': %w", pattern, err)
		}
		if matches == nil && !strings.ContainsAny(pattern, "*?[") {
			matches = []string{pattern}
		}
		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				paths = append(paths, match)
			}
		}
	}

	sort.Strings(paths)
	return paths, nil
}
