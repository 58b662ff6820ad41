// Package restyle applies visually-authored styles to batches of Microsoft
// Word documents (DOCX), driven by a declarative rule file.
//
// A rule set imports style definitions from a reference document and maps
// regex patterns to style names. Paragraph-family styles attach to whole
// paragraphs; text-family styles attach to exactly the matched substring,
// splitting runs as needed so the surrounding text keeps its formatting.
//
// # Quick Start
//
//	rules, err := restyle.LoadRuleSet("rules.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	processor := restyle.NewProcessor(rules)
//	report, err := processor.Run([]string{"report.docx", "summary.docx"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Print(report.Summary())
//
// # Rule Configuration
//
// Rule files are JSON (or YAML, chosen by extension). The modifications
// array is ordered; when matches from different rules overlap, the later
// rule's style wins:
//
//	{
//	  "modifications": [
//	    { "type": "import_style", "style_name": "HighlightStyle",
//	      "family": "text", "source_file": "template.docx" },
//	    { "type": "regex_span_styler", "rules": [
//	      { "pattern": "\\+\\+ IMPORTANT: (.*)", "style_name": "HighlightStyle" }
//	    ]}
//	  ]
//	}
//
// A pattern with a capture group styles only the captured substring; without
// one, the whole match is styled.
//
// # Dry Runs
//
// A dry run executes the identical matching and style-catalog logic and
// skips only the final write, so its report predicts exactly what a live
// run will do:
//
//	processor := restyle.NewProcessor(rules, restyle.WithDryRun(true))
//
// # Configuration
//
// Defaults come from RESTYLE_* environment variables (RESTYLE_WORKERS,
// RESTYLE_LOG_LEVEL, RESTYLE_OUTPUT_SUFFIX, RESTYLE_CACHE_MAX_SIZE,
// RESTYLE_CACHE_TTL, RESTYLE_ON_MISSING_STYLE,
// RESTYLE_STRICT_SPAN_CONFLICTS) and can be overridden per processor with
// WithConfig.
package restyle
