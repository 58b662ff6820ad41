package restyle

// ProcessFiles loads a rule configuration file and runs it over the given
// documents. It is the one-call entry point for callers that do not need to
// reuse a Processor across runs.
func ProcessFiles(rulePath string, paths []string, opts ...Option) (*RunReport, error) {
	rules, err := LoadRuleSet(rulePath)
	if err != nil {
		return nil, err
	}
	return NewProcessor(rules, opts...).Run(paths)
}

// ProcessFile styles a single document and returns its result
func ProcessFile(rulePath, path string, opts ...Option) (*DocumentResult, error) {
	report, err := ProcessFiles(rulePath, []string{path}, opts...)
	if err != nil {
		return nil, err
	}
	result := report.Results[0]
	return &result, result.Err
}
