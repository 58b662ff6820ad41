package restyle

import (
	"fmt"
	"strings"
	"sync"
	"text/tabwriter"
)

// DocumentStatus is the per-document outcome of a batch run
type DocumentStatus string

const (
	StatusStyled  DocumentStatus = "styled"
	StatusSkipped DocumentStatus = "skipped"
	StatusFailed  DocumentStatus = "failed"
)

// DocumentResult records the outcome for one input document
type DocumentResult struct {
	Path    string
	Output  string
	Status  DocumentStatus
	Matches map[string]int
	Err     error
}

// TotalMatches returns the number of match sites styled in this document
func (r *DocumentResult) TotalMatches() int {
	total := 0
	for _, n := range r.Matches {
		total += n
	}
	return total
}

// RunReport aggregates the results of one batch run
type RunReport struct {
	Results []DocumentResult
	Styled  int
	Skipped int
	Failed  int
	DryRun  bool
}

// Err returns the collected errors of failed documents, or nil when every
// document succeeded
func (r *RunReport) Err() error {
	multi := NewMultiError()
	for _, result := range r.Results {
		if result.Status == StatusFailed {
			multi.Add(NewDocumentError("process", result.Path, result.Err))
		}
	}
	return multi.Err()
}

// Summary formats a run summary table
func (r *RunReport) Summary() string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "DOCUMENT\tSTATUS\tMATCHES\tDETAIL")
	for _, result := range r.Results {
		detail := result.Output
		if result.Err != nil {
			detail = result.Err.Error()
		} else if r.DryRun {
			detail = "dry-run"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", result.Path, result.Status, result.TotalMatches(), detail)
	}
	w.Flush()

	fmt.Fprintf(&sb, "\n%d styled, %d skipped, %d failed\n", r.Styled, r.Skipped, r.Failed)
	return sb.String()
}

// preparedRule is a span rule bound to its resolved style
type preparedRule struct {
	rule *SpanRule
	def  *StyleDefinition
}

// preparedMod mirrors one rule-set modification with every style resolved
type preparedMod struct {
	kind  RuleKind
	def   *StyleDefinition
	rules []preparedRule
}

// Processor runs one rule set over batches of documents. Documents are
// independent units of work; the only state shared between workers is the
// resolver's read-only cache.
type Processor struct {
	rules    *RuleSet
	config   *Config
	logger   *Logger
	resolver *Resolver
	dryRun   bool
	suffix   string
}

// Option configures a Processor
type Option func(*Processor)

// WithConfig sets the processor configuration
func WithConfig(config *Config) Option {
	return func(p *Processor) {
		p.config = NewConfigWithDefaults(config)
	}
}

// WithLogger sets the processor logger
func WithLogger(logger *Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithResolver sets a shared resolver, typically to reuse its cache across
// multiple runs
func WithResolver(resolver *Resolver) Option {
	return func(p *Processor) {
		p.resolver = resolver
	}
}

// WithDryRun makes the run compute every match and style decision but skip
// writing output files
func WithDryRun(dryRun bool) Option {
	return func(p *Processor) {
		p.dryRun = dryRun
	}
}

// WithOutputSuffix overrides the configured output file suffix
func WithOutputSuffix(suffix string) Option {
	return func(p *Processor) {
		p.suffix = suffix
	}
}

// NewProcessor creates a batch processor for a rule set
func NewProcessor(rules *RuleSet, opts ...Option) *Processor {
	p := &Processor{
		rules:  rules,
		config: GetGlobalConfig(),
		logger: GetLogger(),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.resolver == nil {
		p.resolver = NewResolverWithCache(NewStyleCacheWithConfig(CacheConfig{
			MaxSize: p.config.CacheMaxSize,
			TTL:     p.config.CacheTTL,
		}))
	}
	if p.suffix == "" {
		p.suffix = p.config.OutputSuffix
	}

	return p
}

// Run processes the given documents. Rule-set wide work happens first:
// every import is resolved against its reference document before any target
// is opened, so configuration problems abort the run with no partial batch.
// Per-document failures are contained in the report and the batch continues.
func (p *Processor) Run(paths []string) (*RunReport, error) {
	if err := p.config.Validate(); err != nil {
		return nil, err
	}

	plan, err := p.prepare()
	if err != nil {
		return nil, err
	}

	report := &RunReport{
		Results: make([]DocumentResult, len(paths)),
		DryRun:  p.dryRun,
	}

	workers := p.config.Workers
	if workers > len(paths) {
		workers = len(paths)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				report.Results[i] = p.processDocument(paths[i], plan)
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, result := range report.Results {
		switch result.Status {
		case StatusStyled:
			report.Styled++
		case StatusSkipped:
			report.Skipped++
		case StatusFailed:
			report.Failed++
		}
	}

	return report, nil
}

// prepare resolves every import rule and binds span rules to their resolved
// styles. A missing style aborts or drops rules depending on the configured
// policy; any other resolution failure aborts.
func (p *Processor) prepare() ([]preparedMod, error) {
	var plan []preparedMod
	resolved := make(map[string]*StyleDefinition)
	skipped := make(map[string]bool)

	for _, mod := range p.rules.Modifications {
		switch mod.Kind {
		case RuleImportStyle:
			imp := mod.Import
			def, err := p.resolver.Resolve(imp.SourceFile, imp.StyleName, imp.Family)
			if err != nil {
				if IsStyleNotFoundError(err) && p.config.OnMissingStyle == OnMissingStyleSkip {
					p.logger.Warn("skipping import rule: %v", err)
					skipped[imp.StyleName] = true
					continue
				}
				return nil, err
			}
			resolved[imp.StyleName] = def
			plan = append(plan, preparedMod{kind: RuleImportStyle, def: def})

		case RuleRegexSpan:
			prepared := preparedMod{kind: RuleRegexSpan}
			for _, rule := range mod.Rules {
				if skipped[rule.StyleName] {
					p.logger.Warn("skipping span rule '%s': style '%s' was not imported", rule.Pattern, rule.StyleName)
					continue
				}
				def, ok := resolved[rule.StyleName]
				if !ok {
					return nil, NewStyleNotFoundError(rule.StyleName, FamilyText, "")
				}
				prepared.rules = append(prepared.rules, preparedRule{rule: rule, def: def})
			}
			plan = append(plan, prepared)
		}
	}

	return plan, nil
}

// appliedSpan records a styled text span for strict conflict detection
type appliedSpan struct {
	start, end int
	pattern    string
}

// processDocument runs the full pipeline for one document: open, import
// styles, match and apply each span rule in order, then save or discard.
// All-or-nothing: any failure leaves no output file for this document.
func (p *Processor) processDocument(path string, plan []preparedMod) DocumentResult {
	result := DocumentResult{
		Path:    path,
		Matches: make(map[string]int),
	}
	logger := p.logger.WithField("document", path)

	doc, err := OpenTarget(path)
	if err != nil {
		logger.Error("failed to open: %v", err)
		result.Status = StatusFailed
		result.Err = err
		return result
	}

	spans := make(map[int][]appliedSpan)

	for _, mod := range plan {
		switch mod.kind {
		case RuleImportStyle:
			if err := ImportStyle(doc, mod.def); err != nil {
				logger.Error("import failed: %v", err)
				result.Status = StatusFailed
				result.Err = err
				return result
			}

		case RuleRegexSpan:
			for _, prepared := range mod.rules {
				sites := FindMatches(doc, prepared.rule.Regexp())
				logger.DebugMatches(prepared.rule.Pattern, sites)

				for _, site := range sites {
					if p.config.StrictSpanConflicts && prepared.def.Family == FamilyText {
						if err := checkSpanConflict(spans, site, prepared.rule.Pattern); err != nil {
							logger.Error("span conflict: %v", err)
							result.Status = StatusFailed
							result.Err = err
							return result
						}
					}
					if err := ApplyStyle(doc, site, prepared.def); err != nil {
						logger.Error("apply failed: %v", err)
						result.Status = StatusFailed
						result.Err = err
						return result
					}
					if prepared.def.Family == FamilyText {
						spans[site.Paragraph] = append(spans[site.Paragraph], appliedSpan{
							start:   site.Start,
							end:     site.End,
							pattern: prepared.rule.Pattern,
						})
					}
				}
				result.Matches[prepared.rule.Pattern] += len(sites)
			}
		}
	}

	if p.dryRun {
		logger.Info("dry-run: %d matches, not saving", result.TotalMatches())
		result.Status = StatusSkipped
		return result
	}

	outPath := OutputPath(path, p.suffix)
	if err := doc.Save(outPath); err != nil {
		logger.Error("save failed: %v", err)
		result.Status = StatusFailed
		result.Err = err
		return result
	}

	logger.Info("styled %d matches -> %s", result.TotalMatches(), outPath)
	result.Status = StatusStyled
	result.Output = outPath
	return result
}

// checkSpanConflict reports an error when the site overlaps a span styled by
// a different rule earlier in this run
func checkSpanConflict(spans map[int][]appliedSpan, site MatchSite, pattern string) error {
	for _, prior := range spans[site.Paragraph] {
		if prior.pattern == pattern {
			continue
		}
		if site.Start < prior.end && prior.start < site.End {
			return NewSpanConflictError(site.Paragraph, prior.pattern, pattern)
		}
	}
	return nil
}
