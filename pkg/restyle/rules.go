package restyle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// RuleKind tags the two modification variants a rule set can hold
type RuleKind string

const (
	RuleImportStyle RuleKind = "import_style"
	RuleRegexSpan   RuleKind = "regex_span_styler"
)

// ImportRule declares a style that must exist in every target before
// matching begins
type ImportRule struct {
	StyleName  string
	Family     StyleFamily
	SourceFile string
}

// SpanRule maps a pattern to a style name. The pattern is compiled once when
// the rule set is loaded.
type SpanRule struct {
	Pattern   string
	StyleName string

	re *regexp.Regexp
}

// Regexp returns the compiled pattern
func (r *SpanRule) Regexp() *regexp.Regexp {
	return r.re
}

// Modification is one entry of the rule set: either a style import or a
// group of span rules. The tag is consumed by a single orchestration loop.
type Modification struct {
	Kind   RuleKind
	Import *ImportRule
	Rules  []*SpanRule
}

// RuleSet is an ordered sequence of modifications. Order is declaration
// order in configuration and determines application precedence: when spans
// from different rules overlap, the later rule's style survives.
type RuleSet struct {
	Modifications []*Modification
}

// ruleSetFile is the external configuration schema, accepted as JSON or YAML
type ruleSetFile struct {
	Modifications []modificationFile `json:"modifications" yaml:"modifications"`
}

type modificationFile struct {
	Type       string         `json:"type" yaml:"type"`
	StyleName  string         `json:"style_name" yaml:"style_name"`
	Family     string         `json:"family" yaml:"family"`
	SourceFile string         `json:"source_file" yaml:"source_file"`
	Rules      []spanRuleFile `json:"rules" yaml:"rules"`
}

type spanRuleFile struct {
	Pattern   string `json:"pattern" yaml:"pattern"`
	StyleName string `json:"style_name" yaml:"style_name"`
}

// LoadRuleSet reads a rule configuration file. Files ending in .yaml or .yml
// are parsed as YAML, everything else as JSON. Relative source_file paths
// are resolved against the configuration file's directory.
func LoadRuleSet(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", err)
	}

	format := "json"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	}

	rules, err := ParseRuleSet(data, format)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	for _, mod := range rules.Modifications {
		if mod.Kind == RuleImportStyle && !filepath.IsAbs(mod.Import.SourceFile) {
			mod.Import.SourceFile = filepath.Join(dir, mod.Import.SourceFile)
		}
	}

	return rules, nil
}

// ParseRuleSet parses rule configuration data in the given format ("json" or
// "yaml"), validates it and compiles every pattern up front. A pattern that
// fails to compile is an InvalidPatternError: rule definitions are shared
// across the batch, so nothing runs with a broken rule set.
func ParseRuleSet(data []byte, format string) (*RuleSet, error) {
	var file ruleSetFile
	var err error
	switch format {
	case "yaml":
		err = yaml.Unmarshal(data, &file)
	case "json":
		err = json.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("unknown rule format '%s'", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse rule configuration: %w", err)
	}

	validation := &ValidationError{}
	rules := &RuleSet{}
	imported := make(map[string]bool)

	for i, mod := range file.Modifications {
		field := func(name string) string {
			return fmt.Sprintf("modifications[%d].%s", i, name)
		}

		switch mod.Type {
		case string(RuleImportStyle):
			if mod.StyleName == "" {
				validation.Issues = append(validation.Issues, ValidationIssue{field("style_name"), "required"})
			}
			if mod.SourceFile == "" {
				validation.Issues = append(validation.Issues, ValidationIssue{field("source_file"), "required"})
			}
			family, err := ParseStyleFamily(mod.Family)
			if err != nil {
				validation.Issues = append(validation.Issues, ValidationIssue{field("family"), err.Error()})
				continue
			}
			imported[mod.StyleName] = true
			rules.Modifications = append(rules.Modifications, &Modification{
				Kind: RuleImportStyle,
				Import: &ImportRule{
					StyleName:  mod.StyleName,
					Family:     family,
					SourceFile: mod.SourceFile,
				},
			})

		case string(RuleRegexSpan):
			if len(mod.Rules) == 0 {
				validation.Issues = append(validation.Issues, ValidationIssue{field("rules"), "at least one rule required"})
				continue
			}
			group := &Modification{Kind: RuleRegexSpan}
			for j, rule := range mod.Rules {
				ruleField := func(name string) string {
					return fmt.Sprintf("modifications[%d].rules[%d].%s", i, j, name)
				}
				if rule.Pattern == "" {
					validation.Issues = append(validation.Issues, ValidationIssue{ruleField("pattern"), "required"})
					continue
				}
				if rule.StyleName == "" {
					validation.Issues = append(validation.Issues, ValidationIssue{ruleField("style_name"), "required"})
					continue
				}
				if !imported[rule.StyleName] {
					validation.Issues = append(validation.Issues, ValidationIssue{
						ruleField("style_name"),
						fmt.Sprintf("style '%s' is not imported by an earlier import_style modification", rule.StyleName),
					})
					continue
				}
				group.Rules = append(group.Rules, &SpanRule{
					Pattern:   rule.Pattern,
					StyleName: rule.StyleName,
				})
			}
			rules.Modifications = append(rules.Modifications, group)

		default:
			validation.Issues = append(validation.Issues, ValidationIssue{field("type"), fmt.Sprintf("unknown modification type '%s'", mod.Type)})
		}
	}

	if len(validation.Issues) > 0 {
		return nil, validation
	}

	for _, mod := range rules.Modifications {
		for _, rule := range mod.Rules {
			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				return nil, NewInvalidPatternError(rule.Pattern, err)
			}
			rule.re = re
		}
	}

	return rules, nil
}
