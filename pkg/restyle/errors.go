// Package restyle provides custom error types for better error handling and reporting.
package restyle

import (
	"errors"
	"fmt"
	"strings"
)

// StyleNotFoundError reports that a reference document lacks a style with the
// requested name and family
type StyleNotFoundError struct {
	Name   string
	Family StyleFamily
	Source string
}

func (e *StyleNotFoundError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("style '%s' (family %s) not found in '%s'", e.Name, e.Family, e.Source)
	}
	return fmt.Sprintf("style '%s' (family %s) not found", e.Name, e.Family)
}

// NewStyleNotFoundError creates a new style-not-found error
func NewStyleNotFoundError(name string, family StyleFamily, source string) error {
	return &StyleNotFoundError{
		Name:   name,
		Family: family,
		Source: source,
	}
}

// ImportConflictError reports an import whose style name already exists in
// the target under a different family. Family determines how a style is
// applied, so this is never resolved by overwriting.
type ImportConflictError struct {
	Name      string
	Requested StyleFamily
	Existing  StyleFamily
}

func (e *ImportConflictError) Error() string {
	return fmt.Sprintf("import conflict for style '%s': requested family %s but target already defines family %s",
		e.Name, e.Requested, e.Existing)
}

// NewImportConflictError creates a new import conflict error
func NewImportConflictError(name string, requested, existing StyleFamily) error {
	return &ImportConflictError{
		Name:      name,
		Requested: requested,
		Existing:  existing,
	}
}

// InvalidPatternError reports a rule pattern that fails to compile. Rule
// definitions are shared across the batch, so this aborts the whole run.
type InvalidPatternError struct {
	Pattern string
	Cause   error
}

func (e *InvalidPatternError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid pattern '%s': %v", e.Pattern, e.Cause)
	}
	return fmt.Sprintf("invalid pattern '%s'", e.Pattern)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Cause
}

// NewInvalidPatternError creates a new invalid pattern error
func NewInvalidPatternError(pattern string, cause error) error {
	return &InvalidPatternError{
		Pattern: pattern,
		Cause:   cause,
	}
}

// OffsetIntegrityError reports a match span that falls outside the bounds of
// its paragraph's current text. Mis-styling content silently is worse than
// failing the document.
type OffsetIntegrityError struct {
	Paragraph int
	Start     int
	End       int
	Length    int
}

func (e *OffsetIntegrityError) Error() string {
	return fmt.Sprintf("span [%d:%d) outside paragraph %d bounds (text length %d)",
		e.Start, e.End, e.Paragraph, e.Length)
}

// NewOffsetIntegrityError creates a new offset integrity error
func NewOffsetIntegrityError(paragraph, start, end, length int) error {
	return &OffsetIntegrityError{
		Paragraph: paragraph,
		Start:     start,
		End:       end,
		Length:    length,
	}
}

// SpanConflictError reports overlapping span matches from different rules in
// strict conflict mode
type SpanConflictError struct {
	Paragraph  int
	FirstRule  string
	SecondRule string
}

func (e *SpanConflictError) Error() string {
	return fmt.Sprintf("overlapping spans in paragraph %d: rule '%s' conflicts with earlier rule '%s'",
		e.Paragraph, e.SecondRule, e.FirstRule)
}

// NewSpanConflictError creates a new span conflict error
func NewSpanConflictError(paragraph int, firstRule, secondRule string) error {
	return &SpanConflictError{
		Paragraph:  paragraph,
		FirstRule:  firstRule,
		SecondRule: secondRule,
	}
}

// DocumentError represents an error during document operations
type DocumentError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *DocumentError) Error() string {
	if e.Path != "" && e.Cause != nil {
		return fmt.Sprintf("document error during %s of '%s': %v", e.Operation, e.Path, e.Cause)
	} else if e.Path != "" {
		return fmt.Sprintf("document error during %s of '%s'", e.Operation, e.Path)
	} else if e.Cause != nil {
		return fmt.Sprintf("document error during %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("document error during %s", e.Operation)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// NewDocumentError creates a new document error
func NewDocumentError(operation, path string, cause error) error {
	return &DocumentError{
		Operation: operation,
		Path:      path,
		Cause:     cause,
	}
}

// ValidationIssue represents a single validation problem
type ValidationIssue struct {
	Field   string
	Message string
}

// ValidationError represents multiple validation issues
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation error"
	}

	if len(e.Issues) == 1 {
		return fmt.Sprintf("validation error: %s - %s", e.Issues[0].Field, e.Issues[0].Message)
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d validation issues:", len(e.Issues)))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("  %s: %s", issue.Field, issue.Message))
	}
	return strings.Join(parts, "\n")
}

// MultiError collects multiple errors
type MultiError struct {
	errors []error
}

// NewMultiError creates a new multi-error collector
func NewMultiError() *MultiError {
	return &MultiError{
		errors: make([]error, 0),
	}
}

// Add adds an error to the collection (ignores nil errors)
func (m *MultiError) Add(err error) {
	if err != nil {
		m.errors = append(m.errors, err)
	}
}

// Len returns the number of errors
func (m *MultiError) Len() int {
	return len(m.errors)
}

// Err returns the multi-error or nil if empty
func (m *MultiError) Err() error {
	if len(m.errors) == 0 {
		return nil
	}
	if len(m.errors) == 1 {
		return m.errors[0]
	}
	return m
}

func (m *MultiError) Error() string {
	if len(m.errors) == 0 {
		return "no errors"
	}

	if len(m.errors) == 1 {
		return m.errors[0].Error()
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d errors occurred:", len(m.errors)))
	for i, err := range m.errors {
		parts = append(parts, fmt.Sprintf("  [%d] %v", i+1, err))
	}
	return strings.Join(parts, "\n")
}

// IsStyleNotFoundError checks if an error is a style-not-found error
func IsStyleNotFoundError(err error) bool {
	var target *StyleNotFoundError
	return errors.As(err, &target)
}

// IsImportConflictError checks if an error is an import conflict error
func IsImportConflictError(err error) bool {
	var target *ImportConflictError
	return errors.As(err, &target)
}

// IsInvalidPatternError checks if an error is an invalid pattern error
func IsInvalidPatternError(err error) bool {
	var target *InvalidPatternError
	return errors.As(err, &target)
}

// IsOffsetIntegrityError checks if an error is an offset integrity error
func IsOffsetIntegrityError(err error) bool {
	var target *OffsetIntegrityError
	return errors.As(err, &target)
}

// IsDocumentError checks if an error is a document error
func IsDocumentError(err error) bool {
	var target *DocumentError
	return errors.As(err, &target)
}
