// Package xml provides XML structure definitions for DOCX documents.
//
// DOCX files are ZIP archives containing XML parts. This package models the
// parts go-restyle needs to rewrite (the document body, its paragraphs and
// runs, and their style references) and preserves everything else verbatim.
//
// # Structure Organization
//
//   - types.go: Core interfaces (BodyElement, ParagraphContent), RawXMLElement,
//     and the namespace prefix table
//   - document.go: Top-level Document and Body structures
//   - paragraph.go: Paragraph elements and their properties
//   - run.go: Run elements, Text, and run properties
//
// # Key Concepts
//
// BodyElement: Top-level elements that can appear in a document body. Only
// paragraphs are parsed into structure; tables, section properties, and any
// other body content round-trip as RawXMLElement blobs.
//
// Run: A contiguous sequence of text with consistent formatting. Runs are the
// atomic units of inline styling; applying a character style to a substring
// means splitting its run at the substring boundaries.
//
// # Fidelity
//
// The styler must never corrupt content it does not understand. Unknown
// elements inside paragraphs, paragraph properties, and run properties are
// captured as raw XML with namespace prefixes restored, and emitted unchanged
// when the document is serialized.
package xml
