package sgml

import (
	"fmt"
	"strings"
)

const (
	// DefaultMaxPackageSize is the ceiling applied before scanning. Observed
	// submissions run 9KB-76MB; anything past 200MB is rejected outright
	// rather than truncated.
	DefaultMaxPackageSize = 200 * 1024 * 1024

	// metadataWindow bounds the lookahead used to read the metadata fields
	// that follow an opening marker. The fields precede <TEXT> and fit in a
	// few hundred bytes on real filings.
	metadataWindow = 4096
)

// Boundary markers shared by both historical package dialects.
const (
	docOpen   = "<DOCUMENT>"
	docClose  = "</DOCUMENT>"
	textOpen  = "<TEXT>"
	textClose = "</TEXT>"
)

// Warning codes for recovered structural problems.
const (
	WarnTruncatedDocument = "TRUNCATED_DOCUMENT"
)

// Warning records a non-fatal structural problem found while scanning.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Offset  int    `json:"offset"` // byte offset of the affected document
}

// InputTooLargeError is returned when a package exceeds the configured size
// ceiling. It is raised before any scanning happens.
type InputTooLargeError struct {
	Size  int
	Limit int
}

func (e *InputTooLargeError) Error() string {
	return fmt.Sprintf("package size %d exceeds limit %d", e.Size, e.Limit)
}

// ScanResult holds the ordered document descriptors plus any warnings
// accumulated during the pass. A completed scan always carries the best
// achievable structural result; document-local problems become warnings,
// never aborts.
type ScanResult struct {
	Documents []*EmbeddedDocument `json:"documents"`
	Warnings  []Warning           `json:"warnings,omitempty"`
}

// ScanOptions configures a scan. The zero value uses defaults.
type ScanOptions struct {
	MaxPackageSize int // bytes; <= 0 means DefaultMaxPackageSize
}

// ScanPackage splits a submission package into embedded document descriptors
// using the default options.
func ScanPackage(data string) (*ScanResult, error) {
	return ScanPackageWithOptions(data, ScanOptions{})
}

// ScanPackageWithOptions performs a single forward pass over the package.
//
// For each opening marker a bounded lookahead window extracts the metadata
// fields; the document body is never scanned beyond the substring searches
// for the next boundary marker. Cost is O(n) in the package size regardless
// of how documents are distributed. The input is never mutated.
func ScanPackageWithOptions(data string, opts ScanOptions) (*ScanResult, error) {
	limit := opts.MaxPackageSize
	if limit <= 0 {
		limit = DefaultMaxPackageSize
	}
	if len(data) > limit {
		return nil, &InputTooLargeError{Size: len(data), Limit: limit}
	}

	result := &ScanResult{Documents: make([]*EmbeddedDocument, 0, 8)}

	// Absolute offset of the next closing marker at or past the current
	// document, carried across iterations so a missing close is discovered
	// once, not re-searched to end of buffer for every remaining document.
	const closeUnknown, closeNone = -1, -2
	closeAt := closeUnknown

	pos := 0
	for {
		rel := strings.Index(data[pos:], docOpen)
		if rel < 0 {
			break
		}
		open := pos + rel
		metaStart := open + len(docOpen)

		// Locate the document end first: a proper closing marker, or the
		// next opening marker / end of buffer when the close is missing.
		if closeAt != closeNone && closeAt < metaStart {
			if r := strings.Index(data[metaStart:], docClose); r >= 0 {
				closeAt = metaStart + r
			} else {
				closeAt = closeNone
			}
		}
		closeRel := -1
		if closeAt >= metaStart {
			closeRel = closeAt - metaStart
		}
		nextRel := strings.Index(data[metaStart:], docOpen)

		var docEnd int
		var openEnded, truncated bool
		switch {
		case closeRel >= 0 && (nextRel < 0 || closeRel < nextRel):
			docEnd = metaStart + closeRel
			pos = docEnd + len(docClose)
		case nextRel >= 0:
			// Missing close before the next opener: close at the best-known
			// boundary and keep going.
			docEnd = metaStart + nextRel
			truncated = true
			pos = docEnd
		default:
			// Unclosed final document: it still yields a descriptor whose
			// body runs to the end of the buffer.
			docEnd = len(data)
			openEnded = true
			truncated = true
			pos = len(data)
		}

		doc := &EmbeddedDocument{source: data}
		winEnd := metaStart + metadataWindow
		if winEnd > docEnd {
			winEnd = docEnd
		}
		parseMetadata(data[metaStart:winEnd], doc)

		doc.body = bodySpan(data, metaStart, docEnd, openEnded)
		result.Documents = append(result.Documents, doc)

		if truncated {
			result.Warnings = append(result.Warnings, Warning{
				Code:    WarnTruncatedDocument,
				Message: fmt.Sprintf("document %q (seq %s) has no closing marker; closed at best-known boundary", doc.Filename, doc.Sequence),
				Offset:  open,
			})
		}
	}

	return result, nil
}

// parseMetadata reads the lightweight tag fields that precede the document
// body. Both dialects use the same line-oriented "<TAG>value" form here.
func parseMetadata(window string, doc *EmbeddedDocument) {
	if i := strings.Index(window, textOpen); i >= 0 {
		window = window[:i]
	}
	for _, line := range strings.Split(window, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "<TYPE>"):
			doc.Type = strings.TrimSpace(line[len("<TYPE>"):])
		case strings.HasPrefix(line, "<SEQUENCE>"):
			doc.Sequence = strings.TrimSpace(line[len("<SEQUENCE>"):])
		case strings.HasPrefix(line, "<FILENAME>"):
			doc.Filename = strings.TrimSpace(line[len("<FILENAME>"):])
		case strings.HasPrefix(line, "<DESCRIPTION>"):
			doc.Description = strings.TrimSpace(line[len("<DESCRIPTION>"):])
		}
	}
}

// bodySpan computes the content range for a document whose full extent is
// [metaStart, docEnd). When a <TEXT> wrapper is present the body is its
// inside; otherwise the body starts after the metadata fields.
func bodySpan(data string, metaStart, docEnd int, openEnded bool) span {
	section := data[metaStart:docEnd]

	start := metaStart
	if i := strings.Index(section, textOpen); i >= 0 {
		start = metaStart + i + len(textOpen)
		if start < docEnd && data[start] == '\n' {
			start++
		}
	}

	if j := strings.LastIndex(data[start:docEnd], textClose); j >= 0 {
		end := start + j
		// Exclude the newline that precedes </TEXT>.
		if end > start && data[end-1] == '\n' {
			end--
		}
		return span{Start: start, End: end}
	}
	if openEnded {
		return span{Start: start, OpenEnded: true}
	}
	return span{Start: start, End: docEnd}
}

// DocumentByFilename returns the first document with the given filename, or
// nil when the package has none.
func (r *ScanResult) DocumentByFilename(name string) *EmbeddedDocument {
	for _, d := range r.Documents {
		if d.Filename == name {
			return d
		}
	}
	return nil
}

// DocumentsByType returns every document whose TYPE field equals t
// (case-insensitive).
func (r *ScanResult) DocumentsByType(t string) []*EmbeddedDocument {
	var out []*EmbeddedDocument
	for _, d := range r.Documents {
		if strings.EqualFold(d.Type, t) {
			out = append(out, d)
		}
	}
	return out
}
