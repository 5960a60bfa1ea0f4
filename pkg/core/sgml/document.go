// Package sgml parses SEC EDGAR full-text submission packages.
//
// A submission package is a single text blob bundling every constituent
// document of one filing (primary form, exhibits, XBRL data files) between
// <DOCUMENT>...</DOCUMENT> markers. The scanner locates each embedded
// document with a single forward pass and records byte offsets only; content
// is materialized lazily, so a 76MB filing costs a handful of descriptor
// structs until someone asks for a document body.
package sgml

import (
	"fmt"
	"strings"
	"sync"
)

// span addresses a half-open byte range [Start, End) into the package buffer.
// OpenEnded marks "rest of buffer"; End is not consulted when it is set, so a
// valid index can never collide with the sentinel.
type span struct {
	Start     int
	End       int
	OpenEnded bool
}

// resolve returns the concrete [start, end) pair for a buffer of length n.
func (s span) resolve(n int) (int, int) {
	if s.OpenEnded {
		return s.Start, n
	}
	return s.Start, s.End
}

// EmbeddedDocument describes one document inside a submission package.
//
// The descriptor holds metadata plus an offset pair into the shared package
// buffer. Multiple documents alias the same buffer without duplicating it;
// Content copies the referenced range at most once.
type EmbeddedDocument struct {
	Type        string `json:"type"`        // e.g. "10-K", "EX-101.INS", "GRAPHIC"
	Sequence    string `json:"sequence"`    // document sequence within the filing
	Filename    string `json:"filename"`    // e.g. "aapl-20240928.htm"
	Description string `json:"description"` // free-text description, may be empty

	source string // shared read-only package buffer
	body   span   // content range (the <TEXT> body when present)

	contentOnce sync.Once
	content     string
	contentErr  error
}

// ContractViolationError reports an offset pair that escapes the package
// buffer. The scanner never produces one; seeing it means an internal
// invariant broke, not that the input was malformed.
type ContractViolationError struct {
	Start  int
	End    int
	Length int
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("document range [%d, %d) out of bounds for package of %d bytes", e.Start, e.End, e.Length)
}

// Materialize returns a fresh copy of the document body. Each call copies
// again; use Content for the memoized accessor. The copy is detached from the
// package buffer, so holding it does not pin the whole filing in memory.
func (d *EmbeddedDocument) Materialize() (string, error) {
	start, end := d.body.resolve(len(d.source))
	if start < 0 || end < start || end > len(d.source) {
		return "", &ContractViolationError{Start: start, End: end, Length: len(d.source)}
	}
	return strings.Clone(d.source[start:end]), nil
}

// Content returns the document body, copying it out of the package buffer on
// first access and returning the same string afterwards.
func (d *EmbeddedDocument) Content() (string, error) {
	d.contentOnce.Do(func() {
		d.content, d.contentErr = d.Materialize()
	})
	return d.content, d.contentErr
}

// BodySize reports the size in bytes of the document body without
// materializing it.
func (d *EmbeddedDocument) BodySize() int {
	start, end := d.body.resolve(len(d.source))
	if start < 0 || end < start || end > len(d.source) {
		return 0
	}
	return end - start
}
