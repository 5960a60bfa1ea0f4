// Package filings ties the package scanner, header parser, and XBRL loaders
// into a single filing view.
//
// A Filing is cheap to open: the constructor only scans document boundaries.
// Header parsing and XBRL loading happen lazily on first access and are
// memoized, so callers pay only for the parts they touch. Independent
// filings share no state and may be processed concurrently.
package filings

import (
	"fmt"
	"strings"
	"sync"

	"filing_parser/pkg/core/header"
	"filing_parser/pkg/core/sgml"
	"filing_parser/pkg/core/xbrl"
)

// Filing is one parsed submission package.
type Filing struct {
	raw  string
	scan *sgml.ScanResult

	headerOnce sync.Once
	hdr        *header.FilingHeader

	xbrlOnce sync.Once
	data     *xbrl.XBRLData
	xbrlErr  error
}

// Open scans a raw submission package. The buffer is treated as read-only
// and shared by every document view; nothing here copies or mutates it.
func Open(raw string) (*Filing, error) {
	return OpenWithOptions(raw, sgml.ScanOptions{})
}

// OpenWithOptions scans with an explicit size ceiling.
func OpenWithOptions(raw string, opts sgml.ScanOptions) (*Filing, error) {
	scan, err := sgml.ScanPackageWithOptions(raw, opts)
	if err != nil {
		return nil, err
	}
	return &Filing{raw: raw, scan: scan}, nil
}

// Documents returns the embedded document descriptors in package order.
func (f *Filing) Documents() []*sgml.EmbeddedDocument {
	return f.scan.Documents
}

// Warnings returns the non-fatal problems recovered while scanning.
func (f *Filing) Warnings() []sgml.Warning {
	return f.scan.Warnings
}

// Header parses the filing header on first access. The header precedes the
// first document marker and is independent of the XBRL pipeline.
func (f *Filing) Header() *header.FilingHeader {
	f.headerOnce.Do(func() {
		text := f.raw
		if i := strings.Index(text, "<DOCUMENT>"); i >= 0 {
			text = text[:i]
		}
		f.hdr = header.Parse(text)
	})
	return f.hdr
}

// XBRL locates the XBRL attachments among the embedded documents and loads
// them on first access. The three loaders run concurrently against
// independent document views.
func (f *Filing) XBRL() (*xbrl.XBRLData, error) {
	f.xbrlOnce.Do(func() {
		f.data, f.xbrlErr = f.loadXBRL()
	})
	return f.data, f.xbrlErr
}

// Statement assembles the line items for a role (full URI or short form).
func (f *Filing) Statement(role string) (*xbrl.Statement, error) {
	data, err := f.XBRL()
	if err != nil {
		return nil, err
	}
	return data.Statement(role)
}

func (f *Filing) loadXBRL() (*xbrl.XBRLData, error) {
	att := f.findAttachments()
	if att.instance == nil {
		return nil, fmt.Errorf("filing has no XBRL instance document")
	}
	if att.schema == nil {
		return nil, fmt.Errorf("filing has no XBRL taxonomy schema")
	}

	instanceXML, err := att.instance.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to materialize instance document: %w", err)
	}
	schemaXML, err := att.schema.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to materialize schema: %w", err)
	}

	// Calculation and presentation linkbases are optional; some filings
	// genuinely omit them.
	var calcXML, presXML string
	if att.calculation != nil {
		if calcXML, err = att.calculation.Content(); err != nil {
			return nil, fmt.Errorf("failed to materialize calculation linkbase: %w", err)
		}
	}
	if att.presentation != nil {
		if presXML, err = att.presentation.Content(); err != nil {
			return nil, fmt.Errorf("failed to materialize presentation linkbase: %w", err)
		}
	}

	return xbrl.Parse(instanceXML, schemaXML, calcXML, presXML)
}

type attachments struct {
	instance     *sgml.EmbeddedDocument
	schema       *sgml.EmbeddedDocument
	calculation  *sgml.EmbeddedDocument
	presentation *sgml.EmbeddedDocument
}

// findAttachments classifies the XBRL data files by filename convention and
// document type. EDGAR names linkbases with fixed suffixes (_cal.xml,
// _pre.xml, _lab.xml, _def.xml); the instance is the remaining .xml tagged
// EX-101.INS on older filings.
func (f *Filing) findAttachments() attachments {
	var att attachments
	for _, doc := range f.scan.Documents {
		name := strings.ToLower(doc.Filename)
		switch {
		case strings.HasSuffix(name, ".xsd"):
			if att.schema == nil {
				att.schema = doc
			}
		case strings.HasSuffix(name, "_cal.xml"):
			if att.calculation == nil {
				att.calculation = doc
			}
		case strings.HasSuffix(name, "_pre.xml"):
			if att.presentation == nil {
				att.presentation = doc
			}
		case strings.HasSuffix(name, "_lab.xml"), strings.HasSuffix(name, "_def.xml"):
			// label and definition linkbases are not consumed here
		case strings.EqualFold(doc.Type, "EX-101.INS"):
			if att.instance == nil {
				att.instance = doc
			}
		case strings.HasSuffix(name, ".xml"):
			if att.instance == nil && looksLikeInstance(doc) {
				att.instance = doc
			}
		}
	}
	return att
}

// looksLikeInstance sniffs the start of a .xml document for an instance root
// element. Inline XBRL primary documents are .htm and never reach here.
func looksLikeInstance(doc *sgml.EmbeddedDocument) bool {
	content, err := doc.Content()
	if err != nil {
		return false
	}
	head := content
	if len(head) > 2048 {
		head = head[:2048]
	}
	return strings.Contains(head, "<xbrl") || strings.Contains(head, ":xbrl")
}
