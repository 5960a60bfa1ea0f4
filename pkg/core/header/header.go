// Package header parses SEC filing headers in both historical dialects.
//
// Filings from roughly 1993 onward carry a tag-indented header inside
// <SEC-HEADER> ("ACCESSION NUMBER:\t\tvalue" lines with tab nesting); newer
// packages carry an XML-style element hierarchy inside <SUBMISSION>
// ("<ACCESSION-NUMBER>value" lines, sections opened by bare tags). Both
// dialects yield the same FilingHeader. Neither form is well-formed XML, so
// parsing is line-oriented.
package header

import (
	"strings"
)

// Dialect identifies which header encoding was detected.
type Dialect string

const (
	DialectLegacy  Dialect = "legacy"  // tab-indented field list
	DialectXML     Dialect = "xml"     // bracketed element hierarchy
	DialectUnknown Dialect = "unknown" // neither signature matched
)

// Warning codes emitted by the header parser.
const (
	WarnUnknownDialect = "UNKNOWN_DIALECT"
)

// Warning records a recovered header problem.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FilingHeader holds the filer metadata extracted from a submission header.
type FilingHeader struct {
	Dialect        Dialect           `json:"dialect"`
	Accession      string            `json:"accession_number"`
	FormType       string            `json:"form_type"`
	FilingDate     string            `json:"filing_date"`      // e.g. "20241101"
	PeriodOfReport string            `json:"period_of_report"` // fiscal period end
	CompanyName    string            `json:"company_name"`     // filer/issuer conformed name
	CompanyCIK     string            `json:"company_cik"`
	Owners         []*ReportingOwner `json:"reporting_owners,omitempty"`
	Warnings       []Warning         `json:"warnings,omitempty"`
}

// DetectDialect inspects the structural signature of a header blob.
func DetectDialect(text string) Dialect {
	if strings.Contains(text, "<SUBMISSION>") {
		return DialectXML
	}
	if strings.Contains(text, "<SEC-HEADER>") {
		return DialectLegacy
	}
	// No wrapper: fall back to line shape. Legacy fields are "KEY:\tvalue";
	// XML-style fields are "<TAG>value".
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "<") {
			return DialectXML
		}
		if strings.Contains(trimmed, ":\t") || strings.HasSuffix(trimmed, ":") {
			return DialectLegacy
		}
	}
	return DialectUnknown
}

// Parse extracts a FilingHeader from raw header text. An unrecognized
// dialect degrades to best-effort field extraction with a warning; it is
// never a hard failure.
func Parse(text string) *FilingHeader {
	dialect := DetectDialect(text)
	switch dialect {
	case DialectXML:
		return parseXMLHeader(text)
	case DialectLegacy:
		return parseLegacyHeader(text)
	default:
		// Best effort: the legacy field names are the older and more common
		// form, so try them, then overlay any XML-style fields found.
		h := parseLegacyHeader(text)
		if h.Accession == "" && h.CompanyName == "" {
			h = parseXMLHeader(text)
		}
		h.Dialect = DialectUnknown
		h.Warnings = append(h.Warnings, Warning{
			Code:    WarnUnknownDialect,
			Message: "header matched neither dialect signature; fields extracted best-effort",
		})
		return h
	}
}

// Owner-block section names shared by both dialects (legacy uses them as
// "NAME:" section headers, XML as "<NAME>" elements).
const (
	secReportingOwner = "REPORTING-OWNER"
	secOwnerData      = "OWNER-DATA"
	secFiler          = "FILER"
	secIssuer         = "ISSUER"
	secSubjectCompany = "SUBJECT-COMPANY"
)

func parseLegacyHeader(text string) *FilingHeader {
	h := &FilingHeader{Dialect: DialectLegacy}

	inOwner := false
	var current *ReportingOwner
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "<") {
			continue
		}

		key, value, ok := splitLegacyField(trimmed)
		if !ok {
			continue
		}

		if value == "" {
			// Section header. Owner blocks nest OWNER DATA under
			// REPORTING-OWNER; any other top-level section ends the block.
			section := normalizeSection(key)
			switch section {
			case secReportingOwner:
				inOwner = true
				current = nil
			case secOwnerData:
				// stays within the current owner block
			default:
				if !strings.HasPrefix(line, "\t") && !strings.HasPrefix(line, " ") {
					inOwner = false
				}
			}
			continue
		}

		switch key {
		case "ACCESSION NUMBER":
			h.Accession = value
		case "CONFORMED SUBMISSION TYPE":
			h.FormType = value
		case "FILED AS OF DATE":
			h.FilingDate = value
		case "CONFORMED PERIOD OF REPORT":
			h.PeriodOfReport = value
		case "COMPANY CONFORMED NAME":
			if inOwner {
				current = &ReportingOwner{RawName: value, ReverseName: true}
				h.Owners = append(h.Owners, current)
			} else if h.CompanyName == "" {
				h.CompanyName = value
			}
		case "CENTRAL INDEX KEY":
			if inOwner && current != nil && current.CIK == "" {
				current.CIK = value
			} else if !inOwner && h.CompanyCIK == "" {
				h.CompanyCIK = value
			}
		}
	}
	return h
}

// splitLegacyField splits "KEY:\t\tvalue" into its parts. Returns ok=false
// for lines that carry no colon at all.
func splitLegacyField(line string) (key, value string, ok bool) {
	i := strings.Index(line, ":")
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:]), true
}

func normalizeSection(key string) string {
	return strings.ReplaceAll(strings.ToUpper(key), " ", "-")
}

func parseXMLHeader(text string) *FilingHeader {
	h := &FilingHeader{Dialect: DialectXML}

	inOwner := false
	var current *ReportingOwner
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "<") {
			continue
		}

		if strings.HasPrefix(trimmed, "</") {
			tag := strings.Trim(trimmed, "</>")
			if normalizeSection(tag) == secReportingOwner {
				inOwner = false
				current = nil
			}
			continue
		}

		end := strings.Index(trimmed, ">")
		if end < 0 {
			continue
		}
		tag := normalizeSection(trimmed[1:end])
		value := strings.TrimSpace(trimmed[end+1:])

		if value == "" {
			switch tag {
			case secReportingOwner:
				inOwner = true
				current = nil
			case secFiler, secIssuer, secSubjectCompany:
				inOwner = false
			}
			continue
		}

		switch tag {
		case "ACCESSION-NUMBER":
			h.Accession = value
		case "TYPE", "SUBMISSION-TYPE":
			if h.FormType == "" {
				h.FormType = value
			}
		case "FILING-DATE", "DATE-FILED", "FILED-DATE":
			if h.FilingDate == "" {
				h.FilingDate = value
			}
		case "PERIOD", "PERIOD-OF-REPORT":
			if h.PeriodOfReport == "" {
				h.PeriodOfReport = value
			}
		case "CONFORMED-NAME", "COMPANY-CONFORMED-NAME":
			if inOwner {
				// XML-dialect headers already store names in display order.
				current = &ReportingOwner{RawName: value}
				h.Owners = append(h.Owners, current)
			} else if h.CompanyName == "" {
				h.CompanyName = value
			}
		case "CIK", "CENTRAL-INDEX-KEY":
			if inOwner && current != nil && current.CIK == "" {
				current.CIK = value
			} else if !inOwner && h.CompanyCIK == "" {
				h.CompanyCIK = value
			}
		}
	}
	return h
}
