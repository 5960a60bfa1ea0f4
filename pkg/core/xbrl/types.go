// Package xbrl parses the XBRL data files embedded in a filing package and
// reconstructs per-role financial statement line items.
//
// Three metadata sources are parsed independently and merged without
// cross-contamination: the instance document carries raw facts, the schema
// and calculation linkbase carry balance polarity and contribution weights,
// and the presentation linkbase carries display hierarchy and preferred
// labels. Balance, weight, and presentation sign are never derived from one
// another.
package xbrl

import "strings"

// Fact is a single tagged value from the instance document. It carries the
// literal signed magnitude as encoded plus its context and unit references,
// and no balance, weight, or display information.
type Fact struct {
	Concept    string  `json:"concept"` // e.g. "us-gaap:PaymentsOfDividends"
	Value      string  `json:"value"`   // raw string value, unmodified
	NumericVal float64 `json:"numeric_val"`
	IsNumeric  bool    `json:"is_numeric"`
	ContextRef string  `json:"context_ref"`
	UnitRef    string  `json:"unit_ref"`
	Decimals   string  `json:"decimals"`
}

// Period is the time qualifier of a context: either an instant or a
// start/end duration.
type Period struct {
	Instant   string `json:"instant,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// Label returns the fiscal-year label used to key per-period statement
// values: the 4-digit year of the instant or duration end date.
func (p Period) Label() string {
	d := p.Instant
	if d == "" {
		d = p.EndDate
	}
	if len(d) >= 4 {
		return d[:4]
	}
	return d
}

// Context groups the period, entity, and dimensional qualifiers a fact
// applies to.
type Context struct {
	ID         string            `json:"id"`
	Entity     string            `json:"entity"`
	Period     Period            `json:"period"`
	Dimensions map[string]string `json:"dimensions,omitempty"`
}

// Unit is a measurement unit referenced by numeric facts.
type Unit struct {
	ID      string `json:"id"`
	Measure string `json:"measure"` // e.g. "iso4217:USD"
}

// Balance is the schema-declared semantic polarity of a concept. It
// classifies the accounting meaning of a value and is unrelated to how the
// value is displayed.
type Balance string

const (
	BalanceDebit  Balance = "debit"
	BalanceCredit Balance = "credit"
	BalanceNone   Balance = ""
)

// ElementDefinition is the schema declaration for one concept. Balance and
// period type are global per filing, not role-scoped.
type ElementDefinition struct {
	Concept    string  `json:"concept"`
	Balance    Balance `json:"balance"`
	PeriodType string  `json:"period_type"` // "instant" or "duration"
	Abstract   bool    `json:"abstract"`
}

// CalculationEdge is one parent-child contribution arc. The same concept may
// carry different weights under different roles.
type CalculationEdge struct {
	Parent string  `json:"parent"`
	Child  string  `json:"child"`
	Role   string  `json:"role"`
	Weight float64 `json:"weight"`
	Order  float64 `json:"order"`
}

// PresentationNode is one concept position inside a role's display tree.
type PresentationNode struct {
	Concept        string              `json:"concept"`
	Role           string              `json:"role"`
	PreferredLabel string              `json:"preferred_label,omitempty"`
	Order          float64             `json:"order"`
	Parent         *PresentationNode   `json:"-"`
	Children       []*PresentationNode `json:"children,omitempty"`
}

// PresentationSign is the display sign resolved from a preferred label.
// SignUndefined is an explicit marker for "no preferred label declared";
// it is never silently collapsed into +1.
type PresentationSign int8

const (
	SignUndefined PresentationSign = 0
	SignPositive  PresentationSign = 1
	SignNegative  PresentationSign = -1
)

// StatementLineItem is one reconstructed statement row: the concept's facts
// per period together with its balance (global), weight (role-scoped) and
// presentation sign (role- and period-scoped). Values are attached
// unmodified; applying the sign is a rendering decision made downstream.
type StatementLineItem struct {
	Concept        string                      `json:"concept"`
	Label          string                      `json:"label"`
	Depth          int                         `json:"depth"`
	Balance        Balance                     `json:"balance,omitempty"`
	Weight         *float64                    `json:"weight,omitempty"` // nil when no calculation arc under the role
	PreferredLabel string                      `json:"preferred_label,omitempty"`
	Values         map[string]Fact             `json:"values,omitempty"` // period label -> fact
	Sign           map[string]PresentationSign `json:"sign,omitempty"`   // period label -> sign
}

// normalizeConcept canonicalizes the concept spellings used across the three
// sources. Linkbase locators and schema ids use "us-gaap_Assets"; instance
// facts use "us-gaap:Assets". The prefixed-colon form is canonical.
func normalizeConcept(s string) string {
	if s == "" || strings.Contains(s, ":") {
		return s
	}
	if i := strings.Index(s, "_"); i > 0 {
		return s[:i] + ":" + s[i+1:]
	}
	return s
}

// conceptFromHref extracts the concept from a locator href such as
// "aapl-20240928.xsd#us-gaap_PaymentsOfDividends".
func conceptFromHref(href string) string {
	if i := strings.LastIndex(href, "#"); i >= 0 {
		href = href[i+1:]
	}
	return normalizeConcept(href)
}

// localName strips the namespace prefix: "us-gaap:Assets" -> "Assets".
func localName(concept string) string {
	if i := strings.Index(concept, ":"); i >= 0 {
		return concept[i+1:]
	}
	return concept
}

// shortRole returns the final path segment of a role URI:
// "http://.../role/CashFlow" -> "CashFlow".
func shortRole(roleURI string) string {
	if i := strings.LastIndex(roleURI, "/"); i >= 0 {
		return roleURI[i+1:]
	}
	return roleURI
}
