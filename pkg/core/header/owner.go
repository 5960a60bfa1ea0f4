package header

import (
	"context"
	"strings"
	"sync"
)

// EntityClass is the outcome of the company/individual classification lookup.
type EntityClass int

const (
	ClassUnknown EntityClass = iota
	ClassCompany
	ClassIndividual
)

// Classifier resolves a CIK to an entity class. It is injected rather than
// ambient so tests can substitute deterministic fakes; the caller bounds the
// lookup with the context (timeout/cancellation).
type Classifier interface {
	Classify(ctx context.Context, cik string) (EntityClass, error)
}

// ClassifierFunc adapts a plain function to the Classifier interface.
type ClassifierFunc func(ctx context.Context, cik string) (EntityClass, error)

// Classify implements Classifier.
func (f ClassifierFunc) Classify(ctx context.Context, cik string) (EntityClass, error) {
	return f(ctx, cik)
}

// ReportingOwner is one reporting-owner entry from a filing header.
//
// Legacy-dialect headers store individual names surname-first
// ("Garascia Jessica A."), so ReverseName is set for owners parsed from that
// dialect. Resolution is deferred: no lookup ever runs unless the flag is
// set, and the result is memoized so a second read never repeats it.
type ReportingOwner struct {
	RawName     string `json:"raw_name"`
	CIK         string `json:"cik"`
	ReverseName bool   `json:"reverse_name"`

	resolveOnce sync.Once
	resolved    string
}

// ResolvedName returns the display name for the owner.
//
// When ReverseName is false the raw name is already in display order and the
// classifier is never invoked. When it is set, a successful "company"
// classification keeps the raw order; any other outcome (individual, lookup
// error, timeout, nil classifier) reverses the word order. Most reporting
// owners are individuals, so reversal is the fallback; lookup failures are
// absorbed here, never surfaced as parse errors.
func (o *ReportingOwner) ResolvedName(ctx context.Context, classifier Classifier) string {
	o.resolveOnce.Do(func() {
		if !o.ReverseName {
			o.resolved = o.RawName
			return
		}
		if classifier != nil {
			if class, err := classifier.Classify(ctx, o.CIK); err == nil && class == ClassCompany {
				o.resolved = o.RawName
				return
			}
		}
		o.resolved = reverseName(o.RawName)
	})
	return o.resolved
}

// reverseName converts a surname-first name to display order by moving the
// leading surname token to the end: "Garascia Jessica A." -> "Jessica A. Garascia".
func reverseName(name string) string {
	tokens := strings.Fields(name)
	if len(tokens) < 2 {
		return name
	}
	out := make([]string, 0, len(tokens))
	out = append(out, tokens[1:]...)
	out = append(out, tokens[0])
	return strings.Join(out, " ")
}
