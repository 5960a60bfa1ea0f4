package xbrl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Instance holds the parsed facts, contexts, and units of one instance
// document. It performs no cross-referencing against schema, calculation, or
// presentation data.
type Instance struct {
	facts     []Fact
	byConcept map[string][]Fact
	contexts  map[string]Context
	units     map[string]Unit
}

// ParseInstance parses an XBRL instance document into facts keyed by concept
// and context. Stored values are the literal signed magnitude as encoded;
// any parenthesis-as-negative display convention belongs to the rendering
// layer and is not applied here.
func ParseInstance(data string) (*Instance, error) {
	doc, err := xmlquery.Parse(strings.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse instance document: %w", err)
	}

	inst := &Instance{
		byConcept: make(map[string][]Fact),
		contexts:  make(map[string]Context),
		units:     make(map[string]Unit),
	}

	for _, n := range xmlquery.Find(doc, "//*[local-name()='context']") {
		ctx := parseContext(n)
		inst.contexts[ctx.ID] = ctx
	}

	for _, n := range xmlquery.Find(doc, "//*[local-name()='unit']") {
		unit := Unit{ID: attrLocal(n, "id")}
		if m := xmlquery.FindOne(n, ".//*[local-name()='measure']"); m != nil {
			unit.Measure = strings.TrimSpace(m.InnerText())
		}
		inst.units[unit.ID] = unit
	}

	// Only facts carry a contextRef attribute; everything else in the
	// document (contexts, units, linkbase references) does not.
	for _, n := range xmlquery.Find(doc, "//*[@contextRef]") {
		fact := Fact{
			Concept:    qualifiedName(n),
			Value:      strings.TrimSpace(n.InnerText()),
			ContextRef: attrLocal(n, "contextRef"),
			UnitRef:    attrLocal(n, "unitRef"),
			Decimals:   attrLocal(n, "decimals"),
		}
		if v, err := strconv.ParseFloat(strings.ReplaceAll(fact.Value, ",", ""), 64); err == nil {
			fact.NumericVal = v
			fact.IsNumeric = true
		}
		inst.facts = append(inst.facts, fact)
		inst.byConcept[fact.Concept] = append(inst.byConcept[fact.Concept], fact)
	}

	return inst, nil
}

func parseContext(n *xmlquery.Node) Context {
	ctx := Context{ID: attrLocal(n, "id")}

	if e := xmlquery.FindOne(n, ".//*[local-name()='identifier']"); e != nil {
		ctx.Entity = strings.TrimSpace(e.InnerText())
	}
	if p := xmlquery.FindOne(n, ".//*[local-name()='instant']"); p != nil {
		ctx.Period.Instant = strings.TrimSpace(p.InnerText())
	}
	if p := xmlquery.FindOne(n, ".//*[local-name()='startDate']"); p != nil {
		ctx.Period.StartDate = strings.TrimSpace(p.InnerText())
	}
	if p := xmlquery.FindOne(n, ".//*[local-name()='endDate']"); p != nil {
		ctx.Period.EndDate = strings.TrimSpace(p.InnerText())
	}

	for _, m := range xmlquery.Find(n, ".//*[local-name()='explicitMember']") {
		if ctx.Dimensions == nil {
			ctx.Dimensions = make(map[string]string)
		}
		ctx.Dimensions[attrLocal(m, "dimension")] = strings.TrimSpace(m.InnerText())
	}
	return ctx
}

// Facts returns every fact in document order.
func (i *Instance) Facts() []Fact {
	return i.facts
}

// FactsForConcept returns the facts tagged with the given concept, accepting
// either the prefixed-colon or underscore spelling.
func (i *Instance) FactsForConcept(concept string) []Fact {
	return i.byConcept[normalizeConcept(concept)]
}

// Context resolves a context reference.
func (i *Instance) Context(id string) (Context, bool) {
	ctx, ok := i.contexts[id]
	return ctx, ok
}

// Unit resolves a unit reference.
func (i *Instance) Unit(id string) (Unit, bool) {
	u, ok := i.units[id]
	return u, ok
}

// qualifiedName rebuilds the prefixed concept name of a fact element.
func qualifiedName(n *xmlquery.Node) string {
	if n.Prefix != "" {
		return n.Prefix + ":" + n.Data
	}
	return n.Data
}

// attrLocal returns an attribute value by local name, ignoring any namespace
// prefix on the attribute. Linkbase attributes arrive as both "weight" and
// "xlink:weight" depending on the producing tool.
func attrLocal(n *xmlquery.Node, name string) string {
	for _, a := range n.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
