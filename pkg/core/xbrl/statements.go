package xbrl

import (
	"fmt"
	"strings"
)

// Statement is the reconstructed line-item sequence for one statement role.
type Statement struct {
	Role      string              `json:"role"`
	LineItems []StatementLineItem `json:"line_items"`
}

// Assembler merges the three independently parsed catalogs into per-role
// statements. Each source is queried through its narrow read-only surface:
// balance from the catalog (global), weight from the calculation arcs
// (role-scoped), sign from the preferred label (role- and period-scoped).
// The assembler records the sign but never multiplies a value by it; which
// roles warrant sign application is a downstream rendering policy.
type Assembler struct {
	instance *Instance
	catalog  *Catalog
	pres     *Presentation
}

// NewAssembler wires the three parsed sources together. No parsing happens
// here; the inputs are immutable and safely shared.
func NewAssembler(instance *Instance, catalog *Catalog, pres *Presentation) *Assembler {
	return &Assembler{instance: instance, catalog: catalog, pres: pres}
}

// Statement assembles the line items for a role (full URI or short form).
func (a *Assembler) Statement(role string) (*Statement, error) {
	tree := a.pres.Tree(role)
	if tree == nil {
		return nil, fmt.Errorf("no presentation tree for role %q", role)
	}

	stmt := &Statement{Role: tree.Role}
	tree.Walk(func(n *PresentationNode, depth int) {
		stmt.LineItems = append(stmt.LineItems, a.lineItem(n, tree.Role, depth))
	})
	return stmt, nil
}

func (a *Assembler) lineItem(n *PresentationNode, roleURI string, depth int) StatementLineItem {
	item := StatementLineItem{
		Concept:        n.Concept,
		Label:          localName(n.Concept),
		Depth:          depth,
		Balance:        a.catalog.Balance(n.Concept),
		PreferredLabel: n.PreferredLabel,
		Values:         make(map[string]Fact),
		Sign:           make(map[string]PresentationSign),
	}

	if w, ok := a.catalog.Weight(n.Concept, roleURI); ok {
		weight := w
		item.Weight = &weight
	}

	sign := deriveSign(n.PreferredLabel)
	for _, fact := range a.instance.FactsForConcept(n.Concept) {
		ctx, ok := a.instance.Context(fact.ContextRef)
		if !ok {
			continue
		}
		// Dimensioned contexts carry member-level detail, not the base
		// statement line.
		if len(ctx.Dimensions) > 0 {
			continue
		}
		period := ctx.Period.Label()
		if period == "" {
			continue
		}
		if _, seen := item.Values[period]; seen {
			continue
		}
		item.Values[period] = fact
		item.Sign[period] = sign
	}
	return item
}

// deriveSign resolves a preferred-label reference to a presentation sign.
// Negation is declared either by a short label role starting with "negated"
// ("negatedLabel", "negatedTerseLabel") or by a canonical URI whose fragment
// sits under /role/negated. An absent preferred label yields SignUndefined,
// explicitly not a +1 default.
func deriveSign(preferredLabel string) PresentationSign {
	if preferredLabel == "" {
		return SignUndefined
	}
	p := strings.ToLower(preferredLabel)
	if strings.Contains(p, "/role/negated") {
		return SignNegative
	}
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	if strings.HasPrefix(p, "negated") {
		return SignNegative
	}
	return SignPositive
}
