package xbrl

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Catalog combines the schema element declarations with the calculation
// linkbase arcs. Balance polarity is global per filing; calculation weights
// are scoped to (concept, role).
type Catalog struct {
	elements map[string]ElementDefinition
	edges    map[string][]CalculationEdge      // role URI -> edges
	weights  map[string]map[string]float64     // role URI -> concept -> weight
}

// NewCatalog builds a catalog from parsed element definitions and
// calculation edges grouped by role.
func NewCatalog(elements map[string]ElementDefinition, edgesByRole map[string][]CalculationEdge) *Catalog {
	c := &Catalog{
		elements: elements,
		edges:    edgesByRole,
		weights:  make(map[string]map[string]float64, len(edgesByRole)),
	}
	for role, edges := range edgesByRole {
		byConcept := make(map[string]float64, len(edges))
		for _, e := range edges {
			byConcept[e.Child] = e.Weight
		}
		c.weights[role] = byConcept
	}
	return c
}

// ParseElements parses an XBRL taxonomy schema into element definitions
// keyed by concept.
func ParseElements(data string) (map[string]ElementDefinition, error) {
	elements := make(map[string]ElementDefinition)
	if strings.TrimSpace(data) == "" {
		return elements, nil
	}

	doc, err := xmlquery.Parse(strings.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	for _, n := range xmlquery.Find(doc, "//*[local-name()='element']") {
		concept := normalizeConcept(attrLocal(n, "id"))
		if concept == "" {
			concept = normalizeConcept(attrLocal(n, "name"))
		}
		if concept == "" {
			continue
		}
		def := ElementDefinition{
			Concept:    concept,
			Balance:    Balance(attrLocal(n, "balance")),
			PeriodType: attrLocal(n, "periodType"),
			Abstract:   attrLocal(n, "abstract") == "true",
		}
		elements[concept] = def
	}
	return elements, nil
}

// ParseCalculation parses a calculation linkbase into edges grouped by role
// URI. Locator labels are resolved to concepts within each calculationLink.
func ParseCalculation(data string) (map[string][]CalculationEdge, error) {
	edges := make(map[string][]CalculationEdge)
	if strings.TrimSpace(data) == "" {
		return edges, nil
	}

	doc, err := xmlquery.Parse(strings.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse calculation linkbase: %w", err)
	}

	for _, link := range xmlquery.Find(doc, "//*[local-name()='calculationLink']") {
		role := attrLocal(link, "role")
		labels := locatorLabels(link)

		for _, arc := range xmlquery.Find(link, ".//*[local-name()='calculationArc']") {
			parent, okFrom := labels[attrLocal(arc, "from")]
			child, okTo := labels[attrLocal(arc, "to")]
			if !okFrom || !okTo {
				continue
			}
			weight, err := strconv.ParseFloat(attrLocal(arc, "weight"), 64)
			if err != nil {
				continue
			}
			order, _ := strconv.ParseFloat(attrLocal(arc, "order"), 64)
			edges[role] = append(edges[role], CalculationEdge{
				Parent: parent,
				Child:  child,
				Role:   role,
				Weight: weight,
				Order:  order,
			})
		}
	}
	return edges, nil
}

// locatorLabels maps xlink labels to concepts for one extended link.
func locatorLabels(link *xmlquery.Node) map[string]string {
	labels := make(map[string]string)
	for _, loc := range xmlquery.Find(link, ".//*[local-name()='loc']") {
		label := attrLocal(loc, "label")
		href := attrLocal(loc, "href")
		if label != "" && href != "" {
			labels[label] = conceptFromHref(href)
		}
	}
	return labels
}

// Balance returns the global balance polarity for a concept. Concepts
// without a schema declaration (or without a balance attribute) report
// BalanceNone.
func (c *Catalog) Balance(concept string) Balance {
	return c.elements[normalizeConcept(concept)].Balance
}

// PeriodType returns the schema-declared period type for a concept.
func (c *Catalog) PeriodType(concept string) string {
	return c.elements[normalizeConcept(concept)].PeriodType
}

// Element returns the full definition for a concept.
func (c *Catalog) Element(concept string) (ElementDefinition, bool) {
	def, ok := c.elements[normalizeConcept(concept)]
	return def, ok
}

// Weight returns the calculation weight for a concept under a role. The
// role may be the full URI or its short form. The second return reports
// whether any calculation arc declares the concept under that role.
func (c *Catalog) Weight(concept, role string) (float64, bool) {
	concept = normalizeConcept(concept)
	if byConcept, ok := c.weights[role]; ok {
		w, ok := byConcept[concept]
		return w, ok
	}
	for roleURI, byConcept := range c.weights {
		if strings.EqualFold(shortRole(roleURI), role) {
			w, ok := byConcept[concept]
			return w, ok
		}
	}
	return 0, false
}

// Edges returns the calculation edges declared under a role.
func (c *Catalog) Edges(role string) []CalculationEdge {
	return c.edges[role]
}

// Roles lists the role URIs that carry calculation arcs, sorted for
// deterministic iteration.
func (c *Catalog) Roles() []string {
	roles := make([]string, 0, len(c.edges))
	for role := range c.edges {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}
