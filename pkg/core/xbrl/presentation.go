package xbrl

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
)

// PresentationTree is the display hierarchy for one statement role.
type PresentationTree struct {
	Role  string              `json:"role"`
	Roots []*PresentationNode `json:"roots"`

	byConcept map[string]*PresentationNode
}

// Presentation holds one tree per role plus the preferred-label index.
type Presentation struct {
	trees map[string]*PresentationTree
	order []string // role URIs in document order
}

// ParsePresentation parses a presentation linkbase into one tree per role.
// Children are ordered ascending by the arc order attribute, ties broken by
// document order.
func ParsePresentation(data string) (*Presentation, error) {
	p := &Presentation{trees: make(map[string]*PresentationTree)}
	if strings.TrimSpace(data) == "" {
		return p, nil
	}

	doc, err := xmlquery.Parse(strings.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse presentation linkbase: %w", err)
	}

	for _, link := range xmlquery.Find(doc, "//*[local-name()='presentationLink']") {
		role := attrLocal(link, "role")
		labels := locatorLabels(link)

		tree := &PresentationTree{Role: role, byConcept: make(map[string]*PresentationNode)}
		hasParent := make(map[*PresentationNode]bool)

		node := func(concept string) *PresentationNode {
			if n, ok := tree.byConcept[concept]; ok {
				return n
			}
			n := &PresentationNode{Concept: concept, Role: role}
			tree.byConcept[concept] = n
			return n
		}

		for _, arc := range xmlquery.Find(link, ".//*[local-name()='presentationArc']") {
			parentConcept, okFrom := labels[attrLocal(arc, "from")]
			childConcept, okTo := labels[attrLocal(arc, "to")]
			if !okFrom || !okTo {
				continue
			}
			parent := node(parentConcept)
			child := node(childConcept)

			child.Order, _ = strconv.ParseFloat(attrLocal(arc, "order"), 64)
			if pl := attrLocal(arc, "preferredLabel"); pl != "" {
				child.PreferredLabel = pl
			}
			child.Parent = parent
			parent.Children = append(parent.Children, child)
			hasParent[child] = true
		}

		for _, n := range tree.byConcept {
			sort.SliceStable(n.Children, func(i, j int) bool {
				return n.Children[i].Order < n.Children[j].Order
			})
		}

		// Roots are nodes never appearing on the child end of an arc,
		// in stable concept order.
		var rootConcepts []string
		for concept, n := range tree.byConcept {
			if !hasParent[n] {
				rootConcepts = append(rootConcepts, concept)
			}
		}
		sort.Strings(rootConcepts)
		for _, concept := range rootConcepts {
			tree.Roots = append(tree.Roots, tree.byConcept[concept])
		}

		p.trees[role] = tree
		p.order = append(p.order, role)
	}
	return p, nil
}

// Tree returns the presentation tree for a role, accepting either the full
// role URI or its short form ("CashFlow"). Returns nil when the linkbase
// declares no tree for the role.
func (p *Presentation) Tree(role string) *PresentationTree {
	if t, ok := p.trees[role]; ok {
		return t
	}
	for _, roleURI := range p.order {
		if strings.EqualFold(shortRole(roleURI), role) {
			return p.trees[roleURI]
		}
	}
	return nil
}

// Roles lists the role URIs in document order.
func (p *Presentation) Roles() []string {
	return p.order
}

// PreferredLabel returns the preferred-label reference declared for a
// concept under a role, or "" when none is declared.
func (p *Presentation) PreferredLabel(role, concept string) string {
	t := p.Tree(role)
	if t == nil {
		return ""
	}
	if n, ok := t.byConcept[normalizeConcept(concept)]; ok {
		return n.PreferredLabel
	}
	return ""
}

// Node returns the tree node for a concept within this tree.
func (t *PresentationTree) Node(concept string) *PresentationNode {
	return t.byConcept[normalizeConcept(concept)]
}

// Walk visits every node depth-first in display order.
func (t *PresentationTree) Walk(visit func(n *PresentationNode, depth int)) {
	var walk func(n *PresentationNode, depth int)
	walk = func(n *PresentationNode, depth int) {
		visit(n, depth)
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	for _, root := range t.Roots {
		walk(root, 0)
	}
}
