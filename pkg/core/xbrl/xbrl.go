package xbrl

import (
	"fmt"
	"sync"
)

// XBRLData bundles the three parsed sources for one filing.
type XBRLData struct {
	Instance     *Instance
	Catalog      *Catalog
	Presentation *Presentation

	assembler *Assembler
}

// Parse parses the instance document, schema, calculation linkbase, and
// presentation linkbase of one filing. The three loaders share no mutable
// state, so they run concurrently; the calculation or presentation linkbase
// may be empty (some filings omit them) but instance and schema content is
// required.
func Parse(instanceXML, schemaXML, calcXML, presXML string) (*XBRLData, error) {
	var (
		wg       sync.WaitGroup
		instance *Instance
		elements map[string]ElementDefinition
		edges    map[string][]CalculationEdge
		pres     *Presentation

		instErr, elemErr, calcErr, presErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		instance, instErr = ParseInstance(instanceXML)
	}()
	go func() {
		defer wg.Done()
		elements, elemErr = ParseElements(schemaXML)
		if elemErr == nil {
			edges, calcErr = ParseCalculation(calcXML)
		}
	}()
	go func() {
		defer wg.Done()
		pres, presErr = ParsePresentation(presXML)
	}()
	wg.Wait()

	for _, err := range []error{instErr, elemErr, calcErr, presErr} {
		if err != nil {
			return nil, fmt.Errorf("failed to load XBRL data: %w", err)
		}
	}

	data := &XBRLData{
		Instance:     instance,
		Catalog:      NewCatalog(elements, edges),
		Presentation: pres,
	}
	data.assembler = NewAssembler(data.Instance, data.Catalog, data.Presentation)
	return data, nil
}

// Statement assembles the line items for a role.
func (x *XBRLData) Statement(role string) (*Statement, error) {
	return x.assembler.Statement(role)
}

// Roles lists the presentation roles available for assembly.
func (x *XBRLData) Roles() []string {
	return x.Presentation.Roles()
}
