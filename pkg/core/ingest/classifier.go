package ingest

import (
	"context"
	"fmt"
	"strings"

	"filing_parser/pkg/core/header"
)

// OwnerClassifier resolves reporting-owner entity classes from the SEC
// submissions API. The entityType field distinguishes individuals from
// companies, trusts, and funds.
//
// It satisfies header.Classifier, so a parsed header can defer name
// reversal decisions to live EDGAR data.
type OwnerClassifier struct {
	client *EDGARClient
}

// NewOwnerClassifier wraps an EDGAR client for entity classification.
func NewOwnerClassifier(client *EDGARClient) *OwnerClassifier {
	return &OwnerClassifier{client: client}
}

// Classify fetches the submission record for a CIK and maps its entityType.
// An empty entityType is an error rather than a guess; the caller falls back
// to its own policy.
func (oc *OwnerClassifier) Classify(ctx context.Context, cik string) (header.EntityClass, error) {
	info, err := oc.client.FetchCompanyInfo(ctx, cik)
	if err != nil {
		return header.ClassUnknown, fmt.Errorf("failed to classify CIK %s: %w", cik, err)
	}

	entityType := strings.ToLower(strings.TrimSpace(info.EntityType))
	switch {
	case entityType == "":
		return header.ClassUnknown, fmt.Errorf("no entityType recorded for CIK %s", cik)
	case entityType == "individual":
		return header.ClassIndividual, nil
	default:
		// "operating", "trust", fund types, and everything else EDGAR
		// registers as a non-natural person.
		return header.ClassCompany, nil
	}
}
