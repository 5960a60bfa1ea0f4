package store

import (
	"context"
	"testing"

	"filing_parser/pkg/core/xbrl"
)

func sampleStatement() *xbrl.Statement {
	weight := -1.0
	return &xbrl.Statement{
		Role: "http://www.apple.com/role/CashFlow",
		LineItems: []xbrl.StatementLineItem{
			{
				Concept: "us-gaap:PaymentsOfDividends",
				Label:   "PaymentsOfDividends",
				Depth:   1,
				Balance: xbrl.BalanceCredit,
				Weight:  &weight,
				Values: map[string]xbrl.Fact{
					"2024": {
						Concept:    "us-gaap:PaymentsOfDividends",
						Value:      "12769000000",
						NumericVal: 12769000000,
						IsNumeric:  true,
						ContextRef: "FY2024",
						UnitRef:    "usd",
					},
				},
				Sign: map[string]xbrl.PresentationSign{"2024": xbrl.SignNegative},
			},
		},
	}
}

func sampleMeta() FilingMeta {
	return FilingMeta{
		CIK:             "0000320193",
		CompanyName:     "Apple Inc.",
		FormType:        "10-K",
		AccessionNumber: "0000320193-24-000123",
		FilingDate:      "2024-11-01",
	}
}

func TestStatementCache_SaveAndGet(t *testing.T) {
	cache := NewStatementCache(nil, t.TempDir())
	ctx := context.Background()

	if err := cache.Save(ctx, sampleMeta(), sampleStatement()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := cache.Get(ctx, "0000320193-24-000123", "http://www.apple.com/role/CashFlow")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("cache miss after save")
	}
	if len(got.LineItems) != 1 {
		t.Fatalf("line items = %d, want 1", len(got.LineItems))
	}
	item := got.LineItems[0]
	if item.Values["2024"].Value != "12769000000" {
		t.Errorf("value = %q", item.Values["2024"].Value)
	}
	if item.Sign["2024"] != xbrl.SignNegative {
		t.Errorf("sign = %d, want -1", item.Sign["2024"])
	}
	if item.Weight == nil || *item.Weight != -1.0 {
		t.Errorf("weight = %v", item.Weight)
	}
}

func TestStatementCache_Miss(t *testing.T) {
	cache := NewStatementCache(nil, t.TempDir())

	got, err := cache.Get(context.Background(), "0000000000-00-000000", "CashFlow")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Error("expected cache miss")
	}
}

func TestStatementCache_Exists(t *testing.T) {
	cache := NewStatementCache(nil, t.TempDir())
	ctx := context.Background()

	if cache.Exists(ctx, "0000320193-24-000123", "http://www.apple.com/role/CashFlow") {
		t.Error("Exists true before save")
	}
	if err := cache.Save(ctx, sampleMeta(), sampleStatement()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !cache.Exists(ctx, "0000320193-24-000123", "http://www.apple.com/role/CashFlow") {
		t.Error("Exists false after save")
	}
}

func TestStatementCache_GetByCIK(t *testing.T) {
	cache := NewStatementCache(nil, t.TempDir())
	ctx := context.Background()

	if err := cache.Save(ctx, sampleMeta(), sampleStatement()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Short-form role against the stored full URI.
	got, err := cache.GetByCIK(ctx, "0000320193", "CashFlow")
	if err != nil {
		t.Fatalf("GetByCIK failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected a hit by CIK and short role")
	}

	got, err = cache.GetByCIK(ctx, "0000000000", "CashFlow")
	if err != nil {
		t.Fatalf("GetByCIK failed: %v", err)
	}
	if got != nil {
		t.Error("expected miss for unknown CIK")
	}
}

func TestIsAmendedForm(t *testing.T) {
	cases := map[string]bool{
		"10-K/A": true,
		"10-Q/a": true,
		"10-K":   false,
		"10-KA":  false,
		"4":      false,
	}
	for form, want := range cases {
		if got := isAmendedForm(form); got != want {
			t.Errorf("isAmendedForm(%q) = %v, want %v", form, got, want)
		}
	}
}
