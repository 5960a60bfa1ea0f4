package filings

import (
	"strings"
	"testing"

	"filing_parser/pkg/core/header"
	"filing_parser/pkg/core/xbrl"
)

const testInstanceXML = `<?xml version="1.0" encoding="utf-8"?>
<xbrl xmlns="http://www.xbrl.org/2003/instance"
      xmlns:us-gaap="http://fasb.org/us-gaap/2024"
      xmlns:iso4217="http://www.xbrl.org/2003/iso4217">
  <context id="FY2024">
    <entity><identifier scheme="http://www.sec.gov/CIK">0000320193</identifier></entity>
    <period><startDate>2023-10-01</startDate><endDate>2024-09-28</endDate></period>
  </context>
  <unit id="usd"><measure>iso4217:USD</measure></unit>
  <us-gaap:PaymentsOfDividends contextRef="FY2024" unitRef="usd" decimals="-6">12769000000</us-gaap:PaymentsOfDividends>
</xbrl>`

const testSchemaXML = `<?xml version="1.0" encoding="utf-8"?>
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:xbrli="http://www.xbrl.org/2003/instance">
  <xsd:element id="us-gaap_PaymentsOfDividends" name="PaymentsOfDividends" xbrli:balance="credit" xbrli:periodType="duration"/>
  <xsd:element id="us-gaap_FinancingAbstract" name="FinancingAbstract" abstract="true"/>
</xsd:schema>`

const testCalcXML = `<?xml version="1.0" encoding="utf-8"?>
<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase" xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:calculationLink xlink:role="http://www.apple.com/role/CashFlow">
    <link:loc xlink:label="loc_Abstract" xlink:href="t.xsd#us-gaap_FinancingAbstract"/>
    <link:loc xlink:label="loc_Div" xlink:href="t.xsd#us-gaap_PaymentsOfDividends"/>
    <link:calculationArc xlink:from="loc_Abstract" xlink:to="loc_Div" weight="-1.0" order="1"/>
  </link:calculationLink>
</link:linkbase>`

const testPresXML = `<?xml version="1.0" encoding="utf-8"?>
<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase" xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:presentationLink xlink:role="http://www.apple.com/role/CashFlow">
    <link:loc xlink:label="loc_Abstract" xlink:href="t.xsd#us-gaap_FinancingAbstract"/>
    <link:loc xlink:label="loc_Div" xlink:href="t.xsd#us-gaap_PaymentsOfDividends"/>
    <link:presentationArc xlink:from="loc_Abstract" xlink:to="loc_Div" order="1" preferredLabel="negatedLabel"/>
  </link:presentationLink>
</link:linkbase>`

// buildPackage assembles a synthetic full-text submission.
func buildPackage() string {
	var b strings.Builder
	b.WriteString("<SEC-DOCUMENT>0000320193-24-000123.txt : 20241101\n")
	b.WriteString("<SEC-HEADER>0000320193-24-000123.hdr.sgml : 20241101\n")
	b.WriteString("ACCESSION NUMBER:\t\t0000320193-24-000123\n")
	b.WriteString("CONFORMED SUBMISSION TYPE:\t10-K\n")
	b.WriteString("FILED AS OF DATE:\t\t20241101\n\n")
	b.WriteString("FILER:\n\n\tCOMPANY DATA:\n")
	b.WriteString("\t\tCOMPANY CONFORMED NAME:\t\t\tAPPLE INC\n")
	b.WriteString("\t\tCENTRAL INDEX KEY:\t\t\t0000320193\n")
	b.WriteString("</SEC-HEADER>\n")

	writeDoc := func(docType, seq, filename, content string) {
		b.WriteString("<DOCUMENT>\n<TYPE>")
		b.WriteString(docType)
		b.WriteString("\n<SEQUENCE>")
		b.WriteString(seq)
		b.WriteString("\n<FILENAME>")
		b.WriteString(filename)
		b.WriteString("\n<TEXT>\n")
		b.WriteString(content)
		b.WriteString("\n</TEXT>\n</DOCUMENT>\n")
	}

	writeDoc("10-K", "1", "aapl-20240928.htm", "<html><body>primary document</body></html>")
	writeDoc("EX-101.INS", "2", "aapl-20240928.xml", testInstanceXML)
	writeDoc("EX-101.SCH", "3", "aapl-20240928.xsd", testSchemaXML)
	writeDoc("EX-101.CAL", "4", "aapl-20240928_cal.xml", testCalcXML)
	writeDoc("EX-101.PRE", "5", "aapl-20240928_pre.xml", testPresXML)
	b.WriteString("</SEC-DOCUMENT>\n")
	return b.String()
}

func TestFiling_Documents(t *testing.T) {
	f, err := Open(buildPackage())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if len(f.Documents()) != 5 {
		t.Fatalf("expected 5 documents, got %d", len(f.Documents()))
	}
	if len(f.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", f.Warnings())
	}
}

func TestFiling_Header(t *testing.T) {
	f, err := Open(buildPackage())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	h := f.Header()
	if h.Dialect != header.DialectLegacy {
		t.Errorf("Dialect = %q", h.Dialect)
	}
	if h.Accession != "0000320193-24-000123" {
		t.Errorf("Accession = %q", h.Accession)
	}
	if h.CompanyName != "APPLE INC" {
		t.Errorf("CompanyName = %q", h.CompanyName)
	}
	if h.FormType != "10-K" {
		t.Errorf("FormType = %q", h.FormType)
	}
}

func TestFiling_Statement(t *testing.T) {
	f, err := Open(buildPackage())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	stmt, err := f.Statement("CashFlow")
	if err != nil {
		t.Fatalf("Statement failed: %v", err)
	}

	var item *xbrl.StatementLineItem
	for i := range stmt.LineItems {
		if stmt.LineItems[i].Concept == "us-gaap:PaymentsOfDividends" {
			item = &stmt.LineItems[i]
		}
	}
	if item == nil {
		t.Fatal("PaymentsOfDividends missing from statement")
	}
	if item.Values["2024"].NumericVal != 12769000000 {
		t.Errorf("value = %v", item.Values["2024"].NumericVal)
	}
	if item.Balance != xbrl.BalanceCredit {
		t.Errorf("balance = %q", item.Balance)
	}
	if item.Weight == nil || *item.Weight != -1.0 {
		t.Errorf("weight = %v", item.Weight)
	}
	if item.Sign["2024"] != xbrl.SignNegative {
		t.Errorf("sign = %d", item.Sign["2024"])
	}
}

func TestFiling_XBRLMemoized(t *testing.T) {
	f, err := Open(buildPackage())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	first, err := f.XBRL()
	if err != nil {
		t.Fatalf("XBRL failed: %v", err)
	}
	second, err := f.XBRL()
	if err != nil {
		t.Fatalf("XBRL failed: %v", err)
	}
	if first != second {
		t.Error("XBRL data not memoized")
	}
}

func TestFiling_MissingInstance(t *testing.T) {
	pkg := "<DOCUMENT>\n<TYPE>10-K\n<SEQUENCE>1\n<FILENAME>a.htm\n<TEXT>\n<html></html>\n</TEXT>\n</DOCUMENT>\n"
	f, err := Open(pkg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := f.XBRL(); err == nil {
		t.Error("expected error when the filing has no instance document")
	}
}
