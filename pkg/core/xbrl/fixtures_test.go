package xbrl

// Shared fixtures modeled on Apple's FY2024 10-K XBRL data files, trimmed to
// the concepts the tests exercise.

const testInstance = `<?xml version="1.0" encoding="utf-8"?>
<xbrl xmlns="http://www.xbrl.org/2003/instance"
      xmlns:us-gaap="http://fasb.org/us-gaap/2024"
      xmlns:dei="http://xbrl.sec.gov/dei/2024"
      xmlns:srt="http://fasb.org/srt/2024"
      xmlns:xbrldi="http://xbrl.org/2006/xbrldi"
      xmlns:iso4217="http://www.xbrl.org/2003/iso4217">
  <context id="FY2024">
    <entity>
      <identifier scheme="http://www.sec.gov/CIK">0000320193</identifier>
    </entity>
    <period>
      <startDate>2023-10-01</startDate>
      <endDate>2024-09-28</endDate>
    </period>
  </context>
  <context id="FY2023">
    <entity>
      <identifier scheme="http://www.sec.gov/CIK">0000320193</identifier>
    </entity>
    <period>
      <startDate>2022-10-02</startDate>
      <endDate>2023-09-30</endDate>
    </period>
  </context>
  <context id="AsOf2024">
    <entity>
      <identifier scheme="http://www.sec.gov/CIK">0000320193</identifier>
    </entity>
    <period>
      <instant>2024-09-28</instant>
    </period>
  </context>
  <context id="FY2024_Americas">
    <entity>
      <identifier scheme="http://www.sec.gov/CIK">0000320193</identifier>
      <segment>
        <xbrldi:explicitMember dimension="srt:StatementGeographicalAxis">srt:AmericasMember</xbrldi:explicitMember>
      </segment>
    </entity>
    <period>
      <startDate>2023-10-01</startDate>
      <endDate>2024-09-28</endDate>
    </period>
  </context>
  <unit id="usd">
    <measure>iso4217:USD</measure>
  </unit>
  <dei:EntityRegistrantName contextRef="FY2024">Apple Inc.</dei:EntityRegistrantName>
  <us-gaap:PaymentsOfDividends contextRef="FY2024" unitRef="usd" decimals="-6">12769000000</us-gaap:PaymentsOfDividends>
  <us-gaap:PaymentsOfDividends contextRef="FY2023" unitRef="usd" decimals="-6">15025000000</us-gaap:PaymentsOfDividends>
  <us-gaap:PaymentsOfDividends contextRef="FY2024_Americas" unitRef="usd" decimals="-6">7000000000</us-gaap:PaymentsOfDividends>
  <us-gaap:NetIncomeLoss contextRef="FY2024" unitRef="usd" decimals="-6">93736000000</us-gaap:NetIncomeLoss>
  <us-gaap:NetCashProvidedByUsedInFinancingActivities contextRef="FY2024" unitRef="usd" decimals="-6">-121983000000</us-gaap:NetCashProvidedByUsedInFinancingActivities>
  <us-gaap:Assets contextRef="AsOf2024" unitRef="usd" decimals="-6">364980000000</us-gaap:Assets>
</xbrl>`

const testSchema = `<?xml version="1.0" encoding="utf-8"?>
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema"
            xmlns:xbrli="http://www.xbrl.org/2003/instance"
            targetNamespace="http://fasb.org/us-gaap/2024">
  <xsd:element id="us-gaap_PaymentsOfDividends" name="PaymentsOfDividends"
               type="xbrli:monetaryItemType" substitutionGroup="xbrli:item"
               xbrli:balance="credit" xbrli:periodType="duration" abstract="false"/>
  <xsd:element id="us-gaap_NetIncomeLoss" name="NetIncomeLoss"
               type="xbrli:monetaryItemType" substitutionGroup="xbrli:item"
               xbrli:balance="credit" xbrli:periodType="duration" abstract="false"/>
  <xsd:element id="us-gaap_Assets" name="Assets"
               type="xbrli:monetaryItemType" substitutionGroup="xbrli:item"
               xbrli:balance="debit" xbrli:periodType="instant" abstract="false"/>
  <xsd:element id="us-gaap_NetCashProvidedByUsedInFinancingActivities" name="NetCashProvidedByUsedInFinancingActivities"
               type="xbrli:monetaryItemType" substitutionGroup="xbrli:item"
               xbrli:periodType="duration" abstract="false"/>
  <xsd:element id="us-gaap_CashFlowAbstract" name="CashFlowAbstract"
               substitutionGroup="xbrli:item" abstract="true"/>
</xsd:schema>`

const testCalculation = `<?xml version="1.0" encoding="utf-8"?>
<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase"
               xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:calculationLink xlink:type="extended" xlink:role="http://www.apple.com/role/CashFlow">
    <link:loc xlink:type="locator" xlink:label="loc_NetCashFin" xlink:href="aapl-20240928.xsd#us-gaap_NetCashProvidedByUsedInFinancingActivities"/>
    <link:loc xlink:type="locator" xlink:label="loc_Dividends" xlink:href="aapl-20240928.xsd#us-gaap_PaymentsOfDividends"/>
    <link:calculationArc xlink:type="arc" xlink:from="loc_NetCashFin" xlink:to="loc_Dividends" weight="-1.0" order="1"/>
  </link:calculationLink>
  <link:calculationLink xlink:type="extended" xlink:role="http://www.apple.com/role/Supplemental">
    <link:loc xlink:type="locator" xlink:label="loc_Assets" xlink:href="aapl-20240928.xsd#us-gaap_Assets"/>
    <link:loc xlink:type="locator" xlink:label="loc_Dividends" xlink:href="aapl-20240928.xsd#us-gaap_PaymentsOfDividends"/>
    <link:calculationArc xlink:type="arc" xlink:from="loc_Assets" xlink:to="loc_Dividends" weight="1.0" order="1"/>
  </link:calculationLink>
</link:linkbase>`

const testPresentation = `<?xml version="1.0" encoding="utf-8"?>
<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase"
               xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:presentationLink xlink:type="extended" xlink:role="http://www.apple.com/role/CashFlow">
    <link:loc xlink:type="locator" xlink:label="loc_Abstract" xlink:href="aapl-20240928.xsd#us-gaap_CashFlowAbstract"/>
    <link:loc xlink:type="locator" xlink:label="loc_NetIncome" xlink:href="aapl-20240928.xsd#us-gaap_NetIncomeLoss"/>
    <link:loc xlink:type="locator" xlink:label="loc_Dividends" xlink:href="aapl-20240928.xsd#us-gaap_PaymentsOfDividends"/>
    <link:loc xlink:type="locator" xlink:label="loc_NetCashFin" xlink:href="aapl-20240928.xsd#us-gaap_NetCashProvidedByUsedInFinancingActivities"/>
    <link:presentationArc xlink:type="arc" xlink:from="loc_Abstract" xlink:to="loc_NetIncome" order="1" preferredLabel="http://www.xbrl.org/2003/role/terseLabel"/>
    <link:presentationArc xlink:type="arc" xlink:from="loc_Abstract" xlink:to="loc_Dividends" order="2" preferredLabel="http://www.xbrl.org/2003/role/negatedLabel"/>
    <link:presentationArc xlink:type="arc" xlink:from="loc_Abstract" xlink:to="loc_NetCashFin" order="3"/>
  </link:presentationLink>
  <link:presentationLink xlink:type="extended" xlink:role="http://www.apple.com/role/Supplemental">
    <link:loc xlink:type="locator" xlink:label="loc_Assets" xlink:href="aapl-20240928.xsd#us-gaap_Assets"/>
    <link:loc xlink:type="locator" xlink:label="loc_Dividends" xlink:href="aapl-20240928.xsd#us-gaap_PaymentsOfDividends"/>
    <link:presentationArc xlink:type="arc" xlink:from="loc_Assets" xlink:to="loc_Dividends" order="1" preferredLabel="terseLabel"/>
  </link:presentationLink>
</link:linkbase>`
