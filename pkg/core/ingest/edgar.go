// Package ingest provides SEC EDGAR API integration: company submission
// metadata, ticker lookup, and full-text submission package download.
// API Documentation: https://www.sec.gov/developer
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// SEC EDGAR API endpoints
	SECSubmissionsURL    = "https://data.sec.gov/submissions/CIK%s.json"
	SECArchiveURL        = "https://www.sec.gov/Archives/edgar/data/%s/%s"
	SECCompanyTickersURL = "https://www.sec.gov/files/company_tickers.json"
)

// =============================================================================
// SEC EDGAR DATA TYPES
// =============================================================================

// SECCompanyInfo represents the top-level company submission response.
type SECCompanyInfo struct {
	CIK            string     `json:"cik"`
	EntityType     string     `json:"entityType"`
	SIC            string     `json:"sic"`
	SICDescription string     `json:"sicDescription"`
	Name           string     `json:"name"`
	Tickers        []string   `json:"tickers"`
	Exchanges      []string   `json:"exchanges"`
	Filings        SECFilings `json:"filings"`
}

// SECFilings contains recent and older filing lists.
type SECFilings struct {
	Recent SECRecentFilings `json:"recent"`
}

// SECRecentFilings holds arrays of filing attributes (parallel arrays).
type SECRecentFilings struct {
	AccessionNumber []string `json:"accessionNumber"` // e.g., "0000320193-24-000123"
	FilingDate      []string `json:"filingDate"`      // e.g., "2024-11-01"
	ReportDate      []string `json:"reportDate"`      // Fiscal period end
	Form            []string `json:"form"`            // "10-K", "10-Q", "4"
	PrimaryDocument []string `json:"primaryDocument"` // filename
	Size            []int    `json:"size"`            // bytes
}

// FilingRef represents a single SEC filing (denormalized from parallel arrays).
type FilingRef struct {
	AccessionNumber string    `json:"accession_number"`
	FilingDate      time.Time `json:"filing_date"`
	ReportDate      time.Time `json:"report_date"`
	FormType        string    `json:"form_type"`
	PrimaryDocument string    `json:"primary_document"`
	Size            int       `json:"size"`
	PackageURL      string    `json:"package_url"` // full-text submission (.txt)
}

// =============================================================================
// SEC EDGAR CLIENT
// =============================================================================

// EDGARClient handles SEC EDGAR API requests.
type EDGARClient struct {
	httpClient *http.Client
	cfg        ClientConfig

	// Endpoint templates, overridable so tests can point at a local server.
	submissionsURL string
	archiveURL     string
	tickersURL     string
}

// NewEDGARClient creates an EDGAR client. Zero-value config fields fall back
// to defaults.
func NewEDGARClient(cfg ClientConfig) *EDGARClient {
	cfg.applyDefaults()
	return &EDGARClient{
		httpClient:     &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		cfg:            cfg,
		submissionsURL: SECSubmissionsURL,
		archiveURL:     SECArchiveURL,
		tickersURL:     SECCompanyTickersURL,
	}
}

// FetchCompanyInfo retrieves company submission data from SEC EDGAR.
//
// CIK is zero-padded to 10 digits automatically.
func (c *EDGARClient) FetchCompanyInfo(ctx context.Context, cik string) (*SECCompanyInfo, error) {
	url := fmt.Sprintf(c.submissionsURL, PadCIK(cik))

	body, err := c.get(ctx, url, "application/json")
	if err != nil {
		return nil, err
	}

	var info SECCompanyInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse SEC response: %w", err)
	}
	return &info, nil
}

// GetFilings extracts and returns filings filtered by form type.
//
// formTypes: "10-K", "10-Q", "4", etc. Pass nil for all types.
// limit: Maximum number of filings to return (0 = no limit).
func (c *EDGARClient) GetFilings(info *SECCompanyInfo, formTypes []string, limit int) []FilingRef {
	recent := info.Filings.Recent
	filings := make([]FilingRef, 0)

	formTypeSet := make(map[string]bool)
	for _, ft := range formTypes {
		formTypeSet[ft] = true
	}

	// The parallel arrays should be equal length, but a ragged response must
	// not panic; index only up to the shortest.
	n := len(recent.AccessionNumber)
	for _, l := range []int{len(recent.FilingDate), len(recent.ReportDate), len(recent.Form), len(recent.PrimaryDocument), len(recent.Size)} {
		if l < n {
			n = l
		}
	}

	for i := 0; i < n; i++ {
		if len(formTypes) > 0 && !formTypeSet[recent.Form[i]] {
			continue
		}

		filingDate, _ := time.Parse("2006-01-02", recent.FilingDate[i])
		reportDate, _ := time.Parse("2006-01-02", recent.ReportDate[i])

		filings = append(filings, FilingRef{
			AccessionNumber: recent.AccessionNumber[i],
			FilingDate:      filingDate,
			ReportDate:      reportDate,
			FormType:        recent.Form[i],
			PrimaryDocument: recent.PrimaryDocument[i],
			Size:            recent.Size[i],
			PackageURL:      c.packageURL(info.CIK, recent.AccessionNumber[i]),
		})

		if limit > 0 && len(filings) >= limit {
			break
		}
	}

	return filings
}

// packageURL constructs the full-text submission download URL.
// Format: https://www.sec.gov/Archives/edgar/data/{cik}/{acc-no-dashes}/{accession}.txt
func (c *EDGARClient) packageURL(cik, accession string) string {
	noDashes := strings.ReplaceAll(accession, "-", "")
	return fmt.Sprintf(c.archiveURL, strings.TrimLeft(cik, "0"), noDashes+"/"+accession+".txt")
}

// LookupCIKByTicker finds the CIK for a given ticker symbol using the SEC
// ticker mapping file.
func (c *EDGARClient) LookupCIKByTicker(ctx context.Context, ticker string) (string, error) {
	body, err := c.get(ctx, c.tickersURL, "application/json")
	if err != nil {
		return "", fmt.Errorf("failed to fetch ticker mapping: %w", err)
	}

	// Response structure: { "0": {"cik_str": 320193, "ticker": "AAPL", "title": "..."}, ... }
	var mapping map[string]struct {
		CIK    int    `json:"cik_str"`
		Ticker string `json:"ticker"`
		Title  string `json:"title"`
	}
	if err := json.Unmarshal(body, &mapping); err != nil {
		return "", fmt.Errorf("failed to parse ticker mapping: %w", err)
	}

	ticker = strings.ToUpper(ticker)
	for _, entry := range mapping {
		if entry.Ticker == ticker {
			return fmt.Sprintf("%010d", entry.CIK), nil
		}
	}
	return "", fmt.Errorf("ticker %s not found in SEC database", ticker)
}

// get performs a GET with the SEC-required User-Agent header.
func (c *EDGARClient) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("SEC request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SEC returned status %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// PadCIK zero-pads a CIK to the 10 digits the submissions API expects.
func PadCIK(cik string) string {
	return fmt.Sprintf("%010s", strings.TrimLeft(cik, "0"))
}
