// Package ingest: full-text submission package download with local caching.
package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"filing_parser/pkg/core/filings"
	"filing_parser/pkg/core/sgml"
)

// PackageFetcher downloads full-text submission packages (.txt) from SEC
// Archives and caches them on disk. The same size ceiling the scanner
// enforces applies at download time, so an oversized response is rejected
// before it is buffered whole.
type PackageFetcher struct {
	client   *EDGARClient
	cacheDir string // empty disables caching
	maxSize  int64
}

// NewPackageFetcher creates a fetcher sharing the client's configuration.
func NewPackageFetcher(client *EDGARClient) *PackageFetcher {
	return &PackageFetcher{
		client:   client,
		cacheDir: client.cfg.CacheDir,
		maxSize:  client.cfg.MaxPackageSize,
	}
}

// FetchPackage downloads the full-text submission for an accession number
// and returns the raw package text. Cached copies are returned without a
// network round trip.
func (f *PackageFetcher) FetchPackage(ctx context.Context, cik, accession string) (string, error) {
	if cached, ok := f.readCache(cik, accession); ok {
		return cached, nil
	}

	url := f.client.packageURL(strings.TrimLeft(cik, "0"), accession)
	raw, err := f.download(ctx, url)
	if err != nil {
		return "", err
	}

	f.writeCache(cik, accession, raw)
	return raw, nil
}

// FetchFiling downloads and scans a submission package in one step.
func (f *PackageFetcher) FetchFiling(ctx context.Context, cik, accession string) (*filings.Filing, error) {
	raw, err := f.FetchPackage(ctx, cik, accession)
	if err != nil {
		return nil, err
	}
	return filings.OpenWithOptions(raw, sgml.ScanOptions{MaxPackageSize: int(f.maxSize)})
}

// download streams the response up to the size ceiling. Reading one byte
// past the limit distinguishes "exactly at the limit" from "over it".
func (f *PackageFetcher) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.client.cfg.UserAgent)
	req.Header.Set("Accept", "text/plain")

	resp, err := f.client.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("package download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("SEC returned status %d for %s", resp.StatusCode, url)
	}

	if resp.ContentLength > f.maxSize {
		return "", &sgml.InputTooLargeError{Size: int(resp.ContentLength), Limit: int(f.maxSize)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read package body: %w", err)
	}
	if int64(len(body)) > f.maxSize {
		return "", &sgml.InputTooLargeError{Size: len(body), Limit: int(f.maxSize)}
	}
	return string(body), nil
}

func (f *PackageFetcher) cachePath(cik, accession string) string {
	key := fmt.Sprintf("%s_%s.txt", strings.TrimLeft(cik, "0"), strings.ReplaceAll(accession, "-", ""))
	return filepath.Join(f.cacheDir, "packages", key)
}

func (f *PackageFetcher) readCache(cik, accession string) (string, bool) {
	if f.cacheDir == "" {
		return "", false
	}
	content, err := os.ReadFile(f.cachePath(cik, accession))
	if err != nil {
		return "", false
	}
	return string(content), true
}

func (f *PackageFetcher) writeCache(cik, accession, raw string) {
	if f.cacheDir == "" {
		return
	}
	path := f.cachePath(cik, accession)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return
	}
	os.WriteFile(path, []byte(raw), 0644)
}
