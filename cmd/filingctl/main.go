// filingctl inspects SEC EDGAR submission packages from the command line.
//
// Usage:
//
//	filingctl parse <package.txt> [role]     parse a local full-text submission
//	filingctl fetch <ticker> [role]          fetch the latest 10-K and parse it
//
// When DATABASE_URL is set, fetch with a role also upserts the assembled
// statement into the Postgres cache.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"filing_parser/pkg/core/filings"
	"filing_parser/pkg/core/ingest"
	"filing_parser/pkg/core/store"
	"filing_parser/pkg/core/xbrl"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	configPath := flag.String("config", "", "path to a YAML client config")
	flag.Parse()
	args := flag.Args()
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: filingctl parse <package.txt> [role] | filingctl fetch <ticker> [role]")
		os.Exit(2)
	}

	role := ""
	if len(args) > 2 {
		role = args[2]
	}

	switch args[0] {
	case "parse":
		raw, err := os.ReadFile(args[1])
		if err != nil {
			log.Fatalf("failed to read package: %v", err)
		}
		filing, err := filings.Open(string(raw))
		if err != nil {
			log.Fatalf("failed to scan package: %v", err)
		}
		report(filing, role)

	case "fetch":
		cfg, err := ingest.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		client := ingest.NewEDGARClient(cfg)

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		cik, err := client.LookupCIKByTicker(ctx, args[1])
		if err != nil {
			log.Fatalf("ticker lookup failed: %v", err)
		}
		info, err := client.FetchCompanyInfo(ctx, cik)
		if err != nil {
			log.Fatalf("company lookup failed: %v", err)
		}
		tenKs := client.GetFilings(info, []string{"10-K"}, 1)
		if len(tenKs) == 0 {
			log.Fatalf("no 10-K filings for %s", args[1])
		}
		fmt.Printf("Fetching %s %s (filed %s)\n",
			info.Name, tenKs[0].AccessionNumber, tenKs[0].FilingDate.Format("2006-01-02"))

		filing, err := ingest.NewPackageFetcher(client).FetchFiling(ctx, cik, tenKs[0].AccessionNumber)
		if err != nil {
			log.Fatalf("fetch failed: %v", err)
		}
		report(filing, role)

		if role != "" && os.Getenv("DATABASE_URL") != "" {
			if err := persistStatement(ctx, filing, role); err != nil {
				log.Printf("Warning: failed to persist statement: %v", err)
			}
		}

	default:
		log.Fatalf("unknown command %q", args[0])
	}
}

func report(filing *filings.Filing, role string) {
	hdr := filing.Header()
	fmt.Printf("Accession:  %s\n", hdr.Accession)
	fmt.Printf("Form:       %s\n", hdr.FormType)
	fmt.Printf("Company:    %s (CIK %s)\n", hdr.CompanyName, hdr.CompanyCIK)
	fmt.Printf("Dialect:    %s\n", hdr.Dialect)
	fmt.Printf("Documents:  %d\n", len(filing.Documents()))
	for _, w := range filing.Warnings() {
		fmt.Printf("Warning:    %s (%s at offset %d)\n", w.Message, w.Code, w.Offset)
	}

	data, err := filing.XBRL()
	if err != nil {
		fmt.Printf("XBRL:       unavailable (%v)\n", err)
		return
	}
	roles := data.Roles()
	fmt.Printf("Roles:      %d\n", len(roles))

	if role == "" {
		for _, r := range roles {
			fmt.Printf("  %s\n", r)
		}
		return
	}

	stmt, err := filing.Statement(role)
	if err != nil {
		log.Fatalf("statement assembly failed: %v", err)
	}
	fmt.Printf("\nStatement %s\n", stmt.Role)
	for _, item := range stmt.LineItems {
		printItem(item)
	}
}

func printItem(item xbrl.StatementLineItem) {
	fmt.Println(formatItem(item))
}

// formatItem renders one statement row with periods in ascending order, so
// output is stable across runs.
func formatItem(item xbrl.StatementLineItem) string {
	var b strings.Builder
	for i := 0; i < item.Depth; i++ {
		b.WriteString("  ")
	}
	b.WriteString(item.Concept)
	if item.Balance != "" {
		fmt.Fprintf(&b, " [%s]", item.Balance)
	}

	periods := make([]string, 0, len(item.Values))
	for period := range item.Values {
		periods = append(periods, period)
	}
	sort.Strings(periods)

	for _, period := range periods {
		sign := ""
		switch item.Sign[period] {
		case xbrl.SignNegative:
			sign = " (negated)"
		case xbrl.SignUndefined:
			sign = " (sign undefined)"
		}
		fmt.Fprintf(&b, "  %s=%s%s", period, item.Values[period].Value, sign)
	}
	return b.String()
}

// persistStatement assembles the requested statement and upserts it into the
// Postgres cache. Called only when DATABASE_URL is configured.
func persistStatement(ctx context.Context, filing *filings.Filing, role string) error {
	if err := store.InitDB(ctx); err != nil {
		return err
	}
	stmt, err := filing.Statement(role)
	if err != nil {
		return err
	}
	hdr := filing.Header()
	cache := store.NewStatementCache(store.GetPool(), "")
	meta := store.FilingMeta{
		CIK:             hdr.CompanyCIK,
		CompanyName:     hdr.CompanyName,
		FormType:        hdr.FormType,
		AccessionNumber: hdr.Accession,
		FilingDate:      hdr.FilingDate,
	}
	if err := cache.Save(ctx, meta, stmt); err != nil {
		return err
	}
	fmt.Printf("Persisted %s %s to the statement cache\n", hdr.Accession, stmt.Role)
	return nil
}
