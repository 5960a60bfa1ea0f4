package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"filing_parser/pkg/core/xbrl"
)

// StatementCache stores assembled financial statements keyed by accession
// number and role. DB (Primary) + File System (Fallback/Local): when pool is
// nil, entries live as JSON files under fileDir.
type StatementCache struct {
	pool    *pgxpool.Pool
	fileDir string
}

// NewStatementCache creates a statement cache. If pool is nil and dir is
// empty, it defaults to a local .cache directory.
func NewStatementCache(pool *pgxpool.Pool, dir string) *StatementCache {
	if pool == nil && dir == "" {
		dir = filepath.Join(".cache", "edgar", "statements")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("[WARNING] Check StatementCache dir: %v\n", err)
		}
	}
	return &StatementCache{pool: pool, fileDir: dir}
}

// FilingMeta identifies the filing a statement came from.
type FilingMeta struct {
	CIK             string `json:"cik"`
	CompanyName     string `json:"company_name"`
	FormType        string `json:"form_type"`
	AccessionNumber string `json:"accession_number"`
	FilingDate      string `json:"filing_date"`
}

// CacheEntry is the stored record for one assembled statement.
type CacheEntry struct {
	ID              string          `json:"id"`
	CIK             string          `json:"cik"`
	CompanyName     string          `json:"company_name"`
	FormType        string          `json:"form_type"`
	AccessionNumber string          `json:"accession_number"`
	FilingDate      string          `json:"filing_date"`
	IsAmendment     bool            `json:"is_amendment"` // 10-K/A, 10-Q/A
	Role            string          `json:"role"`
	Statement       *xbrl.Statement `json:"statement"`
	CachedAt        time.Time       `json:"cached_at"`
}

// Get retrieves a cached statement by accession number and role.
// A miss returns (nil, nil).
func (c *StatementCache) Get(ctx context.Context, accession, role string) (*xbrl.Statement, error) {
	if c.pool != nil {
		query := `
			SELECT statement
			FROM statement_cache
			WHERE accession_number = $1 AND role = $2
			LIMIT 1
		`
		var dataJSON []byte
		err := c.pool.QueryRow(ctx, query, accession, role).Scan(&dataJSON)
		if err != nil {
			return nil, nil // Cache miss
		}
		var stmt xbrl.Statement
		if err := json.Unmarshal(dataJSON, &stmt); err != nil {
			return nil, fmt.Errorf("failed to unmarshal db cached statement: %w", err)
		}
		return &stmt, nil
	}

	if c.fileDir != "" {
		entry, err := c.loadEntry(c.entryPath(accession, role))
		if err != nil || entry == nil {
			return nil, nil
		}
		return entry.Statement, nil
	}

	return nil, nil
}

// GetByCIK retrieves the most recently cached statement for a CIK and role.
// Without an accession the file fallback scans the cache directory.
func (c *StatementCache) GetByCIK(ctx context.Context, cik, role string) (*xbrl.Statement, error) {
	if c.pool != nil {
		query := `
			SELECT statement
			FROM statement_cache
			WHERE cik = $1 AND role = $2
			ORDER BY created_at DESC
			LIMIT 1
		`
		var dataJSON []byte
		err := c.pool.QueryRow(ctx, query, cik, role).Scan(&dataJSON)
		if err != nil {
			return nil, nil
		}
		var stmt xbrl.Statement
		if err := json.Unmarshal(dataJSON, &stmt); err != nil {
			return nil, fmt.Errorf("failed to unmarshal db cached statement: %w", err)
		}
		return &stmt, nil
	}

	if c.fileDir != "" {
		return c.scanFileCache(cik, role)
	}

	return nil, nil
}

// Save stores an assembled statement under the filing's accession number.
func (c *StatementCache) Save(ctx context.Context, meta FilingMeta, stmt *xbrl.Statement) error {
	dataJSON, err := json.MarshalIndent(stmt, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal statement: %w", err)
	}

	if c.pool != nil {
		query := `
			INSERT INTO statement_cache (
				id, cik, company_name, form_type, accession_number,
				filing_date, role, statement
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (accession_number, role)
			DO UPDATE SET
				statement = EXCLUDED.statement,
				updated_at = NOW()
		`
		_, err = c.pool.Exec(ctx, query,
			uuid.New().String(), meta.CIK, meta.CompanyName, meta.FormType,
			meta.AccessionNumber, meta.FilingDate, stmt.Role, dataJSON,
		)
		if err != nil {
			return fmt.Errorf("failed to save to db cache: %w", err)
		}
	}

	if c.fileDir != "" {
		entry := CacheEntry{
			ID:              uuid.New().String(),
			CIK:             meta.CIK,
			CompanyName:     meta.CompanyName,
			FormType:        meta.FormType,
			AccessionNumber: meta.AccessionNumber,
			FilingDate:      meta.FilingDate,
			IsAmendment:     isAmendedForm(meta.FormType),
			Role:            stmt.Role,
			Statement:       stmt,
			CachedAt:        time.Now(),
		}

		fileBytes, _ := json.MarshalIndent(entry, "", "  ")
		path := c.entryPath(meta.AccessionNumber, stmt.Role)
		if err := os.WriteFile(path, fileBytes, 0644); err != nil {
			return fmt.Errorf("failed to save to file cache: %w", err)
		}
	}

	return nil
}

// Exists checks whether a statement is already cached.
func (c *StatementCache) Exists(ctx context.Context, accession, role string) bool {
	if c.pool != nil {
		query := `SELECT 1 FROM statement_cache WHERE accession_number = $1 AND role = $2 LIMIT 1`
		var exists int
		if err := c.pool.QueryRow(ctx, query, accession, role).Scan(&exists); err == nil {
			return true
		}
	}

	if c.fileDir != "" {
		if _, err := os.Stat(c.entryPath(accession, role)); err == nil {
			return true
		}
	}

	return false
}

// Internal file helpers

func (c *StatementCache) entryPath(accession, role string) string {
	safeAcc := strings.ReplaceAll(accession, "-", "")
	safeRole := sanitizeRole(role)
	return filepath.Join(c.fileDir, safeAcc+"_"+safeRole+".json")
}

// sanitizeRole reduces a role URI to a filename-safe short form.
func sanitizeRole(role string) string {
	if i := strings.LastIndex(role, "/"); i >= 0 {
		role = role[i+1:]
	}
	var b strings.Builder
	for _, r := range role {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func (c *StatementCache) scanFileCache(targetCIK, role string) (*xbrl.Statement, error) {
	files, err := os.ReadDir(c.fileDir)
	if err != nil {
		return nil, nil
	}

	for _, f := range files {
		if filepath.Ext(f.Name()) != ".json" {
			continue
		}
		entry, err := c.loadEntry(filepath.Join(c.fileDir, f.Name()))
		if err != nil || entry == nil {
			continue
		}
		if entry.CIK == targetCIK && roleMatches(entry.Role, role) {
			return entry.Statement, nil
		}
	}
	return nil, nil
}

func roleMatches(stored, requested string) bool {
	if strings.EqualFold(stored, requested) {
		return true
	}
	if i := strings.LastIndex(stored, "/"); i >= 0 {
		return strings.EqualFold(stored[i+1:], requested)
	}
	return false
}

func (c *StatementCache) loadEntry(path string) (*CacheEntry, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, nil // Not found
	}
	var entry CacheEntry
	if err := json.Unmarshal(bytes, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// isAmendedForm checks if a form type is an amendment (e.g., 10-K/A, 10-Q/A)
func isAmendedForm(formType string) bool {
	return strings.HasSuffix(strings.ToUpper(formType), "/A")
}
