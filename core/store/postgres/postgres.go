// Package postgres is the production document store: a database/sql handle
// over github.com/lib/pq, keyed by URN, with the URL kept as a secondary
// index (spec.md §9's resolved Open Question). It is adapted from
// relabs-tech/kurbisio's core/csql (schema-scoped connection setup) and
// core/registry (key/value-over-Postgres upsert pattern).
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goccy/go-json"
	_ "github.com/lib/pq" // load database driver for postgres

	"github.com/relabs-tech/ghcrawler/core/crawlererr"
	"github.com/relabs-tech/ghcrawler/core/document"
	"github.com/relabs-tech/ghcrawler/core/logger"
	"github.com/relabs-tech/ghcrawler/core/store"
	"github.com/relabs-tech/ghcrawler/core/urn"
)

// Store is a Postgres-backed store.Store.
type Store struct {
	db     *sql.DB
	schema string
}

// Open connects to Postgres with the given DSN and password, creating the
// schema and the crawler's one table if they do not exist yet. schema
// defaults to "public" if empty.
func Open(dataSourceName, dataSourcePassword, schema string) (*Store, error) {
	logger.Default().Infoln("connecting to postgres database:", dataSourceName)
	db, err := sql.Open("postgres", fmt.Sprintf("%s password=%s", dataSourceName, dataSourcePassword))
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if schema == "" {
		schema = "public"
	} else {
		if _, err := db.Exec(`CREATE schema IF NOT EXISTS ` + schema + `;`); err != nil {
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}
	s := &Store{db: db, schema: schema}
	if err := s.createTable(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) createTable() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS ` + s.schema + `."documents" (
urn varchar NOT NULL PRIMARY KEY,
url varchar NOT NULL,
type varchar NOT NULL,
version int NOT NULL,
etag varchar NOT NULL DEFAULT '',
body json NOT NULL,
processed_at timestamp NOT NULL,
UNIQUE(url)
);`)
	if err != nil {
		return fmt.Errorf("creating documents table: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(ctx context.Context, urnKey urn.URN) (*document.Document, error) {
	return s.scanOne(ctx, `SELECT body FROM `+s.schema+`."documents" WHERE urn=$1;`, string(urnKey))
}

func (s *Store) GetByURL(ctx context.Context, url string) (*document.Document, error) {
	return s.scanOne(ctx, `SELECT body FROM `+s.schema+`."documents" WHERE url=$1;`, url)
}

func (s *Store) scanOne(ctx context.Context, query string, arg string) (*document.Document, error) {
	var raw json.RawMessage
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres store: %w: %s", crawlererr.ErrStoreUnavailable, err.Error())
	}
	var doc document.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("postgres store: decoding document: %w", err)
	}
	return &doc, nil
}

func (s *Store) Etag(ctx context.Context, urnKey urn.URN) (string, error) {
	var etag string
	err := s.db.QueryRowContext(ctx, `SELECT etag FROM `+s.schema+`."documents" WHERE urn=$1;`, string(urnKey)).Scan(&etag)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("postgres store: %w: %s", crawlererr.ErrStoreUnavailable, err.Error())
	}
	return etag, nil
}

func (s *Store) Upsert(ctx context.Context, doc *document.Document) error {
	self := doc.SelfHref()
	if self == "" {
		return fmt.Errorf("postgres store: cannot upsert a document with no self link")
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("postgres store: encoding document: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO `+s.schema+`."documents" (urn, url, type, version, etag, body, processed_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (urn) DO UPDATE SET
  url=$2, type=$3, version=$4, etag=$5, body=$6, processed_at=$7;
`,
		string(self), doc.Metadata.URL, doc.Metadata.Type, doc.Metadata.Version, doc.Metadata.Etag,
		string(body), doc.Metadata.ProcessedAt)
	if err != nil {
		return fmt.Errorf("postgres store: %w: %s", crawlererr.ErrStoreUnavailable, err.Error())
	}
	return nil
}

func (s *Store) List(ctx context.Context, entityType string) ([]store.Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT urn, url, type, version, processed_at FROM `+s.schema+`."documents" WHERE type=$1;`, entityType)
	if err != nil {
		return nil, fmt.Errorf("postgres store: %w: %s", crawlererr.ErrStoreUnavailable, err.Error())
	}
	defer rows.Close()

	var out []store.Summary
	for rows.Next() {
		var sum store.Summary
		var urnStr string
		if err := rows.Scan(&urnStr, &sum.URL, &sum.Type, &sum.Version, &sum.UpdatedAt); err != nil {
			return nil, fmt.Errorf("postgres store: scanning summary: %w", err)
		}
		sum.URN = urn.URN(urnStr)
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *Store) Delete(ctx context.Context, urnKey urn.URN) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM `+s.schema+`."documents" WHERE urn=$1;`, string(urnKey))
	if err != nil {
		return fmt.Errorf("postgres store: %w: %s", crawlererr.ErrStoreUnavailable, err.Error())
	}
	return nil
}

func (s *Store) Count(ctx context.Context, entityType string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM `+s.schema+`."documents" WHERE type=$1;`, entityType).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("postgres store: %w: %s", crawlererr.ErrStoreUnavailable, err.Error())
	}
	return n, nil
}

var _ store.Store = (*Store)(nil)
