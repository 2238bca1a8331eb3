package iostore

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/google/uuid"
	"github.com/huangsam/trendline/internal/contract"
	"github.com/huangsam/trendline/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// SampleStoreImpl handles durable storage of sample maps using various database backends.
type SampleStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	connStr string
}

var _ contract.SampleStore = &SampleStoreImpl{} // Compile-time check

// NewSampleStore opens the store for the backend and migrates its schema to
// the latest version.
func NewSampleStore(backend schema.DatabaseBackend, connStr string) (contract.SampleStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for a disabled backend
		return &SampleStoreImpl{backend: backend, connStr: connStr}, nil
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	if _, err := runMigrations(db, backend, -1); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SampleStoreImpl{db: db, backend: backend, connStr: connStr}, nil
}

// openDB opens and pings the database behind a backend.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL store: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL store: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}
	return db, nil
}

// SaveSeries replaces a series and all of its samples in one transaction.
func (ss *SampleStoreImpl) SaveSeries(name string, samples schema.SampleMap) (string, error) {
	if ss.db == nil {
		return "", ErrStoreDisabled
	}
	if name == "" {
		return "", fmt.Errorf("series name cannot be empty")
	}

	importID := uuid.NewString()
	tx, err := ss.db.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	if err := ss.deleteRows(tx, name); err != nil {
		return "", err
	}

	insertSeries := ss.rebind(fmt.Sprintf(
		"INSERT INTO %s (series_name, import_id, imported_at, sample_count) VALUES (?, ?, ?, ?)",
		ss.table(seriesTable)))
	if _, err := tx.Exec(insertSeries, name, importID, time.Now().Unix(), len(samples)); err != nil {
		return "", fmt.Errorf("failed to record series %s: %w", name, err)
	}

	stmt, err := tx.Prepare(ss.rebind(fmt.Sprintf(
		"INSERT INTO %s (series_name, sample_ts, sample_count) VALUES (?, ?, ?)",
		ss.table(samplesTable))))
	if err != nil {
		return "", err
	}
	defer func() { _ = stmt.Close() }()

	for _, ts := range samples.Timestamps() {
		if _, err := stmt.Exec(name, ts, samples[ts]); err != nil {
			return "", fmt.Errorf("failed to store sample %s of %s: %w", ts, name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return importID, nil
}

// LoadSeries returns the samples of a stored series.
func (ss *SampleStoreImpl) LoadSeries(name string) (schema.SampleMap, error) {
	if ss.db == nil {
		return nil, fmt.Errorf("%w: %s", ErrSeriesNotFound, name)
	}

	var count int
	query := ss.rebind(fmt.Sprintf("SELECT sample_count FROM %s WHERE series_name = ?", ss.table(seriesTable)))
	if err := ss.db.QueryRow(query, name).Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrSeriesNotFound, name)
		}
		return nil, err
	}

	query = ss.rebind(fmt.Sprintf("SELECT sample_ts, sample_count FROM %s WHERE series_name = ?", ss.table(samplesTable)))
	rows, err := ss.db.Query(query, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	samples := make(schema.SampleMap, count)
	for rows.Next() {
		var (
			ts string
			n  int64
		)
		if err := rows.Scan(&ts, &n); err != nil {
			return nil, err
		}
		samples[ts] = int(n)
	}
	return samples, rows.Err()
}

// ListSeries describes every stored series, ordered by name.
func (ss *SampleStoreImpl) ListSeries() ([]schema.SeriesInfo, error) {
	if ss.db == nil {
		return []schema.SeriesInfo{}, nil
	}

	query := fmt.Sprintf(`
		SELECT s.series_name, s.import_id, s.imported_at, s.sample_count, MIN(p.sample_ts), MAX(p.sample_ts)
		FROM %s s LEFT JOIN %s p ON p.series_name = s.series_name
		GROUP BY s.series_name, s.import_id, s.imported_at, s.sample_count
		ORDER BY s.series_name`, ss.table(seriesTable), ss.table(samplesTable))
	rows, err := ss.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	infos := []schema.SeriesInfo{}
	for rows.Next() {
		var (
			info        schema.SeriesInfo
			importedAt  int64
			first, last sql.NullString
		)
		if err := rows.Scan(&info.Name, &info.ImportID, &importedAt, &info.SampleCount, &first, &last); err != nil {
			return nil, err
		}
		info.ImportedAt = time.Unix(importedAt, 0)
		info.FirstSample = first.String
		info.LastSample = last.String
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// DeleteSeries removes a series and its samples.
func (ss *SampleStoreImpl) DeleteSeries(name string) error {
	if ss.db == nil {
		return fmt.Errorf("%w: %s", ErrSeriesNotFound, name)
	}

	tx, err := ss.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := ss.rebind(fmt.Sprintf("DELETE FROM %s WHERE series_name = ?", ss.table(seriesTable)))
	res, err := tx.Exec(query, name)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrSeriesNotFound, name)
	}

	query = ss.rebind(fmt.Sprintf("DELETE FROM %s WHERE series_name = ?", ss.table(samplesTable)))
	if _, err := tx.Exec(query, name); err != nil {
		return err
	}
	return tx.Commit()
}

// deleteRows removes any previous rows of a series inside a transaction.
func (ss *SampleStoreImpl) deleteRows(tx *sql.Tx, name string) error {
	for _, table := range []string{samplesTable, seriesTable} {
		query := ss.rebind(fmt.Sprintf("DELETE FROM %s WHERE series_name = ?", ss.table(table)))
		if _, err := tx.Exec(query, name); err != nil {
			return fmt.Errorf("failed to replace series %s: %w", name, err)
		}
	}
	return nil
}

// GetStatus returns status information about the sample store.
func (ss *SampleStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(ss.backend),
		Connected: ss.db != nil,
	}
	if ss.db == nil {
		return status, nil
	}

	var version sql.NullInt64
	versionQuery := fmt.Sprintf("SELECT version FROM %s", ss.table(migrationsTable))
	if err := ss.db.QueryRow(versionQuery).Scan(&version); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return status, fmt.Errorf("failed to get schema version: %w", err)
	}
	status.SchemaVersion = uint(version.Int64)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", ss.table(seriesTable))
	if err := ss.db.QueryRow(countQuery).Scan(&status.TotalSeries); err != nil {
		return status, fmt.Errorf("failed to get total series: %w", err)
	}
	countQuery = fmt.Sprintf("SELECT COUNT(*) FROM %s", ss.table(samplesTable))
	if err := ss.db.QueryRow(countQuery).Scan(&status.TotalSamples); err != nil {
		return status, fmt.Errorf("failed to get total samples: %w", err)
	}

	if status.TotalSeries > 0 {
		var lastTs sql.NullInt64
		lastQuery := fmt.Sprintf("SELECT MAX(imported_at) FROM %s", ss.table(seriesTable))
		if err := ss.db.QueryRow(lastQuery).Scan(&lastTs); err != nil {
			return status, fmt.Errorf("failed to get last import time: %w", err)
		}
		if lastTs.Valid {
			status.LastImportTime = time.Unix(lastTs.Int64, 0)
		}
	}

	status.SizeBytes = ss.estimateSize(status.TotalSamples)
	return status, nil
}

// estimateSize asks the database for the size of the store tables and
// falls back to a rough per-row estimate.
func (ss *SampleStoreImpl) estimateSize(totalSamples int) int64 {
	fallback := int64(totalSamples) * 64
	var size sql.NullInt64

	switch ss.backend {
	case schema.SQLiteBackend:
		query := "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()"
		if err := ss.db.QueryRow(query).Scan(&size); err != nil {
			return 0
		}

	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(ss.connStr)
		if err != nil || cfg.DBName == "" {
			return fallback
		}
		query := "SELECT SUM(data_length + index_length) FROM information_schema.tables WHERE table_schema = ? AND table_name IN (?, ?)"
		if err := ss.db.QueryRow(query, cfg.DBName, seriesTable, samplesTable).Scan(&size); err != nil {
			return fallback
		}

	case schema.PostgreSQLBackend:
		query := "SELECT pg_total_relation_size($1) + pg_total_relation_size($2)"
		if err := ss.db.QueryRow(query, seriesTable, samplesTable).Scan(&size); err != nil {
			return fallback
		}
	}

	if !size.Valid {
		return fallback
	}
	return size.Int64
}

// Close closes the underlying DB connection.
func (ss *SampleStoreImpl) Close() error {
	if ss.db != nil {
		return ss.db.Close()
	}
	return nil
}

// table returns a quoted table name for the store backend.
func (ss *SampleStoreImpl) table(name string) string {
	return quoteTableName(name, ss.backend)
}

// rebind rewrites ? placeholders for backends that number them.
func (ss *SampleStoreImpl) rebind(query string) string {
	return rebindQuery(query, ss.backend)
}

// rebindQuery replaces each ? with $1, $2, ... for PostgreSQL.
// Queries in this package never carry a literal question mark.
func rebindQuery(query string, backend schema.DatabaseBackend) string {
	if backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// tableNamePattern is what a safe SQL identifier looks like.
var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// validateTableName validates that the table name is a safe SQL identifier.
func validateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("invalid table name: %s (must match pattern ^[a-zA-Z_][a-zA-Z0-9_]*$)", name)
	}
	return nil
}

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("%q", name)
	}
}
