package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// FileName is the name of the SQLite file inside the database directory.
const FileName = "lexicon.db"

// LexiconDB provides SQLite-based storage for per-language word lists.
type LexiconDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures LexiconDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a LexiconDB in the given directory.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*LexiconDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	ldb := &LexiconDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := ldb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return ldb, nil
}

// Close closes the database connection.
func (ldb *LexiconDB) Close() error {
	return ldb.db.Close()
}

// Path returns the path of the SQLite file.
func (ldb *LexiconDB) Path() string {
	return ldb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (ldb *LexiconDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS words (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		language TEXT NOT NULL,
		word TEXT NOT NULL,
		imported_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(language, word)
	);

	CREATE INDEX IF NOT EXISTS idx_words_language ON words(language);
	`

	_, err := ldb.db.ExecContext(context.Background(), schema)
	return err
}

// ImportWords adds words for a language in a single transaction.
// Words already present are ignored. Returns the number of new words.
func (ldb *LexiconDB) ImportWords(ctx context.Context, language string, words []string) (int, error) {
	tx, err := ldb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after Commit is a no-op

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO words (language, word) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, word := range words {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		result, err := stmt.ExecContext(ctx, language, word)
		if err != nil {
			return 0, fmt.Errorf("failed to insert word %q: %w", word, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to read affected rows: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit words: %w", err)
	}
	return inserted, nil
}

// Words returns every stored word for a language in ascending order.
func (ldb *LexiconDB) Words(ctx context.Context, language string) ([]string, error) {
	rows, err := ldb.db.QueryContext(ctx,
		`SELECT word FROM words WHERE language = ? ORDER BY word`, language)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, word)
	}
	return words, rows.Err()
}

// CountWords returns the number of stored words for a language.
func (ldb *LexiconDB) CountWords(ctx context.Context, language string) (int, error) {
	var count int
	err := ldb.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM words WHERE language = ?`, language).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return count, nil
}

// LanguageSummary describes one stored dictionary.
type LanguageSummary struct {
	Language     string
	WordCount    int
	LastImported time.Time
}

// Languages lists every language with at least one word.
func (ldb *LexiconDB) Languages(ctx context.Context) ([]LanguageSummary, error) {
	rows, err := ldb.db.QueryContext(ctx, `
	SELECT language, COUNT(*), MAX(imported_at)
	FROM words
	GROUP BY language
	ORDER BY language
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query languages: %w", err)
	}
	defer rows.Close()

	var summaries []LanguageSummary
	for rows.Next() {
		var s LanguageSummary
		var timestamp string
		if err := rows.Scan(&s.Language, &s.WordCount, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan language: %w", err)
		}
		s.LastImported = parseTimestamp(timestamp)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// timestampFormats are the layouts SQLite may use for DATETIME columns.
var timestampFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999",
}

// parseTimestamp tries each known layout and returns the zero time if none matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
