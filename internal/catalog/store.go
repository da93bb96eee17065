// Package catalog persists the artwork catalogue behind the gallery and keeps
// it in sync with an optional YAML seed file.
package catalog

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"atelier/internal/domain"
)

// CurrentSchemaVersion is the latest schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 2

// DBName is the database file created inside the data directory.
const DBName = "catalog.db"

// ErrNotFound is returned when no artwork has the requested id.
var ErrNotFound = errors.New("artwork not found")

// Store is the SQLite-backed artwork catalogue.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Init opens (creating if needed) the catalogue at dataDir/catalog.db and
// applies pending migrations.
func Init(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBName)
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := verifyWALMode(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	_ = os.Chmod(dbPath, 0600)

	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func migrate(db *sql.DB) error {
	version, err := userVersion(db)
	if err != nil {
		return err
	}

	// 0 -> 1: artworks table
	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS artworks (
		  id          TEXT PRIMARY KEY,
		  title       TEXT NOT NULL,
		  collection  TEXT NOT NULL DEFAULT '',
		  story       TEXT NOT NULL DEFAULT '',
		  price       REAL NOT NULL DEFAULT 0,
		  position    INTEGER NOT NULL DEFAULT 0,
		  created_at  INTEGER NOT NULL,
		  updated_at  INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_artworks_position
		ON artworks(position, created_at);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := setUserVersion(db, 1); err != nil {
			return err
		}
	}

	// 1 -> 2: image reference
	if version < 2 {
		if _, err := db.Exec(`ALTER TABLE artworks ADD COLUMN image_ref TEXT NOT NULL DEFAULT ''`); err != nil {
			return fmt.Errorf("migration 2 failed: %w", err)
		}
		if err := setUserVersion(db, 2); err != nil {
			return err
		}
	}

	return nil
}

func verifyWALMode(db *sql.DB) error {
	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		return fmt.Errorf("failed to verify journal mode: %w", err)
	}
	if journalMode != "wal" {
		return fmt.Errorf("expected WAL mode, got %s", journalMode)
	}
	return nil
}

func userVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

func setUserVersion(db *sql.DB, version int) error {
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version)); err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}

// SchemaVersion reports the applied migration level.
func (s *Store) SchemaVersion() (int, error) {
	return userVersion(s.db)
}

const artworkColumns = `id, title, collection, story, price, image_ref, position, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArtwork(row rowScanner) (domain.Artwork, error) {
	var a domain.Artwork
	var created, updated int64
	if err := row.Scan(&a.ID, &a.Title, &a.Collection, &a.Story, &a.Price, &a.ImageRef, &a.Position, &created, &updated); err != nil {
		return domain.Artwork{}, err
	}
	a.CreatedAt = time.UnixMilli(created).UTC()
	a.UpdatedAt = time.UnixMilli(updated).UTC()
	return a, nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// List returns every artwork in display order.
func (s *Store) List(ctx context.Context) ([]domain.Artwork, error) {
	return listArtworks(ctx, s.db)
}

// Get returns the artwork with the given id or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (domain.Artwork, error) {
	return getArtwork(ctx, s.db, id)
}

// Upsert inserts a new artwork (assigning an id when empty) or updates an
// existing one, preserving its creation time. It returns the stored row.
func (s *Store) Upsert(ctx context.Context, a domain.Artwork) (domain.Artwork, error) {
	return upsertArtwork(ctx, s.db, s.now(), a)
}

// Delete removes the artwork with the given id or returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	return deleteArtwork(ctx, s.db, id)
}

// Tx is a set of catalogue writes that commit or roll back together.
type Tx struct {
	tx  *sql.Tx
	now func() time.Time
}

// Begin starts a transaction. Callers defer Rollback and finish with Commit.
func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	return &Tx{tx: tx, now: s.now}, nil
}

func (t *Tx) List(ctx context.Context) ([]domain.Artwork, error) {
	return listArtworks(ctx, t.tx)
}

func (t *Tx) Upsert(ctx context.Context, a domain.Artwork) (domain.Artwork, error) {
	return upsertArtwork(ctx, t.tx, t.now(), a)
}

func (t *Tx) Delete(ctx context.Context, id string) error {
	return deleteArtwork(ctx, t.tx, id)
}

// Commit applies the transaction.
func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Rollback discards the transaction. It is a no-op after Commit.
func (t *Tx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

func listArtworks(ctx context.Context, q querier) ([]domain.Artwork, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+artworkColumns+` FROM artworks ORDER BY position ASC, created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing artworks: %w", err)
	}
	defer rows.Close()

	var out []domain.Artwork
	for rows.Next() {
		a, err := scanArtwork(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning artwork: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing artworks: %w", err)
	}
	return out, nil
}

func getArtwork(ctx context.Context, q querier, id string) (domain.Artwork, error) {
	row := q.QueryRowContext(ctx, `SELECT `+artworkColumns+` FROM artworks WHERE id = ?`, id)
	a, err := scanArtwork(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Artwork{}, ErrNotFound
	}
	if err != nil {
		return domain.Artwork{}, fmt.Errorf("getting artwork %s: %w", id, err)
	}
	return a, nil
}

func upsertArtwork(ctx context.Context, q querier, now time.Time, a domain.Artwork) (domain.Artwork, error) {
	if a.Title == "" {
		return domain.Artwork{}, fmt.Errorf("artwork title is required")
	}
	if a.ID == "" {
		id, err := newID(now)
		if err != nil {
			return domain.Artwork{}, err
		}
		a.ID = id
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO artworks (`+artworkColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  title = excluded.title,
		  collection = excluded.collection,
		  story = excluded.story,
		  price = excluded.price,
		  image_ref = excluded.image_ref,
		  position = excluded.position,
		  updated_at = excluded.updated_at`,
		a.ID, a.Title, a.Collection, a.Story, a.Price, a.ImageRef, a.Position,
		now.UnixMilli(), now.UnixMilli())
	if err != nil {
		return domain.Artwork{}, fmt.Errorf("saving artwork %s: %w", a.ID, err)
	}
	return getArtwork(ctx, q, a.ID)
}

func deleteArtwork(ctx context.Context, q querier, id string) error {
	res, err := q.ExecContext(ctx, `DELETE FROM artworks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting artwork %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting artwork %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of artworks.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM artworks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting artworks: %w", err)
	}
	return n, nil
}

// Slides lists the catalogue as carousel slides.
func (s *Store) Slides(ctx context.Context) ([]domain.Slide, error) {
	artworks, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Slides(artworks), nil
}

func newID(t time.Time) (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", fmt.Errorf("generating id: %w", err)
	}
	return id.String(), nil
}
