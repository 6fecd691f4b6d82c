package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aleister1102/grammarwhiz/internal/common"
	"github.com/aleister1102/grammarwhiz/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Store persists proofreading sessions, newest first, keeping at most
// maxEntries rows.
type Store struct {
	db         *sql.DB
	maxEntries int
	now        func() time.Time
	logger     zerolog.Logger
}

// NewStore opens (or creates) the history database at path.
func NewStore(path string, maxEntries int, logger zerolog.Logger) (*Store, error) {
	logger = logger.With().Str("component", "HistoryStore").Logger()
	if maxEntries < 1 {
		return nil, common.NewValidationError("max_entries", maxEntries, "must be at least 1")
	}

	dbDir := filepath.Dir(path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error().Err(err).Str("directory", dbDir).Msg("Failed to create history database directory")
		return nil, fmt.Errorf("failed to create history database directory %s: %w", dbDir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Error().Err(err).Str("db_path", path).Msg("Failed to open history database")
		return nil, fmt.Errorf("sql.Open failed for %s: %w", path, err)
	}
	// One connection serializes writers so append-and-trim never interleaves.
	db.SetMaxOpenConns(1)

	s := &Store{
		db:         db,
		maxEntries: maxEntries,
		now:        time.Now,
		logger:     logger,
	}

	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	logger.Debug().Str("path", path).Int("max_entries", maxEntries).Msg("History database ready")
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS history (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		created_at INTEGER NOT NULL,
		original TEXT NOT NULL,
		corrected TEXT NOT NULL,
		explanations TEXT NOT NULL,
		scenario TEXT NOT NULL,
		diff_delta TEXT NOT NULL DEFAULT ''
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		s.logger.Error().Err(err).Msg("Failed to initialize history schema")
		return err
	}
	return nil
}

// Append stores entry as the most recent one and drops anything beyond the
// cap in the same transaction. Missing ID and Timestamp are filled in.
func (s *Store) Append(ctx context.Context, entry models.HistoryEntry) (models.HistoryEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	if entry.Explanations == nil {
		entry.Explanations = []string{}
	}

	explanations, err := json.Marshal(entry.Explanations)
	if err != nil {
		return models.HistoryEntry{}, common.WrapError(err, "failed to encode explanations")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.HistoryEntry{}, fmt.Errorf("failed to begin history transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO history (id, created_at, original, corrected, explanations, scenario, diff_delta) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Timestamp.UnixNano(), entry.Original, entry.Corrected, string(explanations), string(entry.Scenario), entry.DiffDelta)
	if err != nil {
		s.logger.Error().Err(err).Str("id", entry.ID).Msg("Failed to insert history entry")
		return models.HistoryEntry{}, fmt.Errorf("failed to insert history entry: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM history WHERE seq NOT IN (SELECT seq FROM history ORDER BY seq DESC LIMIT ?)`,
		s.maxEntries)
	if err != nil {
		return models.HistoryEntry{}, fmt.Errorf("failed to trim history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.HistoryEntry{}, fmt.Errorf("failed to commit history entry: %w", err)
	}

	trimmed, _ := res.RowsAffected()
	s.logger.Debug().Str("id", entry.ID).Int64("trimmed", trimmed).Msg("Appended history entry")
	return entry, nil
}

// List returns entries newest first. A limit of 0 or less returns all.
func (s *Store) List(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = s.maxEntries
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, original, corrected, explanations, scenario, diff_delta FROM history ORDER BY seq DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries := make([]models.HistoryEntry, 0, limit)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}
	return entries, nil
}

// Get returns one entry by id, or an error matching common.ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (models.HistoryEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, original, corrected, explanations, scenario, diff_delta FROM history WHERE id = ?`,
		id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.HistoryEntry{}, common.WrapErrorf(common.ErrNotFound, "history entry %s", id)
	}
	return entry, err
}

// Clear removes every entry.
func (s *Store) Clear(ctx context.Context) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM history`)
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	removed, _ := res.RowsAffected()
	s.logger.Info().Int64("removed", removed).Msg("History cleared")
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.HistoryEntry, error) {
	var (
		entry        models.HistoryEntry
		createdAt    int64
		explanations string
		scenario     string
	)
	if err := row.Scan(&entry.ID, &createdAt, &entry.Original, &entry.Corrected, &explanations, &scenario, &entry.DiffDelta); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.HistoryEntry{}, err
		}
		return models.HistoryEntry{}, fmt.Errorf("failed to scan history row: %w", err)
	}
	entry.Timestamp = time.Unix(0, createdAt)
	entry.Scenario = models.Scenario(scenario)
	if err := json.Unmarshal([]byte(explanations), &entry.Explanations); err != nil {
		return models.HistoryEntry{}, common.WrapErrorf(err, "corrupt explanations in history entry %s", entry.ID)
	}
	return entry, nil
}

// NewEntry builds an entry for a finished proofreading session.
func NewEntry(original string, result models.ProofreadResult, scenario models.Scenario, delta string) models.HistoryEntry {
	return models.HistoryEntry{
		Original:     original,
		Corrected:    result.Corrected,
		Explanations: result.Explanations,
		Scenario:     scenario,
		DiffDelta:    delta,
	}
}
