package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"clinote/internal/modules/notesvc/domain"
	notesvcout "clinote/internal/modules/notesvc/port/out"
	apperrors "clinote/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const timeLayout = time.RFC3339Nano

type SQLiteNoteStore struct {
	db *sql.DB
}

func NewSQLiteNoteStore(dbPath string) (notesvcout.NoteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// sqlite allows a single writer.
	db.SetMaxOpenConns(1)
	store := &SQLiteNoteStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteNoteStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS session_notes (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  session_duration INTEGER NOT NULL,
  session_type TEXT NOT NULL,
  draft_note TEXT NOT NULL,
  generated_note TEXT NOT NULL,
  final_note TEXT,
  created_at TEXT NOT NULL,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_session_notes_session_type ON session_notes(session_type);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create session_notes table: %w", err)
	}
	return nil
}

func (s *SQLiteNoteStore) Create(ctx context.Context, note domain.SessionNote) (int64, error) {
	const stmt = `
INSERT INTO session_notes (session_duration, session_type, draft_note, generated_note, created_at)
VALUES (?, ?, ?, ?, ?);
`
	res, err := s.db.ExecContext(ctx, stmt,
		note.SessionDuration,
		note.SessionType,
		note.DraftNote,
		note.GeneratedNote,
		note.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("insert session note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("session note id: %w", err)
	}
	return id, nil
}

func (s *SQLiteNoteStore) Get(ctx context.Context, id int64) (domain.SessionNote, error) {
	const query = `
SELECT id, session_duration, session_type, draft_note, generated_note, final_note, created_at, updated_at
FROM session_notes WHERE id = ?;
`
	var (
		note      domain.SessionNote
		finalNote sql.NullString
		createdAt string
		updatedAt sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&note.ID,
		&note.SessionDuration,
		&note.SessionType,
		&note.DraftNote,
		&note.GeneratedNote,
		&finalNote,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SessionNote{}, fmt.Errorf("session note %d: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.SessionNote{}, fmt.Errorf("get session note: %w", err)
	}
	note.FinalNote = finalNote.String
	if note.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return domain.SessionNote{}, fmt.Errorf("parse created_at: %w", err)
	}
	if updatedAt.Valid {
		if note.UpdatedAt, err = time.Parse(timeLayout, updatedAt.String); err != nil {
			return domain.SessionNote{}, fmt.Errorf("parse updated_at: %w", err)
		}
	}
	return note, nil
}

func (s *SQLiteNoteStore) UpdateFinal(ctx context.Context, id int64, finalNote string, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE session_notes SET final_note = ?, updated_at = ? WHERE id = ?`,
		finalNote, at.UTC().Format(timeLayout), id,
	)
	if err != nil {
		return fmt.Errorf("update final note: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update final note: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session note %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (s *SQLiteNoteStore) Close() error {
	return s.db.Close()
}
