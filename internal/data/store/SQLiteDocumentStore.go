package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/akolanti/DocScanAPI/internal/domain/docModel"
	"github.com/akolanti/DocScanAPI/pkg/logger_i"
)

const documentsSchema = `
CREATE TABLE IF NOT EXISTS documents (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	file_name     TEXT NOT NULL,
	document_type TEXT NOT NULL,
	fields        TEXT NOT NULL,
	file_path     TEXT NOT NULL,
	created_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents (created_at);`

// fixed-width fraction so the TEXT column sorts lexicographically in true
// time order; RFC3339Nano drops trailing zeros and breaks ORDER BY
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteDocumentStore struct {
	db     *sql.DB
	logger *logger_i.Logger
}

// GetSQLiteDocumentStore opens (and migrates) the documents database.
// Returns nil when the database cannot be opened so the caller can fall
// back to the in-memory store.
func GetSQLiteDocumentStore(ctx context.Context, path string) *SQLiteDocumentStore {
	logger := logger_i.NewLogger("DocumentStore")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Error("could not open sqlite database", "path", path, "error", err)
		return nil
	}
	if err := db.PingContext(ctx); err != nil {
		logger.Error("sqlite database is not reachable", "path", path, "error", err)
		closeDB(db, logger)
		return nil
	}
	if _, err := db.ExecContext(ctx, documentsSchema); err != nil {
		logger.Error("could not create documents table", "error", err)
		closeDB(db, logger)
		return nil
	}

	logger.Info("SQLite document store ready", "path", path)
	return &SQLiteDocumentStore{db: db, logger: logger}
}

func closeDB(db *sql.DB, logger *logger_i.Logger) {
	if err := db.Close(); err != nil {
		logger.Warn("closing unusable sqlite handle failed", "error", err)
	}
}

func (s *SQLiteDocumentStore) SaveDocument(ctx context.Context, record docModel.DocumentRecord) (docModel.DocumentRecord, error) {
	fieldsJSON, err := json.Marshal(record.Fields)
	if err != nil {
		return docModel.DocumentRecord{}, err
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (file_name, document_type, fields, file_path, created_at) VALUES (?, ?, ?, ?, ?)`,
		record.FileName, string(record.DocumentType), string(fieldsJSON), record.FilePath,
		record.CreatedAt.UTC().Format(sqliteTimeLayout))
	if err != nil {
		return docModel.DocumentRecord{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return docModel.DocumentRecord{}, err
	}
	record.Id = id
	s.logger.Debug("saved document record", "id", id, "document_type", record.DocumentType)
	return record, nil
}

func (s *SQLiteDocumentStore) ListDocuments(ctx context.Context) ([]docModel.DocumentRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, file_name, document_type, fields, file_path, created_at
		 FROM documents ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Warn("closing rows failed", "error", err)
		}
	}()

	var records []docModel.DocumentRecord
	for rows.Next() {
		record, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *SQLiteDocumentStore) GetDocument(ctx context.Context, id int64) (docModel.DocumentRecord, bool) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, file_name, document_type, fields, file_path, created_at
		 FROM documents WHERE id = ?`, id)

	record, err := scanDocument(row.Scan)
	if err != nil {
		if err != sql.ErrNoRows {
			s.logger.Error("get document failed", "id", id, "error", err)
		}
		return docModel.DocumentRecord{}, false
	}
	return record, true
}

func (s *SQLiteDocumentStore) UpdateDocument(ctx context.Context, id int64, docType docModel.DocumentType, fields docModel.FieldMap) (docModel.DocumentRecord, bool) {
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		s.logger.Error("marshal fields failed", "id", id, "error", err)
		return docModel.DocumentRecord{}, false
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE documents SET document_type = ?, fields = ? WHERE id = ?`,
		string(docType), string(fieldsJSON), id)
	if err != nil {
		s.logger.Error("update document failed", "id", id, "error", err)
		return docModel.DocumentRecord{}, false
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return docModel.DocumentRecord{}, false
	}
	return s.GetDocument(ctx, id)
}

func scanDocument(scan func(dest ...any) error) (docModel.DocumentRecord, error) {
	var record docModel.DocumentRecord
	var docType, fieldsJSON, createdAt string

	if err := scan(&record.Id, &record.FileName, &docType, &fieldsJSON, &record.FilePath, &createdAt); err != nil {
		return docModel.DocumentRecord{}, err
	}

	record.DocumentType = docModel.DocumentType(docType)
	if err := json.Unmarshal([]byte(fieldsJSON), &record.Fields); err != nil {
		return docModel.DocumentRecord{}, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return docModel.DocumentRecord{}, err
	}
	record.CreatedAt = parsed
	return record, nil
}
