package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"medialib/internal/domain"
	models "medialib/internal/domain/models/medialib"
	medialibRepo "medialib/internal/domain/repositories/medialib"
)

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *RepositoryConfig) medialibRepo.FileRepository {
	return &PostgresFileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const fileColumns = `id, name, alternative_text, caption, folder_id, storage_key, mime_type, size_bytes, created_at, updated_at`

func scanFile(row interface{ Scan(...any) error }) (*models.File, error) {
	var file models.File
	err := row.Scan(
		&file.ID,
		&file.Name,
		&file.AlternativeText,
		&file.Caption,
		&file.FolderID,
		&file.StorageKey,
		&file.MimeType,
		&file.SizeBytes,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// Create creates a new file record
func (r *PostgresFileRepository) Create(ctx context.Context, file *models.File) error {
	db := GetExecutor(ctx, r.pool)

	query := fmt.Sprintf(`
		INSERT INTO %s (name, alternative_text, caption, folder_id, storage_key, mime_type, size_bytes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, r.tables.Files)

	err := db.QueryRow(ctx, query,
		file.Name,
		file.AlternativeText,
		file.Caption,
		file.FolderID,
		file.StorageKey,
		file.MimeType,
		file.SizeBytes,
		file.CreatedAt,
		file.UpdatedAt,
	).Scan(&file.ID, &file.CreatedAt, &file.UpdatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("folder: %w", domain.ErrNotFound)
		}
		if isPgDuplicateError(err) {
			// storage_key is a fresh UUID; a collision means the store broke
			return fmt.Errorf("storage key %s already recorded: %w", file.StorageKey, domain.ErrIntegrity)
		}
		return fmt.Errorf("create file: %w", err)
	}

	return nil
}

// GetByID retrieves a file by ID
func (r *PostgresFileRepository) GetByID(ctx context.Context, id int64) (*models.File, error) {
	db := GetExecutor(ctx, r.pool)

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, fileColumns, r.tables.Files)

	file, err := scanFile(db.QueryRow(ctx, query, id))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("file %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	return file, nil
}

// Update updates a file's metadata and folder reference
func (r *PostgresFileRepository) Update(ctx context.Context, file *models.File) error {
	db := GetExecutor(ctx, r.pool)

	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, alternative_text = $2, caption = $3, folder_id = $4, updated_at = $5
		WHERE id = $6
	`, r.tables.Files)

	result, err := db.Exec(ctx, query,
		file.Name,
		file.AlternativeText,
		file.Caption,
		file.FolderID,
		file.UpdatedAt,
		file.ID,
	)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("folder: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("update file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %d: %w", file.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a file record. RowsAffected guarantees exactly-once: a
// second delete of the same ID reports not-found.
func (r *PostgresFileRepository) Delete(ctx context.Context, id int64) error {
	db := GetExecutor(ctx, r.pool)

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Files)

	result, err := db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListByFolder lists files in a folder (nil = unfiled root-level files)
func (r *PostgresFileRepository) ListByFolder(ctx context.Context, folderID *int64) ([]models.File, error) {
	db := GetExecutor(ctx, r.pool)

	var query string
	var args []interface{}

	if folderID == nil {
		query = fmt.Sprintf(`SELECT %s FROM %s WHERE folder_id IS NULL ORDER BY id ASC`, fileColumns, r.tables.Files)
	} else {
		query = fmt.Sprintf(`SELECT %s FROM %s WHERE folder_id = $1 ORDER BY id ASC`, fileColumns, r.tables.Files)
		args = append(args, *folderID)
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, *file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	return files, nil
}

// ListAll retrieves every file record (flat list)
func (r *PostgresFileRepository) ListAll(ctx context.Context) ([]models.File, error) {
	db := GetExecutor(ctx, r.pool)

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY id ASC`, fileColumns, r.tables.Files)

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all files: %w", err)
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, *file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	return files, nil
}
