package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"medialib/internal/domain"
	models "medialib/internal/domain/models/medialib"
	medialibRepo "medialib/internal/domain/repositories/medialib"
)

// treeLockKey is the advisory lock key serializing structural tree writes.
// Every move, bulk move and recursive delete takes it for the duration of its
// transaction, so two concurrent moves cannot each pass a cycle check and
// jointly commit a cycle.
const treeLockKey int64 = 0x6d65646961 // "media"

// sortColumns whitelists API sort fields against folder columns
var sortColumns = map[string]string{
	"id":        "f.id",
	"name":      "f.name",
	"createdAt": "f.created_at",
	"updatedAt": "f.updated_at",
}

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) medialibRepo.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresFolderRepository) selectColumns() string {
	return fmt.Sprintf(`
		f.id, f.parent_id, f.name, f.created_by_id, f.updated_by_id, f.created_at, f.updated_at,
		(SELECT COUNT(*) FROM %s c WHERE c.parent_id = f.id) AS child_count,
		(SELECT COUNT(*) FROM %s fl WHERE fl.folder_id = f.id) AS file_count
	`, r.tables.Folders, r.tables.Files)
}

func (r *PostgresFolderRepository) scanFolder(row interface{ Scan(...any) error }) (*models.Folder, error) {
	var folder models.Folder
	err := row.Scan(
		&folder.ID,
		&folder.ParentID,
		&folder.Name,
		&folder.CreatedByID,
		&folder.UpdatedByID,
		&folder.CreatedAt,
		&folder.UpdatedAt,
		&folder.ChildCount,
		&folder.FileCount,
	)
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

// Create creates a new folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	db := GetExecutor(ctx, r.pool)

	query := fmt.Sprintf(`
		INSERT INTO %s (parent_id, name, created_by_id, updated_by_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, r.tables.Folders)

	err := db.QueryRow(ctx, query,
		folder.ParentID,
		folder.Name,
		folder.CreatedByID,
		folder.UpdatedByID,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("parent folder: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID with live child and file counts
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id int64) (*models.Folder, error) {
	db := GetExecutor(ctx, r.pool)

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s f
		WHERE f.id = $1
	`, r.selectColumns(), r.tables.Folders)

	folder, err := r.scanFolder(db.QueryRow(ctx, query, id))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return folder, nil
}

// Update updates a folder's name, parent reference and audit fields
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	db := GetExecutor(ctx, r.pool)

	query := fmt.Sprintf(`
		UPDATE %s
		SET parent_id = $1, name = $2, updated_by_id = $3, updated_at = $4
		WHERE id = $5
	`, r.tables.Folders)

	result, err := db.Exec(ctx, query,
		folder.ParentID,
		folder.Name,
		folder.UpdatedByID,
		folder.UpdatedAt,
		folder.ID,
	)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("parent folder: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("update folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %d: %w", folder.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a folder row
func (r *PostgresFolderRepository) Delete(ctx context.Context, id int64) error {
	db := GetExecutor(ctx, r.pool)

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Folders)

	result, err := db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// List lists folders under a parent with live counts. Sort is a
// priority-ordered list of whitelisted fields; id ASC is always appended so
// ties resolve deterministically.
func (r *PostgresFolderRepository) List(ctx context.Context, opts medialibRepo.ListFoldersOptions) ([]models.Folder, error) {
	db := GetExecutor(ctx, r.pool)

	var args []interface{}
	var conds []string

	if opts.ParentID == nil {
		conds = append(conds, "f.parent_id IS NULL")
	} else {
		args = append(args, *opts.ParentID)
		conds = append(conds, fmt.Sprintf("f.parent_id = $%d", len(args)))
	}

	if opts.Query != "" {
		args = append(args, opts.Query)
		conds = append(conds, fmt.Sprintf("f.name ILIKE '%%' || $%d || '%%'", len(args)))
	}

	var orderBy []string
	for _, key := range opts.Sort {
		column, ok := sortColumns[key.Field]
		if !ok {
			return nil, fmt.Errorf("unsupported sort field %q: %w", key.Field, domain.ErrValidation)
		}
		direction := "ASC"
		if key.Desc {
			direction = "DESC"
		}
		orderBy = append(orderBy, column+" "+direction)
	}
	orderBy = append(orderBy, "f.id ASC")

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s f
		WHERE %s
		ORDER BY %s
	`, r.selectColumns(), r.tables.Folders, strings.Join(conds, " AND "), strings.Join(orderBy, ", "))

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		folder, err := r.scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, *folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// ListChildren lists immediate child folders
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, parentID *int64) ([]models.Folder, error) {
	return r.List(ctx, medialibRepo.ListFoldersOptions{ParentID: parentID})
}

// ListAll retrieves every folder (flat list)
func (r *PostgresFolderRepository) ListAll(ctx context.Context) ([]models.Folder, error) {
	db := GetExecutor(ctx, r.pool)

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s f
		ORDER BY f.id ASC
	`, r.selectColumns(), r.tables.Folders)

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		folder, err := r.scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, *folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// LockTree takes the transaction-scoped structural advisory lock. It is
// released automatically at commit or rollback.
func (r *PostgresFolderRepository) LockTree(ctx context.Context) error {
	db := GetExecutor(ctx, r.pool)

	if _, err := db.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", treeLockKey); err != nil {
		return fmt.Errorf("lock tree: %w", err)
	}
	return nil
}
