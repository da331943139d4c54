package medialib

import (
	"context"
	"log/slog"

	models "medialib/internal/domain/models/medialib"
	"medialib/internal/domain/repositories"
	medialibRepo "medialib/internal/domain/repositories/medialib"
	medialibSvc "medialib/internal/domain/services/medialib"
)

type treeService struct {
	folderRepo medialibRepo.FolderRepository
	fileRepo   medialibRepo.FileRepository
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(
	folderRepo medialibRepo.FolderRepository,
	fileRepo medialibRepo.FileRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) medialibSvc.TreeService {
	return &treeService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// GetStructure materializes the whole library as nested folders with their
// files. Both reads run in one repeatable-read transaction so the structure
// is a single consistent snapshot; counts are derived from the snapshot
// itself rather than trusted from stored columns.
func (s *treeService) GetStructure(ctx context.Context) (*models.Structure, error) {
	var folders []models.Folder
	var files []models.File

	err := s.txManager.ExecReadTx(ctx, func(ctx context.Context) error {
		var err error
		folders, err = s.folderRepo.ListAll(ctx)
		if err != nil {
			return err
		}
		files, err = s.fileRepo.ListAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	// First pass: one node per folder
	nodes := make(map[int64]*models.FolderNode, len(folders))
	for i := range folders {
		f := &folders[i]
		nodes[f.ID] = &models.FolderNode{
			ID:        f.ID,
			Name:      f.Name,
			ParentID:  f.ParentID,
			Children:  []*models.FolderNode{},
			Files:     []models.FileNode{},
			CreatedAt: f.CreatedAt,
		}
	}

	// Second pass: attach files to their folders
	structure := &models.Structure{
		Folders: []*models.FolderNode{},
		Files:   []models.FileNode{},
	}
	for i := range files {
		f := &files[i]
		node := models.FileNode{
			ID:        f.ID,
			Name:      f.Name,
			FolderID:  f.FolderID,
			MimeType:  f.MimeType,
			SizeBytes: f.SizeBytes,
			UpdatedAt: f.UpdatedAt,
		}
		if f.FolderID == nil {
			structure.Files = append(structure.Files, node)
			continue
		}
		parent, ok := nodes[*f.FolderID]
		if !ok {
			// Snapshot consistency makes this unreachable, but a lost file
			// is better surfaced at the root than dropped
			s.logger.Warn("file references unknown folder", "file_id", f.ID, "folder_id", *f.FolderID)
			structure.Files = append(structure.Files, node)
			continue
		}
		parent.Files = append(parent.Files, node)
	}

	// Third pass: link folders to their parents
	for i := range folders {
		node := nodes[folders[i].ID]
		if node.ParentID == nil {
			structure.Folders = append(structure.Folders, node)
			continue
		}
		parent, ok := nodes[*node.ParentID]
		if !ok {
			s.logger.Warn("folder references unknown parent", "folder_id", node.ID, "parent_id", *node.ParentID)
			structure.Folders = append(structure.Folders, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	for _, node := range nodes {
		node.ChildCount = len(node.Children)
		node.FileCount = len(node.Files)
	}

	return structure, nil
}
