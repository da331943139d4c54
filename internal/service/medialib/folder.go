package medialib

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"medialib/internal/config"
	"medialib/internal/domain"
	models "medialib/internal/domain/models/medialib"
	"medialib/internal/domain/repositories"
	medialibRepo "medialib/internal/domain/repositories/medialib"
	medialibSvc "medialib/internal/domain/services/medialib"
)

type folderService struct {
	folderRepo medialibRepo.FolderRepository
	fileRepo   medialibRepo.FileRepository
	ancestry   medialibSvc.AncestryResolver
	txManager  repositories.TransactionManager
	actors     medialibSvc.ActorProvider
	storage    medialibSvc.BinaryStorage
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo medialibRepo.FolderRepository,
	fileRepo medialibRepo.FileRepository,
	ancestry medialibSvc.AncestryResolver,
	txManager repositories.TransactionManager,
	actors medialibSvc.ActorProvider,
	storage medialibSvc.BinaryStorage,
	logger *slog.Logger,
) medialibSvc.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		ancestry:   ancestry,
		txManager:  txManager,
		actors:     actors,
		storage:    storage,
		logger:     logger,
	}
}

// Create creates a new folder
func (s *folderService) Create(ctx context.Context, req *medialibSvc.CreateFolderRequest) (*models.Folder, error) {
	if err := validateFolderName(req.Name); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.ParentID); err != nil {
			return nil, fmt.Errorf("parent folder: %w", err)
		}
	}

	actor, err := s.actors.SystemActor(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	folder := &models.Folder{
		ParentID:    req.ParentID,
		Name:        strings.TrimSpace(req.Name),
		CreatedByID: &actor.ID,
		UpdatedByID: &actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// Get retrieves a folder with live counts and its display ancestor chain
func (s *folderService) Get(ctx context.Context, id int64) (*models.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ancestors, err := s.ancestry.Ancestors(ctx, id, config.AncestorDisplayDepth)
	if err != nil {
		return nil, err
	}
	folder.Ancestors = ancestors

	return folder, nil
}

// List lists folders under a parent with live counts
func (s *folderService) List(ctx context.Context, req *medialibSvc.ListFoldersRequest) ([]models.Folder, error) {
	folders, err := s.folderRepo.List(ctx, medialibRepo.ListFoldersOptions{
		ParentID: req.ParentID,
		Query:    req.Query,
		Sort:     req.Sort,
	})
	if err != nil {
		return nil, err
	}

	if folders == nil {
		folders = []models.Folder{}
	}
	return folders, nil
}

// Update renames and/or moves a folder. A move runs the cycle check inside
// the same transaction as the write, with the structural lock held, so no
// concurrent structural write can slip between check and commit.
func (s *folderService) Update(ctx context.Context, id int64, req *medialibSvc.UpdateFolderRequest) (*models.Folder, error) {
	if req.Name == nil && !req.ParentID.Present {
		return nil, &domain.ValidationError{Message: "at least one of name or parentId must be provided"}
	}
	if req.Name != nil {
		if err := validateFolderName(*req.Name); err != nil {
			return nil, err
		}
	}

	actor, err := s.actors.SystemActor(ctx)
	if err != nil {
		return nil, err
	}

	var updated *models.Folder
	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if req.ParentID.Present {
			// Reparenting changes the shape of the tree
			if err := s.folderRepo.LockTree(ctx); err != nil {
				return err
			}
		}

		folder, err := s.folderRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			folder.Name = strings.TrimSpace(*req.Name)
		}

		if req.ParentID.Present {
			if req.ParentID.Value != nil {
				newParentID := *req.ParentID.Value
				if newParentID == id {
					return &domain.InvalidOperationError{Message: "cannot move a folder into itself"}
				}
				if _, err := s.folderRepo.GetByID(ctx, newParentID); err != nil {
					return fmt.Errorf("parent folder: %w", err)
				}

				cycle, err := s.ancestry.WouldCreateCycle(ctx, id, newParentID)
				if err != nil {
					return err
				}
				if cycle {
					return &domain.InvalidOperationError{Message: "cannot move a folder into its own descendant"}
				}

				folder.ParentID = &newParentID
			} else {
				// null = move to root
				folder.ParentID = nil
			}
		}

		folder.UpdatedByID = &actor.ID
		folder.UpdatedAt = time.Now()

		if err := s.folderRepo.Update(ctx, folder); err != nil {
			return err
		}

		updated = folder
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", updated.ID,
		"name", updated.Name,
		"parent_id", updated.ParentID,
	)

	return updated, nil
}

// Delete recursively deletes a folder, its descendant folders and all
// contained files as one atomic unit. The full set of deleted identifiers is
// reported; the IDs are never reused and later references resolve to
// not-found.
func (s *folderService) Delete(ctx context.Context, id int64) (*medialibSvc.DeleteFolderResult, error) {
	result := &medialibSvc.DeleteFolderResult{
		FolderIDs: []int64{},
		FileIDs:   []int64{},
	}
	var storageKeys []string

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.folderRepo.LockTree(ctx); err != nil {
			return err
		}

		if _, err := s.folderRepo.GetByID(ctx, id); err != nil {
			return err
		}

		return s.deleteSubtree(ctx, id, result, &storageKeys)
	})
	if err != nil {
		return nil, err
	}

	// Payload cleanup is delegated to the binary storage collaborator and is
	// outside the metadata consistency domain: a failure here is logged, the
	// records are already gone.
	for _, key := range storageKeys {
		if err := s.storage.Remove(ctx, key); err != nil {
			s.logger.Warn("failed to remove stored payload", "key", key, "error", err)
		}
	}

	s.logger.Info("folder deleted",
		"id", id,
		"folder_count", len(result.FolderIDs),
		"file_count", len(result.FileIDs),
	)

	return result, nil
}

// deleteSubtree removes a folder's descendants bottom-up, then the folder
// itself, collecting every deleted identifier and payload key.
func (s *folderService) deleteSubtree(ctx context.Context, folderID int64, result *medialibSvc.DeleteFolderResult, storageKeys *[]string) error {
	children, err := s.folderRepo.ListChildren(ctx, &folderID)
	if err != nil {
		return fmt.Errorf("list child folders: %w", err)
	}
	for _, child := range children {
		if err := s.deleteSubtree(ctx, child.ID, result, storageKeys); err != nil {
			return err
		}
	}

	files, err := s.fileRepo.ListByFolder(ctx, &folderID)
	if err != nil {
		return fmt.Errorf("list files: %w", err)
	}
	for _, file := range files {
		if err := s.fileRepo.Delete(ctx, file.ID); err != nil {
			return fmt.Errorf("delete file %d: %w", file.ID, err)
		}
		result.FileIDs = append(result.FileIDs, file.ID)
		*storageKeys = append(*storageKeys, file.StorageKey)
	}

	if err := s.folderRepo.Delete(ctx, folderID); err != nil {
		return err
	}
	result.FolderIDs = append(result.FolderIDs, folderID)

	return nil
}

// validateFolderName validates a folder name
func validateFolderName(name string) error {
	err := validation.Validate(strings.TrimSpace(name),
		validation.Required.Error("name is required"),
		validation.Length(1, config.MaxFolderNameLength),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}
