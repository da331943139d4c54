package medialib

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"medialib/internal/domain"
	models "medialib/internal/domain/models/medialib"
	"medialib/internal/domain/repositories"
	medialibRepo "medialib/internal/domain/repositories/medialib"
	medialibSvc "medialib/internal/domain/services/medialib"
)

type bulkService struct {
	folderService medialibSvc.FolderService
	fileService   medialibSvc.FileService
	folderRepo    medialibRepo.FolderRepository
	fileRepo      medialibRepo.FileRepository
	ancestry      medialibSvc.AncestryResolver
	txManager     repositories.TransactionManager
	actors        medialibSvc.ActorProvider
	logger        *slog.Logger
}

// NewBulkService creates a new bulk operator
func NewBulkService(
	folderService medialibSvc.FolderService,
	fileService medialibSvc.FileService,
	folderRepo medialibRepo.FolderRepository,
	fileRepo medialibRepo.FileRepository,
	ancestry medialibSvc.AncestryResolver,
	txManager repositories.TransactionManager,
	actors medialibSvc.ActorProvider,
	logger *slog.Logger,
) medialibSvc.BulkService {
	return &bulkService{
		folderService: folderService,
		fileService:   fileService,
		folderRepo:    folderRepo,
		fileRepo:      fileRepo,
		ancestry:      ancestry,
		txManager:     txManager,
		actors:        actors,
		logger:        logger,
	}
}

func validateBulkSets(fileIDs, folderIDs []int64) error {
	if len(fileIDs) == 0 && len(folderIDs) == 0 {
		return &domain.ValidationError{Message: "provide at least one fileId or folderId"}
	}
	return nil
}

// BulkDelete deletes files and folders with partial-failure semantics: each
// item is attempted independently through the single-item services and a
// failure is recorded, never propagated to the rest of the batch. Integrity
// errors are the exception; they abort the whole request.
func (s *bulkService) BulkDelete(ctx context.Context, req *medialibSvc.BulkDeleteRequest) (*medialibSvc.BulkDeleteResult, error) {
	if err := validateBulkSets(req.FileIDs, req.FolderIDs); err != nil {
		return nil, err
	}

	result := &medialibSvc.BulkDeleteResult{
		DeletedFiles:   []int64{},
		DeletedFolders: []int64{},
		Failures:       []medialibSvc.BulkFailure{},
	}

	for _, id := range req.FileIDs {
		if err := s.fileService.Delete(ctx, id); err != nil {
			if errors.Is(err, domain.ErrIntegrity) {
				return nil, err
			}
			result.Failures = append(result.Failures, medialibSvc.BulkFailure{
				Kind: "file", ID: id, Reason: err.Error(),
			})
			continue
		}
		result.DeletedFiles = append(result.DeletedFiles, id)
	}

	for _, id := range req.FolderIDs {
		deleted, err := s.folderService.Delete(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrIntegrity) {
				return nil, err
			}
			result.Failures = append(result.Failures, medialibSvc.BulkFailure{
				Kind: "folder", ID: id, Reason: err.Error(),
			})
			continue
		}
		// Cascaded descendants count as deleted items of the batch
		result.DeletedFolders = append(result.DeletedFolders, deleted.FolderIDs...)
		result.DeletedFiles = append(result.DeletedFiles, deleted.FileIDs...)
	}

	s.logger.Info("bulk delete finished",
		"deleted_files", len(result.DeletedFiles),
		"deleted_folders", len(result.DeletedFolders),
		"failures", len(result.Failures),
	)

	return result, nil
}

// BulkMove moves files and folders into a target folder within one
// transaction, holding the structural lock. Cycle decisions for every folder
// item are made against the target's ancestor chain as it was before any
// item was applied, so the aggregate outcome does not depend on item order.
func (s *bulkService) BulkMove(ctx context.Context, req *medialibSvc.BulkMoveRequest) (*medialibSvc.BulkMoveResult, error) {
	if err := validateBulkSets(req.FileIDs, req.FolderIDs); err != nil {
		return nil, err
	}

	actor, err := s.actors.SystemActor(ctx)
	if err != nil {
		return nil, err
	}

	result := &medialibSvc.BulkMoveResult{
		MovedFiles:   []models.File{},
		MovedFolders: []models.Folder{},
		Failures:     []medialibSvc.BulkFailure{},
	}

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.folderRepo.LockTree(ctx); err != nil {
			return err
		}

		// The target must resolve before anything moves; snapshot its
		// pre-operation ancestor chain for the per-item cycle checks.
		targetChain := map[int64]bool{}
		if req.TargetFolderID != nil {
			if _, err := s.folderRepo.GetByID(ctx, *req.TargetFolderID); err != nil {
				return fmt.Errorf("target folder: %w", err)
			}
			chain, err := s.ancestry.Chain(ctx, *req.TargetFolderID)
			if err != nil {
				return err
			}
			for _, id := range chain {
				targetChain[id] = true
			}
		}

		for _, id := range req.FolderIDs {
			if targetChain[id] {
				reason := "cannot move a folder into its own descendant"
				if req.TargetFolderID != nil && *req.TargetFolderID == id {
					reason = "cannot move a folder into itself"
				}
				result.Failures = append(result.Failures, medialibSvc.BulkFailure{
					Kind: "folder", ID: id, Reason: reason,
				})
				continue
			}

			folder, err := s.folderRepo.GetByID(ctx, id)
			if err != nil {
				if errors.Is(err, domain.ErrIntegrity) {
					return err
				}
				result.Failures = append(result.Failures, medialibSvc.BulkFailure{
					Kind: "folder", ID: id, Reason: err.Error(),
				})
				continue
			}

			folder.ParentID = req.TargetFolderID
			folder.UpdatedByID = &actor.ID
			folder.UpdatedAt = time.Now()

			if err := s.folderRepo.Update(ctx, folder); err != nil {
				if errors.Is(err, domain.ErrIntegrity) {
					return err
				}
				result.Failures = append(result.Failures, medialibSvc.BulkFailure{
					Kind: "folder", ID: id, Reason: err.Error(),
				})
				continue
			}

			result.MovedFolders = append(result.MovedFolders, *folder)
		}

		for _, id := range req.FileIDs {
			file, err := s.fileRepo.GetByID(ctx, id)
			if err != nil {
				if errors.Is(err, domain.ErrIntegrity) {
					return err
				}
				result.Failures = append(result.Failures, medialibSvc.BulkFailure{
					Kind: "file", ID: id, Reason: err.Error(),
				})
				continue
			}

			file.FolderID = req.TargetFolderID
			file.UpdatedAt = time.Now()

			if err := s.fileRepo.Update(ctx, file); err != nil {
				if errors.Is(err, domain.ErrIntegrity) {
					return err
				}
				result.Failures = append(result.Failures, medialibSvc.BulkFailure{
					Kind: "file", ID: id, Reason: err.Error(),
				})
				continue
			}

			result.MovedFiles = append(result.MovedFiles, *file)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bulk move finished",
		"target_folder_id", req.TargetFolderID,
		"moved_files", len(result.MovedFiles),
		"moved_folders", len(result.MovedFolders),
		"failures", len(result.Failures),
	)

	return result, nil
}
