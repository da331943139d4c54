package medialib

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"medialib/internal/capabilities"
	"medialib/internal/config"
	"medialib/internal/domain"
	models "medialib/internal/domain/models/medialib"
	medialibRepo "medialib/internal/domain/repositories/medialib"
	medialibSvc "medialib/internal/domain/services/medialib"
)

type fileService struct {
	fileRepo   medialibRepo.FileRepository
	folderRepo medialibRepo.FolderRepository
	storage    medialibSvc.BinaryStorage
	registry   *capabilities.Registry
	logger     *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(
	fileRepo medialibRepo.FileRepository,
	folderRepo medialibRepo.FolderRepository,
	storage medialibSvc.BinaryStorage,
	registry *capabilities.Registry,
	logger *slog.Logger,
) medialibSvc.FileService {
	return &fileService{
		fileRepo:   fileRepo,
		folderRepo: folderRepo,
		storage:    storage,
		registry:   registry,
		logger:     logger,
	}
}

// Create uploads a payload and creates the metadata record. The file binds
// to its folder at creation time and is always a leaf.
func (s *fileService) Create(ctx context.Context, req *medialibSvc.CreateFileRequest) (*models.File, error) {
	if err := validateFileName(req.Name); err != nil {
		return nil, err
	}

	maxSize, ok := s.registry.MaxSize(req.MimeType)
	if !ok {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("unsupported media type %q", req.MimeType),
		}
	}
	if maxSize > 0 && req.SizeBytes > maxSize {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("payload of %d bytes exceeds the %d byte limit for %q", req.SizeBytes, maxSize, req.MimeType),
		}
	}

	if req.FolderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.FolderID); err != nil {
			return nil, fmt.Errorf("folder: %w", err)
		}
	}

	key := uuid.NewString()
	written, err := s.storage.Store(ctx, key, req.Content)
	if err != nil {
		return nil, fmt.Errorf("store payload: %w", err)
	}

	now := time.Now()
	file := &models.File{
		Name:            strings.TrimSpace(req.Name),
		AlternativeText: req.AlternativeText,
		Caption:         req.Caption,
		FolderID:        req.FolderID,
		StorageKey:      key,
		MimeType:        req.MimeType,
		SizeBytes:       written,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		// Record creation failed: drop the orphaned payload
		if removeErr := s.storage.Remove(ctx, key); removeErr != nil {
			s.logger.Warn("failed to remove orphaned payload", "key", key, "error", removeErr)
		}
		return nil, err
	}

	s.logger.Info("file created",
		"id", file.ID,
		"name", file.Name,
		"folder_id", file.FolderID,
		"mime_type", file.MimeType,
		"size_bytes", file.SizeBytes,
	)

	return file, nil
}

// Get retrieves a file record
func (s *fileService) Get(ctx context.Context, id int64) (*models.File, error) {
	return s.fileRepo.GetByID(ctx, id)
}

// Update partially updates file metadata. A folderId change is a move and
// validates that the target folder exists; files cannot create cycles, so no
// structural serialization is needed.
func (s *fileService) Update(ctx context.Context, id int64, req *medialibSvc.UpdateFileRequest) (*models.File, error) {
	if req.Name == nil && !req.AlternativeText.Present && !req.Caption.Present && !req.FolderID.Present {
		return nil, &domain.ValidationError{Message: "at least one field must be provided"}
	}
	if req.Name != nil {
		if err := validateFileName(*req.Name); err != nil {
			return nil, err
		}
	}

	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		file.Name = strings.TrimSpace(*req.Name)
	}
	if req.AlternativeText.Present {
		file.AlternativeText = req.AlternativeText.Value
	}
	if req.Caption.Present {
		file.Caption = req.Caption.Value
	}
	if req.FolderID.Present {
		if req.FolderID.Value != nil {
			if _, err := s.folderRepo.GetByID(ctx, *req.FolderID.Value); err != nil {
				return nil, fmt.Errorf("folder: %w", err)
			}
		}
		file.FolderID = req.FolderID.Value
	}

	file.UpdatedAt = time.Now()

	if err := s.fileRepo.Update(ctx, file); err != nil {
		return nil, err
	}

	s.logger.Info("file updated", "id", file.ID, "name", file.Name, "folder_id", file.FolderID)

	return file, nil
}

// Delete removes the metadata record exactly once, then asks the binary
// storage collaborator to drop the payload. Payload cleanup failures are
// logged, not surfaced: the record is already gone.
func (s *fileService) Delete(ctx context.Context, id int64) error {
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.fileRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.storage.Remove(ctx, file.StorageKey); err != nil {
		s.logger.Warn("failed to remove stored payload", "key", file.StorageKey, "error", err)
	}

	s.logger.Info("file deleted", "id", id, "name", file.Name)

	return nil
}

// Open streams the stored payload for a file
func (s *fileService) Open(ctx context.Context, id int64) (io.ReadCloser, *models.File, error) {
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.storage.Open(ctx, file.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("open payload: %w", err)
	}

	return rc, file, nil
}

// validateFileName validates a file name
func validateFileName(name string) error {
	err := validation.Validate(strings.TrimSpace(name),
		validation.Required.Error("name is required"),
		validation.Length(1, config.MaxFileNameLength),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}
