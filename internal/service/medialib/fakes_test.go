package medialib

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"medialib/internal/capabilities"
	"medialib/internal/domain"
	models "medialib/internal/domain/models/medialib"
	"medialib/internal/domain/repositories"
	medialibRepo "medialib/internal/domain/repositories/medialib"
	medialibSvc "medialib/internal/domain/services/medialib"
)

// memDB is the shared in-memory store behind the repository fakes. It mirrors
// the relational behavior the services rely on: live counts, not-found on
// missing IDs, exactly-once deletes.
type memDB struct {
	mu           sync.Mutex
	folders      map[int64]models.Folder
	files        map[int64]models.File
	nextFolderID int64
	nextFileID   int64
}

func newMemDB() *memDB {
	return &memDB{
		folders:      map[int64]models.Folder{},
		files:        map[int64]models.File{},
		nextFolderID: 1,
		nextFileID:   1,
	}
}

func (db *memDB) childCount(id int64) int {
	n := 0
	for _, f := range db.folders {
		if f.ParentID != nil && *f.ParentID == id {
			n++
		}
	}
	return n
}

func (db *memDB) fileCount(id int64) int {
	n := 0
	for _, f := range db.files {
		if f.FolderID != nil && *f.FolderID == id {
			n++
		}
	}
	return n
}

type fakeFolderRepo struct {
	db *memDB

	// getErr, when set, is returned by GetByID for the matching ID
	getErr map[int64]error
}

func newFakeFolderRepo(db *memDB) *fakeFolderRepo {
	return &fakeFolderRepo{db: db, getErr: map[int64]error{}}
}

func (r *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if folder.ParentID != nil {
		if _, ok := r.db.folders[*folder.ParentID]; !ok {
			return fmt.Errorf("parent folder: %w", domain.ErrNotFound)
		}
	}

	folder.ID = r.db.nextFolderID
	r.db.nextFolderID++
	r.db.folders[folder.ID] = *folder
	return nil
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, id int64) (*models.Folder, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if err, ok := r.getErr[id]; ok {
		return nil, err
	}

	folder, ok := r.db.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}
	folder.ChildCount = r.db.childCount(id)
	folder.FileCount = r.db.fileCount(id)
	return &folder, nil
}

func (r *fakeFolderRepo) Update(ctx context.Context, folder *models.Folder) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.folders[folder.ID]; !ok {
		return fmt.Errorf("folder %d: %w", folder.ID, domain.ErrNotFound)
	}
	r.db.folders[folder.ID] = *folder
	return nil
}

func (r *fakeFolderRepo) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.folders[id]; !ok {
		return fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}
	delete(r.db.folders, id)
	return nil
}

func (r *fakeFolderRepo) List(ctx context.Context, opts medialibRepo.ListFoldersOptions) ([]models.Folder, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var out []models.Folder
	for id, f := range r.db.folders {
		switch {
		case opts.ParentID == nil && f.ParentID != nil:
			continue
		case opts.ParentID != nil && (f.ParentID == nil || *f.ParentID != *opts.ParentID):
			continue
		}
		if opts.Query != "" && !strings.Contains(strings.ToLower(f.Name), strings.ToLower(opts.Query)) {
			continue
		}
		f.ChildCount = r.db.childCount(id)
		f.FileCount = r.db.fileCount(id)
		out = append(out, f)
	}

	for _, key := range opts.Sort {
		switch key.Field {
		case "id", "name", "createdAt", "updatedAt":
		default:
			return nil, fmt.Errorf("%w: unknown sort field %q", domain.ErrValidation, key.Field)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		for _, key := range opts.Sort {
			var less, greater bool
			switch key.Field {
			case "name":
				less, greater = out[i].Name < out[j].Name, out[i].Name > out[j].Name
			default:
				less, greater = out[i].ID < out[j].ID, out[i].ID > out[j].ID
			}
			if less || greater {
				if key.Desc {
					return greater
				}
				return less
			}
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *fakeFolderRepo) ListChildren(ctx context.Context, parentID *int64) ([]models.Folder, error) {
	return r.List(ctx, medialibRepo.ListFoldersOptions{ParentID: parentID})
}

func (r *fakeFolderRepo) ListAll(ctx context.Context) ([]models.Folder, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := make([]models.Folder, 0, len(r.db.folders))
	for _, f := range r.db.folders {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeFolderRepo) LockTree(ctx context.Context) error { return nil }

type fakeFileRepo struct {
	db *memDB
}

func newFakeFileRepo(db *memDB) *fakeFileRepo {
	return &fakeFileRepo{db: db}
}

func (r *fakeFileRepo) Create(ctx context.Context, file *models.File) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if file.FolderID != nil {
		if _, ok := r.db.folders[*file.FolderID]; !ok {
			return fmt.Errorf("folder: %w", domain.ErrNotFound)
		}
	}

	file.ID = r.db.nextFileID
	r.db.nextFileID++
	r.db.files[file.ID] = *file
	return nil
}

func (r *fakeFileRepo) GetByID(ctx context.Context, id int64) (*models.File, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	file, ok := r.db.files[id]
	if !ok {
		return nil, fmt.Errorf("file %d: %w", id, domain.ErrNotFound)
	}
	return &file, nil
}

func (r *fakeFileRepo) Update(ctx context.Context, file *models.File) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.files[file.ID]; !ok {
		return fmt.Errorf("file %d: %w", file.ID, domain.ErrNotFound)
	}
	if file.FolderID != nil {
		if _, ok := r.db.folders[*file.FolderID]; !ok {
			return fmt.Errorf("folder: %w", domain.ErrNotFound)
		}
	}
	r.db.files[file.ID] = *file
	return nil
}

func (r *fakeFileRepo) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.files[id]; !ok {
		return fmt.Errorf("file %d: %w", id, domain.ErrNotFound)
	}
	delete(r.db.files, id)
	return nil
}

func (r *fakeFileRepo) ListByFolder(ctx context.Context, folderID *int64) ([]models.File, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var out []models.File
	for _, f := range r.db.files {
		switch {
		case folderID == nil && f.FolderID != nil:
			continue
		case folderID != nil && (f.FolderID == nil || *f.FolderID != *folderID):
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeFileRepo) ListAll(ctx context.Context) ([]models.File, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := make([]models.File, 0, len(r.db.files))
	for _, f := range r.db.files {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fakeTxManager runs the function directly; the fakes are already atomic
// enough for single-goroutine tests.
type fakeTxManager struct{}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

func (m *fakeTxManager) ExecReadTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

// fakeStorage keeps payloads in memory and records removals
type fakeStorage struct {
	mu      sync.Mutex
	blobs   map[string][]byte
	removed []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{blobs: map[string][]byte{}}
}

func (s *fakeStorage) Store(ctx context.Context, key string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = data
	return int64(len(data)), nil
}

func (s *fakeStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("payload %s: %w", key, domain.ErrNotFound)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	s.removed = append(s.removed, key)
	return nil
}

// fakeActorProvider hands back a fixed system actor
type fakeActorProvider struct{}

func (p *fakeActorProvider) SystemActor(ctx context.Context) (*models.Actor, error) {
	return &models.Actor{ID: 1, Username: "api-user", IsActive: true}, nil
}

// fixture wires the full service graph over the in-memory fakes
type fixture struct {
	db         *memDB
	folderRepo *fakeFolderRepo
	fileRepo   *fakeFileRepo
	storage    *fakeStorage
	ancestry   medialibSvc.AncestryResolver

	folders medialibSvc.FolderService
	files   medialibSvc.FileService
	bulk    medialibSvc.BulkService
	tree    medialibSvc.TreeService
}

func newFixture() *fixture {
	db := newMemDB()
	folderRepo := newFakeFolderRepo(db)
	fileRepo := newFakeFileRepo(db)
	storage := newFakeStorage()
	txManager := &fakeTxManager{}
	actors := &fakeActorProvider{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	registry, err := capabilities.NewRegistry()
	if err != nil {
		panic(err)
	}

	ancestry := NewAncestryResolver(folderRepo)
	folders := NewFolderService(folderRepo, fileRepo, ancestry, txManager, actors, storage, logger)
	files := NewFileService(fileRepo, folderRepo, storage, registry, logger)
	bulk := NewBulkService(folders, files, folderRepo, fileRepo, ancestry, txManager, actors, logger)
	tree := NewTreeService(folderRepo, fileRepo, txManager, logger)

	return &fixture{
		db:         db,
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		storage:    storage,
		ancestry:   ancestry,
		folders:    folders,
		files:      files,
		bulk:       bulk,
		tree:       tree,
	}
}

// mustFolder seeds a folder directly into the store
func (f *fixture) mustFolder(name string, parentID *int64) int64 {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	id := f.db.nextFolderID
	f.db.nextFolderID++
	f.db.folders[id] = models.Folder{ID: id, Name: name, ParentID: parentID}
	return id
}

// mustFile seeds a file record directly into the store
func (f *fixture) mustFile(name string, folderID *int64, storageKey string) int64 {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	id := f.db.nextFileID
	f.db.nextFileID++
	f.db.files[id] = models.File{
		ID: id, Name: name, FolderID: folderID,
		StorageKey: storageKey, MimeType: "image/png", SizeBytes: 4,
	}
	if storageKey != "" {
		f.storage.blobs[storageKey] = []byte("data")
	}
	return id
}

func ptr[T any](v T) *T { return &v }
