package medialib

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medialib/internal/domain"
	medialibSvc "medialib/internal/domain/services/medialib"
)

func TestBulkDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects empty request", func(t *testing.T) {
		f := newFixture()

		_, err := f.bulk.BulkDelete(ctx, &medialibSvc.BulkDeleteRequest{})
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.EqualError(t, err, "provide at least one fileId or folderId")
	})

	t.Run("deletes mixed sets with partial failure", func(t *testing.T) {
		f := newFixture()
		folder := f.mustFolder("docs", nil)
		file := f.mustFile("a.png", &folder, "k1")

		result, err := f.bulk.BulkDelete(ctx, &medialibSvc.BulkDeleteRequest{
			FileIDs:   []int64{file, 999},
			FolderIDs: []int64{folder, 888},
		})
		require.NoError(t, err)

		assert.Contains(t, result.DeletedFiles, file)
		assert.Contains(t, result.DeletedFolders, folder)

		require.Len(t, result.Failures, 2)
		kinds := map[string]int64{}
		for _, failure := range result.Failures {
			kinds[failure.Kind] = failure.ID
			assert.NotEmpty(t, failure.Reason)
		}
		assert.Equal(t, int64(999), kinds["file"])
		assert.Equal(t, int64(888), kinds["folder"])
	})

	t.Run("cascaded descendants are reported", func(t *testing.T) {
		f := newFixture()
		root := f.mustFolder("root", nil)
		child := f.mustFolder("child", &root)
		nested := f.mustFile("deep.png", &child, "k2")

		result, err := f.bulk.BulkDelete(ctx, &medialibSvc.BulkDeleteRequest{
			FolderIDs: []int64{root},
		})
		require.NoError(t, err)

		assert.ElementsMatch(t, []int64{root, child}, result.DeletedFolders)
		assert.ElementsMatch(t, []int64{nested}, result.DeletedFiles)
		assert.Empty(t, result.Failures)
	})

	t.Run("one failing item does not block the rest", func(t *testing.T) {
		f := newFixture()
		a := f.mustFolder("a", nil)
		b := f.mustFolder("b", nil)

		result, err := f.bulk.BulkDelete(ctx, &medialibSvc.BulkDeleteRequest{
			FolderIDs: []int64{777, a, b},
		})
		require.NoError(t, err)

		assert.ElementsMatch(t, []int64{a, b}, result.DeletedFolders)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, int64(777), result.Failures[0].ID)
	})

	t.Run("integrity errors abort the batch", func(t *testing.T) {
		f := newFixture()
		a := f.mustFolder("a", nil)
		broken := f.mustFolder("broken", nil)
		f.folderRepo.getErr[broken] = &domain.IntegrityError{Message: "parent reference loop"}

		_, err := f.bulk.BulkDelete(ctx, &medialibSvc.BulkDeleteRequest{
			FolderIDs: []int64{broken, a},
		})
		assert.ErrorIs(t, err, domain.ErrIntegrity)
	})
}

func TestBulkMove(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects empty request", func(t *testing.T) {
		f := newFixture()

		_, err := f.bulk.BulkMove(ctx, &medialibSvc.BulkMoveRequest{TargetFolderID: ptr[int64](1)})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("missing target fails the whole request", func(t *testing.T) {
		f := newFixture()
		a := f.mustFolder("a", nil)

		_, err := f.bulk.BulkMove(ctx, &medialibSvc.BulkMoveRequest{
			FolderIDs:      []int64{a},
			TargetFolderID: ptr[int64](999),
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("moves files and folders into the target", func(t *testing.T) {
		f := newFixture()
		target := f.mustFolder("target", nil)
		folder := f.mustFolder("movable", nil)
		file := f.mustFile("a.png", nil, "k1")

		result, err := f.bulk.BulkMove(ctx, &medialibSvc.BulkMoveRequest{
			FileIDs:        []int64{file},
			FolderIDs:      []int64{folder},
			TargetFolderID: &target,
		})
		require.NoError(t, err)
		assert.Empty(t, result.Failures)

		require.Len(t, result.MovedFolders, 1)
		require.NotNil(t, result.MovedFolders[0].ParentID)
		assert.Equal(t, target, *result.MovedFolders[0].ParentID)

		require.Len(t, result.MovedFiles, 1)
		require.NotNil(t, result.MovedFiles[0].FolderID)
		assert.Equal(t, target, *result.MovedFiles[0].FolderID)
	})

	t.Run("nil target moves to root", func(t *testing.T) {
		f := newFixture()
		parent := f.mustFolder("parent", nil)
		folder := f.mustFolder("nested", &parent)
		file := f.mustFile("a.png", &parent, "k1")

		result, err := f.bulk.BulkMove(ctx, &medialibSvc.BulkMoveRequest{
			FileIDs:   []int64{file},
			FolderIDs: []int64{folder},
		})
		require.NoError(t, err)
		require.Len(t, result.MovedFolders, 1)
		assert.Nil(t, result.MovedFolders[0].ParentID)
		require.Len(t, result.MovedFiles, 1)
		assert.Nil(t, result.MovedFiles[0].FolderID)
	})

	t.Run("target itself is rejected per item", func(t *testing.T) {
		f := newFixture()
		target := f.mustFolder("target", nil)
		other := f.mustFolder("other", nil)

		result, err := f.bulk.BulkMove(ctx, &medialibSvc.BulkMoveRequest{
			FolderIDs:      []int64{target, other},
			TargetFolderID: &target,
		})
		require.NoError(t, err)

		require.Len(t, result.Failures, 1)
		assert.Equal(t, target, result.Failures[0].ID)
		assert.Equal(t, "cannot move a folder into itself", result.Failures[0].Reason)

		require.Len(t, result.MovedFolders, 1)
		assert.Equal(t, other, result.MovedFolders[0].ID)
	})

	t.Run("ancestor of the target is rejected per item", func(t *testing.T) {
		f := newFixture()
		a := f.mustFolder("a", nil)
		b := f.mustFolder("b", &a)
		target := f.mustFolder("target", &b)

		result, err := f.bulk.BulkMove(ctx, &medialibSvc.BulkMoveRequest{
			FolderIDs:      []int64{a},
			TargetFolderID: &target,
		})
		require.NoError(t, err)

		require.Len(t, result.Failures, 1)
		assert.Equal(t, "cannot move a folder into its own descendant", result.Failures[0].Reason)
		assert.Empty(t, result.MovedFolders)
	})

	t.Run("outcome does not depend on item order", func(t *testing.T) {
		build := func() (*fixture, int64, int64, int64) {
			f := newFixture()
			a := f.mustFolder("a", nil)
			b := f.mustFolder("b", &a)
			target := f.mustFolder("target", &b)
			return f, a, b, target
		}

		f1, a1, b1, t1 := build()
		r1, err := f1.bulk.BulkMove(ctx, &medialibSvc.BulkMoveRequest{
			FolderIDs:      []int64{a1, b1},
			TargetFolderID: &t1,
		})
		require.NoError(t, err)

		f2, a2, b2, t2 := build()
		r2, err := f2.bulk.BulkMove(ctx, &medialibSvc.BulkMoveRequest{
			FolderIDs:      []int64{b2, a2},
			TargetFolderID: &t2,
		})
		require.NoError(t, err)

		// Both ancestors of the target are rejected in either order
		assert.Len(t, r1.Failures, 2)
		assert.Len(t, r2.Failures, 2)
		assert.Empty(t, r1.MovedFolders)
		assert.Empty(t, r2.MovedFolders)
	})
}
