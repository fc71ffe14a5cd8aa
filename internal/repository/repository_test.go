package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jrnhq/jrn/internal/apperrors"
	"github.com/jrnhq/jrn/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Entry{}, &models.ChatMessage{}))
	return db
}

// seedEntry inserts an entry with an explicit creation time so ordering
// tests are deterministic.
func seedEntry(t *testing.T, db *gorm.DB, content string, createdAt time.Time) models.Entry {
	t.Helper()

	entry := models.Entry{Content: content, CreatedAt: createdAt}
	require.NoError(t, db.Create(&entry).Error)
	return entry
}

func TestEntryCreateThenListReturnsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewEntryRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedEntry(t, db, "older", base)
	seedEntry(t, db, "old", base.Add(time.Hour))

	created, err := repo.Create(ctx, "newest", "calm")
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	entries, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "newest", entries[0].Content)
	assert.Equal(t, created.ID, entries[0].ID)
}

func TestEntryCreateRejectsEmptyContent(t *testing.T) {
	db := newTestDB(t)
	repo := NewEntryRepository(db)

	for _, content := range []string{"", "   "} {
		_, err := repo.Create(context.Background(), content, "")
		var verr *apperrors.ValidationError
		require.ErrorAs(t, err, &verr)
	}

	var count int64
	require.NoError(t, db.Model(&models.Entry{}).Count(&count).Error)
	assert.Zero(t, count, "no row may be created for invalid input")
}

func TestEntryListPaginationNoOverlapNoGaps(t *testing.T) {
	db := newTestDB(t)
	repo := NewEntryRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		seedEntry(t, db, "entry", base.Add(time.Duration(i)*time.Minute))
	}

	first, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	second, err := repo.List(ctx, 10, 10)
	require.NoError(t, err)

	require.Len(t, first, 10)
	require.Len(t, second, 5)

	seen := make(map[uint]bool)
	for _, e := range append(first, second...) {
		assert.False(t, seen[e.ID], "entry %d returned twice", e.ID)
		seen[e.ID] = true
	}
	assert.Len(t, seen, 15)

	// Consistent ordering across the page boundary.
	assert.True(t, first[9].CreatedAt.After(second[0].CreatedAt) || first[9].CreatedAt.Equal(second[0].CreatedAt))
}

func TestEntryListClampsLimitAndOffset(t *testing.T) {
	db := newTestDB(t)
	repo := NewEntryRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		seedEntry(t, db, "entry", base.Add(time.Duration(i)*time.Minute))
	}

	entries, err := repo.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, entries, DefaultListLimit)

	entries, err = repo.List(ctx, -5, -3)
	require.NoError(t, err)
	assert.Len(t, entries, DefaultListLimit)

	assert.Equal(t, MaxListLimit, ClampLimit(10_000))
	assert.Equal(t, 42, ClampLimit(42))
}

func TestEntrySoftDeleteHidesRowAndRejectsFurtherMutation(t *testing.T) {
	db := newTestDB(t)
	repo := NewEntryRepository(db)
	ctx := context.Background()

	entry, err := repo.Create(ctx, "to be trashed", "")
	require.NoError(t, err)
	keep, err := repo.Create(ctx, "keep me", "")
	require.NoError(t, err)

	deleted, err := repo.SoftDelete(ctx, entry.ID)
	require.NoError(t, err)
	assert.True(t, deleted.DeletedAt.Valid, "returned row must carry the deletion timestamp")

	entries, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, keep.ID, entries[0].ID)

	recent, err := repo.Recent(ctx, 50)
	require.NoError(t, err)
	require.Len(t, recent, 1)

	_, err = repo.SoftDelete(ctx, entry.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "second delete must be NotFound")

	_, err = repo.Update(ctx, entry.ID, "rewrite", "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "update of a trashed entry must be NotFound")

	// The row itself is retained.
	var raw models.Entry
	require.NoError(t, db.Unscoped().First(&raw, entry.ID).Error)
	assert.True(t, raw.DeletedAt.Valid)
}

func TestEntryUpdateKeepsIDAndCreatedAt(t *testing.T) {
	db := newTestDB(t)
	repo := NewEntryRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "first draft", "tired")
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, "second draft", "rested")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "second draft", updated.Content)
	assert.Equal(t, "rested", updated.Mood)

	entries, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "second draft", entries[0].Content)
	assert.WithinDuration(t, created.CreatedAt, entries[0].CreatedAt, time.Second)
}

func TestEntryUpdateMissingIsNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewEntryRepository(db)

	_, err := repo.Update(context.Background(), 999, "content", "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = repo.SoftDelete(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestChatRecentReturnsWindowInChronologicalOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	turns := []string{"one", "two", "three", "four", "five"}
	for i, content := range turns {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAI
		}
		require.NoError(t, repo.Append(ctx, role, content))
	}

	window, err := repo.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, window, 3)
	assert.Equal(t, "three", window[0].Content)
	assert.Equal(t, "four", window[1].Content)
	assert.Equal(t, "five", window[2].Content)

	all, err := repo.Recent(ctx, 50)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "one", all[0].Content)
	assert.Equal(t, "five", all[4].Content)
}

func TestChatAppendRejectsEmptyContent(t *testing.T) {
	db := newTestDB(t)
	repo := NewChatRepository(db)

	err := repo.Append(context.Background(), models.RoleUser, "  ")
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestChatClearWipesEverything(t *testing.T) {
	db := newTestDB(t)
	repo := NewChatRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, models.RoleUser, "hello"))
	require.NoError(t, repo.Append(ctx, models.RoleAI, "hi there"))

	require.NoError(t, repo.Clear(ctx))

	messages, err := repo.Recent(ctx, 50)
	require.NoError(t, err)
	assert.Empty(t, messages)

	// Clearing an empty log is fine.
	require.NoError(t, repo.Clear(ctx))
}
