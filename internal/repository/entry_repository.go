package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/jrnhq/jrn/internal/apperrors"
	"github.com/jrnhq/jrn/internal/models"
)

const (
	// DefaultListLimit applies when the caller sends no limit or a
	// non-numeric one.
	DefaultListLimit = 10
	// MaxListLimit caps the page size. The original accepted any value;
	// the cap is a deliberate hardening of the public contract.
	MaxListLimit = 100
)

// EntryRepository provides access to journal entries. Soft-deleted rows are
// invisible to every method except the post-delete read-back.
type EntryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// ClampLimit normalizes a requested page size into [1, MaxListLimit],
// falling back to DefaultListLimit for non-positive values.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// List returns live entries ordered newest-first, windowed by limit/offset.
// Each call is independent: the same store state always yields the same page.
func (r *EntryRepository) List(ctx context.Context, limit, offset int) ([]models.Entry, error) {
	limit = ClampLimit(limit)
	if offset < 0 {
		offset = 0
	}

	var entries []models.Entry
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.NewStore("list entries", err)
	}
	return entries, nil
}

// Recent returns up to n live entries, newest first, for the context digest.
func (r *EntryRepository) Recent(ctx context.Context, n int) ([]models.Entry, error) {
	var entries []models.Entry
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(n).
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.NewStore("recent entries", err)
	}
	return entries, nil
}

// Create inserts a new entry. Content must be non-empty.
func (r *EntryRepository) Create(ctx context.Context, content, mood string) (*models.Entry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidation("Content is required")
	}

	entry := models.Entry{
		Content: content,
		Mood:    mood,
	}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, apperrors.NewStore("create entry", err)
	}
	return &entry, nil
}

// Update overwrites content and mood of a live entry. CreatedAt is never
// touched. Updating a missing or soft-deleted entry yields ErrNotFound.
func (r *EntryRepository) Update(ctx context.Context, id uint, content, mood string) (*models.Entry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidation("Content is required")
	}

	var entry models.Entry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStore("find entry", err)
	}

	updates := map[string]interface{}{
		"content": content,
		"mood":    mood,
	}
	if err := r.db.WithContext(ctx).Model(&entry).Updates(updates).Error; err != nil {
		return nil, apperrors.NewStore("update entry", err)
	}
	return &entry, nil
}

// SoftDelete marks a live entry as deleted and returns the row with its
// deletion timestamp set. There is no undelete.
func (r *EntryRepository) SoftDelete(ctx context.Context, id uint) (*models.Entry, error) {
	var entry models.Entry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStore("find entry", err)
	}

	if err := r.db.WithContext(ctx).Delete(&entry).Error; err != nil {
		return nil, apperrors.NewStore("delete entry", err)
	}

	// Read back through the soft-delete filter so the returned row carries
	// the timestamp the database assigned.
	if err := r.db.WithContext(ctx).Unscoped().First(&entry, id).Error; err != nil {
		return nil, apperrors.NewStore("reload entry", err)
	}
	return &entry, nil
}
