package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jrnhq/jrn/internal/apperrors"
	"github.com/jrnhq/jrn/internal/repository"
)

// EntryHandler serves the /api/entries endpoints.
type EntryHandler struct {
	entries *repository.EntryRepository
	log     zerolog.Logger
}

// NewEntryHandler creates an EntryHandler.
func NewEntryHandler(entries *repository.EntryRepository, log zerolog.Logger) *EntryHandler {
	return &EntryHandler{entries: entries, log: log}
}

// EntryInput DTO for creating or updating an entry
type EntryInput struct {
	Content string `json:"content" binding:"required"`
	Mood    string `json:"mood"`
}

// List returns live entries newest-first. limit and offset default to 10/0
// when absent or non-numeric; limit is capped at 100.
func (h *EntryHandler) List(c *gin.Context) {
	limit := queryInt(c, "limit", repository.DefaultListLimit)
	offset := queryInt(c, "offset", 0)

	entries, err := h.entries.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, h.log, err, "Entry not found")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Create inserts a new entry.
func (h *EntryHandler) Create(c *gin.Context) {
	var input EntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	entry, err := h.entries.Create(c.Request.Context(), input.Content, input.Mood)
	if err != nil {
		writeError(c, h.log, err, "Entry not found")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// Update overwrites content and mood of a live entry.
func (h *EntryHandler) Update(c *gin.Context) {
	id, err := entryID(c)
	if err != nil {
		writeError(c, h.log, err, "Entry not found")
		return
	}

	var input EntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	entry, err := h.entries.Update(c.Request.Context(), id, input.Content, input.Mood)
	if err != nil {
		writeError(c, h.log, err, "Entry not found")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// Delete soft-deletes a live entry and returns the trashed row.
func (h *EntryHandler) Delete(c *gin.Context) {
	id, err := entryID(c)
	if err != nil {
		writeError(c, h.log, err, "Entry not found")
		return
	}

	entry, err := h.entries.SoftDelete(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err, "Entry not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Entry moved to trash", "entry": entry})
}

// entryID parses the :id path parameter. A malformed id behaves like a
// missing entry.
func entryID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperrors.ErrNotFound
	}
	return uint(id), nil
}

// queryInt reads an integer query parameter, falling back on absent or
// non-numeric values.
func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
