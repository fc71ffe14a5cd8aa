package assistant

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jrnhq/jrn/internal/apperrors"
	"github.com/jrnhq/jrn/internal/models"
	"github.com/jrnhq/jrn/internal/repository"
)

type stubGateway struct {
	reply string
	err   error
	got   []openai.ChatCompletionMessage
	calls int
}

func (s *stubGateway) Complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	s.calls++
	s.got = messages
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestService(t *testing.T, gateway CompletionGateway) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Entry{}, &models.ChatMessage{}))

	entries := repository.NewEntryRepository(db)
	history := repository.NewChatRepository(db)
	return NewService(entries, history, gateway, zerolog.Nop()), db
}

func TestSendPersistsUserThenReply(t *testing.T) {
	gateway := &stubGateway{reply: "hey, good to hear from you"}
	service, db := newTestService(t, gateway)

	reply, err := service.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hey, good to hear from you", reply)

	var messages []models.ChatMessage
	require.NoError(t, db.Order("id ASC").Find(&messages).Error)
	require.Len(t, messages, 2)
	assert.Equal(t, models.RoleUser, messages[0].Role)
	assert.Equal(t, "hello", messages[0].Content)
	assert.Equal(t, models.RoleAI, messages[1].Role)
	assert.Equal(t, "hey, good to hear from you", messages[1].Content)
}

func TestSendEmptyMessageFailsBeforeStores(t *testing.T) {
	gateway := &stubGateway{reply: "unused"}
	service, db := newTestService(t, gateway)

	_, err := service.Send(context.Background(), "   ")
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, gateway.calls, "gateway must not be called for invalid input")

	var count int64
	require.NoError(t, db.Model(&models.ChatMessage{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSendUpstreamFailureLeavesHistoryUntouched(t *testing.T) {
	gateway := &stubGateway{err: &apperrors.UpstreamError{Status: 500, Body: "provider down"}}
	service, db := newTestService(t, gateway)

	_, err := service.Send(context.Background(), "hello")
	var upstreamErr *apperrors.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)

	var count int64
	require.NoError(t, db.Model(&models.ChatMessage{}).Count(&count).Error)
	assert.Zero(t, count, "nothing may be persisted when the provider fails")
}

func TestSendContextIncludesOnlyLiveEntries(t *testing.T) {
	gateway := &stubGateway{reply: "noted"}
	service, db := newTestService(t, gateway)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	live := []string{"live one", "live two", "live three"}
	for i, content := range live {
		entry := models.Entry{Content: content, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, db.Create(&entry).Error)
	}
	for i, content := range []string{"trashed one", "trashed two"} {
		entry := models.Entry{Content: content, CreatedAt: base.Add(time.Duration(10+i) * time.Hour)}
		require.NoError(t, db.Create(&entry).Error)
		require.NoError(t, db.Delete(&entry).Error)
	}

	_, err := service.Send(context.Background(), "what's up?")
	require.NoError(t, err)

	require.NotEmpty(t, gateway.got)
	system := gateway.got[0].Content
	for _, content := range live {
		assert.Contains(t, system, content)
	}
	assert.NotContains(t, system, "trashed one")
	assert.NotContains(t, system, "trashed two")

	// Most-recent first in the digest.
	assert.Less(t,
		strings.Index(system, "live three"),
		strings.Index(system, "live one"),
	)
}

func TestSendReplaysBoundedHistoryWindow(t *testing.T) {
	gateway := &stubGateway{reply: "ok"}
	service, db := newTestService(t, gateway)

	for i := 0; i < HistoryWindow+5; i++ {
		msg := models.ChatMessage{Role: models.RoleUser, Content: "turn"}
		require.NoError(t, db.Create(&msg).Error)
	}

	_, err := service.Send(context.Background(), "latest")
	require.NoError(t, err)

	// system + window + new user message
	assert.Len(t, gateway.got, HistoryWindow+2)
}
