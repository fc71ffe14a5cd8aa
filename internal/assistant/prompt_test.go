package assistant

import (
	"strings"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrnhq/jrn/internal/models"
)

func TestDigestRendersDatedLines(t *testing.T) {
	entries := []models.Entry{
		{Content: "shipped the release", CreatedAt: time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)},
		{Content: "long walk, head cleared", CreatedAt: time.Date(2026, 2, 13, 21, 0, 0, 0, time.UTC)},
	}

	digest := Digest(entries)
	assert.Equal(t, "[Feb 14, 2026] shipped the release\n\n[Feb 13, 2026] long walk, head cleared", digest)
}

func TestDigestEmpty(t *testing.T) {
	assert.Equal(t, "", Digest(nil))
}

func TestSystemPromptEmbedsDigest(t *testing.T) {
	prompt := SystemPrompt("[Feb 14, 2026] a marker line")
	assert.Contains(t, prompt, "Journal Context:\n[Feb 14, 2026] a marker line")
	assert.NotContains(t, prompt, digestMarker)
}

func TestRequestRoleMapping(t *testing.T) {
	assert.Equal(t, openai.ChatMessageRoleAssistant, requestRole(models.RoleAI))
	assert.Equal(t, openai.ChatMessageRoleUser, requestRole(models.RoleUser))
}

func TestBuildMessagesOrderAndRoles(t *testing.T) {
	entries := []models.Entry{
		{Content: "busy day", CreatedAt: time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)},
	}
	history := []models.ChatMessage{
		{Role: models.RoleUser, Content: "how was my week?"},
		{Role: models.RoleAI, Content: "pretty packed, honestly"},
	}

	messages := BuildMessages(entries, history, "and today?")
	require.Len(t, messages, 4)

	assert.Equal(t, openai.ChatMessageRoleSystem, messages[0].Role)
	assert.True(t, strings.Contains(messages[0].Content, "busy day"))

	assert.Equal(t, openai.ChatMessageRoleUser, messages[1].Role)
	assert.Equal(t, "how was my week?", messages[1].Content)
	assert.Equal(t, openai.ChatMessageRoleAssistant, messages[2].Role)
	assert.Equal(t, "pretty packed, honestly", messages[2].Content)

	assert.Equal(t, openai.ChatMessageRoleUser, messages[3].Role)
	assert.Equal(t, "and today?", messages[3].Content)
}

func TestBuildMessagesNoHistory(t *testing.T) {
	messages := BuildMessages(nil, nil, "hello")
	require.Len(t, messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, messages[0].Role)
	assert.Equal(t, openai.ChatMessageRoleUser, messages[1].Role)
}
