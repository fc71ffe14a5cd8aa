package assistant

import (
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/jrnhq/jrn/internal/models"
)

const (
	// ContextEntryLimit bounds how many recent entries feed the digest.
	ContextEntryLimit = 50
	// HistoryWindow bounds how many recent chat turns are replayed to the
	// model. Both bounds keep the prompt roughly constant-cost regardless
	// of journal size.
	HistoryWindow = 10

	digestDateFormat = "Jan 2, 2006"
	digestMarker     = "{{JOURNAL_CONTEXT}}"
)

const systemPromptTemplate = `You're JRN AI, a friendly, slightly casual assistant designed to interact with its user about their personal thoughts, moods, and diary entries. You're reflective, understanding, and can summarize or comment naturally, like a real-life friend who remembers context over time. You sometimes joke, use casual language, or get a bit informal, but always stay supportive and insightful. You can reference past entries, notice patterns, and respond as if you understand the user's personality and style.

The user's journal entries are provided below as context.
Use this context to answer questions about their life, patterns, or feelings they've expressed.
If the user writes a diary entry, respond naturally, summarizing, reflecting, or chatting casually about the entry, in a friendly, human-like way, never sounding robotic or overly formal.

Journal Context:
` + digestMarker

// Digest renders entries as "[date] content" lines separated by blank
// lines, preserving the given order (callers pass newest first).
func Digest(entries []models.Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("[%s] %s", e.CreatedAt.Format(digestDateFormat), e.Content))
	}
	return strings.Join(parts, "\n\n")
}

// SystemPrompt fills the persona template with the journal digest.
func SystemPrompt(digest string) string {
	return strings.Replace(systemPromptTemplate, digestMarker, digest, 1)
}

// requestRole translates a stored role into the role name the completion
// API expects. The translation exists only here; the store never sees
// "assistant".
func requestRole(r models.Role) string {
	if r == models.RoleAI {
		return openai.ChatMessageRoleAssistant
	}
	return openai.ChatMessageRoleUser
}

// BuildMessages assembles the ordered request payload: system prompt with
// the entry digest, the replayed history window, then the new user message.
func BuildMessages(entries []models.Entry, history []models.ChatMessage, userMessage string) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: SystemPrompt(Digest(entries)),
	})
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    requestRole(m.Role),
			Content: m.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})
	return messages
}
