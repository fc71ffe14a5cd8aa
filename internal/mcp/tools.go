package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools registers all MCP tools with the server using go-sdk.
// The SDK infers each InputSchema from the handler's input struct type.
func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_entries",
		Description: "List recent journal entries, newest first. Optional limit (max 100) and offset for paging.",
	}, handleListEntries)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_entry",
		Description: "Write a new journal entry. REQUIRED: content. Optional: mood (short free-form label).",
	}, handleCreateEntry)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_entry",
		Description: "Overwrite an entry's content and mood. REQUIRED: id, content. Fails if the entry is trashed.",
	}, handleUpdateEntry)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "trash_entry",
		Description: "Move an entry to the trash. ⚠️ Soft delete with no undo; confirm with the user first.",
	}, handleTrashEntry)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "chat",
		Description: "Send a message to the journal assistant. It answers with recent entries as context.",
	}, handleChat)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "chat_history",
		Description: "Read the recent assistant conversation in chronological order.",
	}, handleChatHistory)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear_chat_history",
		Description: "Wipe the whole assistant conversation. ⚠️ Permanent; confirm with the user first.",
	}, handleClearChatHistory)
}

type ListEntriesInput struct {
	Limit  float64 `json:"limit,omitempty"`
	Offset float64 `json:"offset,omitempty"`
}

func handleListEntries(ctx context.Context, req *mcp.CallToolRequest, input ListEntriesInput) (*mcp.CallToolResult, map[string]interface{}, error) {
	limit := int(input.Limit)
	if limit <= 0 {
		limit = 10
	}

	entries, err := apiClient.ListEntries(limit, int(input.Offset))
	if err != nil {
		return nil, nil, err
	}

	out := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		out = append(out, map[string]interface{}{
			"id":         e.ID,
			"content":    e.Content,
			"mood":       e.Mood,
			"created_at": e.CreatedAt,
		})
	}
	// Wrap the array so clients expecting a record are satisfied
	return nil, map[string]interface{}{"entries": out, "count": len(out)}, nil
}

type CreateEntryInput struct {
	Content string `json:"content"`
	Mood    string `json:"mood,omitempty"`
}

func handleCreateEntry(ctx context.Context, req *mcp.CallToolRequest, input CreateEntryInput) (*mcp.CallToolResult, map[string]interface{}, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, nil, errors.New("content is required")
	}

	entry, err := apiClient.CreateEntry(input.Content, input.Mood)
	if err != nil {
		return nil, nil, err
	}
	return nil, map[string]interface{}{
		"entry":    entry,
		"_message": "✅ Entry saved",
	}, nil
}

type UpdateEntryInput struct {
	ID      float64 `json:"id"`
	Content string  `json:"content"`
	Mood    string  `json:"mood,omitempty"`
}

func handleUpdateEntry(ctx context.Context, req *mcp.CallToolRequest, input UpdateEntryInput) (*mcp.CallToolResult, map[string]interface{}, error) {
	if input.ID <= 0 {
		return nil, nil, errors.New("id is required")
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, nil, errors.New("content is required")
	}

	entry, err := apiClient.UpdateEntry(uint(input.ID), input.Content, input.Mood)
	if err != nil {
		return nil, nil, err
	}
	return nil, map[string]interface{}{
		"entry":    entry,
		"_message": "✏️ Entry updated",
	}, nil
}

type TrashEntryInput struct {
	ID float64 `json:"id"`
}

func handleTrashEntry(ctx context.Context, req *mcp.CallToolRequest, input TrashEntryInput) (*mcp.CallToolResult, map[string]interface{}, error) {
	if input.ID <= 0 {
		return nil, nil, errors.New("id is required")
	}

	entry, err := apiClient.TrashEntry(uint(input.ID))
	if err != nil {
		return nil, nil, err
	}
	return nil, map[string]interface{}{
		"entry":    entry,
		"_message": "🗑 Entry moved to trash",
	}, nil
}

type ChatInput struct {
	Message string `json:"message"`
}

func handleChat(ctx context.Context, req *mcp.CallToolRequest, input ChatInput) (*mcp.CallToolResult, map[string]interface{}, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, nil, errors.New("message is required")
	}

	reply, err := apiClient.Chat(input.Message)
	if err != nil {
		return nil, nil, err
	}
	return nil, map[string]interface{}{"response": reply}, nil
}

type EmptyInput struct{}

func handleChatHistory(ctx context.Context, req *mcp.CallToolRequest, input EmptyInput) (*mcp.CallToolResult, map[string]interface{}, error) {
	messages, err := apiClient.History()
	if err != nil {
		return nil, nil, err
	}
	return nil, map[string]interface{}{"messages": messages, "count": len(messages)}, nil
}

func handleClearChatHistory(ctx context.Context, req *mcp.CallToolRequest, input EmptyInput) (*mcp.CallToolResult, map[string]interface{}, error) {
	if err := apiClient.ClearHistory(); err != nil {
		return nil, nil, err
	}
	return nil, map[string]interface{}{"success": true, "_message": "🧹 Chat history cleared"}, nil
}
