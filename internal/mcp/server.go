// Package mcp exposes the journal over the Model Context Protocol so
// agents can read and write entries and talk to the assistant.
package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jrnhq/jrn/internal/api"
)

// apiClient holds the API client for tool handlers
var apiClient *api.Client

// ServeStdio starts the MCP server using the official go-sdk over stdio
func ServeStdio(client *api.Client) error {
	if client == nil {
		return errors.New("api client is required")
	}
	apiClient = client

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "jrn",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			Instructions: `📓 JRN - Personal Journal

You are connected to the user's personal journal. Entries are private;
treat their content with care and never fabricate entries the user did
not write.

## Tools
- list_entries(limit, offset): browse recent entries, newest first
- create_entry(content, mood): write a new entry on the user's behalf
- update_entry(id, content, mood): rewrite an existing entry
- trash_entry(id): move an entry to the trash (soft delete, no undo)
- chat(message): ask the journal assistant, which sees recent entries
- chat_history(): read the recent assistant conversation
- clear_chat_history(): wipe the assistant conversation

## Guidelines
- Only create or edit entries when the user explicitly asks
- Confirm before trash_entry or clear_chat_history; both are permanent`,
		},
	)

	registerTools(server)

	return server.Run(context.Background(), &mcp.StdioTransport{})
}
