// Package api is the terminal client's HTTP client for the JRN server.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/zalando/go-keyring"

	"github.com/jrnhq/jrn/internal/cliconfig"
	"github.com/jrnhq/jrn/internal/models"
)

const (
	defaultBaseURL = "http://localhost:3000"

	// KeyringService namespaces the stored session token in the OS keyring.
	KeyringService = "jrn"
	// KeyringTokenKey is the keyring entry holding the session token.
	KeyringTokenKey = "auth_token"
)

// Client talks to the JRN server API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
}

// NewClient creates a client using JRN_SERVER_URL, the saved CLI config or
// the local default, and the session token from the OS keyring if present.
func NewClient() *Client {
	baseURL := os.Getenv("JRN_SERVER_URL")
	if baseURL == "" {
		if cfg, err := cliconfig.Load(); err == nil && cfg.ServerURL != "" {
			baseURL = cfg.ServerURL
		}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	token, err := keyring.Get(KeyringService, KeyringTokenKey)
	if err != nil {
		token = ""
	}

	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// loginResponse mirrors the server's login body.
type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// HistoryMessage is one stored chat turn as returned by the server.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Login exchanges the access password for a session token.
func (c *Client) Login(password string) (string, error) {
	body, err := c.makeRequest(http.MethodPost, "/api/login", map[string]string{"password": password})
	if err != nil {
		return "", err
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse login response: %w", err)
	}
	return resp.Token, nil
}

// Logout invalidates the server-side cookie session.
func (c *Client) Logout() error {
	_, err := c.makeRequest(http.MethodPost, "/api/logout", nil)
	return err
}

// ListEntries fetches one page of live entries, newest first.
func (c *Client) ListEntries(limit, offset int) ([]models.Entry, error) {
	query := url.Values{}
	query.Set("limit", fmt.Sprintf("%d", limit))
	query.Set("offset", fmt.Sprintf("%d", offset))

	body, err := c.makeRequest(http.MethodGet, "/api/entries?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var entries []models.Entry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse entries: %w", err)
	}
	return entries, nil
}

// CreateEntry adds a journal entry.
func (c *Client) CreateEntry(content, mood string) (*models.Entry, error) {
	body, err := c.makeRequest(http.MethodPost, "/api/entries", map[string]string{
		"content": content,
		"mood":    mood,
	})
	if err != nil {
		return nil, err
	}

	var entry models.Entry
	if err := json.Unmarshal(body, &entry); err != nil {
		return nil, fmt.Errorf("failed to parse entry: %w", err)
	}
	return &entry, nil
}

// UpdateEntry overwrites an entry's content and mood.
func (c *Client) UpdateEntry(id uint, content, mood string) (*models.Entry, error) {
	body, err := c.makeRequest(http.MethodPut, fmt.Sprintf("/api/entries/%d", id), map[string]string{
		"content": content,
		"mood":    mood,
	})
	if err != nil {
		return nil, err
	}

	var entry models.Entry
	if err := json.Unmarshal(body, &entry); err != nil {
		return nil, fmt.Errorf("failed to parse entry: %w", err)
	}
	return &entry, nil
}

// TrashEntry soft-deletes an entry and returns the trashed row.
func (c *Client) TrashEntry(id uint) (*models.Entry, error) {
	body, err := c.makeRequest(http.MethodDelete, fmt.Sprintf("/api/entries/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Message string       `json:"message"`
		Entry   models.Entry `json:"entry"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse delete response: %w", err)
	}
	return &resp.Entry, nil
}

// Chat sends one message and returns the assistant reply.
func (c *Client) Chat(message string) (string, error) {
	body, err := c.makeRequest(http.MethodPost, "/api/chat", map[string]string{"message": message})
	if err != nil {
		return "", err
	}

	var resp struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse chat response: %w", err)
	}
	return resp.Response, nil
}

// History fetches the recent chat turns in chronological order.
func (c *Client) History() ([]HistoryMessage, error) {
	body, err := c.makeRequest(http.MethodGet, "/api/chat/history", nil)
	if err != nil {
		return nil, err
	}

	var messages []HistoryMessage
	if err := json.Unmarshal(body, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	return messages, nil
}

// ClearHistory wipes the whole chat history.
func (c *Client) ClearHistory() error {
	_, err := c.makeRequest(http.MethodDelete, "/api/chat/history", nil)
	return err
}

// makeRequest makes an HTTP request and returns the response body
func (c *Client) makeRequest(method, endpoint string, body interface{}) ([]byte, error) {
	url := c.BaseURL + endpoint

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
