// Package client implements the API client and the session state it
// feeds: an owned in-memory record cache, a command dispatcher for user
// actions, and a pure projection for display.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/apperr"
	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/models"
	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/validation"
)

// Client talks to the expense API. Requests run to completion or failure;
// there is no retry and no timeout beyond transport defaults.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
}

// New creates an API client for the given base URL.
func New(baseURL string) *Client {
	return &Client{BaseURL: baseURL, HTTPClient: http.DefaultClient}
}

func (c *Client) do(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Error == "" {
			payload.Error = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return apperr.FromStatus(resp.StatusCode, payload.Error)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Register creates a new account.
func (c *Client) Register(username, password string) (*models.User, error) {
	if err := validation.Credentials(username, password, true); err != nil {
		return nil, err
	}
	var resp struct {
		User *models.User `json:"user"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(http.MethodPost, "/api/auth/register", body, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Login exchanges credentials for a bearer token and stores it on the
// client for subsequent requests.
func (c *Client) Login(username, password string) (string, *models.User, error) {
	if err := validation.Credentials(username, password, false); err != nil {
		return "", nil, err
	}
	var resp struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return "", nil, err
	}
	c.Token = resp.Token
	return resp.Token, resp.User, nil
}

// ListExpenses fetches the caller's full record set.
func (c *Client) ListExpenses() ([]models.Expense, error) {
	var expenses []models.Expense
	if err := c.do(http.MethodGet, "/api/expenses", nil, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// CreateExpense validates the payload locally (a fast-path convenience;
// the server check is authoritative) and persists it.
func (c *Client) CreateExpense(p models.ExpensePayload) (*models.Expense, error) {
	p, err := validation.Expense(p)
	if err != nil {
		return nil, err
	}
	var expense models.Expense
	if err := c.do(http.MethodPost, "/api/expenses", p, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// UpdateExpense replaces a record in full.
func (c *Client) UpdateExpense(id int64, p models.ExpensePayload) (*models.Expense, error) {
	p, err := validation.Expense(p)
	if err != nil {
		return nil, err
	}
	var expense models.Expense
	if err := c.do(http.MethodPut, fmt.Sprintf("/api/expenses/%d", id), p, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// DeleteExpense removes a record.
func (c *Client) DeleteExpense(id int64) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/api/expenses/%d", id), nil, nil)
}
