// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package backend is the HTTP client for the content and lead-management
// REST API. It owns the wire conventions shared by every endpoint: JSON
// bodies, bearer-token auth, 204-means-no-body, server error messages in an
// optional {"message": ...} field, and list payloads arriving either as a
// bare array or a paginated {"results": [...]} envelope.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"secondchance/internal/content"
	"secondchance/internal/program"
)

// Client talks to the backend REST API.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// New creates a backend client. token may be empty for public-only use;
// admin endpoints will then fail with 401 from the server.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// ContactSubmission is one submitted contact form, backend-owned and
// read-mostly: the only mutation is deletion by id.
type ContactSubmission struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

// NewsletterSubscription is one newsletter signup.
type NewsletterSubscription struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// ContactMessage is the public contact form payload.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// NewsletterSignup is the public newsletter form payload.
type NewsletterSignup struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// --- Site content ---

// SiteContent fetches the full flat key→value content map.
func (c *Client) SiteContent(ctx context.Context) (content.Map, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/site-content/all/", nil)
	if err != nil {
		return nil, err
	}

	m := make(content.Map)
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("decode site content: %w", err)
	}
	return m, nil
}

// UpdateSiteContent writes a single content key. A nil-equivalent value is
// sent as the empty string, never omitted.
func (c *Client) UpdateSiteContent(ctx context.Context, key, value string) error {
	payload := map[string]string{"content": value}
	_, err := c.do(ctx, http.MethodPut, "/api/admin/site-content/"+key+"/", payload)
	return err
}

// --- Programs ---

// Programs fetches the public (active) program list.
func (c *Client) Programs(ctx context.Context) ([]program.Record, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/programs/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[program.Record](body), nil
}

// AdminPrograms fetches the full program list, including inactive rows.
func (c *Client) AdminPrograms(ctx context.Context) ([]program.Record, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/admin/programs/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[program.Record](body), nil
}

// CreateProgram creates a program and returns the server's record, whose
// id and slug are authoritative.
func (c *Client) CreateProgram(ctx context.Context, p program.Payload) (program.Record, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/admin/programs/", p)
	if err != nil {
		return program.Record{}, err
	}
	return decodeRecord(body)
}

// UpdateProgram updates an existing program by id and returns the server's
// record.
func (c *Client) UpdateProgram(ctx context.Context, id string, p program.Payload) (program.Record, error) {
	body, err := c.do(ctx, http.MethodPut, "/api/admin/programs/"+id+"/", p)
	if err != nil {
		return program.Record{}, err
	}
	return decodeRecord(body)
}

// DeleteProgram deletes a program by id.
func (c *Client) DeleteProgram(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/admin/programs/"+id+"/", nil)
	return err
}

// --- Lead capture (public) ---

// SubmitContact posts a contact form submission.
func (c *Client) SubmitContact(ctx context.Context, msg ContactMessage) error {
	_, err := c.do(ctx, http.MethodPost, "/api/contact/", msg)
	return err
}

// SubscribeNewsletter posts a newsletter signup.
func (c *Client) SubscribeNewsletter(ctx context.Context, signup NewsletterSignup) error {
	_, err := c.do(ctx, http.MethodPost, "/api/newsletter/", signup)
	return err
}

// --- Submissions (admin) ---

// ContactSubmissions fetches all contact form submissions.
func (c *Client) ContactSubmissions(ctx context.Context) ([]ContactSubmission, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/admin/contact-submissions/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[ContactSubmission](body), nil
}

// NewsletterSubscriptions fetches all newsletter subscriptions.
func (c *Client) NewsletterSubscriptions(ctx context.Context) ([]NewsletterSubscription, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/admin/newsletter-subscriptions/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[NewsletterSubscription](body), nil
}

// DeleteContactSubmission deletes one contact submission by id.
func (c *Client) DeleteContactSubmission(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/contact-submissions/%d/", id), nil)
	return err
}

// DeleteNewsletterSubscription deletes one newsletter subscription by id.
func (c *Client) DeleteNewsletterSubscription(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/newsletter-subscriptions/%d/", id), nil)
	return err
}

// do performs one request and returns the raw response body. A 204 returns
// a nil body. Non-2xx statuses become an *APIError carrying the server's
// message when one is present.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("backend marshal: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("backend request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("backend read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// decodeList normalizes a list response: a bare JSON array is used as-is,
// a paginated envelope contributes its results field, and any other shape
// yields an empty list.
func decodeList[T any](body []byte) []T {
	var items []T
	if err := json.Unmarshal(body, &items); err == nil {
		return items
	}

	var envelope struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Results != nil {
		return envelope.Results
	}

	return []T{}
}

func decodeRecord(body []byte) (program.Record, error) {
	var rec program.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return program.Record{}, fmt.Errorf("decode program record: %w", err)
	}
	return rec, nil
}
