// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"secondchance/internal/program"
)

// newTestServer creates an httptest.Server that responds with the given
// status code and body. The last request is captured for assertions.
func newTestServer(t *testing.T, statusCode int, body string, captured **http.Request, capturedBody *[]byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			*captured = r.Clone(context.Background())
		}
		if capturedBody != nil {
			b, _ := io.ReadAll(r.Body)
			*capturedBody = b
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		if body != "" {
			w.Write([]byte(body))
		}
	}))
}

func TestSiteContent(t *testing.T) {
	var req *http.Request
	srv := newTestServer(t, http.StatusOK, `{"hero_headline":"Welcome","story_body":"text"}`, &req, nil)
	defer srv.Close()

	c := New(srv.URL, "secret-token")
	m, err := c.SiteContent(context.Background())
	if err != nil {
		t.Fatalf("SiteContent: %v", err)
	}

	if m["hero_headline"] != "Welcome" || m["story_body"] != "text" {
		t.Errorf("unexpected map: %v", m)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer secret-token" {
		t.Errorf("Authorization = %q", got)
	}
	if req.Header.Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
	if req.URL.Path != "/api/site-content/all/" {
		t.Errorf("path = %q", req.URL.Path)
	}
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var req *http.Request
	srv := newTestServer(t, http.StatusOK, `{}`, &req, nil)
	defer srv.Close()

	c := New(srv.URL, "")
	if _, err := c.SiteContent(context.Background()); err != nil {
		t.Fatalf("SiteContent: %v", err)
	}
	if got := req.Header.Get("Authorization"); got != "" {
		t.Errorf("Authorization = %q, want unset", got)
	}
}

func TestUpdateSiteContent(t *testing.T) {
	var req *http.Request
	var body []byte
	srv := newTestServer(t, http.StatusOK, `{}`, &req, &body)
	defer srv.Close()

	c := New(srv.URL, "tok")
	if err := c.UpdateSiteContent(context.Background(), "hero_headline", "New Headline"); err != nil {
		t.Fatalf("UpdateSiteContent: %v", err)
	}

	if req.Method != http.MethodPut {
		t.Errorf("method = %q", req.Method)
	}
	if req.URL.Path != "/api/admin/site-content/hero_headline/" {
		t.Errorf("path = %q", req.URL.Path)
	}

	var payload map[string]string
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	if payload["content"] != "New Headline" {
		t.Errorf("content = %q", payload["content"])
	}
}

// TestUpdateSiteContent_EmptyValue verifies an empty value still produces a
// {"content": ""} body rather than omitting the field.
func TestUpdateSiteContent_EmptyValue(t *testing.T) {
	var body []byte
	srv := newTestServer(t, http.StatusNoContent, "", nil, &body)
	defer srv.Close()

	c := New(srv.URL, "tok")
	if err := c.UpdateSiteContent(context.Background(), "story_body", ""); err != nil {
		t.Fatalf("UpdateSiteContent: %v", err)
	}
	if string(body) != `{"content":""}` {
		t.Errorf("body = %s", body)
	}
}

// TestAdminPrograms_ListShapes verifies both accepted list payload shapes
// normalize to the same result.
func TestAdminPrograms_ListShapes(t *testing.T) {
	shapes := map[string]string{
		"bare list": `[{"id":1,"name":"PHP Housing","slug":"php-housing","program_type":"PHP"}]`,
		"envelope":  `{"count":1,"results":[{"id":1,"name":"PHP Housing","slug":"php-housing","program_type":"PHP"}]}`,
	}

	for name, payload := range shapes {
		t.Run(name, func(t *testing.T) {
			srv := newTestServer(t, http.StatusOK, payload, nil, nil)
			defer srv.Close()

			c := New(srv.URL, "tok")
			recs, err := c.AdminPrograms(context.Background())
			if err != nil {
				t.Fatalf("AdminPrograms: %v", err)
			}
			if len(recs) != 1 || recs[0].Name != "PHP Housing" {
				t.Errorf("records = %+v", recs)
			}
		})
	}
}

// TestAdminPrograms_UnexpectedShape verifies any other payload shape yields
// an empty list rather than an error.
func TestAdminPrograms_UnexpectedShape(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"detail":"weird"}`, nil, nil)
	defer srv.Close()

	c := New(srv.URL, "tok")
	recs, err := c.AdminPrograms(context.Background())
	if err != nil {
		t.Fatalf("AdminPrograms: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("records = %+v, want empty", recs)
	}
}

func TestCreateProgram(t *testing.T) {
	var req *http.Request
	srv := newTestServer(t, http.StatusCreated, `{"id":9,"name":"New Program","slug":"new-program","program_type":"PHP","is_active":true}`, &req, nil)
	defer srv.Close()

	c := New(srv.URL, "tok")
	rec, err := c.CreateProgram(context.Background(), program.Payload{
		Name:        "New Program",
		Slug:        "new-program",
		ProgramType: "PHP",
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("CreateProgram: %v", err)
	}

	if req.Method != http.MethodPost {
		t.Errorf("method = %q", req.Method)
	}
	if rec.ID != 9 || rec.Slug != "new-program" {
		t.Errorf("record = %+v", rec)
	}
}

// TestDelete_NoContent verifies a 204 with no body is treated as success.
func TestDelete_NoContent(t *testing.T) {
	var req *http.Request
	srv := newTestServer(t, http.StatusNoContent, "", &req, nil)
	defer srv.Close()

	c := New(srv.URL, "tok")
	if err := c.DeleteContactSubmission(context.Background(), 12); err != nil {
		t.Fatalf("DeleteContactSubmission: %v", err)
	}
	if req.URL.Path != "/api/admin/contact-submissions/12/" {
		t.Errorf("path = %q", req.URL.Path)
	}
	if req.Method != http.MethodDelete {
		t.Errorf("method = %q", req.Method)
	}
}

func TestAPIError_ServerMessage(t *testing.T) {
	srv := newTestServer(t, http.StatusBadRequest, `{"message":"slug already exists"}`, nil, nil)
	defer srv.Close()

	c := New(srv.URL, "tok")
	_, err := c.AdminPrograms(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d", apiErr.Status)
	}
	if apiErr.Error() != "slug already exists" {
		t.Errorf("Error() = %q", apiErr.Error())
	}
}

func TestAPIError_GenericMessage(t *testing.T) {
	srv := newTestServer(t, http.StatusBadGateway, `<html>gateway</html>`, nil, nil)
	defer srv.Close()

	c := New(srv.URL, "tok")
	_, err := c.SiteContent(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Error() != "HTTP error (status 502)" {
		t.Errorf("Error() = %q", apiErr.Error())
	}
}

func TestSubmitContact(t *testing.T) {
	var body []byte
	srv := newTestServer(t, http.StatusCreated, `{}`, nil, &body)
	defer srv.Close()

	c := New(srv.URL, "")
	err := c.SubmitContact(context.Background(), ContactMessage{
		Name:    "Jordan",
		Email:   "jordan@example.com",
		Message: "Looking for help.",
	})
	if err != nil {
		t.Fatalf("SubmitContact: %v", err)
	}

	var sent ContactMessage
	if err := json.Unmarshal(body, &sent); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if sent.Name != "Jordan" || sent.Email != "jordan@example.com" {
		t.Errorf("sent = %+v", sent)
	}
}
