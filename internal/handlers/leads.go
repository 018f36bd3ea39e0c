// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"secondchance/internal/backend"
)

// LeadsAPI is the slice of the backend client the lead-capture forms need.
type LeadsAPI interface {
	SubmitContact(ctx context.Context, msg backend.ContactMessage) error
	SubscribeNewsletter(ctx context.Context, signup backend.NewsletterSignup) error
}

// Leads handles the public contact and newsletter form submissions. Both
// proxy straight to the backend; nothing is stored locally.
type Leads struct {
	api LeadsAPI
}

// NewLeads creates a new Leads handler group.
func NewLeads(api LeadsAPI) *Leads {
	return &Leads{api: api}
}

// ContactSubmit proxies a contact form submission to the backend and
// redirects back to the contact page with a one-time result flag.
func (l *Leads) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	msg := backend.ContactMessage{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Email:   strings.TrimSpace(r.FormValue("email")),
		Phone:   strings.TrimSpace(r.FormValue("phone")),
		Message: strings.TrimSpace(r.FormValue("message")),
	}

	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		http.Redirect(w, r, "/contact?error=1", http.StatusSeeOther)
		return
	}

	if err := l.api.SubmitContact(r.Context(), msg); err != nil {
		slog.Error("contact submission failed", "error", err)
		http.Redirect(w, r, "/contact?error=1", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/contact?sent=1", http.StatusSeeOther)
}

// NewsletterSubmit proxies a newsletter signup to the backend.
func (l *Leads) NewsletterSubmit(w http.ResponseWriter, r *http.Request) {
	signup := backend.NewsletterSignup{
		FirstName: strings.TrimSpace(r.FormValue("first_name")),
		LastName:  strings.TrimSpace(r.FormValue("last_name")),
		Email:     strings.TrimSpace(r.FormValue("email")),
	}

	if signup.FirstName == "" || signup.Email == "" {
		http.Redirect(w, r, "/get-involved?error=1", http.StatusSeeOther)
		return
	}

	if err := l.api.SubscribeNewsletter(r.Context(), signup); err != nil {
		slog.Error("newsletter signup failed", "error", err)
		http.Redirect(w, r, "/get-involved?error=1", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/get-involved?subscribed=1", http.StatusSeeOther)
}

// splitLines breaks multiline text into trimmed, non-empty lines.
func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
