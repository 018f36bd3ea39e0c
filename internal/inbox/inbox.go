// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package inbox maintains the two read-mostly lead lists shown on the admin
// dashboard: contact form submissions and newsletter subscriptions. The two
// resources load with independent outcomes, so one failing endpoint never
// empties or blocks the other list.
package inbox

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"secondchance/internal/backend"
)

// SubmissionsAPI is the slice of the backend client the inbox depends on.
type SubmissionsAPI interface {
	ContactSubmissions(ctx context.Context) ([]backend.ContactSubmission, error)
	NewsletterSubscriptions(ctx context.Context) ([]backend.NewsletterSubscription, error)
	DeleteContactSubmission(ctx context.Context, id int64) error
	DeleteNewsletterSubscription(ctx context.Context, id int64) error
}

// Inbox holds the two submission lists and their accumulated load errors.
// Safe for concurrent use.
type Inbox struct {
	api SubmissionsAPI

	// useSampleData substitutes fixed sample rows for a failed fetch.
	// Operational/testing toggle only; config refuses it in production.
	useSampleData bool

	mu          sync.Mutex
	closed      bool
	contacts    []backend.ContactSubmission
	newsletters []backend.NewsletterSubscription
	loadError   string
}

// New creates an inbox backed by the given API.
func New(api SubmissionsAPI, useSampleData bool) *Inbox {
	return &Inbox{api: api, useSampleData: useSampleData}
}

// Close marks the inbox ended; in-flight results arriving afterwards are
// discarded.
func (in *Inbox) Close() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.closed = true
}

// Load fetches both lists concurrently with independent outcomes. A failed
// resource leaves its list empty (or substitutes sample rows when the
// toggle is on) and contributes a line to the combined error text; two
// failures accumulate rather than overwrite each other.
func (in *Inbox) Load(ctx context.Context) {
	var wg sync.WaitGroup
	var contacts []backend.ContactSubmission
	var newsletters []backend.NewsletterSubscription
	var contactErr, newsletterErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		contacts, contactErr = in.api.ContactSubmissions(ctx)
	}()
	go func() {
		defer wg.Done()
		newsletters, newsletterErr = in.api.NewsletterSubscriptions(ctx)
	}()
	wg.Wait()

	var errText string
	if contactErr != nil {
		slog.Warn("contact submissions load failed", "error", contactErr)
		if in.useSampleData {
			contacts = sampleContacts()
		} else {
			contacts = nil
			errText = appendLine(errText, fmt.Sprintf("Failed to load contact submissions: %s.", contactErr))
		}
	}
	if newsletterErr != nil {
		slog.Warn("newsletter subscriptions load failed", "error", newsletterErr)
		if in.useSampleData {
			newsletters = sampleNewsletters()
		} else {
			newsletters = nil
			errText = appendLine(errText, fmt.Sprintf("Failed to load newsletter subscriptions: %s.", newsletterErr))
		}
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if in.closed {
		return
	}
	in.contacts = contacts
	in.newsletters = newsletters
	in.loadError = errText
}

// Contacts returns a copy of the contact submission list.
func (in *Inbox) Contacts() []backend.ContactSubmission {
	in.mu.Lock()
	defer in.mu.Unlock()

	out := make([]backend.ContactSubmission, len(in.contacts))
	copy(out, in.contacts)
	return out
}

// Newsletters returns a copy of the newsletter subscription list.
func (in *Inbox) Newsletters() []backend.NewsletterSubscription {
	in.mu.Lock()
	defer in.mu.Unlock()

	out := make([]backend.NewsletterSubscription, len(in.newsletters))
	copy(out, in.newsletters)
	return out
}

// Error returns the combined load/delete error text, one line per failure.
func (in *Inbox) Error() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.loadError
}

// DismissError clears the error text.
func (in *Inbox) DismissError() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.loadError = ""
}

// DeleteContact deletes one contact submission remotely and prunes it from
// the local list on success.
func (in *Inbox) DeleteContact(ctx context.Context, id int64) error {
	if err := in.api.DeleteContactSubmission(ctx, id); err != nil {
		in.setError("Failed to delete item. Please try again.")
		return fmt.Errorf("delete contact submission: %w", err)
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if in.closed {
		return nil
	}
	for i, c := range in.contacts {
		if c.ID == id {
			in.contacts = append(in.contacts[:i], in.contacts[i+1:]...)
			break
		}
	}
	return nil
}

// DeleteNewsletter deletes one newsletter subscription remotely and prunes
// it from the local list on success.
func (in *Inbox) DeleteNewsletter(ctx context.Context, id int64) error {
	if err := in.api.DeleteNewsletterSubscription(ctx, id); err != nil {
		in.setError("Failed to delete item. Please try again.")
		return fmt.Errorf("delete newsletter subscription: %w", err)
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if in.closed {
		return nil
	}
	for i, n := range in.newsletters {
		if n.ID == id {
			in.newsletters = append(in.newsletters[:i], in.newsletters[i+1:]...)
			break
		}
	}
	return nil
}

// DeleteContactByStringID adapts DeleteContact to the string ids used by
// the deletion confirmation workflow.
func (in *Inbox) DeleteContactByStringID(ctx context.Context, id string) error {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return fmt.Errorf("parse contact id %q: %w", id, err)
	}
	return in.DeleteContact(ctx, n)
}

// DeleteNewsletterByStringID adapts DeleteNewsletter to the string ids used
// by the deletion confirmation workflow.
func (in *Inbox) DeleteNewsletterByStringID(ctx context.Context, id string) error {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return fmt.Errorf("parse subscription id %q: %w", id, err)
	}
	return in.DeleteNewsletter(ctx, n)
}

func (in *Inbox) setError(msg string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.loadError = appendLine(in.loadError, msg)
}

func appendLine(existing, line string) string {
	if existing == "" {
		return line
	}
	return existing + "\n" + line
}

// sampleContacts are the fixed rows shown when the sample-data toggle is on
// and the real fetch failed.
func sampleContacts() []backend.ContactSubmission {
	return []backend.ContactSubmission{
		{
			ID:        1,
			Name:      "John Doe",
			Email:     "john.doe@example.com",
			Phone:     "(555) 123-4567",
			Message:   "I am interested in learning more about your PHP housing program.",
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}
}

func sampleNewsletters() []backend.NewsletterSubscription {
	return []backend.NewsletterSubscription{
		{
			ID:        1,
			FirstName: "Sample",
			LastName:  "Subscriber",
			Email:     "sample@example.com",
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}
}
