// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"testing"

	"secondchance/internal/backend"
	"secondchance/internal/content"
	"secondchance/internal/program"
	"secondchance/internal/render"
)

func float64Ptr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool          { return &b }

// fakeBackend implements the API slices consumed by every handler group.
type fakeBackend struct {
	contentMap content.Map
	contentErr error

	programs    []program.Record
	programsErr error

	updates     []content.Write
	updateErr   error
	created     []program.Payload
	updatedIDs  []string
	deletedIDs  []string
	deleteErr   error
	contactMsgs []backend.ContactMessage
	signups     []backend.NewsletterSignup
	leadErr     error

	contacts    []backend.ContactSubmission
	newsletters []backend.NewsletterSubscription
	listErr     error

	deletedContacts    []int64
	deletedNewsletters []int64
}

func (f *fakeBackend) SiteContent(context.Context) (content.Map, error) {
	return f.contentMap, f.contentErr
}

func (f *fakeBackend) UpdateSiteContent(_ context.Context, key, value string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, content.Write{Key: key, Value: value})
	return nil
}

func (f *fakeBackend) Programs(context.Context) ([]program.Record, error) {
	return f.programs, f.programsErr
}

func (f *fakeBackend) AdminPrograms(context.Context) ([]program.Record, error) {
	return f.programs, f.programsErr
}

func (f *fakeBackend) CreateProgram(_ context.Context, p program.Payload) (program.Record, error) {
	f.created = append(f.created, p)
	return program.Record{
		ID:          int64(100 + len(f.created)),
		Name:        p.Name,
		Slug:        p.Slug,
		ProgramType: p.ProgramType,
		Order:       float64Ptr(float64(p.Order)),
		IsActive:    boolPtr(p.IsActive),
	}, nil
}

func (f *fakeBackend) UpdateProgram(_ context.Context, id string, p program.Payload) (program.Record, error) {
	f.updatedIDs = append(f.updatedIDs, id)
	return program.Record{
		ID:          1,
		Name:        p.Name,
		Slug:        p.Slug,
		ProgramType: p.ProgramType,
		Order:       float64Ptr(float64(p.Order)),
		IsActive:    boolPtr(p.IsActive),
	}, nil
}

func (f *fakeBackend) DeleteProgram(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeBackend) SubmitContact(_ context.Context, msg backend.ContactMessage) error {
	if f.leadErr != nil {
		return f.leadErr
	}
	f.contactMsgs = append(f.contactMsgs, msg)
	return nil
}

func (f *fakeBackend) SubscribeNewsletter(_ context.Context, signup backend.NewsletterSignup) error {
	if f.leadErr != nil {
		return f.leadErr
	}
	f.signups = append(f.signups, signup)
	return nil
}

func (f *fakeBackend) ContactSubmissions(context.Context) ([]backend.ContactSubmission, error) {
	return f.contacts, f.listErr
}

func (f *fakeBackend) NewsletterSubscriptions(context.Context) ([]backend.NewsletterSubscription, error) {
	return f.newsletters, f.listErr
}

func (f *fakeBackend) DeleteContactSubmission(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedContacts = append(f.deletedContacts, id)
	return nil
}

func (f *fakeBackend) DeleteNewsletterSubscription(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedNewsletters = append(f.deletedNewsletters, id)
	return nil
}

// newTestRenderer builds a dev-mode renderer from the embedded templates.
func newTestRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	rn, err := render.New(true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	return rn
}

var errBackendDown = errors.New("backend unreachable")
