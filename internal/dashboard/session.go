// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package dashboard holds the in-memory editable state behind the admin
// dashboard: one form per content section, the ordered program list, and the
// transient banners produced by saves and deletes. It is independent of the
// HTTP layer; handlers translate form posts into calls on Session.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"secondchance/internal/content"
	"secondchance/internal/program"
)

// ContentAPI is the slice of the backend client the session depends on.
// Declared here so tests can substitute a fake backend.
type ContentAPI interface {
	SiteContent(ctx context.Context) (content.Map, error)
	UpdateSiteContent(ctx context.Context, key, value string) error
	AdminPrograms(ctx context.Context) ([]program.Record, error)
	CreateProgram(ctx context.Context, p program.Payload) (program.Record, error)
	UpdateProgram(ctx context.Context, id string, p program.Payload) (program.Record, error)
	DeleteProgram(ctx context.Context, id string) error
}

// Session is the editable admin state. All methods are safe for concurrent
// use; network calls never run under the lock, and every asynchronous
// completion re-checks that the session is still open before applying
// results, so a closed session discards in-flight responses.
type Session struct {
	api ContentAPI

	mu       sync.Mutex
	closed   bool
	forms    map[string]content.Form
	programs []program.Program

	// savingID marks the single program currently being saved. Only one row
	// is visibly "saving" at a time; the dashboard form posts serialize
	// saves, so a set of in-flight ids would add surface without behavior.
	savingID string

	// lastNewID makes client-generated ids monotonic even when two adds
	// land in the same millisecond.
	lastNewID int64

	contentError   string
	contentSuccess string
}

// NewSession creates a session whose section forms start at their defaults.
// Call Load to populate from the backend.
func NewSession(api ContentAPI) *Session {
	forms := make(map[string]content.Form)
	for _, s := range content.Sections() {
		forms[s.Name] = s.BuildForm(content.Map{})
	}
	return &Session{api: api, forms: forms}
}

// Close marks the session ended. In-flight results arriving afterwards are
// discarded instead of being applied to freed state.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Load fetches the site content map and the admin program list concurrently.
// Each fetch failure is caught independently and degrades to an empty
// result, so a broken programs endpoint never blanks the content forms and
// vice versa.
func (s *Session) Load(ctx context.Context) {
	var wg sync.WaitGroup
	var siteContent content.Map
	var records []program.Record

	wg.Add(2)
	go func() {
		defer wg.Done()
		m, err := s.api.SiteContent(ctx)
		if err != nil {
			slog.Warn("site content load failed", "error", err)
			m = content.Map{}
		}
		siteContent = m
	}()
	go func() {
		defer wg.Done()
		recs, err := s.api.AdminPrograms(ctx)
		if err != nil {
			slog.Warn("admin programs load failed", "error", err)
			recs = nil
		}
		records = recs
	}()
	wg.Wait()

	programs := make([]program.Program, 0, len(records))
	for _, rec := range records {
		programs = append(programs, program.Normalize(rec))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for _, section := range content.Sections() {
		s.forms[section.Name] = section.BuildForm(siteContent)
	}
	s.programs = programs
}

// Form returns a copy of a section's current form values.
func (s *Session) Form(section string) content.Form {
	s.mu.Lock()
	defer s.mu.Unlock()

	form := make(content.Form, len(s.forms[section]))
	for k, v := range s.forms[section] {
		form[k] = v
	}
	return form
}

// SetField updates one field of one section form locally. Unknown sections
// and fields are ignored.
func (s *Session) SetField(sectionName, field, value string) {
	section, ok := content.ByName(sectionName)
	if !ok {
		return
	}
	known := false
	for _, f := range section.Fields {
		if f.Name == field {
			known = true
			break
		}
	}
	if !known {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.forms[sectionName][field] = value
}

// SaveSection validates the section's required fields, then writes every
// field of the section to the backend as independent key writes. On failure
// the in-memory values are kept as-is (nothing was applied locally) and a
// section-scoped error banner is set.
func (s *Session) SaveSection(ctx context.Context, sectionName string) error {
	section, ok := content.ByName(sectionName)
	if !ok {
		return fmt.Errorf("unknown section %q", sectionName)
	}

	form := s.Form(sectionName)
	s.clearBanners()

	if missing := section.MissingRequired(form); len(missing) > 0 {
		err := fmt.Errorf("%s is required", strings.Join(missing, ", "))
		s.setError(fmt.Sprintf("Failed to update %s: %s.", strings.ToLower(section.Label), err))
		return err
	}

	for _, w := range section.Writes(form) {
		if err := s.api.UpdateSiteContent(ctx, w.Key, w.Value); err != nil {
			slog.Error("section save failed", "section", sectionName, "key", w.Key, "error", err)
			s.setError(fmt.Sprintf("Failed to update %s. Please try again.", strings.ToLower(section.Label)))
			return fmt.Errorf("save %s: %w", sectionName, err)
		}
	}

	s.setSuccess(fmt.Sprintf("%s updated successfully.", section.Label))
	return nil
}

// Programs returns a copy of the current program list.
func (s *Session) Programs() []program.Program {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]program.Program, len(s.programs))
	copy(out, s.programs)
	return out
}

// ProgramByID returns the row with the given id.
func (s *Session) ProgramByID(id string) (program.Program, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.programs {
		if p.ID == id {
			return p, true
		}
	}
	return program.Program{}, false
}

// SavingID returns the id of the program currently being saved, or "".
func (s *Session) SavingID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.savingID
}

// AddProgram appends a new unsaved row with a client-generated id and
// returns it. The row only exists locally until its first successful save.
func (s *Session) AddProgram() program.Program {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= s.lastNewID {
		id = s.lastNewID + 1
	}
	s.lastNewID = id

	p := program.Program{
		ID:          fmt.Sprintf("new-%d", id),
		ProgramType: program.TypePHP,
		Order:       len(s.programs),
		Active:      true,
		IsNew:       true,
	}
	s.programs = append(s.programs, p)
	return p
}

// UpdateProgramRow replaces the editable fields of the row with the given id
// from user input. The id and the unsaved flag are preserved.
func (s *Session) UpdateProgramRow(id string, edited program.Program) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.programs {
		if p.ID != id {
			continue
		}
		edited.ID = p.ID
		edited.IsNew = p.IsNew
		s.programs[i] = edited
		return
	}
}

// SaveProgram validates and saves one row. Client-generated ids issue a
// create, persisted ids an update. On success the row is replaced with the
// server's normalized record so server-assigned id and slug become
// authoritative; on failure the row is left unchanged.
func (s *Session) SaveProgram(ctx context.Context, id string) error {
	row, ok := s.ProgramByID(id)
	if !ok {
		return fmt.Errorf("no program with id %q", id)
	}

	s.clearBanners()

	payload, err := program.Denormalize(row)
	if err != nil {
		var verr *program.ValidationError
		if errors.As(err, &verr) {
			s.setError(verr.Message)
		}
		return err
	}

	s.mu.Lock()
	s.savingID = id
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.savingID = ""
		s.mu.Unlock()
	}()

	var saved program.Record
	if program.IsClientID(row.ID) || row.IsNew {
		saved, err = s.api.CreateProgram(ctx, payload)
	} else {
		saved, err = s.api.UpdateProgram(ctx, row.ID, payload)
	}
	if err != nil {
		slog.Error("program save failed", "id", id, "error", err)
		s.setError("Failed to save program. Please check the fields and try again.")
		return fmt.Errorf("save program: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	for i, p := range s.programs {
		if p.ID == id {
			s.programs[i] = program.Normalize(saved)
			break
		}
	}
	s.contentSuccess = "Program saved successfully."
	return nil
}

// DeleteProgram removes a row. Client-only rows are removed locally with no
// network call; persisted rows are deleted remotely first and removed
// locally only on success.
func (s *Session) DeleteProgram(ctx context.Context, id string) error {
	if !program.IsClientID(id) {
		if err := s.api.DeleteProgram(ctx, id); err != nil {
			slog.Error("program delete failed", "id", id, "error", err)
			s.setError("Failed to delete program. Please try again.")
			return fmt.Errorf("delete program: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	for i, p := range s.programs {
		if p.ID == id {
			s.programs = append(s.programs[:i], s.programs[i+1:]...)
			break
		}
	}
	s.contentSuccess = "Program deleted successfully."
	return nil
}

// Banners returns the current error and success banner texts.
func (s *Session) Banners() (errText, successText string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contentError, s.contentSuccess
}

// DismissBanners clears both banners.
func (s *Session) DismissBanners() {
	s.clearBanners()
}

func (s *Session) clearBanners() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contentError = ""
	s.contentSuccess = ""
}

func (s *Session) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contentError = msg
}

func (s *Session) setSuccess(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contentSuccess = msg
}
