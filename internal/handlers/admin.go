// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the site. Handlers are
// grouped by concern (admin, auth, public, leads) and receive their
// dependencies through the handler struct.
package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"secondchance/internal/cache"
	"secondchance/internal/confirm"
	"secondchance/internal/content"
	"secondchance/internal/dashboard"
	"secondchance/internal/inbox"
	"secondchance/internal/program"
	"secondchance/internal/render"
)

// fieldView is one content field prepared for the dashboard template.
type fieldView struct {
	Name      string
	Label     string
	Value     string
	Required  bool
	Multiline bool
}

// sectionView is one content section prepared for the dashboard template.
type sectionView struct {
	Name   string
	Label  string
	Fields []fieldView
}

// fieldLabels maps logical field names to admin UI labels.
var fieldLabels = map[string]string{
	"headline":           "Headline",
	"subheadline":        "Subheadline",
	"description":        "Description",
	"primaryCtaText":     "Primary Button Text",
	"primaryCtaHref":     "Primary Button Link",
	"secondaryCtaText":   "Secondary Button Text",
	"secondaryCtaHref":   "Secondary Button Link",
	"backgroundGradient": "Background Gradient",
	"heading":            "Heading",
	"body":               "Body",
	"phone":              "Phone",
	"email":              "Email",
	"address":            "Address",
	"blurb":              "Blurb",
}

// Admin groups all admin panel HTTP handlers and their dependencies.
type Admin struct {
	renderer  *render.Renderer
	dash      *dashboard.Session
	inbox     *inbox.Inbox
	confirms  *confirm.Workflow
	pageCache *cache.PageCache
}

// NewAdmin creates a new Admin handler group. pageCache may be nil when
// Valkey is not configured; cache invalidation is then a no-op.
func NewAdmin(renderer *render.Renderer, dash *dashboard.Session, ibx *inbox.Inbox, confirms *confirm.Workflow, pageCache *cache.PageCache) *Admin {
	return &Admin{
		renderer:  renderer,
		dash:      dash,
		inbox:     ibx,
		confirms:  confirms,
		pageCache: pageCache,
	}
}

// Dashboard renders the content editing page. A plain GET refreshes the
// editing session from the backend; redirects after a save pass keep=1 so
// pending banners and unsaved rows survive the round trip.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("keep") != "1" {
		a.dash.Load(r.Context())
	}

	sections := make([]sectionView, 0, 3)
	for _, sec := range content.Sections() {
		form := a.dash.Form(sec.Name)
		sv := sectionView{Name: sec.Name, Label: sec.Label}
		for _, f := range sec.Fields {
			label := fieldLabels[f.Name]
			if label == "" {
				label = f.Name
			}
			sv.Fields = append(sv.Fields, fieldView{
				Name:      f.Name,
				Label:     label,
				Value:     form[f.Name],
				Required:  f.Required,
				Multiline: f.Multiline,
			})
		}
		sections = append(sections, sv)
	}

	a.renderer.Page(w, r, "dashboard", &render.PageData{
		Title:   "Site Content",
		Section: "dashboard",
		Flashes: a.takeDashboardFlashes(),
		Data: map[string]any{
			"Sections":    sections,
			"Programs":    a.dash.Programs(),
			"TypeOptions": program.TypeOptions(),
			"SavingID":    a.dash.SavingID(),
		},
	})
}

// SectionSave handles a content section form submission.
func (a *Admin) SectionSave(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	sec, ok := content.ByName(name)
	if !ok {
		http.NotFound(w, r)
		return
	}

	for _, f := range sec.Fields {
		a.dash.SetField(name, f.Name, r.FormValue(f.Name))
	}

	if err := a.dash.SaveSection(r.Context(), name); err == nil {
		a.invalidatePages(r)
	}

	http.Redirect(w, r, "/admin/dashboard?keep=1", http.StatusSeeOther)
}

// ProgramAdd appends a blank program row to the editing session.
func (a *Admin) ProgramAdd(w http.ResponseWriter, r *http.Request) {
	a.dash.AddProgram()
	http.Redirect(w, r, "/admin/dashboard?keep=1", http.StatusSeeOther)
}

// ProgramSave handles a program row form submission.
func (a *Admin) ProgramSave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a.dash.UpdateProgramRow(id, program.Program{
		Name:             r.FormValue("name"),
		Slug:             r.FormValue("slug"),
		ProgramType:      r.FormValue("program_type"),
		ShortDescription: r.FormValue("short_description"),
		Description:      r.FormValue("description"),
		FeaturesText:     r.FormValue("features"),
		Order:            program.ParseOrder(r.FormValue("order")),
		Active:           r.FormValue("is_active") != "",
	})

	if err := a.dash.SaveProgram(r.Context(), id); err == nil {
		a.invalidatePages(r)
	}

	http.Redirect(w, r, "/admin/dashboard?keep=1", http.StatusSeeOther)
}

// ProgramDelete records a delete intent for a program row and sends the
// admin to the confirmation page. Nothing is deleted yet.
func (a *Admin) ProgramDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	name := "this program"
	if p, ok := a.dash.ProgramByID(id); ok && p.Name != "" {
		name = p.Name
	}

	if err := a.confirms.Request(confirm.KindProgram, id, name); err != nil {
		slog.Warn("delete request rejected", "error", err)
	}
	http.Redirect(w, r, "/admin/confirm", http.StatusSeeOther)
}

// Inbox renders the submissions page. Like the dashboard, a plain GET
// refreshes from the backend; keep=1 preserves in-memory state.
func (a *Admin) Inbox(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("keep") != "1" {
		a.inbox.Load(r.Context())
	}

	var flashes []render.Flash
	if msg := a.inbox.Error(); msg != "" {
		flashes = append(flashes, render.Flash{Type: "error", Message: msg})
		a.inbox.DismissError()
	}

	a.renderer.Page(w, r, "inbox", &render.PageData{
		Title:   "Submissions",
		Section: "inbox",
		Flashes: flashes,
		Data: map[string]any{
			"Contacts":    a.inbox.Contacts(),
			"Newsletters": a.inbox.Newsletters(),
		},
	})
}

// ContactDelete records a delete intent for a contact submission.
func (a *Admin) ContactDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	name := "this submission"
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		for _, c := range a.inbox.Contacts() {
			if c.ID == n && c.Name != "" {
				name = fmt.Sprintf("the submission from %s", c.Name)
				break
			}
		}
	}

	if err := a.confirms.Request(confirm.KindContact, id, name); err != nil {
		slog.Warn("delete request rejected", "error", err)
	}
	http.Redirect(w, r, "/admin/confirm", http.StatusSeeOther)
}

// NewsletterDelete records a delete intent for a newsletter subscription.
func (a *Admin) NewsletterDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	name := "this subscription"
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		for _, s := range a.inbox.Newsletters() {
			if s.ID == n && s.Email != "" {
				name = fmt.Sprintf("the subscription for %s", s.Email)
				break
			}
		}
	}

	if err := a.confirms.Request(confirm.KindNewsletter, id, name); err != nil {
		slog.Warn("delete request rejected", "error", err)
	}
	http.Redirect(w, r, "/admin/confirm", http.StatusSeeOther)
}

// ConfirmPage renders the pending deletion for explicit confirmation.
func (a *Admin) ConfirmPage(w http.ResponseWriter, r *http.Request) {
	intent, ok := a.confirms.Pending()
	if !ok {
		http.Redirect(w, r, "/admin/dashboard?keep=1", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "confirm_delete", &render.PageData{
		Title:   "Confirm Deletion",
		Section: confirmSection(intent.Kind),
		Data:    map[string]any{"DisplayName": intent.DisplayName},
	})
}

// ConfirmSubmit executes the pending deletion.
func (a *Admin) ConfirmSubmit(w http.ResponseWriter, r *http.Request) {
	intent, ok := a.confirms.Pending()
	if !ok {
		http.Redirect(w, r, "/admin/dashboard?keep=1", http.StatusSeeOther)
		return
	}

	if err := a.confirms.Confirm(r.Context()); err != nil {
		slog.Error("confirmed delete failed", "kind", intent.Kind, "id", intent.ID, "error", err)
	} else if intent.Kind == confirm.KindProgram {
		a.invalidatePages(r)
	}

	http.Redirect(w, r, confirmReturnPath(intent.Kind), http.StatusSeeOther)
}

// ConfirmCancel abandons the pending deletion without side effects.
func (a *Admin) ConfirmCancel(w http.ResponseWriter, r *http.Request) {
	intent, ok := a.confirms.Pending()
	a.confirms.Cancel()

	path := "/admin/dashboard?keep=1"
	if ok {
		path = confirmReturnPath(intent.Kind)
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// takeDashboardFlashes converts pending session banners into one-time
// flash messages, dismissing them in the process.
func (a *Admin) takeDashboardFlashes() []render.Flash {
	var flashes []render.Flash
	errText, successText := a.dash.Banners()
	if errText != "" {
		flashes = append(flashes, render.Flash{Type: "error", Message: errText})
	}
	if successText != "" {
		flashes = append(flashes, render.Flash{Type: "success", Message: successText})
	}
	if len(flashes) > 0 {
		a.dash.DismissBanners()
	}
	return flashes
}

// invalidatePages flushes the full-page cache after content changes so the
// public site reflects the edit immediately.
func (a *Admin) invalidatePages(r *http.Request) {
	if a.pageCache != nil {
		a.pageCache.InvalidateAll(r.Context())
	}
}

// confirmSection returns the sidebar section a confirm page belongs to.
func confirmSection(kind confirm.Kind) string {
	if kind == confirm.KindProgram {
		return "dashboard"
	}
	return "inbox"
}

// confirmReturnPath returns where to land after a confirm or cancel.
func confirmReturnPath(kind confirm.Kind) string {
	if kind == confirm.KindProgram {
		return "/admin/dashboard?keep=1"
	}
	return "/admin/inbox?keep=1"
}
