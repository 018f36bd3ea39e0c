// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"secondchance/internal/cache"
	"secondchance/internal/content"
	"secondchance/internal/program"
	"secondchance/internal/render"
)

// PublicAPI is the slice of the backend client the public site needs.
type PublicAPI interface {
	SiteContent(ctx context.Context) (content.Map, error)
	Programs(ctx context.Context) ([]program.Record, error)
}

// Public groups handlers for the public-facing marketing site. Rendered
// pages are stored in the full-page Valkey cache; dynamic copy is resolved
// through the content field tables with the same defaults the admin uses.
type Public struct {
	renderer  *render.Renderer
	api       PublicAPI
	pageCache *cache.PageCache
}

// NewPublic creates a new Public handler group. pageCache may be nil.
func NewPublic(renderer *render.Renderer, api PublicAPI, pageCache *cache.PageCache) *Public {
	return &Public{
		renderer:  renderer,
		api:       api,
		pageCache: pageCache,
	}
}

// staticPage holds the fixed copy of a prose-only public page.
type staticPage struct {
	Title      string
	Section    string
	Heading    string
	Lead       string
	Paragraphs []string
}

// staticPages maps request paths to their page copy. The our-story page is
// absent here: its heading and body come from the editable content store.
var staticPages = map[string]staticPage{
	"/about/our-team": {
		Title:   "Our Team",
		Section: "about",
		Heading: "Our Team",
		Lead:    "People in recovery, serving people in recovery.",
		Paragraphs: []string{
			"Our staff and volunteers bring lived experience to every interaction. Many of our team members walked the same road our clients are walking now.",
			"From licensed counselors to peer support specialists, everyone at 2nd Chance Recovery is committed to meeting people where they are.",
		},
	},
	"/about/partners": {
		Title:   "Our Partners",
		Section: "about",
		Heading: "Our Partners",
		Lead:    "Recovery takes a community.",
		Paragraphs: []string{
			"We work alongside local health providers, courts, employers, and faith communities across Cheatham County and Middle Tennessee.",
			"If your organization would like to partner with us, we would love to hear from you through our contact page.",
		},
	},
	"/about/mission-housing": {
		Title:   "Mission Housing",
		Section: "about",
		Heading: "Mission Housing",
		Lead:    "Safe, stable housing as a foundation for recovery.",
		Paragraphs: []string{
			"Stable housing is one of the strongest predictors of long-term recovery. Our mission housing program places clients in structured, substance-free homes while they work through treatment.",
			"Residents share responsibility for the household and support one another through the early months of recovery.",
		},
	},
	"/respite-housing": {
		Title:   "Respite Housing",
		Section: "respite",
		Heading: "Respite Housing",
		Lead:    "A safe place to land when you need it most.",
		Paragraphs: []string{
			"Our respite housing offers short-term shelter for people in crisis, giving them a safe and supportive environment while longer-term plans take shape.",
			"Stays include access to case management, recovery meetings, and referrals into our treatment programs.",
		},
	},
}

// Home renders the landing page: hero, program cards, and story teaser.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r) {
		return
	}

	m := p.siteContent(r.Context())
	hero := content.Hero.BuildForm(m)
	story := content.Story.BuildForm(m)

	programs := p.activePrograms(r.Context())

	data := p.footerData(m)
	data["HeroHeadline"] = hero["headline"]
	data["HeroSubheadline"] = hero["subheadline"]
	data["HeroDescription"] = hero["description"]
	data["HeroPrimaryText"] = hero["primaryCtaText"]
	data["HeroPrimaryHref"] = hero["primaryCtaHref"]
	data["HeroSecondaryText"] = hero["secondaryCtaText"]
	data["HeroSecondaryHref"] = hero["secondaryCtaHref"]
	data["HeroGradient"] = template.CSS(hero["backgroundGradient"])
	data["StoryHeading"] = story["heading"]
	data["StoryBody"] = story["body"]
	data["Programs"] = programs

	p.servePage(w, r, "home", &render.PageData{
		Title:   "Find Your Path to Recovery",
		Section: "home",
		Data:    data,
	})
}

// Program renders one program detail page by slug. Inactive and unknown
// programs both 404.
func (p *Public) Program(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r) {
		return
	}

	slugParam := chi.URLParam(r, "slug")

	var found *program.Program
	for _, rec := range p.activePrograms(r.Context()) {
		if rec.Slug == slugParam {
			rec := rec
			found = &rec
			break
		}
	}
	if found == nil {
		http.NotFound(w, r)
		return
	}

	m := p.siteContent(r.Context())
	data := p.footerData(m)
	data["Name"] = found.Name
	data["ShortDescription"] = found.ShortDescription
	data["Description"] = found.Description
	data["Features"] = splitLines(found.FeaturesText)

	p.servePage(w, r, "program", &render.PageData{
		Title:   found.Name,
		Section: "programs",
		Data:    data,
	})
}

// OurStory renders the about page whose copy comes from the content store.
func (p *Public) OurStory(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r) {
		return
	}

	m := p.siteContent(r.Context())
	story := content.Story.BuildForm(m)

	data := p.footerData(m)
	data["Heading"] = story["heading"]
	data["Lead"] = ""
	data["Paragraphs"] = splitLines(story["body"])

	p.servePage(w, r, "page", &render.PageData{
		Title:   story["heading"],
		Section: "about",
		Data:    data,
	})
}

// StaticPage renders one of the fixed prose pages.
func (p *Public) StaticPage(w http.ResponseWriter, r *http.Request) {
	page, ok := staticPages[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}

	if p.serveCached(w, r) {
		return
	}

	m := p.siteContent(r.Context())
	data := p.footerData(m)
	data["Heading"] = page.Heading
	data["Lead"] = page.Lead
	data["Paragraphs"] = page.Paragraphs

	p.servePage(w, r, "page", &render.PageData{
		Title:   page.Title,
		Section: page.Section,
		Data:    data,
	})
}

// Contact renders the contact page with the editable contact block and the
// lead-capture form. Query flags set by the form POST become flashes.
func (p *Public) Contact(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r) {
		return
	}

	m := p.siteContent(r.Context())
	data := p.footerData(m)

	p.servePage(w, r, "contact", &render.PageData{
		Title:   "Contact Us",
		Section: "contact",
		Flashes: leadFlashes(r, "Thank you for reaching out. We will get back to you soon.", "sent"),
		Data:    data,
	})
}

// GetInvolved renders the volunteering and newsletter signup page.
func (p *Public) GetInvolved(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r) {
		return
	}

	m := p.siteContent(r.Context())
	data := p.footerData(m)

	p.servePage(w, r, "get_involved", &render.PageData{
		Title:   "Get Involved",
		Section: "get-involved",
		Flashes: leadFlashes(r, "Thanks for subscribing. Watch your inbox for updates.", "subscribed"),
		Data:    data,
	})
}

// siteContent fetches the content map, degrading to an empty map (all
// defaults) when the backend is unreachable.
func (p *Public) siteContent(ctx context.Context) content.Map {
	m, err := p.api.SiteContent(ctx)
	if err != nil {
		slog.Warn("site content fetch failed, using defaults", "error", err)
		return content.Map{}
	}
	return m
}

// activePrograms fetches the program list and keeps only active rows,
// sorted by the backend-provided order. A fetch failure degrades to an
// empty listing.
func (p *Public) activePrograms(ctx context.Context) []program.Program {
	records, err := p.api.Programs(ctx)
	if err != nil {
		slog.Warn("program list fetch failed", "error", err)
		return nil
	}

	var out []program.Program
	for _, rec := range records {
		row := program.Normalize(rec)
		if row.Active {
			out = append(out, row)
		}
	}
	return out
}

// footerData returns the base template data shared by every public page.
func (p *Public) footerData(m content.Map) map[string]any {
	contact := content.Contact.BuildForm(m)
	return map[string]any{
		"ContactPhone":   contact["phone"],
		"ContactEmail":   contact["email"],
		"ContactAddress": contact["address"],
		"ContactBlurb":   contact["blurb"],
	}
}

// serveCached writes the cached page for this path if one exists. Requests
// with query parameters carry one-time flash state and are never cached.
func (p *Public) serveCached(w http.ResponseWriter, r *http.Request) bool {
	if p.pageCache == nil || r.URL.RawQuery != "" {
		return false
	}
	cached, ok := p.pageCache.Get(r.Context(), r.URL.Path)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(cached)
	return true
}

// servePage renders the page to a buffer, stores it in the page cache when
// eligible, and writes it to the client.
func (p *Public) servePage(w http.ResponseWriter, r *http.Request, name string, data *render.PageData) {
	var buf bytes.Buffer
	if err := p.renderer.Render(&buf, name, data); err != nil {
		slog.Error("public page render failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if p.pageCache != nil && r.URL.RawQuery == "" {
		p.pageCache.Set(r.Context(), r.URL.Path, buf.Bytes())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// leadFlashes translates the post-redirect query flags into flash messages.
func leadFlashes(r *http.Request, successMsg, successFlag string) []render.Flash {
	q := r.URL.Query()
	if q.Get(successFlag) == "1" {
		return []render.Flash{{Type: "success", Message: successMsg}}
	}
	if q.Get("error") == "1" {
		return []render.Flash{{Type: "error", Message: "Something went wrong. Please try again."}}
	}
	return nil
}
