// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// site. It organizes routes into public and admin groups with appropriate
// middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"secondchance/internal/handlers"
	"secondchance/internal/middleware"
	"secondchance/internal/session"
	"secondchance/web"
)

// leadRateLimit allows this many form submissions per client IP per window.
const (
	leadRateLimit  = 5
	leadRateWindow = time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. The returned rate limiter must be stopped on
// shutdown.
func New(sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public, leads *handlers.Leads) (chi.Router, *middleware.RateLimiter) {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Static assets embedded in the binary.
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))

	// Admin routes — require authentication and CSRF protection.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.CSRF)

		// Auth pages — accessible without a session.
		r.Get("/login", auth.LoginPage)
		r.Post("/login", auth.LoginSubmit)
		r.Post("/logout", auth.Logout)

		// 2FA — requires auth but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/2fa/setup", auth.TwoFASetupPage)
			r.Get("/2fa/verify", auth.TwoFAVerifyPage)
			r.Post("/2fa/verify", auth.TwoFAVerifySubmit)
		})

		// Authenticated + 2FA-verified admin area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Get("/", admin.Dashboard)
			r.Get("/dashboard", admin.Dashboard)

			r.Post("/sections/{name}", admin.SectionSave)

			r.Post("/programs/add", admin.ProgramAdd)
			r.Post("/programs/{id}/save", admin.ProgramSave)
			r.Post("/programs/{id}/delete", admin.ProgramDelete)

			r.Get("/inbox", admin.Inbox)
			r.Post("/inbox/contacts/{id}/delete", admin.ContactDelete)
			r.Post("/inbox/newsletters/{id}/delete", admin.NewsletterDelete)

			r.Get("/confirm", admin.ConfirmPage)
			r.Post("/confirm", admin.ConfirmSubmit)
			r.Post("/confirm/cancel", admin.ConfirmCancel)
		})
	})

	// Public lead-capture forms — rate limited per client IP.
	limiter := middleware.NewRateLimiter(leadRateLimit, leadRateWindow)
	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Post("/contact", leads.ContactSubmit)
		r.Post("/newsletter", leads.NewsletterSubmit)
	})

	// Public pages.
	r.Get("/", public.Home)
	r.Get("/programs/{slug}", public.Program)
	r.Get("/about/our-story", public.OurStory)
	r.Get("/about/our-team", public.StaticPage)
	r.Get("/about/partners", public.StaticPage)
	r.Get("/about/mission-housing", public.StaticPage)
	r.Get("/respite-housing", public.StaticPage)
	r.Get("/get-involved", public.GetInvolved)
	r.Get("/contact", public.Contact)

	return r, limiter
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
