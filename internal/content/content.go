// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content maps the backend's flat site-content store onto the
// structured per-section forms edited in the admin dashboard. Each section
// owns a fixed field table translating logical field names to backend keys,
// with a hard-coded default substituted whenever the store has no usable
// value for a key.
package content

// Map is the flat key→value site content store owned by the backend.
// The admin session holds a local, possibly-stale copy of it.
type Map map[string]string

// Get returns the value for a key, or the fallback if the key is absent or
// holds an empty string. Absent and empty are deliberately not distinguished:
// both mean "use the default".
func (m Map) Get(key, fallback string) string {
	if v, ok := m[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Field binds one logical form field to its backend key and default value.
type Field struct {
	Name     string // logical field name, e.g. "headline"
	Key      string // backend content key, e.g. "hero_headline"
	Default  string // value used when the store has no usable entry
	Required bool   // enforced by the admin session on save, not here
	Multiline bool  // rendered as a textarea in the admin form
}

// Write is a single key/value pair destined for the backend content store.
type Write struct {
	Key   string
	Value string
}

// Form holds the current editable values of one section, keyed by logical
// field name. Every field always has a value; defaults are substituted at
// build time.
type Form map[string]string

// Section describes one editable group of related content fields.
type Section struct {
	Name   string // machine name: "hero", "story", "contact"
	Label  string // admin UI heading
	Fields []Field
}

// BuildForm derives a section form from the content map, substituting each
// field's default when the source value is unset or empty.
func (s Section) BuildForm(m Map) Form {
	form := make(Form, len(s.Fields))
	for _, f := range s.Fields {
		form[f.Name] = m.Get(f.Key, f.Default)
	}
	return form
}

// Writes is the inverse of BuildForm: one write per field, in field-table
// order. Fields missing from the form write as the empty string; no field is
// ever omitted, so a saved section fully overwrites its key subset.
func (s Section) Writes(form Form) []Write {
	writes := make([]Write, 0, len(s.Fields))
	for _, f := range s.Fields {
		writes = append(writes, Write{Key: f.Key, Value: form[f.Name]})
	}
	return writes
}

// MissingRequired returns the labels of required fields whose form value is
// empty. Validation lives here next to the field tables; the admin session
// calls this before issuing any writes.
func (s Section) MissingRequired(form Form) []string {
	var missing []string
	for _, f := range s.Fields {
		if f.Required && form[f.Name] == "" {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// Hero is the landing-page hero section.
var Hero = Section{
	Name:  "hero",
	Label: "Hero Content",
	Fields: []Field{
		{Name: "headline", Key: "hero_headline", Default: "Find Your Path to Recovery", Required: true},
		{Name: "subheadline", Key: "hero_subheadline", Default: "WHO WE ARE ARE WHERE WE ARE LOCATED"},
		{Name: "description", Key: "hero_description", Default: "At 2nd Chance Recovery, WHAT WE BELIEVE", Multiline: true},
		{Name: "primaryCtaText", Key: "hero_primary_cta_text", Default: "Get Started"},
		{Name: "primaryCtaHref", Key: "hero_primary_cta_href", Default: "/contact"},
		{Name: "secondaryCtaText", Key: "hero_secondary_cta_text", Default: "Learn More"},
		{Name: "secondaryCtaHref", Key: "hero_secondary_cta_href", Default: "/programs/php-housing"},
		{Name: "backgroundGradient", Key: "hero_background_gradient", Default: "linear-gradient(135deg, #000000 0%, #8b0000 50%, #dc3545 100%)"},
	},
}

// Story is the our-story section shown on the about pages.
var Story = Section{
	Name:  "story",
	Label: "Story Content",
	Fields: []Field{
		{Name: "heading", Key: "story_heading", Default: "Our Story", Required: true},
		{Name: "body", Key: "story_body", Default: "", Multiline: true},
	},
}

// Contact is the contact information block rendered on the contact page and
// in the footer.
var Contact = Section{
	Name:  "contact",
	Label: "Contact Information",
	Fields: []Field{
		{Name: "phone", Key: "contact_phone", Default: "+1 (833) HUSTLE 5"},
		{Name: "email", Key: "contact_email", Default: "info@recoverycenter.org"},
		{Name: "address", Key: "contact_address", Default: "Cheatham County, Tennessee"},
		{Name: "blurb", Key: "contact_blurb", Default: "We believe that everyone deserves access to quality recovery and treatment services, regardless of their financial situation. That's why we offer a wide range of payment options to make care accessible to all.", Multiline: true},
	},
}

// Sections returns all editable sections in display order.
func Sections() []Section {
	return []Section{Hero, Story, Contact}
}

// ByName returns the section with the given machine name.
func ByName(name string) (Section, bool) {
	for _, s := range Sections() {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}
