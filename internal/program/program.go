// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package program converts between backend program records and the editable
// row shape used by the admin dashboard, including slug derivation and the
// client-side validation that gates every save.
package program

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"secondchance/internal/slug"
)

// Program type codes accepted by the backend.
const (
	TypePHP = "PHP" // Partial Hospitalization Program
	TypeIOP = "IOP" // Intensive Outpatient Program
	TypeVOC = "VOC" // Vocational Rehabilitation
	TypeRES = "RES" // Respite Housing
)

// TypeOption pairs a program type code with its admin UI label.
type TypeOption struct {
	Value string
	Label string
}

// TypeOptions lists the selectable program types in display order.
func TypeOptions() []TypeOption {
	return []TypeOption{
		{TypePHP, "Partial Hospitalization Program (PHP)"},
		{TypeIOP, "Intensive Outpatient Program (IOP)"},
		{TypeVOC, "Vocational Rehabilitation (VOC)"},
		{TypeRES, "Respite Housing (RES)"},
	}
}

// Record is the backend wire shape for one program (snake_case JSON).
// Order and IsActive are pointers so an absent field is distinguishable
// from an explicit zero/false.
type Record struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Slug             string   `json:"slug"`
	ProgramType      string   `json:"program_type"`
	ShortDescription string   `json:"short_description"`
	Description      string   `json:"description"`
	Features         []string `json:"features"`
	Order            *float64 `json:"order"`
	IsActive         *bool    `json:"is_active"`
}

// Payload is the wire shape sent on create and update.
type Payload struct {
	Name             string   `json:"name"`
	Slug             string   `json:"slug"`
	ProgramType      string   `json:"program_type"`
	ShortDescription string   `json:"short_description"`
	Description      string   `json:"description"`
	Features         []string `json:"features"`
	Order            int      `json:"order"`
	IsActive         bool     `json:"is_active"`
}

// Program is one editable program row. Features are edited as
// newline-delimited text and only split back into a list at save time.
type Program struct {
	ID               string // decimal backend id, or "new-<ms>" for unsaved rows
	Name             string
	Slug             string
	ProgramType      string
	ShortDescription string
	Description      string
	FeaturesText     string
	Order            int
	Active           bool
	IsNew            bool
}

// ValidationError reports a field-scoped save rejection. It never reaches
// the network layer: saves abort before any request is issued.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsClientID reports whether an id was generated locally by an "add program"
// action and therefore has no backend counterpart.
func IsClientID(id string) bool {
	return id == "" || strings.HasPrefix(id, "new-")
}

// Normalize converts a backend record into the editable row shape.
// Absent is_active defaults to true; absent order defaults to 0.
func Normalize(rec Record) Program {
	p := Program{
		ID:               strconv.FormatInt(rec.ID, 10),
		Name:             rec.Name,
		Slug:             rec.Slug,
		ProgramType:      rec.ProgramType,
		ShortDescription: rec.ShortDescription,
		Description:      rec.Description,
		FeaturesText:     strings.Join(rec.Features, "\n"),
		Active:           true,
	}
	if p.ProgramType == "" {
		p.ProgramType = TypePHP
	}
	if rec.Order != nil && isFinite(*rec.Order) {
		p.Order = int(*rec.Order)
	}
	if rec.IsActive != nil {
		p.Active = *rec.IsActive
	}
	return p
}

// Denormalize validates a row and converts it into the save payload.
// The name is trimmed and must be non-empty; a blank slug is derived from
// the name and must be non-empty after slugification. Feature lines are
// trimmed and empty lines dropped.
func Denormalize(p Program) (Payload, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return Payload{}, &ValidationError{Field: "name", Message: "Program name is required."}
	}

	s := strings.TrimSpace(p.Slug)
	if s == "" {
		s = slug.Generate(name)
	}
	if s == "" {
		return Payload{}, &ValidationError{Field: "slug", Message: "Program slug is required."}
	}

	var features []string
	for _, line := range strings.Split(p.FeaturesText, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			features = append(features, line)
		}
	}

	programType := p.ProgramType
	if programType == "" {
		programType = TypePHP
	}

	return Payload{
		Name:             name,
		Slug:             s,
		ProgramType:      programType,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		Features:         features,
		Order:            p.Order,
		IsActive:         p.Active,
	}, nil
}

// ParseOrder coerces a form value into a finite display order, falling back
// to 0 for anything unparsable or non-finite.
func ParseOrder(value string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || !isFinite(f) {
		return 0
	}
	return int(f)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
