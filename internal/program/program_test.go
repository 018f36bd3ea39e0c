package program

import (
	"errors"
	"testing"
)

func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want Program
	}{
		{
			name: "full record",
			rec: Record{
				ID:               7,
				Name:             "PHP Housing",
				Slug:             "php-housing",
				ProgramType:      "PHP",
				ShortDescription: "Structured day treatment",
				Description:      "Full description",
				Features:         []string{"Daily group therapy", "Sober housing"},
				Order:            floatPtr(2),
				IsActive:         boolPtr(false),
			},
			want: Program{
				ID:               "7",
				Name:             "PHP Housing",
				Slug:             "php-housing",
				ProgramType:      "PHP",
				ShortDescription: "Structured day treatment",
				Description:      "Full description",
				FeaturesText:     "Daily group therapy\nSober housing",
				Order:            2,
				Active:           false,
			},
		},
		{
			name: "absent is_active defaults to true",
			rec:  Record{ID: 1, Name: "IOP", ProgramType: "IOP"},
			want: Program{ID: "1", Name: "IOP", ProgramType: "IOP", Active: true},
		},
		{
			name: "absent order defaults to zero",
			rec:  Record{ID: 2, Name: "Voc", ProgramType: "VOC", IsActive: boolPtr(true)},
			want: Program{ID: "2", Name: "Voc", ProgramType: "VOC", Active: true},
		},
		{
			name: "missing program type defaults to PHP",
			rec:  Record{ID: 3, Name: "Unnamed"},
			want: Program{ID: "3", Name: "Unnamed", ProgramType: "PHP", Active: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.rec)
			if got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDenormalize(t *testing.T) {
	p := Program{
		ID:           "5",
		Name:         "  PHP Housing  ",
		Slug:         "",
		ProgramType:  "PHP",
		FeaturesText: "  Daily group therapy \r\n\n Sober housing\n  \n",
		Order:        3,
		Active:       true,
	}

	payload, err := Denormalize(p)
	if err != nil {
		t.Fatalf("Denormalize: %v", err)
	}

	if payload.Name != "PHP Housing" {
		t.Errorf("Name = %q, want trimmed", payload.Name)
	}
	if payload.Slug != "php-housing" {
		t.Errorf("Slug = %q, want derived %q", payload.Slug, "php-housing")
	}
	if len(payload.Features) != 2 || payload.Features[0] != "Daily group therapy" || payload.Features[1] != "Sober housing" {
		t.Errorf("Features = %v, want trimmed two-element list", payload.Features)
	}
	if payload.Order != 3 || !payload.IsActive {
		t.Errorf("Order/IsActive = %d/%v", payload.Order, payload.IsActive)
	}
}

func TestDenormalize_DerivesSlugFromName(t *testing.T) {
	payload, err := Denormalize(Program{Name: "New Program", ProgramType: "PHP"})
	if err != nil {
		t.Fatalf("Denormalize: %v", err)
	}
	if payload.Slug != "new-program" {
		t.Errorf("Slug = %q, want %q", payload.Slug, "new-program")
	}
}

func TestDenormalize_ExplicitSlugWins(t *testing.T) {
	payload, err := Denormalize(Program{Name: "New Program", Slug: "custom-slug"})
	if err != nil {
		t.Fatalf("Denormalize: %v", err)
	}
	if payload.Slug != "custom-slug" {
		t.Errorf("Slug = %q, want %q", payload.Slug, "custom-slug")
	}
}

// TestDenormalize_RejectsWhitespaceName verifies the save aborts even when a
// slug is supplied: name validation comes first.
func TestDenormalize_RejectsWhitespaceName(t *testing.T) {
	_, err := Denormalize(Program{Name: "   ", Slug: "has-a-slug"})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if verr.Field != "name" {
		t.Errorf("Field = %q, want %q", verr.Field, "name")
	}
}

// TestDenormalize_RejectsUnslugifiableName covers names that produce an empty
// slug even after slugification.
func TestDenormalize_RejectsUnslugifiableName(t *testing.T) {
	_, err := Denormalize(Program{Name: "!!!"})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if verr.Field != "slug" {
		t.Errorf("Field = %q, want %q", verr.Field, "slug")
	}
}

func TestDenormalize_MissingTypeDefaultsToPHP(t *testing.T) {
	payload, err := Denormalize(Program{Name: "Housing"})
	if err != nil {
		t.Fatalf("Denormalize: %v", err)
	}
	if payload.ProgramType != TypePHP {
		t.Errorf("ProgramType = %q, want PHP", payload.ProgramType)
	}
}

func TestIsClientID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"new-1735689600000", true},
		{"new-", true},
		{"", true},
		{"42", false},
		{"renewed", false},
	}

	for _, tt := range tests {
		if got := IsClientID(tt.id); got != tt.want {
			t.Errorf("IsClientID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{" 10 ", 10},
		{"2.9", 2},
		{"", 0},
		{"abc", 0},
		{"Inf", 0},
		{"NaN", 0},
		{"-1", -1},
	}

	for _, tt := range tests {
		if got := ParseOrder(tt.in); got != tt.want {
			t.Errorf("ParseOrder(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
