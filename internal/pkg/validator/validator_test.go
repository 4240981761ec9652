package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidCedula(t *testing.T) {
	valid := []string{"V1234567", "E123456789", "V27123456"}
	invalid := []string{"", "1234567", "v1234567", "X1234567", "V123456", "V1234567890", "V12-34567"}
	for _, cedula := range valid {
		if !IsValidCedula(cedula) {
			t.Errorf("IsValidCedula(%q) = false, want true", cedula)
		}
	}
	for _, cedula := range invalid {
		if IsValidCedula(cedula) {
			t.Errorf("IsValidCedula(%q) = true, want false", cedula)
		}
	}
}

func TestIsValidUsername(t *testing.T) {
	valid := []string{"admin", "j.perez", "maria_01", "abc"}
	invalid := []string{"", "ab", "with space", "ñandu", "user@host"}
	for _, username := range valid {
		if !IsValidUsername(username) {
			t.Errorf("IsValidUsername(%q) = false, want true", username)
		}
	}
	for _, username := range invalid {
		if IsValidUsername(username) {
			t.Errorf("IsValidUsername(%q) = true, want false", username)
		}
	}
}

func TestIsValidClockTime(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"08:00", true},
		{"00:00", true},
		{"23:59", true},
		{"24:00", false},
		{"8:00", false},
		{"08:60", false},
		{"08:00:00", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsValidClockTime(c.input); got != c.want {
			t.Errorf("IsValidClockTime(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-01-01"); !ok {
		t.Errorf("IsValidDate(2025-01-01) = false, want true")
	}
	for _, input := range []string{"", "2025-13-01", "01/01/2025", "2025-02-30"} {
		if _, ok := IsValidDate(input); ok {
			t.Errorf("IsValidDate(%q) = true, want false", input)
		}
	}
}

func TestParseDate(t *testing.T) {
	start, err := ParseDate("2025-01-01")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	end, err := ParseDate("2025-01-31")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	if !start.Before(end) || end.Before(start) {
		t.Errorf("expected 2025-01-01 before 2025-01-31")
	}
	if !end.After(start) {
		t.Errorf("expected 2025-01-31 after 2025-01-01")
	}
	if _, err := ParseDate("not-a-date"); err == nil {
		t.Errorf("ParseDate(not-a-date) expected error")
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "cedula", Message: "cedula is required"},
		{Field: "nombre", Message: "nombre is required"},
	}
	if got := errs.Error(); got != "cedula: cedula is required; nombre: nombre is required" {
		t.Errorf("Error() = %q", got)
	}
	m := errs.ToMap()
	if m["cedula"] != "cedula is required" || len(m) != 2 {
		t.Errorf("ToMap() = %v", m)
	}
}
