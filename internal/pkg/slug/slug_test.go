package slug

import "testing"

func TestDerive(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple title", "Hello World", "hello-world"},
		{"punctuation and year", "Hello, World!! 2025", "hello-world-2025"},
		{"accents", "Café résumé", "cafe-resume"},
		{"multiple spaces", "Hello   World", "hello-world"},
		{"leading and trailing junk", "  --Hello World--  ", "hello-world"},
		{"all punctuation", "!@#$%^&*()", ""},
		{"empty", "", ""},
		{"mixed case", "HeLLo WoRLd", "hello-world"},
		{"already a slug", "hello-world-2025", "hello-world-2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Derive(tt.input); got != tt.expected {
				t.Errorf("Derive(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDeriveIdempotent(t *testing.T) {
	inputs := []string{
		"Hello, World!! 2025",
		"Über München",
		"plain",
		"trailing dash-",
		"日本語 Title 42",
	}
	for _, in := range inputs {
		once := Derive(in)
		if twice := Derive(once); twice != once {
			t.Errorf("Derive not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("hello-world") {
		t.Error("expected hello-world to be valid")
	}
	for _, bad := range []string{"", "-lead", "trail-", "Upper", "two--dashes"} {
		if IsValid(bad) {
			t.Errorf("expected %q to be invalid", bad)
		}
	}
}
