package utils

import (
	"testing"
)

func TestIsValidUsername(t *testing.T) {
	valid := []string{"Technoblade", "a", "Player_123", "1234567890123456"}
	for _, name := range valid {
		if !IsValidUsername(name) {
			t.Errorf("Expected %q to be a valid username", name)
		}
	}

	invalid := []string{"", "12345678901234567", "bad name", "päivi", "name!"}
	for _, name := range invalid {
		if IsValidUsername(name) {
			t.Errorf("Expected %q to be rejected", name)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	if !IsValidUUID("b876ec32e396476ba1158438d83c67d4") {
		t.Error("Expected undashed 32-hex string to be a valid UUID")
	}
	for _, bad := range []string{"", "b876ec32-e396-476b-a115-8438d83c67d4", "xyz", "b876ec32"} {
		if IsValidUUID(bad) {
			t.Errorf("Expected %q to be rejected", bad)
		}
	}
}

func TestNormalizeUUID(t *testing.T) {
	expected := "b876ec32e396476ba1158438d83c67d4"

	t.Run("Dashed input", func(t *testing.T) {
		got, ok := NormalizeUUID("B876EC32-E396-476B-A115-8438D83C67D4")
		if !ok || got != expected {
			t.Errorf("Expected %s, got %s (ok=%v)", expected, got, ok)
		}
	})

	t.Run("Undashed input", func(t *testing.T) {
		got, ok := NormalizeUUID(expected)
		if !ok || got != expected {
			t.Errorf("Expected %s, got %s (ok=%v)", expected, got, ok)
		}
	})

	t.Run("Garbage input", func(t *testing.T) {
		if _, ok := NormalizeUUID("not-a-uuid"); ok {
			t.Error("Expected garbage to be rejected")
		}
	})
}

func TestSanitizeString(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"  hello  ", "hello"},
		{"line\nbreak", "linebreak"},
		{"tab\there", "tabhere"},
		{"clean", "clean"},
	}
	for _, c := range cases {
		if got := SanitizeString(c.input); got != c.expected {
			t.Errorf("SanitizeString(%q): expected %q, got %q", c.input, c.expected, got)
		}
	}
}
