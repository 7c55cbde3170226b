package bot

import (
	"testing"

	apperrors "github.com/SamOutabrae/Sprocket-hypixel/errors"
	"github.com/SamOutabrae/Sprocket-hypixel/gamemodes"
	"github.com/SamOutabrae/Sprocket-hypixel/graph"
)

func TestParseGraphArgs(t *testing.T) {
	mode, _ := gamemodes.ByName("bedwars")

	t.Run("No arguments defaults to date axis since start", func(t *testing.T) {
		xName, username, opts, err := parseGraphArgs(mode, nil)
		if err != nil {
			t.Fatalf("Expected no error: %v", err)
		}
		if xName != graph.DateAxis || username != "" {
			t.Errorf("Expected date axis and no username, got %q %q", xName, username)
		}
		if !opts.SinceStart || opts.Days != 0 || opts.N != 0 {
			t.Errorf("Expected since-start options, got %+v", opts)
		}
	})

	t.Run("Axis then username", func(t *testing.T) {
		xName, username, _, err := parseGraphArgs(mode, []string{"deaths", "Technoblade"})
		if err != nil {
			t.Fatalf("Expected no error: %v", err)
		}
		if xName != "deaths" {
			t.Errorf("Expected deaths as x axis, got %q", xName)
		}
		if username != "Technoblade" {
			t.Errorf("Expected username, got %q", username)
		}
	})

	t.Run("Days and n options", func(t *testing.T) {
		_, _, opts, err := parseGraphArgs(mode, []string{"days=7"})
		if err != nil {
			t.Fatalf("Expected no error: %v", err)
		}
		if opts.Days != 7 {
			t.Errorf("Expected 7 days, got %d", opts.Days)
		}
		_, _, opts, err = parseGraphArgs(mode, []string{"N=3"})
		if err != nil {
			t.Fatalf("Expected no error: %v", err)
		}
		if opts.N != 3 {
			t.Errorf("Expected n=3, got %d", opts.N)
		}
	})

	t.Run("Malformed count is rejected", func(t *testing.T) {
		for _, arg := range []string{"days=abc", "n=abc", "days=", "n=0", "days=-2"} {
			_, _, _, err := parseGraphArgs(mode, []string{arg})
			if !apperrors.IsValidation(err) {
				t.Errorf("Expected validation error for %q, got %v", arg, err)
			}
		}
	})

	t.Run("Days and n together are rejected", func(t *testing.T) {
		_, _, _, err := parseGraphArgs(mode, []string{"days=7", "n=3"})
		if !apperrors.IsValidation(err) {
			t.Errorf("Expected validation error, got %v", err)
		}
	})
}
