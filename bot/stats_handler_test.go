package bot

import (
	"reflect"
	"testing"

	"github.com/bwmarrin/discordgo"

	apperrors "github.com/SamOutabrae/Sprocket-hypixel/errors"
)

func TestParseStatsParams(t *testing.T) {
	t.Run("No arguments", func(t *testing.T) {
		q, err := parseStatsParams(nil)
		if err != nil {
			t.Fatalf("Expected no error: %v", err)
		}
		if q.username != "" || len(q.dates) != 0 || q.today {
			t.Errorf("Expected empty query, got %+v", q)
		}
	})

	t.Run("Username only", func(t *testing.T) {
		q, err := parseStatsParams([]string{"Technoblade"})
		if err != nil {
			t.Fatalf("Expected no error: %v", err)
		}
		if q.username != "Technoblade" {
			t.Errorf("Expected username, got %+v", q)
		}
	})

	t.Run("Date and username in either order", func(t *testing.T) {
		first, err := parseStatsParams([]string{"01-03-25", "Technoblade"})
		if err != nil {
			t.Fatalf("Expected no error: %v", err)
		}
		second, err := parseStatsParams([]string{"Technoblade", "01-03-25"})
		if err != nil {
			t.Fatalf("Expected no error: %v", err)
		}
		if first.username != second.username || !reflect.DeepEqual(first.dates, second.dates) {
			t.Errorf("Order should not matter: %+v vs %+v", first, second)
		}
	})

	t.Run("Two dates form a range", func(t *testing.T) {
		q, err := parseStatsParams([]string{"01-03-25", "05-03-25"})
		if err != nil {
			t.Fatalf("Expected no error: %v", err)
		}
		if !reflect.DeepEqual(q.dates, []string{"01-03-25", "05-03-25"}) {
			t.Errorf("Expected both dates, got %+v", q)
		}
	})

	t.Run("Today token", func(t *testing.T) {
		q, err := parseStatsParams([]string{"t", "Technoblade"})
		if err != nil {
			t.Fatalf("Expected no error: %v", err)
		}
		if !q.today || q.username != "Technoblade" {
			t.Errorf("Expected today query, got %+v", q)
		}
	})

	t.Run("Three dates rejected", func(t *testing.T) {
		_, err := parseStatsParams([]string{"01-03-25", "02-03-25", "03-03-25"})
		if !apperrors.IsValidation(err) {
			t.Errorf("Expected validation error, got: %v", err)
		}
	})

	t.Run("Second username rejected", func(t *testing.T) {
		_, err := parseStatsParams([]string{"alice", "bob"})
		if !apperrors.IsValidation(err) {
			t.Errorf("Expected validation error, got: %v", err)
		}
	})
}

func TestParseMessage(t *testing.T) {
	ch := &CommandHandler{}
	message := func(content string) *discordgo.MessageCreate {
		return &discordgo.MessageCreate{Message: &discordgo.Message{Content: content}}
	}

	cases := []struct {
		input   string
		command string
		params  []string
	}{
		{"!bw Technoblade", "bw", []string{"Technoblade"}},
		{"!duels bridge", "duels", []string{"bridge"}},
		{"!HELP", "help", nil},
		{"!graph bedwars kills date", "graph", []string{"bedwars", "kills", "date"}},
		{"!ping", "ping", nil},
		{"not a command", "", nil},
		{"  !bw  ", "bw", nil},
	}
	for _, c := range cases {
		command, params := ch.parseMessage(message(c.input))
		if command != c.command {
			t.Errorf("parseMessage(%q): expected command %q, got %q", c.input, c.command, command)
		}
		if len(params) != len(c.params) {
			t.Errorf("parseMessage(%q): expected params %v, got %v", c.input, c.params, params)
			continue
		}
		for i := range params {
			if params[i] != c.params[i] {
				t.Errorf("parseMessage(%q): expected params %v, got %v", c.input, c.params, params)
				break
			}
		}
	}
}
