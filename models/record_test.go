package models

import (
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Mode: "test",
		Fields: []FieldSpec{
			{Name: "Kills", Kind: Counter},
			{Name: "Deaths", Kind: Counter},
			{Name: "K/D Ratio", Kind: Ratio, Numer: "Kills", Denom: "Deaths"},
			{Name: "Wins", Kind: Counter},
			{Name: "Losses", Kind: Counter},
			{Name: "Win Rate", Kind: Ratio, Numer: "Wins", Denom: "Losses", DenomAdd: "Wins", Percent: true},
			{Name: "Winstreak", Kind: Gauge},
		},
	}
}

func record(date string, fields map[string]StatValue) Record {
	rec := NewRecord(date)
	for k, v := range fields {
		rec.Fields[k] = v
	}
	return rec
}

func TestSchema_Subtract(t *testing.T) {
	schema := testSchema()

	a := record("01-03-25", map[string]StatValue{
		"Kills": Num(10), "Deaths": Num(5),
		"Wins": Num(3), "Losses": Num(1),
		"Winstreak": Num(2),
	})
	b := record("02-03-25", map[string]StatValue{
		"Kills": Num(14), "Deaths": Num(6),
		"Wins": Num(6), "Losses": Num(2),
		"Winstreak": Num(5),
	})

	delta := schema.Subtract(a, b)

	t.Run("Counters subtract pairwise", func(t *testing.T) {
		if v, _ := delta.Number("Kills"); v != 4 {
			t.Errorf("Expected 4 kills, got %v", v)
		}
		if v, _ := delta.Number("Deaths"); v != 1 {
			t.Errorf("Expected 1 death, got %v", v)
		}
	})

	t.Run("Ratios recompute from subtracted counters", func(t *testing.T) {
		// 4 kills over 1 death, not 14/6 minus 10/5.
		if v, _ := delta.Number("K/D Ratio"); v != 4 {
			t.Errorf("Expected K/D 4, got %v", v)
		}
		// 3 wins, 1 loss: 3/(1+3) = 75%.
		if v, _ := delta.Number("Win Rate"); v != 75 {
			t.Errorf("Expected win rate 75, got %v", v)
		}
	})

	t.Run("Gauges carry the newer value", func(t *testing.T) {
		if v, _ := delta.Number("Winstreak"); v != 5 {
			t.Errorf("Expected winstreak 5, got %v", v)
		}
	})

	t.Run("Delta carries the newer date", func(t *testing.T) {
		if delta.Date != "02-03-25" {
			t.Errorf("Expected date 02-03-25, got %s", delta.Date)
		}
	})

	t.Run("Inputs stay untouched", func(t *testing.T) {
		if v, _ := a.Number("Kills"); v != 10 {
			t.Errorf("Subtract mutated its input: kills=%v", v)
		}
	})
}

func TestSchema_SubtractSelfIsZero(t *testing.T) {
	schema := testSchema()
	rec := record("01-03-25", map[string]StatValue{
		"Kills": Num(100), "Deaths": Num(40),
		"Wins": Num(20), "Losses": Num(10),
		"Winstreak": Num(7),
	})

	delta := schema.Subtract(rec, rec)
	for _, name := range []string{"Kills", "Deaths", "Wins", "Losses", "K/D Ratio", "Win Rate"} {
		if v, _ := delta.Number(name); v != 0 {
			t.Errorf("Expected %s to be 0, got %v", name, v)
		}
	}
}

func TestSchema_RatioZeroDenominator(t *testing.T) {
	schema := testSchema()
	rec := record("01-03-25", map[string]StatValue{
		"Kills": Num(5), "Deaths": Num(0),
		"Wins": Num(0), "Losses": Num(0),
	})

	out := schema.Recompute(rec)
	if v, ok := out.Number("K/D Ratio"); !ok || v != 0 {
		t.Errorf("Expected zero-denominator ratio to be 0, got %v", v)
	}
	if v, ok := out.Number("Win Rate"); !ok || v != 0 {
		t.Errorf("Expected zero-denominator win rate to be 0, got %v", v)
	}
}

func TestSchema_SubtractTextGauge(t *testing.T) {
	schema := testSchema()
	a := record("01-03-25", map[string]StatValue{
		"Kills": Num(1), "Deaths": Num(1),
		"Winstreak": Num(3),
	})
	b := record("02-03-25", map[string]StatValue{
		"Kills": Num(2), "Deaths": Num(1),
		"Winstreak": Txt("Hidden"),
	})

	delta := schema.Subtract(a, b)
	v, exists := delta.Fields["Winstreak"]
	if !exists || !v.IsText || v.Text != "Hidden" {
		t.Errorf("Expected text gauge carried verbatim, got %+v", v)
	}
}

func TestSchema_SubtractMissingBaselineIsZero(t *testing.T) {
	schema := testSchema()
	a := record("01-03-25", map[string]StatValue{
		"Kills": Num(10),
	})
	b := record("02-03-25", map[string]StatValue{
		"Kills": Num(14), "Deaths": Num(6),
		"Wins": Num(40), "Losses": Num(10),
	})

	delta := schema.Subtract(a, b)
	if v, _ := delta.Number("Kills"); v != 4 {
		t.Errorf("Expected Kills delta 4, got %v", v)
	}
	for _, name := range []string{"Deaths", "Wins", "Losses", "Win Rate"} {
		if v, ok := delta.Number(name); !ok || v != 0 {
			t.Errorf("Expected %s delta 0 without a baseline, got %v", name, v)
		}
	}
}

func TestSchema_AddMissingCounterIsZero(t *testing.T) {
	schema := testSchema()
	a := record("01-03-25", map[string]StatValue{
		"Kills": Num(3),
	})
	b := record("02-03-25", map[string]StatValue{
		"Deaths": Num(2),
	})

	sum := schema.Add(a, b)
	if v, ok := sum.Number("Kills"); !ok || v != 3 {
		t.Errorf("Expected Kills 3, got %v", v)
	}
	if v, ok := sum.Number("Deaths"); !ok || v != 2 {
		t.Errorf("Expected Deaths 2, got %v", v)
	}
	if _, exists := sum.Fields["Winstreak"]; exists {
		t.Errorf("Expected no gauge when neither side has one")
	}
}

func TestStatValue_String(t *testing.T) {
	cases := []struct {
		value    StatValue
		expected string
	}{
		{Num(42), "42"},
		{Num(1.5), "1.50"},
		{Num(0), "0"},
		{Num(-3), "-3"},
		{Txt("Hidden"), "Hidden"},
	}
	for _, c := range cases {
		if got := c.value.String(); got != c.expected {
			t.Errorf("Expected %q, got %q", c.expected, got)
		}
	}
}
