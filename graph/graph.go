// Package graph renders stat-history charts for tracked players.
package graph

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/SamOutabrae/Sprocket-hypixel/constants"
	apperrors "github.com/SamOutabrae/Sprocket-hypixel/errors"
	"github.com/SamOutabrae/Sprocket-hypixel/gamemodes"
	"github.com/SamOutabrae/Sprocket-hypixel/models"
	"github.com/SamOutabrae/Sprocket-hypixel/utils"
)

// DateAxis is the pseudo-field name that plots against the snapshot
// date instead of another stat.
const DateAxis = "Date"

// axisAliases maps lowercase user input to canonical field names,
// shared across modes; mode-specific fields resolve by exact
// (case-insensitive) name as well.
var axisAliases = map[string]string{
	"date":          DateAxis,
	"time":          DateAxis,
	"kdr":           "K/D Ratio",
	"fkdr":          "Final K/D Ratio",
	"final kd":      "Final K/D Ratio",
	"winrate":       "Win Rate",
	"wr":            "Win Rate",
	"level":         "Bedwars Level",
	"games":         "Games Played",
	"blocks":        "Blocks Placed",
	"beds":          "Beds Broken",
	"hws":           "Highest Winstreak",
	"golden apples": "Golden Apples Eaten",
	"gapples":       "Golden Apples Eaten",
	"accuracy":      "Bow Accuracy",
}

// ResolveAxis resolves a user-supplied axis name against a mode's
// schema. Date is always valid.
func ResolveAxis(mode gamemodes.Normalizer, name string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := axisAliases[lower]; ok {
		if canonical == DateAxis {
			return DateAxis, true
		}
		if _, ok := mode.Schema().Spec(canonical); ok {
			return canonical, true
		}
		return "", false
	}
	for _, field := range mode.Schema().FieldNames() {
		if strings.ToLower(field) == lower {
			return field, true
		}
	}
	return "", false
}

// AxisNames lists the valid axis names for a mode, Date first.
func AxisNames(mode gamemodes.Normalizer) []string {
	return append([]string{DateAxis}, mode.Schema().FieldNames()...)
}

// Options selects which slice of history to plot. Days and N are
// mutually exclusive; SinceStart re-bases counters to zero at the
// window's first record so the chart shows progress, not lifetime
// totals.
type Options struct {
	Days       int
	N          int
	SinceStart bool
}

// Window trims the record history to the requested span: the last N
// records, or the records within Days of the latest snapshot.
func Window(records []models.Record, opts Options) []models.Record {
	if opts.N > 0 && opts.N < len(records) {
		records = records[len(records)-opts.N:]
	}
	if opts.Days > 0 && len(records) > 0 {
		latest, err := utils.ParseDateKey(records[len(records)-1].Date)
		if err != nil {
			return records
		}
		cutoff := latest.AddDate(0, 0, -opts.Days)
		for i, rec := range records {
			t, err := utils.ParseDateKey(rec.Date)
			if err != nil {
				continue
			}
			if !t.Before(cutoff) {
				return records[i:]
			}
		}
		return nil
	}
	return records
}

// rebase subtracts the first record's counters from every record.
// Gauges and ratios keep their absolute values; a level of 151 is more
// useful than "+1", and ratios are already rates.
func rebase(mode gamemodes.Normalizer, records []models.Record) []models.Record {
	if len(records) == 0 {
		return records
	}
	schema := mode.Schema()
	first := records[0]

	out := make([]models.Record, len(records))
	for i, rec := range records {
		adjusted := models.NewRecord(rec.Date)
		for _, field := range schema.Fields {
			v, exists := rec.Fields[field.Name]
			if !exists {
				continue
			}
			if field.Kind == models.Counter && !v.IsText {
				if base, ok := first.Number(field.Name); ok {
					v = models.Num(v.Number - base)
				}
			}
			adjusted.Fields[field.Name] = v
		}
		out[i] = adjusted
	}
	return out
}

// Render plots yField against xField over the windowed history and
// returns the chart as PNG bytes.
func Render(mode gamemodes.Normalizer, records []models.Record, xField, yField string, opts Options) ([]byte, error) {
	records = Window(records, opts)
	if opts.SinceStart {
		records = rebase(mode, records)
	}
	if len(records) < 2 {
		return nil, apperrors.NewNotFoundError("GRAPH_NO_DATA",
			fmt.Sprintf("not enough records to graph %s", mode.Name()),
			constants.MsgNoData)
	}

	name := mode.Name()
	title := fmt.Sprintf("%s Stats", strings.ToUpper(name[:1])+name[1:])
	var series chart.Series
	if xField == DateAxis {
		xs := make([]time.Time, 0, len(records))
		ys := make([]float64, 0, len(records))
		for _, rec := range records {
			y, ok := rec.Number(yField)
			if !ok {
				continue
			}
			t, err := utils.ParseDateKey(rec.Date)
			if err != nil {
				continue
			}
			xs = append(xs, t)
			ys = append(ys, y)
		}
		if len(xs) < 2 {
			return nil, apperrors.NewNotFoundError("GRAPH_NO_DATA",
				fmt.Sprintf("field %q has no plottable values", yField),
				constants.MsgNoData)
		}
		series = chart.TimeSeries{Name: yField, XValues: xs, YValues: ys}
	} else {
		xs := make([]float64, 0, len(records))
		ys := make([]float64, 0, len(records))
		for _, rec := range records {
			x, okX := rec.Number(xField)
			y, okY := rec.Number(yField)
			if !okX || !okY {
				continue
			}
			xs = append(xs, x)
			ys = append(ys, y)
		}
		if len(xs) < 2 {
			return nil, apperrors.NewNotFoundError("GRAPH_NO_DATA",
				fmt.Sprintf("fields %q/%q have no plottable values", xField, yField),
				constants.MsgNoData)
		}
		series = chart.ContinuousSeries{Name: yField, XValues: xs, YValues: ys}
	}

	c := chart.Chart{
		Title:  title,
		XAxis:  chart.XAxis{Name: xField},
		YAxis:  chart.YAxis{Name: yField},
		Series: []chart.Series{series},
	}

	var buf bytes.Buffer
	if err := c.Render(chart.PNG, &buf); err != nil {
		return nil, apperrors.NewSystemError("GRAPH_RENDER",
			fmt.Sprintf("failed to render %s chart", mode.Name()), err)
	}
	return buf.Bytes(), nil
}
