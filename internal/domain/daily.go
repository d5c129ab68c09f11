package domain

import (
	"sort"
	"time"
)

// DailyHigh is one calendar day's maximum temperatures for a station, in
// Fahrenheit. Air and water highs are tracked independently and may come from
// different readings within the day. A nil temperature means the day had no
// valid reading for that metric at all.
type DailyHigh struct {
	DayKey     string    `json:"dayKey"`
	Timestamp  time.Time `json:"timestamp,omitzero"` // first observation that day
	AirTempF   *float64  `json:"airTemp"`
	WaterTempF *float64  `json:"waterTemp"`
}

// dayAccumulator folds a day's readings, keeping maxima in Celsius until emit.
type dayAccumulator struct {
	timestamp time.Time
	airC      *float64
	waterC    *float64
}

// AggregateDailyHighs folds a raw historical series into one entry per
// calendar day holding the day's maximum air and water temperature. Records
// without at least one valid temperature are ignored, as are records whose
// date cannot be resolved even from the raw date columns. Entries come back
// sorted ascending by day; when no entry has a derivable timestamp the whole
// set is still returned rather than nothing, since any data beats an empty
// trend. Pure function, no I/O.
func AggregateDailyHighs(records []RawRecord) []DailyHigh {
	byDay := make(map[string]*dayAccumulator)

	for _, r := range records {
		air, airOK := r.Metric(FieldAirTemp)
		water, waterOK := r.Metric(FieldWaterTemp)
		if !airOK && !waterOK {
			continue
		}

		day := r.DayKey()
		if day == "" {
			continue
		}

		acc, exists := byDay[day]
		if !exists {
			acc = &dayAccumulator{timestamp: r.Timestamp}
			byDay[day] = acc
		}
		if airOK {
			acc.airC = foldMax(acc.airC, air)
		}
		if waterOK {
			acc.waterC = foldMax(acc.waterC, water)
		}
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	out := make([]DailyHigh, 0, len(byDay))
	dated := make([]DailyHigh, 0, len(byDay))
	for _, day := range days {
		acc := byDay[day]
		entry := DailyHigh{
			DayKey:     day,
			Timestamp:  acc.timestamp,
			AirTempF:   toFahrenheit(acc.airC),
			WaterTempF: toFahrenheit(acc.waterC),
		}
		out = append(out, entry)
		if !entry.Timestamp.IsZero() {
			dated = append(dated, entry)
		}
	}

	if len(dated) > 0 {
		return dated
	}
	return out
}

func foldMax(cur *float64, v float64) *float64 {
	if cur == nil || v > *cur {
		return &v
	}
	return cur
}

func toFahrenheit(celsius *float64) *float64 {
	if celsius == nil {
		return nil
	}
	f := round1(*celsius*9/5 + 32)
	return &f
}
