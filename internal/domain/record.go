package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Missing is the NDBC sentinel token for a metric that was not reported.
const Missing = "MM"

// Column names from the NDBC real-time report format. The station column
// appears as "#STN" in raw headers; the marker is stripped during parsing.
const (
	FieldStation    = "STN"
	FieldAirTemp    = "ATMP"
	FieldWaterTemp  = "WTMP"
	FieldWindSpeed  = "WSPD"
	FieldGust       = "GST"
	FieldWindDir    = "WDIR"
	FieldWaveHeight = "WVHT"
)

// Timestamp component columns.
const (
	fieldYear   = "YY"
	fieldMonth  = "MM"
	fieldDay    = "DD"
	fieldHour   = "hh"
	fieldMinute = "mm"
)

// RawRecord is one parsed report line: the station id, every raw field keyed
// by header name, and a derived UTC timestamp. A zero Timestamp means the
// line's date/time columns were incomplete or invalid; such records are never
// selected as a station's newest reading and are excluded from day grouping
// unless their raw date columns still yield a day key.
type RawRecord struct {
	StationID string            `json:"station_id"`
	Fields    map[string]string `json:"fields"`
	Timestamp time.Time         `json:"timestamp,omitzero"`
}

// HasTimestamp reports whether a full date/time could be derived for this record.
func (r RawRecord) HasTimestamp() bool {
	return !r.Timestamp.IsZero()
}

// Metric returns the named field parsed as a finite number. The second return
// is false for absent fields, the Missing sentinel, and unparseable tokens.
func (r RawRecord) Metric(name string) (float64, bool) {
	return parseMetric(r.Fields[name])
}

// DayKey returns the record's UTC calendar date as YYYY-MM-DD. When no
// timestamp was derived it falls back to the raw year/month/day columns, and
// returns "" only when those are incomplete too.
func (r RawRecord) DayKey() string {
	if r.HasTimestamp() {
		return r.Timestamp.UTC().Format("2006-01-02")
	}
	yy, mm, dd := r.Fields[fieldYear], r.Fields[fieldMonth], r.Fields[fieldDay]
	if yy == "" || mm == "" || dd == "" {
		return ""
	}
	return fmt.Sprintf("%s-%s-%s", normalizeYear(yy), pad2(mm), pad2(dd))
}

// ParseReport parses one raw whitespace-delimited report into records. The
// first line holds field names; a leading '#' on a header (the station id
// marker) is stripped. Lines whose token count does not match the header are
// dropped, and the number of dropped lines is returned so the caller can log
// them. An empty or whitespace-only body yields an empty record set.
func ParseReport(raw string) ([]RawRecord, int) {
	body := strings.TrimSpace(raw)
	if body == "" {
		return nil, 0
	}

	lines := strings.Split(body, "\n")
	headers := strings.Fields(lines[0])
	for i, h := range headers {
		headers[i] = strings.TrimPrefix(h, "#")
	}

	records := make([]RawRecord, 0, len(lines)-1)
	skipped := 0
	for _, line := range lines[1:] {
		values := strings.Fields(line)
		if len(values) != len(headers) {
			skipped++
			continue
		}
		fields := make(map[string]string, len(headers))
		for i, h := range headers {
			fields[h] = values[i]
		}
		records = append(records, RawRecord{
			StationID: fields[FieldStation],
			Fields:    fields,
			Timestamp: deriveTimestamp(fields),
		})
	}
	return records, skipped
}

// deriveTimestamp composes a UTC timestamp from the YY/MM/DD/hh/mm columns.
// Two-digit years are prefixed with "20" (so YY=98 becomes 2098; a known
// quirk inherited from the upstream format, not corrected here). Returns the
// zero time when any component is absent or out of range.
func deriveTimestamp(fields map[string]string) time.Time {
	raw := [5]string{
		fields[fieldYear], fields[fieldMonth], fields[fieldDay],
		fields[fieldHour], fields[fieldMinute],
	}
	for _, v := range raw {
		if v == "" {
			return time.Time{}
		}
	}

	year, errY := strconv.Atoi(normalizeYear(raw[0]))
	month, errMo := strconv.Atoi(raw[1])
	day, errD := strconv.Atoi(raw[2])
	hour, errH := strconv.Atoi(raw[3])
	minute, errMi := strconv.Atoi(raw[4])
	if errY != nil || errMo != nil || errD != nil || errH != nil || errMi != nil {
		return time.Time{}
	}
	if month < 1 || month > 12 || day < 1 || day > 31 || hour > 23 || hour < 0 || minute < 0 || minute > 59 {
		return time.Time{}
	}

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
}

func normalizeYear(yy string) string {
	if len(yy) == 2 {
		return "20" + yy
	}
	return yy
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// parseMetric parses a raw field token as a finite float. The Missing
// sentinel, empty input, and non-numeric tokens all report false.
func parseMetric(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == Missing {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
