package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `#STN   YY  MM DD hh mm WDIR WSPD GST  WVHT ATMP WTMP
44025  24  03 05 14 30 180  5.0  7.0  1.2  10.5 8.3
44065  24  03 05 14 00 MM   MM   MM   MM   MM   9.1
`

func TestParseReport(t *testing.T) {
	records, skipped := ParseReport(sampleReport)

	require.Len(t, records, 2)
	assert.Zero(t, skipped)

	first := records[0]
	assert.Equal(t, "44025", first.StationID)
	assert.Len(t, first.Fields, 12)
	assert.Equal(t, "180", first.Fields[FieldWindDir])
	assert.Equal(t, "10.5", first.Fields[FieldAirTemp])
	assert.Equal(t, time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC), first.Timestamp)

	second := records[1]
	assert.Equal(t, "44065", second.StationID)
	_, reported := second.Metric(FieldAirTemp)
	assert.False(t, reported, "MM sentinel must read as not reported")
	water, reported := second.Metric(FieldWaterTemp)
	assert.True(t, reported)
	assert.Equal(t, 9.1, water)
}

func TestParseReport_FieldCountMismatch(t *testing.T) {
	raw := "#STN YY MM DD hh mm ATMP\n" +
		"44025 24 03 05 14 30 10.0\n" +
		"44065 24 03\n" + // truncated line
		"44066 24 03 05 15 00 11.0\n"

	records, skipped := ParseReport(raw)

	require.Len(t, records, 2)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, "44025", records[0].StationID)
	assert.Equal(t, "44066", records[1].StationID)
}

func TestParseReport_EmptyBody(t *testing.T) {
	for _, raw := range []string{"", "   \n\t  "} {
		records, skipped := ParseReport(raw)
		assert.Empty(t, records)
		assert.Zero(t, skipped)
	}
}

func TestParseReport_HeaderOnly(t *testing.T) {
	records, skipped := ParseReport("#STN YY MM DD hh mm ATMP")
	assert.Empty(t, records)
	assert.Zero(t, skipped)
}

func TestDeriveTimestamp(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		want   time.Time
	}{
		{
			name:   "two digit year",
			fields: map[string]string{"YY": "24", "MM": "03", "DD": "05", "hh": "14", "mm": "30"},
			want:   time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC),
		},
		{
			name: "four digit year",
			fields: map[string]string{
				"YY": "2024", "MM": "12", "DD": "31", "hh": "23", "mm": "59",
			},
			want: time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC),
		},
		{
			// The two-digit rule maps 98 to 2098, not 1998. Documented
			// behavior of the upstream format.
			name:   "year 98 maps to 2098",
			fields: map[string]string{"YY": "98", "MM": "01", "DD": "01", "hh": "00", "mm": "00"},
			want:   time.Date(2098, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "unpadded components",
			fields: map[string]string{"YY": "24", "MM": "3", "DD": "5", "hh": "4", "mm": "7"},
			want:   time.Date(2024, 3, 5, 4, 7, 0, 0, time.UTC),
		},
		{
			name:   "missing minute",
			fields: map[string]string{"YY": "24", "MM": "03", "DD": "05", "hh": "14"},
			want:   time.Time{},
		},
		{
			name:   "month out of range",
			fields: map[string]string{"YY": "24", "MM": "13", "DD": "05", "hh": "14", "mm": "30"},
			want:   time.Time{},
		},
		{
			name:   "non numeric day",
			fields: map[string]string{"YY": "24", "MM": "03", "DD": "dy", "hh": "14", "mm": "30"},
			want:   time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deriveTimestamp(tt.fields))
		})
	}
}

func TestRawRecord_DayKey(t *testing.T) {
	t.Run("from timestamp", func(t *testing.T) {
		r := RawRecord{Timestamp: time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)}
		assert.Equal(t, "2024-03-05", r.DayKey())
	})

	t.Run("fallback to raw date columns", func(t *testing.T) {
		r := RawRecord{Fields: map[string]string{"YY": "24", "MM": "3", "DD": "5"}}
		assert.Equal(t, "2024-03-05", r.DayKey())
	})

	t.Run("no date at all", func(t *testing.T) {
		r := RawRecord{Fields: map[string]string{"YY": "24", "MM": "3"}}
		assert.Empty(t, r.DayKey())
	})
}

func TestParseReport_PositionalAssignment(t *testing.T) {
	headers := []string{"#STN", "A", "B", "C"}
	raw := strings.Join(headers, " ") + "\n44025 1 2 3"

	records, skipped := ParseReport(raw)

	require.Len(t, records, 1)
	assert.Zero(t, skipped)
	assert.Equal(t, map[string]string{"STN": "44025", "A": "1", "B": "2", "C": "3"}, records[0].Fields)
}
