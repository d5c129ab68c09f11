package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func histRecord(day time.Time, air, water string) RawRecord {
	fields := map[string]string{
		FieldStation:   "44025",
		FieldAirTemp:   air,
		FieldWaterTemp: water,
	}
	return RawRecord{StationID: "44025", Fields: fields, Timestamp: day}
}

func TestAggregateDailyHighs_MaxPerDay(t *testing.T) {
	morning := time.Date(2024, 3, 5, 6, 0, 0, 0, time.UTC)
	noon := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	days := AggregateDailyHighs([]RawRecord{
		histRecord(morning, "10", "8"),
		histRecord(noon, "15", "7"),
	})

	require.Len(t, days, 1)
	d := days[0]
	assert.Equal(t, "2024-03-05", d.DayKey)
	assert.Equal(t, morning, d.Timestamp, "first observation of the day")
	require.NotNil(t, d.AirTempF)
	assert.Equal(t, 59.0, *d.AirTempF) // 15C
	require.NotNil(t, d.WaterTempF)
	assert.Equal(t, 46.4, *d.WaterTempF) // 8C, from the earlier record
}

func TestAggregateDailyHighs_MetricsFoldIndependently(t *testing.T) {
	day := time.Date(2024, 3, 5, 6, 0, 0, 0, time.UTC)

	// The day's air high and water high come from different records.
	days := AggregateDailyHighs([]RawRecord{
		histRecord(day, "20", "5"),
		histRecord(day.Add(time.Hour), "10", "12"),
	})

	require.Len(t, days, 1)
	assert.Equal(t, 68.0, *days[0].AirTempF)   // 20C
	assert.Equal(t, 53.6, *days[0].WaterTempF) // 12C
}

func TestAggregateDailyHighs_IgnoresTemperaturelessRecords(t *testing.T) {
	day := time.Date(2024, 3, 5, 6, 0, 0, 0, time.UTC)

	days := AggregateDailyHighs([]RawRecord{
		histRecord(day, Missing, Missing),
		histRecord(day, "bad", ""),
	})

	assert.Empty(t, days)
}

func TestAggregateDailyHighs_OneSidedTemperature(t *testing.T) {
	day := time.Date(2024, 3, 5, 6, 0, 0, 0, time.UTC)

	days := AggregateDailyHighs([]RawRecord{histRecord(day, Missing, "9")})

	require.Len(t, days, 1)
	assert.Nil(t, days[0].AirTempF)
	require.NotNil(t, days[0].WaterTempF)
	assert.Equal(t, 48.2, *days[0].WaterTempF)
}

func TestAggregateDailyHighs_SortedAscending(t *testing.T) {
	days := AggregateDailyHighs([]RawRecord{
		histRecord(time.Date(2024, 3, 7, 6, 0, 0, 0, time.UTC), "12", "9"),
		histRecord(time.Date(2024, 3, 5, 6, 0, 0, 0, time.UTC), "10", "8"),
		histRecord(time.Date(2024, 3, 6, 6, 0, 0, 0, time.UTC), "11", "8"),
	})

	require.Len(t, days, 3)
	assert.Equal(t, "2024-03-05", days[0].DayKey)
	assert.Equal(t, "2024-03-06", days[1].DayKey)
	assert.Equal(t, "2024-03-07", days[2].DayKey)
}

func TestAggregateDailyHighs_DayKeyFallback(t *testing.T) {
	// No derivable timestamp, but raw date columns present: grouped by the
	// fallback day key and still returned (no dated entries exist).
	rec := RawRecord{
		StationID: "44025",
		Fields: map[string]string{
			"YY": "24", "MM": "3", "DD": "5",
			FieldAirTemp: "10", FieldWaterTemp: Missing,
		},
	}

	days := AggregateDailyHighs([]RawRecord{rec})

	require.Len(t, days, 1)
	assert.Equal(t, "2024-03-05", days[0].DayKey)
	assert.True(t, days[0].Timestamp.IsZero())
}

func TestAggregateDailyHighs_DatedEntriesPreferred(t *testing.T) {
	dated := histRecord(time.Date(2024, 3, 6, 6, 0, 0, 0, time.UTC), "11", "8")
	dateless := RawRecord{
		StationID: "44025",
		Fields: map[string]string{
			"YY": "24", "MM": "3", "DD": "5",
			FieldAirTemp: "10",
		},
	}

	days := AggregateDailyHighs([]RawRecord{dateless, dated})

	require.Len(t, days, 1, "dateless entries dropped when any dated entry exists")
	assert.Equal(t, "2024-03-06", days[0].DayKey)
}

func TestAggregateDailyHighs_Idempotent(t *testing.T) {
	// A series already reduced to one record per day aggregates to itself.
	series := []RawRecord{
		histRecord(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), "10", "8"),
		histRecord(time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), "11", "9"),
	}

	once := AggregateDailyHighs(series)
	again := AggregateDailyHighs(series)

	assert.Equal(t, once, again)
	require.Len(t, once, 2)
	assert.Equal(t, 50.0, *once[0].AirTempF)
	assert.Equal(t, 51.8, *once[1].AirTempF)
}

func TestAggregateDailyHighs_Empty(t *testing.T) {
	assert.Empty(t, AggregateDailyHighs(nil))
}
