package http

import (
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/buoy-telemetry-service/internal/domain"
)

// staleAfter marks a reading as outdated on the API surface. It is looser
// than the cache merge cutoff: a reading can be flagged stale yet still
// served, so clients can render it greyed out instead of missing.
const staleAfter = 4 * time.Hour

const displayTimeFormat = "01/02/2006 15:04 UTC"

type handler struct {
	current  CurrentProvider
	history  HistoryProvider
	registry domain.Registry
	clock    clockwork.Clock
	logger   *slog.Logger
}

func newHandler(current CurrentProvider, history HistoryProvider, registry domain.Registry, clock clockwork.Clock, logger *slog.Logger) *handler {
	return &handler{current: current, history: history, registry: registry, clock: clock, logger: logger}
}

// stationReading is the API shape of one station's newest observation,
// converted to display units.
type stationReading struct {
	StationID        string       `json:"stationId"`
	Name             string       `json:"name"`
	Latitude         float64      `json:"latitude"`
	Longitude        float64      `json:"longitude"`
	BodyOfWater      string       `json:"bodyOfWater"`
	AirTempF         domain.Value `json:"airTemp"`
	WaterTempF       domain.Value `json:"waterTemp"`
	WindSpeedMph     domain.Value `json:"windSpeed"`
	GustSpeedMph     domain.Value `json:"gustSpeed"`
	WaveHeightFt     domain.Value `json:"waveHeight"`
	WindDirection    string       `json:"windDirection"`
	Timestamp        time.Time    `json:"timestamp,omitzero"`
	DisplayTimestamp string       `json:"displayTimestamp"`
	Stale            bool         `json:"stale"`
}

type stationDetails struct {
	StationID   string  `json:"stationId"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	BodyOfWater string  `json:"bodyOfWater"`
}

// getCurrent handles GET /api/current.
func (h *handler) getCurrent(c *gin.Context) {
	snapshots, err := h.current.CurrentReadings(c.Request.Context())
	if err != nil {
		h.logger.Error("current readings unavailable", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream feed unavailable"})
		return
	}

	now := h.clock.Now()
	readings := make([]stationReading, 0, len(snapshots))
	for _, snap := range snapshots {
		readings = append(readings, h.toReading(snap, now))
	}
	c.JSON(http.StatusOK, gin.H{"stations": readings})
}

// listStations handles GET /api/stations.
func (h *handler) listStations(c *gin.Context) {
	out := make([]stationDetails, 0, len(h.registry))
	for id, info := range h.registry {
		out = append(out, stationDetails{
			StationID:   id,
			Name:        info.Name,
			Latitude:    info.Latitude,
			Longitude:   info.Longitude,
			BodyOfWater: info.BodyOfWater,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StationID < out[j].StationID })
	c.JSON(http.StatusOK, gin.H{"stations": out})
}

// getStationHistory handles GET /api/stations/:id/history.
func (h *handler) getStationHistory(c *gin.Context) {
	stationID := c.Param("id")
	if !h.registry.Contains(stationID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown station"})
		return
	}

	highs, err := h.history.StationHistory(c.Request.Context(), stationID)
	if err != nil {
		h.logger.Error("station history unavailable", "station", stationID, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream feed unavailable"})
		return
	}
	if highs == nil {
		highs = []domain.DailyHigh{}
	}
	c.JSON(http.StatusOK, gin.H{"stationId": stationID, "dailyHighs": highs})
}

func (h *handler) toReading(snap domain.StationSnapshot, now time.Time) stationReading {
	info := h.registry[snap.StationID]
	rec := snap.Record

	r := stationReading{
		StationID:     snap.StationID,
		Name:          info.Name,
		Latitude:      info.Latitude,
		Longitude:     info.Longitude,
		BodyOfWater:   info.BodyOfWater,
		AirTempF:      domain.CelsiusToFahrenheit(rec.Fields[domain.FieldAirTemp]),
		WaterTempF:    domain.CelsiusToFahrenheit(rec.Fields[domain.FieldWaterTemp]),
		WindSpeedMph:  domain.MpsToMph(rec.Fields[domain.FieldWindSpeed]),
		GustSpeedMph:  domain.MpsToMph(rec.Fields[domain.FieldGust]),
		WaveHeightFt:  domain.MetersToFeet(rec.Fields[domain.FieldWaveHeight]),
		WindDirection: domain.DegreesToCompass(rec.Fields[domain.FieldWindDir]),
	}
	if rec.HasTimestamp() {
		r.Timestamp = rec.Timestamp
		r.DisplayTimestamp = rec.Timestamp.UTC().Format(displayTimeFormat)
		r.Stale = now.Sub(rec.Timestamp) > staleAfter
	} else {
		r.DisplayTimestamp = domain.NotReported
	}
	return r
}
