package domain

import "sort"

// StationSnapshot is the single newest reading retained for one station.
type StationSnapshot struct {
	StationID string    `json:"station_id"`
	Record    RawRecord `json:"record"`
}

// FilterKnownStations keeps only records whose station id is a registry key.
// Input order is preserved.
func FilterKnownStations(records []RawRecord, registry Registry) []RawRecord {
	kept := make([]RawRecord, 0, len(records))
	for _, r := range records {
		if registry.Contains(r.StationID) {
			kept = append(kept, r)
		}
	}
	return kept
}

// NewestPerStation reduces a record set to one snapshot per station id.
// Timestamped records always beat untimestamped ones; among timestamped
// records the latest wins, with equal timestamps resolved in favor of the
// record seen later in the input. An untimestamped record is kept only when
// the station has no timestamped record at all, so the station still
// surfaces rather than vanishing. Output is sorted by station id.
func NewestPerStation(records []RawRecord) []StationSnapshot {
	newest := make(map[string]RawRecord)
	for _, r := range records {
		if r.StationID == "" {
			continue
		}
		cur, seen := newest[r.StationID]
		if !seen || supersedes(r, cur) {
			newest[r.StationID] = r
		}
	}

	snapshots := make([]StationSnapshot, 0, len(newest))
	for id, rec := range newest {
		snapshots = append(snapshots, StationSnapshot{StationID: id, Record: rec})
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].StationID < snapshots[j].StationID
	})
	return snapshots
}

// supersedes reports whether candidate should replace current as a station's
// newest reading.
func supersedes(candidate, current RawRecord) bool {
	switch {
	case candidate.HasTimestamp() && current.HasTimestamp():
		return !candidate.Timestamp.Before(current.Timestamp)
	case candidate.HasTimestamp():
		return true
	case current.HasTimestamp():
		return false
	default:
		// Neither is ordered; later input wins for determinism.
		return true
	}
}
