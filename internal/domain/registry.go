package domain

// StationInfo is the static metadata for one registered station. Supplied at
// compile time and never mutated by this layer.
type StationInfo struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	BodyOfWater string  `json:"body_of_water"`
}

// Registry maps station ids to their static metadata.
type Registry map[string]StationInfo

// Contains reports whether the id belongs to a registered station.
func (r Registry) Contains(id string) bool {
	_, ok := r[id]
	return ok
}
