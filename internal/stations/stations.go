// Package stations holds the compiled-in station registry: the fixed set of
// NDBC platforms this service tracks. The registry is static by design; it is
// never fetched or mutated at runtime.
package stations

import "github.com/couchcryptid/buoy-telemetry-service/internal/domain"

// Default returns the registry of tracked stations.
func Default() domain.Registry {
	return registry
}

var registry = domain.Registry{
	"44025": {Name: "Long Island Buoy", Latitude: 40.251, Longitude: -73.164, BodyOfWater: "Atlantic Ocean"},
	"44065": {Name: "New York Harbor Entrance", Latitude: 40.369, Longitude: -73.703, BodyOfWater: "New York Harbor"},
	"44066": {Name: "Texas Tower #4", Latitude: 39.618, Longitude: -72.644, BodyOfWater: "Atlantic Ocean"},
	"44009": {Name: "Delaware Bay Buoy", Latitude: 38.457, Longitude: -74.702, BodyOfWater: "Delaware Bay"},
	"44013": {Name: "Boston Approach Buoy", Latitude: 42.346, Longitude: -70.651, BodyOfWater: "Massachusetts Bay"},
	"44018": {Name: "Cape Cod Buoy", Latitude: 41.263, Longitude: -69.296, BodyOfWater: "Atlantic Ocean"},
	"44027": {Name: "Jonesport Buoy", Latitude: 44.283, Longitude: -67.300, BodyOfWater: "Gulf of Maine"},
	"41001": {Name: "East Hatteras Buoy", Latitude: 34.724, Longitude: -72.317, BodyOfWater: "Atlantic Ocean"},
	"41002": {Name: "South Hatteras Buoy", Latitude: 31.759, Longitude: -74.936, BodyOfWater: "Atlantic Ocean"},
	"41008": {Name: "Grays Reef Buoy", Latitude: 31.400, Longitude: -80.866, BodyOfWater: "Atlantic Ocean"},
	"41009": {Name: "Canaveral Buoy", Latitude: 28.508, Longitude: -80.185, BodyOfWater: "Atlantic Ocean"},
	"42001": {Name: "Mid Gulf Buoy", Latitude: 25.926, Longitude: -89.662, BodyOfWater: "Gulf of Mexico"},
	"42002": {Name: "West Gulf Buoy", Latitude: 26.055, Longitude: -93.646, BodyOfWater: "Gulf of Mexico"},
	"42040": {Name: "Luke Offshore Buoy", Latitude: 29.207, Longitude: -88.237, BodyOfWater: "Gulf of Mexico"},
	"46026": {Name: "San Francisco Buoy", Latitude: 37.754, Longitude: -122.839, BodyOfWater: "Pacific Ocean"},
	"46042": {Name: "Monterey Bay Buoy", Latitude: 36.785, Longitude: -122.396, BodyOfWater: "Monterey Bay"},
	"46053": {Name: "Santa Barbara East", Latitude: 34.241, Longitude: -119.839, BodyOfWater: "Santa Barbara Channel"},
	"51001": {Name: "Northwest Hawaii Buoy", Latitude: 24.453, Longitude: -162.008, BodyOfWater: "Pacific Ocean"},
}
