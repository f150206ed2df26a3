package models

// County is a read-only catalog entry. The catalog is loaded once at startup
// and passed into the aggregator; there is no process-wide mutable county
// state.
type County struct {
	ID          string
	Name        string
	State       string
	Coordinates Coordinates
	Boundary    [][]float64 // polygon ring, [lon, lat] pairs
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}
