package geo

import "net/url"

// Threshold is the largest squared coordinate distance, in degrees², at
// which a click still selects a customer. Matches are strictly below it.
const Threshold = 0.0005

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Candidate is a customer that may be selected on the map. Coord is nil
// when the customer's address could not be geocoded.
type Candidate struct {
	ID    string
	Coord *Point
}

// Nearest returns the id of the candidate closest to target, measured as
// squared difference in degrees. Candidates without coordinates are skipped
// and ties go to the earlier candidate. ok is false when the closest
// candidate is not within Threshold.
func Nearest(target Point, candidates []Candidate) (id string, ok bool) {
	var (
		best     string
		bestDist float64
		found    bool
	)
	for _, c := range candidates {
		if c.Coord == nil {
			continue
		}
		dLat, dLon := c.Coord.Lat-target.Lat, c.Coord.Lon-target.Lon
		d := dLat*dLat + dLon*dLon
		if !found || d < bestDist {
			best, bestDist, found = c.ID, d, true
		}
	}
	if !found || bestDist >= Threshold {
		return "", false
	}
	return best, true
}

// PreviewURL links to a map search for an address, shown before a new
// customer is saved.
func PreviewURL(address string) string {
	return "https://www.google.com/maps/search/" + url.QueryEscape(address)
}
