package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-logger-backend/internal/model"
)

func pt(lat, lon float64) *Point { return &Point{Lat: lat, Lon: lon} }

func TestNearest(t *testing.T) {
	candidates := []Candidate{
		{ID: "a", Coord: pt(43.70, -79.40)},
		{ID: "b", Coord: pt(43.90, -79.10)},
		{ID: "none"},
	}

	testCases := []struct {
		name       string
		target     Point
		candidates []Candidate
		expectedID string
		expectedOK bool
	}{
		{"close to first", Point{43.701, -79.401}, candidates, "a", true},
		{"close to second", Point{43.899, -79.102}, candidates, "b", true},
		{"far from everything", Point{44.50, -80.00}, candidates, "", false},
		{"no candidates", Point{43.70, -79.40}, nil, "", false},
		{"only unresolved", Point{43.70, -79.40}, []Candidate{{ID: "x"}}, "", false},
		{"tie goes to first", Point{0, 0}, []Candidate{{ID: "p", Coord: pt(0.01, 0)}, {ID: "q", Coord: pt(-0.01, 0)}}, "p", true},
		{"just inside threshold", Point{0, 0}, []Candidate{{ID: "in", Coord: pt(0.022, 0)}}, "in", true},
		{"just outside threshold", Point{0, 0}, []Candidate{{ID: "out", Coord: pt(0.023, 0)}}, "", false},
		{"empty id is still a match", Point{1, 1}, []Candidate{{ID: "", Coord: pt(1, 1)}}, "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := Nearest(tc.target, tc.candidates)
			assert.Equal(t, tc.expectedOK, ok)
			assert.Equal(t, tc.expectedID, id)
		})
	}
}

func TestPreviewURL(t *testing.T) {
	assert.Equal(t, "https://www.google.com/maps/search/12+King+St+W%2C+Toronto", PreviewURL("12 King St W, Toronto"))
}

func TestNominatim_Geocode(t *testing.T) {
	var gotQuery, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotAgent = r.Header.Get("User-Agent")
		switch gotQuery {
		case "nowhere":
			w.Write([]byte(`[]`))
		case "broken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.Write([]byte(`[{"lat":"43.6487","lon":"-79.3817","display_name":"King St"}]`))
		}
	}))
	defer srv.Close()

	n := NewNominatim(srv.URL+"/", "service-logger-test", time.Second, 100)
	ctx := context.Background()

	p, err := n.Geocode(ctx, "12 King St W, Toronto")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.InDelta(t, 43.6487, p.Lat, 1e-9)
	assert.InDelta(t, -79.3817, p.Lon, 1e-9)
	assert.Equal(t, "12 King St W, Toronto", gotQuery)
	assert.Equal(t, "service-logger-test", gotAgent)

	p, err = n.Geocode(ctx, "nowhere")
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = n.Geocode(ctx, "broken")
	assert.Error(t, err)
}

type fakeGeocoder struct {
	points map[string]*Point
	calls  int
}

func (f *fakeGeocoder) Geocode(_ context.Context, address string) (*Point, error) {
	f.calls++
	if address == "fail" {
		return nil, errors.New("timeout")
	}
	return f.points[address], nil
}

func TestLocator(t *testing.T) {
	geocoder := &fakeGeocoder{points: map[string]*Point{
		"1 First St":  pt(43.70, -79.40),
		"2 Second St": pt(43.90, -79.10),
	}}
	l := NewLocator(geocoder, nil)
	customers := []*model.Customer{
		{ID: "c1", CompanyName: "First", Address: "1 First St"},
		{ID: "c2", CompanyName: "Second", Address: "2 Second St"},
		{ID: "c3", CompanyName: "Lost", Address: "fail"},
		{ID: "c4", CompanyName: "Unknown", Address: "9 Nowhere Rd"},
	}

	warnings := l.Warm(context.Background(), customers)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Lost")
	assert.Equal(t, 4, geocoder.calls)

	// Cached, including failures.
	l.Warm(context.Background(), customers)
	assert.Equal(t, 4, geocoder.calls)

	markers := l.Markers(customers)
	require.Len(t, markers, 2)
	assert.Equal(t, Marker{ID: "c1", Name: "First", Lat: 43.70, Lon: -79.40}, markers[0])

	id, ok := Nearest(Point{43.701, -79.401}, l.Candidates(customers))
	assert.True(t, ok)
	assert.Equal(t, "c1", id)

	assert.Nil(t, l.Coord("c3"))
	assert.Nil(t, l.Coord("never-seen"))
}

func TestLocator_NoGeocoder(t *testing.T) {
	l := NewLocator(nil, nil)
	p, warning := l.Locate(context.Background(), &model.Customer{ID: "c1", Address: "1 First St"})
	assert.Nil(t, p)
	assert.Empty(t, warning)
	assert.Empty(t, l.Markers([]*model.Customer{{ID: "c1"}}))
}
