package dashboard

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/mmcloughlin/geohash"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"fomezero/internal"
)

const (
	MinClusterPrecision = 1
	MaxClusterPrecision = 12
	markerIcon          = "home"
)

var ErrPrecision = errors.New("cluster precision out of range")

// Markers builds one point feature per restaurant, carrying what the map
// needs to draw a colored marker with a popup.
func Markers(records []internal.CanonicalRecord) (*geojson.FeatureCollection, error) {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(records))}
	if len(records) == 0 {
		return fc, nil
	}

	bounds := geom.NewBounds(geom.XY)
	for _, r := range records {
		point := geom.NewPointFlat(geom.XY, []float64{r.Longitude, r.Latitude})
		bounds.Extend(point)

		popup, err := Popup(r)
		if err != nil {
			return nil, fmt.Errorf("popup %d: %w", r.RestaurantID, err)
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       strconv.FormatInt(r.RestaurantID, 10),
			Geometry: point,
			Properties: map[string]interface{}{
				"name":    r.RestaurantName,
				"color":   r.ColorName,
				"icon":    markerIcon,
				"country": r.Country,
				"popup":   popup,
			},
		})
	}
	fc.BBox = bounds
	return fc, nil
}

// Cluster groups the markers falling into one geohash cell.
type Cluster struct {
	Geohash   string     `json:"geohash"`
	Count     int        `json:"count"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Bounds    [4]float64 `json:"bounds"`
}

// Clusters buckets records by geohash prefix of the given length. Each cluster
// is placed at the centroid of its members; bounds are the cell's
// [minLng, minLat, maxLng, maxLat]. Larger clusters come first.
func Clusters(records []internal.CanonicalRecord, precision int) ([]Cluster, error) {
	if precision < MinClusterPrecision || precision > MaxClusterPrecision {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrPrecision, precision, MinClusterPrecision, MaxClusterPrecision)
	}

	byHash := map[string]*Cluster{}
	for _, r := range records {
		hash := geohash.EncodeWithPrecision(r.Latitude, r.Longitude, uint(precision))
		c, ok := byHash[hash]
		if !ok {
			box := geohash.BoundingBox(hash)
			c = &Cluster{Geohash: hash, Bounds: [4]float64{box.MinLng, box.MinLat, box.MaxLng, box.MaxLat}}
			byHash[hash] = c
		}
		c.Count++
		c.Latitude += r.Latitude
		c.Longitude += r.Longitude
	}

	out := make([]Cluster, 0, len(byHash))
	for _, c := range byHash {
		c.Latitude /= float64(c.Count)
		c.Longitude /= float64(c.Count)
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Geohash < out[j].Geohash
	})
	return out, nil
}
