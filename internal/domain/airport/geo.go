package airport

import "math"

// EarthRadiusNM is the mean Earth radius in nautical miles used by every distance calculation
const EarthRadiusNM = 3440.065

// LatLon is a position in decimal degrees
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// BoundingBox is a lat/lon rectangle. A box with MinLon > MaxLon spans the antimeridian.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// WrapsAntimeridian reports whether the longitude span crosses ±180
func (b BoundingBox) WrapsAntimeridian() bool {
	return b.MinLon > b.MaxLon
}

// Contains reports whether p lies inside the box (bounds inclusive)
func (b BoundingBox) Contains(p LatLon) bool {
	if p.Lat < b.MinLat || p.Lat > b.MaxLat {
		return false
	}
	if b.WrapsAntimeridian() {
		return p.Lon >= b.MinLon || p.Lon <= b.MaxLon
	}
	return p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

// HaversineNM returns the great-circle distance between two points in nautical miles
func HaversineNM(a, b LatLon) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := lat2 - lat1
	dLon := toRadians(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	if h > 1 {
		h = 1
	}

	return 2 * EarthRadiusNM * math.Asin(math.Sqrt(h))
}

// DistanceNM is the great-circle distance between two airports
func DistanceNM(a, b *Airport) float64 {
	return HaversineNM(a.Coordinates(), b.Coordinates())
}

// Midpoint returns the spherical midpoint of the great circle between a and b
func Midpoint(a, b LatLon) LatLon {
	lat1 := toRadians(a.Lat)
	lon1 := toRadians(a.Lon)
	lat2 := toRadians(b.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	bx := math.Cos(lat2) * math.Cos(dLon)
	by := math.Cos(lat2) * math.Sin(dLon)

	lat := math.Atan2(math.Sin(lat1)+math.Sin(lat2), math.Sqrt((math.Cos(lat1)+bx)*(math.Cos(lat1)+bx)+by*by))
	lon := lon1 + math.Atan2(by, math.Cos(lat1)+bx)

	return LatLon{Lat: toDegrees(lat), Lon: NormalizeLongitude(toDegrees(lon))}
}

// BoundingBoxAround returns a box extending radiusNM from center in every direction
func BoundingBoxAround(center LatLon, radiusNM float64) BoundingBox {
	dLat := toDegrees(radiusNM / EarthRadiusNM)

	minLat := math.Max(center.Lat-dLat, -90)
	maxLat := math.Min(center.Lat+dLat, 90)

	// Longitude degrees shrink with latitude; near the poles take every meridian
	cosLat := math.Cos(toRadians(center.Lat))
	if cosLat < 1e-6 || maxLat >= 90 || minLat <= -90 {
		return BoundingBox{MinLat: minLat, MaxLat: maxLat, MinLon: -180, MaxLon: 180}
	}
	dLon := dLat / cosLat
	if dLon >= 180 {
		return BoundingBox{MinLat: minLat, MaxLat: maxLat, MinLon: -180, MaxLon: 180}
	}

	return BoundingBox{
		MinLat: minLat,
		MaxLat: maxLat,
		MinLon: NormalizeLongitude(center.Lon - dLon),
		MaxLon: NormalizeLongitude(center.Lon + dLon),
	}
}

// NormalizeLongitude maps any longitude into [-180, 180]
func NormalizeLongitude(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
