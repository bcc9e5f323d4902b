package utils

import "math"

const earthRadiusMeters = 6371000

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64
	Lng float64
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Haversine returns the great-circle distance between two points in meters.
func Haversine(start, end Point) float64 {
	phi1 := degToRad(start.Lat)
	phi2 := degToRad(end.Lat)
	deltaPhi := degToRad(end.Lat - start.Lat)
	deltaLambda := degToRad(end.Lng - start.Lng)

	a := math.Pow(math.Sin(deltaPhi/2), 2) + math.Cos(phi1)*math.Cos(phi2)*
		math.Pow(math.Sin(deltaLambda/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// PathLength sums the distance between consecutive points in meters.
func PathLength(points []Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += Haversine(points[i-1], points[i])
	}
	return total
}

// ValidCoordinate reports whether lat/lng lie inside the WGS84 ranges.
func ValidCoordinate(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
