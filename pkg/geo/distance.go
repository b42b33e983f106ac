package geo

import "math"

// EarthRadiusMeters средний радиус Земли
const EarthRadiusMeters = 6371000.0

// Point географическая точка в градусах
type Point struct {
	Latitude  float64
	Longitude float64
}

// Distance возвращает расстояние по большому кругу (формула гаверсинусов) в метрах
func Distance(a, b Point) float64 {
	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Latitude))*math.Cos(toRad(b.Latitude))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
