package sgp4

import "math"

// Geodetic is a position on the reference ellipsoid of the model. Latitude
// and longitude are in radians, altitude in km above the ellipsoid.
type Geodetic struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
}

// ellipsoid eccentricity squared, e² = f(2-f)
var ellE2 = EarthFlattening * (2.0 - EarthFlattening)

// ECEF rotates the state into the Earth-fixed frame at its own time. The
// velocity has the Earth rotation term removed, so it is the velocity an
// observer fixed to the ground would measure.
func (s State) ECEF() (r, v []float64) {
	θ := GMST(s.DT)
	r = ECI2ECEF(s.R, θ)
	v = ECI2ECEF(s.V, θ)
	v[0] += EarthRotationRate * r[1]
	v[1] -= EarthRotationRate * r[0]
	return r, v
}

// Geodetic returns the sub-satellite point. The latitude iteration converges
// in a handful of steps for anything above the surface.
func (s State) Geodetic() Geodetic {
	θ := GMST(s.DT)
	x, y, z := s.R[0], s.R[1], s.R[2]
	lon := math.Mod(math.Atan2(y, x)-θ, twoPi)
	if lon > math.Pi {
		lon -= twoPi
	} else if lon < -math.Pi {
		lon += twoPi
	}
	p := math.Sqrt(x*x + y*y)
	lat := math.Atan2(z, p)
	var c float64
	for i := 0; i < 10; i++ {
		sinLat := math.Sin(lat)
		c = 1.0 / math.Sqrt(1.0-ellE2*sinLat*sinLat)
		next := math.Atan2(z+EarthRadiusKm*c*ellE2*sinLat, p)
		if math.Abs(next-lat) < 1e-12 {
			lat = next
			break
		}
		lat = next
	}
	return Geodetic{
		Latitude:  lat,
		Longitude: lon,
		Altitude:  p/math.Cos(lat) - EarthRadiusKm*c,
	}
}

// Observer is a ground station able to compute look angles to a propagated
// state.
type Observer struct {
	Position Geodetic
}

// Look is a topocentric pointing solution: azimuth clockwise from north and
// elevation above the horizon in radians, range in km, range rate in km/s.
type Look struct {
	Azimuth   float64
	Elevation float64
	Range     float64
	RangeRate float64
}

// ecef returns the observer position on the ellipsoid in the Earth-fixed
// frame, km.
func (o Observer) ecef() []float64 {
	sinLat := math.Sin(o.Position.Latitude)
	cosLat := math.Cos(o.Position.Latitude)
	n := EarthRadiusKm / math.Sqrt(1.0-ellE2*sinLat*sinLat)
	return []float64{
		(n + o.Position.Altitude) * cosLat * math.Cos(o.Position.Longitude),
		(n + o.Position.Altitude) * cosLat * math.Sin(o.Position.Longitude),
		(n*(1.0-ellE2) + o.Position.Altitude) * sinLat,
	}
}

// LookAngles computes the pointing solution from the observer to the state.
func (o Observer) LookAngles(s State) Look {
	satR, satV := s.ECEF()
	obsR := o.ecef()
	rho := []float64{satR[0] - obsR[0], satR[1] - obsR[1], satR[2] - obsR[2]}

	sinLat := math.Sin(o.Position.Latitude)
	cosLat := math.Cos(o.Position.Latitude)
	sinLon := math.Sin(o.Position.Longitude)
	cosLon := math.Cos(o.Position.Longitude)

	// rotate the range vector to the south/east/zenith frame
	south := sinLat*cosLon*rho[0] + sinLat*sinLon*rho[1] - cosLat*rho[2]
	east := -sinLon*rho[0] + cosLon*rho[1]
	zenith := cosLat*cosLon*rho[0] + cosLat*sinLon*rho[1] + sinLat*rho[2]

	rng := norm(rho)
	az := math.Atan2(east, -south)
	if az < 0 {
		az += twoPi
	}
	return Look{
		Azimuth:   az,
		Elevation: math.Asin(zenith / rng),
		Range:     rng,
		RangeRate: dot(rho, satV) / rng,
	}
}
