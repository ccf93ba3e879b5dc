package sgp4

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseTLE reads a NORAD two-line element set into an Elements record,
// converting the broadcast units (degrees, revolutions per day) to the
// radians and radians-per-minute the propagator works in.
func ParseTLE(line1, line2 string) (Elements, error) {
	var el Elements
	line1 = strings.TrimRight(line1, "\r\n ")
	line2 = strings.TrimRight(line2, "\r\n ")
	if len(line1) != 69 {
		return el, fmt.Errorf("sgp4: tle line 1 length %d, expected 69", len(line1))
	}
	if len(line2) != 69 {
		return el, fmt.Errorf("sgp4: tle line 2 length %d, expected 69", len(line2))
	}
	if line1[0] != '1' {
		return el, fmt.Errorf("sgp4: tle line 1 must start with '1', got %q", line1[0])
	}
	if line2[0] != '2' {
		return el, fmt.Errorf("sgp4: tle line 2 must start with '2', got %q", line2[0])
	}
	for n, line := range []string{line1, line2} {
		if err := verifyChecksum(line); err != nil {
			return el, fmt.Errorf("sgp4: tle line %d: %w", n+1, err)
		}
	}
	if line1[2:7] != line2[2:7] {
		return el, fmt.Errorf("sgp4: tle catalog number mismatch: %q vs %q", line1[2:7], line2[2:7])
	}

	noradID, err := strconv.Atoi(strings.TrimSpace(line1[2:7]))
	if err != nil {
		return el, fmt.Errorf("sgp4: tle catalog number: %w", err)
	}
	el.NoradID = noradID

	yy, err := strconv.Atoi(strings.TrimSpace(line1[18:20]))
	if err != nil {
		return el, fmt.Errorf("sgp4: tle epoch year: %w", err)
	}
	doy, err := strconv.ParseFloat(strings.TrimSpace(line1[20:32]), 64)
	if err != nil {
		return el, fmt.Errorf("sgp4: tle epoch day: %w", err)
	}
	el.Epoch = tleEpochTime(yy, doy)

	bstar, err := parsePointAssumed(line1[53:61])
	if err != nil {
		return el, fmt.Errorf("sgp4: tle bstar: %w", err)
	}
	el.Bstar = bstar

	fields := []struct {
		dst   *float64
		raw   string
		scale float64
		name  string
	}{
		{&el.Inclination, line2[8:16], deg2rad, "inclination"},
		{&el.AscendingNode, line2[17:25], deg2rad, "ascending node"},
		{&el.ArgumentPerigee, line2[34:42], deg2rad, "argument of perigee"},
		{&el.MeanAnomaly, line2[43:51], deg2rad, "mean anomaly"},
		{&el.MeanMotion, line2[52:63], twoPi / minPerDay, "mean motion"},
	}
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f.raw), 64)
		if err != nil {
			return el, fmt.Errorf("sgp4: tle %s: %w", f.name, err)
		}
		*f.dst = v * f.scale
	}
	// eccentricity has an assumed leading decimal point
	ecc, err := strconv.ParseFloat("0."+line2[26:33], 64)
	if err != nil {
		return el, fmt.Errorf("sgp4: tle eccentricity: %w", err)
	}
	el.Eccentricity = ecc
	return el, nil
}

// verifyChecksum checks the trailing modulo-10 digit of a TLE line: digits
// count their value, minus signs count one.
func verifyChecksum(line string) error {
	sum := 0
	for _, ch := range line[:68] {
		switch {
		case ch >= '0' && ch <= '9':
			sum += int(ch - '0')
		case ch == '-':
			sum++
		}
	}
	want := int(line[68] - '0')
	if sum%10 != want {
		return fmt.Errorf("checksum %d, line claims %d", sum%10, want)
	}
	return nil
}

// parsePointAssumed reads an 8-character exponential field with an assumed
// leading decimal point, e.g. " 66816-4" meaning 0.66816e-4.
func parsePointAssumed(field string) (float64, error) {
	mant, err := strconv.ParseFloat("0."+strings.TrimSpace(field[1:6]), 64)
	if err != nil {
		return 0, err
	}
	sign := 1.0
	if field[0] == '-' {
		sign = -1.0
	}
	exp, err := strconv.Atoi(strings.TrimSpace(field[6:8]))
	if err != nil {
		return 0, err
	}
	return sign * mant * math.Pow(10.0, float64(exp)), nil
}

// tleEpochTime converts a two-digit TLE year and fractional day of year to
// an absolute time. Years 57 and later belong to the 1900s.
func tleEpochTime(yy int, doy float64) time.Time {
	year := 2000 + yy
	if yy >= 57 {
		year = 1900 + yy
	}
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return addMinutes(jan1, (doy-1.0)*minPerDay)
}
