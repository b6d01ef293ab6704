// Package location formats caller coordinates for alert messages.
package location

import (
	"fmt"
	"strconv"
	"strings"
)

// Unavailable is reported when no usable coordinates were supplied.
const Unavailable = "Unavailable"

// Resolve turns a raw "lat,lon" coordinate string into a Google Maps link.
// Anything that does not parse as a coordinate pair resolves to Unavailable.
// No network calls — pure formatting.
func Resolve(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Unavailable
	}

	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return Unavailable
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Unavailable
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Unavailable
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Unavailable
	}

	return fmt.Sprintf("https://www.google.com/maps?q=%s,%s",
		strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
}
