package route

import (
	"fmt"
	"strconv"
	"strings"
)

// DeepLink builds the provider map URL a phone opens to reconstruct the same
// route: <base>?rtext=<originLat>,<originLng>~<destLat>,<destLng>&rtt=pd.
// Coordinates are rendered at full precision, no rounding.
func DeepLink(base string, origin, dest [2]float64) string {
	return fmt.Sprintf("%s?rtext=%s~%s&rtt=pd", base, coordPair(origin), coordPair(dest))
}

// ParseDeepLink recovers the coordinate pairs from a deep link; the inverse
// of DeepLink for round-trip checks.
func ParseDeepLink(link string) (origin, dest [2]float64, err error) {
	_, query, ok := strings.Cut(link, "?")
	if !ok {
		return origin, dest, fmt.Errorf("route: no query in link %q", link)
	}

	var rtext string
	for _, param := range strings.Split(query, "&") {
		if v, found := strings.CutPrefix(param, "rtext="); found {
			rtext = v
		}
	}
	if rtext == "" {
		return origin, dest, fmt.Errorf("route: no rtext in link %q", link)
	}

	from, to, ok := strings.Cut(rtext, "~")
	if !ok {
		return origin, dest, fmt.Errorf("route: malformed rtext %q", rtext)
	}
	if origin, err = parseCoordPair(from); err != nil {
		return origin, dest, err
	}
	dest, err = parseCoordPair(to)
	return origin, dest, err
}

func parseCoordPair(s string) ([2]float64, error) {
	lat, lng, ok := strings.Cut(s, ",")
	if !ok {
		return [2]float64{}, fmt.Errorf("route: malformed coordinate pair %q", s)
	}
	latV, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return [2]float64{}, err
	}
	lngV, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return [2]float64{}, err
	}
	return [2]float64{latV, lngV}, nil
}
