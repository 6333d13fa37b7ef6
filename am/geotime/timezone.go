// Package geotime resolves the reference.timezone setting to a
// *time.Location. It accepts IANA names in any capitalization, zone
// abbreviations that have a well-known home zone, and a handful of city and
// country names.
//
// The zone database is embedded (time/tzdata) so that resolution does not
// depend on the host having /usr/share/zoneinfo.
package geotime

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/teranos/gnudate/errors"
)

// placeZones maps lowercase city and country names to their zone
var placeZones = map[string]string{
	"amsterdam":     "Europe/Amsterdam",
	"netherlands":   "Europe/Amsterdam",
	"berlin":        "Europe/Berlin",
	"germany":       "Europe/Berlin",
	"london":        "Europe/London",
	"england":       "Europe/London",
	"dublin":        "Europe/Dublin",
	"paris":         "Europe/Paris",
	"madrid":        "Europe/Madrid",
	"rome":          "Europe/Rome",
	"stockholm":     "Europe/Stockholm",
	"oslo":          "Europe/Oslo",
	"copenhagen":    "Europe/Copenhagen",
	"helsinki":      "Europe/Helsinki",
	"new york":      "America/New_York",
	"boston":        "America/New_York",
	"toronto":       "America/Toronto",
	"chicago":       "America/Chicago",
	"denver":        "America/Denver",
	"los angeles":   "America/Los_Angeles",
	"san francisco": "America/Los_Angeles",
	"seattle":       "America/Los_Angeles",
	"vancouver":     "America/Vancouver",
	"mexico city":   "America/Mexico_City",
	"sao paulo":     "America/Sao_Paulo",
	"buenos aires":  "America/Argentina/Buenos_Aires",
	"sydney":        "Australia/Sydney",
	"melbourne":     "Australia/Melbourne",
	"brisbane":      "Australia/Brisbane",
	"auckland":      "Pacific/Auckland",
	"singapore":     "Asia/Singapore",
	"hong kong":     "Asia/Hong_Kong",
	"tokyo":         "Asia/Tokyo",
	"japan":         "Asia/Tokyo",
	"seoul":         "Asia/Seoul",
	"india":         "Asia/Kolkata",
	"mumbai":        "Asia/Kolkata",
	"delhi":         "Asia/Kolkata",
	"dubai":         "Asia/Dubai",
	"tel aviv":      "Asia/Jerusalem",
}

// abbreviationZones maps abbreviations to a zone with daylight saving
// rules. Unlike the fixed offsets the grammar gives "est", the reference
// location follows the rules of the whole year.
var abbreviationZones = map[string]string{
	"pst":  "America/Los_Angeles",
	"pdt":  "America/Los_Angeles",
	"mst":  "America/Denver",
	"mdt":  "America/Denver",
	"cst":  "America/Chicago",
	"cdt":  "America/Chicago",
	"est":  "America/New_York",
	"edt":  "America/New_York",
	"bst":  "Europe/London",
	"cet":  "Europe/Berlin",
	"cest": "Europe/Berlin",
	"eet":  "Europe/Helsinki",
	"eest": "Europe/Helsinki",
	"ist":  "Asia/Kolkata",
	"sgt":  "Asia/Singapore",
	"hkt":  "Asia/Hong_Kong",
	"jst":  "Asia/Tokyo",
	"aest": "Australia/Sydney",
	"aedt": "Australia/Sydney",
	"nzst": "Pacific/Auckland",
	"nzdt": "Pacific/Auckland",
}

// LoadLocation resolves name to a location. "" and "local" are the host's
// zone, "utc" and "z" are UTC.
func LoadLocation(name string) (*time.Location, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "local":
		return time.Local, nil
	case "utc", "z", "gmt":
		return time.UTC, nil
	}
	tz, err := NormalizeTimezone(name)
	if err != nil {
		return nil, err
	}
	return time.LoadLocation(tz)
}

// NormalizeTimezone resolves user input into a canonical IANA zone name
func NormalizeTimezone(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", errors.New("timezone cannot be empty")
	}

	lower := strings.ToLower(strings.Join(strings.Fields(trimmed), " "))
	if tz, ok := abbreviationZones[lower]; ok {
		return tz, nil
	}
	if tz, ok := placeZones[lower]; ok {
		return tz, nil
	}

	if isValidTimezone(trimmed) && !needsCapitalization(trimmed) {
		return trimmed, nil
	}
	if candidate := sanitizeTimezone(trimmed); isValidTimezone(candidate) {
		return candidate, nil
	}
	if isValidTimezone(trimmed) {
		return trimmed, nil
	}

	return "", errors.WithHint(
		errors.Newf("unknown timezone: %s", input),
		"use an IANA name such as Europe/Berlin, or an abbreviation such as PST",
	)
}

// DetectLocalTimezone attempts to determine the host operating system timezone.
func DetectLocalTimezone() (string, error) {
	if tz := os.Getenv("TZ"); tz != "" {
		tz = strings.TrimPrefix(tz, ":")
		if isValidTimezone(tz) {
			return tz, nil
		}
	}

	if name := time.Local.String(); name != "" && name != "Local" && isValidTimezone(name) {
		return name, nil
	}

	if data, err := os.ReadFile("/etc/timezone"); err == nil {
		if tz := strings.TrimSpace(string(data)); isValidTimezone(tz) {
			return tz, nil
		}
	}

	for _, link := range []string{"/etc/localtime", "/var/db/timezone/zoneinfo/localtime"} {
		if tz, err := readZoneinfoSymlink(link); err == nil {
			return tz, nil
		}
	}

	return "", errors.New("could not detect local timezone: tried TZ, /etc/timezone and the /etc/localtime link")
}

// readZoneinfoSymlink extracts "Area/City" from a link into a zoneinfo tree
func readZoneinfoSymlink(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	_, rest, ok := strings.Cut(filepath.ToSlash(resolved), "zoneinfo/")
	if !ok {
		return "", errors.Newf("%s does not point into a zoneinfo tree", path)
	}
	if !isValidTimezone(rest) {
		return "", errors.Newf("invalid timezone %q (from %s)", rest, path)
	}
	return rest, nil
}

// sanitizeTimezone capitalizes each path element: america/new_york -> America/New_York.
// Words joined by "_" or "-" are capitalized too, except short joiners
// like "of" and "es" (Port_of_Spain, Dar_es_Salaam).
func sanitizeTimezone(tz string) string {
	tz = strings.Trim(strings.TrimSpace(tz), `"'`)
	tz = strings.ReplaceAll(tz, " ", "_")
	parts := strings.Split(tz, "/")
	for i, part := range parts {
		parts[i] = capitalizeWords(part)
	}
	return strings.Join(parts, "/")
}

func capitalizeWords(s string) string {
	var b strings.Builder
	start := true
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool { return r == '_' || r == '-' })
	seps := separators(s)
	for i, w := range words {
		if i > 0 {
			b.WriteByte(seps[i-1])
		}
		if start || !joiners[w] {
			w = strings.ToUpper(w[:1]) + w[1:]
		}
		start = false
		b.WriteString(w)
	}
	return b.String()
}

var joiners = map[string]bool{"of": true, "es": true, "au": true, "de": true}

func separators(s string) []byte {
	var seps []byte
	for i := 0; i < len(s); i++ {
		if s[i] == '_' || s[i] == '-' {
			seps = append(seps, s[i])
		}
	}
	return seps
}

// needsCapitalization reports names the zone database accepts only on
// case-insensitive file systems, like "america/new_york"
func needsCapitalization(tz string) bool {
	for _, part := range strings.Split(tz, "/") {
		if part != "" && part[0] >= 'a' && part[0] <= 'z' {
			return true
		}
	}
	return false
}

func isValidTimezone(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// ValidateTimezone ensures the timezone string maps to a valid IANA entry.
func ValidateTimezone(tz string) error {
	if !isValidTimezone(tz) {
		return errors.Newf("invalid timezone: %s", tz)
	}
	return nil
}
