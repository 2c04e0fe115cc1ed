// Package freight classifies shipping addresses into zones and prices freight
// for a zone. Everything here is pure: configuration is passed in by value and
// nothing blocks, so any number of request handlers may call it concurrently.
package freight

import (
	"freightzone-backend/internal/domain"
	"slices"
	"strings"
)

const CountryNewZealand = "New Zealand"

// SupportedCountries is the closed set of destinations we ship to.
var SupportedCountries = []string{
	"New Zealand",
	"Australia",
	"United States",
	"Canada",
	"Brazil",
	"Portugal",
	"United Kingdom",
	"China",
}

// countryZones maps every supported country except New Zealand to its zone.
var countryZones = map[string]domain.Zone{
	"Australia":      domain.ZoneIntlAsia,
	"United States":  domain.ZoneIntlNorthAmerica,
	"Canada":         domain.ZoneIntlNorthAmerica,
	"Brazil":         domain.ZoneIntlLatinAmerica,
	"Portugal":       domain.ZoneIntlEurope,
	"United Kingdom": domain.ZoneIntlEurope,
	"China":          domain.ZoneIntlAsia,
}

// countryAliases is keyed by lower case alias.
var countryAliases = map[string]string{
	"new zealand": "New Zealand",
	"nz":          "New Zealand",
	"nzl":         "New Zealand",
	"aotearoa":    "New Zealand",

	"australia": "Australia",
	"au":        "Australia",
	"aus":       "Australia",

	"united states":            "United States",
	"united states of america": "United States",
	"us":                       "United States",
	"usa":                      "United States",
	"u.s.":                     "United States",
	"u.s.a.":                   "United States",
	"america":                  "United States",

	"canada": "Canada",
	"ca":     "Canada",
	"can":    "Canada",

	"brazil": "Brazil",
	"brasil": "Brazil",
	"br":     "Brazil",
	"bra":    "Brazil",

	"portugal": "Portugal",
	"pt":       "Portugal",
	"prt":      "Portugal",

	"united kingdom":   "United Kingdom",
	"uk":               "United Kingdom",
	"gb":               "United Kingdom",
	"gbr":              "United Kingdom",
	"great britain":    "United Kingdom",
	"britain":          "United Kingdom",
	"england":          "United Kingdom",
	"scotland":         "United Kingdom",
	"wales":            "United Kingdom",
	"northern ireland": "United Kingdom",

	"china":                      "China",
	"cn":                         "China",
	"chn":                        "China",
	"prc":                        "China",
	"people's republic of china": "China",
	"中国":                         "China",
	"中华人民共和国":                    "China",
}

// NormalizeCountry maps free text or a country code to a supported country
// name. The second return value is false for anything we do not ship to;
// there is no fuzzy matching.
func NormalizeCountry(raw string) (string, bool) {
	country := strings.TrimSpace(raw)
	if country == "" {
		return "", false
	}
	if slices.Contains(SupportedCountries, country) {
		return country, true
	}
	if name, ok := countryAliases[strings.ToLower(country)]; ok {
		return name, true
	}
	return "", false
}

// ZoneForCountry returns the fixed zone of an international country.
// New Zealand has no fixed zone and reports false.
func ZoneForCountry(country string) (domain.Zone, bool) {
	z, ok := countryZones[country]
	return z, ok
}

// CountryZones returns a copy of the international country to zone table.
func CountryZones() map[string]domain.Zone {
	out := make(map[string]domain.Zone, len(countryZones))
	for k, v := range countryZones {
		out[k] = v
	}
	return out
}

// SupportedCountryList returns a copy of SupportedCountries.
func SupportedCountryList() []string {
	return slices.Clone(SupportedCountries)
}
