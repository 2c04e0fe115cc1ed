package freight

import "freightzone-backend/internal/domain"

// MatchedByDefault marks a North Island result reached by the fallback rule.
const MatchedByDefault = "default"

// Detection is the outcome of DetectZone. When Success is false only Error and
// SupportedCountries are set.
type Detection struct {
	Success         bool        `json:"success"`
	Zone            domain.Zone `json:"zone,omitempty"`
	Country         string      `json:"country,omitempty"`
	IsLocal         bool        `json:"isLocal"`
	IsInternational bool        `json:"isInternational"`
	IsNorthIsland   bool        `json:"isNorthIsland"`
	IsSouthIsland   bool        `json:"isSouthIsland"`
	LocalZoneCity   string      `json:"localZoneCity,omitempty"`
	// MatchedBy names the signal that decided the zone: "country" for
	// international addresses, a local zone signal, "state", "city",
	// "formatted_address" or "default".
	MatchedBy string `json:"matchedBy,omitempty"`

	Error              string   `json:"error,omitempty"`
	SupportedCountries []string `json:"supportedCountries,omitempty"`
}

// DetectZone assigns addr to a zone. A zero LocalZoneConfig means the default
// local zone. An unsupported country is reported through Success=false, never
// defaulted to a zone.
func DetectZone(addr domain.Address, localZone domain.LocalZoneConfig) Detection {
	localZone = effectiveLocalZone(localZone)

	country, ok := NormalizeCountry(addr.Country)
	if !ok {
		return Detection{
			Success:            false,
			Error:              unsupportedCountryMessage(addr.Country),
			SupportedCountries: SupportedCountryList(),
		}
	}

	d := Detection{
		Success:       true,
		Country:       country,
		LocalZoneCity: localZone.City,
	}

	if country != CountryNewZealand {
		zone, _ := ZoneForCountry(country)
		d.Zone = zone
		d.IsInternational = true
		d.MatchedBy = "country"
		return d
	}

	if signal, ok := MatchLocal(addr, localZone); ok {
		d.Zone = domain.ZoneLocal
		d.IsLocal = true
		d.MatchedBy = signal
		return d
	}

	zone, field := classifyIsland(addr)
	d.Zone = zone
	d.IsNorthIsland = zone == domain.ZoneNorthIsland
	d.IsSouthIsland = zone == domain.ZoneSouthIsland
	d.MatchedBy = field
	if field == "" {
		d.MatchedBy = MatchedByDefault
	}
	return d
}

func unsupportedCountryMessage(raw string) string {
	if raw == "" {
		return "Country is required. We currently ship to the listed countries only."
	}
	return "We do not currently ship to " + raw + ". Supported countries are listed."
}
