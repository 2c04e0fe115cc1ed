package freight

import "freightzone-backend/internal/domain"

type ZoneCost struct {
	Zone        domain.Zone         `json:"zone"`
	DisplayName string              `json:"displayName"`
	Category    domain.ZoneCategory `json:"category"`
	Cost        float64             `json:"cost"`
}

type Thresholds struct {
	Local         float64 `json:"local"`
	National      float64 `json:"national"`
	International float64 `json:"international"`
}

type LocalZoneInfo struct {
	City               string   `json:"city"`
	Region             string   `json:"region"`
	RegionAliases      []string `json:"regionAliases"`
	PostalCodePrefixes []string `json:"postalCodePrefixes"`
	Suburbs            []string `json:"suburbs"`
}

// ZonesInfo describes the whole zone table with current prices.
type ZonesInfo struct {
	Zones                []ZoneCost             `json:"zones"`
	IsFreeFreightEnabled bool                   `json:"isFreeFreightEnabled"`
	Thresholds           Thresholds             `json:"thresholds"`
	SupportedCountries   []string               `json:"supportedCountries"`
	CountryZones         map[string]domain.Zone `json:"countryZones"`
	LocalZone            LocalZoneInfo          `json:"localZone"`
}

// ZoneCosts lists every zone with its current unit cost.
func ZoneCosts(cfg domain.FreightConfig, localCity string) []ZoneCost {
	out := make([]ZoneCost, 0, len(domain.Zones))
	for _, z := range domain.Zones {
		out = append(out, ZoneCost{
			Zone:        z,
			DisplayName: ZoneDisplayName(z, localCity),
			Category:    z.Category(),
			Cost:        cfg.CostFor(z),
		})
	}
	return out
}

func BuildZonesInfo(snap domain.FreightSnapshot) ZonesInfo {
	lz := effectiveLocalZone(snap.LocalZone).Clone()
	return ZonesInfo{
		Zones:                ZoneCosts(snap.Freight, lz.City),
		IsFreeFreightEnabled: snap.Freight.IsFreeFreightEnabled,
		Thresholds: Thresholds{
			Local:         snap.Freight.ThresholdLocal,
			National:      snap.Freight.ThresholdNational,
			International: snap.Freight.ThresholdInternational,
		},
		SupportedCountries: SupportedCountryList(),
		CountryZones:       CountryZones(),
		LocalZone: LocalZoneInfo{
			City:               lz.City,
			Region:             lz.Region,
			RegionAliases:      lz.RegionAliases(),
			PostalCodePrefixes: lz.PostalCodePrefixes,
			Suburbs:            lz.Suburbs,
		},
	}
}
