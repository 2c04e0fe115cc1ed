package freight

import "freightzone-backend/internal/domain"

// ClassifyIsland places a New Zealand address on the North or South Island.
// State is tried before city, and the North Island list before the South.
// An address with no usable signal is treated as North Island.
func ClassifyIsland(addr domain.Address) domain.Zone {
	zone, _ := classifyIsland(addr)
	return zone
}

// classifyIsland also returns the field that decided the island, or "" when
// the North Island default was applied.
func classifyIsland(addr domain.Address) (domain.Zone, string) {
	for _, field := range []struct {
		name  string
		value string
	}{
		{"state", addr.State},
		{"city", addr.City},
	} {
		if containsAnyFold(field.value, northIslandPlaces) {
			return domain.ZoneNorthIsland, field.name
		}
		if containsAnyFold(field.value, southIslandPlaces) {
			return domain.ZoneSouthIsland, field.name
		}
	}

	if containsFold(addr.FormattedAddress, "north island") {
		return domain.ZoneNorthIsland, SignalFormattedAddress
	}
	if containsFold(addr.FormattedAddress, "south island") {
		return domain.ZoneSouthIsland, SignalFormattedAddress
	}

	return domain.ZoneNorthIsland, ""
}
