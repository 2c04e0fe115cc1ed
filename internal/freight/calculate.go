package freight

import "freightzone-backend/internal/domain"

// Calculation is the combined zone and price for an address.
type Calculation struct {
	Success              bool                `json:"success"`
	Zone                 domain.Zone         `json:"zone"`
	ZoneDisplayName      string              `json:"zoneDisplayName"`
	ZoneCategory         domain.ZoneCategory `json:"zoneCategory"`
	Country              string              `json:"country"`
	IsLocal              bool                `json:"isLocal"`
	IsInternational      bool                `json:"isInternational"`
	IsNorthIsland        bool                `json:"isNorthIsland"`
	IsSouthIsland        bool                `json:"isSouthIsland"`
	LocalZoneCity        string              `json:"localZoneCity"`
	MatchedBy            string              `json:"matchedBy"`
	FreightCost          float64             `json:"freightCost"`
	IsFreeFreight        bool                `json:"isFreeFreight"`
	IsFreeFreightEnabled bool                `json:"isFreeFreightEnabled"`
	Threshold            float64             `json:"threshold"`
	AmountForFreeFreight *float64            `json:"amountForFreeFreight"`
	FreeFreightMessage   string              `json:"freeFreightMessage,omitempty"`
	OrderTotal           float64             `json:"orderTotal"`

	// Set when Success is false.
	Message            string   `json:"-"`
	SupportedCountries []string `json:"-"`
}

// CalculateFromAddress detects the zone of addr and prices it. It is the entry
// point for checkout and admin previews; its Zone always equals DetectZone and
// its FreightCost always equals Price for the same inputs.
func CalculateFromAddress(addr domain.Address, orderTotal float64, freightCfg domain.FreightConfig, localZone domain.LocalZoneConfig) Calculation {
	d := DetectZone(addr, localZone)
	if !d.Success {
		return Calculation{
			Success:            false,
			Message:            d.Error,
			SupportedCountries: d.SupportedCountries,
			OrderTotal:         orderTotal,
		}
	}

	q := Price(d.Zone, orderTotal, freightCfg)

	c := Calculation{
		Success:              true,
		Zone:                 d.Zone,
		ZoneDisplayName:      ZoneDisplayName(d.Zone, d.LocalZoneCity),
		ZoneCategory:         q.Category,
		Country:              d.Country,
		IsLocal:              d.IsLocal,
		IsInternational:      d.IsInternational,
		IsNorthIsland:        d.IsNorthIsland,
		IsSouthIsland:        d.IsSouthIsland,
		LocalZoneCity:        d.LocalZoneCity,
		MatchedBy:            d.MatchedBy,
		FreightCost:          q.Cost,
		IsFreeFreight:        q.IsFreeFreight,
		IsFreeFreightEnabled: freightCfg.IsFreeFreightEnabled,
		Threshold:            q.Threshold,
		OrderTotal:           orderTotal,
	}

	if freightCfg.IsFreeFreightEnabled {
		amount := AmountForFreeFreight(q.Threshold, orderTotal)
		c.AmountForFreeFreight = &amount
		c.FreeFreightMessage = freeFreightMessage(q.IsFreeFreight, amount)
	}
	return c
}

// ZoneDisplayName names a zone for customers. The local zone carries its city.
func ZoneDisplayName(zone domain.Zone, localCity string) string {
	if zone == domain.ZoneLocal && localCity != "" {
		return "Local (" + localCity + ")"
	}
	return zone.DisplayName()
}

func freeFreightMessage(isFree bool, remaining float64) string {
	if isFree {
		return "You qualify for free shipping!"
	}
	return "Add " + formatMoney(remaining) + " more to qualify for free shipping"
}
