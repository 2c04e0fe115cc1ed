package freight

import (
	"freightzone-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// Quote is the price of shipping to one zone.
type Quote struct {
	Cost          float64             `json:"cost"`
	IsFreeFreight bool                `json:"isFreeFreight"`
	Category      domain.ZoneCategory `json:"category"`
	Threshold     float64             `json:"threshold"`
}

// Price looks up the unit cost of zone and waives it when free freight is
// enabled and orderTotal reaches the threshold of the zone's category. The
// threshold is inclusive.
func Price(zone domain.Zone, orderTotal float64, cfg domain.FreightConfig) Quote {
	cat := zone.Category()
	q := Quote{
		Cost:      cfg.CostFor(zone),
		Category:  cat,
		Threshold: cfg.ThresholdFor(cat),
	}
	if cfg.IsFreeFreightEnabled && decimal.NewFromFloat(orderTotal).GreaterThanOrEqual(decimal.NewFromFloat(q.Threshold)) {
		q.Cost = 0
		q.IsFreeFreight = true
	}
	return q
}

// AmountForFreeFreight is how much more must be spent to reach threshold,
// never negative.
func AmountForFreeFreight(threshold, orderTotal float64) float64 {
	diff := decimal.NewFromFloat(threshold).Sub(decimal.NewFromFloat(orderTotal))
	if diff.IsNegative() {
		return 0
	}
	return diff.Round(2).InexactFloat64()
}

// RoundMoney rounds a currency amount to cents.
func RoundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func formatMoney(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}
