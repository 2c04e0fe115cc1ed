package freight

import (
	"freightzone-backend/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testFreightConfig() domain.FreightConfig {
	return domain.FreightConfig{
		LocalCost:              30,
		NorthIslandCost:        45,
		SouthIslandCost:        60,
		NorthAmericaCost:       120,
		AsiaCost:               95,
		EuropeCost:             140,
		LatinAmericaCost:       150,
		IsFreeFreightEnabled:   true,
		ThresholdLocal:         200,
		ThresholdNational:      300,
		ThresholdInternational: 800,
	}
}

func TestPrice_ThresholdBoundary(t *testing.T) {
	cfg := testFreightConfig()

	tests := []struct {
		name       string
		zone       domain.Zone
		orderTotal float64
		wantCost   float64
		wantFree   bool
	}{
		{name: "just below local threshold", zone: domain.ZoneLocal, orderTotal: 199.99, wantCost: 30, wantFree: false},
		{name: "at local threshold", zone: domain.ZoneLocal, orderTotal: 200.00, wantCost: 0, wantFree: true},
		{name: "above local threshold", zone: domain.ZoneLocal, orderTotal: 250, wantCost: 0, wantFree: true},
		{name: "national uses national threshold", zone: domain.ZoneSouthIsland, orderTotal: 250, wantCost: 60, wantFree: false},
		{name: "national at threshold", zone: domain.ZoneNorthIsland, orderTotal: 300, wantCost: 0, wantFree: true},
		{name: "international below threshold", zone: domain.ZoneIntlEurope, orderTotal: 799.99, wantCost: 140, wantFree: false},
		{name: "international at threshold", zone: domain.ZoneIntlAsia, orderTotal: 800, wantCost: 0, wantFree: true},
		{name: "unconfigured zone is free", zone: domain.ZoneIntlAfrica, orderTotal: 10, wantCost: 0, wantFree: false},
		{name: "unknown zone", zone: domain.Zone("mars"), orderTotal: 10, wantCost: 0, wantFree: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Price(tt.zone, tt.orderTotal, cfg)
			assert.Equal(t, tt.wantCost, q.Cost)
			assert.Equal(t, tt.wantFree, q.IsFreeFreight)
			assert.Equal(t, tt.zone.Category(), q.Category)
		})
	}
}

func TestPrice_FreeFreightDisabled(t *testing.T) {
	cfg := testFreightConfig()
	cfg.IsFreeFreightEnabled = false

	q := Price(domain.ZoneLocal, 10000, cfg)
	assert.Equal(t, 30.0, q.Cost)
	assert.False(t, q.IsFreeFreight)
	assert.Equal(t, 200.0, q.Threshold)
}

func TestPrice_CategoryThresholds(t *testing.T) {
	cfg := testFreightConfig()

	assert.Equal(t, 200.0, Price(domain.ZoneLocal, 0, cfg).Threshold)
	assert.Equal(t, 300.0, Price(domain.ZoneNorthIsland, 0, cfg).Threshold)
	assert.Equal(t, 300.0, Price(domain.ZoneSouthIsland, 0, cfg).Threshold)
	for _, z := range []domain.Zone{domain.ZoneIntlNorthAmerica, domain.ZoneIntlAsia, domain.ZoneIntlEurope, domain.ZoneIntlAfrica, domain.ZoneIntlLatinAmerica} {
		assert.Equal(t, 800.0, Price(z, 0, cfg).Threshold, z)
	}
}

func TestAmountForFreeFreight(t *testing.T) {
	assert.Equal(t, 250.0, AmountForFreeFreight(300, 50))
	assert.Equal(t, 0.01, AmountForFreeFreight(200, 199.99))
	assert.Equal(t, 0.0, AmountForFreeFreight(200, 200))
	assert.Equal(t, 0.0, AmountForFreeFreight(200, 500))
	assert.Equal(t, 70.1, AmountForFreeFreight(100.3, 30.2))
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 12.35, RoundMoney(12.345))
	assert.Equal(t, 12.34, RoundMoney(12.344))
	assert.Equal(t, 0.0, RoundMoney(0))
	assert.Equal(t, "$250.00", formatMoney(250))
}
