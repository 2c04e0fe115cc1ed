package domain

import (
	"context"
	"slices"
	"time"
)

// Defaults used when no configuration row has been saved yet.
const (
	DefaultLocalZoneCity   = "Tauranga"
	DefaultLocalZoneRegion = "Bay of Plenty"
)

var DefaultLocalZonePostalPrefixes = []string{"311"}

// FreightConfig holds the per-zone unit costs and the free freight thresholds.
// There is exactly one active row.
type FreightConfig struct {
	LocalCost        float64 `json:"localCost"`
	NorthIslandCost  float64 `json:"northIslandCost"`
	SouthIslandCost  float64 `json:"southIslandCost"`
	NorthAmericaCost float64 `json:"northAmericaCost"`
	AsiaCost         float64 `json:"asiaCost"`
	EuropeCost       float64 `json:"europeCost"`
	AfricaCost       float64 `json:"africaCost"`
	LatinAmericaCost float64 `json:"latinAmericaCost"`

	IsFreeFreightEnabled   bool    `json:"isFreeFreightEnabled"`
	ThresholdLocal         float64 `json:"thresholdLocal"`
	ThresholdNational      float64 `json:"thresholdNational"`
	ThresholdInternational float64 `json:"thresholdInternational"`

	UpdatedBy string    `json:"updatedBy,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CostFor returns the unit cost of a zone. Zones without a configured cost are free.
func (c FreightConfig) CostFor(z Zone) float64 {
	switch z {
	case ZoneLocal:
		return c.LocalCost
	case ZoneNorthIsland:
		return c.NorthIslandCost
	case ZoneSouthIsland:
		return c.SouthIslandCost
	case ZoneIntlNorthAmerica:
		return c.NorthAmericaCost
	case ZoneIntlAsia:
		return c.AsiaCost
	case ZoneIntlEurope:
		return c.EuropeCost
	case ZoneIntlAfrica:
		return c.AfricaCost
	case ZoneIntlLatinAmerica:
		return c.LatinAmericaCost
	}
	return 0
}

// ThresholdFor returns the free freight threshold of a zone category.
func (c FreightConfig) ThresholdFor(cat ZoneCategory) float64 {
	switch cat {
	case CategoryLocal:
		return c.ThresholdLocal
	case CategoryNational:
		return c.ThresholdNational
	case CategoryInternational:
		return c.ThresholdInternational
	}
	return 0
}

// PublicFreightConfig is the sanitized view served to storefront clients.
type PublicFreightConfig struct {
	LocalCost              float64 `json:"localCost"`
	NorthIslandCost        float64 `json:"northIslandCost"`
	SouthIslandCost        float64 `json:"southIslandCost"`
	NorthAmericaCost       float64 `json:"northAmericaCost"`
	AsiaCost               float64 `json:"asiaCost"`
	EuropeCost             float64 `json:"europeCost"`
	AfricaCost             float64 `json:"africaCost"`
	LatinAmericaCost       float64 `json:"latinAmericaCost"`
	IsFreeFreightEnabled   bool    `json:"isFreeFreightEnabled"`
	ThresholdLocal         float64 `json:"thresholdLocal"`
	ThresholdNational      float64 `json:"thresholdNational"`
	ThresholdInternational float64 `json:"thresholdInternational"`
}

func (c FreightConfig) Public() PublicFreightConfig {
	return PublicFreightConfig{
		LocalCost:              c.LocalCost,
		NorthIslandCost:        c.NorthIslandCost,
		SouthIslandCost:        c.SouthIslandCost,
		NorthAmericaCost:       c.NorthAmericaCost,
		AsiaCost:               c.AsiaCost,
		EuropeCost:             c.EuropeCost,
		AfricaCost:             c.AfricaCost,
		LatinAmericaCost:       c.LatinAmericaCost,
		IsFreeFreightEnabled:   c.IsFreeFreightEnabled,
		ThresholdLocal:         c.ThresholdLocal,
		ThresholdNational:      c.ThresholdNational,
		ThresholdInternational: c.ThresholdInternational,
	}
}

// LocalZoneConfig defines the single "home" delivery area. City must always be a
// North Island city; that rule is enforced when the config is updated.
type LocalZoneConfig struct {
	City               string    `json:"city"`
	Region             string    `json:"region"`
	PostalCodePrefixes []string  `json:"postalCodePrefixes"`
	Suburbs            []string  `json:"suburbs"`
	UpdatedBy          string    `json:"updatedBy,omitempty"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// RegionAliases are matched against the address state alongside Region.
func (c LocalZoneConfig) RegionAliases() []string {
	if c.City == "" {
		return nil
	}
	return []string{
		c.City + " City",
		c.City + " District",
		"Greater " + c.City,
	}
}

// Clone returns a copy that shares no slices with c.
func (c LocalZoneConfig) Clone() LocalZoneConfig {
	c.PostalCodePrefixes = slices.Clone(c.PostalCodePrefixes)
	c.Suburbs = slices.Clone(c.Suburbs)
	return c
}

func DefaultFreightConfig() FreightConfig {
	return FreightConfig{}
}

func DefaultLocalZoneConfig() LocalZoneConfig {
	return LocalZoneConfig{
		City:               DefaultLocalZoneCity,
		Region:             DefaultLocalZoneRegion,
		PostalCodePrefixes: slices.Clone(DefaultLocalZonePostalPrefixes),
		Suburbs:            []string{},
	}
}

// FreightSnapshot is both configs read once for a single calculation.
type FreightSnapshot struct {
	Freight   FreightConfig
	LocalZone LocalZoneConfig
}

type FreightConfigRepository interface {
	// GetFreightConfig returns ErrConfigNotFound when no row has been saved.
	GetFreightConfig(ctx context.Context) (*FreightConfig, error)
	SaveFreightConfig(ctx context.Context, cfg *FreightConfig) (*FreightConfig, error)
	// GetLocalZoneConfig returns ErrConfigNotFound when no row has been saved.
	GetLocalZoneConfig(ctx context.Context) (*LocalZoneConfig, error)
	SaveLocalZoneConfig(ctx context.Context, cfg *LocalZoneConfig) (*LocalZoneConfig, error)
}

// RateCardPublisher pushes the public zone table to object storage.
type RateCardPublisher interface {
	UploadJSON(ctx context.Context, key string, data []byte) (string, error)
}
