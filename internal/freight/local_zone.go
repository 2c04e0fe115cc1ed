package freight

import (
	"fmt"
	"freightzone-backend/internal/domain"
	"slices"
	"strings"
)

// Local zone signals, in the order they are tested.
const (
	SignalCity             = "city"
	SignalPostalCode       = "postal_code"
	SignalRegion           = "region"
	SignalFormattedAddress = "formatted_address"
)

type localCheck struct {
	signal string
	match  func(addr domain.Address, cfg domain.LocalZoneConfig) bool
}

// Any one check is sufficient. The order only decides which signal is reported.
var localChecks = []localCheck{
	{SignalCity, func(addr domain.Address, cfg domain.LocalZoneConfig) bool {
		return containsAnyFold(addr.City, localPlaces(cfg))
	}},
	{SignalPostalCode, func(addr domain.Address, cfg domain.LocalZoneConfig) bool {
		prefix, ok := postalPrefix(addr.PostalCode)
		if !ok {
			return false
		}
		for _, p := range cfg.PostalCodePrefixes {
			if strings.TrimSpace(p) == prefix {
				return true
			}
		}
		return false
	}},
	{SignalRegion, func(addr domain.Address, cfg domain.LocalZoneConfig) bool {
		terms := append([]string{cfg.Region}, cfg.RegionAliases()...)
		return containsAnyFold(addr.State, terms)
	}},
	{SignalFormattedAddress, func(addr domain.Address, cfg domain.LocalZoneConfig) bool {
		return containsAnyFold(addr.FormattedAddress, localPlaces(cfg))
	}},
}

func localPlaces(cfg domain.LocalZoneConfig) []string {
	places := make([]string, 0, len(cfg.Suburbs)+1)
	places = append(places, cfg.City)
	return append(places, cfg.Suburbs...)
}

// IsLocal reports whether addr falls inside the configured local zone.
func IsLocal(addr domain.Address, cfg domain.LocalZoneConfig) bool {
	_, ok := MatchLocal(addr, cfg)
	return ok
}

// MatchLocal is IsLocal that also names the first signal that matched.
func MatchLocal(addr domain.Address, cfg domain.LocalZoneConfig) (string, bool) {
	for _, c := range localChecks {
		if c.match(addr, cfg) {
			return c.signal, true
		}
	}
	return "", false
}

// InvalidCityError rejects a local zone anchored outside the North Island
// directory.
type InvalidCityError struct {
	City string
}

func (e *InvalidCityError) Error() string {
	return fmt.Sprintf("invalid local zone city %q: must be one of the supported North Island cities", e.City)
}

func (e *InvalidCityError) Unwrap() error {
	return domain.ErrInvalidLocalZoneCity
}

// LocalZoneCandidate is an admin's requested local zone. Nil slices mean the
// field was omitted.
type LocalZoneCandidate struct {
	City               string
	PostalCodePrefixes []string
	Suburbs            []string
}

// BuildLocalZone validates a candidate against the North Island directory and
// fills in the region, plus default prefixes and suburbs when omitted.
func BuildLocalZone(c LocalZoneCandidate) (domain.LocalZoneConfig, error) {
	city, ok := LookupNorthIslandCity(c.City)
	if !ok {
		return domain.LocalZoneConfig{}, &InvalidCityError{City: c.City}
	}

	cfg := domain.LocalZoneConfig{
		City:               city.Name,
		Region:             city.Region,
		PostalCodePrefixes: city.PostalPrefixes,
		Suburbs:            []string{},
	}
	if c.PostalCodePrefixes != nil {
		cfg.PostalCodePrefixes = cleanList(c.PostalCodePrefixes)
	}
	if c.Suburbs != nil {
		cfg.Suburbs = cleanList(c.Suburbs)
	}
	return cfg, nil
}

// cleanList trims entries and drops blanks and duplicates.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || slices.ContainsFunc(out, func(o string) bool { return strings.EqualFold(o, s) }) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func effectiveLocalZone(cfg domain.LocalZoneConfig) domain.LocalZoneConfig {
	if strings.TrimSpace(cfg.City) == "" {
		return domain.DefaultLocalZoneConfig()
	}
	return cfg
}
