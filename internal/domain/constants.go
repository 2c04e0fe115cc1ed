package domain

// Zone is one of the eight mutually exclusive shipping cost buckets.
type Zone string

const (
	ZoneLocal            Zone = "local"
	ZoneNorthIsland      Zone = "north_island"
	ZoneSouthIsland      Zone = "south_island"
	ZoneIntlNorthAmerica Zone = "intl_north_america"
	ZoneIntlAsia         Zone = "intl_asia"
	ZoneIntlEurope       Zone = "intl_europe"
	ZoneIntlAfrica       Zone = "intl_africa"
	ZoneIntlLatinAmerica Zone = "intl_latin_america"
)

// ZoneCategory selects which free freight threshold applies.
type ZoneCategory string

const (
	CategoryLocal         ZoneCategory = "local"
	CategoryNational      ZoneCategory = "national"
	CategoryInternational ZoneCategory = "international"
)

// Zones lists every zone in display order.
var Zones = []Zone{
	ZoneLocal,
	ZoneNorthIsland,
	ZoneSouthIsland,
	ZoneIntlNorthAmerica,
	ZoneIntlAsia,
	ZoneIntlEurope,
	ZoneIntlAfrica,
	ZoneIntlLatinAmerica,
}

var zoneDisplayNames = map[Zone]string{
	ZoneLocal:            "Local",
	ZoneNorthIsland:      "North Island",
	ZoneSouthIsland:      "South Island",
	ZoneIntlNorthAmerica: "International - North America",
	ZoneIntlAsia:         "International - Asia Pacific",
	ZoneIntlEurope:       "International - Europe",
	ZoneIntlAfrica:       "International - Africa",
	ZoneIntlLatinAmerica: "International - Latin America",
}

func (z Zone) Valid() bool {
	_, ok := zoneDisplayNames[z]
	return ok
}

func (z Zone) DisplayName() string {
	if name, ok := zoneDisplayNames[z]; ok {
		return name
	}
	return string(z)
}

func (z Zone) Category() ZoneCategory {
	switch z {
	case ZoneLocal:
		return CategoryLocal
	case ZoneNorthIsland, ZoneSouthIsland:
		return CategoryNational
	}
	return CategoryInternational
}

func (z Zone) IsInternational() bool {
	return z.Valid() && z.Category() == CategoryInternational
}

// Roles
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)
