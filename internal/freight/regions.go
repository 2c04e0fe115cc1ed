package freight

import (
	"slices"
	"strings"
)

// Region and major town names per island, lower case. Both lists are matched
// as substrings of the state and then the city of an address.
var northIslandPlaces = []string{
	"northland",
	"auckland",
	"waikato",
	"bay of plenty",
	"gisborne",
	"hawke's bay",
	"hawkes bay",
	"taranaki",
	"manawatu",
	"manawatū",
	"whanganui",
	"wanganui",
	"wellington",
	"whangarei",
	"hamilton",
	"tauranga",
	"rotorua",
	"taupo",
	"whakatane",
	"napier",
	"hastings",
	"new plymouth",
	"palmerston north",
	"levin",
	"masterton",
	"porirua",
	"lower hutt",
	"upper hutt",
	"kapiti",
	"paraparaumu",
}

var southIslandPlaces = []string{
	"tasman",
	"nelson",
	"marlborough",
	"west coast",
	"canterbury",
	"otago",
	"southland",
	"christchurch",
	"dunedin",
	"invercargill",
	"queenstown",
	"wanaka",
	"blenheim",
	"picton",
	"timaru",
	"oamaru",
	"ashburton",
	"greymouth",
	"westport",
	"kaikoura",
	"rangiora",
}

// NorthIslandCity is an entry of the directory an admin picks the local zone from.
type NorthIslandCity struct {
	Name           string   `json:"name"`
	Region         string   `json:"region"`
	PostalPrefixes []string `json:"postalPrefixes"`
}

var northIslandCities = []NorthIslandCity{
	{Name: "Whangarei", Region: "Northland", PostalPrefixes: []string{"010", "011"}},
	{Name: "Kerikeri", Region: "Northland", PostalPrefixes: []string{"023"}},
	{Name: "Auckland", Region: "Auckland", PostalPrefixes: []string{"101", "102", "103", "104", "105"}},
	{Name: "North Shore", Region: "Auckland", PostalPrefixes: []string{"062", "063", "074"}},
	{Name: "Manukau", Region: "Auckland", PostalPrefixes: []string{"210", "211", "224"}},
	{Name: "Hamilton", Region: "Waikato", PostalPrefixes: []string{"320", "321"}},
	{Name: "Cambridge", Region: "Waikato", PostalPrefixes: []string{"343"}},
	{Name: "Te Awamutu", Region: "Waikato", PostalPrefixes: []string{"380"}},
	{Name: "Thames", Region: "Waikato", PostalPrefixes: []string{"350"}},
	{Name: "Taupo", Region: "Waikato", PostalPrefixes: []string{"333", "335"}},
	{Name: "Tauranga", Region: "Bay of Plenty", PostalPrefixes: []string{"311"}},
	{Name: "Rotorua", Region: "Bay of Plenty", PostalPrefixes: []string{"301", "304"}},
	{Name: "Whakatane", Region: "Bay of Plenty", PostalPrefixes: []string{"312"}},
	{Name: "Gisborne", Region: "Gisborne", PostalPrefixes: []string{"401"}},
	{Name: "Napier", Region: "Hawke's Bay", PostalPrefixes: []string{"411"}},
	{Name: "Hastings", Region: "Hawke's Bay", PostalPrefixes: []string{"412"}},
	{Name: "New Plymouth", Region: "Taranaki", PostalPrefixes: []string{"431", "432"}},
	{Name: "Hawera", Region: "Taranaki", PostalPrefixes: []string{"461"}},
	{Name: "Whanganui", Region: "Manawatu-Whanganui", PostalPrefixes: []string{"450"}},
	{Name: "Palmerston North", Region: "Manawatu-Whanganui", PostalPrefixes: []string{"441", "444"}},
	{Name: "Levin", Region: "Manawatu-Whanganui", PostalPrefixes: []string{"551"}},
	{Name: "Masterton", Region: "Wellington", PostalPrefixes: []string{"581"}},
	{Name: "Wellington", Region: "Wellington", PostalPrefixes: []string{"601", "602", "603"}},
	{Name: "Lower Hutt", Region: "Wellington", PostalPrefixes: []string{"501"}},
	{Name: "Upper Hutt", Region: "Wellington", PostalPrefixes: []string{"501"}},
	{Name: "Porirua", Region: "Wellington", PostalPrefixes: []string{"502"}},
	{Name: "Paraparaumu", Region: "Wellington", PostalPrefixes: []string{"503"}},
}

// AvailableCities returns a copy of the North Island city directory.
func AvailableCities() []NorthIslandCity {
	out := make([]NorthIslandCity, len(northIslandCities))
	for i, c := range northIslandCities {
		c.PostalPrefixes = slices.Clone(c.PostalPrefixes)
		out[i] = c
	}
	return out
}

// LookupNorthIslandCity finds a directory entry by exact, case-insensitive name.
func LookupNorthIslandCity(name string) (NorthIslandCity, bool) {
	name = strings.TrimSpace(name)
	for _, c := range northIslandCities {
		if strings.EqualFold(c.Name, name) {
			c.PostalPrefixes = slices.Clone(c.PostalPrefixes)
			return c, true
		}
	}
	return NorthIslandCity{}, false
}
