// Package location backs the country/state/city pickers. Selection is
// hierarchical: changing the country empties the selectable states and
// cities, changing the state empties the cities. DeriveSelectable is a pure
// function so the cascade holds no matter what event ordering the client
// uses.
package location

import "sort"

type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Selectable is what a picker may currently offer for a given selection.
type Selectable struct {
	States []string `json:"states"`
	Cities []string `json:"cities"`
}

// registry is a static snapshot of the countries the booking form offers.
// country code -> state name -> cities.
var registry = map[string]map[string][]string{
	"PT": {
		"Lisboa":  {"Lisbon", "Cascais", "Sintra"},
		"Porto":   {"Porto", "Vila Nova de Gaia", "Matosinhos"},
		"Algarve": {"Faro", "Lagos", "Albufeira"},
	},
	"ES": {
		"Madrid":    {"Madrid", "Alcala de Henares"},
		"Catalunya": {"Barcelona", "Girona", "Tarragona"},
		"Andalucia": {"Sevilla", "Malaga", "Granada"},
	},
	"FR": {
		"Ile-de-France":       {"Paris", "Versailles"},
		"Provence":            {"Marseille", "Aix-en-Provence", "Avignon"},
		"Auvergne-Rhone-Alps": {"Lyon", "Grenoble", "Annecy"},
	},
	"US": {
		"California": {"Los Angeles", "San Francisco", "San Diego"},
		"Florida":    {"Miami", "Orlando", "Tampa"},
		"New York":   {"New York", "Buffalo", "Albany"},
	},
	"MA": {
		"Casablanca-Settat": {"Casablanca", "Mohammedia"},
		"Marrakesh-Safi":    {"Marrakesh", "Essaouira"},
		"Tanger-Tetouan":    {"Tangier", "Tetouan", "Chefchaouen"},
	},
}

var names = map[string]string{
	"PT": "Portugal",
	"ES": "Spain",
	"FR": "France",
	"US": "United States",
	"MA": "Morocco",
}

// Countries lists the selectable countries, sorted by code.
func Countries() []Country {
	out := make([]Country, 0, len(registry))
	for code := range registry {
		out = append(out, Country{Code: code, Name: names[code]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// DeriveSelectable returns the states selectable for country and the cities
// selectable for (country, state). An unknown or empty country yields
// nothing; a state that does not belong to the country yields states but no
// cities. Called after every change to country or state.
func DeriveSelectable(country, state string) Selectable {
	states, ok := registry[country]
	if !ok {
		return Selectable{}
	}
	s := Selectable{States: make([]string, 0, len(states))}
	for name := range states {
		s.States = append(s.States, name)
	}
	sort.Strings(s.States)
	if cities, ok := states[state]; ok {
		s.Cities = append([]string(nil), cities...)
	}
	return s
}

// Normalize clears a state or city that is inconsistent with the levels
// above it, so a stored selection can never present a city outside its
// chosen country.
func Normalize(country, state, city string) (string, string, string) {
	states, ok := registry[country]
	if !ok {
		return country, "", ""
	}
	cities, ok := states[state]
	if !ok {
		return country, "", ""
	}
	for _, c := range cities {
		if c == city {
			return country, state, city
		}
	}
	return country, state, ""
}
