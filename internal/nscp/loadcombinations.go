package nscp

import (
	"fmt"
	"strings"
)

// LoadCombination represents an NSCP load combination
// Based on NSCP 2015 Section 203.3 - Load Combinations Using Strength Design
type LoadCombination struct {
	ID          string
	Description string
	// Load factors for each load type
	Dead       float64 // D - Dead load
	Live       float64 // L - Live load
	Roof       float64 // Lr - Roof live load
	Wind       float64 // W - Wind load
	Earthquake float64 // E - Earthquake load
	Rain       float64 // R - Rain load
}

// NSCP 2015 Section 203.3.1 - Basic Load Combinations
var LoadCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.6,
		Roof:        0.5,
		Rain:        0.5,
	},
	{
		ID:          "3",
		Description: "1.2D + 1.6(Lr or R) + (1.0L or 0.5W)",
		Dead:        1.2,
		Live:        1.0,
		Roof:        1.6,
		Rain:        1.6,
		Wind:        0.5,
	},
	{
		ID:          "4",
		Description: "1.2D + 1.0W + 1.0L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.0,
		Wind:        1.0,
		Roof:        0.5,
		Rain:        0.5,
	},
	{
		ID:          "5",
		Description: "1.2D + 1.0E + 1.0L",
		Dead:        1.2,
		Live:        1.0,
		Earthquake:  1.0,
	},
	{
		ID:          "6",
		Description: "0.9D + 1.0W",
		Dead:        0.9,
		Wind:        1.0,
	},
	{
		ID:          "7",
		Description: "0.9D + 1.0E",
		Dead:        0.9,
		Earthquake:  1.0,
	},
}

// GravityCombinations are the combinations that govern floor loads
// carried by columns and walls
var GravityCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L",
		Dead:        1.2,
		Live:        1.6,
	},
}

// LegacyCombinations from the NSCP 2001 strength design provisions,
// still used for checking older designs
var LegacyCombinations = []LoadCombination{
	{
		ID:          "U1",
		Description: "1.4D + 1.7L",
		Dead:        1.4,
		Live:        1.7,
	},
}

// FindCombination looks up a combination by ID among the NSCP 2015
// combinations and then the legacy ones.
func FindCombination(id string) (LoadCombination, bool) {
	for _, set := range [][]LoadCombination{LoadCombinations, LegacyCombinations} {
		for _, combo := range set {
			if strings.EqualFold(combo.ID, id) {
				return combo, true
			}
		}
	}
	return LoadCombination{}, false
}

// Factor returns the load factor applied to a named load case.
// Superimposed dead loads take the dead load factor.
func (lc LoadCombination) Factor(loadCase string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(loadCase)) {
	case "dead", "d", "dl", "self", "sdl", "superimposed", "superimposed_dead":
		return lc.Dead, nil
	case "live", "l", "ll":
		return lc.Live, nil
	case "roof", "lr", "roof_live":
		return lc.Roof, nil
	case "wind", "w":
		return lc.Wind, nil
	case "earthquake", "e", "eq", "seismic":
		return lc.Earthquake, nil
	case "rain", "r":
		return lc.Rain, nil
	}
	return 0, fmt.Errorf("combination %s: unknown load case %q", lc.ID, loadCase)
}

// Factors returns the load factors for the given load cases in order.
func (lc LoadCombination) Factors(cases []string) ([]float64, error) {
	factors := make([]float64, len(cases))
	for i, c := range cases {
		f, err := lc.Factor(c)
		if err != nil {
			return nil, err
		}
		factors[i] = f
	}
	return factors, nil
}

// CalculateFactored calculates the factored load effect for a given load combination
func (lc LoadCombination) CalculateFactored(effects LoadEffects) float64 {
	return lc.Dead*effects.Dead +
		lc.Live*effects.Live +
		lc.Roof*effects.Roof +
		lc.Wind*effects.Wind +
		lc.Earthquake*effects.Earthquake +
		lc.Rain*effects.Rain
}

// LoadEffects holds unfactored effects from different load types.
// An effect is an axial force (kN) or a moment (kN-m).
type LoadEffects struct {
	Dead       float64
	Live       float64
	Roof       float64
	Wind       float64
	Earthquake float64
	Rain       float64
}

// CalculateGoverning finds the maximum factored effect from all combinations
func CalculateGoverning(effects LoadEffects, combinations []LoadCombination) (float64, LoadCombination) {
	var maxEffect float64
	var governingCombo LoadCombination

	for _, combo := range combinations {
		u := combo.CalculateFactored(effects)
		if u > maxEffect {
			maxEffect = u
			governingCombo = combo
		}
	}

	return maxEffect, governingCombo
}
