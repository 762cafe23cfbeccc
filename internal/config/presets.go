package config

import "sort"

var Presets = map[string]*Config{
	"sierpinski": {
		Rule: 90, Cells: 63, Steps: 31, Live: "#", Dead: ".", Probability: 0.5, Workers: 1,
	},
	"rule30": {
		Rule: 30, Cells: 79, Steps: 39, Live: "#", Dead: ".", Probability: 0.5, Workers: 1,
	},
	"rule110": {
		Rule: 110, Cells: 80, Steps: 60, Wrap: true, Start: "RANDOM", Probability: 0.5, Seed: 110,
		Live: "#", Dead: ".", Workers: 1,
	},
	"traffic": {
		Rule: 184, Cells: 60, Steps: 30, Wrap: true, Start: "RANDOM", Probability: 0.4, Seed: 184,
		Live: ">", Dead: ".", Workers: 1,
	},
	"random90": {
		Rule: 90, Cells: 80, Steps: 40, Wrap: true, Start: "RANDOM", Probability: 0.5, Seed: 90,
		Live: "#", Dead: ".", Workers: 1,
	},
	"ring": {
		Rule: 150, Cells: 31, Steps: 40, Wrap: true, Live: "#", Dead: ".", Probability: 0.5, Workers: 1,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
