package config

var Presets = map[string]*Config{
	"single": {
		Rows: 1, Cols: 1, Points: 1, Spacing: 0.5,
		Dt: 0.01, Steps: 1000, Mass: 1, RestLength: 1,
		Stiffness: 10, Damping: 1, GravityY: 0,
		Backend: "serial",
	},
	"bob": {
		Rows: 2, Cols: 6, Points: 10, Spacing: 0.3,
		Dt: 0.004, Steps: 2500, Mass: 0.5, RestLength: 0.08,
		Stiffness: 600, Damping: 1.2, GravityY: -9.81,
		Backend: "auto",
	},
	"ponytail": {
		Rows: 4, Cols: 8, Points: 50, Spacing: 0.2,
		Dt: 0.002, Steps: 5000, Mass: 1, RestLength: 0.06,
		Stiffness: 900, Damping: 0.9, GravityY: -9.81,
		Backend: "auto",
	},
	"silky": {
		Rows: 4, Cols: 8, Points: 30, Spacing: 0.25,
		Dt: 0.004, Steps: 2500, Mass: 0.8, RestLength: 0.1,
		Stiffness: 250, Damping: 0.4, GravityY: -9.81,
		Backend: "auto",
	},
	"breeze": {
		Rows: 4, Cols: 8, Points: 25, Spacing: 0.3,
		Dt: 0.004, Steps: 5000, Mass: 1, RestLength: 0.1,
		Stiffness: 400, Damping: 0.8, GravityY: -9.81,
		Backend: "auto",
		Sway:    SwayConfig{Amplitude: 0.3, Frequency: 0.5},
	},
	"stress": {
		Rows: 32, Cols: 64, Points: 50, Spacing: 0.1,
		Dt: 0.002, Steps: 1000, Mass: 1, RestLength: 0.05,
		Stiffness: 800, Damping: 1.0, GravityY: -9.81,
		Backend: "parallel",
	},
}

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
	return names
}
