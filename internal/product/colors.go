package product

// DefaultColor is the color of a fresh configuration.
const DefaultColor = "#ffffff"

// ColorPreset is a named swatch offered by the configurator.
type ColorPreset struct {
	Name  string
	Value string
}

var ColorPresets = []ColorPreset{
	{Name: "White", Value: "#ffffff"},
	{Name: "Cream", Value: "#f5f5dc"},
	{Name: "Beige", Value: "#d4c5b0"},
	{Name: "Brown", Value: "#8b7355"},
	{Name: "Olive", Value: "#556b2f"},
	{Name: "Navy", Value: "#2c3e50"},
	{Name: "Charcoal", Value: "#3a3a3a"},
	{Name: "Black", Value: "#1a1a1a"},
}

// PresetColor resolves a preset name (case-sensitive) or returns name as is.
func PresetColor(name string) string {
	for _, p := range ColorPresets {
		if p.Name == name {
			return p.Value
		}
	}
	return name
}
