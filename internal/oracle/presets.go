package oracle

// Preset is a user-friendly model tier mapped to a concrete model id.
type Preset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// presets maps tier names to model presets. The ids track Google's
// current Gemini lineup; "fast" is the default tier.
var presets = map[string]Preset{
	"powerful": {
		ID:          "gemini-3-pro-preview",
		Name:        "Powerful",
		Description: "Best reasoning & complex tasks",
		Icon:        "brain",
	},
	"fast": {
		ID:          "gemini-flash-latest",
		Name:        "Fast",
		Description: "Balanced speed & quality",
		Icon:        "zap",
	},
	"efficient": {
		ID:          "gemini-flash-lite-latest",
		Name:        "Efficient",
		Description: "Quick responses, lower cost",
		Icon:        "leaf",
	},
}

// DefaultPreset is used when a caller asks for an unknown tier.
const DefaultPreset = "fast"

// Presets returns all available model presets keyed by tier name.
func Presets() map[string]Preset {
	out := make(map[string]Preset, len(presets))
	for k, v := range presets {
		out[k] = v
	}
	return out
}

// ModelID resolves a preset tier name to a concrete model id, falling
// back to the default tier for unknown names.
func ModelID(preset string) string {
	if p, ok := presets[preset]; ok {
		return p.ID
	}
	return presets[DefaultPreset].ID
}
