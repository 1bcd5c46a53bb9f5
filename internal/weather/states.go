package weather

// State names one of the twelve discrete weather conditions the engine
// blends between. The set is closed: catalog, adjacency and route tables
// are validated against AllStates at load.
type State string

const (
	StateClear     State = "clear"
	StateCloudy    State = "cloudy"
	StateOvercast  State = "overcast"
	StateFog       State = "fog"
	StateDrizzle   State = "drizzle"
	StateRain      State = "rain"
	StateHeavyRain State = "heavyRain"
	StateStorm     State = "storm"
	StateLightSnow State = "lightSnow"
	StateSnow      State = "snow"
	StateBlizzard  State = "blizzard"
	StateSandstorm State = "sandstorm"
)

// PrecipKind is the discrete particle family a condition emits. Unlike the
// numeric fields it cannot be blended; it flips at the transition midpoint.
type PrecipKind string

const (
	PrecipNone PrecipKind = "none"
	PrecipRain PrecipKind = "rain"
	PrecipSnow PrecipKind = "snow"
	PrecipDust PrecipKind = "dust"
)

// AllStates returns the closed state set in catalog order.
func AllStates() []State {
	return []State{
		StateClear,
		StateCloudy,
		StateOvercast,
		StateFog,
		StateDrizzle,
		StateRain,
		StateHeavyRain,
		StateStorm,
		StateLightSnow,
		StateSnow,
		StateBlizzard,
		StateSandstorm,
	}
}

// KnownState reports whether id is a member of the closed state set.
func KnownState(id State) bool {
	for _, s := range AllStates() {
		if s == id {
			return true
		}
	}
	return false
}

func StateLabel(s State) string {
	switch s {
	case StateClear:
		return "Clear"
	case StateCloudy:
		return "Cloudy"
	case StateOvercast:
		return "Overcast"
	case StateFog:
		return "Fog"
	case StateDrizzle:
		return "Drizzle"
	case StateRain:
		return "Rain"
	case StateHeavyRain:
		return "Heavy Rain"
	case StateStorm:
		return "Storm"
	case StateLightSnow:
		return "Light Snow"
	case StateSnow:
		return "Snow"
	case StateBlizzard:
		return "Blizzard"
	case StateSandstorm:
		return "Sandstorm"
	default:
		return "Unknown"
	}
}
