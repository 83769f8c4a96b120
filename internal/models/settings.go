package models

// Settings holds the hydration reminder configuration. One explicit
// struct is shared between the CLI and the reminder worker so neither
// can observe a partial update: stores load and save both fields in a
// single operation.
type Settings struct {
	HydrationEnabled     bool `json:"hydration_enabled"`
	HydrationIntervalMin int  `json:"hydration_interval"`
}

// DefaultSettings returns the settings a fresh store starts with.
func DefaultSettings() Settings {
	return Settings{
		HydrationEnabled:     true,
		HydrationIntervalMin: 60,
	}
}
