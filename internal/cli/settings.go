package cli

import "fmt"

type SettingsCmd struct {
	List bool `help:"List current settings."`

	HydrationEnabled     *bool `help:"Enable or disable hydration reminders."`
	HydrationIntervalMin *int  `help:"Minutes between hydration reminders."`
}

func (c *SettingsCmd) Validate() error {
	if c.HydrationIntervalMin != nil && *c.HydrationIntervalMin < 1 {
		return fmt.Errorf("hydration interval must be at least 1 minute")
	}
	return nil
}

func (c *SettingsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Hydration Reminders: %v\n", settings.HydrationEnabled)
		fmt.Printf("  Hydration Interval:  %d min\n", settings.HydrationIntervalMin)
		return nil
	}

	updated := false
	if c.HydrationEnabled != nil {
		settings.HydrationEnabled = *c.HydrationEnabled
		updated = true
	}
	if c.HydrationIntervalMin != nil {
		settings.HydrationIntervalMin = *c.HydrationIntervalMin
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	// The remind daemon picks the change up from the store file and
	// reschedules after its debounce delay.
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}
