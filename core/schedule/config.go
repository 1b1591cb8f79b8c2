package schedule

import "fmt"

// Config defines the extraction fallback policy. The values mirror long
// standing business conventions and should rarely be changed.
type Config struct {
	// DefaultDurationMinutes is the assumed job length when a record has no
	// end time and no estimated duration.
	DefaultDurationMinutes int `json:"default_duration_minutes"`
	// DayStartTime is the assumed start of a business day ("HH:MM") for
	// legacy records carrying only a date.
	DayStartTime string `json:"day_start_time"`
}

// SetDefaults applies the historical conventions.
func (c *Config) SetDefaults() {
	if c.DefaultDurationMinutes == 0 {
		c.DefaultDurationMinutes = 120
	}
	if c.DayStartTime == "" {
		c.DayStartTime = "07:30"
	}
}

// Validate checks the configured values.
func (c Config) Validate() error {
	if c.DefaultDurationMinutes < 0 {
		return fmt.Errorf("default_duration_minutes must not be negative")
	}
	if c.DayStartTime != "" {
		if _, _, ok := parseClock(c.DayStartTime); !ok {
			return fmt.Errorf("day_start_time %q is not a valid time of day", c.DayStartTime)
		}
	}
	return nil
}
