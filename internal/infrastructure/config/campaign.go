package config

// CampaignConfig holds campaign simulation configuration
type CampaignConfig struct {
	// Technology era for availability lookups:
	// STAR_LEAGUE, SUCCESSION_WARS, CLAN_INVASION, DARK_AGE
	Era string `mapstructure:"era" validate:"required,oneof=STAR_LEAGUE SUCCESSION_WARS CLAN_INVASION DARK_AGE"`

	// Technician daily time budget in minutes
	DailyMinutes int `mapstructure:"daily_minutes" validate:"min=1"`

	// Refit work accrued per day in minutes
	RefitMinutesPerDay int `mapstructure:"refit_minutes_per_day" validate:"min=1"`

	// Skill roll seed; zero means time-based (non-reproducible) rolls
	RollSeed int64 `mapstructure:"roll_seed"`
}
