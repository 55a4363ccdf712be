package config

// SimulationConfig holds simulation loop tuning
type SimulationConfig struct {
	// Length of the Martian day in hours
	HoursPerSol float64 `mapstructure:"hours_per_sol" validate:"required,gt=0"`

	// Duty shift boundaries within a sol
	WorkStartHour float64 `mapstructure:"work_start_hour" validate:"min=0"`
	WorkEndHour   float64 `mapstructure:"work_end_hour" validate:"min=0"`

	// Crew carried by a trade mission
	CrewSize int `mapstructure:"crew_size" validate:"min=1"`

	// Trade mission readiness scoring
	Trade TradeProfileConfig `mapstructure:"trade"`

	// Seed for the behavior draw; 0 means time-seeded
	RandomSeed int64 `mapstructure:"random_seed"`
}

// TradeProfileConfig holds trade mission scoring parameters
type TradeProfileConfig struct {
	// Smallest settlement that can field a trade mission
	MinPopulation int `mapstructure:"min_population" validate:"min=1"`

	// Life-support kilograms per resource that must remain at home
	BaselineResourceKg float64 `mapstructure:"baseline_resource_kg" validate:"min=0"`

	// Divisor scaling the settlement resource metric into a base score
	MetricDivisor float64 `mapstructure:"metric_divisor" validate:"min=0"`

	// Bonus for a settlement with no trade mission running yet
	StartupBonus float64 `mapstructure:"startup_bonus" validate:"min=0"`
}
