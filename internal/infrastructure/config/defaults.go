package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "colony.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "marscolony"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "marscolony"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Simulation defaults
	if cfg.Simulation.HoursPerSol == 0 {
		cfg.Simulation.HoursPerSol = 24.66
	}
	if cfg.Simulation.WorkEndHour <= cfg.Simulation.WorkStartHour {
		cfg.Simulation.WorkStartHour = 6
		cfg.Simulation.WorkEndHour = 18
	}
	if cfg.Simulation.CrewSize == 0 {
		cfg.Simulation.CrewSize = 2
	}
	if cfg.Simulation.Trade.MinPopulation == 0 {
		cfg.Simulation.Trade.MinPopulation = 2
	}
	if cfg.Simulation.Trade.BaselineResourceKg == 0 {
		cfg.Simulation.Trade.BaselineResourceKg = 50
	}
	if cfg.Simulation.Trade.StartupBonus == 0 {
		cfg.Simulation.Trade.StartupBonus = 0.5
	}

	// Daemon defaults
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/colony-daemon.pid"
	}
	if cfg.Daemon.TickInterval == 0 {
		cfg.Daemon.TickInterval = 1 * time.Second
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 10 * time.Second
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}
