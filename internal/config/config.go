package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Database *DatabaseConfig
	Service  *ServiceConfig
	Planner  *PlannerConfig
}

type DatabaseConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"scenarios"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type ServiceConfig struct {
	Address        string `envconfig:"SCENARIO_PLANNER_ADDRESS" default:":3443"`
	MetricsAddress string `envconfig:"SCENARIO_PLANNER_METRICS_ADDRESS" default:":8080"`
	LogLevel       string `envconfig:"SCENARIO_PLANNER_LOG_LEVEL" default:"info"`
	EventsTopic    string `envconfig:"SCENARIO_PLANNER_EVENTS_TOPIC" default:""`
}

// PlannerConfig carries the tunable constants of the estimation models.
// The defaults match the documented model assumptions.
type PlannerConfig struct {
	CutoverBaseHours       float64 `envconfig:"SCENARIO_PLANNER_CUTOVER_BASE_HOURS" default:"4"`
	CutoverMinutesPerVM    float64 `envconfig:"SCENARIO_PLANNER_CUTOVER_MINUTES_PER_VM" default:"30"`
	MaintenanceWindowHours float64 `envconfig:"SCENARIO_PLANNER_MAINTENANCE_WINDOW_HOURS" default:"8"`
	HoursPerMonth          float64 `envconfig:"SCENARIO_PLANNER_HOURS_PER_MONTH" default:"730"`
}

// New builds a Config from the environment.
func New() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewDefault returns a configuration suitable for tests: an in-memory
// sqlite database and default model constants.
func NewDefault() *Config {
	return &Config{
		Database: &DatabaseConfig{
			Type: "sqlite",
			Name: ":memory:",
		},
		Service: &ServiceConfig{
			Address:        ":3443",
			MetricsAddress: ":8080",
			LogLevel:       "info",
		},
		Planner: &PlannerConfig{
			CutoverBaseHours:       4,
			CutoverMinutesPerVM:    30,
			MaintenanceWindowHours: 8,
			HoursPerMonth:          730,
		},
	}
}
