/*
Package config loads server configuration.

PURPOSE:
  One Config value is built at startup and handed to the store, services,
  router and scheduler. Nothing reads the environment after Load returns.

SOURCES (later wins):
  1. Built-in defaults
  2. Optional config file (YAML/JSON/TOML), path in WORKFORCE_CONFIG
  3. .env file in the working directory (loaded into the environment)
  4. Process environment, prefixed WORKFORCE_
  5. Command-line flags bound by cmd/server

KEYS:
  port                          HTTP port                      (8080)
  db                            SQLite path or ":memory:"      (workforce.db)
  allowed_origins               CORS origins, comma separated  (localhost dev servers)
  vacation.annual_allowance     Annual leave days per year     (21)
  attendance.max_extra_hours    Hours allowed over daily hours (4)
  schedule.entry                Default entry time             (09:00)
  schedule.exit                 Default exit time              (17:00)
  schedule.break_minutes        Break length                   (60)
  schedule.grace_minutes        Late grace period              (10)
  auto_attendance.enabled       Run the background scheduler   (true)
  auto_attendance.interval      Scheduler tick                 (1h)

  Nested keys map to env vars with "_" for ".", e.g.
  WORKFORCE_VACATION_ANNUAL_ALLOWANCE=25.

SEE ALSO:
  - cmd/server/main.go: flag binding
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/warp/workforce/core"
)

const EnvPrefix = "WORKFORCE"

// Config is the resolved server configuration.
type Config struct {
	Port           int
	DBPath         string
	AllowedOrigins []string

	AnnualAllowance int
	MaxExtraHours   decimal.Decimal
	Schedule        core.WorkSchedule

	AutoAttendance         bool
	AutoAttendanceInterval time.Duration
}

// New returns a viper instance with defaults and environment binding set up.
// Callers may bind flags to it before passing it to FromViper.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", 8080)
	v.SetDefault("db", "workforce.db")
	v.SetDefault("allowed_origins", []string{"http://localhost:5173", "http://localhost:8080"})
	v.SetDefault("vacation.annual_allowance", 21)
	v.SetDefault("attendance.max_extra_hours", "4")
	v.SetDefault("schedule.entry", "09:00")
	v.SetDefault("schedule.exit", "17:00")
	v.SetDefault("schedule.break_minutes", 60)
	v.SetDefault("schedule.grace_minutes", 10)
	v.SetDefault("auto_attendance.enabled", true)
	v.SetDefault("auto_attendance.interval", "1h")
	v.SetDefault("config", "")
	return v
}

// Load reads the env files (.env when none are named) into the process
// environment and resolves v. Missing env files are ignored, and variables
// already set win over the files.
func Load(v *viper.Viper, envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)
	return FromViper(v)
}

// FromViper resolves a Config from v, reading the config file named by the
// "config" key first when set.
func FromViper(v *viper.Viper) (*Config, error) {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	val := core.NewValidator()
	cfg := &Config{
		Port:            v.GetInt("port"),
		DBPath:          v.GetString("db"),
		AllowedOrigins:  splitList(v.GetStringSlice("allowed_origins")),
		AnnualAllowance: v.GetInt("vacation.annual_allowance"),
		AutoAttendance:  v.GetBool("auto_attendance.enabled"),
		Schedule: core.WorkSchedule{
			BreakMinutes: v.GetInt("schedule.break_minutes"),
			GraceMinutes: v.GetInt("schedule.grace_minutes"),
		},
	}

	val.Check("port", cfg.Port > 0 && cfg.Port < 65536, core.ErrInvalidValue, "Port must be between 1 and 65535")
	val.Required("db", cfg.DBPath, "Database path is required")
	val.Check("vacation.annual_allowance", cfg.AnnualAllowance >= 0, core.ErrInvalidValue, "Annual allowance cannot be negative")

	extra, err := decimal.NewFromString(v.GetString("attendance.max_extra_hours"))
	if val.Check("attendance.max_extra_hours", err == nil && !extra.IsNegative(), core.ErrInvalidValue, "Max extra hours must be a non-negative number") {
		cfg.MaxExtraHours = extra
	}

	entry, err := core.ParseClockTime(v.GetString("schedule.entry"))
	if val.Check("schedule.entry", err == nil, core.ErrInvalidValue, "Entry time must be HH:MM") {
		cfg.Schedule.EntryTime = entry
	}
	exit, err := core.ParseClockTime(v.GetString("schedule.exit"))
	if val.Check("schedule.exit", err == nil, core.ErrInvalidValue, "Exit time must be HH:MM") {
		cfg.Schedule.ExitTime = exit
	}
	if !val.Has("schedule.entry") && !val.Has("schedule.exit") {
		val.Check("schedule.exit", exit.After(entry), core.ErrDateOrder, "Exit time must be after entry time")
	}

	interval, err := time.ParseDuration(v.GetString("auto_attendance.interval"))
	if val.Check("auto_attendance.interval", err == nil && interval > 0, core.ErrInvalidValue, "Interval must be a positive duration") {
		cfg.AutoAttendanceInterval = interval
	}

	if err := val.Err(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// splitList accepts both a real list and a single comma separated value,
// which is what an env var yields.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
