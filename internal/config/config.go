package config

import (
	"fmt"

	"github.com/spf13/viper"

	"hvac_advisor/internal/hvac"
)

// Config is the process configuration. Everything has a sensible default;
// a config.yaml next to the binary (or in ./config) and environment
// variables override it.
type Config struct {
	Data        DataConfig        `mapstructure:"data"`
	Server      ServerConfig      `mapstructure:"server"`
	MQTT        MQTTConfig        `mapstructure:"mqtt"`
	Calibration CalibrationConfig `mapstructure:"calibration"`
	Comfort     ComfortConfig     `mapstructure:"comfort"`
}

type DataConfig struct {
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type MQTTConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Broker         string `mapstructure:"broker"`
	ClientID       string `mapstructure:"client_id"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	ReadingsTopic  string `mapstructure:"readings_topic"`
	DecisionsTopic string `mapstructure:"decisions_topic"`
}

// CalibrationConfig exposes the percentile tuning. The defaults fit the
// SML2010 dataset; other deployments re-tune here instead of editing the
// model builders.
type CalibrationConfig struct {
	InputLoPct    float64 `mapstructure:"input_lo_pct"`
	InputHiPct    float64 `mapstructure:"input_hi_pct"`
	InputPad      float64 `mapstructure:"input_pad"`
	DeltaLoPct    float64 `mapstructure:"delta_lo_pct"`
	DeltaHiPct    float64 `mapstructure:"delta_hi_pct"`
	DeltaPad      float64 `mapstructure:"delta_pad"`
	TrainFraction float64 `mapstructure:"train_fraction"`
}

type ComfortConfig struct {
	Low               float64 `mapstructure:"low"`
	High              float64 `mapstructure:"high"`
	OccupiedThreshold float64 `mapstructure:"occupied_threshold"`
}

// Load reads config.yaml if present and applies defaults and environment
// overrides.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)

	v.SetEnvPrefix("hvac")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	cal := hvac.DefaultCalibration()
	policy := hvac.DefaultPolicy()

	v.SetDefault("data.path", "NEW-DATA-1.T15.txt")
	v.SetDefault("server.addr", ":8080")

	v.SetDefault("mqtt.enabled", false)
	v.SetDefault("mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("mqtt.client_id", "hvac-advisor")
	v.SetDefault("mqtt.readings_topic", "hvac/readings")
	v.SetDefault("mqtt.decisions_topic", "hvac/decisions")

	v.SetDefault("calibration.input_lo_pct", cal.InputLoPct)
	v.SetDefault("calibration.input_hi_pct", cal.InputHiPct)
	v.SetDefault("calibration.input_pad", cal.InputPad)
	v.SetDefault("calibration.delta_lo_pct", cal.DeltaLoPct)
	v.SetDefault("calibration.delta_hi_pct", cal.DeltaHiPct)
	v.SetDefault("calibration.delta_pad", cal.DeltaPad)
	v.SetDefault("calibration.train_fraction", cal.TrainFraction)

	v.SetDefault("comfort.low", policy.ComfortLow)
	v.SetDefault("comfort.high", policy.ComfortHigh)
	v.SetDefault("comfort.occupied_threshold", policy.OccupiedThreshold)
}

// ModelCalibration converts the tuning section into the model builder
// form, keeping the non-configurable discretization defaults.
func (c *Config) ModelCalibration() hvac.Calibration {
	cal := hvac.DefaultCalibration()
	cal.InputLoPct = c.Calibration.InputLoPct
	cal.InputHiPct = c.Calibration.InputHiPct
	cal.InputPad = c.Calibration.InputPad
	cal.DeltaLoPct = c.Calibration.DeltaLoPct
	cal.DeltaHiPct = c.Calibration.DeltaHiPct
	cal.DeltaPad = c.Calibration.DeltaPad
	cal.TrainFraction = c.Calibration.TrainFraction
	return cal
}

// DecisionPolicy converts the comfort section into decision thresholds.
func (c *Config) DecisionPolicy() hvac.Policy {
	return hvac.Policy{
		ComfortLow:        c.Comfort.Low,
		ComfortHigh:       c.Comfort.High,
		OccupiedThreshold: c.Comfort.OccupiedThreshold,
	}
}
