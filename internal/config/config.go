// Package config holds the environment-driven settings for the
// pipeline binaries. All settings carry defaults, so a bare
// environment yields a working local setup.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// FetchConfig controls the dataset fetchers.
type FetchConfig struct {
	UserAgent           string `envconfig:"USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"`
	TimeoutSeconds      int    `envconfig:"TIMEOUT" default:"30"`
	MaxRetries          int    `envconfig:"MAX_RETRIES" default:"3"`
	RequestDelaySeconds int    `envconfig:"REQUEST_DELAY" default:"1"`
	ExerciseDBURL       string `envconfig:"EXERCISEDB_URL" default:"https://raw.githubusercontent.com/yuhonas/free-exercise-db/main/dist/exercises.json"`
	KaggleDataset       string `envconfig:"KAGGLE_DATASET" default:"valakhorasani/gym-members-exercise-dataset"`
}

// Timeout returns the fetch timeout as a duration.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// RequestDelay returns the delay between fetch retries.
func (f FetchConfig) RequestDelay() time.Duration {
	return time.Duration(f.RequestDelaySeconds) * time.Second
}

// Config is the full configuration for both binaries.
type Config struct {
	HTTPAddr         string      `envconfig:"HTTP_ADDR" default:":8080"`
	DBPath           string      `envconfig:"DB_PATH" default:"pipeline.db"`
	RawDataDir       string      `envconfig:"RAW_DATA_PATH" default:"data/raw"`
	ProcessedDataDir string      `envconfig:"PROCESSED_DATA_PATH" default:"data/processed"`
	LogLevel         string      `envconfig:"LOG_LEVEL" default:"info"`
	Fetch            FetchConfig `envconfig:"FETCH"`
}

// Load reads the configuration from the environment using the ETL
// prefix (ETL_HTTP_ADDR, ETL_RAW_DATA_PATH, ...).
func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("etl", &cfg)
	return cfg, err
}
