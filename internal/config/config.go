// Package config loads the function settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/subosito/gotenv"
)

// Environment variable names.
const (
	LoggingLevelEnv     = "COMPREHEND_S3_LOGGING_LEVEL"
	ComprehendRegionEnv = "COMPREHEND_REGION"
	OutputBucketEnv     = "COMPREHEND_S3_OUTPUT_BUCKET"
	OutputFolderEnv     = "COMPREHEND_S3_OUTPUT_FOLDER"
	LogColorEnv         = "COMPREHEND_S3_LOG_COLOR"
	EndpointEnv         = "AWS_ENDPOINT_URL"
)

// Defaults
const (
	DefaultLevel            = LevelInfo
	DefaultComprehendRegion = "us-east-2"
	DefaultOutputFolder     = "comprehend"
)

// Level is a logging verbosity name.
type Level string

// Recognized logging levels.
const (
	LevelNotSet   Level = "NOTSET"
	LevelDebug    Level = "DEBUG"
	LevelInfo     Level = "INFO"
	LevelWarning  Level = "WARNING"
	LevelError    Level = "ERROR"
	LevelCritical Level = "CRITICAL"
)

var slogLevels = map[Level]slog.Level{
	LevelNotSet:   slog.LevelDebug - 4,
	LevelDebug:    slog.LevelDebug,
	LevelInfo:     slog.LevelInfo,
	LevelWarning:  slog.LevelWarn,
	LevelError:    slog.LevelError,
	LevelCritical: slog.LevelError + 4,
}

// Valid reports whether l is one of the recognized levels.
func (l Level) Valid() bool {
	_, ok := slogLevels[l]
	return ok
}

// SlogLevel maps l to a slog level. Unrecognized levels map to INFO.
func (l Level) SlogLevel() slog.Level {
	if lvl, ok := slogLevels[l]; ok {
		return lvl
	}
	return slogLevels[DefaultLevel]
}

// Config holds the settings shared by all functions.
type Config struct {
	LogLevel Level
	// LevelFallback is the rejected value when the configured level was not recognized.
	LevelFallback string
	LogColor      bool

	ComprehendRegion string
	Endpoint         string

	// OutputBucket overrides the input bucket for saved analyses when set.
	OutputBucket string
	// OutputFolder never ends with a slash.
	OutputFolder string
}

// Load builds a Config from getenv, which is usually os.Getenv.
func Load(getenv func(string) string) Config {
	cfg := Config{
		LogLevel:         DefaultLevel,
		ComprehendRegion: DefaultComprehendRegion,
		OutputFolder:     DefaultOutputFolder,
	}

	if v := getenv(LoggingLevelEnv); v != "" {
		if lvl := Level(v); lvl.Valid() {
			cfg.LogLevel = lvl
		} else {
			cfg.LevelFallback = v
		}
	}

	if v := getenv(ComprehendRegionEnv); v != "" {
		cfg.ComprehendRegion = v
	}

	cfg.OutputBucket = getenv(OutputBucketEnv)

	if v := getenv(OutputFolderEnv); v != "" {
		cfg.OutputFolder = v
	}
	cfg.OutputFolder = strings.TrimRight(cfg.OutputFolder, "/")

	switch strings.ToLower(getenv(LogColorEnv)) {
	case "1", "true", "yes":
		cfg.LogColor = true
	}

	cfg.Endpoint = getenv(EndpointEnv)

	return cfg
}

// LoadEnvFile loads variables from a dotenv file into the process environment.
// Variables already set in the environment are kept.
func LoadEnvFile(path string) error {
	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// LogAttrs describes the effective settings for the startup log line.
func (c Config) LogAttrs() []any {
	return []any{
		slog.String("level", string(c.LogLevel)),
		slog.String("comprehend_region", c.ComprehendRegion),
		slog.String("output_bucket", c.OutputBucket),
		slog.String("output_folder", c.OutputFolder),
	}
}
