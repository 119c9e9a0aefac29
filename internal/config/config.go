// Package config reads jsonfit settings from a .env file and the
// environment. Variables already set in the environment win over the file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/leofalp/jsonfit/core/extract"
	"github.com/leofalp/jsonfit/core/fit"
	"github.com/leofalp/jsonfit/internal/source"
	"github.com/leofalp/jsonfit/providers/observability/slogobs"
)

// Environment variable names.
const (
	EnvMaxCompletionLength = "JSONFIT_MAX_COMPLETION_LENGTH"
	EnvScanMode            = "JSONFIT_SCAN_MODE"
	EnvLenient             = "JSONFIT_LENIENT"
	EnvWorkers             = "JSONFIT_WORKERS"
	EnvFetchTimeout        = "JSONFIT_FETCH_TIMEOUT"
)

// DefaultEnvFile is loaded by Load when no file is named.
const DefaultEnvFile = ".env"

// Config holds the settings shared by the library calls the CLI makes.
type Config struct {
	MaxCompletionLength int
	ScanMode            extract.Mode
	Lenient             bool
	Workers             int
	FetchTimeout        time.Duration
	LogLevel            slog.Level
	LogFormat           slogobs.Format
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		MaxCompletionLength: fit.DefaultMaxCompletionLength,
		ScanMode:            extract.ModeStack,
		Workers:             runtime.NumCPU(),
		FetchTimeout:        source.DefaultTimeout,
		LogLevel:            slog.LevelWarn,
		LogFormat:           slogobs.FormatCompact,
	}
}

// Load reads envFiles (DefaultEnvFile when none are given) into the
// process environment, skipping files that do not exist, and returns
// FromEnv(os.LookupEnv).
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, starting from Default. Unset or
// empty variables keep their default. Log settings follow
// slogobs.GetLogLevelFromEnv and slogobs.GetFormatFromEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	if v := get(EnvMaxCompletionLength); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("%s: want a positive integer, got %q", EnvMaxCompletionLength, v)
		}
		cfg.MaxCompletionLength = n
	}

	if v := get(EnvScanMode); v != "" {
		mode, err := extract.ParseMode(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvScanMode, err)
		}
		cfg.ScanMode = mode
	}

	if v := get(EnvLenient); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLenient, err)
		}
		cfg.Lenient = b
	}

	if v := get(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("%s: want a positive integer, got %q", EnvWorkers, v)
		}
		cfg.Workers = n
	}

	if v := get(EnvFetchTimeout); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvFetchTimeout, err)
		}
		cfg.FetchTimeout = d
	}

	level := get("JSONFIT_LOG_LEVEL")
	if level == "" {
		level = get("LOG_LEVEL")
	}
	if level != "" {
		cfg.LogLevel = slogobs.ParseLogLevel(level)
	}

	format := get("JSONFIT_LOG_FORMAT")
	if format == "" {
		format = get("LOG_FORMAT")
	}
	if format != "" {
		cfg.LogFormat = slogobs.ParseFormat(format)
	}

	return cfg, nil
}

// parseDuration accepts time.ParseDuration syntax or a bare number of
// seconds.
func parseDuration(s string) (time.Duration, error) {
	if secs, err := strconv.Atoi(s); err == nil {
		if secs < 1 {
			return 0, fmt.Errorf("want a positive duration, got %q", s)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("want a positive duration, got %q", s)
	}
	return d, nil
}
