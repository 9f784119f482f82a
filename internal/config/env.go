package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnvString returns the value of EnvPrefix+key, or defaultVal if unset.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvUint64 returns EnvPrefix+key parsed as uint64, or defaultVal if
// unset or invalid.
func getEnvUint64(key string, defaultVal uint64) uint64 {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.ParseUint(val, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvInt returns EnvPrefix+key parsed as int, or defaultVal if unset or
// invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns EnvPrefix+key parsed as a bool. It accepts "true",
// "1", "yes" and "false", "0", "no" in any case.
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration returns EnvPrefix+key parsed with time.ParseDuration, or
// defaultVal if unset or invalid.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet reports whether any of names was given on the command line.
func isFlagSet(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}

// applyEnvOverrides fills every flag not given on the command line from its
// environment variable. Priority is flags, then environment, then defaults.
//
// Supported environment variables:
//   - FIB_TIMEOUT (duration), FIB_WORKERS (int), FIB_BACKEND (string)
//   - FIB_MAX_N, FIB_MAX_RANGE (uint64)
//   - FIB_OUTPUT, FIB_LOG_LEVEL, FIB_PORT (string)
//   - FIB_QUIET, FIB_HEX, FIB_JSON, FIB_NO_COLOR (bool)
//   - FIB_SERVER, FIB_INTERACTIVE, FIB_TUI (bool)
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
	if !isFlagSet(fs, "workers") {
		config.Workers = getEnvInt("WORKERS", config.Workers)
	}
	if !isFlagSet(fs, "max-n") {
		config.MaxN = getEnvUint64("MAX_N", config.MaxN)
	}
	if !isFlagSet(fs, "max-range") {
		config.MaxRangeLen = getEnvUint64("MAX_RANGE", config.MaxRangeLen)
	}

	if !isFlagSet(fs, "backend") {
		config.Backend = getEnvString("BACKEND", config.Backend)
	}
	if !isFlagSet(fs, "output", "o") {
		config.OutputFile = getEnvString("OUTPUT", config.OutputFile)
	}
	if !isFlagSet(fs, "log-level") {
		config.LogLevel = getEnvString("LOG_LEVEL", config.LogLevel)
	}
	if !isFlagSet(fs, "port") {
		config.Port = getEnvString("PORT", config.Port)
	}

	bools := []struct {
		flags []string
		env   string
		dst   *bool
	}{
		{[]string{"quiet", "q"}, "QUIET", &config.Quiet},
		{[]string{"hex"}, "HEX", &config.HexOutput},
		{[]string{"json"}, "JSON", &config.JSONOutput},
		{[]string{"no-color"}, "NO_COLOR", &config.NoColor},
		{[]string{"server"}, "SERVER", &config.ServerMode},
		{[]string{"interactive"}, "INTERACTIVE", &config.Interactive},
		{[]string{"tui"}, "TUI", &config.TUI},
	}
	for _, b := range bools {
		if !isFlagSet(fs, b.flags...) {
			*b.dst = getEnvBool(b.env, *b.dst)
		}
	}
}

// applyServerDefaults sets server-only defaults for values that neither a
// flag nor a FIB_ variable provided. The bare PORT variable common to
// container platforms is honoured after FIB_PORT.
func applyServerDefaults(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "max-n") && os.Getenv(EnvPrefix+"MAX_N") == "" {
		config.MaxN = DefaultServerMaxN
	}
	if !isFlagSet(fs, "max-range") && os.Getenv(EnvPrefix+"MAX_RANGE") == "" {
		config.MaxRangeLen = DefaultServerMaxRange
	}
	if !isFlagSet(fs, "port") && os.Getenv(EnvPrefix+"PORT") == "" {
		if port := os.Getenv("PORT"); port != "" {
			config.Port = port
		}
	}
}
