// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	cleanupOrphans = pflag.Bool("cleanup-orphans", false, "Deletes files in the upload directory that have no metadata row")
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDBDrivers = []string{"sqlite", "postgres"}
)

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")

	v.BindEnv("cors.allowed_origins", "cors_allowed_origins")

	v.BindEnv("database.driver", "database_driver")
	v.BindEnv("database.path", "database_path")
	v.BindEnv("database.dsn", "database_dsn")

	v.BindEnv("storage.upload_dir", "storage_upload_dir")

	v.BindEnv("upload.max_size", "upload_max_size")

	v.BindEnv("rate_limit.enabled", "rate_limit_enabled")
	v.BindEnv("rate_limit.rps", "rate_limit_rps")
	v.BindEnv("rate_limit.burst", "rate_limit_burst")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "files.db")

	v.SetDefault("storage.upload_dir", "uploaded_files")

	// In MiB, turned into bytes at the end of Setup
	v.SetDefault("upload.max_size", 50)

	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.rps", 10)
	v.SetDefault("rate_limit.burst", 20)

	if err := v.ReadInConfig(); err != nil {
		// A missing config.toml is fine, defaults and envs cover everything
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetInt64("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	if v.GetString("storage.upload_dir") == "" {
		return errors.New("no upload directory provided")
	}

	switch v.GetString("database.driver") {
	case "sqlite":
		if v.GetString("database.path") == "" {
			return errors.New("database path can't be empty")
		}
	case "postgres":
		if v.GetString("database.dsn") == "" {
			return errors.New("database dsn can't be empty")
		}
	default:
		return fmt.Errorf("invalid database driver provided, must be one of %v", validDBDrivers)
	}

	if v.GetBool("rate_limit.enabled") {
		if v.GetInt("rate_limit.rps") <= 0 {
			return errors.New("rate_limit.rps must be bigger than 0")
		}

		if v.GetInt("rate_limit.burst") <= 0 {
			return errors.New("rate_limit.burst must be bigger than 0")
		}
	}

	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	return nil
}

// CleanupOrphans reports whether the --cleanup-orphans flag was passed
func CleanupOrphans() bool {
	return *cleanupOrphans
}
