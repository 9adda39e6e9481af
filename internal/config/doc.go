// Package config handles loading and validating all application
// configuration from environment variables and optional config files.
package config
