// Package config loads service configuration from an optional YAML file
// with environment-variable overrides. Environment always wins, so a
// containerized deployment can run without any file at all.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SMTP configures the outbound mail relay.
type SMTP struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Config holds all formstamp service configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`

	// TemplatePath locates the form template PDF.
	TemplatePath string `yaml:"template_path"`

	// Profile selects the template layout revision by id.
	Profile string `yaml:"profile"`

	// MailFrom is the default sender for action=email requests that
	// carry no fromEmail.
	MailFrom string `yaml:"mail_from"`

	SMTP SMTP `yaml:"smtp"`
}

// Default returns the configuration used before file and env overrides.
func Default() Config {
	return Config{
		Addr:    ":8080",
		Profile: "da2404-b",
		SMTP:    SMTP{Port: 587},
	}
}

// Load reads the YAML file at path (a missing file is fine; an empty
// path skips the file entirely) and applies environment overrides:
// ADDR, TEMPLATE_PATH, PROFILE, MAIL_FROM, SMTP_HOST, SMTP_PORT,
// SMTP_USERNAME, SMTP_PASSWORD.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// fall through to env
		default:
			return cfg, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Addr, "ADDR")
	setString(&cfg.TemplatePath, "TEMPLATE_PATH")
	setString(&cfg.Profile, "PROFILE")
	setString(&cfg.MailFrom, "MAIL_FROM")
	setString(&cfg.SMTP.Host, "SMTP_HOST")
	setString(&cfg.SMTP.Username, "SMTP_USERNAME")
	setString(&cfg.SMTP.Password, "SMTP_PASSWORD")
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.SMTP.Port = port
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
